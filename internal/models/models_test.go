// ABOUTME: Tests for shared API models
// ABOUTME: Covers ID decoding, task field access and project helpers

package models

import (
	"encoding/json"
	"testing"
)

func TestID_RoundTrip(t *testing.T) {
	tests := []struct {
		input string
		want  string
		out   string
	}{
		{`1`, "1", `1`},
		{`"abc-123"`, "abc-123", `"abc-123"`},
		{`"007"`, "007", `"007"`},
		{`"123"`, "123", `"123"`},
		{`12345678901234567890`, "12345678901234567890", `12345678901234567890`},
		{`null`, "", `""`},
	}
	for _, tc := range tests {
		var id ID
		if err := json.Unmarshal([]byte(tc.input), &id); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.input, err)
		}
		if id.String() != tc.want {
			t.Errorf("expected %q, got %q", tc.want, id)
		}
		data, err := json.Marshal(id)
		if err != nil {
			t.Fatalf("marshal %s: %v", tc.input, err)
		}
		if string(data) != tc.out {
			t.Errorf("%s: expected %s written back, got %s", tc.input, tc.out, data)
		}
	}

	var user User
	if err := json.Unmarshal([]byte(`{"id":1,"name":"A","email":"a@x.com"}`), &user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := json.Marshal(user)
	if string(data) != `{"id":1,"name":"A","email":"a@x.com"}` {
		t.Errorf("unexpected user JSON %s", data)
	}

	data, _ = json.Marshal(User{ID: NewID("42"), Name: "A", Email: "a@x.com"})
	if string(data) != `{"id":"42","name":"A","email":"a@x.com"}` {
		t.Errorf("expected constructed ID to stay a string, got %s", data)
	}
}

func TestTask_Fields(t *testing.T) {
	var task Task
	if err := json.Unmarshal([]byte(`{"taskId":"t1","title":"Write docs","priority":2,"done":false}`), &task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.ID() != "t1" {
		t.Errorf("expected t1, got %q", task.ID())
	}
	if task.Field("priority") != "2" {
		t.Errorf("expected priority 2, got %q", task.Field("priority"))
	}
	if task.Field("done") != "false" {
		t.Errorf("expected done false, got %q", task.Field("done"))
	}
	if task.Field("missing") != "" {
		t.Error("expected empty string for missing field")
	}

	numeric := Task{"id": float64(7)}
	if numeric.ID() != "7" {
		t.Errorf("expected numeric id 7, got %q", numeric.ID())
	}
}

func TestTask_LargeIntegersSurviveRoundTrip(t *testing.T) {
	const body = `{"tasks":[{"id":9007199254740993,"ratio":0.5,"ref":12345678901234567890}]}`
	var list TaskList
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := list.Tasks[0].ID(); got != "9007199254740993" {
		t.Errorf("expected exact id, got %s", got)
	}
	data, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != body {
		t.Errorf("expected %s, got %s", body, data)
	}
}

func TestParseTaskInput(t *testing.T) {
	in, err := ParseTaskInput(`{"points":9007199254740993}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in["points"] != json.Number("9007199254740993") {
		t.Errorf("expected exact number, got %v", in["points"])
	}

	for _, bad := range []string{`null`, `[1]`, `"x"`, `7`, `{`} {
		if _, err := ParseTaskInput(bad); err == nil {
			t.Errorf("expected %s to be rejected", bad)
		}
	}
}

func TestProject_Created(t *testing.T) {
	p := Project{CreatedAt: "2025-03-14T10:00:00Z"}
	created, ok := p.Created()
	if !ok {
		t.Fatal("expected timestamp to parse")
	}
	if created.Month() != 3 || created.Day() != 14 {
		t.Errorf("unexpected date %v", created)
	}

	if _, ok := (Project{CreatedAt: "yesterday"}).Created(); ok {
		t.Error("expected unparseable timestamp to be rejected")
	}
}

func TestProject_IsOwner(t *testing.T) {
	if !(Project{UserRole: RoleOwner}).IsOwner() {
		t.Error("expected owner")
	}
	if (Project{UserRole: RoleMember}).IsOwner() {
		t.Error("expected member not to be owner")
	}
}
