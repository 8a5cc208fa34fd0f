package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseEnabled(t *testing.T) {
	for i, s := range EnabledChoices {
		got, err := ParseEnabled(s)
		if err != nil {
			t.Fatalf("parse %q: %v", s, err)
		}
		if int(got) != i || got.String() != s {
			t.Fatalf("unexpected value for %q: %v", s, got)
		}
	}
	for _, bad := range []string{"", "yes", "TRUE", "maybe"} {
		if _, err := ParseEnabled(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseOperation(t *testing.T) {
	if op, err := ParseOperation("add"); err != nil || op != OperationAdd {
		t.Fatalf("unexpected add parse: %v %v", op, err)
	}
	if op, err := ParseOperation("remove"); err != nil || op != OperationRemove {
		t.Fatalf("unexpected remove parse: %v %v", op, err)
	}
	if _, err := ParseOperation("rename"); err == nil {
		t.Fatal("expected error for rename")
	}
}

func TestFilterJSONOmitsAbsentFields(t *testing.T) {
	b, err := json.Marshal(Filter{Name: "Kitchen"})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"name":"Kitchen","enabled":"either"}` {
		t.Fatalf("unexpected json: %s", b)
	}

	var f Filter
	if err := json.Unmarshal([]byte(`{"enabled":"false"}`), &f); err != nil {
		t.Fatal(err)
	}
	if f.Enabled != EnabledFalse {
		t.Fatalf("expected enabled=false, got %v", f.Enabled)
	}
}

func TestFilterHasWindow(t *testing.T) {
	if (Filter{}).HasWindow() {
		t.Fatal("empty filter must not have a window")
	}
	now := time.Now()
	if !(Filter{Before: &now}).HasWindow() {
		t.Fatal("expected window when before is set")
	}
}

func TestOperationRequestTargetsRoom(t *testing.T) {
	if !(OperationRequest{Operation: OperationAdd, Target: "Garage"}).TargetsRoom() {
		t.Fatal("expected room target with no accessories")
	}
	if (OperationRequest{Operation: OperationRemove, Target: "Garage", Accessories: []string{"Sensor1"}}).TargetsRoom() {
		t.Fatal("expected accessory target")
	}
}
