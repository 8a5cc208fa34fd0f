package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/treykane/hkctl/internal/apperr"
	"github.com/treykane/hkctl/internal/model"
)

func mustParse(t *testing.T, args ...string) *Invocation {
	t.Helper()
	var stdout, stderr bytes.Buffer
	inv, err := Parse(args, &stdout, &stderr)
	if err != nil {
		t.Fatalf("parse %v: %v\nstderr: %s", args, err, stderr.String())
	}
	if inv == nil {
		t.Fatalf("parse %v: no invocation", args)
	}
	return inv
}

// parseError returns what Parse wrote to stderr.
func parseError(t *testing.T, args ...string) string {
	t.Helper()
	var stdout, stderr bytes.Buffer
	inv, err := Parse(args, &stdout, &stderr)
	if err == nil {
		t.Fatalf("parse %v: expected error, got %+v", args, inv)
	}
	if !apperr.IsUsage(err) {
		t.Fatalf("parse %v: expected UsageError, got %T: %v", args, err, err)
	}
	return stderr.String()
}

func TestParseRoomsNameFilter(t *testing.T) {
	inv := mustParse(t, "rooms", "--name", "Kitchen")
	if inv.Command != "rooms" {
		t.Fatalf("unexpected command: %q", inv.Command)
	}
	want := model.Filter{Name: "Kitchen"}
	if diff := cmp.Diff(want, FilterFromArgs(inv.Args)); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFilterOptionsPerCommand(t *testing.T) {
	tests := []struct {
		args []string
		want model.Filter
	}{
		{[]string{"zones", "--room", "Kitchen", "--name", "Down"}, model.Filter{Room: "Kitchen", Name: "Down"}},
		{[]string{"accessories", "--room", "Garage", "--zone", "Downstairs"}, model.Filter{Room: "Garage", Zone: "Downstairs"}},
		{[]string{"services", "-t", "lightbulb", "--type", "switch", "--name", "Light"}, model.Filter{Name: "Light", Types: []string{"lightbulb", "switch"}}},
		{[]string{"servicegroups", "--name", "All"}, model.Filter{Name: "All"}},
		{[]string{"actionsets", "--name", "Morning"}, model.Filter{Name: "Morning"}},
		{[]string{"triggers", "-e", "false"}, model.Filter{Enabled: model.EnabledFalse}},
		{[]string{"homes"}, model.Filter{}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			inv := mustParse(t, tt.args...)
			if diff := cmp.Diff(tt.want, FilterFromArgs(inv.Args)); diff != "" {
				t.Fatalf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTriggerWindow(t *testing.T) {
	inv := mustParse(t, "triggers", "--after", "2026-10-01T07:00:00Z", "-b", "2026-10-02")
	f := FilterFromArgs(inv.Args)
	if f.After == nil || !f.After.Equal(time.Date(2026, 10, 1, 7, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected after: %v", f.After)
	}
	if f.Before == nil || !f.Before.Equal(time.Date(2026, 10, 2, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("unexpected before: %v", f.Before)
	}
	if f.Enabled != model.EnabledEither {
		t.Fatalf("expected either by default, got %v", f.Enabled)
	}
}

func TestParseRoomAddWithoutAccessories(t *testing.T) {
	inv := mustParse(t, "room", "add", "Garage")
	want := model.OperationRequest{Operation: model.OperationAdd, Target: "Garage"}
	got := OperationRequestFromArgs(inv.Args)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
	if !got.TargetsRoom() {
		t.Fatal("expected the room itself to be targeted")
	}
}

func TestParseRoomRemoveAccessories(t *testing.T) {
	inv := mustParse(t, "room", "remove", "Garage", "Sensor1", "Sensor2")
	want := model.OperationRequest{
		Operation:   model.OperationRemove,
		Target:      "Garage",
		Accessories: []string{"Sensor1", "Sensor2"},
	}
	if diff := cmp.Diff(want, OperationRequestFromArgs(inv.Args)); diff != "" {
		t.Fatalf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestParseGlobalOptions(t *testing.T) {
	inv := mustParse(t, "-vv", "--port", "6000", "rooms", "--home", "Cabin")
	if inv.Verbosity != 2 {
		t.Fatalf("unexpected verbosity: %d", inv.Verbosity)
	}
	if inv.Port == nil || *inv.Port != 6000 {
		t.Fatalf("unexpected port: %v", inv.Port)
	}
	if inv.Home != "Cabin" {
		t.Fatalf("unexpected home: %q", inv.Home)
	}

	inv = mustParse(t, "homes")
	if inv.Port != nil {
		t.Fatalf("expected absent port, got %d", *inv.Port)
	}
	if inv.Verbosity != 0 || inv.Home != "" || inv.JSON {
		t.Fatalf("unexpected defaults: %+v", inv)
	}
}

func TestParseNoCommand(t *testing.T) {
	inv := mustParse(t)
	if inv.Command != "" {
		t.Fatalf("expected no command, got %q", inv.Command)
	}
	if !strings.Contains(inv.usage, "Available Commands") {
		t.Fatalf("expected usage text, got: %s", inv.usage)
	}
}

func TestParseHelpIsAnsweredByParser(t *testing.T) {
	var stdout, stderr bytes.Buffer
	inv, err := Parse([]string{"--help"}, &stdout, &stderr)
	if err != nil || inv != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", inv, err)
	}
	if !strings.Contains(stdout.String(), "triggers") {
		t.Fatalf("expected help on stdout, got: %s", stdout.String())
	}
}

func TestParseHelpTopics(t *testing.T) {
	var stdout, stderr bytes.Buffer
	inv, err := Parse([]string{"help", "rooms"}, &stdout, &stderr)
	if err != nil || inv != nil {
		t.Fatalf("expected (nil, nil), got (%v, %v)", inv, err)
	}
	if !strings.Contains(stdout.String(), "--name") {
		t.Fatalf("expected rooms help, got: %s", stdout.String())
	}

	stderr.Reset()
	if _, err := Parse([]string{"help", "lights"}, &stdout, &stderr); !apperr.IsUsage(err) {
		t.Fatalf("expected UsageError for unknown topic, got %v", err)
	}
	if !strings.Contains(stderr.String(), "unknown help topic") {
		t.Fatalf("unexpected stderr: %s", stderr.String())
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	tests := map[string][]string{
		"unknown command":      {"lights"},
		"unknown flag":         {"rooms", "--colour", "red"},
		"flag of other cmd":    {"rooms", "--zone", "Downstairs"},
		"non-integer port":     {"--port", "abc", "homes"},
		"port out of range":    {"-p", "70000", "homes"},
		"enabled not in set":   {"triggers", "--enabled", "maybe"},
		"bad after time":       {"triggers", "--after", "yesterday"},
		"operation not in set": {"room", "rename", "Garage"},
		"missing room name":    {"room", "add"},
		"missing operation":    {"room"},
		"extra positional":     {"homes", "extra"},
		"missing flag value":   {"rooms", "--name"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			stderr := parseError(t, args...)
			if !strings.Contains(stderr, "Error:") {
				t.Fatalf("expected error message on stderr, got: %s", stderr)
			}
			if !strings.Contains(stderr, "Usage:") {
				t.Fatalf("expected usage on stderr, got: %s", stderr)
			}
		})
	}
}

func TestParseSharesNoStateBetweenCalls(t *testing.T) {
	first := mustParse(t, "services", "-t", "lightbulb", "--name", "Light")
	second := mustParse(t, "services")
	if second.Args.Name != "" || len(second.Args.Types) != 0 {
		t.Fatalf("second parse saw state from the first: %+v", second.Args)
	}
	if first.Args.Name != "Light" || len(first.Args.Types) != 1 {
		t.Fatalf("first invocation changed: %+v", first.Args)
	}
}

func TestGrammarNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range commandNames() {
		if seen[name] {
			t.Fatalf("command %q declared twice", name)
		}
		seen[name] = true
	}
}

func TestWithHomeKeepsFlag(t *testing.T) {
	inv := Invocation{Home: "Cabin"}
	if got := inv.WithHome("Main House").Home; got != "Cabin" {
		t.Fatalf("flag should win, got %q", got)
	}
	if got := (Invocation{}).WithHome("Main House").Home; got != "Main House" {
		t.Fatalf("configured home should apply, got %q", got)
	}
}
