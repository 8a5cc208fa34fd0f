package model

import (
	"fmt"
	"strings"
	"time"
)

// Enabled narrows trigger listings by their enabled state.
// The zero value matches every trigger.
type Enabled int

const (
	EnabledEither Enabled = iota
	EnabledTrue
	EnabledFalse
)

// EnabledChoices lists the accepted literals in display order.
var EnabledChoices = []string{"either", "true", "false"}

func (e Enabled) String() string {
	switch e {
	case EnabledTrue:
		return "true"
	case EnabledFalse:
		return "false"
	default:
		return "either"
	}
}

// ParseEnabled accepts exactly one of EnabledChoices.
func ParseEnabled(s string) (Enabled, error) {
	switch s {
	case "either":
		return EnabledEither, nil
	case "true":
		return EnabledTrue, nil
	case "false":
		return EnabledFalse, nil
	}
	return EnabledEither, fmt.Errorf("invalid value %q (must be one of %s)", s, strings.Join(EnabledChoices, ", "))
}

func (e Enabled) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *Enabled) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*e = EnabledEither
		return nil
	}
	v, err := ParseEnabled(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Operation is the mutation requested by the room command.
type Operation string

const (
	OperationAdd    Operation = "add"
	OperationRemove Operation = "remove"
)

// OperationChoices lists the accepted literals in display order.
var OperationChoices = []string{string(OperationAdd), string(OperationRemove)}

// ParseOperation accepts exactly one of OperationChoices.
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case OperationAdd, OperationRemove:
		return Operation(s), nil
	}
	return "", fmt.Errorf("invalid operation %q (must be one of %s)", s, strings.Join(OperationChoices, ", "))
}

// Filter narrows a listing request. Empty fields impose no constraint;
// the service decides how patterns match.
type Filter struct {
	Name    string     `json:"name,omitempty"`
	Room    string     `json:"room,omitempty"`
	Zone    string     `json:"zone,omitempty"`
	Types   []string   `json:"types,omitempty"`
	Enabled Enabled    `json:"enabled"`
	After   *time.Time `json:"after,omitempty"`
	Before  *time.Time `json:"before,omitempty"`
}

// HasWindow reports whether the filter bounds trigger fire times.
func (f Filter) HasWindow() bool {
	return f.After != nil || f.Before != nil
}

// OperationRequest adds or removes a room, or accessories to/from a room
// when Accessories is non-empty.
type OperationRequest struct {
	Operation   Operation `json:"operation"`
	Target      string    `json:"target"`
	Accessories []string  `json:"accessories,omitempty"`
}

// TargetsRoom reports whether the request acts on the room itself.
func (r OperationRequest) TargetsRoom() bool {
	return len(r.Accessories) == 0
}

type Home struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Primary bool   `json:"primary"`
}

type Room struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Zone struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Rooms []string `json:"rooms,omitempty"`
}

type Accessory struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Room         string `json:"room,omitempty"`
	Category     string `json:"category,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	Reachable    bool   `json:"reachable"`
}

type Service struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Accessory string `json:"accessory,omitempty"`
}

type ServiceGroup struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Services []string `json:"services,omitempty"`
}

type ActionSet struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Actions int    `json:"actions"`
}

type Trigger struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Enabled    bool       `json:"enabled"`
	LastFired  *time.Time `json:"last_fired,omitempty"`
	ActionSets []string   `json:"action_sets,omitempty"`
}
