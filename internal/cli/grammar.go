package cli

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/treykane/hkctl/internal/model"
)

// CommandArgs holds the options and positionals of the invoked command.
// Fields the command does not declare stay at their zero value, which the
// service treats as "no constraint".
type CommandArgs struct {
	Name    string
	Room    string
	Zone    string
	Types   []string
	Enabled model.Enabled
	After   *time.Time
	Before  *time.Time

	Operation   model.Operation
	Target      string
	Accessories []string
}

// optionSpec declares one flag. field returns a pointer into CommandArgs
// whose type selects how the flag is parsed: *string, *[]string (repeatable),
// *model.Enabled (closed choice) or **time.Time.
type optionSpec struct {
	name      string
	short     string
	valueName string
	usage     string
	field     func(*CommandArgs) any
}

// positionalSpec declares one positional argument.
type positionalSpec struct {
	valueName string
	usage     string
	required  bool
	variadic  bool
	choices   []string
	assign    func(*CommandArgs, []string) error
}

type commandSpec struct {
	name        string
	short       string
	long        string
	options     []optionSpec
	positionals []positionalSpec
}

var (
	nameOpt = optionSpec{
		name: "name", valueName: "NAME OR UUID", usage: "Name pattern filter",
		field: func(a *CommandArgs) any { return &a.Name },
	}
	roomOpt = optionSpec{
		name: "room", valueName: "NAME OR UUID", usage: "Room name pattern filter",
		field: func(a *CommandArgs) any { return &a.Room },
	}
	zoneOpt = optionSpec{
		name: "zone", valueName: "NAME OR UUID", usage: "Zone name pattern filter",
		field: func(a *CommandArgs) any { return &a.Zone },
	}
	typeOpt = optionSpec{
		name: "type", short: "t", valueName: "TYPE", usage: "Service type filter (repeatable)",
		field: func(a *CommandArgs) any { return &a.Types },
	}
	enabledOpt = optionSpec{
		name: "enabled", short: "e", valueName: "either|true|false", usage: "Filter on enabled/disabled triggers",
		field: func(a *CommandArgs) any { return &a.Enabled },
	}
	afterOpt = optionSpec{
		name: "after", short: "a", valueName: "TIME", usage: "Triggered after specified time",
		field: func(a *CommandArgs) any { return &a.After },
	}
	beforeOpt = optionSpec{
		name: "before", short: "b", valueName: "TIME", usage: "Triggered before specified time",
		field: func(a *CommandArgs) any { return &a.Before },
	}
)

// grammar is the complete command surface. Command names are unique; the
// registry carries exactly one handler per entry.
var grammar = []commandSpec{
	{name: "homes", short: "Lists homes"},
	{name: "rooms", short: "Lists rooms", options: []optionSpec{nameOpt}},
	{name: "zones", short: "Lists zones", options: []optionSpec{roomOpt, nameOpt}},
	{name: "accessories", short: "Lists accessories", options: []optionSpec{roomOpt, nameOpt, zoneOpt}},
	{name: "services", short: "Lists services", options: []optionSpec{nameOpt, typeOpt}},
	{name: "servicegroups", short: "Lists service groups", options: []optionSpec{nameOpt}},
	{name: "actionsets", short: "Lists action sets", options: []optionSpec{nameOpt}},
	{
		name:    "triggers",
		short:   "Lists triggers",
		long:    "Lists triggers. TIME is RFC 3339, 2006-01-02T15:04:05 or 2006-01-02 (local time).",
		options: []optionSpec{enabledOpt, afterOpt, beforeOpt, nameOpt},
	},
	{
		name:  "room",
		short: "Manipulate rooms",
		long: "Adds or removes a room. When accessories are listed, they are added to or\n" +
			"removed from the room instead and the room itself is left alone.",
		positionals: []positionalSpec{
			{
				valueName: "OPERATION", usage: "Operation to be performed", required: true,
				choices: model.OperationChoices,
				assign: func(a *CommandArgs, v []string) error {
					op, err := model.ParseOperation(v[0])
					a.Operation = op
					return err
				},
			},
			{
				valueName: "NAME OR UUID", usage: "Name", required: true,
				assign: func(a *CommandArgs, v []string) error {
					a.Target = v[0]
					return nil
				},
			},
			{
				valueName: "ACCESSORIES", usage: "List of accessories to add/remove to/from a room. If empty, the room itself will be added or deleted",
				variadic: true,
				assign: func(a *CommandArgs, v []string) error {
					a.Accessories = slices.Clone(v)
					return nil
				},
			},
		},
	},
}

// commandNames lists the grammar's command names in declaration order.
func commandNames() []string {
	names := make([]string, 0, len(grammar))
	for _, c := range grammar {
		names = append(names, c.name)
	}
	return names
}

// use renders the cobra Use line, e.g. "room <OPERATION> <NAME OR UUID> [ACCESSORIES...]".
func (c commandSpec) use() string {
	parts := []string{c.name}
	if len(c.options) > 0 {
		parts = append(parts, "[flags]")
	}
	for _, p := range c.positionals {
		switch {
		case p.variadic:
			parts = append(parts, fmt.Sprintf("[%s...]", p.valueName))
		case p.required:
			parts = append(parts, fmt.Sprintf("<%s>", p.valueName))
		default:
			parts = append(parts, fmt.Sprintf("[%s]", p.valueName))
		}
	}
	return strings.Join(parts, " ")
}

// validate checks positional count and closed choices.
func (c commandSpec) validate(args []string) error {
	required, variadic := 0, false
	for _, p := range c.positionals {
		if p.required {
			required++
		}
		if p.variadic {
			variadic = true
		}
	}
	if len(args) < required {
		return fmt.Errorf("missing required argument <%s>", c.positionals[len(args)].valueName)
	}
	if !variadic && len(args) > len(c.positionals) {
		if len(c.positionals) == 0 {
			return fmt.Errorf("unknown command %q for %q", args[0], "hkctl "+c.name)
		}
		return fmt.Errorf("accepts at most %d arg(s), received %d", len(c.positionals), len(args))
	}
	for i, p := range c.positionals {
		if i >= len(args) || len(p.choices) == 0 {
			continue
		}
		if !slices.Contains(p.choices, args[i]) {
			return fmt.Errorf("invalid value %q for <%s> (must be one of %s)", args[i], p.valueName, strings.Join(p.choices, ", "))
		}
	}
	return nil
}

// bind assigns validated positionals to dst.
func (c commandSpec) bind(args []string, dst *CommandArgs) error {
	for i, p := range c.positionals {
		var values []string
		switch {
		case p.variadic:
			if i < len(args) {
				values = args[i:]
			}
		case i < len(args):
			values = args[i : i+1]
		default:
			continue
		}
		if len(values) == 0 && !p.variadic {
			continue
		}
		if err := p.assign(dst, values); err != nil {
			return err
		}
	}
	return nil
}

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// parseTime accepts RFC 3339, or a local date-time or date.
func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339 {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (use RFC 3339, 2006-01-02T15:04:05 or 2006-01-02)", s)
}
