package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/treykane/hkctl/internal/hkservice"
	"github.com/treykane/hkctl/internal/model"
	"github.com/treykane/hkctl/internal/util"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// Printer writes command results as a table or as JSON.
type Printer struct {
	w    io.Writer
	json bool
}

func NewPrinter(w io.Writer, jsonOut bool) *Printer {
	return &Printer{w: w, json: jsonOut}
}

type column[T any] struct {
	title string
	width int
	value func(T) string
}

func writeRecords[T any](p *Printer, rows []T, cols []column[T]) error {
	if p.json {
		if rows == nil {
			rows = []T{}
		}
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
	}
	fmt.Fprintln(p.w, headerStyle.Render(formatRow(cols, titles)))
	for _, row := range rows {
		values := make([]string, len(cols))
		for i, c := range cols {
			values[i] = c.value(row)
		}
		fmt.Fprintln(p.w, formatRow(cols, values))
	}
	return nil
}

func formatRow[T any](cols []column[T], values []string) string {
	var b strings.Builder
	for i, v := range values {
		if i == len(values)-1 {
			b.WriteString(v)
			break
		}
		fmt.Fprintf(&b, "%-*s ", cols[i].width, v)
	}
	return b.String()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func (p *Printer) Homes(homes []model.Home) error {
	return writeRecords(p, homes, []column[model.Home]{
		{"NAME", 24, func(h model.Home) string { return h.Name }},
		{"PRIMARY", 8, func(h model.Home) string { return util.YesNo(h.Primary) }},
		{"ID", 36, func(h model.Home) string { return h.ID }},
	})
}

func (p *Printer) Rooms(rooms []model.Room) error {
	return writeRecords(p, rooms, []column[model.Room]{
		{"NAME", 24, func(r model.Room) string { return r.Name }},
		{"ID", 36, func(r model.Room) string { return r.ID }},
	})
}

func (p *Printer) Zones(zones []model.Zone) error {
	return writeRecords(p, zones, []column[model.Zone]{
		{"NAME", 24, func(z model.Zone) string { return z.Name }},
		{"ID", 36, func(z model.Zone) string { return z.ID }},
		{"ROOMS", 0, func(z model.Zone) string { return util.JoinOrDash(z.Rooms) }},
	})
}

func (p *Printer) Accessories(accessories []model.Accessory) error {
	return writeRecords(p, accessories, []column[model.Accessory]{
		{"NAME", 24, func(a model.Accessory) string { return a.Name }},
		{"ROOM", 16, func(a model.Accessory) string { return util.EmptyDash(a.Room) }},
		{"CATEGORY", 20, func(a model.Accessory) string { return util.EmptyDash(a.Category) }},
		{"MANUFACTURER", 16, func(a model.Accessory) string { return util.EmptyDash(a.Manufacturer) }},
		{"REACHABLE", 9, func(a model.Accessory) string { return util.YesNo(a.Reachable) }},
		{"ID", 36, func(a model.Accessory) string { return a.ID }},
	})
}

func (p *Printer) Services(services []model.Service) error {
	return writeRecords(p, services, []column[model.Service]{
		{"NAME", 24, func(s model.Service) string { return s.Name }},
		{"TYPE", 20, func(s model.Service) string { return s.Type }},
		{"ACCESSORY", 24, func(s model.Service) string { return util.EmptyDash(s.Accessory) }},
		{"ID", 36, func(s model.Service) string { return s.ID }},
	})
}

func (p *Printer) ServiceGroups(groups []model.ServiceGroup) error {
	return writeRecords(p, groups, []column[model.ServiceGroup]{
		{"NAME", 24, func(g model.ServiceGroup) string { return g.Name }},
		{"ID", 36, func(g model.ServiceGroup) string { return g.ID }},
		{"SERVICES", 0, func(g model.ServiceGroup) string { return util.JoinOrDash(g.Services) }},
	})
}

func (p *Printer) ActionSets(sets []model.ActionSet) error {
	return writeRecords(p, sets, []column[model.ActionSet]{
		{"NAME", 24, func(a model.ActionSet) string { return a.Name }},
		{"TYPE", 16, func(a model.ActionSet) string { return util.EmptyDash(a.Type) }},
		{"ACTIONS", 8, func(a model.ActionSet) string { return strconv.Itoa(a.Actions) }},
		{"ID", 36, func(a model.ActionSet) string { return a.ID }},
	})
}

func (p *Printer) Triggers(triggers []model.Trigger) error {
	return writeRecords(p, triggers, []column[model.Trigger]{
		{"NAME", 24, func(t model.Trigger) string { return t.Name }},
		{"ENABLED", 8, func(t model.Trigger) string { return util.YesNo(t.Enabled) }},
		{"LAST FIRED", 20, func(t model.Trigger) string { return formatTime(t.LastFired) }},
		{"ACTION SETS", 24, func(t model.Trigger) string { return util.JoinOrDash(t.ActionSets) }},
		{"ID", 36, func(t model.Trigger) string { return t.ID }},
	})
}

// RoomChange reports the outcome of the room command.
func (p *Printer) RoomChange(op model.OperationRequest, resp *hkservice.RoomResponse) error {
	if p.json {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	verb := "added"
	if op.Operation == model.OperationRemove {
		verb = "removed"
	}
	if op.TargetsRoom() {
		fmt.Fprintf(p.w, "%s room %s id=%s\n", verb, resp.Room.Name, resp.Room.ID)
		return nil
	}
	prep := "to"
	if op.Operation == model.OperationRemove {
		prep = "from"
	}
	for _, a := range resp.Accessories {
		fmt.Fprintf(p.w, "%s %s %s room %s\n", verb, a.Name, prep, resp.Room.Name)
	}
	return nil
}
