package cli

import (
	"slices"

	"github.com/treykane/hkctl/internal/hkservice"
	"github.com/treykane/hkctl/internal/model"
)

// FilterFromArgs copies the filter options of a command into a Filter.
// Patterns are passed through as typed.
func FilterFromArgs(a CommandArgs) model.Filter {
	return model.Filter{
		Name:    a.Name,
		Room:    a.Room,
		Zone:    a.Zone,
		Types:   slices.Clone(a.Types),
		Enabled: a.Enabled,
		After:   a.After,
		Before:  a.Before,
	}
}

// OperationRequestFromArgs builds the room mutation from the positionals.
func OperationRequestFromArgs(a CommandArgs) model.OperationRequest {
	return model.OperationRequest{
		Operation:   a.Operation,
		Target:      a.Target,
		Accessories: slices.Clone(a.Accessories),
	}
}

func listRequest(inv Invocation) *hkservice.ListRequest {
	return &hkservice.ListRequest{Home: inv.Home, Filter: FilterFromArgs(inv.Args)}
}
