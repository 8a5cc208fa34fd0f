package cli

import (
	"context"
	"fmt"

	"github.com/treykane/hkctl/internal/hkservice"
)

type homesCommand struct{}

func (homesCommand) Execute(ctx context.Context, inv Invocation, conn Conn, out *Printer) error {
	resp, err := conn.ListHomes(ctx)
	if err != nil {
		return fmt.Errorf("list homes: %w", err)
	}
	return out.Homes(resp.Homes)
}

type roomsCommand struct{}

func (roomsCommand) Execute(ctx context.Context, inv Invocation, conn Conn, out *Printer) error {
	resp, err := conn.ListRooms(ctx, listRequest(inv))
	if err != nil {
		return fmt.Errorf("list rooms: %w", err)
	}
	return out.Rooms(resp.Rooms)
}

type zonesCommand struct{}

func (zonesCommand) Execute(ctx context.Context, inv Invocation, conn Conn, out *Printer) error {
	resp, err := conn.ListZones(ctx, listRequest(inv))
	if err != nil {
		return fmt.Errorf("list zones: %w", err)
	}
	return out.Zones(resp.Zones)
}

type accessoriesCommand struct{}

func (accessoriesCommand) Execute(ctx context.Context, inv Invocation, conn Conn, out *Printer) error {
	resp, err := conn.ListAccessories(ctx, listRequest(inv))
	if err != nil {
		return fmt.Errorf("list accessories: %w", err)
	}
	return out.Accessories(resp.Accessories)
}

type servicesCommand struct{}

func (servicesCommand) Execute(ctx context.Context, inv Invocation, conn Conn, out *Printer) error {
	resp, err := conn.ListServices(ctx, listRequest(inv))
	if err != nil {
		return fmt.Errorf("list services: %w", err)
	}
	return out.Services(resp.Services)
}

type serviceGroupsCommand struct{}

func (serviceGroupsCommand) Execute(ctx context.Context, inv Invocation, conn Conn, out *Printer) error {
	resp, err := conn.ListServiceGroups(ctx, listRequest(inv))
	if err != nil {
		return fmt.Errorf("list service groups: %w", err)
	}
	return out.ServiceGroups(resp.ServiceGroups)
}

type actionSetsCommand struct{}

func (actionSetsCommand) Execute(ctx context.Context, inv Invocation, conn Conn, out *Printer) error {
	resp, err := conn.ListActionSets(ctx, listRequest(inv))
	if err != nil {
		return fmt.Errorf("list action sets: %w", err)
	}
	return out.ActionSets(resp.ActionSets)
}

// triggersCommand asks for the time-window listing only when --after or
// --before bounds the fire time.
type triggersCommand struct{}

func (triggersCommand) Execute(ctx context.Context, inv Invocation, conn Conn, out *Printer) error {
	req := listRequest(inv)
	var (
		resp *hkservice.ListTriggersResponse
		err  error
	)
	if req.Filter.HasWindow() {
		resp, err = conn.ListTriggersInWindow(ctx, req)
	} else {
		resp, err = conn.ListTriggers(ctx, req)
	}
	if err != nil {
		return fmt.Errorf("list triggers: %w", err)
	}
	return out.Triggers(resp.Triggers)
}

// roomCommand adds or removes the room itself when no accessories are
// given, otherwise it moves the accessories into or out of the room.
type roomCommand struct{}

func (roomCommand) Execute(ctx context.Context, inv Invocation, conn Conn, out *Printer) error {
	op := OperationRequestFromArgs(inv.Args)
	req := &hkservice.RoomRequest{Home: inv.Home, Request: op}
	var (
		resp *hkservice.RoomResponse
		err  error
	)
	if op.TargetsRoom() {
		resp, err = conn.UpdateRoom(ctx, req)
	} else {
		resp, err = conn.UpdateRoomAccessories(ctx, req)
	}
	if err != nil {
		return fmt.Errorf("%s room %s: %w", op.Operation, op.Target, err)
	}
	return out.RoomChange(op, resp)
}
