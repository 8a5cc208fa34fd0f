// Package hktest provides an in-memory automation service for tests. It
// speaks the hkservice contract over an in-process bufconn listener.
package hktest

import (
	"context"
	"net"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/treykane/hkctl/internal/hkclient"
	"github.com/treykane/hkctl/internal/hkservice"
	"github.com/treykane/hkctl/internal/model"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// Home is one home of the fixture with everything it contains.
type Home struct {
	model.Home
	Rooms         []model.Room
	Zones         []model.Zone
	Accessories   []model.Accessory
	Services      []model.Service
	ServiceGroups []model.ServiceGroup
	ActionSets    []model.ActionSet
	Triggers      []model.Trigger
}

// Call records one RPC received by the server.
type Call struct {
	Method    string
	RequestID string
	Request   any
}

// Server implements hkservice.HomeKitServer over a fixture.
type Server struct {
	mu       sync.Mutex
	homes    []*Home
	calls    []Call
	failures map[string]error
}

// NewServer returns a server holding homes. The first home flagged Primary
// answers requests that do not name a home.
func NewServer(homes ...*Home) *Server {
	return &Server{homes: homes, failures: map[string]error{}}
}

// ID derives a stable UUID for a fixture entity name.
func ID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// Fixture returns a primary home with two rooms, a zone, accessories,
// services, a service group, action sets and triggers.
func Fixture() *Home {
	fired := time.Date(2026, 10, 1, 7, 0, 0, 0, time.UTC)
	return &Home{
		Home: model.Home{ID: ID("Main House"), Name: "Main House", Primary: true},
		Rooms: []model.Room{
			{ID: ID("Kitchen"), Name: "Kitchen"},
			{ID: ID("Garage"), Name: "Garage"},
		},
		Zones: []model.Zone{
			{ID: ID("Downstairs"), Name: "Downstairs", Rooms: []string{"Kitchen", "Garage"}},
		},
		Accessories: []model.Accessory{
			{ID: ID("Ceiling Light"), Name: "Ceiling Light", Room: "Kitchen", Category: "lightbulb", Manufacturer: "Acme", Reachable: true},
			{ID: ID("Sensor1"), Name: "Sensor1", Category: "sensor", Reachable: true},
			{ID: ID("Sensor2"), Name: "Sensor2", Category: "sensor"},
			{ID: ID("Door Opener"), Name: "Door Opener", Room: "Garage", Category: "garage-door-opener", Reachable: true},
		},
		Services: []model.Service{
			{ID: ID("Ceiling Light.lightbulb"), Name: "Ceiling Light", Type: "lightbulb", Accessory: "Ceiling Light"},
			{ID: ID("Sensor1.motion"), Name: "Motion", Type: "motion-sensor", Accessory: "Sensor1"},
			{ID: ID("Door Opener.door"), Name: "Door", Type: "garage-door-opener", Accessory: "Door Opener"},
		},
		ServiceGroups: []model.ServiceGroup{
			{ID: ID("All Lights"), Name: "All Lights", Services: []string{"Ceiling Light"}},
		},
		ActionSets: []model.ActionSet{
			{ID: ID("Good Morning"), Name: "Good Morning", Type: "wake-up", Actions: 2},
			{ID: ID("Leave Home"), Name: "Leave Home", Type: "user-defined", Actions: 3},
		},
		Triggers: []model.Trigger{
			{ID: ID("Sunrise"), Name: "Sunrise", Enabled: true, LastFired: &fired, ActionSets: []string{"Good Morning"}},
			{ID: ID("Vacation"), Name: "Vacation", Enabled: false, ActionSets: []string{"Leave Home"}},
		},
	}
}

// Start serves srv on an in-process listener for the duration of the test
// and returns a connected client.
func Start(t testing.TB, srv *Server) *hkclient.Client {
	t.Helper()
	dialer := Listen(t, srv)
	client, err := hkclient.Create(context.Background(), "127.0.0.1", 55123, dialer)
	if err != nil {
		t.Fatalf("connect to test server: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// Listen serves srv on an in-process listener and returns the dial option
// that routes hkclient.Create to it.
func Listen(t testing.TB, srv *Server) grpc.DialOption {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	gs := grpc.NewServer()
	hkservice.RegisterHomeKitServer(gs, srv)
	go func() { _ = gs.Serve(lis) }()
	t.Cleanup(func() {
		gs.Stop()
		_ = lis.Close()
	})
	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})
}

// FailWith makes every call to method return err.
func (s *Server) FailWith(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = err
}

// Calls returns the recorded calls in arrival order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// Home returns the home named name, or nil.
func (s *Server) Home(name string) *Home {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.homes {
		if h.Name == name {
			return h
		}
	}
	return nil
}

// record logs the call and returns the configured failure, if any.
// The caller must hold s.mu.
func (s *Server) record(ctx context.Context, method string, req any) error {
	var requestID string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(hkclient.RequestIDHeader); len(v) > 0 {
			requestID = v[0]
		}
	}
	s.calls = append(s.calls, Call{Method: method, RequestID: requestID, Request: req})
	return s.failures[method]
}

func (s *Server) home(selector string) (*Home, error) {
	for _, h := range s.homes {
		if selector == "" && h.Primary {
			return h, nil
		}
		if selector != "" && (strings.EqualFold(h.Name, selector) || h.ID == selector) {
			return h, nil
		}
	}
	if selector == "" {
		return nil, status.Error(codes.FailedPrecondition, "no primary home")
	}
	return nil, status.Errorf(codes.NotFound, "home %q not found", selector)
}

// matches is a case-insensitive substring match; an empty pattern matches all.
func matches(pattern string, values ...string) bool {
	if pattern == "" {
		return true
	}
	p := strings.ToLower(pattern)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), p) {
			return true
		}
	}
	return false
}

func (s *Server) ListHomes(ctx context.Context, req *hkservice.ListHomesRequest) (*hkservice.ListHomesResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(ctx, hkservice.MethodListHomes, req); err != nil {
		return nil, err
	}
	out := &hkservice.ListHomesResponse{}
	for _, h := range s.homes {
		out.Homes = append(out.Homes, h.Home)
	}
	return out, nil
}

func (s *Server) ListRooms(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListRoomsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.begin(ctx, hkservice.MethodListRooms, req)
	if err != nil {
		return nil, err
	}
	out := &hkservice.ListRoomsResponse{}
	for _, r := range h.Rooms {
		if matches(req.Filter.Name, r.Name, r.ID) {
			out.Rooms = append(out.Rooms, r)
		}
	}
	return out, nil
}

func (s *Server) ListZones(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListZonesResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.begin(ctx, hkservice.MethodListZones, req)
	if err != nil {
		return nil, err
	}
	out := &hkservice.ListZonesResponse{}
	for _, z := range h.Zones {
		if matches(req.Filter.Name, z.Name, z.ID) && matches(req.Filter.Room, z.Rooms...) {
			out.Zones = append(out.Zones, z)
		}
	}
	return out, nil
}

func (s *Server) ListAccessories(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListAccessoriesResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.begin(ctx, hkservice.MethodListAccessories, req)
	if err != nil {
		return nil, err
	}
	out := &hkservice.ListAccessoriesResponse{}
	for _, a := range h.Accessories {
		if !matches(req.Filter.Name, a.Name, a.ID) || !matches(req.Filter.Room, a.Room) {
			continue
		}
		if req.Filter.Zone != "" && !inZone(h, req.Filter.Zone, a.Room) {
			continue
		}
		out.Accessories = append(out.Accessories, a)
	}
	return out, nil
}

func inZone(h *Home, zone, room string) bool {
	for _, z := range h.Zones {
		if matches(zone, z.Name, z.ID) && slices.Contains(z.Rooms, room) {
			return true
		}
	}
	return false
}

func (s *Server) ListServices(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListServicesResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.begin(ctx, hkservice.MethodListServices, req)
	if err != nil {
		return nil, err
	}
	out := &hkservice.ListServicesResponse{}
	for _, svc := range h.Services {
		if !matches(req.Filter.Name, svc.Name, svc.ID) {
			continue
		}
		if len(req.Filter.Types) > 0 && !slices.Contains(req.Filter.Types, svc.Type) {
			continue
		}
		out.Services = append(out.Services, svc)
	}
	return out, nil
}

func (s *Server) ListServiceGroups(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListServiceGroupsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.begin(ctx, hkservice.MethodListServiceGroups, req)
	if err != nil {
		return nil, err
	}
	out := &hkservice.ListServiceGroupsResponse{}
	for _, g := range h.ServiceGroups {
		if matches(req.Filter.Name, g.Name, g.ID) {
			out.ServiceGroups = append(out.ServiceGroups, g)
		}
	}
	return out, nil
}

func (s *Server) ListActionSets(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListActionSetsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.begin(ctx, hkservice.MethodListActionSets, req)
	if err != nil {
		return nil, err
	}
	out := &hkservice.ListActionSetsResponse{}
	for _, a := range h.ActionSets {
		if matches(req.Filter.Name, a.Name, a.ID) {
			out.ActionSets = append(out.ActionSets, a)
		}
	}
	return out, nil
}

func (s *Server) ListTriggers(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListTriggersResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.begin(ctx, hkservice.MethodListTriggers, req)
	if err != nil {
		return nil, err
	}
	return &hkservice.ListTriggersResponse{Triggers: filterTriggers(h, req.Filter, false)}, nil
}

func (s *Server) ListTriggersInWindow(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListTriggersResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.begin(ctx, hkservice.MethodListTriggersInWindow, req)
	if err != nil {
		return nil, err
	}
	if req.Filter.After != nil && req.Filter.Before != nil && !req.Filter.After.Before(*req.Filter.Before) {
		return nil, status.Error(codes.InvalidArgument, "after must be earlier than before")
	}
	return &hkservice.ListTriggersResponse{Triggers: filterTriggers(h, req.Filter, true)}, nil
}

func filterTriggers(h *Home, f model.Filter, window bool) []model.Trigger {
	var out []model.Trigger
	for _, tr := range h.Triggers {
		if !matches(f.Name, tr.Name, tr.ID) {
			continue
		}
		if (f.Enabled == model.EnabledTrue && !tr.Enabled) || (f.Enabled == model.EnabledFalse && tr.Enabled) {
			continue
		}
		if window {
			if tr.LastFired == nil {
				continue
			}
			if f.After != nil && tr.LastFired.Before(*f.After) {
				continue
			}
			if f.Before != nil && tr.LastFired.After(*f.Before) {
				continue
			}
		}
		out = append(out, tr)
	}
	return out
}

func (s *Server) UpdateRoom(ctx context.Context, req *hkservice.RoomRequest) (*hkservice.RoomResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(ctx, hkservice.MethodUpdateRoom, req); err != nil {
		return nil, err
	}
	h, err := s.home(req.Home)
	if err != nil {
		return nil, err
	}
	op := req.Request
	idx := roomIndex(h, op.Target)
	switch op.Operation {
	case model.OperationAdd:
		if idx >= 0 {
			return nil, status.Errorf(codes.AlreadyExists, "room %q already exists", op.Target)
		}
		room := model.Room{ID: ID(op.Target), Name: op.Target}
		h.Rooms = append(h.Rooms, room)
		return &hkservice.RoomResponse{Room: room}, nil
	case model.OperationRemove:
		if idx < 0 {
			return nil, status.Errorf(codes.NotFound, "room %q not found", op.Target)
		}
		room := h.Rooms[idx]
		h.Rooms = slices.Delete(h.Rooms, idx, idx+1)
		for i := range h.Accessories {
			if h.Accessories[i].Room == room.Name {
				h.Accessories[i].Room = ""
			}
		}
		return &hkservice.RoomResponse{Room: room}, nil
	}
	return nil, status.Errorf(codes.InvalidArgument, "unknown operation %q", op.Operation)
}

func (s *Server) UpdateRoomAccessories(ctx context.Context, req *hkservice.RoomRequest) (*hkservice.RoomResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(ctx, hkservice.MethodUpdateRoomAccessories, req); err != nil {
		return nil, err
	}
	h, err := s.home(req.Home)
	if err != nil {
		return nil, err
	}
	op := req.Request
	idx := roomIndex(h, op.Target)
	if idx < 0 {
		return nil, status.Errorf(codes.NotFound, "room %q not found", op.Target)
	}
	room := h.Rooms[idx]

	targets := make([]int, 0, len(op.Accessories))
	for _, name := range op.Accessories {
		ai := slices.IndexFunc(h.Accessories, func(a model.Accessory) bool {
			return strings.EqualFold(a.Name, name) || a.ID == name
		})
		if ai < 0 {
			return nil, status.Errorf(codes.NotFound, "accessory %q not found", name)
		}
		if op.Operation == model.OperationRemove && h.Accessories[ai].Room != room.Name {
			return nil, status.Errorf(codes.FailedPrecondition, "accessory %q is not in room %q", name, room.Name)
		}
		targets = append(targets, ai)
	}

	out := &hkservice.RoomResponse{Room: room}
	for _, ai := range targets {
		switch op.Operation {
		case model.OperationAdd:
			h.Accessories[ai].Room = room.Name
		case model.OperationRemove:
			h.Accessories[ai].Room = ""
		default:
			return nil, status.Errorf(codes.InvalidArgument, "unknown operation %q", op.Operation)
		}
		out.Accessories = append(out.Accessories, h.Accessories[ai])
	}
	return out, nil
}

func roomIndex(h *Home, nameOrID string) int {
	return slices.IndexFunc(h.Rooms, func(r model.Room) bool {
		return strings.EqualFold(r.Name, nameOrID) || r.ID == nameOrID
	})
}

// begin records a filtered listing call and resolves its home.
// The caller must hold s.mu.
func (s *Server) begin(ctx context.Context, method string, req *hkservice.ListRequest) (*Home, error) {
	if err := s.record(ctx, method, req); err != nil {
		return nil, err
	}
	return s.home(req.Home)
}
