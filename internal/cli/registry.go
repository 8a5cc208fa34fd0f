package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/treykane/hkctl/internal/hkservice"
)

// Conn is the remote surface available to handlers. *hkclient.Client
// implements it.
type Conn interface {
	ListHomes(ctx context.Context) (*hkservice.ListHomesResponse, error)
	ListRooms(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListRoomsResponse, error)
	ListZones(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListZonesResponse, error)
	ListAccessories(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListAccessoriesResponse, error)
	ListServices(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListServicesResponse, error)
	ListServiceGroups(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListServiceGroupsResponse, error)
	ListActionSets(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListActionSetsResponse, error)
	ListTriggers(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListTriggersResponse, error)
	ListTriggersInWindow(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListTriggersResponse, error)
	UpdateRoom(ctx context.Context, req *hkservice.RoomRequest) (*hkservice.RoomResponse, error)
	UpdateRoomAccessories(ctx context.Context, req *hkservice.RoomRequest) (*hkservice.RoomResponse, error)
}

// Handler runs one command against an established connection. Remote
// failures come back as *apperr.RemoteError, anything else is local.
type Handler interface {
	Execute(ctx context.Context, inv Invocation, conn Conn, out *Printer) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, inv Invocation, conn Conn, out *Printer) error

func (f HandlerFunc) Execute(ctx context.Context, inv Invocation, conn Conn, out *Printer) error {
	return f(ctx, inv, conn, out)
}

// Entry binds a command name to its handler.
type Entry struct {
	Name    string
	Handler Handler
}

// Registry maps command names to handlers. It is read-only once built.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry builds a registry. Names must be unique and non-empty.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{handlers: make(map[string]Handler, len(entries))}
	for _, e := range entries {
		if e.Name == "" || e.Handler == nil {
			return nil, fmt.Errorf("registry entry %q is incomplete", e.Name)
		}
		if _, dup := r.handlers[e.Name]; dup {
			return nil, fmt.Errorf("command %q registered twice", e.Name)
		}
		r.handlers[e.Name] = e.Handler
	}
	return r, nil
}

// Lookup returns the handler for name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// defaultRegistry is built once at startup.
var defaultRegistry = mustRegistry(
	// Enumerate stuff
	Entry{Name: "homes", Handler: homesCommand{}},
	Entry{Name: "rooms", Handler: roomsCommand{}},
	Entry{Name: "zones", Handler: zonesCommand{}},
	Entry{Name: "accessories", Handler: accessoriesCommand{}},
	Entry{Name: "services", Handler: servicesCommand{}},
	Entry{Name: "servicegroups", Handler: serviceGroupsCommand{}},
	Entry{Name: "actionsets", Handler: actionSetsCommand{}},
	Entry{Name: "triggers", Handler: triggersCommand{}},

	// Organize a home
	Entry{Name: "room", Handler: roomCommand{}},
)

// DefaultRegistry returns the registry holding every hkctl command.
func DefaultRegistry() *Registry { return defaultRegistry }

func mustRegistry(entries ...Entry) *Registry {
	r, err := NewRegistry(entries...)
	if err != nil {
		panic(err)
	}
	return r
}
