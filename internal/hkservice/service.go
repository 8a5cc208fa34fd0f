// Package hkservice describes the RPC contract of the HomeKit automation
// service: method names, request/response messages and the server-side
// service descriptor.
//
// Messages travel as JSON inside gRPC frames (content-subtype "json"), not
// as protobuf. The method paths match a protobuf HomeKitService server, but
// such a server cannot decode these bodies; both ends must register the
// json codec from this package.
package hkservice

import (
	"context"

	"github.com/treykane/hkctl/internal/model"
	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "hkservice.HomeKitService"

// Full method names.
const (
	MethodListHomes             = "/" + ServiceName + "/ListHomes"
	MethodListRooms             = "/" + ServiceName + "/ListRooms"
	MethodListZones             = "/" + ServiceName + "/ListZones"
	MethodListAccessories       = "/" + ServiceName + "/ListAccessories"
	MethodListServices          = "/" + ServiceName + "/ListServices"
	MethodListServiceGroups     = "/" + ServiceName + "/ListServiceGroups"
	MethodListActionSets        = "/" + ServiceName + "/ListActionSets"
	MethodListTriggers          = "/" + ServiceName + "/ListTriggers"
	MethodListTriggersInWindow  = "/" + ServiceName + "/ListTriggersInWindow"
	MethodUpdateRoom            = "/" + ServiceName + "/UpdateRoom"
	MethodUpdateRoomAccessories = "/" + ServiceName + "/UpdateRoomAccessories"
)

type ListHomesRequest struct{}

type ListHomesResponse struct {
	Homes []model.Home `json:"homes"`
}

// ListRequest is shared by every filtered listing.
// An empty Home selects the primary home.
type ListRequest struct {
	Home   string       `json:"home,omitempty"`
	Filter model.Filter `json:"filter"`
}

type ListRoomsResponse struct {
	Rooms []model.Room `json:"rooms"`
}

type ListZonesResponse struct {
	Zones []model.Zone `json:"zones"`
}

type ListAccessoriesResponse struct {
	Accessories []model.Accessory `json:"accessories"`
}

type ListServicesResponse struct {
	Services []model.Service `json:"services"`
}

type ListServiceGroupsResponse struct {
	ServiceGroups []model.ServiceGroup `json:"service_groups"`
}

type ListActionSetsResponse struct {
	ActionSets []model.ActionSet `json:"action_sets"`
}

type ListTriggersResponse struct {
	Triggers []model.Trigger `json:"triggers"`
}

type RoomRequest struct {
	Home    string                 `json:"home,omitempty"`
	Request model.OperationRequest `json:"request"`
}

type RoomResponse struct {
	Room        model.Room        `json:"room"`
	Accessories []model.Accessory `json:"accessories,omitempty"`
}

// HomeKitServer is implemented by the automation service.
type HomeKitServer interface {
	ListHomes(context.Context, *ListHomesRequest) (*ListHomesResponse, error)
	ListRooms(context.Context, *ListRequest) (*ListRoomsResponse, error)
	ListZones(context.Context, *ListRequest) (*ListZonesResponse, error)
	ListAccessories(context.Context, *ListRequest) (*ListAccessoriesResponse, error)
	ListServices(context.Context, *ListRequest) (*ListServicesResponse, error)
	ListServiceGroups(context.Context, *ListRequest) (*ListServiceGroupsResponse, error)
	ListActionSets(context.Context, *ListRequest) (*ListActionSetsResponse, error)
	ListTriggers(context.Context, *ListRequest) (*ListTriggersResponse, error)
	ListTriggersInWindow(context.Context, *ListRequest) (*ListTriggersResponse, error)
	UpdateRoom(context.Context, *RoomRequest) (*RoomResponse, error)
	UpdateRoomAccessories(context.Context, *RoomRequest) (*RoomResponse, error)
}

// ServiceDesc registers a HomeKitServer with a *grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HomeKitServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodListHomes, HomeKitServer.ListHomes),
		unary(MethodListRooms, HomeKitServer.ListRooms),
		unary(MethodListZones, HomeKitServer.ListZones),
		unary(MethodListAccessories, HomeKitServer.ListAccessories),
		unary(MethodListServices, HomeKitServer.ListServices),
		unary(MethodListServiceGroups, HomeKitServer.ListServiceGroups),
		unary(MethodListActionSets, HomeKitServer.ListActionSets),
		unary(MethodListTriggers, HomeKitServer.ListTriggers),
		unary(MethodListTriggersInWindow, HomeKitServer.ListTriggersInWindow),
		unary(MethodUpdateRoom, HomeKitServer.UpdateRoom),
		unary(MethodUpdateRoomAccessories, HomeKitServer.UpdateRoomAccessories),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hkservice.proto",
}

// RegisterHomeKitServer attaches srv to s.
func RegisterHomeKitServer(s grpc.ServiceRegistrar, srv HomeKitServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unary[Req, Resp any](fullMethod string, call func(HomeKitServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: fullMethod[len(ServiceName)+2:],
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(HomeKitServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(HomeKitServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
