// Package hkclient opens the single connection hkctl makes to the automation
// service and exposes one typed method per remote operation.
//
// Create performs the transport handshake eagerly, so a returned Client is
// known to be connected. Failures to build the endpoint or complete the
// handshake are reported as *apperr.ConnectionError.
//
// Every RPC error that carries a gRPC status is converted to
// *apperr.RemoteError here, at the client boundary; callers never inspect
// gRPC types. Errors caused by the caller's context (interrupt) stay local.
package hkclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/treykane/hkctl/internal/apperr"
	"github.com/treykane/hkctl/internal/hkservice"
	"github.com/treykane/hkctl/internal/util"
	"google.golang.org/grpc"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Scheme is the fixed resolver scheme of the endpoint. The endpoint path is
// the authority itself, so no name resolution or service path is involved.
const Scheme = "passthrough"

// RequestIDHeader carries a per-call id for correlating client and server logs.
const RequestIDHeader = "x-request-id"

// Client is the connection handle. It is owned by one invocation and is
// not meant to be shared between concurrent commands.
type Client struct {
	conn   *grpc.ClientConn
	target string
}

// Target builds the endpoint for host:port.
func Target(host string, port uint16) string {
	return Scheme + ":///" + util.Authority(host, port)
}

// Create connects to the automation service at host:port and waits for the
// handshake to complete. Extra dial options are appended after the defaults
// (plaintext transport, JSON codec).
func Create(ctx context.Context, host string, port uint16, opts ...grpc.DialOption) (*Client, error) {
	target := Target(host, port)
	if err := util.ValidatePort(int(port)); err != nil {
		return nil, &apperr.ConnectionError{Target: target, Err: err}
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(hkservice.CodecName)),
	}, opts...)
	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, &apperr.ConnectionError{Target: target, Err: err}
	}

	slog.Info("connecting", "target", target)
	if err := awaitReady(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, &apperr.ConnectionError{Target: target, Err: err}
	}
	slog.Debug("connected", "target", target)
	return &Client{conn: conn, target: target}, nil
}

// awaitReady drives the channel out of idle and returns once it is ready.
// The first transient failure ends the wait; there is no retry.
func awaitReady(ctx context.Context, conn *grpc.ClientConn) error {
	conn.Connect()
	for {
		state := conn.GetState()
		switch state {
		case connectivity.Ready:
			return nil
		case connectivity.TransientFailure:
			return errors.New("transport handshake failed")
		case connectivity.Shutdown:
			return errors.New("connection shut down")
		}
		if !conn.WaitForStateChange(ctx, state) {
			return ctx.Err()
		}
	}
}

// Target returns the endpoint this client is connected to.
func (c *Client) Target() string { return c.target }

// Close releases the connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) ListHomes(ctx context.Context) (*hkservice.ListHomesResponse, error) {
	out := new(hkservice.ListHomesResponse)
	return out, c.invoke(ctx, hkservice.MethodListHomes, &hkservice.ListHomesRequest{}, out)
}

func (c *Client) ListRooms(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListRoomsResponse, error) {
	out := new(hkservice.ListRoomsResponse)
	return out, c.invoke(ctx, hkservice.MethodListRooms, req, out)
}

func (c *Client) ListZones(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListZonesResponse, error) {
	out := new(hkservice.ListZonesResponse)
	return out, c.invoke(ctx, hkservice.MethodListZones, req, out)
}

func (c *Client) ListAccessories(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListAccessoriesResponse, error) {
	out := new(hkservice.ListAccessoriesResponse)
	return out, c.invoke(ctx, hkservice.MethodListAccessories, req, out)
}

func (c *Client) ListServices(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListServicesResponse, error) {
	out := new(hkservice.ListServicesResponse)
	return out, c.invoke(ctx, hkservice.MethodListServices, req, out)
}

func (c *Client) ListServiceGroups(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListServiceGroupsResponse, error) {
	out := new(hkservice.ListServiceGroupsResponse)
	return out, c.invoke(ctx, hkservice.MethodListServiceGroups, req, out)
}

func (c *Client) ListActionSets(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListActionSetsResponse, error) {
	out := new(hkservice.ListActionSetsResponse)
	return out, c.invoke(ctx, hkservice.MethodListActionSets, req, out)
}

func (c *Client) ListTriggers(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListTriggersResponse, error) {
	out := new(hkservice.ListTriggersResponse)
	return out, c.invoke(ctx, hkservice.MethodListTriggers, req, out)
}

func (c *Client) ListTriggersInWindow(ctx context.Context, req *hkservice.ListRequest) (*hkservice.ListTriggersResponse, error) {
	out := new(hkservice.ListTriggersResponse)
	return out, c.invoke(ctx, hkservice.MethodListTriggersInWindow, req, out)
}

func (c *Client) UpdateRoom(ctx context.Context, req *hkservice.RoomRequest) (*hkservice.RoomResponse, error) {
	out := new(hkservice.RoomResponse)
	return out, c.invoke(ctx, hkservice.MethodUpdateRoom, req, out)
}

func (c *Client) UpdateRoomAccessories(ctx context.Context, req *hkservice.RoomRequest) (*hkservice.RoomResponse, error) {
	out := new(hkservice.RoomResponse)
	return out, c.invoke(ctx, hkservice.MethodUpdateRoomAccessories, req, out)
}

func (c *Client) invoke(ctx context.Context, method string, in, out any) error {
	requestID := uuid.NewString()
	ctx = metadata.AppendToOutgoingContext(ctx, RequestIDHeader, requestID)
	slog.Debug("rpc", "method", method, "request_id", requestID)
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		slog.Debug("rpc failed", "method", method, "request_id", requestID, "error", err)
		return classify(ctx, err)
	}
	return nil
}

// classify converts gRPC status errors into *apperr.RemoteError.
func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("request aborted: %w", ctx.Err())
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	return &apperr.RemoteError{Code: st.Code().String(), Message: st.Message()}
}
