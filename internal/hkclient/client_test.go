package hkclient_test

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/treykane/hkctl/internal/apperr"
	"github.com/treykane/hkctl/internal/hkclient"
	"github.com/treykane/hkctl/internal/hkservice"
	"github.com/treykane/hkctl/internal/hktest"
	"github.com/treykane/hkctl/internal/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestTarget(t *testing.T) {
	if got := hkclient.Target("127.0.0.1", 55123); got != "passthrough:///127.0.0.1:55123" {
		t.Fatalf("unexpected target: %s", got)
	}
	if got := hkclient.Target("", 6000); got != "passthrough:///127.0.0.1:6000" {
		t.Fatalf("unexpected default-host target: %s", got)
	}
}

func TestListRoomsSendsFilter(t *testing.T) {
	srv := hktest.NewServer(hktest.Fixture())
	client := hktest.Start(t, srv)

	resp, err := client.ListRooms(context.Background(), &hkservice.ListRequest{Filter: model.Filter{Name: "Kitchen"}})
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	want := []model.Room{{ID: hktest.ID("Kitchen"), Name: "Kitchen"}}
	if diff := cmp.Diff(want, resp.Rooms); diff != "" {
		t.Fatalf("rooms mismatch (-want +got):\n%s", diff)
	}

	calls := srv.Calls()
	if len(calls) != 1 || calls[0].Method != hkservice.MethodListRooms {
		t.Fatalf("expected one ListRooms call, got %+v", calls)
	}
	if _, err := uuid.Parse(calls[0].RequestID); err != nil {
		t.Fatalf("expected uuid request id, got %q", calls[0].RequestID)
	}
}

func TestStatusBecomesRemoteError(t *testing.T) {
	srv := hktest.NewServer(hktest.Fixture())
	srv.FailWith(hkservice.MethodListHomes, status.Error(codes.Unavailable, "homed is degraded"))
	client := hktest.Start(t, srv)

	_, err := client.ListHomes(context.Background())
	var re *apperr.RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %T: %v", err, err)
	}
	if re.Code != "Unavailable" || re.Message != "homed is degraded" {
		t.Fatalf("unexpected remote error: %+v", re)
	}
}

func TestUnknownHomeIsRemoteError(t *testing.T) {
	client := hktest.Start(t, hktest.NewServer(hktest.Fixture()))
	_, err := client.ListRooms(context.Background(), &hkservice.ListRequest{Home: "Cabin"})
	if !apperr.IsRemote(err) {
		t.Fatalf("expected remote error, got %v", err)
	}
}

func TestCancelledCallStaysLocal(t *testing.T) {
	client := hktest.Start(t, hktest.NewServer(hktest.Fixture()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.ListHomes(ctx)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if apperr.IsRemote(err) {
		t.Fatalf("cancellation must not be reported as a server error: %v", err)
	}
}

func TestCreateRejectsInvalidPort(t *testing.T) {
	_, err := hkclient.Create(context.Background(), "127.0.0.1", 0)
	var ce *apperr.ConnectionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConnectionError, got %v", err)
	}
}

func TestCreateFailsWhenNothingListens(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := uint16(lis.Addr().(*net.TCPAddr).Port)
	_ = lis.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = hkclient.Create(ctx, "127.0.0.1", port)
	var ce *apperr.ConnectionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConnectionError, got %v", err)
	}
	if ce.Target != hkclient.Target("127.0.0.1", port) {
		t.Fatalf("unexpected target: %q", ce.Target)
	}
}
