package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/treykane/hkctl/internal/appconfig"
	"github.com/treykane/hkctl/internal/apperr"
	"github.com/treykane/hkctl/internal/hkclient"
	"github.com/treykane/hkctl/internal/logging"
	"google.golang.org/grpc"
)

// Run executes one hkctl invocation: parse, connect, dispatch. It returns
// the process exit code; all user-facing output has been written by then.
// Extra dial options are passed to the connection manager.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, dialOpts ...grpc.DialOption) int {
	inv, err := Parse(args, stdout, stderr)
	if err != nil {
		return apperr.ExitCode(err)
	}
	if inv == nil {
		return apperr.ExitOK
	}
	logging.Setup(stderr, inv.Verbosity)

	d := NewDispatcher(stdout)
	if inv.Command == "" {
		return d.Dispatch(ctx, *inv, nil).ExitCode()
	}

	cfg, err := appconfig.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: load config: %v\n", err)
		return apperr.ExitFailure
	}
	resolved := inv.WithHome(cfg.Home)
	port, err := cfg.ResolvePort(inv.Port)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return apperr.ExitFailure
	}

	client, err := hkclient.Create(ctx, cfg.Host, port, dialOpts...)
	if err != nil {
		slog.Debug("connection failed", "error", apperr.DebugMessage(err))
		fmt.Fprintf(stderr, "Error: %s\n", apperr.UserMessage(err))
		return apperr.ExitCode(err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close connection", "error", err)
		}
	}()

	res := d.Dispatch(ctx, resolved, client)
	switch res.Kind {
	case ResultLocal:
		fmt.Fprintf(stderr, "Error: %s\n", apperr.UserMessage(res.Err))
	case ResultInternal:
		fmt.Fprintf(stderr, "hkctl: %v\n", res.Err)
	}
	return res.ExitCode()
}
