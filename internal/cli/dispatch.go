package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/treykane/hkctl/internal/apperr"
)

// ResultKind tags the outcome of a dispatch.
type ResultKind int

const (
	ResultOK ResultKind = iota
	ResultLocal
	ResultRemote
	ResultInternal
)

func (k ResultKind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultLocal:
		return "local error"
	case ResultRemote:
		return "remote error"
	case ResultInternal:
		return "internal error"
	}
	return fmt.Sprintf("ResultKind(%d)", int(k))
}

// Result is the classified outcome of one command.
type Result struct {
	Kind ResultKind
	Err  error
}

// ExitCode maps the result to a process exit status.
func (r Result) ExitCode() int {
	switch r.Kind {
	case ResultOK:
		return apperr.ExitOK
	case ResultInternal:
		return apperr.ExitInternal
	}
	return apperr.ExitFailure
}

// Classify tags err. It is the only place that inspects handler errors.
func Classify(err error) Result {
	if err == nil {
		return Result{Kind: ResultOK}
	}
	var re *apperr.RemoteError
	if errors.As(err, &re) {
		return Result{Kind: ResultRemote, Err: err}
	}
	var ie *apperr.InternalError
	if errors.As(err, &ie) {
		return Result{Kind: ResultInternal, Err: err}
	}
	return Result{Kind: ResultLocal, Err: err}
}

// Dispatcher routes an invocation to its handler.
type Dispatcher struct {
	Registry *Registry
	// Out receives command output, the usage text and server error reports.
	Out io.Writer
}

// NewDispatcher returns a dispatcher over the default registry.
func NewDispatcher(out io.Writer) *Dispatcher {
	return &Dispatcher{Registry: DefaultRegistry(), Out: out}
}

// Dispatch runs exactly one handler for inv. With no command it prints the
// usage text and succeeds without touching conn.
func (d *Dispatcher) Dispatch(ctx context.Context, inv Invocation, conn Conn) Result {
	if inv.Command == "" {
		fmt.Fprint(d.Out, inv.usage)
		return Result{Kind: ResultOK}
	}

	handler, ok := d.Registry.Lookup(inv.Command)
	if !ok {
		return Result{
			Kind: ResultInternal,
			Err:  &apperr.InternalError{Detail: fmt.Sprintf("command %q has no registered handler", inv.Command)},
		}
	}

	slog.Debug("dispatch", "command", inv.Command, "home", inv.Home)
	res := Classify(handler.Execute(ctx, inv, conn, NewPrinter(d.Out, inv.JSON)))
	if res.Kind == ResultRemote {
		fmt.Fprintln(d.Out, apperr.UserMessage(res.Err))
	}
	return res
}
