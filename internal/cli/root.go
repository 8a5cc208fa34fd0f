// Package cli provides the command-line interface for hkctl.
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/treykane/hkctl/internal/apperr"
	"github.com/treykane/hkctl/internal/model"
)

// Version is reported by --version. It is set at build time via ldflags.
var Version = "dev"

// Invocation is the parsed command line. It is built once by Parse and
// consumed by exactly one handler.
type Invocation struct {
	Verbosity int
	// Port is nil when --port is absent.
	Port *uint16
	Home string
	JSON bool
	// Command is empty when no subcommand was named.
	Command string
	Args    CommandArgs

	usage string
}

// WithHome returns a copy of the invocation that selects home when no
// --home flag was given.
func (inv Invocation) WithHome(home string) Invocation {
	if inv.Home == "" {
		inv.Home = home
	}
	return inv
}

type globalOptions struct {
	verbosity int
	port      *uint16
	home      string
	json      bool
}

// Parse turns argv (without the program name) into an Invocation.
//
// It returns (nil, nil) when cobra already answered the request itself
// (--help, --version, completion). Errors are *apperr.UsageError and have
// been printed to stderr together with the usage of the failing command.
func Parse(args []string, stdout, stderr io.Writer) (*Invocation, error) {
	if args == nil {
		args = []string{}
	}
	var inv *Invocation
	root := newRootCommand(func(g globalOptions, name string, ca CommandArgs, usage string) {
		inv = &Invocation{
			Verbosity: g.verbosity,
			Port:      g.port,
			Home:      g.home,
			JSON:      g.json,
			Command:   name,
			Args:      ca,
			usage:     usage,
		}
	})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteC()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprint(stderr, cmd.UsageString())
		if apperr.IsUsage(err) {
			return nil, err
		}
		return nil, &apperr.UsageError{Err: err}
	}
	return inv, nil
}

type captureFunc func(g globalOptions, name string, args CommandArgs, usage string)

// newRootCommand renders the grammar into a fresh cobra tree. Leaf commands
// only record what was parsed; nothing runs until the dispatcher is called.
func newRootCommand(capture captureFunc) *cobra.Command {
	var g globalOptions
	root := &cobra.Command{
		Use:           "hkctl",
		Short:         "Command line porcelain for HomeKit",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			capture(g, "", CommandArgs{}, cmd.Short+"\n\n"+cmd.UsageString())
			return nil
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &apperr.UsageError{Err: err}
	})
	// Unknown help topics are usage errors like unknown commands.
	root.SetHelpCommand(&cobra.Command{
		Use:   "help [command]",
		Short: "Help about any command",
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _, err := cmd.Root().Find(args)
			if err != nil || target == nil {
				return apperr.NewUsageError("unknown help topic %q", strings.Join(args, " "))
			}
			return target.Help()
		},
	})

	pf := root.PersistentFlags()
	pf.CountVarP(&g.verbosity, "verbose", "v", "Sets verbosity (repeatable)")
	pf.VarP(portValue{dst: &g.port}, "port", "p", "Local port to connect to")
	pf.Var(stringValue{dst: &g.home, typ: "NAME OR UUID"}, "home", "Specify a home. Defaults to the primary home")
	pf.BoolVar(&g.json, "json", false, "Print records as JSON")

	for _, spec := range grammar {
		root.AddCommand(newSubcommand(spec, &g, capture))
	}
	return root
}

func newSubcommand(spec commandSpec, g *globalOptions, capture captureFunc) *cobra.Command {
	var ca CommandArgs
	cmd := &cobra.Command{
		Use:   spec.use(),
		Short: spec.short,
		Long:  spec.long,
		Args: func(_ *cobra.Command, args []string) error {
			return spec.validate(args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := spec.bind(args, &ca); err != nil {
				return &apperr.UsageError{Err: err}
			}
			capture(*g, spec.name, ca, cmd.UsageString())
			return nil
		},
	}

	fs := cmd.Flags()
	for _, opt := range spec.options {
		switch dst := opt.field(&ca).(type) {
		case *string:
			fs.VarP(stringValue{dst: dst, typ: opt.valueName}, opt.name, opt.short, opt.usage)
		case *[]string:
			fs.VarP(stringsValue{dst: dst, typ: opt.valueName}, opt.name, opt.short, opt.usage)
		case *model.Enabled:
			fs.VarP(enabledValue{dst: dst}, opt.name, opt.short, opt.usage)
			_ = cmd.RegisterFlagCompletionFunc(opt.name, cobra.FixedCompletions(model.EnabledChoices, cobra.ShellCompDirectiveNoFileComp))
		case **time.Time:
			fs.VarP(timeValue{dst: dst}, opt.name, opt.short, opt.usage)
		default:
			panic(fmt.Sprintf("option %q of %q has unsupported field type %T", opt.name, spec.name, dst))
		}
	}
	if len(spec.positionals) > 0 && len(spec.positionals[0].choices) > 0 {
		cmd.ValidArgs = spec.positionals[0].choices
	}
	return cmd
}
