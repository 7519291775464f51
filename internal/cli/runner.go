package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/ui"
)

// ErrUsage marks errors caused by how the command was invoked.
var ErrUsage = errors.New("usage")

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Options wire the CLI to its streams. Nil fields use the process streams.
type Options struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func (o Options) withDefaults() Options {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	return o
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options) int {
	a := &app{opt: opt.withDefaults()}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(a.opt.In)
	root.SetOut(a.opt.Out)
	root.SetErr(a.opt.Err)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, errQuietUsage) {
		return ExitUsage
	}
	ui.Fail(a.opt.Err, err.Error())
	if isUsage(err) {
		return ExitUsage
	}
	return ExitError
}

// errQuietUsage is a usage error whose message was already shown.
var errQuietUsage = errors.New("usage shown")

func isUsage(err error) bool {
	if errors.Is(err, ErrUsage) {
		return true
	}
	// cobra reports these without a sentinel
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// app carries what every subcommand needs once the root has run.
type app struct {
	opt Options

	cfgPath string
	verbose bool
	flags   struct {
		ids, theme, color string
	}

	cfg config.Config
	log *slog.Logger
}

func (a *app) newStore() (*store.Store, error) {
	scheme, err := store.ParseScheme(a.cfg.IDs.Scheme)
	if err != nil {
		return nil, err
	}
	return store.New(
		store.WithReducer(store.NewReducer(store.NewIDSource(scheme))),
		store.WithLogger(a.log),
	), nil
}
