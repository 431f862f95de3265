// Command console-admin drives the HaulMatch admin console from a terminal:
// sign in with password and OTP, browse marketplace lists, and inspect the
// access policy tables the console enforces.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/haulmatch/admin-console/config"
	"github.com/haulmatch/admin-console/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	In     *bufio.Reader
	Out    io.Writer
}

// errDenied reports a negative access check. It carries no log line; the exit
// status is the answer.
var errDenied = errors.New("access denied")

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stderr); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		In:     bufio.NewReader(os.Stdin),
		Out:    os.Stdout,
	}
	runErr := cmd.run(cmdCtx, os.Args[2:])
	stop()

	switch {
	case runErr == nil:
	case errors.Is(runErr, errDenied):
		os.Exit(1) //nolint:forbidigo // negative access checks are reported through the exit status
	default:
		logger.ErrorContext(ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	cmds := []command{
		{"login", "Sign in with username, password and OTP", runLogin},
		{"logout", "Sign out and forget the stored token", runLogout},
		{"whoami", "Show the signed-in admin", runWhoami},
		{"users", "List marketplace users", runUsers},
		{"loads", "List loads", runLoads},
		{"trucks", "List trucks", runTrucks},
		{"bids", "List bids and truck requests", runBids},
		{"admins", "List console admin users", runAdmins},
		{"stats", "Show statistics counters", runStats},
		{"policy", "Print the route and feature access tables", runPolicy},
		{"audit", "Check that every protected console route has an access policy", runAudit},
		{"check-route", "Check whether a role may open a console path", runCheckRoute},
		{"check-feature", "Check whether a role may use a feature", runCheckFeature},
		{"migrate", "Run or inspect database migrations", runMigrate},
	}
	out := make(map[string]command, len(cmds))
	for _, c := range cmds {
		out[c.name] = c
	}
	return out
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: console-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-16s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
