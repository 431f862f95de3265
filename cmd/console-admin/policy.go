package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/haulmatch/admin-console/internal/domain/access"
	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
	httpx "github.com/haulmatch/admin-console/internal/http"
)

type policyView struct {
	Key         string   `json:"key"`
	Description string   `json:"description,omitempty"`
	Roles       []string `json:"roles"`
	Levels      []int    `json:"levels"`
}

func toPolicyViews(policies []access.Policy) []policyView {
	out := make([]policyView, 0, len(policies))
	for _, p := range policies {
		v := policyView{Key: p.Key, Description: p.Description, Roles: []string{}, Levels: []int{}}
		for _, r := range p.AllowedRoles.Levels() {
			v.Roles = append(v.Roles, r.String())
			v.Levels = append(v.Levels, int(r))
		}
		out = append(out, v)
	}
	return out
}

func policyRows(views []policyView) [][]string {
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		levels := make([]string, len(v.Levels))
		for i, l := range v.Levels {
			levels[i] = strconv.Itoa(l)
		}
		rows = append(rows, []string{v.Key, strings.Join(levels, ","), strings.Join(v.Roles, ", ")})
	}
	return rows
}

func runPolicy(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("policy", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	out := registerOutputFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	policies, err := access.NewDefaultEvaluator()
	if err != nil {
		return err
	}
	routes := toPolicyViews(policies.Routes())
	features := toPolicyViews(policies.Features())

	if out.structured() {
		return out.emit(cmdCtx.Out, map[string]any{"routes": routes, "features": features})
	}

	header := []string{"KEY", "LEVELS", "ROLES"}
	if err := writeln(cmdCtx.Out, "Routes"); err != nil {
		return err
	}
	if err := writeTable(cmdCtx.Out, append([]string{"PATH"}, header[1:]...), policyRows(routes)); err != nil {
		return err
	}
	if err := writeln(cmdCtx.Out, "\nFeatures"); err != nil {
		return err
	}
	return writeTable(cmdCtx.Out, append([]string{"FEATURE"}, header[1:]...), policyRows(features))
}

func runAudit(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("audit", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	policies, err := access.NewDefaultEvaluator()
	if err != nil {
		return err
	}
	reachable := httpx.ReachableRoutes()
	err = policies.Audit(reachable)

	var uncovered *access.UncoveredRoutesError
	switch {
	case err == nil:
		return writef(cmdCtx.Out, "All %d routes under %s have an access policy.\n", countProtected(reachable), access.ProtectedPrefix)
	case errors.As(err, &uncovered):
		if werr := writeln(cmdCtx.Out, "Routes without an access policy:"); werr != nil {
			return werr
		}
		for _, p := range uncovered.Paths {
			if werr := writeln(cmdCtx.Out, "  "+p); werr != nil {
				return werr
			}
		}
		return errDenied
	default:
		return err
	}
}

func countProtected(reachable []string) int {
	n := 0
	for _, r := range reachable {
		path := r
		if _, after, ok := strings.Cut(r, " "); ok {
			path = after
		}
		if access.IsProtected(path) {
			n++
		}
	}
	return n
}

// resolveRole parses --role, or falls back to the signed-in admin's role.
func resolveRole(cmdCtx *commandContext, flagValue string) (domainauth.RoleLevel, error) {
	if strings.TrimSpace(flagValue) != "" {
		return domainauth.ParseRoleLevel(flagValue)
	}
	sess, err := openSession(cmdCtx)
	if err != nil {
		return 0, err
	}
	caller, err := sess.requireCaller(cmdCtx)
	if err != nil {
		return 0, fmt.Errorf("%w (or pass --role)", err)
	}
	return caller.Role, nil
}

func runCheckRoute(cmdCtx *commandContext, args []string) error {
	return runCheck(cmdCtx, "check-route", "path", args,
		func(e *access.Evaluator, key string, role domainauth.RoleLevel) (bool, bool) {
			if access.IsPublic(key) {
				return true, true
			}
			_, known := e.RoutePolicy(key)
			return e.CheckRouteAccess(key, role), known
		})
}

func runCheckFeature(cmdCtx *commandContext, args []string) error {
	return runCheck(cmdCtx, "check-feature", "feature", args,
		func(e *access.Evaluator, key string, role domainauth.RoleLevel) (bool, bool) {
			_, known := e.FeaturePolicy(key)
			return e.CheckFeatureAccess(key, role), known
		})
}

// runCheck prints "allowed" or "denied". A denial exits non-zero so the
// command can be used from scripts.
func runCheck(
	cmdCtx *commandContext,
	name, argName string,
	args []string,
	check func(*access.Evaluator, string, domainauth.RoleLevel) (allowed, known bool),
) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	roleFlag := fs.String("role", "", "Role level or name (defaults to the signed-in admin)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: console-admin %s [--role ROLE] <%s>", name, argName)
	}
	key := strings.TrimSpace(fs.Arg(0))

	role, err := resolveRole(cmdCtx, *roleFlag)
	if err != nil {
		return err
	}
	policies, err := access.NewDefaultEvaluator()
	if err != nil {
		return err
	}

	allowed, known := check(policies, key, role)
	verdict := "denied"
	if allowed {
		verdict = "allowed"
	}
	note := ""
	if !known {
		note = " (no policy)"
	}
	if err := writef(cmdCtx.Out, "%s: %s for %s (level %d)%s\n", key, verdict, role, int(role), note); err != nil {
		return err
	}
	if !allowed {
		return errDenied
	}
	return nil
}
