package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/haulmatch/admin-console/internal/domain/access"
	"github.com/haulmatch/admin-console/internal/domain/model"
	"github.com/haulmatch/admin-console/internal/http/templates/core"
	"github.com/haulmatch/admin-console/internal/service"
)

// pageFetcher matches the list and search methods of MarketplaceService as
// method expressions.
type pageFetcher[T any] func(*service.MarketplaceService, context.Context, service.Caller, model.ListQuery) (model.Page[T], error)

type listSpec[T any] struct {
	name   string
	route  string // console route whose policy gates the command
	fetch  pageFetcher[T]
	search pageFetcher[T] // nil when the backend has no search endpoint
	header []string
	row    func(T) []string
	// mask hides phone numbers from callers without VIEW_PHONE_NUMBERS.
	mask func(*T)
}

func filterFlag(filters map[string]string) func(string) error {
	return func(v string) error {
		k, val, ok := strings.Cut(v, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return fmt.Errorf("filter %q must be key=value", v)
		}
		filters[k] = strings.TrimSpace(val)
		return nil
	}
}

func runList[T any](cmdCtx *commandContext, spec listSpec[T], args []string) error {
	fs := flag.NewFlagSet(spec.name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	q := model.ListQuery{Filters: map[string]string{}}
	fs.IntVar(&q.Page, "page", 1, "Page number")
	fs.IntVar(&q.Limit, "limit", model.DefaultPageLimit, "Items per page")
	fs.StringVar(&q.Search, "search", "", "Search text")
	fs.Func("filter", "Filter as key=value (repeatable)", filterFlag(q.Filters))
	out := registerOutputFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := openSession(cmdCtx)
	if err != nil {
		return err
	}
	caller, err := sess.requireCaller(cmdCtx)
	if err != nil {
		return err
	}
	if !sess.Access.CheckRouteAccess(spec.route, caller.Role) {
		return fmt.Errorf("role %s may not view %s", caller.Role, spec.name)
	}

	fetch := spec.fetch
	if strings.TrimSpace(q.Search) != "" && spec.search != nil {
		fetch = spec.search
	}
	page, err := fetch(sess.Marketplace, cmdCtx.Ctx, caller, q)
	if err != nil {
		return err
	}

	if spec.mask != nil && !sess.Marketplace.Can(caller, access.FeatureViewPhoneNumbers) {
		for i := range page.Items {
			spec.mask(&page.Items[i])
		}
	}

	if out.structured() {
		return out.emit(cmdCtx.Out, page)
	}
	rows := make([][]string, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, spec.row(item))
	}
	if err := writeTable(cmdCtx.Out, spec.header, rows); err != nil {
		return err
	}
	return writeln(cmdCtx.Out, page.Pagination.Summary())
}

func money(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func tons(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) + "t" }

func runUsers(cmdCtx *commandContext, args []string) error {
	return runList(cmdCtx, listSpec[model.User]{
		name:   "users",
		route:  access.RouteUsers,
		fetch:  (*service.MarketplaceService).ListUsers,
		search: (*service.MarketplaceService).SearchUsers,
		header: []string{"ID", "NAME", "PHONE", "TYPE", "COMPANY", "VERIFIED", "BLOCKED"},
		row: func(u model.User) []string {
			return []string{u.ID, u.Name, u.Phone, string(u.Type), u.Company, yesNo(u.IsVerified), yesNo(u.IsBlocked)}
		},
		mask: func(u *model.User) { u.Phone = core.MaskPhone(u.Phone) },
	}, args)
}

func runLoads(cmdCtx *commandContext, args []string) error {
	return runList(cmdCtx, listSpec[model.Load]{
		name:   "loads",
		route:  access.RouteLoads,
		fetch:  (*service.MarketplaceService).ListLoads,
		search: (*service.MarketplaceService).SearchLoads,
		header: []string{"ID", "ROUTE", "MATERIAL", "WEIGHT", "PRICE", "STATUS", "BIDS"},
		row: func(l model.Load) []string {
			return []string{
				l.ID, l.Origin + " -> " + l.Destination, l.Material, tons(l.WeightTons),
				money(l.Price), string(l.Status), strconv.Itoa(l.BidCount),
			}
		},
	}, args)
}

func runTrucks(cmdCtx *commandContext, args []string) error {
	return runList(cmdCtx, listSpec[model.Truck]{
		name:   "trucks",
		route:  access.RouteTrucks,
		fetch:  (*service.MarketplaceService).ListTrucks,
		search: (*service.MarketplaceService).SearchTrucks,
		header: []string{"ID", "NUMBER", "TYPE", "CAPACITY", "OWNER", "VERIFIED", "AVAILABLE"},
		row: func(t model.Truck) []string {
			return []string{t.ID, t.Number, t.Type, tons(t.CapacityTons), t.OwnerName, yesNo(t.IsVerified), yesNo(t.IsAvailable)}
		},
	}, args)
}

func runBids(cmdCtx *commandContext, args []string) error {
	return runList(cmdCtx, listSpec[model.Bid]{
		name:   "bids",
		route:  access.RouteBids,
		fetch:  (*service.MarketplaceService).ListBids,
		header: []string{"ID", "KIND", "LOAD", "TRUCK", "BIDDER", "AMOUNT", "STATUS"},
		row: func(b model.Bid) []string {
			return []string{b.ID, string(b.Kind), b.LoadID, b.TruckID, b.BidderName, money(b.Amount), string(b.Status)}
		},
	}, args)
}

func runAdmins(cmdCtx *commandContext, args []string) error {
	return runList(cmdCtx, listSpec[model.AdminUser]{
		name:   "admins",
		route:  access.RouteAdminUsers,
		fetch:  (*service.MarketplaceService).ListAdmins,
		header: []string{"ID", "USERNAME", "PHONE", "ROLE", "ACTIVE"},
		row: func(a model.AdminUser) []string {
			return []string{a.ID, a.Username, a.Phone, a.Role.String(), yesNo(a.IsActive)}
		},
		mask: func(a *model.AdminUser) { a.Phone = core.MaskPhone(a.Phone) },
	}, args)
}

func runStats(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	kind := fs.String("kind", "", "Statistics kind: users, loads, trucks or bids (empty for the overview)")
	out := registerOutputFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := openSession(cmdCtx)
	if err != nil {
		return err
	}
	caller, err := sess.requireCaller(cmdCtx)
	if err != nil {
		return err
	}
	st, err := sess.Marketplace.Stats(cmdCtx.Ctx, caller, model.StatsKind(strings.ToLower(strings.TrimSpace(*kind))))
	if err != nil {
		return err
	}

	if out.structured() {
		return out.emit(cmdCtx.Out, st)
	}
	metrics := st.Metrics()
	rows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []string{m.Name, m.Value})
	}
	return writeTable(cmdCtx.Out, []string{"METRIC", "VALUE"}, rows)
}
