package service

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/haulmatch/admin-console/internal/domain/access"
	"github.com/haulmatch/admin-console/internal/domain/model"
)

// recentLoadsLimit is how many loads the overview lists.
const recentLoadsLimit = 5

// DashboardOverview is the data behind the landing page.
type DashboardOverview struct {
	// Stats is keyed by kind, the overview block included. Empty when the
	// caller may not view statistics.
	Stats       map[model.StatsKind]model.Stats
	RecentLoads []model.Load
	// LoadsVisible is false when the caller's role cannot open the loads list.
	LoadsVisible bool
}

// Overview gathers the landing page data concurrently. The first failure
// cancels the remaining calls and is returned.
func (s *MarketplaceService) Overview(ctx context.Context, c Caller) (DashboardOverview, error) {
	out := DashboardOverview{
		Stats:        map[model.StatsKind]model.Stats{},
		LoadsVisible: s.access.CheckRouteAccess(access.RouteLoads, c.Role),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	if s.Can(c, access.FeatureViewStats) {
		kinds := append([]model.StatsKind{model.StatsOverview}, model.StatsKinds()...)
		for _, kind := range kinds {
			g.Go(func() error {
				st, err := s.Stats(gctx, c, kind)
				if err != nil {
					return err
				}
				mu.Lock()
				out.Stats[kind] = st
				mu.Unlock()
				return nil
			})
		}
	}

	if out.LoadsVisible {
		g.Go(func() error {
			page, err := s.ListLoads(gctx, c, model.ListQuery{Page: 1, Limit: recentLoadsLimit})
			if err != nil {
				return err
			}
			mu.Lock()
			out.RecentLoads = page.Items
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return DashboardOverview{}, err
	}
	return out, nil
}
