package ports

import (
	"context"

	"github.com/haulmatch/admin-console/internal/domain/model"
)

// MarketplaceAPI is the authenticated slice of the backend used by console pages.
// Every call carries the session's bearer token.
type MarketplaceAPI interface {
	ListUsers(ctx context.Context, token string, q model.ListQuery) (model.Page[model.User], error)
	ListLoads(ctx context.Context, token string, q model.ListQuery) (model.Page[model.Load], error)
	ListTrucks(ctx context.Context, token string, q model.ListQuery) (model.Page[model.Truck], error)
	ListBids(ctx context.Context, token string, q model.ListQuery) (model.Page[model.Bid], error)
	ListAdmins(ctx context.Context, token string, q model.ListQuery) (model.Page[model.AdminUser], error)

	GetUser(ctx context.Context, token, id string) (model.User, error)
	GetLoad(ctx context.Context, token, id string) (model.Load, error)
	GetTruck(ctx context.Context, token, id string) (model.Truck, error)
	GetAdmin(ctx context.Context, token, id string) (model.AdminUser, error)

	SearchUsers(ctx context.Context, token string, q model.ListQuery) (model.Page[model.User], error)
	SearchLoads(ctx context.Context, token string, q model.ListQuery) (model.Page[model.Load], error)
	SearchTrucks(ctx context.Context, token string, q model.ListQuery) (model.Page[model.Truck], error)

	Stats(ctx context.Context, token string, kind model.StatsKind) (model.Stats, error)

	CreateAdmin(ctx context.Context, token string, req model.CreateAdminRequest) (model.MutationResult[model.AdminUser], error)
	UpdateAdmin(ctx context.Context, token, id string, req model.UpdateAdminRequest) (model.MutationResult[model.AdminUser], error)
	UpdateLoad(ctx context.Context, token, id string, req model.UpdateLoadRequest) (model.MutationResult[model.Load], error)
	UpdateTruck(ctx context.Context, token, id string, req model.UpdateTruckRequest) (model.MutationResult[model.Truck], error)
	VerifyTruck(ctx context.Context, token, id string) (model.MutationResult[model.Truck], error)
}
