package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/haulmatch/admin-console/internal/domain/model"
	"github.com/haulmatch/admin-console/internal/ports"
)

var (
	_ ports.MarketplaceAPI     = (*Client)(nil)
	_ ports.AdminAuthenticator = (*Client)(nil)
	_ ports.IdentityValidator  = (*Client)(nil)
)

func listPage[T any](ctx context.Context, c *Client, path, token string, q model.ListQuery) (model.Page[T], error) {
	var out model.Page[T]
	err := c.Do(ctx, Request{Path: path, Query: q.Values(), RequireAuth: true, Token: token}, &out)
	if err != nil {
		return model.Page[T]{}, err
	}
	if out.Items == nil {
		out.Items = []T{}
	}
	return out, nil
}

func getOne[T any](ctx context.Context, c *Client, path, token string) (T, error) {
	var out struct {
		Data T `json:"data"`
	}
	err := c.Do(ctx, Request{Path: path, RequireAuth: true, Token: token}, &out)
	return out.Data, err
}

func mutate[T any](ctx context.Context, c *Client, method, path, token string, body any) (model.MutationResult[T], error) {
	var out model.MutationResult[T]
	err := c.Do(ctx, Request{Path: path, Method: method, Body: body, RequireAuth: true, Token: token}, &out)
	return out, err
}

func (c *Client) ListUsers(ctx context.Context, token string, q model.ListQuery) (model.Page[model.User], error) {
	return listPage[model.User](ctx, c, "/admin/users", token, q)
}

func (c *Client) ListLoads(ctx context.Context, token string, q model.ListQuery) (model.Page[model.Load], error) {
	return listPage[model.Load](ctx, c, "/admin/loads", token, q)
}

func (c *Client) ListTrucks(ctx context.Context, token string, q model.ListQuery) (model.Page[model.Truck], error) {
	return listPage[model.Truck](ctx, c, "/admin/trucks", token, q)
}

func (c *Client) ListBids(ctx context.Context, token string, q model.ListQuery) (model.Page[model.Bid], error) {
	return listPage[model.Bid](ctx, c, "/admin/bids", token, q)
}

func (c *Client) ListAdmins(ctx context.Context, token string, q model.ListQuery) (model.Page[model.AdminUser], error) {
	return listPage[model.AdminUser](ctx, c, "/admin/admins", token, q)
}

func (c *Client) GetUser(ctx context.Context, token, id string) (model.User, error) {
	return getOne[model.User](ctx, c, "/admin/users/"+url.PathEscape(id), token)
}

func (c *Client) GetLoad(ctx context.Context, token, id string) (model.Load, error) {
	return getOne[model.Load](ctx, c, "/admin/loads/"+url.PathEscape(id), token)
}

func (c *Client) GetTruck(ctx context.Context, token, id string) (model.Truck, error) {
	return getOne[model.Truck](ctx, c, "/admin/trucks/"+url.PathEscape(id), token)
}

func (c *Client) GetAdmin(ctx context.Context, token, id string) (model.AdminUser, error) {
	return getOne[model.AdminUser](ctx, c, "/admin/admins/"+url.PathEscape(id), token)
}

func (c *Client) SearchUsers(ctx context.Context, token string, q model.ListQuery) (model.Page[model.User], error) {
	return listPage[model.User](ctx, c, "/admin/search/users", token, q)
}

func (c *Client) SearchLoads(ctx context.Context, token string, q model.ListQuery) (model.Page[model.Load], error) {
	return listPage[model.Load](ctx, c, "/admin/search/loads", token, q)
}

func (c *Client) SearchTrucks(ctx context.Context, token string, q model.ListQuery) (model.Page[model.Truck], error) {
	return listPage[model.Truck](ctx, c, "/admin/search/trucks", token, q)
}

// Stats fetches the overview (empty kind) or a per-entity statistics document.
func (c *Client) Stats(ctx context.Context, token string, kind model.StatsKind) (model.Stats, error) {
	path := "/admin/stats"
	if kind != model.StatsOverview {
		path += "/" + url.PathEscape(string(kind))
	}
	var out struct {
		Stats model.Stats `json:"stats"`
	}
	if err := c.Do(ctx, Request{Path: path, RequireAuth: true, Token: token}, &out); err != nil {
		return nil, err
	}
	if out.Stats == nil {
		out.Stats = model.Stats{}
	}
	return out.Stats, nil
}

func (c *Client) CreateAdmin(ctx context.Context, token string, req model.CreateAdminRequest) (model.MutationResult[model.AdminUser], error) {
	return mutate[model.AdminUser](ctx, c, http.MethodPost, "/admin/create", token, req)
}

func (c *Client) UpdateAdmin(ctx context.Context, token, id string, req model.UpdateAdminRequest) (model.MutationResult[model.AdminUser], error) {
	return mutate[model.AdminUser](ctx, c, http.MethodPut, "/admin/update/"+url.PathEscape(id), token, req)
}

func (c *Client) UpdateLoad(ctx context.Context, token, id string, req model.UpdateLoadRequest) (model.MutationResult[model.Load], error) {
	return mutate[model.Load](ctx, c, http.MethodPut, "/admin/loads/"+url.PathEscape(id), token, req)
}

func (c *Client) UpdateTruck(ctx context.Context, token, id string, req model.UpdateTruckRequest) (model.MutationResult[model.Truck], error) {
	return mutate[model.Truck](ctx, c, http.MethodPut, "/admin/trucks/"+url.PathEscape(id), token, req)
}

func (c *Client) VerifyTruck(ctx context.Context, token, id string) (model.MutationResult[model.Truck], error) {
	return mutate[model.Truck](ctx, c, http.MethodPut, "/admin/trucks/"+url.PathEscape(id)+"/verify", token, nil)
}
