package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/haulmatch/admin-console/internal/domain/access"
	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
	"github.com/haulmatch/admin-console/internal/domain/model"
	apperrors "github.com/haulmatch/admin-console/internal/errors"
	"github.com/haulmatch/admin-console/internal/mocks"
	"github.com/haulmatch/admin-console/internal/testutil"
)

func newMarketplace(t *testing.T) (*MarketplaceService, *mocks.MockMarketplaceAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := mocks.NewMockMarketplaceAPI(ctrl)
	ev, err := access.NewDefaultEvaluator()
	require.NoError(t, err)
	return NewMarketplaceService(MarketplaceServiceOptions{API: api, Access: ev}), api
}

func caller(role domainauth.RoleLevel) Caller { return Caller{Token: "tok", Role: role} }

func TestCallerFrom(t *testing.T) {
	_, err := CallerFrom(domainauth.Session{})
	assert.True(t, apperrors.IsUnauthenticated(err))

	admin := superAdmin
	c, err := CallerFrom(domainauth.Session{Token: "tok", Admin: &admin, IsAuthenticated: true})
	require.NoError(t, err)
	assert.Equal(t, Caller{Token: "tok", Role: domainauth.RoleSuperAdmin}, c)
}

func TestMarketplace_ListNormalizesQuery(t *testing.T) {
	svc, api := newMarketplace(t)
	api.EXPECT().ListUsers(gomock.Any(), "tok", model.ListQuery{Page: 1, Limit: model.DefaultPageLimit}).
		Return(model.Page[model.User]{Pagination: model.Pagination{Total: 0, Page: 1, Limit: 10}}, nil)

	page, err := svc.ListUsers(context.Background(), caller(domainauth.RoleTech), model.ListQuery{Page: -3})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestMarketplace_ListClassifiesErrors(t *testing.T) {
	ctx := context.Background()
	svc, api := newMarketplace(t)

	api.EXPECT().ListLoads(gomock.Any(), "tok", gomock.Any()).
		Return(model.Page[model.Load]{}, &statusErr{status: http.StatusUnauthorized})
	_, err := svc.ListLoads(ctx, caller(domainauth.RoleOperations), model.ListQuery{})
	assert.True(t, apperrors.IsUnauthenticated(err))

	api.EXPECT().ListLoads(gomock.Any(), "tok", gomock.Any()).
		Return(model.Page[model.Load]{}, &statusErr{status: http.StatusInternalServerError, msg: "db down"})
	_, err = svc.ListLoads(ctx, caller(domainauth.RoleOperations), model.ListQuery{})
	assert.True(t, apperrors.IsBackend(err))
	assert.Equal(t, "db down", apperrors.GetMessage(err, ""))

	api.EXPECT().ListLoads(gomock.Any(), "tok", gomock.Any()).
		Return(model.Page[model.Load]{}, errors.New("dial tcp: refused"))
	_, err = svc.ListLoads(ctx, caller(domainauth.RoleOperations), model.ListQuery{})
	assert.True(t, apperrors.IsBackend(err))
	assert.Equal(t, "Failed to load loads", apperrors.GetMessage(err, ""))

	api.EXPECT().ListLoads(gomock.Any(), "tok", gomock.Any()).
		Return(model.Page[model.Load]{}, context.DeadlineExceeded)
	_, err = svc.ListLoads(ctx, caller(domainauth.RoleOperations), model.ListQuery{})
	assert.True(t, apperrors.IsTimeout(err))
}

func TestMarketplace_RequiresToken(t *testing.T) {
	svc, _ := newMarketplace(t)
	_, err := svc.ListBids(context.Background(), Caller{Role: domainauth.RoleSuperAdmin}, model.ListQuery{})
	assert.True(t, apperrors.IsUnauthenticated(err))
}

func TestMarketplace_CreateAdminGatedByFeature(t *testing.T) {
	ctx := context.Background()
	svc, api := newMarketplace(t)
	req := model.CreateAdminRequest{Username: "dispatch", Password: "longenough", Phone: "9876543210", Role: domainauth.RoleSupport}

	for _, role := range domainauth.AllRoleLevels() {
		if role == domainauth.RoleSuperAdmin {
			continue
		}
		_, err := svc.CreateAdmin(ctx, caller(role), req)
		assert.True(t, apperrors.IsForbidden(err), "role %d", role)
	}

	api.EXPECT().CreateAdmin(gomock.Any(), "tok", req).
		Return(model.MutationResult[model.AdminUser]{Success: true, Entity: model.AdminUser{ID: "n1", Username: "dispatch"}}, nil)
	res, err := svc.CreateAdmin(ctx, caller(domainauth.RoleSuperAdmin), req)
	require.NoError(t, err)
	assert.Equal(t, "n1", res.Entity.ID)
}

func TestMarketplace_CreateAdminValidatesBeforeCalling(t *testing.T) {
	svc, _ := newMarketplace(t)
	_, err := svc.CreateAdmin(context.Background(), caller(domainauth.RoleSuperAdmin), model.CreateAdminRequest{Username: "x"})
	require.True(t, apperrors.IsValidation(err))
	fe, ok := model.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fe, "username")
	assert.Contains(t, fe, "password")
}

func TestMarketplace_TruckActions(t *testing.T) {
	ctx := context.Background()
	svc, api := newMarketplace(t)

	_, err := svc.VerifyTruck(ctx, caller(domainauth.RoleTech), "t1")
	assert.True(t, apperrors.IsForbidden(err))

	api.EXPECT().VerifyTruck(gomock.Any(), "tok", "t1").
		Return(model.MutationResult[model.Truck]{Success: true, Entity: model.Truck{ID: "t1", IsVerified: true}}, nil)
	res, err := svc.VerifyTruck(ctx, caller(domainauth.RoleSupport), "t1")
	require.NoError(t, err)
	assert.True(t, res.Entity.IsVerified)

	_, err = svc.UpdateTruck(ctx, caller(domainauth.RoleSupport), "t1", model.UpdateTruckRequest{})
	assert.True(t, apperrors.IsForbidden(err), "support may verify but not edit")
}

func TestMarketplace_MutationReportedFailure(t *testing.T) {
	ctx := context.Background()
	root := caller(domainauth.RoleSuperAdmin)
	ops := caller(domainauth.RoleOperations)
	created := model.CreateAdminRequest{Username: "dispatch", Password: "longenough", Phone: "9876543210", Role: domainauth.RoleSupport}

	tests := []struct {
		name     string
		message  string
		fallback string
		call     func(*MarketplaceService, *mocks.MockMarketplaceAPI, string) error
	}{
		{
			name: "create admin", message: "Username already taken", fallback: "Failed to create admin user",
			call: func(svc *MarketplaceService, api *mocks.MockMarketplaceAPI, msg string) error {
				api.EXPECT().CreateAdmin(gomock.Any(), "tok", created).
					Return(model.MutationResult[model.AdminUser]{Message: msg}, nil)
				_, err := svc.CreateAdmin(ctx, root, created)
				return err
			},
		},
		{
			name: "update admin", message: "Cannot deactivate the last super admin", fallback: "Failed to update admin user",
			call: func(svc *MarketplaceService, api *mocks.MockMarketplaceAPI, msg string) error {
				api.EXPECT().UpdateAdmin(gomock.Any(), "tok", "a-1", gomock.Any()).
					Return(model.MutationResult[model.AdminUser]{Message: msg}, nil)
				_, err := svc.UpdateAdmin(ctx, root, "a-1", model.UpdateAdminRequest{IsActive: testutil.Ptr(false)})
				return err
			},
		},
		{
			name: "update load", message: "Load is already delivered", fallback: "Failed to update load",
			call: func(svc *MarketplaceService, api *mocks.MockMarketplaceAPI, msg string) error {
				api.EXPECT().UpdateLoad(gomock.Any(), "tok", "l-1", gomock.Any()).
					Return(model.MutationResult[model.Load]{Message: msg}, nil)
				_, err := svc.UpdateLoad(ctx, ops, "l-1", model.UpdateLoadRequest{Status: testutil.Ptr(model.LoadStatusDelivered)})
				return err
			},
		},
		{
			name: "update truck", message: "Truck is on an active trip", fallback: "Failed to update truck",
			call: func(svc *MarketplaceService, api *mocks.MockMarketplaceAPI, msg string) error {
				api.EXPECT().UpdateTruck(gomock.Any(), "tok", "t-1", gomock.Any()).
					Return(model.MutationResult[model.Truck]{Message: msg}, nil)
				_, err := svc.UpdateTruck(ctx, ops, "t-1", model.UpdateTruckRequest{IsAvailable: testutil.Ptr(false)})
				return err
			},
		},
		{
			name: "verify truck", message: "Documents pending review", fallback: "Failed to verify truck",
			call: func(svc *MarketplaceService, api *mocks.MockMarketplaceAPI, msg string) error {
				api.EXPECT().VerifyTruck(gomock.Any(), "tok", "t-1").
					Return(model.MutationResult[model.Truck]{Message: msg}, nil)
				_, err := svc.VerifyTruck(ctx, ops, "t-1")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, api := newMarketplace(t)
			err := tt.call(svc, api, tt.message)
			require.Error(t, err)
			assert.True(t, apperrors.IsBackend(err))
			assert.Equal(t, tt.message, apperrors.GetMessage(err, ""))
		})
		t.Run(tt.name+" without message", func(t *testing.T) {
			svc, api := newMarketplace(t)
			err := tt.call(svc, api, "")
			require.Error(t, err)
			assert.True(t, apperrors.IsBackend(err))
			assert.Equal(t, tt.fallback, apperrors.GetMessage(err, ""))
		})
	}
}

func TestMarketplace_StatsGatedAndValidated(t *testing.T) {
	ctx := context.Background()
	svc, api := newMarketplace(t)

	_, err := svc.Stats(ctx, caller(domainauth.RoleEntryLevel), model.StatsOverview)
	assert.True(t, apperrors.IsForbidden(err))

	_, err = svc.Stats(ctx, caller(domainauth.RoleFinance), model.StatsKind("weather"))
	assert.True(t, apperrors.IsValidation(err))

	api.EXPECT().Stats(gomock.Any(), "tok", model.StatsBids).Return(model.Stats{"total": 4.0}, nil)
	st, err := svc.Stats(ctx, caller(domainauth.RoleFinance), model.StatsBids)
	require.NoError(t, err)
	assert.Equal(t, 4.0, st["total"])
}

func TestMarketplace_GetRequiresID(t *testing.T) {
	svc, api := newMarketplace(t)
	_, err := svc.GetUser(context.Background(), caller(domainauth.RoleTech), " ")
	assert.True(t, apperrors.IsValidation(err))

	api.EXPECT().GetUser(gomock.Any(), "tok", "u1").Return(model.User{}, &statusErr{status: http.StatusNotFound})
	_, err = svc.GetUser(context.Background(), caller(domainauth.RoleTech), "u1")
	assert.True(t, apperrors.IsNotFound(err))
}
