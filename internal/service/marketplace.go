package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/haulmatch/admin-console/internal/domain/access"
	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
	"github.com/haulmatch/admin-console/internal/domain/model"
	apperrors "github.com/haulmatch/admin-console/internal/errors"
	"github.com/haulmatch/admin-console/internal/ports"
)

// Caller is the authenticated admin on whose behalf a backend call is made.
type Caller struct {
	Token string
	Role  domainauth.RoleLevel
}

// CallerFrom extracts a Caller from a session snapshot.
func CallerFrom(s domainauth.Session) (Caller, error) {
	role, ok := s.Role()
	if !ok || s.Token == "" {
		return Caller{}, apperrors.Unauthenticated("Please sign in")
	}
	return Caller{Token: s.Token, Role: role}, nil
}

// MarketplaceServiceOptions groups dependencies for MarketplaceService.
type MarketplaceServiceOptions struct {
	API    ports.MarketplaceAPI // Required
	Access *access.Evaluator    // Required: feature checks for writes and stats
	Logger *slog.Logger         // Optional
}

// MarketplaceService is the console's view of the marketplace backend. Reads
// are passed through; writes and statistics are gated by feature policy and
// validated before they are sent. Every error it returns is an AppError.
type MarketplaceService struct {
	api    ports.MarketplaceAPI
	access *access.Evaluator
	logger *slog.Logger
}

// NewMarketplaceService constructs a MarketplaceService.
func NewMarketplaceService(opts MarketplaceServiceOptions) *MarketplaceService {
	if opts.API == nil {
		panic("MarketplaceAPI is required")
	}
	if opts.Access == nil {
		panic("access evaluator is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &MarketplaceService{api: opts.API, access: opts.Access, logger: logger.With("component", "marketplace")}
}

// Can reports whether c may use feature.
func (s *MarketplaceService) Can(c Caller, feature string) bool {
	return s.access.CheckFeatureAccess(feature, c.Role)
}

func (s *MarketplaceService) require(c Caller, feature string) error {
	if c.Token == "" {
		return apperrors.Unauthenticated("Please sign in")
	}
	if !s.Can(c, feature) {
		return apperrors.Forbidden("You do not have permission to perform this action")
	}
	return nil
}

func list[T any](
	ctx context.Context,
	c Caller,
	q model.ListQuery,
	what string,
	fetch func(context.Context, string, model.ListQuery) (model.Page[T], error),
) (model.Page[T], error) {
	if c.Token == "" {
		return model.Page[T]{}, apperrors.Unauthenticated("Please sign in")
	}
	page, err := fetch(ctx, c.Token, q.Normalize())
	if err != nil {
		return model.Page[T]{}, classifyBackendError(err, "Failed to load "+what)
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}

func get[T any](
	ctx context.Context,
	c Caller,
	id, what string,
	fetch func(context.Context, string, string) (T, error),
) (T, error) {
	var zero T
	if c.Token == "" {
		return zero, apperrors.Unauthenticated("Please sign in")
	}
	if strings.TrimSpace(id) == "" {
		return zero, apperrors.ValidationField("id", what+" id is required")
	}
	v, err := fetch(ctx, c.Token, id)
	if err != nil {
		return zero, classifyBackendError(err, "Failed to load "+what)
	}
	return v, nil
}

func (s *MarketplaceService) ListUsers(ctx context.Context, c Caller, q model.ListQuery) (model.Page[model.User], error) {
	return list(ctx, c, q, "users", s.api.ListUsers)
}

func (s *MarketplaceService) ListLoads(ctx context.Context, c Caller, q model.ListQuery) (model.Page[model.Load], error) {
	return list(ctx, c, q, "loads", s.api.ListLoads)
}

func (s *MarketplaceService) ListTrucks(ctx context.Context, c Caller, q model.ListQuery) (model.Page[model.Truck], error) {
	return list(ctx, c, q, "trucks", s.api.ListTrucks)
}

func (s *MarketplaceService) ListBids(ctx context.Context, c Caller, q model.ListQuery) (model.Page[model.Bid], error) {
	return list(ctx, c, q, "bids", s.api.ListBids)
}

func (s *MarketplaceService) ListAdmins(ctx context.Context, c Caller, q model.ListQuery) (model.Page[model.AdminUser], error) {
	return list(ctx, c, q, "admin users", s.api.ListAdmins)
}

func (s *MarketplaceService) SearchUsers(ctx context.Context, c Caller, q model.ListQuery) (model.Page[model.User], error) {
	return list(ctx, c, q, "search results", s.api.SearchUsers)
}

func (s *MarketplaceService) SearchLoads(ctx context.Context, c Caller, q model.ListQuery) (model.Page[model.Load], error) {
	return list(ctx, c, q, "search results", s.api.SearchLoads)
}

func (s *MarketplaceService) SearchTrucks(ctx context.Context, c Caller, q model.ListQuery) (model.Page[model.Truck], error) {
	return list(ctx, c, q, "search results", s.api.SearchTrucks)
}

func (s *MarketplaceService) GetUser(ctx context.Context, c Caller, id string) (model.User, error) {
	return get(ctx, c, id, "user", s.api.GetUser)
}

func (s *MarketplaceService) GetLoad(ctx context.Context, c Caller, id string) (model.Load, error) {
	return get(ctx, c, id, "load", s.api.GetLoad)
}

func (s *MarketplaceService) GetTruck(ctx context.Context, c Caller, id string) (model.Truck, error) {
	return get(ctx, c, id, "truck", s.api.GetTruck)
}

func (s *MarketplaceService) GetAdmin(ctx context.Context, c Caller, id string) (model.AdminUser, error) {
	return get(ctx, c, id, "admin user", s.api.GetAdmin)
}

// Stats returns one statistics block. It needs the VIEW_STATS feature.
func (s *MarketplaceService) Stats(ctx context.Context, c Caller, kind model.StatsKind) (model.Stats, error) {
	if err := s.require(c, access.FeatureViewStats); err != nil {
		return nil, err
	}
	if !kind.Valid() {
		return nil, apperrors.ValidationField("kind", "Unknown statistics kind")
	}
	st, err := s.api.Stats(ctx, c.Token, kind)
	if err != nil {
		return nil, classifyBackendError(err, "Failed to load statistics")
	}
	return st, nil
}

// CreateAdmin adds a console operator. It needs CREATE_USER.
func (s *MarketplaceService) CreateAdmin(
	ctx context.Context,
	c Caller,
	req model.CreateAdminRequest,
) (model.MutationResult[model.AdminUser], error) {
	var zero model.MutationResult[model.AdminUser]
	if err := s.require(c, access.FeatureCreateUser); err != nil {
		return zero, err
	}
	if err := req.Validate(); err != nil {
		return zero, apperrors.Wrap(err, apperrors.ErrCodeValidation, "Please correct the highlighted fields")
	}
	res, err := settle(s.api.CreateAdmin(ctx, c.Token, req))("Failed to create admin user")
	if err != nil {
		return zero, err
	}
	s.logger.InfoContext(ctx, "admin user created", "username", req.Username, "role", int(req.Role))
	return res, nil
}

// UpdateAdmin changes an operator. It needs UPDATE_ADMIN.
func (s *MarketplaceService) UpdateAdmin(
	ctx context.Context,
	c Caller,
	id string,
	req model.UpdateAdminRequest,
) (model.MutationResult[model.AdminUser], error) {
	var zero model.MutationResult[model.AdminUser]
	if err := s.require(c, access.FeatureUpdateAdmin); err != nil {
		return zero, err
	}
	if err := req.Validate(); err != nil {
		return zero, apperrors.Wrap(err, apperrors.ErrCodeValidation, "Please correct the highlighted fields")
	}
	res, err := settle(s.api.UpdateAdmin(ctx, c.Token, id, req))("Failed to update admin user")
	if err != nil {
		return zero, err
	}
	s.logger.InfoContext(ctx, "admin user updated", "admin_user_id", id)
	return res, nil
}

// UpdateLoad edits a load. It needs EDIT_LOAD.
func (s *MarketplaceService) UpdateLoad(
	ctx context.Context,
	c Caller,
	id string,
	req model.UpdateLoadRequest,
) (model.MutationResult[model.Load], error) {
	var zero model.MutationResult[model.Load]
	if err := s.require(c, access.FeatureEditLoad); err != nil {
		return zero, err
	}
	if err := req.Validate(); err != nil {
		return zero, apperrors.Wrap(err, apperrors.ErrCodeValidation, "Please correct the highlighted fields")
	}
	res, err := settle(s.api.UpdateLoad(ctx, c.Token, id, req))("Failed to update load")
	if err != nil {
		return zero, err
	}
	return res, nil
}

// UpdateTruck edits a truck. It needs EDIT_TRUCK.
func (s *MarketplaceService) UpdateTruck(
	ctx context.Context,
	c Caller,
	id string,
	req model.UpdateTruckRequest,
) (model.MutationResult[model.Truck], error) {
	var zero model.MutationResult[model.Truck]
	if err := s.require(c, access.FeatureEditTruck); err != nil {
		return zero, err
	}
	if err := req.Validate(); err != nil {
		return zero, apperrors.Wrap(err, apperrors.ErrCodeValidation, "Please correct the highlighted fields")
	}
	res, err := settle(s.api.UpdateTruck(ctx, c.Token, id, req))("Failed to update truck")
	if err != nil {
		return zero, err
	}
	return res, nil
}

// VerifyTruck marks a truck verified. It needs VERIFY_TRUCK.
func (s *MarketplaceService) VerifyTruck(ctx context.Context, c Caller, id string) (model.MutationResult[model.Truck], error) {
	var zero model.MutationResult[model.Truck]
	if err := s.require(c, access.FeatureVerifyTruck); err != nil {
		return zero, err
	}
	res, err := settle(s.api.VerifyTruck(ctx, c.Token, id))("Failed to verify truck")
	if err != nil {
		return zero, err
	}
	s.logger.InfoContext(ctx, "truck verified", "truck_id", id)
	return res, nil
}
