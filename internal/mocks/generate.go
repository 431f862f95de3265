// Package mocks provides gomock implementations of the console's ports.
//
// To regenerate after an interface change, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	validator := mocks.NewMockIdentityValidator(ctrl)
//	validator.EXPECT().Profile(gomock.Any(), "tok").Return(admin, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_store_mock.go github.com/haulmatch/admin-console/internal/ports TokenStore
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=identity_validator_mock.go github.com/haulmatch/admin-console/internal/ports IdentityValidator
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=admin_authenticator_mock.go github.com/haulmatch/admin-console/internal/ports AdminAuthenticator

// MarketplaceAPI: list, get, search, stats and mutation endpoints used by the console pages.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=marketplace_api_mock.go github.com/haulmatch/admin-console/internal/ports MarketplaceAPI
