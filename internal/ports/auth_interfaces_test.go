package ports_test

import (
	"testing"

	"github.com/haulmatch/admin-console/internal/adapters/backend"
	"github.com/haulmatch/admin-console/internal/mocks"
	authmocks "github.com/haulmatch/admin-console/internal/mocks/auth"
	"github.com/haulmatch/admin-console/internal/ports"
)

// This test only verifies that our mocks and adapters conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.TokenStore = (*mocks.MockTokenStore)(nil)
	var _ ports.IdentityValidator = (*mocks.MockIdentityValidator)(nil)
	var _ ports.AdminAuthenticator = (*mocks.MockAdminAuthenticator)(nil)
	var _ ports.MarketplaceAPI = (*mocks.MockMarketplaceAPI)(nil)
	var _ ports.IdentityValidator = (*authmocks.StubValidator)(nil)
	var _ ports.TokenStore = (*authmocks.FlakyTokenStore)(nil)

	var _ ports.IdentityValidator = (*backend.Client)(nil)
	var _ ports.AdminAuthenticator = (*backend.Client)(nil)
	var _ ports.MarketplaceAPI = (*backend.Client)(nil)
}
