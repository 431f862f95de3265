package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/haulmatch/admin-console/internal/domain/access"
	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
	"github.com/haulmatch/admin-console/internal/domain/model"
)

func newAdminForm() url.Values {
	return url.Values{
		"username": {"dispatch"},
		"password": {"s3cret-pass"},
		"phone":    {"9123456789"},
		"role":     {"5"},
	}
}

func TestAdminUserCreate_Success(t *testing.T) {
	h := newHarness(t)
	b := h.signIn(testSuperAdmin)
	h.api.EXPECT().CreateAdmin(gomock.Any(), "tok-root", model.CreateAdminRequest{
		Username: "dispatch",
		Password: "s3cret-pass",
		Phone:    "9123456789",
		Role:     domainauth.RoleOperations,
	}).Return(model.MutationResult[model.AdminUser]{Success: true, Message: "Admin created"}, nil)

	res := b.post(access.RouteAdminUserCreate, newAdminForm())
	res.Body.Close()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, access.RouteAdminUsers, res.Header.Get("Location"))
	assert.Contains(t, res.Header.Get("Hx-Trigger"), "Admin created")
}

func TestAdminUserCreate_InvalidRoleNeverReachesBackend(t *testing.T) {
	h := newHarness(t)
	b := h.signIn(testSuperAdmin)
	form := newAdminForm()
	form.Set("role", "7")

	res := b.post(access.RouteAdminUserCreate, form)
	body := readBody(t, res)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Select a role")
	assert.Contains(t, body, errMsgFixBelow)
	assert.Contains(t, body, `value="dispatch"`)
	assert.NotContains(t, body, "s3cret-pass")
}

func TestAdminUserCreate_RequestValidation(t *testing.T) {
	h := newHarness(t)
	b := h.signIn(testSuperAdmin)
	form := newAdminForm()
	form.Set("password", "short")
	form.Set("phone", "12345")

	res := b.post(access.RouteAdminUserCreate, form)
	body := readBody(t, res)
	assert.Contains(t, body, "Password must be at least 8 characters")
	assert.Contains(t, body, "Phone number must be 10 digits")

	res = b.post(access.RouteAdminUserCreate, form, asAPI)
	var payload struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	res.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Equal(t, "validation", payload.Error)
	assert.Equal(t, "Password must be at least 8 characters", payload.Fields["password"])
	assert.Equal(t, "Phone number must be 10 digits", payload.Fields["phone"])
}

func TestAdminUserCreate_BackendConflict(t *testing.T) {
	h := newHarness(t)
	b := h.signIn(testSuperAdmin)
	h.api.EXPECT().CreateAdmin(gomock.Any(), "tok-root", gomock.Any()).
		Return(model.MutationResult[model.AdminUser]{}, backendErr(http.StatusConflict, "Username already exists"))

	res := b.post(access.RouteAdminUserCreate, newAdminForm())
	body := readBody(t, res)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Username already exists")
	assert.Contains(t, res.Header.Get("Hx-Trigger"), "Create admin user failed")
}

func TestAdminUserCreate_BackendReportsFailure(t *testing.T) {
	h := newHarness(t)
	b := h.signIn(testSuperAdmin)
	h.api.EXPECT().CreateAdmin(gomock.Any(), "tok-root", gomock.Any()).
		Return(model.MutationResult[model.AdminUser]{Success: false, Message: "Username already taken"}, nil).
		Times(2)

	res := b.post(access.RouteAdminUserCreate, newAdminForm(), asHTMX)
	body := readBody(t, res)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Empty(t, res.Header.Get("Hx-Redirect"))
	assert.Contains(t, body, "Username already taken")
	assert.Contains(t, res.Header.Get("Hx-Trigger"), "Create admin user failed")
	assert.NotContains(t, res.Header.Get("Hx-Trigger"), `"success"`)

	res = b.post(access.RouteAdminUserCreate, newAdminForm(), asAPI)
	var payload map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	res.Body.Close()
	assert.Equal(t, http.StatusBadGateway, res.StatusCode)
	assert.Equal(t, "Username already taken", payload["message"])
	assert.NotEqual(t, true, payload["success"])
}

func TestAdminUserEdit_PrefillsFromBackend(t *testing.T) {
	h := newHarness(t)
	b := h.signIn(testSuperAdmin)
	h.api.EXPECT().GetAdmin(gomock.Any(), "tok-root", "a-3").Return(model.AdminUser{
		ID: "a-3", Username: "helpdesk", Phone: "9000000003", Role: domainauth.RoleSupport, IsActive: true,
	}, nil)

	res := b.get("/dashboard/admin-users/a-3/edit")
	body := readBody(t, res)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `value="helpdesk"`)
	assert.Contains(t, body, `value="3" selected`)
	assert.Contains(t, body, `action="/dashboard/admin-users/a-3/edit"`)
}

func TestAdminUserUpdate_SendsOnlyChangedFields(t *testing.T) {
	h := newHarness(t)
	b := h.signIn(testSuperAdmin)
	h.api.EXPECT().UpdateAdmin(gomock.Any(), "tok-root", "a-3", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, req model.UpdateAdminRequest) (model.MutationResult[model.AdminUser], error) {
			assert.Nil(t, req.Phone)
			assert.Nil(t, req.Password)
			require.NotNil(t, req.Role)
			assert.Equal(t, domainauth.RoleFinance, *req.Role)
			require.NotNil(t, req.IsActive)
			assert.False(t, *req.IsActive)
			return model.MutationResult[model.AdminUser]{Success: true}, nil
		})

	res := b.post("/dashboard/admin-users/a-3/edit", url.Values{"phone": {""}, "role": {"4"}, "isActive": {"false"}, "password": {""}}, asHTMX)
	res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, access.RouteAdminUsers, res.Header.Get("Hx-Redirect"))
	assert.Contains(t, res.Header.Get("Hx-Trigger"), "Admin user updated")
}

func TestAdminUserUpdate_NothingChanged(t *testing.T) {
	h := newHarness(t)
	b := h.signIn(testSuperAdmin)

	res := b.post("/dashboard/admin-users/a-3/edit", url.Values{"role": {""}, "isActive": {""}})
	body := readBody(t, res)
	assert.Contains(t, body, "Change at least one field")
}

func TestLoadUpdate(t *testing.T) {
	h := newHarness(t)
	b := h.signIn(testOperations)
	h.api.EXPECT().UpdateLoad(gomock.Any(), "tok-ops", "l-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, req model.UpdateLoadRequest) (model.MutationResult[model.Load], error) {
			require.NotNil(t, req.Status)
			assert.Equal(t, model.LoadStatusDelivered, *req.Status)
			require.NotNil(t, req.Price)
			assert.InDelta(t, 45000, *req.Price, 0.001)
			assert.Nil(t, req.Notes)
			return model.MutationResult[model.Load]{Success: true, Message: "Load saved"}, nil
		})

	res := b.post("/dashboard/loads/l-1/edit", url.Values{"status": {"delivered"}, "price": {"45,000"}, "adminNotes": {" "}})
	res.Body.Close()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, access.RouteLoads, res.Header.Get("Location"))
	assert.Contains(t, res.Header.Get("Hx-Trigger"), "Load saved")

	res = b.post("/dashboard/loads/l-1/edit", url.Values{"price": {"lots"}})
	body := readBody(t, res)
	assert.Contains(t, body, "Price must be a number")
	assert.Contains(t, body, `value="lots"`)
}

func TestLoadEdit_RejectedTokenSignsOut(t *testing.T) {
	h := newHarness(t)
	b := h.signIn(testOperations)
	h.api.EXPECT().GetLoad(gomock.Any(), "tok-ops", "l-1").
		Return(model.Load{}, backendErr(http.StatusUnauthorized, "token expired"))

	res := b.get("/dashboard/loads/l-1/edit")
	res.Body.Close()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)
	assert.Equal(t, access.RouteLogin, res.Header.Get("Location"))
	assert.Equal(t, false, authStatus(t, b)["authenticated"])
}

func TestTruckUpdate_ValidatesCapacity(t *testing.T) {
	h := newHarness(t)
	b := h.signIn(testSuperAdmin)

	res := b.post("/dashboard/trucks/t-1/edit", url.Values{"capacity": {"-3"}, "isAvailable": {"maybe"}})
	body := readBody(t, res)
	assert.Contains(t, body, "Choose yes or no")

	res = b.post("/dashboard/trucks/t-1/edit", url.Values{"capacity": {"-3"}})
	body = readBody(t, res)
	assert.Contains(t, body, "Capacity must be greater than zero")
}

func TestTruckVerify(t *testing.T) {
	h := newHarness(t)
	b := h.signIn(testSupportAdmin())

	h.api.EXPECT().VerifyTruck(gomock.Any(), "tok-helpdesk", "t-1").
		Return(model.MutationResult[model.Truck]{Success: true}, nil)
	res := b.post("/dashboard/trucks/t-1/verify", nil, asHTMX)
	res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, access.RouteTrucks, res.Header.Get("Hx-Redirect"))
	assert.Contains(t, res.Header.Get("Hx-Trigger"), "Truck verified")

	h.api.EXPECT().VerifyTruck(gomock.Any(), "tok-helpdesk", "t-2").
		Return(model.MutationResult[model.Truck]{}, backendErr(http.StatusInternalServerError, ""))
	res = b.post("/dashboard/trucks/t-2/verify", nil, asHTMX)
	res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Empty(t, res.Header.Get("Hx-Redirect"))
	assert.Contains(t, res.Header.Get("Hx-Trigger"), "Verify truck failed")

	h.api.EXPECT().VerifyTruck(gomock.Any(), "tok-helpdesk", "t-3").
		Return(model.MutationResult[model.Truck]{}, backendErr(http.StatusNotFound, "Truck not found"))
	res = b.post("/dashboard/trucks/t-3/verify", nil, asAPI)
	var payload map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&payload))
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Truck not found", payload["message"])

	h.api.EXPECT().VerifyTruck(gomock.Any(), "tok-helpdesk", "t-4").
		Return(model.MutationResult[model.Truck]{Success: false, Message: "Documents pending review"}, nil)
	res = b.post("/dashboard/trucks/t-4/verify", nil, asHTMX)
	res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Empty(t, res.Header.Get("Hx-Redirect"))
	assert.Contains(t, res.Header.Get("Hx-Trigger"), "Verify truck failed: Documents pending review")
}

func TestMutations_RequireCSRFToken(t *testing.T) {
	h := newHarness(t)
	b := h.signIn(testSuperAdmin)

	res := b.do(http.MethodPost, "/dashboard/trucks/t-1/verify", nil, asHTMX)
	res.Body.Close()
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}
