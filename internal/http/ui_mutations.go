package httpx

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/haulmatch/admin-console/internal/domain/access"
	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
	"github.com/haulmatch/admin-console/internal/domain/model"
	"github.com/haulmatch/admin-console/internal/service"
)

// pathFor fills the {id} segment of a route pattern.
func pathFor(pattern, id string) string {
	return strings.Replace(pattern, "{id}", id, 1)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func adminFormMeta(mode FormMode) PageMeta {
	if mode == FormModeCreate {
		return PageMeta{Title: "HaulMatch Admin - New admin user", PageTitle: "New admin user", CurrentPage: PageAdminUserForm}
	}
	return PageMeta{Title: "HaulMatch Admin - Edit admin user", PageTitle: "Edit admin user", CurrentPage: PageAdminUserForm}
}

func adminFormExtras(mode FormMode, id string) func(b *TemplateDataBuilder) {
	return func(b *TemplateDataBuilder) {
		b.With("Roles", domainauth.AllRoleLevels()).With("EntityID", id)
		if mode == FormModeEdit {
			b.With("Action", pathFor(access.RouteAdminUserEdit, id))
		} else {
			b.With("Action", access.RouteAdminUserCreate)
		}
	}
}

// AdminUserNew renders the empty create form.
func (h *UIHandlers) AdminUserNew(w http.ResponseWriter, r *http.Request) {
	b := h.NewTemplateData(r, adminFormMeta(FormModeCreate)).
		With("Mode", FormModeCreate).
		With("Values", map[string]string{})
	adminFormExtras(FormModeCreate, "")(b)
	h.renderDashboardPage(w, r, b.Build())
}

// AdminUserCreate submits the create form.
func (h *UIHandlers) AdminUserCreate(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[model.CreateAdminRequest]{
		Handler: h,
		W:       w,
		R:       r,
		Mode:    FormModeCreate,
		Parser:  parseCreateAdminForm,
		Submit: func(ctx context.Context, c service.Caller, _ string, req model.CreateAdminRequest) (FormResult, error) {
			res, err := h.Marketplace.CreateAdmin(ctx, c, req)
			return FormResult{Message: res.Message, Entity: res.Entity}, err
		},
		SuccessURL:     access.RouteAdminUsers,
		SuccessMessage: "Admin user created",
		PageMeta:       adminFormMeta(FormModeCreate),
		Op:             "Create admin user",
		ExtraData:      adminFormExtras(FormModeCreate, ""),
	})
}

// AdminUserEdit renders the edit form filled from the backend record.
func (h *UIHandlers) AdminUserEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.Page(w, r, PageSpec{
		Meta: adminFormMeta(FormModeEdit),
		Op:   "Load admin user",
		Fetch: func(ctx context.Context, c service.Caller, data map[string]any) error {
			data["Mode"] = FormModeEdit
			data["Roles"] = domainauth.AllRoleLevels()
			data["EntityID"] = id
			data["Action"] = pathFor(access.RouteAdminUserEdit, id)
			a, err := h.Marketplace.GetAdmin(ctx, c, id)
			if err != nil {
				return err
			}
			data["Entity"] = a
			data["Values"] = map[string]string{
				"username": a.Username,
				"phone":    a.Phone,
				"role":     strconv.Itoa(int(a.Role)),
				"isActive": strconv.FormatBool(a.IsActive),
			}
			return nil
		},
	})
}

// AdminUserUpdate submits the edit form.
func (h *UIHandlers) AdminUserUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	HandleForm(FormHandlerOpts[model.UpdateAdminRequest]{
		Handler: h,
		W:       w,
		R:       r,
		Mode:    FormModeEdit,
		Parser:  parseUpdateAdminForm,
		Submit: func(ctx context.Context, c service.Caller, id string, req model.UpdateAdminRequest) (FormResult, error) {
			res, err := h.Marketplace.UpdateAdmin(ctx, c, id, req)
			return FormResult{Message: res.Message, Entity: res.Entity}, err
		},
		SuccessURL:     access.RouteAdminUsers,
		SuccessMessage: "Admin user updated",
		PageMeta:       adminFormMeta(FormModeEdit),
		Op:             "Update admin user",
		ExtraData:      adminFormExtras(FormModeEdit, id),
	})
}

func loadEditMeta() PageMeta {
	return PageMeta{Title: "HaulMatch Admin - Edit load", PageTitle: "Edit load", CurrentPage: PageLoadEdit}
}

// LoadEdit renders the load edit form.
func (h *UIHandlers) LoadEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.Page(w, r, PageSpec{
		Meta: loadEditMeta(),
		Op:   "Load load",
		Fetch: func(ctx context.Context, c service.Caller, data map[string]any) error {
			data["Mode"] = FormModeEdit
			data["LoadStatuses"] = model.LoadStatuses()
			data["EntityID"] = id
			l, err := h.Marketplace.GetLoad(ctx, c, id)
			if err != nil {
				return err
			}
			data["Entity"] = l
			data["Values"] = map[string]string{
				"status": string(l.Status),
				"price":  formatFloat(l.Price),
			}
			return nil
		},
	})
}

// LoadUpdate submits the load edit form.
func (h *UIHandlers) LoadUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	HandleForm(FormHandlerOpts[model.UpdateLoadRequest]{
		Handler: h,
		W:       w,
		R:       r,
		Mode:    FormModeEdit,
		Parser:  parseLoadForm,
		Submit: func(ctx context.Context, c service.Caller, id string, req model.UpdateLoadRequest) (FormResult, error) {
			res, err := h.Marketplace.UpdateLoad(ctx, c, id, req)
			return FormResult{Message: res.Message, Entity: res.Entity}, err
		},
		SuccessURL:     access.RouteLoads,
		SuccessMessage: "Load updated",
		PageMeta:       loadEditMeta(),
		Op:             "Update load",
		ExtraData: func(b *TemplateDataBuilder) {
			b.With("LoadStatuses", model.LoadStatuses()).With("EntityID", id)
		},
	})
}

func truckEditMeta() PageMeta {
	return PageMeta{Title: "HaulMatch Admin - Edit truck", PageTitle: "Edit truck", CurrentPage: PageTruckEdit}
}

// TruckEdit renders the truck edit form.
func (h *UIHandlers) TruckEdit(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.Page(w, r, PageSpec{
		Meta: truckEditMeta(),
		Op:   "Load truck",
		Fetch: func(ctx context.Context, c service.Caller, data map[string]any) error {
			data["Mode"] = FormModeEdit
			data["EntityID"] = id
			t, err := h.Marketplace.GetTruck(ctx, c, id)
			if err != nil {
				return err
			}
			data["Entity"] = t
			data["Values"] = map[string]string{
				"truckType":   t.Type,
				"capacity":    formatFloat(t.CapacityTons),
				"isAvailable": strconv.FormatBool(t.IsAvailable),
			}
			return nil
		},
	})
}

// TruckUpdate submits the truck edit form.
func (h *UIHandlers) TruckUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	HandleForm(FormHandlerOpts[model.UpdateTruckRequest]{
		Handler: h,
		W:       w,
		R:       r,
		Mode:    FormModeEdit,
		Parser:  parseTruckForm,
		Submit: func(ctx context.Context, c service.Caller, id string, req model.UpdateTruckRequest) (FormResult, error) {
			res, err := h.Marketplace.UpdateTruck(ctx, c, id, req)
			return FormResult{Message: res.Message, Entity: res.Entity}, err
		},
		SuccessURL:     access.RouteTrucks,
		SuccessMessage: "Truck updated",
		PageMeta:       truckEditMeta(),
		Op:             "Update truck",
		ExtraData: func(b *TemplateDataBuilder) {
			b.With("EntityID", id)
		},
	})
}

// TruckVerify marks a truck verified and returns to the trucks list.
func (h *UIHandlers) TruckVerify(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, err := h.caller(r)
	var res model.MutationResult[model.Truck]
	if err == nil {
		res, err = h.Marketplace.VerifyTruck(r.Context(), c, id)
	}
	if err != nil {
		if h.endSessionIfRejected(w, r, err) {
			return
		}
		if !IsBrowserRequest(r) {
			writeAppError(w, err)
			return
		}
		h.reportFailure(w, r, "Verify truck", err)
		if IsHTMX(r) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		redirect(w, r, access.RouteTrucks)
		return
	}

	if !IsBrowserRequest(r) {
		WriteJSON(w, http.StatusOK, res)
		return
	}
	msg := res.Message
	if msg == "" {
		msg = "Truck verified"
	}
	HTMX(w).Toast(msg, ToastSuccess)
	redirect(w, r, access.RouteTrucks)
}
