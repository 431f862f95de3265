package httpx

import (
	"net/http"
	"strconv"
	"strings"

	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
	"github.com/haulmatch/admin-console/internal/domain/model"
)

const maxFormBytes = 64 << 10

// parsePostForm bounds and parses the request body. Parse failures are
// reported against the "form" key.
func parsePostForm(r *http.Request) map[string]string {
	r.Body = http.MaxBytesReader(nil, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return map[string]string{"form": "The form could not be read. Please try again."}
	}
	return nil
}

func formValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostForm.Get(key))
}

// optionalString returns nil for a blank field.
func optionalString(r *http.Request, key string) *string {
	v := formValue(r, key)
	if v == "" {
		return nil
	}
	return &v
}

// optionalFloat returns nil for a blank field and records a field error for
// non-numeric input.
func optionalFloat(r *http.Request, key, label string, errs map[string]string) *float64 {
	v := formValue(r, key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil {
		errs[key] = label + " must be a number"
		return nil
	}
	return &f
}

// optionalBool reads a tri-state select: "", "true" or "false".
func optionalBool(r *http.Request, key string, errs map[string]string) *bool {
	v := formValue(r, key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		errs[key] = "Choose yes or no"
		return nil
	}
	return &b
}

func optionalRole(r *http.Request, errs map[string]string) *domainauth.RoleLevel {
	v := formValue(r, "role")
	if v == "" {
		return nil
	}
	role, err := domainauth.ParseRoleLevel(v)
	if err != nil {
		errs["role"] = "Select a role"
		return nil
	}
	return &role
}

func parseCreateAdminForm(r *http.Request) (model.CreateAdminRequest, map[string]string) {
	var req model.CreateAdminRequest
	if errs := parsePostForm(r); errs != nil {
		return req, errs
	}
	errs := map[string]string{}
	req.Username = formValue(r, "username")
	req.Password = r.PostForm.Get("password")
	req.Phone = formValue(r, "phone")
	if role := optionalRole(r, errs); role != nil {
		req.Role = *role
	}
	return req, errs
}

func parseUpdateAdminForm(r *http.Request) (model.UpdateAdminRequest, map[string]string) {
	var req model.UpdateAdminRequest
	if errs := parsePostForm(r); errs != nil {
		return req, errs
	}
	errs := map[string]string{}
	req.Phone = optionalString(r, "phone")
	req.Role = optionalRole(r, errs)
	req.IsActive = optionalBool(r, "isActive", errs)
	if pw := r.PostForm.Get("password"); pw != "" {
		req.Password = &pw
	}
	return req, errs
}

func parseLoadForm(r *http.Request) (model.UpdateLoadRequest, map[string]string) {
	var req model.UpdateLoadRequest
	if errs := parsePostForm(r); errs != nil {
		return req, errs
	}
	errs := map[string]string{}
	if s := formValue(r, "status"); s != "" {
		st := model.LoadStatus(s)
		req.Status = &st
	}
	req.Price = optionalFloat(r, "price", "Price", errs)
	req.Notes = optionalString(r, "adminNotes")
	return req, errs
}

func parseTruckForm(r *http.Request) (model.UpdateTruckRequest, map[string]string) {
	var req model.UpdateTruckRequest
	if errs := parsePostForm(r); errs != nil {
		return req, errs
	}
	errs := map[string]string{}
	req.Type = optionalString(r, "truckType")
	req.CapacityTons = optionalFloat(r, "capacity", "Capacity", errs)
	req.IsAvailable = optionalBool(r, "isAvailable", errs)
	return req, errs
}
