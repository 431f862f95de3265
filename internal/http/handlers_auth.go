package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/haulmatch/admin-console/internal/domain/access"
	apperrors "github.com/haulmatch/admin-console/internal/errors"
	"github.com/haulmatch/admin-console/internal/service"
)

const msgAttemptExpired = "Your login attempt expired. Please sign in again."

func loginMeta() PageMeta {
	return PageMeta{Title: "HaulMatch Admin - Sign in", PageTitle: "Sign in", CurrentPage: PageLogin}
}

func verifyMeta() PageMeta {
	return PageMeta{Title: "HaulMatch Admin - Verify OTP", PageTitle: "Verify OTP", CurrentPage: PageVerifyOTP}
}

// manager returns the request's session manager or writes a 500.
func (h *UIHandlers) manager(w http.ResponseWriter, r *http.Request) (*service.Manager, bool) {
	m, ok := ManagerFromContext(r.Context())
	if !ok {
		h.logger().ErrorContext(r.Context(), "session manager missing from request context", "path", r.URL.Path)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
	}
	return m, ok
}

// Root sends signed-in admins to the dashboard and everyone else to login.
func (h *UIHandlers) Root(w http.ResponseWriter, r *http.Request) {
	target := access.RouteLogin
	if SessionFromContext(r.Context()).IsAuthenticated {
		target = access.RouteDashboard
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// LoginPage renders the username and password form.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, loginMeta())
	data["Values"] = map[string]string{}
	h.renderDashboardPage(w, r, data)
}

// LoginSubmit checks the password with the backend. On success an OTP has
// been sent and the browser moves on to the verification screen.
func (h *UIHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	m, ok := h.manager(w, r)
	if !ok {
		return
	}
	if errs := parsePostForm(r); errs != nil {
		h.renderAuthForm(w, r, loginMeta(), errs, "")
		return
	}
	username := formValue(r, "username")
	challenge, err := h.Login.Begin(r.Context(), m, username, r.PostForm.Get("password"))
	if err != nil {
		h.authFailure(w, r, loginMeta(), err)
		return
	}

	if !IsBrowserRequest(r) {
		WriteJSON(w, http.StatusOK, map[string]any{"success": true, "message": challenge.Message, "phone": challenge.PhoneSuffix})
		return
	}
	target := access.RouteVerifyOTP
	if challenge.PhoneSuffix != "" {
		target += "?" + url.Values{"to": {challenge.PhoneSuffix}}.Encode()
	}
	HTMX(w).Toast(challenge.Message, ToastInfo)
	redirect(w, r, target)
}

// VerifyPage renders the OTP form. Without a pending login it returns to the
// login screen.
func (h *UIHandlers) VerifyPage(w http.ResponseWriter, r *http.Request) {
	m, ok := h.manager(w, r)
	if !ok {
		return
	}
	username, pending := m.PendingUsername(r.Context())
	if !pending {
		redirect(w, r, access.RouteLogin)
		return
	}
	data := h.basePageData(r, verifyMeta())
	data["PendingUsername"] = username
	data["PhoneSuffix"] = strings.TrimSpace(r.URL.Query().Get("to"))
	data["OTPLength"] = service.OTPLength
	h.renderDashboardPage(w, r, data)
}

// VerifySubmit checks the OTP and signs the client in.
func (h *UIHandlers) VerifySubmit(w http.ResponseWriter, r *http.Request) {
	m, ok := h.manager(w, r)
	if !ok {
		return
	}
	if _, pending := m.PendingUsername(r.Context()); !pending {
		if !IsBrowserRequest(r) {
			writeAppError(w, apperrors.Unauthenticated(msgAttemptExpired))
			return
		}
		HTMX(w).Toast(msgAttemptExpired, ToastInfo)
		redirect(w, r, access.RouteLogin)
		return
	}
	if errs := parsePostForm(r); errs != nil {
		h.renderAuthForm(w, r, verifyMeta(), errs, "")
		return
	}

	admin, err := h.Login.Verify(r.Context(), m, r.PostForm.Get("otp"))
	if err != nil {
		h.authFailure(w, r, verifyMeta(), err)
		return
	}
	if !IsBrowserRequest(r) {
		WriteJSON(w, http.StatusOK, map[string]any{"success": true, "admin": admin})
		return
	}
	redirect(w, r, access.RouteDashboard)
}

// Logout clears the client's session everywhere and returns to login.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	m, ok := h.manager(w, r)
	if !ok {
		return
	}
	target := m.Logout(r.Context())
	if !IsBrowserRequest(r) {
		WriteJSON(w, http.StatusOK, map[string]any{"success": true, "redirect": target})
		return
	}
	redirect(w, r, target)
}

// AuthStatus reports the session state and re-checks the token with the
// backend without changing the session.
func (h *UIHandlers) AuthStatus(w http.ResponseWriter, r *http.Request) {
	m, ok := h.manager(w, r)
	if !ok {
		return
	}
	s := m.Snapshot()
	body := map[string]any{
		"authenticated": s.IsAuthenticated,
		"loading":       s.IsLoading,
		"valid":         m.CheckAuth(r.Context()),
	}
	if s.Admin != nil {
		body["admin"] = map[string]any{
			"id":       s.Admin.ID,
			"username": s.Admin.Username,
			"role":     int(s.Admin.Role),
			"roleName": s.Admin.Role.String(),
		}
	}
	w.Header().Set("Cache-Control", "no-store")
	WriteJSON(w, http.StatusOK, body)
}

// Unauthorized explains that the role may not open the requested screen.
func (h *UIHandlers) Unauthorized(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, PageMeta{
		Title:       "HaulMatch Admin - Access denied",
		PageTitle:   "Access denied",
		CurrentPage: PageUnauthorized,
	})
	w.WriteHeader(http.StatusForbidden)
	h.renderDashboardPage(w, r, data)
}

// NotFound renders the 404 page, or a JSON error for API callers.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: string(apperrors.ErrCodeNotFound)})
		return
	}
	data := h.basePageData(r, PageMeta{Title: "HaulMatch Admin - Not found", PageTitle: "Page not found", CurrentPage: PageNotFound})
	w.WriteHeader(http.StatusNotFound)
	h.renderDashboardPage(w, r, data)
}

// authFailure re-renders a sign-in form for err. Validation problems stay
// inline; everything else is shown as a banner.
func (h *UIHandlers) authFailure(w http.ResponseWriter, r *http.Request, meta PageMeta, err error) {
	if errors.Is(r.Context().Err(), context.Canceled) {
		return
	}
	if !IsBrowserRequest(r) {
		writeFormErrorJSON(w, err)
		return
	}
	fields := formFieldErrors(err)
	general := ""
	if len(fields) == 0 {
		general = errorMessage(err)
		h.logger().InfoContext(r.Context(), "sign-in step rejected",
			"page", meta.CurrentPage,
			"code", string(apperrors.GetCode(err)),
		)
	}
	h.renderAuthForm(w, r, meta, fields, general)
}

func (h *UIHandlers) renderAuthForm(w http.ResponseWriter, r *http.Request, meta PageMeta, fields map[string]string, general string) {
	data := h.basePageData(r, meta)
	data["Values"] = submittedValues(r)
	if len(fields) > 0 {
		data["Errors"] = fields
	}
	if general != "" {
		markPageError(data, general)
	}
	if meta.CurrentPage == PageVerifyOTP {
		data["OTPLength"] = service.OTPLength
		if m, ok := ManagerFromContext(r.Context()); ok {
			data["PendingUsername"], _ = m.PendingUsername(r.Context())
		}
	}
	h.renderDashboardPage(w, r, data)
}
