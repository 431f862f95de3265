package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/haulmatch/admin-console/internal/domain/model"
	apperrors "github.com/haulmatch/admin-console/internal/errors"
	"github.com/haulmatch/admin-console/internal/service"
)

// FormParser parses a submitted form into a request plus field-level errors
// found while reading it.
type FormParser[T any] func(r *http.Request) (T, map[string]string)

// FormSubmitter sends a parsed request to the backend. id is empty in create mode.
type FormSubmitter[T any] func(ctx context.Context, c service.Caller, id string, req T) (FormResult, error)

// FormResult is what a successful submission reports back.
type FormResult struct {
	Message string
	Entity  any
}

// FormHandlerOpts contains everything HandleForm needs.
type FormHandlerOpts[T any] struct {
	Handler *UIHandlers
	W       http.ResponseWriter
	R       *http.Request
	Mode    FormMode
	Parser  FormParser[T]
	Submit  FormSubmitter[T]
	// SuccessURL is where the browser goes after a successful save.
	SuccessURL string
	// SuccessMessage is toasted when the backend returns no message of its own.
	SuccessMessage string
	PageMeta       PageMeta
	Op             string
	// ExtraData adds the form's context, e.g. the entity being edited and
	// select options, when the form is re-rendered with errors.
	ExtraData func(b *TemplateDataBuilder)
	// ErrorStatus is written with field errors on re-render. Zero leaves 200
	// so htmx swaps the response.
	ErrorStatus int
}

// HandleForm parses, submits, and either redirects on success or re-renders
// the form with inline errors.
func HandleForm[T any](opts FormHandlerOpts[T]) {
	if opts.Handler == nil || opts.Parser == nil || opts.Submit == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return
	}
	if opts.Mode != FormModeEdit && opts.Mode != FormModeCreate {
		http.Error(opts.W, "invalid form mode", http.StatusBadRequest)
		return
	}

	var id string
	if opts.Mode == FormModeEdit {
		id = strings.TrimSpace(opts.R.PathValue("id"))
		if id == "" {
			http.NotFound(opts.W, opts.R)
			return
		}
	}

	req, fieldErrors := opts.Parser(opts.R)
	if len(fieldErrors) > 0 {
		opts.fail(apperrors.Wrap(model.FieldErrors(fieldErrors), apperrors.ErrCodeValidation, errMsgFixBelow))
		return
	}

	c, err := service.CallerFrom(SessionFromContext(opts.R.Context()))
	if err != nil {
		opts.fail(err)
		return
	}
	res, err := opts.Submit(opts.R.Context(), c, id, req)
	if err != nil {
		opts.fail(err)
		return
	}

	if !IsBrowserRequest(opts.R) {
		WriteJSON(opts.W, http.StatusOK, map[string]any{"success": res.Success, "message": res.Message, "data": res.Entity})
		return
	}
	msg := res.Message
	if msg == "" {
		msg = opts.SuccessMessage
	}
	if msg != "" {
		HTMX(opts.W).Toast(msg, ToastSuccess)
	}
	redirect(opts.W, opts.R, opts.SuccessURL)
}

// fail routes a submission error to the right response: sign-out for a
// rejected session, inline errors for validation, a banner and toast otherwise.
func (fh FormHandlerOpts[T]) fail(err error) {
	h, w, r := fh.Handler, fh.W, fh.R
	if errors.Is(err, context.Canceled) {
		return
	}
	if h.endSessionIfRejected(w, r, err) {
		return
	}
	if !IsBrowserRequest(r) {
		writeFormErrorJSON(w, err)
		return
	}

	fieldErrors := formFieldErrors(err)
	general := ""
	if len(fieldErrors) == 0 {
		general = errorMessage(err)
		h.reportFailure(w, r, fh.Op, err)
	}
	fh.render(fieldErrors, general)
}

// render re-displays the form with the submitted values.
func (fh FormHandlerOpts[T]) render(fieldErrors map[string]string, general string) {
	b := fh.Handler.NewTemplateData(fh.R, fh.PageMeta).
		With("Mode", fh.Mode).
		With("Values", submittedValues(fh.R)).
		WithFieldErrors(fieldErrors)
	if general != "" {
		b.WithError(general)
	} else if len(fieldErrors) > 0 {
		b.WithError(errMsgFixBelow)
	}
	if fh.ExtraData != nil {
		fh.ExtraData(b)
	}
	if fh.ErrorStatus != 0 && len(fieldErrors) > 0 {
		fh.W.WriteHeader(fh.ErrorStatus)
	}
	fh.Handler.renderDashboardPage(fh.W, fh.R, b.Build())
}

// formFieldErrors extracts per-field messages from err: a FieldErrors set from
// request validation, or the single field named by an AppError.
func formFieldErrors(err error) map[string]string {
	if fe, ok := model.AsFieldErrors(err); ok {
		return fe
	}
	if field := apperrors.GetField(err); field != "" {
		return map[string]string{field: apperrors.GetMessage(err, errMsgFixBelow)}
	}
	return nil
}

func writeFormErrorJSON(w http.ResponseWriter, err error) {
	fields := formFieldErrors(err)
	if len(fields) == 0 {
		writeAppError(w, err)
		return
	}
	WriteJSON(w, StatusForError(err), map[string]any{
		"error":   string(apperrors.GetCode(err)),
		"message": errorMessage(err),
		"fields":  fields,
	})
}

// submittedValues flattens the posted form for re-rendering. Passwords are
// never echoed back.
func submittedValues(r *http.Request) map[string]string {
	out := map[string]string{}
	for k, vs := range r.PostForm {
		if k == "password" || k == DefaultCSRFCookieName || len(vs) == 0 {
			continue
		}
		out[k] = vs[0]
	}
	return out
}
