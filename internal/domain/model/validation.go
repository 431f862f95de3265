//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 64
	minPasswordLen = 8
	phoneDigits    = 10
	maxNotesLen    = 1000
)

// FieldErrors maps form field names to a message. It is an error when non-empty.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	if len(f) == 0 {
		return "no validation errors"
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (f FieldErrors) orNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

// AsFieldErrors extracts FieldErrors from err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Validate checks the new operator's details before they reach the backend.
func (r *CreateAdminRequest) Validate() error {
	errs := FieldErrors{}
	r.Username = strings.TrimSpace(r.Username)
	r.Phone = strings.TrimSpace(r.Phone)

	switch n := utf8.RuneCountInString(r.Username); {
	case n == 0:
		errs["username"] = "Username is required"
	case n < minUsernameLen || n > maxUsernameLen:
		errs["username"] = "Username must be between 3 and 64 characters"
	}
	if len(r.Password) < minPasswordLen {
		errs["password"] = "Password must be at least 8 characters"
	}
	if msg := phoneProblem(r.Phone); msg != "" {
		errs["phone"] = msg
	}
	if !r.Role.Valid() {
		errs["role"] = "Select a role"
	}
	return errs.orNil()
}

// HasUpdates reports whether any field is set.
func (r *UpdateAdminRequest) HasUpdates() bool {
	return r.Phone != nil || r.Role != nil || r.IsActive != nil || r.Password != nil
}

// Validate checks the fields being changed.
func (r *UpdateAdminRequest) Validate() error {
	if !r.HasUpdates() {
		return FieldErrors{"form": "Change at least one field"}
	}
	errs := FieldErrors{}
	if r.Phone != nil {
		if msg := phoneProblem(strings.TrimSpace(*r.Phone)); msg != "" {
			errs["phone"] = msg
		}
	}
	if r.Role != nil && !r.Role.Valid() {
		errs["role"] = "Select a role"
	}
	if r.Password != nil && len(*r.Password) < minPasswordLen {
		errs["password"] = "Password must be at least 8 characters"
	}
	return errs.orNil()
}

// Validate checks a load edit.
func (r *UpdateLoadRequest) Validate() error {
	if r.Status == nil && r.Price == nil && r.Notes == nil {
		return FieldErrors{"form": "Change at least one field"}
	}
	errs := FieldErrors{}
	if r.Status != nil && !r.Status.Valid() {
		errs["status"] = "Unknown load status"
	}
	if r.Price != nil && *r.Price <= 0 {
		errs["price"] = "Price must be greater than zero"
	}
	if r.Notes != nil && utf8.RuneCountInString(*r.Notes) > maxNotesLen {
		errs["adminNotes"] = "Notes cannot exceed 1000 characters"
	}
	return errs.orNil()
}

// Validate checks a truck edit.
func (r *UpdateTruckRequest) Validate() error {
	if r.Type == nil && r.CapacityTons == nil && r.IsAvailable == nil {
		return FieldErrors{"form": "Change at least one field"}
	}
	errs := FieldErrors{}
	if r.Type != nil && strings.TrimSpace(*r.Type) == "" {
		errs["truckType"] = "Truck type cannot be empty"
	}
	if r.CapacityTons != nil && *r.CapacityTons <= 0 {
		errs["capacity"] = "Capacity must be greater than zero"
	}
	return errs.orNil()
}

// Valid reports whether s is a known load status.
func (s LoadStatus) Valid() bool {
	for _, v := range LoadStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

func phoneProblem(phone string) string {
	if phone == "" {
		return "Phone number is required"
	}
	if len(phone) != phoneDigits {
		return "Phone number must be 10 digits"
	}
	for _, r := range phone {
		if !unicode.IsDigit(r) {
			return "Phone number must be 10 digits"
		}
	}
	return ""
}
