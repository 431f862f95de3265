//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
)

// CreateAdminRequest is the payload for POST /admin/create.
type CreateAdminRequest struct {
	Username string               `json:"username"`
	Password string               `json:"password"`
	Phone    string               `json:"phone"`
	Role     domainauth.RoleLevel `json:"role"`
}

// UpdateAdminRequest is the payload for PUT /admin/update/{id}. Nil fields are left unchanged.
type UpdateAdminRequest struct {
	Phone    *string               `json:"phone,omitempty"`
	Role     *domainauth.RoleLevel `json:"role,omitempty"`
	IsActive *bool                 `json:"isActive,omitempty"`
	Password *string               `json:"password,omitempty"`
}

// UpdateLoadRequest is the payload for PUT /admin/loads/{id}.
type UpdateLoadRequest struct {
	Status *LoadStatus `json:"status,omitempty"`
	Price  *float64    `json:"price,omitempty"`
	Notes  *string     `json:"adminNotes,omitempty"`
}

// UpdateTruckRequest is the payload for PUT /admin/trucks/{id}.
type UpdateTruckRequest struct {
	Type         *string  `json:"truckType,omitempty"`
	CapacityTons *float64 `json:"capacity,omitempty"`
	IsAvailable  *bool    `json:"isAvailable,omitempty"`
}

// MutationResult is the backend's acknowledgement of a write.
type MutationResult[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Entity  T      `json:"data"`
}
