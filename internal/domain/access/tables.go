package access

import (
	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
)

// Feature identifiers gated by CheckFeatureAccess.
const (
	FeatureCreateUser       = "CREATE_USER"
	FeatureUpdateAdmin      = "UPDATE_ADMIN"
	FeatureEditLoad         = "EDIT_LOAD"
	FeatureEditTruck        = "EDIT_TRUCK"
	FeatureVerifyTruck      = "VERIFY_TRUCK"
	FeatureViewPhoneNumbers = "VIEW_PHONE_NUMBERS"
	FeatureViewStats        = "VIEW_STATS"
)

// Console route paths.
const (
	RouteDashboard       = "/dashboard"
	RouteUsers           = "/dashboard/users"
	RouteUserDetail      = "/dashboard/users/{id}"
	RouteLoads           = "/dashboard/loads"
	RouteLoadEdit        = "/dashboard/loads/{id}/edit"
	RouteTrucks          = "/dashboard/trucks"
	RouteTruckEdit       = "/dashboard/trucks/{id}/edit"
	RouteTruckVerify     = "/dashboard/trucks/{id}/verify"
	RouteBids            = "/dashboard/bids"
	RouteSearch          = "/dashboard/search"
	RouteStats           = "/dashboard/stats"
	RouteAdminUsers      = "/dashboard/admin-users"
	RouteAdminUserCreate = "/dashboard/admin-users/new"
	RouteAdminUserEdit   = "/dashboard/admin-users/{id}/edit"
	RouteProfile         = "/dashboard/profile"
)

const (
	entry      = domainauth.RoleEntryLevel
	tech       = domainauth.RoleTech
	support    = domainauth.RoleSupport
	finance    = domainauth.RoleFinance
	operations = domainauth.RoleOperations
	marketing  = domainauth.RoleMarketing
	superAdmin = domainauth.RoleSuperAdmin
)

// DefaultRoutePolicies is the console's route table.
func DefaultRoutePolicies() []Policy {
	return []Policy{
		{Key: RouteDashboard, AllowedRoles: AllRoles(), Description: "Overview"},
		{Key: RouteProfile, AllowedRoles: AllRoles(), Description: "Own profile"},
		{Key: RouteUsers, AllowedRoles: Roles(superAdmin, entry, tech, support, operations, marketing), Description: "Transporters and truckers"},
		{Key: RouteUserDetail, AllowedRoles: Roles(superAdmin, tech, support, operations), Description: "User detail"},
		{Key: RouteLoads, AllowedRoles: Roles(superAdmin, entry, tech, support, operations), Description: "Posted loads"},
		{Key: RouteLoadEdit, AllowedRoles: Roles(superAdmin, operations), Description: "Edit a load"},
		{Key: RouteTrucks, AllowedRoles: Roles(superAdmin, entry, tech, support, operations), Description: "Registered trucks"},
		{Key: RouteTruckEdit, AllowedRoles: Roles(superAdmin, operations), Description: "Edit a truck"},
		{Key: RouteTruckVerify, AllowedRoles: Roles(superAdmin, support, operations), Description: "Verify a truck"},
		{Key: RouteBids, AllowedRoles: Roles(superAdmin, tech, support, operations, finance), Description: "Load bids and truck requests"},
		{Key: RouteSearch, AllowedRoles: Roles(superAdmin, entry, tech, support, operations, marketing), Description: "Cross-entity search"},
		{Key: RouteStats, AllowedRoles: Roles(superAdmin, finance, operations, marketing), Description: "Marketplace statistics"},
		{Key: RouteAdminUsers, AllowedRoles: Roles(superAdmin, tech, support, operations, marketing), Description: "Console operators"},
		{Key: RouteAdminUserCreate, AllowedRoles: Roles(superAdmin), Description: "Create a console operator"},
		{Key: RouteAdminUserEdit, AllowedRoles: Roles(superAdmin), Description: "Edit a console operator"},
	}
}

// DefaultFeaturePolicies is the console's feature table.
func DefaultFeaturePolicies() []Policy {
	return []Policy{
		{Key: FeatureCreateUser, AllowedRoles: Roles(superAdmin), Description: "Create console operators"},
		{Key: FeatureUpdateAdmin, AllowedRoles: Roles(superAdmin), Description: "Change operator details and roles"},
		{Key: FeatureEditLoad, AllowedRoles: Roles(superAdmin, operations), Description: "Edit load details and status"},
		{Key: FeatureEditTruck, AllowedRoles: Roles(superAdmin, operations), Description: "Edit truck details"},
		{Key: FeatureVerifyTruck, AllowedRoles: Roles(superAdmin, support, operations), Description: "Mark trucks verified"},
		{Key: FeatureViewPhoneNumbers, AllowedRoles: Roles(superAdmin, support, operations), Description: "See unmasked phone numbers"},
		{Key: FeatureViewStats, AllowedRoles: Roles(superAdmin, finance, operations, marketing), Description: "See statistics panels"},
	}
}

// NewDefaultEvaluator builds an Evaluator over the default tables.
func NewDefaultEvaluator() (*Evaluator, error) {
	return NewEvaluator(DefaultRoutePolicies(), DefaultFeaturePolicies())
}
