package access

import (
	domainauth "github.com/haulmatch/admin-console/internal/domain/auth"
)

// Evaluator answers route and feature access questions from two static tables.
// It is immutable after construction and safe for concurrent use.
type Evaluator struct {
	routes   table
	features table
}

// NewEvaluator validates both tables and builds an Evaluator.
// Duplicate keys, empty role sets, and unknown role levels are rejected.
func NewEvaluator(routes, features []Policy) (*Evaluator, error) {
	rt, err := newTable("route", routes, true)
	if err != nil {
		return nil, err
	}
	ft, err := newTable("feature", features, false)
	if err != nil {
		return nil, err
	}
	return &Evaluator{routes: rt, features: ft}, nil
}

// CheckRouteAccess reports whether role may navigate to path.
// Paths without a policy are granted.
func (e *Evaluator) CheckRouteAccess(path string, role domainauth.RoleLevel) bool {
	p, ok := e.routes.lookupPath(path)
	if !ok {
		return true
	}
	return p.Allows(role)
}

// CheckFeatureAccess reports whether role may use the feature.
// Features without a policy are denied.
func (e *Evaluator) CheckFeatureAccess(feature string, role domainauth.RoleLevel) bool {
	p, ok := e.features.lookup(feature)
	if !ok {
		return false
	}
	return p.Allows(role)
}

// RoutePolicy returns the policy governing path, if any.
func (e *Evaluator) RoutePolicy(path string) (Policy, bool) { return e.routes.lookupPath(path) }

// FeaturePolicy returns the policy for a feature id, if any.
func (e *Evaluator) FeaturePolicy(feature string) (Policy, bool) { return e.features.lookup(feature) }

// Routes returns the route policies in definition order.
func (e *Evaluator) Routes() []Policy { return e.routes.all() }

// Features returns the feature policies in definition order.
func (e *Evaluator) Features() []Policy { return e.features.all() }
