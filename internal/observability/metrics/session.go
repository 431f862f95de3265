// Package metrics turns console events into StatsD metrics.
package metrics

import (
	"time"

	obserrors "github.com/haulmatch/admin-console/internal/observability/errors"
	"github.com/haulmatch/admin-console/internal/observability/statsd"
)

// Result tag values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultInvalid = "invalid"
)

// Guard decision tag values.
const (
	DecisionAllow        = "allow"
	DecisionLogin        = "login"
	DecisionDashboard    = "dashboard"
	DecisionUnauthorized = "unauthorized"
)

// SessionMetrics emits session lifecycle and route guard metrics.
// A nil *SessionMetrics or a nil sink is a no-op.
type SessionMetrics struct {
	sink statsd.Sink
}

// NewSessionMetrics wraps sink.
func NewSessionMetrics(sink statsd.Sink) *SessionMetrics {
	return &SessionMetrics{sink: sink}
}

func (m *SessionMetrics) enabled() bool { return m != nil && m.sink != nil }

// Validate records one token validation against the backend.
func (m *SessionMetrics) Validate(ok bool, d time.Duration, err error) {
	if !m.enabled() {
		return
	}
	tags := map[string]string{"result": ResultSuccess}
	if !ok {
		tags["result"] = ResultInvalid
		if class := obserrors.Classify(err); class != "" {
			tags["error_class"] = class
		}
	}
	m.sink.Count("session.validate", 1, tags)
	m.sink.Timing("session.validate.duration", d, CloneTags(tags))
}

// Initialize records how a client's first request resolved.
func (m *SessionMetrics) Initialize(authenticated bool, d time.Duration) {
	if !m.enabled() {
		return
	}
	tags := map[string]string{"authenticated": boolTag(authenticated)}
	m.sink.Count("session.initialize", 1, tags)
	m.sink.Timing("session.initialize.duration", d, CloneTags(tags))
}

// Login records a login attempt at the given step ("password" or "otp").
func (m *SessionMetrics) Login(step string, err error) {
	if !m.enabled() {
		return
	}
	tags := map[string]string{"step": step, "result": ResultSuccess}
	if err != nil {
		tags["result"] = ResultError
		tags["error_class"] = obserrors.Classify(err)
	}
	m.sink.Count("session.login", 1, tags)
}

// Logout records a logout.
func (m *SessionMetrics) Logout() {
	if !m.enabled() {
		return
	}
	m.sink.Count("session.logout", 1, nil)
}

// GuardDecision records one route guard outcome.
func (m *SessionMetrics) GuardDecision(decision string) {
	if !m.enabled() {
		return
	}
	m.sink.Count("guard.decision", 1, map[string]string{"decision": decision})
}

// ActiveClients reports the number of live session managers.
func (m *SessionMetrics) ActiveClients(n int) {
	if !m.enabled() {
		return
	}
	m.sink.Gauge("session.active_clients", float64(n), nil)
}

// CloneTags copies a tag map, dropping empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		if k != "" {
			out[k] = v
		}
	}
	return out
}

func boolTag(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
