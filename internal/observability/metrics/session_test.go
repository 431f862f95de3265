package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haulmatch/admin-console/internal/observability/statsd"
)

type profileError struct{}

func (profileError) Error() string { return "profile failed" }

func TestSessionMetrics_Validate(t *testing.T) {
	rec := &statsd.Recorder{}
	m := NewSessionMetrics(rec)

	m.Validate(true, 20*time.Millisecond, nil)
	m.Validate(false, 5*time.Millisecond, profileError{})

	counts := rec.Named("session.validate")
	require.Len(t, counts, 2)
	assert.Equal(t, ResultSuccess, counts[0].Tags["result"])
	assert.Equal(t, ResultInvalid, counts[1].Tags["result"])
	assert.Equal(t, "metrics_profileerror", counts[1].Tags["error_class"])

	timings := rec.Named("session.validate.duration")
	require.Len(t, timings, 2)
	assert.InDelta(t, 20.0, timings[0].Value, 0.001)
}

func TestSessionMetrics_LoginAndGuard(t *testing.T) {
	rec := &statsd.Recorder{}
	m := NewSessionMetrics(rec)

	m.Login("otp", errors.New("bad otp"))
	m.GuardDecision(DecisionUnauthorized)
	m.ActiveClients(3)
	m.Logout()

	login := rec.Named("session.login")
	require.Len(t, login, 1)
	assert.Equal(t, ResultError, login[0].Tags["result"])
	assert.Equal(t, "otp", login[0].Tags["step"])

	guard := rec.Named("guard.decision")
	require.Len(t, guard, 1)
	assert.Equal(t, DecisionUnauthorized, guard[0].Tags["decision"])

	gauge := rec.Named("session.active_clients")
	require.Len(t, gauge, 1)
	assert.Equal(t, 3.0, gauge[0].Value)
	assert.Len(t, rec.Named("session.logout"), 1)
}

func TestSessionMetrics_NilSafe(t *testing.T) {
	var m *SessionMetrics
	assert.NotPanics(t, func() {
		m.Validate(true, time.Millisecond, nil)
		m.Login("password", nil)
		m.Logout()
		NewSessionMetrics(nil).GuardDecision(DecisionAllow)
	})
}
