package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := Nop()

	m.Booking(OutcomeBooked)
	m.Booking(OutcomeConflict)
	m.Booking(OutcomeConflict)
	m.Transition("cancel", nil)
	m.Transition("cancel", errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Bookings.WithLabelValues(OutcomeBooked)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Bookings.WithLabelValues(OutcomeConflict)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Transitions.WithLabelValues("cancel", "error")))
}

func TestHandler(t *testing.T) {
	m := Nop()
	m.Maintenance("reset", nil)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `clinic_maintenance_runs_total{operation="reset",result="ok"} 1`))
}
