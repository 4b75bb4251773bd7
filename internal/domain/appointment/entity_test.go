package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var now = time.Date(2026, 10, 12, 8, 0, 0, 0, time.UTC)

func booked() *models.Appointment {
	return &models.Appointment{
		ID:              1,
		Status:          string(StatusBooked),
		AppointmentDate: time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC),
		AppointmentTime: availability.MustTimeOfDay("10:00"),
	}
}

func TestCancel(t *testing.T) {
	ap := booked()

	changed, err := Cancel(ap, now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, now, ap.UpdatedAt)

	changed, err = Cancel(ap, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, now, ap.UpdatedAt)
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, st := range []Status{StatusCompleted, StatusNoShow} {
		ap := booked()
		ap.Status = string(st)

		_, err := Cancel(ap, now)
		assert.True(t, httperr.IsKind(err, httperr.KindInvalidTransition), st)

		assert.True(t, httperr.IsKind(Complete(ap, nil, now), httperr.KindInvalidTransition), st)
		assert.True(t, httperr.IsKind(MarkNoShow(ap, now), httperr.KindInvalidTransition), st)
		assert.True(t, httperr.IsKind(Reschedule(ap, now, availability.MustTimeOfDay("11:00"), now), httperr.KindInvalidTransition), st)
		assert.Equal(t, string(st), ap.Status)
	}

	ap := booked()
	ap.Status = string(StatusCancelled)
	assert.True(t, httperr.IsKind(Complete(ap, nil, now), httperr.KindInvalidTransition))
}

func TestComplete_TrimsNotes(t *testing.T) {
	ap := booked()
	notes := "  follow up in 2 weeks "

	require.NoError(t, Complete(ap, &notes, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	require.NotNil(t, ap.Notes)
	assert.Equal(t, "follow up in 2 weeks", *ap.Notes)
}

func TestReschedule_NormalizesDate(t *testing.T) {
	ap := booked()
	loc := time.FixedZone("BRT", -3*60*60)

	require.NoError(t, Reschedule(ap, time.Date(2026, 10, 15, 22, 0, 0, 0, loc), availability.MustTimeOfDay("14:30"), now))
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), ap.AppointmentDate)
	assert.Equal(t, "14:30", ap.AppointmentTime.String())
	assert.Equal(t, string(StatusBooked), ap.Status)
}

func TestIsUpcoming(t *testing.T) {
	ap := booked()
	assert.True(t, IsUpcoming(ap, now))

	for _, st := range []Status{StatusCancelled, StatusCompleted, StatusNoShow} {
		closed := booked()
		closed.Status = string(st)
		assert.False(t, IsUpcoming(closed, now), st)
	}

	ap.AppointmentDate = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	ap.AppointmentTime = availability.MustTimeOfDay("07:30")
	assert.False(t, IsUpcoming(ap, now))
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("no-show")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, st)
	assert.True(t, st.Terminal())

	_, err = ParseStatus("pending")
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidArgument))
}
