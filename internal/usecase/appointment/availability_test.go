package appointment

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

func TestListFreeSlots_SubtractsBooked(t *testing.T) {
	s := seededStore()
	d := testDeps(s)
	lc := newLifecycle(s)
	mustBook(t, lc, bookIn(patientA, tuesday, availability.MustTimeOfDay("09:00")))
	mustBook(t, lc, bookIn(patientB, tuesday, availability.MustTimeOfDay("16:30")))

	free, err := NewCheckAvailability(d, nil).Execute(context.Background(), domain.AvailabilityInput{DoctorID: doctorID, Date: tuesday})
	require.NoError(t, err)

	assert.Len(t, free, 15)
	assert.Equal(t, "09:30", free[0].String())
	assert.Equal(t, "17:00", free[len(free)-1].String())
	assert.NotContains(t, free, availability.MustTimeOfDay("16:30"))
	assert.True(t, slices.IsSorted(free))
}

func TestListFreeSlots_CancelledSlotIsFreeAgain(t *testing.T) {
	s := seededStore()
	lc := newLifecycle(s)
	ap := mustBook(t, lc, bookIn(patientA, tuesday, ten))
	_, err := lc.cancel.Execute(context.Background(), asA, ap.ID)
	require.NoError(t, err)

	free, err := NewCheckAvailability(testDeps(s), nil).Execute(context.Background(), domain.AvailabilityInput{DoctorID: doctorID, Date: tuesday})
	require.NoError(t, err)
	assert.Contains(t, free, ten)
}

func TestListFreeSlots_Bounds(t *testing.T) {
	s := seededStore()
	uc := NewCheckAvailability(testDeps(s), nil)
	ctx := context.Background()

	for name, date := range map[string]time.Time{
		"day off":     thursday,
		"past":        tuesday.AddDate(0, 0, -7),
		"beyond":      tuesday.AddDate(0, 6, 0),
		"weekend day": time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
	} {
		free, err := uc.Execute(ctx, domain.AvailabilityInput{DoctorID: doctorID, Date: date})
		require.NoError(t, err, name)
		assert.Empty(t, free, name)
	}

	_, err := uc.Execute(ctx, domain.AvailabilityInput{DoctorID: 404, Date: tuesday})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestListFreeSlots_TodaySkipsPastSlots(t *testing.T) {
	s := seededStore()
	d := testDeps(s)
	d.Clock = timezone.FixedClock(time.Date(2026, 10, 13, 12, 10, 0, 0, time.UTC))

	free, err := NewCheckAvailability(d, nil).Execute(context.Background(), domain.AvailabilityInput{DoctorID: doctorID, Date: tuesday})
	require.NoError(t, err)
	assert.Equal(t, "12:30", free[0].String())
}

func TestIsSlotFree(t *testing.T) {
	s := seededStore()
	lc := newLifecycle(s)
	ap := mustBook(t, lc, bookIn(patientA, tuesday, ten))
	uc := NewCheckAvailability(testDeps(s), nil)
	ctx := context.Background()

	free, err := uc.IsSlotFree(ctx, domain.SlotQuery{DoctorID: doctorID, Date: tuesday, Time: ten})
	require.NoError(t, err)
	assert.False(t, free)

	free, err = uc.IsSlotFree(ctx, domain.SlotQuery{DoctorID: doctorID, Date: tuesday, Time: ten, ExcludeAppointmentID: &ap.ID})
	require.NoError(t, err)
	assert.True(t, free)

	_, err = uc.IsSlotFree(ctx, domain.SlotQuery{DoctorID: doctorID, Date: tuesday, Time: availability.TimeOfDay(-1)})
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidArgument))
}

func TestSlots_AnnotatesFreedom(t *testing.T) {
	s := seededStore()
	mustBook(t, newLifecycle(s), bookIn(patientA, tuesday, ten))

	slots, err := NewCheckAvailability(testDeps(s), nil).Slots(context.Background(), domain.AvailabilityInput{DoctorID: doctorID, Date: tuesday})
	require.NoError(t, err)
	require.Len(t, slots, 17)

	for _, sl := range slots {
		assert.Equal(t, sl.Time != ten, sl.Free, sl.Time.String())
	}
}
