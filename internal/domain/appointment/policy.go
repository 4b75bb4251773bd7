package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

const DefaultLookaheadMonths = 3

// BookingPolicy bounds which dates may receive new or moved appointments.
type BookingPolicy struct {
	LookaheadMonths int
	StepMinutes     int
}

func DefaultPolicy() BookingPolicy {
	return BookingPolicy{
		LookaheadMonths: DefaultLookaheadMonths,
		StepMinutes:     availability.DefaultStepMinutes,
	}
}

func (p BookingPolicy) step() int {
	if p.StepMinutes <= 0 {
		return availability.DefaultStepMinutes
	}
	return p.StepMinutes
}

func (p BookingPolicy) lookahead() int {
	if p.LookaheadMonths <= 0 {
		return DefaultLookaheadMonths
	}
	return p.LookaheadMonths
}

// Window returns the first and last bookable calendar days for now, which
// must already be in the clinic's location.
func (p BookingPolicy) Window(now time.Time) (time.Time, time.Time) {
	today := availability.DateOnly(now)
	return today, today.AddDate(0, p.lookahead(), 0)
}

// CheckWindow rejects days before today, days beyond the lookahead horizon,
// and slots earlier today that have already started.
func (p BookingPolicy) CheckWindow(now, date time.Time, at availability.TimeOfDay) error {
	first, last := p.Window(now)
	day := availability.DateOnly(date)

	if day.Before(first) {
		return httperr.OutOfWindow("date_in_past")
	}
	if day.After(last) {
		return httperr.OutOfWindow("date_beyond_window")
	}
	if day.Equal(first) && at < availability.TimeOfDayOf(now) {
		return httperr.OutOfWindow("time_in_past")
	}
	return nil
}

// InWindow is CheckWindow without the time-of-day rule.
func (p BookingPolicy) InWindow(now, date time.Time) bool {
	first, last := p.Window(now)
	day := availability.DateOnly(date)
	return !day.Before(first) && !day.After(last)
}

// CheckSlot validates date/time against a doctor's availability and the window.
func (p BookingPolicy) CheckSlot(now time.Time, d availability.Descriptor, date time.Time, at availability.TimeOfDay) error {
	if err := p.CheckWindow(now, date, at); err != nil {
		return err
	}
	return d.Allows(date, at, p.step())
}

func (p BookingPolicy) Step() int {
	return p.step()
}
