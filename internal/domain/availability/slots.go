package availability

import (
	"iter"
	"slices"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// DefaultStepMinutes is the slot length used when none is configured.
const DefaultStepMinutes = 30

// Slots yields slot boundaries from start to end, both inclusive, every
// step minutes. The last value is end only when end is aligned to the step.
// The sequence can be ranged over any number of times.
func Slots(start, end TimeOfDay, stepMinutes int) (iter.Seq[TimeOfDay], error) {
	if stepMinutes <= 0 {
		return nil, httperr.InvalidArgument("invalid_step")
	}
	if !start.Valid() || !end.Valid() {
		return nil, httperr.InvalidArgument("invalid_time")
	}
	if start > end {
		return nil, httperr.InvalidArgument("start_after_end")
	}

	return func(yield func(TimeOfDay) bool) {
		for t := start; t <= end; t += TimeOfDay(stepMinutes) {
			if !yield(t) {
				return
			}
		}
	}, nil
}

func GenerateSlots(start, end TimeOfDay, stepMinutes int) ([]TimeOfDay, error) {
	seq, err := Slots(start, end, stepMinutes)
	if err != nil {
		return nil, err
	}
	return slices.Collect(seq), nil
}

// Descriptor is a doctor's declared availability.
type Descriptor struct {
	Days  WeekdaySet
	Hours HourRange
}

func ParseDescriptor(days, hours string) (Descriptor, error) {
	set, err := ParseWeekdays(days)
	if err != nil {
		return Descriptor{}, err
	}
	rng, err := ParseHourRange(hours)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{Days: set, Hours: rng}, nil
}

// SlotsOn returns the candidate slots for a calendar date; none when the
// doctor does not work that weekday.
func (d Descriptor) SlotsOn(date time.Time, stepMinutes int) ([]TimeOfDay, error) {
	if !d.Days.Contains(date.Weekday()) {
		if stepMinutes <= 0 {
			return nil, httperr.InvalidArgument("invalid_step")
		}
		return []TimeOfDay{}, nil
	}
	return GenerateSlots(d.Hours.Start, d.Hours.End, stepMinutes)
}

// Allows reports whether t on date is a bookable slot boundary.
func (d Descriptor) Allows(date time.Time, t TimeOfDay, stepMinutes int) error {
	if stepMinutes <= 0 {
		return httperr.InvalidArgument("invalid_step")
	}
	if !d.Days.Contains(date.Weekday()) {
		return httperr.InvalidArgument("doctor_unavailable_on_day")
	}
	if !d.Hours.Contains(t) {
		return httperr.InvalidArgument("outside_available_hours")
	}
	if int(t-d.Hours.Start)%stepMinutes != 0 {
		return httperr.InvalidArgument("not_a_slot_boundary")
	}
	return nil
}

// DateOnly truncates t to its calendar day as a UTC midnight, the form dates
// are stored and compared in.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, httperr.InvalidArgument("invalid_date")
	}
	return d, nil
}
