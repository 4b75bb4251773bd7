package appointment

import (
	"context"
	"slices"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// DoctorLookup resolves doctors for read paths. The directory's cached
// service satisfies it.
type DoctorLookup interface {
	GetDoctor(ctx context.Context, id uint) (*models.Doctor, error)
}

type CheckAvailability struct {
	Deps
	doctors DoctorLookup
}

func NewCheckAvailability(d Deps, doctors DoctorLookup) *CheckAvailability {
	if doctors == nil {
		doctors = d.Store
	}
	return &CheckAvailability{Deps: d.withDefaults(), doctors: doctors}
}

// IsSlotFree reports whether no booked appointment holds the slot, ignoring
// q.ExcludeAppointmentID. Advisory: the answer may be stale by the time a
// booking commits.
func (uc *CheckAvailability) IsSlotFree(
	ctx context.Context,
	q domain.SlotQuery,
) (bool, error) {

	if !q.Time.Valid() {
		return false, httperr.InvalidArgument("invalid_time")
	}

	n, err := uc.Store.CountBooked(ctx, q)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// Execute lists the free slots of a doctor on a date in ascending order.
// Days outside the booking window, and slots already past today, are empty.
func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]availability.TimeOfDay, error) {

	doctor, err := uc.doctors.GetDoctor(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.IsActive {
		return nil, httperr.NotFound("doctor_not_found")
	}

	now := uc.Clock()
	if !uc.Policy.InWindow(now, in.Date) {
		return []availability.TimeOfDay{}, nil
	}

	candidates, err := doctor.Availability().SlotsOn(in.Date, uc.Policy.Step())
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	booked, err := uc.Store.BookedTimes(ctx, in.DoctorID, in.Date)
	if err != nil {
		return nil, err
	}

	today := availability.DateOnly(now).Equal(availability.DateOnly(in.Date))
	cutoff := availability.TimeOfDayOf(now)

	free := make([]availability.TimeOfDay, 0, len(candidates))
	for _, slot := range candidates {
		if today && slot < cutoff {
			continue
		}
		if slices.Contains(booked, slot) {
			continue
		}
		free = append(free, slot)
	}
	return free, nil
}

// Slots annotates every candidate slot with whether it is free.
func (uc *CheckAvailability) Slots(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	doctor, err := uc.doctors.GetDoctor(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}

	free, err := uc.Execute(ctx, in)
	if err != nil {
		return nil, err
	}

	candidates, err := doctor.Availability().SlotsOn(in.Date, uc.Policy.Step())
	if err != nil {
		return nil, err
	}

	out := make([]domain.TimeSlot, 0, len(candidates))
	for _, slot := range candidates {
		_, found := slices.BinarySearch(free, slot)
		out = append(out, domain.TimeSlot{Time: slot, Free: found})
	}
	return out, nil
}
