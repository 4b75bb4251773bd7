package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type RescheduleInput struct {
	AppointmentID uint
	Date          time.Time
	Time          availability.TimeOfDay
}

type RescheduleAppointment struct {
	Deps
}

func NewRescheduleAppointment(d Deps) *RescheduleAppointment {
	return &RescheduleAppointment{Deps: d.withDefaults()}
}

// Execute moves a booked appointment to a new slot of the same doctor. On
// conflict the stored row is left as it was.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	caller identity.Caller,
	in RescheduleInput,
) (*models.Appointment, error) {

	if !in.Time.Valid() {
		return nil, httperr.InvalidArgument("invalid_time")
	}

	now := uc.Clock()

	return uc.transition(ctx, caller, in.AppointmentID, audit.ActionRescheduled, false,
		func(tx domain.Repository, ap *models.Appointment) (bool, error) {
			if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
				return false, err
			}

			doctor, err := tx.LockDoctor(ctx, ap.DoctorID)
			if err != nil {
				return false, err
			}
			if !doctor.IsActive {
				return false, httperr.NotFound("doctor_not_found")
			}
			if err := uc.Policy.CheckSlot(now, doctor.Availability(), in.Date, in.Time); err != nil {
				return false, err
			}

			n, err := tx.CountBooked(ctx, domain.SlotQuery{
				DoctorID:             ap.DoctorID,
				Date:                 in.Date,
				Time:                 in.Time,
				ExcludeAppointmentID: &ap.ID,
			})
			if err != nil {
				return false, err
			}
			if n > 0 {
				return false, httperr.SlotConflict("slot_taken")
			}

			return true, domain.Reschedule(ap, in.Date, in.Time, now)
		},
	)
}
