package appointment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	PatientID uint
	DoctorID  uint
	Date      time.Time
	Time      availability.TimeOfDay
	Reason    string
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	Deps
}

func NewBookAppointment(d Deps) *BookAppointment {
	return &BookAppointment{Deps: d.withDefaults()}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute never retries. A SlotConflict means the caller should re-list
// free slots and pick another.
func (uc *BookAppointment) Execute(
	ctx context.Context,
	caller identity.Caller,
	in BookInput,
) (*models.Appointment, error) {

	ap, err := uc.book(ctx, caller, in)
	uc.Metrics.Booking(outcome(err))

	if httperr.IsKind(err, httperr.KindSlotConflict) {
		actorID, role := actor(caller)
		uc.Audit.Dispatch(audit.Event{
			ActorID:   actorID,
			ActorRole: role,
			Action:    audit.ActionConflict,
			Entity:    "doctor",
			EntityID:  audit.Ptr(in.DoctorID),
			Metadata: map[string]string{
				"date": in.Date.Format(time.DateOnly),
				"time": in.Time.String(),
			},
		})
	}
	if err != nil {
		uc.Log.Debug("booking rejected",
			zap.Uint("doctor_id", in.DoctorID),
			zap.Uint("patient_id", in.PatientID),
			zap.Error(err),
		)
		return nil, err
	}

	actorID, role := actor(caller)
	uc.Audit.Dispatch(audit.Event{
		ActorID:   actorID,
		ActorRole: role,
		Action:    audit.ActionBooked,
		Entity:    "appointment",
		EntityID:  audit.Ptr(ap.ID),
	})

	return ap, nil
}

func (uc *BookAppointment) book(
	ctx context.Context,
	caller identity.Caller,
	in BookInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Caller and input
	// --------------------------------------------------
	if err := caller.RequireSelfOrAdmin(in.PatientID); err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, httperr.InvalidArgument("reason_required")
	}
	if !in.Time.Valid() {
		return nil, httperr.InvalidArgument("invalid_time")
	}

	now := uc.Clock()
	if err := uc.Policy.CheckWindow(now, in.Date, in.Time); err != nil {
		return nil, err
	}

	var ap *models.Appointment
	err := uc.Store.WithinTx(ctx, func(tx domain.Repository) error {

		// --------------------------------------------------
		// Maintenance guard
		// --------------------------------------------------
		if err := tx.AcquireBookingGuard(ctx); err != nil {
			return err
		}

		// --------------------------------------------------
		// Patient
		// --------------------------------------------------
		patient, err := tx.GetUser(ctx, in.PatientID)
		if err != nil {
			return err
		}
		if identity.Role(patient.Role) != identity.RolePatient {
			return httperr.Unauthorized("not_a_patient")
		}
		if !patient.IsActive {
			return httperr.Unauthorized("patient_inactive")
		}

		// --------------------------------------------------
		// Doctor, locked until commit
		// --------------------------------------------------
		doctor, err := tx.LockDoctor(ctx, in.DoctorID)
		if err != nil {
			return err
		}
		if !doctor.IsActive {
			return httperr.NotFound("doctor_not_found")
		}
		if err := uc.Policy.CheckSlot(now, doctor.Availability(), in.Date, in.Time); err != nil {
			return err
		}

		// --------------------------------------------------
		// Slot freedom, re-read under the lock
		// --------------------------------------------------
		n, err := tx.CountBooked(ctx, domain.SlotQuery{
			DoctorID: in.DoctorID,
			Date:     in.Date,
			Time:     in.Time,
		})
		if err != nil {
			return err
		}
		if n > 0 {
			return httperr.SlotConflict("slot_taken")
		}

		// --------------------------------------------------
		// Insert; the partial unique index is the backstop
		// --------------------------------------------------
		ap = &models.Appointment{
			PatientID:       in.PatientID,
			DoctorID:        in.DoctorID,
			AppointmentDate: availability.DateOnly(in.Date),
			AppointmentTime: in.Time,
			Reason:          reason,
			Status:          string(domain.InitialStatus()),
		}
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	return ap, nil
}
