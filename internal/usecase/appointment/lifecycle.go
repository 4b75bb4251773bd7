package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// mutation changes a locked appointment in place. changed=false skips the
// write and the audit event.
type mutation func(tx domain.Repository, ap *models.Appointment) (changed bool, err error)

// transition runs one lifecycle operation: guard, row lock, ownership
// check, mutation, write. All inside one transaction.
func (d Deps) transition(
	ctx context.Context,
	caller identity.Caller,
	id uint,
	action string,
	adminOnly bool,
	fn mutation,
) (*models.Appointment, error) {

	if adminOnly {
		if err := caller.RequireAdmin(); err != nil {
			d.Metrics.Transition(action, err)
			return nil, err
		}
	}

	var (
		ap      *models.Appointment
		changed bool
	)
	err := d.Store.WithinTx(ctx, func(tx domain.Repository) error {
		if err := tx.AcquireBookingGuard(ctx); err != nil {
			return err
		}

		locked, err := tx.LockAppointment(ctx, id)
		if err != nil {
			return err
		}
		if err := caller.RequireSelfOrAdmin(locked.PatientID); err != nil {
			return err
		}

		changed, err = fn(tx, locked)
		if err != nil {
			return err
		}
		ap = locked
		if !changed {
			return nil
		}
		return tx.UpdateAppointment(ctx, ap)
	})

	d.Metrics.Transition(action, err)
	if err != nil {
		d.Log.Debug("transition rejected",
			zap.String("action", action),
			zap.Uint("appointment_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	if changed {
		actorID, role := actor(caller)
		d.Audit.Dispatch(audit.Event{
			ActorID:   actorID,
			ActorRole: role,
			Action:    action,
			Entity:    "appointment",
			EntityID:  audit.Ptr(ap.ID),
			Metadata:  map[string]string{"status": ap.Status},
		})
	}

	return ap, nil
}
