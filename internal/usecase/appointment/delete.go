package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
)

// DeleteAppointment is the administrative hard delete. It ignores status.
type DeleteAppointment struct {
	Deps
}

func NewDeleteAppointment(d Deps) *DeleteAppointment {
	return &DeleteAppointment{Deps: d.withDefaults()}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	caller identity.Caller,
	appointmentID uint,
) error {

	if err := caller.RequireAdmin(); err != nil {
		return err
	}

	err := uc.Store.WithinTx(ctx, func(tx domain.Repository) error {
		if err := tx.AcquireBookingGuard(ctx); err != nil {
			return err
		}
		return tx.DeleteAppointment(ctx, appointmentID)
	})
	uc.Metrics.Transition(audit.ActionDeleted, err)
	if err != nil {
		return err
	}

	actorID, role := actor(caller)
	uc.Audit.Dispatch(audit.Event{
		ActorID:   actorID,
		ActorRole: role,
		Action:    audit.ActionDeleted,
		Entity:    "appointment",
		EntityID:  audit.Ptr(appointmentID),
	})
	return nil
}
