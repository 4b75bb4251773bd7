package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type CancelAppointment struct {
	Deps
}

func NewCancelAppointment(d Deps) *CancelAppointment {
	return &CancelAppointment{Deps: d.withDefaults()}
}

// Execute cancels a booked appointment. Cancelling an already cancelled one
// returns it unchanged.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	caller identity.Caller,
	appointmentID uint,
) (*models.Appointment, error) {

	return uc.transition(ctx, caller, appointmentID, audit.ActionCancelled, false,
		func(_ domain.Repository, ap *models.Appointment) (bool, error) {
			return domain.Cancel(ap, uc.Clock())
		},
	)
}
