package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type CompleteAppointment struct {
	Deps
}

func NewCompleteAppointment(d Deps) *CompleteAppointment {
	return &CompleteAppointment{Deps: d.withDefaults()}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	caller identity.Caller,
	appointmentID uint,
	notes *string,
) (*models.Appointment, error) {

	return uc.transition(ctx, caller, appointmentID, audit.ActionCompleted, true,
		func(_ domain.Repository, ap *models.Appointment) (bool, error) {
			return true, domain.Complete(ap, notes, uc.Clock())
		},
	)
}
