package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type MarkNoShow struct {
	Deps
}

func NewMarkNoShow(d Deps) *MarkNoShow {
	return &MarkNoShow{Deps: d.withDefaults()}
}

func (uc *MarkNoShow) Execute(
	ctx context.Context,
	caller identity.Caller,
	appointmentID uint,
) (*models.Appointment, error) {

	return uc.transition(ctx, caller, appointmentID, audit.ActionNoShow, true,
		func(_ domain.Repository, ap *models.Appointment) (bool, error) {
			return true, domain.MarkNoShow(ap, uc.Clock())
		},
	)
}
