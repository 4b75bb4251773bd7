package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
)

type ListAppointments struct {
	Deps
}

func NewListAppointments(d Deps) *ListAppointments {
	return &ListAppointments{Deps: d.withDefaults()}
}

// Execute lists appointments newest first. Patients only ever see their own,
// whatever the filter says.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	caller identity.Caller,
	f domain.Filter,
) ([]dto.AppointmentDTO, error) {

	if !caller.IsAdmin() {
		if err := caller.RequireSelfOrAdmin(caller.UserID); err != nil {
			return nil, err
		}
		own := caller.UserID
		f.PatientID = &own
	}

	list, err := uc.Store.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}

	now := uc.Clock()
	out := make([]dto.AppointmentDTO, 0, len(list))
	for i := range list {
		out = append(out, dto.NewAppointmentDTO(&list[i], domain.IsUpcoming(&list[i], now)))
	}
	return out, nil
}

type GetAppointment struct {
	Deps
}

func NewGetAppointment(d Deps) *GetAppointment {
	return &GetAppointment{Deps: d.withDefaults()}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	caller identity.Caller,
	appointmentID uint,
) (*dto.AppointmentDTO, error) {

	ap, err := uc.Store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := caller.RequireSelfOrAdmin(ap.PatientID); err != nil {
		return nil, err
	}

	out := dto.NewAppointmentDTO(ap, domain.IsUpcoming(ap, uc.Clock()))
	return &out, nil
}
