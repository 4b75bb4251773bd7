package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
)

const (
	dashboardRecent     = 8
	dashboardTopDoctors = 5
)

type GetStats struct {
	Deps
}

func NewGetStats(d Deps) *GetStats {
	return &GetStats{Deps: d.withDefaults()}
}

func (uc *GetStats) Execute(
	ctx context.Context,
	caller identity.Caller,
) (*domain.Stats, error) {

	if err := caller.RequireAdmin(); err != nil {
		return nil, err
	}
	return uc.Store.Stats(ctx, uc.Clock())
}

type Dashboard struct {
	Stats      *domain.Stats          `json:"stats"`
	Recent     []dto.AppointmentDTO   `json:"recent_appointments"`
	TopDoctors []domain.DoctorRanking `json:"top_doctors"`
}

// GetDashboard is the admin landing view: the counters plus the latest
// bookings and the busiest active doctors.
type GetDashboard struct {
	Deps
}

func NewGetDashboard(d Deps) *GetDashboard {
	return &GetDashboard{Deps: d.withDefaults()}
}

func (uc *GetDashboard) Execute(
	ctx context.Context,
	caller identity.Caller,
) (*Dashboard, error) {

	if err := caller.RequireAdmin(); err != nil {
		return nil, err
	}

	now := uc.Clock()
	stats, err := uc.Store.Stats(ctx, now)
	if err != nil {
		return nil, err
	}

	recent, err := uc.Store.RecentAppointments(ctx, dashboardRecent)
	if err != nil {
		return nil, err
	}

	top, err := uc.Store.TopDoctors(ctx, dashboardTopDoctors)
	if err != nil {
		return nil, err
	}

	out := &Dashboard{
		Stats:      stats,
		Recent:     make([]dto.AppointmentDTO, 0, len(recent)),
		TopDoctors: top,
	}
	for i := range recent {
		out.Recent = append(out.Recent, dto.NewAppointmentDTO(&recent[i], domain.IsUpcoming(&recent[i], now)))
	}
	if out.TopDoctors == nil {
		out.TopDoctors = []domain.DoctorRanking{}
	}
	return out, nil
}
