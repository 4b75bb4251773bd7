package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// AppointmentStore runs WithinTx callbacks against itself, so expectations
// set on the repository methods apply inside the transaction too.
type AppointmentStore struct{ mock.Mock }

var _ domain.Store = (*AppointmentStore)(nil)

func (m *AppointmentStore) WithinTx(ctx context.Context, fn func(tx domain.Repository) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *AppointmentStore) GetUser(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *AppointmentStore) GetDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*models.Doctor)
	return d, args.Error(1)
}

func (m *AppointmentStore) LockDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*models.Doctor)
	return d, args.Error(1)
}

func (m *AppointmentStore) AcquireBookingGuard(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *AppointmentStore) CountBooked(ctx context.Context, q domain.SlotQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AppointmentStore) BookedTimes(ctx context.Context, doctorID uint, date time.Time) ([]availability.TimeOfDay, error) {
	args := m.Called(ctx, doctorID, date)
	t, _ := args.Get(0).([]availability.TimeOfDay)
	return t, args.Error(1)
}

func (m *AppointmentStore) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return m.Called(ctx, ap).Error(0)
}

func (m *AppointmentStore) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	ap, _ := args.Get(0).(*models.Appointment)
	return ap, args.Error(1)
}

func (m *AppointmentStore) LockAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	ap, _ := args.Get(0).(*models.Appointment)
	return ap, args.Error(1)
}

func (m *AppointmentStore) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return m.Called(ctx, ap).Error(0)
}

func (m *AppointmentStore) DeleteAppointment(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *AppointmentStore) ListAppointments(ctx context.Context, f domain.Filter) ([]models.Appointment, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]models.Appointment)
	return list, args.Error(1)
}

func (m *AppointmentStore) Stats(ctx context.Context, today time.Time) (*domain.Stats, error) {
	args := m.Called(ctx, today)
	s, _ := args.Get(0).(*domain.Stats)
	return s, args.Error(1)
}

func (m *AppointmentStore) RecentAppointments(ctx context.Context, limit int) ([]models.Appointment, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]models.Appointment)
	return list, args.Error(1)
}

func (m *AppointmentStore) TopDoctors(ctx context.Context, limit int) ([]domain.DoctorRanking, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]domain.DoctorRanking)
	return list, args.Error(1)
}
