package appointment

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// memStore mimics the postgres store: WithinTx is serialised like the
// doctor row lock, failed units of work roll back, and the booked-slot
// uniqueness is enforced on write like the partial unique index.
type memStore struct {
	txMu sync.Mutex

	mu          sync.Mutex
	users       map[uint]models.User
	doctors     map[uint]models.Doctor
	appts       map[uint]models.Appointment
	nextID      uint
	maintenance bool
	staleCount  bool
}

var _ domain.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users:   map[uint]models.User{},
		doctors: map[uint]models.Doctor{},
		appts:   map[uint]models.Appointment{},
		nextID:  100,
	}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(tx domain.Repository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return httperr.Wrap(httperr.KindDeadlineExceeded, "deadline_exceeded", err)
	}

	s.mu.Lock()
	snapshot := maps.Clone(s.appts)
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.appts = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) GetUser(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, httperr.NotFound("patient_not_found")
	}
	return &u, nil
}

func (s *memStore) GetDoctor(_ context.Context, id uint) (*models.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.doctors[id]
	if !ok {
		return nil, httperr.NotFound("doctor_not_found")
	}
	return &d, nil
}

func (s *memStore) LockDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	return s.GetDoctor(ctx, id)
}

func (s *memStore) AcquireBookingGuard(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.maintenance {
		return httperr.Unavailable("maintenance_in_progress")
	}
	return nil
}

func (s *memStore) countLocked(doctorID uint, date time.Time, t availability.TimeOfDay, exclude uint) int64 {
	var n int64
	day := availability.DateOnly(date)
	for id, ap := range s.appts {
		if id == exclude {
			continue
		}
		if ap.DoctorID == doctorID && ap.AppointmentDate.Equal(day) && ap.AppointmentTime == t &&
			ap.Status == string(domain.StatusBooked) {
			n++
		}
	}
	return n
}

func (s *memStore) CountBooked(_ context.Context, q domain.SlotQuery) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.staleCount {
		return 0, nil
	}
	var exclude uint
	if q.ExcludeAppointmentID != nil {
		exclude = *q.ExcludeAppointmentID
	}
	return s.countLocked(q.DoctorID, q.Date, q.Time, exclude), nil
}

func (s *memStore) BookedTimes(_ context.Context, doctorID uint, date time.Time) ([]availability.TimeOfDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []availability.TimeOfDay
	day := availability.DateOnly(date)
	for _, ap := range s.appts {
		if ap.DoctorID == doctorID && ap.AppointmentDate.Equal(day) && ap.Status == string(domain.StatusBooked) {
			out = append(out, ap.AppointmentTime)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (s *memStore) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ap.Status == string(domain.StatusBooked) && s.countLocked(ap.DoctorID, ap.AppointmentDate, ap.AppointmentTime, 0) > 0 {
		return httperr.SlotConflict("slot_taken")
	}
	s.nextID++
	ap.ID = s.nextID
	s.appts[ap.ID] = *ap
	return nil
}

func (s *memStore) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap, ok := s.appts[id]
	if !ok {
		return nil, httperr.NotFound("appointment_not_found")
	}
	if d, ok := s.doctors[ap.DoctorID]; ok {
		ap.Doctor = &d
	}
	if u, ok := s.users[ap.PatientID]; ok {
		ap.Patient = &u
	}
	return &ap, nil
}

func (s *memStore) LockAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap, ok := s.appts[id]
	if !ok {
		return nil, httperr.NotFound("appointment_not_found")
	}
	return &ap, nil
}

func (s *memStore) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appts[ap.ID]; !ok {
		return httperr.NotFound("appointment_not_found")
	}
	if ap.Status == string(domain.StatusBooked) && s.countLocked(ap.DoctorID, ap.AppointmentDate, ap.AppointmentTime, ap.ID) > 0 {
		return httperr.SlotConflict("slot_taken")
	}
	s.appts[ap.ID] = *ap
	return nil
}

func (s *memStore) DeleteAppointment(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appts[id]; !ok {
		return httperr.NotFound("appointment_not_found")
	}
	delete(s.appts, id)
	return nil
}

func (s *memStore) ListAppointments(_ context.Context, f domain.Filter) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, ap := range s.appts {
		if f.PatientID != nil && ap.PatientID != *f.PatientID {
			continue
		}
		if f.DoctorID != nil && ap.DoctorID != *f.DoctorID {
			continue
		}
		if f.Status != nil && ap.Status != string(*f.Status) {
			continue
		}
		out = append(out, ap)
	}
	slices.SortFunc(out, func(a, b models.Appointment) int {
		if c := b.AppointmentDate.Compare(a.AppointmentDate); c != 0 {
			return c
		}
		return int(b.AppointmentTime - a.AppointmentTime)
	})
	return out, nil
}

func (s *memStore) Stats(_ context.Context, today time.Time) (*domain.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := &domain.Stats{Appointments: int64(len(s.appts))}
	for _, ap := range s.appts {
		switch domain.Status(ap.Status) {
		case domain.StatusCompleted:
			st.Completed++
		case domain.StatusCancelled:
			st.Cancelled++
		case domain.StatusNoShow:
			st.NoShow++
		}
	}
	return st, nil
}

func (s *memStore) RecentAppointments(_ context.Context, limit int) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Collect(maps.Values(s.appts))
	slices.SortFunc(out, func(a, b models.Appointment) int { return int(b.ID) - int(a.ID) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) TopDoctors(_ context.Context, limit int) ([]domain.DoctorRanking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.DoctorRanking
	for _, d := range s.doctors {
		if !d.IsActive {
			continue
		}
		r := domain.DoctorRanking{DoctorID: d.ID, Name: d.Name, Specialty: d.Specialty}
		for _, ap := range s.appts {
			if ap.DoctorID == d.ID && ap.Status != string(domain.StatusCancelled) {
				r.AppointmentCount++
			}
		}
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b domain.DoctorRanking) int { return int(b.AppointmentCount - a.AppointmentCount) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) get(id uint) models.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appts[id]
}

// ======================================================
// Fixtures
// ======================================================

// Monday 2026-10-12, 08:00.
var testNow = time.Date(2026, 10, 12, 8, 0, 0, 0, time.UTC)

var (
	tuesday  = time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)
	thursday = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	ten      = availability.MustTimeOfDay("10:00")
)

const (
	patientA uint = 1
	patientB uint = 2
	adminID  uint = 9
	doctorID uint = 5
)

var (
	asA     = identity.Caller{UserID: patientA, Role: identity.RolePatient}
	asB     = identity.Caller{UserID: patientB, Role: identity.RolePatient}
	asAdmin = identity.Caller{UserID: adminID, Role: identity.RoleAdmin}
)

func seededStore() *memStore {
	s := newMemStore()
	s.users[patientA] = models.User{ID: patientA, Username: "ana", FullName: "Ana", Role: string(identity.RolePatient), IsActive: true}
	s.users[patientB] = models.User{ID: patientB, Username: "bruno", FullName: "Bruno", Role: string(identity.RolePatient), IsActive: true}
	s.users[adminID] = models.User{ID: adminID, Username: "admin", Role: string(identity.RoleAdmin), IsActive: true}

	d, err := availability.ParseDescriptor("Mon,Tue,Wed", "09:00-17:00")
	if err != nil {
		panic(err)
	}
	s.doctors[doctorID] = models.Doctor{
		ID:              doctorID,
		Name:            "Dr. Lima",
		Specialty:       "Cardiology",
		ConsultationFee: decimal.RequireFromString("150.00"),
		AvailableDays:   d.Days,
		AvailableHours:  d.Hours,
		IsActive:        true,
	}
	return s
}

func testDeps(s domain.Store) Deps {
	return Deps{
		Store:   s,
		Clock:   timezone.FixedClock(testNow),
		Policy:  domain.DefaultPolicy(),
		Metrics: metrics.Nop(),
	}
}

func bookIn(patient uint, date time.Time, at availability.TimeOfDay) BookInput {
	return BookInput{PatientID: patient, DoctorID: doctorID, Date: date, Time: at, Reason: "checkup"}
}
