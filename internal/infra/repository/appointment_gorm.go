package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/db"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

var _ domain.Store = (*AppointmentGormRepository)(nil)

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func dateArg(t time.Time) string {
	return availability.DateOnly(t).Format(time.DateOnly)
}

// WithinTx runs fn in one read-committed transaction. Advisory and row locks
// taken through tx are held until fn returns.
func (r *AppointmentGormRepository) WithinTx(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	}, db.TxOptions)
	return translate(err, "not_found")
}

// --------------------------------------------------
// Participants
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, "patient_not_found")
	}
	return &u, nil
}

func (r *AppointmentGormRepository) GetDoctor(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var d models.Doctor
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, translate(err, "doctor_not_found")
	}
	return &d, nil
}

func (r *AppointmentGormRepository) LockDoctor(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var d models.Doctor
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&d, id).Error; err != nil {
		return nil, translate(err, "doctor_not_found")
	}
	return &d, nil
}

func (r *AppointmentGormRepository) AcquireBookingGuard(ctx context.Context) error {
	ok, err := db.TryLockShared(ctx, r.db)
	if err != nil {
		return translate(err, "not_found")
	}
	if !ok {
		return httperr.Unavailable("maintenance_in_progress")
	}
	return nil
}

// --------------------------------------------------
// Slot occupancy
// --------------------------------------------------

func (r *AppointmentGormRepository) CountBooked(
	ctx context.Context,
	q domain.SlotQuery,
) (int64, error) {

	tx := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status = ?",
			q.DoctorID,
			dateArg(q.Date),
			q.Time,
			domain.StatusBooked,
		)
	if q.ExcludeAppointmentID != nil {
		tx = tx.Where("id <> ?", *q.ExcludeAppointmentID)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, translate(err, "not_found")
	}
	return count, nil
}

func (r *AppointmentGormRepository) BookedTimes(
	ctx context.Context,
	doctorID uint,
	date time.Time,
) ([]availability.TimeOfDay, error) {

	var times []availability.TimeOfDay
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND appointment_date = ? AND status = ?",
			doctorID,
			dateArg(date),
			domain.StatusBooked,
		).
		Order("appointment_time ASC").
		Pluck("appointment_time", &times).Error; err != nil {
		return nil, translate(err, "not_found")
	}
	return times, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error, "not_found")
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor.Category").
		First(&ap, id).Error; err != nil {
		return nil, translate(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) LockAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, id).Error; err != nil {
		return nil, translate(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).
		Model(ap).
		Select("appointment_date", "appointment_time", "notes", "status", "updated_at").
		Updates(ap).Error
	return translate(err, "appointment_not_found")
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return translate(res.Error, "appointment_not_found")
	}
	if res.RowsAffected == 0 {
		return httperr.NotFound("appointment_not_found")
	}
	return nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.Filter,
) ([]models.Appointment, error) {

	tx := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor.Category")

	if f.PatientID != nil {
		tx = tx.Where("patient_id = ?", *f.PatientID)
	}
	if f.DoctorID != nil {
		tx = tx.Where("doctor_id = ?", *f.DoctorID)
	}
	if f.Status != nil {
		tx = tx.Where("status = ?", string(*f.Status))
	}
	if f.Date != nil {
		tx = tx.Where("appointment_date = ?", dateArg(*f.Date))
	}

	var list []models.Appointment
	if err := tx.
		Order("appointment_date DESC, appointment_time DESC").
		Find(&list).Error; err != nil {
		return nil, translate(err, "not_found")
	}
	return list, nil
}

// --------------------------------------------------
// Statistics
// --------------------------------------------------

func (r *AppointmentGormRepository) Stats(
	ctx context.Context,
	today time.Time,
) (*domain.Stats, error) {

	day := dateArg(today)
	var s domain.Stats

	counts := []struct {
		dst   *int64
		model any
		where string
		args  []any
	}{
		{&s.Patients, &models.User{}, "role = ?", []any{identity.RolePatient}},
		{&s.ActiveDoctors, &models.Doctor{}, "is_active = ?", []any{true}},
		{&s.ActiveCategories, &models.Category{}, "is_active = ?", []any{true}},
		{&s.Appointments, &models.Appointment{}, "", nil},
		{&s.TodayAppointments, &models.Appointment{}, "appointment_date = ?", []any{day}},
		{&s.Upcoming, &models.Appointment{}, "appointment_date > ? AND status = ?", []any{day, domain.StatusBooked}},
		{&s.Completed, &models.Appointment{}, "status = ?", []any{domain.StatusCompleted}},
		{&s.Cancelled, &models.Appointment{}, "status = ?", []any{domain.StatusCancelled}},
		{&s.NoShow, &models.Appointment{}, "status = ?", []any{domain.StatusNoShow}},
	}

	for _, c := range counts {
		tx := r.db.WithContext(ctx).Model(c.model)
		if c.where != "" {
			tx = tx.Where(c.where, c.args...)
		}
		if err := tx.Count(c.dst).Error; err != nil {
			return nil, translate(err, "not_found")
		}
	}

	return &s, nil
}

func (r *AppointmentGormRepository) RecentAppointments(
	ctx context.Context,
	limit int,
) ([]models.Appointment, error) {

	var list []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor.Category").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, translate(err, "not_found")
	}
	return list, nil
}

func (r *AppointmentGormRepository) TopDoctors(
	ctx context.Context,
	limit int,
) ([]domain.DoctorRanking, error) {

	var out []domain.DoctorRanking
	if err := r.db.WithContext(ctx).
		Table("doctors AS d").
		Select("d.id AS doctor_id, d.name, d.specialty, COUNT(a.id) AS appointment_count").
		Joins("LEFT JOIN appointments AS a ON a.doctor_id = d.id AND a.status <> ?", domain.StatusCancelled).
		Where("d.is_active = ?", true).
		Group("d.id, d.name, d.specialty").
		Order("appointment_count DESC, d.name ASC").
		Limit(limit).
		Scan(&out).Error; err != nil {
		return nil, translate(err, "not_found")
	}
	return out, nil
}
