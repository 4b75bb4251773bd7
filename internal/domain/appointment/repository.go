package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Filter struct {
	PatientID *uint
	DoctorID  *uint
	Status    *Status
	Date      *time.Time
}

type Stats struct {
	Patients          int64 `json:"patients"`
	ActiveDoctors     int64 `json:"active_doctors"`
	ActiveCategories  int64 `json:"active_categories"`
	Appointments      int64 `json:"appointments"`
	TodayAppointments int64 `json:"today_appointments"`
	Upcoming          int64 `json:"upcoming"`
	Completed         int64 `json:"completed"`
	Cancelled         int64 `json:"cancelled"`
	NoShow            int64 `json:"no_show"`
}

// DoctorRanking is an active doctor with the number of appointments that
// were not cancelled.
type DoctorRanking struct {
	DoctorID         uint   `json:"doctor_id"`
	Name             string `json:"name"`
	Specialty        string `json:"specialty"`
	AppointmentCount int64  `json:"appointment_count"`
}

type Repository interface {
	// -------- Participants --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetDoctor(
		ctx context.Context,
		id uint,
	) (*models.Doctor, error)

	// LockDoctor reads the doctor row FOR UPDATE; concurrent writers for the
	// same doctor queue behind it.
	LockDoctor(
		ctx context.Context,
		id uint,
	) (*models.Doctor, error)

	// AcquireBookingGuard takes the shared side of the maintenance lock
	// without waiting. It fails with Unavailable while a reset or clear runs.
	AcquireBookingGuard(ctx context.Context) error

	// -------- Slot occupancy --------
	CountBooked(
		ctx context.Context,
		q SlotQuery,
	) (int64, error)

	BookedTimes(
		ctx context.Context,
		doctorID uint,
		date time.Time,
	) ([]availability.TimeOfDay, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	LockAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	ListAppointments(
		ctx context.Context,
		f Filter,
	) ([]models.Appointment, error)

	Stats(
		ctx context.Context,
		today time.Time,
	) (*Stats, error)

	// RecentAppointments returns the latest created appointments with patient
	// and doctor preloaded.
	RecentAppointments(
		ctx context.Context,
		limit int,
	) ([]models.Appointment, error)

	TopDoctors(
		ctx context.Context,
		limit int,
	) ([]DoctorRanking, error)
}

// Store is a Repository that can open a unit of work. The Repository passed
// to fn is bound to one transaction; fn's error rolls it back.
type Store interface {
	Repository
	WithinTx(ctx context.Context, fn func(tx Repository) error) error
}
