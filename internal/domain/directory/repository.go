package directory

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// DoctorFilter narrows ListDoctors. The zero value lists active doctors.
type DoctorFilter struct {
	CategoryID      *uint
	Specialty       string
	Query           string
	IncludeInactive bool
}

type Repository interface {
	// -------- Doctors --------
	ListDoctors(ctx context.Context, f DoctorFilter) ([]models.Doctor, error)
	GetDoctor(ctx context.Context, id uint) (*models.Doctor, error)
	CreateDoctor(ctx context.Context, d *models.Doctor) error
	UpdateDoctor(ctx context.Context, d *models.Doctor) error

	// -------- Categories --------
	ListCategories(ctx context.Context, includeInactive bool) ([]models.Category, error)
	GetCategory(ctx context.Context, id uint) (*models.Category, error)
	CreateCategory(ctx context.Context, c *models.Category) error

	// -------- Users --------
	GetUser(ctx context.Context, id uint) (*models.User, error)
	FindUserByLogin(ctx context.Context, login string) (*models.User, error)
	ListUsers(ctx context.Context, role *identity.Role) ([]models.User, error)
	UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, u *models.User) error
}
