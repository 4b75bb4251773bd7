package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type DirectoryRepository struct{ mock.Mock }

var _ directory.Repository = (*DirectoryRepository)(nil)

func (m *DirectoryRepository) ListDoctors(ctx context.Context, f directory.DoctorFilter) ([]models.Doctor, error) {
	args := m.Called(ctx, f)
	list, _ := args.Get(0).([]models.Doctor)
	return list, args.Error(1)
}

func (m *DirectoryRepository) GetDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*models.Doctor)
	return d, args.Error(1)
}

func (m *DirectoryRepository) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	return m.Called(ctx, d).Error(0)
}

func (m *DirectoryRepository) UpdateDoctor(ctx context.Context, d *models.Doctor) error {
	return m.Called(ctx, d).Error(0)
}

func (m *DirectoryRepository) ListCategories(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	args := m.Called(ctx, includeInactive)
	list, _ := args.Get(0).([]models.Category)
	return list, args.Error(1)
}

func (m *DirectoryRepository) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*models.Category)
	return c, args.Error(1)
}

func (m *DirectoryRepository) CreateCategory(ctx context.Context, c *models.Category) error {
	return m.Called(ctx, c).Error(0)
}

func (m *DirectoryRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *DirectoryRepository) FindUserByLogin(ctx context.Context, login string) (*models.User, error) {
	args := m.Called(ctx, login)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *DirectoryRepository) ListUsers(ctx context.Context, role *identity.Role) ([]models.User, error) {
	args := m.Called(ctx, role)
	list, _ := args.Get(0).([]models.User)
	return list, args.Error(1)
}

func (m *DirectoryRepository) UsernameTaken(ctx context.Context, username string, excludeID uint) (bool, error) {
	args := m.Called(ctx, username, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *DirectoryRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *DirectoryRepository) CreateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *DirectoryRepository) UpdateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}
