package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type DirectoryGormRepository struct {
	db *gorm.DB
}

var _ directory.Repository = (*DirectoryGormRepository)(nil)

func NewDirectoryGormRepository(db *gorm.DB) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db}
}

// --------------------------------------------------
// Doctors
// --------------------------------------------------

// likeEscaper quotes LIKE wildcards; backslash is the default escape
// character in postgres.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func (r *DirectoryGormRepository) ListDoctors(
	ctx context.Context,
	f directory.DoctorFilter,
) ([]models.Doctor, error) {

	tx := r.db.WithContext(ctx).Preload("Category")

	if !f.IncludeInactive {
		tx = tx.Where("is_active = ?", true)
	}
	if f.CategoryID != nil {
		tx = tx.Where("category_id = ?", *f.CategoryID)
	}
	if s := strings.TrimSpace(f.Specialty); s != "" {
		tx = tx.Where("LOWER(specialty) = LOWER(?)", s)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(specialty) LIKE ?", like, like)
	}

	var list []models.Doctor
	if err := tx.Order("name ASC").Find(&list).Error; err != nil {
		return nil, translate(err, "not_found")
	}
	return list, nil
}

func (r *DirectoryGormRepository) GetDoctor(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var d models.Doctor
	if err := r.db.WithContext(ctx).Preload("Category").First(&d, id).Error; err != nil {
		return nil, translate(err, "doctor_not_found")
	}
	return &d, nil
}

// CreateDoctor inserts d. gorm substitutes the column default for a false
// IsActive, so an inactive doctor is written back explicitly in the same
// transaction.
func (r *DirectoryGormRepository) CreateDoctor(
	ctx context.Context,
	d *models.Doctor,
) error {
	active := d.IsActive

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(d).Error; err != nil {
			return err
		}
		if active {
			return nil
		}
		d.IsActive = false
		return tx.Model(d).UpdateColumn("is_active", false).Error
	})
	return translate(err, "not_found")
}

func (r *DirectoryGormRepository) UpdateDoctor(
	ctx context.Context,
	d *models.Doctor,
) error {
	res := r.db.WithContext(ctx).
		Model(d).
		Select(
			"name", "specialty", "category_id", "details",
			"experience_years", "consultation_fee",
			"available_days", "available_hours",
			"is_active", "updated_at",
		).
		Updates(d)
	if res.Error != nil {
		return translate(res.Error, "doctor_not_found")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "doctor_not_found")
	}
	return nil
}

// --------------------------------------------------
// Categories
// --------------------------------------------------

func (r *DirectoryGormRepository) ListCategories(
	ctx context.Context,
	includeInactive bool,
) ([]models.Category, error) {

	tx := r.db.WithContext(ctx)
	if !includeInactive {
		tx = tx.Where("is_active = ?", true)
	}

	var list []models.Category
	if err := tx.Order("name ASC").Find(&list).Error; err != nil {
		return nil, translate(err, "not_found")
	}
	return list, nil
}

func (r *DirectoryGormRepository) GetCategory(
	ctx context.Context,
	id uint,
) (*models.Category, error) {

	var c models.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err, "category_not_found")
	}
	return &c, nil
}

func (r *DirectoryGormRepository) CreateCategory(
	ctx context.Context,
	c *models.Category,
) error {
	return translate(r.db.WithContext(ctx).Create(c).Error, "not_found")
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *DirectoryGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err, "user_not_found")
	}
	return &u, nil
}

// FindUserByLogin matches a username exactly or an email case-insensitively.
func (r *DirectoryGormRepository) FindUserByLogin(
	ctx context.Context,
	login string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("username = ? OR LOWER(email) = LOWER(?)", login, login).
		First(&u).Error; err != nil {
		return nil, translate(err, "user_not_found")
	}
	return &u, nil
}

func (r *DirectoryGormRepository) ListUsers(
	ctx context.Context,
	role *identity.Role,
) ([]models.User, error) {

	tx := r.db.WithContext(ctx)
	if role != nil {
		tx = tx.Where("role = ?", string(*role))
	}

	var list []models.User
	if err := tx.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, translate(err, "not_found")
	}
	return list, nil
}

func (r *DirectoryGormRepository) UsernameTaken(
	ctx context.Context,
	username string,
	excludeID uint,
) (bool, error) {
	return r.exists(ctx, "username = ?", username, excludeID)
}

func (r *DirectoryGormRepository) EmailTaken(
	ctx context.Context,
	email string,
	excludeID uint,
) (bool, error) {
	return r.exists(ctx, "LOWER(email) = LOWER(?)", email, excludeID)
}

func (r *DirectoryGormRepository) exists(
	ctx context.Context,
	cond string,
	value string,
	excludeID uint,
) (bool, error) {

	tx := r.db.WithContext(ctx).Model(&models.User{}).Where(cond, value)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, translate(err, "not_found")
	}
	return count > 0, nil
}

func (r *DirectoryGormRepository) CreateUser(
	ctx context.Context,
	u *models.User,
) error {
	return translate(r.db.WithContext(ctx).Create(u).Error, "not_found")
}

func (r *DirectoryGormRepository) UpdateUser(
	ctx context.Context,
	u *models.User,
) error {
	err := r.db.WithContext(ctx).
		Model(u).
		Select("email", "full_name", "phone", "is_active", "updated_at").
		Updates(u).Error
	return translate(err, "user_not_found")
}
