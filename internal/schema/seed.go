package schema

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

var defaultCategories = []models.Category{
	{Name: "Cardiology", Description: "Heart and cardiovascular system specialists"},
	{Name: "Dentistry", Description: "Dental care and oral health specialists"},
	{Name: "General Medicine", Description: "Primary care and general health consultations"},
	{Name: "Dermatology", Description: "Skin, hair, and nail specialists"},
	{Name: "Orthopedics", Description: "Bone, joint, and musculoskeletal specialists"},
	{Name: "Pediatrics", Description: "Child healthcare specialists"},
	{Name: "Neurology", Description: "Brain and nervous system specialists"},
	{Name: "Gynecology", Description: "Women's reproductive health specialists"},
	{Name: "Psychiatry", Description: "Mental health and psychiatric care"},
	{Name: "Ophthalmology", Description: "Eye and vision care specialists"},
}

type sampleDoctor struct {
	name, specialty, category, details string
	years                              int
	fee                                string
	days, hours                        string
}

var sampleDoctors = []sampleDoctor{
	{"Dr. John Smith", "Cardiologist", "Cardiology", "Heart specialist focused on interventional cardiology and prevention.", 15, "150.00", "Mon,Tue,Wed,Thu,Fri", "09:00-17:00"},
	{"Dr. Sarah Johnson", "General Dentist", "Dentistry", "Preventive, restorative and cosmetic dentistry.", 8, "80.00", "Mon,Tue,Wed,Thu,Fri,Sat", "08:00-18:00"},
	{"Dr. Michael Brown", "Family Physician", "General Medicine", "Family medicine, preventive care and chronic disease management.", 12, "100.00", "Mon,Tue,Wed,Thu,Fri", "08:00-17:00"},
	{"Dr. Emily Davis", "Dermatologist", "Dermatology", "Medical and cosmetic dermatology, skin cancer screening.", 10, "120.00", "Mon,Wed,Fri", "10:00-16:00"},
	{"Dr. Robert Wilson", "Orthopedic Surgeon", "Orthopedics", "Joint replacement, sports medicine and trauma surgery.", 18, "200.00", "Tue,Thu", "09:00-15:00"},
	{"Dr. Lisa Anderson", "Pediatrician", "Pediatrics", "Care for children from newborn to adolescent.", 9, "90.00", "Mon,Tue,Wed,Thu,Fri", "08:00-16:00"},
	{"Dr. David Martinez", "Neurologist", "Neurology", "Brain, spinal cord and nervous system disorders.", 14, "180.00", "Mon,Wed,Fri", "09:00-17:00"},
	{"Dr. Jennifer Taylor", "Gynecologist", "Gynecology", "Routine exams, prenatal care and gynecological procedures.", 11, "130.00", "Mon,Tue,Thu,Fri", "09:00-16:00"},
	{"Dr. Mark Thompson", "Psychiatrist", "Psychiatry", "Adult mental health and medication management.", 13, "160.00", "Mon,Tue,Wed,Thu", "10:00-18:00"},
	{"Dr. Anna Rodriguez", "Ophthalmologist", "Ophthalmology", "Medical and surgical treatment of eye conditions.", 16, "140.00", "Tue,Wed,Thu,Fri", "08:00-16:00"},
}

func (m *Manager) seedDefaults(tx *gorm.DB) error {
	fresh, err := isFresh(tx)
	if err != nil {
		return err
	}

	if fresh {
		if err := seedCategories(tx); err != nil {
			return err
		}
		if m.seed.SampleDoctors {
			if err := seedDoctors(tx); err != nil {
				return err
			}
		}
	}
	return m.ensureAdmin(tx)
}

// isFresh reports an empty directory: no users, categories or doctors.
func isFresh(tx *gorm.DB) (bool, error) {
	for _, model := range []any{&models.User{}, &models.Category{}, &models.Doctor{}} {
		var n int64
		if err := tx.Model(model).Count(&n).Error; err != nil {
			return false, fmt.Errorf("count %T: %w", model, err)
		}
		if n > 0 {
			return false, nil
		}
	}
	return true, nil
}

func seedCategories(tx *gorm.DB) error {
	cats := make([]models.Category, len(defaultCategories))
	for i, c := range defaultCategories {
		c.IsActive = true
		cats[i] = c
	}
	if err := tx.Create(&cats).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}

func seedDoctors(tx *gorm.DB) error {
	var cats []models.Category
	if err := tx.Find(&cats).Error; err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	byName := make(map[string]uint, len(cats))
	for _, c := range cats {
		byName[c.Name] = c.ID
	}

	docs := make([]models.Doctor, 0, len(sampleDoctors))
	for _, s := range sampleDoctors {
		desc, err := availability.ParseDescriptor(s.days, s.hours)
		if err != nil {
			return fmt.Errorf("sample doctor %q: %w", s.name, err)
		}
		d := models.Doctor{
			Name:            s.name,
			Specialty:       s.specialty,
			Details:         s.details,
			ExperienceYears: s.years,
			ConsultationFee: decimal.RequireFromString(s.fee),
			AvailableDays:   desc.Days,
			AvailableHours:  desc.Hours,
			IsActive:        true,
		}
		if id, ok := byName[s.category]; ok {
			d.CategoryID = &id
		}
		docs = append(docs, d)
	}

	if err := tx.Omit("Category").Create(&docs).Error; err != nil {
		return fmt.Errorf("seed doctors: %w", err)
	}
	return nil
}

// ensureAdmin creates the configured administrator unless an active one
// exists.
func (m *Manager) ensureAdmin(tx *gorm.DB) error {
	var n int64
	if err := tx.Model(&models.User{}).
		Where("role = ? AND is_active = ?", string(identity.RoleAdmin), true).
		Count(&n).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return nil
	}

	hash, err := m.hasher.Hash([]byte(m.seed.AdminPassword))
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Username:     m.seed.AdminUsername,
		Email:        m.seed.AdminEmail,
		PasswordHash: string(hash),
		Role:         string(identity.RoleAdmin),
		FullName:     "System Administrator",
		IsActive:     true,
	}
	// A patient may already hold the configured username.
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin)
	if res.Error != nil {
		return fmt.Errorf("create admin: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		m.log.Warn("admin username taken, no administrator seeded")
	}
	return nil
}
