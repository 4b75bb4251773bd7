package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
)

type Doctor struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name       string    `gorm:"size:100;not null" json:"name"`
	Specialty  string    `gorm:"size:100;not null" json:"specialty"`
	CategoryID *uint     `json:"category_id"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`
	Details    string    `gorm:"type:text" json:"details"`

	ExperienceYears int             `gorm:"not null;default:0;check:chk_doctors_experience,experience_years >= 0" json:"experience_years"`
	ConsultationFee decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0;check:chk_doctors_fee,consultation_fee >= 0" json:"consultation_fee"`

	AvailableDays  availability.WeekdaySet `gorm:"size:60;not null" json:"available_days"`
	AvailableHours availability.HourRange  `gorm:"size:20;not null" json:"available_hours"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Doctor) Availability() availability.Descriptor {
	return availability.Descriptor{Days: d.AvailableDays, Hours: d.AvailableHours}
}
