package models

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint  `gorm:"not null;index:idx_appointments_patient" json:"patient_id"`
	Patient   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"patient,omitempty"`

	DoctorID uint    `gorm:"not null;index:idx_appointments_doctor_date,priority:1" json:"doctor_id"`
	Doctor   *Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"doctor,omitempty"`

	AppointmentDate time.Time              `gorm:"type:date;not null;index:idx_appointments_doctor_date,priority:2;index:idx_appointments_date" json:"appointment_date"`
	AppointmentTime availability.TimeOfDay `gorm:"not null" json:"appointment_time"`

	Reason string  `gorm:"type:text;not null;check:chk_appointments_reason,length(trim(reason)) > 0" json:"reason"`
	Notes  *string `gorm:"type:text" json:"notes,omitempty"`
	Status string  `gorm:"size:20;not null;default:'booked';index:idx_appointments_status;check:chk_appointments_status,status IN ('booked','completed','cancelled','no-show')" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
