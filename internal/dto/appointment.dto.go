package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentDTO struct {
	ID              uint                   `json:"id"`
	PatientID       uint                   `json:"patient_id"`
	DoctorID        uint                   `json:"doctor_id"`
	AppointmentDate string                 `json:"appointment_date"`
	AppointmentTime availability.TimeOfDay `json:"appointment_time"`
	Reason          string                 `json:"reason"`
	Notes           *string                `json:"notes,omitempty"`
	Status          string                 `json:"status"`
	Upcoming        bool                   `json:"upcoming"`

	DoctorName      string `json:"doctor_name,omitempty"`
	DoctorSpecialty string `json:"doctor_specialty,omitempty"`
	CategoryName    string `json:"category_name,omitempty"`
	PatientName     string `json:"patient_name,omitempty"`
	PatientUsername string `json:"patient_username,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAppointmentDTO flattens the preloaded patient and doctor; missing
// relations leave their fields empty.
func NewAppointmentDTO(ap *models.Appointment, upcoming bool) AppointmentDTO {
	out := AppointmentDTO{
		ID:              ap.ID,
		PatientID:       ap.PatientID,
		DoctorID:        ap.DoctorID,
		AppointmentDate: ap.AppointmentDate.Format(time.DateOnly),
		AppointmentTime: ap.AppointmentTime,
		Reason:          ap.Reason,
		Notes:           ap.Notes,
		Status:          ap.Status,
		Upcoming:        upcoming,
		CreatedAt:       ap.CreatedAt,
		UpdatedAt:       ap.UpdatedAt,
	}

	if ap.Doctor != nil {
		out.DoctorName = ap.Doctor.Name
		out.DoctorSpecialty = ap.Doctor.Specialty
		if ap.Doctor.Category != nil {
			out.CategoryName = ap.Doctor.Category.Name
		}
	}
	if ap.Patient != nil {
		out.PatientName = ap.Patient.FullName
		out.PatientUsername = ap.Patient.Username
	}

	return out
}
