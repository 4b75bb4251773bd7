package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
)

type AvailabilityInput struct {
	DoctorID uint
	Date     time.Time
}

type SlotQuery struct {
	DoctorID             uint
	Date                 time.Time
	Time                 availability.TimeOfDay
	ExcludeAppointmentID *uint
}

type TimeSlot struct {
	Time availability.TimeOfDay `json:"time"`
	Free bool                   `json:"free"`
}
