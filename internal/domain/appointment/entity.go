package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel reports false when the appointment was already cancelled; that
// case is a no-op, not an error.
func Cancel(ap *models.Appointment, now time.Time) (bool, error) {
	if Status(ap.Status) == StatusCancelled {
		return false, nil
	}
	if err := CanCancel(Status(ap.Status)); err != nil {
		return false, err
	}

	ap.Status = string(StatusCancelled)
	ap.UpdatedAt = now
	return true, nil
}

func Complete(ap *models.Appointment, notes *string, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	if notes != nil {
		n := strings.TrimSpace(*notes)
		ap.Notes = &n
	}
	ap.UpdatedAt = now
	return nil
}

func MarkNoShow(ap *models.Appointment, now time.Time) error {
	if err := CanMarkNoShow(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	ap.UpdatedAt = now
	return nil
}

func Reschedule(ap *models.Appointment, date time.Time, at availability.TimeOfDay, now time.Time) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.AppointmentDate = availability.DateOnly(date)
	ap.AppointmentTime = at
	ap.UpdatedAt = now
	return nil
}

// IsUpcoming reports whether a booked appointment starts after now. Dates
// are compared as wall-clock values in now's location.
func IsUpcoming(ap *models.Appointment, now time.Time) bool {
	if Status(ap.Status) != StatusBooked {
		return false
	}
	d := ap.AppointmentDate
	start := time.Date(d.Year(), d.Month(), d.Day(), ap.AppointmentTime.Hour(), ap.AppointmentTime.Minute(), 0, 0, now.Location())
	return start.After(now)
}
