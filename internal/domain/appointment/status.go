package appointment

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusBooked    Status = "booked"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

var AllStatuses = []Status{StatusBooked, StatusCompleted, StatusCancelled, StatusNoShow}

func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", httperr.InvalidArgument("invalid_status")
}

// Terminal statuses have no outgoing transitions.
func (s Status) Terminal() bool {
	return s != StatusBooked
}

// ===============================
// Validations
// ===============================

// CanTransition allows only booked -> {completed, cancelled, no-show} and
// booked -> booked (reschedule).
func CanTransition(from, to Status) error {
	if from != StatusBooked {
		return httperr.InvalidTransition("invalid_state")
	}
	switch to {
	case StatusBooked, StatusCompleted, StatusCancelled, StatusNoShow:
		return nil
	}
	return httperr.InvalidArgument("invalid_status")
}

func CanCancel(current Status) error {
	return CanTransition(current, StatusCancelled)
}

func CanComplete(current Status) error {
	return CanTransition(current, StatusCompleted)
}

func CanMarkNoShow(current Status) error {
	return CanTransition(current, StatusNoShow)
}

func CanReschedule(current Status) error {
	return CanTransition(current, StatusBooked)
}

func InitialStatus() Status {
	return StatusBooked
}
