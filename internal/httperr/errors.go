package httperr

import "errors"

// Kind groups business error codes by how a caller is expected to recover.
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindInvalidArgument   Kind = "invalid_argument"
	KindSlotConflict      Kind = "slot_conflict"
	KindInvalidTransition Kind = "invalid_transition"
	KindOutOfWindow       Kind = "out_of_window"
	KindUnauthorized      Kind = "unauthorized"
	KindUnavailable       Kind = "unavailable"
	KindDeadlineExceeded  Kind = "deadline_exceeded"
)

type BusinessError struct {
	Kind  Kind
	Code  string
	Cause error
}

func (e BusinessError) Error() string {
	if e.Cause != nil {
		return e.Code + ": " + e.Cause.Error()
	}
	return e.Code
}

func (e BusinessError) Unwrap() error {
	return e.Cause
}

// ErrBusiness keeps the old single-argument form for validation failures.
func ErrBusiness(code string) error {
	return BusinessError{Kind: KindInvalidArgument, Code: code}
}

func New(kind Kind, code string) error {
	return BusinessError{Kind: kind, Code: code}
}

func Wrap(kind Kind, code string, cause error) error {
	return BusinessError{Kind: kind, Code: code, Cause: cause}
}

func NotFound(code string) error          { return New(KindNotFound, code) }
func InvalidArgument(code string) error   { return New(KindInvalidArgument, code) }
func SlotConflict(code string) error      { return New(KindSlotConflict, code) }
func InvalidTransition(code string) error { return New(KindInvalidTransition, code) }
func OutOfWindow(code string) error       { return New(KindOutOfWindow, code) }
func Unauthorized(code string) error      { return New(KindUnauthorized, code) }
func Unavailable(code string) error       { return New(KindUnavailable, code) }

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func IsKind(err error, kind Kind) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}

// KindOf returns the kind of a business error, or "" for anything else.
func KindOf(err error) Kind {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

// CodeOf returns the code of a business error, or "" for anything else.
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
