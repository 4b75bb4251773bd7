package repository

import (
	"context"
	"database/sql/driver"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
	pgCheckViolation  = "23514"

	BookedSlotIndex = "ux_appointments_booked_slot"
)

var uniqueCodes = map[string]string{
	BookedSlotIndex:        "slot_taken",
	"idx_users_username":   "username_taken",
	"ux_users_email_lower": "email_taken",
	"idx_categories_name":  "category_exists",
}

// translate maps storage errors onto business errors. notFound is the code
// used for gorm.ErrRecordNotFound.
func translate(err error, notFound string) error {
	if err == nil {
		return nil
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.Wrap(httperr.KindNotFound, notFound, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return httperr.Wrap(httperr.KindDeadlineExceeded, "deadline_exceeded", err)
	}
	if errors.Is(err, context.Canceled) {
		return httperr.Wrap(httperr.KindDeadlineExceeded, "request_canceled", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if pgErr.ConstraintName == BookedSlotIndex {
				return httperr.Wrap(httperr.KindSlotConflict, "slot_taken", err)
			}
			code, ok := uniqueCodes[pgErr.ConstraintName]
			if !ok {
				code = "duplicate"
			}
			return httperr.Wrap(httperr.KindInvalidArgument, code, err)
		case pgFKViolation:
			return httperr.Wrap(httperr.KindInvalidArgument, "referenced_row_missing", err)
		case pgCheckViolation:
			return httperr.Wrap(httperr.KindInvalidArgument, "constraint_violation", err)
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || errors.Is(err, driver.ErrBadConn) {
		return httperr.Wrap(httperr.KindUnavailable, "store_unavailable", err)
	}

	return err
}
