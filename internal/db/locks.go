package db

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// MaintenanceLockKey is the advisory lock shared by schema maintenance
// (exclusive) and writers (shared).
const MaintenanceLockKey int64 = 7_304_221_001

// TxOptions is the isolation every unit of work runs at.
var TxOptions = &sql.TxOptions{Isolation: sql.LevelReadCommitted}

// LockExclusive blocks until no writer holds the shared side. Released at
// transaction end.
func LockExclusive(ctx context.Context, tx *gorm.DB) error {
	return tx.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", MaintenanceLockKey).Error
}

// TryLockShared reports false, without waiting, while maintenance holds the
// exclusive side. Released at transaction end.
func TryLockShared(ctx context.Context, tx *gorm.DB) (bool, error) {
	var ok bool
	err := tx.WithContext(ctx).
		Raw("SELECT pg_try_advisory_xact_lock_shared(?)", MaintenanceLockKey).
		Scan(&ok).Error
	return ok, err
}
