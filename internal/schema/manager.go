package schema

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Indexes gorm tags cannot express. All are idempotent.
var extraIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_appointments_booked_slot
		ON appointments (doctor_id, appointment_date, appointment_time)
		WHERE status = 'booked'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_users_email_lower ON users (lower(email))`,
	`CREATE INDEX IF NOT EXISTS idx_users_role ON users (role)`,
	`CREATE INDEX IF NOT EXISTS idx_doctors_category ON doctors (category_id)`,
}

const truncateAll = `TRUNCATE TABLE audit_logs, appointments, doctors, categories, users RESTART IDENTITY CASCADE`

type SeedOptions struct {
	AdminUsername string
	AdminEmail    string
	AdminPassword string
	SampleDoctors bool
}

// Manager owns the table definitions and the maintenance operations on them.
// Every operation runs in a single transaction holding the exclusive
// maintenance lock, so writers are turned away until it commits.
type Manager struct {
	db      *gorm.DB
	hasher  auth.PasswordHasher
	seed    SeedOptions
	metrics *metrics.Metrics
	log     *zap.Logger

	// migrate creates tables and indexes; replaced in tests.
	migrate func(tx *gorm.DB) error
}

func NewManager(gdb *gorm.DB, hasher auth.PasswordHasher, seed SeedOptions, m *metrics.Metrics, log *zap.Logger) *Manager {
	if m == nil {
		m = metrics.Nop()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{db: gdb, hasher: hasher, seed: seed, metrics: m, log: log, migrate: migrate}
}

func (m *Manager) exclusive(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.LockExclusive(ctx, tx); err != nil {
			return fmt.Errorf("maintenance lock: %w", err)
		}
		return fn(tx)
	}, db.TxOptions)

	m.metrics.Maintenance(op, err)
	if err != nil {
		m.log.Error("schema maintenance failed", zap.String("op", op), zap.Error(err))
		return err
	}
	m.log.Info("schema maintenance done", zap.String("op", op))
	return nil
}

// EnsureSchema creates missing tables, constraints and indexes. Safe on every
// start; existing rows are never touched.
func (m *Manager) EnsureSchema(ctx context.Context) error {
	return m.exclusive(ctx, "ensure", m.migrate)
}

// SeedDefaults fills a fresh schema with the default categories, the
// administrator and optionally sample doctors. On a populated schema it only
// makes sure an administrator exists.
func (m *Manager) SeedDefaults(ctx context.Context) error {
	return m.exclusive(ctx, "seed", m.seedDefaults)
}

// Bootstrap is EnsureSchema followed by SeedDefaults in one transaction.
func (m *Manager) Bootstrap(ctx context.Context) error {
	return m.exclusive(ctx, "bootstrap", func(tx *gorm.DB) error {
		if err := m.migrate(tx); err != nil {
			return err
		}
		return m.seedDefaults(tx)
	})
}

// Reset drops every table and rebuilds a freshly seeded schema.
func (m *Manager) Reset(ctx context.Context) error {
	return m.exclusive(ctx, "reset", func(tx *gorm.DB) error {
		tables := models.All()
		slices.Reverse(tables)
		for _, t := range tables {
			if err := tx.Migrator().DropTable(t); err != nil {
				return fmt.Errorf("drop %T: %w", t, err)
			}
		}
		if err := m.migrate(tx); err != nil {
			return err
		}
		return m.seedDefaults(tx)
	})
}

// Clear removes all rows and restarts identities; definitions stay. The
// administrator is recreated by the next SeedDefaults.
func (m *Manager) Clear(ctx context.Context) error {
	return m.exclusive(ctx, "clear", func(tx *gorm.DB) error {
		return tx.Exec(truncateAll).Error
	})
}

func migrate(tx *gorm.DB) error {
	if err := tx.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, stmt := range extraIndexes {
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// --------------------------------------------------
// Health
// --------------------------------------------------

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

type Health struct {
	Status string           `json:"status"`
	Tables map[string]int64 `json:"tables,omitempty"`
	Error  string           `json:"error,omitempty"`
}

var healthTables = []struct {
	name  string
	model any
}{
	{"users", &models.User{}},
	{"doctors", &models.Doctor{}},
	{"categories", &models.Category{}},
	{"appointments", &models.Appointment{}},
}

// Health counts the rows of each entity table. It does not take the
// maintenance lock.
func (m *Manager) Health(ctx context.Context) Health {
	counts := make(map[string]int64, len(healthTables))
	for _, t := range healthTables {
		var n int64
		if err := m.db.WithContext(ctx).Model(t.model).Count(&n).Error; err != nil {
			m.log.Warn("health check failed", zap.String("table", t.name), zap.Error(err))
			return Health{Status: StatusUnhealthy, Error: "database_unreachable"}
		}
		counts[t.name] = n
	}
	return Health{Status: StatusHealthy, Tables: counts}
}
