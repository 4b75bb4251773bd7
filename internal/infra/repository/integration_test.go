//go:build integration

package repository_test

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/schema"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	"github.com/BruksfildServices01/clinic-scheduler/internal/usecase/appointment"
)

// Run with: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infra/repository/
func openTestDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Skipf("database unreachable: %v", err)
	}
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	if err := sqlDB.Ping(); err != nil {
		t.Skipf("database unreachable: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return gdb
}

func freshSchema(t *testing.T, gdb *gorm.DB) *schema.Manager {
	mgr := schema.NewManager(gdb, auth.BcryptHasher{Cost: bcrypt.MinCost}, schema.SeedOptions{
		AdminUsername: "admin",
		AdminEmail:    "admin@clinic.test",
		AdminPassword: "admin123",
		SampleDoctors: true,
	}, nil, nil)
	require.NoError(t, mgr.Reset(context.Background()))
	return mgr
}

func TestIntegration_ConcurrentBookingsYieldOneWinner(t *testing.T) {
	gdb := openTestDB(t)
	mgr := freshSchema(t, gdb)
	ctx := context.Background()

	h := mgr.Health(ctx)
	require.Equal(t, schema.StatusHealthy, h.Status)
	assert.Equal(t, int64(10), h.Tables["doctors"])
	assert.Equal(t, int64(10), h.Tables["categories"])
	assert.Equal(t, int64(1), h.Tables["users"])

	dir := repository.NewDirectoryGormRepository(gdb)
	doctors, err := dir.ListDoctors(ctx, directory.DoctorFilter{Query: "John Smith"})
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	doctorID := doctors[0].ID

	const n = 12
	patients := make([]uint, n)
	for i := range patients {
		u := &models.User{
			Username:     "patient_" + string(rune('a'+i)),
			Email:        "p" + string(rune('a'+i)) + "@clinic.test",
			PasswordHash: "x",
			Role:         string(identity.RolePatient),
			FullName:     "Patient",
			IsActive:     true,
		}
		require.NoError(t, dir.CreateUser(ctx, u))
		patients[i] = u.ID
	}

	book := appointment.NewBookAppointment(appointment.Deps{
		Store:  repository.NewAppointmentGormRepository(gdb),
		Clock:  timezone.FixedClock(time.Date(2026, 10, 12, 8, 0, 0, 0, time.UTC)),
		Policy: domain.DefaultPolicy(),
	})
	tuesday := time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)
	ten := availability.MustTimeOfDay("10:00")

	var wins, conflicts atomic.Int32
	var wg sync.WaitGroup
	for _, pid := range patients {
		wg.Add(1)
		go func(pid uint) {
			defer wg.Done()
			caller := identity.Caller{UserID: pid, Role: identity.RolePatient}
			_, err := book.Execute(ctx, caller, appointment.BookInput{
				PatientID: pid, DoctorID: doctorID, Date: tuesday, Time: ten, Reason: "checkup",
			})
			switch {
			case err == nil:
				wins.Add(1)
			case httperr.IsKind(err, httperr.KindSlotConflict):
				conflicts.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(pid)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(n-1), conflicts.Load())

	var booked int64
	require.NoError(t, gdb.Model(&models.Appointment{}).Where("status = ?", "booked").Count(&booked).Error)
	assert.Equal(t, int64(1), booked)
}

func TestIntegration_PartialIndexAllowsRebookAfterCancel(t *testing.T) {
	gdb := openTestDB(t)
	freshSchema(t, gdb)
	ctx := context.Background()
	repo := repository.NewAppointmentGormRepository(gdb)
	dir := repository.NewDirectoryGormRepository(gdb)

	u := &models.User{Username: "pat", Email: "pat@clinic.test", PasswordHash: "x", Role: "patient", FullName: "Pat", IsActive: true}
	require.NoError(t, dir.CreateUser(ctx, u))

	slot := func() *models.Appointment {
		return &models.Appointment{
			PatientID:       u.ID,
			DoctorID:        1,
			AppointmentDate: time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC),
			AppointmentTime: availability.MustTimeOfDay("11:00"),
			Reason:          "checkup",
			Status:          string(domain.StatusBooked),
		}
	}

	first := slot()
	require.NoError(t, repo.CreateAppointment(ctx, first))

	err := repo.CreateAppointment(ctx, slot())
	assert.True(t, httperr.IsKind(err, httperr.KindSlotConflict), "got %v", err)

	first.Status = string(domain.StatusCancelled)
	require.NoError(t, repo.UpdateAppointment(ctx, first))
	assert.NoError(t, repo.CreateAppointment(ctx, slot()))
}

func TestIntegration_ClearEmptiesAndSeedRestoresAdmin(t *testing.T) {
	gdb := openTestDB(t)
	mgr := freshSchema(t, gdb)
	ctx := context.Background()

	require.NoError(t, mgr.Clear(ctx))
	h := mgr.Health(ctx)
	assert.Equal(t, int64(0), h.Tables["users"])
	assert.Equal(t, int64(0), h.Tables["doctors"])

	require.NoError(t, mgr.Bootstrap(ctx))
	h = mgr.Health(ctx)
	assert.Equal(t, int64(1), h.Tables["users"])
	assert.Equal(t, int64(10), h.Tables["categories"])
}
