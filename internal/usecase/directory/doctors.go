package directory

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/directory"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const activeDoctorsKey = "doctors:active"

func doctorKey(id uint) string {
	return "doctor:" + strconv.FormatUint(uint64(id), 10)
}

// ======================================================
// INPUT
// ======================================================

type DoctorInput struct {
	Name            string
	Specialty       string
	CategoryID      *uint
	Details         string
	ExperienceYears int
	ConsultationFee decimal.Decimal
	AvailableDays   availability.WeekdaySet
	AvailableHours  availability.HourRange
	IsActive        *bool
}

func (in DoctorInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return httperr.InvalidArgument("name_required")
	case strings.TrimSpace(in.Specialty) == "":
		return httperr.InvalidArgument("specialty_required")
	case in.ExperienceYears < 0:
		return httperr.InvalidArgument("negative_experience")
	case in.ConsultationFee.IsNegative():
		return httperr.InvalidArgument("negative_fee")
	case in.AvailableDays.Empty():
		return httperr.InvalidArgument("no_available_days")
	}
	if _, err := availability.NewHourRange(in.AvailableHours.Start, in.AvailableHours.End); err != nil {
		return err
	}
	return nil
}

func (in DoctorInput) apply(d *models.Doctor) {
	d.Name = strings.TrimSpace(in.Name)
	d.Specialty = strings.TrimSpace(in.Specialty)
	d.CategoryID = in.CategoryID
	d.Details = strings.TrimSpace(in.Details)
	d.ExperienceYears = in.ExperienceYears
	d.ConsultationFee = in.ConsultationFee.Round(2)
	d.AvailableDays = in.AvailableDays
	d.AvailableHours = in.AvailableHours
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}
}

// ======================================================
// SERVICE
// ======================================================

// Doctors serves doctor reads through a KV cache keyed per doctor plus one
// entry for the default active listing. Every write drops both.
type Doctors struct {
	repo  domain.Repository
	kv    cache.KV
	ttl   time.Duration
	audit audit.Sink
	log   *zap.Logger
	clock func() time.Time
}

func NewDoctors(repo domain.Repository, kv cache.KV, ttl time.Duration, sink audit.Sink, log *zap.Logger) *Doctors {
	if kv == nil {
		kv = cache.NopKV{}
	}
	if sink == nil {
		sink = audit.Nop
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Doctors{repo: repo, kv: kv, ttl: ttl, audit: sink, log: log, clock: time.Now}
}

func (s *Doctors) List(ctx context.Context, f domain.DoctorFilter) ([]models.Doctor, error) {
	cacheable := f == domain.DoctorFilter{}
	if cacheable {
		var list []models.Doctor
		if s.getCached(ctx, activeDoctorsKey, &list) {
			return list, nil
		}
	}

	list, err := s.repo.ListDoctors(ctx, f)
	if err != nil {
		return nil, err
	}

	if cacheable {
		s.setCached(ctx, activeDoctorsKey, list)
	}
	return list, nil
}

// GetDoctor returns the doctor whether active or not; callers decide what an
// inactive doctor means for them.
func (s *Doctors) GetDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	var d models.Doctor
	if s.getCached(ctx, doctorKey(id), &d) {
		return &d, nil
	}

	got, err := s.repo.GetDoctor(ctx, id)
	if err != nil {
		return nil, err
	}
	s.setCached(ctx, doctorKey(id), got)
	return got, nil
}

// Get is the public read: inactive doctors are hidden from non-admins.
func (s *Doctors) Get(ctx context.Context, caller identity.Caller, id uint) (*models.Doctor, error) {
	d, err := s.GetDoctor(ctx, id)
	if err != nil {
		return nil, err
	}
	if !d.IsActive && !caller.IsAdmin() {
		return nil, httperr.NotFound("doctor_not_found")
	}
	return d, nil
}

func (s *Doctors) Create(ctx context.Context, caller identity.Caller, in DoctorInput) (*models.Doctor, error) {
	if err := caller.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	d := &models.Doctor{IsActive: true}
	in.apply(d)
	if err := s.repo.CreateDoctor(ctx, d); err != nil {
		return nil, err
	}

	s.invalidate(ctx, d.ID)
	s.record(caller, audit.ActionDoctorCreated, d.ID)
	return d, nil
}

func (s *Doctors) Update(ctx context.Context, caller identity.Caller, id uint, in DoctorInput) (*models.Doctor, error) {
	if err := caller.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	d, err := s.repo.GetDoctor(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(d)
	d.UpdatedAt = s.clock()
	if err := s.repo.UpdateDoctor(ctx, d); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.record(caller, audit.ActionDoctorUpdated, id)
	return d, nil
}

// Deactivate is the doctor "delete". Existing appointments keep pointing at
// the row; new bookings no longer see it.
func (s *Doctors) Deactivate(ctx context.Context, caller identity.Caller, id uint) (*models.Doctor, error) {
	if err := caller.RequireAdmin(); err != nil {
		return nil, err
	}

	d, err := s.repo.GetDoctor(ctx, id)
	if err != nil {
		return nil, err
	}
	if !d.IsActive {
		return d, nil
	}

	d.IsActive = false
	d.UpdatedAt = s.clock()
	if err := s.repo.UpdateDoctor(ctx, d); err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	s.record(caller, audit.ActionDoctorDeactivated, id)
	return d, nil
}

func (s *Doctors) checkCategory(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := s.repo.GetCategory(ctx, *id); err != nil {
		if httperr.IsKind(err, httperr.KindNotFound) {
			return httperr.InvalidArgument("category_not_found")
		}
		return err
	}
	return nil
}

// --------------------------------------------------
// Cache helpers
// --------------------------------------------------

func (s *Doctors) getCached(ctx context.Context, key string, dst any) bool {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn("doctor cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Warn("doctor cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Doctors) setCached(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.kv.Set(ctx, key, string(b), s.ttl); err != nil {
		s.log.Warn("doctor cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Doctors) invalidate(ctx context.Context, id uint) {
	if err := s.kv.Del(ctx, doctorKey(id), activeDoctorsKey); err != nil {
		s.log.Warn("doctor cache invalidation failed", zap.Uint("doctor_id", id), zap.Error(err))
	}
}

// Flush drops every doctor entry; used after a schema reset or clear.
func (s *Doctors) Flush(ctx context.Context) error {
	keys, err := s.kv.ScanKeys(ctx, "doctor*")
	if err != nil {
		return err
	}
	return s.kv.Del(ctx, keys...)
}

func (s *Doctors) record(caller identity.Caller, action string, id uint) {
	s.audit.Dispatch(audit.Event{
		ActorID:   audit.Ptr(caller.UserID),
		ActorRole: string(caller.Role),
		Action:    action,
		Entity:    "doctor",
		EntityID:  audit.Ptr(id),
	})
}
