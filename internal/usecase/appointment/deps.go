package appointment

import (
	"errors"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// Deps are the collaborators shared by every appointment use case.
type Deps struct {
	Store   domain.Store
	Audit   audit.Sink
	Clock   timezone.Clock
	Policy  domain.BookingPolicy
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Clock == nil {
		d.Clock = timezone.SystemClock("")
	}
	if d.Audit == nil {
		d.Audit = audit.Nop
	}
	if d.Metrics == nil {
		d.Metrics = metrics.Nop()
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return d
}

func actor(c identity.Caller) (*uint, string) {
	return audit.Ptr(c.UserID), string(c.Role)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeBooked
	case httperr.IsKind(err, httperr.KindSlotConflict):
		return metrics.OutcomeConflict
	case httperr.IsKind(err, httperr.KindUnavailable):
		return metrics.OutcomeUnavailable
	}
	var be httperr.BusinessError
	if errors.As(err, &be) {
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeError
}
