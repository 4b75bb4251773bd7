package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const (
	ActionBooked      = "appointment.booked"
	ActionConflict    = "appointment.conflict"
	ActionCancelled   = "appointment.cancelled"
	ActionCompleted   = "appointment.completed"
	ActionNoShow      = "appointment.no_show"
	ActionRescheduled = "appointment.rescheduled"
	ActionDeleted     = "appointment.deleted"

	ActionDoctorCreated     = "doctor.created"
	ActionDoctorUpdated     = "doctor.updated"
	ActionDoctorDeactivated = "doctor.deactivated"
	ActionUserCreated       = "user.created"
	ActionUserActive        = "user.active_changed"
	ActionCategoryCreated   = "category.created"
	ActionMaintenanceReset  = "maintenance.reset"
	ActionMaintenanceClear  = "maintenance.clear"
)

type Event struct {
	ActorID   *uint
	ActorRole string
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

type Sink interface {
	Dispatch(ev Event)
}

type Writer interface {
	Log(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	writer Writer
	log    *zap.Logger
	queue  chan Event
	wg     sync.WaitGroup
	once   sync.Once
}

func NewDispatcher(writer Writer, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		writer: writer,
		log:    log,
		queue:  make(chan Event, 100),
	}

	d.wg.Add(1)
	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for ev := range d.queue {
		if err := d.writer.Log(context.Background(), ev); err != nil {
			d.log.Error("audit write failed", zap.String("action", ev.Action), zap.Error(err))
		}
	}
}

// Dispatch never blocks; events are dropped when the queue is full.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains queued events. Dispatch must not be called afterwards.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.queue) })
	d.wg.Wait()
}

type nop struct{}

func (nop) Dispatch(Event) {}

var Nop Sink = nop{}

// Ptr is a helper for EntityID and ActorID.
func Ptr(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
