package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
)

type AuditSink struct{ mock.Mock }

func (m *AuditSink) Dispatch(ev audit.Event) {
	m.Called(ev)
}
