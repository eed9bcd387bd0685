package listeners

import (
	"context"
	"fmt"

	"employee-system/internal/events"
	"employee-system/pkg/eventbus"

	"go.uber.org/zap"
)

// EmployeeAuditListener writes an audit line for every lifecycle change.
type EmployeeAuditListener struct {
	logger *zap.Logger
}

func NewEmployeeAuditListener(logger *zap.Logger) *EmployeeAuditListener {
	return &EmployeeAuditListener{logger: logger.Named("audit")}
}

func (l *EmployeeAuditListener) Register(bus *eventbus.Bus) {
	for _, name := range events.AllEmployeeEventNames {
		bus.Subscribe(name, l.Handle)
	}
	l.logger.Info("EmployeeAuditListener subscribed", zap.Strings("events", events.AllEmployeeEventNames))
}

func (l *EmployeeAuditListener) Handle(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.EmployeeLifecycleEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	l.logger.Info("employee lifecycle change",
		zap.String("action", e.Action),
		zap.Uint64s("ids", e.IDs),
	)
	return nil
}
