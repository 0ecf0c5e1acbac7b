package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/planets-api/internal/events"
)

// StartAuditWorker subscribes an audit-log handler to every event type
// so logins and planet mutations leave a structured trail.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	audit := logger.Named("audit")
	handler := func(_ context.Context, event events.Event) error {
		audit.Info("event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.String("actor", event.Actor),
			zap.Time("at", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	for _, eventType := range []events.EventType{
		events.EventUserLoggedIn,
		events.EventPlanetCreated,
		events.EventPlanetUpdated,
		events.EventPlanetDeleted,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
