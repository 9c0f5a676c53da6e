package publisher

import (
	"context"

	"github.com/Patrice250/MyCabinet/module/tracking/domain"
)

// AlertPublisher fans persisted safe-zone violations out to external
// integrations (SMS bridges, audit consumers). Dashboard delivery goes
// through the websocket hub, not through here.
type AlertPublisher interface {
	PublishAlert(ctx context.Context, event *domain.AlertEvent) error
}
