package services

import (
	"context"
	"time"

	rabbit "storefront-service/internal/infra/rabbitmq"

	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

// publishEvent is fire-and-forget: a broker failure is logged and never
// reaches the caller.
func publishEvent(pub rabbit.PublisherInterface, pattern string, evt any) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := pub.Publish(ctx, pattern, evt); err != nil {
		log.Warn().Err(err).Str("pattern", pattern).Msg("failed to publish event")
		return
	}
	log.Debug().Str("pattern", pattern).Msg("event published")
}
