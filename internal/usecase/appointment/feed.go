package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/slotline/booking-api/internal/changefeed"
	"github.com/slotline/booking-api/internal/models"
)

// publishFeedEvent is best-effort: the write already succeeded, so a
// propagation failure is logged and never returned to the caller.
func publishFeedEvent(
	ctx context.Context,
	feed changefeed.Feed,
	logger *zap.Logger,
	ap *models.Appointment,
	action string,
) {
	if feed == nil {
		return
	}

	ev := changefeed.Event{
		BusinessID: ap.BusinessID,
		Entity:     "appointment",
		Action:     action,
		EntityID:   ap.ID,
	}

	if err := feed.Publish(ctx, ev); err != nil {
		logger.Warn("feed publish failed",
			zap.Uint("business_id", ap.BusinessID),
			zap.Uint("appointment_id", ap.ID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
