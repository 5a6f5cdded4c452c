package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/slotline/booking-api/internal/changefeed"
	"github.com/slotline/booking-api/internal/httperr"
	"github.com/slotline/booking-api/internal/middleware"
)

// EventsHandler streams appointment mutation events to dashboards over
// SSE. Consumers treat every event as "re-fetch the collection"; a
// duplicate refresh is harmless.
type EventsHandler struct {
	feed changefeed.Feed
}

func NewEventsHandler(feed changefeed.Feed) *EventsHandler {
	return &EventsHandler{feed: feed}
}

func (h *EventsHandler) Stream(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	events, cancel, err := h.feed.Subscribe(c.Request.Context(), businessID)
	if err != nil {
		httperr.Internal(c, "feed_subscribe_failed", "Failed to subscribe to events.")
		return
	}
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("change", ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
