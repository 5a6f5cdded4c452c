package changefeed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisFeed broadcasts events over redis pub/sub so every API node sees
// mutations made on any of them.
type RedisFeed struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisFeed(client *redis.Client, logger *zap.Logger) *RedisFeed {
	return &RedisFeed{client: client, logger: logger}
}

func channelFor(businessID uint) string {
	return fmt.Sprintf("booking:feed:%d", businessID)
}

func (f *RedisFeed) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal feed event: %w", err)
	}

	if err := f.client.Publish(ctx, channelFor(ev.BusinessID), payload).Err(); err != nil {
		return fmt.Errorf("publish feed event: %w", err)
	}

	return nil
}

func (f *RedisFeed) Subscribe(ctx context.Context, businessID uint) (<-chan Event, func(), error) {
	sub := f.client.Subscribe(ctx, channelFor(businessID))

	// force the subscription before we hand out the channel
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("subscribe feed: %w", err)
	}

	out := make(chan Event, 16)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				f.logger.Warn("dropping malformed feed event", zap.Error(err))
				continue
			}
			select {
			case out <- ev:
			default:
				// slow consumer; a duplicate refresh later is harmless,
				// a blocked publisher loop is not
				f.logger.Warn("feed subscriber lagging, dropping event",
					zap.Uint("business_id", businessID))
			}
		}
	}()

	cancel := func() {
		_ = sub.Close()
	}

	return out, cancel, nil
}

var _ Feed = (*RedisFeed)(nil)
