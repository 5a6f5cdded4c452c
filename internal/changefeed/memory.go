package changefeed

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// MemoryFeed is the in-process feed used by tests and single-node
// deployments. Subscribers are keyed by business, nothing is
// package-global, so parallel tests cannot cross-contaminate.
type MemoryFeed struct {
	mu     sync.RWMutex
	nextID int
	subs   map[uint]map[int]chan Event
	logger *zap.Logger
}

func NewMemoryFeed(logger *zap.Logger) *MemoryFeed {
	return &MemoryFeed{
		subs:   make(map[uint]map[int]chan Event),
		logger: logger,
	}
}

func (f *MemoryFeed) Publish(_ context.Context, ev Event) error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, ch := range f.subs[ev.BusinessID] {
		select {
		case ch <- ev:
		default:
			// never block a write on a slow observer
			f.logger.Warn("feed subscriber full, dropping event",
				zap.Uint("business_id", ev.BusinessID))
		}
	}

	return nil
}

func (f *MemoryFeed) Subscribe(_ context.Context, businessID uint) (<-chan Event, func(), error) {
	ch := make(chan Event, 16)

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	if f.subs[businessID] == nil {
		f.subs[businessID] = make(map[int]chan Event)
	}
	f.subs[businessID][id] = ch
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if sub, ok := f.subs[businessID][id]; ok {
			delete(f.subs[businessID], id)
			close(sub)
		}
		f.mu.Unlock()
	}

	return ch, cancel, nil
}

var _ Feed = (*MemoryFeed)(nil)
