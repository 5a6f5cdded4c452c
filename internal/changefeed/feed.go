package changefeed

import "context"

// Event announces that an appointment collection changed for a tenant.
// Consumers re-fetch the affected collection; the payload is a hint, not
// a patch. Delivery is at-least-once and carries no ordering guarantee.
type Event struct {
	BusinessID uint   `json:"business_id"`
	Entity     string `json:"entity"`
	Action     string `json:"action"` // created | updated | deleted
	EntityID   uint   `json:"entity_id"`
}

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Feed is the per-tenant publish/subscribe channel for appointment
// mutations. Publish failures must never fail the originating write;
// callers log and move on.
type Feed interface {
	Publish(ctx context.Context, ev Event) error

	// Subscribe delivers events for one business until the returned
	// cancel func is called.
	Subscribe(ctx context.Context, businessID uint) (<-chan Event, func(), error)
}
