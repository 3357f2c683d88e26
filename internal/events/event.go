// Package events defines the link lifecycle event stream. Events fire on
// registry mutations only, never on redirects, and let downstream consumers
// (dashboard revalidation, audit trail) react without coupling to the
// request path.
package events

import "time"

// Topics for link lifecycle events.
const (
	TopicLinkCreated = "links.created"
	TopicLinkUpdated = "links.updated"
	TopicLinkDeleted = "links.deleted"
)

// LinkCreatedEvent is emitted after a link is inserted.
type LinkCreatedEvent struct {
	LinkID      int64     `json:"linkId"`
	OwnerID     string    `json:"ownerId"`
	ShortCode   string    `json:"shortCode"`
	OriginalURL string    `json:"originalUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LinkUpdatedEvent is emitted after a link mutation.
type LinkUpdatedEvent struct {
	LinkID      int64     `json:"linkId"`
	OwnerID     string    `json:"ownerId"`
	ShortCode   string    `json:"shortCode"`
	OriginalURL string    `json:"originalUrl"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LinkDeletedEvent is emitted after a link is removed.
type LinkDeletedEvent struct {
	LinkID    int64     `json:"linkId"`
	OwnerID   string    `json:"ownerId"`
	DeletedAt time.Time `json:"deletedAt"`
}
