package links

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no link matches the lookup. For owner-scoped
// mutations it also covers owner mismatch, so callers cannot tell whether a
// link exists under someone else's account.
var ErrNotFound = errors.New("link not found")

// ErrSlugTaken is returned when an insert or update loses the uniqueness
// race on a short code, whether the code was user-chosen or generated.
var ErrSlugTaken = errors.New("short code already taken")

// Link is a short-code to URL mapping owned by a single user.
type Link struct {
	ID          int64     `json:"id"`
	OwnerID     string    `json:"ownerId"`
	OriginalURL string    `json:"originalUrl"`
	ShortCode   string    `json:"shortCode"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewLink carries the fields for an insert. ID and timestamps are assigned
// by the store.
type NewLink struct {
	OwnerID     string
	OriginalURL string
	ShortCode   string
}

// Repository defines the storage operations shared by the registry and the
// resolver. Short-code uniqueness is enforced by the store itself: Insert
// and UpdateByID return ErrSlugTaken when a write would duplicate a code.
type Repository interface {
	FindByShortCode(ctx context.Context, code string) (*Link, error)
	FindByID(ctx context.Context, id int64) (*Link, error)

	// FindAllByOwner returns the owner's links ordered by UpdatedAt descending.
	FindAllByOwner(ctx context.Context, ownerID string) ([]Link, error)

	Insert(ctx context.Context, link NewLink) (*Link, error)

	// UpdateByID mutates a link in a single statement scoped by both id and
	// owner. An empty shortCode keeps the existing code. Returns ErrNotFound
	// when no row matches either the id or the owner.
	UpdateByID(ctx context.Context, id int64, ownerID, originalURL, shortCode string) (*Link, error)

	// DeleteByID removes a link scoped by id and owner. Returns false when
	// nothing was deleted; deleting an absent or foreign link is not an error.
	DeleteByID(ctx context.Context, id int64, ownerID string) (bool, error)
}
