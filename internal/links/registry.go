package links

import (
	"context"
	"errors"
	"strings"
)

// GeneratedCodeLength is the length of registry-generated short codes.
const GeneratedCodeLength = 8

// maxGenerateAttempts bounds the retry loop for generated-code collisions.
// At 8 characters over a 64-character alphabet a collision is practically
// unreachable, but the loop must terminate under any store behavior.
const maxGenerateAttempts = 3

// CodeGenerator produces random URL-safe short codes.
type CodeGenerator func() string

// Registry owns creation and maintenance of links. All uniqueness and
// ownership coordination is delegated to the Repository; the registry itself
// holds no mutable state and is safe for concurrent use.
type Registry struct {
	store        Repository
	generateCode CodeGenerator
}

// NewRegistry creates a registry backed by the given store and code generator.
func NewRegistry(store Repository, generator CodeGenerator) *Registry {
	return &Registry{
		store:        store,
		generateCode: generator,
	}
}

// Create validates the input and inserts a new link for the owner. A blank
// customSlug means a random code is generated; a generated-code collision is
// retried a bounded number of times before surfacing ErrSlugTaken.
func (r *Registry) Create(ctx context.Context, ownerID, rawURL, customSlug string) (*Link, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(customSlug)
	if slug != "" {
		if err := ValidateSlug(slug); err != nil {
			return nil, err
		}

		return r.store.Insert(ctx, NewLink{
			OwnerID:     ownerID,
			OriginalURL: rawURL,
			ShortCode:   slug,
		})
	}

	var lastErr error

	for range maxGenerateAttempts {
		link, err := r.store.Insert(ctx, NewLink{
			OwnerID:     ownerID,
			OriginalURL: rawURL,
			ShortCode:   r.generateCode(),
		})
		if err == nil {
			return link, nil
		}

		if !errors.Is(err, ErrSlugTaken) {
			return nil, err
		}

		lastErr = err
	}

	return nil, lastErr
}

// Update revalidates the URL and rewrites the link in a single store
// statement scoped by id and owner, so an ownership check cannot race the
// write. A blank customSlug keeps the current short code. Missing link and
// owner mismatch are both reported as ErrNotFound.
func (r *Registry) Update(ctx context.Context, linkID int64, ownerID, rawURL, customSlug string) (*Link, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(customSlug)
	if slug != "" {
		if err := ValidateSlug(slug); err != nil {
			return nil, err
		}
	}

	return r.store.UpdateByID(ctx, linkID, ownerID, rawURL, slug)
}

// Delete removes the link if it exists and belongs to the owner. Returns
// false otherwise; deletion is idempotent and never distinguishes "absent"
// from "not yours".
func (r *Registry) Delete(ctx context.Context, linkID int64, ownerID string) (bool, error) {
	return r.store.DeleteByID(ctx, linkID, ownerID)
}

// ListByOwner returns the owner's links, most recently updated first.
func (r *Registry) ListByOwner(ctx context.Context, ownerID string) ([]Link, error) {
	return r.store.FindAllByOwner(ctx, ownerID)
}
