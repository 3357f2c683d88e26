// Package resolver turns public short codes into safe HTTP redirects.
package resolver

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/serroba/shortlinks/internal/links"
)

// ErrNotFound is returned when no link exists for the short code.
var ErrNotFound = links.ErrNotFound

// ErrUnsafeStoredURL is returned when the stored URL fails re-validation at
// resolve time. This is a data-integrity fault, not a client error, and must
// stay distinguishable from ErrNotFound in logs.
var ErrUnsafeStoredURL = errors.New("stored url is invalid or unsafe")

// Store is the read-only slice of the repository the resolver needs.
type Store interface {
	FindByShortCode(ctx context.Context, code string) (*links.Link, error)
}

// Redirect is a successful resolution. Location is the exact stored URL
// string, never a re-serialized form, so query strings, fragments, and
// encoding reach the destination untouched.
type Redirect struct {
	Location string
	Status   int
}

// Resolver resolves short codes against the store. It is stateless and safe
// for concurrent use.
type Resolver struct {
	store Store
}

// New creates a resolver backed by the given store.
func New(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve looks up the short code and re-validates the stored URL before
// allowing a redirect. Write-time validation is never trusted here: a stored
// value that is malformed or uses any scheme other than http/https is
// rejected with ErrUnsafeStoredURL, which blocks stored-data-driven open
// redirects (javascript:, data:, file:, ...).
func (r *Resolver) Resolve(ctx context.Context, shortCode string) (*Redirect, error) {
	link, err := r.store.FindByShortCode(ctx, shortCode)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(link.OriginalURL)
	if err != nil || !u.IsAbs() {
		return nil, ErrUnsafeStoredURL
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, ErrUnsafeStoredURL
	}

	return &Redirect{
		Location: link.OriginalURL,
		Status:   http.StatusMovedPermanently,
	}, nil
}
