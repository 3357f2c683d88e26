package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlinks/internal/auth"
	"github.com/serroba/shortlinks/internal/events"
	"github.com/serroba/shortlinks/internal/links"
	"github.com/serroba/shortlinks/internal/messaging"
	"go.uber.org/zap"
)

// User-facing error messages. SlugTaken deliberately never reveals whether
// the collision was with the caller's own code or someone else's, and
// not-found never reveals whether the link exists under another owner.
const (
	msgUnauthorized  = "unauthorized"
	msgSlugTaken     = "this custom slug is already taken"
	msgNotFound      = "link not found or unauthorized"
	msgStorageFailed = "something went wrong, please try again"
)

// LinkHandler handles the authenticated link management operations.
type LinkHandler struct {
	registry       *links.Registry
	publishCreated messaging.Publish[events.LinkCreatedEvent]
	publishUpdated messaging.Publish[events.LinkUpdatedEvent]
	publishDeleted messaging.Publish[events.LinkDeletedEvent]
	logger         *zap.Logger
}

// NewLinkHandler creates a link handler with injected collaborators.
func NewLinkHandler(
	registry *links.Registry,
	publishCreated messaging.Publish[events.LinkCreatedEvent],
	publishUpdated messaging.Publish[events.LinkUpdatedEvent],
	publishDeleted messaging.Publish[events.LinkDeletedEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		registry:       registry,
		publishCreated: publishCreated,
		publishUpdated: publishUpdated,
		publishDeleted: publishDeleted,
		logger:         logger,
	}
}

func (h *LinkHandler) CreateLink(ctx context.Context, req *CreateLinkRequest) (*CreateLinkResponse, error) {
	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized(msgUnauthorized)
	}

	link, err := h.registry.Create(ctx, ownerID, req.Body.URL, req.Body.CustomSlug)
	if err != nil {
		return nil, h.mapRegistryError(err)
	}

	event := &events.LinkCreatedEvent{
		LinkID:      link.ID,
		OwnerID:     link.OwnerID,
		ShortCode:   link.ShortCode,
		OriginalURL: link.OriginalURL,
		CreatedAt:   link.CreatedAt,
	}
	if err := h.publishCreated(event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.Int64("linkId", link.ID),
			zap.Error(err),
		)
	}

	return &CreateLinkResponse{Body: *link}, nil
}

func (h *LinkHandler) UpdateLink(ctx context.Context, req *UpdateLinkRequest) (*UpdateLinkResponse, error) {
	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized(msgUnauthorized)
	}

	link, err := h.registry.Update(ctx, req.ID, ownerID, req.Body.URL, req.Body.CustomSlug)
	if err != nil {
		return nil, h.mapRegistryError(err)
	}

	event := &events.LinkUpdatedEvent{
		LinkID:      link.ID,
		OwnerID:     link.OwnerID,
		ShortCode:   link.ShortCode,
		OriginalURL: link.OriginalURL,
		UpdatedAt:   link.UpdatedAt,
	}
	if err := h.publishUpdated(event); err != nil {
		h.logger.Error("failed to publish link updated event",
			zap.Int64("linkId", link.ID),
			zap.Error(err),
		)
	}

	return &UpdateLinkResponse{Body: *link}, nil
}

func (h *LinkHandler) DeleteLink(ctx context.Context, req *DeleteLinkRequest) (*DeleteLinkResponse, error) {
	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized(msgUnauthorized)
	}

	deleted, err := h.registry.Delete(ctx, req.ID, ownerID)
	if err != nil {
		return nil, h.mapRegistryError(err)
	}

	if !deleted {
		return nil, huma.Error404NotFound(msgNotFound)
	}

	event := &events.LinkDeletedEvent{
		LinkID:    req.ID,
		OwnerID:   ownerID,
		DeletedAt: time.Now(),
	}
	if err := h.publishDeleted(event); err != nil {
		h.logger.Error("failed to publish link deleted event",
			zap.Int64("linkId", req.ID),
			zap.Error(err),
		)
	}

	return &DeleteLinkResponse{}, nil
}

func (h *LinkHandler) ListLinks(ctx context.Context, _ *struct{}) (*ListLinksResponse, error) {
	ownerID, ok := auth.OwnerFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized(msgUnauthorized)
	}

	owned, err := h.registry.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, h.mapRegistryError(err)
	}

	resp := &ListLinksResponse{}
	resp.Body.Links = owned

	return resp, nil
}

// mapRegistryError translates the registry error taxonomy into HTTP errors.
// Validation messages pass through verbatim; storage failures are logged
// with detail but surfaced only as a generic message.
func (h *LinkHandler) mapRegistryError(err error) error {
	var validationErr *links.ValidationError
	if errors.As(err, &validationErr) {
		return huma.Error400BadRequest(validationErr.Message)
	}

	if errors.Is(err, links.ErrSlugTaken) {
		return huma.Error409Conflict(msgSlugTaken)
	}

	if errors.Is(err, links.ErrNotFound) {
		return huma.Error404NotFound(msgNotFound)
	}

	h.logger.Error("link storage failure", zap.Error(err))

	return huma.Error500InternalServerError(msgStorageFailed)
}
