package handlers

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlinks/internal/resolver"
	"go.uber.org/zap"
)

// RedirectHandler serves the public, unauthenticated redirect path.
type RedirectHandler struct {
	resolver *resolver.Resolver
	logger   *zap.Logger
}

// NewRedirectHandler creates a redirect handler.
func NewRedirectHandler(res *resolver.Resolver, logger *zap.Logger) *RedirectHandler {
	return &RedirectHandler{
		resolver: res,
		logger:   logger,
	}
}

func (h *RedirectHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	redirect, err := h.resolver.Resolve(ctx, req.Code)
	if err != nil {
		if errors.Is(err, resolver.ErrNotFound) {
			return nil, huma.Error404NotFound("short link not found")
		}

		// An unsafe stored URL is a data-integrity fault, not a bad request
		// from this client; it gets its own log signal so it never drowns in
		// ordinary 404 noise.
		if errors.Is(err, resolver.ErrUnsafeStoredURL) {
			h.logger.Warn("refusing redirect for unsafe stored url",
				zap.String("shortCode", req.Code),
			)

			return nil, huma.Error400BadRequest("stored url is invalid")
		}

		h.logger.Error("redirect lookup failure",
			zap.String("shortCode", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError(msgStorageFailed)
	}

	resp := &RedirectResponse{Status: redirect.Status}
	resp.Headers.Location = redirect.Location

	return resp, nil
}
