package events

import (
	"context"

	"go.uber.org/zap"
)

// AuditLog records the lifecycle event stream as structured log entries. It
// is the handler side of the consumer binary; swapping it for a persistent
// sink only requires new Handler funcs.
type AuditLog struct {
	logger *zap.Logger
}

// NewAuditLog creates an audit log writing to the given logger.
func NewAuditLog(logger *zap.Logger) *AuditLog {
	return &AuditLog{logger: logger}
}

func (a *AuditLog) HandleLinkCreated(_ context.Context, event *LinkCreatedEvent) error {
	a.logger.Info("link created",
		zap.Int64("linkId", event.LinkID),
		zap.String("ownerId", event.OwnerID),
		zap.String("shortCode", event.ShortCode),
		zap.Time("createdAt", event.CreatedAt),
	)

	return nil
}

func (a *AuditLog) HandleLinkUpdated(_ context.Context, event *LinkUpdatedEvent) error {
	a.logger.Info("link updated",
		zap.Int64("linkId", event.LinkID),
		zap.String("ownerId", event.OwnerID),
		zap.String("shortCode", event.ShortCode),
		zap.Time("updatedAt", event.UpdatedAt),
	)

	return nil
}

func (a *AuditLog) HandleLinkDeleted(_ context.Context, event *LinkDeletedEvent) error {
	a.logger.Info("link deleted",
		zap.Int64("linkId", event.LinkID),
		zap.String("ownerId", event.OwnerID),
		zap.Time("deletedAt", event.DeletedAt),
	)

	return nil
}
