package infrastructure

import (
	"context"

	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
)

type (
	EventsSender interface {
		SendEvents(ctx context.Context, events []*entity.OutboxEvent) error
		Close() error
	}
)
