package media

import (
	"context"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
)

type (
	// Deriver turns one uploaded image into the three encoded renditions.
	Deriver interface {
		Derive(ctx context.Context, contentType string, data []byte) (*dto.VariantBuffers, error)
	}
)
