package entity

import (
	"time"

	"github.com/google/uuid"
)

type VerificationKey struct {
	ID        uuid.UUID `json:"id"`
	Key       uuid.UUID `json:"key"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
