package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/google/uuid"
)

// VerificationConfig carries everything needed to build a verification
// email: where the confirmation link points, who it is from, and how long
// the key stays valid.
type VerificationConfig struct {
	BaseURL  string
	FromAddr string
	KeyTTL   time.Duration
}

const verificationSubject = "Please verify your email address"

// issueVerification stores a fresh verification key and queues the email
// notification for the relay. Must run inside the caller's transaction.
func (uc *UserUseCase) issueVerification(ctx context.Context, email string) error {
	now := time.Now()

	key := &entity.VerificationKey{
		ID:        uuid.New(),
		Key:       uuid.New(),
		Email:     email,
		ExpiresAt: now.Add(uc.verification.KeyTTL),
		CreatedAt: now,
	}

	if err := uc.keyRepo.Create(ctx, key); err != nil {
		return fmt.Errorf("uc.keyRepo.Create: %w", err)
	}

	payload := map[string]interface{}{
		"subject":   verificationSubject,
		"body":      fmt.Sprintf("%s/v1/users/verify?key=%s", uc.verification.BaseURL, key.Key),
		"from_addr": uc.verification.FromAddr,
		"to_addrs":  []string{email},
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	event := &entity.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: key.ID,
		Payload:     b,
		Status:      entity.Pending,
		CreatedAt:   now,
		RetryCount:  0,
	}

	if err := uc.outboxRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("uc.outboxRepo.Create: %w", err)
	}

	return nil
}
