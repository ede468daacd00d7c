package media

import (
	"context"
	"fmt"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/YanPetrov7/blog-content-management-system/internal/repo"
	"github.com/YanPetrov7/blog-content-management-system/pkg/logger"
)

// Lifecycle keeps one entity type's media slot and the object store
// consistent across attach, replace and remove. One instance is wired per
// slot (user avatars, post images), each with its own ledger and folder.
//
// The slot is all-or-nothing: a successful attach persists a complete set,
// any failure leaves the ledger exactly as it was.
type Lifecycle struct {
	deriver      Deriver
	orchestrator *Orchestrator
	store        repo.ObjectStoreRepo
	ledger       repo.VariantLedger
	folder       string

	logger logger.Interface
}

func NewLifecycle(
	deriver Deriver,
	orchestrator *Orchestrator,
	store repo.ObjectStoreRepo,
	ledger repo.VariantLedger,
	folder string,
	l logger.Interface,
) *Lifecycle {
	return &Lifecycle{
		deriver:      deriver,
		orchestrator: orchestrator,
		store:        store,
		ledger:       ledger,
		folder:       folder,
		logger:       l,
	}
}

// Attach derives the variants, uploads them and persists the new set,
// replacing whatever the slot held before.
//
// Failure handling, in order:
//   - derive fails: no side effects at all;
//   - upload fails: the orchestrator has already compensated its batch,
//     the ledger is untouched;
//   - ledger write fails: the just-uploaded objects are deleted, the prior
//     set stays referenced and stays in the store;
//   - success on a replace: the prior objects are deleted best-effort after
//     the new set is persisted.
func (lc *Lifecycle) Attach(ctx context.Context, entityID int64, upload dto.Upload) (entity.VariantSet, error) {
	prior, err := lc.ledger.GetVariantSet(ctx, entityID)
	if err != nil {
		return entity.VariantSet{}, fmt.Errorf("Lifecycle - Attach - lc.ledger.GetVariantSet: %w", err)
	}

	buffers, err := lc.deriver.Derive(ctx, upload.Mime, upload.Data)
	if err != nil {
		return entity.VariantSet{}, fmt.Errorf("Lifecycle - Attach - lc.deriver.Derive: %w", err)
	}

	set, err := lc.orchestrator.UploadVariants(ctx, lc.folder, upload.Mime, buffers)
	if err != nil {
		return entity.VariantSet{}, fmt.Errorf("Lifecycle - Attach: %w", err)
	}

	err = lc.ledger.UpdateVariantSet(ctx, entityID, set)
	if err != nil {
		lc.orchestrator.DeleteVariants(ctx, set)
		return entity.VariantSet{}, fmt.Errorf("Lifecycle - Attach - lc.ledger.UpdateVariantSet: %v: %w", err, ErrPersistFailed)
	}

	if !prior.IsEmpty() {
		lc.orchestrator.DeleteVariants(ctx, prior)
	}

	return set, nil
}

// Remove clears the slot and deletes the objects it referenced. The ledger
// is cleared first so no entity ever references an id whose delete is in
// flight; the clear returns the previous set, which is then deleted
// best-effort.
func (lc *Lifecycle) Remove(ctx context.Context, entityID int64) error {
	prev, err := lc.ledger.ClearVariantSet(ctx, entityID)
	if err != nil {
		return fmt.Errorf("Lifecycle - Remove - lc.ledger.ClearVariantSet: %w", err)
	}

	if prev.IsEmpty() {
		return fmt.Errorf("Lifecycle - Remove: %w", ErrNoMedia)
	}

	lc.orchestrator.DeleteVariants(ctx, prev)

	return nil
}

// Purge deletes the objects of a set whose owning entity is gone. The row
// no longer exists, so there is nothing to clear; deletion is best-effort.
func (lc *Lifecycle) Purge(ctx context.Context, set entity.VariantSet) {
	if set.IsEmpty() {
		return
	}

	lc.orchestrator.DeleteVariants(ctx, set)
}

// VariantURL resolves the public URL of one size in a populated slot.
func (lc *Lifecycle) VariantURL(set entity.VariantSet, size entity.ImageSize) (string, error) {
	id := set.IDFor(size)
	if id == nil {
		return "", fmt.Errorf("Lifecycle - VariantURL: %w", ErrNoMedia)
	}

	return lc.store.URL(*id), nil
}
