package media

import (
	"context"
	"fmt"
	"sync"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/YanPetrov7/blog-content-management-system/internal/repo"
	"github.com/YanPetrov7/blog-content-management-system/pkg/logger"
)

// Orchestrator fans variant puts and deletes out to the object store.
// Uploads always join all in-flight puts before reporting: failing fast
// would abandon puts whose bytes are already being stored and multiply
// the orphan risk.
type Orchestrator struct {
	store repo.ObjectStoreRepo

	logger logger.Interface
}

func NewOrchestrator(store repo.ObjectStoreRepo, l logger.Interface) *Orchestrator {
	return &Orchestrator{
		store:  store,
		logger: l,
	}
}

type uploadResult struct {
	size entity.ImageSize
	id   string
	err  error
}

// UploadVariants stores all three buffers concurrently under folder.
// If any put fails, every put that succeeded in this batch is deleted
// and the error wraps ErrUploadFailed naming the failed sizes. On success
// the returned set is complete.
func (o *Orchestrator) UploadVariants(
	ctx context.Context,
	folder string,
	contentType string,
	buffers *dto.VariantBuffers,
) (entity.VariantSet, error) {
	batch := []struct {
		size entity.ImageSize
		data []byte
	}{
		{entity.SizeSmall, buffers.Small},
		{entity.SizeMedium, buffers.Medium},
		{entity.SizeLarge, buffers.Large},
	}

	results := make([]uploadResult, len(batch))

	var wg sync.WaitGroup
	for i, item := range batch {
		wg.Add(1)
		go func(i int, size entity.ImageSize, data []byte) {
			defer wg.Done()

			id, err := o.store.PutBytes(ctx, folder, data, contentType)
			results[i] = uploadResult{size: size, id: id, err: err}
		}(i, item.size, item.data)
	}
	wg.Wait()

	var failed []uploadResult
	for _, res := range results {
		if res.err != nil {
			failed = append(failed, res)
		}
	}

	if len(failed) > 0 {
		// compensation runs even when the request context is already
		// cancelled, see DeleteVariants
		var succeeded entity.VariantSet
		for _, res := range results {
			if res.err == nil {
				o.setID(&succeeded, res.size, res.id)
			}
		}
		o.DeleteVariants(ctx, succeeded)

		err := fmt.Errorf("Orchestrator - UploadVariants: %w", ErrUploadFailed)
		for _, res := range failed {
			err = fmt.Errorf("%w; size=%s: %v", err, res.size, res.err)
		}
		return entity.VariantSet{}, err
	}

	set := entity.VariantSet{Mime: &contentType}
	for _, res := range results {
		o.setID(&set, res.size, res.id)
	}

	return set, nil
}

// DeleteVariants issues a delete for every id present in the set and waits
// for all of them. Failures are logged per id and never returned: an
// orphaned-but-unreferenced object is acceptable, blocking the caller on
// cleanup is not. Deletes run on a context detached from cancellation so
// compensation of confirmed side effects always completes.
func (o *Orchestrator) DeleteVariants(ctx context.Context, set entity.VariantSet) {
	ids := set.ObjectIDs()
	if len(ids) == 0 {
		return
	}

	cleanupCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			deleted, err := o.store.Delete(cleanupCtx, id)
			if err != nil {
				o.logger.Warn("failed to delete object id=%s, error=%v", id, err)
				return
			}
			if !deleted {
				o.logger.Warn("object already absent, id=%s", id)
			}
		}(id)
	}
	wg.Wait()
}

func (o *Orchestrator) setID(set *entity.VariantSet, size entity.ImageSize, id string) {
	v := id
	switch size {
	case entity.SizeSmall:
		set.SmallID = &v
	case entity.SizeMedium:
		set.MediumID = &v
	case entity.SizeLarge:
		set.LargeID = &v
	}
}
