package media

import (
	"context"
	"testing"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuffers() *dto.VariantBuffers {
	return &dto.VariantBuffers{
		Small:  []byte("small"),
		Medium: []byte("medium"),
		Large:  []byte("large"),
	}
}

func TestUploadVariantsAllSucceed(t *testing.T) {
	store := newFakeStore()
	o := NewOrchestrator(store, nopLogger{})

	set, err := o.UploadVariants(context.Background(), "avatars", "image/png", testBuffers())
	require.NoError(t, err)

	assert.True(t, set.IsComplete())
	assert.Equal(t, "image/png", *set.Mime)
	assert.Equal(t, 3, store.putCount())
	assert.Len(t, set.ObjectIDs(), 3)
}

func TestUploadVariantsPartialFailureCompensates(t *testing.T) {
	store := newFakeStore()
	store.failPut["large"] = errStoreDown

	o := NewOrchestrator(store, nopLogger{})

	set, err := o.UploadVariants(context.Background(), "avatars", "image/png", testBuffers())
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Contains(t, err.Error(), "large")
	assert.True(t, set.IsEmpty())

	// all three puts attempted, the two succeeded objects are gone again
	assert.Equal(t, 3, store.putCount())
	assert.Len(t, store.deletedIDs(), 2)
	assert.Equal(t, 0, store.storedCount())
}

func TestUploadVariantsAllFail(t *testing.T) {
	store := newFakeStore()
	store.failPut["small"] = errStoreDown
	store.failPut["medium"] = errStoreDown
	store.failPut["large"] = errStoreDown

	o := NewOrchestrator(store, nopLogger{})

	set, err := o.UploadVariants(context.Background(), "avatars", "image/png", testBuffers())
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.True(t, set.IsEmpty())
	assert.Empty(t, store.deletedIDs())
}

func TestUploadVariantsCompensationSurvivesCancellation(t *testing.T) {
	store := newFakeStore()
	store.failPut["medium"] = errStoreDown

	o := NewOrchestrator(store, nopLogger{})

	// the request is cancelled while uploads are confirmed; compensation
	// must still remove them
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	set, err := o.UploadVariants(ctx, "posts", "image/jpeg", testBuffers())
	require.Error(t, err)

	assert.True(t, set.IsEmpty())
	assert.Len(t, store.deletedIDs(), 2)
	assert.Equal(t, 0, store.storedCount())
}

func TestDeleteVariantsIdempotent(t *testing.T) {
	store := newFakeStore()
	o := NewOrchestrator(store, nopLogger{})

	set, err := o.UploadVariants(context.Background(), "avatars", "image/gif", testBuffers())
	require.NoError(t, err)

	o.DeleteVariants(context.Background(), set)
	assert.Equal(t, 0, store.storedCount())

	// second round deletes already-removed ids; nothing blows up
	o.DeleteVariants(context.Background(), set)
	assert.Len(t, store.deletedIDs(), 6)
}

func TestDeleteVariantsEmptySetNoCalls(t *testing.T) {
	store := newFakeStore()
	o := NewOrchestrator(store, nopLogger{})

	o.DeleteVariants(context.Background(), entity.VariantSet{})
	assert.Empty(t, store.deletedIDs())
}
