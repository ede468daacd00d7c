package media

import (
	"context"
	"errors"
	"testing"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLifecycle(store *fakeStore, ledger *fakeLedger, deriver *fakeDeriver) *Lifecycle {
	return NewLifecycle(
		deriver,
		NewOrchestrator(store, nopLogger{}),
		store,
		ledger,
		"avatars",
		nopLogger{},
	)
}

func upload() dto.Upload {
	return dto.Upload{Data: []byte("img"), Mime: "image/png"}
}

func TestAttachFirstUpload(t *testing.T) {
	store := newFakeStore()
	ledger := newFakeLedger()
	lc := newTestLifecycle(store, ledger, &fakeDeriver{})

	set, err := lc.Attach(context.Background(), 1, upload())
	require.NoError(t, err)

	assert.True(t, set.IsComplete())
	assert.Equal(t, set, ledger.sets[1])
	assert.Equal(t, 3, store.storedCount())
	assert.Empty(t, store.deletedIDs())
}

func TestAttachDeriveRejectedNoSideEffects(t *testing.T) {
	store := newFakeStore()
	ledger := newFakeLedger()
	deriveErr := errors.New("unsupported image format")
	lc := newTestLifecycle(store, ledger, &fakeDeriver{err: deriveErr})

	_, err := lc.Attach(context.Background(), 1, upload())
	require.Error(t, err)

	assert.ErrorIs(t, err, deriveErr)
	assert.Equal(t, 0, store.putCount())
	assert.True(t, ledger.sets[1].IsEmpty())
}

func TestAttachUploadFailureLeavesLedgerUntouched(t *testing.T) {
	store := newFakeStore()
	store.failPut["large-img"] = errStoreDown
	ledger := newFakeLedger()
	lc := newTestLifecycle(store, ledger, &fakeDeriver{})

	_, err := lc.Attach(context.Background(), 1, upload())
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.True(t, ledger.sets[1].IsEmpty())
	// the two succeeded uploads were compensated
	assert.Equal(t, 0, store.storedCount())
}

func TestAttachPersistFailureDeletesNewUploads(t *testing.T) {
	store := newFakeStore()
	ledger := newFakeLedger()
	ledger.updateErr = errors.New("connection reset")
	lc := newTestLifecycle(store, ledger, &fakeDeriver{})

	_, err := lc.Attach(context.Background(), 1, upload())
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrPersistFailed)
	assert.True(t, ledger.sets[1].IsEmpty())
	assert.Len(t, store.deletedIDs(), 3)
	assert.Equal(t, 0, store.storedCount())
}

func TestAttachReplaceDeletesPriorSet(t *testing.T) {
	store := newFakeStore()
	ledger := newFakeLedger()
	lc := newTestLifecycle(store, ledger, &fakeDeriver{})

	first, err := lc.Attach(context.Background(), 1, upload())
	require.NoError(t, err)

	second, err := lc.Attach(context.Background(), 1, dto.Upload{Data: []byte("img2"), Mime: "image/jpeg"})
	require.NoError(t, err)

	assert.Equal(t, second, ledger.sets[1])
	assert.ElementsMatch(t, first.ObjectIDs(), store.deletedIDs())
	for _, oldID := range first.ObjectIDs() {
		assert.NotContains(t, second.ObjectIDs(), oldID)
	}
	// only the replacement objects remain
	assert.Equal(t, 3, store.storedCount())
}

func TestRemoveWithoutMedia(t *testing.T) {
	store := newFakeStore()
	ledger := newFakeLedger()
	lc := newTestLifecycle(store, ledger, &fakeDeriver{})

	err := lc.Remove(context.Background(), 1)
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrNoMedia)
	assert.Empty(t, store.deletedIDs())
}

func TestRemoveClearsThenDeletes(t *testing.T) {
	store := newFakeStore()
	ledger := newFakeLedger()
	lc := newTestLifecycle(store, ledger, &fakeDeriver{})

	set, err := lc.Attach(context.Background(), 1, upload())
	require.NoError(t, err)

	err = lc.Remove(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, ledger.sets[1].IsEmpty())
	assert.ElementsMatch(t, set.ObjectIDs(), store.deletedIDs())
	assert.Equal(t, 0, store.storedCount())
}

func TestRemoveSurvivesFailedStoreDeletes(t *testing.T) {
	store := newFakeStore()
	ledger := newFakeLedger()
	lc := newTestLifecycle(store, ledger, &fakeDeriver{})

	_, err := lc.Attach(context.Background(), 1, upload())
	require.NoError(t, err)

	// cleanup failures stay in the logs, the remove itself succeeds
	store.deleteErr = errStoreDown

	err = lc.Remove(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ledger.sets[1].IsEmpty())
}

func TestPurgeDeletesSet(t *testing.T) {
	store := newFakeStore()
	ledger := newFakeLedger()
	lc := newTestLifecycle(store, ledger, &fakeDeriver{})

	set, err := lc.Attach(context.Background(), 1, upload())
	require.NoError(t, err)

	lc.Purge(context.Background(), set)
	assert.Equal(t, 0, store.storedCount())

	lc.Purge(context.Background(), entity.VariantSet{})
	assert.Len(t, store.deletedIDs(), 3)
}

func TestVariantURL(t *testing.T) {
	store := newFakeStore()
	ledger := newFakeLedger()
	lc := newTestLifecycle(store, ledger, &fakeDeriver{})

	set, err := lc.Attach(context.Background(), 1, upload())
	require.NoError(t, err)

	url, err := lc.VariantURL(set, entity.SizeSmall)
	require.NoError(t, err)
	assert.Equal(t, store.URL(*set.SmallID), url)

	// unknown size labels resolve to medium
	url, err = lc.VariantURL(set, entity.ParseImageSize("original"))
	require.NoError(t, err)
	assert.Equal(t, store.URL(*set.MediumID), url)

	_, err = lc.VariantURL(entity.VariantSet{}, entity.SizeLarge)
	assert.ErrorIs(t, err, ErrNoMedia)
}
