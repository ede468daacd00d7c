package media

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(message interface{}, args ...interface{}) {}
func (nopLogger) Info(message string, args ...interface{})       {}
func (nopLogger) Warn(message string, args ...interface{})       {}
func (nopLogger) Error(message interface{}, args ...interface{}) {}
func (nopLogger) Fatal(message interface{}, args ...interface{}) {}

// fakeStore is a scriptable in-memory object store. Puts can be told to
// fail for specific payloads, deletes fail when the context is cancelled
// so detached cleanup is observable.
type fakeStore struct {
	mu sync.Mutex

	objects    map[string][]byte
	failPut    map[string]error
	deleteErr  error
	puts       int
	deletes    []string
	nextID     int
	rejectedOn []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects: make(map[string][]byte),
		failPut: make(map[string]error),
	}
}

func (s *fakeStore) PutBytes(ctx context.Context, folder string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.puts++

	if err, ok := s.failPut[string(data)]; ok {
		s.rejectedOn = append(s.rejectedOn, string(data))
		return "", err
	}

	s.nextID++
	id := fmt.Sprintf("%s/object-%d", folder, s.nextID)
	s.objects[id] = data

	return id, nil
}

func (s *fakeStore) URL(objectID string) string {
	return "http://store.local/" + objectID
}

func (s *fakeStore) Delete(ctx context.Context, objectID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleteErr != nil {
		return false, s.deleteErr
	}

	s.deletes = append(s.deletes, objectID)

	if _, ok := s.objects[objectID]; !ok {
		return false, nil
	}
	delete(s.objects, objectID)

	return true, nil
}

func (s *fakeStore) deletedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.deletes))
	copy(out, s.deletes)

	return out
}

func (s *fakeStore) putCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.puts
}

func (s *fakeStore) storedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.objects)
}

// fakeLedger keeps one variant set per entity id.
type fakeLedger struct {
	sets      map[int64]entity.VariantSet
	updateErr error
	clearErr  error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{sets: make(map[int64]entity.VariantSet)}
}

func (l *fakeLedger) GetVariantSet(ctx context.Context, entityID int64) (entity.VariantSet, error) {
	return l.sets[entityID], nil
}

func (l *fakeLedger) UpdateVariantSet(ctx context.Context, entityID int64, set entity.VariantSet) error {
	if l.updateErr != nil {
		return l.updateErr
	}
	l.sets[entityID] = set

	return nil
}

func (l *fakeLedger) ClearVariantSet(ctx context.Context, entityID int64) (entity.VariantSet, error) {
	if l.clearErr != nil {
		return entity.VariantSet{}, l.clearErr
	}

	prev := l.sets[entityID]
	l.sets[entityID] = entity.VariantSet{}

	return prev, nil
}

// fakeDeriver hands out fixed buffers, one distinct payload per size.
type fakeDeriver struct {
	err     error
	derived int
}

func (d *fakeDeriver) Derive(ctx context.Context, contentType string, data []byte) (*dto.VariantBuffers, error) {
	if d.err != nil {
		return nil, d.err
	}

	d.derived++

	return &dto.VariantBuffers{
		Small:  []byte("small-" + string(data)),
		Medium: []byte("medium-" + string(data)),
		Large:  []byte("large-" + string(data)),
	}, nil
}

var errStoreDown = errors.New("store unavailable")
