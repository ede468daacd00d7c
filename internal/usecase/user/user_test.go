package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/YanPetrov7/blog-content-management-system/internal/usecase/media"
	"github.com/YanPetrov7/blog-content-management-system/pkg/types/errs"
	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(message interface{}, args ...interface{}) {}
func (nopLogger) Info(message string, args ...interface{})       {}
func (nopLogger) Warn(message string, args ...interface{})       {}
func (nopLogger) Error(message interface{}, args ...interface{}) {}
func (nopLogger) Fatal(message interface{}, args ...interface{}) {}

type fakeUserRepo struct {
	users  map[int64]*entity.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	cp := *user
	r.users[user.ID] = &cp

	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, errs.ErrRecordNotFound
	}

	cp := *u

	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}

	return nil, errs.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			cp := *u
			return &cp, nil
		}
	}

	return nil, errs.ErrRecordNotFound
}

func (r *fakeUserRepo) List(ctx context.Context) ([]entity.User, error) {
	out := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}

	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return errs.ErrRecordNotFound
	}

	cp := *user
	r.users[user.ID] = &cp

	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return errs.ErrRecordNotFound
	}
	delete(r.users, id)

	return nil
}

func (r *fakeUserRepo) SetVerified(ctx context.Context, id int64) error {
	u, ok := r.users[id]
	if !ok {
		return errs.ErrRecordNotFound
	}
	u.IsVerified = true

	return nil
}

func (r *fakeUserRepo) GetVariantSet(ctx context.Context, entityID int64) (entity.VariantSet, error) {
	u, ok := r.users[entityID]
	if !ok {
		return entity.VariantSet{}, errs.ErrRecordNotFound
	}

	return u.Avatar, nil
}

func (r *fakeUserRepo) UpdateVariantSet(ctx context.Context, entityID int64, set entity.VariantSet) error {
	u, ok := r.users[entityID]
	if !ok {
		return errs.ErrRecordNotFound
	}
	u.Avatar = set

	return nil
}

func (r *fakeUserRepo) ClearVariantSet(ctx context.Context, entityID int64) (entity.VariantSet, error) {
	u, ok := r.users[entityID]
	if !ok {
		return entity.VariantSet{}, errs.ErrRecordNotFound
	}

	prev := u.Avatar
	u.Avatar = entity.VariantSet{}

	return prev, nil
}

type fakeKeyRepo struct {
	keys map[uuid.UUID]*entity.VerificationKey
}

func newFakeKeyRepo() *fakeKeyRepo {
	return &fakeKeyRepo{keys: make(map[uuid.UUID]*entity.VerificationKey)}
}

func (r *fakeKeyRepo) Create(ctx context.Context, key *entity.VerificationKey) error {
	cp := *key
	r.keys[key.ID] = &cp

	return nil
}

func (r *fakeKeyRepo) GetByKey(ctx context.Context, key uuid.UUID) (*entity.VerificationKey, error) {
	for _, vk := range r.keys {
		if vk.Key == key {
			cp := *vk
			return &cp, nil
		}
	}

	return nil, errs.ErrRecordNotFound
}

func (r *fakeKeyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.keys[id]; !ok {
		return errs.ErrRecordNotFound
	}
	delete(r.keys, id)

	return nil
}

type fakeOutboxRepo struct {
	events []*entity.OutboxEvent
}

func (r *fakeOutboxRepo) Create(ctx context.Context, event *entity.OutboxEvent) error {
	r.events = append(r.events, event)

	return nil
}

func (r *fakeOutboxRepo) GetPendingEvents(ctx context.Context, limit, maxRetries int) ([]*entity.OutboxEvent, error) {
	return r.events, nil
}

func (r *fakeOutboxRepo) MarkAsProcessingBatch(ctx context.Context, ids uuid.UUIDs) error { return nil }
func (r *fakeOutboxRepo) MarkAsProcessedBatch(ctx context.Context, ids uuid.UUIDs) error  { return nil }
func (r *fakeOutboxRepo) IncrementRetryCountBatch(ctx context.Context, ids uuid.UUIDs) error {
	return nil
}
func (r *fakeOutboxRepo) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	return nil
}
func (r *fakeOutboxRepo) DeleteOldProcessedAndFailed(ctx context.Context) (int64, error) {
	return 0, nil
}

// fakeTransactor snapshots the fake repos and restores them when the
// callback fails, mirroring a database rollback.
type fakeTransactor struct {
	users  *fakeUserRepo
	keys   *fakeKeyRepo
	outbox *fakeOutboxRepo
}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error {
	usersSnap := make(map[int64]*entity.User, len(t.users.users))
	for id, u := range t.users.users {
		cp := *u
		usersSnap[id] = &cp
	}
	nextIDSnap := t.users.nextID

	keysSnap := make(map[uuid.UUID]*entity.VerificationKey, len(t.keys.keys))
	for id, vk := range t.keys.keys {
		cp := *vk
		keysSnap[id] = &cp
	}

	outboxSnap := make([]*entity.OutboxEvent, len(t.outbox.events))
	copy(outboxSnap, t.outbox.events)

	err := f(ctx)
	if err != nil {
		t.users.users = usersSnap
		t.users.nextID = nextIDSnap
		t.keys.keys = keysSnap
		t.outbox.events = outboxSnap
	}

	return err
}

type fakeObjectStore struct {
	putErr error
	nextID int
}

func (s *fakeObjectStore) PutBytes(ctx context.Context, folder string, data []byte, contentType string) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}

	s.nextID++

	return fmt.Sprintf("%s/object-%d", folder, s.nextID), nil
}

func (s *fakeObjectStore) URL(objectID string) string {
	return "http://store.local/" + objectID
}

func (s *fakeObjectStore) Delete(ctx context.Context, objectID string) (bool, error) {
	return true, nil
}

type fakeDeriver struct{}

func (fakeDeriver) Derive(ctx context.Context, contentType string, data []byte) (*dto.VariantBuffers, error) {
	return &dto.VariantBuffers{
		Small:  []byte("s"),
		Medium: []byte("m"),
		Large:  []byte("l"),
	}, nil
}

type fixture struct {
	uc     *UserUseCase
	users  *fakeUserRepo
	keys   *fakeKeyRepo
	outbox *fakeOutboxRepo
	store  *fakeObjectStore
}

func newFixture() *fixture {
	users := newFakeUserRepo()
	keys := newFakeKeyRepo()
	outbox := &fakeOutboxRepo{}
	store := &fakeObjectStore{}

	avatars := media.NewLifecycle(
		fakeDeriver{},
		media.NewOrchestrator(store, nopLogger{}),
		store,
		users,
		"avatars",
		nopLogger{},
	)

	uc := New(
		users,
		keys,
		outbox,
		&fakeTransactor{users: users, keys: keys, outbox: outbox},
		avatars,
		VerificationConfig{
			BaseURL:  "http://localhost:8080",
			FromAddr: "noreply@blog.local",
			KeyTTL:   30 * time.Minute,
		},
		nopLogger{},
	)

	return &fixture{uc: uc, users: users, keys: keys, outbox: outbox, store: store}
}

func TestCreateUserIssuesVerification(t *testing.T) {
	f := newFixture()

	u, err := f.uc.Create(context.Background(), dto.CreateUser{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)

	assert.False(t, u.IsVerified)

	match, err := argon2id.ComparePasswordAndHash("secret-pass", u.PasswordHash)
	require.NoError(t, err)
	assert.True(t, match)

	require.Len(t, f.keys.keys, 1)
	require.Len(t, f.outbox.events, 1)

	var payload struct {
		Subject  string   `json:"subject"`
		Body     string   `json:"body"`
		FromAddr string   `json:"from_addr"`
		ToAddrs  []string `json:"to_addrs"`
	}
	require.NoError(t, json.Unmarshal(f.outbox.events[0].Payload, &payload))

	assert.Equal(t, []string{"alice@example.com"}, payload.ToAddrs)
	assert.Equal(t, "noreply@blog.local", payload.FromAddr)
	assert.Contains(t, payload.Body, "http://localhost:8080/v1/users/verify?key=")
}

func TestCreateUserDuplicate(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), dto.CreateUser{
		Username: "alice", Email: "alice@example.com", Password: "pw",
	})
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), dto.CreateUser{
		Username: "alice", Email: "other@example.com", Password: "pw",
	})
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestCreateUserWithAvatar(t *testing.T) {
	f := newFixture()

	u, err := f.uc.Create(context.Background(), dto.CreateUser{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw",
		Avatar:   &dto.Upload{Data: []byte("img"), Mime: "image/png"},
	})
	require.NoError(t, err)

	assert.True(t, u.Avatar.IsComplete())
	assert.True(t, f.users.users[u.ID].Avatar.IsComplete())
}

func TestCreateUserAvatarFailureLeavesNoArtifacts(t *testing.T) {
	f := newFixture()
	f.store.putErr = errors.New("store unavailable")

	_, err := f.uc.Create(context.Background(), dto.CreateUser{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw",
		Avatar:   &dto.Upload{Data: []byte("img"), Mime: "image/png"},
	})
	require.Error(t, err)

	// no row, no verification key, and crucially no queued email: nobody
	// gets a confirmation link for an account that was never created
	assert.Empty(t, f.users.users)
	assert.Empty(t, f.keys.keys)
	assert.Empty(t, f.outbox.events)
}

func TestVerifyUser(t *testing.T) {
	f := newFixture()

	u, err := f.uc.Create(context.Background(), dto.CreateUser{
		Username: "alice", Email: "alice@example.com", Password: "pw",
	})
	require.NoError(t, err)

	var key uuid.UUID
	for _, vk := range f.keys.keys {
		key = vk.Key
	}

	require.NoError(t, f.uc.Verify(context.Background(), key))

	assert.True(t, f.users.users[u.ID].IsVerified)
	assert.Empty(t, f.keys.keys)
}

func TestVerifyUnknownKey(t *testing.T) {
	f := newFixture()

	err := f.uc.Verify(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrRecordNotFound)
}

func TestVerifyAlreadyVerified(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), dto.CreateUser{
		Username: "alice", Email: "alice@example.com", Password: "pw",
	})
	require.NoError(t, err)

	var key uuid.UUID
	for _, vk := range f.keys.keys {
		key = vk.Key
	}

	require.NoError(t, f.uc.Verify(context.Background(), key))

	// the key is spent; a fresh one for the same address hits the verified check
	require.NoError(t, f.keys.Create(context.Background(), &entity.VerificationKey{
		ID:        uuid.New(),
		Key:       key,
		Email:     "alice@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}))

	err = f.uc.Verify(context.Background(), key)
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestVerifyExpiredKeyReissues(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), dto.CreateUser{
		Username: "alice", Email: "alice@example.com", Password: "pw",
	})
	require.NoError(t, err)

	var old *entity.VerificationKey
	for _, vk := range f.keys.keys {
		old = vk
	}
	old.ExpiresAt = time.Now().Add(-time.Minute)
	f.keys.keys[old.ID] = old

	err = f.uc.Verify(context.Background(), old.Key)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrKeyExpired)

	// the stale key is gone and a replacement with its own email event exists
	require.Len(t, f.keys.keys, 1)
	for _, vk := range f.keys.keys {
		assert.NotEqual(t, old.Key, vk.Key)
		assert.True(t, vk.ExpiresAt.After(time.Now()))
	}
	assert.Len(t, f.outbox.events, 2)
}
