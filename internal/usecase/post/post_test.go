package post

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/YanPetrov7/blog-content-management-system/internal/dto"
	"github.com/YanPetrov7/blog-content-management-system/internal/entity"
	"github.com/YanPetrov7/blog-content-management-system/internal/repo"
	"github.com/YanPetrov7/blog-content-management-system/internal/usecase/media"
	"github.com/YanPetrov7/blog-content-management-system/pkg/types/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(message interface{}, args ...interface{}) {}
func (nopLogger) Info(message string, args ...interface{})       {}
func (nopLogger) Warn(message string, args ...interface{})       {}
func (nopLogger) Error(message interface{}, args ...interface{}) {}
func (nopLogger) Fatal(message interface{}, args ...interface{}) {}

type fakePostRepo struct {
	posts  map[int64]*entity.Post
	nextID int64
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[int64]*entity.Post)}
}

func (r *fakePostRepo) Create(ctx context.Context, post *entity.Post) error {
	r.nextID++
	post.ID = r.nextID
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt

	cp := *post
	r.posts[post.ID] = &cp

	return nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, errs.ErrRecordNotFound
	}

	cp := *p

	return &cp, nil
}

func (r *fakePostRepo) List(ctx context.Context, filter dto.PostFilter) ([]entity.Post, error) {
	out := make([]entity.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, *p)
	}

	return out, nil
}

func (r *fakePostRepo) Update(ctx context.Context, post *entity.Post) error {
	stored, ok := r.posts[post.ID]
	if !ok {
		return errs.ErrRecordNotFound
	}

	cp := *post
	cp.Image = stored.Image
	r.posts[post.ID] = &cp

	return nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.posts[id]; !ok {
		return errs.ErrRecordNotFound
	}
	delete(r.posts, id)

	return nil
}

func (r *fakePostRepo) GetVariantSet(ctx context.Context, entityID int64) (entity.VariantSet, error) {
	p, ok := r.posts[entityID]
	if !ok {
		return entity.VariantSet{}, errs.ErrRecordNotFound
	}

	return p.Image, nil
}

func (r *fakePostRepo) UpdateVariantSet(ctx context.Context, entityID int64, set entity.VariantSet) error {
	p, ok := r.posts[entityID]
	if !ok {
		return errs.ErrRecordNotFound
	}
	p.Image = set

	return nil
}

func (r *fakePostRepo) ClearVariantSet(ctx context.Context, entityID int64) (entity.VariantSet, error) {
	p, ok := r.posts[entityID]
	if !ok {
		return entity.VariantSet{}, errs.ErrRecordNotFound
	}

	prev := p.Image
	p.Image = entity.VariantSet{}

	return prev, nil
}

// fakeUserDirectory answers GetByID only; nothing else is reached here.
type fakeUserDirectory struct {
	repo.UserRepo
	ids map[int64]bool
}

func (d *fakeUserDirectory) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	if !d.ids[id] {
		return nil, errs.ErrRecordNotFound
	}

	return &entity.User{ID: id}, nil
}

type fakeCategoryDirectory struct {
	repo.CategoryRepo
	ids map[int64]bool
}

func (d *fakeCategoryDirectory) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	if !d.ids[id] {
		return nil, errs.ErrRecordNotFound
	}

	return &entity.Category{ID: id}, nil
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
	uc    *PostUseCase
	posts *fakePostRepo
	store *fakeObjectStore
}

func newFixture() *fixture {
	posts := newFakePostRepo()
	store := &fakeObjectStore{}

	images := media.NewLifecycle(
		fakeDeriver{},
		media.NewOrchestrator(store, nopLogger{}),
		store,
		posts,
		"posts",
		nopLogger{},
	)

	uc := New(
		posts,
		&fakeUserDirectory{ids: map[int64]bool{1: true}},
		&fakeCategoryDirectory{ids: map[int64]bool{1: true}},
		images,
		nopLogger{},
	)

	return &fixture{uc: uc, posts: posts, store: store}
}

func strPtr(s string) *string { return &s }

func TestCreatePostUnknownAuthor(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), dto.CreatePost{
		Title:    "title",
		Content:  "content",
		AuthorID: 42,
	})
	assert.ErrorIs(t, err, errs.ErrRecordNotFound)
	assert.Empty(t, f.posts.posts)
}

func TestCreatePostWithImage(t *testing.T) {
	f := newFixture()

	p, err := f.uc.Create(context.Background(), dto.CreatePost{
		Title:    "title",
		Content:  "content",
		AuthorID: 1,
		Image:    &dto.Upload{Data: []byte("img"), Mime: "image/png"},
	})
	require.NoError(t, err)

	assert.True(t, p.Image.IsComplete())
	assert.True(t, f.posts.posts[p.ID].Image.IsComplete())
}

func TestCreatePostImageFailureRollsBackRow(t *testing.T) {
	f := newFixture()
	f.store.putErr = errors.New("store unavailable")

	_, err := f.uc.Create(context.Background(), dto.CreatePost{
		Title:    "title",
		Content:  "content",
		AuthorID: 1,
		Image:    &dto.Upload{Data: []byte("img"), Mime: "image/png"},
	})
	require.Error(t, err)

	assert.Empty(t, f.posts.posts)
}

func TestUpdateFieldsCommitBeforeImageReplace(t *testing.T) {
	f := newFixture()

	p, err := f.uc.Create(context.Background(), dto.CreatePost{
		Title:    "old title",
		Content:  "content",
		AuthorID: 1,
		Image:    &dto.Upload{Data: []byte("img"), Mime: "image/png"},
	})
	require.NoError(t, err)

	prior := f.posts.posts[p.ID].Image
	f.store.putErr = errors.New("store unavailable")

	_, err = f.uc.Update(context.Background(), p.ID, dto.UpdatePost{
		Title: strPtr("new title"),
		Image: &dto.Upload{Data: []byte("img2"), Mime: "image/png"},
	})
	require.Error(t, err)

	// the field patch stands, the prior image stays attached: a failed
	// replace never leaves the post half-updated or imageless
	stored := f.posts.posts[p.ID]
	assert.Equal(t, "new title", stored.Title)
	assert.Equal(t, prior, stored.Image)
}
