package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghissghiso/goblog/models"
)

type fakeRepo struct {
	posts      map[uint]*models.Post
	users      map[uint]*models.User
	categories map[uint]*models.Category
	tags       map[uint]models.Tag
	nextID     uint
	totalCount *int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		posts: map[uint]*models.Post{},
		users: map[uint]*models.User{
			1: {ID: 1, Nickname: "alice"},
			2: {ID: 2, Nickname: "bob"},
		},
		categories: map[uint]*models.Category{
			10: {ID: 10, Label: "go"},
		},
		tags: map[uint]models.Tag{
			100: {ID: 100, Label: "web"},
			101: {ID: 101, Label: "testing"},
		},
	}
}

func (r *fakeRepo) Save(_ context.Context, post *models.Post) error {
	if post.ID == 0 {
		r.nextID++
		post.ID = r.nextID
	}
	stored := *post
	r.posts[post.ID] = &stored
	return nil
}

func (r *fakeRepo) Remove(_ context.Context, post *models.Post) error {
	delete(r.posts, post.ID)
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uint) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (r *fakeRepo) Paginate(_ context.Context, page, pageSize int) ([]models.Post, int64, error) {
	if r.totalCount != nil {
		return nil, *r.totalCount, nil
	}
	var items []models.Post
	for _, p := range r.posts {
		items = append(items, *p)
	}
	return items, int64(len(r.posts)), nil
}

func (r *fakeRepo) FindUser(_ context.Context, id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, nil
}

func (r *fakeRepo) FindCategory(_ context.Context, id uint) (*models.Category, error) {
	if c, ok := r.categories[id]; ok {
		return c, nil
	}
	return nil, nil
}

func (r *fakeRepo) FindTags(_ context.Context, ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	for _, id := range ids {
		if t, ok := r.tags[id]; ok {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

type fakeStore struct {
	stored map[string][]byte
	err    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{stored: map[string][]byte{}}
}

func (s *fakeStore) Store(_ context.Context, name string, r io.Reader) error {
	if s.err != nil {
		return s.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.stored[name] = b
	return nil
}

func newTestService() (*PostService, *fakeRepo, *fakeStore) {
	repo := newFakeRepo()
	store := newFakeStore()
	return NewPostService(repo, store, OwnerPolicy{}), repo, store
}

// pngImage encodes a solid PNG of the given dimensions.
func pngImage(t *testing.T, w, h int) *ImageUpload {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return &ImageUpload{Data: buf.Bytes(), Ext: "png"}
}

func validInput(t *testing.T) PostInput {
	return PostInput{
		Title:      "Getting started",
		Content:    "A long enough body.",
		CategoryID: 10,
		TagIDs:     []uint{100, 101},
		Image:      pngImage(t, 800, 600),
	}
}

var imageNamePattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.png$`)

func TestListPostsRejectsNonPositivePage(t *testing.T) {
	svc, _, _ := newTestService()
	for _, page := range []int{0, -1, -100} {
		_, err := svc.ListPosts(context.Background(), page)
		assert.ErrorIs(t, err, ErrInvalidPage, "page=%d", page)
	}
}

func TestListPostsEmptyStore(t *testing.T) {
	svc, _, _ := newTestService()

	listing, err := svc.ListPosts(context.Background(), 1)
	require.NoError(t, err)

	assert.Empty(t, listing.Items)
	assert.Equal(t, 1, listing.Page)
	assert.Equal(t, 1, listing.TotalPages)
	assert.Equal(t, PageRange{First: 1, Last: 1}, listing.Range)
}

func TestListPostsPageWindow(t *testing.T) {
	tests := []struct {
		page       int
		total      int64
		totalPages int
		first      int
		last       int
	}{
		{page: 1, total: 0, totalPages: 1, first: 1, last: 1},
		{page: 1, total: 18, totalPages: 1, first: 1, last: 1},
		{page: 1, total: 19, totalPages: 2, first: 1, last: 2},
		{page: 2, total: 200, totalPages: 12, first: 1, last: 12},
		{page: 7, total: 200, totalPages: 12, first: 4, last: 12},
		{page: 12, total: 200, totalPages: 12, first: 9, last: 12},
		{page: 50, total: 200, totalPages: 12, first: 47, last: 12},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page=%d_total=%d", tt.page, tt.total), func(t *testing.T) {
			svc, repo, _ := newTestService()
			repo.totalCount = &tt.total

			listing, err := svc.ListPosts(context.Background(), tt.page)
			require.NoError(t, err)

			assert.Equal(t, tt.totalPages, listing.TotalPages)
			assert.Equal(t, tt.first, listing.Range.First)
			// The upper bound tracks totalPages, never page+3.
			assert.Equal(t, tt.last, listing.Range.Last)
		})
	}
}

func TestCreatePost(t *testing.T) {
	svc, _, store := newTestService()

	post, err := svc.CreatePost(context.Background(), 1, validInput(t))
	require.NoError(t, err)

	assert.Equal(t, "Getting started", post.Title)
	assert.Equal(t, uint(1), post.UserID)
	assert.Equal(t, uint(10), post.CategoryID)
	assert.Len(t, post.Tags, 2)
	assert.Regexp(t, imageNamePattern, post.Image)
	assert.WithinDuration(t, time.Now(), post.PublishedAt, time.Minute)

	// one file-store write, one persistence write
	assert.Contains(t, store.stored, post.Image)
	assert.Len(t, store.stored, 1)
	stored, err := svc.ReadPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Image, stored.Image)
}

func TestCreatePostUnknownActor(t *testing.T) {
	svc, _, store := newTestService()

	_, err := svc.CreatePost(context.Background(), 999, validInput(t))
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, store.stored)
}

func TestCreatePostValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, in *PostInput)
		field  string
	}{
		{
			name:   "empty title",
			mutate: func(t *testing.T, in *PostInput) { in.Title = "   " },
			field:  "title",
		},
		{
			name:   "title stripped to nothing",
			mutate: func(t *testing.T, in *PostInput) { in.Title = "<script>alert(1)</script>" },
			field:  "title",
		},
		{
			name:   "empty content",
			mutate: func(t *testing.T, in *PostInput) { in.Content = "" },
			field:  "content",
		},
		{
			name:   "unknown category",
			mutate: func(t *testing.T, in *PostInput) { in.CategoryID = 999 },
			field:  "category",
		},
		{
			name:   "zero tags",
			mutate: func(t *testing.T, in *PostInput) { in.TagIDs = nil },
			field:  "tags",
		},
		{
			name:   "unresolvable tag",
			mutate: func(t *testing.T, in *PostInput) { in.TagIDs = []uint{100, 999} },
			field:  "tags",
		},
		{
			name:   "missing image",
			mutate: func(t *testing.T, in *PostInput) { in.Image = nil },
			field:  "image",
		},
		{
			name:   "wrong aspect ratio",
			mutate: func(t *testing.T, in *PostInput) { in.Image = pngImage(t, 500, 500) },
			field:  "image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, store := newTestService()
			in := validInput(t)
			tt.mutate(t, &in)

			_, err := svc.CreatePost(context.Background(), 1, in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
			assert.Empty(t, store.stored, "nothing should be persisted on validation failure")
		})
	}
}

func TestCreatePostCollectsAllViolations(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreatePost(context.Background(), 1, PostInput{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	for _, field := range []string{"title", "content", "category", "tags", "image"} {
		assert.Contains(t, verr.Fields, field)
	}
}

func TestReadPostNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.ReadPost(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePostByNonAuthor(t *testing.T) {
	svc, repo, _ := newTestService()
	created, err := svc.CreatePost(context.Background(), 1, validInput(t))
	require.NoError(t, err)

	in := validInput(t)
	in.Title = "Hijacked"
	_, err = svc.UpdatePost(context.Background(), 2, created.ID, in)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// the stored post is untouched
	assert.Equal(t, "Getting started", repo.posts[created.ID].Title)
}

func TestUpdatePostMissing(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.UpdatePost(context.Background(), 1, 42, validInput(t))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePostKeepsImageWhenOmitted(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.CreatePost(context.Background(), 1, validInput(t))
	require.NoError(t, err)

	in := validInput(t)
	in.Title = "Revised title"
	in.Image = nil

	updated, err := svc.UpdatePost(context.Background(), 1, created.ID, in)
	require.NoError(t, err)

	assert.Equal(t, "Revised title", updated.Title)
	assert.Equal(t, created.Image, updated.Image)
	assert.Equal(t, created.PublishedAt, updated.PublishedAt)
}

func TestUpdatePostReplacesImage(t *testing.T) {
	svc, _, store := newTestService()
	created, err := svc.CreatePost(context.Background(), 1, validInput(t))
	require.NoError(t, err)

	updated, err := svc.UpdatePost(context.Background(), 1, created.ID, validInput(t))
	require.NoError(t, err)

	assert.NotEqual(t, created.Image, updated.Image)
	assert.Regexp(t, imageNamePattern, updated.Image)
	// the previous file is left behind on purpose
	assert.Contains(t, store.stored, created.Image)
	assert.Contains(t, store.stored, updated.Image)
}

func TestDeletePost(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.CreatePost(context.Background(), 1, validInput(t))
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(context.Background(), 1, created.ID))

	_, err = svc.ReadPost(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePostByNonAuthor(t *testing.T) {
	svc, _, _ := newTestService()
	created, err := svc.CreatePost(context.Background(), 1, validInput(t))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeletePost(context.Background(), 2, created.ID), ErrUnauthorized)

	_, err = svc.ReadPost(context.Background(), created.ID)
	assert.NoError(t, err)
}

func TestDeletePostMissing(t *testing.T) {
	svc, _, _ := newTestService()
	assert.ErrorIs(t, svc.DeletePost(context.Background(), 1, 42), ErrNotFound)
}
