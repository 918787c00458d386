package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghissghiso/goblog/models"
)

// DefaultPageSize is the listing page size.
const DefaultPageSize = 18

// PageRange is the inclusive window of page numbers shown by the pager.
type PageRange struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// PostPage is the listing view-model returned by ListPosts.
type PostPage struct {
	Items      []models.Post `json:"items"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	Range      PageRange     `json:"range"`
}

// PostInput carries the mutable fields of a post submitted by a form.
// Image is required on create and optional on update.
type PostInput struct {
	Title      string
	Content    string
	CategoryID uint
	TagIDs     []uint
	Image      *ImageUpload
}

// PostService implements the create/read/update/delete/list workflows on
// top of the persistence, file-store, and authorization boundaries.
type PostService struct {
	repo  PostRepository
	files FileStore
	authz Authorizer
}

// NewPostService wires the service to its collaborators.
func NewPostService(repo PostRepository, files FileStore, authz Authorizer) *PostService {
	return &PostService{repo: repo, files: files, authz: authz}
}

// ListPosts returns one page of posts plus pagination metadata.
// totalPages is never below 1, even for an empty store. The window upper
// bound is min(totalPages, totalPages+3), which always resolves to
// totalPages; clients depend on the full window being offered.
func (s *PostService) ListPosts(ctx context.Context, page int) (*PostPage, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	items, total, err := s.repo.Paginate(ctx, page, DefaultPageSize)
	if err != nil {
		return nil, fmt.Errorf("paginate posts: %w", err)
	}

	totalPages := int((total + DefaultPageSize - 1) / DefaultPageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	return &PostPage{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		Range: PageRange{
			First: maxInt(1, page-3),
			Last:  minInt(totalPages, totalPages+3),
		},
	}, nil
}

// CreatePost validates the submission, stores the image under a fresh
// UUID-based name, and persists the post with publishedAt set to now.
func (s *PostService) CreatePost(ctx context.Context, actorID uint, in PostInput) (*models.Post, error) {
	actor, err := s.repo.FindUser(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("resolve actor: %w", err)
	}
	if actor == nil {
		return nil, ErrUnauthorized
	}

	v := violations{}
	fields, err := s.validateFields(ctx, in.Title, in.Content, in.CategoryID, in.TagIDs, v)
	if err != nil {
		return nil, err
	}
	validateImage(in.Image, v)
	if err := v.err(); err != nil {
		return nil, err
	}

	name, err := s.storeImage(ctx, in.Image)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:       fields.title,
		Content:     fields.content,
		Image:       name,
		PublishedAt: time.Now(),
		CategoryID:  fields.category.ID,
		UserID:      actor.ID,
		Tags:        fields.tags,
	}
	if err := s.repo.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("persist post: %w", err)
	}
	return post, nil
}

// ReadPost is a public lookup with no authorization check.
func (s *PostService) ReadPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// UpdatePost replaces the mutable fields of an existing post. Only the
// author may update. A missing image keeps the stored filename untouched;
// a new one is stored under a fresh name and the old file is left behind.
// publishedAt is never modified.
func (s *PostService) UpdatePost(ctx context.Context, actorID, postID uint, in PostInput) (*models.Post, error) {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if !s.authz.Can(actorID, ActionEdit, post) {
		return nil, ErrUnauthorized
	}

	v := violations{}
	fields, err := s.validateFields(ctx, in.Title, in.Content, in.CategoryID, in.TagIDs, v)
	if err != nil {
		return nil, err
	}
	if in.Image != nil {
		validateImage(in.Image, v)
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if in.Image != nil {
		name, err := s.storeImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		post.Image = name
	}

	post.Title = fields.title
	post.Content = fields.content
	post.CategoryID = fields.category.ID
	post.Category = *fields.category
	post.Tags = fields.tags

	if err := s.repo.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("persist post: %w", err)
	}
	return post, nil
}

// DeletePost removes the post permanently. The stored image file and the
// referenced category/user are untouched.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint) error {
	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("find post: %w", err)
	}
	if post == nil {
		return ErrNotFound
	}
	if !s.authz.Can(actorID, ActionEdit, post) {
		return ErrUnauthorized
	}
	if err := s.repo.Remove(ctx, post); err != nil {
		return fmt.Errorf("remove post: %w", err)
	}
	return nil
}

// storeImage writes the bytes under a collision-resistant <uuid>.<ext> name.
func (s *PostService) storeImage(ctx context.Context, img *ImageUpload) (string, error) {
	ext := strings.TrimPrefix(strings.ToLower(img.Ext), ".")
	name := fmt.Sprintf("%s.%s", uuid.NewString(), ext)
	if err := s.files.Store(ctx, name, bytes.NewReader(img.Data)); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return name, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
