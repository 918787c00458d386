package services

import (
	"context"
	"io"

	"github.com/ghissghiso/goblog/models"
)

// PostRepository is the persistence boundary the service depends on.
// Find methods return (nil, nil) when the row does not exist.
type PostRepository interface {
	Save(ctx context.Context, post *models.Post) error
	Remove(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	Paginate(ctx context.Context, page, pageSize int) ([]models.Post, int64, error)

	FindUser(ctx context.Context, id uint) (*models.User, error)
	FindCategory(ctx context.Context, id uint) (*models.Category, error)
	FindTags(ctx context.Context, ids []uint) ([]models.Tag, error)
}

// FileStore persists uploaded image bytes under the given filename.
type FileStore interface {
	Store(ctx context.Context, name string, r io.Reader) error
}

// ActionEdit is the capability gating post mutation.
const ActionEdit = "edit"

// Authorizer decides whether an actor may perform an action on a post.
type Authorizer interface {
	Can(actorID uint, action string, post *models.Post) bool
}
