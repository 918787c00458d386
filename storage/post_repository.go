package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ghissghiso/goblog/models"
)

// PostRepo is the GORM-backed persistence adapter for posts and the
// reference data the post workflows resolve.
type PostRepo struct {
	db *gorm.DB
}

// NewPostRepo creates a repository bound to the given connection.
func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db: db}
}

// Save persists the post, creating or updating the row, then replaces the
// tag join rows so removed tags do not linger. Associated User/Category
// rows are reference data and never written from here.
func (r *PostRepo) Save(ctx context.Context, post *models.Post) error {
	tags := post.Tags
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags); err != nil {
		return err
	}
	post.Tags = tags
	return nil
}

// Remove deletes the post row and its tag join rows.
func (r *PostRepo) Remove(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Select("Tags").Delete(post).Error
}

// FindByID loads a post with author, category, and tags. Returns (nil, nil)
// when no row exists.
func (r *PostRepo) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").Preload("Category").Preload("Tags").
		First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Paginate returns one page of posts, newest first, plus the total count.
func (r *PostRepo) Paginate(ctx context.Context, page, pageSize int) ([]models.Post, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("User").Preload("Category").Preload("Tags").
		Order("published_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// FindUser resolves a user by id; (nil, nil) when absent.
func (r *PostRepo) FindUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindCategory resolves a category by id; (nil, nil) when absent.
func (r *PostRepo) FindCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindTags resolves the tags matching ids; missing ids simply shrink the
// result, the caller compares lengths.
func (r *PostRepo) FindTags(ctx context.Context, ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	if err := r.db.WithContext(ctx).Find(&tags, ids).Error; err != nil {
		return nil, err
	}
	return tags, nil
}
