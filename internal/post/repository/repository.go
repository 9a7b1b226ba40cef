package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogiq-backend/internal/database"
	"blogiq-backend/internal/post/model"
	appErrors "blogiq-backend/pkg/errors"
)

type PostRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) CreatePost(ctx context.Context, post *model.Post) error {
	post.ID = uuid.New()
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()

	if err := r.db.DB.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *PostRepository) GetPostByID(ctx context.Context, postID uuid.UUID) (*model.Post, error) {
	var post model.Post
	err := r.db.DB.WithContext(ctx).First(&post, "id = ?", postID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) UpdatePost(ctx context.Context, post *model.Post) error {
	post.UpdatedAt = time.Now()

	// Struct-based update so the categories serializer applies; Select
	// forces zero-value fields through as well.
	result := r.db.DB.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", post.ID).
		Select("title", "description", "photo", "categories", "updated_at").
		Updates(post)

	if result.Error != nil {
		return fmt.Errorf("failed to update post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) DeletePost(ctx context.Context, postID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&model.Post{}, "id = ?", postID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrPostNotFound
	}
	return nil
}

// DeleteByAuthor removes every post the given user owns. Deleting an
// account with no posts is not an error.
func (r *PostRepository) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&model.Post{}, "user_id = ?", authorID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete posts by author: %w", result.Error)
	}
	return nil
}

// PostExists reports whether a post with the given ID is present.
func (r *PostRepository) PostExists(ctx context.Context, postID uuid.UUID) error {
	var count int64
	err := r.db.DB.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", postID).
		Count(&count).Error

	if err != nil {
		return fmt.Errorf("failed to check post existence: %w", err)
	}
	if count == 0 {
		return appErrors.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) ListPosts(ctx context.Context, userID *uuid.UUID, search string) ([]model.Post, error) {
	query := r.db.DB.WithContext(ctx).Model(&model.Post{}).Order("created_at DESC")

	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}

	var posts []model.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}
