package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"blogiq-backend/internal/comment/model"
	"blogiq-backend/internal/database"
	appErrors "blogiq-backend/pkg/errors"
)

type CommentRepository struct {
	db *database.Database
}

func NewRepository(db *database.Database) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()

	if err := r.db.DB.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetCommentByID(ctx context.Context, commentID uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.DB.WithContext(ctx).First(&comment, "id = ?", commentID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, appErrors.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

func (r *CommentRepository) UpdateComment(ctx context.Context, comment *model.Comment) error {
	comment.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", comment.ID).
		Updates(map[string]interface{}{
			"comment":    comment.Comment,
			"updated_at": comment.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&model.Comment{}, "id = ?", commentID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrCommentNotFound
	}
	return nil
}

// DeleteByAuthor removes every comment the given user wrote.
func (r *CommentRepository) DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&model.Comment{}, "user_id = ?", authorID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comments by author: %w", result.Error)
	}
	return nil
}

func (r *CommentRepository) ListCommentsByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
