package service

import (
	"context"

	"github.com/google/uuid"

	"blogiq-backend/internal/comment/model"
	appErrors "blogiq-backend/pkg/errors"
	"blogiq-backend/pkg/utils"
)

type CommentRepository interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, commentID uuid.UUID) (*model.Comment, error)
	UpdateComment(ctx context.Context, comment *model.Comment) error
	DeleteComment(ctx context.Context, commentID uuid.UUID) error
	ListCommentsByPost(ctx context.Context, postID uuid.UUID) ([]model.Comment, error)
}

// PostChecker verifies that the commented post exists.
type PostChecker interface {
	PostExists(ctx context.Context, postID uuid.UUID) error
}

type CommentService struct {
	repo  CommentRepository
	posts PostChecker
}

func NewService(repo CommentRepository, posts PostChecker) *CommentService {
	return &CommentService{repo: repo, posts: posts}
}

func (s *CommentService) CreateComment(ctx context.Context, userID uuid.UUID, author string, request *model.CreateCommentRequest) (*model.Comment, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	postID, err := uuid.Parse(request.PostID)
	if err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid post ID", err)
	}

	if err := s.posts.PostExists(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  userID,
		Author:  author,
		Comment: request.Comment,
	}

	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(ctx context.Context, commentID, userID uuid.UUID, request *model.UpdateCommentRequest) (*model.Comment, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	comment, err := s.repo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, appErrors.ErrNotOwner
	}

	comment.Comment = request.Comment
	if err := s.repo.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, commentID, userID uuid.UUID) error {
	comment, err := s.repo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return appErrors.ErrNotOwner
	}

	return s.repo.DeleteComment(ctx, commentID)
}

func (s *CommentService) ListComments(ctx context.Context, postID uuid.UUID) ([]model.Comment, error) {
	return s.repo.ListCommentsByPost(ctx, postID)
}
