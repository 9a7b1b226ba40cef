package service

import (
	"context"

	"github.com/google/uuid"

	"blogiq-backend/internal/post/model"
	appErrors "blogiq-backend/pkg/errors"
	"blogiq-backend/pkg/utils"
)

type PostRepository interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPostByID(ctx context.Context, postID uuid.UUID) (*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, postID uuid.UUID) error
	ListPosts(ctx context.Context, userID *uuid.UUID, search string) ([]model.Post, error)
}

type PostService struct {
	repo PostRepository
}

func NewService(repo PostRepository) *PostService {
	return &PostService{repo: repo}
}

func (s *PostService) CreatePost(ctx context.Context, userID uuid.UUID, username string, request *model.CreatePostRequest) (*model.Post, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	post := &model.Post{
		UserID:      userID,
		Username:    username,
		Title:       request.Title,
		Description: request.Description,
		Photo:       request.Photo,
		Categories:  request.Categories,
	}

	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, postID uuid.UUID) (*model.Post, error) {
	return s.repo.GetPostByID(ctx, postID)
}

// UpdatePost applies the partial update after verifying ownership.
func (s *PostService) UpdatePost(ctx context.Context, postID, userID uuid.UUID, request *model.UpdatePostRequest) (*model.Post, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, appErrors.ErrNotOwner
	}

	if request.Title != nil {
		post.Title = *request.Title
	}
	if request.Description != nil {
		post.Description = *request.Description
	}
	if request.Photo != nil {
		post.Photo = request.Photo
	}
	if request.Categories != nil {
		post.Categories = request.Categories
	}

	if err := s.repo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, postID, userID uuid.UUID) error {
	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return appErrors.ErrNotOwner
	}

	return s.repo.DeletePost(ctx, postID)
}

func (s *PostService) ListPosts(ctx context.Context, query *model.ListPostsQuery) ([]model.Post, error) {
	var userID *uuid.UUID
	if query.UserID != "" {
		parsed, err := uuid.Parse(query.UserID)
		if err != nil {
			return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid user filter", err)
		}
		userID = &parsed
	}

	return s.repo.ListPosts(ctx, userID, query.Search)
}
