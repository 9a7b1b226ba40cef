package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogiq-backend/internal/comment/model"
	appErrors "blogiq-backend/pkg/errors"
)

type memCommentStore struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*model.Comment
}

func newMemCommentStore() *memCommentStore {
	return &memCommentStore{comments: make(map[uuid.UUID]*model.Comment)}
}

func (s *memCommentStore) CreateComment(_ context.Context, comment *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()
	clone := *comment
	s.comments[comment.ID] = &clone
	return nil
}

func (s *memCommentStore) GetCommentByID(_ context.Context, commentID uuid.UUID) (*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, ok := s.comments[commentID]
	if !ok {
		return nil, appErrors.ErrCommentNotFound
	}
	clone := *comment
	return &clone, nil
}

func (s *memCommentStore) UpdateComment(_ context.Context, comment *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.comments[comment.ID]
	if !ok {
		return appErrors.ErrCommentNotFound
	}
	stored.Comment = comment.Comment
	stored.UpdatedAt = time.Now()
	return nil
}

func (s *memCommentStore) DeleteComment(_ context.Context, commentID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[commentID]; !ok {
		return appErrors.ErrCommentNotFound
	}
	delete(s.comments, commentID)
	return nil
}

func (s *memCommentStore) ListCommentsByPost(_ context.Context, postID uuid.UUID) ([]model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var comments []model.Comment
	for _, comment := range s.comments {
		if comment.PostID == postID {
			comments = append(comments, *comment)
		}
	}
	return comments, nil
}

// knownPosts answers existence checks from a fixed set.
type knownPosts map[uuid.UUID]struct{}

func (p knownPosts) PostExists(_ context.Context, postID uuid.UUID) error {
	if _, ok := p[postID]; !ok {
		return appErrors.ErrPostNotFound
	}
	return nil
}

func newTestService(t *testing.T) (*CommentService, *memCommentStore, uuid.UUID) {
	t.Helper()

	store := newMemCommentStore()
	postID := uuid.New()
	svc := NewService(store, knownPosts{postID: {}})
	return svc, store, postID
}

func createComment(t *testing.T, svc *CommentService, postID, authorID uuid.UUID, text string) *model.Comment {
	t.Helper()

	comment, err := svc.CreateComment(context.Background(), authorID, "alice", &model.CreateCommentRequest{
		PostID:  postID.String(),
		Comment: text,
	})
	require.NoError(t, err)
	return comment
}

func TestCreateComment_UnknownPost(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)

	_, err := svc.CreateComment(context.Background(), uuid.New(), "alice", &model.CreateCommentRequest{
		PostID:  uuid.NewString(),
		Comment: "orphan",
	})
	assert.ErrorIs(t, err, appErrors.ErrPostNotFound)
}

func TestUpdateComment_OwnerOnly(t *testing.T) {
	t.Parallel()

	svc, store, postID := newTestService(t)
	author := uuid.New()
	comment := createComment(t, svc, postID, author, "nice post")

	_, err := svc.UpdateComment(context.Background(), comment.ID, uuid.New(), &model.UpdateCommentRequest{
		Comment: "hijacked",
	})
	assert.ErrorIs(t, err, appErrors.ErrNotOwner)

	stored, err := store.GetCommentByID(context.Background(), comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "nice post", stored.Comment)

	updated, err := svc.UpdateComment(context.Background(), comment.ID, author, &model.UpdateCommentRequest{
		Comment: "edited",
	})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Comment)
}

func TestDeleteComment_OwnerOnly(t *testing.T) {
	t.Parallel()

	svc, store, postID := newTestService(t)
	author := uuid.New()
	comment := createComment(t, svc, postID, author, "nice post")

	err := svc.DeleteComment(context.Background(), comment.ID, uuid.New())
	assert.ErrorIs(t, err, appErrors.ErrNotOwner)

	_, err = store.GetCommentByID(context.Background(), comment.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComment(context.Background(), comment.ID, author))
	_, err = store.GetCommentByID(context.Background(), comment.ID)
	assert.ErrorIs(t, err, appErrors.ErrCommentNotFound)
}
