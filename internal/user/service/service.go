package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"blogiq-backend/internal/config"
	"blogiq-backend/internal/logger"
	"blogiq-backend/internal/user/model"
	appErrors "blogiq-backend/pkg/errors"
	"blogiq-backend/pkg/utils"
)

// UserRepository is the credential store the service orchestrates. All
// mutable state lives behind it; the service itself is stateless.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	SetResetToken(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error
	CompletePasswordReset(ctx context.Context, token, passwordHash string, now time.Time) error
}

// ResetMailer delivers reset links out-of-band.
type ResetMailer interface {
	SendPasswordReset(recipient, resetLink string) error
}

// ContentRemover deletes everything a user authored. The post and comment
// repositories both implement it so account deletion leaves no orphans.
type ContentRemover interface {
	DeleteByAuthor(ctx context.Context, authorID uuid.UUID) error
}

type UserService struct {
	repo    UserRepository
	mailer  ResetMailer
	config  *config.Config
	content []ContentRemover
}

func NewService(repo UserRepository, mailer ResetMailer, cfg *config.Config, content ...ContentRemover) *UserService {
	return &UserService{
		repo:    repo,
		mailer:  mailer,
		config:  cfg,
		content: content,
	}
}

func (s *UserService) Register(ctx context.Context, request *model.RegisterRequest) (*model.UserResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	existingUser, err := s.repo.GetUserByEmail(ctx, request.Email)
	if err != nil && !errors.Is(err, appErrors.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, appErrors.ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password, s.config.Password.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       request.Username,
		Email:          request.Email,
		PasswordHashed: hashedPassword,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// Login verifies credentials and mints a session token. Unknown email and
// wrong password stay distinguishable for the caller.
func (s *UserService) Login(ctx context.Context, request *model.LoginRequest) (*model.UserResponse, string, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, "", appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.repo.GetUserByEmail(ctx, request.Email)
	if err != nil {
		return nil, "", err
	}

	if !utils.CheckPassword(user.PasswordHashed, request.Password) {
		return nil, "", appErrors.ErrInvalidCredentials
	}

	token, err := utils.GenerateSessionToken(
		user.ID,
		user.Username,
		user.Email,
		s.config.JWT.Secret,
		s.SessionTTL(),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate session token: %w", err)
	}

	return user.ToResponse(), token, nil
}

// VerifySession checks a presented session token and returns its claims.
// An empty token is a missing credential, not a verification failure.
func (s *UserService) VerifySession(token string) (*utils.SessionClaims, error) {
	if token == "" {
		return nil, appErrors.ErrMissingToken
	}

	return utils.ValidateSessionToken(token, s.config.JWT.Secret)
}

// RequestPasswordReset mints a reset token, persists it on the user record
// and emails the reset link. A delivery failure after the token was
// persisted is reported distinctly; the token stays valid and a re-request
// overwrites it.
func (s *UserService) RequestPasswordReset(ctx context.Context, request *model.ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(request); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Email is required", err)
	}

	user, err := s.repo.GetUserByEmail(ctx, request.Email)
	if err != nil {
		return err
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiry := time.Now().Add(time.Duration(s.config.Reset.TokenTTLHours) * time.Hour)
	if err := s.repo.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return err
	}

	// The link base comes from trusted configuration, never from the
	// incoming request's Host header.
	resetLink := fmt.Sprintf("%s/reset/%s", s.config.Reset.LinkBaseURL, token)
	if err := s.mailer.SendPasswordReset(user.Email, resetLink); err != nil {
		logger.Error("Failed to deliver password reset email",
			zap.String("email", user.Email),
			zap.Error(err),
		)
		return appErrors.ErrEmailDelivery
	}

	return nil
}

// CompletePasswordReset consumes a reset token. The token-still-valid check
// and the field clearing happen in one conditional store update, so a token
// can only ever be consumed once.
func (s *UserService) CompletePasswordReset(ctx context.Context, token string, request *model.ResetPasswordRequest) error {
	if token == "" {
		return appErrors.ErrResetTokenInvalid
	}
	if err := utils.ValidateStruct(request); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	hashedPassword, err := utils.HashPassword(request.Password, s.config.Password.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.CompletePasswordReset(ctx, token, hashedPassword, time.Now())
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, request *model.UpdateProfileRequest) (*model.UserResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if request.Username != nil {
		user.Username = *request.Username
	}
	if request.Email != nil {
		user.Email = *request.Email
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// DeleteAccount removes the user's authored content before the user record
// itself, so a failure partway through never leaves a deleted account with
// orphaned posts or comments.
func (s *UserService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	for _, remover := range s.content {
		if err := remover.DeleteByAuthor(ctx, userID); err != nil {
			return err
		}
	}

	return s.repo.DeleteUser(ctx, userID)
}

// SessionTTL returns the configured session token lifetime.
func (s *UserService) SessionTTL() time.Duration {
	return time.Duration(s.config.JWT.ExpiryHours) * time.Hour
}
