package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/common/security"
	"github.com/heppy363/Play/internal/domain/model"
	"github.com/heppy363/Play/internal/domain/repository"
	"github.com/heppy363/Play/internal/platform/notify"
)

type AuthService struct {
	userRepo repository.UserRepository
	notifier notify.Notifier
}

func NewAuthService(userRepo repository.UserRepository, notifier notify.Notifier) *AuthService {
	return &AuthService{userRepo: userRepo, notifier: notifier}
}

type SignupRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	TelegramID string `json:"telegram_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
	// ResetRequired tells the client to force a password change before any
	// progression action is permitted.
	ResetRequired bool `json:"reset_required"`
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       req.Username,
		HashedPassword: hashedPassword,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		TelegramID:     req.TelegramID,
		Role:           model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if user.TelegramID != "" {
		// Best-effort: a failed notification never rolls back registration.
		if err := s.notifier.Notify(ctx, user.TelegramID, "Welcome to Play, "+user.Username+"! Your account has been created."); err != nil {
			log.Printf("welcome notification failed for %s: %v", user.Username, err)
		}
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token, ResetRequired: user.ResetRequired}, nil
}

// ChangePassword verifies the current password, stores the new one and
// clears the reset flag.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if newPassword == "" {
		return common.ErrBadRequest
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if !security.CheckPasswordHash(oldPassword, user.HashedPassword) {
		return common.ErrUnauthorized
	}

	hashed, err := security.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashed, false)
}

// ResetPassword is the administrative reset: the account gets a temporary
// password, is flagged reset-required and the user is told the new password
// over the notification channel.
func (s *AuthService) ResetPassword(ctx context.Context, username string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}

	tempPassword := security.GenerateTemporaryPassword()
	hashed, err := security.HashPassword(tempPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashed, true); err != nil {
		return fmt.Errorf("failed to store temporary password: %w", err)
	}

	if user.TelegramID != "" {
		if err := s.notifier.Notify(ctx, user.TelegramID, "Your password has been reset to "+tempPassword); err != nil {
			log.Printf("reset notification failed for %s: %v", username, err)
		}
	}
	return nil
}
