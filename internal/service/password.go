package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	domainauth "github.com/target/incident-portal/internal/domain/auth"
	apperrors "github.com/target/incident-portal/internal/errors"
	"github.com/target/incident-portal/internal/ports"
)

// MinPasswordLength is the shortest accepted new password.
const MinPasswordLength = 6

var (
	// ErrMissingEmail is returned when the caller's email is not supplied.
	ErrMissingEmail = &apperrors.AppError{Code: apperrors.ErrCodeValidation, Message: "Email do usuário não fornecido", Field: "email"}
	// ErrWrongPassword is returned when re-authentication with the current password fails.
	ErrWrongPassword = &apperrors.AppError{Code: apperrors.ErrCodeUnauthorized, Message: "Senha atual incorreta"}
	// ErrUserNotFound is returned when the user record cannot be read.
	ErrUserNotFound = &apperrors.AppError{Code: apperrors.ErrCodeNotFound, Message: "Usuário não encontrado"}
)

// ValidateNewPassword checks a new password and its confirmation before any backend call.
func ValidateNewPassword(newPassword, confirmation string) error {
	if newPassword != confirmation {
		return apperrors.ValidationField("confirmarSenha", "As senhas não coincidem")
	}
	if utf8.RuneCountInString(newPassword) < MinPasswordLength {
		return apperrors.ValidationField("novaSenha", fmt.Sprintf("A nova senha deve ter pelo menos %d caracteres", MinPasswordLength))
	}
	return nil
}

// ChangePasswordInput carries one password change request.
type ChangePasswordInput struct {
	UserID          int64
	Email           string
	Token           string
	CurrentPassword string
	NewPassword     string
}

// PasswordServiceOptions groups dependencies for PasswordService.
type PasswordServiceOptions struct {
	Auth   ports.AuthBackend // Required
	Users  ports.UserBackend // Required
	Logger *slog.Logger      // Optional
}

// PasswordService changes a user's password by re-authenticating and rewriting the user record.
type PasswordService struct {
	auth   ports.AuthBackend
	users  ports.UserBackend
	logger *slog.Logger
}

// NewPasswordService constructs a new PasswordService.
func NewPasswordService(opts PasswordServiceOptions) *PasswordService {
	if opts.Auth == nil {
		panic("AuthBackend is required")
	}
	if opts.Users == nil {
		panic("UserBackend is required")
	}
	return &PasswordService{auth: opts.Auth, users: opts.Users, logger: opts.Logger}
}

// Change verifies the current password, then stores the new one on the user record.
func (s *PasswordService) Change(ctx context.Context, in ChangePasswordInput) error {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return ErrMissingEmail
	}
	if in.UserID <= 0 {
		return apperrors.ValidationField("id", "invalid user id")
	}
	if in.NewPassword == "" {
		return apperrors.ValidationField("novaSenha", "new password is required")
	}

	if _, err := s.auth.Login(ctx, domainauth.Credentials{Email: email, Password: in.CurrentPassword}); err != nil {
		if isBackendRejection(err) {
			return fmt.Errorf("%w: %w", ErrWrongPassword, err)
		}
		return fmt.Errorf("verify current password: %w", err)
	}

	doc, err := s.users.GetUser(ctx, in.Token, in.UserID)
	if err != nil {
		if isBackendRejection(err) {
			return fmt.Errorf("%w: %w", ErrUserNotFound, err)
		}
		return fmt.Errorf("get user: %w", err)
	}

	if _, err := s.users.UpdateUser(ctx, in.Token, in.UserID, doc.WithPassword(in.NewPassword)); err != nil {
		if status := apperrors.UpstreamStatus(err); status != 0 {
			return apperrors.Wrap(err, apperrors.FromStatus(status, "").Code, "Erro ao atualizar senha")
		}
		return fmt.Errorf("update user: %w", err)
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "password changed", "user_id", in.UserID)
	}
	return nil
}
