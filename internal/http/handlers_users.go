package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/target/incident-portal/internal/errors"
	"github.com/target/incident-portal/internal/service"
)

// PasswordChanger changes a user's password.
type PasswordChanger interface {
	Change(ctx context.Context, in service.ChangePasswordInput) error
}

// UserHandlers serves user account endpoints.
type UserHandlers struct {
	Passwords PasswordChanger
	Logger    *slog.Logger
}

// userEmailHeader carries the caller's email for re-authentication.
const userEmailHeader = "X-User-Email"

type changePasswordRequest struct {
	CurrentPassword string `json:"senhaAtual"`
	NewPassword     string `json:"novaSenha"`
	Confirmation    string `json:"confirmarSenha,omitempty"`
}

// ChangePassword verifies the current password and stores the new one.
// POST /api/users/{id}/change-password.
func (h *UserHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		WriteAppError(w, r, h.Logger, apperrors.ValidationField("id", "invalid user id"))
		return
	}

	var req changePasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Confirmation != "" {
		if err := service.ValidateNewPassword(req.NewPassword, req.Confirmation); err != nil {
			WriteAppError(w, r, h.Logger, err)
			return
		}
	}

	err = h.Passwords.Change(r.Context(), service.ChangePasswordInput{
		UserID:          id,
		Email:           r.Header.Get(userEmailHeader),
		Token:           bearerToken(r),
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		WriteAppError(w, r, h.Logger, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Senha atualizada com sucesso"})
}

// bearerToken returns the token from the Authorization header, or "".
func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return h
}
