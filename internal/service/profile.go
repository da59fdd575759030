package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainauth "github.com/target/incident-portal/internal/domain/auth"
	apperrors "github.com/target/incident-portal/internal/errors"
	"github.com/target/incident-portal/internal/ports"
)

// ProfileServiceOptions groups dependencies for ProfileService.
type ProfileServiceOptions struct {
	Users   ports.UserBackend // Required
	Session Session           // Required
	Logger  *slog.Logger      // Optional
}

// ProfileService reads and edits the signed-in user's profile.
type ProfileService struct {
	users   ports.UserBackend
	session Session
	logger  *slog.Logger
}

// NewProfileService constructs a new ProfileService.
func NewProfileService(opts ProfileServiceOptions) *ProfileService {
	if opts.Users == nil {
		panic("UserBackend is required")
	}
	if opts.Session == nil {
		panic("Session is required")
	}
	return &ProfileService{users: opts.Users, session: opts.Session, logger: opts.Logger}
}

// ProfileChanges lists the editable profile fields; nil leaves a field unchanged.
type ProfileChanges struct {
	Name  *string
	Email *string
	Phone *string
	TaxID *string
}

// Empty reports whether no field is set.
func (c ProfileChanges) Empty() bool {
	return c.Name == nil && c.Email == nil && c.Phone == nil && c.TaxID == nil
}

// Current fetches the signed-in user's record from the backend.
func (s *ProfileService) Current(ctx context.Context) (domainauth.Identity, error) {
	tok, err := bearer(ctx, s.session)
	if err != nil {
		return domainauth.Identity{}, err
	}
	id, err := s.users.CurrentUser(ctx, tok)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("get current user: %w", err)
	}
	return id, nil
}

// Update writes the changes to the backend and, when name or email changed, mirrors them
// into the session's durable identity. The identity cookie is not refreshed.
func (s *ProfileService) Update(ctx context.Context, changes ProfileChanges) (domainauth.Identity, error) {
	if changes.Empty() {
		return domainauth.Identity{}, apperrors.Validation("no profile changes given")
	}
	cur := s.session.Identity()
	if cur == nil {
		return domainauth.Identity{}, ErrNotLoggedIn
	}
	tok, err := bearer(ctx, s.session)
	if err != nil {
		return domainauth.Identity{}, err
	}

	doc, err := s.users.GetUser(ctx, tok, cur.ID)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("get user: %w", err)
	}
	doc, err = applyProfileChanges(doc, changes)
	if err != nil {
		return domainauth.Identity{}, err
	}

	updated, err := s.users.UpdateUser(ctx, tok, cur.ID, doc)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("update user: %w", err)
	}
	if updated.ID == 0 {
		// Empty or 204 response: the record we sent is what the backend now holds.
		updated = withDocumentProfile(*cur, doc)
	}

	if updated.Name != cur.Name || updated.Email != cur.Email {
		if err := s.session.UpdateProfile(ctx, updated.Name, updated.Email); err != nil {
			return updated, fmt.Errorf("update session profile: %w", err)
		}
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "profile updated", "user_id", cur.ID)
	}
	return updated, nil
}

func applyProfileChanges(doc domainauth.UserDocument, c ProfileChanges) (domainauth.UserDocument, error) {
	out := make(domainauth.UserDocument, len(doc)+4)
	for k, v := range doc {
		out[k] = v
	}
	if c.Name != nil {
		name := strings.TrimSpace(*c.Name)
		if name == "" {
			return nil, apperrors.ValidationField("nome", "name cannot be empty")
		}
		out["nome"] = name
	}
	if c.Email != nil {
		email := strings.TrimSpace(*c.Email)
		if email == "" || !strings.Contains(email, "@") {
			return nil, apperrors.ValidationField("email", "email is invalid")
		}
		out["email"] = email
	}
	if c.Phone != nil {
		out["telefone"] = strings.TrimSpace(*c.Phone)
	}
	if c.TaxID != nil {
		out["cpf"] = strings.TrimSpace(*c.TaxID)
	}
	return out, nil
}

// withDocumentProfile copies the editable profile fields from doc onto id.
func withDocumentProfile(id domainauth.Identity, doc domainauth.UserDocument) domainauth.Identity {
	if v, ok := doc["nome"].(string); ok {
		id.Name = v
	}
	if v, ok := doc["email"].(string); ok {
		id.Email = v
	}
	if v, ok := doc["telefone"].(string); ok {
		id.Phone = v
	}
	if v, ok := doc["cpf"].(string); ok {
		id.TaxID = v
	}
	return id
}
