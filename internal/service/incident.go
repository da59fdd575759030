package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/target/incident-portal/internal/domain/model"
	apperrors "github.com/target/incident-portal/internal/errors"
	"github.com/target/incident-portal/internal/ports"
)

// IncidentServiceOptions groups dependencies for IncidentService.
type IncidentServiceOptions struct {
	Backend ports.IncidentBackend // Required
	Session Session               // Required
	Logger  *slog.Logger          // Optional
}

// IncidentService registers, lists and administers incidents for the signed-in user.
type IncidentService struct {
	backend ports.IncidentBackend
	session Session
	logger  *slog.Logger
}

// NewIncidentService constructs a new IncidentService.
func NewIncidentService(opts IncidentServiceOptions) *IncidentService {
	if opts.Backend == nil {
		panic("IncidentBackend is required")
	}
	if opts.Session == nil {
		panic("Session is required")
	}
	return &IncidentService{backend: opts.Backend, session: opts.Session, logger: opts.Logger}
}

// Create registers an incident attributed to the signed-in user.
func (s *IncidentService) Create(ctx context.Context, req model.CreateIncidentRequest) (model.Incident, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return model.Incident{}, apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid incident")
	}
	id := s.session.Identity()
	if id == nil {
		return model.Incident{}, ErrNotLoggedIn
	}
	tok, err := bearer(ctx, s.session)
	if err != nil {
		return model.Incident{}, err
	}

	inc, err := s.backend.CreateIncident(ctx, tok, req.Incident(id.ID))
	if err != nil {
		return model.Incident{}, fmt.Errorf("create incident: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "incident created", "incident_id", inc.ID, "creator_id", id.ID)
	}
	return inc, nil
}

// List returns the incidents matching filter.
func (s *IncidentService) List(ctx context.Context, filter model.IncidentFilter) ([]model.Incident, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.Validationf("invalid status filter %q", filter.Status)
	}
	tok, err := bearer(ctx, s.session)
	if err != nil {
		return nil, err
	}
	all, err := s.backend.ListIncidents(ctx, tok)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	return filter.Apply(all), nil
}

// Get returns one incident.
func (s *IncidentService) Get(ctx context.Context, id int64) (model.Incident, error) {
	tok, err := bearer(ctx, s.session)
	if err != nil {
		return model.Incident{}, err
	}
	inc, err := s.backend.GetIncident(ctx, tok, id)
	if err != nil {
		return model.Incident{}, fmt.Errorf("get incident %d: %w", id, err)
	}
	return inc, nil
}

// BySeverity lists incidents of one severity using the backend's severity endpoint.
func (s *IncidentService) BySeverity(ctx context.Context, sev model.Severity) ([]model.Incident, error) {
	if !sev.Valid() {
		return nil, apperrors.Validationf("invalid severity %q", sev)
	}
	tok, err := bearer(ctx, s.session)
	if err != nil {
		return nil, err
	}
	out, err := s.backend.IncidentsBySeverity(ctx, tok, sev)
	if err != nil {
		return nil, fmt.Errorf("list incidents by severity: %w", err)
	}
	return out, nil
}

// Stats summarizes all incidents. Privileged roles only.
func (s *IncidentService) Stats(ctx context.Context) (model.IncidentStats, error) {
	if err := requirePrivileged(ctx, s.session); err != nil {
		return model.IncidentStats{}, err
	}
	all, err := s.List(ctx, model.IncidentFilter{})
	if err != nil {
		return model.IncidentStats{}, err
	}
	return model.ComputeIncidentStats(all), nil
}

// Update replaces an incident. Privileged roles only.
func (s *IncidentService) Update(ctx context.Context, id int64, inc model.Incident) (model.Incident, error) {
	if err := requirePrivileged(ctx, s.session); err != nil {
		return model.Incident{}, err
	}
	if inc.Severity != nil && !inc.Severity.Valid() {
		return model.Incident{}, apperrors.ValidationField("gravidade", "gravidade must be one of: BAIXA, MEDIA, ALTA")
	}
	tok, err := bearer(ctx, s.session)
	if err != nil {
		return model.Incident{}, err
	}
	inc.ID = id
	out, err := s.backend.UpdateIncident(ctx, tok, id, inc)
	if err != nil {
		return model.Incident{}, fmt.Errorf("update incident %d: %w", id, err)
	}
	s.audit(ctx, "incident updated", id)
	return out, nil
}

// Delete removes an incident. Privileged roles only.
func (s *IncidentService) Delete(ctx context.Context, id int64) error {
	if err := requirePrivileged(ctx, s.session); err != nil {
		return err
	}
	tok, err := bearer(ctx, s.session)
	if err != nil {
		return err
	}
	if err := s.backend.DeleteIncident(ctx, tok, id); err != nil {
		return fmt.Errorf("delete incident %d: %w", id, err)
	}
	s.audit(ctx, "incident deleted", id)
	return nil
}

// Resolve marks an incident as resolved. Privileged roles only.
func (s *IncidentService) Resolve(ctx context.Context, id int64) (model.Incident, error) {
	if err := requirePrivileged(ctx, s.session); err != nil {
		return model.Incident{}, err
	}
	tok, err := bearer(ctx, s.session)
	if err != nil {
		return model.Incident{}, err
	}
	out, err := s.backend.ResolveIncident(ctx, tok, id)
	if err != nil {
		return model.Incident{}, fmt.Errorf("resolve incident %d: %w", id, err)
	}
	s.audit(ctx, "incident resolved", id)
	return out, nil
}

func (s *IncidentService) audit(ctx context.Context, msg string, id int64) {
	if s.logger == nil {
		return
	}
	actor := int64(0)
	if who := s.session.Identity(); who != nil {
		actor = who.ID
	}
	s.logger.InfoContext(ctx, msg, "incident_id", id, "actor_id", actor)
}
