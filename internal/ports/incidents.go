package ports

import (
	"context"

	"github.com/target/incident-portal/internal/domain/model"
)

// IncidentBackend is the backend API surface for incidents.
type IncidentBackend interface {
	ListIncidents(ctx context.Context, token string) ([]model.Incident, error)
	GetIncident(ctx context.Context, token string, id int64) (model.Incident, error)
	CreateIncident(ctx context.Context, token string, inc model.Incident) (model.Incident, error)
	UpdateIncident(ctx context.Context, token string, id int64, inc model.Incident) (model.Incident, error)
	DeleteIncident(ctx context.Context, token string, id int64) error
	ResolveIncident(ctx context.Context, token string, id int64) (model.Incident, error)
	IncidentsBySeverity(ctx context.Context, token string, sev model.Severity) ([]model.Incident, error)
}
