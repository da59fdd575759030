package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/target/incident-portal/internal/domain/model"
)

func incidentPath(id int64) string { return fmt.Sprintf("/incidentes/%d", id) }

// ListIncidents returns every incident visible to token.
func (c *Client) ListIncidents(ctx context.Context, token string) ([]model.Incident, error) {
	var out []model.Incident
	if err := c.do(ctx, http.MethodGet, "/incidentes", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetIncident returns one incident.
func (c *Client) GetIncident(ctx context.Context, token string, id int64) (model.Incident, error) {
	var out model.Incident
	if err := c.do(ctx, http.MethodGet, incidentPath(id), token, nil, &out); err != nil {
		return model.Incident{}, err
	}
	return out, nil
}

// CreateIncident registers a new incident.
func (c *Client) CreateIncident(ctx context.Context, token string, inc model.Incident) (model.Incident, error) {
	var out model.Incident
	if err := c.do(ctx, http.MethodPost, "/incidentes", token, inc, &out); err != nil {
		return model.Incident{}, err
	}
	return out, nil
}

// UpdateIncident replaces an incident.
func (c *Client) UpdateIncident(ctx context.Context, token string, id int64, inc model.Incident) (model.Incident, error) {
	var out model.Incident
	if err := c.do(ctx, http.MethodPut, incidentPath(id), token, inc, &out); err != nil {
		return model.Incident{}, err
	}
	return out, nil
}

// DeleteIncident removes an incident.
func (c *Client) DeleteIncident(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, incidentPath(id), token, nil, nil)
}

// ResolveIncident marks an incident as resolved.
func (c *Client) ResolveIncident(ctx context.Context, token string, id int64) (model.Incident, error) {
	var out model.Incident
	if err := c.do(ctx, http.MethodPut, incidentPath(id)+"/resolver", token, nil, &out); err != nil {
		return model.Incident{}, err
	}
	return out, nil
}

// IncidentsBySeverity lists incidents with the given severity.
func (c *Client) IncidentsBySeverity(ctx context.Context, token string, sev model.Severity) ([]model.Incident, error) {
	var out []model.Incident
	path := "/incidentes/gravidade/" + url.PathEscape(sev.String())
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
