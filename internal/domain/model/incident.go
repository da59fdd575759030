//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Incident is a reported infrastructure or safety issue as exposed by the backend API.
type Incident struct {
	ID          int64       `json:"id,omitempty"`
	Name        string      `json:"nome"`
	Description string      `json:"descricao"`
	Latitude    string      `json:"latitude"`
	Longitude   string      `json:"longitude"`
	Severity    *Severity   `json:"gravidade"`
	Creator     *CreatorRef `json:"criador,omitempty"`
	Resolved    bool        `json:"isResolved"`
	ImageURL    *string     `json:"imageUrl,omitempty"`
	ImagePath   *string     `json:"imagemPath,omitempty"`
	CreatedAt   *time.Time  `json:"createdAt,omitempty"`
}

// CreatorRef references the user who registered an incident.
type CreatorRef struct {
	ID int64 `json:"id"`
}

// Severity represents the backend "gravidade" enum.
type Severity string

const (
	SeverityLow    Severity = "BAIXA"
	SeverityMedium Severity = "MEDIA"
	SeverityHigh   Severity = "ALTA"
)

// Valid returns true if the severity is one of the backend values.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// ParseSeverity maps a label, case-insensitively, to a Severity.
// The registration form labels (baixa, media, média, alta) are accepted too.
func ParseSeverity(v string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "baixa", "low":
		return SeverityLow, nil
	case "media", "média", "medium":
		return SeverityMedium, nil
	case "alta", "high":
		return SeverityHigh, nil
	default:
		return "", fmt.Errorf("invalid severity %q: must be one of: BAIXA, MEDIA, ALTA", v)
	}
}

// SeverityPtr returns a pointer to s.
func SeverityPtr(s Severity) *Severity { return &s }

// CreateIncidentRequest carries the fields a user fills in when registering an incident.
type CreateIncidentRequest struct {
	Name        string    `json:"nome"`
	Description string    `json:"descricao"`
	Latitude    string    `json:"latitude"`
	Longitude   string    `json:"longitude"`
	Severity    *Severity `json:"gravidade"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
}

// Normalize trims the request fields.
func (r *CreateIncidentRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Latitude = strings.TrimSpace(r.Latitude)
	r.Longitude = strings.TrimSpace(r.Longitude)
	if r.ImageURL != nil {
		trimmed := strings.TrimSpace(*r.ImageURL)
		if trimmed == "" {
			r.ImageURL = nil
		} else {
			r.ImageURL = &trimmed
		}
	}
}

// Validate validates the CreateIncidentRequest fields.
func (r *CreateIncidentRequest) Validate() error {
	if r.Name == "" {
		return errors.New("nome is required and cannot be empty")
	}
	if utf8.RuneCountInString(r.Name) > 255 {
		return errors.New("nome cannot exceed 255 characters")
	}
	if r.Description == "" {
		return errors.New("descricao is required and cannot be empty")
	}
	// The registration form stores the place name in latitude.
	if r.Latitude == "" {
		return errors.New("latitude is required and cannot be empty")
	}
	if r.Severity != nil && !r.Severity.Valid() {
		return errors.New("gravidade must be one of: BAIXA, MEDIA, ALTA")
	}
	return nil
}

// Incident builds the wire incident for this request, attributed to creatorID.
func (r *CreateIncidentRequest) Incident(creatorID int64) Incident {
	inc := Incident{
		Name:        r.Name,
		Description: r.Description,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Severity:    r.Severity,
		ImageURL:    r.ImageURL,
	}
	if creatorID > 0 {
		inc.Creator = &CreatorRef{ID: creatorID}
	}
	return inc
}

// IncidentStatus filters incidents by resolution state.
type IncidentStatus string

const (
	IncidentStatusAll      IncidentStatus = "all"
	IncidentStatusResolved IncidentStatus = "resolved"
	IncidentStatusPending  IncidentStatus = "pending"
)

// Valid returns true if the status filter is supported.
func (s IncidentStatus) Valid() bool {
	switch s {
	case IncidentStatusAll, IncidentStatusResolved, IncidentStatusPending:
		return true
	default:
		return false
	}
}

// IncidentFilter narrows an incident list the way the admin listing and history pages do.
type IncidentFilter struct {
	Status   IncidentStatus
	Severity *Severity
	// From and To bound the creation date, inclusive, compared by UTC calendar day.
	// A zero value leaves that side open.
	From time.Time
	To   time.Time
}

// Match reports whether inc passes the filter. A zero filter matches everything.
func (f IncidentFilter) Match(inc Incident) bool {
	switch f.Status {
	case IncidentStatusResolved:
		if !inc.Resolved {
			return false
		}
	case IncidentStatusPending:
		if inc.Resolved {
			return false
		}
	case IncidentStatusAll, "":
	}
	if f.Severity != nil {
		if inc.Severity == nil || *inc.Severity != *f.Severity {
			return false
		}
	}
	if f.From.IsZero() && f.To.IsZero() {
		return true
	}
	if inc.CreatedAt == nil {
		return false
	}
	day := inc.CreatedAt.UTC().Format(time.DateOnly)
	if !f.From.IsZero() && day < f.From.UTC().Format(time.DateOnly) {
		return false
	}
	if !f.To.IsZero() && day > f.To.UTC().Format(time.DateOnly) {
		return false
	}
	return true
}

// Apply returns the incidents that match the filter, preserving order.
func (f IncidentFilter) Apply(in []Incident) []Incident {
	out := make([]Incident, 0, len(in))
	for _, inc := range in {
		if f.Match(inc) {
			out = append(out, inc)
		}
	}
	return out
}

// IncidentStats summarizes a list of incidents.
type IncidentStats struct {
	Total    int `json:"total"`
	Resolved int `json:"resolved"`
	Pending  int `json:"pending"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// ComputeIncidentStats tallies resolution state and severity.
func ComputeIncidentStats(in []Incident) IncidentStats {
	var s IncidentStats
	for _, inc := range in {
		s.Total++
		if inc.Resolved {
			s.Resolved++
		} else {
			s.Pending++
		}
		if inc.Severity == nil {
			continue
		}
		switch *inc.Severity {
		case SeverityHigh:
			s.High++
		case SeverityMedium:
			s.Medium++
		case SeverityLow:
			s.Low++
		}
	}
	return s
}
