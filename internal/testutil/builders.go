package testutil

import (
	domainauth "github.com/target/incident-portal/internal/domain/auth"
	"github.com/target/incident-portal/internal/domain/model"
)

// IdentityBuilder provides a fluent interface for building identities for testing.
type IdentityBuilder struct {
	id domainauth.Identity
}

// NewIdentity creates an IdentityBuilder with sensible defaults (a USER).
func NewIdentity() *IdentityBuilder {
	return &IdentityBuilder{
		id: domainauth.Identity{
			ID:        1,
			Name:      "Maria Silva",
			Email:     "maria@example.com",
			TaxID:     "123.456.789-00",
			Phone:     "11999990000",
			Role:      domainauth.RoleUser,
			Sector:    "Manutenção",
			AddressID: 10,
		},
	}
}

// WithID sets the identity id.
func (b *IdentityBuilder) WithID(id int64) *IdentityBuilder {
	b.id.ID = id
	return b
}

// WithRole sets the identity role.
func (b *IdentityBuilder) WithRole(r domainauth.Role) *IdentityBuilder {
	b.id.Role = r
	return b
}

// WithEmail sets the identity email.
func (b *IdentityBuilder) WithEmail(email string) *IdentityBuilder {
	b.id.Email = email
	return b
}

// WithName sets the identity display name.
func (b *IdentityBuilder) WithName(name string) *IdentityBuilder {
	b.id.Name = name
	return b
}

// Build returns a copy of the identity.
func (b *IdentityBuilder) Build() domainauth.Identity {
	return b.id
}

// Ptr returns a pointer to a copy of the identity.
func (b *IdentityBuilder) Ptr() *domainauth.Identity {
	id := b.id
	return &id
}

// LoginResult wraps the identity in a backend login response carrying token.
func (b *IdentityBuilder) LoginResult(token string) domainauth.LoginResult {
	return domainauth.LoginResult{Token: token, TokenType: "Bearer", Identity: b.id}
}

// AdminIdentity returns a privileged identity.
func AdminIdentity() domainauth.Identity {
	return NewIdentity().WithID(99).WithName("Admin").WithEmail("admin@example.com").
		WithRole(domainauth.RoleAdmin).Build()
}

// NewIncident returns a pending incident with the given id and severity.
func NewIncident(id int64, sev model.Severity) model.Incident {
	return model.Incident{
		ID:          id,
		Name:        "Vazamento",
		Description: "Vazamento no corredor",
		Latitude:    "Bloco B",
		Longitude:   "",
		Severity:    model.SeverityPtr(sev),
		Creator:     &model.CreatorRef{ID: 1},
	}
}

// ResolvedIncident returns a resolved incident with the given id and severity.
func ResolvedIncident(id int64, sev model.Severity) model.Incident {
	inc := NewIncident(id, sev)
	inc.Resolved = true
	return inc
}
