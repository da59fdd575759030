// Package auth contains domain-level types for identities, roles and route access.
// It is pure and free of framework/adapter concerns.
package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Role represents an application's authorization role.
// The string form is the backend wire label ("cargo").
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleUser     Role = "USER"
	RoleOperator Role = "OPERATOR"
)

// Roles returns every valid role in declaration order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleUser, RoleOperator}
}

// PrivilegedRoles returns the roles that grant admin-area access.
func PrivilegedRoles() []Role {
	return []Role{RoleAdmin, RoleManager}
}

// UnknownRoleError is returned when a wire value is not one of the closed set of roles.
type UnknownRoleError struct {
	Value string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown role %q (valid options: ADMIN, MANAGER, USER, OPERATOR)", e.Value)
}

// ParseRole parses a wire label into a Role. Matching is exact; unknown labels are rejected.
func ParseRole(s string) (Role, error) {
	r := Role(strings.TrimSpace(s))
	if r.Valid() {
		return r, nil
	}
	return "", &UnknownRoleError{Value: s}
}

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser, RoleOperator:
		return true
	default:
		return false
	}
}

// IsPrivileged reports whether r grants access to admin routes.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleManager
}

// String implements fmt.Stringer.
func (r Role) String() string { return string(r) }

// UnmarshalText implements encoding.TextUnmarshaler.
// An empty value decodes to the zero Role, which is never privileged.
func (r *Role) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*r = ""
		return nil
	}
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r), nil
}

// Identity is the authenticated principal as returned by the backend login endpoint.
// JSON field names follow the backend wire format.
type Identity struct {
	ID        int64  `json:"id"`
	Name      string `json:"nome"`
	Email     string `json:"email"`
	TaxID     string `json:"cpf,omitempty"`
	Phone     string `json:"telefone,omitempty"`
	Role      Role   `json:"cargo,omitempty"`
	Sector    string `json:"setor,omitempty"`
	AddressID int64  `json:"endereco_id,omitempty"`
}

// IsPrivileged reports whether the identity may enter admin routes.
// A nil identity or one without a role is never privileged.
func (i *Identity) IsPrivileged() bool {
	if i == nil {
		return false
	}
	return i.Role.IsPrivileged()
}

// HasRole reports whether the identity's role is one of allowed.
func (i *Identity) HasRole(allowed ...Role) bool {
	if i == nil || i.Role == "" {
		return false
	}
	for _, r := range allowed {
		if r == i.Role {
			return true
		}
	}
	return false
}

// WithProfile returns a copy of the identity with only name and email replaced.
func (i Identity) WithProfile(name, email string) Identity {
	i.Name = name
	i.Email = email
	return i
}

// LoginResult is the backend response to a successful login.
type LoginResult struct {
	Token     string   `json:"token"`
	TokenType string   `json:"tipo"`
	Identity  Identity `json:"usuario"`
}

// Credentials is the backend login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

// UserDocument is a user record as returned by the backend, kept opaque so
// that a read-modify-write cycle preserves fields this module does not model.
type UserDocument map[string]any

// UnmarshalJSON keeps numbers as json.Number so ids and other integers
// round-trip exactly instead of passing through float64.
func (d *UserDocument) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}
	*d = m
	return nil
}

// WithPassword returns a shallow copy of the document with "senha" set.
func (d UserDocument) WithPassword(password string) UserDocument {
	out := make(UserDocument, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	out["senha"] = password
	return out
}
