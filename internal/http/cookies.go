package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/target/incident-portal/internal/domain/auth"
)

// Cookie names shared by the login proxy and the edge guard.
const (
	TokenCookie = "token"
	UserCookie  = "user"
)

// SessionCookieMaxAge matches the backend token lifetime (8 hours).
const SessionCookieMaxAge = 8 * 60 * 60

// CookieConfig controls the attributes of the session cookies.
type CookieConfig struct {
	Domain string
	// Secure forces the Secure attribute; it is also set for TLS or X-Forwarded-Proto: https requests.
	Secure bool
}

func (c CookieConfig) secure(r *http.Request) bool {
	return c.Secure || r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// setSessionCookies writes the token cookie and the identity snapshot cookie.
func (c CookieConfig) setSessionCookies(w http.ResponseWriter, r *http.Request, res domainauth.LoginResult) error {
	snapshot, err := EncodeIdentityCookie(res.Identity)
	if err != nil {
		return err
	}
	secure := c.secure(r)
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    res.Token,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   SessionCookieMaxAge,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     UserCookie,
		Value:    snapshot,
		Path:     "/",
		Domain:   c.Domain,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   SessionCookieMaxAge,
	})
	return nil
}

// clearSessionCookies expires both session cookies, mirroring the attributes used to set them.
func (c CookieConfig) clearSessionCookies(w http.ResponseWriter, r *http.Request) {
	secure := c.secure(r)
	for _, name := range []string{TokenCookie, UserCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   c.Domain,
			HttpOnly: name == TokenCookie,
			Secure:   secure,
			MaxAge:   -1,
			Expires:  time.Unix(0, 0).UTC(),
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// EncodeIdentityCookie serializes an identity snapshot for the user cookie.
func EncodeIdentityCookie(id domainauth.Identity) (string, error) {
	data, err := json.Marshal(id)
	if err != nil {
		return "", fmt.Errorf("marshal identity snapshot: %w", err)
	}
	return url.QueryEscape(string(data)), nil
}

// ErrMalformedSnapshot is returned when the user cookie cannot be decoded.
var ErrMalformedSnapshot = errors.New("malformed identity cookie")

// cookieIdentity shadows Identity.Role so an unknown role does not fail the whole decode.
type cookieIdentity struct {
	domainauth.Identity
	Role string `json:"cargo"`
}

// DecodeIdentityCookie parses a user cookie value. A well-formed snapshot whose role is not
// one of the known roles decodes to an identity with no role, which is never privileged;
// in that case the returned error wraps *domainauth.UnknownRoleError alongside the identity.
func DecodeIdentityCookie(raw string) (*domainauth.Identity, error) {
	if raw == "" {
		return nil, nil
	}
	unescaped, err := url.QueryUnescape(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	var c cookieIdentity
	if err := json.Unmarshal([]byte(unescaped), &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	id := c.Identity
	if c.Role == "" {
		id.Role = ""
		return &id, nil
	}
	role, err := domainauth.ParseRole(c.Role)
	if err != nil {
		id.Role = ""
		return &id, err
	}
	id.Role = role
	return &id, nil
}

// readSessionCookies reports token presence and the decoded snapshot.
func readSessionCookies(r *http.Request) (hasToken bool, snapshot *domainauth.Identity, err error) {
	if c, cErr := r.Cookie(TokenCookie); cErr == nil && c.Value != "" {
		hasToken = true
	}
	c, cErr := r.Cookie(UserCookie)
	if cErr != nil {
		return hasToken, nil, nil
	}
	snapshot, err = DecodeIdentityCookie(c.Value)
	return hasToken, snapshot, err
}
