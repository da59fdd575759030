package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	domainauth "github.com/target/incident-portal/internal/domain/auth"
)

// Login exchanges credentials for a bearer token and the user's identity.
func (c *Client) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.LoginResult, error) {
	var res domainauth.LoginResult
	if err := c.do(ctx, http.MethodPost, "/login", "", creds, &res); err != nil {
		return domainauth.LoginResult{}, err
	}
	if res.Token == "" {
		return domainauth.LoginResult{}, errors.New("login response has no token")
	}
	return res, nil
}

// CurrentUser returns the identity behind token. Concurrent calls for the same
// token share one backend request.
func (c *Client) CurrentUser(ctx context.Context, token string) (domainauth.Identity, error) {
	v, err, _ := c.me.Do(token, func() (any, error) {
		// The call is shared; one caller giving up must not fail the others.
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		var id domainauth.Identity
		if err := c.do(shared, http.MethodGet, "/usuarios/me", token, nil, &id); err != nil {
			return domainauth.Identity{}, err
		}
		return id, nil
	})
	if err != nil {
		return domainauth.Identity{}, err
	}
	return v.(domainauth.Identity), nil
}

// GetUser returns the raw user record.
func (c *Client) GetUser(ctx context.Context, token string, id int64) (domainauth.UserDocument, error) {
	var doc domainauth.UserDocument
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/usuarios/%d", id), token, nil, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = domainauth.UserDocument{}
	}
	return doc, nil
}

// UpdateUser replaces the user record and returns the updated identity.
func (c *Client) UpdateUser(ctx context.Context, token string, id int64, doc domainauth.UserDocument) (domainauth.Identity, error) {
	var out domainauth.Identity
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/usuarios/%d", id), token, doc, &out); err != nil {
		return domainauth.Identity{}, err
	}
	return out, nil
}
