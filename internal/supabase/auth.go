package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/golang-jwt/jwt/v4"

	"tunedeck/internal/backend"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// authResponse covers both shapes GoTrue returns: a session (token plus
// embedded user) on sign-in, and a bare user object on sign-up when email
// confirmation is pending.
type authResponse struct {
	AccessToken string    `json:"access_token"`
	User        *authUser `json:"user"`
	authUser
}

// SignIn authenticates with email and password and returns the identity
// record.
func (c *Client) SignIn(ctx context.Context, email, password string) (*backend.Identity, error) {
	res, err := c.authRequest(ctx, "/auth/v1/token", url.Values{"grant_type": {"password"}}, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	return c.identityFrom(res)
}

// SignUp registers a new identity record.
func (c *Client) SignUp(ctx context.Context, email, password string) (*backend.Identity, error) {
	res, err := c.authRequest(ctx, "/auth/v1/signup", nil, email, password)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	return c.identityFrom(res)
}

func (c *Client) authRequest(ctx context.Context, path string, query url.Values, email, password string) (*authResponse, error) {
	payload, err := json.Marshal(credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, query, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	var res authResponse
	if err := decodeBody(resp, &res); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	return &res, nil
}

// identityFrom normalizes an auth response into an Identity. When a token
// is present its subject is the authoritative id: with a configured JWT
// secret the token is signature-checked and cross-checked against the
// reported user, otherwise the claims fill whatever the response omitted.
func (c *Client) identityFrom(res *authResponse) (*backend.Identity, error) {
	identity := &backend.Identity{ID: res.ID, Email: res.Email}
	if res.User != nil {
		identity.ID = res.User.ID
		identity.Email = res.User.Email
	}

	if res.AccessToken != "" {
		claims, err := c.tokenClaims(res.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("access token: %w", err)
		}
		sub, _ := claims["sub"].(string)
		if identity.ID == "" {
			identity.ID = sub
		} else if sub != "" && sub != identity.ID {
			return nil, fmt.Errorf("access token subject %q does not match user id %q", sub, identity.ID)
		}
		if identity.Email == "" {
			identity.Email, _ = claims["email"].(string)
		}
	}

	if identity.ID == "" {
		return nil, fmt.Errorf("auth response carries no user id")
	}
	return identity, nil
}

func (c *Client) tokenClaims(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if c.jwtSecret == "" {
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, err
		}
		return claims, nil
	}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", token.Method.Alg())
		}
		return []byte(c.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}
