package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"blogdeck/internal/models"
)

// Signup creates an account and stores the returned token
func (c *Client) Signup(ctx context.Context, in models.SignupInput) error {
	const op = "signup"
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return validationError(op, "Name, email and password are required")
	}
	return c.authenticate(ctx, op, "/api/v1/user/signup", in)
}

// Signin authenticates and stores the returned token
func (c *Client) Signin(ctx context.Context, in models.SigninInput) error {
	const op = "signin"
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return validationError(op, "Email and password are required")
	}
	return c.authenticate(ctx, op, "/api/v1/user/signin", in)
}

func (c *Client) authenticate(ctx context.Context, op, path string, body any) error {
	var resp models.AuthResponse
	err := c.do(ctx, request{op: op, method: http.MethodPost, path: path, body: body}, &resp)
	if err != nil {
		return err
	}
	if strings.TrimSpace(resp.JWT) == "" {
		return &Error{Kind: KindAuth, Op: op, Message: "no token in response"}
	}
	if err := c.session.Set(resp.JWT); err != nil {
		return fmt.Errorf("%s: store token: %w", op, err)
	}
	return nil
}

// Signout forgets the stored token
func (c *Client) Signout() error {
	return c.session.Clear()
}

// CurrentUser returns the signed-in user's profile
func (c *Client) CurrentUser(ctx context.Context) (*models.UserProfile, error) {
	const op = "current user"
	var resp struct {
		ID   *string `json:"id"`
		Name *string `json:"name"`
		Bio  *string `json:"bio"`
	}
	err := c.do(ctx, request{op: op, method: http.MethodGet, path: "/api/v1/user/details", auth: true}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.ID == nil || resp.Name == nil {
		return nil, partialDataError(op, "user details missing id or name")
	}
	return &models.UserProfile{ID: *resp.ID, Name: *resp.Name, Bio: deref(resp.Bio)}, nil
}

// Author returns the public profile of any user
func (c *Client) Author(ctx context.Context, userID string) (*models.AuthorProfile, error) {
	const op = "author details"
	if strings.TrimSpace(userID) == "" {
		return nil, validationError(op, "user id is required")
	}
	var resp struct {
		Name *string `json:"name"`
		Bio  *string `json:"bio"`
	}
	path := "/api/v1/user/" + escapeID(userID) + "/details"
	if err := c.do(ctx, request{op: op, method: http.MethodGet, path: path}, &resp); err != nil {
		return nil, err
	}
	if resp.Name == nil {
		return nil, partialDataError(op, "author details missing name")
	}
	return &models.AuthorProfile{Name: *resp.Name, Bio: deref(resp.Bio)}, nil
}

// UpdateBio replaces the signed-in user's bio
func (c *Client) UpdateBio(ctx context.Context, bio string) error {
	return c.do(ctx, request{
		op:     "update bio",
		method: http.MethodPut,
		path:   "/api/v1/user/bio",
		body:   models.UpdateBioInput{Bio: bio},
		auth:   true,
	}, nil)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
