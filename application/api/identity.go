package api

import (
	"context"
	"net/http"
	"net/url"

	"sayitloud/domain/entities"
	"sayitloud/infrastructure/transport"
)

// Signup registers a new identity. POST /auth/signup
func (c *Client) Signup(ctx context.Context, args SignupArgs) (*entities.AuthenticatedUser, error) {
	if err := c.checkArgs(args); err != nil {
		return nil, err
	}
	return do[*entities.AuthenticatedUser](ctx, c, http.MethodPost, "/auth/signup", args, transport.EncodingJSON)
}

// Login authenticates an existing identity. POST /auth/login
func (c *Client) Login(ctx context.Context, args LoginArgs) (*entities.AuthenticatedUser, error) {
	if err := c.checkArgs(args); err != nil {
		return nil, err
	}
	return do[*entities.AuthenticatedUser](ctx, c, http.MethodPost, "/auth/login", args, transport.EncodingJSON)
}

// Profile fetches the authenticated identity's own profile. GET /auth/profile
func (c *Client) Profile(ctx context.Context) (*entities.AuthenticatedUser, error) {
	return do[*entities.AuthenticatedUser](ctx, c, http.MethodGet, "/auth/profile", nil, transport.EncodingJSON)
}

// SearchUsers searches identities by username prefix. GET /auth/search?username=
func (c *Client) SearchUsers(ctx context.Context, query string) ([]entities.User, error) {
	if err := requireID("search query", query); err != nil {
		return nil, err
	}
	path := "/auth/search?username=" + url.QueryEscape(query)
	return do[[]entities.User](ctx, c, http.MethodGet, path, nil, transport.EncodingJSON)
}

// SuggestedUsers fetches follow suggestions. GET /auth/suggested
func (c *Client) SuggestedUsers(ctx context.Context) ([]entities.User, error) {
	return do[[]entities.User](ctx, c, http.MethodGet, "/auth/suggested", nil, transport.EncodingJSON)
}

// UserByID fetches a public identity. GET /auth/:id
func (c *Client) UserByID(ctx context.Context, userID string) (*entities.User, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	return do[*entities.User](ctx, c, http.MethodGet, "/auth/"+url.PathEscape(userID), nil, transport.EncodingJSON)
}

// Follow follows a user and returns the updated authenticated identity.
// PUT /auth/follow/:id
func (c *Client) Follow(ctx context.Context, userID string) (*entities.AuthenticatedUser, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	return do[*entities.AuthenticatedUser](ctx, c, http.MethodPut, "/auth/follow/"+url.PathEscape(userID), nil, transport.EncodingJSON)
}

// Unfollow unfollows a user and returns the updated authenticated identity.
// PUT /auth/unfollow/:id
func (c *Client) Unfollow(ctx context.Context, userID string) (*entities.AuthenticatedUser, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	return do[*entities.AuthenticatedUser](ctx, c, http.MethodPut, "/auth/unfollow/"+url.PathEscape(userID), nil, transport.EncodingJSON)
}

// UpdateProfilePicture replaces the profile picture. PUT /auth/profile/picture
func (c *Client) UpdateProfilePicture(ctx context.Context, image *Upload) (*entities.User, error) {
	if image == nil {
		return nil, requireID("image", "")
	}
	if err := image.validate(); err != nil {
		return nil, err
	}
	body := transport.NewMultipartBody(nil).
		WithFile("profilePicture", image.FileName, image.ContentType, image.Reader)
	return do[*entities.User](ctx, c, http.MethodPut, "/auth/profile/picture", body, transport.EncodingMultipart)
}
