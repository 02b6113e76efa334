package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/confportal/internal/client/models"
)

// Me returns the email of the authenticated user.
func (c *HTTPClient) Me(ctx context.Context) (string, error) {
	var email string
	if err := c.Do(ctx, http.MethodGet, "/api/me", nil, nil, &email); err != nil {
		return "", err
	}
	return email, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, newPassword string) error {
	return c.Do(ctx, http.MethodPut, "/api/me/password", nil, map[string]string{"newPassword": newPassword}, nil)
}

func (c *HTTPClient) Home(ctx context.Context) (*models.Home, error) {
	var h models.Home
	if err := c.Do(ctx, http.MethodGet, "/api/home", nil, nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
