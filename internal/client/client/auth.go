package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/confportal/internal/client/models"
)

var errNoToken = errors.New("backend answered without an access token")

func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp models.TokenResponse
	if err := c.Do(ctx, http.MethodPost, "/api/auth/login", nil, models.Credentials{Email: email, Password: password}, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", errNoToken
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) Register(ctx context.Context, r models.Registration) (string, error) {
	var resp models.TokenResponse
	if err := c.Do(ctx, http.MethodPost, "/api/auth/register", nil, r, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", errNoToken
	}
	return resp.AccessToken, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) error {
	return c.Do(ctx, http.MethodPost, "/api/auth/forgot-password", nil, map[string]string{"email": email}, nil)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return c.Do(ctx, http.MethodPost, "/api/auth/reset-password", nil, body, nil)
}
