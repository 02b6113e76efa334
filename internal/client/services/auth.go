// Package services contains application services for the portal client.
// This file defines the authentication service: login, registration,
// session restore and password management.
package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dmitrijs2005/confportal/internal/client/claims"
	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/client/session"
	"github.com/dmitrijs2005/confportal/internal/common"
	"github.com/dmitrijs2005/confportal/internal/logging"
)

// MinPasswordLength is the shortest password accepted by the forms.
const MinPasswordLength = 6

// AuthAPI is the part of the backend client used for authentication.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, r models.Registration) (string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, newPassword string) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login / Register: validate, call the backend, persist the session and
//     return the identity to show.
//   - Restore: read the persisted session without contacting the backend.
//   - ChangePassword / ForgotPassword / ResetPassword: validate then call.
//
// Validation failures match common.ErrValidation and never reach the network.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, f RegisterForm) (string, error)
	Restore(ctx context.Context) (session.Snapshot, error)
	ChangePassword(ctx context.Context, newPassword, confirm string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword, confirm string) error
}

type RegisterForm struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Confirm   string
}

type authService struct {
	api   AuthAPI
	store *session.Store
	log   logging.Logger
}

func NewAuthService(api AuthAPI, store *session.Store, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{api: api, store: store, log: log}
}

// ValidatePassword checks length and confirmation.
func ValidatePassword(password, confirm string) error {
	if password == "" {
		return common.Required("password")
	}
	if len(password) < MinPasswordLength {
		return common.Invalid("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	if password != confirm {
		return common.Invalid("confirm", "passwords do not match")
	}
	return nil
}

func validateEmail(email string) error {
	if common.Blank(email) {
		return common.Required("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return common.Invalid("email", "is not a valid address")
	}
	return nil
}

func (a *authService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if common.Blank(email) {
		return "", common.Required("email")
	}
	if password == "" {
		return "", common.Required("password")
	}

	tok, err := a.api.Login(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if err := a.store.Save(ctx, tok, email); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	c, _ := claims.Decode(tok)
	if err := a.store.SaveDisplayName(ctx, claims.DisplayName(c, email)); err != nil {
		a.log.Warn(ctx, "save display name", "err", err)
	}
	a.log.Info(ctx, "logged in", "email", email)
	return email, nil
}

func (a *authService) Register(ctx context.Context, f RegisterForm) (string, error) {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	switch {
	case f.FirstName == "":
		return "", common.Required("firstName")
	case f.LastName == "":
		return "", common.Required("lastName")
	}
	if err := validateEmail(f.Email); err != nil {
		return "", err
	}
	if err := ValidatePassword(f.Password, f.Confirm); err != nil {
		return "", err
	}

	tok, err := a.api.Register(ctx, models.Registration{
		Email:     f.Email,
		Password:  f.Password,
		FirstName: f.FirstName,
		LastName:  f.LastName,
	})
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	if err := a.store.Save(ctx, tok, f.Email); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	if err := a.store.SaveDisplayName(ctx, f.FirstName+" "+f.LastName); err != nil {
		a.log.Warn(ctx, "save display name", "err", err)
	}
	a.log.Info(ctx, "registered", "email", f.Email)
	return f.Email, nil
}

func (a *authService) Restore(ctx context.Context) (session.Snapshot, error) {
	return a.store.Load(ctx)
}

func (a *authService) ChangePassword(ctx context.Context, newPassword, confirm string) error {
	if err := ValidatePassword(newPassword, confirm); err != nil {
		return err
	}
	if err := a.api.ChangePassword(ctx, newPassword); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := a.api.ForgotPassword(ctx, email); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

func (a *authService) ResetPassword(ctx context.Context, token, newPassword, confirm string) error {
	if common.Blank(token) {
		return common.Required("token")
	}
	if err := ValidatePassword(newPassword, confirm); err != nil {
		return err
	}
	if err := a.api.ResetPassword(ctx, strings.TrimSpace(token), newPassword); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}
