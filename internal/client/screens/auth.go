package screens

import (
	"context"

	"github.com/dmitrijs2005/confportal/internal/client/nav"
	"github.com/dmitrijs2005/confportal/internal/client/services"
)

// AuthScreen backs the login and register views, including the forgot and
// reset password forms of the login view.
type AuthScreen struct {
	d *Deps
	m mounted
}

func NewAuthScreen(d *Deps) *AuthScreen { return &AuthScreen{d: d} }

func (s *AuthScreen) Mount(_ context.Context, t nav.Ticket) error {
	s.m.set(t)
	return nil
}

// enter lands an authenticated session on the dashboard and starts the role
// probes in the background.
func (s *AuthScreen) enter(ctx context.Context, identity string) nav.Ticket {
	t := s.d.Nav.Login(identity)
	s.d.StartRoleProbes(ctx)
	return t
}

// Login and Register may replace a live session; the previous user's role
// verdicts are dropped before the new token is stored.
func (s *AuthScreen) Login(ctx context.Context, email, password string) (nav.Ticket, error) {
	t := s.m.ticket()
	s.d.Roles.Reset()
	identity, err := s.d.Auth.Login(ctx, email, password)
	if err != nil {
		return t, s.d.fail(ctx, t, err, "Login failed. Check your email and password.")
	}
	return s.enter(ctx, identity), nil
}

func (s *AuthScreen) Register(ctx context.Context, f services.RegisterForm) (nav.Ticket, error) {
	t := s.m.ticket()
	s.d.Roles.Reset()
	identity, err := s.d.Auth.Register(ctx, f)
	if err != nil {
		return t, s.d.fail(ctx, t, err, "Registration failed.")
	}
	return s.enter(ctx, identity), nil
}

func (s *AuthScreen) ForgotPassword(ctx context.Context, email string) error {
	t := s.m.ticket()
	if err := s.d.Auth.ForgotPassword(ctx, email); err != nil {
		return s.d.fail(ctx, t, err, "Could not request a password reset.")
	}
	s.d.info(t, "If the address is registered, a reset token has been sent.")
	return nil
}

func (s *AuthScreen) ResetPassword(ctx context.Context, token, password, confirm string) error {
	t := s.m.ticket()
	if err := s.d.Auth.ResetPassword(ctx, token, password, confirm); err != nil {
		return s.d.fail(ctx, t, err, "Password reset failed.")
	}
	s.d.info(t, "Password has been reset. You can log in now.")
	return nil
}
