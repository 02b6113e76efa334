package screens

import (
	"context"

	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/client/nav"
)

// SubmissionsScreen lists what the author has submitted so far.
type SubmissionsScreen struct {
	d    *Deps
	m    mounted
	home latest[models.Home]
}

func NewSubmissionsScreen(d *Deps) *SubmissionsScreen { return &SubmissionsScreen{d: d} }

func (s *SubmissionsScreen) Home() models.Home { return s.home.get() }

func (s *SubmissionsScreen) Reset() { s.home.reset() }

func (s *SubmissionsScreen) Mount(ctx context.Context, t nav.Ticket) error {
	s.m.set(t)
	s.Reset()
	h, err := s.d.API.Home(ctx)
	if err != nil {
		return s.d.fail(ctx, t, err, "Failed to load submissions")
	}
	return s.home.apply(t, *h)
}

// Download saves a file of one of the listed papers.
func (s *SubmissionsScreen) Download(ctx context.Context, fileID int64) (string, error) {
	return download(ctx, s.d, s.m.ticket(), fileID)
}

// ProfileScreen shows the account address as the backend knows it.
type ProfileScreen struct {
	d     *Deps
	m     mounted
	email latest[string]
}

func NewProfileScreen(d *Deps) *ProfileScreen { return &ProfileScreen{d: d} }

func (s *ProfileScreen) Email() string { return s.email.get() }

func (s *ProfileScreen) Reset() { s.email.reset() }

func (s *ProfileScreen) Mount(ctx context.Context, t nav.Ticket) error {
	s.m.set(t)
	s.Reset()
	email, err := s.d.API.Me(ctx)
	if err != nil {
		return s.d.fail(ctx, t, err, "Failed to load profile")
	}
	return s.email.apply(t, email)
}

// PasswordScreen changes the password of the logged-in account.
type PasswordScreen struct {
	d *Deps
	m mounted
}

func NewPasswordScreen(d *Deps) *PasswordScreen { return &PasswordScreen{d: d} }

func (s *PasswordScreen) Mount(_ context.Context, t nav.Ticket) error {
	s.m.set(t)
	return nil
}

func (s *PasswordScreen) Change(ctx context.Context, password, confirm string) error {
	t := s.m.ticket()
	if err := s.d.Auth.ChangePassword(ctx, password, confirm); err != nil {
		return s.d.fail(ctx, t, err, "Failed to change password")
	}
	s.d.info(t, "Password updated.")
	return nil
}
