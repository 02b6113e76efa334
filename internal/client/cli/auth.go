package cli

import (
	"context"

	"github.com/dmitrijs2005/confportal/internal/client/services"
)

func (a *App) loginCommands() []command {
	return []command{
		{name: "login", summary: "log in with email and password", run: a.cmdLogin},
		{name: "forgot", summary: "request a password reset token", run: a.cmdForgot},
		{name: "reset", summary: "set a new password with a reset token", run: a.cmdReset},
	}
}

func (a *App) registerCommands() []command {
	return []command{
		{name: "register", summary: "create an account", run: a.cmdRegister},
	}
}

func (a *App) cmdLogin(ctx context.Context, _ []string) error {
	email, err := GetSimpleText(a.in, "Email", a.out)
	if err != nil {
		return err
	}
	pw, err := GetPassword(a.in, "Password", a.out)
	if err != nil {
		return err
	}
	_, err = a.auth.Login(ctx, email, pw)
	return err
}

func (a *App) cmdRegister(ctx context.Context, _ []string) error {
	var f services.RegisterForm
	if err := a.readRegisterForm(&f); err != nil {
		return err
	}
	_, err := a.auth.Register(ctx, f)
	return err
}

func (a *App) readRegisterForm(f *services.RegisterForm) error {
	fields := []struct {
		prompt string
		dst    *string
		secret bool
	}{
		{"First name", &f.FirstName, false},
		{"Last name", &f.LastName, false},
		{"Email", &f.Email, false},
		{"Password", &f.Password, true},
		{"Confirm password", &f.Confirm, true},
	}
	for _, fl := range fields {
		read := GetSimpleText
		if fl.secret {
			read = GetPassword
		}
		v, err := read(a.in, fl.prompt, a.out)
		if err != nil {
			return err
		}
		*fl.dst = v
	}
	return nil
}

func (a *App) cmdForgot(ctx context.Context, _ []string) error {
	email, err := GetSimpleText(a.in, "Email", a.out)
	if err != nil {
		return err
	}
	return a.auth.ForgotPassword(ctx, email)
}

func (a *App) cmdReset(ctx context.Context, _ []string) error {
	token, err := GetSimpleText(a.in, "Reset token", a.out)
	if err != nil {
		return err
	}
	pw, confirm, err := a.readNewPassword()
	if err != nil {
		return err
	}
	return a.auth.ResetPassword(ctx, token, pw, confirm)
}

func (a *App) readNewPassword() (string, string, error) {
	pw, err := GetPassword(a.in, "New password", a.out)
	if err != nil {
		return "", "", err
	}
	confirm, err := GetPassword(a.in, "Confirm password", a.out)
	if err != nil {
		return "", "", err
	}
	return pw, confirm, nil
}
