package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/confportal/internal/client/nav"
)

type command struct {
	name    string
	args    string
	summary string
	minArgs int
	run     func(ctx context.Context, args []string) error
}

func (c command) usage() string {
	if c.args == "" {
		return c.name
	}
	return c.name + " " + c.args
}

func (a *App) global() []command {
	return []command{
		{name: "go", args: "<view>", summary: "switch view: " + viewList(), minArgs: 1, run: a.cmdGo},
		{name: "show", summary: "reload and show the current view", run: a.cmdShow},
		{name: "roles", summary: "re-check admin and reviewer access", run: a.cmdRoles},
		{name: "logout", summary: "log out and clear the session", run: a.cmdLogout},
	}
}

func viewList() string {
	names := make([]string, 0, len(nav.Views()))
	for _, v := range nav.Views() {
		names = append(names, v.String())
	}
	return strings.Join(names, ", ")
}

func (a *App) buildCommands() map[nav.View][]command {
	return map[nav.View][]command{
		nav.Login:        a.loginCommands(),
		nav.Register:     a.registerCommands(),
		nav.Dashboard:    a.dashboardCommands(),
		nav.Paper:        a.paperCommands(),
		nav.Contribution: a.contributionCommands(),
		nav.CameraReady:  a.cameraReadyCommands(),
		nav.Submissions:  a.submissionsCommands(),
		nav.Profile:      nil,
		nav.Password:     a.passwordCommands(),
		nav.Reviewer:     a.reviewerCommands(),
		nav.Admin:        a.adminCommands(),
	}
}

// available lists the commands of the mounted view followed by the global ones.
func (a *App) available() []command {
	return append(slices.Clone(a.commands[a.view]), a.global()...)
}

func (a *App) help() []string {
	cmds := a.available()
	out := make([]string, 0, len(cmds)+1)
	for _, c := range cmds {
		out = append(out, fmt.Sprintf("%-28s %s", c.usage(), c.summary))
	}
	return append(out, fmt.Sprintf("%-28s %s", "exit", "leave the program"))
}

// exec runs cmd in the current view and mounts whatever view the command
// left the user on.
func (a *App) exec(ctx context.Context, cmd string, args []string) error {
	i := slices.IndexFunc(a.available(), func(c command) bool { return c.name == cmd })
	if i < 0 {
		return errUnknownCommand
	}
	c := a.available()[i]
	if len(args) < c.minArgs {
		return usageError{usage: c.usage()}
	}
	err := c.run(ctx, args)
	a.follow(ctx)
	return err
}

func (a *App) cmdGo(ctx context.Context, args []string) error {
	v, err := nav.ParseView(args[0])
	if err != nil {
		return usageError{usage: "go <view>, one of " + viewList()}
	}
	a.mount(ctx, v)
	return nil
}

func (a *App) cmdShow(ctx context.Context, _ []string) error {
	a.mount(ctx, a.view)
	return nil
}

func (a *App) cmdRoles(ctx context.Context, _ []string) error {
	v := a.deps.Roles.Refresh(ctx)
	fmt.Fprintf(a.out, "admin: %s\nreviewer: %s\n", capabilityLabel(v.Admin), capabilityLabel(v.Reviewer))
	return nil
}

func (a *App) cmdLogout(ctx context.Context, _ []string) error {
	_, err := a.deps.Nav.Logout(ctx)
	if err != nil {
		a.deps.Notify.Alert("Could not clear the saved session.")
		return err
	}
	a.deps.Notify.Info("Logged out.")
	return nil
}

// show prints the data the mounted screens hold for v.
func (a *App) show(ctx context.Context, v nav.View) {
	switch v {
	case nav.Login:
		heading(a.out, "Log in")
		muted(a.out, "Commands: login, forgot, reset. New here? go register")
	case nav.Register:
		heading(a.out, "Create an account")
		muted(a.out, "Type 'register' to fill in the form.")
	case nav.Dashboard:
		a.showDashboard(ctx)
	case nav.Paper:
		a.showPaper()
	case nav.Contribution:
		heading(a.out, "Contribution")
		muted(a.out, "Type 'new' to fill in the contribution form.")
	case nav.CameraReady:
		a.showCameraReady()
	case nav.Submissions:
		a.showSubmissions()
	case nav.Profile:
		a.showProfile(ctx)
	case nav.Password:
		heading(a.out, "Change password")
		muted(a.out, "Type 'change' to set a new password.")
	case nav.Reviewer:
		a.showReviewer()
	case nav.Admin:
		a.showAdmin()
	}
}
