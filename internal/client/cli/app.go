package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/confportal/internal/client/client"
	"github.com/dmitrijs2005/confportal/internal/client/config"
	"github.com/dmitrijs2005/confportal/internal/client/nav"
	"github.com/dmitrijs2005/confportal/internal/client/repositories/keyvalue"
	"github.com/dmitrijs2005/confportal/internal/client/roles"
	"github.com/dmitrijs2005/confportal/internal/client/screens"
	"github.com/dmitrijs2005/confportal/internal/client/services"
	"github.com/dmitrijs2005/confportal/internal/client/session"
	"github.com/dmitrijs2005/confportal/internal/filex"
	"github.com/dmitrijs2005/confportal/internal/logging"
)

type App struct {
	deps *screens.Deps
	db   *sql.DB
	in   *bufio.Reader
	out  io.Writer

	auth         *screens.AuthScreen
	dashboard    *screens.Dashboard
	paper        *screens.PaperScreen
	contribution *screens.ContributionScreen
	cameraReady  *screens.CameraReadyScreen
	submissions  *screens.SubmissionsScreen
	profile      *screens.ProfileScreen
	password     *screens.PasswordScreen
	reviewer     *screens.ReviewerScreen
	admin        *screens.AdminScreen
	reference    *screens.ReferenceScreen

	view     nav.View
	commands map[nav.View][]command
}

// NewApp opens the session cache, builds the backend client and every
// screen. The caller must Close the App.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if _, err := filex.EnsureDir(filepath.Dir(cfg.StatePath)); err != nil {
		return nil, fmt.Errorf("state directory: %w", err)
	}
	db, err := client.InitDatabase(ctx, cfg.StatePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", cfg.StatePath, "err", err)
		return nil, err
	}

	store := session.NewStore(keyvalue.NewSQLiteRepository(db))
	api, err := client.NewHTTPClient(cfg.APIBaseURL, store, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	resolver := roles.NewResolver(api, store, log)
	ctrl := nav.NewController(store, log)
	ctrl.OnLogout(resolver.Reset)

	deps := &screens.Deps{
		API:           api,
		Auth:          services.NewAuthService(api, store, log),
		Papers:        services.NewPaperService(api, log),
		Roles:         resolver,
		Nav:           ctrl,
		Log:           log,
		DueSoonWindow: cfg.DueSoonWindow,
		PageSize:      cfg.PageSize,
		DownloadDir:   cfg.DownloadDir,
	}
	interactive := isTerminal(int(os.Stdin.Fd()))
	a := newApp(deps, os.Stdin, os.Stdout, interactive)
	a.db = db
	return a, nil
}

// newApp builds the App over ready dependencies. deps.Notify is replaced by
// a notifier printing to out.
func newApp(deps *screens.Deps, in io.Reader, out io.Writer, interactive bool) *App {
	reader := bufio.NewReader(in)
	deps.Notify = &notifier{in: reader, out: out, interactive: interactive}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	a := &App{
		deps:         deps,
		in:           reader,
		out:          out,
		auth:         screens.NewAuthScreen(deps),
		dashboard:    screens.NewDashboard(deps),
		paper:        screens.NewPaperScreen(deps),
		contribution: screens.NewContributionScreen(deps),
		cameraReady:  screens.NewCameraReadyScreen(deps),
		submissions:  screens.NewSubmissionsScreen(deps),
		profile:      screens.NewProfileScreen(deps),
		password:     screens.NewPasswordScreen(deps),
		reviewer:     screens.NewReviewerScreen(deps),
		admin:        screens.NewAdminScreen(deps),
		reference:    screens.NewReferenceScreen(deps),
	}
	a.commands = a.buildCommands()
	deps.Nav.OnLogout(a.resetScreens)
	return a
}

// resetScreens empties every screen so nothing of the previous session can
// be shown after logout.
func (a *App) resetScreens() {
	for _, v := range nav.Views() {
		for _, s := range a.screensOf(v) {
			if r, ok := s.(screens.Resetter); ok {
				r.Reset()
			}
		}
	}
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Run restores the persisted session, mounts the start view and runs the
// REPL until the user leaves.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, headingStyle.Render("Conference portal client")+" "+mutedStyle.Render("(type 'help' for commands)"))

	t := a.deps.Nav.Init(ctx)
	if t.View() != nav.Login {
		a.deps.StartRoleProbes(ctx)
	}
	a.mount(ctx, t.View())

	runREPL(ctx, a, a.status, a.in, a.out)
}

func (a *App) status() string {
	st := a.deps.Nav.State()
	if st.Identity == "" {
		return fmt.Sprintf("(%s)", st.View)
	}
	return fmt.Sprintf("(%s @ %s)", st.Identity, st.View)
}

// mount navigates to v, loads its data and shows it.
func (a *App) mount(ctx context.Context, v nav.View) {
	t := a.deps.Nav.Navigate(v)
	a.view = v
	for _, s := range a.screensOf(v) {
		if err := s.Mount(ctx, t); err != nil {
			a.deps.Log.Debug(ctx, "mount failed", "view", v.String(), "err", err)
		}
	}
	a.show(ctx, v)
}

// follow mounts the current view when a command navigated away from the
// mounted one.
func (a *App) follow(ctx context.Context) {
	if v := a.deps.Nav.State().View; v != a.view {
		a.mount(ctx, v)
	}
}

func (a *App) screensOf(v nav.View) []screens.Screen {
	switch v {
	case nav.Login, nav.Register:
		return []screens.Screen{a.auth}
	case nav.Dashboard:
		return []screens.Screen{a.dashboard}
	case nav.Paper:
		return []screens.Screen{a.paper}
	case nav.Contribution:
		return []screens.Screen{a.contribution}
	case nav.CameraReady:
		return []screens.Screen{a.cameraReady}
	case nav.Submissions:
		return []screens.Screen{a.submissions}
	case nav.Profile:
		return []screens.Screen{a.profile}
	case nav.Password:
		return []screens.Screen{a.password}
	case nav.Reviewer:
		return []screens.Screen{a.reviewer}
	case nav.Admin:
		return []screens.Screen{a.admin, a.reference}
	}
	return nil
}
