package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/confportal/internal/client/client"
	"github.com/dmitrijs2005/confportal/internal/client/client/clienttest"
	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/client/nav"
	"github.com/dmitrijs2005/confportal/internal/client/repositories/keyvalue"
	"github.com/dmitrijs2005/confportal/internal/client/roles"
	"github.com/dmitrijs2005/confportal/internal/client/screens"
	"github.com/dmitrijs2005/confportal/internal/client/services"
	"github.com/dmitrijs2005/confportal/internal/client/session"
	"github.com/dmitrijs2005/confportal/internal/logging"
)

func newTestApp(t *testing.T, script string) (*App, *clienttest.Server, *bytes.Buffer) {
	t.Helper()
	return newSeededApp(t, func(*clienttest.Server) string { return script })
}

// newSeededApp lets seed prepare the backend and build the script from what
// it seeded.
func newSeededApp(t *testing.T, seed func(*clienttest.Server) string) (*App, *clienttest.Server, *bytes.Buffer) {
	t.Helper()
	old := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = old })

	srv := clienttest.NewServer(t)
	srv.AddUser("ann@example.org", "secret1", "Ann", "Author")
	srv.AddUser("root@example.org", "secret1", "Ada", "Admin", clienttest.RoleAdmin, clienttest.RoleAuthor)

	log := logging.Discard()
	store := session.NewStore(keyvalue.NewMemoryRepository())
	api, err := client.NewHTTPClient(srv.URL(), store, log)
	require.NoError(t, err)
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
		DueSoonWindow: 72 * time.Hour,
		DownloadDir:   t.TempDir(),
	}
	out := &bytes.Buffer{}
	script := seed(srv)
	return newApp(deps, strings.NewReader(script), out, false), srv, out
}

func lines(l ...string) string { return strings.Join(l, "\n") + "\n" }

func postsTo(srv *clienttest.Server, path string) int {
	n := 0
	for _, h := range srv.Hits() {
		if h.Method == "POST" && h.Path == path {
			n++
		}
	}
	return n
}

func TestApp_SubmitPaperScenario(t *testing.T) {
	script := lines(
		"login", "ann@example.org", "secret1",
		"go paper",
		// title left empty
		"new", "", "caches", "We study caches.", "", "3", "1", "n", "",
		"new", "Consistent caches", "caches", "We study caches.", "", "3", "1", "n", "",
		"exit",
	)
	a, srv, out := newTestApp(t, script)
	a.Run(context.Background())

	got := out.String()
	assert.Contains(t, got, "Please fill all required fields")
	assert.Equal(t, 1, postsTo(srv, "/api/papers"))
	assert.Contains(t, got, "Consistent caches")
	assert.Contains(t, got, "SUBMITTED")
	assert.Contains(t, got, "Bye!")
	assert.Equal(t, nav.Paper, a.deps.Nav.State().View)
	assert.Equal(t, "ann@example.org", a.deps.Nav.State().Identity)
}

func TestApp_LoginFailureStaysOnLogin(t *testing.T) {
	a, _, out := newTestApp(t, lines("login", "ann@example.org", "wrong", "exit"))
	a.Run(context.Background())

	assert.Equal(t, nav.Login, a.deps.Nav.State().View)
	assert.Contains(t, out.String(), "! ")
}

func TestApp_UnknownCommandAndUsage(t *testing.T) {
	script := lines("login", "ann@example.org", "secret1", "frobnicate", "withdraw", "withdraw abc", "exit")
	a, _, out := newTestApp(t, script)
	a.Run(context.Background())

	got := out.String()
	assert.Contains(t, got, "Unknown command: frobnicate")
	assert.Equal(t, 2, strings.Count(got, "Usage: withdraw <id>"))
}

func TestApp_AdminViewAndLogout(t *testing.T) {
	script := lines(
		"login", "root@example.org", "secret1",
		"roles",
		"go admin",
		"settings submissions off",
		"show",
		"logout",
		"exit",
	)
	a, _, out := newTestApp(t, script)
	a.Run(context.Background())

	got := out.String()
	assert.Contains(t, got, "All papers")
	assert.Contains(t, got, "Submissions open: off")
	assert.Contains(t, got, "Logged out.")
	assert.Equal(t, nav.Login, a.deps.Nav.State().View)
	assert.Empty(t, a.deps.Nav.State().Identity)
}

func TestApp_HelpListsViewCommands(t *testing.T) {
	a, _, out := newTestApp(t, lines("help", "exit"))
	a.Run(context.Background())

	got := out.String()
	for _, want := range []string{"login", "forgot", "reset", "go <view>", "logout", "exit"} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "coauthor-add")
}

func TestApp_LogoutForgetsPreviousUserData(t *testing.T) {
	var id int64
	a, _, out := newSeededApp(t, func(srv *clienttest.Server) string {
		id = srv.SeedPaper("root@example.org", "Root only draft", models.StatusSubmitted)
		return lines(
			"login", "root@example.org", "secret1",
			"go admin",
			fmt.Sprintf("open %d", id),
			"logout",
			"login", "ann@example.org", "secret1",
			"go admin",
			"exit",
		)
	})
	a.Run(context.Background())

	got := out.String()
	require.Contains(t, got, "Logged out.")
	require.Contains(t, got, "Root only draft")

	after := got[strings.LastIndex(got, "All papers"):]
	assert.NotContains(t, after, "Root only draft")
	assert.NotContains(t, after, fmt.Sprintf("Paper %d:", id))
	assert.Empty(t, a.admin.Papers())
	assert.Nil(t, a.admin.Detail())
	assert.Empty(t, a.reference.Data().Topics)
	assert.Equal(t, "ann@example.org", a.deps.Nav.State().Identity)
}
