package nav

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/confportal/internal/client/repositories/keyvalue"
	"github.com/dmitrijs2005/confportal/internal/client/session"
)

func TestParseView(t *testing.T) {
	for _, v := range Views() {
		got, err := ParseView(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	v, err := ParseView(" CameraReady ")
	require.NoError(t, err)
	assert.Equal(t, CameraReady, v)

	v, err = ParseView("camera-ready")
	require.NoError(t, err)
	assert.Equal(t, CameraReady, v)

	v, err = ParseView("home")
	require.NoError(t, err)
	assert.Equal(t, Dashboard, v)

	_, err = ParseView("settings")
	require.Error(t, err)

	assert.Equal(t, "View(99)", View(99).String())
}

func TestInit_NoToken(t *testing.T) {
	c := NewController(session.NewStore(keyvalue.NewMemoryRepository()), nil)
	c.Init(context.Background())
	assert.Equal(t, State{View: Login}, c.State())
}

func TestInit_StoredToken(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(keyvalue.NewMemoryRepository())
	require.NoError(t, store.Save(ctx, "tok", "ann@example.org"))

	c := NewController(store, nil)
	c.Init(ctx)
	assert.Equal(t, State{View: Dashboard, Identity: "ann@example.org"}, c.State())

	require.NoError(t, store.Save(ctx, "tok", ""))
	require.NoError(t, store.SaveDisplayName(ctx, "Ann Lee"))
	c = NewController(store, nil)
	c.Init(ctx)
	assert.Equal(t, State{View: Dashboard, Identity: "Ann Lee"}, c.State())
}

func TestLogout_ClearsSessionAndRunsHooks(t *testing.T) {
	ctx := context.Background()
	repo := keyvalue.NewMemoryRepository()
	store := session.NewStore(repo)
	require.NoError(t, store.Save(ctx, "tok", "ann@example.org"))
	require.NoError(t, store.SetRole(ctx, session.RoleAdmin, true))

	c := NewController(store, nil)
	c.Init(ctx)
	ran := 0
	c.OnLogout(func() { ran++ })
	c.Navigate(Paper)

	_, err := c.Logout(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, ran)
	assert.Equal(t, State{View: Login}, c.State())

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	fresh := NewController(store, nil)
	fresh.Init(ctx)
	assert.Equal(t, Login, fresh.State().View)
}

type failingStore struct{ session.Snapshot }

func (f failingStore) Load(context.Context) (session.Snapshot, error) {
	return f.Snapshot, errors.New("load failed")
}
func (failingStore) Clear(context.Context) error { return errors.New("clear failed") }

func TestLogout_StateResetEvenOnError(t *testing.T) {
	c := NewController(failingStore{}, nil)
	c.Login("ann")
	_, err := c.Logout(context.Background())
	require.Error(t, err)
	assert.Equal(t, State{View: Login}, c.State())
}

func TestInit_LoadErrorStartsAtLogin(t *testing.T) {
	c := NewController(failingStore{session.Snapshot{Token: "tok"}}, nil)
	c.Init(context.Background())
	assert.Equal(t, Login, c.State().View)
}

func TestTicket_StaleAfterNavigation(t *testing.T) {
	c := NewController(session.NewStore(keyvalue.NewMemoryRepository()), nil)
	t1 := c.Login("ann")
	assert.True(t, t1.Current())
	assert.Equal(t, Dashboard, t1.View())

	t2 := c.Navigate(Paper)
	assert.False(t, t1.Current())
	assert.True(t, t2.Current())

	// re-entering the same view still invalidates the old mount
	t3 := c.Navigate(Paper)
	assert.False(t, t2.Current())
	assert.True(t, t3.Current())

	c.SetIdentity("Ann Lee")
	assert.True(t, t3.Current())
	assert.Equal(t, "Ann Lee", c.State().Identity)

	assert.True(t, Ticket{}.Current())
}
