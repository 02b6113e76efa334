package roles

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/confportal/internal/client/client"
	"github.com/dmitrijs2005/confportal/internal/client/client/clienttest"
	"github.com/dmitrijs2005/confportal/internal/client/repositories/keyvalue"
	"github.com/dmitrijs2005/confportal/internal/client/session"
	"github.com/dmitrijs2005/confportal/internal/logging"
)

type fakeProber struct {
	mu      sync.Mutex
	answers map[string]error
	calls   []string
	gate    chan struct{}
}

func (f *fakeProber) Probe(ctx context.Context, path string) error {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	gate := f.gate
	err := f.answers[path]
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func newStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(keyvalue.NewMemoryRepository())
}

func TestCapability(t *testing.T) {
	assert.False(t, Unknown().Allowed())
	assert.False(t, Unknown().Known())
	assert.Equal(t, Capability{}, Unknown())

	assert.True(t, Guessed(true).Allowed())
	assert.False(t, Guessed(true).Verified())
	assert.True(t, Confirmed(false).Verified())
	assert.False(t, Confirmed(false).Allowed())

	assert.Equal(t, "unknown", Unknown().String())
	assert.Equal(t, "guessed(true)", Guessed(true).String())
	assert.Equal(t, "confirmed(false)", Confirmed(false).String())
}

func TestCurrent_NoSession(t *testing.T) {
	r := NewResolver(&fakeProber{}, newStore(t), logging.Discard())
	assert.Equal(t, Unknown(), r.IsAdmin(context.Background()))
	assert.Equal(t, Unknown(), r.IsReviewer(context.Background()))
}

func TestCurrent_GuessOrder(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	r := NewResolver(&fakeProber{}, store, nil)

	require.NoError(t, store.Save(ctx, "opaque-token", "ann@example.org"))
	assert.Equal(t, Guessed(false), r.IsAdmin(ctx), "opaque token, no cache")

	srv := clienttest.NewServer(t)
	srv.AddUser("root@example.org", "pw", "Root", "Admin", clienttest.RoleAdmin)
	require.NoError(t, store.Save(ctx, srv.TokenFor("root@example.org"), "root@example.org"))
	assert.Equal(t, Guessed(true), r.IsAdmin(ctx), "claims say admin")
	assert.Equal(t, Guessed(false), r.IsReviewer(ctx))

	require.NoError(t, store.SetRole(ctx, session.RoleAdmin, false))
	assert.Equal(t, Guessed(false), r.IsAdmin(ctx), "cached flag wins over claims")
}

func TestProbe_VerdictReplacesGuess(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.Save(ctx, "opaque", "ann@example.org"))
	p := &fakeProber{answers: map[string]error{
		client.ReviewerProbePath: &client.APIError{Status: 403, Kind: client.ErrForbidden},
	}}
	r := NewResolver(p, store, nil)

	before := r.IsAdmin(ctx)
	assert.Equal(t, Guessed(false), before)

	assert.Equal(t, Confirmed(true), r.Probe(ctx, session.RoleAdmin))
	assert.Equal(t, Confirmed(true), r.IsAdmin(ctx))

	cached, err := store.Role(ctx, session.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.True(t, *cached)

	assert.Equal(t, Confirmed(false), r.Probe(ctx, session.RoleReviewer))
	assert.Equal(t, Confirmed(false), r.IsReviewer(ctx))
}

func TestProbe_NetworkErrorIsNegative(t *testing.T) {
	ctx := context.Background()
	p := &fakeProber{answers: map[string]error{client.AdminProbePath: client.ErrUnavailable}}
	r := NewResolver(p, newStore(t), nil)
	assert.Equal(t, Confirmed(false), r.Probe(ctx, session.RoleAdmin))
}

func TestProbe_UnknownRole(t *testing.T) {
	r := NewResolver(&fakeProber{}, newStore(t), nil)
	assert.Equal(t, Unknown(), r.Probe(context.Background(), session.Role("chair")))
}

func TestProbe_CancelledRecordsNothing(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save(context.Background(), "opaque", "ann@example.org"))
	p := &fakeProber{gate: make(chan struct{})}
	r := NewResolver(p, store, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, Guessed(false), r.Probe(ctx, session.RoleAdmin))

	cached, err := store.Role(context.Background(), session.RoleAdmin)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestReset_DiscardsInFlightProbe(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.Save(ctx, "opaque", "ann@example.org"))
	p := &fakeProber{gate: make(chan struct{})}
	r := NewResolver(p, store, nil)

	done := r.RefreshAsync(ctx)
	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return len(p.calls) == 2
	}, time.Second, 5*time.Millisecond)

	r.Reset()
	require.NoError(t, store.Clear(ctx))
	close(p.gate)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresh did not finish")
	}

	assert.Equal(t, Unknown(), r.IsAdmin(ctx))
	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap.IsAdmin)
	assert.Nil(t, snap.IsReviewer)
}

func TestRefresh_AgainstBackend(t *testing.T) {
	ctx := context.Background()
	srv := clienttest.NewServer(t)
	srv.SetRoleClaims(false)
	srv.AddUser("rev@example.org", "pw", "Rae", "View", clienttest.RoleReviewer)

	store := newStore(t)
	require.NoError(t, store.Save(ctx, srv.TokenFor("rev@example.org"), "rev@example.org"))
	c, err := client.NewHTTPClient(srv.URL(), store, logging.Discard())
	require.NoError(t, err)
	r := NewResolver(c, store, logging.Discard())

	assert.Equal(t, Guessed(false), r.IsReviewer(ctx), "no role claims, no cache")

	v := r.Refresh(ctx)
	assert.Equal(t, Confirmed(false), v.Admin)
	assert.Equal(t, Confirmed(true), v.Reviewer)
	assert.Equal(t, "admin=confirmed(false) reviewer=confirmed(true)", v.String())
	assert.Equal(t, Confirmed(true), r.IsReviewer(ctx))

	// a fresh resolver (restart) starts from the cached verdicts
	r2 := NewResolver(c, store, nil)
	assert.Equal(t, Guessed(true), r2.IsReviewer(ctx))
	assert.Equal(t, Guessed(false), r2.IsAdmin(ctx))
}

func TestCurrent_CacheError(t *testing.T) {
	r := NewResolver(&fakeProber{}, brokenCache{}, nil)
	assert.Equal(t, Unknown(), r.IsAdmin(context.Background()))
}

type brokenCache struct{}

func (brokenCache) Load(context.Context) (session.Snapshot, error) {
	return session.Snapshot{}, errors.New("disk gone")
}

func (brokenCache) SetRole(context.Context, session.Role, bool) error { return nil }

func TestReset_NewSessionSeesNoOldVerdict(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	r := NewResolver(&fakeProber{}, store, nil)

	require.NoError(t, store.Save(ctx, "admin-token", "root@example.org"))
	require.Equal(t, Confirmed(true), r.Probe(ctx, session.RoleAdmin))

	r.Reset()
	require.NoError(t, store.Save(ctx, "author-token", "ann@example.org"))
	assert.Equal(t, Guessed(false), r.IsAdmin(ctx))

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap.IsAdmin)
}

func TestResolver_NetworkErrorIsDenied(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	require.NoError(t, store.Save(ctx, "tok", "root@example.org"))
	p := &fakeProber{answers: map[string]error{
		client.AdminProbePath:    errors.New("connection refused"),
		client.ReviewerProbePath: &client.APIError{Status: 401, Kind: client.ErrUnauthorized},
	}}
	r := NewResolver(p, store, logging.Discard())

	assert.Equal(t, Confirmed(false), r.Probe(ctx, session.RoleAdmin))
	assert.Equal(t, Confirmed(false), r.Probe(ctx, session.RoleReviewer))
	assert.False(t, client.IsAuthFailure(p.answers[client.AdminProbePath]))
	assert.True(t, client.IsAuthFailure(p.answers[client.ReviewerProbePath]))
}
