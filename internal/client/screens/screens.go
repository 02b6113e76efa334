// Package screens implements the views of the portal client. A screen loads
// its data when mounted, runs user actions as a backend mutation followed by
// a full reload, and reports failures through a Notifier. Results are applied
// only while the screen's navigation ticket is current.
package screens

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/confportal/internal/client/client"
	"github.com/dmitrijs2005/confportal/internal/client/nav"
	"github.com/dmitrijs2005/confportal/internal/client/roles"
	"github.com/dmitrijs2005/confportal/internal/client/services"
	"github.com/dmitrijs2005/confportal/internal/common"
	"github.com/dmitrijs2005/confportal/internal/logging"
)

// ErrStale is returned when a result arrived after the user navigated away.
var ErrStale = errors.New("screen no longer current")

// Notifier shows blocking messages to the user.
type Notifier interface {
	Alert(msg string)
	Info(msg string)
}

// Screen is a mountable view. Mount drops whatever the screen held before
// loading, so a failed load leaves it empty.
type Screen interface {
	Mount(ctx context.Context, t nav.Ticket) error
}

// Resetter is implemented by screens holding backend data; Reset empties them
// on logout.
type Resetter interface {
	Reset()
}

// Deps are the collaborators shared by every screen.
type Deps struct {
	API    client.Client
	Auth   services.AuthService
	Papers *services.PaperService
	Roles  *roles.Resolver
	Nav    *nav.Controller
	Notify Notifier
	Log    logging.Logger

	Now           func() time.Time
	DueSoonWindow time.Duration
	PageSize      int
	DownloadDir   string

	probesMu sync.Mutex
	probes   <-chan struct{}
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Deps) pageSize() int {
	if d.PageSize > 0 {
		return d.PageSize
	}
	return 20
}

// StartRoleProbes refreshes role verdicts in the background.
func (d *Deps) StartRoleProbes(ctx context.Context) {
	done := d.Roles.RefreshAsync(context.WithoutCancel(ctx))
	d.probesMu.Lock()
	d.probes = done
	d.probesMu.Unlock()
}

// WaitRoleProbes blocks until the last started refresh is done or ctx ends.
func (d *Deps) WaitRoleProbes(ctx context.Context) error {
	d.probesMu.Lock()
	done := d.probes
	d.probesMu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fail logs err and alerts the user, preferring a validation or server
// message over fallback. Cancellations and stale results stay silent.
func (d *Deps) fail(ctx context.Context, t nav.Ticket, err error, fallback string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrStale) || !t.Current() {
		return err
	}
	msg := client.UserMessage(err, fallback)
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		msg = ve.Error()
	}
	d.Log.Warn(ctx, fallback, "err", err)
	d.Notify.Alert(msg)
	return err
}

func (d *Deps) info(t nav.Ticket, msg string) {
	if t.Current() {
		d.Notify.Info(msg)
	}
}

// latest holds the data a screen last applied.
type latest[T any] struct {
	mu sync.RWMutex
	v  T
}

func (l *latest[T]) get() T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.v
}

// reset drops the held value regardless of the ticket.
func (l *latest[T]) reset() {
	l.mu.Lock()
	var zero T
	l.v = zero
	l.mu.Unlock()
}

// apply stores v when t is still current.
func (l *latest[T]) apply(t nav.Ticket, v T) error {
	if !t.Current() {
		return ErrStale
	}
	l.mu.Lock()
	l.v = v
	l.mu.Unlock()
	return nil
}

// mounted remembers the ticket of the last Mount.
type mounted struct {
	mu sync.Mutex
	t  nav.Ticket
}

func (m *mounted) set(t nav.Ticket) {
	m.mu.Lock()
	m.t = t
	m.mu.Unlock()
}

func (m *mounted) ticket() nav.Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.t
}
