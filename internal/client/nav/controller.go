package nav

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/confportal/internal/client/session"
	"github.com/dmitrijs2005/confportal/internal/logging"
)

// State is the navigation state at one point in time.
type State struct {
	View     View
	Identity string
}

// SessionStore is the part of the session store the controller needs.
type SessionStore interface {
	Load(ctx context.Context) (session.Snapshot, error)
	Clear(ctx context.Context) error
}

// Controller owns the navigation state. Transitions are requested by the
// caller and applied as-is: no view is guarded here, authorization is the
// backend's job.
type Controller struct {
	store SessionStore
	log   logging.Logger

	mu       sync.Mutex
	state    State
	gen      uint64
	teardown []func()
}

func NewController(store SessionStore, log logging.Logger) *Controller {
	if log == nil {
		log = logging.Discard()
	}
	return &Controller{store: store, log: log}
}

// OnLogout registers fn to run on every logout, before the session is cleared.
func (c *Controller) OnLogout(fn func()) {
	c.mu.Lock()
	c.teardown = append(c.teardown, fn)
	c.mu.Unlock()
}

// Init picks the start view: dashboard with the cached identity when a
// token is persisted, login otherwise.
func (c *Controller) Init(ctx context.Context) Ticket {
	snap, err := c.store.Load(ctx)
	if err != nil {
		c.log.Warn(ctx, "session cache unreadable, starting logged out", "err", err)
	}
	if err == nil && snap.Authenticated() {
		return c.set(State{View: Dashboard, Identity: snap.Identity()})
	}
	return c.set(State{View: Login})
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Navigate switches the current view and invalidates every earlier ticket.
func (c *Controller) Navigate(v View) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.View = v
	return c.bumpLocked()
}

// Login records the identity and lands on the dashboard.
func (c *Controller) Login(identity string) Ticket {
	return c.set(State{View: Dashboard, Identity: identity})
}

// SetIdentity updates the displayed identity without navigating.
func (c *Controller) SetIdentity(identity string) {
	c.mu.Lock()
	c.state.Identity = identity
	c.mu.Unlock()
}

// Logout runs teardown hooks, clears the persisted session and returns to
// the login view. The state is reset even when clearing fails.
func (c *Controller) Logout(ctx context.Context) (Ticket, error) {
	c.mu.Lock()
	hooks := append([]func(){}, c.teardown...)
	c.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	err := c.store.Clear(ctx)
	if err != nil {
		c.log.Error(ctx, "clear session", "err", err)
	}
	return c.set(State{View: Login}), err
}

func (c *Controller) set(s State) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = s
	return c.bumpLocked()
}

func (c *Controller) bumpLocked() Ticket {
	c.gen++
	return Ticket{c: c, gen: c.gen, view: c.state.View}
}

// Ticket identifies one mounted view. Results of work started under a ticket
// are applied only while it is current.
type Ticket struct {
	c    *Controller
	gen  uint64
	view View
}

func (t Ticket) View() View { return t.view }

// Current is false once any later navigation happened. The zero Ticket is
// always current.
func (t Ticket) Current() bool {
	if t.c == nil {
		return true
	}
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	return t.c.gen == t.gen
}
