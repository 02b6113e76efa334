package roles

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/confportal/internal/client/claims"
	"github.com/dmitrijs2005/confportal/internal/client/client"
	"github.com/dmitrijs2005/confportal/internal/client/session"
	"github.com/dmitrijs2005/confportal/internal/logging"
)

// Prober issues an authenticated GET; nil means 2xx.
type Prober interface {
	Probe(ctx context.Context, path string) error
}

// Cache is the part of the session store the resolver reads and writes.
type Cache interface {
	Load(ctx context.Context) (session.Snapshot, error)
	SetRole(ctx context.Context, role session.Role, v bool) error
}

var probePaths = map[session.Role]string{
	session.RoleAdmin:    client.AdminProbePath,
	session.RoleReviewer: client.ReviewerProbePath,
}

var claimFragments = map[session.Role]string{
	session.RoleAdmin:    "ADMIN",
	session.RoleReviewer: "REVIEWER",
}

type Resolver struct {
	prober Prober
	cache  Cache
	log    logging.Logger

	// mu guards gen and verdicts, and is held while a verdict is persisted
	// so that Reset orders strictly after any in-flight write.
	mu       sync.Mutex
	gen      uint64
	verdicts map[session.Role]bool
}

func NewResolver(p Prober, c Cache, log logging.Logger) *Resolver {
	if log == nil {
		log = logging.Discard()
	}
	return &Resolver{prober: p, cache: c, log: log, verdicts: map[session.Role]bool{}}
}

func (r *Resolver) IsAdmin(ctx context.Context) Capability {
	return r.Current(ctx, session.RoleAdmin)
}

func (r *Resolver) IsReviewer(ctx context.Context) Capability {
	return r.Current(ctx, session.RoleReviewer)
}

// Current never blocks on the network. It returns the in-memory verdict,
// else the cached flag, else a guess from the token claims.
func (r *Resolver) Current(ctx context.Context, role session.Role) Capability {
	r.mu.Lock()
	v, ok := r.verdicts[role]
	r.mu.Unlock()
	if ok {
		return Confirmed(v)
	}

	snap, err := r.cache.Load(ctx)
	if err != nil {
		r.log.Warn(ctx, "session cache unreadable", "err", err)
		return Unknown()
	}
	flag := snap.IsAdmin
	if role == session.RoleReviewer {
		flag = snap.IsReviewer
	}
	if flag != nil {
		return Guessed(*flag)
	}
	if !snap.Authenticated() {
		return Unknown()
	}
	if c, ok := claims.Decode(snap.Token); ok {
		return Guessed(c.HasRole(claimFragments[role]))
	}
	return Guessed(false)
}

// Probe asks the backend. Any failure, 403 or a network error alike, is a
// negative verdict. A probe overtaken by Reset or cancelled by its context
// records nothing and reports the current answer.
func (r *Resolver) Probe(ctx context.Context, role session.Role) Capability {
	path, ok := probePaths[role]
	if !ok {
		return Unknown()
	}

	r.mu.Lock()
	gen := r.gen
	r.mu.Unlock()

	err := r.prober.Probe(ctx, path)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return r.Current(context.WithoutCancel(ctx), role)
	}
	allowed := err == nil
	if err != nil && !client.IsAuthFailure(err) {
		r.log.Warn(ctx, "role probe failed, treating as denied", "role", string(role), "err", err)
	} else {
		r.log.Debug(ctx, "role probe", "role", string(role), "allowed", allowed)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.gen != gen {
		return Unknown()
	}
	r.verdicts[role] = allowed
	if err := r.cache.SetRole(ctx, role, allowed); err != nil {
		r.log.Warn(ctx, "cache role verdict", "role", string(role), "err", err)
	}
	return Confirmed(allowed)
}

// Verdicts are the results of a Refresh.
type Verdicts struct {
	Admin    Capability
	Reviewer Capability
}

func (v Verdicts) String() string {
	return fmt.Sprintf("admin=%s reviewer=%s", v.Admin, v.Reviewer)
}

// Refresh probes both roles concurrently.
func (r *Resolver) Refresh(ctx context.Context) Verdicts {
	var v Verdicts
	var g errgroup.Group
	g.Go(func() error {
		v.Admin = r.Probe(ctx, session.RoleAdmin)
		return nil
	})
	g.Go(func() error {
		v.Reviewer = r.Probe(ctx, session.RoleReviewer)
		return nil
	})
	_ = g.Wait()
	return v
}

// RefreshAsync runs Refresh in the background. The returned channel is
// closed when both probes have finished.
func (r *Resolver) RefreshAsync(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Refresh(ctx)
	}()
	return done
}

// Reset forgets in-memory verdicts. Probes started before the call will not
// record their results.
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.gen++
	clear(r.verdicts)
	r.mu.Unlock()
}
