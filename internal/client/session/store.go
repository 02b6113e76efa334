// Package session persists the authenticated session of the portal client:
// bearer token, email, display name and cached role flags.
package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/confportal/internal/client/repositories/keyvalue"
)

// Storage keys.
const (
	KeyToken      = "asiou_jwt"
	KeyEmail      = "asiou_user_email"
	KeyName       = "asiou_user_name"
	KeyIsAdmin    = "asiou_is_admin"
	KeyIsReviewer = "asiou_is_reviewer"
)

var allKeys = []string{KeyToken, KeyEmail, KeyName, KeyIsAdmin, KeyIsReviewer}

// Role names a cached capability flag.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleReviewer Role = "reviewer"
)

func (r Role) key() (string, error) {
	switch r {
	case RoleAdmin:
		return KeyIsAdmin, nil
	case RoleReviewer:
		return KeyIsReviewer, nil
	}
	return "", fmt.Errorf("unknown role %q", string(r))
}

// Snapshot is the persisted session at one point in time. Role flags are nil
// until a verdict or guess has been cached.
type Snapshot struct {
	Token       string
	Email       string
	DisplayName string
	IsAdmin     *bool
	IsReviewer  *bool
}

// Authenticated reports whether a token is present. Expiry is not checked.
func (s Snapshot) Authenticated() bool { return s.Token != "" }

// Identity is the name the session is shown under: email, else display name.
func (s Snapshot) Identity() string {
	if s.Email != "" {
		return s.Email
	}
	return s.DisplayName
}

// Store is the single source of the persisted session. Every write replaces
// the stored value; the last writer wins.
type Store struct {
	repo keyvalue.Repository
}

func NewStore(repo keyvalue.Repository) *Store {
	return &Store{repo: repo}
}

// Save stores a fresh token and the email it was issued for. Cached role
// flags of a previous session are dropped.
// The write is atomic: a failure leaves the previous session untouched.
func (s *Store) Save(ctx context.Context, token, email string) error {
	return s.repo.Update(ctx,
		map[string]string{KeyToken: token, KeyEmail: email},
		KeyName, KeyIsAdmin, KeyIsReviewer)
}

func (s *Store) SaveDisplayName(ctx context.Context, name string) error {
	if name == "" {
		return s.repo.Delete(ctx, KeyName)
	}
	return s.repo.Set(ctx, KeyName, name)
}

// SetRole caches a capability flag as "1" or "0".
func (s *Store) SetRole(ctx context.Context, role Role, v bool) error {
	key, err := role.key()
	if err != nil {
		return err
	}
	val := "0"
	if v {
		val = "1"
	}
	return s.repo.Set(ctx, key, val)
}

// Role returns the cached flag, nil when never cached.
func (s *Store) Role(ctx context.Context, role Role) (*bool, error) {
	key, err := role.key()
	if err != nil {
		return nil, err
	}
	v, ok, err := s.repo.Get(ctx, key)
	if err != nil || !ok {
		return nil, err
	}
	return parseFlag(v), nil
}

func parseFlag(v string) *bool {
	switch v {
	case "1", "true":
		b := true
		return &b
	case "0", "false":
		b := false
		return &b
	}
	return nil
}

func (s *Store) Load(ctx context.Context) (Snapshot, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Token:       all[KeyToken],
		Email:       all[KeyEmail],
		DisplayName: all[KeyName],
		IsAdmin:     parseFlag(all[KeyIsAdmin]),
		IsReviewer:  parseFlag(all[KeyIsReviewer]),
	}, nil
}

// Token returns the stored bearer token, empty when logged out.
func (s *Store) Token(ctx context.Context) (string, error) {
	v, _, err := s.repo.Get(ctx, KeyToken)
	return v, err
}

// Clear removes every session key.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, allKeys...)
}
