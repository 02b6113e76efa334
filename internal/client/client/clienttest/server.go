// Package clienttest runs an in-memory conference portal backend for tests.
// It implements every endpoint the client uses with realistic statuses:
// 401 without a valid bearer, 403 for a missing role, 409 for deleting
// referenced reference data and 400 for invalid payloads.
package clienttest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/common"
)

const (
	RoleAdmin    = "ADMIN"
	RoleReviewer = "REVIEWER"
	RoleAuthor   = "AUTHOR"
)

type User struct {
	ID        int64
	Email     string
	Password  string
	FirstName string
	LastName  string
	Roles     []string
}

func (u *User) has(role string) bool { return slices.Contains(u.Roles, role) }

type paper struct {
	models.Paper
	Owner     string
	TopicIDs  []int64
	TechCheck *bool
}

type assignment struct {
	models.ReviewAssignment
	Reviewer string
	Review   *models.Review
}

type file struct {
	Name string
	Data []byte
}

// Hit records one request received by the fake backend.
type Hit struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
}

type Server struct {
	srv    *httptest.Server
	secret []byte

	mu            sync.Mutex
	nextID        int64
	users         map[string]*User
	papers        map[int64]*paper
	contributions map[int64]*models.Contribution
	owners        map[int64]string
	topics        []*models.RefItem
	paperTypes    []*models.RefItem
	settings      models.ConferenceSettings
	assignments   map[int64]*assignment
	files         map[int64]file
	resetTokens   map[string]string
	hits          []Hit

	paged       bool
	roleClaims  bool
	unavailable bool
	gate        chan struct{}
}

// NewServer starts a backend seeded with two topics and two paper types,
// with submissions and camera-ready windows open. It is closed on cleanup.
func NewServer(t testing.TB) *Server {
	s := &Server{
		secret:        []byte("clienttest-secret"),
		users:         map[string]*User{},
		papers:        map[int64]*paper{},
		contributions: map[int64]*models.Contribution{},
		owners:        map[int64]string{},
		assignments:   map[int64]*assignment{},
		files:         map[int64]file{},
		resetTokens:   map[string]string{},
		settings:      models.ConferenceSettings{SubmissionsOpen: true, CameraReadyOpen: true},
		roleClaims:    true,
	}
	for _, n := range []string{"Databases", "Networks"} {
		s.topics = append(s.topics, s.newRef(n))
	}
	for _, n := range []string{"Full paper", "Short paper"} {
		s.paperTypes = append(s.paperTypes, s.newRef(n))
	}

	s.srv = httptest.NewServer(s.router())
	t.Cleanup(func() {
		s.Release()
		s.srv.Close()
	})
	return s
}

func (s *Server) URL() string { return s.srv.URL }

// SetPaged makes list endpoints answer {"content": [...]} instead of arrays.
func (s *Server) SetPaged(v bool) {
	s.mu.Lock()
	s.paged = v
	s.mu.Unlock()
}

// SetRoleClaims controls whether issued tokens carry the roles claim.
func (s *Server) SetRoleClaims(v bool) {
	s.mu.Lock()
	s.roleClaims = v
	s.mu.Unlock()
}

// SetUnavailable makes every endpoint answer 503.
func (s *Server) SetUnavailable(v bool) {
	s.mu.Lock()
	s.unavailable = v
	s.mu.Unlock()
}

// Hold blocks every request until Release is called.
func (s *Server) Hold() {
	s.mu.Lock()
	if s.gate == nil {
		s.gate = make(chan struct{})
	}
	s.mu.Unlock()
}

func (s *Server) Release() {
	s.mu.Lock()
	if s.gate != nil {
		close(s.gate)
		s.gate = nil
	}
	s.mu.Unlock()
}

// Hits returns a copy of every request received so far.
func (s *Server) Hits() []Hit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.hits)
}

// HitCount counts requests whose path starts with prefix.
func (s *Server) HitCount(prefix string) int {
	n := 0
	for _, h := range s.Hits() {
		if strings.HasPrefix(h.Path, prefix) {
			n++
		}
	}
	return n
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Server) newRef(name string) *models.RefItem {
	active := true
	return &models.RefItem{ID: s.id(), Name: name, Active: &active}
}

// AddUser registers an account directly.
func (s *Server) AddUser(email, password, first, last string, roles ...string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(email, password, first, last, roles...)
}

func (s *Server) addUserLocked(email, password, first, last string, roles ...string) *User {
	if len(roles) == 0 {
		roles = []string{RoleAuthor}
	}
	u := &User{ID: s.id(), Email: email, Password: password, FirstName: first, LastName: last, Roles: roles}
	s.users[strings.ToLower(email)] = u
	return u
}

// TokenFor issues a token for an existing user.
func (s *Server) TokenFor(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[strings.ToLower(email)]
	if u == nil {
		return ""
	}
	tok, _ := s.issueLocked(u)
	return tok
}

func (s *Server) issueLocked(u *User) (string, error) {
	c := Claims{Email: u.Email, Name: strings.TrimSpace(u.FirstName + " " + u.LastName)}
	c.Subject = u.Email
	if s.roleClaims {
		for _, r := range u.Roles {
			c.Roles = append(c.Roles, "ROLE_"+r)
		}
	}
	return generateToken(c, s.secret, time.Hour)
}

// ResetToken returns the reset token issued by forgot-password for email.
func (s *Server) ResetToken(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for tok, e := range s.resetTokens {
		if e == strings.ToLower(email) {
			return tok
		}
	}
	return ""
}

// Papers returns the papers owned by email.
func (s *Server) Papers(email string) []models.Paper {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Paper
	for _, id := range s.sortedPaperIDs() {
		if p := s.papers[id]; p.Owner == strings.ToLower(email) {
			out = append(out, p.Paper)
		}
	}
	return out
}

// SeedPaper stores a paper owned by email directly with the given status.
func (s *Server) SeedPaper(email, title string, status models.PaperStatus) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &paper{Owner: strings.ToLower(email)}
	p.ID = s.id()
	p.Title = title
	p.Status = status
	p.PaperType = s.paperTypes[0].Name
	p.PaperTypeID = s.paperTypes[0].ID
	p.TopicIDs = []int64{s.topics[0].ID}
	p.Topics = []string{s.topics[0].Name}
	s.papers[p.ID] = p
	return p.ID
}

// SeedAssignment assigns reviewerEmail to paperID.
func (s *Server) SeedAssignment(reviewerEmail string, paperID int64, dueAt time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := &assignment{Reviewer: strings.ToLower(reviewerEmail)}
	a.ID = s.id()
	a.PaperID = paperID
	if p := s.papers[paperID]; p != nil {
		a.PaperTitle = p.Title
	}
	a.DueAt = dueAt.UTC()
	s.assignments[a.ID] = a
	return a.ID
}

// Settings returns the current conference settings.
func (s *Server) Settings() models.ConferenceSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *Server) sortedPaperIDs() []int64 {
	ids := make([]int64, 0, len(s.papers))
	for id := range s.papers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

type userKey struct{}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.record)

	r.HandleFunc("/api/auth/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/forgot-password", s.forgotPassword).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/reset-password", s.resetPassword).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.authenticate)

	api.HandleFunc("/me", s.me).Methods(http.MethodGet)
	api.HandleFunc("/me/password", s.changePassword).Methods(http.MethodPut)
	api.HandleFunc("/home", s.home).Methods(http.MethodGet)

	api.HandleFunc("/papers", s.listPapers).Methods(http.MethodGet)
	api.HandleFunc("/papers", s.createPaper).Methods(http.MethodPost)
	api.HandleFunc("/papers/{id:[0-9]+}", s.deletePaper).Methods(http.MethodDelete)
	api.HandleFunc("/papers/{id:[0-9]+}/file", s.uploadFile(false)).Methods(http.MethodPost)
	api.HandleFunc("/papers/{id:[0-9]+}/camera-ready", s.uploadFile(true)).Methods(http.MethodPost)
	api.HandleFunc("/papers/{id:[0-9]+}/submit", s.submitPaper).Methods(http.MethodPost)
	api.HandleFunc("/papers/{id:[0-9]+}/submit-camera-ready", s.submitCameraReady).Methods(http.MethodPost)
	api.HandleFunc("/papers/{id:[0-9]+}/withdraw", s.withdrawPaper).Methods(http.MethodPost)
	api.HandleFunc("/papers/{id:[0-9]+}/co-authors", s.addCoAuthor).Methods(http.MethodPost)
	api.HandleFunc("/papers/{id:[0-9]+}/co-authors/{cid:[0-9]+}", s.updateCoAuthor).Methods(http.MethodPut)
	api.HandleFunc("/papers/{id:[0-9]+}/co-authors/{cid:[0-9]+}", s.deleteCoAuthor).Methods(http.MethodDelete)

	api.HandleFunc("/contributions", s.listContributions).Methods(http.MethodGet)
	api.HandleFunc("/contributions", s.createContribution).Methods(http.MethodPost)
	api.HandleFunc("/contributions/{id:[0-9]+}", s.deleteContribution).Methods(http.MethodDelete)

	api.HandleFunc("/reference/topics", s.listRefs(&s.topics, true)).Methods(http.MethodGet)
	api.HandleFunc("/reference/paper-types", s.listRefs(&s.paperTypes, true)).Methods(http.MethodGet)

	api.HandleFunc("/files/{id:[0-9]+}", s.downloadFile).Methods(http.MethodGet)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(s.requireRole(RoleAdmin))
	for kind, list := range map[string]*[]*models.RefItem{"topics": &s.topics, "paper-types": &s.paperTypes} {
		admin.HandleFunc("/reference/"+kind, s.listRefs(list, false)).Methods(http.MethodGet)
		admin.HandleFunc("/reference/"+kind, s.createRef(list)).Methods(http.MethodPost)
		admin.HandleFunc("/reference/"+kind+"/{id:[0-9]+}", s.updateRef(list)).Methods(http.MethodPut)
		admin.HandleFunc("/reference/"+kind+"/{id:[0-9]+}", s.deleteRef(list, kind)).Methods(http.MethodDelete)
	}
	admin.HandleFunc("/reference/settings", s.getSettings).Methods(http.MethodGet)
	admin.HandleFunc("/reference/settings", s.putSettings).Methods(http.MethodPut)
	admin.HandleFunc("/papers", s.adminPapers).Methods(http.MethodGet)
	admin.HandleFunc("/papers/{id:[0-9]+}", s.adminPaper).Methods(http.MethodGet)
	admin.HandleFunc("/papers/{id:[0-9]+}/technical-check", s.technicalCheck).Methods(http.MethodPost)
	admin.HandleFunc("/papers/{id:[0-9]+}/final-decision", s.finalDecision).Methods(http.MethodPost)
	admin.HandleFunc("/reviews/papers/{id:[0-9]+}/assign", s.assignReviewer).Methods(http.MethodPost)
	admin.HandleFunc("/reviews/papers/{id:[0-9]+}/assignments", s.paperAssignments).Methods(http.MethodGet)
	admin.HandleFunc("/reviews/papers/{id:[0-9]+}/reviews", s.paperReviews).Methods(http.MethodGet)
	admin.HandleFunc("/users/reviewers", s.createReviewer).Methods(http.MethodPost)

	rev := api.PathPrefix("/reviewer").Subrouter()
	rev.Use(s.requireRole(RoleReviewer))
	rev.HandleFunc("/assignments", s.myAssignments).Methods(http.MethodGet)
	rev.HandleFunc("/assignments/{id:[0-9]+}/accept", s.acceptAssignment).Methods(http.MethodPost)
	rev.HandleFunc("/assignments/{id:[0-9]+}/review", s.submitReview).Methods(http.MethodPost)
	rev.HandleFunc("/assignments/{id:[0-9]+}/paper", s.assignedPaper).Methods(http.MethodGet)
	rev.HandleFunc("/papers", s.assignedPapers).Methods(http.MethodGet)

	return r
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits = append(s.hits, Hit{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get(common.AuthorizationHeader),
			RequestID:     r.Header.Get(common.RequestIDHeader),
		})
		gate, down := s.gate, s.unavailable
		s.mu.Unlock()

		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}
		if down {
			writeErr(w, http.StatusServiceUnavailable, "maintenance")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get(common.AuthorizationHeader)
		tok, ok := strings.CutPrefix(h, common.BearerPrefix)
		if !ok || tok == "" {
			writeErr(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		sub, err := subjectFromToken(tok, s.secret)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		s.mu.Lock()
		u := s.users[strings.ToLower(sub)]
		s.mu.Unlock()
		if u == nil {
			writeErr(w, http.StatusUnauthorized, "Unknown user")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, u)))
	})
}

func (s *Server) requireRole(role string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !current(r).has(role) {
				writeErr(w, http.StatusForbidden, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func current(r *http.Request) *User {
	u, _ := r.Context().Value(userKey{}).(*User)
	return u
}

func pathID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeList honours the paged switch.
func (s *Server) writeList(w http.ResponseWriter, items any) {
	s.mu.Lock()
	paged := s.paged
	s.mu.Unlock()
	if paged {
		writeJSON(w, http.StatusOK, map[string]any{"content": items})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, "Malformed request body")
		return false
	}
	return true
}
