package clienttest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/confportal/internal/client/models"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in models.Credentials
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[strings.ToLower(in.Email)]
	if u == nil || u.Password != in.Password {
		writeErr(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	tok, err := s.issueLocked(u)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.TokenResponse{AccessToken: tok})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in models.Registration
	if !decode(w, r, &in) {
		return
	}
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.LastName == "" {
		writeErr(w, http.StatusBadRequest, "All fields are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users[strings.ToLower(in.Email)] != nil {
		writeErr(w, http.StatusConflict, "Email already registered")
		return
	}
	u := s.addUserLocked(in.Email, in.Password, in.FirstName, in.LastName)
	tok, err := s.issueLocked(u)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, models.TokenResponse{AccessToken: tok})
}

func (s *Server) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	if s.users[strings.ToLower(in.Email)] != nil {
		s.resetTokens[uuid.NewString()] = strings.ToLower(in.Email)
	}
	s.mu.Unlock()
	// same answer for unknown addresses
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) resetPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.resetTokens[in.Token]
	if !ok {
		writeErr(w, http.StatusBadRequest, "Reset token is invalid or expired")
		return
	}
	delete(s.resetTokens, in.Token)
	s.users[email].Password = in.NewPassword
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, current(r).Email)
}

func (s *Server) changePassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		NewPassword string `json:"newPassword"`
	}
	if !decode(w, r, &in) {
		return
	}
	if len(in.NewPassword) < 6 {
		writeErr(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	s.mu.Lock()
	current(r).Password = in.NewPassword
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(current(r).Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	h := models.Home{SubmittedPapers: []models.Paper{}, Contributions: []models.Contribution{}}
	for _, id := range s.sortedPaperIDs() {
		p := s.papers[id]
		if p.Owner == email && p.Status != models.StatusDraft {
			h.SubmittedPapers = append(h.SubmittedPapers, p.Paper)
		}
	}
	h.Contributions = s.contributionsOfLocked(email)
	writeJSON(w, http.StatusOK, h)
}
