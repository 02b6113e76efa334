package clienttest

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/confportal/internal/client/models"
)

// ownAssignment resolves {id} to an assignment of the current reviewer or answers 404.
func (s *Server) ownAssignment(w http.ResponseWriter, r *http.Request) *assignment {
	a := s.assignments[pathID(r, "id")]
	if a == nil || a.Reviewer != strings.ToLower(current(r).Email) {
		writeErr(w, http.StatusNotFound, "Assignment not found")
		return nil
	}
	return a
}

func (s *Server) myAssignments(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(current(r).Email)
	s.mu.Lock()
	out := []models.ReviewAssignment{}
	for _, a := range s.assignmentsWhere(func(a *assignment) bool { return a.Reviewer == email }) {
		out = append(out, a.ReviewAssignment)
	}
	s.mu.Unlock()
	s.writeList(w, out)
}

func (s *Server) acceptAssignment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.ownAssignment(w, r)
	if a == nil {
		return
	}
	if a.AcceptedAt == nil {
		now := time.Now().UTC()
		a.AcceptedAt = &now
	}
	writeJSON(w, http.StatusOK, a.ReviewAssignment)
}

func (s *Server) submitReview(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Decision string `json:"decision"`
		Comments string `json:"comments"`
	}
	if !decode(w, r, &in) {
		return
	}
	d, ok := models.ParseReviewDecision(in.Decision)
	if !ok {
		writeErr(w, http.StatusBadRequest, "Unknown decision "+in.Decision)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.ownAssignment(w, r)
	if a == nil {
		return
	}
	switch {
	case a.AcceptedAt == nil:
		writeErr(w, http.StatusBadRequest, "Accept the assignment first")
	case a.Completed:
		writeErr(w, http.StatusConflict, "Review already submitted")
	default:
		a.Review = &models.Review{ID: s.id(), Decision: string(d), Comments: in.Comments}
		a.Completed = true
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) assignedPaperOf(a *assignment) models.AssignedPaper {
	p := s.papers[a.PaperID]
	if p == nil {
		return models.AssignedPaper{ID: a.PaperID, Title: a.PaperTitle}
	}
	return models.AssignedPaper{
		ID:        p.ID,
		Title:     p.Title,
		PaperType: p.PaperType,
		Status:    p.Status,
		Topics:    p.Topics,
		Abstract:  p.Abstract,
		FileID:    p.FileID,
	}
}

func (s *Server) assignedPaper(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.ownAssignment(w, r)
	if a == nil {
		return
	}
	writeJSON(w, http.StatusOK, s.assignedPaperOf(a))
}

func (s *Server) assignedPapers(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(current(r).Email)
	s.mu.Lock()
	out := []models.AssignedPaper{}
	for _, a := range s.assignmentsWhere(func(a *assignment) bool { return a.Reviewer == email }) {
		out = append(out, s.assignedPaperOf(a))
	}
	s.mu.Unlock()
	s.writeList(w, out)
}
