package clienttest

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/confportal/internal/client/models"
)

func (s *Server) listRefs(list *[]*models.RefItem, activeOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		out := []models.RefItem{}
		for _, it := range *list {
			if activeOnly && !it.IsActive() {
				continue
			}
			out = append(out, *it)
		}
		s.mu.Unlock()
		s.writeList(w, out)
	}
}

func (s *Server) createRef(list *[]*models.RefItem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Name string `json:"name"`
		}
		if !decode(w, r, &in) {
			return
		}
		name := strings.TrimSpace(in.Name)
		if name == "" {
			writeErr(w, http.StatusBadRequest, "Name is required")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, it := range *list {
			if strings.EqualFold(it.Name, name) {
				writeErr(w, http.StatusConflict, "Name already exists")
				return
			}
		}
		it := s.newRef(name)
		*list = append(*list, it)
		writeJSON(w, http.StatusCreated, it)
	}
}

func (s *Server) updateRef(list *[]*models.RefItem) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in models.RefUpdate
		if !decode(w, r, &in) {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		it := s.refByID(*list, pathID(r, "id"))
		if it == nil {
			writeErr(w, http.StatusNotFound, "Not found")
			return
		}
		if n := strings.TrimSpace(in.Name); n != "" {
			it.Name = n
		}
		if in.Active != nil {
			v := *in.Active
			it.Active = &v
		}
		writeJSON(w, http.StatusOK, it)
	}
}

func (s *Server) deleteRef(list *[]*models.RefItem, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := pathID(r, "id")
		s.mu.Lock()
		defer s.mu.Unlock()
		it := s.refByID(*list, id)
		if it == nil {
			writeErr(w, http.StatusNotFound, "Not found")
			return
		}
		if it.IsActive() {
			writeErr(w, http.StatusConflict, "Deactivate before deleting")
			return
		}
		for _, p := range s.papers {
			if (kind == "topics" && slices.Contains(p.TopicIDs, id)) || (kind == "paper-types" && p.PaperTypeID == id) {
				writeErr(w, http.StatusConflict, "Cannot delete: referenced by existing papers")
				return
			}
		}
		*list = slices.DeleteFunc(*list, func(x *models.RefItem) bool { return x.ID == id })
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st := s.settings
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	var in models.ConferenceSettings
	if !decode(w, r, &in) {
		return
	}
	s.mu.Lock()
	s.settings = in
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) adminPapers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := []models.Paper{}
	for _, id := range s.sortedPaperIDs() {
		out = append(out, s.papers[id].Paper)
	}
	s.mu.Unlock()
	s.writeList(w, out)
}

func (s *Server) adminPaper(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.papers[pathID(r, "id")]
	if p == nil {
		writeErr(w, http.StatusNotFound, "Paper not found")
		return
	}
	writeJSON(w, http.StatusOK, p.Paper)
}

func (s *Server) technicalCheck(w http.ResponseWriter, r *http.Request) {
	passed, err := strconv.ParseBool(r.URL.Query().Get("passed"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "passed must be a boolean")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.papers[pathID(r, "id")]
	if p == nil {
		writeErr(w, http.StatusNotFound, "Paper not found")
		return
	}
	p.TechCheck = &passed
	if !passed {
		p.Status = models.StatusRejected
	}
	writeJSON(w, http.StatusOK, p.Paper)
}

func (s *Server) finalDecision(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status string `json:"status"`
	}
	if !decode(w, r, &in) {
		return
	}
	d, ok := models.ParseFinalDecision(in.Status)
	if !ok {
		writeErr(w, http.StatusBadRequest, "Unknown decision "+in.Status)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.papers[pathID(r, "id")]
	if p == nil {
		writeErr(w, http.StatusNotFound, "Paper not found")
		return
	}
	p.Status = models.PaperStatus(d)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) assignReviewer(w http.ResponseWriter, r *http.Request) {
	var in models.ReviewerAssignmentRequest
	if !decode(w, r, &in) {
		return
	}
	if in.DueAt.IsZero() {
		writeErr(w, http.StatusBadRequest, "dueAt is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.papers[pathID(r, "id")]
	if p == nil {
		writeErr(w, http.StatusNotFound, "Paper not found")
		return
	}
	var reviewer *User
	for _, u := range s.users {
		if (in.ReviewerID != 0 && u.ID == in.ReviewerID) || (in.ReviewerEmail != "" && strings.EqualFold(u.Email, in.ReviewerEmail)) {
			reviewer = u
		}
	}
	if reviewer == nil || !reviewer.has(RoleReviewer) {
		writeErr(w, http.StatusBadRequest, "Reviewer not found")
		return
	}
	a := &assignment{Reviewer: strings.ToLower(reviewer.Email)}
	a.ID = s.id()
	a.PaperID = p.ID
	a.PaperTitle = p.Title
	a.DueAt = in.DueAt.UTC()
	s.assignments[a.ID] = a
	writeJSON(w, http.StatusCreated, a.ReviewAssignment)
}

func (s *Server) assignmentsWhere(keep func(*assignment) bool) []*assignment {
	var out []*assignment
	for _, a := range s.assignments {
		if keep(a) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(x, y *assignment) int { return int(x.ID - y.ID) })
	return out
}

func (s *Server) paperAssignments(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	s.mu.Lock()
	out := []models.ReviewAssignment{}
	for _, a := range s.assignmentsWhere(func(a *assignment) bool { return a.PaperID == id }) {
		out = append(out, a.ReviewAssignment)
	}
	s.mu.Unlock()
	s.writeList(w, out)
}

func (s *Server) paperReviews(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	s.mu.Lock()
	out := []models.Review{}
	for _, a := range s.assignmentsWhere(func(a *assignment) bool { return a.PaperID == id && a.Review != nil }) {
		out = append(out, *a.Review)
	}
	s.mu.Unlock()
	// admin reviews come back paged
	writeJSON(w, http.StatusOK, map[string]any{"content": out})
}

func (s *Server) createReviewer(w http.ResponseWriter, r *http.Request) {
	var in models.NewReviewer
	if !decode(w, r, &in) {
		return
	}
	if in.Email == "" || in.Password == "" {
		writeErr(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users[strings.ToLower(in.Email)] != nil {
		writeErr(w, http.StatusConflict, "Email already registered")
		return
	}
	s.addUserLocked(in.Email, in.Password, in.FirstName, in.LastName, RoleReviewer)
	w.WriteHeader(http.StatusCreated)
}
