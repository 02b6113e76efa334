package clienttest

import (
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrijs2005/confportal/internal/client/models"
)

var (
	speechTypes = []string{"KEYNOTE", "INVITED", "TALK"}
	timeScopes  = []string{"MIN_10", "MIN_20", "MIN_30", "MIN_45", "MIN_60"}
)

func (s *Server) contributionsOfLocked(email string) []models.Contribution {
	out := []models.Contribution{}
	ids := make([]int64, 0, len(s.contributions))
	for id := range s.contributions {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if s.owners[id] == email {
			out = append(out, *s.contributions[id])
		}
	}
	return out
}

func (s *Server) listContributions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := s.contributionsOfLocked(strings.ToLower(current(r).Email))
	s.mu.Unlock()
	s.writeList(w, page(r, out))
}

func (s *Server) createContribution(w http.ResponseWriter, r *http.Request) {
	var in models.NewContribution
	if !decode(w, r, &in) {
		return
	}
	switch {
	case len(in.Roles) == 0 || in.Title == "":
		writeErr(w, http.StatusBadRequest, "Roles and title are required")
		return
	case !slices.Contains(speechTypes, in.SpeechType):
		writeErr(w, http.StatusBadRequest, "Unknown speech type "+in.SpeechType)
		return
	case !slices.Contains(timeScopes, in.TimeScope):
		writeErr(w, http.StatusBadRequest, "Unknown time scope "+in.TimeScope)
		return
	}
	for _, role := range in.Roles {
		if role != strings.ToUpper(role) || strings.Contains(role, " ") {
			writeErr(w, http.StatusBadRequest, "Unknown role "+role)
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := &models.Contribution{
		ID:              s.id(),
		Title:           in.Title,
		Roles:           in.Roles,
		Keywords:        in.Keywords,
		Description:     in.Description,
		Bio:             in.Bio,
		SpeechType:      in.SpeechType,
		TimeScope:       in.TimeScope,
		Audience:        in.Audience,
		PreviousTalkURL: in.PreviousTalkURL,
	}
	s.contributions[c.ID] = c
	s.owners[c.ID] = strings.ToLower(current(r).Email)
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) deleteContribution(w http.ResponseWriter, r *http.Request) {
	id := pathID(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.contributions[id] == nil || s.owners[id] != strings.ToLower(current(r).Email) {
		writeErr(w, http.StatusNotFound, "Contribution not found")
		return
	}
	delete(s.contributions, id)
	delete(s.owners, id)
	w.WriteHeader(http.StatusNoContent)
}
