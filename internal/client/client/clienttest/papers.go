package clienttest

import (
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/confportal/internal/client/models"
)

func page[T any](r *http.Request, items []T) []T {
	q := r.URL.Query()
	size, err := strconv.Atoi(q.Get("size"))
	if err != nil || size <= 0 {
		return items
	}
	p, _ := strconv.Atoi(q.Get("page"))
	from := p * size
	if from >= len(items) {
		return []T{}
	}
	return items[from:min(from+size, len(items))]
}

// ownedPaper resolves {id} to a paper of the current user or answers 404.
func (s *Server) ownedPaper(w http.ResponseWriter, r *http.Request) *paper {
	p := s.papers[pathID(r, "id")]
	if p == nil || p.Owner != strings.ToLower(current(r).Email) {
		writeErr(w, http.StatusNotFound, "Paper not found")
		return nil
	}
	return p
}

func (s *Server) listPapers(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(current(r).Email)
	s.mu.Lock()
	out := []models.Paper{}
	for _, id := range s.sortedPaperIDs() {
		if p := s.papers[id]; p.Owner == email {
			out = append(out, p.Paper)
		}
	}
	s.mu.Unlock()
	s.writeList(w, page(r, out))
}

func (s *Server) refByID(list []*models.RefItem, id int64) *models.RefItem {
	for _, it := range list {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func (s *Server) createPaper(w http.ResponseWriter, r *http.Request) {
	var in models.NewPaper
	if !decode(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeErr(w, http.StatusBadRequest, "Title is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	pt := s.refByID(s.paperTypes, in.PaperTypeID)
	if pt == nil || !pt.IsActive() {
		writeErr(w, http.StatusBadRequest, "Unknown paper type")
		return
	}
	p := &paper{Owner: strings.ToLower(current(r).Email), TopicIDs: in.TopicIDs}
	p.ID = s.id()
	p.Title = in.Title
	p.Keywords = in.Keywords
	p.Abstract = in.Abstract
	p.PaperTypeID = pt.ID
	p.PaperType = pt.Name
	p.Status = models.StatusDraft
	for _, tid := range in.TopicIDs {
		t := s.refByID(s.topics, tid)
		if t == nil || !t.IsActive() {
			writeErr(w, http.StatusBadRequest, "Unknown topic "+strconv.FormatInt(tid, 10))
			return
		}
		p.Topics = append(p.Topics, t.Name)
	}
	for _, a := range in.CoAuthors {
		a.ID = s.id()
		p.CoAuthors = append(p.CoAuthors, a)
	}
	s.papers[p.ID] = p
	writeJSON(w, http.StatusCreated, p.Paper)
}

func (s *Server) deletePaper(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.ownedPaper(w, r)
	if p == nil {
		return
	}
	delete(s.papers, p.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) uploadFile(cameraReady bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			writeErr(w, http.StatusBadRequest, "File part is required")
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		p := s.ownedPaper(w, r)
		if p == nil {
			return
		}
		if cameraReady {
			if !s.settings.CameraReadyOpen {
				writeErr(w, http.StatusBadRequest, "Camera-ready window is closed")
				return
			}
			if !models.CanUploadCameraReady(p.Status) && p.Status != models.StatusAccepted {
				writeErr(w, http.StatusBadRequest, "Camera-ready not allowed in status "+string(p.Status))
				return
			}
		}
		id := s.id()
		s.files[id] = file{Name: hdr.Filename, Data: data}
		if cameraReady {
			p.CameraReadyFileID = &id
			p.Status = models.StatusCameraReadyPending
		} else {
			p.FileID = &id
		}
		writeJSON(w, http.StatusOK, p.Paper)
	}
}

func (s *Server) submitPaper(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.ownedPaper(w, r)
	if p == nil {
		return
	}
	switch {
	case !s.settings.SubmissionsOpen:
		writeErr(w, http.StatusBadRequest, "Submissions are closed")
	case p.Status != models.StatusDraft:
		writeErr(w, http.StatusBadRequest, "Only drafts can be submitted")
	case p.Keywords == "" || p.Abstract == "" || len(p.TopicIDs) == 0:
		writeErr(w, http.StatusBadRequest, "Paper is incomplete")
	default:
		p.Status = models.StatusSubmitted
		writeJSON(w, http.StatusOK, p.Paper)
	}
}

func (s *Server) submitCameraReady(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.ownedPaper(w, r)
	if p == nil {
		return
	}
	if p.CameraReadyFileID == nil {
		writeErr(w, http.StatusBadRequest, "Upload the camera-ready file first")
		return
	}
	p.Status = models.StatusCameraReadySubmitted
	writeJSON(w, http.StatusOK, p.Paper)
}

func (s *Server) withdrawPaper(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.ownedPaper(w, r)
	if p == nil {
		return
	}
	if p.Status == models.StatusWithdrawn {
		writeErr(w, http.StatusConflict, "Paper already withdrawn")
		return
	}
	p.Status = models.StatusWithdrawn
	writeJSON(w, http.StatusOK, p.Paper)
}

func validCoAuthor(a models.CoAuthor) bool {
	return a.FirstName != "" && a.LastName != "" && a.Email != "" && a.Affiliation != ""
}

func (s *Server) addCoAuthor(w http.ResponseWriter, r *http.Request) {
	var in models.CoAuthor
	if !decode(w, r, &in) {
		return
	}
	if !validCoAuthor(in) {
		writeErr(w, http.StatusBadRequest, "Co-author is incomplete")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.ownedPaper(w, r)
	if p == nil {
		return
	}
	in.ID = s.id()
	p.CoAuthors = append(p.CoAuthors, in)
	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) updateCoAuthor(w http.ResponseWriter, r *http.Request) {
	var in models.CoAuthor
	if !decode(w, r, &in) {
		return
	}
	if !validCoAuthor(in) {
		writeErr(w, http.StatusBadRequest, "Co-author is incomplete")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.ownedPaper(w, r)
	if p == nil {
		return
	}
	cid := pathID(r, "cid")
	i := slices.IndexFunc(p.CoAuthors, func(a models.CoAuthor) bool { return a.ID == cid })
	if i < 0 {
		writeErr(w, http.StatusNotFound, "Co-author not found")
		return
	}
	in.ID = cid
	p.CoAuthors[i] = in
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) deleteCoAuthor(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.ownedPaper(w, r)
	if p == nil {
		return
	}
	cid := pathID(r, "cid")
	n := len(p.CoAuthors)
	p.CoAuthors = slices.DeleteFunc(p.CoAuthors, func(a models.CoAuthor) bool { return a.ID == cid })
	if len(p.CoAuthors) == n {
		writeErr(w, http.StatusNotFound, "Co-author not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) downloadFile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	f, ok := s.files[pathID(r, "id")]
	s.mu.Unlock()
	if !ok {
		writeErr(w, http.StatusNotFound, "File not found")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+f.Name+`"`)
	_, _ = w.Write(f.Data)
}
