package screens

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/client/nav"
	"github.com/dmitrijs2005/confportal/internal/client/services"
	"github.com/dmitrijs2005/confportal/internal/common"
)

// CameraReadyScreen uploads and submits final versions of the author's papers.
type CameraReadyScreen struct {
	d      *Deps
	m      mounted
	papers latest[[]models.Paper]
}

func NewCameraReadyScreen(d *Deps) *CameraReadyScreen { return &CameraReadyScreen{d: d} }

func (s *CameraReadyScreen) Papers() []models.Paper { return s.papers.get() }

func (s *CameraReadyScreen) Reset() { s.papers.reset() }

func (s *CameraReadyScreen) Mount(ctx context.Context, t nav.Ticket) error {
	s.m.set(t)
	s.Reset()
	return s.load(ctx, t)
}

func (s *CameraReadyScreen) load(ctx context.Context, t nav.Ticket) error {
	papers, err := s.d.API.ListPapers(ctx, 0, s.d.pageSize())
	if err != nil {
		return s.d.fail(ctx, t, err, "Failed to load papers")
	}
	return s.papers.apply(t, papers)
}

// CanUpload reports whether the upload action is enabled for paper id.
func (s *CameraReadyScreen) CanUpload(id int64) bool {
	i := slices.IndexFunc(s.Papers(), func(p models.Paper) bool { return p.ID == id })
	return i >= 0 && models.CanUploadCameraReady(s.Papers()[i].Status)
}

// Upload is blocked locally when no file is chosen or the paper's status does
// not allow a camera-ready version.
func (s *CameraReadyScreen) Upload(ctx context.Context, id int64, f *services.Upload) error {
	t := s.m.ticket()
	if f == nil || f.Body == nil {
		return s.d.fail(ctx, t, common.Invalid("file", "choose a file first"), "Invalid input.")
	}
	if !s.CanUpload(id) {
		return s.d.fail(ctx, t, common.Invalid("paper", fmt.Sprintf("camera-ready upload is not available for paper %d", id)), "Invalid input.")
	}
	if err := s.d.API.UploadCameraReady(ctx, id, f.Name, f.Body); err != nil {
		_ = s.d.fail(ctx, t, err, "Camera-ready upload failed.")
		_ = s.load(ctx, t)
		return err
	}
	s.d.info(t, "Camera-ready file uploaded.")
	return s.load(ctx, t)
}

func (s *CameraReadyScreen) Submit(ctx context.Context, id int64) error {
	t := s.m.ticket()
	if err := s.d.API.SubmitCameraReady(ctx, id); err != nil {
		_ = s.d.fail(ctx, t, err, "Camera-ready submission failed.")
		_ = s.load(ctx, t)
		return err
	}
	s.d.info(t, "Camera-ready version submitted.")
	return s.load(ctx, t)
}
