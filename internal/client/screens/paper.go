package screens

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/client/nav"
	"github.com/dmitrijs2005/confportal/internal/client/services"
	"github.com/dmitrijs2005/confportal/internal/common"
)

type PaperData struct {
	Topics     []models.Topic
	PaperTypes []models.PaperType
	Papers     []models.Paper
}

// PaperScreen is the submission form plus co-author management of the
// author's existing papers.
type PaperScreen struct {
	d    *Deps
	m    mounted
	data latest[PaperData]
}

func NewPaperScreen(d *Deps) *PaperScreen { return &PaperScreen{d: d} }

func (s *PaperScreen) Data() PaperData { return s.data.get() }

func (s *PaperScreen) Reset() { s.data.reset() }

func (s *PaperScreen) Mount(ctx context.Context, t nav.Ticket) error {
	s.m.set(t)
	s.Reset()
	var data PaperData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.d.API.Topics(gctx)
		data.Topics = v
		return err
	})
	g.Go(func() error {
		v, err := s.d.API.PaperTypes(gctx)
		data.PaperTypes = v
		return err
	})
	g.Go(func() error {
		v, err := s.d.API.ListPapers(gctx, 0, s.d.pageSize())
		data.Papers = v
		return err
	})
	if err := g.Wait(); err != nil {
		return s.d.fail(ctx, t, err, "Failed to load reference data")
	}
	return s.data.apply(t, data)
}

func (s *PaperScreen) reloadPapers(ctx context.Context, t nav.Ticket) error {
	papers, err := s.d.API.ListPapers(ctx, 0, s.d.pageSize())
	if err != nil {
		return s.d.fail(ctx, t, err, "Failed to load papers")
	}
	if !t.Current() {
		return ErrStale
	}
	s.data.mu.Lock()
	s.data.v.Papers = papers
	s.data.mu.Unlock()
	return nil
}

// Submit validates the form locally; an invalid form sends no request.
func (s *PaperScreen) Submit(ctx context.Context, f services.PaperForm) (*models.Paper, error) {
	t := s.m.ticket()
	if err := f.Validate(); err != nil {
		s.d.Notify.Alert("Please fill all required fields: " + err.Error())
		return nil, err
	}
	p, err := s.d.Papers.Submit(ctx, f)
	if err != nil {
		_ = s.d.fail(ctx, t, err, "Create/submit failed. Check required fields and settings.")
		if p != nil {
			_ = s.reloadPapers(ctx, t)
		}
		return p, err
	}
	s.d.info(t, "Paper created and submitted successfully.")
	return p, s.reloadPapers(ctx, t)
}

func (s *PaperScreen) AddCoAuthor(ctx context.Context, paperID int64, a models.CoAuthor) error {
	t := s.m.ticket()
	if err := services.ValidateCoAuthor(a); err != nil {
		return s.d.fail(ctx, t, err, "Invalid input.")
	}
	if _, err := s.d.API.AddCoAuthor(ctx, paperID, a); err != nil {
		return s.d.fail(ctx, t, err, "Adding co-author failed.")
	}
	return s.reloadPapers(ctx, t)
}

func (s *PaperScreen) UpdateCoAuthor(ctx context.Context, paperID, coAuthorID int64, a models.CoAuthor) error {
	t := s.m.ticket()
	if err := services.ValidateCoAuthor(a); err != nil {
		return s.d.fail(ctx, t, err, "Invalid input.")
	}
	if _, err := s.d.API.UpdateCoAuthor(ctx, paperID, coAuthorID, a); err != nil {
		return s.d.fail(ctx, t, err, "Updating co-author failed.")
	}
	return s.reloadPapers(ctx, t)
}

func (s *PaperScreen) DeleteCoAuthor(ctx context.Context, paperID, coAuthorID int64) error {
	t := s.m.ticket()
	if paperID == 0 || coAuthorID == 0 {
		return s.d.fail(ctx, t, common.Required("coAuthor"), "Invalid input.")
	}
	if err := s.d.API.DeleteCoAuthor(ctx, paperID, coAuthorID); err != nil {
		return s.d.fail(ctx, t, err, "Removing co-author failed.")
	}
	return s.reloadPapers(ctx, t)
}
