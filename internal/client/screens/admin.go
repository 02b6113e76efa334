package screens

import (
	"context"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/client/nav"
	"github.com/dmitrijs2005/confportal/internal/client/services"
	"github.com/dmitrijs2005/confportal/internal/common"
)

// PaperDetail is the admin's per-paper view.
type PaperDetail struct {
	Paper       models.Paper
	Assignments []models.ReviewAssignment
	Reviews     []models.Review
}

// AdminScreen manages papers, reviewer assignments and reviewer accounts.
// Every action is authorized by the backend; a 403 is shown like any failure.
type AdminScreen struct {
	d      *Deps
	m      mounted
	papers latest[[]models.Paper]
	detail latest[*PaperDetail]
}

func NewAdminScreen(d *Deps) *AdminScreen { return &AdminScreen{d: d} }

func (s *AdminScreen) Papers() []models.Paper { return s.papers.get() }

func (s *AdminScreen) Detail() *PaperDetail { return s.detail.get() }

func (s *AdminScreen) Reset() {
	s.papers.reset()
	s.detail.reset()
}

func (s *AdminScreen) Mount(ctx context.Context, t nav.Ticket) error {
	s.m.set(t)
	s.Reset()
	return s.load(ctx, t)
}

func (s *AdminScreen) load(ctx context.Context, t nav.Ticket) error {
	papers, err := s.d.API.AdminPapers(ctx)
	if err != nil {
		return s.d.fail(ctx, t, err, "Failed to load papers")
	}
	return s.papers.apply(t, papers)
}

func (s *AdminScreen) mutate(ctx context.Context, t nav.Ticket, err error, fallback, ok string) error {
	if err != nil {
		_ = s.d.fail(ctx, t, err, fallback)
		_ = s.load(ctx, t)
		return err
	}
	s.d.info(t, ok)
	return s.load(ctx, t)
}

func (s *AdminScreen) TechnicalCheck(ctx context.Context, id int64, passed bool) error {
	t := s.m.ticket()
	return s.mutate(ctx, t, s.d.API.TechnicalCheck(ctx, id, passed),
		"Technical check failed.", "Technical check recorded.")
}

func (s *AdminScreen) FinalDecision(ctx context.Context, id int64, decision string) error {
	t := s.m.ticket()
	d, ok := models.ParseFinalDecision(decision)
	if !ok {
		return s.d.fail(ctx, t, common.Invalid("decision", "must be ACCEPTED, REJECTED or REVISIONS_REQUIRED"), "Invalid input.")
	}
	return s.mutate(ctx, t, s.d.API.FinalDecision(ctx, id, d),
		"Final decision failed.", "Decision saved.")
}

// AssignReviewer takes the reviewer as a numeric id or an email address.
func (s *AdminScreen) AssignReviewer(ctx context.Context, paperID int64, reviewer string, dueAt time.Time) error {
	t := s.m.ticket()
	reviewer = strings.TrimSpace(reviewer)
	if reviewer == "" {
		return s.d.fail(ctx, t, common.Required("reviewer"), "Invalid input.")
	}
	if dueAt.IsZero() {
		return s.d.fail(ctx, t, common.Required("dueAt"), "Invalid input.")
	}
	req := models.ReviewerAssignmentRequest{DueAt: dueAt}
	if id, err := strconv.ParseInt(reviewer, 10, 64); err == nil {
		req.ReviewerID = id
	} else {
		req.ReviewerEmail = reviewer
	}
	err := s.d.API.AssignReviewer(ctx, paperID, req)
	if err == nil {
		_ = s.Open(ctx, paperID)
	}
	return s.mutate(ctx, t, err, "Assigning reviewer failed.", "Reviewer assigned.")
}

// Open loads one paper with its assignments and reviews.
func (s *AdminScreen) Open(ctx context.Context, id int64) error {
	t := s.m.ticket()
	var detail PaperDetail
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.d.API.AdminPaper(gctx, id)
		if p != nil {
			detail.Paper = *p
		}
		return err
	})
	g.Go(func() error {
		a, err := s.d.API.PaperAssignments(gctx, id)
		detail.Assignments = a
		return err
	})
	g.Go(func() error {
		r, err := s.d.API.PaperReviews(gctx, id)
		detail.Reviews = r
		return err
	})
	if err := g.Wait(); err != nil {
		return s.d.fail(ctx, t, err, "Failed to load paper details")
	}
	return s.detail.apply(t, &detail)
}

func (s *AdminScreen) CreateReviewer(ctx context.Context, f services.RegisterForm) error {
	t := s.m.ticket()
	if common.Blank(f.FirstName) || common.Blank(f.LastName) {
		return s.d.fail(ctx, t, common.Required("name"), "Invalid input.")
	}
	if common.Blank(f.Email) {
		return s.d.fail(ctx, t, common.Required("email"), "Invalid input.")
	}
	if err := services.ValidatePassword(f.Password, f.Confirm); err != nil {
		return s.d.fail(ctx, t, err, "Invalid input.")
	}
	err := s.d.API.CreateReviewer(ctx, models.NewReviewer{
		Email:     strings.TrimSpace(f.Email),
		Password:  f.Password,
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
	})
	if err != nil {
		return s.d.fail(ctx, t, err, "Creating reviewer failed.")
	}
	s.d.info(t, "Reviewer account created.")
	return nil
}
