package screens

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/confportal/internal/client/models"
	"github.com/dmitrijs2005/confportal/internal/client/nav"
	"github.com/dmitrijs2005/confportal/internal/common"
)

// AssignmentRow is an assignment with its due-soon flag resolved.
type AssignmentRow struct {
	models.ReviewAssignment
	DueSoonFlag bool
}

// ReviewerScreen lists the reviewer's assignments.
type ReviewerScreen struct {
	d      *Deps
	m      mounted
	rows   latest[[]AssignmentRow]
	opened latest[*models.AssignedPaper]
}

func NewReviewerScreen(d *Deps) *ReviewerScreen { return &ReviewerScreen{d: d} }

func (s *ReviewerScreen) Assignments() []AssignmentRow { return s.rows.get() }

// Opened is the paper last opened with OpenPaper.
func (s *ReviewerScreen) Opened() *models.AssignedPaper { return s.opened.get() }

func (s *ReviewerScreen) Reset() {
	s.rows.reset()
	s.opened.reset()
}

func (s *ReviewerScreen) Mount(ctx context.Context, t nav.Ticket) error {
	s.m.set(t)
	s.Reset()
	return s.load(ctx, t)
}

func (s *ReviewerScreen) load(ctx context.Context, t nav.Ticket) error {
	list, err := s.d.API.MyAssignments(ctx)
	if err != nil {
		return s.d.fail(ctx, t, err, "Failed to load assignments")
	}
	now := s.d.now()
	rows := make([]AssignmentRow, 0, len(list))
	for _, a := range list {
		rows = append(rows, AssignmentRow{ReviewAssignment: a, DueSoonFlag: a.IsDueSoon(now, s.d.DueSoonWindow)})
	}
	return s.rows.apply(t, rows)
}

func (s *ReviewerScreen) Accept(ctx context.Context, id int64) error {
	t := s.m.ticket()
	if err := s.d.API.AcceptAssignment(ctx, id); err != nil {
		_ = s.d.fail(ctx, t, err, "Failed to accept assignment")
		_ = s.load(ctx, t)
		return err
	}
	return s.load(ctx, t)
}

func (s *ReviewerScreen) SubmitReview(ctx context.Context, id int64, decision, comments string) error {
	t := s.m.ticket()
	d, ok := models.ParseReviewDecision(decision)
	if !ok {
		return s.d.fail(ctx, t, common.Invalid("decision", "must be ACCEPT, ACCEPT_WITH_REVISIONS or REJECT"), "Invalid input.")
	}
	req := models.ReviewSubmission{Decision: d, Comments: strings.TrimSpace(comments)}
	if err := s.d.API.SubmitReview(ctx, id, req); err != nil {
		_ = s.d.fail(ctx, t, err, "Failed to submit review")
		_ = s.load(ctx, t)
		return err
	}
	s.d.info(t, "Review submitted.")
	return s.load(ctx, t)
}

func (s *ReviewerScreen) OpenPaper(ctx context.Context, assignmentID int64) (*models.AssignedPaper, error) {
	t := s.m.ticket()
	p, err := s.d.API.AssignedPaper(ctx, assignmentID)
	if err != nil {
		return nil, s.d.fail(ctx, t, err, "Failed to load paper")
	}
	return p, s.opened.apply(t, p)
}

// Download saves the opened paper's file.
func (s *ReviewerScreen) Download(ctx context.Context, fileID int64) (string, error) {
	return download(ctx, s.d, s.m.ticket(), fileID)
}

// AssignedPapers lists every paper the reviewer has been given.
func (s *ReviewerScreen) AssignedPapers(ctx context.Context) ([]models.AssignedPaper, error) {
	t := s.m.ticket()
	papers, err := s.d.API.AssignedPapers(ctx)
	if err != nil {
		return nil, s.d.fail(ctx, t, err, "Failed to load assigned papers")
	}
	return papers, nil
}
