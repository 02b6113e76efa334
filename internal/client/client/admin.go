package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/confportal/internal/client/models"
)

func (c *HTTPClient) AdminPapers(ctx context.Context) ([]models.Paper, error) {
	var out models.List[models.Paper]
	if err := c.Do(ctx, http.MethodGet, "/api/admin/papers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AdminPaper(ctx context.Context, id int64) (*models.Paper, error) {
	var out models.Paper
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/api/admin/papers/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) TechnicalCheck(ctx context.Context, id int64, passed bool) error {
	q := url.Values{"passed": {strconv.FormatBool(passed)}}
	return c.Do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/papers/%d/technical-check", id), q, nil, nil)
}

func (c *HTTPClient) FinalDecision(ctx context.Context, id int64, d models.FinalDecision) error {
	body := map[string]models.FinalDecision{"status": d}
	return c.Do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/papers/%d/final-decision", id), nil, body, nil)
}

func (c *HTTPClient) AssignReviewer(ctx context.Context, paperID int64, r models.ReviewerAssignmentRequest) error {
	return c.Do(ctx, http.MethodPost, fmt.Sprintf("/api/admin/reviews/papers/%d/assign", paperID), nil, r, nil)
}

func (c *HTTPClient) PaperAssignments(ctx context.Context, paperID int64) ([]models.ReviewAssignment, error) {
	var out models.List[models.ReviewAssignment]
	path := fmt.Sprintf("/api/admin/reviews/papers/%d/assignments", paperID)
	if err := c.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) PaperReviews(ctx context.Context, paperID int64) ([]models.Review, error) {
	var out models.List[models.Review]
	path := fmt.Sprintf("/api/admin/reviews/papers/%d/reviews", paperID)
	if err := c.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateReviewer(ctx context.Context, r models.NewReviewer) error {
	return c.Do(ctx, http.MethodPost, "/api/admin/users/reviewers", nil, r, nil)
}
