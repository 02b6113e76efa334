package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/confportal/internal/client/models"
)

// Paths probed by the role resolver. A 2xx answer proves the capability.
const (
	AdminProbePath    = "/api/admin/reference/topics"
	ReviewerProbePath = "/api/reviewer/assignments"
)

func (c *HTTPClient) MyAssignments(ctx context.Context) ([]models.ReviewAssignment, error) {
	var out models.List[models.ReviewAssignment]
	if err := c.Do(ctx, http.MethodGet, ReviewerProbePath, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AcceptAssignment(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodPost, fmt.Sprintf("/api/reviewer/assignments/%d/accept", id), nil, nil, nil)
}

func (c *HTTPClient) SubmitReview(ctx context.Context, id int64, r models.ReviewSubmission) error {
	return c.Do(ctx, http.MethodPost, fmt.Sprintf("/api/reviewer/assignments/%d/review", id), nil, r, nil)
}

func (c *HTTPClient) AssignedPaper(ctx context.Context, assignmentID int64) (*models.AssignedPaper, error) {
	var out models.AssignedPaper
	path := fmt.Sprintf("/api/reviewer/assignments/%d/paper", assignmentID)
	if err := c.Do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AssignedPapers(ctx context.Context) ([]models.AssignedPaper, error) {
	var out models.List[models.AssignedPaper]
	if err := c.Do(ctx, http.MethodGet, "/api/reviewer/papers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Probe issues an authenticated GET and discards the body. Any error means
// the capability is not (or not currently) available.
func (c *HTTPClient) Probe(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodGet, path, nil, nil, nil)
}
