package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/confportal/internal/client/models"
)

func (c *HTTPClient) ListContributions(ctx context.Context, page, size int) ([]models.Contribution, error) {
	var out models.List[models.Contribution]
	if err := c.Do(ctx, http.MethodGet, "/api/contributions", pageQuery(page, size), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateContribution(ctx context.Context, in models.NewContribution) (*models.Contribution, error) {
	var out models.Contribution
	if err := c.Do(ctx, http.MethodPost, "/api/contributions", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteContribution(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/contributions/%d", id), nil, nil, nil)
}
