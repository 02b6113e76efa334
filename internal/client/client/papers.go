package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/confportal/internal/client/models"
)

func pageQuery(page, size int) url.Values {
	return url.Values{"page": {strconv.Itoa(page)}, "size": {strconv.Itoa(size)}}
}

func (c *HTTPClient) ListPapers(ctx context.Context, page, size int) ([]models.Paper, error) {
	var out models.List[models.Paper]
	if err := c.Do(ctx, http.MethodGet, "/api/papers", pageQuery(page, size), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreatePaper(ctx context.Context, p models.NewPaper) (*models.Paper, error) {
	var out models.Paper
	if err := c.Do(ctx, http.MethodPost, "/api/papers", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeletePaper(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/papers/%d", id), nil, nil, nil)
}

func (c *HTTPClient) UploadPaperFile(ctx context.Context, id int64, filename string, r io.Reader) error {
	return c.Upload(ctx, fmt.Sprintf("/api/papers/%d/file", id), "file", filename, r, nil)
}

func (c *HTTPClient) UploadCameraReady(ctx context.Context, id int64, filename string, r io.Reader) error {
	return c.Upload(ctx, fmt.Sprintf("/api/papers/%d/camera-ready", id), "file", filename, r, nil)
}

func (c *HTTPClient) paperAction(ctx context.Context, id int64, action string) error {
	return c.Do(ctx, http.MethodPost, fmt.Sprintf("/api/papers/%d/%s", id, action), nil, nil, nil)
}

func (c *HTTPClient) SubmitPaper(ctx context.Context, id int64) error {
	return c.paperAction(ctx, id, "submit")
}

func (c *HTTPClient) SubmitCameraReady(ctx context.Context, id int64) error {
	return c.paperAction(ctx, id, "submit-camera-ready")
}

func (c *HTTPClient) WithdrawPaper(ctx context.Context, id int64) error {
	return c.paperAction(ctx, id, "withdraw")
}

func (c *HTTPClient) AddCoAuthor(ctx context.Context, paperID int64, a models.CoAuthor) (*models.CoAuthor, error) {
	var out models.CoAuthor
	if err := c.Do(ctx, http.MethodPost, fmt.Sprintf("/api/papers/%d/co-authors", paperID), nil, a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateCoAuthor(ctx context.Context, paperID, coAuthorID int64, a models.CoAuthor) (*models.CoAuthor, error) {
	var out models.CoAuthor
	path := fmt.Sprintf("/api/papers/%d/co-authors/%d", paperID, coAuthorID)
	if err := c.Do(ctx, http.MethodPut, path, nil, a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteCoAuthor(ctx context.Context, paperID, coAuthorID int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/papers/%d/co-authors/%d", paperID, coAuthorID), nil, nil, nil)
}
