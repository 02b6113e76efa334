package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/confportal/internal/client/models"
)

// RefKind selects a reference-data collection.
type RefKind string

const (
	RefTopics     RefKind = "topics"
	RefPaperTypes RefKind = "paper-types"
)

func (c *HTTPClient) Topics(ctx context.Context) ([]models.Topic, error) {
	var out models.List[models.Topic]
	if err := c.Do(ctx, http.MethodGet, "/api/reference/topics", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) PaperTypes(ctx context.Context) ([]models.PaperType, error) {
	var out models.List[models.PaperType]
	if err := c.Do(ctx, http.MethodGet, "/api/reference/paper-types", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func adminRefPath(kind RefKind) string {
	return "/api/admin/reference/" + string(kind)
}

func (c *HTTPClient) AdminRefList(ctx context.Context, kind RefKind) ([]models.RefItem, error) {
	var out models.List[models.RefItem]
	if err := c.Do(ctx, http.MethodGet, adminRefPath(kind), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AdminRefCreate(ctx context.Context, kind RefKind, name string) (*models.RefItem, error) {
	var out models.RefItem
	if err := c.Do(ctx, http.MethodPost, adminRefPath(kind), nil, map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AdminRefUpdate(ctx context.Context, kind RefKind, id int64, u models.RefUpdate) (*models.RefItem, error) {
	var out models.RefItem
	if err := c.Do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", adminRefPath(kind), id), nil, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminRefDelete answers ErrConflict when the entry is still referenced or active.
func (c *HTTPClient) AdminRefDelete(ctx context.Context, kind RefKind, id int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", adminRefPath(kind), id), nil, nil, nil)
}

func (c *HTTPClient) Settings(ctx context.Context) (*models.ConferenceSettings, error) {
	var out models.ConferenceSettings
	if err := c.Do(ctx, http.MethodGet, "/api/admin/reference/settings", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateSettings(ctx context.Context, s models.ConferenceSettings) (*models.ConferenceSettings, error) {
	var out models.ConferenceSettings
	if err := c.Do(ctx, http.MethodPut, "/api/admin/reference/settings", nil, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
