package models

import (
	"bytes"
	"encoding/json"
)

// List decodes either a bare JSON array or a page object with a "content"
// array. The backend answers both shapes depending on the endpoint.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = List[T]{}
		return nil
	}
	if b[0] == '[' {
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var page struct {
		Content []T `json:"content"`
	}
	if err := json.Unmarshal(b, &page); err != nil {
		return err
	}
	if page.Content == nil {
		page.Content = []T{}
	}
	*l = page.Content
	return nil
}
