package client

import (
	"context"
	"fmt"
)

// DownloadFile fetches a stored file. The name falls back to file-<id>.pdf.
func (c *HTTPClient) DownloadFile(ctx context.Context, fileID int64) (string, []byte, error) {
	name, data, err := c.Download(ctx, fmt.Sprintf("/api/files/%d", fileID))
	if err != nil {
		return "", nil, err
	}
	if name == "" {
		name = fmt.Sprintf("file-%d.pdf", fileID)
	}
	return name, data, nil
}
