package youtrack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// AttachFile uploads a local file as an attachment on an issue. The upload
// is multipart/form-data; unlike the JSON endpoints it carries no JSON
// content type.
func (c *Client) AttachFile(ctx context.Context, issueID, filePath string) (*Attachment, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open attachment: %w", err)
	}
	defer func() { _ = f.Close() }()

	return c.Attach(ctx, issueID, filepath.Base(filePath), f)
}

// Attach uploads attachment content from a reader under the given file
// name.
func (c *Client) Attach(ctx context.Context, issueID, fileName string, content io.Reader) (*Attachment, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("create multipart form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("write attachment content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart form: %w", err)
	}

	u := c.baseURL + "/api/issues/" + url.PathEscape(issueID) + "/attachments?" +
		fieldsQuery("id,name").Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("youtrack request", "method", http.MethodPost,
		"path", "/api/issues/"+issueID+"/attachments", "status", resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	// The attachments endpoint wraps the result in a list.
	var attachments []Attachment
	if err := json.Unmarshal(respBody, &attachments); err != nil || len(attachments) == 0 {
		var single Attachment
		if err := json.Unmarshal(respBody, &single); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return &single, nil
	}
	return &attachments[0], nil
}
