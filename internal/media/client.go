// Package media talks to the external media host. Uploaded bytes live
// there; this service only keeps the returned URL and assigned name.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadResult is the subset of the host's response the service keeps.
type UploadResult struct {
	URL    string `json:"url"`
	Name   string `json:"name"`
	FileID string `json:"fileId"`
}

// UploadError reports a non-success status from the media host.
type UploadError struct {
	Status int
	Body   string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("media: upload failed with status %d: %s", e.Status, e.Body)
}

type Client struct {
	httpClient *http.Client
	uploadURL  string
	privateKey string
	tag        string
}

// New builds a client for the host's upload endpoint. The private key
// authenticates via basic auth; tag is attached to every upload.
func New(uploadURL, privateKey, tag string) *Client {
	return &Client{
		httpClient: &http.Client{},
		uploadURL:  uploadURL,
		privateKey: privateKey,
		tag:        tag,
	}
}

// Upload forwards the file to the media host. The host enforces name
// uniqueness, so the name it returns is authoritative.
func (c *Client) Upload(ctx context.Context, file io.Reader, fileName string) (*UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("media: build form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("media: read file: %w", err)
	}

	fields := map[string]string{
		"fileName":          fileName,
		"useUniqueFileName": "true",
		"tags":              c.tag,
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("media: build form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("media: build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &body)
	if err != nil {
		return nil, fmt.Errorf("media: build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.SetBasicAuth(c.privateKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media: send upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &UploadError{Status: resp.StatusCode, Body: string(msg)}
	}

	var res UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("media: decode response: %w", err)
	}
	return &res, nil
}
