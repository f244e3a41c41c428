// Package storage implements the photo store against a Supabase-compatible
// storage HTTP API. Objects are uploaded into a single bucket and served via
// public URLs.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const uploadTimeout = 15 * time.Second

// Client uploads photos to a Supabase storage bucket.
type Client struct {
	baseURL string
	bucket  string
	apiKey  string
	client  *http.Client
}

// NewClient creates a photo store client for the given project URL and bucket.
func NewClient(baseURL, bucket, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		bucket:  bucket,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: uploadTimeout},
	}
}

// Put uploads the object under key and returns its public URL. Existing keys
// are not overwritten; callers supply a fresh key per enrollment.
func (c *Client) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("photo store: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("photo store: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("photo store: upload failed (status %d): %s", resp.StatusCode, string(body))
	}

	return c.PublicURL(key), nil
}

// PublicURL returns the retrievable URL for an object key.
func (c *Client) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, key)
}
