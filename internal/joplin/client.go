// Package joplin is a minimal client for the Joplin data API, covering the
// three operations the organizer needs: create a note, create a tag, and
// attach a tag to a note. Annotation is advisory; callers treat failures as
// non-fatal.
package joplin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a Joplin clipper/data API endpoint.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL (e.g.
// http://127.0.0.1:41184) using the personal API token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type note struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
}

type tag struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type searchResult struct {
	Items []tag `json:"items"`
}

// Ping verifies the API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ping joplin: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping joplin: status %d", resp.StatusCode)
	}
	return nil
}

// CreateNote creates a note and returns its ID.
func (c *Client) CreateNote(ctx context.Context, title, body string) (string, error) {
	var created note
	if err := c.post(ctx, "/notes", note{Title: title, Body: body}, &created); err != nil {
		return "", fmt.Errorf("create note: %w", err)
	}
	return created.ID, nil
}

// CreateTag creates a tag and returns its ID. Joplin rejects duplicate tag
// titles, so an existing tag is looked up and reused instead.
func (c *Client) CreateTag(ctx context.Context, name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	var created tag
	err := c.post(ctx, "/tags", tag{Title: name}, &created)
	if err == nil {
		return created.ID, nil
	}

	if id, findErr := c.findTag(ctx, name); findErr == nil && id != "" {
		return id, nil
	}

	return "", fmt.Errorf("create tag %q: %w", name, err)
}

// AddTagToNote attaches an existing tag to an existing note.
func (c *Client) AddTagToNote(ctx context.Context, tagID, noteID string) error {
	path := fmt.Sprintf("/tags/%s/notes", tagID)
	if err := c.post(ctx, path, note{ID: noteID}, nil); err != nil {
		return fmt.Errorf("tag note: %w", err)
	}
	return nil
}

// findTag resolves a tag ID by title via the search endpoint.
func (c *Client) findTag(ctx context.Context, name string) (string, error) {
	q := url.Values{}
	q.Set("query", name)
	q.Set("type", "tag")
	q.Set("token", c.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search tag: status %d", resp.StatusCode)
	}

	var result searchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	for _, t := range result.Items {
		if strings.EqualFold(t.Title, name) {
			return t.ID, nil
		}
	}
	return "", nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	u := fmt.Sprintf("%s%s?token=%s", c.baseURL, path, url.QueryEscape(c.token))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("joplin returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
