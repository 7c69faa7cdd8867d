// Package docs applies assembled operation batches to a Google Docs document.
package docs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2/google"
)

const (
	defaultBaseURL = "https://docs.googleapis.com/v1"
	documentsScope = "https://www.googleapis.com/auth/documents"
)

// Client is a thin REST client for the Docs API, authenticated with a
// service account.
type Client struct {
	httpClient *http.Client
	baseURL    string
	email      string
}

// NewClient builds a client from a service-account key file. The returned
// client reuses one authenticated http.Client for all calls.
func NewClient(ctx context.Context, serviceAccountFile string, timeout time.Duration) (*Client, error) {
	data, err := os.ReadFile(serviceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("could not read service account file: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(data, documentsScope)
	if err != nil {
		return nil, fmt.Errorf("could not parse service account credentials: %w", err)
	}

	httpClient := conf.Client(ctx)
	httpClient.Timeout = timeout

	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		email:      conf.Email,
	}, nil
}

// ServiceAccountEmail returns the authenticated account's email. The
// destination document must be shared with this address.
func (c *Client) ServiceAccountEmail() string {
	return c.email
}

// Document is the subset of the documents.get response needed to compute an
// insertion point.
type Document struct {
	DocumentID string `json:"documentId"`
	Body       struct {
		Content []StructuralElement `json:"content"`
	} `json:"body"`
}

// StructuralElement is one body element with its index range.
type StructuralElement struct {
	StartIndex int             `json:"startIndex"`
	EndIndex   int             `json:"endIndex"`
	Paragraph  json.RawMessage `json:"paragraph,omitempty"`
}

// GetDocument fetches the document structure.
func (c *Client) GetDocument(ctx context.Context, docID string) (*Document, error) {
	url := fmt.Sprintf("%s/documents/%s", c.baseURL, docID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("documents.get failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read documents.get response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("documents.get error (status %d): %s", resp.StatusCode, string(body))
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("could not unmarshal document: %w", err)
	}
	return &doc, nil
}

// BatchUpdate applies the requests to the document as one atomic batch.
func (c *Client) BatchUpdate(ctx context.Context, docID string, requests []Request) error {
	if len(requests) == 0 {
		return nil
	}

	payload, err := json.Marshal(map[string]any{"requests": requests})
	if err != nil {
		return fmt.Errorf("could not marshal batch update: %w", err)
	}

	url := fmt.Sprintf("%s/documents/%s:batchUpdate", c.baseURL, docID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("batchUpdate failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("could not read batchUpdate response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("batchUpdate error (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}
