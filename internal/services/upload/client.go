package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/viralforge/studio/internal/httpclient"
	"github.com/viralforge/studio/internal/interfaces"
	"github.com/viralforge/studio/internal/models"
)

// Client requests presigned upload tickets from the remote API and performs
// the direct binary PUT to object storage. Tickets are single-use by
// contract: no PUT is ever retried against the same ticket.
type Client struct {
	ticketURL  string
	httpClient *http.Client
	logger     arbor.ILogger
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// NewClient creates a new presigned upload client.
func NewClient(ticketURL string, opts ...ClientOption) *Client {
	c := &Client{
		ticketURL:  ticketURL,
		httpClient: httpclient.NewDefaultHTTPClient(30 * time.Second),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ticketRequest is the metadata POSTed to the ticket endpoint.
type ticketRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

// RequestUploadTicket POSTs file metadata to the remote API and returns a
// time-limited write ticket. Fails with *interfaces.NetworkError on
// transport failure and *interfaces.ServerError on non-2xx.
func (c *Client) RequestUploadTicket(ctx context.Context, fileName, mimeType string) (*models.UploadTicket, error) {
	payload, err := json.Marshal(ticketRequest{FileName: fileName, FileType: mimeType})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ticket request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ticketURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.logger != nil {
		c.logger.Debug().
			Str("file_name", fileName).
			Str("mime_type", mimeType).
			Msg("Requesting upload ticket")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &interfaces.NetworkError{Op: "upload ticket request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &interfaces.ServerError{
			Status:   resp.StatusCode,
			Body:     string(body),
			Endpoint: c.ticketURL,
		}
	}

	var ticket models.UploadTicket
	if err := json.NewDecoder(resp.Body).Decode(&ticket); err != nil {
		return nil, fmt.Errorf("failed to decode upload ticket: %w", err)
	}
	if ticket.UploadURL == "" || ticket.ObjectKey == "" {
		return nil, fmt.Errorf("incomplete upload ticket (uploadUrl and objectKey are required)")
	}

	return &ticket, nil
}

// PutObject performs the direct PUT of the file bytes to the ticket's URL
// with the ticket's required headers. Fails with *interfaces.NetworkError
// on transport failure and *interfaces.UploadError on non-2xx. The ticket
// is consumed either way; retries must request a fresh one.
func (c *Client) PutObject(ctx context.Context, ticket *models.UploadTicket, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, ticket.UploadURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create object PUT request: %w", err)
	}
	for name, value := range ticket.RequiredHeaders {
		req.Header.Set(name, value)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("object_key", ticket.ObjectKey).
			Int("bytes", len(body)).
			Msg("Uploading object")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &interfaces.NetworkError{Op: "object upload", Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &interfaces.UploadError{Status: resp.StatusCode}
	}

	return nil
}
