// Package httpclient provides shared HTTP client construction for the
// remote collaborator endpoints (upload tickets, object storage, campaign
// generation). The remote API is unauthenticated; all clients are plain
// timeout-bounded clients.
package httpclient

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds calls to the remote campaign API. Generation calls
// are slow (the collaborator runs multi-agent analysis), so this is
// deliberately generous.
const DefaultTimeout = 90 * time.Second

// NewDefaultHTTPClient creates a simple HTTP client with a timeout
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
	}
}
