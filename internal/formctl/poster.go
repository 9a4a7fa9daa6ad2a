package formctl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPPoster posts the form to the mail endpoint the way the page does.
type HTTPPoster struct {
	url    string
	client *http.Client
}

// NewHTTPPoster creates a poster for endpoint, e.g.
// "https://apexdrive.ru/mail.php". A nil client gets a 30s timeout.
func NewHTTPPoster(endpoint string, client *http.Client) *HTTPPoster {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPPoster{url: endpoint, client: client}
}

// Post sends fields form-encoded and decodes the {success, message} answer.
// Non-2xx statuses still carry that body and are not errors by themselves.
func (p *HTTPPoster) Post(ctx context.Context, fields url.Values) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, strings.NewReader(fields.Encode()))
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := p.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("failed to send form: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return Response{}, fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err)
	}
	return out, nil
}
