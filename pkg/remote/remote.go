package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/graphlens/lens/internal/util"
	"github.com/graphlens/lens/pkg/logger"
)

// Modes accepted by the GraphRAG query server.
var validModes = map[string]struct{}{
	"local":  {},
	"global": {},
	"drift":  {},
	"basic":  {},
}

// DefaultMode is used when the caller does not name one.
const DefaultMode = "global"

// QueryError reports a failed remote query. It is transient: resubmitting
// the query retries the request.
type QueryError struct {
	Mode   string
	Status int
	Err    error
}

func (e *QueryError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("remote %s query failed with status %d: %v", e.Mode, e.Status, e.Err)
	}
	return fmt.Sprintf("remote %s query failed: %v", e.Mode, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Result is the query server's answer, passed through verbatim.
type Result struct {
	Response   string `json:"response"`
	MethodUsed string `json:"method_used,omitempty"`
	Success    bool   `json:"success"`
}

// Client forwards free-text queries to a GraphRAG query server. The local
// graph and search index are bypassed entirely on this path.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// Params configures a remote query client.
type Params struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// New creates a client for the query server at the given base URL.
func New(params Params) *Client {
	timeout := params.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	maxRetries := params.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 2
	}
	return &Client{
		baseURL:    strings.TrimRight(params.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
	}
}

// Query forwards the query with the given mode and returns the result
// text verbatim. Transport failures are retried a bounded number of times.
func (c *Client) Query(ctx context.Context, query, mode string) (*Result, error) {
	if mode == "" {
		mode = DefaultMode
	}
	if _, ok := validModes[mode]; !ok {
		return nil, fmt.Errorf("invalid query mode %q", mode)
	}

	result, err := util.RetryWithContext(ctx, c.maxRetries, func(ctx context.Context) (*Result, error) {
		return c.do(ctx, query, mode)
	})
	if err != nil {
		logger.Warn("[Remote] Query failed", "mode", mode, "err", err)
		return nil, err
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, query, mode string) (*Result, error) {
	endpoint := fmt.Sprintf("%s/search/%s?query=%s", c.baseURL, mode, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &QueryError{Mode: mode, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &QueryError{Mode: mode, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &QueryError{
			Mode:   mode,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &QueryError{Mode: mode, Status: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if result.Response == "" {
		return nil, &QueryError{Mode: mode, Status: resp.StatusCode, Err: errors.New("empty response")}
	}
	return &result, nil
}
