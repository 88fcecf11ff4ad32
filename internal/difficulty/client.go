package difficulty

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/loyerbxl/rentwizard/internal/logging"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries is the default number of retry attempts for
	// transport-level failures
	DefaultMaxRetries = 2

	// DefaultRetryDelay is the default delay between retry attempts
	DefaultRetryDelay = 500 * time.Millisecond
)

// Code classifies a lookup outcome.
type Code string

const (
	CodeSuccess           Code = "SUCCESS"
	CodeNotFound          Code = "NOT_FOUND"
	CodeDatabaseError     Code = "DATABASE_ERROR"
	CodeSystemError       Code = "SYSTEM_ERROR"
	CodeInsufficientQuery Code = "INSUFFICIENT_QUERY"
	CodeMultipleResults   Code = "MULTIPLE_RESULTS"
	CodeUnknownError      Code = "UNKNOWN_ERROR"
)

// Envelope is the lookup service's response shape. On success Data
// holds the difficulty index for the street; otherwise Error and Code
// describe the failure.
type Envelope struct {
	Success bool     `json:"success"`
	Data    *float64 `json:"data"`
	Error   *string  `json:"error"`
	Code    Code     `json:"code"`
}

// Service resolves an address to its difficulty index. The wizard
// treats this strictly as an opaque remote call.
type Service interface {
	Lookup(ctx context.Context, postalCode int, streetName, streetNumber string) (*Envelope, error)
}

// Client is an HTTP client for the difficulty-index lookup service.
type Client struct {
	// BaseURL is the base URL of the lookup service
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// MaxRetries is the number of retry attempts for transport failures
	MaxRetries int

	// RetryDelay is the delay between retry attempts
	RetryDelay time.Duration
}

// NewClient creates a lookup client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		MaxRetries: DefaultMaxRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Lookup resolves (postalCode, streetName, streetNumber) to a
// difficulty index envelope.
//
// Incomplete addresses short-circuit to an INSUFFICIENT_QUERY envelope
// without touching the network; that validation failure is local by
// design. Transport failures are retried a few times and then returned
// as an error; service-level failures come back as a non-success
// envelope, never as an error.
func (c *Client) Lookup(ctx context.Context, postalCode int, streetName, streetNumber string) (*Envelope, error) {
	if postalCode <= 0 || strings.TrimSpace(streetName) == "" || strings.TrimSpace(streetNumber) == "" {
		msg := "postal code, street name and street number are all required"
		return &Envelope{Success: false, Error: &msg, Code: CodeInsufficientQuery}, nil
	}

	query := url.Values{}
	query.Set("postalCode", strconv.Itoa(postalCode))
	query.Set("streetName", streetName)
	query.Set("streetNumber", streetNumber)
	endpoint := c.BaseURL + "/difficulty-index?" + query.Encode()

	started := time.Now()
	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.RetryDelay):
			}
		}

		env, err := c.doLookup(ctx, endpoint)
		if err != nil {
			lastErr = err
			continue
		}

		logging.LogLookup(postalCode, streetName, string(env.Code), time.Since(started).Milliseconds())
		return env, nil
	}

	return nil, fmt.Errorf("difficulty lookup failed after %d attempts: %w", c.MaxRetries+1, lastErr)
}

func (c *Client) doLookup(ctx context.Context, endpoint string) (*Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup service unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read lookup response: %w", err)
	}

	// The service wraps failures in the envelope itself, so non-2xx
	// statuses still carry a decodable body.
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("malformed lookup response (status %d): %w", resp.StatusCode, err)
	}
	if env.Code == "" {
		env.Code = CodeUnknownError
	}
	return &env, nil
}
