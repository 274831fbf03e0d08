// Package apiclient is the HTTP transport to the booking backend. There is no
// ambient credential: every call names the bearer token it runs under.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medagenda/medapp/internal/pkg/metrics"
)

// Backend endpoints, relative to the base URL.
const (
	PathLogin          = "/usuarios/login"
	PathRegister       = "/usuarios"
	PathCurrentUser    = "/usuarios/me"
	PathUsers          = "/usuarios"
	PathDoctors        = "/usuarios/medicos"
	PathSpecialties    = "/especialidades"
	PathAppointments   = "/consultas"
	PathSignOut        = "/usuarios/logout"
	DefaultTimeout     = 15 * time.Second
	requestIDHeader    = "X-Request-ID"
	maxErrorBodyLength = 4 << 10
)

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP Error: %d - %s", e.Status, e.Message)
}

// HasStatus reports whether err is an *HTTPError with one of the given codes.
func HasStatus(err error, codes ...int) bool {
	var he *HTTPError
	if !errors.As(err, &he) {
		return false
	}
	for _, code := range codes {
		if he.Status == code {
			return true
		}
	}
	return false
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a client for baseURL. A non-positive timeout means DefaultTimeout.
func New(baseURL string, timeout time.Duration, log zerolog.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Do sends one request. body, when non-nil, is JSON encoded. out, when
// non-nil, receives the decoded JSON response; an empty 2xx body leaves it
// untouched. An empty token sends no Authorization header.
func (c *Client) Do(ctx context.Context, token, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("apiclient: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	endpoint := endpointLabel(path)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.APIRequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(method, endpoint, "error").Inc()
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("request failed")
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	metrics.APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("request_id", requestID).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength))
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &HTTPError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("apiclient: read response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	return nil
}

// WithToken binds token to a request-scoped view of the client.
func (c *Client) WithToken(token string) Authorized {
	return Authorized{client: c, token: token}
}

// Authorized issues requests under one bearer token.
type Authorized struct {
	client *Client
	token  string
}

func (a Authorized) Get(ctx context.Context, path string, out any) error {
	return a.client.Do(ctx, a.token, http.MethodGet, path, nil, out)
}

func (a Authorized) Post(ctx context.Context, path string, body, out any) error {
	return a.client.Do(ctx, a.token, http.MethodPost, path, body, out)
}

func (a Authorized) Put(ctx context.Context, path string, body, out any) error {
	return a.client.Do(ctx, a.token, http.MethodPut, path, body, out)
}

func (a Authorized) Delete(ctx context.Context, path string, out any) error {
	return a.client.Do(ctx, a.token, http.MethodDelete, path, nil, out)
}

// endpointLabel drops the query string and replaces numeric path segments
// with ":id" to keep metric cardinality bounded.
func endpointLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		if _, err := strconv.ParseInt(seg, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}
