// Package rest is the HTTP client for the graph service.
package rest

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

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"eunify/internal/codec"
	"eunify/internal/domain"
	"eunify/internal/errors"
)

const (
	queryPath  = "/query"
	statusPath = "/status"

	// cap on error bodies kept for the banner
	maxErrorBody = 64 * 1024
)

// Config configures the client
type Config struct {
	BaseURL           string
	Timeout           time.Duration // zero means no client-side timeout
	RequestsPerSecond float64       // zero means unlimited
	Burst             int
}

// Client fetches presets and runs queries over HTTP
type Client struct {
	base    *url.URL
	http    *http.Client
	limiter *rate.Limiter
	codec   *codec.JSONCodec
	logger  *zap.SugaredLogger
}

// New creates a client for the graph service at cfg.BaseURL
func New(cfg Config, logger *zap.SugaredLogger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.Wrapf(err, "parse base url %q", cfg.BaseURL)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, errors.NewInvalidRequest("base url %q must be http or https", cfg.BaseURL)
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		base:    base,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, burst),
		codec:   codec.NewJSONCodec(),
		logger:  logger.Named("source.rest"),
	}, nil
}

// LoadPreset fetches the preset's endpoint and decodes the graph
func (c *Client) LoadPreset(ctx context.Context, preset domain.Preset) (*domain.GraphData, error) {
	resp, err := c.do(ctx, http.MethodGet, preset.Endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := c.codec.Parse(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "decode preset %s", preset.Key)
	}
	c.logger.Debugw("Fetched preset",
		"preset", preset.Key,
		"vertices", len(data.Vertices),
		"edges", len(data.Edges))
	return data, nil
}

// Execute posts a raw traversal and returns the result field
func (c *Client) Execute(ctx context.Context, query string) (any, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, http.MethodPost, queryPath, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decoded any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return nil, errors.Wrap(err, "decode query result")
	}
	// the service wraps results as {"result": ...}
	if m, ok := decoded.(map[string]any); ok {
		if r, ok := m["result"]; ok {
			return r, nil
		}
	}
	return decoded, nil
}

// Status fetches the backend's connection report
func (c *Client) Status(ctx context.Context) (domain.ConnectionStatus, error) {
	resp, err := c.do(ctx, http.MethodGet, statusPath, nil)
	if err != nil {
		return domain.ConnectionStatus{}, err
	}
	defer resp.Body.Close()

	var st domain.ConnectionStatus
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return domain.ConnectionStatus{}, errors.Wrap(err, "decode status")
	}
	return st, nil
}

// Close releases idle connections
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limit")
	}

	u := c.base.JoinPath(path)
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.Wrap(errors.ErrServiceUnavailable, err.Error()), "%s %s", method, path)
	}
	c.logger.Debugw("Backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, backendError(method, path, resp)
	}
	return resp, nil
}

// errorPayload is the service's error body
type errorPayload struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Message string `json:"message"`
}

// backendError keeps the service's own explanation as an error detail so
// it can be shown in the banner.
func backendError(method, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	err := errors.Newf("%s %s: backend returned %d", method, path, resp.StatusCode)

	var p errorPayload
	if json.Unmarshal(raw, &p) == nil {
		detail := p.Details
		if detail == "" {
			detail = p.Message
		}
		if detail == "" {
			detail = p.Error
		}
		if detail != "" {
			return errors.WithDetail(err, detail)
		}
	}
	if text := strings.TrimSpace(string(raw)); text != "" && !strings.HasPrefix(text, "<") {
		return errors.WithDetail(err, text)
	}
	return errors.WithDetail(err, fmt.Sprintf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)))
}
