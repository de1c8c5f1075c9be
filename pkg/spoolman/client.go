/*
Copyright 2026 the Spoolman Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package spoolman

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
)

const (
	// DefaultBaseURL is where the service is reachable in the compose setup.
	DefaultBaseURL = "http://spoolman:8000"

	// DefaultRequestTimeout bounds a single API request.
	DefaultRequestTimeout = 5 * time.Second
)

// ClientConfig configures an APIClient.
type ClientConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	LogRequests    bool
	LogResponses   bool
	// Logger receives request and error logs. The zero value discards them.
	Logger logr.Logger
}

type APIClient struct {
	baseURL   string
	client    *http.Client
	config    ClientConfig
	logger    logr.Logger
	endpoints *Endpoints
}

// NewAPIClient creates a client for baseURL with default settings.
func NewAPIClient(baseURL string) *APIClient {
	return NewAPIClientWithConfig(ClientConfig{
		BaseURL: baseURL,
	})
}

func NewAPIClientWithConfig(config ClientConfig) *APIClient {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	if config.RequestTimeout == 0 {
		config.RequestTimeout = DefaultRequestTimeout
	}

	logger := config.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}

	return &APIClient{
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		client: &http.Client{
			Timeout: config.RequestTimeout,
		},
		config:    config,
		logger:    logger,
		endpoints: NewEndpoints(),
	}
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	c.logger.Info("use trace ID to search logs for this request", "traceID", extractTraceID(traceParent))
}

// generateTraceID creates a new W3C trace ID, one per request so a failure
// can be located in the service logs.
func generateTraceID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)

	return hex.EncodeToString(b)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)

	return hex.EncodeToString(b)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

// isSuccess accepts any 2xx status.
func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// doRequest performs a request and reads the whole response. When accept is
// not nil a status it rejects is returned as a *StatusError.
func (c *APIClient) doRequest(ctx context.Context, method, path string, body io.Reader, accept func(int) bool) (*http.Response, []byte, error) {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error(err, "http request failed", "method", method, "path", path, "duration", duration, "traceparent", traceParent)
		c.logTraceContext(traceParent)

		return nil, nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error(err, "reading response body", "method", method, "path", path, "duration", duration, "status", resp.StatusCode, "traceparent", traceParent)
		c.logTraceContext(traceParent)

		return resp, nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.config.LogRequests {
		c.logger.Info("request", "method", method, "path", path, "status", resp.StatusCode, "duration", duration, "traceparent", traceParent)
	}

	if c.config.LogResponses && len(respBody) > 0 {
		c.logger.Info("response body", "method", method, "path", path, "body", string(respBody))
	}

	if accept != nil && !accept(resp.StatusCode) {
		c.logger.Info("unexpected status", "method", method, "path", path, "status", resp.StatusCode, "body", string(respBody), "traceparent", traceParent)
		c.logTraceContext(traceParent)

		return resp, respBody, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			TraceID:    extractTraceID(traceParent),
		}
	}

	return resp, respBody, nil
}

// createEntity posts body to the kind's collection and decodes the record.
func (c *APIClient) createEntity(ctx context.Context, kind Kind, body interface{}) (Entity, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s body: %w", kind, err)
	}

	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.doRequest(ctx, http.MethodPost, c.endpoints.Collection(kind), bytes.NewReader(bodyBytes), isSuccess)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", kind, err)
	}

	var entity Entity
	if err := json.Unmarshal(respBody, &entity); err != nil {
		return nil, fmt.Errorf("unmarshaling %s response: %w", kind, err)
	}

	if _, err := entity.ID(); err != nil {
		return nil, fmt.Errorf("creating %s: %w", kind, err)
	}

	return entity, nil
}

// getEntity fetches a single record. A 404 is reported as an error
// satisfying IsNotFound.
func (c *APIClient) getEntity(ctx context.Context, kind Kind, id int64) (Entity, error) {
	//nolint:bodyclose // response body is closed in doRequest
	_, respBody, err := c.doRequest(ctx, http.MethodGet, c.endpoints.Entity(kind, id), nil, isSuccess)
	if err != nil {
		return nil, fmt.Errorf("getting %s %d: %w", kind, id, err)
	}

	var entity Entity
	if err := json.Unmarshal(respBody, &entity); err != nil {
		return nil, fmt.Errorf("unmarshaling %s response: %w", kind, err)
	}

	return entity, nil
}

func (c *APIClient) deleteEntity(ctx context.Context, kind Kind, id int64) error {
	//nolint:bodyclose // response body is closed in doRequest
	_, _, err := c.doRequest(ctx, http.MethodDelete, c.endpoints.Entity(kind, id), nil, isSuccess)
	if err != nil {
		return fmt.Errorf("deleting %s %d: %w", kind, id, err)
	}

	return nil
}

// Create creates an entity of the given kind.
func (c *APIClient) Create(ctx context.Context, kind Kind, body interface{}) (Entity, error) {
	return c.createEntity(ctx, kind, body)
}

// Get fetches an entity of the given kind.
func (c *APIClient) Get(ctx context.Context, kind Kind, id int64) (Entity, error) {
	return c.getEntity(ctx, kind, id)
}

// Delete deletes an entity of the given kind.
func (c *APIClient) Delete(ctx context.Context, kind Kind, id int64) error {
	return c.deleteEntity(ctx, kind, id)
}

// CreateVendor creates a new vendor.
func (c *APIClient) CreateVendor(ctx context.Context, payload VendorPayload) (Entity, error) {
	return c.createEntity(ctx, KindVendor, payload)
}

func (c *APIClient) GetVendor(ctx context.Context, id int64) (Entity, error) {
	return c.getEntity(ctx, KindVendor, id)
}

func (c *APIClient) DeleteVendor(ctx context.Context, id int64) error {
	return c.deleteEntity(ctx, KindVendor, id)
}

// CreateFilament creates a new filament.
func (c *APIClient) CreateFilament(ctx context.Context, payload FilamentPayload) (Entity, error) {
	return c.createEntity(ctx, KindFilament, payload)
}

func (c *APIClient) GetFilament(ctx context.Context, id int64) (Entity, error) {
	return c.getEntity(ctx, KindFilament, id)
}

func (c *APIClient) DeleteFilament(ctx context.Context, id int64) error {
	return c.deleteEntity(ctx, KindFilament, id)
}

// Ping issues a single GET against the service root.
func (c *APIClient) Ping(ctx context.Context) error {
	//nolint:bodyclose // response body is closed in doRequest
	_, _, err := c.doRequest(ctx, http.MethodGet, c.endpoints.Root(), nil, isSuccess)
	if err != nil {
		return fmt.Errorf("pinging service: %w", err)
	}

	return nil
}
