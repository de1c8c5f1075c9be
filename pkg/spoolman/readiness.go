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
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/go-logr/logr"
)

const (
	// DefaultReadyTimeout is how long WaitUntilReady keeps probing.
	DefaultReadyTimeout = 10 * time.Second

	// DefaultProbeTimeout bounds a single readiness probe.
	DefaultProbeTimeout = time.Second
)

type readinessOptions struct {
	probeTimeout    time.Duration
	initialInterval time.Duration
	maxInterval     time.Duration
	logger          logr.Logger
}

// ReadinessOption customises WaitUntilReady.
type ReadinessOption func(*readinessOptions)

// WithProbeTimeout sets the timeout of each individual probe.
func WithProbeTimeout(timeout time.Duration) ReadinessOption {
	return func(o *readinessOptions) {
		o.probeTimeout = timeout
	}
}

// WithProbeInterval bounds the back-off between probes.
func WithProbeInterval(initial, maxInterval time.Duration) ReadinessOption {
	return func(o *readinessOptions) {
		o.initialInterval = initial
		o.maxInterval = maxInterval
	}
}

// WithProbeLogger reports every failed probe at V(1).
func WithProbeLogger(logger logr.Logger) ReadinessOption {
	return func(o *readinessOptions) {
		o.logger = logger
	}
}

// WaitUntilReady blocks until a GET of baseURL returns a 2xx status.
// Probes are paced by an exponential back-off. A probe that fails once more
// than timeout has elapsed since the first one ends the wait with that
// probe's error, so the caller sees why the service was unreachable rather
// than a bare timeout. A non-positive timeout allows a single probe.
func WaitUntilReady(ctx context.Context, baseURL string, timeout time.Duration, opts ...ReadinessOption) error {
	o := readinessOptions{
		probeTimeout:    DefaultProbeTimeout,
		initialInterval: 100 * time.Millisecond,
		maxInterval:     time.Second,
		logger:          logr.Discard(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	client := &http.Client{
		Timeout: o.probeTimeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	start := time.Now()
	attempt := 0

	var lastErr error

	probe := func() error {
		attempt++

		lastErr = probeOnce(ctx, client, baseURL)
		if lastErr == nil {
			return nil
		}

		elapsed := time.Since(start)

		o.logger.V(1).Info("service not ready", "url", baseURL, "attempt", attempt, "elapsed", elapsed, "error", lastErr.Error())

		if timeout <= 0 || elapsed > timeout {
			return backoff.Permanent(lastErr)
		}

		return lastErr
	}

	// The deadline is checked by the probe itself, the back-off only paces.
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = o.initialInterval
	exp.MaxInterval = o.maxInterval
	exp.MaxElapsedTime = 0
	exp.Reset()

	if err := backoff.Retry(probe, backoff.WithContext(exp, ctx)); err != nil {
		// On cancellation the back-off returns only the context error.
		if ctx.Err() != nil && lastErr != nil && !errors.Is(err, lastErr) {
			err = errors.Join(err, lastErr)
		}

		return fmt.Errorf("waiting for %s: %w", baseURL, err)
	}

	o.logger.V(1).Info("service ready", "url", baseURL, "attempts", attempt)

	return nil
}

// probeOnce is a lightweight GET. Only a 2xx counts as ready; redirects are
// not followed.
func probeOnce(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		// Nothing will change on retry.
		return backoff.Permanent(fmt.Errorf("creating probe request: %w", err))
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("probe failed: %w", err)
	}

	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return &StatusError{
			Method:     http.MethodGet,
			Path:       url,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
