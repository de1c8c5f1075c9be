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
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingID is returned when an API record carries no id field.
	ErrMissingID = errors.New("entity has no id")

	// ErrInvalidID is returned when the id field is not an integer.
	ErrInvalidID = errors.New("entity id is not an integer")

	// ErrNotFound is wrapped by errors for 404 responses.
	ErrNotFound = errors.New("not found")
)

// StatusError reports an HTTP response whose status was not acceptable.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
	TraceID    string
}

func (e *StatusError) Error() string {
	if e.TraceID == "" {
		return fmt.Sprintf("%s %s: unexpected status code %d, body: %s", e.Method, e.Path, e.StatusCode, e.Body)
	}

	return fmt.Sprintf("%s %s: unexpected status code %d, body: %s (trace ID: %s)", e.Method, e.Path, e.StatusCode, e.Body, e.TraceID)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// IsNotFound reports whether err is, or wraps, a 404 response.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
