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

// Package fake provides an in-memory stand-in for the vendor and filament
// endpoints of the Spoolman API, for unit testing the client and fixtures.
package fake

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

// Operation is a mutating call recorded by the server.
type Operation string

const (
	OpCreate Operation = "create"
	OpDelete Operation = "delete"
)

// Event records one successful create or delete.
type Event struct {
	Op   Operation
	Kind string
	ID   int64
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s %d", e.Op, e.Kind, e.ID)
}

type failure struct {
	method string
	kind   string
	status int
}

// Server is an httptest server backed by maps. It is safe for concurrent use.
type Server struct {
	*httptest.Server

	lock     sync.Mutex
	nextID   map[string]int64
	entities map[string]map[int64]map[string]interface{}
	events   []Event
	failures []failure
	unready  int
	readyAt  time.Time
	probes   int
	requests []*http.Request
}

// NewServer starts a new fake server. Close it when done.
func NewServer() *Server {
	s := &Server{
		nextID: map[string]int64{},
		entities: map[string]map[int64]map[string]interface{}{
			"vendor":   {},
			"filament": {},
		},
	}

	router := chi.NewRouter()
	router.Get("/", s.root)

	router.Route("/api/v1/{kind:vendor|filament}", func(r chi.Router) {
		r.Post("/", s.create)
		r.Get("/{id}", s.get)
		r.Delete("/{id}", s.delete)
	})

	s.Server = httptest.NewServer(s.record(router))

	return s
}

// SetUnready makes the next n root probes fail with 503.
func (s *Server) SetUnready(n int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.unready = n
}

// SetUnreadyFor makes root probes fail with 503 until d has passed.
func (s *Server) SetUnreadyFor(d time.Duration) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.readyAt = time.Now().Add(d)
}

// FailNext makes the next request with method against kind fail with status.
func (s *Server) FailNext(method, kind string, status int) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.failures = append(s.failures, failure{method: method, kind: kind, status: status})
}

// Probes returns the number of requests made to the root.
func (s *Server) Probes() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.probes
}

// Events returns the successful creates and deletes in order.
func (s *Server) Events() []Event {
	s.lock.Lock()
	defer s.lock.Unlock()

	return append([]Event(nil), s.events...)
}

// Requests returns a copy of every request received.
func (s *Server) Requests() []*http.Request {
	s.lock.Lock()
	defer s.lock.Unlock()

	return append([]*http.Request(nil), s.requests...)
}

// Exists reports whether an entity is currently stored.
func (s *Server) Exists(kind string, id int64) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	_, ok := s.entities[kind][id]

	return ok
}

// Count returns the number of stored entities of a kind.
func (s *Server) Count(kind string) int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.entities[kind])
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lock.Lock()
		s.requests = append(s.requests, r.Clone(r.Context()))
		s.lock.Unlock()

		next.ServeHTTP(w, r)
	})
}

// takeFailure pops a queued failure matching the request. Callers hold the lock.
func (s *Server) takeFailure(method, kind string) (int, bool) {
	for i, f := range s.failures {
		if f.method == method && f.kind == kind {
			s.failures = append(s.failures[:i], s.failures[i+1:]...)
			return f.status, true
		}
	}

	return 0, false
}

func (s *Server) root(w http.ResponseWriter, _ *http.Request) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.probes++

	if s.unready > 0 {
		s.unready--
		writeError(w, http.StatusServiceUnavailable, "starting up")

		return
	}

	if time.Now().Before(s.readyAt) {
		writeError(w, http.StatusServiceUnavailable, "starting up")

		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if status, ok := s.takeFailure(http.MethodPost, kind); ok {
		writeError(w, status, "injected failure")
		return
	}

	if status, message := s.validate(kind, body); status != 0 {
		writeError(w, status, message)
		return
	}

	s.nextID[kind]++
	id := s.nextID[kind]

	body["id"] = id
	body["registered"] = time.Now().UTC().Format(time.RFC3339)

	s.entities[kind][id] = body
	s.events = append(s.events, Event{Op: OpCreate, Kind: kind, ID: id})

	writeJSON(w, http.StatusOK, body)
}

// validate applies the service's required-field and reference rules.
// Callers hold the lock.
func (s *Server) validate(kind string, body map[string]interface{}) (int, string) {
	switch kind {
	case "vendor":
		if _, ok := body["name"].(string); !ok {
			return http.StatusUnprocessableEntity, "name is required"
		}
	case "filament":
		for _, field := range []string{"density", "diameter"} {
			if _, ok := body[field].(float64); !ok {
				return http.StatusUnprocessableEntity, field + " is required"
			}
		}

		if raw, ok := body["vendor_id"]; ok {
			id, ok := raw.(float64)
			if !ok {
				return http.StatusUnprocessableEntity, "vendor_id must be an integer"
			}

			if _, ok := s.entities["vendor"][int64(id)]; !ok {
				return http.StatusNotFound, fmt.Sprintf("no vendor with ID %d", int64(id))
			}
		}
	}

	return 0, ""
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	entity, ok := s.entities[kind][id]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no %s with ID %d", kind, id))
		return
	}

	writeJSON(w, http.StatusOK, entity)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if status, ok := s.takeFailure(http.MethodDelete, kind); ok {
		writeError(w, status, "injected failure")
		return
	}

	if _, ok := s.entities[kind][id]; !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no %s with ID %d", kind, id))
		return
	}

	// Vendors that are still referenced cannot be removed.
	if kind == "vendor" {
		for filamentID, filament := range s.entities["filament"] {
			if vendorID, ok := filament["vendor_id"].(float64); ok && int64(vendorID) == id {
				writeError(w, http.StatusConflict, fmt.Sprintf("vendor %d is referenced by filament %d", id, filamentID))
				return
			}
		}
	}

	delete(s.entities[kind], id)
	s.events = append(s.events, Event{Op: OpDelete, Kind: kind, ID: id})

	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"message": message})
}
