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
	"fmt"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Root is the readiness probe target.
func (e *Endpoints) Root() string {
	return "/"
}

// Collection returns the create path for an entity kind.
func (e *Endpoints) Collection(kind Kind) string {
	return fmt.Sprintf("/api/v1/%s", kind)
}

// Entity returns the path addressing a single entity.
func (e *Endpoints) Entity(kind Kind, id int64) string {
	return fmt.Sprintf("/api/v1/%s/%d", kind, id)
}
