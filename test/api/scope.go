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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spoolman/integration/pkg/spoolman"
)

// Handle gives specs access to an entity set up by PerTest or PerContainer.
type Handle struct {
	entity spoolman.Entity
}

// Get returns the entity. It fails the spec when called outside the scope
// the fixture was registered for.
func (h *Handle) Get() spoolman.Entity {
	GinkgoHelper()

	Expect(h.entity).NotTo(BeNil(), "fixture used outside of its scope")

	return h.entity
}

// ID returns the id of the entity.
func (h *Handle) ID() int64 {
	GinkgoHelper()

	return mustID(h.Get())
}

// PerTest gives every spec in the enclosing container a fresh entity.
// The client is resolved when the setup node runs, not at tree construction.
func PerTest(client func() *spoolman.APIClient, fixture Fixture) *Handle {
	h := &Handle{}

	BeforeEach(func(ctx SpecContext) {
		// Registered first so it runs after the fixture's own cleanup.
		DeferCleanup(func() {
			h.entity = nil
		})

		h.entity = fixture(ctx, client())
	})

	return h
}

// PerContainer shares one entity across every spec in the enclosing
// container, which must be Ordered. It is released after the last spec.
func PerContainer(client func() *spoolman.APIClient, fixture Fixture) *Handle {
	h := &Handle{}

	BeforeAll(func(ctx SpecContext) {
		DeferCleanup(func() {
			h.entity = nil
		})

		h.entity = fixture(ctx, client())
	})

	return h
}
