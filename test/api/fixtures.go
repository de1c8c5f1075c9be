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
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spoolman/integration/pkg/spoolman"
)

// Fixture creates an entity and schedules its deletion with DeferCleanup.
// Call it from a setup node or a spec. Cleanups run in reverse order of
// registration, so anything a fixture depends on is released after it.
type Fixture func(ctx context.Context, client *spoolman.APIClient) spoolman.Entity

// CreateWithCleanup creates an entity and schedules its deletion. Both the
// create and the delete must succeed or the current spec fails; nothing is
// retried.
func CreateWithCleanup(ctx context.Context, client *spoolman.APIClient, kind spoolman.Kind, payload interface{}) spoolman.Entity {
	GinkgoHelper()

	entity, err := client.Create(ctx, kind, payload)
	Expect(err).NotTo(HaveOccurred(), "creating %s", kind)

	id, err := entity.ID()
	Expect(err).NotTo(HaveOccurred())

	GinkgoWriter.Printf("Created %s with ID: %d\n", kind, id)

	// This runs whether the spec passes or fails. It gets its own context as
	// the one passed in may belong to a node that has already finished.
	DeferCleanup(func(ctx SpecContext) {
		DeleteOrFail(ctx, client, kind, id)
	})

	return entity
}

// DeleteOrFail deletes an entity and fails the current spec if the service
// does not confirm the delete.
func DeleteOrFail(ctx context.Context, client *spoolman.APIClient, kind spoolman.Kind, id int64) {
	GinkgoHelper()

	GinkgoWriter.Printf("Cleaning up %s: %d\n", kind, id)

	Expect(client.Delete(ctx, kind, id)).To(Succeed(), "deleting %s %d", kind, id)
}

// RandomVendor creates a vendor with all fields set.
func RandomVendor(ctx context.Context, client *spoolman.APIClient) spoolman.Entity {
	GinkgoHelper()

	return CreateWithCleanup(ctx, client, spoolman.KindVendor, spoolman.NewVendorPayload().Build())
}

// RandomEmptyVendor creates a vendor with only the required fields set.
func RandomEmptyVendor(ctx context.Context, client *spoolman.APIClient) spoolman.Entity {
	GinkgoHelper()

	return CreateWithCleanup(ctx, client, spoolman.KindVendor, spoolman.NewEmptyVendorPayload().Build())
}

// RandomFilament creates a vendor and then a filament with all fields set
// that references it.
func RandomFilament(ctx context.Context, client *spoolman.APIClient) spoolman.Entity {
	GinkgoHelper()

	vendor := RandomVendor(ctx, client)

	return CreateWithCleanup(ctx, client, spoolman.KindFilament,
		spoolman.NewFilamentPayload().
			WithVendorID(mustID(vendor)).
			Build())
}

// RandomEmptyFilament creates a filament with only the required fields set
// and no vendor.
func RandomEmptyFilament(ctx context.Context, client *spoolman.APIClient) spoolman.Entity {
	GinkgoHelper()

	return CreateWithCleanup(ctx, client, spoolman.KindFilament, spoolman.NewEmptyFilamentPayload().Build())
}

// RandomEmptyFilamentEmptyVendor creates a vendor and a filament, both with
// only the required fields set.
func RandomEmptyFilamentEmptyVendor(ctx context.Context, client *spoolman.APIClient) spoolman.Entity {
	GinkgoHelper()

	vendor := RandomEmptyVendor(ctx, client)

	return CreateWithCleanup(ctx, client, spoolman.KindFilament,
		spoolman.NewEmptyFilamentPayload().
			WithVendorID(mustID(vendor)).
			Build())
}

func mustID(entity spoolman.Entity) int64 {
	GinkgoHelper()

	id, err := entity.ID()
	Expect(err).NotTo(HaveOccurred())

	return id
}

// VerifyDeleted checks that an entity can no longer be fetched.
func VerifyDeleted(ctx context.Context, client *spoolman.APIClient, kind spoolman.Kind, id int64) {
	GinkgoHelper()

	_, err := client.Get(ctx, kind, id)
	Expect(err).To(HaveOccurred(), "%s %d still exists", kind, id)
	Expect(spoolman.IsNotFound(err)).To(BeTrue(), "expected not found, got %v", err)
}
