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
package api_test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spjmurray/go-util/pkg/set"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spoolman/integration/pkg/spoolman"
	"github.com/spoolman/integration/pkg/spoolman/fake"
	"github.com/spoolman/integration/test/api"
)

func eventKeys(events []fake.Event, op fake.Operation) set.Set[string] {
	var keys []string

	for _, event := range events {
		if event.Op == op {
			keys = append(keys, fmt.Sprintf("%s/%d", event.Kind, event.ID))
		}
	}

	return set.New[string](keys...)
}

// residual lists entities that were created but never deleted.
func residual(server *fake.Server) []string {
	events := server.Events()

	created := eventKeys(events, fake.OpCreate)
	deleted := eventKeys(events, fake.OpDelete)
	remaining := created.Difference(deleted)

	var out []string

	for key := range remaining.All() {
		out = append(out, key)
	}

	return out
}

var _ = Describe("Entity fixtures", Ordered, func() {
	var (
		server *fake.Server
		client *spoolman.APIClient
	)

	getClient := func() *spoolman.APIClient {
		return client
	}

	BeforeAll(func() {
		server = fake.NewServer()
		DeferCleanup(server.Close)

		client = spoolman.NewAPIClientWithConfig(spoolman.ClientConfig{
			BaseURL:        server.URL,
			RequestTimeout: 5 * time.Second,
			Logger:         GinkgoLogr,
		})
	})

	Context("When creating a vendor with every field", func() {
		var id int64

		It("should hand the created vendor to the spec", func(ctx SpecContext) {
			vendor := api.RandomVendor(ctx, client)

			Expect(vendor).To(HaveKeyWithValue("name", "John"))

			id = mustID(vendor)
			Expect(server.Exists("vendor", id)).To(BeTrue())
		})

		It("should have deleted the vendor once the spec finished", func() {
			Expect(server.Exists("vendor", id)).To(BeFalse())
			Expect(residual(server)).To(BeEmpty())
		})
	})

	Context("When creating a vendor with only required fields", func() {
		It("should accept an empty name", func(ctx SpecContext) {
			vendor := api.RandomEmptyVendor(ctx, client)

			Expect(vendor).To(HaveKeyWithValue("name", ""))
		})
	})

	Context("When creating a filament with every field", func() {
		var before int

		It("should link the filament to a fresh vendor", func(ctx SpecContext) {
			before = len(server.Events())

			filament := api.RandomFilament(ctx, client)

			Expect(filament).To(HaveKeyWithValue("name", "Filament X"))
			Expect(filament).To(HaveKeyWithValue("comment", "abcdefghåäö"))
			Expect(filament).To(HaveKey("vendor_id"))
			Expect(server.Count("vendor")).To(Equal(1))
		})

		It("should have deleted the filament before the vendor", func() {
			events := server.Events()[before:]

			Expect(events).To(HaveLen(4))
			Expect(events[0].Op).To(Equal(fake.OpCreate))
			Expect(events[0].Kind).To(Equal("vendor"))
			Expect(events[1].Op).To(Equal(fake.OpCreate))
			Expect(events[1].Kind).To(Equal("filament"))
			Expect(events[2].Op).To(Equal(fake.OpDelete))
			Expect(events[2].Kind).To(Equal("filament"))
			Expect(events[3].Op).To(Equal(fake.OpDelete))
			Expect(events[3].Kind).To(Equal("vendor"))
			Expect(residual(server)).To(BeEmpty())
		})
	})

	Context("When creating a filament with only required fields", func() {
		It("should not need a vendor", func(ctx SpecContext) {
			filament := api.RandomEmptyFilament(ctx, client)

			Expect(filament).NotTo(HaveKey("vendor_id"))
			Expect(server.Count("vendor")).To(BeZero())
		})

		It("should accept an empty vendor", func(ctx SpecContext) {
			filament := api.RandomEmptyFilamentEmptyVendor(ctx, client)

			Expect(filament).To(HaveKey("vendor_id"))
			Expect(server.Count("vendor")).To(Equal(1))
		})
	})

	Context("When the service rejects a create", func() {
		It("should fail the spec and register no cleanup", func(ctx SpecContext) {
			server.FailNext(http.MethodPost, "vendor", http.StatusInternalServerError)

			err := InterceptGomegaFailure(func() {
				api.RandomVendor(ctx, client)
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("500"))
		})

		It("should release the vendor when the dependent filament fails", func(ctx SpecContext) {
			server.FailNext(http.MethodPost, "filament", http.StatusUnprocessableEntity)

			err := InterceptGomegaFailure(func() {
				api.RandomFilament(ctx, client)
			})
			Expect(err).To(HaveOccurred())
			Expect(server.Count("vendor")).To(Equal(1))
		})

		It("should have released everything afterwards", func() {
			Expect(server.Count("vendor")).To(BeZero())
			Expect(server.Count("filament")).To(BeZero())
		})
	})

	Context("When the service rejects a delete", func() {
		It("should fail the spec and keep the entity", func(ctx SpecContext) {
			vendor, err := client.CreateVendor(ctx, spoolman.NewVendorPayload().Build())
			Expect(err).NotTo(HaveOccurred())

			id, err := vendor.ID()
			Expect(err).NotTo(HaveOccurred())

			server.FailNext(http.MethodDelete, "vendor", http.StatusInternalServerError)

			failure := InterceptGomegaFailure(func() {
				api.DeleteOrFail(ctx, client, spoolman.KindVendor, id)
			})
			Expect(failure).To(HaveOccurred())
			Expect(failure.Error()).To(ContainSubstring("500"))
			Expect(server.Exists("vendor", id)).To(BeTrue())

			api.DeleteOrFail(ctx, client, spoolman.KindVendor, id)
			Expect(server.Exists("vendor", id)).To(BeFalse())
		})
	})

	Context("When scoped per spec", func() {
		vendor := api.PerTest(getClient, api.RandomVendor)

		var first int64

		It("should see a vendor", func() {
			first = vendor.ID()
			Expect(server.Exists("vendor", first)).To(BeTrue())
		})

		It("should see a different vendor", func() {
			Expect(vendor.ID()).NotTo(Equal(first))
			Expect(server.Exists("vendor", first)).To(BeFalse())
		})
	})

	Context("When shared across a container", Ordered, func() {
		filament := api.PerContainer(getClient, api.RandomFilament)

		var first int64

		It("should see a filament", func() {
			first = filament.ID()
			Expect(server.Exists("filament", first)).To(BeTrue())
		})

		It("should see the same filament", func() {
			Expect(filament.ID()).To(Equal(first))
			Expect(server.Exists("filament", first)).To(BeTrue())
		})
	})

	It("should have released the shared filament and its vendor", func() {
		Expect(server.Count("filament")).To(BeZero())
		Expect(server.Count("vendor")).To(BeZero())
		Expect(residual(server)).To(BeEmpty())
	})

	It("should report a deleted entity as gone", func(ctx SpecContext) {
		api.VerifyDeleted(ctx, client, spoolman.KindVendor, 1)
	})

	It("should run a full round trip", func(ctx SpecContext) {
		Expect(spoolman.RoundTrip(ctx, client)).To(Succeed())
	})
})

var _ = Describe("Readiness gate", func() {
	It("should probe only once per process", func(ctx SpecContext) {
		server := fake.NewServer()
		DeferCleanup(server.Close)

		server.SetUnready(2)

		config := &api.TestConfig{
			BaseURL:      server.URL,
			ReadyTimeout: 10 * time.Second,
			ProbeTimeout: time.Second,
		}

		Expect(api.EnsureReady(ctx, config)).To(Succeed())

		probes := server.Probes()
		Expect(probes).To(Equal(3))

		Expect(api.EnsureReady(context.Background(), config)).To(Succeed())
		Expect(server.Probes()).To(Equal(probes))
	})
})

func mustID(entity spoolman.Entity) int64 {
	GinkgoHelper()

	id, err := entity.ID()
	Expect(err).NotTo(HaveOccurred())

	return id
}
