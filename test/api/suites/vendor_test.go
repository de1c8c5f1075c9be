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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/spoolman/integration/pkg/spoolman"
	"github.com/spoolman/integration/test/api"
)

var _ = Describe("Vendor Management", func() {
	Context("When creating a vendor", func() {
		Describe("Given every field", func() {
			It("should return the stored vendor", func(ctx SpecContext) {
				vendor := api.RandomVendor(ctx, client)

				Expect(vendor).To(HaveKey("id"))
				Expect(vendor).To(HaveKeyWithValue("name", "John"))
				Expect(vendor).To(HaveKey("registered"))
			})

			It("should be readable by id", func(ctx SpecContext) {
				vendor := api.RandomVendor(ctx, client)

				id, err := vendor.ID()
				Expect(err).NotTo(HaveOccurred())

				fetched, err := client.GetVendor(ctx, id)
				Expect(err).NotTo(HaveOccurred())
				Expect(fetched).To(HaveKeyWithValue("name", vendor["name"]))
			})
		})

		Describe("Given only required fields", func() {
			It("should accept an empty name", func(ctx SpecContext) {
				vendor := api.RandomEmptyVendor(ctx, client)

				Expect(vendor).To(HaveKeyWithValue("name", ""))
			})
		})
	})

	Context("When deleting a vendor", func() {
		It("should no longer be readable", func(ctx SpecContext) {
			vendor, err := client.CreateVendor(ctx, spoolman.NewVendorPayload().WithName("Short lived").Build())
			Expect(err).NotTo(HaveOccurred())

			id, err := vendor.ID()
			Expect(err).NotTo(HaveOccurred())

			Expect(client.DeleteVendor(ctx, id)).To(Succeed())

			api.VerifyDeleted(ctx, client, spoolman.KindVendor, id)
		})

		It("should reject deleting a vendor that does not exist", func(ctx SpecContext) {
			err := client.DeleteVendor(ctx, 999999999)

			Expect(err).To(HaveOccurred())
			Expect(spoolman.IsNotFound(err)).To(BeTrue())
		})
	})
})
