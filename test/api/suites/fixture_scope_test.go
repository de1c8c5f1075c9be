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

var _ = Describe("Fixture Scopes", func() {
	Context("When a vendor is created per spec", func() {
		vendor := api.PerTest(getClient, api.RandomVendor)

		var previous int64

		It("should provide a vendor", func(ctx SpecContext) {
			previous = vendor.ID()

			_, err := client.GetVendor(ctx, previous)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should provide a fresh vendor and have removed the last one", func(ctx SpecContext) {
			if previous == 0 {
				Skip("depends on the previous spec having run first")
			}

			Expect(vendor.ID()).NotTo(Equal(previous))
			api.VerifyDeleted(ctx, client, spoolman.KindVendor, previous)
		})
	})

	Context("When a filament is shared across specs", Ordered, func() {
		filament := api.PerContainer(getClient, api.RandomFilament)
		emptyFilament := api.PerContainer(getClient, api.RandomEmptyFilamentEmptyVendor)

		var first int64

		It("should provide a filament", func() {
			first = filament.ID()
			Expect(emptyFilament.ID()).NotTo(BeZero())
		})

		It("should provide the same filament again", func(ctx SpecContext) {
			Expect(filament.ID()).To(Equal(first))

			_, err := client.GetFilament(ctx, first)
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
