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

// Package spoolman provides a small HTTP client for the Spoolman inventory
// API, as used by the integration tests.
//
// # Separate Client Implementation
//
// The client is hand written rather than generated from the service's
// OpenAPI document. Any change to the vendor or filament contract must be
// mirrored here, which keeps API evolution visible in review.
//
// The package also carries the pieces of the test harness that do not
// depend on a test runner:
//   - WaitUntilReady, a bounded readiness probe for the service root.
//   - WithEntity, WithVendor and WithFilament, scoped create/delete helpers
//     that always release what they created.
//   - LengthFromWeight, the filament length calculation.
//
// Ginkgo fixtures built on top of this package live in test/api.
package spoolman
