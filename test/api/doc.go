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

// Package api provides integration test fixtures for the Spoolman API.
//
// # Fixtures
//
// Each fixture creates an entity through the API and registers its deletion
// with Ginkgo's DeferCleanup, so it is released however the spec ends.
// Fixtures compose by calling one another: RandomFilament first acquires a
// vendor, and since cleanups run last-in first-out the filament is always
// deleted before the vendor it references.
//
// The same fixture can be scoped per spec with PerTest or shared across an
// Ordered container with PerContainer, trading isolation for setup cost.
//
// # Readiness
//
// EnsureReady blocks until the service answers, once per process, and is
// intended to be called from BeforeSuite.
//
// # Configuration
//
// Settings come from the environment, optionally seeded from test/.env.
// DB_TYPE is mandatory and names the database backend the service is
// running against; suites use it to branch backend specific expectations.
package api
