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

package api

import (
	"context"
	"sync"

	"github.com/onsi/ginkgo/v2"

	"github.com/spoolman/integration/pkg/spoolman"
)

//nolint:gochecknoglobals
var (
	readyOnce sync.Once
	readyErr  error
)

// EnsureReady waits for the service once per test process. Later calls
// return the first outcome without probing again.
func EnsureReady(ctx context.Context, config *TestConfig) error {
	readyOnce.Do(func() {
		ginkgo.GinkgoWriter.Printf("Waiting up to %s for %s to become ready\n", config.ReadyTimeout, config.BaseURL)

		readyErr = spoolman.WaitUntilReady(ctx, config.BaseURL, config.ReadyTimeout,
			spoolman.WithProbeTimeout(config.ProbeTimeout),
			spoolman.WithProbeLogger(ginkgo.GinkgoLogr))
	})

	return readyErr
}
