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

package main

import (
	"flag"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/spoolman/integration/pkg/spoolman"

	"sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/controller-runtime/pkg/manager/signals"
)

func main() {
	var (
		baseURL string
		timeout time.Duration
		smoke   bool
	)

	pflag.StringVar(&baseURL, "base-url", spoolman.DefaultBaseURL, "Root URL of the Spoolman service.")
	pflag.DurationVar(&timeout, "timeout", spoolman.DefaultReadyTimeout, "How long to wait for the service to answer.")
	pflag.BoolVar(&smoke, "smoke", false, "Create and delete a vendor and filament once the service is ready.")

	zapOptions := zap.Options{}

	zapFlags := flag.NewFlagSet("zap", flag.ExitOnError)
	zapOptions.BindFlags(zapFlags)
	pflag.CommandLine.AddGoFlagSet(zapFlags)

	pflag.Parse()

	log.SetLogger(zap.New(zap.UseFlagOptions(&zapOptions)))

	logger := log.Log.WithName("spoolman-wait")
	logger.Info("waiting for service", "url", baseURL, "timeout", timeout)

	ctx := signals.SetupSignalHandler()

	if err := spoolman.WaitUntilReady(ctx, baseURL, timeout, spoolman.WithProbeLogger(logger)); err != nil {
		logger.Error(err, "service did not become ready")
		os.Exit(1)
	}

	logger.Info("service ready")

	if !smoke {
		return
	}

	client := spoolman.NewAPIClientWithConfig(spoolman.ClientConfig{
		BaseURL: baseURL,
		Logger:  logger.WithName("client"),
	})

	if err := spoolman.RoundTrip(ctx, client); err != nil {
		logger.Error(err, "smoke test failed")
		os.Exit(1)
	}

	logger.Info("smoke test passed")
}
