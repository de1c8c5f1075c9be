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
	"context"
	"errors"
	"fmt"
)

// WithEntity creates an entity, hands it to fn and deletes it again once fn
// returns or panics. Create, callback and delete errors are all reported.
// Nothing is retried.
func WithEntity(ctx context.Context, client *APIClient, kind Kind, payload interface{}, fn func(Entity) error) (err error) {
	entity, err := client.Create(ctx, kind, payload)
	if err != nil {
		return err
	}

	id, err := entity.ID()
	if err != nil {
		return fmt.Errorf("creating %s: %w", kind, err)
	}

	defer func() {
		// Release even if the caller's context was cancelled.
		if deleteErr := client.Delete(context.WithoutCancel(ctx), kind, id); deleteErr != nil {
			err = errors.Join(err, deleteErr)
		}
	}()

	return fn(entity)
}

// WithVendor is WithEntity for vendors.
func WithVendor(ctx context.Context, client *APIClient, payload VendorPayload, fn func(vendor Entity) error) error {
	return WithEntity(ctx, client, KindVendor, payload, fn)
}

// WithFilament is WithEntity for filaments.
func WithFilament(ctx context.Context, client *APIClient, payload FilamentPayload, fn func(filament Entity) error) error {
	return WithEntity(ctx, client, KindFilament, payload, fn)
}

// WithVendorFilament creates a vendor, then a filament referencing it.
// The filament is deleted before the vendor.
func WithVendorFilament(ctx context.Context, client *APIClient, vendor *VendorPayloadBuilder, filament *FilamentPayloadBuilder, fn func(vendor, filament Entity) error) error {
	return WithVendor(ctx, client, vendor.Build(), func(v Entity) error {
		vendorID, err := v.ID()
		if err != nil {
			return err
		}

		return WithFilament(ctx, client, filament.WithVendorID(vendorID).Build(), func(f Entity) error {
			return fn(v, f)
		})
	})
}

// RoundTrip creates a vendor and a filament referencing it, checks both can
// be read back, releases them and checks neither can be read afterwards.
func RoundTrip(ctx context.Context, client *APIClient) error {
	var vendorID, filamentID int64

	err := WithVendorFilament(ctx, client, NewVendorPayload(), NewFilamentPayload(), func(vendor, filament Entity) error {
		// IDs were validated on create.
		vendorID, _ = vendor.ID()
		filamentID, _ = filament.ID()

		if _, err := client.GetVendor(ctx, vendorID); err != nil {
			return err
		}

		if _, err := client.GetFilament(ctx, filamentID); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("round trip: %w", err)
	}

	if err := expectGone(ctx, client, KindFilament, filamentID); err != nil {
		return err
	}

	return expectGone(ctx, client, KindVendor, vendorID)
}

func expectGone(ctx context.Context, client *APIClient, kind Kind, id int64) error {
	_, err := client.Get(ctx, kind, id)
	if err == nil {
		return fmt.Errorf("round trip: %s %d still exists after delete", kind, id)
	}

	if !IsNotFound(err) {
		return fmt.Errorf("round trip: %w", err)
	}

	return nil
}
