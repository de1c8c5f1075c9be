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
	"encoding/json"
	"fmt"
	"math"
)

// Kind names an entity collection on the API.
type Kind string

const (
	KindVendor   Kind = "vendor"
	KindFilament Kind = "filament"
)

// Entity is a record as returned by the API. Apart from the id, its
// contents are owned by the service and are not interpreted here.
type Entity map[string]interface{}

// ID returns the numeric identifier of the entity.
func (e Entity) ID() (int64, error) {
	raw, ok := e["id"]
	if !ok {
		return 0, ErrMissingID
	}

	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidID, v)
		}

		return int64(v), nil
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidID, err)
		}

		return id, nil
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("%w: unexpected type %T", ErrInvalidID, raw)
	}
}
