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
	"k8s.io/utils/ptr"
)

const (
	// DefaultDensity is the density used by the stock filament payloads, in g/cm3.
	DefaultDensity = 1.25

	// DefaultDiameter is the diameter used by the stock filament payloads, in mm.
	DefaultDiameter = 1.75
)

// VendorPayload is the body of a vendor create request.
// Name is required by the service but may be empty.
type VendorPayload struct {
	Name string `json:"name"`
}

// FilamentPayload is the body of a filament create request.
// Density and Diameter are required; everything else is optional.
type FilamentPayload struct {
	Name          *string  `json:"name,omitempty"`
	VendorID      *int64   `json:"vendor_id,omitempty"`
	Material      *string  `json:"material,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Density       float64  `json:"density"`
	Diameter      float64  `json:"diameter"`
	Weight        *float64 `json:"weight,omitempty"`
	SpoolWeight   *float64 `json:"spool_weight,omitempty"`
	ArticleNumber *string  `json:"article_number,omitempty"`
	Comment       *string  `json:"comment,omitempty"`
}

// VendorPayloadBuilder builds vendor payloads for testing.
type VendorPayloadBuilder struct {
	payload VendorPayload
}

// NewVendorPayload creates a vendor payload with every field populated.
func NewVendorPayload() *VendorPayloadBuilder {
	return &VendorPayloadBuilder{
		payload: VendorPayload{
			Name: "John",
		},
	}
}

// NewEmptyVendorPayload creates a vendor payload with only the required
// fields, left at their zero values.
func NewEmptyVendorPayload() *VendorPayloadBuilder {
	return &VendorPayloadBuilder{}
}

// WithName sets the vendor name.
func (b *VendorPayloadBuilder) WithName(name string) *VendorPayloadBuilder {
	b.payload.Name = name
	return b
}

// Build returns the completed vendor payload.
func (b *VendorPayloadBuilder) Build() VendorPayload {
	return b.payload
}

// FilamentPayloadBuilder builds filament payloads for testing.
type FilamentPayloadBuilder struct {
	payload FilamentPayload
}

// NewFilamentPayload creates a filament payload with every optional field
// populated, except the vendor which must be supplied by the caller.
// The comment contains non-ASCII text so encoding problems surface.
func NewFilamentPayload() *FilamentPayloadBuilder {
	return &FilamentPayloadBuilder{
		payload: FilamentPayload{
			Name:          ptr.To("Filament X"),
			Material:      ptr.To("PLA"),
			Price:         ptr.To(100.0),
			Density:       DefaultDensity,
			Diameter:      DefaultDiameter,
			Weight:        ptr.To(1000.0),
			SpoolWeight:   ptr.To(250.0),
			ArticleNumber: ptr.To("123456789"),
			Comment:       ptr.To("abcdefghåäö"),
		},
	}
}

// NewEmptyFilamentPayload creates a filament payload with only density and
// diameter set.
func NewEmptyFilamentPayload() *FilamentPayloadBuilder {
	return &FilamentPayloadBuilder{
		payload: FilamentPayload{
			Density:  DefaultDensity,
			Diameter: DefaultDiameter,
		},
	}
}

// WithName sets the filament name.
func (b *FilamentPayloadBuilder) WithName(name string) *FilamentPayloadBuilder {
	b.payload.Name = ptr.To(name)
	return b
}

// WithVendorID links the filament to a vendor.
func (b *FilamentPayloadBuilder) WithVendorID(id int64) *FilamentPayloadBuilder {
	b.payload.VendorID = ptr.To(id)
	return b
}

// WithMaterial sets the material name.
func (b *FilamentPayloadBuilder) WithMaterial(material string) *FilamentPayloadBuilder {
	b.payload.Material = ptr.To(material)
	return b
}

// WithDensity sets the material density in g/cm3.
func (b *FilamentPayloadBuilder) WithDensity(density float64) *FilamentPayloadBuilder {
	b.payload.Density = density
	return b
}

// WithDiameter sets the filament diameter in mm.
func (b *FilamentPayloadBuilder) WithDiameter(diameter float64) *FilamentPayloadBuilder {
	b.payload.Diameter = diameter
	return b
}

// WithWeight sets the net filament weight in g.
func (b *FilamentPayloadBuilder) WithWeight(weight float64) *FilamentPayloadBuilder {
	b.payload.Weight = ptr.To(weight)
	return b
}

// WithComment sets the free text comment.
func (b *FilamentPayloadBuilder) WithComment(comment string) *FilamentPayloadBuilder {
	b.payload.Comment = ptr.To(comment)
	return b
}

// Build returns the completed filament payload.
func (b *FilamentPayloadBuilder) Build() FilamentPayload {
	return b.payload
}
