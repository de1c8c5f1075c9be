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
	"math"
)

// LengthFromWeight returns the length in mm of a piece of filament, given
// its weight in g, its diameter in mm and the material density in g/cm3.
// Inputs are not validated, a zero density or diameter divides by zero.
func LengthFromWeight(weight, diameter, density float64) float64 {
	volumeCM3 := weight / density
	volumeMM3 := volumeCM3 * 1000

	radius := diameter / 2

	return volumeMM3 / (math.Pi * radius * radius)
}
