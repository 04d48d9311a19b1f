// Copyright 2023 ConsenSys AG
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cassowary

import "github.com/consensys/cassowary/internal/tableau"

// Strength specifies the precedence the solver imposes when choosing which
// constraints to enforce. It tries to enforce all of them, but when that is
// impossible the lowest strength constraints are the first to be violated.
//
// Strengths are real numbers in [0, Required], conceptually three tiers
// combined as strong*1e6 + medium*1e3 + weak. Required marks a hard
// constraint: the solver fails rather than violate it.
type Strength float64

const (
	// Weak is the weakest predefined strength, commonly used for default
	// values a variable falls back to when nothing stronger pins it.
	Weak Strength = 1

	// Medium sits between Weak and Strong.
	Medium Strength = 1e3

	// Strong is the strongest predefined soft strength.
	Strong Strength = 1e6

	// Required marks a constraint that cannot be violated under any
	// circumstance. Use sparingly: the solver fails completely if the
	// required constraints cannot all be satisfied.
	Required Strength = tableau.Required
)

// NewStrength clips value into the legal range [0, Required].
func NewStrength(value float64) Strength {
	return Strength(tableau.Clip(value))
}

// MakeStrength combines the three tiers into a single strength. Each tier is
// clamped to [0, 1000] before being combined.
func MakeStrength(strong, medium, weak float64) Strength {
	return MakeWeightedStrength(strong, medium, weak, 1)
}

// MakeWeightedStrength is MakeStrength with every tier scaled by weight
// before clamping.
func MakeWeightedStrength(strong, medium, weak, weight float64) Strength {
	return Strength(clampTier(strong*weight)*1e6 +
		clampTier(medium*weight)*1e3 +
		clampTier(weak*weight))
}

func clampTier(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1000 {
		return 1000
	}
	return v
}

// Mul scales the strength by weight, clipping into the legal range.
func (s Strength) Mul(weight float64) Strength {
	return NewStrength(float64(s) * weight)
}

// Add returns s + other clipped into the legal range.
func (s Strength) Add(other Strength) Strength {
	return NewStrength(float64(s) + float64(other))
}

// Sub returns s - other clipped into the legal range.
func (s Strength) Sub(other Strength) Strength {
	return NewStrength(float64(s) - float64(other))
}
