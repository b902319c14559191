// Copyright 2024 The kiwi-go Authors
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

package kiwi

import "math"

// Strength is the priority of a constraint. When not every soft constraint
// can be satisfied, the solver minimizes the strength-weighted violation, so
// stronger constraints are sacrificed last. Strengths form a total order and
// are built from three lexicographic levels; each level is scaled so that no
// combination of weaker levels can ever outweigh a single stronger one.
type Strength float64

// The predefined strengths. Required is a distinguished maximum: it cannot be
// produced by any combination of the soft levels, and a required constraint
// must hold exactly.
const (
	Required Strength = 1000*1000000 + 1000*1000 + 1000
	Strong   Strength = 1000000
	Medium   Strength = 1000
	Weak     Strength = 1
)

// MakeStrength combines the three soft levels into a single Strength. Each
// component is multiplied by the optional weight (default 1) and clamped to
// [0, 1000] before scaling, so levels never overlap.
func MakeStrength(strong, medium, weak float64, weight ...float64) Strength {
	w := 1.0
	if len(weight) > 0 {
		w = weight[0]
	}
	var result float64
	result += clampComponent(strong*w) * 1000000
	result += clampComponent(medium*w) * 1000
	result += clampComponent(weak * w)
	return Strength(result)
}

// Clip clamps the strength into the valid range [0, Required].
func Clip(s Strength) Strength {
	return Strength(math.Max(0, math.Min(float64(Required), float64(s))))
}

func clampComponent(v float64) float64 {
	return math.Max(0, math.Min(1000, v))
}

func (s Strength) String() string {
	switch s {
	case Required:
		return "required"
	case Strong:
		return "strong"
	case Medium:
		return "medium"
	case Weak:
		return "weak"
	}
	return formatFloat(float64(s))
}
