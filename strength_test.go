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

import "testing"

func TestStrengthOrdering(t *testing.T) {
	if !(Weak < Medium && Medium < Strong && Strong < Required) {
		t.Errorf("strength levels are not totally ordered: weak=%v medium=%v strong=%v required=%v",
			Weak, Medium, Strong, Required)
	}
	// No finite combination of the soft levels may exceed Required.
	if max := MakeStrength(1000, 1000, 1000); max > Required {
		t.Errorf("MakeStrength(1000, 1000, 1000) = %v, want <= %v", max, Required)
	}
	if s := MakeStrength(1e9, 1e9, 1e9, 1e9); s > Required {
		t.Errorf("MakeStrength with huge components = %v, want <= %v", s, Required)
	}
}

func TestMakeStrength(t *testing.T) {
	testCases := []struct {
		name     string
		strength Strength
		want     Strength
	}{
		{
			name:     "StrongLevel",
			strength: MakeStrength(1, 0, 0),
			want:     Strong,
		},
		{
			name:     "MediumLevel",
			strength: MakeStrength(0, 1, 0),
			want:     Medium,
		},
		{
			name:     "WeakLevel",
			strength: MakeStrength(0, 0, 1),
			want:     Weak,
		},
		{
			name:     "RequiredSentinel",
			strength: MakeStrength(1000, 1000, 1000),
			want:     Required,
		},
		{
			name:     "Weight",
			strength: MakeStrength(2, 0, 0, 3),
			want:     6 * Strong,
		},
		{
			name:     "ComponentsClamped",
			strength: MakeStrength(5000, -10, 0),
			want:     1000 * Strong,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.strength; got != tc.want {
				t.Errorf("MakeStrength = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClip(t *testing.T) {
	if got := Clip(Required * 2); got != Required {
		t.Errorf("Clip(2*Required) = %v, want %v", got, Required)
	}
	if got := Clip(-5); got != 0 {
		t.Errorf("Clip(-5) = %v, want 0", got)
	}
	if got := Clip(Medium); got != Medium {
		t.Errorf("Clip(Medium) = %v, want %v", got, Medium)
	}
}
