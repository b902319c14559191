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

import (
	"math"
	"testing"
)

func TestRowInsertSymbolPrunesZero(t *testing.T) {
	s := symbol{kind: symbolSlack, id: 1}
	r := newRow(0)

	r.insertSymbol(s, 2)
	r.insertSymbol(s, -2)

	if _, ok := r.cells[s]; ok {
		t.Errorf("cells[%v] still present after coefficients canceled, want pruned", s)
	}
}

func TestRowInsertRow(t *testing.T) {
	s1 := symbol{kind: symbolSlack, id: 1}
	s2 := symbol{kind: symbolError, id: 2}

	r := newRow(1)
	r.insertSymbol(s1, 2)

	other := newRow(3)
	other.insertSymbol(s1, 1)
	other.insertSymbol(s2, -1)

	r.insertRow(other, 2)

	if got := r.constant; got != 7 {
		t.Errorf("constant = %v, want 7", got)
	}
	if got := r.coefficientFor(s1); got != 4 {
		t.Errorf("coefficientFor(s1) = %v, want 4", got)
	}
	if got := r.coefficientFor(s2); got != -2 {
		t.Errorf("coefficientFor(s2) = %v, want -2", got)
	}
}

func TestRowSolveFor(t *testing.T) {
	// 0 = 6 + 2*s1 - 3*s2, solved for s1: s1 = -3 + 1.5*s2.
	s1 := symbol{kind: symbolSlack, id: 1}
	s2 := symbol{kind: symbolSlack, id: 2}

	r := newRow(6)
	r.insertSymbol(s1, 2)
	r.insertSymbol(s2, -3)
	r.solveFor(s1)

	if got := r.constant; got != -3 {
		t.Errorf("constant = %v, want -3", got)
	}
	if got := r.coefficientFor(s2); got != 1.5 {
		t.Errorf("coefficientFor(s2) = %v, want 1.5", got)
	}
	if got := r.coefficientFor(s1); got != 0 {
		t.Errorf("coefficientFor(s1) = %v, want 0", got)
	}
}

func TestRowSolveForPair(t *testing.T) {
	// s1 = 4 - 2*s2 pivoted so that s2 = 2 - 0.5*s1.
	s1 := symbol{kind: symbolSlack, id: 1}
	s2 := symbol{kind: symbolSlack, id: 2}

	r := newRow(4)
	r.insertSymbol(s2, -2)
	r.solveForPair(s1, s2)

	if got := r.constant; got != 2 {
		t.Errorf("constant = %v, want 2", got)
	}
	if got := r.coefficientFor(s1); got != -0.5 {
		t.Errorf("coefficientFor(s1) = %v, want -0.5", got)
	}
}

func TestRowSubstitute(t *testing.T) {
	s1 := symbol{kind: symbolSlack, id: 1}
	s2 := symbol{kind: symbolSlack, id: 2}
	s3 := symbol{kind: symbolSlack, id: 3}

	r := newRow(1)
	r.insertSymbol(s1, 2)
	r.insertSymbol(s3, 1)

	// s1 := 5 - s2
	def := newRow(5)
	def.insertSymbol(s2, -1)
	r.substitute(s1, def)

	if got := r.constant; got != 11 {
		t.Errorf("constant = %v, want 11", got)
	}
	if got := r.coefficientFor(s2); got != -2 {
		t.Errorf("coefficientFor(s2) = %v, want -2", got)
	}
	if got := r.coefficientFor(s1); got != 0 {
		t.Errorf("coefficientFor(s1) = %v, want 0", got)
	}
	if got := r.coefficientFor(s3); got != 1 {
		t.Errorf("coefficientFor(s3) = %v, want 1", got)
	}
}

func TestRowReverseSign(t *testing.T) {
	s1 := symbol{kind: symbolSlack, id: 1}

	r := newRow(-2)
	r.insertSymbol(s1, 3)
	r.reverseSign()

	if got := r.constant; got != 2 {
		t.Errorf("constant = %v, want 2", got)
	}
	if got := r.coefficientFor(s1); got != -3 {
		t.Errorf("coefficientFor(s1) = %v, want -3", got)
	}
}

func TestRowAllDummies(t *testing.T) {
	r := newRow(0)
	r.insertSymbol(symbol{kind: symbolDummy, id: 1}, 1)
	if !r.allDummies() {
		t.Error("allDummies() = false for a dummy-only row, want true")
	}
	r.insertSymbol(symbol{kind: symbolSlack, id: 2}, 1)
	if r.allDummies() {
		t.Error("allDummies() = true for a row with a slack symbol, want false")
	}
}

func TestNearZero(t *testing.T) {
	testCases := []struct {
		value float64
		want  bool
	}{
		{0, true},
		{epsilon / 2, true},
		{-epsilon / 2, true},
		{epsilon * 2, false},
		{-epsilon * 2, false},
		{math.MaxFloat64, false},
	}
	for _, tc := range testCases {
		if got := nearZero(tc.value); got != tc.want {
			t.Errorf("nearZero(%v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
