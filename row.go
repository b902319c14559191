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

// epsilon is the tolerance below which a coefficient or residual is treated
// as zero.
const epsilon = 1.0e-8

func nearZero(v float64) bool {
	if v < 0 {
		return -v < epsilon
	}
	return v < epsilon
}

// row is a tableau row: a constant plus a linear combination of non-basic
// symbols. A row keyed by symbol b in the tableau encodes b = constant + sum
// of cells. Coefficients that become zero are pruned eagerly, so iterating
// the cells never yields an inert symbol.
type row struct {
	constant float64
	cells    map[symbol]float64
}

func newRow(constant float64) *row {
	return &row{constant: constant, cells: make(map[symbol]float64)}
}

func (r *row) copy() *row {
	cells := make(map[symbol]float64, len(r.cells))
	for s, c := range r.cells {
		cells[s] = c
	}
	return &row{constant: r.constant, cells: cells}
}

// add adds a value to the constant and returns the new constant.
func (r *row) add(v float64) float64 {
	r.constant += v
	return r.constant
}

// insertSymbol adds coeff to the coefficient of the symbol, pruning the cell
// if the result is zero.
func (r *row) insertSymbol(s symbol, coeff float64) {
	coeff += r.cells[s]
	if nearZero(coeff) {
		delete(r.cells, s)
		return
	}
	r.cells[s] = coeff
}

// insertRow adds `other` scaled by coeff into this row.
func (r *row) insertRow(other *row, coeff float64) {
	r.constant += other.constant * coeff
	for s, c := range other.cells {
		r.insertSymbol(s, c*coeff)
	}
}

func (r *row) remove(s symbol) {
	delete(r.cells, s)
}

func (r *row) reverseSign() {
	r.constant = -r.constant
	for s, c := range r.cells {
		r.cells[s] = -c
	}
}

// solveFor turns the implicit equation `0 = constant + cells` into a
// definition of `s`: the symbol is removed and the remaining row is scaled by
// the negative inverse of its coefficient.
func (r *row) solveFor(s symbol) {
	coeff := -1.0 / r.cells[s]
	delete(r.cells, s)
	r.constant *= coeff
	for sym, c := range r.cells {
		r.cells[sym] = c * coeff
	}
}

// solveForPair makes `rhs` the defined symbol of a row currently defining
// `lhs`, i.e. it performs the symbolic part of a pivot.
func (r *row) solveForPair(lhs, rhs symbol) {
	r.insertSymbol(lhs, -1)
	r.solveFor(rhs)
}

func (r *row) coefficientFor(s symbol) float64 {
	return r.cells[s]
}

// substitute replaces every occurrence of the symbol with the given row,
// keeping the row expressed purely in non-basic symbols.
func (r *row) substitute(s symbol, other *row) {
	c, ok := r.cells[s]
	if !ok {
		return
	}
	delete(r.cells, s)
	r.insertRow(other, c)
}

// allDummies reports whether every symbol in the row is a dummy.
func (r *row) allDummies() bool {
	for s := range r.cells {
		if s.kind != symbolDummy {
			return false
		}
	}
	return true
}
