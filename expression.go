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
	"strconv"
	"strings"

	log "github.com/golang/glog"
)

// Term is a single (variable, coefficient) pair of a linear expression.
// A Term with a zero coefficient is inert.
type Term struct {
	Variable    *Variable
	Coefficient float64
}

// Value returns the current value of the term, i.e. the coefficient times the
// variable's last solved value.
func (t Term) Value() float64 {
	return t.Coefficient * t.Variable.Value()
}

// Expression is a linear combination of terms plus a constant. It is a
// container for building constraints; use the fluent Add* methods to
// construct one:
//
//	e := NewExpression().AddTerm(x, 2).Add(y).AddConstant(-10)
//
// Terms for the same Variable are merged when the expression is turned into a
// Constraint, not while building.
type Expression struct {
	terms    []Term
	constant float64
}

// NewExpression creates a new empty Expression.
func NewExpression() *Expression {
	return &Expression{}
}

// NewConstant creates and returns an Expression containing the constant `c`.
func NewConstant(c float64) *Expression {
	return &Expression{constant: c}
}

// Add adds the variable with coefficient 1 to the Expression and returns
// itself.
func (e *Expression) Add(v *Variable) *Expression {
	return e.AddTerm(v, 1)
}

// AddTerm adds the variable with the given coefficient to the Expression and
// returns itself.
func (e *Expression) AddTerm(v *Variable, coeff float64) *Expression {
	e.terms = append(e.terms, Term{Variable: v, Coefficient: coeff})
	return e
}

// AddConstant adds the constant to the Expression and returns itself.
func (e *Expression) AddConstant(c float64) *Expression {
	e.constant += c
	return e
}

// AddExpression adds all terms and the constant of `other`, scaled by
// `coeff`, to the Expression and returns itself.
func (e *Expression) AddExpression(other *Expression, coeff float64) *Expression {
	for _, t := range other.terms {
		e.AddTerm(t.Variable, t.Coefficient*coeff)
	}
	e.constant += other.constant * coeff
	return e
}

// AddSum adds each variable with coefficient 1 to the Expression and returns
// itself.
func (e *Expression) AddSum(vs ...*Variable) *Expression {
	for _, v := range vs {
		e.Add(v)
	}
	return e
}

// AddWeightedSum adds the variables with the corresponding coefficients to
// the Expression and returns itself.
func (e *Expression) AddWeightedSum(vs []*Variable, coeffs []float64) *Expression {
	if len(coeffs) != len(vs) {
		log.Fatalf("vs and coeffs must be the same length: %v != %v", len(vs), len(coeffs))
	}
	for i, v := range vs {
		e.AddTerm(v, coeffs[i])
	}
	return e
}

// Terms returns the terms of the expression in insertion order.
func (e *Expression) Terms() []Term {
	return e.terms
}

// Constant returns the constant of the expression.
func (e *Expression) Constant() float64 {
	return e.constant
}

// Value evaluates the expression against the variables' last solved values.
func (e *Expression) Value() float64 {
	result := e.constant
	for _, t := range e.terms {
		result += t.Value()
	}
	return result
}

func (e *Expression) String() string {
	var b strings.Builder
	for i, t := range e.terms {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(formatFloat(t.Coefficient))
		b.WriteString(" * ")
		b.WriteString(t.Variable.Name())
	}
	if len(e.terms) == 0 || e.constant != 0 {
		if len(e.terms) > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(formatFloat(e.constant))
	}
	return b.String()
}

// reduceTerms merges terms referring to the same Variable, summing their
// coefficients and preserving first-appearance order.
func reduceTerms(terms []Term) []Term {
	index := make(map[*Variable]int, len(terms))
	reduced := make([]Term, 0, len(terms))
	for _, t := range terms {
		if i, ok := index[t.Variable]; ok {
			reduced[i].Coefficient += t.Coefficient
			continue
		}
		index[t.Variable] = len(reduced)
		reduced = append(reduced, t)
	}
	return reduced
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
