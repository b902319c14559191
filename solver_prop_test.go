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
	"errors"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// constraintCase describes a single-variable bound `vars[varIndex] op rhs` at
// one of the four strengths.
type constraintCase struct {
	varIndex int
	op       Operator
	rhs      float64
	strength int
}

var caseStrengths = []Strength{Weak, Medium, Strong, Required}

func (cs constraintCase) build(vars []*Variable) *Constraint {
	e := NewExpression().Add(vars[cs.varIndex]).AddConstant(-cs.rhs)
	return NewConstraint(e, cs.op, caseStrengths[cs.strength])
}

func (cs constraintCase) satisfied(vars []*Variable, tol float64) bool {
	residual := vars[cs.varIndex].Value() - cs.rhs
	switch cs.op {
	case LessOrEqual:
		return residual <= tol
	case GreaterOrEqual:
		return residual >= -tol
	default:
		return math.Abs(residual) <= tol
	}
}

// weightedViolation is the strength-scaled amount by which the bound is
// missed at the variables' current values.
func (cs constraintCase) weightedViolation(vars []*Variable) float64 {
	residual := vars[cs.varIndex].Value() - cs.rhs
	var miss float64
	switch cs.op {
	case LessOrEqual:
		miss = math.Max(0, residual)
	case GreaterOrEqual:
		miss = math.Max(0, -residual)
	default:
		miss = math.Abs(residual)
	}
	return float64(caseStrengths[cs.strength]) * miss
}

func totalViolation(cases []constraintCase, vars []*Variable) float64 {
	var total float64
	for _, cs := range cases {
		total += cs.weightedViolation(vars)
	}
	return total
}

func genConstraintCase() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 2),
		gen.IntRange(0, 2),
		gen.Float64Range(-50, 50),
		gen.IntRange(0, 3),
	).Map(func(values []interface{}) constraintCase {
		return constraintCase{
			varIndex: values[0].(int),
			op:       Operator(values[1].(int)),
			rhs:      values[2].(float64),
			strength: values[3].(int),
		}
	})
}

func newPropVars() []*Variable {
	return []*Variable{NewVariable("a"), NewVariable("b"), NewVariable("c")}
}

func TestSolverProperties(t *testing.T) {
	parameters := gopter.DefaultTestParametersWithSeed(42)
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("required constraints hold after every successful add", prop.ForAll(
		func(cases []constraintCase) bool {
			solver := NewSolver()
			vars := newPropVars()
			var active []constraintCase
			for _, cs := range cases {
				err := solver.AddConstraint(cs.build(vars))
				switch {
				case err == nil:
					active = append(active, cs)
				case errors.Is(err, ErrUnsatisfiableConstraint):
					// Only a required constraint may be rejected.
					if caseStrengths[cs.strength] != Required {
						return false
					}
				default:
					return false
				}
				solver.UpdateVariables()
				for _, a := range active {
					if caseStrengths[a.strength] == Required && !a.satisfied(vars, 1e-6) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(genConstraintCase()),
	))

	// Degenerate ties between equally-weighted bounds admit several optimal
	// vertices, so exact values may legitimately move across an add/remove
	// pair; the strength-weighted violation at the optimum may not.
	properties.Property("adding then removing a constraint preserves the optimum", prop.ForAll(
		func(cases []constraintCase, extra constraintCase) bool {
			solver := NewSolver()
			vars := newPropVars()
			var active []constraintCase
			for _, cs := range cases {
				err := solver.AddConstraint(cs.build(vars))
				if err == nil {
					active = append(active, cs)
				} else if !errors.Is(err, ErrUnsatisfiableConstraint) {
					return false
				}
			}
			solver.UpdateVariables()
			before := totalViolation(active, vars)

			// A soft constraint can always be added.
			extra.strength = extra.strength % 3
			c := extra.build(vars)
			if err := solver.AddConstraint(c); err != nil {
				return false
			}
			if err := solver.RemoveConstraint(c); err != nil {
				return false
			}
			solver.UpdateVariables()
			after := totalViolation(active, vars)

			return math.Abs(after-before) <= 1e-6*(1+math.Abs(before))
		},
		gen.SliceOf(genConstraintCase()),
		genConstraintCase(),
	))

	properties.Property("HasConstraint reflects exactly the active set", prop.ForAll(
		func(cases []constraintCase) bool {
			solver := NewSolver()
			vars := newPropVars()
			var added []*Constraint
			for _, cs := range cases {
				c := cs.build(vars)
				err := solver.AddConstraint(c)
				if err == nil {
					added = append(added, c)
				} else if !errors.Is(err, ErrUnsatisfiableConstraint) || solver.HasConstraint(c) {
					return false
				}
			}
			for _, c := range added {
				if !solver.HasConstraint(c) {
					return false
				}
				if err := solver.RemoveConstraint(c); err != nil {
					return false
				}
				if solver.HasConstraint(c) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genConstraintCase()),
	))

	properties.TestingRun(t)
}
