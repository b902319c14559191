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

import "fmt"

// Operator is the relational operator of a constraint.
type Operator int

// The supported relational operators, relating an expression to zero.
const (
	LessOrEqual Operator = iota
	GreaterOrEqual
	Equal
)

func (o Operator) String() string {
	switch o {
	case LessOrEqual:
		return "<="
	case GreaterOrEqual:
		return ">="
	case Equal:
		return "=="
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Constraint is a linear constraint of the form `expression op 0` with an
// associated strength. Constraints are immutable once created and are
// compared by identity: two structurally identical constraints are distinct
// objects for the purposes of AddConstraint, RemoveConstraint, and
// HasConstraint.
type Constraint struct {
	expression Expression
	op         Operator
	strength   Strength
}

// NewConstraint creates a constraint from the given expression, operator, and
// strength. The expression is copied and reduced (terms for the same Variable
// are merged) so later mutation of `e` does not affect the constraint. The
// strength is clipped into the valid range.
func NewConstraint(e *Expression, op Operator, strength Strength) *Constraint {
	return &Constraint{
		expression: Expression{
			terms:    reduceTerms(e.terms),
			constant: e.constant,
		},
		op:       op,
		strength: Clip(strength),
	}
}

// NewRequiredConstraint creates a constraint with the Required strength.
func NewRequiredConstraint(e *Expression, op Operator) *Constraint {
	return NewConstraint(e, op, Required)
}

// Expression returns the reduced expression of the constraint.
func (c *Constraint) Expression() *Expression {
	return &c.expression
}

// Op returns the relational operator of the constraint.
func (c *Constraint) Op() Operator {
	return c.op
}

// Strength returns the strength of the constraint.
func (c *Constraint) Strength() Strength {
	return c.strength
}

func (c *Constraint) String() string {
	return fmt.Sprintf("%v %v 0 [%v]", &c.expression, c.op, c.strength)
}
