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

// Variable is a real-valued variable in a constraint system. Variables are
// created and owned by the caller; a Solver refers to them by identity and
// writes their solved values during UpdateVariables. The same Variable may
// appear in any number of constraints and solvers.
type Variable struct {
	name  string
	value float64
}

// NewVariable creates a new Variable with the given name. The name is purely
// diagnostic and need not be unique.
func NewVariable(name string) *Variable {
	return &Variable{name: name}
}

// Name returns the name of the variable.
func (v *Variable) Name() string {
	return v.name
}

// Value returns the value computed by the most recent UpdateVariables call of
// a Solver the variable participates in, or zero if it was never solved.
func (v *Variable) Value() float64 {
	return v.value
}

func (v *Variable) String() string {
	return v.name
}
