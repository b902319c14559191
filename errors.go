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

import "errors"

// The errors reported by Solver operations. All are signaled synchronously at
// the point of violation and leave the solver usable; match them with
// errors.Is.
var (
	// ErrDuplicateConstraint holds the error when a constraint that is already
	// active is added again.
	ErrDuplicateConstraint = errors.New("kiwi: the constraint has already been added to the solver")
	// ErrUnsatisfiableConstraint holds the error when a required constraint
	// conflicts with the other required constraints. The failed call leaves the
	// solver exactly as it was.
	ErrUnsatisfiableConstraint = errors.New("kiwi: the constraint cannot be satisfied")
	// ErrUnknownConstraint holds the error when the constraint to remove is not
	// active.
	ErrUnknownConstraint = errors.New("kiwi: the constraint has not been added to the solver")
	// ErrDuplicateEditVariable holds the error when a variable already has an
	// active edit entry.
	ErrDuplicateEditVariable = errors.New("kiwi: the edit variable has already been added to the solver")
	// ErrUnknownEditVariable holds the error when the variable to suggest or
	// remove has no active edit entry.
	ErrUnknownEditVariable = errors.New("kiwi: the edit variable has not been added to the solver")
	// ErrBadRequiredStrength holds the error when the Required strength is used
	// where only soft strengths are legal.
	ErrBadRequiredStrength = errors.New("kiwi: a required strength cannot be used in this context")
	// ErrInternalSolver holds the error for tableau states the algorithm treats
	// as unreachable, such as an unbounded objective.
	ErrInternalSolver = errors.New("kiwi: internal solver error")
)
