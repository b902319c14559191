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

// The layoutdemo binary solves a classic cassowary problem: a two-pane window
// layout with a draggable divider. It also serves as an example of how the
// kiwi library is used.
package main

import (
	"flag"
	"fmt"

	log "github.com/golang/glog"
	kiwi "github.com/nucleic/kiwi-go"
)

var (
	windowWidth = flag.Float64("width", 800, "window width in pixels")
	minPane     = flag.Float64("min_pane", 100, "minimum pane width in pixels")
)

func main() {
	flag.Parse()

	solver := kiwi.NewSolver()
	left := kiwi.NewVariable("left")
	right := kiwi.NewVariable("right")
	divider := kiwi.NewVariable("divider")

	// left == 0, right == width.
	mustAdd(solver, kiwi.NewRequiredConstraint(
		kiwi.NewExpression().Add(left), kiwi.Equal))
	mustAdd(solver, kiwi.NewRequiredConstraint(
		kiwi.NewExpression().Add(right).AddConstant(-*windowWidth), kiwi.Equal))

	// Each pane keeps its minimum width: divider >= left + minPane and
	// divider <= right - minPane.
	mustAdd(solver, kiwi.NewRequiredConstraint(
		kiwi.NewExpression().Add(divider).AddTerm(left, -1).AddConstant(-*minPane), kiwi.GreaterOrEqual))
	mustAdd(solver, kiwi.NewRequiredConstraint(
		kiwi.NewExpression().Add(divider).AddTerm(right, -1).AddConstant(*minPane), kiwi.LessOrEqual))

	// Prefer a centered divider when nobody is dragging.
	mustAdd(solver, kiwi.NewConstraint(
		kiwi.NewExpression().Add(divider).AddTerm(left, -0.5).AddTerm(right, -0.5), kiwi.Equal, kiwi.Weak))

	solver.UpdateVariables()
	fmt.Printf("initial: divider at %v\n", divider.Value())

	// Drag the divider around; the required pane minimums clamp the motion.
	if err := solver.AddEditVariable(divider, kiwi.Strong); err != nil {
		log.Exitf("Failed AddEditVariable: %v", err)
	}
	for _, target := range []float64{300, 50, *windowWidth * 2} {
		if err := solver.SuggestValue(divider, target); err != nil {
			log.Exitf("Failed SuggestValue(%v): %v", target, err)
		}
		solver.UpdateVariables()
		fmt.Printf("drag to %v: divider at %v\n", target, divider.Value())
	}

	if log.V(1) {
		fmt.Println(solver.Dumps())
	}
}

func mustAdd(solver *kiwi.Solver, c *kiwi.Constraint) {
	if err := solver.AddConstraint(c); err != nil {
		log.Exitf("Failed AddConstraint(%v): %v", c, err)
	}
}
