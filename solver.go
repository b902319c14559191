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

// Package kiwi implements the Cassowary incremental linear-arithmetic
// constraint solver.
//
// The `Solver` struct maintains a simplex tableau over a growing and
// shrinking set of linear equality and inequality constraints, each with a
// priority strength, and computes variable values that satisfy all required
// constraints while optimally satisfying the weighted soft ones. Constraints
// and edit-variable suggestions are applied incrementally: every mutation
// repairs the existing tableau instead of re-solving from scratch.
//
// Typical use:
//
//	solver := kiwi.NewSolver()
//	x := kiwi.NewVariable("x")
//	c := kiwi.NewConstraint(kiwi.NewExpression().Add(x).AddConstant(-10), kiwi.Equal, kiwi.Required)
//	if err := solver.AddConstraint(c); err != nil { ... }
//	solver.UpdateVariables()
//	fmt.Println(x.Value()) // 10
//
// All numeric inputs must be finite; NaN or infinite coefficients, constants,
// and suggested values are not supported.
//
// A Solver is safe for concurrent use: every operation runs under a
// per-instance lock. Pivot selection breaks all ties by ascending internal
// symbol id, so solved values and dumps are reproducible across runs for a
// given call sequence.
package kiwi

import (
	"errors"
	"fmt"
	"math"
	"sync"

	log "github.com/golang/glog"
)

// tag records the synthetic symbols introduced when a constraint was
// inserted. The marker identifies the constraint in the tableau; the other
// symbol, when valid, is the second error symbol of the pair. Both are needed
// to reverse the insertion.
type tag struct {
	marker symbol
	other  symbol
}

// editInfo tracks the synthetic edit constraint backing a suggested value.
type editInfo struct {
	tag        tag
	constraint *Constraint
	constant   float64
}

// Solver is an incremental Cassowary constraint solver.
//
// The zero value is not usable; call NewSolver.
type Solver struct {
	mu         sync.Mutex
	cns        map[*Constraint]tag
	rows       map[symbol]*row
	vars       map[*Variable]symbol
	edits      map[*Variable]*editInfo
	infeasible map[symbol]struct{}
	objective  *row
	artificial *row
	idTick     uint64
}

// NewSolver creates a new empty solver.
func NewSolver() *Solver {
	return &Solver{
		cns:        make(map[*Constraint]tag),
		rows:       make(map[symbol]*row),
		vars:       make(map[*Variable]symbol),
		edits:      make(map[*Variable]*editInfo),
		infeasible: make(map[symbol]struct{}),
		objective:  newRow(0),
		idTick:     1,
	}
}

// AddConstraint adds a constraint to the solver and re-optimizes.
//
// Returns ErrDuplicateConstraint if the constraint is already active, and
// ErrUnsatisfiableConstraint if it is required and conflicts with the other
// required constraints; in the latter case the solver is left exactly as it
// was before the call.
func (s *Solver) AddConstraint(c *Constraint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addConstraint(c)
}

func (s *Solver) addConstraint(c *Constraint) error {
	if _, ok := s.cns[c]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateConstraint, c)
	}
	if log.V(2) {
		log.Infof("kiwi: adding constraint %v", c)
	}

	// Creating a row causes symbols to be reserved for the variables in the
	// constraint. If this method exits with an error those symbols must be
	// released again so the failed call leaves no trace.
	var t tag
	r, newVars := s.createRow(c, &t)

	subject := chooseSubject(r, t)
	if subject.kind == symbolInvalid && r.allDummies() {
		if !nearZero(r.constant) {
			s.releaseVariables(newVars)
			return fmt.Errorf("%w: %v", ErrUnsatisfiableConstraint, c)
		}
		subject = t.marker
	}

	if subject.kind == symbolInvalid {
		// The artificial optimization pivots live rows before it can tell
		// whether the new row is satisfiable, so snapshot everything it may
		// touch and restore on failure. Only required constraints reach this
		// path, so the objective holds no error symbols for this constraint.
		savedRows := make(map[symbol]*row, len(s.rows))
		for sym, rr := range s.rows {
			savedRows[sym] = rr.copy()
		}
		savedObjective := s.objective.copy()
		savedInfeasible := make(map[symbol]struct{}, len(s.infeasible))
		for sym := range s.infeasible {
			savedInfeasible[sym] = struct{}{}
		}

		ok, err := s.addWithArtificialVariable(r)
		if err != nil || !ok {
			s.rows = savedRows
			s.objective = savedObjective
			s.infeasible = savedInfeasible
			s.releaseVariables(newVars)
			if err != nil {
				return err
			}
			return fmt.Errorf("%w: %v", ErrUnsatisfiableConstraint, c)
		}
	} else {
		r.solveFor(subject)
		s.substituteOut(subject, r)
		s.rows[subject] = r
	}

	s.cns[c] = t

	// Optimizing after each insertion keeps the tableau in an optimal state,
	// which is what allows values to be read back directly.
	return s.optimize(s.objective)
}

// RemoveConstraint removes a constraint from the solver and re-optimizes.
//
// Returns ErrUnknownConstraint if the constraint is not active.
func (s *Solver) RemoveConstraint(c *Constraint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeConstraint(c)
}

func (s *Solver) removeConstraint(c *Constraint) error {
	t, ok := s.cns[c]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownConstraint, c)
	}
	if log.V(2) {
		log.Infof("kiwi: removing constraint %v", c)
	}
	delete(s.cns, c)

	// Back out the error effects from the objective before pivoting, or the
	// substitution below would double them in.
	s.removeConstraintEffects(c, t)

	if _, basic := s.rows[t.marker]; basic {
		delete(s.rows, t.marker)
	} else {
		leaving, lr := s.getMarkerLeavingRow(t.marker)
		if lr == nil {
			return fmt.Errorf("%w: failed to find leaving row for marker %v", ErrInternalSolver, t.marker)
		}
		delete(s.rows, leaving)
		lr.solveForPair(leaving, t.marker)
		s.substituteOut(t.marker, lr)
	}

	// Removing a constraint can only relax the problem, but the remaining
	// soft constraints may now be satisfiable to a better degree.
	return s.optimize(s.objective)
}

// HasConstraint reports whether the constraint is active in the solver.
func (s *Solver) HasConstraint(c *Constraint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cns[c]
	return ok
}

// AddEditVariable makes the variable adjustable through SuggestValue by
// installing a synthetic equality constraint at the given strength.
//
// Returns ErrDuplicateEditVariable if the variable is already an edit
// variable and ErrBadRequiredStrength if the strength is Required.
func (s *Solver) AddEditVariable(v *Variable, strength Strength) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.edits[v]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateEditVariable, v)
	}
	strength = Clip(strength)
	if strength == Required {
		return fmt.Errorf("%w: edit variable %v", ErrBadRequiredStrength, v)
	}

	cn := NewConstraint(NewExpression().Add(v), Equal, strength)
	if err := s.addConstraint(cn); err != nil {
		// A soft single-variable equality is always satisfiable.
		return fmt.Errorf("%w: edit constraint rejected: %v", ErrInternalSolver, err)
	}
	s.edits[v] = &editInfo{
		tag:        s.cns[cn],
		constraint: cn,
	}
	return nil
}

// RemoveEditVariable removes the variable's edit entry and its synthetic
// constraint.
//
// Returns ErrUnknownEditVariable if the variable has no active edit entry.
func (s *Solver) RemoveEditVariable(v *Variable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.edits[v]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownEditVariable, v)
	}
	if err := s.removeConstraint(info.constraint); err != nil && !errors.Is(err, ErrUnknownConstraint) {
		return err
	}
	delete(s.edits, v)
	return nil
}

// HasEditVariable reports whether the variable has an active edit entry.
func (s *Solver) HasEditVariable(v *Variable) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.edits[v]
	return ok
}

// SuggestValue suggests a value for the given edit variable. The tableau is
// repaired with a dual re-optimization restricted to the rows made infeasible
// by the change, not a full re-solve.
//
// Returns ErrUnknownEditVariable if the variable has no active edit entry.
func (s *Solver) SuggestValue(v *Variable, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, ok := s.edits[v]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownEditVariable, v)
	}
	if log.V(2) {
		log.Infof("kiwi: suggesting %v = %v", v, value)
	}
	delta := value - info.constant
	info.constant = value
	s.applyEditDelta(info, delta)
	return s.dualOptimize()
}

// applyEditDelta shifts the constants of all rows affected by an edit delta
// and collects the rows that became infeasible.
func (s *Solver) applyEditDelta(info *editInfo, delta float64) {
	// Check first if the positive or negative error variable is basic; in
	// that case only its own row needs the delta.
	if r, ok := s.rows[info.tag.marker]; ok {
		if r.add(-delta) < 0 {
			s.infeasible[info.tag.marker] = struct{}{}
		}
		return
	}
	if r, ok := s.rows[info.tag.other]; ok {
		if r.add(delta) < 0 {
			s.infeasible[info.tag.other] = struct{}{}
		}
		return
	}
	// Otherwise the delta is distributed over every row holding the marker.
	for sym, r := range s.rows {
		coeff := r.coefficientFor(info.tag.marker)
		if coeff != 0 && r.add(delta*coeff) < 0 && sym.kind != symbolExternal {
			s.infeasible[sym] = struct{}{}
		}
	}
}

// UpdateVariables writes the solved value into every variable tracked by the
// solver. A variable whose symbol is non-basic is unconstrained and gets the
// value zero.
func (s *Solver) UpdateVariables() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for v, sym := range s.vars {
		if r, ok := s.rows[sym]; ok {
			v.value = r.constant
		} else {
			v.value = 0
		}
	}
}

// Reset clears all solver state back to empty. Caller-owned Variables and
// Constraints are untouched and may be re-added. The internal symbol id
// counter is not rewound, so symbol ids are never reused for the lifetime of
// the solver.
func (s *Solver) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cns = make(map[*Constraint]tag)
	s.rows = make(map[symbol]*row)
	s.vars = make(map[*Variable]symbol)
	s.edits = make(map[*Variable]*editInfo)
	s.infeasible = make(map[symbol]struct{})
	s.objective = newRow(0)
	s.artificial = nil
}

// createRow builds a tableau row for the constraint's expression. Each
// external variable is substituted with its representing symbol, and any
// symbol that is currently basic is replaced with its defining row, so the
// result is expressed purely in non-basic symbols. Depending on the operator
// and strength, slack, error, or dummy symbols are added to the row (and
// error symbols to the objective), and the constraint's tag is filled in.
//
// It returns the variables that were newly registered while building the row
// so a failing caller can release them again.
func (s *Solver) createRow(c *Constraint, t *tag) (*row, []*Variable) {
	expr := c.Expression()
	r := newRow(expr.Constant())
	var newVars []*Variable

	for _, term := range expr.Terms() {
		if nearZero(term.Coefficient) {
			continue
		}
		sym, isNew := s.symbolForVariable(term.Variable)
		if isNew {
			newVars = append(newVars, term.Variable)
		}
		if basic, ok := s.rows[sym]; ok {
			r.insertRow(basic, term.Coefficient)
		} else {
			r.insertSymbol(sym, term.Coefficient)
		}
	}

	switch c.Op() {
	case LessOrEqual, GreaterOrEqual:
		coeff := 1.0
		if c.Op() == GreaterOrEqual {
			coeff = -1.0
		}
		slack := s.newSymbol(symbolSlack)
		t.marker = slack
		r.insertSymbol(slack, coeff)
		if c.Strength() < Required {
			errSym := s.newSymbol(symbolError)
			t.other = errSym
			r.insertSymbol(errSym, -coeff)
			s.objective.insertSymbol(errSym, float64(c.Strength()))
		}
	case Equal:
		if c.Strength() < Required {
			errPlus := s.newSymbol(symbolError)
			errMinus := s.newSymbol(symbolError)
			t.marker = errPlus
			t.other = errMinus
			r.insertSymbol(errPlus, -1) // v = ePlus - eMinus
			r.insertSymbol(errMinus, 1)
			s.objective.insertSymbol(errPlus, float64(c.Strength()))
			s.objective.insertSymbol(errMinus, float64(c.Strength()))
		} else {
			dummy := s.newSymbol(symbolDummy)
			t.marker = dummy
			r.insertSymbol(dummy, 1)
		}
	}

	// The basic-feasibility invariant requires a non-negative constant.
	if r.constant < 0 {
		r.reverseSign()
	}
	return r, newVars
}

// chooseSubject picks the symbol the new row should be solved for: the
// lowest-id external symbol if one exists, otherwise a negatively-weighted
// slack or error symbol of the constraint's own tag. An invalid symbol means
// an artificial variable is needed.
func chooseSubject(r *row, t tag) symbol {
	var best symbol
	for sym := range r.cells {
		if sym.kind != symbolExternal {
			continue
		}
		if best.kind == symbolInvalid || sym.id < best.id {
			best = sym
		}
	}
	if best.kind != symbolInvalid {
		return best
	}
	if (t.marker.kind == symbolSlack || t.marker.kind == symbolError) && r.coefficientFor(t.marker) < 0 {
		return t.marker
	}
	if (t.other.kind == symbolSlack || t.other.kind == symbolError) && r.coefficientFor(t.other) < 0 {
		return t.other
	}
	return symbol{}
}

// addWithArtificialVariable inserts the row with a symbolic artificial
// variable and minimizes an artificial objective over it. The row is
// satisfiable iff that minimum is zero. The artificial symbol and its column
// are removed again before returning.
func (s *Solver) addWithArtificialVariable(r *row) (bool, error) {
	art := s.newSymbol(symbolSlack)
	s.rows[art] = r.copy()
	s.artificial = r.copy()

	err := s.optimize(s.artificial)
	success := nearZero(s.artificial.constant)
	s.artificial = nil
	if err != nil {
		delete(s.rows, art)
		return false, err
	}

	if artRow, ok := s.rows[art]; ok {
		// The artificial variable ended up basic; pivot it out before
		// dropping its column.
		delete(s.rows, art)
		if len(artRow.cells) == 0 {
			return success, nil
		}
		entering := anyPivotableSymbol(artRow)
		if entering.kind == symbolInvalid {
			return false, nil
		}
		artRow.solveForPair(art, entering)
		s.substituteOut(entering, artRow)
		s.rows[entering] = artRow
	}

	for _, rr := range s.rows {
		rr.remove(art)
	}
	s.objective.remove(art)
	return success, nil
}

// substituteOut replaces all occurrences of the symbol across the tableau
// with the given row, recording any restricted row whose constant turned
// negative in the infeasible working set.
func (s *Solver) substituteOut(sym symbol, r *row) {
	for basic, target := range s.rows {
		target.substitute(sym, r)
		if basic.kind != symbolExternal && target.constant < 0 {
			s.infeasible[basic] = struct{}{}
		}
	}
	s.objective.substitute(sym, r)
	if s.artificial != nil {
		s.artificial.substitute(sym, r)
	}
}

// optimize runs the primal simplex loop on the given objective until no
// improving pivot remains.
func (s *Solver) optimize(objective *row) error {
	for {
		entering := getEnteringSymbol(objective)
		if entering.kind == symbolInvalid {
			return nil
		}
		leaving, lr := s.getLeavingRow(entering)
		if lr == nil {
			return fmt.Errorf("%w: the objective is unbounded", ErrInternalSolver)
		}
		if log.V(2) {
			log.Infof("kiwi: pivot %v in, %v out", entering, leaving)
		}
		delete(s.rows, leaving)
		lr.solveForPair(leaving, entering)
		s.substituteOut(entering, lr)
		s.rows[entering] = lr
	}
}

// dualOptimize repairs the rows in the infeasible working set with dual
// simplex pivots, always taking the infeasible row with the smallest basic
// symbol id first. Rows that regained feasibility in the meantime are
// skipped, so the loop is bounded by the damage the edit actually did.
func (s *Solver) dualOptimize() error {
	for len(s.infeasible) > 0 {
		leaving := s.popInfeasible()
		r, ok := s.rows[leaving]
		if !ok || r.constant >= 0 {
			continue
		}
		entering := s.getDualEnteringSymbol(r)
		if entering.kind == symbolInvalid {
			return fmt.Errorf("%w: dual optimize found no entering symbol", ErrInternalSolver)
		}
		delete(s.rows, leaving)
		r.solveForPair(leaving, entering)
		s.substituteOut(entering, r)
		s.rows[entering] = r
	}
	return nil
}

func (s *Solver) popInfeasible() symbol {
	var lowest symbol
	for sym := range s.infeasible {
		if lowest.kind == symbolInvalid || sym.id < lowest.id {
			lowest = sym
		}
	}
	delete(s.infeasible, lowest)
	return lowest
}

// getEnteringSymbol returns the lowest-id non-dummy symbol with a negative
// objective coefficient, or an invalid symbol if the objective is optimal.
func getEnteringSymbol(objective *row) symbol {
	var best symbol
	for sym, c := range objective.cells {
		if sym.kind == symbolDummy || c >= 0 {
			continue
		}
		if best.kind == symbolInvalid || sym.id < best.id {
			best = sym
		}
	}
	return best
}

// getDualEnteringSymbol returns the symbol of the row with a positive
// coefficient minimizing the ratio of objective coefficient to row
// coefficient, ties broken by ascending symbol id.
func (s *Solver) getDualEnteringSymbol(r *row) symbol {
	var best symbol
	ratio := math.MaxFloat64
	for sym, c := range r.cells {
		if sym.kind == symbolDummy || c <= 0 {
			continue
		}
		currentRatio := s.objective.coefficientFor(sym) / c
		if currentRatio < ratio || (currentRatio == ratio && sym.id < best.id) {
			ratio = currentRatio
			best = sym
		}
	}
	return best
}

// anyPivotableSymbol returns the lowest-id slack or error symbol in the row,
// or an invalid symbol if none exists.
func anyPivotableSymbol(r *row) symbol {
	var best symbol
	for sym := range r.cells {
		if sym.kind != symbolSlack && sym.kind != symbolError {
			continue
		}
		if best.kind == symbolInvalid || sym.id < best.id {
			best = sym
		}
	}
	return best
}

// getLeavingRow runs the ratio test for the entering symbol over the
// restricted rows, breaking ratio ties by ascending basic symbol id. A nil
// row means the objective is unbounded along the entering column.
func (s *Solver) getLeavingRow(entering symbol) (symbol, *row) {
	minRatio := math.MaxFloat64
	var leaving symbol
	var lr *row
	for sym, r := range s.rows {
		if sym.kind == symbolExternal {
			continue
		}
		coeff := r.coefficientFor(entering)
		if coeff >= 0 {
			continue
		}
		ratio := -r.constant / coeff
		if ratio < minRatio || (ratio == minRatio && sym.id < leaving.id) {
			minRatio = ratio
			leaving = sym
			lr = r
		}
	}
	return leaving, lr
}

// getMarkerLeavingRow finds the best row to pivot a non-basic marker into so
// the marker's constraint can be removed. Restricted rows with a negative
// marker coefficient are preferred, then restricted rows with a positive one,
// then unrestricted rows; within a tier the minimum ratio wins, ties broken
// by ascending basic symbol id.
func (s *Solver) getMarkerLeavingRow(marker symbol) (symbol, *row) {
	r1 := math.MaxFloat64
	r2 := math.MaxFloat64
	var first, second, third symbol
	var firstRow, secondRow, thirdRow *row

	for sym, r := range s.rows {
		coeff := r.coefficientFor(marker)
		if coeff == 0 {
			continue
		}
		switch {
		case sym.kind == symbolExternal:
			if thirdRow == nil || sym.id < third.id {
				third = sym
				thirdRow = r
			}
		case coeff < 0:
			ratio := -r.constant / coeff
			if ratio < r1 || (ratio == r1 && sym.id < first.id) {
				r1 = ratio
				first = sym
				firstRow = r
			}
		default:
			ratio := r.constant / coeff
			if ratio < r2 || (ratio == r2 && sym.id < second.id) {
				r2 = ratio
				second = sym
				secondRow = r
			}
		}
	}
	if firstRow != nil {
		return first, firstRow
	}
	if secondRow != nil {
		return second, secondRow
	}
	return third, thirdRow
}

// removeConstraintEffects backs the constraint's error contributions out of
// the objective.
func (s *Solver) removeConstraintEffects(c *Constraint, t tag) {
	if t.marker.kind == symbolError {
		s.removeMarkerEffects(t.marker, c.Strength())
	}
	if t.other.kind == symbolError {
		s.removeMarkerEffects(t.other, c.Strength())
	}
}

func (s *Solver) removeMarkerEffects(marker symbol, strength Strength) {
	if r, ok := s.rows[marker]; ok {
		s.objective.insertRow(r, -float64(strength))
	} else {
		s.objective.insertSymbol(marker, -float64(strength))
	}
}

// symbolForVariable returns the external symbol representing the variable,
// allocating one on first reference. The second result reports whether the
// symbol was newly allocated.
func (s *Solver) symbolForVariable(v *Variable) (symbol, bool) {
	if sym, ok := s.vars[v]; ok {
		return sym, false
	}
	sym := s.newSymbol(symbolExternal)
	s.vars[v] = sym
	return sym, true
}

// releaseVariables drops the symbol registrations made by a failed
// addConstraint so the call leaves no partial state behind.
func (s *Solver) releaseVariables(vars []*Variable) {
	for _, v := range vars {
		delete(s.vars, v)
	}
}

func (s *Solver) newSymbol(kind symbolKind) symbol {
	sym := symbol{kind: kind, id: s.idTick}
	s.idTick++
	return sym
}
