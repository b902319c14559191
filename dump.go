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
	"fmt"
	"sort"
	"strings"
)

// Dumps returns a human-readable snapshot of the solver internals: the
// objective row, every tableau row, the infeasible working set, the tracked
// variables, the edit entries, and every constraint with its tag. The format
// is informational only, but it is deterministic: everything is ordered by
// ascending symbol id, so two dumps of an identical internal state are
// textually identical.
func (s *Solver) Dumps() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder

	b.WriteString("Objective\n---------\n")
	writeRow(&b, s.objective)
	b.WriteString("\n\n")

	b.WriteString("Tableau\n-------\n")
	for _, sym := range sortedSymbols(s.rows) {
		fmt.Fprintf(&b, "%v | ", sym)
		writeRow(&b, s.rows[sym])
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("Infeasible\n----------\n")
	infeasible := make([]symbol, 0, len(s.infeasible))
	for sym := range s.infeasible {
		infeasible = append(infeasible, sym)
	}
	sort.Slice(infeasible, func(i, j int) bool { return infeasible[i].id < infeasible[j].id })
	for _, sym := range infeasible {
		fmt.Fprintf(&b, "%v\n", sym)
	}
	b.WriteString("\n")

	b.WriteString("Variables\n---------\n")
	vars := make([]*Variable, 0, len(s.vars))
	for v := range s.vars {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return s.vars[vars[i]].id < s.vars[vars[j]].id })
	for _, v := range vars {
		fmt.Fprintf(&b, "%v = %v\n", v.Name(), s.vars[v])
	}
	b.WriteString("\n")

	b.WriteString("Edit Variables\n--------------\n")
	edits := make([]*Variable, 0, len(s.edits))
	for v := range s.edits {
		edits = append(edits, v)
	}
	sort.Slice(edits, func(i, j int) bool { return s.edits[edits[i]].tag.marker.id < s.edits[edits[j]].tag.marker.id })
	for _, v := range edits {
		info := s.edits[v]
		fmt.Fprintf(&b, "%v | marker %v | other %v | constant %v\n",
			v.Name(), info.tag.marker, info.tag.other, formatFloat(info.constant))
	}
	b.WriteString("\n")

	b.WriteString("Constraints\n-----------\n")
	cns := make([]*Constraint, 0, len(s.cns))
	for c := range s.cns {
		cns = append(cns, c)
	}
	sort.Slice(cns, func(i, j int) bool { return s.cns[cns[i]].marker.id < s.cns[cns[j]].marker.id })
	for _, c := range cns {
		t := s.cns[c]
		fmt.Fprintf(&b, "%v | marker %v | other %v\n", c, t.marker, t.other)
	}

	return b.String()
}

// Dump writes the Dumps snapshot to stdout.
func (s *Solver) Dump() {
	fmt.Print(s.Dumps())
}

func writeRow(b *strings.Builder, r *row) {
	b.WriteString(formatFloat(r.constant))
	for _, sym := range sortedCells(r) {
		fmt.Fprintf(b, " + %v * %v", formatFloat(r.cells[sym]), sym)
	}
}

func sortedSymbols(rows map[symbol]*row) []symbol {
	syms := make([]symbol, 0, len(rows))
	for sym := range rows {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].id < syms[j].id })
	return syms
}

func sortedCells(r *row) []symbol {
	syms := make([]symbol, 0, len(r.cells))
	for sym := range r.cells {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].id < syms[j].id })
	return syms
}
