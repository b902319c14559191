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

import "strconv"

type symbolKind uint8

const (
	symbolInvalid symbolKind = iota
	symbolExternal
	symbolSlack
	symbolError
	symbolDummy
)

// symbol identifies a tableau column or row. External symbols stand for
// caller-owned variables; slack, error, and dummy symbols are synthesized
// while converting constraints into rows. Ids are unique for the lifetime of
// a Solver and strictly increasing, which is what makes pivot tie-breaking
// reproducible.
type symbol struct {
	kind symbolKind
	id   uint64
}

func (s symbol) String() string {
	var prefix string
	switch s.kind {
	case symbolExternal:
		prefix = "v"
	case symbolSlack:
		prefix = "s"
	case symbolError:
		prefix = "e"
	case symbolDummy:
		prefix = "d"
	default:
		return "i?"
	}
	return prefix + strconv.FormatUint(s.id, 10)
}
