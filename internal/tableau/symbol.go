// Copyright 2023 ConsenSys AG
//
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

package tableau

import "strconv"

// Kind discriminates the symbols the engine allocates. Pivot rules depend on
// it: Dummy symbols are never chosen to enter the basis, and an External
// symbol is preferred as the subject of a new constraint row.
type Kind uint8

const (
	Invalid Kind = iota
	External
	Slack
	Error
	Dummy
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case External:
		return "external"
	case Slack:
		return "slack"
	case Error:
		return "error"
	case Dummy:
		return "dummy"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Symbol identifies a column of the tableau. It is a compact value type so it
// can be used as a map key with constant-time hashing. The zero value is the
// "no symbol" sentinel.
type Symbol struct {
	ID   uint64
	Kind Kind
}

func (s Symbol) IsValid() bool {
	return s.Kind != Invalid
}

// pivotable reports whether s may enter or leave the basis through a normal
// pivot.
func (s Symbol) pivotable() bool {
	return s.Kind == Slack || s.Kind == Error
}

func (s Symbol) String() string {
	return s.Kind.String() + strconv.FormatUint(s.ID, 10)
}

// Tag records the auxiliary symbols introduced when a constraint was added.
// Marker is the primary symbol (slack, error or dummy), Other the second
// error symbol of a soft equality. Removal uses the tag to reverse exactly
// that insertion.
type Tag struct {
	Marker Symbol
	Other  Symbol
}
