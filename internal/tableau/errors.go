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

import "errors"

var (
	// ErrUnsatisfiable reports that a required constraint conflicts with the
	// required constraints already in the engine. The failed insertion is
	// rolled back before the error is returned.
	ErrUnsatisfiable = errors.New("required constraint cannot be satisfied")

	// ErrUnknownConstraint reports a removal of a constraint id that is not
	// live in the engine.
	ErrUnknownConstraint = errors.New("constraint is not in the engine")

	// ErrDuplicateEdit reports a second AddEdit for the same variable.
	ErrDuplicateEdit = errors.New("variable is already an edit variable")

	// ErrUnknownEdit reports an edit operation on a variable that was never
	// registered with AddEdit.
	ErrUnknownEdit = errors.New("variable is not an edit variable")

	// ErrBadStrength reports an edit variable registered at the required
	// strength, which would make suggestions non-negotiable.
	ErrBadStrength = errors.New("edit strength must be below required")

	// errUnbounded flags an unbounded primal objective; surfaced as
	// ErrUnsatisfiable by AddConstraint and as an InternalError elsewhere.
	errUnbounded = errors.New("the objective is unbounded")
)

// InternalError reports a violated engine invariant: a bug or a numerical
// catastrophe. The engine state is undefined after one.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string {
	return "internal solver error: " + e.Msg
}
