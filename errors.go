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

package cassowary

import "errors"

var (
	// ErrDuplicateConstraint reports that the constraint has already been
	// added to the solver. Solver state is unchanged.
	ErrDuplicateConstraint = errors.New("cassowary: constraint was already added to the solver")

	// ErrUnsatisfiableConstraint reports that the constraint is required but
	// unsatisfiable in conjunction with the existing constraints. The failed
	// insertion is rolled back, so the solver is exactly as it was before
	// the call.
	ErrUnsatisfiableConstraint = errors.New("cassowary: required constraint is unsatisfiable with the existing constraints")

	// ErrUnknownConstraint reports a removal of a constraint that was never
	// added (or was already removed). Solver state is unchanged.
	ErrUnknownConstraint = errors.New("cassowary: constraint was not added to the solver")

	// ErrDuplicateEditVariable reports that the variable is already marked
	// as an edit variable in the solver.
	ErrDuplicateEditVariable = errors.New("cassowary: variable is already an edit variable")

	// ErrUnknownEditVariable reports an edit operation on a variable that
	// was never registered with AddEditVariable.
	ErrUnknownEditVariable = errors.New("cassowary: variable is not an edit variable")

	// ErrBadRequiredStrength reports an edit variable registered at the
	// Required strength; edit strengths must be soft so suggestions can be
	// negotiated against the required constraints.
	ErrBadRequiredStrength = errors.New("cassowary: edit variables cannot have the required strength")
)

// InternalSolverError reports a violated solver invariant: a bug or a
// numerical catastrophe. If this occurs please report the issue.
type InternalSolverError struct {
	Msg string
}

func (e *InternalSolverError) Error() string {
	return "cassowary: internal solver error: " + e.Msg
}
