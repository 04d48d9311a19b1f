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

import (
	"errors"

	"github.com/consensys/cassowary/internal/tableau"
)

// Change reports an external variable whose value moved since the previous
// FetchChanges call.
type Change struct {
	Variable Variable
	Value    float64
}

// Solver is an incremental constraint solver: constraints and edit variables
// can be added and removed at any time, and after each batch of mutations
// FetchChanges reports the variables whose values moved.
//
// A Solver is a single-goroutine state machine; all its methods require
// exclusive access. Independent Solver instances share nothing and may be
// used from separate goroutines concurrently.
type Solver struct {
	engine      *tableau.Engine
	constraints map[*Constraint]tableau.ConstraintID
}

// NewSolver constructs an empty solver.
func NewSolver() *Solver {
	return &Solver{
		engine:      tableau.New(),
		constraints: make(map[*Constraint]tableau.ConstraintID),
	}
}

// AddConstraint inserts c into the solver.
//
// Returns ErrDuplicateConstraint if c was already added, and
// ErrUnsatisfiableConstraint if c is required and conflicts with the
// required constraints already in the solver; in both cases the solver is
// left exactly as it was before the call.
func (s *Solver) AddConstraint(c *Constraint) error {
	if _, ok := s.constraints[c]; ok {
		return ErrDuplicateConstraint
	}
	id, err := s.engine.AddConstraint(
		canonicalTerms(c.expression),
		c.expression.Constant,
		relOp(c.operator),
		float64(c.strength),
	)
	if err != nil {
		return convertErr(err)
	}
	s.constraints[c] = id
	return nil
}

// AddConstraints inserts the given constraints in order, stopping at the
// first error.
func (s *Solver) AddConstraints(cs ...*Constraint) error {
	for _, c := range cs {
		if err := s.AddConstraint(c); err != nil {
			return err
		}
	}
	return nil
}

// RemoveConstraint removes a previously added constraint, returning
// ErrUnknownConstraint if c is not in the solver.
func (s *Solver) RemoveConstraint(c *Constraint) error {
	id, ok := s.constraints[c]
	if !ok {
		return ErrUnknownConstraint
	}
	delete(s.constraints, c)
	if err := s.engine.RemoveConstraint(id); err != nil {
		return convertErr(err)
	}
	return nil
}

// RemoveConstraints removes the given constraints in order, stopping at the
// first error.
func (s *Solver) RemoveConstraints(cs ...*Constraint) error {
	for _, c := range cs {
		if err := s.RemoveConstraint(c); err != nil {
			return err
		}
	}
	return nil
}

// HasConstraint reports whether c is live in the solver.
func (s *Solver) HasConstraint(c *Constraint) bool {
	_, ok := s.constraints[c]
	return ok
}

// AddEditVariable marks v as an edit variable whose value the client may pin
// through SuggestValue. The strength must be below Required
// (ErrBadRequiredStrength); registering a variable twice returns
// ErrDuplicateEditVariable.
func (s *Solver) AddEditVariable(v Variable, strength Strength) error {
	return convertErr(s.engine.AddEdit(tableau.VarID(v.id), float64(strength)))
}

// RemoveEditVariable unregisters an edit variable, returning
// ErrUnknownEditVariable if v was never registered.
func (s *Solver) RemoveEditVariable(v Variable) error {
	return convertErr(s.engine.RemoveEdit(tableau.VarID(v.id)))
}

// HasEditVariable reports whether v is registered as an edit variable.
func (s *Solver) HasEditVariable(v Variable) bool {
	return s.engine.HasEdit(tableau.VarID(v.id))
}

// SuggestValue asks the solver to move the edit variable v as close to value
// as the required constraints allow.
func (s *Solver) SuggestValue(v Variable, value float64) error {
	return convertErr(s.engine.SuggestValue(tableau.VarID(v.id), value))
}

// FetchChanges returns the variables whose values changed since the last
// call, in first-use order of the variables. Variables start at zero, so a
// value that never moved away from zero is never reported. With no
// intervening mutations the returned list is empty.
func (s *Solver) FetchChanges() []Change {
	raw := s.engine.FetchChanges()
	if len(raw) == 0 {
		return nil
	}
	changes := make([]Change, len(raw))
	for i, c := range raw {
		changes[i] = Change{Variable: Variable{id: uint64(c.Var)}, Value: c.Value}
	}
	return changes
}

// Reset discards all constraints and edit variables, returning the solver to
// its freshly constructed state.
func (s *Solver) Reset() {
	s.engine.Reset()
	s.constraints = make(map[*Constraint]tableau.ConstraintID)
}

func relOp(op RelationalOperator) tableau.RelOp {
	switch op {
	case LessOrEqual:
		return tableau.LessOrEqual
	case GreaterOrEqual:
		return tableau.GreaterOrEqual
	default:
		return tableau.Equal
	}
}

// convertErr maps engine errors onto the public error kinds.
func convertErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, tableau.ErrUnsatisfiable):
		return ErrUnsatisfiableConstraint
	case errors.Is(err, tableau.ErrUnknownConstraint):
		return ErrUnknownConstraint
	case errors.Is(err, tableau.ErrDuplicateEdit):
		return ErrDuplicateEditVariable
	case errors.Is(err, tableau.ErrUnknownEdit):
		return ErrUnknownEditVariable
	case errors.Is(err, tableau.ErrBadStrength):
		return ErrBadRequiredStrength
	}
	var internal *tableau.InternalError
	if errors.As(err, &internal) {
		return &InternalSolverError{Msg: internal.Msg}
	}
	return &InternalSolverError{Msg: err.Error()}
}
