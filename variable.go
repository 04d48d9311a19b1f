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
	"strconv"
	"sync/atomic"
)

var variableTick atomic.Uint64

// Variable identifies a value for the constraint solver. Each call to
// NewVariable produces a distinct identity; copying a Variable copies the
// same identity. The solver never reads a value out of a Variable -- current
// values are observed through Solver.FetchChanges.
type Variable struct {
	id uint64
}

// NewVariable produces a new unique variable for use in constraint solving.
func NewVariable() Variable {
	return Variable{id: variableTick.Add(1)}
}

func (v Variable) String() string {
	return "v" + strconv.FormatUint(v.id, 10)
}

// Neg returns the expression -v.
func (v Variable) Neg() Expression {
	return toExpression(v).Neg()
}

// Add returns the expression v + other. See toExpression for the operand
// types accepted.
func (v Variable) Add(other interface{}) Expression {
	return toExpression(v).Add(other)
}

// Sub returns the expression v - other.
func (v Variable) Sub(other interface{}) Expression {
	return toExpression(v).Sub(other)
}

// Mul returns the term coefficient*v.
func (v Variable) Mul(coefficient float64) Term {
	return Term{Variable: v, Coefficient: coefficient}
}

// Div returns the term v/denominator.
func (v Variable) Div(denominator float64) Term {
	return Term{Variable: v, Coefficient: 1 / denominator}
}

// LessOrEqual returns the required constraint v <= rhs. Use
// Constraint.WithStrength to soften it.
func (v Variable) LessOrEqual(rhs interface{}) *Constraint {
	return toExpression(v).LessOrEqual(rhs)
}

// Equal returns the required constraint v == rhs.
func (v Variable) Equal(rhs interface{}) *Constraint {
	return toExpression(v).Equal(rhs)
}

// GreaterOrEqual returns the required constraint v >= rhs.
func (v Variable) GreaterOrEqual(rhs interface{}) *Constraint {
	return toExpression(v).GreaterOrEqual(rhs)
}
