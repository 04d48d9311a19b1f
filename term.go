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

import "strconv"

// Term is a variable scaled by a coefficient inside an expression.
type Term struct {
	Variable    Variable
	Coefficient float64
}

// NewTerm builds the term coefficient*variable.
func NewTerm(v Variable, coefficient float64) Term {
	return Term{Variable: v, Coefficient: coefficient}
}

func (t Term) String() string {
	return strconv.FormatFloat(t.Coefficient, 'g', -1, 64) + "*" + t.Variable.String()
}

// Neg returns the term with its coefficient negated.
func (t Term) Neg() Term {
	return Term{Variable: t.Variable, Coefficient: -t.Coefficient}
}

// Mul returns the term scaled by coefficient.
func (t Term) Mul(coefficient float64) Term {
	return Term{Variable: t.Variable, Coefficient: t.Coefficient * coefficient}
}

// Div returns the term divided by denominator.
func (t Term) Div(denominator float64) Term {
	return Term{Variable: t.Variable, Coefficient: t.Coefficient / denominator}
}

// Add returns the expression t + other.
func (t Term) Add(other interface{}) Expression {
	return toExpression(t).Add(other)
}

// Sub returns the expression t - other.
func (t Term) Sub(other interface{}) Expression {
	return toExpression(t).Sub(other)
}

// LessOrEqual returns the required constraint t <= rhs.
func (t Term) LessOrEqual(rhs interface{}) *Constraint {
	return toExpression(t).LessOrEqual(rhs)
}

// Equal returns the required constraint t == rhs.
func (t Term) Equal(rhs interface{}) *Constraint {
	return toExpression(t).Equal(rhs)
}

// GreaterOrEqual returns the required constraint t >= rhs.
func (t Term) GreaterOrEqual(rhs interface{}) *Constraint {
	return toExpression(t).GreaterOrEqual(rhs)
}
