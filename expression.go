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
	"fmt"
	"strings"

	"github.com/consensys/cassowary/internal/tableau"
)

// Expression is a linear combination of variables plus a constant:
//
//	expression = term_1 + term_2 + ... + term_n + constant
//
// It can be the left or right hand side of a constraint equation. The same
// variable may appear in several terms; duplicates are summed when the
// solver canonicalizes the expression.
type Expression struct {
	Terms    []Term
	Constant float64
}

// NewExpression builds an expression from a constant and terms.
func NewExpression(constant float64, terms ...Term) Expression {
	return Expression{Terms: terms, Constant: constant}
}

// toExpression converts an operand of the expression and constraint builders
// to an Expression.
//
// input must be an Expression, Term, Variable, or a primitive number
// (float32, float64, intXX, uintXX).
//
// panics if the input is of another type
func toExpression(input interface{}) Expression {
	switch v := input.(type) {
	case Expression:
		return v
	case Term:
		return Expression{Terms: []Term{v}}
	case Variable:
		return Expression{Terms: []Term{{Variable: v, Coefficient: 1}}}
	case float64:
		return Expression{Constant: v}
	case float32:
		return Expression{Constant: float64(v)}
	case int:
		return Expression{Constant: float64(v)}
	case int8:
		return Expression{Constant: float64(v)}
	case int16:
		return Expression{Constant: float64(v)}
	case int32:
		return Expression{Constant: float64(v)}
	case int64:
		return Expression{Constant: float64(v)}
	case uint:
		return Expression{Constant: float64(v)}
	case uint8:
		return Expression{Constant: float64(v)}
	case uint16:
		return Expression{Constant: float64(v)}
	case uint32:
		return Expression{Constant: float64(v)}
	case uint64:
		return Expression{Constant: float64(v)}
	default:
		panic(fmt.Sprintf("cassowary: unsupported operand type %T", input))
	}
}

func (e Expression) String() string {
	var sbb strings.Builder
	for i, t := range e.Terms {
		if i > 0 {
			sbb.WriteString(" + ")
		}
		sbb.WriteString(t.String())
	}
	if len(e.Terms) == 0 || e.Constant != 0 {
		if len(e.Terms) > 0 {
			sbb.WriteString(" + ")
		}
		fmt.Fprintf(&sbb, "%g", e.Constant)
	}
	return sbb.String()
}

// Neg returns the negated expression.
func (e Expression) Neg() Expression {
	terms := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = t.Neg()
	}
	return Expression{Terms: terms, Constant: -e.Constant}
}

// Add returns e + other. The receiver is not modified.
func (e Expression) Add(other interface{}) Expression {
	o := toExpression(other)
	terms := make([]Term, 0, len(e.Terms)+len(o.Terms))
	terms = append(terms, e.Terms...)
	terms = append(terms, o.Terms...)
	return Expression{Terms: terms, Constant: e.Constant + o.Constant}
}

// Sub returns e - other.
func (e Expression) Sub(other interface{}) Expression {
	return e.Add(toExpression(other).Neg())
}

// Mul returns the expression scaled by coefficient.
func (e Expression) Mul(coefficient float64) Expression {
	terms := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = t.Mul(coefficient)
	}
	return Expression{Terms: terms, Constant: e.Constant * coefficient}
}

// Div returns the expression divided by denominator.
func (e Expression) Div(denominator float64) Expression {
	return e.Mul(1 / denominator)
}

// LessOrEqual returns the required constraint e <= rhs. Use
// Constraint.WithStrength to soften it.
func (e Expression) LessOrEqual(rhs interface{}) *Constraint {
	return NewConstraint(e.Sub(rhs), LessOrEqual, Required)
}

// Equal returns the required constraint e == rhs.
func (e Expression) Equal(rhs interface{}) *Constraint {
	return NewConstraint(e.Sub(rhs), Equal, Required)
}

// GreaterOrEqual returns the required constraint e >= rhs.
func (e Expression) GreaterOrEqual(rhs interface{}) *Constraint {
	return NewConstraint(e.Sub(rhs), GreaterOrEqual, Required)
}

// canonicalTerms merges duplicate variables, sums their coefficients and
// drops the terms that land within the solver tolerance of zero. Term order
// follows the first occurrence of each variable.
func canonicalTerms(e Expression) []tableau.Term {
	if len(e.Terms) == 0 {
		return nil
	}
	index := make(map[Variable]int, len(e.Terms))
	merged := make([]tableau.Term, 0, len(e.Terms))
	for _, t := range e.Terms {
		if i, ok := index[t.Variable]; ok {
			merged[i].Coeff += t.Coefficient
			continue
		}
		index[t.Variable] = len(merged)
		merged = append(merged, tableau.Term{Var: tableau.VarID(t.Variable.id), Coeff: t.Coefficient})
	}
	out := merged[:0]
	for _, t := range merged {
		if t.Coeff > -epsilon && t.Coeff < epsilon {
			continue
		}
		out = append(out, t)
	}
	return out
}

const epsilon = tableau.Epsilon
