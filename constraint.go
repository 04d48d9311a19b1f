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

// RelationalOperator is the relation a constraint imposes between its
// expression and zero.
type RelationalOperator uint8

const (
	// LessOrEqual is `<=`
	LessOrEqual RelationalOperator = iota
	// Equal is `==`
	Equal
	// GreaterOrEqual is `>=`
	GreaterOrEqual
)

func (op RelationalOperator) String() string {
	switch op {
	case LessOrEqual:
		return "<="
	case Equal:
		return "=="
	case GreaterOrEqual:
		return ">="
	default:
		return "?"
	}
}

// Constraint is an equation `expression op 0` with an associated strength.
//
// Constraints compare by identity: the solver treats two constraints built
// from equal expressions as distinct, and adding the same *Constraint twice
// is a duplicate. Copying the pointer copies the identity.
type Constraint struct {
	expression Expression
	operator   RelationalOperator
	strength   Strength
}

// NewConstraint builds the constraint `expression op 0` at the given
// strength. For an equation with a non-zero right hand side, subtract the
// right hand side from the expression first (the builders on Expression,
// Term and Variable do this).
func NewConstraint(expression Expression, op RelationalOperator, strength Strength) *Constraint {
	return &Constraint{
		expression: expression,
		operator:   op,
		strength:   strength,
	}
}

// Expression returns the left hand side of the constraint equation.
func (c *Constraint) Expression() Expression {
	return c.expression
}

// Operator returns the relational operator governing the constraint.
func (c *Constraint) Operator() RelationalOperator {
	return c.operator
}

// Strength returns the strength the solver will use for the constraint.
func (c *Constraint) Strength() Strength {
	return c.strength
}

// WithStrength returns a copy of the constraint at the given strength. The
// copy is a new identity: annotate a constraint before adding it to a
// solver.
func (c *Constraint) WithStrength(s Strength) *Constraint {
	return &Constraint{
		expression: c.expression,
		operator:   c.operator,
		strength:   s,
	}
}

func (c *Constraint) String() string {
	return c.expression.String() + " " + c.operator.String() + " 0"
}
