package cassowary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consensys/cassowary/internal/tableau"
)

func TestExpressionBuilders(t *testing.T) {
	a := NewVariable()
	b := NewVariable()

	// (a + b) * 2 + 3
	e := a.Add(b).Mul(2).Add(3)
	require.Len(t, e.Terms, 2)
	assert.Equal(t, Term{Variable: a, Coefficient: 2}, e.Terms[0])
	assert.Equal(t, Term{Variable: b, Coefficient: 2}, e.Terms[1])
	assert.Equal(t, 3.0, e.Constant)

	neg := e.Neg()
	assert.Equal(t, -2.0, neg.Terms[0].Coefficient)
	assert.Equal(t, -3.0, neg.Constant)

	half := e.Div(2)
	assert.Equal(t, 1.0, half.Terms[0].Coefficient)
	assert.Equal(t, 1.5, half.Constant)

	// Sub folds the subtrahend's terms in negated
	d := a.Sub(b.Mul(3)).Sub(1)
	require.Len(t, d.Terms, 2)
	assert.Equal(t, -3.0, d.Terms[1].Coefficient)
	assert.Equal(t, -1.0, d.Constant)
}

func TestExpressionOperands(t *testing.T) {
	a := NewVariable()

	assert.Equal(t, 5.0, toExpression(5).Constant)
	assert.Equal(t, 2.5, toExpression(2.5).Constant)
	assert.Equal(t, 7.0, toExpression(uint8(7)).Constant)
	assert.Len(t, toExpression(a).Terms, 1)
	assert.Len(t, toExpression(NewTerm(a, 2)).Terms, 1)

	assert.Panics(t, func() { toExpression("nope") })
}

func TestConstraintBuilders(t *testing.T) {
	a := NewVariable()
	b := NewVariable()

	c := a.Add(8).Equal(b)
	assert.Equal(t, Equal, c.Operator())
	assert.Equal(t, Required, c.Strength())
	// lhs - rhs: a + 8 - b
	require.Len(t, c.Expression().Terms, 2)
	assert.Equal(t, 8.0, c.Expression().Constant)

	weak := c.WithStrength(Weak)
	assert.Equal(t, Weak, weak.Strength())
	assert.NotSame(t, c, weak)

	le := a.LessOrEqual(1)
	ge := a.GreaterOrEqual(1)
	assert.Equal(t, LessOrEqual, le.Operator())
	assert.Equal(t, GreaterOrEqual, ge.Operator())
	assert.Equal(t, "<=", le.Operator().String())
	assert.Equal(t, ">=", ge.Operator().String())
	assert.Equal(t, "==", c.Operator().String())
}

func TestCanonicalTerms(t *testing.T) {
	a := NewVariable()
	b := NewVariable()

	// a + 2a - b + b/2: duplicates merge in first-occurrence order
	e := a.Add(a.Mul(2)).Sub(b).Add(b.Div(2))
	terms := canonicalTerms(e)
	require.Len(t, terms, 2)
	assert.Equal(t, tableau.VarID(a.id), terms[0].Var)
	assert.InDelta(t, 3.0, terms[0].Coeff, 1e-12)
	assert.Equal(t, tableau.VarID(b.id), terms[1].Var)
	assert.InDelta(t, -0.5, terms[1].Coeff, 1e-12)

	// a full cancellation drops the term
	cancelled := canonicalTerms(a.Add(1).Sub(a))
	assert.Empty(t, cancelled)

	assert.Nil(t, canonicalTerms(NewExpression(4)))
}

func TestVariableIdentity(t *testing.T) {
	a := NewVariable()
	b := NewVariable()
	assert.NotEqual(t, a, b)

	c := a
	assert.Equal(t, a, c)
	assert.NotEmpty(t, a.String())
}
