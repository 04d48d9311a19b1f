package cassowary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/consensys/cassowary"
)

func TestStrengthConstants(t *testing.T) {
	assert.Less(t, cassowary.Weak, cassowary.Medium)
	assert.Less(t, cassowary.Medium, cassowary.Strong)
	assert.Less(t, cassowary.Strong, cassowary.Required)

	assert.Equal(t, cassowary.Required, cassowary.MakeStrength(1000, 1000, 1000))
	assert.Equal(t, cassowary.Strong, cassowary.MakeStrength(1, 0, 0))
	assert.Equal(t, cassowary.Medium, cassowary.MakeStrength(0, 1, 0))
	assert.Equal(t, cassowary.Weak, cassowary.MakeStrength(0, 0, 1))
}

func TestStrengthClamping(t *testing.T) {
	// each tier clamps independently before combining
	assert.Equal(t, cassowary.Strength(1e9), cassowary.MakeStrength(5000, 0, 0))
	assert.Equal(t, cassowary.Strength(0), cassowary.MakeStrength(-1, -1, -1))

	assert.Equal(t, cassowary.Strength(0), cassowary.NewStrength(-5))
	assert.Equal(t, cassowary.Required, cassowary.NewStrength(1e12))
}

func TestStrengthWeighted(t *testing.T) {
	assert.Equal(t, cassowary.MakeStrength(2, 4, 6), cassowary.MakeWeightedStrength(1, 2, 3, 2))
	// the weight applies before tier clamping
	assert.Equal(t, cassowary.Strength(1e9), cassowary.MakeWeightedStrength(600, 0, 0, 2))
}

func TestStrengthArithmetic(t *testing.T) {
	assert.Equal(t, cassowary.Strength(2e6), cassowary.Strong.Mul(2))
	assert.Equal(t, cassowary.Required, cassowary.Required.Mul(5))
	assert.Equal(t, cassowary.Strength(1e6+1e3), cassowary.Strong.Add(cassowary.Medium))
	assert.Equal(t, cassowary.Required, cassowary.Required.Add(cassowary.Strong))
	assert.Equal(t, cassowary.Strength(0), cassowary.Weak.Sub(cassowary.Medium))
}
