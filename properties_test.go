package cassowary_test

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/consensys/cassowary"
)

func TestSolverProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	softStrengths := []cassowary.Strength{cassowary.Weak, cassowary.Medium, cassowary.Strong}

	properties.Property("required equality chains are satisfied exactly", prop.ForAll(
		func(anchor float64, offsets []float64) bool {
			s := cassowary.NewSolver()
			vars := make([]cassowary.Variable, len(offsets)+1)
			for i := range vars {
				vars[i] = cassowary.NewVariable()
			}
			if err := s.AddConstraint(vars[0].Equal(anchor)); err != nil {
				return false
			}
			for i, k := range offsets {
				if err := s.AddConstraint(vars[i+1].Equal(vars[i].Add(k))); err != nil {
					return false
				}
			}
			vals := valueMap{}
			vals.update(s.FetchChanges())
			want := anchor
			for i := range vars {
				if math.Abs(vals[vars[i]]-want) > 1e-6 {
					return false
				}
				if i < len(offsets) {
					want += offsets[i]
				}
			}
			return true
		},
		gen.Float64Range(-1000, 1000),
		gen.SliceOfN(4, gen.Float64Range(-100, 100)),
	))

	properties.Property("the stronger of two conflicting soft constraints wins", prop.ForAll(
		func(x, y float64, i, j int) bool {
			if i == j || math.Abs(x-y) < 1e-3 {
				return true // no conflict to arbitrate
			}
			s := cassowary.NewSolver()
			a := cassowary.NewVariable()
			if err := s.AddConstraint(a.Equal(x).WithStrength(softStrengths[i])); err != nil {
				return false
			}
			if err := s.AddConstraint(a.Equal(y).WithStrength(softStrengths[j])); err != nil {
				return false
			}
			vals := valueMap{}
			vals.update(s.FetchChanges())
			want := x
			if softStrengths[j] > softStrengths[i] {
				want = y
			}
			return math.Abs(vals[a]-want) <= 1e-6
		},
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
		gen.IntRange(0, 2),
		gen.IntRange(0, 2),
	))

	properties.Property("an unconstrained edit variable tracks every suggestion", prop.ForAll(
		func(suggestions []float64) bool {
			s := cassowary.NewSolver()
			v := cassowary.NewVariable()
			if err := s.AddEditVariable(v, cassowary.Medium); err != nil {
				return false
			}
			vals := valueMap{}
			for _, x := range suggestions {
				if err := s.SuggestValue(v, x); err != nil {
					return false
				}
				vals.update(s.FetchChanges())
				if math.Abs(vals[v]-x) > 1e-6 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Float64Range(-1e6, 1e6)),
	))

	properties.Property("a failed add leaves no observable trace", prop.ForAll(
		func(bound, gap float64) bool {
			s := cassowary.NewSolver()
			a := cassowary.NewVariable()
			if err := s.AddConstraint(a.LessOrEqual(bound)); err != nil {
				return false
			}
			s.FetchChanges()

			bad := a.GreaterOrEqual(bound + 1 + math.Abs(gap))
			if err := s.AddConstraint(bad); err != cassowary.ErrUnsatisfiableConstraint {
				return false
			}
			return !s.HasConstraint(bad) && len(s.FetchChanges()) == 0
		},
		gen.Float64Range(-100, 100),
		gen.Float64Range(0, 100),
	))

	properties.Property("adding then removing a constraint restores the assignment", prop.ForAll(
		func(p, q, r float64) bool {
			s := cassowary.NewSolver()
			a := cassowary.NewVariable()
			b := cassowary.NewVariable()
			if err := s.AddConstraints(
				a.Equal(p).WithStrength(cassowary.Medium),
				b.Equal(q).WithStrength(cassowary.Medium),
			); err != nil {
				return false
			}
			vals := valueMap{}
			vals.update(s.FetchChanges())
			beforeA, beforeB := vals[a], vals[b]

			extra := a.Add(b).Equal(r).WithStrength(cassowary.Strong)
			if err := s.AddConstraint(extra); err != nil {
				return false
			}
			vals.update(s.FetchChanges())
			if err := s.RemoveConstraint(extra); err != nil {
				return false
			}
			vals.update(s.FetchChanges())
			return math.Abs(vals[a]-beforeA) <= 1e-6 && math.Abs(vals[b]-beforeB) <= 1e-6
		},
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
		gen.Float64Range(-100, 100),
	))

	properties.Property("consecutive fetches without mutations report nothing", prop.ForAll(
		func(targets []float64) bool {
			s := cassowary.NewSolver()
			for _, x := range targets {
				v := cassowary.NewVariable()
				if err := s.AddConstraint(v.Equal(x).WithStrength(cassowary.Weak)); err != nil {
					return false
				}
			}
			s.FetchChanges()
			return len(s.FetchChanges()) == 0
		},
		gen.SliceOf(gen.Float64Range(-1000, 1000)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
