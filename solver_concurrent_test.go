package cassowary_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/consensys/cassowary"
)

// Independent solver instances share no state and may run on separate
// goroutines concurrently.
func TestSolversAreIsolated(t *testing.T) {
	var g errgroup.Group

	for i := 0; i < 16; i++ {
		target := float64(i * 10)
		g.Go(func() error {
			s := cassowary.NewSolver()
			a := cassowary.NewVariable()
			b := cassowary.NewVariable()

			if err := s.AddConstraints(
				a.Add(8).Equal(b),
				a.GreaterOrEqual(target),
			); err != nil {
				return err
			}
			if err := s.AddEditVariable(a, cassowary.Strong); err != nil {
				return err
			}
			if err := s.SuggestValue(a, target+5); err != nil {
				return err
			}

			vals := valueMap{}
			vals.update(s.FetchChanges())
			if math.Abs(vals[a]-(target+5)) > 1e-6 {
				return fmt.Errorf("a = %v, want %v", vals[a], target+5)
			}
			if math.Abs(vals[b]-(target+13)) > 1e-6 {
				return fmt.Errorf("b = %v, want %v", vals[b], target+13)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
