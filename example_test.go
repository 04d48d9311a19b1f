package cassowary_test

import (
	"fmt"

	"github.com/consensys/cassowary"
)

// Two elements laid out horizontally in a window: the first aligns left, the
// second right, and both prefer a fixed width but compress when the window
// is too small.
func Example() {
	solver := cassowary.NewSolver()

	windowWidth := cassowary.NewVariable()
	type element struct {
		left, right cassowary.Variable
	}
	box1 := element{cassowary.NewVariable(), cassowary.NewVariable()}
	box2 := element{cassowary.NewVariable(), cassowary.NewVariable()}

	names := map[cassowary.Variable]string{
		windowWidth: "window_width",
		box1.left:   "box1.left",
		box1.right:  "box1.right",
		box2.left:   "box2.left",
		box2.right:  "box2.right",
	}

	if err := solver.AddConstraints(
		windowWidth.GreaterOrEqual(0), // positive window width
		box1.left.Equal(0),            // left align
		box2.right.Equal(windowWidth), // right align
		box2.left.GreaterOrEqual(box1.right), // no overlap
		// positive widths
		box1.left.LessOrEqual(box1.right),
		box2.left.LessOrEqual(box2.right),
		// preferred widths
		box1.right.Sub(box1.left).Equal(50).WithStrength(cassowary.Weak),
		box2.right.Sub(box2.left).Equal(100).WithStrength(cassowary.Weak),
	); err != nil {
		panic(err)
	}

	// pin the window width through an edit variable so it can be changed
	// cheaply later
	if err := solver.AddEditVariable(windowWidth, cassowary.Strong); err != nil {
		panic(err)
	}
	if err := solver.SuggestValue(windowWidth, 300); err != nil {
		panic(err)
	}

	for _, change := range solver.FetchChanges() {
		fmt.Printf("%s = %g\n", names[change.Variable], change.Value)
	}

	// Output:
	// window_width = 300
	// box2.right = 300
	// box2.left = 200
	// box1.right = 50
}
