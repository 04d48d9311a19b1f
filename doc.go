// Package cassowary implements the Cassowary constraint solving algorithm,
// based upon the work by G.J. Badros et al. in 2001.
//
// The solver maintains linear equality and inequality constraints over
// real-valued variables, each constraint carrying a strength, and reports
// the assignment satisfying all required constraints while violating the
// weaker ones as little as possible, strongest first. It is incremental:
// constraints and edit variables can be added and removed at runtime and the
// solver performs the minimum work to update the result, which is what makes
// the algorithm a good fit for user interface layout.
//
// Constraints are built from the expression methods on Variable, Term and
// Expression, for example for `(a + b) * 2 + c >= d + 1` at strength s:
//
//	a.Add(b).Mul(2).Add(c).GreaterOrEqual(d.Add(1)).WithStrength(s)
//
// The package has no inherent knowledge of user interfaces, directions or
// boxes; it is a low level library meant to be wrapped by a higher level
// layout API.
package cassowary

// Version of the cassowary library.
const Version = "0.1.0"
