//go:build debug

package debug

// Debug enables the solver's internal invariant checks and full stack
// traces. Expect a significant slowdown on large systems.
const Debug = true
