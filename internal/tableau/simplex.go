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

package tableau

import (
	"math"

	"github.com/consensys/cassowary/logger"
)

// optimize runs the primal simplex on the given objective until no cell
// with a coefficient below -Epsilon remains. The entering symbol is the
// most negative coefficient, the leaving row the minimum of the ratio
// -constant/coefficient over rows where the entering coefficient is below
// -Epsilon. Both selections break ties on the lowest symbol id so pivoting
// terminates and is reproducible across platforms.
func (e *Engine) optimize(objective *Row) error {
	pivots := 0
	for {
		entering := enteringSymbol(objective)
		if !entering.IsValid() {
			if pivots > 0 {
				log := logger.With("tableau")
				log.Debug().Int("pivots", pivots).Msg("objective optimized")
			}
			return nil
		}
		leaving, row, ok := e.leavingRow(entering)
		if !ok {
			return errUnbounded
		}
		delete(e.rows, leaving)
		row.solveForPair(leaving, entering)
		e.substitute(entering, row)
		e.rows[entering] = row
		pivots++
	}
}

// dualOptimize restores primal feasibility after edits and removals drove
// row constants negative. Queued rows are revisited; a row still basic with
// a constant below -Epsilon is pivoted against the entering symbol
// minimizing objective coefficient over row coefficient.
func (e *Engine) dualOptimize() error {
	pivots := 0
	for len(e.infeasible) > 0 {
		leaving := e.popInfeasible()
		row, ok := e.rows[leaving]
		if !ok || row.constant >= -Epsilon {
			continue
		}
		entering := e.dualEnteringSymbol(row)
		if !entering.IsValid() {
			return &InternalError{Msg: "dual optimize found no entering symbol for " + leaving.String()}
		}
		delete(e.rows, leaving)
		row.solveForPair(leaving, entering)
		e.substitute(entering, row)
		e.rows[entering] = row
		pivots++
	}
	if pivots > 0 {
		log := logger.With("tableau")
		log.Debug().Int("pivots", pivots).Msg("dual feasibility repaired")
	}
	return nil
}

// addWithArtificial drives a row with no natural subject into the basis.
// The row is installed under a fresh artificial symbol whose copy is
// minimized; if the minimum is not zero the constraint contradicts the
// required set and the caller must revert.
func (e *Engine) addWithArtificial(row *Row) (bool, error) {
	art := e.newSymbol(Slack)
	e.rows[art] = row.clone()
	e.artificial = row.clone()

	log := logger.With("tableau")
	log.Debug().Stringer("artificial", art).Msg("entering artificial phase")

	err := e.optimize(e.artificial)
	success := nearZero(e.artificial.constant)
	e.artificial = nil
	if err != nil {
		e.scrubArtificial(art)
		return false, &InternalError{Msg: "artificial minimization failed: " + err.Error()}
	}

	if r, ok := e.rows[art]; ok {
		delete(e.rows, art)
		if success && len(r.cells) > 0 {
			entering := anyPivotableSymbol(r)
			if entering.IsValid() {
				r.solveForPair(art, entering)
				e.substitute(entering, r)
				e.rows[entering] = r
			}
			// no pivotable symbol means only dummy cells remain: the
			// constraint is redundant on the dummy subspace and its row is
			// discarded
		}
	}
	e.scrubArtificial(art)
	return success, nil
}

// scrubArtificial erases every trace of the artificial symbol.
func (e *Engine) scrubArtificial(art Symbol) {
	for _, r := range e.rows {
		r.remove(art)
	}
	e.objective.remove(art)
}

// substitute replaces s with the row it was just solved for, in every
// tableau row, the objective, and the artificial row when one is active.
// Rows whose constant turns negative are queued for dual repair.
func (e *Engine) substitute(s Symbol, row *Row) {
	for basic, r := range e.rows {
		r.substitute(s, row)
		if basic.Kind != External && r.constant < 0 {
			e.enqueueInfeasible(basic)
		}
	}
	e.objective.substitute(s, row)
	if e.artificial != nil {
		e.artificial.substitute(s, row)
	}
}

// enteringSymbol picks the objective cell with the most negative
// coefficient, skipping dummies, ties on the lowest id. Invalid means the
// objective is optimal.
func enteringSymbol(objective *Row) Symbol {
	var best Symbol
	bestCoeff := 0.0
	for s, c := range objective.cells {
		if s.Kind == Dummy || c >= -Epsilon {
			continue
		}
		if !best.IsValid() || c < bestCoeff || (c == bestCoeff && s.ID < best.ID) {
			best = s
			bestCoeff = c
		}
	}
	return best
}

// leavingRow picks the basic row bounding the entering symbol most tightly:
// minimum -constant/coefficient over rows with coefficient below -Epsilon.
func (e *Engine) leavingRow(entering Symbol) (Symbol, *Row, bool) {
	ratio := math.Inf(1)
	var leaving Symbol
	var out *Row
	for s, r := range e.rows {
		if s.Kind == External {
			continue
		}
		c := r.coefficientFor(entering)
		if c >= -Epsilon {
			continue
		}
		if t := -r.constant / c; t < ratio || (t == ratio && s.ID < leaving.ID) {
			ratio = t
			leaving = s
			out = r
		}
	}
	return leaving, out, leaving.IsValid()
}

// dualEnteringSymbol picks, for an infeasible row, the non-dummy cell with a
// coefficient above Epsilon minimizing objective coefficient over row
// coefficient, ties on the lowest id.
func (e *Engine) dualEnteringSymbol(row *Row) Symbol {
	ratio := math.Inf(1)
	var best Symbol
	for s, c := range row.cells {
		if s.Kind == Dummy || c <= Epsilon {
			continue
		}
		if r := e.objective.coefficientFor(s) / c; r < ratio || (r == ratio && s.ID < best.ID) {
			ratio = r
			best = s
		}
	}
	return best
}

// anyPivotableSymbol returns the lowest-id slack or error cell of the row,
// invalid if there is none.
func anyPivotableSymbol(row *Row) Symbol {
	var best Symbol
	for s := range row.cells {
		if s.pivotable() && (!best.IsValid() || s.ID < best.ID) {
			best = s
		}
	}
	return best
}
