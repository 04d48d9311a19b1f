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

// Package tableau implements the incremental Cassowary dual-simplex engine:
// a sparse tableau over tagged symbols, the pivot rules enforcing the
// strength-ordered objective, and the re-optimization driven by edits and
// suggestions.
package tableau

import (
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/cassowary/debug"
	"github.com/consensys/cassowary/logger"
)

// Required is the strength of a hard constraint. Strengths above it are
// clipped down to it; any strength below it is soft.
const Required = 1_001_001_000.0

// Clip clamps a strength into the legal range [0, Required].
func Clip(strength float64) float64 {
	return math.Max(0, math.Min(strength, Required))
}

// VarID identifies a client variable. Ids are owned by the caller; the
// engine only relies on them being stable and unique.
type VarID uint64

// ConstraintID is the handle the engine returns for an inserted constraint.
type ConstraintID uint64

// RelOp is the relation of a constraint `expression op 0`.
type RelOp uint8

const (
	LessOrEqual RelOp = iota
	Equal
	GreaterOrEqual
)

// Term is one coefficient*variable product of a constraint expression.
type Term struct {
	Var   VarID
	Coeff float64
}

// Change reports a variable whose value moved since the last FetchChanges.
type Change struct {
	Var   VarID
	Value float64
}

type constraintData struct {
	tag      Tag
	strength float64
}

type varData struct {
	symbol Symbol
	value  float64 // last reported value
}

type editInfo struct {
	constraint ConstraintID
	tag        Tag
	constant   float64 // last suggested value
}

// Engine is the solver core. It is a single-goroutine mutable state machine;
// independent engines share nothing and may be used concurrently.
type Engine struct {
	rows        map[Symbol]*Row
	constraints map[ConstraintID]constraintData
	vars        map[VarID]*varData
	varOrder    []VarID // external symbols in first-use order, for change reporting
	edits       map[VarID]*editInfo
	objective   *Row
	artificial  *Row // transient, only set during the artificial phase

	// rows whose constant went negative, waiting for dual repair. The bitset
	// keeps the queue free of duplicates.
	infeasible []Symbol
	queued     *bitset.BitSet

	symbolTick     uint64
	constraintTick uint64
}

func New() *Engine {
	return &Engine{
		rows:        make(map[Symbol]*Row),
		constraints: make(map[ConstraintID]constraintData),
		vars:        make(map[VarID]*varData),
		edits:       make(map[VarID]*editInfo),
		objective:   newRow(0),
		queued:      bitset.New(64),
	}
}

// Reset returns the engine to its freshly constructed state, discarding all
// constraints, edit variables and minted symbols.
func (e *Engine) Reset() {
	e.rows = make(map[Symbol]*Row)
	e.constraints = make(map[ConstraintID]constraintData)
	e.vars = make(map[VarID]*varData)
	e.varOrder = nil
	e.edits = make(map[VarID]*editInfo)
	e.objective = newRow(0)
	e.artificial = nil
	e.infeasible = nil
	e.queued.ClearAll()
	e.symbolTick = 0
	e.constraintTick = 0
	log := logger.With("tableau")
	log.Debug().Msg("solver reset")
}

func (e *Engine) newSymbol(kind Kind) Symbol {
	e.symbolTick++
	return Symbol{ID: e.symbolTick, Kind: kind}
}

// varSymbol returns the External symbol for v, minting one on first sight.
// The symbol is retained for the lifetime of the engine.
func (e *Engine) varSymbol(v VarID) Symbol {
	if vd, ok := e.vars[v]; ok {
		return vd.symbol
	}
	s := e.newSymbol(External)
	e.vars[v] = &varData{symbol: s}
	e.varOrder = append(e.varOrder, v)
	return s
}

// AddConstraint inserts `terms + constant op 0` at the given strength and
// returns the handle to remove it with. On ErrUnsatisfiable the engine is
// left as it was before the call.
func (e *Engine) AddConstraint(terms []Term, constant float64, op RelOp, strength float64) (ConstraintID, error) {
	strength = Clip(strength)
	row, tag := e.createRow(terms, constant, op, strength)

	subject := chooseSubject(row, tag)
	if !subject.IsValid() {
		ok, err := e.addWithArtificial(row)
		if err != nil {
			if rerr := e.rollback(tag, strength); rerr != nil {
				return 0, rerr
			}
			return 0, err
		}
		if !ok {
			if rerr := e.rollback(tag, strength); rerr != nil {
				return 0, rerr
			}
			return 0, ErrUnsatisfiable
		}
	} else {
		row.solveFor(subject)
		e.substitute(subject, row)
		e.rows[subject] = row
	}

	if err := e.optimize(e.objective); err != nil {
		// unbounded objective: the required constraints conflict. Back out
		// the insertion so the engine observes its pre-call state.
		if rerr := e.rollback(tag, strength); rerr != nil {
			return 0, rerr
		}
		if err == errUnbounded {
			return 0, ErrUnsatisfiable
		}
		return 0, err
	}

	e.constraintTick++
	id := ConstraintID(e.constraintTick)
	e.constraints[id] = constraintData{tag: tag, strength: strength}
	e.checkInvariants()

	log := logger.With("tableau")
	log.Debug().
		Uint64("constraint", uint64(id)).
		Stringer("marker", tag.Marker).
		Int("rows", len(e.rows)).
		Msg("constraint added")
	return id, nil
}

// createRow builds the tableau row for a new constraint, substituting basic
// external symbols, introducing the slack/error/dummy auxiliaries the
// relation and strength call for, and normalizing the constant sign.
func (e *Engine) createRow(terms []Term, constant float64, op RelOp, strength float64) (*Row, Tag) {
	row := newRow(constant)
	for _, t := range terms {
		if nearZero(t.Coeff) {
			continue
		}
		sym := e.varSymbol(t.Var)
		if basic, ok := e.rows[sym]; ok {
			row.insertRow(basic, t.Coeff)
		} else {
			row.insertSymbol(sym, t.Coeff)
		}
	}

	var tag Tag
	switch op {
	case LessOrEqual, GreaterOrEqual:
		coeff := 1.0
		if op == GreaterOrEqual {
			coeff = -1.0
		}
		slack := e.newSymbol(Slack)
		row.insertSymbol(slack, coeff)
		tag.Marker = slack
		if strength < Required {
			errSym := e.newSymbol(Error)
			row.insertSymbol(errSym, -coeff)
			e.objective.insertSymbol(errSym, strength)
			tag.Other = errSym
		}
	case Equal:
		if strength < Required {
			errPlus := e.newSymbol(Error)
			errMinus := e.newSymbol(Error)
			row.insertSymbol(errPlus, -1.0)
			row.insertSymbol(errMinus, 1.0)
			e.objective.insertSymbol(errPlus, strength)
			e.objective.insertSymbol(errMinus, strength)
			tag.Marker = errPlus
			tag.Other = errMinus
		} else {
			dummy := e.newSymbol(Dummy)
			row.insertSymbol(dummy, 1.0)
			tag.Marker = dummy
		}
	}

	if row.constant < 0 {
		row.reverseSign()
	}
	return row, tag
}

// chooseSubject picks the symbol the new row will be solved for: an external
// symbol if the row has one, else the marker or other tag symbol when it is
// pivotable with a negative coefficient. An invalid symbol means the row
// must go through the artificial phase.
func chooseSubject(row *Row, tag Tag) Symbol {
	var best Symbol
	for s := range row.cells {
		if s.Kind == External && (!best.IsValid() || s.ID < best.ID) {
			best = s
		}
	}
	if best.IsValid() {
		return best
	}
	if tag.Marker.pivotable() && row.coefficientFor(tag.Marker) < 0 {
		return tag.Marker
	}
	if tag.Other.pivotable() && row.coefficientFor(tag.Other) < 0 {
		return tag.Other
	}
	return Symbol{}
}

// rollback reverses a partially applied insertion identified by its tag, so
// that a failed AddConstraint is transactional. The marker of a rejected row
// may appear nowhere in the tableau; that is not an error here.
func (e *Engine) rollback(tag Tag, strength float64) error {
	e.removeConstraintEffects(tag, strength)
	if _, ok := e.rows[tag.Marker]; ok {
		delete(e.rows, tag.Marker)
	} else if leaving, row, ok := e.markerLeavingRow(tag.Marker); ok {
		delete(e.rows, leaving)
		row.solveForPair(leaving, tag.Marker)
		e.substitute(tag.Marker, row)
	}
	e.removeSymbolTraces(tag.Marker)
	e.removeSymbolTraces(tag.Other)
	// restore objective optimality; the tableau is back to a feasible basis
	// of the previous system
	if err := e.optimize(e.objective); err != nil {
		return &InternalError{Msg: "re-optimization after rollback failed: " + err.Error()}
	}
	return nil
}

// RemoveConstraint reverses the insertion recorded under id. The marker
// symbol locates the row to drop; if it is not basic, a leaving row is
// chosen by the two-phase ratio scan over the marker's column.
func (e *Engine) RemoveConstraint(id ConstraintID) error {
	data, ok := e.constraints[id]
	if !ok {
		return ErrUnknownConstraint
	}
	delete(e.constraints, id)

	e.removeConstraintEffects(data.tag, data.strength)
	if err := e.dropMarker(data.tag.Marker); err != nil {
		return err
	}
	e.removeSymbolTraces(data.tag.Other)

	if err := e.optimize(e.objective); err != nil {
		return &InternalError{Msg: "re-optimization after removal failed: " + err.Error()}
	}
	e.checkInvariants()

	log := logger.With("tableau")
	log.Debug().
		Uint64("constraint", uint64(id)).
		Int("rows", len(e.rows)).
		Msg("constraint removed")
	return nil
}

// removeConstraintEffects subtracts from the objective the strength
// contributions of the error symbols a constraint introduced.
func (e *Engine) removeConstraintEffects(tag Tag, strength float64) {
	if tag.Marker.Kind == Error {
		e.removeMarkerEffects(tag.Marker, strength)
	}
	if tag.Other.Kind == Error {
		e.removeMarkerEffects(tag.Other, strength)
	}
}

func (e *Engine) removeMarkerEffects(marker Symbol, strength float64) {
	if row, ok := e.rows[marker]; ok {
		e.objective.insertRow(row, -strength)
	} else {
		e.objective.insertSymbol(marker, -strength)
	}
}

// dropMarker removes the row introduced for marker from the tableau. When
// the marker is not basic a leaving row is picked from its column and
// pivoted so the marker becomes basic first. A Dummy marker may legitimately
// appear nowhere (its row was discarded as redundant); anything else missing
// from the tableau is an invariant violation.
func (e *Engine) dropMarker(marker Symbol) error {
	if _, ok := e.rows[marker]; ok {
		delete(e.rows, marker)
		return nil
	}
	leaving, row, ok := e.markerLeavingRow(marker)
	if !ok {
		if marker.Kind == Dummy {
			return nil
		}
		return &InternalError{Msg: "failed to find a leaving row for " + marker.String()}
	}
	delete(e.rows, leaving)
	row.solveForPair(leaving, marker)
	e.substitute(marker, row)
	return nil
}

// markerLeavingRow scans the marker's column for the row to pivot out.
// Among rows whose basic symbol is not External, rows where the marker has a
// negative coefficient are preferred, minimizing -constant/coefficient; then
// rows with a positive coefficient, minimizing constant/coefficient. Rows
// basic in an External symbol are only taken when no other row holds the
// marker, whatever the sign. Ties break on the lowest basic-symbol id.
func (e *Engine) markerLeavingRow(marker Symbol) (Symbol, *Row, bool) {
	r1 := math.Inf(1)
	r2 := math.Inf(1)
	var first, second, third Symbol
	for s, row := range e.rows {
		c := row.coefficientFor(marker)
		if c == 0 {
			continue
		}
		switch {
		case s.Kind == External:
			if !third.IsValid() || s.ID < third.ID {
				third = s
			}
		case c < 0:
			if r := -row.constant / c; r < r1 || (r == r1 && s.ID < first.ID) {
				r1 = r
				first = s
			}
		default:
			if r := row.constant / c; r < r2 || (r == r2 && s.ID < second.ID) {
				r2 = r
				second = s
			}
		}
	}
	leaving := first
	if !leaving.IsValid() {
		leaving = second
	}
	if !leaving.IsValid() {
		leaving = third
	}
	if !leaving.IsValid() {
		return Symbol{}, nil, false
	}
	return leaving, e.rows[leaving], true
}

// removeSymbolTraces erases a retired slack/error/dummy symbol from every
// remaining row and from the objective. External symbols are kept for the
// variable's lifetime.
func (e *Engine) removeSymbolTraces(s Symbol) {
	if !s.IsValid() || s.Kind == External {
		return
	}
	for _, row := range e.rows {
		row.remove(s)
	}
	e.objective.remove(s)
}

// HasConstraint reports whether id is live in the engine.
func (e *Engine) HasConstraint(id ConstraintID) bool {
	_, ok := e.constraints[id]
	return ok
}

// AddEdit registers v as an edit variable at the given strength by inserting
// the soft equality v == current value of v and recording its tag for
// SuggestValue.
func (e *Engine) AddEdit(v VarID, strength float64) error {
	if _, ok := e.edits[v]; ok {
		return ErrDuplicateEdit
	}
	strength = Clip(strength)
	if strength >= Required {
		return ErrBadStrength
	}
	current := 0.0
	if vd, ok := e.vars[v]; ok {
		if row, ok := e.rows[vd.symbol]; ok {
			current = row.constant
		}
	}
	id, err := e.AddConstraint([]Term{{Var: v, Coeff: 1}}, -current, Equal, strength)
	if err != nil {
		// a soft constraint always has a subject, so insertion cannot fail
		return &InternalError{Msg: "edit constraint rejected: " + err.Error()}
	}
	e.edits[v] = &editInfo{
		constraint: id,
		tag:        e.constraints[id].tag,
		constant:   current,
	}
	return nil
}

// RemoveEdit removes the edit constraint registered for v.
func (e *Engine) RemoveEdit(v VarID) error {
	info, ok := e.edits[v]
	if !ok {
		return ErrUnknownEdit
	}
	delete(e.edits, v)
	if err := e.RemoveConstraint(info.constraint); err != nil {
		return &InternalError{Msg: "edit constraint vanished: " + err.Error()}
	}
	return nil
}

// HasEdit reports whether v is registered as an edit variable.
func (e *Engine) HasEdit(v VarID) bool {
	_, ok := e.edits[v]
	return ok
}

// SuggestValue moves the edit variable v towards value. The delta against
// the previous suggestion is pushed through the rows holding the edit's
// error pair; rows whose constant goes negative are queued and repaired by
// the dual simplex.
func (e *Engine) SuggestValue(v VarID, value float64) error {
	info, ok := e.edits[v]
	if !ok {
		return ErrUnknownEdit
	}
	delta := value - info.constant
	info.constant = value

	e.applyDelta(info.tag, delta)

	if err := e.dualOptimize(); err != nil {
		return err
	}
	e.checkInvariants()

	log := logger.With("tableau")
	log.Debug().
		Uint64("variable", uint64(v)).
		Float64("value", value).
		Msg("value suggested")
	return nil
}

func (e *Engine) applyDelta(tag Tag, delta float64) {
	// check first if the positive error variable is basic
	if row, ok := e.rows[tag.Marker]; ok {
		if row.add(-delta) < 0 {
			e.enqueueInfeasible(tag.Marker)
		}
		return
	}
	// check next if the negative error variable is basic
	if row, ok := e.rows[tag.Other]; ok {
		if row.add(delta) < 0 {
			e.enqueueInfeasible(tag.Other)
		}
		return
	}
	// otherwise update each row where the error variables exist
	for s, row := range e.rows {
		coeff := row.coefficientFor(tag.Marker)
		if coeff == 0 {
			continue
		}
		if row.add(delta*coeff) < 0 && s.Kind != External {
			e.enqueueInfeasible(s)
		}
	}
}

// FetchChanges reports every external variable whose value moved by more
// than Epsilon since the last call, in first-use order of the variables.
func (e *Engine) FetchChanges() []Change {
	if len(e.infeasible) > 0 {
		// mutations repair feasibility eagerly; a non-empty queue here means
		// a previous dual repair was interrupted, so finish it now
		if err := e.dualOptimize(); err != nil {
			panic("cassowary: " + err.Error())
		}
	}
	var changes []Change
	for _, v := range e.varOrder {
		vd := e.vars[v]
		value := 0.0
		if row, ok := e.rows[vd.symbol]; ok {
			value = row.constant
		}
		if !nearZero(value - vd.value) {
			changes = append(changes, Change{Var: v, Value: value})
			vd.value = value
		}
	}
	return changes
}

func (e *Engine) enqueueInfeasible(s Symbol) {
	if e.queued.Test(uint(s.ID)) {
		return
	}
	e.queued.Set(uint(s.ID))
	e.infeasible = append(e.infeasible, s)
}

func (e *Engine) popInfeasible() Symbol {
	n := len(e.infeasible) - 1
	s := e.infeasible[n]
	e.infeasible = e.infeasible[:n]
	e.queued.Clear(uint(s.ID))
	return s
}

// checkInvariants verifies the structural invariants of the tableau. It is
// compiled to a no-op unless the debug build tag is set.
func (e *Engine) checkInvariants() {
	if !debug.Debug {
		return
	}
	for s, row := range e.rows {
		if s.Kind == Invalid {
			panic("cassowary: invalid symbol is basic\n" + debug.Stack())
		}
		if _, ok := row.cells[s]; ok {
			panic("cassowary: basic symbol " + s.String() + " appears in its own row\n" + debug.Stack())
		}
	}
}
