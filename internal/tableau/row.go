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

// Epsilon is the tolerance used for every zero comparison in the engine:
// coefficient elimination, ratio tests, row feasibility and change
// reporting.
const Epsilon = 1e-8

func nearZero(v float64) bool {
	if v < 0 {
		return -v < Epsilon
	}
	return v < Epsilon
}

// Row is one equation of the tableau: a sparse set of symbol coefficients
// plus a constant term. The basic symbol a row is stored under in the
// tableau never appears among its own cells.
type Row struct {
	cells    map[Symbol]float64
	constant float64
}

func newRow(constant float64) *Row {
	return &Row{
		cells:    make(map[Symbol]float64),
		constant: constant,
	}
}

func (r *Row) clone() *Row {
	c := &Row{
		cells:    make(map[Symbol]float64, len(r.cells)),
		constant: r.constant,
	}
	for s, v := range r.cells {
		c.cells[s] = v
	}
	return c
}

// add shifts the constant term by v and returns the new constant.
func (r *Row) add(v float64) float64 {
	r.constant += v
	return r.constant
}

// insertSymbol accumulates coefficient onto the cell for s, eliminating the
// cell if the result lands within Epsilon of zero.
func (r *Row) insertSymbol(s Symbol, coefficient float64) {
	c, ok := r.cells[s]
	if !ok {
		if !nearZero(coefficient) {
			r.cells[s] = coefficient
		}
		return
	}
	c += coefficient
	if nearZero(c) {
		delete(r.cells, s)
		return
	}
	r.cells[s] = c
}

// insertRow accumulates other scaled by coefficient into r.
func (r *Row) insertRow(other *Row, coefficient float64) {
	r.constant += other.constant * coefficient
	for s, v := range other.cells {
		r.insertSymbol(s, v*coefficient)
	}
}

func (r *Row) remove(s Symbol) {
	delete(r.cells, s)
}

func (r *Row) reverseSign() {
	r.constant = -r.constant
	for s, v := range r.cells {
		r.cells[s] = -v
	}
}

// solveFor rearranges the row such that s becomes its subject: the cell for
// s is removed and the row is scaled by the negative inverse of its
// coefficient. Given a row
//
//	c + a1*s1 + a2*s2 + ... + an*s = 0
//
// the result represents
//
//	s = -c/an - (a1/an)*s1 - (a2/an)*s2 - ...
//
// The symbol must have a cell in the row.
func (r *Row) solveFor(s Symbol) {
	coeff := -1.0 / r.cells[s]
	delete(r.cells, s)
	r.constant *= coeff
	for k, v := range r.cells {
		r.cells[k] = v * coeff
	}
}

// solveForPair rearranges the row such that rhs becomes its subject, for a
// row currently basic in lhs. Equivalent to inserting lhs with coefficient
// -1 and solving for rhs.
func (r *Row) solveForPair(lhs, rhs Symbol) {
	r.insertSymbol(lhs, -1.0)
	r.solveFor(rhs)
}

// coefficientFor returns the coefficient of s, zero if absent.
func (r *Row) coefficientFor(s Symbol) float64 {
	return r.cells[s]
}

// substitute replaces all occurrences of s with the given row, which is the
// row s was just solved for.
func (r *Row) substitute(s Symbol, row *Row) {
	coeff, ok := r.cells[s]
	if !ok {
		return
	}
	delete(r.cells, s)
	r.insertRow(row, coeff)
}
