/*
 * constraints.go, part of gomd.
 *
 * Copyright 2026 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 * gomd is developed at the Universidad de Santiago de Chile
 * (USACH).
 *
 */

package dyn

import (
	"fmt"
	"math"

	md "github.com/rmera/gomd"
	v3 "github.com/rmera/gomd/v3"
)

//Constraints restores the length of every bond flagged as constrained in a
//topology, by iterative projection in the SHAKE manner: each bond is
//corrected in turn, splitting the correction between its atoms by inverse
//mass, until all bonds are within tolerance or the iteration cap is hit.
type Constraints struct {
	bonds   []*md.Bond
	invmass []float64
	tol     float64 //nm, on |r - r0|
	maxIter int
	snap    *v3.Matrix
}

//NewConstraints builds a solver for the constrained bonds of top. tol is the
//absolute tolerance on each bond length, in nm.
func NewConstraints(top *md.Topology, tol float64, maxIter int) (*Constraints, error) {
	if top == nil {
		return nil, Error{md.ErrNilData, []string{"NewConstraints"}}
	}
	if tol <= 0 || maxIter <= 0 {
		return nil, Error{fmt.Sprintf("dyn: invalid constraint parameters tol=%v maxIter=%d", tol, maxIter), []string{"NewConstraints"}}
	}
	masses, err := top.Masses()
	if err != nil {
		return nil, errDecorate(err, "NewConstraints")
	}
	C := &Constraints{
		bonds:   top.Constrained(),
		invmass: make([]float64, len(masses)),
		tol:     tol,
		maxIter: maxIter,
		snap:    v3.Zeros(top.Len()),
	}
	for i, m := range masses {
		C.invmass[i] = 1 / m
	}
	return C, nil
}

//Len returns the number of constrained bonds handled by the solver.
func (C *Constraints) Len() int { return len(C.bonds) }

//Apply adjusts pos so every constrained bond has its reference length, using
//the pre-step positions ref to direct the corrections. If vel is not nil the
//positional corrections are also applied to it, divided by dt. Returns a
//ConstraintError if the iteration cap is reached before convergence; pos
//then holds the partially corrected coordinates.
func (C *Constraints) Apply(ref, pos, vel *v3.Matrix, dt float64) error {
	if len(C.bonds) == 0 {
		return nil
	}
	C.snap.Copy(pos)
	converged := false
	for iter := 0; iter < C.maxIter && !converged; iter++ {
		converged = true
		for _, b := range C.bonds {
			i, j := b.At1, b.At2
			var d, dref [3]float64
			for q := 0; q < 3; q++ {
				d[q] = pos.At(i, q) - pos.At(j, q)
				dref[q] = ref.At(i, q) - ref.At(j, q)
			}
			r2 := d[0]*d[0] + d[1]*d[1] + d[2]*d[2]
			if math.Abs(math.Sqrt(r2)-b.R0) <= C.tol {
				continue
			}
			converged = false
			denom := 2 * (C.invmass[i] + C.invmass[j]) * (d[0]*dref[0] + d[1]*dref[1] + d[2]*dref[2])
			if math.Abs(denom) < 1e-12 {
				//the bond rotated (nearly) perpendicular to its reference
				//direction within one step; no projection can fix that.
				return ConstraintError{[]int{i, j}, 0, []string{"Apply"}}
			}
			g := (r2 - b.R0*b.R0) / denom
			for q := 0; q < 3; q++ {
				pos.Set(i, q, pos.At(i, q)-g*C.invmass[i]*dref[q])
				pos.Set(j, q, pos.At(j, q)+g*C.invmass[j]*dref[q])
			}
		}
	}
	if !converged {
		return ConstraintError{nil, C.maxIter, []string{"Apply"}}
	}
	if vel != nil && dt > 0 {
		n, _ := pos.Dims()
		for i := 0; i < n; i++ {
			for q := 0; q < 3; q++ {
				vel.Set(i, q, vel.At(i, q)+(pos.At(i, q)-C.snap.At(i, q))/dt)
			}
		}
	}
	return nil
}

//ConstraintError reports a constrained bond set that could not be brought
//within tolerance. It satisfies md.Error.
type ConstraintError struct {
	atoms []int
	iters int
	deco  []string
}

func (err ConstraintError) Error() string {
	if len(err.atoms) > 0 {
		return fmt.Sprintf("gomd/dyn: constraints not converged: bond %v degenerate against its reference", err.atoms)
	}
	return fmt.Sprintf("gomd/dyn: constraints not converged after %d iterations", err.iters)
}

//Decorate adds new information to the error.
func (err ConstraintError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Atoms returns the atoms of the offending bond, when one could be singled
//out.
func (err ConstraintError) Atoms() []int { return err.atoms }
