/*
 * ff.go, part of gomd.
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

//Package ff evaluates the potential energy of a topology and its cartesian
//gradient. The potential is the usual classical form: harmonic bonds and
//angles, periodic dihedrals and pairwise Lennard-Jones plus Coulomb terms.
//Pairs connected by one or two bonds are excluded from the nonbonded sum.
package ff

import (
	"fmt"
	"math"

	md "github.com/rmera/gomd"
	v3 "github.com/rmera/gomd/v3"
)

//below this separation a nonbonded pair is considered an overlap and
//evaluation fails rather than producing astronomic forces.
const overlapDist = 1e-6

//sine threshold under which an angle or dihedral gradient is considered
//undefined.
const degenSin = 1e-8

//Evaluator computes the potential energy and forces for one Topology. It
//keeps precomputed per-atom parameters and the nonbonded exclusion table, so
//it is cheap to call repeatedly. It is not safe for concurrent use on the
//same receiver.
type Evaluator struct {
	top    *md.Topology
	cutoff float64 //nm, 0 means no cutoff
	charge []float64
	sigma  []float64
	eps    []float64
	excl   [][]bool //symmetric, excl[i][j] true for 1-2 and 1-3 pairs
}

//New returns an Evaluator for top. Nonbonded interactions beyond cutoff (in
//nm) are ignored; a cutoff of 0 disables truncation, which is the sensible
//setting for the small systems this library targets.
func New(top *md.Topology, cutoff float64) (*Evaluator, error) {
	if top == nil {
		return nil, Error{md.ErrNilData, nil, []string{"ff.New"}}
	}
	if cutoff < 0 {
		return nil, Error{fmt.Sprintf("ff: negative cutoff %4.2f", cutoff), nil, []string{"ff.New"}}
	}
	n := top.Len()
	E := &Evaluator{top: top, cutoff: cutoff}
	E.charge = make([]float64, n)
	E.sigma = make([]float64, n)
	E.eps = make([]float64, n)
	for i := 0; i < n; i++ {
		at := top.Atom(i)
		E.charge[i] = at.Charge
		E.sigma[i] = at.Sigma
		E.eps[i] = at.Epsilon
	}
	E.excl = exclusions(top)
	return E, nil
}

//exclusions builds the symmetric table of nonbonded exclusions: pairs joined
//by a bond (1-2) and pairs sharing a bonded neighbor (1-3). Pairs separated
//by three bonds interact at full strength.
func exclusions(top *md.Topology) [][]bool {
	n := top.Len()
	excl := make([][]bool, n)
	for i := range excl {
		excl[i] = make([]bool, n)
	}
	neigh := make([][]int, n)
	for _, b := range top.Bonds() {
		excl[b.At1][b.At2] = true
		excl[b.At2][b.At1] = true
		neigh[b.At1] = append(neigh[b.At1], b.At2)
		neigh[b.At2] = append(neigh[b.At2], b.At1)
	}
	for j := 0; j < n; j++ {
		for _, i := range neigh[j] {
			for _, k := range neigh[j] {
				if i != k {
					excl[i][k] = true
				}
			}
		}
	}
	return excl
}

//Cutoff returns the nonbonded cutoff of the evaluator, in nm.
func (E *Evaluator) Cutoff() float64 { return E.cutoff }

//Topology returns the topology the evaluator was built for.
func (E *Evaluator) Topology() *md.Topology { return E.top }

//Evaluate computes the potential energy (kJ/mol) at pos and accumulates the
//negative gradient into forces, which is zeroed first. Both matrices must
//have one row per atom. On a geometric degeneracy it returns an
//md.DegeneracyError; an atomic overlap or a non-finite result yields an
//Instability identifying the atoms involved.
func (E *Evaluator) Evaluate(pos, forces *v3.Matrix) (float64, error) {
	n := E.top.Len()
	if pos == nil || forces == nil {
		return 0, Error{md.ErrNilData, nil, []string{"Evaluate"}}
	}
	if pos.NVecs() != n || forces.NVecs() != n {
		return 0, Error{fmt.Sprintf("ff: expected %d rows, got %d positions and %d forces", n, pos.NVecs(), forces.NVecs()), nil, []string{"Evaluate"}}
	}
	forces.Zero()
	energy := 0.0
	e, err := E.bonds(pos, forces)
	if err != nil {
		return 0, errDecorate(err, "Evaluate")
	}
	energy += e
	e, err = E.angles(pos, forces)
	if err != nil {
		return 0, errDecorate(err, "Evaluate")
	}
	energy += e
	e, err = E.torsions(pos, forces)
	if err != nil {
		return 0, errDecorate(err, "Evaluate")
	}
	energy += e
	e, err = E.nonbonded(pos, forces)
	if err != nil {
		return 0, errDecorate(err, "Evaluate")
	}
	energy += e
	if math.IsNaN(energy) || math.IsInf(energy, 0) || !forces.IsFinite() {
		return 0, Instability{"non-finite energy or forces", nil, []string{"Evaluate"}}
	}
	return energy, nil
}

func (E *Evaluator) bonds(pos, forces *v3.Matrix) (float64, error) {
	energy := 0.0
	for _, b := range E.top.Bonds() {
		if b.Constrained {
			continue //length held by the constraint solver
		}
		d := delta(pos, b.At1, b.At2)
		r := norm(d)
		if r <= overlapDist {
			return 0, Instability{"bonded atoms overlap", []int{b.At1, b.At2}, []string{"bonds"}}
		}
		dev := r - b.R0
		energy += 0.5 * b.K * dev * dev
		f := -b.K * dev / r
		addScaled(forces, b.At1, f, d)
		addScaled(forces, b.At2, -f, d)
	}
	return energy, nil
}

func (E *Evaluator) angles(pos, forces *v3.Matrix) (float64, error) {
	energy := 0.0
	for _, a := range E.top.Angles() {
		rij := delta(pos, a.At1, a.At2)
		rkj := delta(pos, a.At3, a.At2)
		nij := norm(rij)
		nkj := norm(rkj)
		if nij <= overlapDist || nkj <= overlapDist {
			return 0, Instability{"angle atoms overlap", []int{a.At1, a.At2, a.At3}, []string{"angles"}}
		}
		var u, v [3]float64
		for q := 0; q < 3; q++ {
			u[q] = rij[q] / nij
			v[q] = rkj[q] / nkj
		}
		c := dot(u, v)
		if c > 1 {
			c = 1
		} else if c < -1 {
			c = -1
		}
		s := math.Sqrt(1 - c*c)
		if s <= degenSin {
			return 0, md.NewDegeneracyError(a.At1, a.At2, a.At3)
		}
		theta := math.Acos(c)
		dev := theta - a.Theta0
		energy += 0.5 * a.K * dev * dev
		//F_i = -dE/dtheta * dtheta/dri, with dtheta/dri = -(v - c u)/(s |rij|)
		pref := a.K * dev / s
		var fi, fk [3]float64
		for q := 0; q < 3; q++ {
			fi[q] = pref * (v[q] - c*u[q]) / nij
			fk[q] = pref * (u[q] - c*v[q]) / nkj
		}
		addScaled(forces, a.At1, 1, fi)
		addScaled(forces, a.At3, 1, fk)
		for q := 0; q < 3; q++ {
			fi[q] = -(fi[q] + fk[q])
		}
		addScaled(forces, a.At2, 1, fi)
	}
	return energy, nil
}

func (E *Evaluator) torsions(pos, forces *v3.Matrix) (float64, error) {
	energy := 0.0
	for _, t := range E.top.Torsions() {
		b1 := delta(pos, t.At2, t.At1)
		b2 := delta(pos, t.At3, t.At2)
		b3 := delta(pos, t.At4, t.At3)
		n1 := cross(b1, b2)
		n2 := cross(b2, b3)
		n1sq := dot(n1, n1)
		n2sq := dot(n2, n2)
		nb2 := norm(b2)
		if n1sq <= degenSin || n2sq <= degenSin || nb2 <= overlapDist {
			return 0, md.NewDegeneracyError(t.At1, t.At2, t.At3, t.At4)
		}
		m := cross(n1, n2)
		phi := math.Atan2(dot(m, b2)/nb2, dot(n1, n2))
		arg := float64(t.Mult)*phi - t.Phase
		energy += t.K * (1 + math.Cos(arg))
		dEdphi := -t.K * float64(t.Mult) * math.Sin(arg)
		//gradients of phi with respect to the end atoms
		var dphi1, dphi4 [3]float64
		for q := 0; q < 3; q++ {
			dphi1[q] = -nb2 / n1sq * n1[q]
			dphi4[q] = nb2 / n2sq * n2[q]
		}
		s12 := dot(b1, b2) / (nb2 * nb2)
		s32 := dot(b3, b2) / (nb2 * nb2)
		var dphi2, dphi3 [3]float64
		for q := 0; q < 3; q++ {
			dphi2[q] = (s12-1)*dphi1[q] - s32*dphi4[q]
			dphi3[q] = (s32-1)*dphi4[q] - s12*dphi1[q]
		}
		addScaled(forces, t.At1, -dEdphi, dphi1)
		addScaled(forces, t.At2, -dEdphi, dphi2)
		addScaled(forces, t.At3, -dEdphi, dphi3)
		addScaled(forces, t.At4, -dEdphi, dphi4)
	}
	return energy, nil
}

func (E *Evaluator) nonbonded(pos, forces *v3.Matrix) (float64, error) {
	n := E.top.Len()
	cut2 := E.cutoff * E.cutoff
	energy := 0.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if E.excl[i][j] {
				continue
			}
			d := delta(pos, i, j)
			r2 := dot(d, d)
			if cut2 > 0 && r2 > cut2 {
				continue
			}
			if r2 <= overlapDist*overlapDist {
				return 0, Instability{"nonbonded atoms overlap", []int{i, j}, []string{"nonbonded"}}
			}
			fscalar := 0.0 //dE/dr divided by -r, so F_i = fscalar*d
			if qq := md.CoulombK * E.charge[i] * E.charge[j]; qq != 0 {
				r := math.Sqrt(r2)
				energy += qq / r
				fscalar += qq / (r2 * r)
			}
			if eij := math.Sqrt(E.eps[i] * E.eps[j]); eij > 0 {
				sij := 0.5 * (E.sigma[i] + E.sigma[j]) //Lorentz-Berthelot
				sr2 := sij * sij / r2
				sr6 := sr2 * sr2 * sr2
				sr12 := sr6 * sr6
				energy += 4 * eij * (sr12 - sr6)
				fscalar += 24 * eij * (2*sr12 - sr6) / r2
			}
			addScaled(forces, i, fscalar, d)
			addScaled(forces, j, -fscalar, d)
		}
	}
	return energy, nil
}

//small fixed-size vector helpers. The v3 package is meant for whole
//coordinate sets; inside the evaluator loops plain arrays are both faster and
//clearer.

func delta(pos *v3.Matrix, i, j int) [3]float64 {
	return [3]float64{
		pos.At(i, 0) - pos.At(j, 0),
		pos.At(i, 1) - pos.At(j, 1),
		pos.At(i, 2) - pos.At(j, 2),
	}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func norm(a [3]float64) float64 {
	return math.Sqrt(dot(a, a))
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func addScaled(F *v3.Matrix, i int, s float64, d [3]float64) {
	for q := 0; q < 3; q++ {
		F.Set(i, q, F.At(i, q)+s*d[q])
	}
}
