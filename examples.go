/*
 * examples.go, part of gomd.
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

package md

import (
	"math"

	v3 "github.com/rmera/gomd/v3"
)

//Two small parameterized systems, used by the tests and by the CLI demo
//mode. The parameters are OPLS/TraPPE-flavored values in the units of this
//module; they are meant to behave like the molecules they are named after,
//not to reproduce any published force field exactly.

//Ethane returns an all-atom ethane-like topology and a staggered starting
//geometry. If constrainH is true the C-H bonds are flagged for the constraint
//solver instead of getting a harmonic term.
func Ethane(constrainH bool) (*Topology, *v3.Matrix) {
	const (
		rCC = 0.1529
		kCC = 224262.4
		rCH = 0.109
		kCH = 284512.0
	)
	atoms := make([]*Atom, 8)
	atoms[0] = &Atom{Index: 0, Symbol: "C", Name: "C1", Mass: 12.011, Charge: -0.18, Sigma: 0.350, Epsilon: 0.276144}
	atoms[1] = &Atom{Index: 1, Symbol: "C", Name: "C2", Mass: 12.011, Charge: -0.18, Sigma: 0.350, Epsilon: 0.276144}
	for i := 2; i < 8; i++ {
		atoms[i] = &Atom{Index: i, Symbol: "H", Mass: 1.008, Charge: 0.06, Sigma: 0.250, Epsilon: 0.12552}
	}
	atoms[2].Name, atoms[3].Name, atoms[4].Name = "H11", "H12", "H13"
	atoms[5].Name, atoms[6].Name, atoms[7].Name = "H21", "H22", "H23"
	bonds := []*Bond{{At1: 0, At2: 1, R0: rCC, K: kCC}}
	for i := 2; i < 5; i++ {
		bonds = append(bonds, &Bond{At1: 0, At2: i, R0: rCH, K: kCH, Constrained: constrainH})
	}
	for i := 5; i < 8; i++ {
		bonds = append(bonds, &Bond{At1: 1, At2: i, R0: rCH, K: kCH, Constrained: constrainH})
	}
	const (
		aHCC = 110.7 * math.Pi / 180
		kHCC = 313.8
		aHCH = 107.8 * math.Pi / 180
		kHCH = 276.144
	)
	var angles []*Angle
	for i := 2; i < 5; i++ {
		angles = append(angles, &Angle{At1: i, At2: 0, At3: 1, Theta0: aHCC, K: kHCC})
	}
	for i := 5; i < 8; i++ {
		angles = append(angles, &Angle{At1: i, At2: 1, At3: 0, Theta0: aHCC, K: kHCC})
	}
	hpairs := [][2]int{{2, 3}, {2, 4}, {3, 4}, {5, 6}, {5, 7}, {6, 7}}
	for _, p := range hpairs {
		vertex := 0
		if p[0] >= 5 {
			vertex = 1
		}
		angles = append(angles, &Angle{At1: p[0], At2: vertex, At3: p[1], Theta0: aHCH, K: kHCH})
	}
	var torsions []*Torsion
	for i := 2; i < 5; i++ {
		for j := 5; j < 8; j++ {
			torsions = append(torsions, &Torsion{At1: i, At2: 0, At3: 1, At4: j, Mult: 3, Phase: 0, K: 0.6276})
		}
	}
	top, err := NewTopology(atoms, bonds, angles, torsions)
	if err != nil {
		panic("Ethane: " + err.Error()) //can't happen
	}
	//Staggered geometry: C-C along x, hydrogens at alternating azimuths.
	coords := v3.Zeros(8)
	coords.Set(1, 0, rCC)
	along := rCH * math.Cos(aHCC) //negative: hydrogens point away from the other carbon
	perp := rCH * math.Sin(aHCC)
	for k := 0; k < 3; k++ {
		az := float64(k) * 2 * math.Pi / 3
		coords.Set(2+k, 0, along)
		coords.Set(2+k, 1, perp*math.Cos(az))
		coords.Set(2+k, 2, perp*math.Sin(az))
		az += math.Pi / 3 //staggered
		coords.Set(5+k, 0, rCC-along)
		coords.Set(5+k, 1, perp*math.Cos(az))
		coords.Set(5+k, 2, perp*math.Sin(az))
	}
	return top, coords
}

//ButaneUA returns a united-atom butane-like topology (four beads, no
//explicit hydrogens) in its trans conformation. Its single backbone dihedral
//carries three additive periodic terms.
func ButaneUA() (*Topology, *v3.Matrix) {
	const (
		rCC  = 0.153
		kCC  = 224262.4
		aCCC = 111.0 * math.Pi / 180
		kCCC = 519.65
		sCH3 = 0.375
		eCH3 = 0.81482
		sCH2 = 0.395
		eCH2 = 0.38245
	)
	atoms := []*Atom{
		{Index: 0, Symbol: "C", Name: "CH3a", Mass: 15.035, Sigma: sCH3, Epsilon: eCH3},
		{Index: 1, Symbol: "C", Name: "CH2a", Mass: 14.027, Sigma: sCH2, Epsilon: eCH2},
		{Index: 2, Symbol: "C", Name: "CH2b", Mass: 14.027, Sigma: sCH2, Epsilon: eCH2},
		{Index: 3, Symbol: "C", Name: "CH3b", Mass: 15.035, Sigma: sCH3, Epsilon: eCH3},
	}
	bonds := []*Bond{
		{At1: 0, At2: 1, R0: rCC, K: kCC},
		{At1: 1, At2: 2, R0: rCC, K: kCC},
		{At1: 2, At2: 3, R0: rCC, K: kCC},
	}
	angles := []*Angle{
		{At1: 0, At2: 1, At3: 2, Theta0: aCCC, K: kCCC},
		{At1: 1, At2: 2, At3: 3, Theta0: aCCC, K: kCCC},
	}
	torsions := []*Torsion{
		{At1: 0, At2: 1, At3: 2, At4: 3, Mult: 1, Phase: 0, K: 2.785},
		{At1: 0, At2: 1, At3: 2, At4: 3, Mult: 2, Phase: math.Pi, K: 0.567},
		{At1: 0, At2: 1, At3: 2, At4: 3, Mult: 3, Phase: 0, K: 6.579},
	}
	top, err := NewTopology(atoms, bonds, angles, torsions)
	if err != nil {
		panic("ButaneUA: " + err.Error()) //can't happen
	}
	//Trans zig-zag in the xy plane.
	u := []float64{1, 0, 0}
	v := []float64{math.Cos(math.Pi - aCCC), math.Sin(math.Pi - aCCC), 0}
	coords := v3.Zeros(4)
	dirs := [][]float64{u, v, u}
	for i := 1; i < 4; i++ {
		for j := 0; j < 3; j++ {
			coords.Set(i, j, coords.At(i-1, j)+rCC*dirs[i-1][j])
		}
	}
	return top, coords
}
