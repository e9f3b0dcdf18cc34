/*
 * json.go, part of gomd.
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
	"encoding/json"
	"io"
	"os"

	v3 "github.com/rmera/gomd/v3"
)

//The JSON topology document is the exchange format with whatever program
//parameterized the system. It is deliberately small: per-atom identity and
//nonbonded parameters, the bonded terms, and optionally a flat coordinate
//slice. Anything fancier belongs to the external parameterization tool.

type jsonAtom struct {
	Symbol  string  `json:"symbol"`
	Name    string  `json:"name,omitempty"`
	Mass    float64 `json:"mass,omitempty"` //filled from the element table if absent
	Charge  float64 `json:"charge"`
	Sigma   float64 `json:"sigma"`
	Epsilon float64 `json:"epsilon"`
}

type jsonBond struct {
	Atoms       [2]int  `json:"atoms"`
	R0          float64 `json:"r0"`
	K           float64 `json:"k"`
	Constrained bool    `json:"constrained,omitempty"`
}

type jsonAngle struct {
	Atoms  [3]int  `json:"atoms"`
	Theta0 float64 `json:"theta0"`
	K      float64 `json:"k"`
}

type jsonTorsion struct {
	Atoms [4]int  `json:"atoms"`
	Mult  int     `json:"mult"`
	Phase float64 `json:"phase"`
	K     float64 `json:"k"`
}

type jsonTopology struct {
	Atoms    []jsonAtom    `json:"atoms"`
	Bonds    []jsonBond    `json:"bonds,omitempty"`
	Angles   []jsonAngle   `json:"angles,omitempty"`
	Torsions []jsonTorsion `json:"torsions,omitempty"`
	Coords   []float64     `json:"coords,omitempty"` //flat, 3 per atom
}

//TopologyRead reads a JSON topology document from the named file, returning
//the topology, the coordinates (nil if the document carries none) and an
//error or nil.
func TopologyRead(filename string) (*Topology, *v3.Matrix, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, CError{err.Error(), []string{"os.Open", "TopologyRead"}}
	}
	defer f.Close()
	return TopologyReadFrom(f)
}

//TopologyReadFrom reads a JSON topology document from r.
func TopologyReadFrom(r io.Reader) (*Topology, *v3.Matrix, error) {
	doc := new(jsonTopology)
	if err := json.NewDecoder(r).Decode(doc); err != nil {
		return nil, nil, CError{err.Error(), []string{"json.Decode", "TopologyReadFrom"}}
	}
	atoms := make([]*Atom, len(doc.Atoms))
	for i, ja := range doc.Atoms {
		mass := ja.Mass
		if mass <= 0 {
			if m, ok := SymbolMass(ja.Symbol); ok {
				mass = m
			}
		}
		atoms[i] = &Atom{
			Index:   i,
			Symbol:  ja.Symbol,
			Name:    ja.Name,
			Mass:    mass,
			Charge:  ja.Charge,
			Sigma:   ja.Sigma,
			Epsilon: ja.Epsilon,
		}
	}
	var bonds []*Bond
	for _, jb := range doc.Bonds {
		bonds = append(bonds, &Bond{At1: jb.Atoms[0], At2: jb.Atoms[1], R0: jb.R0, K: jb.K, Constrained: jb.Constrained})
	}
	var angles []*Angle
	for _, ja := range doc.Angles {
		angles = append(angles, &Angle{At1: ja.Atoms[0], At2: ja.Atoms[1], At3: ja.Atoms[2], Theta0: ja.Theta0, K: ja.K})
	}
	var torsions []*Torsion
	for _, jt := range doc.Torsions {
		torsions = append(torsions, &Torsion{At1: jt.Atoms[0], At2: jt.Atoms[1], At3: jt.Atoms[2], At4: jt.Atoms[3], Mult: jt.Mult, Phase: jt.Phase, K: jt.K})
	}
	top, err := NewTopology(atoms, bonds, angles, torsions)
	if err != nil {
		return nil, nil, errDecorate(err, "TopologyReadFrom")
	}
	var coords *v3.Matrix
	if doc.Coords != nil {
		coords, err = v3.NewMatrix(doc.Coords)
		if err != nil {
			return nil, nil, err
		}
		if coords.NVecs() != top.Len() {
			return nil, nil, CError{ErrInconsistent, []string{"TopologyReadFrom: coords don't match atoms"}}
		}
	}
	return top, coords, nil
}

//TopologyWriteTo writes top (and coords, if non-nil) to w as a JSON topology
//document.
func TopologyWriteTo(w io.Writer, top *Topology, coords *v3.Matrix) error {
	if top == nil {
		return CError{ErrNilData, []string{"TopologyWriteTo"}}
	}
	doc := new(jsonTopology)
	for i := 0; i < top.Len(); i++ {
		at := top.Atom(i)
		doc.Atoms = append(doc.Atoms, jsonAtom{Symbol: at.Symbol, Name: at.Name, Mass: at.Mass, Charge: at.Charge, Sigma: at.Sigma, Epsilon: at.Epsilon})
	}
	for _, b := range top.Bonds() {
		doc.Bonds = append(doc.Bonds, jsonBond{Atoms: [2]int{b.At1, b.At2}, R0: b.R0, K: b.K, Constrained: b.Constrained})
	}
	for _, a := range top.Angles() {
		doc.Angles = append(doc.Angles, jsonAngle{Atoms: [3]int{a.At1, a.At2, a.At3}, Theta0: a.Theta0, K: a.K})
	}
	for _, t := range top.Torsions() {
		doc.Torsions = append(doc.Torsions, jsonTorsion{Atoms: [4]int{t.At1, t.At2, t.At3, t.At4}, Mult: t.Mult, Phase: t.Phase, K: t.K})
	}
	if coords != nil {
		if coords.NVecs() != top.Len() {
			return CError{ErrInconsistent, []string{"TopologyWriteTo: coords don't match atoms"}}
		}
		for i := 0; i < coords.NVecs(); i++ {
			doc.Coords = append(doc.Coords, coords.At(i, 0), coords.At(i, 1), coords.At(i, 2))
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	return enc.Encode(doc)
}

//errDecorate asserts that the error implements Error and decorates it with
//the caller's name before returning it. Panics on other error types; only
//to be used with errors known to come from this library.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}
