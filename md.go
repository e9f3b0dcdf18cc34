/*
 * md.go, part of gomd.
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

import "fmt"

//Physical constants in the units of the module (nm, ps, amu, kJ/mol, e).
const (
	//KB is the Boltzmann constant in kJ/(mol K).
	KB = 0.00831446261815324
	//CoulombK is the electrostatic prefactor 1/(4 pi eps0) in kJ nm/(mol e^2).
	CoulombK = 138.935457
)

/**Note: Some functions here panic instead of returning errors, following the
 * same convention as the rest of the library: these are "fundamental" accessors
 * where an out-of-bounds index means the program itself is wrong, so crashing
 * is the appropriate response.**/

//Atom contains the per-particle information of a topology: identity, mass,
//partial charge and Lennard-Jones parameters. The coordinates are kept
//separately, in a v3.Matrix.
type Atom struct {
	Index   int     //0-based, stable for the lifetime of the topology
	Symbol  string  //element symbol, or a site name for coarse-grained beads
	Name    string  //atom name within the molecule ("C1", "H12"...)
	Mass    float64 //amu
	Charge  float64 //partial charge, in proton charges
	Sigma   float64 //Lennard-Jones sigma, nm
	Epsilon float64 //Lennard-Jones epsilon, kJ/mol
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	at := new(Atom)
	*at = *A
	return at
}

//Bond is a harmonic bond between two atoms. If Constrained is true the bond is
//kept at R0 by the constraint solver instead of contributing a harmonic term,
//which removes its vibrational degree of freedom from the integration.
type Bond struct {
	At1, At2    int     //atom indices, unordered pair
	R0          float64 //equilibrium length, nm
	K           float64 //force constant, kJ/(mol nm^2)
	Constrained bool
}

//Cross returns the index at the other end of the bond from origin.
//Panics if origin is not part of the bond, as that has to be a programming
//error.
func (B *Bond) Cross(origin int) int {
	if origin == B.At1 {
		return B.At2
	}
	if origin == B.At2 {
		return B.At1
	}
	panic("Trying to cross a bond: the origin atom given is not present in the bond")
}

//Angle is a harmonic valence angle. At2 is the vertex.
type Angle struct {
	At1, At2, At3 int
	Theta0        float64 //equilibrium angle, radians
	K             float64 //kJ/(mol rad^2)
}

//Torsion is one periodic dihedral term over an ordered quadruple of atoms.
//Several terms over the same quadruple are allowed and add up.
type Torsion struct {
	At1, At2, At3, At4 int
	Mult               int     //periodicity n
	Phase              float64 //phase phi0, radians
	K                  float64 //kJ/mol
}

/*****Topology type***/

//Topology is the immutable description of a simulated system: atoms plus the
//bonded interaction terms among them. It is built once, from whatever external
//source, and never mutated afterwards.
type Topology struct {
	atoms    []*Atom
	bonds    []*Bond
	angles   []*Angle
	torsions []*Torsion
}

//NewTopology builds a Topology from its parts. It checks that the atom slice
//is not nil, that atom indices are contiguous from 0, and that every index
//referenced by a bond, angle or torsion exists. Angles and torsions may be nil.
func NewTopology(atoms []*Atom, bonds []*Bond, angles []*Angle, torsions []*Torsion) (*Topology, error) {
	if atoms == nil {
		return nil, CError{"Supplied a nil atom slice", []string{"NewTopology"}}
	}
	for i, at := range atoms {
		if at == nil {
			return nil, CError{fmt.Sprintf("Atom %d is nil", i), []string{"NewTopology"}}
		}
		if at.Index != i {
			return nil, CError{fmt.Sprintf("Atom indices not contiguous from 0: position %d holds index %d", i, at.Index), []string{"NewTopology"}}
		}
	}
	n := len(atoms)
	check := func(kind string, indices ...int) error {
		for _, j := range indices {
			if j < 0 || j >= n {
				return CError{fmt.Sprintf("%s references atom %d, but the topology has %d atoms", kind, j, n), []string{"NewTopology"}}
			}
		}
		return nil
	}
	for _, b := range bonds {
		if err := check("Bond", b.At1, b.At2); err != nil {
			return nil, err
		}
	}
	for _, a := range angles {
		if err := check("Angle", a.At1, a.At2, a.At3); err != nil {
			return nil, err
		}
	}
	for _, t := range torsions {
		if err := check("Torsion", t.At1, t.At2, t.At3, t.At4); err != nil {
			return nil, err
		}
	}
	top := new(Topology)
	top.atoms = atoms
	top.bonds = bonds
	top.angles = angles
	top.torsions = torsions
	return top, nil
}

/*Topology methods*/

//Atom returns the Atom corresponding to the index i. Panics if out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.atoms[i]
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.atoms)
}

//Bonds returns the bonds of the topology, constrained ones included.
func (T *Topology) Bonds() []*Bond {
	return T.bonds
}

//Angles returns the valence angles of the topology.
func (T *Topology) Angles() []*Angle {
	return T.angles
}

//Torsions returns the dihedral terms of the topology.
func (T *Topology) Torsions() []*Torsion {
	return T.torsions
}

//Constrained returns the bonds flagged as constrained, in topology order.
func (T *Topology) Constrained() []*Bond {
	var ret []*Bond
	for _, b := range T.bonds {
		if b.Constrained {
			ret = append(ret, b)
		}
	}
	return ret
}

//Masses returns a slice with the masses of all atoms, and an error if any of
//them is missing (zero).
func (T *Topology) Masses() ([]float64, error) {
	mass := make([]float64, T.Len())
	for i := 0; i < T.Len(); i++ {
		at := T.Atom(i)
		if at.Mass <= 0 {
			return nil, CError{fmt.Sprintf("Atom %d (%s) has no mass", i, at.Symbol), []string{"Masses"}}
		}
		mass[i] = at.Mass
	}
	return mass, nil
}

//NDF returns the number of kinetic degrees of freedom of the topology: three
//per atom, minus one per constrained bond.
func (T *Topology) NDF() int {
	return 3*T.Len() - len(T.Constrained())
}
