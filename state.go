/*
 * state.go, part of gomd.
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
	v3 "github.com/rmera/gomd/v3"
)

//State holds the mutable part of a simulation: positions, velocities and the
//step counter. A State belongs to exactly one owner (normally the dyn.Driver),
//which is the only one allowed to mutate it; everyone else gets copies.
type State struct {
	Pos  *v3.Matrix
	Vel  *v3.Matrix
	Step uint64
}

//NewState returns a State for natoms atoms, with zeroed positions and
//velocities.
func NewState(natoms int) *State {
	return &State{Pos: v3.Zeros(natoms), Vel: v3.Zeros(natoms), Step: 0}
}

//Len returns the number of atoms in the state.
func (S *State) Len() int {
	return S.Pos.NVecs()
}

//Copy returns a deep copy of the state, safe to hand to readers.
func (S *State) Copy() *State {
	n := S.Len()
	ret := NewState(n)
	ret.Pos.Copy(S.Pos)
	ret.Vel.Copy(S.Vel)
	ret.Step = S.Step
	return ret
}

//Time returns the simulation time for the state given the timestep, in ps.
func (S *State) Time(dt float64) float64 {
	return float64(S.Step) * dt
}

//KineticEnergy returns the kinetic energy, in kJ/mol, of the given velocities
//and masses. Panics if the slices are mismatched, as that means the caller
//mixed up topologies.
func KineticEnergy(vel *v3.Matrix, masses []float64) float64 {
	n := vel.NVecs()
	if n != len(masses) {
		panic("KineticEnergy: velocities and masses don't match")
	}
	var ke float64
	for i := 0; i < n; i++ {
		v2 := vel.At(i, 0)*vel.At(i, 0) + vel.At(i, 1)*vel.At(i, 1) + vel.At(i, 2)*vel.At(i, 2)
		ke += 0.5 * masses[i] * v2
	}
	return ke
}

//KineticTemperature returns the instantaneous temperature, in K, implied by
//the given velocities, masses and number of degrees of freedom.
func KineticTemperature(vel *v3.Matrix, masses []float64, ndf int) float64 {
	if ndf <= 0 {
		return 0
	}
	return 2 * KineticEnergy(vel, masses) / (float64(ndf) * KB)
}
