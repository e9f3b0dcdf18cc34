/*
 * interfaces.go, part of gomd.
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

import v3 "github.com/rmera/gomd/v3"

// Traj is the interface for any trajectory object, whether read from a file
// or kept in memory. The same analysis code runs over both.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//Next reads the next frame into output, or discards it if output is nil.
	//It returns the step index the frame was recorded at. On a normal end of
	//trajectory the returned error satisfies LastFrameError.
	Next(output *v3.Matrix) (uint64, error)

	//Returns the number of atoms per frame.
	Len() int
}

// TrajW is the interface for anything a trajectory frame can be written to.
type TrajW interface {

	//WNext writes coord as the next frame, recorded at the given step.
	WNext(step uint64, coord *v3.Matrix) error

	//Returns the number of atoms per frame.
	Len() int
}

// Atomer is the basic read-only interface for a topology.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i. Should panic if out
	//of range.
	Atom(i int) *Atom

	Len() int
}

// Masser can return a slice with the masses of each atom in the reference.
type Masser interface {

	//Returns a slice with the masses of all atoms
	Masses() ([]float64, error)
}
