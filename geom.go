/*
 * geom.go, part of gomd.
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
	"fmt"
	"math"

	v3 "github.com/rmera/gomd/v3"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//VecAngle takes 2 vectors and calculates the angle in radians between them.
//It does not check for correctness or return errors!
func VecAngle(v1, v2 *v3.Matrix) float64 {
	normproduct := v1.Norm() * v2.Norm()
	argument := v3.Dot(v1, v2) / normproduct
	//Take care of floating point math errors
	if math.Abs(argument-1) <= appzero {
		argument = 1
	} else if math.Abs(argument+1) <= appzero {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

//Distance returns the euclidean distance between the first vectors of a and b.
func Distance(a, b *v3.Matrix) float64 {
	dx := a.At(0, 0) - b.At(0, 0)
	dy := a.At(0, 1) - b.At(0, 1)
	dz := a.At(0, 2) - b.At(0, 2)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

//Dihedral calculates the signed dihedral, in (-pi,pi], between the points
//a, b, c, d, where the first plane is defined by abc and the second by bcd.
//It returns a DegeneracyError if either triple is collinear, in which case
//the dihedral is undefined.
func Dihedral(a, b, c, d *v3.Matrix) (float64, error) {
	all := []*v3.Matrix{a, b, c, d}
	for number, point := range all {
		if point == nil {
			return 0, CError{ErrNilData, []string{"Dihedral"}}
		}
		pr, pc := point.Dims()
		if pr != 1 || pc != 3 {
			return 0, CError{ErrInconsistent, []string{fmt.Sprintf("Dihedral: vector %d has invalid shape", number)}}
		}
	}
	b1 := v3.Zeros(1)
	b2 := v3.Zeros(1)
	b3 := v3.Zeros(1)
	b1.Sub(b, a)
	b2.Sub(c, b)
	b3.Sub(d, c)
	n1 := v3.Zeros(1)
	n2 := v3.Zeros(1)
	n1.Cross(b1, b2)
	n2.Cross(b2, b3)
	if n1.Norm() <= appzero {
		return 0, NewDegeneracyError() //a, b, c collinear
	}
	if n2.Norm() <= appzero {
		return 0, NewDegeneracyError() //b, c, d collinear
	}
	m := v3.Zeros(1)
	m.Cross(n1, n2)
	y := v3.Dot(m, b2) / b2.Norm()
	x := v3.Dot(n1, n2)
	return math.Atan2(y, x), nil
}

//NewDegeneracyError returns a DegeneracyError for the given atom indices.
//Callers that know which atoms were involved should say so.
func NewDegeneracyError(atoms ...int) DegeneracyError {
	return DegeneracyError{atoms: atoms}
}
