/*
 * v3.go, part of gomd.
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

//Package v3 implements sets of 3D vectors as Nx3 matrices on top of
//gonum's mat.Dense. Within the package a "vector" is a row of such a matrix,
//i.e. the cartesian coordinates of one point in space.
package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space, implemented as an Nx3 dense matrix.
//It keeps every gonum mat.Dense method available.
type Matrix struct {
	*mat.Dense
}

//Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	const cols = 3
	return &Matrix{mat.NewDense(vecs, cols, make([]float64, cols*vecs))}
}

//NewMatrix generates a Matrix with 3 columns from data, which is arranged
//row-major. It returns an error if the length of data is not divisible by 3.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols = 3
	l := len(data)
	if l%cols != 0 {
		return nil, Error{fmt.Sprintf("Input slice length %d not divisible by %d", l, cols), []string{"NewMatrix"}, true}
	}
	return &Matrix{mat.NewDense(l/cols, cols, data)}, nil
}

//Dense2Matrix wraps a gonum Dense matrix into a Matrix. It panics if the
//matrix doesn't have 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	_, c := A.Dims()
	if c != 3 {
		panic(not3xXMatrix)
	}
	return &Matrix{A}
}

//Matrix2Dense returns the underlying gonum Dense matrix.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//METHODS

//NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(not3xXMatrix)
	}
	return r
}

//VecView returns a view of the ith vector of the matrix. Changes in the view
//are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

//View returns a view of F starting from i,j and spanning r rows and c columns.
func (F *Matrix) View(i, j, r, c int) *Matrix {
	ret := F.Dense.Slice(i, i+r, j, j+c).(*mat.Dense)
	return &Matrix{ret}
}

//SetVec sets the ith vector of F to the first vector of A.
func (F *Matrix) SetVec(i int, A *Matrix) {
	for k := 0; k < 3; k++ {
		F.Set(i, k, A.At(0, k))
	}
}

//AddVec adds the 1x3 vector vec to each vector of the matrix A, putting the
//result in the receiver. Panics if shapes are mismatched. It will not work if
//vec is a view of the receiver.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(mat.ErrShape)
	}
	for i := 0; i < ar; i++ {
		for k := 0; k < 3; k++ {
			F.Set(i, k, A.At(i, k)+vec.At(0, k))
		}
	}
}

//SubVec subtracts the 1x3 vector vec from each vector of the matrix A, putting
//the result in the receiver. Same restrictions as AddVec.
func (F *Matrix) SubVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(mat.ErrShape)
	}
	for i := 0; i < ar; i++ {
		for k := 0; k < 3; k++ {
			F.Set(i, k, A.At(i, k)-vec.At(0, k))
		}
	}
}

//Cross puts the cross product of the first vectors of a and b in the first
//vector of F. Panics on empty matrices.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() < 1 || b.NVecs() < 1 || F.NVecs() < 1 {
		panic("Invalid Matrix for cross product")
	}
	x := a.At(0, 1)*b.At(0, 2) - a.At(0, 2)*b.At(0, 1)
	y := a.At(0, 2)*b.At(0, 0) - a.At(0, 0)*b.At(0, 2)
	z := a.At(0, 0)*b.At(0, 1) - a.At(0, 1)*b.At(0, 0)
	F.Set(0, 0, x)
	F.Set(0, 1, y)
	F.Set(0, 2, z)
}

//Dot returns the dot product of the first vectors of a and b.
func Dot(a, b *Matrix) float64 {
	return a.At(0, 0)*b.At(0, 0) + a.At(0, 1)*b.At(0, 1) + a.At(0, 2)*b.At(0, 2)
}

//Norm returns the Frobenius norm of F. For a single vector this is its
//euclidean length.
func (F *Matrix) Norm() float64 {
	r, c := F.Dims()
	var sum float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := F.At(i, j)
			sum += v * v
		}
	}
	return math.Sqrt(sum)
}

//MaxAbs returns the largest absolute value among the elements of F.
func (F *Matrix) MaxAbs() float64 {
	r, c := F.Dims()
	var ret float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := math.Abs(F.At(i, j)); v > ret {
				ret = v
			}
		}
	}
	return ret
}

//Unit puts a normalized copy of A in the receiver. Panics (through the
//division) if A has zero norm; callers must check degeneracy themselves.
func (F *Matrix) Unit(A *Matrix) {
	if F.Dense != A.Dense {
		F.Copy(A)
	}
	norm := 1.0 / F.Norm()
	F.Scale(norm, F.Dense)
}

//IsFinite returns false if any element of F is NaN or infinite.
func (F *Matrix) IsFinite() bool {
	r, c := F.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := F.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

//String returns a neat string representation of a Matrix.
func (F *Matrix) String() string {
	r, _ := F.Dims()
	ret := "\n["
	for i := 0; i < r; i++ {
		ret += fmt.Sprintf(" %6.2f %6.2f %6.2f\n", F.At(i, 0), F.At(i, 1), F.At(i, 2))
	}
	return ret + " ]"
}

const not3xXMatrix = "v3: Matrix must have 3 columns"

//Error is the error type for the v3 package, implementing md.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string { return fmt.Sprintf("gomd/v3: %s", err.message) }

//Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Critical returns whether the error is critical.
func (err Error) Critical() bool { return err.critical }
