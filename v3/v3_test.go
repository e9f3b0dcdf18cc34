/*
 * v3_test.go, part of gomd.
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

package v3

import (
	"math"
	"testing"
)

func TestNewMatrix(t *testing.T) {
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatal(err)
	}
	if A.NVecs() != 2 || A.At(1, 2) != 6 {
		t.Errorf("matrix built wrong: %v", A)
	}
	if _, err := NewMatrix([]float64{1, 2, 3, 4}); err == nil {
		t.Error("slice of length 4 accepted")
	}
}

func TestVecViewIsAView(t *testing.T) {
	A := Zeros(3)
	view := A.VecView(1)
	view.Set(0, 2, 7)
	if A.At(1, 2) != 7 {
		t.Error("writing through the view did not reach the matrix")
	}
	A.Set(1, 0, 5)
	if view.At(0, 0) != 5 {
		t.Error("writing to the matrix did not reach the view")
	}
}

func TestCrossDot(t *testing.T) {
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	z := Zeros(1)
	z.Cross(x, y)
	if z.At(0, 0) != 0 || z.At(0, 1) != 0 || z.At(0, 2) != 1 {
		t.Errorf("x cross y = %v, want z", z)
	}
	if Dot(x, y) != 0 || Dot(z, z) != 1 {
		t.Error("dot products wrong")
	}
}

func TestAddSubVec(t *testing.T) {
	A, _ := NewMatrix([]float64{1, 1, 1, 2, 2, 2})
	vec, _ := NewMatrix([]float64{1, 0, -1})
	B := Zeros(2)
	B.AddVec(A, vec)
	if B.At(0, 0) != 2 || B.At(1, 2) != 1 {
		t.Errorf("AddVec gave %v", B)
	}
	B.SubVec(B, vec)
	for i := 0; i < 2; i++ {
		for q := 0; q < 3; q++ {
			if B.At(i, q) != A.At(i, q) {
				t.Fatalf("SubVec did not undo AddVec: %v", B)
			}
		}
	}
}

func TestNormUnit(t *testing.T) {
	v, _ := NewMatrix([]float64{3, 0, 4})
	if v.Norm() != 5 {
		t.Errorf("norm %g, want 5", v.Norm())
	}
	u := Zeros(1)
	u.Unit(v)
	if math.Abs(u.Norm()-1) > 1e-12 {
		t.Errorf("unit vector has norm %g", u.Norm())
	}
	if math.Abs(u.At(0, 2)-0.8) > 1e-12 {
		t.Errorf("unit vector is %v", u)
	}
}

func TestMaxAbsIsFinite(t *testing.T) {
	A, _ := NewMatrix([]float64{1, -9, 2})
	if A.MaxAbs() != 9 {
		t.Errorf("MaxAbs %g, want 9", A.MaxAbs())
	}
	if !A.IsFinite() {
		t.Error("finite matrix reported as not finite")
	}
	A.Set(0, 1, math.NaN())
	if A.IsFinite() {
		t.Error("NaN not detected")
	}
	A.Set(0, 1, math.Inf(1))
	if A.IsFinite() {
		t.Error("Inf not detected")
	}
}
