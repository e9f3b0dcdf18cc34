/*
 * analysis_test.go, part of gomd.
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

package analysis

import (
	"math"
	"path/filepath"
	"testing"

	md "github.com/rmera/gomd"
	v3 "github.com/rmera/gomd/v3"
)

//quadFrame builds a 4-atom frame whose dihedral 0-1-2-3 is atan2(z, y):
//atoms 0-2 fixed, atom 3 at (0.1, y, z).
func quadFrame(y, z float64) *v3.Matrix {
	pos := v3.Zeros(4)
	pos.Set(0, 1, 0.1) //atom 0 at (0, 0.1, 0)
	pos.Set(2, 0, 0.1) //atom 1 at origin, atom 2 at (0.1, 0, 0)
	pos.Set(3, 0, 0.1)
	pos.Set(3, 1, y)
	pos.Set(3, 2, z)
	return pos
}

func TestDistanceSeries(t *testing.T) {
	mem := md.NewMemTraj(2)
	want := []float64{0.1, 0.2, 0.35}
	for f, d := range want {
		frame := v3.Zeros(2)
		frame.Set(1, 0, d)
		if err := mem.WNext(uint64(10*f), frame); err != nil {
			t.Fatal(err)
		}
	}
	S, err := Distance(mem, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if S.Frames() != len(want) {
		t.Fatalf("got %d samples, want %d", S.Frames(), len(want))
	}
	for f, d := range want {
		if math.Abs(S.Values[f]-d) > 1e-12 {
			t.Errorf("frame %d: distance %g, want %g", f, S.Values[f], d)
		}
		if S.Steps[f] != uint64(10*f) {
			t.Errorf("frame %d recorded at step %d, want %d", f, S.Steps[f], 10*f)
		}
	}
	mean := (0.1 + 0.2 + 0.35) / 3
	if math.Abs(S.Mean()-mean) > 1e-12 {
		t.Errorf("mean %g, want %g", S.Mean(), mean)
	}
	min, max := S.MinMax()
	if min != 0.1 || max != 0.35 {
		t.Errorf("min/max %g/%g, want 0.1/0.35", min, max)
	}
}

func TestDihedralSeries(t *testing.T) {
	cases := []struct{ y, z float64 }{
		{-0.1, 0},  //trans, pi
		{0, 0.1},   //pi/2
		{-0.1, 0.1},
		{0.1, -0.05},
	}
	mem := md.NewMemTraj(4)
	for f, c := range cases {
		if err := mem.WNext(uint64(f), quadFrame(c.y, c.z)); err != nil {
			t.Fatal(err)
		}
	}
	S, err := Dihedral(mem, 0, 1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if S.Frames() != len(cases) {
		t.Fatalf("got %d samples, want %d", S.Frames(), len(cases))
	}
	for f, c := range cases {
		want := math.Atan2(c.z, c.y)
		if math.Abs(S.Values[f]-want) > 1e-9 {
			t.Errorf("frame %d: dihedral %g, want %g", f, S.Values[f], want)
		}
	}
}

func TestDihedralDegenerate(t *testing.T) {
	mem := md.NewMemTraj(4)
	if err := mem.WNext(0, quadFrame(-0.1, 0)); err != nil {
		t.Fatal(err)
	}
	//atom 3 on the 1-2 axis: the second plane is undefined
	if err := mem.WNext(1, quadFrame(0, 0)); err != nil {
		t.Fatal(err)
	}
	_, err := Dihedral(mem, 0, 1, 2, 3)
	if err == nil {
		t.Fatal("expected an error for the degenerate frame")
	}
	aerr, ok := err.(Error)
	if !ok {
		t.Fatalf("expected an analysis.Error, got %T: %v", err, err)
	}
	if aerr.Frame() != 1 {
		t.Errorf("error points at frame %d, want 1", aerr.Frame())
	}
	if len(aerr.Atoms()) != 4 {
		t.Errorf("error carries atoms %v, want four", aerr.Atoms())
	}
}

func TestBadIndexes(t *testing.T) {
	mem := md.NewMemTraj(3)
	if _, err := Distance(mem, 0, 3); err == nil {
		t.Error("expected an out-of-range error")
	}
	if _, err := Dihedral(mem, -1, 0, 1, 2); err == nil {
		t.Error("expected an out-of-range error")
	}
}

func TestPlot(t *testing.T) {
	mem := md.NewMemTraj(2)
	for f := 0; f < 20; f++ {
		frame := v3.Zeros(2)
		frame.Set(1, 0, 0.15+0.01*math.Sin(float64(f)))
		if err := mem.WNext(uint64(f*100), frame); err != nil {
			t.Fatal(err)
		}
	}
	S, err := Distance(mem, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	filename := filepath.Join(t.TempDir(), "dist.png")
	if err := Plot(S, 2e-4, "C-C distance", "distance (nm)", filename); err != nil {
		t.Fatal(err)
	}
}
