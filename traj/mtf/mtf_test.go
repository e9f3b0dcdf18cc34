/*
 * mtf_test.go, part of gomd.
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

package mtf

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	md "github.com/rmera/gomd"
	v3 "github.com/rmera/gomd/v3"
)

func testFrames(natoms, nframes int) []*v3.Matrix {
	frames := make([]*v3.Matrix, nframes)
	for f := range frames {
		frames[f] = v3.Zeros(natoms)
		for i := 0; i < natoms; i++ {
			for q := 0; q < 3; q++ {
				frames[f].Set(i, q, float64(f)+0.01*float64(3*i+q))
			}
		}
	}
	return frames
}

func roundTrip(t *testing.T, filename string) {
	t.Helper()
	const natoms = 5
	frames := testFrames(natoms, 3)
	W, err := NewWriter(filename, natoms, FlagNone)
	if err != nil {
		t.Fatal(err)
	}
	for f, frame := range frames {
		if err := W.WNext(uint64(100*(f+1)), frame); err != nil {
			t.Fatal(err)
		}
	}
	if W.Frames() != 3 {
		t.Errorf("writer reports %d frames", W.Frames())
	}
	if err := W.Close(); err != nil {
		t.Fatal(err)
	}
	R, err := New(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer R.Close()
	if R.Len() != natoms {
		t.Fatalf("reader has %d atoms, want %d", R.Len(), natoms)
	}
	if R.Flags() != FlagNone {
		t.Errorf("flags word %d, want %d", R.Flags(), FlagNone)
	}
	got := v3.Zeros(natoms)
	for f, frame := range frames {
		if !R.Readable() {
			t.Fatalf("trajectory not readable before frame %d", f)
		}
		step, err := R.Next(got)
		if err != nil {
			t.Fatal(err)
		}
		if step != uint64(100*(f+1)) {
			t.Errorf("frame %d has step %d, want %d", f, step, 100*(f+1))
		}
		for i := 0; i < natoms; i++ {
			for q := 0; q < 3; q++ {
				//the payload is float32
				if math.Abs(got.At(i, q)-frame.At(i, q)) > 1e-5 {
					t.Fatalf("frame %d coordinate %d,%d read back as %g, want %g", f, i, q, got.At(i, q), frame.At(i, q))
				}
			}
		}
	}
	_, err = R.Next(got)
	if err == nil {
		t.Fatal("expected an end-of-trajectory error")
	}
	if _, ok := err.(md.LastFrameError); !ok {
		t.Fatalf("expected a LastFrameError, got %T: %v", err, err)
	}
	if R.Readable() {
		t.Error("trajectory still readable past its last frame")
	}
}

func TestRoundTrip(t *testing.T) {
	roundTrip(t, filepath.Join(t.TempDir(), "traj.mtf"))
}

func TestRoundTripCompressed(t *testing.T) {
	roundTrip(t, filepath.Join(t.TempDir(), "traj.mtz"))
}

func TestTruncatedFrame(t *testing.T) {
	dir := t.TempDir()
	whole := filepath.Join(dir, "whole.mtf")
	const natoms = 4
	frames := testFrames(natoms, 2)
	W, err := NewWriter(whole, natoms, FlagNone)
	if err != nil {
		t.Fatal(err)
	}
	for f, frame := range frames {
		if err := W.WNext(uint64(f), frame); err != nil {
			t.Fatal(err)
		}
	}
	if err := W.Close(); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(whole)
	if err != nil {
		t.Fatal(err)
	}
	cut := filepath.Join(dir, "cut.mtf")
	if err := os.WriteFile(cut, raw[:len(raw)-5], 0644); err != nil {
		t.Fatal(err)
	}
	R, err := New(cut)
	if err != nil {
		t.Fatal(err)
	}
	defer R.Close()
	if _, err := R.Next(nil); err != nil {
		t.Fatalf("first frame should be whole: %v", err)
	}
	_, err = R.Next(nil)
	if err == nil {
		t.Fatal("expected an error on the truncated frame")
	}
	terr, ok := err.(Error)
	if !ok {
		t.Fatalf("expected an mtf.Error, got %T: %v", err, err)
	}
	if !terr.Critical() {
		t.Error("a truncated frame should be critical")
	}
	if terr.Offset() == 0 {
		t.Error("corruption error carries no byte offset")
	}
	if R.Readable() {
		t.Error("trajectory still readable after corruption")
	}
}

//A wrongly shaped output matrix must be rejected without consuming the
//frame, so a corrected retry still gets it.
func TestWrongShapeKeepsFrame(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "traj.mtf")
	const natoms = 5
	frames := testFrames(natoms, 2)
	W, err := NewWriter(filename, natoms, FlagNone)
	if err != nil {
		t.Fatal(err)
	}
	for f, frame := range frames {
		if err := W.WNext(uint64(f+1), frame); err != nil {
			t.Fatal(err)
		}
	}
	if err := W.Close(); err != nil {
		t.Fatal(err)
	}
	R, err := New(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer R.Close()
	small := v3.Zeros(natoms - 1)
	_, err = R.Next(small)
	if err == nil {
		t.Fatal("expected an error for a wrongly shaped output")
	}
	if terr, ok := err.(Error); !ok || terr.Critical() {
		t.Fatalf("expected a non-critical mtf.Error, got %T: %v", err, err)
	}
	if !R.Readable() {
		t.Fatal("a shape mismatch should leave the trajectory readable")
	}
	got := v3.Zeros(natoms)
	step, err := R.Next(got)
	if err != nil {
		t.Fatal(err)
	}
	if step != 1 {
		t.Errorf("retry read frame at step %d, want 1", step)
	}
}

func TestInconsistentFrame(t *testing.T) {
	//a frame whose atom count disagrees with the header
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, [2]uint32{2, 0})        //header
	binary.Write(&buf, binary.LittleEndian, uint64(7))              //step
	binary.Write(&buf, binary.LittleEndian, uint32(3))              //wrong atom count
	binary.Write(&buf, binary.LittleEndian, make([]float32, 9))     //its coordinates
	filename := filepath.Join(t.TempDir(), "bad.mtf")
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	R, err := New(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer R.Close()
	_, err = R.Next(nil)
	if err == nil {
		t.Fatal("expected an error on the inconsistent frame")
	}
	if terr, ok := err.(Error); !ok || !terr.Critical() {
		t.Fatalf("expected a critical mtf.Error, got %T: %v", err, err)
	}
}

func TestEmptyHeader(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "empty.mtf")
	if err := os.WriteFile(filename, []byte{1, 2, 3}, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(filename); err == nil {
		t.Fatal("expected an error for a truncated header")
	}
}
