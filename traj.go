/*
 * traj.go, part of gomd.
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

	v3 "github.com/rmera/gomd/v3"
)

//MemTraj is an in-memory trajectory: an ordered sequence of position frames
//sharing one atom count. It implements both Traj and TrajW, so it can be used
//as a reporter sink in tests and as a source for analysis.
type MemTraj struct {
	natoms  int
	frames  []*v3.Matrix
	steps   []uint64
	current int
}

//NewMemTraj returns an empty in-memory trajectory for natoms atoms.
func NewMemTraj(natoms int) *MemTraj {
	return &MemTraj{natoms: natoms}
}

//WNext appends a copy of coord as the next frame. It checks the frame
//atom-count invariant against the trajectory's.
func (M *MemTraj) WNext(step uint64, coord *v3.Matrix) error {
	if coord == nil {
		return CError{ErrNilData, []string{"MemTraj.WNext"}}
	}
	if coord.NVecs() != M.natoms {
		return CError{fmt.Sprintf("Frame has %d atoms, the trajectory holds %d", coord.NVecs(), M.natoms), []string{"MemTraj.WNext"}}
	}
	kept := v3.Zeros(M.natoms)
	kept.Copy(coord)
	M.frames = append(M.frames, kept)
	M.steps = append(M.steps, step)
	return nil
}

//Readable returns true as long as frames remain to be read.
func (M *MemTraj) Readable() bool {
	return M != nil && M.current < len(M.frames)
}

//Next puts the next frame in output (or skips it if output is nil) and
//returns the step it was recorded at.
func (M *MemTraj) Next(output *v3.Matrix) (uint64, error) {
	if M.current >= len(M.frames) {
		return 0, lastFrameError{}
	}
	step := M.steps[M.current]
	if output != nil {
		output.Copy(M.frames[M.current])
	}
	M.current++
	return step, nil
}

//Rewind makes the trajectory readable from the beginning again.
func (M *MemTraj) Rewind() {
	M.current = 0
}

//Len returns the number of atoms per frame.
func (M *MemTraj) Len() int {
	return M.natoms
}

//Frames returns the number of frames currently stored.
func (M *MemTraj) Frames() int {
	return len(M.frames)
}

//lastFrameError implements LastFrameError for the in-memory trajectory.
type lastFrameError struct {
	deco []string
}

func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) FileName() string { return "" }

func (E lastFrameError) Format() string { return "mem" }

func (E lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}
