/*
 * analysis.go, part of gomd.
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

//Package analysis extracts per-frame geometric observables from
//trajectories.
package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	md "github.com/rmera/gomd"
	v3 "github.com/rmera/gomd/v3"
)

//Series is one observable sampled along a trajectory, keeping the step at
//which each value was recorded.
type Series struct {
	Steps  []uint64
	Values []float64
}

//Frames returns the number of samples in the series.
func (S *Series) Frames() int { return len(S.Values) }

//Mean returns the arithmetic mean of the series.
func (S *Series) Mean() float64 { return stat.Mean(S.Values, nil) }

//StdDev returns the sample standard deviation of the series.
func (S *Series) StdDev() float64 { return stat.StdDev(S.Values, nil) }

//MinMax returns the smallest and largest values in the series.
func (S *Series) MinMax() (float64, float64) {
	if len(S.Values) == 0 {
		return 0, 0
	}
	min, max := S.Values[0], S.Values[0]
	for _, v := range S.Values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

//Distance reads traj to its end and returns the distance, in nm, between
//atoms at1 and at2 in every frame.
func Distance(traj md.Traj, at1, at2 int) (*Series, error) {
	if err := checkIndexes(traj, at1, at2); err != nil {
		return nil, errDecorate(err, "Distance")
	}
	S := new(Series)
	buf := v3.Zeros(traj.Len())
	err := eachFrame(traj, buf, func(step uint64, frame int) error {
		S.Steps = append(S.Steps, step)
		S.Values = append(S.Values, md.Distance(buf.VecView(at1), buf.VecView(at2)))
		return nil
	})
	if err != nil {
		return nil, errDecorate(err, "Distance")
	}
	return S, nil
}

//Dihedral reads traj to its end and returns the dihedral defined by the
//atoms at1-at2-at3-at4, in radians in (-pi,pi], in every frame. A frame in
//which the dihedral is undefined aborts the read with an error identifying
//the frame.
func Dihedral(traj md.Traj, at1, at2, at3, at4 int) (*Series, error) {
	if err := checkIndexes(traj, at1, at2, at3, at4); err != nil {
		return nil, errDecorate(err, "Dihedral")
	}
	S := new(Series)
	buf := v3.Zeros(traj.Len())
	err := eachFrame(traj, buf, func(step uint64, frame int) error {
		phi, err := md.Dihedral(buf.VecView(at1), buf.VecView(at2), buf.VecView(at3), buf.VecView(at4))
		if err != nil {
			if _, ok := err.(md.DegeneracyError); ok {
				return Error{fmt.Sprintf("analysis: dihedral %d-%d-%d-%d undefined in frame %d (step %d)", at1, at2, at3, at4, frame, step), []int{at1, at2, at3, at4}, frame, nil}
			}
			return err
		}
		S.Steps = append(S.Steps, step)
		S.Values = append(S.Values, phi)
		return nil
	})
	if err != nil {
		return nil, errDecorate(err, "Dihedral")
	}
	return S, nil
}

//eachFrame reads every remaining frame of traj into buf and calls f on it.
//The end of the trajectory is not an error.
func eachFrame(traj md.Traj, buf *v3.Matrix, f func(step uint64, frame int) error) error {
	for frame := 0; traj.Readable(); frame++ {
		step, err := traj.Next(buf)
		if err != nil {
			if _, ok := err.(md.LastFrameError); ok {
				return nil
			}
			return err
		}
		if err := f(step, frame); err != nil {
			return err
		}
	}
	return nil
}

func checkIndexes(traj md.Traj, atoms ...int) error {
	if traj == nil {
		return Error{md.ErrNilData, nil, -1, nil}
	}
	for _, a := range atoms {
		if a < 0 || a >= traj.Len() {
			return Error{fmt.Sprintf("analysis: atom %d out of range for a %d-atom trajectory", a, traj.Len()), atoms, -1, nil}
		}
	}
	return nil
}

//Error is the error type of the package, implementing md.Error. It carries
//the atoms queried and, when the problem belongs to one frame, that frame.
type Error struct {
	message string
	atoms   []int
	frame   int
	deco    []string
}

func (err Error) Error() string { return err.message }

//Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Atoms returns the atoms the failing query was over.
func (err Error) Atoms() []int { return err.atoms }

//Frame returns the frame at which the problem appeared, or -1 if it is not
//tied to one.
func (err Error) Frame() int { return err.frame }

//errDecorate decorates an error if it implements md.Error, and passes it
//through unchanged otherwise.
func errDecorate(err error, caller string) error {
	err2, ok := err.(md.Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
