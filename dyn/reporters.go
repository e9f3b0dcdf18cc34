/*
 * reporters.go, part of gomd.
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

package dyn

import (
	"fmt"
	"io"
	"time"

	md "github.com/rmera/gomd"
)

//ProgressReporter writes one delimited text line per report with the step
//number, potential energy, kinetic temperature, simulation time and the wall
//clock integration speed in steps per second.
type ProgressReporter struct {
	w      io.Writer
	every  int
	delim  string
	dt     float64
	masses []float64
	ndf    int
	last   time.Time
	lastSt uint64
	header bool
}

//NewProgress returns a ProgressReporter over w reporting every the given
//number of steps. delim separates the fields; an empty delim means tabs.
func NewProgress(w io.Writer, every int, delim string, top *md.Topology, dt float64) (*ProgressReporter, error) {
	if w == nil || top == nil {
		return nil, Error{md.ErrNilData, []string{"NewProgress"}}
	}
	if every <= 0 || dt <= 0 {
		return nil, Error{fmt.Sprintf("dyn: invalid reporter parameters every=%d dt=%v", every, dt), []string{"NewProgress"}}
	}
	if delim == "" {
		delim = "\t"
	}
	masses, err := top.Masses()
	if err != nil {
		return nil, errDecorate(err, "NewProgress")
	}
	return &ProgressReporter{
		w:      w,
		every:  every,
		delim:  delim,
		dt:     dt,
		masses: masses,
		ndf:    top.NDF(),
	}, nil
}

//Every returns the reporting interval, in steps.
func (P *ProgressReporter) Every() int { return P.every }

//Report writes one progress line, preceded by the column header on first
//call. Energies are in kJ/mol, temperature in K, time in ps.
func (P *ProgressReporter) Report(s *md.State, epot float64) error {
	speed := 0.0
	now := time.Now()
	if !P.header {
		cols := []string{"step", "epot", "temperature", "time", "speed"}
		for i, c := range cols {
			if i > 0 {
				fmt.Fprint(P.w, P.delim)
			}
			fmt.Fprint(P.w, c)
		}
		fmt.Fprint(P.w, "\n")
		P.header = true
	} else if wall := now.Sub(P.last).Seconds(); wall > 0 {
		speed = float64(s.Step-P.lastSt) / wall
	}
	P.last = now
	P.lastSt = s.Step
	temp := md.KineticTemperature(s.Vel, P.masses, P.ndf)
	_, err := fmt.Fprintf(P.w, "%d%s%.4f%s%.2f%s%.4f%s%.0f\n",
		s.Step, P.delim, epot, P.delim, temp, P.delim, s.Time(P.dt), P.delim, speed)
	return err
}

//Close flushes nothing; the writer belongs to the caller.
func (P *ProgressReporter) Close() error { return nil }

//TrajectoryReporter appends reported frames to a trajectory writer.
type TrajectoryReporter struct {
	w     md.TrajW
	every int
}

//NewTrajectory returns a TrajectoryReporter writing to w every the given
//number of steps. If w also implements io.Closer, closing the reporter
//closes it.
func NewTrajectory(w md.TrajW, every int) (*TrajectoryReporter, error) {
	if w == nil {
		return nil, Error{md.ErrNilData, []string{"NewTrajectory"}}
	}
	if every <= 0 {
		return nil, Error{fmt.Sprintf("dyn: invalid reporting interval %d", every), []string{"NewTrajectory"}}
	}
	return &TrajectoryReporter{w: w, every: every}, nil
}

//Every returns the reporting interval, in steps.
func (T *TrajectoryReporter) Every() int { return T.every }

//Report appends the positions of s as a new frame.
func (T *TrajectoryReporter) Report(s *md.State, epot float64) error {
	return T.w.WNext(s.Step, s.Pos)
}

//Close closes the underlying trajectory writer, if it can be closed.
func (T *TrajectoryReporter) Close() error {
	if c, ok := T.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
