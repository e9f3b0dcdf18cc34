/*
 * driver.go, part of gomd.
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
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	md "github.com/rmera/gomd"
	v3 "github.com/rmera/gomd/v3"
)

//Phase is the stage a simulation has reached. Phases advance in a fixed
//order; each Driver method is only valid in one of them.
type Phase int

const (
	Built Phase = iota
	Minimized
	Equilibrated
	Produced
)

func (p Phase) String() string {
	switch p {
	case Built:
		return "built"
	case Minimized:
		return "minimized"
	case Equilibrated:
		return "equilibrated"
	case Produced:
		return "produced"
	}
	return fmt.Sprintf("unknown phase %d", int(p))
}

//PhaseError reports a simulation stage requested out of order. It satisfies
//md.Error.
type PhaseError struct {
	op   string
	want Phase
	got  Phase
	deco []string
}

func (err PhaseError) Error() string {
	return fmt.Sprintf("gomd/dyn: %s requires a %s simulation, but it is %s", err.op, err.want, err.got)
}

//Decorate adds new information to the error.
func (err PhaseError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Reporter receives periodic snapshots of a running simulation. Every returns
//the interval, in steps, at which the reporter wants to be called. The state
//handed to Report is a copy, so the reporter may keep or mutate it.
type Reporter interface {
	Every() int
	Report(s *md.State, epot float64) error
	Close() error
}

//Driver walks one system through the standard simulation protocol:
//minimization, then a thermalization stretch, then a production stretch with
//reporting. The phases are enforced in that order.
type Driver struct {
	top       *md.Topology
	integ     *Langevin
	state     *md.State
	phase     Phase
	reporters []Reporter
	log       *logrus.Logger
}

//NewDriver returns a Driver for the topology starting at the coordinates
//pos, which are copied. The integrator carries the Forcer and any
//constraints.
func NewDriver(top *md.Topology, pos *v3.Matrix, integ *Langevin) (*Driver, error) {
	if top == nil || pos == nil || integ == nil {
		return nil, Error{md.ErrNilData, []string{"NewDriver"}}
	}
	if pos.NVecs() != top.Len() {
		return nil, Error{fmt.Sprintf("dyn: %d coordinates for %d atoms", pos.NVecs(), top.Len()), []string{"NewDriver"}}
	}
	st := md.NewState(top.Len())
	st.Pos.Copy(pos)
	return &Driver{
		top:   top,
		integ: integ,
		state: st,
		phase: Built,
		log:   logrus.StandardLogger(),
	}, nil
}

//SetLogger replaces the logger used for progress messages.
func (D *Driver) SetLogger(log *logrus.Logger) {
	if log != nil {
		D.log = log
		D.integ.SetLogger(log)
	}
}

//Phase returns the current phase of the simulation.
func (D *Driver) Phase() Phase { return D.phase }

//State returns a copy of the current state.
func (D *Driver) State() *md.State { return D.state.Copy() }

//AddReporter registers r to be called every r.Every() steps of the following
//equilibration or production stretches. Reporters for one phase are not
//cleared for the next automatically; swapping them between phases is up to
//the caller, through ClearReporters.
func (D *Driver) AddReporter(r Reporter) {
	if r != nil {
		D.reporters = append(D.reporters, r)
	}
}

//ClearReporters closes and drops every registered reporter.
func (D *Driver) ClearReporters() error {
	var first error
	for _, r := range D.reporters {
		if err := r.Close(); err != nil && first == nil {
			first = err
		}
	}
	D.reporters = nil
	return first
}

//Minimize relaxes the starting coordinates (see the package Minimize
//function) and advances the phase to Minimized.
func (D *Driver) Minimize(maxIter int, forceTol float64) error {
	if D.phase != Built {
		return PhaseError{op: "Minimize", want: Built, got: D.phase}
	}
	var cons *Constraints
	if D.integ.cons != nil && D.integ.cons.Len() > 0 {
		cons = D.integ.cons
	}
	energy, accepted, err := Minimize(D.integ.forcer, cons, D.state.Pos, maxIter, forceTol)
	if err != nil {
		return errDecorate(err, "Driver.Minimize")
	}
	D.log.WithFields(logrus.Fields{"moves": accepted, "energy": energy}).Info("minimization done")
	D.phase = Minimized
	return nil
}

//Equilibrate draws fresh thermal velocities and integrates for the given
//number of steps, advancing the phase to Equilibrated. The context is
//checked between steps; cancellation aborts the run with the context's error
//and leaves the phase untouched.
func (D *Driver) Equilibrate(ctx context.Context, steps int) error {
	if D.phase != Minimized {
		return PhaseError{op: "Equilibrate", want: Minimized, got: D.phase}
	}
	D.integ.InitVelocities(D.state)
	if err := D.run(ctx, steps); err != nil {
		return errDecorate(err, "Equilibrate")
	}
	D.phase = Equilibrated
	return nil
}

//Produce integrates for the given number of steps, dispatching every
//registered reporter at its interval, and advances the phase to Produced.
//All reporters are closed when the run ends, normally or not.
func (D *Driver) Produce(ctx context.Context, steps int) error {
	if D.phase != Equilibrated {
		return PhaseError{op: "Produce", want: Equilibrated, got: D.phase}
	}
	err := D.run(ctx, steps)
	if cerr := D.ClearReporters(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return errDecorate(err, "Produce")
	}
	D.phase = Produced
	return nil
}

func (D *Driver) run(ctx context.Context, steps int) error {
	if steps <= 0 {
		return Error{fmt.Sprintf("dyn: invalid number of steps %d", steps), []string{"run"}}
	}
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		epot, err := D.integ.Step(D.state)
		if err != nil {
			return err
		}
		for _, r := range D.reporters {
			if every := r.Every(); every <= 0 || D.state.Step%uint64(every) != 0 {
				continue
			}
			if err := r.Report(D.state.Copy(), epot); err != nil {
				return err
			}
		}
	}
	return nil
}
