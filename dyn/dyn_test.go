/*
 * dyn_test.go, part of gomd.
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
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"

	md "github.com/rmera/gomd"
	"github.com/rmera/gomd/ff"
	v3 "github.com/rmera/gomd/v3"
)

//a harmonic dimer with a known analytic solution.
func dimer(t *testing.T) (*md.Topology, *ff.Evaluator, *md.State) {
	t.Helper()
	atoms := []*md.Atom{
		{Index: 0, Symbol: "C", Mass: 12.0},
		{Index: 1, Symbol: "C", Mass: 12.0},
	}
	bonds := []*md.Bond{{At1: 0, At2: 1, R0: 0.15, K: 250000}}
	top, err := md.NewTopology(atoms, bonds, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	E, err := ff.New(top, 0)
	if err != nil {
		t.Fatal(err)
	}
	s := md.NewState(2)
	s.Pos.Set(1, 0, 0.16) //stretched 0.01 nm past equilibrium
	return top, E, s
}

func separation(s *md.State) float64 {
	return md.Distance(s.Pos.VecView(0), s.Pos.VecView(1))
}

//With zero friction the integrator is plain symplectic Euler; a harmonic
//dimer released from rest must come back to its starting point after one
//analytic period.
func TestDimerPeriod(t *testing.T) {
	top, E, s := dimer(t)
	mu := 6.0 //reduced mass
	omega := math.Sqrt(250000 / mu)
	period := 2 * math.Pi / omega
	steps := 2000
	dt := period / float64(steps)
	L, err := NewLangevin(E, top, dt, 0, 0, rand.NewSource(1))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < steps; i++ {
		if _, err := L.Step(s); err != nil {
			t.Fatal(err)
		}
	}
	if r := separation(s); math.Abs(r-0.16) > 5e-4 {
		t.Errorf("after one period the separation is %g, want 0.16", r)
	}
}

//Total energy with zero friction must stay within a few percent of its
//starting value.
func TestDimerEnergyConservation(t *testing.T) {
	top, E, s := dimer(t)
	masses, err := top.Masses()
	if err != nil {
		t.Fatal(err)
	}
	dt := 2 * math.Pi / math.Sqrt(250000/6.0) / 2000
	L, err := NewLangevin(E, top, dt, 0, 0, rand.NewSource(1))
	if err != nil {
		t.Fatal(err)
	}
	forces := v3.Zeros(2)
	epot, err := E.Evaluate(s.Pos, forces)
	if err != nil {
		t.Fatal(err)
	}
	e0 := epot + md.KineticEnergy(s.Vel, masses)
	for i := 0; i < 6000; i++ {
		if _, err := L.Step(s); err != nil {
			t.Fatal(err)
		}
		if i%100 != 0 {
			continue
		}
		epot, err = E.Evaluate(s.Pos, forces)
		if err != nil {
			t.Fatal(err)
		}
		etot := epot + md.KineticEnergy(s.Vel, masses)
		if math.Abs(etot-e0) > 0.05*e0 {
			t.Fatalf("energy drifted from %g to %g at step %d", e0, etot, i)
		}
	}
}

func TestInitVelocities(t *testing.T) {
	top, pos := md.ButaneUA()
	E, err := ff.New(top, 0)
	if err != nil {
		t.Fatal(err)
	}
	L, err := NewLangevin(E, top, 1e-4, 300, 0, rand.NewSource(7))
	if err != nil {
		t.Fatal(err)
	}
	s := md.NewState(top.Len())
	s.Pos.Copy(pos)
	L.InitVelocities(s)
	masses, _ := top.Masses()
	temp := md.KineticTemperature(s.Vel, masses, top.NDF())
	if math.Abs(temp-300) > 1e-6 {
		t.Errorf("initial kinetic temperature %g, want 300", temp)
	}
	var p [3]float64
	for i := 0; i < top.Len(); i++ {
		for q := 0; q < 3; q++ {
			p[q] += masses[i] * s.Vel.At(i, q)
		}
	}
	for q := 0; q < 3; q++ {
		if math.Abs(p[q]) > 1e-9 {
			t.Errorf("leftover momentum %v", p)
			break
		}
	}
}

//A single free particle carries no motion after momentum removal; the
//thermal rescale must not blow up on it.
func TestInitVelocitiesSingleAtom(t *testing.T) {
	atoms := []*md.Atom{{Index: 0, Symbol: "Ar", Mass: 39.948}}
	top, err := md.NewTopology(atoms, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	E, err := ff.New(top, 0)
	if err != nil {
		t.Fatal(err)
	}
	L, err := NewLangevin(E, top, 1e-4, 300, 5, rand.NewSource(2))
	if err != nil {
		t.Fatal(err)
	}
	s := md.NewState(1)
	L.InitVelocities(s)
	if !s.Vel.IsFinite() {
		t.Fatalf("non-finite velocities %v", s.Vel)
	}
	for q := 0; q < 3; q++ {
		if s.Vel.At(0, q) != 0 {
			t.Errorf("leftover velocity %v", s.Vel)
			break
		}
	}
}

//The thermostat must hold the butane bead model near the target temperature.
func TestThermostat(t *testing.T) {
	top, pos := md.ButaneUA()
	E, err := ff.New(top, 0)
	if err != nil {
		t.Fatal(err)
	}
	L, err := NewLangevin(E, top, 2e-4, 300, 20, rand.NewSource(42))
	if err != nil {
		t.Fatal(err)
	}
	s := md.NewState(top.Len())
	s.Pos.Copy(pos)
	L.InitVelocities(s)
	masses, _ := top.Masses()
	ndf := top.NDF()
	sum := 0.0
	count := 0
	for i := 0; i < 20000; i++ {
		if _, err := L.Step(s); err != nil {
			t.Fatal(err)
		}
		if i >= 5000 && i%10 == 0 {
			sum += md.KineticTemperature(s.Vel, masses, ndf)
			count++
		}
	}
	mean := sum / float64(count)
	if math.Abs(mean-300) > 45 {
		t.Errorf("mean temperature %g over %d samples, want 300 +- 45", mean, count)
	}
}

//Constrained C-H bonds must keep their length through a thermostatted run.
func TestConstrainedRun(t *testing.T) {
	top, pos := md.Ethane(true)
	E, err := ff.New(top, 0)
	if err != nil {
		t.Fatal(err)
	}
	C, err := NewConstraints(top, 1e-8, 100)
	if err != nil {
		t.Fatal(err)
	}
	if C.Len() != 6 {
		t.Fatalf("expected 6 constrained bonds, got %d", C.Len())
	}
	L, err := NewLangevin(E, top, 2e-4, 300, 5, rand.NewSource(3))
	if err != nil {
		t.Fatal(err)
	}
	L.SetConstraints(C, false)
	s := md.NewState(top.Len())
	s.Pos.Copy(pos)
	L.InitVelocities(s)
	for i := 0; i < 1000; i++ {
		if _, err := L.Step(s); err != nil {
			t.Fatal(err)
		}
	}
	for _, b := range top.Constrained() {
		r := md.Distance(s.Pos.VecView(b.At1), s.Pos.VecView(b.At2))
		if math.Abs(r-b.R0) > 1e-6 {
			t.Errorf("bond %d-%d drifted to %g, want %g", b.At1, b.At2, r, b.R0)
		}
	}
}

func TestConstraintNotConverged(t *testing.T) {
	top, pos := md.Ethane(true)
	C, err := NewConstraints(top, 1e-12, 1)
	if err != nil {
		t.Fatal(err)
	}
	ref := v3.Zeros(top.Len())
	ref.Copy(pos)
	//stretch one constrained bond far past its length
	pos.Set(2, 0, pos.At(2, 0)-0.05)
	err = C.Apply(ref, pos, nil, 0)
	if err == nil {
		t.Fatal("expected a convergence failure with a single iteration")
	}
	if _, ok := err.(ConstraintError); !ok {
		t.Fatalf("expected a ConstraintError, got %T: %v", err, err)
	}
}

//With continue-on-failure enabled, a constraint that cannot converge is
//warned about and the run keeps going instead of aborting.
func TestConstraintContinueOnFailure(t *testing.T) {
	top, pos := md.Ethane(true)
	E, err := ff.New(top, 0)
	if err != nil {
		t.Fatal(err)
	}
	C, err := NewConstraints(top, 1e-12, 1)
	if err != nil {
		t.Fatal(err)
	}
	L, err := NewLangevin(E, top, 2e-4, 300, 5, rand.NewSource(9))
	if err != nil {
		t.Fatal(err)
	}
	L.SetConstraints(C, true)
	log := logrus.New()
	var warnings bytes.Buffer
	log.SetOutput(&warnings)
	L.SetLogger(log)
	s := md.NewState(top.Len())
	s.Pos.Copy(pos)
	//stretch one constrained bond so a single iteration cannot restore it
	s.Pos.Set(2, 0, s.Pos.At(2, 0)-0.05)
	start := v3.Zeros(top.Len())
	start.Copy(s.Pos)
	for i := 0; i < 10; i++ {
		if _, err := L.Step(s); err != nil {
			t.Fatalf("step %d aborted: %v", i, err)
		}
	}
	if s.Step != 10 {
		t.Errorf("step counter at %d, want 10", s.Step)
	}
	diff := v3.Zeros(top.Len())
	diff.Sub(s.Pos, start)
	if diff.MaxAbs() == 0 {
		t.Error("positions did not advance")
	}
	if !strings.Contains(warnings.String(), "not converged") {
		t.Errorf("no convergence warning logged, got %q", warnings.String())
	}
}

func TestMinimize(t *testing.T) {
	top, pos := md.ButaneUA()
	//spoil the geometry
	for i := 0; i < top.Len(); i++ {
		for q := 0; q < 3; q++ {
			pos.Set(i, q, pos.At(i, q)+0.01*math.Sin(float64(5*i+q)))
		}
	}
	E, err := ff.New(top, 0)
	if err != nil {
		t.Fatal(err)
	}
	forces := v3.Zeros(top.Len())
	e0, err := E.Evaluate(pos, forces)
	if err != nil {
		t.Fatal(err)
	}
	energy, accepted, err := Minimize(E, nil, pos, 2000, 1.0)
	if err != nil {
		t.Fatal(err)
	}
	if accepted == 0 {
		t.Error("no accepted moves")
	}
	if energy >= e0 {
		t.Errorf("minimization did not lower the energy: %g >= %g", energy, e0)
	}
	efinal, err := E.Evaluate(pos, forces)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(efinal-energy) > 1e-9 {
		t.Errorf("reported energy %g does not match the final coordinates (%g)", energy, efinal)
	}
}

func TestDriverPhases(t *testing.T) {
	top, pos := md.Ethane(true)
	E, err := ff.New(top, 0)
	if err != nil {
		t.Fatal(err)
	}
	C, err := NewConstraints(top, 1e-8, 100)
	if err != nil {
		t.Fatal(err)
	}
	L, err := NewLangevin(E, top, 1e-4, 100, 5, rand.NewSource(11))
	if err != nil {
		t.Fatal(err)
	}
	L.SetConstraints(C, false)
	D, err := NewDriver(top, pos, L)
	if err != nil {
		t.Fatal(err)
	}
	if D.Phase() != Built {
		t.Fatalf("fresh driver in phase %v", D.Phase())
	}
	ctx := context.Background()
	//out of order
	if err := D.Equilibrate(ctx, 10); err == nil {
		t.Error("Equilibrate before Minimize should fail")
	} else if _, ok := err.(PhaseError); !ok {
		t.Errorf("expected a PhaseError, got %T", err)
	}
	if err := D.Produce(ctx, 10); err == nil {
		t.Error("Produce before Equilibrate should fail")
	}
	if err := D.Minimize(500, 100); err != nil {
		t.Fatal(err)
	}
	if D.Phase() != Minimized {
		t.Fatalf("phase %v after minimization", D.Phase())
	}
	if err := D.Equilibrate(ctx, 200); err != nil {
		t.Fatal(err)
	}
	//reporters installed for production only
	mem := md.NewMemTraj(top.Len())
	traj, err := NewTrajectory(mem, 100)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	prog, err := NewProgress(&buf, 100, " ", top, L.Timestep())
	if err != nil {
		t.Fatal(err)
	}
	D.AddReporter(traj)
	D.AddReporter(prog)
	if err := D.Produce(ctx, 400); err != nil {
		t.Fatal(err)
	}
	if D.Phase() != Produced {
		t.Fatalf("phase %v after production", D.Phase())
	}
	//production covers steps 201-600, so multiples of 100 are 300...600
	if mem.Frames() != 4 {
		t.Errorf("expected 4 frames, got %d", mem.Frames())
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 { //header plus four reports
		t.Errorf("expected 5 progress lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "step") {
		t.Errorf("missing header, got %q", lines[0])
	}
}

func TestDriverCancellation(t *testing.T) {
	top, pos := md.ButaneUA()
	E, err := ff.New(top, 0)
	if err != nil {
		t.Fatal(err)
	}
	L, err := NewLangevin(E, top, 1e-4, 100, 5, rand.NewSource(5))
	if err != nil {
		t.Fatal(err)
	}
	D, err := NewDriver(top, pos, L)
	if err != nil {
		t.Fatal(err)
	}
	if err := D.Minimize(100, 100); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := D.Equilibrate(ctx, 1000); err == nil {
		t.Fatal("expected a cancellation error")
	}
	if D.Phase() != Minimized {
		t.Errorf("cancelled run advanced the phase to %v", D.Phase())
	}
}
