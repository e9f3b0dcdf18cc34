/*
 * langevin.go, part of gomd.
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

//Package dyn propagates a topology through time: a Langevin integrator with
//bond constraints, a steepest-descent minimizer, and a phase-ordered driver
//that runs minimization, equilibration and production while feeding interval
//reporters.
package dyn

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	md "github.com/rmera/gomd"
	"github.com/rmera/gomd/ff"
	v3 "github.com/rmera/gomd/v3"
)

//Forcer computes the potential energy at pos, in kJ/mol, and writes the
//corresponding forces. ff.Evaluator satisfies it; tests use simpler ones.
type Forcer interface {
	Evaluate(pos, forces *v3.Matrix) (float64, error)
}

//Langevin integrates the Langevin equation of motion with the stochastic
//Euler-like scheme
//
//	v <- c1 v + (dt/m) F + sqrt(kB T (1-c1^2)/m) xi
//	x <- x + dt v
//
//where c1 = exp(-friction*dt) and xi is a standard normal variate per
//component. With zero friction the noise vanishes and the scheme reduces to
//the symplectic Euler method, which conserves energy up to a bounded error.
//Constrained bond lengths are restored after each position update.
type Langevin struct {
	forcer  Forcer
	top     *md.Topology
	masses  []float64
	dt      float64 //ps
	temp    float64 //K
	gamma   float64 //1/ps
	c1      float64
	sigma   []float64 //per-atom thermal noise amplitude
	normal  distuv.Normal
	cons    *Constraints
	goOn    bool //keep going on constraint failure
	log     *logrus.Logger
	forces  *v3.Matrix
	prevpos *v3.Matrix
}

//NewLangevin returns an integrator over f for the given topology. dt is the
//timestep in ps, temperature the target temperature in K and friction the
//collision frequency in 1/ps; zero friction turns the thermostat off. src
//seeds the thermal noise, so runs with the same source are reproducible.
func NewLangevin(f Forcer, top *md.Topology, dt, temperature, friction float64, src rand.Source) (*Langevin, error) {
	if f == nil || top == nil {
		return nil, Error{md.ErrNilData, []string{"NewLangevin"}}
	}
	if dt <= 0 || temperature < 0 || friction < 0 {
		return nil, Error{fmt.Sprintf("dyn: invalid integrator parameters dt=%v T=%v friction=%v", dt, temperature, friction), []string{"NewLangevin"}}
	}
	masses, err := top.Masses()
	if err != nil {
		return nil, errDecorate(err, "NewLangevin")
	}
	L := &Langevin{
		forcer: f,
		top:    top,
		masses: masses,
		dt:     dt,
		temp:   temperature,
		gamma:  friction,
		log:    logrus.StandardLogger(),
	}
	L.c1 = math.Exp(-friction * dt)
	L.sigma = make([]float64, top.Len())
	for i, m := range masses {
		L.sigma[i] = math.Sqrt(md.KB * temperature * (1 - L.c1*L.c1) / m)
	}
	L.normal = distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	L.forces = v3.Zeros(top.Len())
	L.prevpos = v3.Zeros(top.Len())
	return L, nil
}

//SetConstraints attaches a constraint solver to the integrator. If goOn is
//true a failure to converge is logged and the step is kept anyway, instead of
//aborting the run.
func (L *Langevin) SetConstraints(c *Constraints, goOn bool) {
	L.cons = c
	L.goOn = goOn
}

//SetLogger replaces the logger used for warnings.
func (L *Langevin) SetLogger(log *logrus.Logger) {
	if log != nil {
		L.log = log
	}
}

//Timestep returns the integration timestep, in ps.
func (L *Langevin) Timestep() float64 { return L.dt }

//Temperature returns the thermostat target temperature, in K.
func (L *Langevin) Temperature() float64 { return L.temp }

//InitVelocities overwrites the velocities of s with a Maxwell-Boltzmann
//sample at the target temperature: gaussian per component, net momentum
//removed, then rescaled so the kinetic temperature over the constrained
//degrees of freedom matches the target exactly.
func (L *Langevin) InitVelocities(s *md.State) {
	n := L.top.Len()
	for i := 0; i < n; i++ {
		amp := math.Sqrt(md.KB * L.temp / L.masses[i])
		for q := 0; q < 3; q++ {
			s.Vel.Set(i, q, amp*L.normal.Rand())
		}
	}
	//remove center of mass momentum
	var totmass float64
	var p [3]float64
	for i := 0; i < n; i++ {
		totmass += L.masses[i]
		for q := 0; q < 3; q++ {
			p[q] += L.masses[i] * s.Vel.At(i, q)
		}
	}
	for i := 0; i < n; i++ {
		for q := 0; q < 3; q++ {
			s.Vel.Set(i, q, s.Vel.At(i, q)-p[q]/totmass)
		}
	}
	if L.temp == 0 {
		s.Vel.Zero()
		return
	}
	current := md.KineticTemperature(s.Vel, L.masses, L.top.NDF())
	if current == 0 {
		//a single free particle has no motion left after momentum removal
		return
	}
	s.Vel.Scale(math.Sqrt(L.temp/current), s.Vel.Dense)
}

//Step advances s by one timestep and returns the potential energy at the
//positions the step started from. The step counter of s is incremented. A
//diverged state yields an ff.Instability; constraint failures yield a
//ConstraintError unless the integrator was told to continue on them.
func (L *Langevin) Step(s *md.State) (float64, error) {
	n := L.top.Len()
	epot, err := L.forcer.Evaluate(s.Pos, L.forces)
	if err != nil {
		return 0, errDecorate(err, fmt.Sprintf("Step %d", s.Step))
	}
	for i := 0; i < n; i++ {
		fact := L.dt / L.masses[i]
		for q := 0; q < 3; q++ {
			v := L.c1*s.Vel.At(i, q) + fact*L.forces.At(i, q)
			if L.sigma[i] > 0 {
				v += L.sigma[i] * L.normal.Rand()
			}
			s.Vel.Set(i, q, v)
		}
	}
	L.prevpos.Copy(s.Pos)
	for i := 0; i < n; i++ {
		for q := 0; q < 3; q++ {
			s.Pos.Set(i, q, s.Pos.At(i, q)+L.dt*s.Vel.At(i, q))
		}
	}
	if L.cons != nil {
		err = L.cons.Apply(L.prevpos, s.Pos, s.Vel, L.dt)
		if err != nil {
			if _, ok := err.(ConstraintError); ok && L.goOn {
				L.log.WithFields(logrus.Fields{"step": s.Step}).Warn(err.Error())
			} else {
				return 0, errDecorate(err, fmt.Sprintf("Step %d", s.Step))
			}
		}
	}
	s.Step++
	if !s.Pos.IsFinite() || !s.Vel.IsFinite() {
		return 0, ff.NewInstability(fmt.Sprintf("integration diverged at step %d", s.Step))
	}
	return epot, nil
}
