/*
 * minimize.go, part of gomd.
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

	md "github.com/rmera/gomd"
	v3 "github.com/rmera/gomd/v3"
)

//step size limits for the minimizer, in nm^2 mol/kJ.
const (
	minimStep0   = 1e-5
	minimStepMin = 1e-14
	minimStepMax = 1e-3
)

//Minimize relaxes pos in place by steepest descent with an adaptive step:
//moves that raise the energy are rejected and retried with half the step,
//accepted moves grow it again. It stops when the largest force component
//falls below forceTol (kJ/(mol nm)) or after maxIter accepted moves,
//whichever comes first; both count as success, since the caller only needs a
//reasonable starting structure. If cons is not nil its bonds are re-fixed
//after every accepted move. The energy never increases.
//
//It returns the final energy and the number of accepted moves.
func Minimize(f Forcer, cons *Constraints, pos *v3.Matrix, maxIter int, forceTol float64) (float64, int, error) {
	if f == nil || pos == nil {
		return 0, 0, Error{md.ErrNilData, []string{"Minimize"}}
	}
	if maxIter <= 0 || forceTol <= 0 {
		return 0, 0, Error{fmt.Sprintf("dyn: invalid minimizer parameters maxIter=%d forceTol=%v", maxIter, forceTol), []string{"Minimize"}}
	}
	n := pos.NVecs()
	forces := v3.Zeros(n)
	trial := v3.Zeros(n)
	trialF := v3.Zeros(n)
	energy, err := f.Evaluate(pos, forces)
	if err != nil {
		return 0, 0, errDecorate(err, "Minimize")
	}
	alpha := minimStep0
	accepted := 0
	for accepted < maxIter {
		if forces.MaxAbs() <= forceTol {
			break
		}
		trial.Copy(pos)
		for i := 0; i < n; i++ {
			for q := 0; q < 3; q++ {
				trial.Set(i, q, trial.At(i, q)+alpha*forces.At(i, q))
			}
		}
		if cons != nil {
			if err := cons.Apply(pos, trial, nil, 0); err != nil {
				return 0, 0, errDecorate(err, "Minimize")
			}
		}
		trialE, err := f.Evaluate(trial, trialF)
		if err != nil {
			//an overlap or degeneracy along the trial direction just means
			//the step was too ambitious.
			alpha /= 2
			if alpha < minimStepMin {
				break
			}
			continue
		}
		if trialE >= energy {
			alpha /= 2
			if alpha < minimStepMin {
				break //stuck at numerical precision, good enough
			}
			continue
		}
		pos.Copy(trial)
		forces.Copy(trialF)
		energy = trialE
		accepted++
		if alpha *= 1.2; alpha > minimStepMax {
			alpha = minimStepMax
		}
	}
	return energy, accepted, nil
}
