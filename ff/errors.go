/*
 * errors.go, part of gomd/ff.
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

package ff

import (
	"fmt"

	md "github.com/rmera/gomd"
)

//Error is the general error type of the package, implementing md.Error.
type Error struct {
	message string
	atoms   []int
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

//Instability reports an evaluation that would produce, or produced,
//non-finite energies or forces: overlapping atoms, or a diverged state fed
//back into the evaluator. It satisfies md.Error.
type Instability struct {
	cause string
	atoms []int
	deco  []string
}

func (err Instability) Error() string {
	if len(err.atoms) == 0 {
		return fmt.Sprintf("gomd/ff: numerical instability: %s", err.cause)
	}
	return fmt.Sprintf("gomd/ff: numerical instability: %s (atoms %v)", err.cause, err.atoms)
}

//Decorate adds new information to the error.
func (err Instability) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Atoms returns the indices of the atoms involved, if known.
func (err Instability) Atoms() []int { return err.atoms }

//NewInstability builds an Instability over the given atoms, for other
//packages that detect a divergence outside the evaluator itself.
func NewInstability(cause string, atoms ...int) Instability {
	return Instability{cause: cause, atoms: atoms}
}

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
