/*
 * errors.go, part of gomd.
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

import "fmt"

// Error is the interface for errors that all packages in this library
// implement. The Decorate method allows adding information to the error as it
// travels up the call stack, without changing its type or wrapping it. Each
// call returns the current decoration slice; passing an empty string only
// queries it. Decorations should be function names, optionally followed by
// extra context: "FunctionName: extra info".
type Error interface {
	Error() string
	Decorate(string) []string
}

// TrajError is the interface for errors in trajectories.
type TrajError interface {
	Error
	Critical() bool
	FileName() string
	Format() string
}

// LastFrameError has a do-nothing method to distinguish the harmless
// end-of-trajectory condition from real trajectory errors, so it can be
// filtered with a type switch.
type LastFrameError interface {
	TrajError
	NormalLastFrameTermination()
}

//CError is the concrete error type used by this package. The concrete types of
//the subpackages carry additional context (file names and offsets, step and
//atom indices) but all satisfy the Error interface.
type CError struct {
	msg  string
	deco []string
}

func (err CError) Error() string { return err.msg }

//Decorate adds new information to the error.
func (err CError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//DegeneracyError reports a geometric query over (nearly) collinear atoms, for
//which the requested quantity is undefined. It identifies the offending atoms
//so the caller can reproduce the problem.
type DegeneracyError struct {
	atoms []int
	deco  []string
}

func (err DegeneracyError) Error() string {
	return fmt.Sprintf("gomd: degenerate geometry: atoms %v are collinear", err.atoms)
}

//Decorate adds new information to the error.
func (err DegeneracyError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Atoms returns the indices of the collinear atoms. The indices are only
//meaningful to the caller that issued the query; this package just carries
//them.
func (err DegeneracyError) Atoms() []int { return err.atoms }

//Messages commonly given to CError.
const (
	ErrNilData       = "gomd: Nil data given"
	ErrInconsistent  = "gomd: Inconsistent data given"
	ErrOutOfRange    = "gomd: Index out of range"
	ErrNotEnoughData = "gomd: Not enough data"
)
