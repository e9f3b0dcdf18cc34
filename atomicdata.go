/*
 * atomicdata.go, part of gomd.
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

//A map for assigning mass to elements, in amu.
//Note that just common "bio-elements" are present.
var symbolMass = map[string]float64{
	"H":  1.008,
	"C":  12.011,
	"O":  15.999,
	"N":  14.007,
	"P":  30.974,
	"S":  32.06,
	"F":  18.998,
	"Cl": 35.45,
	"Br": 79.904,
	"Na": 22.99,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.305,
}

//SymbolMass returns the mass, in amu, for the given element symbol, and a
//false second return if the symbol is not in the internal table.
func SymbolMass(symbol string) (float64, bool) {
	m, ok := symbolMass[symbol]
	return m, ok
}
