/*
 * doc.go, part of gomd.
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

//Package md provides the topology and state model for a small
//molecular-dynamics engine, plus geometric functions over coordinate sets and
//facilities for exchanging topologies and coordinates with external programs.
//
//Units are fixed across the whole module: distances in nm, time in ps, masses
//in amu (g/mol), energies in kJ/mol and charges in proton charges. The
//corresponding Boltzmann constant and Coulomb prefactor are exported as KB and
//CoulombK.
//
//The actual machinery lives in the subpackages: ff evaluates energies
//and forces, dyn integrates, minimizes and drives a simulation, traj/mtf
//reads and writes binary trajectories and analysis post-processes them.
package md
