/*
 * analyze.go, part of gomd.
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

package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/rmera/gomd/analysis"
	"github.com/rmera/gomd/traj/mtf"
)

var (
	analyzeAtoms []int
	analyzePlot  string
	analyzeDt    float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze trajectory.mtf",
	Short: "Extract a distance or dihedral series from a trajectory",
	Long: `analyze reads an mtf trajectory and reports the time series of one
geometric observable: the distance between two atoms, or the dihedral over
four. Which one is decided by how many atoms are given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		R, err := mtf.New(args[0])
		if err != nil {
			return err
		}
		defer R.Close()
		var S *analysis.Series
		var what, unit string
		switch len(analyzeAtoms) {
		case 2:
			what, unit = "distance", "nm"
			S, err = analysis.Distance(R, analyzeAtoms[0], analyzeAtoms[1])
		case 4:
			what, unit = "dihedral", "deg"
			S, err = analysis.Dihedral(R, analyzeAtoms[0], analyzeAtoms[1], analyzeAtoms[2], analyzeAtoms[3])
			if S != nil {
				for i, v := range S.Values {
					S.Values[i] = v * 180 / math.Pi
				}
			}
		default:
			return fmt.Errorf("--atoms wants 2 atoms (distance) or 4 (dihedral), got %d", len(analyzeAtoms))
		}
		if err != nil {
			return err
		}
		min, max := S.MinMax()
		fmt.Printf("%s %v over %d frames: mean %.4f %s, std %.4f, min %.4f, max %.4f\n",
			what, analyzeAtoms, S.Frames(), S.Mean(), unit, S.StdDev(), min, max)
		if analyzePlot != "" {
			label := fmt.Sprintf("%s (%s)", what, unit)
			if err := analysis.Plot(S, analyzeDt, fmt.Sprintf("%s %v", what, analyzeAtoms), label, analyzePlot); err != nil {
				return err
			}
			fmt.Println("plot written to", analyzePlot)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().IntSliceVarP(&analyzeAtoms, "atoms", "a", nil, "atom indices, e.g. 0,1 or 0,1,2,3")
	analyzeCmd.Flags().StringVarP(&analyzePlot, "plot", "p", "", "write a plot to this file (format by extension)")
	analyzeCmd.Flags().Float64Var(&analyzeDt, "dt", 0, "timestep in ps, for a time axis on the plot")
}
