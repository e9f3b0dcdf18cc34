/*
 * initcmd.go, part of gomd.
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
	"os"

	"github.com/spf13/cobra"

	md "github.com/rmera/gomd"
	"github.com/rmera/gomd/config"
)

var initMolecule string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter run.yaml and topology.json to the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		top, pos, err := demoSystem(initMolecule)
		if err != nil {
			return err
		}
		if err := config.Default().Save("run.yaml"); err != nil {
			return err
		}
		f, err := os.Create("topology.json")
		if err != nil {
			return err
		}
		defer f.Close()
		if err := md.TopologyWriteTo(f, top, pos); err != nil {
			return err
		}
		fmt.Println("wrote run.yaml and topology.json; edit them and run:")
		fmt.Println("  gomd run -c run.yaml -t topology.json")
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&initMolecule, "molecule", "m", "ethane", "starter system (ethane, butane)")
}
