/*
 * run.go, part of gomd.
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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	md "github.com/rmera/gomd"
	"github.com/rmera/gomd/config"
	"github.com/rmera/gomd/dyn"
	"github.com/rmera/gomd/ff"
	"github.com/rmera/gomd/traj/mtf"
	v3 "github.com/rmera/gomd/v3"
)

var (
	runConfig   string
	runTopology string
	runDemo     string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Minimize, equilibrate and produce a trajectory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if runConfig != "" {
			var err error
			if cfg, err = config.Load(runConfig); err != nil {
				return err
			}
		}
		top, pos, err := loadSystem()
		if err != nil {
			return err
		}
		logrus.WithFields(logrus.Fields{
			"atoms":       top.Len(),
			"constraints": len(top.Constrained()),
			"temperature": cfg.Temperature,
		}).Info("system loaded")

		E, err := ff.New(top, cfg.Cutoff)
		if err != nil {
			return err
		}
		L, err := dyn.NewLangevin(E, top, cfg.Timestep, cfg.Temperature, cfg.Friction, rand.NewSource(cfg.Seed))
		if err != nil {
			return err
		}
		if len(top.Constrained()) > 0 {
			C, err := dyn.NewConstraints(top, cfg.Constraints.Tolerance, cfg.Constraints.MaxIterations)
			if err != nil {
				return err
			}
			L.SetConstraints(C, cfg.Constraints.ContinueOnFailure)
		}
		D, err := dyn.NewDriver(top, pos, L)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := D.Minimize(cfg.Minimize.MaxIterations, cfg.Minimize.ForceTolerance); err != nil {
			return err
		}
		logrus.WithField("steps", cfg.Equilibration.Steps).Info("equilibrating")
		if err := D.Equilibrate(ctx, cfg.Equilibration.Steps); err != nil {
			return err
		}
		//the trajectory and progress reports cover production only
		W, err := mtf.NewWriter(cfg.Report.Trajectory, top.Len(), mtf.FlagNone)
		if err != nil {
			return err
		}
		traj, err := dyn.NewTrajectory(W, cfg.Production.TrajectoryInterval)
		if err != nil {
			return err
		}
		prog, err := dyn.NewProgress(os.Stdout, cfg.Production.ProgressInterval, cfg.Report.Delimiter, top, cfg.Timestep)
		if err != nil {
			return err
		}
		D.AddReporter(traj)
		D.AddReporter(prog)
		logrus.WithField("steps", cfg.Production.Steps).Info("producing")
		if err := D.Produce(ctx, cfg.Production.Steps); err != nil {
			return err
		}
		logrus.WithField("trajectory", cfg.Report.Trajectory).Info("run finished")
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runConfig, "config", "c", "", "YAML run settings (defaults used if absent)")
	runCmd.Flags().StringVarP(&runTopology, "topology", "t", "", "JSON topology with coordinates")
	runCmd.Flags().StringVar(&runDemo, "demo", "", "use a built-in system instead of a topology file (ethane, butane)")
}

func loadSystem() (*md.Topology, *v3.Matrix, error) {
	switch {
	case runDemo != "":
		top, pos, err := demoSystem(runDemo)
		return top, pos, err
	case runTopology != "":
		top, pos, err := md.TopologyRead(runTopology)
		if err != nil {
			return nil, nil, err
		}
		if pos == nil {
			return nil, nil, fmt.Errorf("topology %s carries no coordinates", runTopology)
		}
		return top, pos, nil
	}
	return nil, nil, fmt.Errorf("either --topology or --demo is required")
}

func demoSystem(name string) (*md.Topology, *v3.Matrix, error) {
	switch name {
	case "ethane":
		top, pos := md.Ethane(true)
		return top, pos, nil
	case "butane":
		top, pos := md.ButaneUA()
		return top, pos, nil
	}
	return nil, nil, fmt.Errorf("unknown demo system %q (want ethane or butane)", name)
}
