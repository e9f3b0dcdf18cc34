/*
 * config.go, part of gomd.
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

//Package config reads and validates the YAML run settings for a gomd
//simulation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//Config holds every knob of a simulation run. The zero value is not useful;
//start from Default.
type Config struct {
	Temperature float64 `yaml:"temperature"` //K
	Friction    float64 `yaml:"friction"`    //1/ps; 0 turns the thermostat off
	Timestep    float64 `yaml:"timestep"`    //ps
	Cutoff      float64 `yaml:"cutoff"`      //nm; 0 means no cutoff
	Seed        uint64  `yaml:"seed"`

	Minimize struct {
		MaxIterations  int     `yaml:"max_iterations"`
		ForceTolerance float64 `yaml:"force_tolerance"` //kJ/(mol nm)
	} `yaml:"minimize"`

	Constraints struct {
		Tolerance         float64 `yaml:"tolerance"` //nm
		MaxIterations     int     `yaml:"max_iterations"`
		ContinueOnFailure bool    `yaml:"continue_on_failure"`
	} `yaml:"constraints"`

	Equilibration struct {
		Steps int `yaml:"steps"`
	} `yaml:"equilibration"`

	Production struct {
		Steps              int `yaml:"steps"`
		TrajectoryInterval int `yaml:"trajectory_interval"` //steps between frames
		ProgressInterval   int `yaml:"progress_interval"`   //steps between report lines
	} `yaml:"production"`

	Report struct {
		Delimiter  string `yaml:"delimiter"`
		Trajectory string `yaml:"trajectory"` //output file; a trailing "z" compresses it
	} `yaml:"report"`
}

//Default returns a configuration with sensible settings for a small molecule
//at room temperature.
func Default() *Config {
	c := new(Config)
	c.Temperature = 300
	c.Friction = 5
	c.Timestep = 2e-4
	c.Seed = 1
	c.Minimize.MaxIterations = 2000
	c.Minimize.ForceTolerance = 10
	c.Constraints.Tolerance = 1e-8
	c.Constraints.MaxIterations = 100
	c.Equilibration.Steps = 5000
	c.Production.Steps = 50000
	c.Production.TrajectoryInterval = 100
	c.Production.ProgressInterval = 1000
	c.Report.Delimiter = "\t"
	c.Report.Trajectory = "traj.mtz"
	return c
}

//Load reads filename into a copy of the default configuration, so missing
//keys keep their default values, and validates the result.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	return c, nil
}

//Save writes the configuration to filename as YAML.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

//Validate returns an error describing the first nonsensical setting found,
//or nil.
func (c *Config) Validate() error {
	switch {
	case c.Timestep <= 0:
		return fmt.Errorf("timestep must be positive, got %v", c.Timestep)
	case c.Temperature < 0:
		return fmt.Errorf("temperature cannot be negative, got %v", c.Temperature)
	case c.Friction < 0:
		return fmt.Errorf("friction cannot be negative, got %v", c.Friction)
	case c.Cutoff < 0:
		return fmt.Errorf("cutoff cannot be negative, got %v", c.Cutoff)
	case c.Minimize.MaxIterations <= 0:
		return fmt.Errorf("minimize.max_iterations must be positive, got %d", c.Minimize.MaxIterations)
	case c.Minimize.ForceTolerance <= 0:
		return fmt.Errorf("minimize.force_tolerance must be positive, got %v", c.Minimize.ForceTolerance)
	case c.Constraints.Tolerance <= 0:
		return fmt.Errorf("constraints.tolerance must be positive, got %v", c.Constraints.Tolerance)
	case c.Constraints.MaxIterations <= 0:
		return fmt.Errorf("constraints.max_iterations must be positive, got %d", c.Constraints.MaxIterations)
	case c.Equilibration.Steps <= 0:
		return fmt.Errorf("equilibration.steps must be positive, got %d", c.Equilibration.Steps)
	case c.Production.Steps <= 0:
		return fmt.Errorf("production.steps must be positive, got %d", c.Production.Steps)
	case c.Production.TrajectoryInterval <= 0:
		return fmt.Errorf("production.trajectory_interval must be positive, got %d", c.Production.TrajectoryInterval)
	case c.Production.ProgressInterval <= 0:
		return fmt.Errorf("production.progress_interval must be positive, got %d", c.Production.ProgressInterval)
	case c.Report.Trajectory == "":
		return fmt.Errorf("report.trajectory cannot be empty")
	}
	return nil
}
