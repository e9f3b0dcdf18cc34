/*
 * config_test.go, part of gomd.
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadPartial(t *testing.T) {
	//missing keys fall back to the defaults
	filename := filepath.Join(t.TempDir(), "run.yaml")
	text := []byte("temperature: 250\nproduction:\n  steps: 1000\n")
	require.NoError(t, os.WriteFile(filename, text, 0644))
	c, err := Load(filename)
	require.NoError(t, err)
	assert.Equal(t, 250.0, c.Temperature)
	assert.Equal(t, 1000, c.Production.Steps)
	d := Default()
	assert.Equal(t, d.Timestep, c.Timestep)
	assert.Equal(t, d.Production.TrajectoryInterval, c.Production.TrajectoryInterval)
	assert.Equal(t, d.Report.Trajectory, c.Report.Trajectory)
}

func TestLoadInvalid(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(filename, []byte("timestep: -1\n"), 0644))
	_, err := Load(filename)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "run.yaml")
	c := Default()
	c.Seed = 42
	c.Friction = 0
	require.NoError(t, c.Save(filename))
	back, err := Load(filename)
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestValidateCatches(t *testing.T) {
	for _, spoil := range []func(*Config){
		func(c *Config) { c.Timestep = 0 },
		func(c *Config) { c.Temperature = -1 },
		func(c *Config) { c.Friction = -2 },
		func(c *Config) { c.Cutoff = -0.5 },
		func(c *Config) { c.Minimize.MaxIterations = 0 },
		func(c *Config) { c.Constraints.Tolerance = 0 },
		func(c *Config) { c.Production.Steps = -1 },
		func(c *Config) { c.Report.Trajectory = "" },
	} {
		c := Default()
		spoil(c)
		assert.Error(t, c.Validate())
	}
}
