/*
 * plot.go, part of gomd.
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

package analysis

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	md "github.com/rmera/gomd"
)

//Plot writes a time-series plot of S to filename; the format is taken from
//the extension (png, pdf, svg...). If dt is positive the horizontal axis is
//simulation time in ps, otherwise the raw step number.
func Plot(S *Series, dt float64, title, ylabel, filename string) error {
	if S == nil || len(S.Values) == 0 {
		return Error{md.ErrNotEnoughData, nil, -1, []string{"Plot"}}
	}
	pts := make(plotter.XYs, len(S.Values))
	for i, v := range S.Values {
		if dt > 0 {
			pts[i].X = float64(S.Steps[i]) * dt
		} else {
			pts[i].X = float64(S.Steps[i])
		}
		pts[i].Y = v
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel
	if dt > 0 {
		p.X.Label.Text = "time (ps)"
	} else {
		p.X.Label.Text = "step"
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return Error{err.Error(), nil, -1, []string{"Plot"}}
	}
	line.Color = color.RGBA{B: 255, A: 255}
	p.Add(line)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return Error{err.Error(), nil, -1, []string{"Plot"}}
	}
	return nil
}
