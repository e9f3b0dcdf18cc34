/*
 * xyz.go, part of gomd.
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

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/rmera/gomd/v3"
)

//XYZ is the only structure format this library speaks natively: it carries
//exactly what the engine needs from the outside (initial positions plus
//element symbols) and nothing else. Coordinates in the files are in nm, not
//in the Angstroms some other programs use.

//XYZRead reads an XYZ-formatted file, returning the coordinates, the element
//symbols in order, and an error or nil.
func XYZRead(filename string) (*v3.Matrix, []string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, CError{err.Error(), []string{"os.Open", "XYZRead"}}
	}
	defer f.Close()
	coords, symbols, err := XYZReadFrom(f)
	if err != nil {
		if e, ok := err.(Error); ok {
			e.Decorate("XYZRead: " + filename)
			return nil, nil, e
		}
	}
	return coords, symbols, err
}

//XYZReadFrom reads XYZ-formatted data from r.
func XYZReadFrom(r io.Reader) (*v3.Matrix, []string, error) {
	scan := bufio.NewScanner(r)
	if !scan.Scan() {
		return nil, nil, CError{ErrNotEnoughData, []string{"XYZReadFrom"}}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(scan.Text()))
	if err != nil || natoms <= 0 {
		return nil, nil, CError{fmt.Sprintf("Malformed atom count line: %q", scan.Text()), []string{"XYZReadFrom"}}
	}
	if !scan.Scan() {
		return nil, nil, CError{ErrNotEnoughData, []string{"XYZReadFrom"}}
	}
	//the comment line is discarded.
	coords := v3.Zeros(natoms)
	symbols := make([]string, natoms)
	for i := 0; i < natoms; i++ {
		if !scan.Scan() {
			return nil, nil, CError{fmt.Sprintf("File ends at atom %d of %d", i, natoms), []string{"XYZReadFrom"}}
		}
		fields := strings.Fields(scan.Text())
		if len(fields) < 4 {
			return nil, nil, CError{fmt.Sprintf("Malformed line for atom %d: %q", i, scan.Text()), []string{"XYZReadFrom"}}
		}
		symbols[i] = fields[0]
		for j := 0; j < 3; j++ {
			val, err := strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, nil, CError{fmt.Sprintf("Can't parse coordinate %d of atom %d: %s", j, i, err.Error()), []string{"XYZReadFrom"}}
			}
			coords.Set(i, j, val)
		}
	}
	return coords, symbols, scan.Err()
}

//XYZWrite writes coords and symbols to filename in XYZ format, with comment
//as the second line.
func XYZWrite(filename string, coords *v3.Matrix, symbols []string, comment string) error {
	f, err := os.Create(filename)
	if err != nil {
		return CError{err.Error(), []string{"os.Create", "XYZWrite"}}
	}
	defer f.Close()
	return XYZWriteTo(f, coords, symbols, comment)
}

//XYZWriteTo writes coords and symbols to w in XYZ format.
func XYZWriteTo(w io.Writer, coords *v3.Matrix, symbols []string, comment string) error {
	if coords == nil || symbols == nil {
		return CError{ErrNilData, []string{"XYZWriteTo"}}
	}
	n := coords.NVecs()
	if n != len(symbols) {
		return CError{fmt.Sprintf("%d coordinates but %d symbols", n, len(symbols)), []string{"XYZWriteTo"}}
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%s\n", n, comment)
	for i := 0; i < n; i++ {
		fmt.Fprintf(bw, "%-3s %12.7f %12.7f %12.7f\n", symbols[i], coords.At(i, 0), coords.At(i, 1), coords.At(i, 2))
	}
	return bw.Flush()
}
