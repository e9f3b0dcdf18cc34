/*
 * mtf_write.go, part of gomd.
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

package mtf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	v3 "github.com/rmera/gomd/v3"
)

//MTFW represents an mtf trajectory open for writing. It implements md.TrajW
//and io.Closer; nothing is guaranteed to be on disk until Close.
type MTFW struct {
	f        *os.File
	zw       *zstd.Encoder
	b        *bufio.Writer
	natoms   int
	filename string
	frames   int
}

//NewWriter creates filename and writes the mtf header for natoms atoms with
//the given flags word. A filename ending in "z" produces a zstd-compressed
//trajectory.
func NewWriter(filename string, natoms int, flags uint32) (*MTFW, error) {
	if natoms <= 0 {
		return nil, Error{fmt.Sprintf("cannot write a trajectory for %d atoms", natoms), filename, 0, []string{"NewWriter"}, true}
	}
	f, err := os.Create(filename)
	if err != nil {
		return nil, Error{err.Error(), filename, 0, []string{"NewWriter"}, true}
	}
	W := &MTFW{f: f, natoms: natoms, filename: filename}
	if strings.HasSuffix(filename, "z") {
		W.zw, err = zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, Error{err.Error(), filename, 0, []string{"NewWriter"}, true}
		}
		W.b = bufio.NewWriter(W.zw)
	} else {
		W.b = bufio.NewWriter(f)
	}
	header := [2]uint32{uint32(natoms), flags}
	if err := binary.Write(W.b, binary.LittleEndian, header); err != nil {
		W.Close()
		return nil, Error{err.Error(), filename, 0, []string{"NewWriter"}, true}
	}
	return W, nil
}

//Len returns the number of atoms per frame.
func (W *MTFW) Len() int {
	return W.natoms
}

//Frames returns the number of frames written so far.
func (W *MTFW) Frames() int {
	return W.frames
}

//WNext appends coord as a frame recorded at the given step number.
func (W *MTFW) WNext(step uint64, coord *v3.Matrix) error {
	if W.b == nil {
		return Error{"writing to a closed trajectory", W.filename, 0, []string{"WNext"}, true}
	}
	if coord == nil {
		return Error{"nil coordinates", W.filename, 0, []string{"WNext"}, true}
	}
	if coord.NVecs() != W.natoms {
		return Error{fmt.Sprintf("frame has %d atoms, the trajectory holds %d", coord.NVecs(), W.natoms), W.filename, 0, []string{"WNext"}, true}
	}
	if err := binary.Write(W.b, binary.LittleEndian, step); err != nil {
		return Error{err.Error(), W.filename, 0, []string{"WNext"}, true}
	}
	if err := binary.Write(W.b, binary.LittleEndian, uint32(W.natoms)); err != nil {
		return Error{err.Error(), W.filename, 0, []string{"WNext"}, true}
	}
	coords := make([]float32, 3*W.natoms)
	for i := 0; i < W.natoms; i++ {
		for q := 0; q < 3; q++ {
			coords[3*i+q] = float32(coord.At(i, q))
		}
	}
	if err := binary.Write(W.b, binary.LittleEndian, coords); err != nil {
		return Error{err.Error(), W.filename, 0, []string{"WNext"}, true}
	}
	W.frames++
	return nil
}

//Close flushes and closes the trajectory. It must be called for the file to
//be complete.
func (W *MTFW) Close() error {
	if W.f == nil {
		return nil
	}
	var first error
	if W.b != nil {
		first = W.b.Flush()
		W.b = nil
	}
	if W.zw != nil {
		if err := W.zw.Close(); err != nil && first == nil {
			first = err
		}
		W.zw = nil
	}
	if err := W.f.Close(); err != nil && first == nil {
		first = err
	}
	W.f = nil
	if first != nil {
		return Error{first.Error(), W.filename, 0, []string{"Close"}, true}
	}
	return nil
}
