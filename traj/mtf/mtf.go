/*
 * mtf.go, part of gomd.
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

//Package mtf implements the reading and writing of the minimal trajectory
//format, the native trajectory format of gomd. It is a little-endian binary
//format: a header with the atom count and a flags word (uint32 each),
//followed by frames, each a step number (uint64), the atom count again
//(uint32, a consistency check) and 3N float32 coordinates in nm, row major.
//Files with names ending in "z" are zstd-compressed with the same layout.
package mtf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	v3 "github.com/rmera/gomd/v3"
)

//Flags for the header flags word. None are defined yet; readers must carry
//unknown flags through without choking on them.
const FlagNone uint32 = 0

//MTF represents an mtf trajectory open for reading. It implements md.Traj.
type MTF struct {
	f        *os.File
	zr       *zstd.Decoder
	r        io.Reader
	natoms   int
	flags    uint32
	filename string
	offset   int64 //bytes of payload consumed so far, for error reports
	readable bool
}

//New opens the mtf trajectory in filename and reads its header, leaving the
//reader at the first frame.
func New(filename string) (*MTF, error) {
	M := &MTF{filename: filename}
	f, err := os.Open(filename)
	if err != nil {
		return nil, Error{err.Error(), filename, 0, []string{"New"}, true}
	}
	M.f = f
	if strings.HasSuffix(filename, "z") {
		M.zr, err = zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, Error{err.Error(), filename, 0, []string{"New"}, true}
		}
		M.r = bufio.NewReader(M.zr)
	} else {
		M.r = bufio.NewReader(f)
	}
	var header [2]uint32
	if err := M.read(&header); err != nil {
		M.Close()
		return nil, Error{"header truncated or missing", filename, M.offset, []string{"New"}, true}
	}
	if header[0] == 0 {
		M.Close()
		return nil, Error{"header declares zero atoms", filename, M.offset, []string{"New"}, true}
	}
	M.natoms = int(header[0])
	M.flags = header[1]
	M.readable = true
	return M, nil
}

//read wraps binary.Read, little endian, keeping the byte offset current.
func (M *MTF) read(data interface{}) error {
	err := binary.Read(M.r, binary.LittleEndian, data)
	if err == nil {
		M.offset += int64(binary.Size(data))
	}
	return err
}

//Readable returns true if the trajectory can still be read from (i.e. it is
//open and not past its last frame).
func (M *MTF) Readable() bool {
	return M.readable
}

//Len returns the number of atoms per frame.
func (M *MTF) Len() int {
	return M.natoms
}

//Flags returns the flags word of the header.
func (M *MTF) Flags() uint32 {
	return M.flags
}

//Next reads the next frame into output, which must have one row per atom,
//and returns the step number the frame was recorded at. If output is nil the
//frame is consumed and discarded. A wrongly shaped output is rejected before
//anything is read, so the frame stays available. At the end of the trajectory
//Next returns a LastFrameError; a frame cut short or inconsistent with the
//header yields a critical Error with the offending byte offset.
func (M *MTF) Next(output *v3.Matrix) (uint64, error) {
	if !M.readable {
		return 0, Error{"trajectory not readable", M.filename, M.offset, []string{"Next"}, true}
	}
	if output != nil && output.NVecs() != M.natoms {
		return 0, Error{fmt.Sprintf("output matrix has %d rows for %d atoms", output.NVecs(), M.natoms), M.filename, M.offset, []string{"Next"}, false}
	}
	var step uint64
	if err := M.read(&step); err != nil {
		M.readable = false
		if err == io.EOF {
			return 0, newlastFrameError(M.filename) //clean end, between frames
		}
		return 0, Error{"frame header truncated", M.filename, M.offset, []string{"Next"}, true}
	}
	var natoms uint32
	if err := M.read(&natoms); err != nil {
		M.readable = false
		return 0, Error{"frame header truncated", M.filename, M.offset, []string{"Next"}, true}
	}
	if int(natoms) != M.natoms {
		M.readable = false
		return 0, Error{fmt.Sprintf("frame declares %d atoms, header said %d", natoms, M.natoms), M.filename, M.offset, []string{"Next"}, true}
	}
	coords := make([]float32, 3*M.natoms)
	if err := M.read(coords); err != nil {
		M.readable = false
		return 0, Error{"frame coordinates truncated", M.filename, M.offset, []string{"Next"}, true}
	}
	if output == nil {
		return step, nil
	}
	for i := 0; i < M.natoms; i++ {
		for q := 0; q < 3; q++ {
			output.Set(i, q, float64(coords[3*i+q]))
		}
	}
	return step, nil
}

//Close closes the trajectory and its file. Further reads will fail.
func (M *MTF) Close() error {
	M.readable = false
	if M.zr != nil {
		M.zr.Close()
		M.zr = nil
	}
	if M.f == nil {
		return nil
	}
	err := M.f.Close()
	M.f = nil
	return err
}

//Errors

//Error is the error type for the mtf format, implementing md.TrajError. The
//offset is the position in the uncompressed byte stream at which the problem
//was found.
type Error struct {
	message  string
	filename string
	offset   int64
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("mtf file %s: %s (byte offset %d)", err.filename, err.message, err.offset)
}

//Decorate adds new information to the error.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file name of the trajectory which gave the error.
func (err Error) FileName() string { return err.filename }

//Format returns the format of the trajectory which gave the error.
func (err Error) Format() string { return "mtf" }

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

//Offset returns the position in the byte stream at which the problem was
//found.
func (err Error) Offset() int64 { return err.offset }

//lastFrameError implements md.LastFrameError.
type lastFrameError struct {
	deco     []string
	fileName string
}

//This is always false and exists only to satisfy the interface.
func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Format() string { return "mtf" }

func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) Error() string { return fmt.Sprintf("EOF in trajectory %s", E.fileName) }

func (E lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string) lastFrameError {
	return lastFrameError{fileName: filename}
}
