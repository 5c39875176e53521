// This file is part of intcode - https://github.com/db47h/intcode
//
// Copyright 2019 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/vm"
)

// ErrAsm is the error type returned by Assemble. Each entry points to the
// source position of the error.
type ErrAsm []struct {
	Pos scanner.Position
	Msg string
}

func (e ErrAsm) Error() string {
	var b strings.Builder
	for n, err := range e {
		if n > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Pos.String())
		b.WriteString(": ")
		b.WriteString(err.Msg)
	}
	return b.String()
}

func (e ErrAsm) sort() {
	sort.SliceStable(e, func(i, j int) bool {
		return e[i].Pos.Offset < e[j].Pos.Offset
	})
}

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// The name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (vm.Image, error) {
	return newParser().Parse(name, r)
}

// decode returns the instruction at pc or false if the cell at pc is not a
// valid instruction word.
func decode(c vm.Cell) (vm.Instruction, bool) {
	if c < 0 {
		return 0, false
	}
	ins := vm.Instruction(c)
	op := ins.Opcode()
	if !op.Valid() {
		return 0, false
	}
	n := op.Arity()
	for k := 0; k < n; k++ {
		switch ins.Mode(k) {
		case vm.Position, vm.Relative:
		case vm.Immediate:
			if isWrite(op, k) {
				return 0, false
			}
		default:
			return 0, false
		}
	}
	// no extra digits after the last mode
	v := c / 100
	for ; n > 0; n-- {
		v /= 10
	}
	return ins, v == 0
}

// Disassemble writes a disassembly of the cell in the given image at position
// pc to the specified io.Writer and returns the position of the next
// instruction and any write error.
//
// Cells that do not hold a valid instruction are written as a .dat directive.
// Missing operands past the end of the image are written as "???".
func Disassemble(img vm.Image, pc int, w io.Writer) (next int, err error) {
	ew := iox.NewErrWriter(w)

	c := img[pc]
	ins, ok := decode(c)
	if !ok {
		io.WriteString(ew, ".dat ")
		io.WriteString(ew, strconv.FormatInt(int64(c), 10))
		return pc + 1, ew.Err
	}
	op := ins.Opcode()
	io.WriteString(ew, op.String())
	pc++
	for n := 0; n < op.Arity(); n, pc = n+1, pc+1 {
		ew.Write([]byte{' '})
		if pc >= len(img) {
			io.WriteString(ew, "???")
			continue
		}
		switch ins.Mode(n) {
		case vm.Immediate:
			ew.Write([]byte{'#'})
		case vm.Relative:
			ew.Write([]byte{'@'})
		}
		io.WriteString(ew, strconv.FormatInt(int64(img[pc]), 10))
	}
	return pc, ew.Err
}

// DisassembleAll writes a disassembly of all cells in the given image to
// the specified io.Writer. The base argument specifies the real address of the
// first cell (img[0]). It will return any write error.
func DisassembleAll(img vm.Image, base int, w io.Writer) error {
	ew := iox.NewErrWriter(w)
	for pc := 0; pc < len(img); {
		fmt.Fprintf(ew, "% 10d\t", base+pc)
		pc, _ = Disassemble(img, pc, ew)
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
