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

package vm

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// ErrInputRequired is returned by Run when the program tries to read from an
// empty input stream.
var ErrInputRequired = errors.New("input required")

// ParseError reports a malformed value in program text.
type ParseError struct {
	Index int    // 0-based position of the value in the program text
	Token string // offending token
	Err   error  // underlying strconv error
}

func (e *ParseError) Error() string {
	err := e.Err
	if ne, ok := err.(*strconv.NumError); ok {
		err = ne.Err
	}
	return "parse error at value #" + strconv.Itoa(e.Index) + " " + strconv.Quote(e.Token) + ": " + err.Error()
}

// Cause returns the underlying error.
func (e *ParseError) Cause() error { return e.Err }

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Err }

// FaultKind identifies the reason of a Fault.
type FaultKind int

// Fault kinds.
const (
	InvalidOpcode FaultKind = iota + 1
	InvalidMode
	InvalidAddress
)

func (k FaultKind) String() string {
	switch k {
	case InvalidOpcode:
		return "invalid opcode"
	case InvalidMode:
		return "invalid parameter mode"
	case InvalidAddress:
		return "invalid address"
	default:
		return "FaultKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Fault is a fatal execution error. The instance that raised it is aborted
// and cannot be resumed.
type Fault struct {
	Kind        FaultKind
	PC          int         // address of the faulting instruction
	Instruction Instruction // faulting instruction
	Operand     int         // 0-based operand index, -1 if not operand related
	Addr        int         // offending address for InvalidAddress
}

func (f *Fault) Error() string {
	switch f.Kind {
	case InvalidOpcode:
		return fmt.Sprintf("%v %d @pc=%d", f.Kind, f.Instruction.Opcode(), f.PC)
	case InvalidMode:
		return fmt.Sprintf("%v %d for operand %d of %d @pc=%d", f.Kind, f.Instruction.Mode(f.Operand), f.Operand, f.Instruction, f.PC)
	default:
		return fmt.Sprintf("%v %d @pc=%d", f.Kind, f.Addr, f.PC)
	}
}
