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

import "strconv"

// Opcode is the operation part of an instruction, i.e. the instruction value
// modulo 100.
type Opcode Cell

// Intcode Virtual Machine Opcodes.
const (
	OpAdd        Opcode = 1
	OpMul        Opcode = 2
	OpIn         Opcode = 3
	OpOut        Opcode = 4
	OpJumpTrue   Opcode = 5
	OpJumpFalse  Opcode = 6
	OpLess       Opcode = 7
	OpEqual      Opcode = 8
	OpAdjustBase Opcode = 9
	OpHalt       Opcode = 99
)

var opcodes = map[Opcode]struct {
	name  string
	arity int
}{
	OpAdd:        {"add", 3},
	OpMul:        {"mul", 3},
	OpIn:         {"in", 1},
	OpOut:        {"out", 1},
	OpJumpTrue:   {"jnz", 2},
	OpJumpFalse:  {"jz", 2},
	OpLess:       {"lt", 3},
	OpEqual:      {"eq", 3},
	OpAdjustBase: {"arb", 1},
	OpHalt:       {"hlt", 0},
}

var opcodeIndex = make(map[string]Opcode)

func init() {
	for op, v := range opcodes {
		opcodeIndex[v.name] = op
	}
}

// Valid returns true if op is a known opcode.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Arity returns the number of operands of op.
func (op Opcode) Arity() int {
	return opcodes[op].arity
}

// String returns the assembler mnemonic for op.
func (op Opcode) String() string {
	if v, ok := opcodes[op]; ok {
		return v.name
	}
	return "Opcode(" + strconv.Itoa(int(op)) + ")"
}

// LookupOpcode returns the opcode for the given mnemonic.
func LookupOpcode(name string) (Opcode, bool) {
	op, ok := opcodeIndex[name]
	return op, ok
}

// Mode is an operand addressing mode.
type Mode int

// Addressing modes.
const (
	Position  Mode = iota // operand is an address
	Immediate             // operand is a literal value
	Relative              // operand is an offset from the relocation base
)

// Instruction is an instruction word: the opcode in the two lowest decimal
// digits, followed by one mode digit per operand.
type Instruction Cell

// MakeInstruction encodes op and the given operand modes.
func MakeInstruction(op Opcode, modes ...Mode) Instruction {
	v := Cell(op)
	m := Cell(100)
	for _, md := range modes {
		v += Cell(md) * m
		m *= 10
	}
	return Instruction(v)
}

// Opcode returns the opcode of the instruction.
func (ins Instruction) Opcode() Opcode {
	return Opcode(ins % 100)
}

// Mode returns the addressing mode of operand n (0-based).
func (ins Instruction) Mode(n int) Mode {
	v := ins / 100
	for ; n > 0; n-- {
		v /= 10
	}
	return Mode(v % 10)
}
