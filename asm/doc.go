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

// Package asm provides utility functions to assemble and disassemble Intcode
// programs.
//
// Supported assembler mnemonics:
//
//	opcode	asm	operands	description
//	------	---	--------	-----------------------------------------------
//	1	add	a b dst		dst = a + b
//	2	mul	a b dst		dst = a * b
//	3	in	dst		dst = next value from the input stream
//	4	out	a		write a to the output stream
//	5	jnz	a t		jump to t if a != 0
//	6	jz	a t		jump to t if a == 0
//	7	lt	a b dst		dst = 1 if a < b, 0 otherwise
//	8	eq	a b dst		dst = 1 if a == b, 0 otherwise
//	9	arb	a		add a to the relocation base
//	99	hlt			halt
//
// Operands:
//
// The addressing mode of an operand is given by its prefix:
//
//	42	position mode: the value at address 42
//	#42	immediate mode: the value 42
//	@42	relative mode: the value at address base+42
//
// Operands written to (dst above) cannot use immediate mode. The assembler
// computes the mode digits of the instruction word from the operand prefixes:
//
//	mul 4 #3 4	( compiles as 1002,4,3,4 )
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	(this is not, the parser sees "(this" as a token )
//
// Literals and label/const identifiers:
//
// Input is split at white space (space, tab or new line) into tokens. Operand
// values and data are resolved as follows:
//
//	- If a token can be converted to a Go integer (see strconv.ParseInt), it is
//	  an integer literal.
//	- If it is a Go character literal between single quotes, it is converted to
//	  the corresponding integer literal.
//	- If it is the name of a defined constant, it is replaced by the constant's
//	  value.
//	- Anything else must be a label name and is replaced by the label address.
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and can be used as a
// value anywhere an integer is expected. Forward references are ok:
//
//	jnz #1 #end	( jump to end )
//	:loop	out #1
//	:end	hlt
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named constant
// or character literal.
//
//	.org <value>
//
// places the next instruction at the address specified by the given integer
// literal or named constant. Skipped cells are zero.
//
//	.dat <value>...
//
// compiles the following values as-is until the next instruction, label
// definition or directive. This is used for data storage:
//
//	:table	.dat 65 'B' table
//
// The cells at addresses table+0, table+1 and table+2 will contain 65, 66 and
// the address of table respectively.
//
// The disassembler uses the same syntax. Cells that do not decode to a valid
// instruction are shown as .dat directives.
package asm
