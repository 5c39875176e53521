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

// Package vm implements the Intcode VM.
//
// An Intcode program is a list of integers that is both code and data. The
// Image type holds the memory of an Instance: it is loaded from program text
// with Parse or Decode, and grows on demand when the program writes past its
// end. Reading past the end yields 0.
//
// Instructions are made of a two digit opcode followed by one mode digit per
// operand, starting with the hundreds digit for the first operand:
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
// Operand modes are 0 (position: the operand is an address), 1 (immediate:
// the operand is the value) and 2 (relative: the operand is an offset from the
// relocation base). Operands written to never use immediate mode.
//
// An Instance reads its input from a Stream and writes its output to another.
// Execute never blocks: if the program needs a value that is not available,
// Execute returns WaitingOnInput and can be called again once the caller has
// written to the input stream. Several instances can be connected by sharing
// streams and driven in turn by a single loop, see package
// github.com/db47h/intcode/network.
//
// Malformed programs (unknown opcodes, invalid modes, negative addresses)
// abort the instance with a *Fault. There is no recovery from a fault.
package vm
