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

import "github.com/pkg/errors"

// operand returns the value of operand n of the instruction at PC.
func (i *Instance) operand(ins Instruction, n int) (Cell, error) {
	raw, _ := i.Image.Read(i.PC + 1 + n)
	switch ins.Mode(n) {
	case Position:
		return i.load(ins, int(raw))
	case Immediate:
		return raw, nil
	case Relative:
		return i.load(ins, i.Base+int(raw))
	default:
		return 0, &Fault{Kind: InvalidMode, PC: i.PC, Instruction: ins, Operand: n}
	}
}

func (i *Instance) load(ins Instruction, addr int) (Cell, error) {
	v, err := i.Image.Read(addr)
	if err != nil {
		return 0, &Fault{Kind: InvalidAddress, PC: i.PC, Instruction: ins, Operand: -1, Addr: addr}
	}
	return v, nil
}

// target returns the address designated by the write operand n of the
// instruction at PC.
func (i *Instance) target(ins Instruction, n int) (int, error) {
	raw, _ := i.Image.Read(i.PC + 1 + n)
	var addr int
	switch ins.Mode(n) {
	case Position:
		addr = int(raw)
	case Relative:
		addr = i.Base + int(raw)
	default:
		return 0, &Fault{Kind: InvalidMode, PC: i.PC, Instruction: ins, Operand: n}
	}
	if addr < 0 || addr > MaxAddress {
		return 0, &Fault{Kind: InvalidAddress, PC: i.PC, Instruction: ins, Operand: n, Addr: addr}
	}
	return addr, nil
}

func (i *Instance) writeFault(ins Instruction, n, addr int) error {
	return &Fault{Kind: InvalidAddress, PC: i.PC, Instruction: ins, Operand: n, Addr: addr}
}

// abort puts the instance in the Faulted state.
func (i *Instance) abort(err error) (State, error) {
	i.state = Faulted
	i.fault = err
	return Faulted, err
}

// Execute resumes execution of the program at PC and runs until the program
// halts or needs input that is not available yet.
//
// When the halt instruction is reached, Execute returns Halted and leaves PC
// pointing to it, so that any subsequent call returns Halted immediately.
//
// When an input instruction finds the input stream empty, Execute returns
// WaitingOnInput and leaves PC pointing to the input instruction. The caller
// must write to the input stream before calling Execute again, otherwise the
// instance will suspend again right away.
//
// Any other condition that prevents the program from running is a *Fault. The
// instance is then aborted: Execute returns Faulted and the same error on this
// call and all subsequent ones.
func (i *Instance) Execute() (State, error) {
	if i.state == Faulted {
		return Faulted, i.fault
	}
	i.state = Running
	for {
		c, _ := i.Image.Read(i.PC)
		ins := Instruction(c)
		switch op := ins.Opcode(); op {
		case OpAdd, OpMul, OpLess, OpEqual:
			a, err := i.operand(ins, 0)
			if err != nil {
				return i.abort(err)
			}
			b, err := i.operand(ins, 1)
			if err != nil {
				return i.abort(err)
			}
			dst, err := i.target(ins, 2)
			if err != nil {
				return i.abort(err)
			}
			var v Cell
			switch op {
			case OpAdd:
				v = a + b
			case OpMul:
				v = a * b
			case OpLess:
				if a < b {
					v = 1
				}
			case OpEqual:
				if a == b {
					v = 1
				}
			}
			if err = i.Image.Write(dst, v); err != nil {
				return i.abort(i.writeFault(ins, 2, dst))
			}
			i.PC += 4
		case OpIn:
			// resolve the target before consuming input.
			dst, err := i.target(ins, 0)
			if err != nil {
				return i.abort(err)
			}
			v, ok := i.input.Read()
			if !ok {
				i.state = WaitingOnInput
				return WaitingOnInput, nil
			}
			if err = i.Image.Write(dst, v); err != nil {
				return i.abort(i.writeFault(ins, 0, dst))
			}
			i.PC += 2
		case OpOut:
			v, err := i.operand(ins, 0)
			if err != nil {
				return i.abort(err)
			}
			i.output.Write(v)
			i.PC += 2
		case OpJumpTrue, OpJumpFalse:
			v, err := i.operand(ins, 0)
			if err != nil {
				return i.abort(err)
			}
			t, err := i.operand(ins, 1)
			if err != nil {
				return i.abort(err)
			}
			if (v != 0) == (op == OpJumpTrue) {
				if t < 0 {
					return i.abort(&Fault{Kind: InvalidAddress, PC: i.PC, Instruction: ins, Operand: 1, Addr: int(t)})
				}
				i.PC = int(t)
			} else {
				i.PC += 3
			}
		case OpAdjustBase:
			v, err := i.operand(ins, 0)
			if err != nil {
				return i.abort(err)
			}
			i.Base += int(v)
			i.PC += 2
		case OpHalt:
			i.state = Halted
			return Halted, nil
		default:
			return i.abort(&Fault{Kind: InvalidOpcode, PC: i.PC, Instruction: ins, Operand: -1})
		}
		i.insCount++
	}
}

// Run runs the program until it halts. It is meant for programs whose input
// has been entirely written to the input stream beforehand: if the program
// needs more input, Run returns an error whose cause is ErrInputRequired.
func (i *Instance) Run() error {
	st, err := i.Execute()
	if err != nil {
		return err
	}
	if st == WaitingOnInput {
		return errors.Wrapf(ErrInputRequired, "@pc=%d", i.PC)
	}
	return nil
}
