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

package vm_test

import (
	"bytes"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

type C []vm.Cell

func setup(t testing.TB, code string, input ...vm.Cell) *vm.Instance {
	t.Helper()
	img, err := vm.Parse(code)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	i, err := vm.New(img, vm.Input(vm.NewStream(input...)))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return i
}

func equalCells(a, b []vm.Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for n := range a {
		if a[n] != b[n] {
			return false
		}
	}
	return true
}

func assertEqual(t *testing.T, name string, expected, got interface{}) {
	t.Helper()
	if expected != got {
		t.Errorf("%v:\nExpected: %v\nGot: %v", name, expected, got)
	}
}

func assertCells(t *testing.T, name string, expected, got []vm.Cell) {
	t.Helper()
	if !equalCells(expected, got) {
		t.Errorf("%v:\nExpected: %v\nGot: %v", name, expected, got)
	}
}

// check runs the program to completion and checks its output.
func check(t *testing.T, name string, i *vm.Instance, output C) bool {
	t.Helper()
	st, err := i.Execute()
	if err != nil {
		t.Errorf("%s: %+v", name, err)
		return false
	}
	if st != vm.Halted {
		t.Errorf("%s: expected state %v, got %v", name, vm.Halted, st)
		return false
	}
	out := i.Output().ReadAll()
	if !equalCells(output, out) {
		t.Errorf("%s: output error: expected %d, got %d", name, output, out)
		return false
	}
	return true
}

var memTests = [...]struct {
	name string
	code string
	mem  C
}{
	{"add", "1,0,0,0,99", C{2, 0, 0, 0, 99}},
	{"mul", "2,3,0,3,99", C{2, 3, 0, 6, 99}},
	{"mul-grow", "2,4,4,5,99,0", C{2, 4, 4, 5, 99, 9801}},
	{"self-modifying", "1,1,1,4,99,5,6,0,99", C{30, 1, 1, 4, 2, 5, 6, 0, 99}},
	{"immediate", "1002,4,3,4,33", C{1002, 4, 3, 4, 99}},
	{"negative", "1101,100,-1,4,0", C{1101, 100, -1, 4, 99}},
	{"lt", "1107,1,2,5,99,-1", C{1107, 1, 2, 5, 99, 1}},
	{"eq", "1108,1,2,5,99,-1", C{1108, 1, 2, 5, 99, 0}},
}

func TestCore_memory(t *testing.T) {
	for _, test := range memTests {
		i := setup(t, test.code)
		if !check(t, test.name, i, nil) {
			continue
		}
		assertCells(t, test.name, test.mem, i.Image)
	}
}

var ioTests = [...]struct {
	name   string
	code   string
	input  C
	output C
}{
	{"echo", "3,0,4,0,99", C{42}, C{42}},
	{"eq8-position", "3,9,8,9,10,9,4,9,99,-1,8", C{8}, C{1}},
	{"eq8-position-false", "3,9,8,9,10,9,4,9,99,-1,8", C{7}, C{0}},
	{"lt8-position", "3,9,7,9,10,9,4,9,99,-1,8", C{5}, C{1}},
	{"eq8-immediate", "3,3,1108,-1,8,3,4,3,99", C{8}, C{1}},
	{"lt8-immediate", "3,3,1107,-1,8,3,4,3,99", C{9}, C{0}},
	{"jz-position-0", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", C{0}, C{0}},
	{"jz-position-1", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", C{1}, C{1}},
	{"jz-position-2", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", C{2}, C{1}},
	{"jnz-immediate", "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", C{0}, C{0}},
	{"jnz-immediate-1", "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", C{5}, C{1}},
	{"relative", "109,10,21101,7,8,5,204,5,99", nil, C{15}},
	{"large-mul", "1102,34915192,34915192,7,4,7,99,0", nil, C{1219070632396864}},
	{"large-literal", "104,1125899906842624,99", nil, C{1125899906842624}},
	{"relative-in", "109,-3,203,10,204,10,99", C{-7}, C{-7}},
}

func TestCore_io(t *testing.T) {
	for _, test := range ioTests {
		check(t, test.name, setup(t, test.code, test.input...), test.output)
	}
}

const cmp8 = `3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31,
	1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104,
	999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99`

func TestCore_jumps(t *testing.T) {
	for _, test := range []struct {
		in, out vm.Cell
	}{
		{2, 999}, {7, 999}, {8, 1000}, {9, 1001}, {42, 1001},
	} {
		check(t, "cmp8", setup(t, cmp8, test.in), C{test.out})
	}
}

func TestCore_quine(t *testing.T) {
	const quine = "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"
	img, _ := vm.Parse(quine)
	check(t, "quine", setup(t, quine), C(img))
}

func TestCore_relativeRoundTrip(t *testing.T) {
	// base = 2000; [base-5] = 123; out [base-5]
	i := setup(t, "109,2000,21101,100,23,-5,204,-5,99")
	if !check(t, "relative", i, C{123}) {
		return
	}
	v, err := i.Image.Read(1995)
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, "relative write", vm.Cell(123), v)
	assertEqual(t, "base", 2000, i.Base)
}

func TestCore_growableMemory(t *testing.T) {
	i := setup(t, "1101,5,6,1000,99")
	if !check(t, "grow", i, nil) {
		return
	}
	assertEqual(t, "image size", 1001, len(i.Image))
	for _, addr := range []int{5, 500, 999, 5000} {
		v, _ := i.Image.Read(addr)
		assertEqual(t, "unwritten cell", vm.Cell(0), v)
	}
	v, _ := i.Image.Read(1000)
	assertEqual(t, "written cell", vm.Cell(11), v)
}

func TestCore_suspend(t *testing.T) {
	i := setup(t, "3,9,3,10,4,9,4,10,99,0,0")
	for n := 0; n < 3; n++ {
		st, err := i.Execute()
		if err != nil {
			t.Fatal(err)
		}
		assertEqual(t, "state", vm.WaitingOnInput, st)
		assertEqual(t, "pc", 0, i.PC)
	}
	i.Input().Write(1)
	st, _ := i.Execute()
	assertEqual(t, "state after first input", vm.WaitingOnInput, st)
	assertEqual(t, "pc after first input", 2, i.PC)
	assertEqual(t, "input consumed", 0, i.Input().Len())

	i.Input().Write(2)
	check(t, "suspend", i, C{1, 2})
}

func TestCore_idempotentHalt(t *testing.T) {
	i := setup(t, "104,7,99")
	for n := 0; n < 3; n++ {
		st, err := i.Execute()
		if err != nil {
			t.Fatal(err)
		}
		assertEqual(t, "state", vm.Halted, st)
		assertEqual(t, "pc", 2, i.PC)
	}
	assertCells(t, "output", C{7}, i.Output().ReadAll())
	assertEqual(t, "instruction count", int64(1), i.InstructionCount())
}

func TestCore_composition(t *testing.T) {
	// a echoes its input, b doubles it. a's output is b's input.
	a := setup(t, "3,100,4,100,1105,1,0")
	b := setup(t, "3,100,1002,100,2,100,4,100,1105,1,0")
	b.SetInput(a.Output())

	for _, v := range (C{1, 2, 3}) {
		a.Input().Write(v)
		for _, m := range []*vm.Instance{a, b} {
			st, err := m.Execute()
			if err != nil {
				t.Fatal(err)
			}
			assertEqual(t, "state", vm.WaitingOnInput, st)
		}
	}
	a.Input().WriteAll(4, 5)
	a.Execute()
	b.Execute()
	assertCells(t, "composition", C{2, 4, 6, 8, 10}, b.Output().ReadAll())
}

var faultTests = [...]struct {
	name  string
	code  string
	kind  vm.FaultKind
	pc    int
	input C
}{
	{"opcode", "1101,1,1,6,42", vm.InvalidOpcode, 4, nil},
	{"opcode-zero", "", vm.InvalidOpcode, 0, nil},
	{"run-off", "1101,1,1,7,1105,1,100", vm.InvalidOpcode, 100, nil},
	{"immediate-write", "11101,1,1,5,99", vm.InvalidMode, 0, nil},
	{"immediate-in", "103,5,99", vm.InvalidMode, 0, C{7}},
	{"mode-3", "301,0,0,0,99", vm.InvalidMode, 0, nil},
	{"negative-read", "1,-1,0,0,99", vm.InvalidAddress, 0, nil},
	{"negative-write", "1101,0,0,-4,99", vm.InvalidAddress, 0, nil},
	{"negative-relative", "109,-10,204,2,99", vm.InvalidAddress, 2, nil},
	{"negative-jump", "1105,1,-5", vm.InvalidAddress, 0, nil},
	{"huge-write", "1101,1,1,9223372036854775807,99", vm.InvalidAddress, 0, nil},
	{"huge-write-2", "1101,1,1,4611686018427387904,99", vm.InvalidAddress, 0, nil},
	{"max-address", "1101,1,1,67108864,99", vm.InvalidAddress, 0, nil},
	{"huge-relative", "109,1,21101,1,1,9223372036854775807,99", vm.InvalidAddress, 2, nil},
	{"huge-in", "3,9223372036854775807,99", vm.InvalidAddress, 0, C{7}},
}

func TestCore_faults(t *testing.T) {
	for _, test := range faultTests {
		i := setup(t, test.code, test.input...)
		st, err := i.Execute()
		if err == nil {
			t.Errorf("%s: expected fault, got state %v", test.name, st)
			continue
		}
		f, ok := errors.Cause(err).(*vm.Fault)
		if !ok {
			t.Errorf("%s: expected *vm.Fault, got %T: %v", test.name, err, err)
			continue
		}
		assertEqual(t, test.name+" state", vm.Faulted, st)
		assertEqual(t, test.name+" kind", test.kind, f.Kind)
		assertEqual(t, test.name+" pc", test.pc, f.PC)
		assertEqual(t, test.name+" input", len(test.input), i.Input().Len())

		// aborted for good
		st2, err2 := i.Execute()
		assertEqual(t, test.name+" state after fault", vm.Faulted, st2)
		if err2 != err {
			t.Errorf("%s: expected the same error, got %v", test.name, err2)
		}
	}
}

func TestFault_Error(t *testing.T) {
	i := setup(t, "11101,1,1,5,99")
	_, err := i.Execute()
	assertEqual(t, "message", "invalid parameter mode 1 for operand 2 of 11101 @pc=0", err.Error())

	i = setup(t, "42")
	_, err = i.Execute()
	assertEqual(t, "message", "invalid opcode 42 @pc=0", err.Error())
}

func TestInstance_Run(t *testing.T) {
	i := setup(t, "3,0,4,0,99")
	err := i.Run()
	if errors.Cause(err) != vm.ErrInputRequired {
		t.Fatalf("Expected ErrInputRequired, got %v", err)
	}
	i.Input().Write(3)
	if err = i.Run(); err != nil {
		t.Fatal(err)
	}
	assertCells(t, "output", C{3}, i.Output().ReadAll())
}

func TestInstance_Clone(t *testing.T) {
	i := setup(t, "3,20,3,21,1,20,21,22,4,22,99", 40)
	st, _ := i.Execute()
	assertEqual(t, "state", vm.WaitingOnInput, st)

	c := i.Clone()
	i.Input().Write(2)
	c.Input().Write(-40)
	check(t, "original", i, C{42})
	check(t, "clone", c, C{0})
	if c.Input() == i.Input() || c.Output() == i.Output() {
		t.Fatal("clone shares streams with the original")
	}
}

func TestNew_options(t *testing.T) {
	if _, err := vm.New(nil, vm.Input(nil)); err == nil {
		t.Error("expected error for nil input stream")
	}
	if _, err := vm.New(nil, vm.Output(nil)); err == nil {
		t.Error("expected error for nil output stream")
	}
	s := vm.NewStream()
	i, err := vm.New(nil, vm.Input(s), vm.Output(s))
	if err != nil {
		t.Fatal(err)
	}
	if i.Input() != s || i.Output() != s {
		t.Error("streams not set")
	}
	i.SetInput(nil)
	if i.Input() == nil || i.Input() == s {
		t.Error("SetInput(nil) should attach a private stream")
	}
}

func TestInstance_Dump(t *testing.T) {
	i := setup(t, "109,3,99")
	i.Execute()
	var b bytes.Buffer
	if err := i.Dump(&b); err != nil {
		t.Fatal(err)
	}
	assertEqual(t, "dump", "pc=2 base=3\n109,3,99\n", b.String())
}

func TestInstruction(t *testing.T) {
	for _, test := range []struct {
		ins   vm.Instruction
		op    vm.Opcode
		modes [3]vm.Mode
	}{
		{23, 23, [3]vm.Mode{0, 0, 0}},
		{123, 23, [3]vm.Mode{1, 0, 0}},
		{1002, vm.OpMul, [3]vm.Mode{vm.Position, vm.Immediate, vm.Position}},
		{1123, 23, [3]vm.Mode{1, 1, 0}},
		{21101, vm.OpAdd, [3]vm.Mode{vm.Immediate, vm.Immediate, vm.Relative}},
		{204, vm.OpOut, [3]vm.Mode{vm.Relative, 0, 0}},
	} {
		assertEqual(t, "opcode", test.op, test.ins.Opcode())
		for n, m := range test.modes {
			assertEqual(t, "mode", m, test.ins.Mode(n))
		}
		if test.op.Valid() {
			assertEqual(t, "MakeInstruction", test.ins, vm.MakeInstruction(test.op, test.modes[:]...))
		}
	}
}

func TestOpcode(t *testing.T) {
	for _, op := range []vm.Opcode{vm.OpAdd, vm.OpMul, vm.OpIn, vm.OpOut, vm.OpJumpTrue,
		vm.OpJumpFalse, vm.OpLess, vm.OpEqual, vm.OpAdjustBase, vm.OpHalt} {
		o, ok := vm.LookupOpcode(op.String())
		if !ok || o != op {
			t.Errorf("LookupOpcode(%q) = %v, %v", op.String(), o, ok)
		}
	}
	assertEqual(t, "arity add", 3, vm.OpAdd.Arity())
	assertEqual(t, "arity hlt", 0, vm.OpHalt.Arity())
	assertEqual(t, "unknown", "Opcode(42)", vm.Opcode(42).String())
	assertEqual(t, "state", "waiting on input", vm.WaitingOnInput.String())
}

const sumLoop = `1101,0,0,100,1101,0,0,101,1,100,101,100,1001,101,1,101,1007,101,1000,102,1005,102,8,4,100,99`

func Benchmark_SumLoop(b *testing.B) {
	img, err := vm.Parse(sumLoop)
	if err != nil {
		b.Fatal(err)
	}
	for c := 0; c < b.N; c++ {
		i, _ := vm.New(img.Clone())
		if err = i.Run(); err != nil {
			b.Fatal(err)
		}
	}
}
