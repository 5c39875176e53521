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
	"strconv"
	"text/scanner"
	"unicode"

	"github.com/db47h/intcode/vm"
)

const maxErrors = 10

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

// pending instruction: operands are being read.
type instruction struct {
	op    vm.Opcode
	addr  int
	modes []vm.Mode
}

type parser struct {
	i      vm.Image
	pc     int
	end    int
	s      scanner.Scanner
	labels map[string]*label
	consts map[string]labelSite
	ins    *instruction
	data   bool
	errs   ErrAsm
}

func newParser() *parser {
	p := new(parser)
	p.labels = make(map[string]*label)
	p.consts = make(map[string]labelSite)
	return p
}

func (p *parser) write(v vm.Cell) {
	for p.pc >= len(p.i) {
		p.i = append(p.i, make(vm.Image, 1024)...)
	}
	p.i[p.pc] = v
	p.pc++
	if p.pc > p.end {
		p.end = p.pc
	}
}

func (p *parser) useLabel(name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{
			// use current position as valid temp position
			labelSite{p.s.Position, -1},
			nil,
		}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{p.s.Position, p.pc})
}

func (p *parser) error(pos scanner.Position, msg string) {
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, struct {
			Pos scanner.Position
			Msg string
		}{pos, msg})
	}
}

func (p *parser) tokenError(msg string) {
	p.error(p.s.Position, msg)
}

// value converts the token s into an integer: number, char literal or
// constant. ok is false if s is none of these, i.e. a label reference.
func (p *parser) value(s string) (v vm.Cell, ok bool) {
	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return vm.Cell(n), true
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, _, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil {
			p.tokenError(err.Error() + ": " + s)
			return 0, true
		}
		return vm.Cell(r), true
	}
	if c, ok := p.consts[s]; ok {
		return vm.Cell(c.address), true
	}
	return 0, false
}

// reference writes the value of s at pc, resolving it later if it is a label.
func (p *parser) reference(s string) {
	if v, ok := p.value(s); ok {
		p.write(v)
		return
	}
	if !isName(s) {
		p.tokenError("Invalid value " + s)
		p.write(0)
		return
	}
	p.useLabel(s)
	p.write(0)
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for n, r := range s {
		if !(unicode.IsLetter(r) || r == '_' || (n > 0 && (unicode.IsDigit(r) || r == '.' || r == '-'))) {
			return false
		}
	}
	return true
}

// isWrite returns true if operand n of op is written to.
func isWrite(op vm.Opcode, n int) bool {
	switch op {
	case vm.OpIn:
		return n == 0
	case vm.OpAdd, vm.OpMul, vm.OpLess, vm.OpEqual:
		return n == 2
	}
	return false
}

func (p *parser) operand(s string) {
	ins := p.ins
	n := len(ins.modes)
	mode := vm.Position
	switch s[0] {
	case '#':
		mode = vm.Immediate
		s = s[1:]
		if isWrite(ins.op, n) {
			p.tokenError("Immediate mode not allowed for write operand: #" + s)
		}
	case '@':
		mode = vm.Relative
		s = s[1:]
	}
	ins.modes = append(ins.modes, mode)
	if s == "" {
		p.tokenError("Missing operand value")
		p.write(0)
	} else {
		p.reference(s)
	}
	if len(ins.modes) == ins.op.Arity() {
		p.flush()
	}
}

// flush writes the instruction word of the pending instruction.
func (p *parser) flush() {
	if p.ins == nil {
		return
	}
	p.i[p.ins.addr] = vm.Cell(vm.MakeInstruction(p.ins.op, p.ins.modes...))
	p.ins = nil
}

func (p *parser) expectInt(directive string) (int, bool) {
	tok := p.s.Scan()
	s := p.s.TokenText()
	if tok != scanner.Ident {
		p.tokenError(directive + ": expected integer, got " + s)
		return 0, false
	}
	v, ok := p.value(s)
	if !ok {
		p.tokenError(directive + ": expected integer or constant, got " + s)
		return 0, false
	}
	return int(v), true
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) (vm.Image, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.error(s.Position, msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		s := p.s.TokenText()
		if tok != scanner.Ident {
			p.tokenError("Unexpected character " + strconv.QuoteRune(tok))
			continue
		}
		if s == "(" {
			// skip comments
			for ; tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
			}
			continue
		}
		if p.ins != nil {
			p.operand(s)
			continue
		}

		switch s[0] {
		case ':':
			p.data = false
			n := s[1:]
			if !isName(n) {
				p.tokenError("Invalid label name: " + s)
				continue
			}
			if cst, ok := p.consts[n]; ok {
				p.tokenError("Label redefinition: " + n + ", previously defined as a constant here: " + cst.pos.String())
				continue
			}
			if l, ok := p.labels[n]; ok {
				if l.address != -1 {
					p.tokenError("Label redefinition: " + n + ", previous definition here: " + l.pos.String())
					continue
				}
				l.address = p.pc
				l.pos = p.s.Position
			} else {
				p.labels[n] = &label{labelSite{p.s.Position, p.pc}, nil}
			}
		case '.':
			p.data = false
			switch s {
			case ".org":
				if v, ok := p.expectInt(".org"); ok {
					if v < 0 {
						p.tokenError(".org: negative address " + strconv.Itoa(v))
						continue
					}
					p.pc = v
				}
			case ".dat":
				p.data = true
			case ".equ":
				t := p.s.Scan()
				cst := p.s.TokenText()
				if t != scanner.Ident || !isName(cst) {
					p.tokenError(".equ: expected identifier, got " + cst)
					continue
				}
				if l, ok := p.labels[cst]; ok {
					p.tokenError(".equ: redefinition of " + cst + ", previously defined/used as a label here: " + l.pos.String())
					continue
				}
				pos := p.s.Position
				if v, ok := p.expectInt(".equ"); ok {
					p.consts[cst] = labelSite{pos, v}
				}
			default:
				p.tokenError("Unknown directive: " + s)
			}
		default:
			if op, ok := vm.LookupOpcode(s); ok {
				p.data = false
				p.ins = &instruction{op: op, addr: p.pc}
				p.write(vm.Cell(op))
				if op.Arity() == 0 {
					p.flush()
				}
				continue
			}
			if !p.data {
				p.tokenError("Unexpected value outside of .dat: " + s)
				continue
			}
			p.reference(s)
		}
	}
	if p.ins != nil {
		p.error(p.s.Pos(), fmt.Sprintf("Missing operands for %v: expected %d, got %d", p.ins.op, p.ins.op.Arity(), len(p.ins.modes)))
		p.flush()
	}

	// write labels
	for n, l := range p.labels {
		if l.address == -1 {
			p.error(l.uses[0].pos, "Undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			p.i[u.address] = vm.Cell(l.address)
		}
	}

	if len(p.errs) > 0 {
		p.errs.sort()
		return nil, p.errs
	}
	return p.i[:p.end:p.end], nil
}
