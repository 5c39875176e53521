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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/db47h/intcode/asm"
	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/lang/ascii"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

type patch struct {
	addr int
	v    vm.Cell
}

type patchList []patch

func (p *patchList) String() string {
	s := make([]string, len(*p))
	for n, pt := range *p {
		s[n] = strconv.Itoa(pt.addr) + "=" + strconv.FormatInt(int64(pt.v), 10)
	}
	return strings.Join(s, " ")
}

func (p *patchList) Set(s string) error {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return errors.Errorf("invalid patch %q, expected addr=value", s)
	}
	addr, err := strconv.Atoi(s[:i])
	if err != nil {
		return err
	}
	v, err := strconv.ParseInt(s[i+1:], 10, 64)
	if err != nil {
		return err
	}
	*p = append(*p, patch{addr, vm.Cell(v)})
	return nil
}

func (p *patchList) Get() interface{} { return *p }

// apply writes the patches to img.
func (p patchList) apply(img *vm.Image) error {
	for _, pt := range p {
		if err := img.Write(pt.addr, pt.v); err != nil {
			return errors.Wrapf(err, "patch %d=%d", pt.addr, pt.v)
		}
	}
	return nil
}

type cellList []vm.Cell

func (l *cellList) String() string { return vm.Image(*l).String() }
func (l *cellList) Set(s string) error {
	v, err := parseValues(s)
	if err != nil {
		return err
	}
	*l = append(*l, v...)
	return nil
}
func (l *cellList) Get() interface{} { return *l }

// parseValues parses a list of integers separated by commas or white space.
func parseValues(s string) ([]vm.Cell, error) {
	f := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
	if len(f) == 0 {
		return nil, nil
	}
	return vm.Parse(strings.Join(f, ","))
}

var (
	noRawIO bool
	debug   bool
	dump    bool
)

// loadImage loads a program from program text, or from assembly source if the
// file name ends with ".asm".
func loadImage(name string) (vm.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load program")
	}
	defer f.Close()
	if filepath.Ext(name) == ".asm" {
		return asm.Assemble(name, f)
	}
	img, err := vm.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", name)
	}
	return img, nil
}

// runNumeric runs a program that reads and writes integers. Output values are
// written one per line. When the program needs input, a line of values
// separated by commas or spaces is read from in.
func runNumeric(i *vm.Instance, in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)
	w := iox.NewErrWriter(out)
	for {
		st, err := i.Execute()
		for _, v := range i.Output().ReadAll() {
			w.WriteInt(int64(v), '\n')
		}
		if err != nil {
			return err
		}
		if w.Err != nil {
			return w.Err
		}
		if st == vm.Halted {
			return nil
		}
		line, err := r.ReadString('\n')
		if v, perr := parseValues(line); perr != nil {
			return errors.Wrap(perr, "invalid input")
		} else if len(v) > 0 {
			i.Input().WriteAll(v...)
			continue
		}
		if err == io.EOF {
			return errors.Wrapf(vm.ErrInputRequired, "@pc=%d", i.PC)
		}
		if err != nil {
			return errors.Wrap(err, "read failed")
		}
	}
}

func atExit(i *vm.Instance, err error) {
	if err == nil {
		return
	}
	if !debug {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		fmt.Fprintf(os.Stderr, "PC: %d, Base: %d, State: %v\n", i.PC, i.Base, i.State())
		if i.PC >= 0 && i.PC < len(i.Image) {
			fmt.Fprint(os.Stderr, "Instruction: ")
			asm.Disassemble(i.Image, i.PC, os.Stderr)
			fmt.Fprintln(os.Stderr)
		}
	}
	os.Exit(1)
}

func main() {
	var err error
	var i *vm.Instance

	defer func() {
		atExit(i, err)
	}()

	var (
		patches patchList
		input   cellList
	)

	var fileName = flag.String("image", "input.txt", "Load program from file `filename`")
	flag.Var(&input, "input", "comma separated `values` to send to the program on startup (can be specified multiple times)")
	var asciiIO = flag.Bool("ascii", false, "ASCII console mode")
	flag.BoolVar(&noRawIO, "noraw", false, "disable raw terminal IO")
	flag.Var(&patches, "patch", "set memory at `addr=value` before running (can be specified multiple times)")
	flag.BoolVar(&dump, "dump", false, "dump machine state upon exit")
	var disasm = flag.Bool("disasm", false, "disassemble the program and exit")
	var netFile = flag.String("network", "", "run the machines described in TOML file `filename`")
	flag.BoolVar(&debug, "debug", false, "enable debug diagnostics")
	flag.Var(logLevelFlag{}, "log-level", "log `level` (debug, info, warn, error)")
	var logFile = flag.String("log-file", "", "also write JSON logs to `filename`")

	flag.Parse()

	log, closeLog, err := newLogger(os.Stderr, *logFile)
	if err != nil {
		return
	}
	defer closeLog()

	if *netFile != "" {
		err = runMulti(*netFile, log, os.Stdout)
		return
	}

	img, err := loadImage(*fileName)
	if err != nil {
		return
	}
	if err = patches.apply(&img); err != nil {
		return
	}
	if *disasm {
		err = asm.DisassembleAll(img, 0, os.Stdout)
		return
	}

	i, err = vm.New(img)
	if err != nil {
		return
	}
	i.Input().WriteAll(input...)
	log.Debug("program loaded", "file", *fileName, "size", len(img), "input", len(input))

	if *asciiIO {
		var in io.Reader = os.Stdin
		if !noRawIO {
			if restore, rerr := setRawIO(); rerr == nil {
				defer restore()
				in = newRawReader(os.Stdin, os.Stdout)
			} else {
				log.Debug("raw IO disabled", "error", rerr)
			}
		}
		if err = ascii.NewConsole(i).Run(in, os.Stdout); err == io.EOF {
			err = nil
		}
	} else {
		err = runNumeric(i, os.Stdin, os.Stdout)
	}
	log.Debug("program stopped", "state", i.State(), "instructions", i.InstructionCount())
	if err == nil && dump {
		err = i.Dump(os.Stdout)
	}
}
