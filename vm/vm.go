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
	"io"

	"github.com/db47h/intcode/internal/iox"
	"github.com/pkg/errors"
)

// Cell is the raw type stored in a memory location.
type Cell int64

// State is the state of an Instance as reported by Execute.
type State int

// Instance states.
const (
	Running        State = iota // not started or in the middle of Execute
	Halted                      // reached the halt instruction
	WaitingOnInput              // suspended on an input instruction with no input available
	Faulted                     // aborted by a Fault
)

var stateNames = [...]string{"running", "halted", "waiting on input", "faulted"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Instance represents an Intcode VM instance.
type Instance struct {
	PC       int   // Program Counter (aka. Instruction Pointer)
	Base     int   // Relocation base for relative mode operands
	Image    Image // Memory image
	state    State
	fault    error
	insCount int64
	input    *Stream
	output   *Stream
}

// Option interface
type Option func(*Instance) error

// Input sets the input stream of the instance. The same stream may be the
// output of another instance.
func Input(s *Stream) Option {
	return func(i *Instance) error {
		if s == nil {
			return errors.New("nil input stream")
		}
		i.input = s
		return nil
	}
}

// Output sets the output stream of the instance.
func Output(s *Stream) Option {
	return func(i *Instance) error {
		if s == nil {
			return errors.New("nil output stream")
		}
		i.output = s
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new Intcode Virtual Machine instance.
//
// The instance takes ownership of img. Use img.Clone() in order to run the same
// program in several instances.
//
// Streams not set by an option are private to the instance. They can still
// be reached with the Input and Output methods.
func New(img Image, opts ...Option) (*Instance, error) {
	i := &Instance{
		Image: img,
	}
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	if i.input == nil {
		i.input = NewStream()
	}
	if i.output == nil {
		i.output = NewStream()
	}
	return i, nil
}

// Input returns the input stream.
func (i *Instance) Input() *Stream { return i.input }

// Output returns the output stream.
func (i *Instance) Output() *Stream { return i.output }

// SetInput replaces the input stream. A nil stream is replaced by a new
// private stream.
func (i *Instance) SetInput(s *Stream) {
	if s == nil {
		s = NewStream()
	}
	i.input = s
}

// SetOutput replaces the output stream. A nil stream is replaced by a new
// private stream.
func (i *Instance) SetOutput(s *Stream) {
	if s == nil {
		s = NewStream()
	}
	i.output = s
}

// State returns the state reported by the last call to Execute.
func (i *Instance) State() State {
	return i.state
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}

// Clone returns a deep copy of the instance. The clone gets its own private
// streams, pre-filled with the values pending in the streams of i.
func (i *Instance) Clone() *Instance {
	c := *i
	c.Image = i.Image.Clone()
	c.input = NewStream(i.input.Values()...)
	c.output = NewStream(i.output.Values()...)
	return &c
}

// Dump writes the registers and the memory image of the instance to w, in
// program text format.
func (i *Instance) Dump(w io.Writer) error {
	ew := iox.NewErrWriter(w)
	fmt.Fprintf(ew, "pc=%d base=%d\n", i.PC, i.Base)
	if _, err := io.WriteString(ew, i.Image.String()); err != nil {
		return err
	}
	_, err := ew.Write([]byte{'\n'})
	return err
}
