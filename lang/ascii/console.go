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

package ascii

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/db47h/intcode/internal/iox"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Console runs an ASCII program interactively.
type Console struct {
	i *vm.Instance
	// Echo, if not nil, receives a copy of every line sent to the program.
	Echo io.Writer
}

// NewConsole returns a new Console driving the given instance.
func NewConsole(i *vm.Instance) *Console {
	return &Console{i: i}
}

// flush writes pending program output to w. Values outside of the ASCII range
// are written in decimal on a line of their own.
func (c *Console) flush(w *iox.ErrWriter) error {
	var b []byte
	for _, v := range c.i.Output().ReadAll() {
		if IsChar(v) {
			b = append(b, byte(v))
			continue
		}
		if len(b) > 0 && b[len(b)-1] != '\n' {
			b = append(b, '\n')
		}
		b = strconv.AppendInt(b, int64(v), 10)
		b = append(b, '\n')
	}
	if len(b) > 0 {
		w.Write(b)
	}
	return w.Err
}

// Run runs the program until it halts. Program output is written to out.
// Whenever the program needs input, Run reads one line from in and sends it
// to the program, terminated by a single '\n'.
//
// If in reaches EOF while the program is waiting for input, Run returns
// io.EOF.
func (c *Console) Run(in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)
	w := iox.NewErrWriter(out)
	for {
		st, err := c.i.Execute()
		if ferr := c.flush(w); ferr != nil {
			return ferr
		}
		if err != nil {
			return err
		}
		if st == vm.Halted {
			return nil
		}
		line, err := r.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				return errors.Wrap(err, "read failed")
			}
			if line == "" {
				return io.EOF
			}
		}
		line = strings.TrimRight(line, "\r\n") + "\n"
		if c.Echo != nil {
			io.WriteString(c.Echo, line)
		}
		WriteString(c.i.Input(), line)
	}
}
