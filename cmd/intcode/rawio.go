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
	"io"

	"github.com/db47h/intcode/internal/iox"
	"github.com/pkg/errors"
)

const (
	keyInterrupt = 3 // CTRL-C
	keyEOF       = 4 // CTRL-D
	keyBackspace = 8
	keyDelete    = 127
)

var errInterrupted = errors.New("interrupted")

// rawReader reads lines from a terminal in raw mode. It echoes typed
// characters, handles backspace, and treats CTRL-D on an empty line as EOF.
// Only complete lines are returned by Read.
type rawReader struct {
	r    *bufio.Reader
	echo *iox.ErrWriter
	line []byte
	buf  []byte
}

func newRawReader(r io.Reader, echo io.Writer) *rawReader {
	return &rawReader{r: bufio.NewReader(r), echo: iox.NewErrWriter(echo)}
}

func (r *rawReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		c, err := r.r.ReadByte()
		if err != nil {
			return 0, err
		}
		switch c {
		case keyInterrupt:
			return 0, errInterrupted
		case keyEOF:
			if len(r.line) == 0 {
				return 0, io.EOF
			}
			r.buf, r.line = r.line, nil
		case '\r', '\n':
			r.echo.Write([]byte{'\n'})
			r.buf, r.line = append(r.line, '\n'), nil
		case keyBackspace, keyDelete:
			if len(r.line) > 0 {
				r.line = r.line[:len(r.line)-1]
				// erase char under cursor
				r.echo.Write([]byte{keyBackspace, ' ', keyBackspace})
			}
		default:
			r.line = append(r.line, c)
			r.echo.Write([]byte{c})
		}
		if r.echo.Err != nil {
			return 0, r.echo.Err
		}
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}
