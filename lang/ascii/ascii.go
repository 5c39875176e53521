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

// Package ascii provides utility functions and types for Intcode programs that
// communicate with the outside world in ASCII text: each character is one
// value in the input or output stream, lines are terminated by '\n' (10).
//
// Such programs usually report a final result as a single value outside of the
// ASCII range.
package ascii

import (
	"github.com/db47h/intcode/vm"
)

// MaxChar is the largest value considered to be an ASCII character.
const MaxChar = 127

// IsChar returns true if v is an ASCII character.
func IsChar(v vm.Cell) bool {
	return v >= 0 && v <= MaxChar
}

// Encode returns the bytes of s as cells.
func Encode(s string) []vm.Cell {
	cells := make([]vm.Cell, len(s))
	for i := 0; i < len(s); i++ {
		cells[i] = vm.Cell(s[i])
	}
	return cells
}

// WriteString writes the bytes of text to the given stream.
func WriteString(s *vm.Stream, text string) {
	s.WriteAll(Encode(text)...)
}

// Decode returns the ASCII characters in cells as a string. Values outside of
// the ASCII range are returned in extra, in order.
func Decode(cells []vm.Cell) (text string, extra []vm.Cell) {
	b := make([]byte, 0, len(cells))
	for _, c := range cells {
		if IsChar(c) {
			b = append(b, byte(c))
			continue
		}
		extra = append(extra, c)
	}
	return string(b), extra
}
