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
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Image encapsulates a VM's memory. Code and data share the same address
// space.
//
// The length of the slice is the logical size of the memory. Addresses at or
// beyond it read as 0 and writing to them grows the image.
type Image []Cell

// Parse parses program text: a comma separated list of signed decimal
// integers. Each value may be padded with white space.
func Parse(text string) (Image, error) {
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	if text == "" {
		return Image{}, nil
	}
	fields := strings.Split(text, ",")
	img := make(Image, len(fields))
	for n, f := range fields {
		tok := strings.TrimSpace(f)
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, &ParseError{Index: n, Token: tok, Err: err}
		}
		img[n] = Cell(v)
	}
	return img, nil
}

// Decode reads program text from r and parses it.
func Decode(r io.Reader) (Image, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return Parse(string(b))
}

// Read returns the value at address addr. Addresses beyond the end of the
// image read as 0.
func (img Image) Read(addr int) (Cell, error) {
	if addr < 0 {
		return 0, &Fault{Kind: InvalidAddress, Addr: addr}
	}
	if addr >= len(img) {
		return 0, nil
	}
	return img[addr], nil
}

// MaxAddress is the highest address an Image can be written to.
const MaxAddress = 1<<26 - 1

// Write sets the value at address addr. The image grows as needed and the gap
// between the previous end of the image and addr is zero filled. Addresses
// outside of [0, MaxAddress] are an InvalidAddress fault.
func (img *Image) Write(addr int, v Cell) error {
	if addr < 0 || addr > MaxAddress {
		return &Fault{Kind: InvalidAddress, Addr: addr}
	}
	img.grow(addr + 1)
	(*img)[addr] = v
	return nil
}

// grow extends the logical size of the image to at least n cells.
func (img *Image) grow(n int) {
	m := *img
	if n <= len(m) {
		return
	}
	if n <= cap(m) {
		// cells between len and cap may hold stale data from a previous shrink.
		clear(m[len(m):n])
		*img = m[:n]
		return
	}
	*img = append(m, make(Image, n-len(m))...)
}

// Clone returns a deep copy of the image.
func (img Image) Clone() Image {
	if img == nil {
		return nil
	}
	c := make(Image, len(img))
	copy(c, img)
	return c
}

// String returns the image in program text format.
func (img Image) String() string {
	var b []byte
	for n, v := range img {
		if n > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
	}
	return string(b)
}
