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

import "sync"

// Stream is an unbounded FIFO queue of cells. A Stream is usually the output
// of one instance and the input of another one, or of the caller driving them.
//
// Streams are safe for concurrent use. When several instances write to the
// same stream, the interleaving of their values is decided by the loop driving
// the instances, not by the VM.
type Stream struct {
	mu sync.Mutex
	q  []Cell
}

// NewStream returns a new stream holding the given values.
func NewStream(values ...Cell) *Stream {
	s := new(Stream)
	s.q = append(s.q, values...)
	return s
}

// Write appends v to the stream.
func (s *Stream) Write(v Cell) {
	s.mu.Lock()
	s.q = append(s.q, v)
	s.mu.Unlock()
}

// WriteAll appends all values to the stream, in order.
func (s *Stream) WriteAll(values ...Cell) {
	s.mu.Lock()
	s.q = append(s.q, values...)
	s.mu.Unlock()
}

// Read removes and returns the value at the front of the stream. It does not
// block: ok is false if the stream is empty.
func (s *Stream) Read() (v Cell, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.q) == 0 {
		return 0, false
	}
	v = s.q[0]
	s.q = s.q[1:]
	if len(s.q) == 0 {
		s.q = nil
	}
	return v, true
}

// Peek returns the value at the front of the stream without removing it.
func (s *Stream) Peek() (v Cell, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.q) == 0 {
		return 0, false
	}
	return s.q[0], true
}

// ReadAll drains the stream and returns all values that were queued. It
// returns nil if the stream is empty.
func (s *Stream) ReadAll() []Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.q) == 0 {
		return nil
	}
	q := s.q
	s.q = nil
	return q
}

// Values returns a copy of the queued values without draining the stream.
func (s *Stream) Values() []Cell {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.q) == 0 {
		return nil
	}
	return append([]Cell(nil), s.q...)
}

// Len returns the number of queued values.
func (s *Stream) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.q)
}
