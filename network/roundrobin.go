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

package network

import (
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Errors returned by the schedulers.
var (
	ErrRoundLimit = errors.New("round limit reached")
	ErrDeadlock   = errors.New("all machines waiting on input")
	ErrNoOutput   = errors.New("no output")
)

// RoundRobin executes the given machines in order, over and over. After each
// call to Execute, it calls turn with the index of the machine and the state
// it is in. It returns when turn returns true or a non-nil error.
//
// An error returned by a machine is wrapped with the index of that machine,
// use errors.Cause to retrieve the original *vm.Fault.
func RoundRobin(machines []*vm.Instance, turn func(idx int, st vm.State) (bool, error)) error {
	if len(machines) == 0 {
		return errors.New("no machines")
	}
	for {
		for idx, m := range machines {
			st, err := m.Execute()
			if err != nil {
				return errors.Wrapf(err, "machine %d", idx)
			}
			done, err := turn(idx, st)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// progress returns the total number of instructions executed by machines.
func progress(machines []*vm.Instance) int64 {
	var n int64
	for _, m := range machines {
		n += m.InstructionCount()
	}
	return n
}
