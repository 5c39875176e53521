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

// Ring is a set of machines running the same program, connected in a loop:
// the output of machine n is the input of machine n+1, and the output of the
// last machine is the input of the first one.
type Ring struct {
	*config
	machines []*vm.Instance
	links    []*vm.Stream
}

// NewRing returns a new ring of len(phases) machines running a copy of img.
// The input of each machine is primed with its phase setting, the input of
// the first machine then receives the initial signal.
func NewRing(img vm.Image, phases []vm.Cell, signal vm.Cell, opts ...Option) (*Ring, error) {
	if len(phases) == 0 {
		return nil, errors.New("empty ring")
	}
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	r := &Ring{config: c}
	n := len(phases)
	r.links = make([]*vm.Stream, n)
	for k, p := range phases {
		r.links[k] = vm.NewStream(p)
	}
	r.links[0].Write(signal)
	r.machines = make([]*vm.Instance, n)
	for k := range r.machines {
		m, err := vm.New(img.Clone(), vm.Input(r.links[k]), vm.Output(r.links[(k+1)%n]))
		if err != nil {
			return nil, errors.Wrapf(err, "machine %d", k)
		}
		r.machines[k] = m
	}
	return r, nil
}

// Machines returns the machines in the ring.
func (r *Ring) Machines() []*vm.Instance {
	return r.machines
}

// Run runs the ring until the last machine halts and returns its last output.
//
// Run returns ErrDeadlock if no machine makes any progress during a whole
// round, and ErrRoundLimit if the round limit set with MaxRounds is reached.
func (r *Ring) Run() (vm.Cell, error) {
	n := len(r.machines)
	var rounds int
	var last int64
	err := RoundRobin(r.machines, func(idx int, st vm.State) (bool, error) {
		r.log.Debug("machine suspended", "machine", idx, "state", st)
		if idx < n-1 {
			return false, nil
		}
		if st == vm.Halted {
			return true, nil
		}
		rounds++
		p := progress(r.machines)
		if p == last {
			return false, ErrDeadlock
		}
		last = p
		if r.maxRounds > 0 && rounds >= r.maxRounds {
			return false, errors.Wrapf(ErrRoundLimit, "after %d rounds", rounds)
		}
		return false, nil
	})
	if err != nil {
		return 0, err
	}
	out := r.links[0].ReadAll()
	if len(out) == 0 {
		return 0, ErrNoOutput
	}
	r.log.Debug("ring halted", "rounds", rounds, "signal", out[len(out)-1])
	return out[len(out)-1], nil
}

// MaxSignal runs a ring for every permutation of settings and returns the
// highest output signal along with the corresponding phase settings.
func MaxSignal(img vm.Image, settings []vm.Cell, signal vm.Cell, opts ...Option) (vm.Cell, []vm.Cell, error) {
	var (
		best   vm.Cell
		phases []vm.Cell
		err    error
	)
	permute(append([]vm.Cell(nil), settings...), func(p []vm.Cell) bool {
		var r *Ring
		if r, err = NewRing(img, p, signal, opts...); err != nil {
			return false
		}
		var s vm.Cell
		if s, err = r.Run(); err != nil {
			err = errors.Wrapf(err, "phases %v", p)
			return false
		}
		if phases == nil || s > best {
			best = s
			phases = append(phases[:0], p...)
		}
		return true
	})
	if err != nil {
		return 0, nil, err
	}
	return best, phases, nil
}

// permute calls f for each permutation of a (Heap's algorithm) until f
// returns false. a is modified in place.
func permute(a []vm.Cell, f func([]vm.Cell) bool) {
	c := make([]int, len(a))
	if !f(a) {
		return
	}
	for i := 0; i < len(a); {
		if c[i] < i {
			if i%2 == 0 {
				a[0], a[i] = a[i], a[0]
			} else {
				a[c[i]], a[i] = a[i], a[c[i]]
			}
			if !f(a) {
				return
			}
			c[i]++
			i = 0
		} else {
			c[i] = 0
			i++
		}
	}
}
