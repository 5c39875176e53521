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
	"log/slog"
	"strconv"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// Mode selects the termination condition of Network.Run.
type Mode int

// Network run modes.
const (
	// FirstNAT stops at the first packet sent to the NAT.
	FirstNAT Mode = iota
	// NATRepeat stops when the NAT sends the same Y value to node 0 twice in
	// a row.
	NATRepeat
)

var modeNames = [...]string{
	FirstNAT:  "first",
	NATRepeat: "repeat",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// UnmarshalText implements encoding.TextUnmarshaler. Valid values are "first"
// and "repeat".
func (m *Mode) UnmarshalText(text []byte) error {
	for k, n := range modeNames {
		if string(text) == n {
			*m = Mode(k)
			return nil
		}
	}
	return errors.Errorf("invalid network mode %q", text)
}

// Packet is a message between nodes.
type Packet struct {
	Dst  int
	X, Y vm.Cell
}

// LogValue implements slog.LogValuer.
func (p Packet) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("dst", p.Dst),
		slog.Int64("x", int64(p.X)),
		slog.Int64("y", int64(p.Y)))
}

// Network is a set of nodes running the same program. Each node reads its
// address as its first input value, then sends and receives packets.
//
// All nodes share the same output stream, read by the router after each turn.
// Values of a packet that is not complete yet are kept aside until the node
// that sent them writes the rest. A node that waits for input with an empty
// input stream receives -1.
type Network struct {
	*config
	nodes   []*vm.Instance
	out     *vm.Stream
	pending [][]vm.Cell
	natPkt  *Packet
	sent    int
}

// New returns a new network of size nodes running a copy of img.
func New(img vm.Image, size int, opts ...Option) (*Network, error) {
	if size <= 0 {
		return nil, errors.Errorf("invalid network size %d", size)
	}
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	if c.nat < size {
		return nil, errors.Errorf("NAT address %d conflicts with node address", c.nat)
	}
	n := &Network{config: c, out: vm.NewStream(), pending: make([][]vm.Cell, size)}
	n.nodes = make([]*vm.Instance, size)
	for addr := range n.nodes {
		m, err := vm.New(img.Clone(), vm.Input(vm.NewStream(vm.Cell(addr))), vm.Output(n.out))
		if err != nil {
			return nil, errors.Wrapf(err, "node %d", addr)
		}
		n.nodes[addr] = m
	}
	return n, nil
}

// Nodes returns the nodes in the network. Nodes[addr] is the node with the
// given address.
func (n *Network) Nodes() []*vm.Instance {
	return n.nodes
}

// NAT returns the last packet received by the NAT, if any.
func (n *Network) NAT() (Packet, bool) {
	if n.natPkt == nil {
		return Packet{}, false
	}
	return *n.natPkt, true
}

// route delivers all complete packets sent by the node at address src. It
// returns the number of packets routed.
func (n *Network) route(src int) (int, error) {
	q := append(n.pending[src], n.out.ReadAll()...)
	defer func() {
		if len(q) == 0 {
			q = nil
		}
		n.pending[src] = q
	}()
	var count int
	for len(q) >= 3 {
		p := Packet{Dst: int(q[0]), X: q[1], Y: q[2]}
		q = q[3:]
		count++
		n.sent++
		switch {
		case p.Dst == n.nat:
			n.log.Debug("packet to NAT", "packet", p)
			n.natPkt = &p
		case p.Dst >= 0 && p.Dst < len(n.nodes):
			n.log.Debug("packet", "packet", p)
			n.nodes[p.Dst].Input().WriteAll(p.X, p.Y)
		default:
			return count, errors.Errorf("packet to unknown address %d", p.Dst)
		}
	}
	return count, nil
}

// Run runs the network until the condition given by mode is met and returns
// the corresponding Y value.
//
// In FirstNAT mode, Run returns the Y value of the first packet sent to the
// NAT.
//
// In NATRepeat mode, whenever a whole round completes without any packet
// being sent, the network is idle and the NAT sends its last packet to node 0.
// Run returns the first Y value sent by the NAT twice in a row.
func (n *Network) Run(mode Mode) (vm.Cell, error) {
	var (
		rounds   int
		routed   int
		lastY    vm.Cell
		lastSent bool
		result   vm.Cell
	)
	n.log.Info("network started", "nodes", len(n.nodes), "mode", mode)
	err := RoundRobin(n.nodes, func(addr int, st vm.State) (bool, error) {
		if st == vm.Halted {
			return false, errors.Errorf("node %d halted", addr)
		}
		if st == vm.WaitingOnInput {
			n.nodes[addr].Input().Write(-1)
		}
		c, err := n.route(addr)
		if err != nil {
			return false, errors.Wrapf(err, "node %d", addr)
		}
		routed += c
		if mode == FirstNAT && n.natPkt != nil {
			result = n.natPkt.Y
			return true, nil
		}
		if addr < len(n.nodes)-1 {
			return false, nil
		}

		// end of round
		rounds++
		idle := routed == 0
		routed = 0
		if idle && n.natPkt != nil {
			p := *n.natPkt
			n.log.Info("network idle", "round", rounds, "nat", p)
			if lastSent && p.Y == lastY {
				result = p.Y
				return true, nil
			}
			n.nodes[0].Input().WriteAll(p.X, p.Y)
			lastY, lastSent = p.Y, true
		}
		if n.maxRounds > 0 && rounds >= n.maxRounds {
			return false, errors.Wrapf(ErrRoundLimit, "after %d rounds", rounds)
		}
		return false, nil
	})
	if err != nil {
		return 0, err
	}
	n.log.Info("network stopped", "rounds", rounds, "packets", n.sent, "result", result)
	return result, nil
}
