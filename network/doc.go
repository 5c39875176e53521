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

// Package network runs groups of Intcode machines that exchange values
// through shared streams.
//
// The machines are driven cooperatively by a single goroutine: each one is
// executed in turn until it halts or waits for input. RoundRobin implements
// this loop. Ring and Network build on top of it for the two common layouts:
//
//   - A Ring chains machines running the same program, the output of each one
//     feeding the input of the next, the last one feeding the first.
//   - A Network connects nodes through a router: nodes send packets made of a
//     destination address and two values, the router delivers them to the
//     input of the destination node. Packets sent to the NAT address are kept
//     by the router and used to wake up the network when it becomes idle.
package network
