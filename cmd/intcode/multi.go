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
	"fmt"
	"io"
	"log/slog"

	"github.com/db47h/intcode/network"
	"github.com/pkg/errors"
)

// runMulti runs the ring or network described by the config file at path and
// writes the result to out.
func runMulti(path string, log *slog.Logger, out io.Writer) error {
	c, err := loadConfig(path)
	if err != nil {
		return err
	}
	img, err := loadImage(c.ProgramPath())
	if err != nil {
		return err
	}
	log = log.With("config", path)

	if r := c.Ring; r != nil {
		opts := []network.Option{network.WithLogger(log), network.MaxRounds(r.MaxRounds)}
		if r.Search {
			best, phases, err := network.MaxSignal(img, r.Phases, r.Signal, opts...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "%d %v\n", best, phases)
			return errors.Wrap(err, "write failed")
		}
		ring, err := network.NewRing(img, r.Phases, r.Signal, opts...)
		if err != nil {
			return err
		}
		v, err := ring.Run()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, v)
		return errors.Wrap(err, "write failed")
	}

	nc := c.Network
	n, err := network.New(img, nc.Nodes,
		network.WithLogger(log),
		network.NATAddress(nc.NAT),
		network.MaxRounds(nc.MaxRounds))
	if err != nil {
		return err
	}
	v, err := n.Run(nc.Mode)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, v)
	return errors.Wrap(err, "write failed")
}
