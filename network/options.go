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

	"github.com/pkg/errors"
)

// DefaultNAT is the default address of the NAT in a Network.
const DefaultNAT = 255

type config struct {
	log       *slog.Logger
	maxRounds int
	nat       int
}

func newConfig(opts []Option) (*config, error) {
	c := &config{
		log: slog.New(slog.DiscardHandler),
		nat: DefaultNAT,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Option interface
type Option func(*config) error

// WithLogger sets the logger used to trace scheduling and routing events.
// Messages are logged at the debug level, except for network state changes.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		if l == nil {
			return errors.New("nil logger")
		}
		c.log = l
		return nil
	}
}

// MaxRounds limits the number of scheduling rounds. A round is complete when
// every machine has been executed once. 0 means no limit.
func MaxRounds(n int) Option {
	return func(c *config) error {
		if n < 0 {
			return errors.Errorf("invalid round limit %d", n)
		}
		c.maxRounds = n
		return nil
	}
}

// NATAddress sets the address of the NAT in a Network. It must not be the
// address of a node.
func NATAddress(addr int) Option {
	return func(c *config) error {
		if addr < 0 {
			return errors.Errorf("invalid NAT address %d", addr)
		}
		c.nat = addr
		return nil
	}
}
