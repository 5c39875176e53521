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
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/db47h/intcode/network"
	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

// runConfig describes a multi-machine run. Exactly one of Network or Ring
// must be set.
type runConfig struct {
	Program string         `toml:"program"`
	Network *networkConfig `toml:"network"`
	Ring    *ringConfig    `toml:"ring"`

	// Dir is the directory containing the config file (set at load time).
	Dir string `toml:"-"`
}

type networkConfig struct {
	Nodes     int          `toml:"nodes"`
	NAT       int          `toml:"nat"`
	Mode      network.Mode `toml:"mode"`
	MaxRounds int          `toml:"max-rounds"`
}

type ringConfig struct {
	Phases    []vm.Cell `toml:"phases"`
	Signal    vm.Cell   `toml:"signal"`
	Search    bool      `toml:"search"`
	MaxRounds int       `toml:"max-rounds"`
}

// loadConfig parses the TOML file at path.
func loadConfig(path string) (*runConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read config")
	}
	c := runConfig{Network: &networkConfig{NAT: network.DefaultNAT}}
	md, err := toml.Decode(string(data), &c)
	if err != nil {
		return nil, errors.Wrapf(err, "parse error in %s", path)
	}
	if u := md.Undecoded(); len(u) > 0 {
		keys := make([]string, len(u))
		for n, k := range u {
			keys[n] = k.String()
		}
		return nil, errors.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if !md.IsDefined("network") {
		c.Network = nil
	}
	switch {
	case c.Network == nil && c.Ring == nil:
		return nil, errors.Errorf("%s: no [network] or [ring] section", path)
	case c.Network != nil && c.Ring != nil:
		return nil, errors.Errorf("%s: [network] and [ring] sections are mutually exclusive", path)
	case c.Program == "":
		return nil, errors.Errorf("%s: missing program", path)
	}
	c.Dir = filepath.Dir(path)
	return &c, nil
}

// ProgramPath returns the path of the program file. Relative paths are
// relative to the config file.
func (c *runConfig) ProgramPath() string {
	if filepath.IsAbs(c.Program) {
		return c.Program
	}
	return filepath.Join(c.Dir, c.Program)
}
