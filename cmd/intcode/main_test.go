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
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/intcode/vm"
	"github.com/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	fn := filepath.Join(dir, name)
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestPatchList(t *testing.T) {
	var p patchList
	for _, s := range []string{"1=12", "2=-2"} {
		if err := p.Set(s); err != nil {
			t.Fatal(err)
		}
	}
	if s := p.String(); s != "1=12 2=-2" {
		t.Errorf("Expected 1=12 2=-2, got %s", s)
	}
	img := vm.Image{1, 0, 0, 0, 99}
	if err := p.apply(&img); err != nil {
		t.Fatal(err)
	}
	if s := img.String(); s != "1,12,-2,0,99" {
		t.Errorf("Expected 1,12,-2,0,99, got %s", s)
	}
	for _, s := range []string{"12", "a=1", "1=b"} {
		if err := p.Set(s); err == nil {
			t.Errorf("%s: expected error", s)
		}
	}
	p = patchList{{-1, 0}}
	if err := p.apply(&img); err == nil {
		t.Error("Expected error for negative address")
	}
}

func TestParseValues(t *testing.T) {
	v, err := parseValues(" 1, 2  -3\n")
	if err != nil {
		t.Fatal(err)
	}
	if s := vm.Image(v).String(); s != "1,2,-3" {
		t.Errorf("Expected 1,2,-3, got %s", s)
	}
	if v, err = parseValues("\n"); err != nil || v != nil {
		t.Errorf("Expected nil, got %v, %v", v, err)
	}
	if _, err = parseValues("1,x"); err == nil {
		t.Error("Expected error")
	}

	var l cellList
	l.Set("1,2")
	l.Set("3")
	if s := l.String(); s != "1,2,3" {
		t.Errorf("Expected 1,2,3, got %s", s)
	}
}

func TestLoadImage(t *testing.T) {
	dir := t.TempDir()
	img, err := loadImage(writeFile(t, dir, "prog.txt", "1,0,0,0,99\n"))
	if err != nil {
		t.Fatal(err)
	}
	if img.String() != "1,0,0,0,99" {
		t.Errorf("Unexpected image %v", img)
	}
	img, err = loadImage(writeFile(t, dir, "prog.asm", "add 0 0 0 hlt"))
	if err != nil {
		t.Fatal(err)
	}
	if img.String() != "1,0,0,0,99" {
		t.Errorf("Unexpected image %v", img)
	}
	if _, err = loadImage(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected error")
	}
	if _, err = loadImage(writeFile(t, dir, "bad.txt", "1,a")); err == nil {
		t.Error("Expected error")
	}
}

func TestRunNumeric(t *testing.T) {
	// adds pairs of values until it reads 0
	img, _ := vm.Parse("3,20,1006,20,16,3,21,1,20,21,22,4,22,1105,1,0,99")
	i, _ := vm.New(img.Clone(), vm.Input(vm.NewStream(1, 2)))
	var out bytes.Buffer
	err := runNumeric(i, strings.NewReader("3 4\n\n5,\n6\n0\n"), &out)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "3\n7\n11\n" {
		t.Errorf("Expected 3 7 11, got %q", got)
	}

	i, _ = vm.New(img.Clone())
	err = runNumeric(i, strings.NewReader("1"), io.Discard)
	if errors.Cause(err) != vm.ErrInputRequired {
		t.Errorf("Expected ErrInputRequired, got %v", err)
	}

	i, _ = vm.New(img.Clone())
	if err = runNumeric(i, strings.NewReader("1 z\n"), io.Discard); err == nil {
		t.Error("Expected invalid input error")
	}
}

func TestRunMulti(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "amp.txt", "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5")
	writeFile(t, dir, "chain.txt", "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0")
	// node 0 sends 42 to the NAT, then all nodes wait
	writeFile(t, dir, "node.txt", "3,100,1005,100,11,104,255,104,1,104,42,3,101,1105,1,11")

	data := []struct {
		name string
		cfg  string
		want string
	}{
		{"ring", "program = \"amp.txt\"\n[ring]\nphases = [9,8,7,6,5]\n", "139629729\n"},
		{"search", "program = \"chain.txt\"\n[ring]\nphases = [0,1,2,3,4]\nsearch = true\n", "43210 [4 3 2 1 0]\n"},
		{"nat", "program = \"node.txt\"\n[network]\nnodes = 3\nmode = \"first\"\n", "42\n"},
		{"repeat", "program = \"node.txt\"\n[network]\nnodes = 3\nnat = 255\nmode = \"repeat\"\nmax-rounds = 50\n", "42\n"},
	}
	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			fn := writeFile(t, dir, d.name+".toml", d.cfg)
			var out bytes.Buffer
			if err := runMulti(fn, log, &out); err != nil {
				t.Fatal(err)
			}
			if got := out.String(); got != d.want {
				t.Errorf("Expected %q, got %q", d.want, got)
			}
		})
	}
	if !strings.Contains(logs.String(), "network stopped") {
		t.Errorf("Expected network logs, got:\n%s", logs.String())
	}
}
