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

// The intcode command line tool runs Intcode programs.
//
// Usage:
//
//	-ascii
//		  ASCII console mode
//	-debug
//		  enable debug diagnostics
//	-disasm
//		  disassemble the program and exit
//	-dump
//		  dump machine state upon exit
//	-image filename
//		  Load program from file filename (default "input.txt")
//	-input values
//		  comma separated values to send to the program on startup (can be specified multiple times)
//	-log-file filename
//		  also write JSON logs to filename
//	-log-level level
//		  log level (debug, info, warn, error) (default INFO)
//	-network filename
//		  run the machines described in TOML file filename
//	-noraw
//		  disable raw terminal IO
//	-patch addr=value
//		  set memory at addr=value before running (can be specified multiple times)
//
// -image: the program file contains comma separated integers. If the file name
// ends with ".asm", it is assembled with package github.com/db47h/intcode/asm
// instead.
//
// By default, values output by the program are printed one per line. When the
// program needs input, intcode reads a line of integers from stdin. Reaching
// the end of stdin while the program waits for input is an error.
//
// -ascii: the program input and output are ASCII text. Output values outside
// of the ASCII range are printed in decimal on their own line. Input is read
// one line at a time.
//
// -noraw: in ASCII mode, intcode switches the terminal to raw mode unless
// stdin has been redirected, and handles line editing itself. This flag
// disables this behavior.
//
// -patch: change the program before running it. For example, to replace the
// values at addresses 1 and 2:
//
//	intcode -patch 1=12 -patch 2=2
//
// -debug: will print a full stacktrace and the faulting instruction should the
// machine crash.
//
// -network: runs several copies of a program connected together. The TOML file
// describes either a ring:
//
//	program = "day07.txt"	# relative to the config file
//	[ring]
//	phases = [9, 8, 7, 6, 5]
//	signal = 0
//	search = true		# try all permutations of phases
//	max-rounds = 1000
//
// or a packet network:
//
//	program = "day23.txt"
//	[network]
//	nodes = 50
//	nat = 255
//	mode = "repeat"		# or "first"
//
// -log-level, -log-file: the network runner logs to stderr. Logs can also be
// written as JSON to a file.
package main
