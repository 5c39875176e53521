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
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	slogmulti "github.com/samber/slog-multi"
)

var logLevel = new(slog.LevelVar)

// logLevelFlag implements flag.Value for -log-level.
type logLevelFlag struct{}

func (logLevelFlag) String() string { return logLevel.Level().String() }
func (logLevelFlag) Set(s string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return err
	}
	logLevel.Set(l)
	return nil
}
func (logLevelFlag) Get() interface{} { return logLevel.Level() }

// newLogger returns a logger writing text to w and, if fileName is not empty,
// JSON to the named file. The returned function closes the log file.
func newLogger(w io.Writer, fileName string) (*slog.Logger, func() error, error) {
	opts := &slog.HandlerOptions{Level: logLevel}
	handlers := []slog.Handler{slog.NewTextHandler(w, opts)}
	closeFn := func() error { return nil }
	if fileName != "" {
		f, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, errors.Wrap(err, "cannot open log file")
		}
		handlers = append(handlers, slog.NewJSONHandler(f, opts))
		closeFn = f.Close
	}
	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}
