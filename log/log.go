// Copyright 2026 The launchexp Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log is a thin leveled wrapper around the standard logger used by every launchexp package.
//
// Debug messages are dropped unless debug is enabled either by calling SetDebug or by setting
// the LAUNCHEXP_LOG environment variable to DEBUG or 1.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync"
)

const (
	infoPrefix  = "[INFO]  "
	warnPrefix  = "[WARN]  "
	debugPrefix = "[DEBUG] "
	fatalPrefix = "[FATAL] "
	panicPrefix = "[PANIC] "
)

var (
	std   = stdlog.New(os.Stderr, "", stdlog.LstdFlags)
	debug = false
	mutex sync.RWMutex
)

func init() {
	switch strings.ToUpper(os.Getenv("LAUNCHEXP_LOG")) {
	case "DEBUG", "1":
		debug = true
	}
}

// SetDebug enables or disables debug messages
func SetDebug(d bool) {
	mutex.Lock()
	defer mutex.Unlock()
	debug = d
}

// IsDebug returns true if debug messages are enabled
func IsDebug() bool {
	mutex.RLock()
	defer mutex.RUnlock()
	return debug
}

// SetOutput sets the output destination for the standard logger.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Flags returns the output flags for the standard logger.
func Flags() int {
	return std.Flags()
}

// SetFlags sets the output flags for the standard logger.
func SetFlags(flag int) {
	std.SetFlags(flag)
}

// Print calls Output to print to the standard logger.
// Arguments are handled in the manner of fmt.Print.
func Print(v ...interface{}) {
	std.Output(2, infoPrefix+fmt.Sprint(v...))
}

// Printf calls Output to print to the standard logger.
// Arguments are handled in the manner of fmt.Printf.
func Printf(format string, v ...interface{}) {
	std.Output(2, infoPrefix+fmt.Sprintf(format, v...))
}

// Println calls Output to print to the standard logger.
// Arguments are handled in the manner of fmt.Println.
func Println(v ...interface{}) {
	std.Output(2, infoPrefix+fmt.Sprintln(v...))
}

// Warnf prints a warning message to the standard logger.
func Warnf(format string, v ...interface{}) {
	std.Output(2, warnPrefix+fmt.Sprintf(format, v...))
}

// Fatal is equivalent to Print() followed by a call to os.Exit(1).
func Fatal(v ...interface{}) {
	std.Output(2, fatalPrefix+fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf is equivalent to Printf() followed by a call to os.Exit(1).
func Fatalf(format string, v ...interface{}) {
	std.Output(2, fatalPrefix+fmt.Sprintf(format, v...))
	os.Exit(1)
}

// Panicf is equivalent to Printf() followed by a call to panic().
func Panicf(format string, v ...interface{}) {
	s := fmt.Sprintf(format, v...)
	std.Output(2, panicPrefix+s)
	panic(s)
}

// Debug calls Output to print to the standard logger if debug is enabled.
// Arguments are handled in the manner of fmt.Print.
func Debug(v ...interface{}) {
	if IsDebug() {
		std.Output(2, debugPrefix+fmt.Sprint(v...))
	}
}

// Debugf calls Output to print to the standard logger if debug is enabled.
// Arguments are handled in the manner of fmt.Printf.
func Debugf(format string, v ...interface{}) {
	if IsDebug() {
		std.Output(2, debugPrefix+fmt.Sprintf(format, v...))
	}
}

// Debugln calls Output to print to the standard logger if debug is enabled.
// Arguments are handled in the manner of fmt.Println.
func Debugln(v ...interface{}) {
	if IsDebug() {
		std.Output(2, debugPrefix+fmt.Sprintln(v...))
	}
}
