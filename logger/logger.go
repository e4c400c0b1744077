/*
 * logger.go, part of gosasa.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package logger prints progress messages for gosasa calculations: atom counts
// kept by the filter, grid dimensions, worker counts and the time spent in each
// stage of a run. Nothing is printed unless verbose mode is on (the --verbose
// flag of the gosasa command). Errors are returned to the caller, not logged.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	now     = time.Now
)

// SetVerbose turns verbose mode on or off.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether verbose mode is on.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets where messages go. The default is os.Stderr, so
// the tables written to stdout are not mixed with progress messages.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func printf(prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints details of the calculation, such as the grid dimensions.
func Debug(format string, args ...any) {
	printf("[DEBUG] ", format, args...)
}

// Info prints progress, such as atom and residue counts.
func Info(format string, args ...any) {
	printf("[INFO] ", format, args...)
}

// Warn prints something the user may want to check, like a residue
// without a reference area.
func Warn(format string, args ...any) {
	printf("[WARN] ", format, args...)
}

// Stage prints a header for a stage of a run (reading, filtering, the area
// calculation...) and returns a function that prints the time spent in it.
//
//	done := logger.Stage("Filter")
//	set, err := Filter(raw, o)
//	done()
func Stage(name string) func() {
	start := now()
	printf("\n=== ", "%s ===", name)
	return func() {
		printf("[INFO] ", "%s done in %v", name, now().Sub(start).Round(time.Microsecond))
	}
}
