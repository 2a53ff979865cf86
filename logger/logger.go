// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package logger is a process-wide, capped ring buffer of log entries.
// FlashCore and DmemDap write warn-level fallbacks and diagnostic
// traces to it rather than to stderr directly, so that the host
// framework decides when and where the entries are surfaced.
package logger

import (
	"fmt"
	"io"
	"sync"
)

// maxEntries is the number of log entries retained before the oldest
// entries are discarded.
const maxEntries = 1000

type entry struct {
	tag     string
	message string
}

func (e entry) String() string {
	return fmt.Sprintf("%s: %s", e.tag, e.message)
}

var (
	mu      sync.Mutex
	entries []entry
)

// Log adds a new entry to the log. tag is a short subsystem identifier
// (eg. "flash" or "dmem"); the remaining arguments are formatted as
// with fmt.Sprintf.
func Log(tag string, format string, values ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	entries = append(entries, entry{
		tag:     tag,
		message: fmt.Sprintf(format, values...),
	})

	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
}

// Write writes every retained log entry, oldest first, to w.
func Write(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	for _, e := range entries {
		fmt.Fprintf(w, "%s\n", e)
	}
}

// Tail writes the most recent num entries, oldest first, to w. A num
// larger than the number of retained entries is not an error; every
// entry is written in that case.
func Tail(w io.Writer, num int) {
	mu.Lock()
	defer mu.Unlock()

	if num > len(entries) {
		num = len(entries)
	}

	for _, e := range entries[len(entries)-num:] {
		fmt.Fprintf(w, "%s\n", e)
	}
}

// Clear empties the log. Intended for use by tests.
func Clear() {
	mu.Lock()
	defer mu.Unlock()
	entries = nil
}
