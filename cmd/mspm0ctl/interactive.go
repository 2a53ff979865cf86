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

package main

import (
	"fmt"
	"strings"

	"github.com/pkg/term"

	"github.com/jetsetilly/mspm0adapter/dap/dmem"
)

// runInteractive drives dap's configuration surface one line at a
// time from a raw-mode terminal: each keystroke is echoed locally
// (the terminal driver won't do it for us in raw mode) and a line is
// dispatched to dispatchDapLine once Enter is seen.
func runInteractive(dap *dmem.Dap) error {
	t, err := term.Open("/dev/tty", term.RawMode)
	if err != nil {
		return fmt.Errorf("opening controlling terminal: %w", err)
	}
	defer t.Restore()
	defer t.Close()

	fmt.Fprint(t, "mspm0ctl dap interactive session. ctrl-d to quit.\r\n> ")

	var line strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := t.Read(buf)
		if err != nil || n == 0 {
			fmt.Fprint(t, "\r\n")
			return nil
		}

		switch buf[0] {
		case 0x04: // ctrl-d
			fmt.Fprint(t, "\r\n")
			return nil
		case '\r', '\n':
			fmt.Fprint(t, "\r\n")
			dispatchDapLine(t, dap, line.String())
			line.Reset()
			fmt.Fprint(t, "> ")
		case 0x7f, 0x08: // backspace/delete
			if line.Len() > 0 {
				s := line.String()
				line.Reset()
				line.WriteString(s[:len(s)-1])
				fmt.Fprint(t, "\b \b")
			}
		default:
			line.WriteByte(buf[0])
			t.Write(buf)
		}
	}
}

// dispatchDapLine interprets one typed command line against the
// dmem command subtree described in spec.md §6. Only info and device
// are recognised; every other command is reported as unrecognised.
func dispatchDapLine(w *term.Term, dap *dmem.Dap, line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	cfg := dap.Config()
	switch fields[0] {
	case "info":
		cfg.Info(w)
	case "device":
		if len(fields) < 2 {
			fmt.Fprint(w, "usage: device <path>\r\n")
			return
		}
		cfg.SetDevicePath(fields[1])
	default:
		fmt.Fprintf(w, "unrecognised command %q\r\n", fields[0])
	}
}
