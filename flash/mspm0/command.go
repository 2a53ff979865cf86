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

package mspm0

import (
	"strings"
	"time"

	"github.com/jetsetilly/mspm0adapter/errors"
)

// clock abstracts time.Now/time.Sleep so that the command-completion
// poll in pollCommand can be exercised by tests without an 8-second
// real-time wait.
type clock struct {
	now   func() time.Time
	sleep func(time.Duration)
}

func defaultClock() clock {
	return clock{now: time.Now, sleep: time.Sleep}
}

const (
	commandTimeout  = 8 * time.Second
	keepAlivePeriod = 500 * time.Millisecond
	pollInterval    = 10 * time.Millisecond
)

// decodeFailureBits names the STATCMD failure bits set in stat, for
// inclusion in a CommandFailed error.
func decodeFailureBits(stat uint32) string {
	var bits []string
	if stat&statCmdInProgress != 0 {
		bits = append(bits, "CMDINPROGRESS")
	}
	if stat&statFailWEProt != 0 {
		bits = append(bits, "FAILWEPROT")
	}
	if stat&statFailVerify != 0 {
		bits = append(bits, "FAILVERIFY")
	}
	if stat&statFailIllAddr != 0 {
		bits = append(bits, "FAILILLADDR")
	}
	if stat&statFailMode != 0 {
		bits = append(bits, "FAILMODE")
	}
	if stat&statFailMisc != 0 {
		bits = append(bits, "FAILMISC")
	}
	if len(bits) == 0 {
		return "unknown failure"
	}
	return strings.Join(bits, "|")
}

// pollCommand waits for CMDDONE to assert in STATCMD, calling
// keepAlive roughly every 500ms and giving up after 8 seconds of
// wall-clock time. A clear CMDPASS bit on completion is reported as
// CommandFailed with the decoded failure bits.
func (b *Bank) pollCommand(bus TargetBus, keepAlive KeepAlive) error {
	clk := b.clk
	if clk.now == nil || clk.sleep == nil {
		clk = defaultClock()
	}

	start := clk.now()
	lastKeepAlive := start

	for {
		stat, err := bus.ReadU32(regSTATCMD)
		if err != nil {
			return err
		}

		if stat&statCmdDone != 0 {
			if stat&statCmdPass == 0 {
				return errors.Errorf(errors.CommandFailed, decodeFailureBits(stat))
			}
			return nil
		}

		now := clk.now()
		if now.Sub(start) >= commandTimeout {
			return errors.Errorf(errors.Timeout, commandTimeout)
		}

		if now.Sub(lastKeepAlive) >= keepAlivePeriod {
			if keepAlive != nil {
				keepAlive()
			}
			lastKeepAlive = now
		}

		clk.sleep(pollInterval)
	}
}

// executeCommand writes CMDEXEC and waits for completion.
func (b *Bank) executeCommand(bus TargetBus, keepAlive KeepAlive) error {
	if err := bus.WriteU32(regCMDEXEC, cmdexecExecute); err != nil {
		return err
	}
	return b.pollCommand(bus, keepAlive)
}
