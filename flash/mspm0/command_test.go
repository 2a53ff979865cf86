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
	"testing"

	"github.com/jetsetilly/mspm0adapter/errors"
)

// TestPollCommandTimesOut drives the fake clock past the 8-second
// command timeout without CMDDONE ever asserting, and confirms
// pollCommand gives up with a Timeout error rather than looping
// forever.
func TestPollCommandTimesOut(t *testing.T) {
	b, bus := newProbedBank(t, MAIN, 128, 2, 0)
	fc := newFakeClock()
	b.clk = fc.asClock()

	bus.statSeq = []uint32{0} // CMDDONE never asserts

	err := b.pollCommand(bus, nil)
	if !errors.Is(err, errors.Timeout) {
		t.Fatalf("expected Timeout, got %v", err)
	}
	if fc.t.Equal(newFakeClock().t) {
		t.Fatalf("fake clock was never advanced")
	}
}

// TestPollCommandKeepAlive confirms keepAlive fires at roughly the
// 500ms cadence while waiting, using the fake clock to avoid a real
// wall-clock wait.
func TestPollCommandKeepAlive(t *testing.T) {
	b, bus := newProbedBank(t, MAIN, 128, 2, 0)
	fc := newFakeClock()
	b.clk = fc.asClock()

	// CMDDONE never asserts until the timeout fires; count keepAlive
	// calls along the way.
	bus.statSeq = []uint32{0}

	calls := 0
	err := b.pollCommand(bus, func() { calls++ })
	if !errors.Is(err, errors.Timeout) {
		t.Fatalf("expected Timeout, got %v", err)
	}

	// keep-alive fires at 500ms, 1000ms, ... 7500ms: 15 calls. the 16th
	// boundary, at 8000ms, is where the timeout check returns first.
	if calls < 14 || calls > 16 {
		t.Errorf("expected roughly 15 keep-alive calls over 8s, got %d", calls)
	}
}

// TestPollCommandSuccess confirms a CMDDONE|CMDPASS reading completes
// without error and without exhausting the fake clock.
func TestPollCommandSuccess(t *testing.T) {
	b, bus := newProbedBank(t, MAIN, 128, 2, 0)
	fc := newFakeClock()
	b.clk = fc.asClock()

	bus.statSeq = []uint32{0, 0, statCmdDone | statCmdPass}

	if err := b.pollCommand(bus, nil); err != nil {
		t.Fatalf("pollCommand: %v", err)
	}
}

// TestPollCommandFailureDecoded confirms CMDDONE without CMDPASS
// reports CommandFailed with the offending bits named.
func TestPollCommandFailureDecoded(t *testing.T) {
	b, bus := newProbedBank(t, MAIN, 128, 2, 0)
	fc := newFakeClock()
	b.clk = fc.asClock()

	bus.statSeq = []uint32{statCmdDone | statFailWEProt}

	err := b.pollCommand(bus, nil)
	if !errors.Is(err, errors.CommandFailed) {
		t.Fatalf("expected CommandFailed, got %v", err)
	}
}
