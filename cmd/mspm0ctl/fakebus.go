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

// fakeBus is a TargetBus backed by a plain register map, standing in
// for real hardware when -fake is given. STATCMD always reports
// immediate completion, so erase/program invocations run to
// completion without a real flash controller attached.
type fakeBus struct {
	regs map[uint32]uint32
}

func newFakeBus() *fakeBus {
	regs := make(map[uint32]uint32)
	// a plausible MSPM0G3507SRGZR identity, so `probe -fake` has
	// something recognisable to report.
	regs[identityBase+0x04] = uint32(0x1)<<28 | uint32(0xBB88)<<12 | 0x1
	regs[identityBase+0x08] = uint32(0xF7)<<16 | 0xAE2D
	regs[identityBase+0x18] = uint32(0)<<26 | uint32(32)<<16 | uint32(1)<<12 | 128
	return &fakeBus{regs: regs}
}

const statCmdDoneAndPass = 1<<0 | 1<<1

func (f *fakeBus) ReadU32(addr uint32) (uint32, error) {
	if addr == flashCtrlBase+0x13D0 { // STATCMD
		return statCmdDoneAndPass, nil
	}
	return f.regs[addr], nil
}

func (f *fakeBus) WriteU32(addr uint32, val uint32) error {
	f.regs[addr] = val
	return nil
}
