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

import "github.com/jetsetilly/mspm0adapter/errors"

// Erase erases every sector in the half-open range [first, last).
// The target must be halted and the bank must be probed; no sector in
// the range may be protected. Every sector's protection registers are
// restored to their pre-erase values once that sector's erase
// completes, per spec.md's protection-restore invariant.
func (b *Bank) Erase(bus TargetBus, halt HaltState, first, last int, keepAlive KeepAlive) error {
	if err := b.requireProbed(); err != nil {
		return err
	}

	halted, err := halt.Halted()
	if err != nil {
		return err
	}
	if !halted {
		return errors.Errorf(errors.NotHalted)
	}

	if first < 0 || last > len(b.Sectors) || first > last {
		return errors.Errorf(errors.DriverBug, "sector range [%d,%d) out of bounds", first, last)
	}

	protectedSector, err := b.firstProtected(bus, first, last)
	if err != nil {
		return err
	}
	if protectedSector >= 0 {
		return errors.Errorf(errors.SectorProtected, protectedSector)
	}

	regs, err := b.readProtectRegs(bus)
	if err != nil {
		return err
	}

	for s := first; s < last; s++ {
		if err := bus.WriteU32(regCMDTYPE, cmdtypeErase|cmdtypeSector); err != nil {
			return err
		}
		if err := bus.WriteU32(regCMDADDR, b.Sectors[s].Offset); err != nil {
			return err
		}
		if err := b.executeCommand(bus, keepAlive); err != nil {
			return err
		}
		if err := b.writeProtectRegs(bus, regs); err != nil {
			return err
		}
		b.Sectors[s].Erased = StateYes
	}

	return b.applyProtectState(regs)
}

// firstProtected returns the index of the first protected sector in
// [first, last), or -1 if none is protected. It re-reads hardware
// state first; cached sector state is never trusted.
func (b *Bank) firstProtected(bus TargetBus, first, last int) (int, error) {
	if err := b.ProtectCheck(bus); err != nil {
		return -1, err
	}
	for s := first; s < last; s++ {
		if b.Sectors[s].Protected == StateYes {
			return s, nil
		}
	}
	return -1, nil
}
