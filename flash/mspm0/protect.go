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

// protectBit identifies a single protection bit by its register index
// (relative to the bank's protectRegBase) and bit position within that
// register.
type protectBit struct {
	reg int
	bit int
}

// protectRegMap is the subtle sector-to-protection-bit mapping
// described in spec.md §4.1.2. It is a pure function of bank kind,
// main bank count/size, and sector index.
func (b *Bank) protectRegMap(s int) (protectBit, error) {
	switch b.Base {
	case NONMAIN:
		pb := protectBit{reg: s / 32, bit: s % 32}
		return b.validateProtectBit(pb)

	case MAIN:
		if s < 32 {
			return b.validateProtectBit(protectBit{reg: 0, bit: s})
		}

		bankSize := int(b.mainBankSizeSectors)
		if bankSize == 0 {
			return protectBit{}, errors.Errorf(errors.DriverBug, "main bank size unknown (bank not probed)")
		}
		sInBank := s & (bankSize - 1)

		switch {
		case sInBank < 256:
			var bit int
			if b.MainBankCount == 1 {
				bit = (sInBank - 32) / 8
			} else {
				bit = sInBank / 8
			}
			return b.validateProtectBit(protectBit{reg: 1, bit: bit})
		case sInBank < 512:
			return b.validateProtectBit(protectBit{reg: 2, bit: (sInBank - 256) / 8})
		default:
			return protectBit{}, errors.Errorf(errors.MappingOutOfRange, s)
		}

	case DATA:
		return protectBit{}, errors.Errorf(errors.ProtectionUnavailable)

	default:
		return protectBit{}, errors.Errorf(errors.DriverBug, "unrecognised bank kind")
	}
}

// validateProtectBit enforces the post-mapping invariant from spec.md
// §4.1.2: reg must be < protectRegCount and bit < 32.
func (b *Bank) validateProtectBit(pb protectBit) (protectBit, error) {
	if pb.reg < 0 || pb.reg >= b.protectRegCount {
		return protectBit{}, errors.Errorf(errors.DriverBug, "protection register index %d out of range", pb.reg)
	}
	if pb.bit < 0 || pb.bit >= 32 {
		return protectBit{}, errors.Errorf(errors.DriverBug, "protection bit %d out of range", pb.bit)
	}
	return pb, nil
}

// readProtectRegs snapshots every protection register for the bank in
// one batch. Returns nil for a DATA bank, which has none.
func (b *Bank) readProtectRegs(bus TargetBus) ([]uint32, error) {
	if b.protectRegCount == 0 {
		return nil, nil
	}
	regs := make([]uint32, b.protectRegCount)
	for i := range regs {
		v, err := bus.ReadU32(b.protectRegBase + uint32(i)*4)
		if err != nil {
			return nil, err
		}
		regs[i] = v
	}
	return regs, nil
}

func (b *Bank) writeProtectRegs(bus TargetBus, regs []uint32) error {
	for i, v := range regs {
		if err := bus.WriteU32(b.protectRegBase+uint32(i)*4, v); err != nil {
			return err
		}
	}
	return nil
}

// applyProtectState re-derives every sector's tri-state Protected field
// from a snapshot of the protection registers.
func (b *Bank) applyProtectState(regs []uint32) error {
	if b.protectRegCount == 0 {
		for i := range b.Sectors {
			b.Sectors[i].Protected = StateNo
		}
		return nil
	}

	for i := range b.Sectors {
		pb, err := b.protectRegMap(i)
		if err != nil {
			return err
		}
		if regs[pb.reg]&(1<<uint(pb.bit)) != 0 {
			b.Sectors[i].Protected = StateYes
		} else {
			b.Sectors[i].Protected = StateNo
		}
	}
	return nil
}

// ProtectCheck reads the hardware protection registers and refreshes
// every sector's Protected tri-state. The pre-read is mandatory: the
// driver never trusts cached sector state.
func (b *Bank) ProtectCheck(bus TargetBus) error {
	if err := b.requireProbed(); err != nil {
		return err
	}

	regs, err := b.readProtectRegs(bus)
	if err != nil {
		return err
	}
	return b.applyProtectState(regs)
}

// Protect sets (set != 0) or clears (set == 0) the protection bits for
// every sector in [first, last), then restores the derived sector
// state from the values actually written.
func (b *Bank) Protect(bus TargetBus, first, last int, set int) error {
	if err := b.requireProbed(); err != nil {
		return err
	}

	protect := set != 0

	regs, err := b.readProtectRegs(bus)
	if err != nil {
		return err
	}

	for s := first; s < last; s++ {
		pb, err := b.protectRegMap(s)
		if err != nil {
			return err
		}
		mask := uint32(1) << uint(pb.bit)
		if protect {
			regs[pb.reg] |= mask
		} else {
			regs[pb.reg] &^= mask
		}
	}

	if err := b.writeProtectRegs(bus, regs); err != nil {
		return err
	}

	return b.applyProtectState(regs)
}

// anyProtected reports whether any sector in [first, last) is
// currently flagged protected, re-reading hardware state first.
func (b *Bank) anyProtected(bus TargetBus, first, last int) (bool, error) {
	if err := b.ProtectCheck(bus); err != nil {
		return false, err
	}
	for s := first; s < last; s++ {
		if b.Sectors[s].Protected == StateYes {
			return true, nil
		}
	}
	return false, nil
}
