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

// byteEnable builds CMDBYTEN for an n-byte write within one flash
// word: the low n bits, one per valid data byte, OR'd with the ECC
// chunk enable bits for the controller's flash word size.
func byteEnable(n int) uint32 {
	mask := uint32(1)<<uint(n) - 1

	switch flashWordSize {
	case 8:
		mask |= 1 << 8
	case 16:
		mask |= 1 << 16
		if n > 8 {
			mask |= 1 << 17
		}
	}

	return mask
}

// sectorSizeBytes returns the size of one sector for this bank's kind.
func (b *Bank) sectorSizeBytes() uint32 {
	if b.Base == NONMAIN {
		return 512
	}
	return sectorSize
}

// sectorRange returns the half-open sector index range
// [first, last) covered by the byte range [offset, offset+count).
func (b *Bank) sectorRange(offset uint32, count int) (int, int) {
	ss := b.sectorSizeBytes()
	first := int(offset / ss)
	last := int((offset+uint32(count)-1)/ss) + 1
	return first, last
}

// Write programs data at offset, which must be a multiple of the
// controller's flash word size. An empty data slice is a no-op
// regardless of alignment, per spec.md's program idempotence
// property. No sector overlapping the write may be protected.
func (b *Bank) Write(bus TargetBus, halt HaltState, offset uint32, data []byte, keepAlive KeepAlive) error {
	if len(data) == 0 {
		return nil
	}

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

	if offset%flashWordSize != 0 {
		return errors.Errorf(errors.Misaligned, offset)
	}

	firstSector, lastSector := b.sectorRange(offset, len(data))
	if firstSector < 0 || lastSector > len(b.Sectors) {
		return errors.Errorf(errors.DriverBug, "write range out of bounds")
	}

	protectedSector, err := b.firstProtected(bus, firstSector, lastSector)
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

	curOffset := offset
	pos := 0
	remaining := len(data)

	for remaining > 0 {
		n := remaining
		if n > flashWordSize {
			n = flashWordSize
		}

		if err := bus.WriteU32(regCMDTYPE, cmdtypeProgram|cmdtypeOneWord); err != nil {
			return err
		}
		if err := bus.WriteU32(regCMDBYTEN, byteEnable(n)); err != nil {
			return err
		}
		if err := bus.WriteU32(regCMDADDR, curOffset); err != nil {
			return err
		}

		if err := b.streamDataRegisters(bus, data[pos:pos+n]); err != nil {
			return err
		}

		if err := b.executeCommand(bus, keepAlive); err != nil {
			return err
		}
		if err := b.writeProtectRegs(bus, regs); err != nil {
			return err
		}

		curOffset += uint32(n)
		pos += n
		remaining -= n
	}

	for s := firstSector; s < lastSector; s++ {
		b.Sectors[s].Erased = StateNo
	}

	return b.applyProtectState(regs)
}

// streamDataRegisters writes chunk into consecutive 32-bit data
// registers starting at CMDDATA0, four bytes per register. The final
// register may receive fewer than four bytes when len(chunk) isn't a
// multiple of four; CMDBYTEN masks which bytes of the flash word are
// actually programmed.
func (b *Bank) streamDataRegisters(bus TargetBus, chunk []byte) error {
	reg := uint32(0)
	for written := 0; written < len(chunk); written += 4 {
		end := written + 4
		if end > len(chunk) {
			end = len(chunk)
		}

		var word uint32
		for i, v := range chunk[written:end] {
			word |= uint32(v) << uint(8*i)
		}

		if err := bus.WriteU32(regCMDDATA0+reg*4, word); err != nil {
			return err
		}
		reg++
	}
	return nil
}
