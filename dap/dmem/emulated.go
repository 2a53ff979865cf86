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

package dmem

import (
	"encoding/binary"

	"github.com/jetsetilly/mspm0adapter/errors"
	"github.com/jetsetilly/mspm0adapter/logger"
)

// MEM-AP register offsets this emulation recognises.
const (
	regCSW = 0x00
	regTAR = 0x04
	regDRW = 0x0C
	regBD0 = 0x10
	regBD1 = 0x14
	regBD2 = 0x18
	regBD3 = 0x1C
	regCFG = 0xF4
	regBASE = 0xF8
	regIDR  = 0xFC
)

// addrIncMask is CSW bits [5:4], the ADDRINC enable field.
const addrIncMask uint32 = 0x30

// emulatedAP is one AP's synthesized MEM-AP shadow-register state.
// csw and tar hold software state directly; cfg/base/idr are stored on
// write but always read back as 0, matching spec.md §4.2.4's "the
// emulation does not model these".
type emulatedAP struct {
	csw uint32
	tar uint32

	// tarInc is the auto-increment accumulator driven by DRW access,
	// reset whenever TAR is written.
	tarInc uint32

	cfg, base, idr uint32
}

func newEmulatedAP() *emulatedAP {
	return &emulatedAP{}
}

func (d *Dap) apState(ap int) *emulatedAP {
	st, ok := d.emulated[ap]
	if !ok {
		st = newEmulatedAP()
		d.emulated[ap] = st
	}
	return st
}

// readEmulated is the emulated-AP half of QueueAPRead.
func (d *Dap) readEmulated(ap int, reg uint32) (uint32, error) {
	st := d.apState(ap)

	switch reg {
	case regCSW:
		return st.csw, nil
	case regTAR:
		return st.tar, nil
	case regCFG:
		return 0, nil
	case regBASE:
		return 0, nil
	case regIDR:
		return 0, nil
	case regBD0, regBD1, regBD2, regBD3:
		return d.readEmuWindow(bdTarget(st, reg))
	case regDRW:
		target := drwTarget(st)
		v, err := d.readEmuWindow(target)
		st.advanceDRW()
		return v, err
	default:
		logger.Log("dmem", "unknown emulated AP register %#x on AP %d", reg, ap)
		return 0, errors.Errorf(errors.InvalidRegister, reg, ap)
	}
}

// writeEmulated is the emulated-AP half of QueueAPWrite.
func (d *Dap) writeEmulated(ap int, reg uint32, val uint32) error {
	st := d.apState(ap)

	switch reg {
	case regCSW:
		st.csw = val
		return nil
	case regTAR:
		st.tar = val
		st.tarInc = 0
		return nil
	case regCFG:
		st.cfg = val
		return nil
	case regBASE:
		st.base = val
		return nil
	case regIDR:
		st.idr = val
		return nil
	case regBD0, regBD1, regBD2, regBD3:
		return d.writeEmuWindow(bdTarget(st, reg), val)
	case regDRW:
		target := drwTarget(st)
		err := d.writeEmuWindow(target, val)
		st.advanceDRW()
		return err
	default:
		logger.Log("dmem", "unknown emulated AP register %#x on AP %d", reg, ap)
		return errors.Errorf(errors.InvalidRegister, reg, ap)
	}
}

// bdTarget computes the BDn target address: (TAR & ~0xF) | (reg & 0xC).
func bdTarget(st *emulatedAP, reg uint32) uint32 {
	return (st.tar &^ 0xF) | (reg & 0x0C)
}

// drwTarget computes the current DRW target address:
// (TAR & ~0x3) + tar_inc.
func drwTarget(st *emulatedAP) uint32 {
	return (st.tar &^ 0x3) + st.tarInc
}

// advanceDRW advances the auto-increment accumulator when CSW.ADDRINC
// is enabled, by (CSW & 0x3) * 2 bytes: 0, 2, 4, or 6 depending on the
// CSW size field.
func (st *emulatedAP) advanceDRW() {
	if st.csw&addrIncMask != 0 {
		st.tarInc += (st.csw & 0x3) * 2
	}
}

// readEmuWindow reads a 32-bit word from the emulated window at
// target, an address in the target's own memory space. Bit 31 is
// masked off first; it is a protocol marker, not part of the physical
// address.
func (d *Dap) readEmuWindow(target uint32) (uint32, error) {
	off, err := d.emuWindowOffset(target)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(d.emuWindow[off : off+4]), nil
}

func (d *Dap) writeEmuWindow(target uint32, val uint32) error {
	off, err := d.emuWindowOffset(target)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(d.emuWindow[off:off+4], val)
	return nil
}

func (d *Dap) emuWindowOffset(target uint32) (uint64, error) {
	addr := uint64(target) &^ (1 << 31)
	if addr < d.emuWindowBase {
		return 0, errors.Errorf(errors.DriverBug, "emulated AP address %#08x below window base %#08x", addr, d.emuWindowBase)
	}
	off := addr - d.emuWindowBase
	if off+4 > uint64(len(d.emuWindow)) {
		return 0, errors.Errorf(errors.DriverBug, "emulated AP address %#08x outside mapped window", addr)
	}
	return off, nil
}
