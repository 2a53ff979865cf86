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

// ReadAP reads the 32-bit register at offset r of AP index n.
func (d *Dap) ReadAP(n int, r uint32) (uint32, error) {
	off, err := d.directAPOffset(n, r)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(d.window[off : off+4]), nil
}

// WriteAP writes val to the 32-bit register at offset r of AP index n.
func (d *Dap) WriteAP(n int, r uint32, val uint32) error {
	off, err := d.directAPOffset(n, r)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(d.window[off:off+4], val)
	return nil
}

// directAPOffset computes the byte offset within d.window for AP n,
// register r, rejecting ADIv6 APs per spec.md §4.2.2. Whether n is an
// ADIv6 AP comes from Config.ADIv6APs, not from r: ADIv6 uses a
// different, bank-selected addressing scheme entirely, so every
// register on such an AP is out of reach here, not just some offsets.
func (d *Dap) directAPOffset(n int, r uint32) (uint32, error) {
	if d.cfg.IsADIv6(n) {
		if !d.loggedADIv6 {
			logger.Log("dmem", "ADIv6 access port addressing (AP %d, reg %#x) is not supported", n, r)
			d.loggedADIv6 = true
		}
		return 0, errors.Errorf(errors.Unsupported)
	}

	physical := uint64(n)*uint64(d.cfg.APAddressOffset) + uint64(r)
	abs := d.cfg.BaseAddress + physical
	off := abs - d.windowBase
	if off+4 > uint64(len(d.window)) {
		return 0, errors.Errorf(errors.DriverBug, "AP %d register %#x outside mapped window", n, r)
	}
	return uint32(off), nil
}
