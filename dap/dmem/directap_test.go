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

package dmem_test

import (
	"testing"

	"github.com/jetsetilly/mspm0adapter/dap/dmem"
	"github.com/jetsetilly/mspm0adapter/errors"
)

func TestDirectAPReadWriteRoundTrip(t *testing.T) {
	cfg := newDirectConfig()
	d := dmem.New(cfg, &fakeMmioMapper{})
	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if err := d.WriteAP(1, 0x04, 0xDEADBEEF); err != nil {
		t.Fatalf("WriteAP: %v", err)
	}
	v, err := d.ReadAP(1, 0x04)
	if err != nil {
		t.Fatalf("ReadAP: %v", err)
	}
	if v != 0xDEADBEEF {
		t.Errorf("got %#x, want 0xdeadbeef", v)
	}
}

func TestDirectAPDistinctAPsDistinctOffsets(t *testing.T) {
	cfg := newDirectConfig()
	d := dmem.New(cfg, &fakeMmioMapper{})
	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if err := d.WriteAP(0, 0x00, 0x11111111); err != nil {
		t.Fatalf("WriteAP ap0: %v", err)
	}
	if err := d.WriteAP(2, 0x00, 0x22222222); err != nil {
		t.Fatalf("WriteAP ap2: %v", err)
	}

	v0, _ := d.ReadAP(0, 0x00)
	v2, _ := d.ReadAP(2, 0x00)
	if v0 != 0x11111111 || v2 != 0x22222222 {
		t.Errorf("AP writes collided: ap0=%#x ap2=%#x", v0, v2)
	}
}

// TestDirectAPRejectsADIv6 confirms an AP configured as ADIv6 is
// rejected on every attempt, not just the first, regardless of which
// register is requested.
func TestDirectAPRejectsADIv6(t *testing.T) {
	cfg := newDirectConfig()
	cfg.SetADIv6APs([]uint64{0})
	d := dmem.New(cfg, &fakeMmioMapper{})
	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	regs := []uint32{0x00, 0x04, 0xFC}
	for i, r := range regs {
		_, err := d.ReadAP(0, r)
		if !errors.Is(err, errors.Unsupported) {
			t.Fatalf("attempt %d (reg %#x): expected Unsupported, got %v", i, r, err)
		}
	}
}

// TestDirectAPReadsLegacyIdentificationRegisters confirms that CFG,
// BASE, and IDR (offsets 0xF4, 0xF8, 0xFC) remain reachable in direct
// mode for an AP that isn't ADIv6: these are exactly the registers a
// framework would need to read to tell an AP's architecture apart in
// the first place.
func TestDirectAPReadsLegacyIdentificationRegisters(t *testing.T) {
	cfg := newDirectConfig()
	d := dmem.New(cfg, &fakeMmioMapper{})
	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	for _, r := range []uint32{0x10, 0xF4, 0xF8, 0xFC} {
		if err := d.WriteAP(0, r, 0x12345678); err != nil {
			t.Fatalf("WriteAP reg %#x: %v", r, err)
		}
		v, err := d.ReadAP(0, r)
		if err != nil {
			t.Fatalf("ReadAP reg %#x: %v", r, err)
		}
		if v != 0x12345678 {
			t.Errorf("reg %#x: got %#x, want 0x12345678", r, v)
		}
	}
}
