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

func newEmulatedDap(t *testing.T, ap int) *dmem.Dap {
	t.Helper()
	cfg := newDirectConfig()
	cfg.SetEmulatedAPs([]uint64{uint64(ap)})
	cfg.SetEmulatedWindow(0x1000, 0x1000)

	d := dmem.New(cfg, &fakeMmioMapper{})
	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return d
}

// TestEmulatedDRWAutoIncrement is end-to-end scenario S6: CSW=0x22
// (size=word, auto-increment on), TAR=0x1000; three successive DRW
// reads must target 0x1000, 0x1004, 0x1008.
func TestEmulatedDRWAutoIncrement(t *testing.T) {
	d := newEmulatedDap(t, 0)

	if err := d.QueueAPWrite(0, 0x00, 0x22); err != nil { // CSW
		t.Fatalf("write CSW: %v", err)
	}
	if err := d.QueueAPWrite(0, 0x04, 0x1000); err != nil { // TAR
		t.Fatalf("write TAR: %v", err)
	}

	// write three distinct words through the auto-incrementing DRW
	// register, landing at 0x1000, 0x1004, 0x1008 in turn.
	if err := d.QueueAPWrite(0, 0x0C, 0x11111111); err != nil { // DRW -> 0x1000, then tarInc=4
		t.Fatalf("DRW write 1: %v", err)
	}
	if err := d.QueueAPWrite(0, 0x0C, 0x22222222); err != nil { // DRW -> 0x1004, then tarInc=8
		t.Fatalf("DRW write 2: %v", err)
	}
	if err := d.QueueAPWrite(0, 0x0C, 0x33333333); err != nil { // DRW -> 0x1008
		t.Fatalf("DRW write 3: %v", err)
	}

	if err := d.QueueAPWrite(0, 0x04, 0x1000); err != nil { // rewind TAR, resets tarInc
		t.Fatalf("rewind TAR: %v", err)
	}
	v1, err := d.QueueAPRead(0, 0x0C)
	if err != nil {
		t.Fatalf("DRW read 1: %v", err)
	}
	v2, err := d.QueueAPRead(0, 0x0C)
	if err != nil {
		t.Fatalf("DRW read 2: %v", err)
	}
	v3, err := d.QueueAPRead(0, 0x0C)
	if err != nil {
		t.Fatalf("DRW read 3: %v", err)
	}

	if v1 != 0x11111111 || v2 != 0x22222222 || v3 != 0x33333333 {
		t.Fatalf("DRW auto-increment sequence mismatch: got %#x %#x %#x", v1, v2, v3)
	}
}

// TestEmulatedBDTargeting confirms BD0..BD3 address
// (TAR & ~0xF) | (reg & 0xC), independent of CSW auto-increment state.
func TestEmulatedBDTargeting(t *testing.T) {
	d := newEmulatedDap(t, 0)

	if err := d.QueueAPWrite(0, 0x04, 0x1003); err != nil { // TAR, low nibble discarded by BD
		t.Fatalf("write TAR: %v", err)
	}
	if err := d.QueueAPWrite(0, 0x14, 0xCAFEBABE); err != nil { // BD1 -> 0x1004
		t.Fatalf("write BD1: %v", err)
	}

	v, err := d.QueueAPRead(0, 0x14)
	if err != nil {
		t.Fatalf("read BD1: %v", err)
	}
	if v != 0xCAFEBABE {
		t.Errorf("BD1 round-trip: got %#x", v)
	}
}

// TestEmulatedCFGBaseIDRAlwaysReadZero confirms writes to CFG, BASE,
// and IDR are accepted but always read back as 0.
func TestEmulatedCFGBaseIDRAlwaysReadZero(t *testing.T) {
	d := newEmulatedDap(t, 0)

	for _, reg := range []uint32{0xF4, 0xF8, 0xFC} {
		if err := d.QueueAPWrite(0, reg, 0xFFFFFFFF); err != nil {
			t.Fatalf("write %#x: %v", reg, err)
		}
		v, err := d.QueueAPRead(0, reg)
		if err != nil || v != 0 {
			t.Errorf("reg %#x: expected 0, nil, got %#x, %v", reg, v, err)
		}
	}
}

// TestEmulatedUnknownRegister confirms an unrecognised emulated AP
// register logs and returns InvalidRegister, and that error is latched
// for Run.
func TestEmulatedUnknownRegister(t *testing.T) {
	d := newEmulatedDap(t, 0)

	_, err := d.QueueAPRead(0, 0x20)
	if !errors.Is(err, errors.InvalidRegister) {
		t.Fatalf("expected InvalidRegister, got %v", err)
	}
	if latched := d.Run(); !errors.Is(latched, errors.InvalidRegister) {
		t.Fatalf("expected latched InvalidRegister, got %v", latched)
	}
}

// TestEmulatedAndDirectCoexist confirms routing is by AP index: AP 0
// emulated, AP 1 direct, in the same handle.
func TestEmulatedAndDirectCoexist(t *testing.T) {
	d := newEmulatedDap(t, 0)

	if err := d.QueueAPWrite(0, 0x04, 0x1000); err != nil { // emulated TAR
		t.Fatalf("write emulated TAR: %v", err)
	}
	if err := d.QueueAPWrite(0, 0x0C, 0x42424242); err != nil { // emulated DRW
		t.Fatalf("write emulated DRW: %v", err)
	}
	if err := d.QueueAPWrite(1, 0x00, 0x99999999); err != nil { // direct CSW on AP 1
		t.Fatalf("write direct AP1 CSW: %v", err)
	}

	v, err := d.QueueAPRead(1, 0x00)
	if err != nil || v != 0x99999999 {
		t.Errorf("direct AP1 read: got %#x, %v", v, err)
	}
}
