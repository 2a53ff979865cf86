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

func TestInitRequiresBaseAddress(t *testing.T) {
	cfg := dmem.NewConfig()
	d := dmem.New(cfg, &fakeMmioMapper{})
	err := d.Init()
	if !errors.Is(err, errors.DeviceOpenFailed) {
		t.Fatalf("expected DeviceOpenFailed, got %v", err)
	}
}

func TestInitMapsPageAlignedWindow(t *testing.T) {
	cfg := newDirectConfig()
	mapper := &fakeMmioMapper{}
	d := dmem.New(cfg, mapper)

	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if len(mapper.mappings) != 1 {
		t.Fatalf("expected exactly one mapping, got %d", len(mapper.mappings))
	}
	m := mapper.mappings[0]
	if m.offset != 0x2000 {
		t.Errorf("expected page-aligned base 0x2000, got %#x", m.offset)
	}
	// span = (4+1)*0x100 = 0x500; base+span = 0x2500, padded up to 0x3000
	if len(m.window) != 0x1000 {
		t.Errorf("expected window length 0x1000, got %#x", len(m.window))
	}
}

func TestInitRejectsUnalignedEmulatedWindow(t *testing.T) {
	cfg := newDirectConfig()
	cfg.SetEmulatedAPs([]uint64{0})
	cfg.SetEmulatedWindow(0x2001, 0x1000) // not page-aligned

	d := dmem.New(cfg, &fakeMmioMapper{})
	err := d.Init()
	if !errors.Is(err, errors.AlignmentError) {
		t.Fatalf("expected AlignmentError, got %v", err)
	}
}

func TestInitMapsEmulatedWindowWhenConfigured(t *testing.T) {
	cfg := newDirectConfig()
	cfg.SetEmulatedAPs([]uint64{0})
	cfg.SetEmulatedWindow(0x5000, 0x1000)

	mapper := &fakeMmioMapper{}
	d := dmem.New(cfg, mapper)
	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if len(mapper.mappings) != 2 {
		t.Fatalf("expected two mappings (direct + emulated), got %d", len(mapper.mappings))
	}
}

func TestQuitUnmapsEverything(t *testing.T) {
	cfg := newDirectConfig()
	cfg.SetEmulatedAPs([]uint64{0})
	cfg.SetEmulatedWindow(0x5000, 0x1000)

	mapper := &fakeMmioMapper{}
	d := dmem.New(cfg, mapper)
	if err := d.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := d.Quit(); err != nil {
		t.Fatalf("Quit: %v", err)
	}
	if mapper.unmapped != 2 {
		t.Errorf("expected both windows unmapped, got %d", mapper.unmapped)
	}
}

func TestLifecycleNoOpsSucceed(t *testing.T) {
	cfg := newDirectConfig()
	d := dmem.New(cfg, &fakeMmioMapper{})

	if err := d.Connect(); err != nil {
		t.Errorf("Connect: %v", err)
	}
	if err := d.Reset(); err != nil {
		t.Errorf("Reset: %v", err)
	}
	if err := d.Abort(); err != nil {
		t.Errorf("Abort: %v", err)
	}
	if khz, err := d.Speed(4000); err != nil || khz != 4000 {
		t.Errorf("Speed: got %d, %v", khz, err)
	}
	if d.TransportName() != "dapdirect_swd" {
		t.Errorf("unexpected transport name %q", d.TransportName())
	}
}
