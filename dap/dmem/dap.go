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

// Package dmem implements a DAP transport that accesses the debug
// access ports through a memory-mapped register window rather than
// SWD or JTAG, plus an emulated-AP compatibility mode that synthesizes
// MEM-AP register semantics over a flat memory window for targets
// that expose no real AP hardware at all.
package dmem

import (
	"io"

	"github.com/jetsetilly/mspm0adapter/errors"
	"github.com/jetsetilly/mspm0adapter/logger"
)

// Dap is the adapter/DAP-queue handle the host framework opens once
// per debug session. It owns the mapped direct-AP window, the
// optional emulated-AP window, and the per-AP emulated register state.
type Dap struct {
	cfg    *Config
	mapper HostMmioMapper

	window     []byte
	windowBase uint64

	emuWindow     []byte
	emuWindowBase uint64

	emulated map[int]*emulatedAP

	// lastErr is the DP queue's latched error, cleared by Run. See
	// spec.md §4.2.4/§4.2.3 and dp.go.
	lastErr error

	// loggedADIv6 suppresses repeated log spam after the first rejected
	// ADIv6 access; every such attempt still returns Unsupported.
	loggedADIv6 bool
}

// New constructs a Dap bound to cfg and mapper. The returned handle is
// not yet initialized; call Init before any AP or DP operation.
func New(cfg *Config, mapper HostMmioMapper) *Dap {
	return &Dap{cfg: cfg, mapper: mapper}
}

// Config returns the handle's configuration, for the `dmem` command
// subtree to mutate before Init.
func (d *Dap) Config() *Config {
	return d.cfg
}

// Init maps, through the handle's mapper, the direct-AP window
// covering [base, base+(max_aps+1)*ap_stride), padded to the host page
// size on both ends. Init does not open the device itself; the mapper
// it was given already holds the open device. If any AP is configured for emulation, the
// emulated window is also mapped; its configured base and size must
// already be page-aligned.
func (d *Dap) Init() error {
	if d.cfg.BaseAddress == 0 {
		return errors.Errorf(errors.DeviceOpenFailed, d.cfg.DevicePath, "no DAP base address configured")
	}

	span := uint64(d.cfg.MaxAPs+1) * uint64(d.cfg.APAddressOffset)
	mapBase := alignDown(d.cfg.BaseAddress)
	mapEnd := alignUp(d.cfg.BaseAddress + span)

	window, err := d.mapper.Map(d.cfg.DevicePath, mapBase, int(mapEnd-mapBase))
	if err != nil {
		return errors.Errorf(errors.MapFailed, d.cfg.BaseAddress, err)
	}
	d.window = window
	d.windowBase = mapBase

	if len(d.cfg.EmulatedAPs) > 0 {
		if d.cfg.EmuBaseAddress%pageSize != 0 {
			d.unmapDirect()
			return errors.Errorf(errors.AlignmentError, d.cfg.EmuBaseAddress)
		}
		if d.cfg.EmuWindowSize%pageSize != 0 {
			d.unmapDirect()
			return errors.Errorf(errors.AlignmentError, d.cfg.EmuWindowSize)
		}

		emuWindow, err := d.mapper.Map(d.cfg.DevicePath, d.cfg.EmuBaseAddress, int(d.cfg.EmuWindowSize))
		if err != nil {
			d.unmapDirect()
			return errors.Errorf(errors.MapFailed, d.cfg.EmuBaseAddress, err)
		}
		d.emuWindow = emuWindow
		d.emuWindowBase = d.cfg.EmuBaseAddress

		d.emulated = make(map[int]*emulatedAP, len(d.cfg.EmulatedAPs))
		for _, ap := range d.cfg.EmulatedAPs {
			d.emulated[int(ap)] = newEmulatedAP()
		}
	}

	return nil
}

func (d *Dap) unmapDirect() {
	if d.window == nil {
		return
	}
	if err := d.mapper.Unmap(d.window); err != nil {
		logger.Log("dmem", "unmap of direct-AP window failed: %v", err)
	}
	d.window = nil
}

// Quit unmaps both windows and closes the device, if the mapper
// implements io.Closer. Unmap and close failures are logged, never
// returned; quit always succeeds from the caller's point of view,
// matching spec.md §4.2.1.
func (d *Dap) Quit() error {
	d.unmapDirect()
	if d.emuWindow != nil {
		if err := d.mapper.Unmap(d.emuWindow); err != nil {
			logger.Log("dmem", "unmap of emulated-AP window failed: %v", err)
		}
		d.emuWindow = nil
	}
	if c, ok := d.mapper.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Log("dmem", "closing device failed: %v", err)
		}
	}
	return nil
}

// Connect is a no-op that always succeeds; the DAP is already "live"
// the moment the windows are mapped.
func (d *Dap) Connect() error { return nil }

// Reset is a no-op that always succeeds; there is no physical line to
// toggle in this transport.
func (d *Dap) Reset() error { return nil }

// Speed sets the adapter clock rate request. There is no physical SWD
// clock in this transport, so any requested speed is accepted as-is
// and simply echoed back.
func (d *Dap) Speed(khz int) (int, error) { return khz, nil }

// SpeedDiv is the khz-to-divisor query the framework's speed_div hook
// exposes. This transport has no clock divisor, so it always reports
// 1:1.
func (d *Dap) SpeedDiv(khz int) (int, error) { return khz, nil }

// Abort is a no-op that always succeeds; there is no in-flight
// transaction to abort outside of the command-completion poll, which
// spec.md §5 says cannot be cancelled mid-command.
func (d *Dap) Abort() error { return nil }

// TransportName is the fixed transport identifier the framework's DAP
// registry keys on.
func (d *Dap) TransportName() string { return "dapdirect_swd" }
