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
	"fmt"
	"io"
)

// maxEmulatedAPs bounds the emu_ap_list command, matching the u64[≤5]
// arity of the command table this config subtree implements.
const maxEmulatedAPs = 5

// Config holds the dmem command subtree's configuration surface:
// device path, DAP window geometry, and the emulated-AP window. Every
// field has a sensible zero-adjacent default set by NewConfig; each
// has a single setter, mirroring the one-command-per-field shape of
// the subtree it implements.
type Config struct {
	DevicePath string

	BaseAddress     uint64
	APAddressOffset uint32
	MaxAPs          uint8

	EmulatedAPs []uint64

	EmuBaseAddress uint64
	EmuWindowSize  uint64

	ADIv6APs []uint64
}

// defaultAPAddressOffset and defaultMaxAPs are the per-AP stride and AP
// count a freshly constructed Config assumes until the `ap_address_offset`
// and `max_aps` commands say otherwise.
const (
	defaultAPAddressOffset uint32 = 0x100
	defaultMaxAPs          uint8  = 1
)

// NewConfig returns a Config with the default device path and default
// DAP window geometry; the DAP subtree commands may override any of
// it before Init is called.
func NewConfig() *Config {
	return &Config{
		DevicePath:      "/dev/mem",
		APAddressOffset: defaultAPAddressOffset,
		MaxAPs:          defaultMaxAPs,
	}
}

// SetDevicePath implements the `device` command.
func (c *Config) SetDevicePath(path string) {
	c.DevicePath = path
}

// SetBaseAddress implements the `base_address` command.
func (c *Config) SetBaseAddress(base uint64) {
	c.BaseAddress = base
}

// SetAPAddressOffset implements the `ap_address_offset` command.
func (c *Config) SetAPAddressOffset(stride uint32) {
	c.APAddressOffset = stride
}

// SetMaxAPs implements the `max_aps` command.
func (c *Config) SetMaxAPs(max uint8) {
	c.MaxAPs = max
}

// SetEmulatedAPs implements the `emu_ap_list` command. Only the first
// maxEmulatedAPs entries are kept, matching the command's declared
// arity; callers that pass more get the excess silently truncated,
// same as the framework's own fixed-size argument array would.
func (c *Config) SetEmulatedAPs(aps []uint64) {
	if len(aps) > maxEmulatedAPs {
		aps = aps[:maxEmulatedAPs]
	}
	c.EmulatedAPs = append([]uint64(nil), aps...)
}

// SetEmulatedWindow implements the `emu_base_address` command.
func (c *Config) SetEmulatedWindow(base, size uint64) {
	c.EmuBaseAddress = base
	c.EmuWindowSize = size
}

// IsEmulated reports whether ap is listed in EmulatedAPs.
func (c *Config) IsEmulated(ap int) bool {
	for _, e := range c.EmulatedAPs {
		if e == uint64(ap) {
			return true
		}
	}
	return false
}

// SetADIv6APs records which AP indices are a newer debug-architecture
// (ADIv6) Access Port. This transport only ever addresses the legacy
// four-register MEM-AP bank directly (CSW/TAR/DRW/BDn) plus the
// CFG/BASE/IDR identification registers; an ADIv6 AP uses a different,
// bank-selected addressing scheme this transport does not implement,
// so direct access to one of these indices is rejected outright
// regardless of which register is requested. The host framework is
// expected to populate this from its own AP/IDR discovery, since
// nothing in the memory-mapped window itself reliably distinguishes
// an ADIv6 AP from an ADIv5 one without first being able to read it.
func (c *Config) SetADIv6APs(aps []uint64) {
	c.ADIv6APs = append([]uint64(nil), aps...)
}

// IsADIv6 reports whether ap was declared as an ADIv6 Access Port.
func (c *Config) IsADIv6(ap int) bool {
	for _, e := range c.ADIv6APs {
		if e == uint64(ap) {
			return true
		}
	}
	return false
}

// Info implements the `info` command: it prints the current
// configuration in a fixed, human-readable form.
func (c *Config) Info(w io.Writer) {
	fmt.Fprintf(w, "device: %s\n", c.DevicePath)
	fmt.Fprintf(w, "base_address: %#016x\n", c.BaseAddress)
	fmt.Fprintf(w, "ap_address_offset: %#08x\n", c.APAddressOffset)
	fmt.Fprintf(w, "max_aps: %d\n", c.MaxAPs)
	fmt.Fprintf(w, "emu_ap_list: %v\n", c.EmulatedAPs)
	fmt.Fprintf(w, "emu_base_address: %#016x\n", c.EmuBaseAddress)
	fmt.Fprintf(w, "emu_window_size: %#x\n", c.EmuWindowSize)
	fmt.Fprintf(w, "adiv6_ap_list: %v\n", c.ADIv6APs)
}
