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

package errors

// error messages
const (
	// flash bank state
	NotProbed       = "flash: bank not probed"
	InvalidBankBase = "flash: invalid bank base address (%#08x)"
	ProbeFailed     = "flash: probe failed: %v"

	// halt state
	NotHalted = "flash: target is not halted"

	// sector protection mapping
	MappingOutOfRange = "flash: sector %d is out of range for protection mapping"
	DriverBug         = "flash: driver bug: %v"

	// protection
	ProtectionUnavailable = "flash: bank has no protection registers"
	SectorProtected       = "flash: sector %d is protected"

	// program
	Misaligned = "flash: offset %#08x is not word-aligned"

	// hardware command completion
	CommandFailed = "flash: command failed: %v"
	Timeout       = "flash: command did not complete within %v"

	// dmem dap lifecycle
	AlignmentError   = "dmem: %v is not page-aligned"
	MapFailed        = "dmem: failed to map %v: %v"
	DeviceOpenFailed = "dmem: failed to open %v: %v"

	// dmem dap access-port protocol
	Unsupported     = "dmem: ADIv6 access ports are not supported"
	InvalidRegister = "dmem: invalid register (%#x) on emulated AP %d"
)
