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

// Package mspm0 drives the flash controller of the MSPM0 family of
// Arm Cortex-M0+ microcontrollers: identity probing, erase, program,
// and protect/protect-check, over a host-provided target bus.
package mspm0

// TargetBus defines 32-bit aligned read/write access to arbitrary
// physical addresses on the target. It is implemented by the host
// debug-adapter framework; FlashCore never talks to the target any
// other way.
type TargetBus interface {
	ReadU32(addr uint32) (uint32, error)
	WriteU32(addr uint32, value uint32) error
}

// HaltState reports whether the target is currently halted. Erase and
// program require a halted target; probe, protect, and protect-check
// do not.
type HaltState interface {
	Halted() (bool, error)
}

// KeepAlive is called periodically (roughly every 500ms, per spec)
// while FlashCore polls for hardware command completion, so that the
// host framework's event loop isn't starved during an up-to-8-second
// wait.
type KeepAlive func()
