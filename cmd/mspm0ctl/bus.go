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

package main

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"
)

// memBus is the real TargetBus: two small /dev/mem windows, one over
// the flash controller's register block and one over the identity
// registers, both page-aligned already at their documented base
// addresses. Everything FlashCore reads or writes falls in one of the
// two.
type memBus struct {
	fd int

	flashBase   uint32
	flashWindow []byte

	identityBase   uint32
	identityWindow []byte
}

const (
	flashCtrlBase  uint32 = 0x400CD000
	flashCtrlSpan         = 0x2000
	identityBase   uint32 = 0x41C40000
	identitySpan          = 0x1000
)

func newMemBus(devicePath string) (*memBus, error) {
	fd, err := unix.Open(devicePath, unix.O_RDWR|unix.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", devicePath, err)
	}

	flashWindow, err := unix.Mmap(fd, int64(flashCtrlBase), flashCtrlSpan, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("mapping flash controller window: %w", err)
	}

	identityWindow, err := unix.Mmap(fd, int64(identityBase), identitySpan, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		unix.Munmap(flashWindow)
		unix.Close(fd)
		return nil, fmt.Errorf("mapping identity window: %w", err)
	}

	return &memBus{
		fd:             fd,
		flashBase:      flashCtrlBase,
		flashWindow:    flashWindow,
		identityBase:   identityBase,
		identityWindow: identityWindow,
	}, nil
}

func (b *memBus) Close() error {
	unix.Munmap(b.flashWindow)
	unix.Munmap(b.identityWindow)
	return unix.Close(b.fd)
}

func (b *memBus) window(addr uint32) ([]byte, uint32, error) {
	switch {
	case addr >= b.flashBase && addr < b.flashBase+flashCtrlSpan:
		return b.flashWindow, addr - b.flashBase, nil
	case addr >= b.identityBase && addr < b.identityBase+identitySpan:
		return b.identityWindow, addr - b.identityBase, nil
	default:
		return nil, 0, fmt.Errorf("address %#08x is outside the mapped windows", addr)
	}
}

func (b *memBus) ReadU32(addr uint32) (uint32, error) {
	win, off, err := b.window(addr)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(win[off : off+4]), nil
}

func (b *memBus) WriteU32(addr uint32, val uint32) error {
	win, off, err := b.window(addr)
	if err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(win[off:off+4], val)
	return nil
}

// fixedHalt is a HaltState that reports whatever the -halted flag said
// at startup. This bench tool has no separate debug channel to query
// real halt state; an operator driving it against live hardware is
// expected to have already halted the core through whatever adapter
// owns the debug port.
type fixedHalt struct {
	halted bool
}

func (f fixedHalt) Halted() (bool, error) {
	return f.halted, nil
}
