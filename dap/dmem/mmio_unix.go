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

//go:build linux

package dmem

import (
	"github.com/jetsetilly/mspm0adapter/errors"
	"golang.org/x/sys/unix"
)

// UnixMmioMapper is the real HostMmioMapper, backed by /dev/mem (or
// whatever device path the dmem config names) opened synchronously
// read/write and mapped shared via mmap. This is the one place in the
// module that performs real host OS I/O; everything above it talks to
// the HostMmioMapper interface instead.
type UnixMmioMapper struct {
	fd int
}

// NewUnixMmioMapper opens devicePath read/write, synchronous mode.
func NewUnixMmioMapper(devicePath string) (*UnixMmioMapper, error) {
	fd, err := unix.Open(devicePath, unix.O_RDWR|unix.O_SYNC, 0)
	if err != nil {
		return nil, errors.Errorf(errors.DeviceOpenFailed, devicePath, err)
	}
	return &UnixMmioMapper{fd: fd}, nil
}

// Map mmaps length bytes of the open device starting at offset, shared
// and read/write.
func (m *UnixMmioMapper) Map(devicePath string, offset uint64, length int) ([]byte, error) {
	window, err := unix.Mmap(m.fd, int64(offset), length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Errorf(errors.MapFailed, offset, err)
	}
	return window, nil
}

// Unmap releases a window previously returned by Map.
func (m *UnixMmioMapper) Unmap(window []byte) error {
	return unix.Munmap(window)
}

// Close closes the backing device. Dap.Quit calls it once both
// windows are unmapped.
func (m *UnixMmioMapper) Close() error {
	return unix.Close(m.fd)
}
