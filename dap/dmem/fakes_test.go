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

import "github.com/jetsetilly/mspm0adapter/dap/dmem"

// fakeMapping records one Map call's arguments alongside the backing
// slice returned for it.
type fakeMapping struct {
	devicePath string
	offset     uint64
	window     []byte
}

// fakeMmioMapper is a HostMmioMapper backed by plain zeroed byte
// slices instead of a real device mapping, per spec.md §9's design
// note that tests inject a fake mapper over a ByteArray-backed window.
type fakeMmioMapper struct {
	mappings []fakeMapping
	unmapped int
}

func (f *fakeMmioMapper) Map(devicePath string, offset uint64, length int) ([]byte, error) {
	window := make([]byte, length)
	f.mappings = append(f.mappings, fakeMapping{devicePath, offset, window})
	return window, nil
}

func (f *fakeMmioMapper) Unmap(window []byte) error {
	f.unmapped++
	return nil
}

func newDirectConfig() *dmem.Config {
	cfg := dmem.NewConfig()
	cfg.SetBaseAddress(0x2000)
	cfg.SetAPAddressOffset(0x100)
	cfg.SetMaxAPs(4)
	return cfg
}
