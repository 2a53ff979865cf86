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

package mspm0

import "fmt"

// Info returns a human summary of the bank: chip name, silicon
// version, trace ID, main-flash size and bank count, data-flash size,
// and SRAM size. Requires the bank to have been probed.
func (b *Bank) Info() (string, error) {
	if err := b.requireProbed(); err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"%s (silicon rev %d, trace id %#08x): %dKiB main flash across %d bank(s), %dKiB data flash, %dKiB SRAM",
		b.ChipName, b.Version, b.TraceID, b.MainFlashKiB, b.MainBankCount, b.DataFlashKiB, b.SRAMKiB,
	), nil
}
