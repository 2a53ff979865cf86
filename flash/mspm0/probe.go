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

import (
	"github.com/jetsetilly/mspm0adapter/errors"
	"github.com/jetsetilly/mspm0adapter/logger"
)

// Probe reads the target's identity registers and hydrates the bank.
// It is idempotent: once DeviceID is non-zero, subsequent calls return
// immediately without touching the bus.
func (b *Bank) Probe(bus TargetBus) error {
	if b.Probed() {
		return nil
	}

	did, err := bus.ReadU32(regDID)
	if err != nil {
		return errors.Errorf(errors.ProbeFailed, err)
	}
	if did&0x1 == 0 {
		return errors.Errorf(errors.ProbeFailed, "ALWAYS_1 bit clear in DID")
	}

	traceID, err := bus.ReadU32(regTRACEID)
	if err != nil {
		return errors.Errorf(errors.ProbeFailed, err)
	}

	userID, err := bus.ReadU32(regUSERID)
	if err != nil {
		return errors.Errorf(errors.ProbeFailed, err)
	}

	sramflash, err := bus.ReadU32(regSRAMFLASH)
	if err != nil {
		return errors.Errorf(errors.ProbeFailed, err)
	}

	version := uint8((did >> 28) & 0xF)
	familyID := (did >> 12) & 0xFFFF

	variantID := uint8((userID >> 16) & 0xFF)
	partID := uint16(userID & 0xFFFF)

	dataFlashKiB := (sramflash >> 26) & 0x3F
	sramKiB := (sramflash >> 16) & 0x3FF
	mainBankCount := ((sramflash >> 12) & 0x3) + 1
	mainFlashKiB := sramflash & 0xFFF

	fam, ok := lookupFamily(familyID)
	if !ok {
		return errors.Errorf(errors.ProbeFailed, "unrecognised family id %#06x", familyID)
	}

	var chipName string
	if part, ok := lookupPart(fam, partID, variantID); ok {
		chipName = part.name
	} else {
		// known family, unknown part: warn and fall through to the
		// family's generic name. never index the part table with the
		// not-found position (spec.md §9, open question 3).
		logger.Log("flash", "unrecognised part %#04x/variant %#02x in family %s, falling back to generic name", partID, variantID, fam.genericName)
		chipName = fam.genericName
	}

	var size uint32
	switch b.Base {
	case NONMAIN:
		size = 512
	case MAIN:
		size = mainFlashKiB * 1024
	case DATA:
		size = dataFlashKiB * 1024
	}

	var sectSize uint32 = sectorSize
	if b.Base == NONMAIN {
		sectSize = 512
	}

	if b.Base == MAIN {
		if mainBankCount == 0 {
			return errors.Errorf(errors.ProbeFailed, "zero main bank count")
		}
		if mainFlashKiB%mainBankCount != 0 {
			return errors.Errorf(errors.ProbeFailed, "main flash size %d KiB does not divide evenly across %d banks", mainFlashKiB, mainBankCount)
		}
		bankSizeSectors := mainFlashKiB / mainBankCount
		if bankSizeSectors&(bankSizeSectors-1) != 0 {
			return errors.Errorf(errors.ProbeFailed, "bank size %d sectors is not a power of two", bankSizeSectors)
		}
		if bankSizeSectors > 512 {
			return errors.Errorf(errors.ProbeFailed, "bank size %d sectors exceeds the 512-sector protection scheme", bankSizeSectors)
		}
		b.mainBankSizeSectors = bankSizeSectors
	}

	var sectors []Sector
	if size > 0 {
		numSectors := size / sectSize
		sectors = make([]Sector, numSectors)
		for i := range sectors {
			sectors[i] = Sector{
				Offset: uint32(i) * sectSize,
				Size:   sectSize,
			}
		}
	}

	b.TraceID = traceID
	b.Version = version
	b.ChipName = chipName
	b.MainFlashKiB = mainFlashKiB
	b.DataFlashKiB = dataFlashKiB
	b.MainBankCount = mainBankCount
	b.SRAMKiB = sramKiB
	b.Size = size
	b.Sectors = sectors

	// set last, after every fallible step has succeeded: DeviceID != 0
	// is the bank's "usable" flag.
	b.DeviceID = did

	return nil
}
