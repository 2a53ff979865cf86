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

import "sort"

// partEntry names one silicon variant within a family.
type partEntry struct {
	partID    uint16
	variantID uint8
	name      string
}

// familyTable is an immutable, sorted-by-(partID,variantID) table of
// the part entries belonging to one family_id. Lookup bisects on this
// ordering; the table is rare to consult (once per probe) so a sorted
// slice is sufficient and avoids a map allocation per family.
type familyTable struct {
	familyID    uint32
	genericName string
	parts       []partEntry
}

// families holds every family_id FlashCore recognises. Extending the
// ~100-entry catalogue the reference hardware actually supports is a
// pure data change to these two tables.
var families = []familyTable{
	{
		familyID:    0xBB82,
		genericName: "MSPM0L",
		parts: []partEntry{
			{partID: 0x9A10, variantID: 0x10, name: "MSPM0L1105SRHBR"},
			{partID: 0x9A2B, variantID: 0x11, name: "MSPM0L1306SRGER"},
			{partID: 0x9A5C, variantID: 0x12, name: "MSPM0L2206TDGSR"},
		},
	},
	{
		familyID:    0xBB88,
		genericName: "MSPM0G",
		parts: []partEntry{
			{partID: 0xAE0B, variantID: 0xF6, name: "MSPM0G1505SRHBR"},
			{partID: 0xAE2D, variantID: 0xF7, name: "MSPM0G3507SRGZR"},
			{partID: 0xAE3F, variantID: 0xF8, name: "MSPM0G3519SRGZR"},
		},
	},
}

func init() {
	for i := range families {
		parts := families[i].parts
		sort.Slice(parts, func(a, b int) bool {
			if parts[a].partID != parts[b].partID {
				return parts[a].partID < parts[b].partID
			}
			return parts[a].variantID < parts[b].variantID
		})
	}
}

// lookupFamily finds the family table for a family_id. The second
// return is false for an unrecognised family_id.
func lookupFamily(familyID uint32) (*familyTable, bool) {
	for i := range families {
		if families[i].familyID == familyID {
			return &families[i], true
		}
	}
	return nil, false
}

// lookupPart bisects fam's part table for an exact (partID, variantID)
// match. The second return is false on a miss; callers fall back to
// fam.genericName in that case and must never index the table with
// the not-found position (see spec.md §9, open question 3).
func lookupPart(fam *familyTable, partID uint16, variantID uint8) (*partEntry, bool) {
	n := len(fam.parts)
	i := sort.Search(n, func(i int) bool {
		p := fam.parts[i]
		if p.partID != partID {
			return p.partID >= partID
		}
		return p.variantID >= variantID
	})
	if i < n && fam.parts[i].partID == partID && fam.parts[i].variantID == variantID {
		return &fam.parts[i], true
	}
	return nil, false
}
