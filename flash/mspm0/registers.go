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

// flash-controller MMIO map. inputs to this package, not designed
// here: these offsets come from the target's own register definitions.
const (
	flashCtrlBase uint32 = 0x400CD000

	regCMDEXEC     = flashCtrlBase + 0x1100
	regCMDTYPE     = flashCtrlBase + 0x1104
	regCMDADDR     = flashCtrlBase + 0x1120
	regCMDBYTEN    = flashCtrlBase + 0x1124
	regCMDDATA0    = flashCtrlBase + 0x1130
	regCMDWEPROTA  = flashCtrlBase + 0x11D0
	regCMDWEPROTNM = flashCtrlBase + 0x1210
	regSTATCMD     = flashCtrlBase + 0x13D0

	identityBase uint32 = 0x41C40000

	regTRACEID  = identityBase + 0x00
	regDID      = identityBase + 0x04
	regUSERID   = identityBase + 0x08
	regSRAMFLASH = identityBase + 0x18
)

// CMDTYPE command field (bits 2:0) and size modifier (bits 7:4).
const (
	cmdtypeProgram uint32 = 0x01
	cmdtypeErase   uint32 = 0x02

	cmdtypeOneWord uint32 = 0x00
	cmdtypeSector  uint32 = 0x40
)

// CMDEXEC
const cmdexecExecute uint32 = 0x1

// STATCMD bits.
const (
	statCmdDone        uint32 = 1 << 0
	statCmdPass        uint32 = 1 << 1
	statCmdInProgress  uint32 = 1 << 2
	statFailWEProt     uint32 = 1 << 4
	statFailVerify     uint32 = 1 << 5
	statFailIllAddr    uint32 = 1 << 6
	statFailMode       uint32 = 1 << 7
	statFailMisc       uint32 = 1 << 12
)
