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

import "github.com/jetsetilly/mspm0adapter/errors"

// FrameworkCode is the host debug-adapter framework's own result
// vocabulary (not-probed, not-halted, protected, misaligned,
// operation-failed, flash-fail, ok). TranslateToFrameworkCode maps
// every curated error this package returns to one of these codes, so
// the framework never has to inspect a message string; Driver's hooks
// themselves return the curated errors untranslated.
type FrameworkCode int

const (
	CodeOK FrameworkCode = iota
	CodeNotProbed
	CodeNotHalted
	CodeProtected
	CodeMisaligned
	CodeOperationFailed
	CodeFlashFail
)

func (c FrameworkCode) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeNotProbed:
		return "not-probed"
	case CodeNotHalted:
		return "not-halted"
	case CodeProtected:
		return "protected"
	case CodeMisaligned:
		return "misaligned"
	case CodeFlashFail:
		return "flash-fail"
	default:
		return "operation-failed"
	}
}

// TranslateToFrameworkCode classifies err against the curated error
// taxonomy in errors/messages.go. A nil err translates to CodeOK.
func TranslateToFrameworkCode(err error) FrameworkCode {
	if err == nil {
		return CodeOK
	}
	switch {
	case errors.Is(err, errors.NotProbed):
		return CodeNotProbed
	case errors.Is(err, errors.NotHalted):
		return CodeNotHalted
	case errors.Is(err, errors.SectorProtected), errors.Is(err, errors.ProtectionUnavailable):
		return CodeProtected
	case errors.Is(err, errors.Misaligned):
		return CodeMisaligned
	case errors.Is(err, errors.CommandFailed):
		return CodeFlashFail
	default:
		return CodeOperationFailed
	}
}

// Driver is the flash-driver hook table a host framework registers
// for one flash bank: flash_bank_command, erase, protect, write,
// probe, auto_probe, protect_check, and info. read and erase_check
// delegate to the framework's own defaults and have no equivalent
// here; free_driver_priv has nothing to release beyond normal garbage
// collection, since Bank owns no non-Go resources.
type Driver struct {
	bank *Bank
	bus  TargetBus
	halt HaltState
}

// FlashBankCommand constructs the driver for a bank at base, the
// flash_bank_command hook.
func FlashBankCommand(base BaseAddress, bus TargetBus, halt HaltState) (*Driver, error) {
	bank, err := NewBank(base)
	if err != nil {
		return nil, err
	}
	return &Driver{bank: bank, bus: bus, halt: halt}, nil
}

// Bank exposes the underlying bank state for callers that need direct
// read access (eg. the info command, or tests).
func (d *Driver) Bank() *Bank {
	return d.bank
}

// Probe is the probe hook.
func (d *Driver) Probe() error {
	return d.bank.Probe(d.bus)
}

// AutoProbe is the auto_probe hook. Probe is already idempotent and
// cheap after the first success, so AutoProbe is the same operation.
func (d *Driver) AutoProbe() error {
	return d.bank.Probe(d.bus)
}

// Erase is the erase hook.
func (d *Driver) Erase(first, last int, keepAlive KeepAlive) error {
	return d.bank.Erase(d.bus, d.halt, first, last, keepAlive)
}

// Write is the write hook.
func (d *Driver) Write(offset uint32, data []byte, keepAlive KeepAlive) error {
	return d.bank.Write(d.bus, d.halt, offset, data, keepAlive)
}

// Protect is the protect hook.
func (d *Driver) Protect(first, last int, set int) error {
	return d.bank.Protect(d.bus, first, last, set)
}

// ProtectCheck is the protect_check hook.
func (d *Driver) ProtectCheck() error {
	return d.bank.ProtectCheck(d.bus)
}

// Info is the info hook.
func (d *Driver) Info() (string, error) {
	return d.bank.Info()
}
