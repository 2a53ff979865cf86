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

package dmem

// DPReg identifies a debug-port register in the queue_dp_read/
// queue_dp_write hooks. CtrlStat is the only one this transport gives
// a synthesized answer for.
type DPReg uint32

const CtrlStat DPReg = 0x4

// Arm CoreSight CTRL/STAT power-up acknowledge bits.
const (
	cdbgPwrUpAck uint32 = 1 << 29
	cSysPwrUpAck uint32 = 1 << 31
)

// QueueDPRead is the queue_dp_read hook. The DP side of this transport
// is inert: CTRL_STAT always reports "powered up"; every other
// register reads as 0.
func (d *Dap) QueueDPRead(reg DPReg) (uint32, error) {
	if reg == CtrlStat {
		return cdbgPwrUpAck | cSysPwrUpAck, nil
	}
	return 0, nil
}

// QueueDPWrite is the queue_dp_write hook. Every DP write is discarded
// and reports success.
func (d *Dap) QueueDPWrite(reg DPReg, val uint32) error {
	return nil
}

// QueueAPRead is the queue_ap_read hook. Routing between the direct
// and emulated AP implementations is by AP index, per spec.md §4.2.4's
// "emulated and direct modes may coexist" rule.
func (d *Dap) QueueAPRead(ap int, reg uint32) (uint32, error) {
	var v uint32
	var err error
	if d.cfg.IsEmulated(ap) {
		v, err = d.readEmulated(ap, reg)
	} else {
		v, err = d.ReadAP(ap, reg)
	}
	d.latch(err)
	return v, err
}

// QueueAPWrite is the queue_ap_write hook.
func (d *Dap) QueueAPWrite(ap int, reg uint32, val uint32) error {
	var err error
	if d.cfg.IsEmulated(ap) {
		err = d.writeEmulated(ap, reg, val)
	} else {
		err = d.WriteAP(ap, reg, val)
	}
	d.latch(err)
	return err
}

// QueueAPAbort is the queue_ap_abort hook. There is no in-flight
// transaction to cancel in this transport (spec.md §5), so it is a
// no-op that always succeeds.
func (d *Dap) QueueAPAbort() error {
	return nil
}

// latch records err as the queue's last error if one hasn't already
// been latched; the first error in a queued transaction wins, matching
// spec.md §7's "DmemDap latches the first error seen".
func (d *Dap) latch(err error) {
	if err != nil && d.lastErr == nil {
		d.lastErr = err
	}
}

// Run is the run hook: it returns the latched error from the queued
// transaction and clears it for the next one.
func (d *Dap) Run() error {
	err := d.lastErr
	d.lastErr = nil
	return err
}
