// Package charger holds the controller-level values reported in telemetry
// next to analog inputs: program state, power stage outputs, balancer and
// thermal resistance estimates.
package charger

import (
	"sync/atomic"

	"github.com/temoto/chargelog/internal/analog"
)

//go:generate stringer -type=ProgramState -trimprefix=Program
type ProgramState uint32

const (
	ProgramNone ProgramState = iota
	ProgramCharging
	ProgramDischarging
	ProgramBalancing
	ProgramStorage
	ProgramDone
	ProgramError
)

type Status struct {
	program    uint32
	smps       uint32
	discharger uint32
	balancer   uint32
	battRth    uint32
	wiresRth   uint32
	cellRth    [analog.MaxBalanceCells]uint32
}

func NewStatus() *Status { return &Status{} }

func (self *Status) SetProgramState(s ProgramState) { atomic.StoreUint32(&self.program, uint32(s)) }
func (self *Status) SetSMPS(v uint32)               { atomic.StoreUint32(&self.smps, v) }
func (self *Status) SetDischarger(v uint32)         { atomic.StoreUint32(&self.discharger, v) }
func (self *Status) SetBalancer(v uint32)           { atomic.StoreUint32(&self.balancer, v) }
func (self *Status) SetBatteryRth(v uint32)         { atomic.StoreUint32(&self.battRth, v) }
func (self *Status) SetWiresRth(v uint32)           { atomic.StoreUint32(&self.wiresRth, v) }

// SetCellRth ignores cell index out of [0, analog.MaxBalanceCells).
func (self *Status) SetCellRth(cell int, v uint32) {
	if cell >= 0 && cell < len(self.cellRth) {
		atomic.StoreUint32(&self.cellRth[cell], v)
	}
}

func (self *Status) ProgramState() uint32    { return atomic.LoadUint32(&self.program) }
func (self *Status) SMPSValue() uint32       { return atomic.LoadUint32(&self.smps) }
func (self *Status) DischargerValue() uint32 { return atomic.LoadUint32(&self.discharger) }
func (self *Status) BalancerState() uint32   { return atomic.LoadUint32(&self.balancer) }
func (self *Status) BatteryRth() uint32      { return atomic.LoadUint32(&self.battRth) }
func (self *Status) WiresRth() uint32        { return atomic.LoadUint32(&self.wiresRth) }

func (self *Status) CellRth(cell int) uint32 {
	if cell < 0 || cell >= len(self.cellRth) {
		return 0
	}
	return atomic.LoadUint32(&self.cellRth[cell])
}
