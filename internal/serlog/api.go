// Package serlog exports charger state as checksummed text lines over a serial
// transport and switches the transport on and off around telemetry sessions.
//
// Wire format, one line per channel:
//   $<channel>;<programState>;<secs>.<decisec>;<field>;...;<checksum>;\r\n
// Checksum is exclusive-or of every byte from '$' up to and including the
// separator before the checksum field.
package serlog

import (
	"sync/atomic"

	"github.com/temoto/chargelog/internal/analog"
)

type Clock interface {
	// Monotonic absolute time in milliseconds.
	Milliseconds() uint64
}

// Transport is the serial port owned by hardware layer.
// Errors are reported but the session never stops on them.
type Transport interface {
	Acquire(baud int) error
	Release() error
	Flush() error
	// Quiesce puts transport enable line into high impedance input.
	Quiesce() error
	Write(p []byte) (int, error)
}

type Measurements interface {
	RealValue(analog.Name) uint32
	RawValue(analog.Name) uint32
	Inputs() []analog.Name
	PhysicalInputs() []analog.Name
}

type Settings interface {
	Verbosity() Verbosity
}

type Program interface {
	ProgramState() uint32
}

type Devices interface {
	SMPSValue() uint32
	DischargerValue() uint32
	BalancerState() uint32
	BatteryRth() uint32
	WiresRth() uint32
	CellRth(cell int) uint32
}

// Verbosity selects how many channels are sent, 0 disables telemetry.
type Verbosity uint8

const (
	VerbosityDisabled Verbosity = iota
	VerbosityBasic
	VerbosityExtended
	VerbosityRaw

	VerbosityMax = VerbosityRaw
)

// Level is Settings backed by atomic value, safe to change at runtime.
type Level struct{ v uint32 }

func NewLevel(v Verbosity) *Level { l := &Level{}; l.Set(v); return l }

func (self *Level) Set(v Verbosity) {
	if v > VerbosityMax {
		v = VerbosityMax
	}
	atomic.StoreUint32(&self.v, uint32(v))
}
func (self *Level) Verbosity() Verbosity { return Verbosity(atomic.LoadUint32(&self.v)) }

type Stat struct {
	Sends           uint32
	Frames          uint32
	TransportErrors uint32
}
