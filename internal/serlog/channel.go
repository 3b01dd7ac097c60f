package serlog

import (
	"github.com/temoto/chargelog/internal/analog"
)

const (
	ChannelCore     uint8 = 1
	ChannelExtended uint8 = 2
	ChannelRaw      uint8 = 3
)

// Channel1Fields is body length of the core channel.
const Channel1Fields = len(analog.Channel1)

// Fields appended to channel 2 after all inputs: smps, discharger, balancer,
// battery Rth, wires Rth, then one Rth per balance cell.
const Channel2DeviceFields = 5 + analog.MaxBalanceCells

func encodeChannel1(f *Frame, h header, m Measurements) {
	h.channel = ChannelCore
	f.begin(h)
	for _, name := range analog.Channel1 {
		f.Field(uint64(m.RealValue(name)))
	}
	f.end()
}

func encodeChannel2(f *Frame, h header, m Measurements, d Devices) {
	h.channel = ChannelExtended
	f.begin(h)
	for _, name := range m.Inputs() {
		f.Field(uint64(m.RealValue(name)))
	}
	f.Field(uint64(d.SMPSValue()))
	f.Field(uint64(d.DischargerValue()))
	f.Field(uint64(d.BalancerState()))
	f.Field(uint64(d.BatteryRth()))
	f.Field(uint64(d.WiresRth()))
	for i := 0; i < analog.MaxBalanceCells; i++ {
		f.Field(uint64(d.CellRth(i)))
	}
	f.end()
}

func encodeChannel3(f *Frame, h header, m Measurements) {
	h.channel = ChannelRaw
	f.begin(h)
	for _, name := range m.PhysicalInputs() {
		f.Field(uint64(m.RawValue(name)))
	}
	f.end()
}
