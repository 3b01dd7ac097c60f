package serlog

import (
	"strconv"

	"github.com/temoto/chargelog/crc"
)

const (
	FrameStart byte = '$'
	Separator  byte = ';'
	DecimalDot byte = '.'
)

// Frame accumulates one telemetry line and its running checksum.
// Every byte must go through Char, otherwise checksum is wrong.
type Frame struct {
	buf []byte
	crc byte
	num [20]byte
}

func (self *Frame) Char(c byte) {
	self.buf = append(self.buf, c)
	self.crc = crc.XOR8(self.crc, c)
}

func (self *Frame) Separator() { self.Char(Separator) }

func (self *Frame) UInt(x uint64) {
	for _, c := range strconv.AppendUint(self.num[:0], x, 10) {
		self.Char(c)
	}
}

func (self *Frame) Text(s string) {
	for i := 0; i < len(s); i++ {
		self.Char(s[i])
	}
}

// Field is value followed by separator, the unit of every frame body.
func (self *Frame) Field(x uint64) {
	self.UInt(x)
	self.Separator()
}

func (self *Frame) Bytes() []byte  { return self.buf }
func (self *Frame) Checksum() byte { return self.crc }

type header struct {
	channel uint8
	program uint32
	elapsed Elapsed
}

// begin resets checksum before '$', so '$' is covered.
func (self *Frame) begin(h header) {
	self.buf = self.buf[:0]
	self.crc = 0
	self.Char(FrameStart)
	self.Field(uint64(h.channel))
	self.Field(uint64(h.program))
	self.UInt(h.elapsed.Seconds())
	self.Char(DecimalDot)
	self.Field(h.elapsed.Decisecond())
}

// end appends checksum snapshot, separator and CR LF.
// Bytes after the snapshot perturb self.crc, that value is dropped at next begin.
func (self *Frame) end() {
	sum := self.crc
	self.Field(uint64(sum))
	self.Char('\r')
	self.Char('\n')
}
