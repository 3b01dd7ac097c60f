package serial

import (
	"github.com/juju/errors"
	"github.com/temoto/chargelog/helpers"
	"github.com/temoto/chargelog/log2"
)

var ErrNotOpen = errors.New("serial port is not open")

// Transport owns one uart and optional enable line.
// Not safe for concurrent use, same as its single user serlog.Session.
type Transport struct {
	Log  *log2.Log
	path string
	uart Uarter
	pin  *EnableLine
	open bool
}

// pin may be nil.
func NewTransport(log *log2.Log, uart Uarter, path string, pin *EnableLine) *Transport {
	return &Transport{
		Log:  log,
		path: path,
		uart: uart,
		pin:  pin,
	}
}

func (self *Transport) IsOpen() bool { return self.open }

// Acquire on already open port is a no-op.
func (self *Transport) Acquire(baud int) error {
	if self.open {
		return nil
	}
	if err := self.uart.Open(self.path, baud); err != nil {
		return errors.Annotatef(err, "serial open path=%s baud=%d", self.path, baud)
	}
	self.open = true
	self.Log.Debugf("serial open path=%s baud=%d", self.path, baud)
	return nil
}

func (self *Transport) Write(p []byte) (int, error) {
	if !self.open {
		return 0, ErrNotOpen
	}
	if err := helpers.WriteAll(self.uart, p); err != nil {
		return 0, errors.Annotate(err, "serial write")
	}
	return len(p), nil
}

func (self *Transport) Flush() error {
	if !self.open {
		return nil
	}
	return errors.Annotate(self.uart.Drain(), "serial drain")
}

func (self *Transport) Release() error {
	if !self.open {
		return nil
	}
	self.open = false
	self.Log.Debugf("serial close path=%s", self.path)
	return errors.Annotate(self.uart.Close(), "serial close")
}

func (self *Transport) Quiesce() error {
	if self.pin == nil {
		return nil
	}
	return self.pin.Quiesce()
}
