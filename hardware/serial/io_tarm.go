package serial

import (
	"github.com/juju/errors"
	"github.com/tarm/serial"
)

type tarmUart struct {
	port *serial.Port
}

func NewTarmUart() *tarmUart { return &tarmUart{} }

func (self *tarmUart) Open(path string, baud int) (err error) {
	if self.port != nil {
		self.port.Close()
	}
	self.port, err = serial.OpenPort(&serial.Config{
		Name:     path,
		Baud:     baud,
		Size:     8,
		Parity:   serial.ParityNone,
		StopBits: serial.Stop1,
	})
	return errors.Annotatef(err, "tarm open path=%s", path)
}

func (self *tarmUart) Write(p []byte) (int, error) {
	if self.port == nil {
		return 0, ErrNotOpen
	}
	return self.port.Write(p)
}

// Drain is a no-op: tarm writes are blocking and its Flush discards buffers.
func (self *tarmUart) Drain() error {
	if self.port == nil {
		return ErrNotOpen
	}
	return nil
}

func (self *tarmUart) Close() error {
	if self.port == nil {
		return nil
	}
	err := self.port.Close()
	self.port = nil
	return err
}
