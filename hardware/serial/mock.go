package serial

import (
	"io"
)

// Mock Uarter for tests and stdout driver.
type nullUart struct {
	w    io.Writer
	path string
	baud int
}

func NewNullUart(w io.Writer) *nullUart { return &nullUart{w: w} }

func (self *nullUart) Open(path string, baud int) error {
	self.path = path
	self.baud = baud
	return nil
}

func (self *nullUart) Write(p []byte) (int, error) { return self.w.Write(p) }

func (self *nullUart) Drain() error { return nil }

func (self *nullUart) Close() error {
	self.path = ""
	self.baud = 0
	return nil
}
