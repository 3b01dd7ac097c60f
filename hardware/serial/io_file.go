//go:build linux
// +build linux

package serial

import (
	"os"
	"syscall"

	"github.com/juju/errors"
	"golang.org/x/sys/unix"
)

var baudRates = map[int]uint32{
	9600:   unix.B9600,
	19200:  unix.B19200,
	38400:  unix.B38400,
	57600:  unix.B57600,
	115200: unix.B115200,
	230400: unix.B230400,
}

type fileUart struct {
	f *os.File
}

func NewFileUart() *fileUart { return &fileUart{} }

func (self *fileUart) Open(path string, baud int) (err error) {
	if self.f != nil {
		self.f.Close()
		self.f = nil
	}
	speed, ok := baudRates[baud]
	if !ok {
		return errors.NotSupportedf("baud=%d", baud)
	}
	self.f, err = os.OpenFile(path, syscall.O_WRONLY|syscall.O_NOCTTY, 0600)
	if err != nil {
		return err
	}
	if err = io_reset_termios(int(self.f.Fd()), speed); err != nil {
		self.f.Close()
		self.f = nil
		return errors.Trace(err)
	}
	return nil
}

func (self *fileUart) Write(p []byte) (int, error) {
	if self.f == nil {
		return 0, ErrNotOpen
	}
	return self.f.Write(p)
}

// Drain is tcdrain(3).
func (self *fileUart) Drain() error {
	if self.f == nil {
		return ErrNotOpen
	}
	return unix.IoctlSetInt(int(self.f.Fd()), unix.TCSBRK, 1)
}

func (self *fileUart) Close() error {
	if self.f == nil {
		return nil
	}
	err := self.f.Close()
	self.f = nil
	return err
}

// raw 8N1, no flow control
func io_reset_termios(fd int, speed uint32) error {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		// not a tty, e.g. pipe or regular file in tests
		if errors.Cause(err) == unix.ENOTTY {
			return nil
		}
		return errors.Annotate(err, "TCGETS")
	}
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB | unix.CRTSCTS | unix.CBAUD
	t.Cflag |= unix.CS8 | unix.CLOCAL | unix.CREAD | speed
	t.Ispeed = speed
	t.Ospeed = speed
	return errors.Annotate(unix.IoctlSetTermios(fd, unix.TCSETS, t), "TCSETS")
}
