// Package serial is the byte transport for telemetry frames:
// uart drivers, optional enable line and Transport gluing them together.
package serial

import (
	"io"
	"os"

	"github.com/juju/errors"
)

const (
	DriverFile   = "file"
	DriverTarm   = "tarm"
	DriverStdout = "stdout"
)

// Uarter is a write-only serial port.
type Uarter interface {
	Open(path string, baud int) error
	// Drain blocks until written bytes are transmitted.
	Drain() error
	Close() error
	io.Writer
}

// NewUarter selects driver by name, empty means file.
func NewUarter(driver string) (Uarter, error) {
	switch driver {
	case "", DriverFile:
		return NewFileUart(), nil
	case DriverTarm:
		return NewTarmUart(), nil
	case DriverStdout:
		return NewNullUart(os.Stdout), nil
	}
	return nil, errors.NotValidf("uart driver=%s", driver)
}
