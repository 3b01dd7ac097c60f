package serial

import (
	"github.com/juju/errors"
	"github.com/temoto/chargelog/helpers"
	gpio "github.com/temoto/gpio-cdev-go"
)

const gpioConsumer = "chargelog"

// EnableLine is the GPIO line wired to the transmitter enable.
// Quiesce leaves it floating so the port draws no power between sends.
type EnableLine struct {
	ChipPath string
	Line     uint32

	testChip gpio.Chiper
}

func NewEnableLine(chipPath string, line uint32) *EnableLine {
	return &EnableLine{ChipPath: chipPath, Line: line}
}

func (self *EnableLine) Quiesce() error {
	chip, err := self.openChip()
	if err != nil {
		return errors.Annotatef(err, "gpio open chip=%s", self.ChipPath)
	}
	lines, err := chip.OpenLines(gpio.GPIOHANDLE_REQUEST_INPUT, gpioConsumer, self.Line)
	if err != nil {
		_ = chip.Close()
		return errors.Annotatef(err, "gpio input chip=%s line=%d", self.ChipPath, self.Line)
	}
	return helpers.FoldErrors([]error{lines.Close(), chip.Close()})
}

func (self *EnableLine) openChip() (gpio.Chiper, error) {
	if self.testChip != nil {
		return self.testChip, nil
	}
	return gpio.Open(self.ChipPath, gpioConsumer)
}
