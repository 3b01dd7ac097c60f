package serial

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	gpio "github.com/temoto/gpio-cdev-go"
	gpio_mock "github.com/temoto/gpio-cdev-go/mock"
)

func TestEnableLineQuiesce(t *testing.T) {
	t.Parallel()

	lines := &gpio_mock.MockLines{}
	lines.On("Close").Return(nil).Once()
	chip := &gpio_mock.MockChip{}
	chip.On("OpenLines", gpio.GPIOHANDLE_REQUEST_INPUT, gpioConsumer, uint32(10)).Return(lines, nil).Once()
	chip.On("Close").Return(nil).Once()

	pin := NewEnableLine("/dev/gpiochip0", 10)
	pin.testChip = chip
	tr := NewTransport(nil, NewNullUart(nil), "", pin)
	assert.NoError(t, tr.Quiesce())
	chip.AssertExpectations(t)
	lines.AssertExpectations(t)
}

func TestEnableLineQuiesceError(t *testing.T) {
	t.Parallel()

	chip := &gpio_mock.MockChip{}
	chip.On("OpenLines", gpio.GPIOHANDLE_REQUEST_INPUT, gpioConsumer, uint32(3)).Return((*gpio_mock.MockLines)(nil), fmt.Errorf("EBUSY")).Once()
	chip.On("Close").Return(nil).Once()

	pin := NewEnableLine("/dev/gpiochip1", 3)
	pin.testChip = chip
	err := pin.Quiesce()
	assert.EqualError(t, err, "gpio input chip=/dev/gpiochip1 line=3: EBUSY")
	chip.AssertExpectations(t)
}
