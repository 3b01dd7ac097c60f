package main

import (
	"flag"
	"os"

	"github.com/juju/errors"
	"github.com/temoto/chargelog/hardware/serial"
	"github.com/temoto/chargelog/helpers/cli"
	"github.com/temoto/chargelog/internal/serlog"
	"github.com/temoto/chargelog/log2"
)

var log = log2.NewStderr(log2.LDebug)

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	devicePath := cmdline.String("device", "", "serial device, empty prints frames to stdout")
	driver := cmdline.String("io", serial.DriverFile, "file|tarm, ignored without -device")
	baud := cmdline.Int("baud", serlog.DefaultBaud, "")
	waitMode := cmdline.Bool("wait", false, "acquire port around every send")
	level := cmdline.Uint("level", uint(serlog.VerbosityBasic), "0..3")
	_ = cmdline.Parse(os.Args[1:])

	log.SetFlags(log2.LInteractiveFlags)

	uartDriver := serial.DriverStdout
	if *devicePath != "" {
		uartDriver = *driver
	}
	uart, err := serial.NewUarter(uartDriver)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	transport := serial.NewTransport(log, uart, *devicePath, nil)

	c := newConsole(log, transport, serlog.Options{Baud: *baud, WaitMode: *waitMode, LogFrames: true})
	c.level.Set(serlog.Verbosity(*level))

	err = cli.MainLoop("chargelog-cli", c.execLine, newCompleter(), c.session.PowerOff)
	c.session.PowerOff()
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
}
