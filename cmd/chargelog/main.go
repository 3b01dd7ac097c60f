package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"
	"github.com/mattn/go-isatty"
	"github.com/temoto/alive/v2"
	"github.com/temoto/chargelog/hardware/serial"
	"github.com/temoto/chargelog/helpers/atomic_clock"
	"github.com/temoto/chargelog/internal/analog"
	"github.com/temoto/chargelog/internal/charger"
	"github.com/temoto/chargelog/internal/config"
	"github.com/temoto/chargelog/internal/feed"
	"github.com/temoto/chargelog/internal/serlog"
	"github.com/temoto/chargelog/log2"
)

var log = log2.NewStderr(log2.LInfo)

func main() {
	flagConfig := flag.String("config", "chargelog.hcl", "")
	flag.Parse()

	if sdnotify("start") {
		// we're under systemd, assume systemd journal logging, remove timestamp
		log.SetFlags(log2.LServiceFlags)
	} else if isatty.IsTerminal(os.Stderr.Fd()) {
		log.SetFlags(log2.LInteractiveFlags)
	}
	log.Infof("chargelog start")

	cfg := config.MustReadConfig(log, config.NewOsFullReader(), *flagConfig)
	if cfg.SerialLog.LogDebug {
		log.SetLevel(log2.LDebug)
	}
	log.Debugf("config=%+v", cfg)

	uart, err := serial.NewUarter(cfg.Hardware.Uart.Driver)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	var pin *serial.EnableLine
	if cfg.Hardware.EnablePin.Chip != "" {
		pin = serial.NewEnableLine(cfg.Hardware.EnablePin.Chip, uint32(cfg.Hardware.EnablePin.Line))
	}
	transport := serial.NewTransport(log, uart, cfg.Hardware.Uart.Device, pin)

	store := analog.NewStore()
	status := charger.NewStatus()
	level := serlog.NewLevel(cfg.Verbosity())

	if cfg.Feed.MqttBroker != "" {
		f := feed.New(log, cfg.FeedTopicPrefix(), store, status, level)
		err = f.Connect(feed.Config{
			Broker:    cfg.Feed.MqttBroker,
			ClientID:  cfg.FeedClientID(),
			Keepalive: cfg.Keepalive(),
		})
		if err != nil {
			log.Fatal(errors.ErrorStack(err))
		}
		defer f.Close()
	} else {
		log.Infof("feed disabled, no mqtt_broker configured")
	}

	session := serlog.NewSession(log, serlog.Deps{
		Clock:        atomic_clock.NewMonotonic(),
		Transport:    transport,
		Measurements: store,
		Settings:     level,
		Program:      status,
		Devices:      status,
	}, cfg.SessionOptions())

	a := alive.NewAlive()
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-signalCh
		log.Infof("signal=%v stopping", s)
		a.Stop()
	}()

	a.Add(1)
	go func() {
		defer a.Done()
		defer a.Stop()
		serlog.Loop(context.Background(), a, session, cfg.Interval())
	}()
	sdnotify(daemon.SdNotifyReady)
	log.Infof("running interval=%v level=%d wait_mode=%t", cfg.Interval(), level.Verbosity(), cfg.SerialLog.WaitMode)

	a.Wait()
	sdnotify(daemon.SdNotifyStopping)
	log.Infof("stopped stat=%+v", session.Stat())
}

func sdnotify(s string) bool {
	ok, err := daemon.SdNotify(false, s)
	if err != nil {
		log.Fatal("sdnotify: ", errors.ErrorStack(err))
	}
	return ok
}
