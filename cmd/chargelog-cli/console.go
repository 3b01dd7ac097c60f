package main

import (
	"strconv"
	"strings"
	"time"

	prompt "github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/temoto/chargelog/helpers/atomic_clock"
	"github.com/temoto/chargelog/internal/analog"
	"github.com/temoto/chargelog/internal/charger"
	"github.com/temoto/chargelog/internal/serlog"
	"github.com/temoto/chargelog/log2"
)

const usage = `syntax: commands separated by whitespace
(session)
- on          power on telemetry
- off         power off telemetry
- send        emit frames for current level
- tick=N      advance clock N milliseconds
- step        like scheduler: power on or off by level, then send

(data)
- level=N     verbosity 0..3
- state=N     charger program state
- set NAME=V  real value of analog input
- raw NAME=V  raw value of physical analog input
- stat        show counters

(meta)
- loop=N      repeat N times all commands on this line
`

// console drives one session with manual clock.
type console struct {
	log     *log2.Log
	clock   *atomic_clock.Clock
	analog  *analog.Store
	status  *charger.Status
	level   *serlog.Level
	session *serlog.Session
}

func newConsole(log *log2.Log, t serlog.Transport, opts serlog.Options) *console {
	c := &console{
		log:    log,
		clock:  atomic_clock.New(0),
		analog: analog.NewStore(),
		status: charger.NewStatus(),
		level:  serlog.NewLevel(serlog.VerbosityBasic),
	}
	c.session = serlog.NewSession(log, serlog.Deps{
		Clock:        c.clock,
		Transport:    t,
		Measurements: c.analog,
		Settings:     c.level,
		Program:      c.status,
		Devices:      c.status,
	}, opts)
	return c
}

type command func() error

func (self *console) execLine(line string) error {
	cmds, loopn, err := self.parseLine(line)
	if err != nil {
		self.log.Error(err)
		return err
	}
	for i := uint64(0); i < loopn; i++ {
		for _, cmd := range cmds {
			if err = cmd(); err != nil {
				self.log.Error(err)
				return err
			}
		}
	}
	return nil
}

func (self *console) parseLine(line string) ([]command, uint64, error) {
	words := strings.Fields(line)
	cmds := make([]command, 0, len(words))
	loopn := uint64(0)
	for i := 0; i < len(words); i++ {
		word := words[i]
		switch {
		case strings.HasPrefix(word, "loop="):
			if loopn != 0 {
				return nil, 0, errors.Errorf("multiple loop commands, expected at most one")
			}
			n, err := strconv.ParseUint(word[5:], 10, 32)
			if err != nil {
				return nil, 0, errors.Annotatef(err, "word=%s", word)
			}
			loopn = n
		case word == "set" || word == "raw":
			if i+1 >= len(words) {
				return nil, 0, errors.Errorf("%s: expected NAME=V", word)
			}
			i++
			cmd, err := self.parseAssign(word == "raw", words[i])
			if err != nil {
				return nil, 0, err
			}
			cmds = append(cmds, cmd)
		default:
			cmd, err := self.parseCommand(word)
			if err != nil {
				return nil, 0, err
			}
			cmds = append(cmds, cmd)
		}
	}
	if loopn == 0 {
		loopn = 1
	}
	return cmds, loopn, nil
}

func (self *console) parseCommand(word string) (command, error) {
	switch {
	case word == "help":
		return func() error { self.log.Infof(usage); return nil }, nil
	case word == "on":
		return func() error { self.session.PowerOn(); return nil }, nil
	case word == "off":
		return func() error { self.session.PowerOff(); return nil }, nil
	case word == "send":
		return func() error { self.session.Send(); return nil }, nil
	case word == "step":
		return func() error { serlog.Tick(self.session); return nil }, nil
	case word == "stat":
		return func() error {
			self.log.Infof("state=%s stat=%+v", self.session.State(), self.session.Stat())
			return nil
		}, nil
	case strings.HasPrefix(word, "tick="):
		n, err := parseUint(word, 5, 32)
		if err != nil {
			return nil, err
		}
		return func() error { self.clock.Add(time.Duration(n) * time.Millisecond); return nil }, nil
	case strings.HasPrefix(word, "level="):
		n, err := parseUint(word, 6, 8)
		if err != nil {
			return nil, err
		}
		if n > uint64(serlog.VerbosityMax) {
			return nil, errors.NotValidf("level=%d (0..%d)", n, serlog.VerbosityMax)
		}
		return func() error { self.level.Set(serlog.Verbosity(n)); return nil }, nil
	case strings.HasPrefix(word, "state="):
		n, err := parseUint(word, 6, 32)
		if err != nil {
			return nil, err
		}
		return func() error { self.status.SetProgramState(charger.ProgramState(n)); return nil }, nil
	}
	return nil, errors.Errorf("invalid command: '%s'", word)
}

func (self *console) parseAssign(raw bool, word string) (command, error) {
	parts := strings.SplitN(word, "=", 2)
	if len(parts) != 2 {
		return nil, errors.NotValidf("assignment '%s', expected NAME=V", word)
	}
	name, ok := analog.ParseName(parts[0])
	if !ok {
		return nil, errors.NotFoundf("analog input=%s", parts[0])
	}
	v, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return nil, errors.Annotatef(err, "word=%s", word)
	}
	if raw {
		if !name.Physical() {
			return nil, errors.NotValidf("raw value of calculated input=%s", name)
		}
		return func() error { self.analog.SetRaw(name, uint32(v)); return nil }, nil
	}
	return func() error { self.analog.SetReal(name, uint32(v)); return nil }, nil
}

func parseUint(word string, offset, bits int) (uint64, error) {
	n, err := strconv.ParseUint(word[offset:], 10, bits)
	if err != nil {
		return 0, errors.Annotatef(err, "word=%s", word)
	}
	return n, nil
}

func newCompleter() prompt.Completer {
	suggests := []prompt.Suggest{
		{Text: "on", Description: "power on telemetry"},
		{Text: "off", Description: "power off telemetry"},
		{Text: "send", Description: "emit frames"},
		{Text: "step", Description: "scheduler step"},
		{Text: "tick=N", Description: "advance clock N ms"},
		{Text: "level=N", Description: "verbosity 0..3"},
		{Text: "state=N", Description: "charger program state"},
		{Text: "set", Description: "set NAME=V real analog value"},
		{Text: "raw", Description: "raw NAME=V physical analog value"},
		{Text: "stat", Description: "show counters"},
		{Text: "loop=N", Description: "repeat line N times"},
		{Text: "help", Description: "show usage"},
	}
	for _, n := range analog.NewStore().Inputs() {
		suggests = append(suggests, prompt.Suggest{Text: n.String() + "=", Description: "analog input"})
	}

	return func(d prompt.Document) []prompt.Suggest {
		return prompt.FilterFuzzy(suggests, d.GetWordBeforeCursor(), true)
	}
}
