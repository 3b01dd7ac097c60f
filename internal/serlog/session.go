package serlog

import (
	"sync/atomic"

	"github.com/temoto/chargelog/log2"
)

type State uint8

const (
	StateOff State = iota
	StateStarting
	StateOn
)

func (s State) String() string {
	switch s {
	case StateOff:
		return "off"
	case StateStarting:
		return "starting"
	case StateOn:
		return "on"
	}
	return "invalid"
}

// DefaultBaud matches the charger firmware serial speed.
const DefaultBaud = 57600

type Options struct {
	Baud int
	// WaitMode acquires transport around every Send instead of holding it
	// from PowerOn to PowerOff, and quiesces the enable line after each Send.
	WaitMode bool
	// LogFrames dumps every frame at debug level.
	LogFrames bool
}

type Deps struct {
	Clock        Clock
	Transport    Transport
	Measurements Measurements
	Settings     Settings
	Program      Program
	Devices      Devices
}

// Session is the telemetry power state machine: Off -> Starting -> On -> Off.
// Not safe for concurrent use: PowerOn, Send and PowerOff must be called
// from one goroutine, never reentrantly.
type Session struct {
	Deps
	log   *log2.Log
	opts  Options
	state State
	tb    timeBase
	frame Frame
	stat  Stat
}

func NewSession(log *log2.Log, deps Deps, opts Options) *Session {
	if opts.Baud == 0 {
		opts.Baud = DefaultBaud
	}
	return &Session{
		Deps: deps,
		log:  log,
		opts: opts,
	}
}

func (self *Session) State() State { return self.state }

func (self *Session) Stat() Stat {
	return Stat{
		Sends:           atomic.LoadUint32(&self.stat.Sends),
		Frames:          atomic.LoadUint32(&self.stat.Frames),
		TransportErrors: atomic.LoadUint32(&self.stat.TransportErrors),
	}
}

// PowerOn does nothing unless session is off and telemetry is enabled.
func (self *Session) PowerOn() {
	if self.state != StateOff {
		return
	}
	if self.Settings.Verbosity() == VerbosityDisabled {
		return
	}
	if !self.opts.WaitMode {
		self.check("acquire", self.Transport.Acquire(self.opts.Baud))
	}
	self.setState(StateStarting)
}

// Send emits channel frames for current verbosity.
// First Send after PowerOn defines session time zero.
func (self *Session) Send() {
	if self.state == StateOff {
		return
	}
	now := self.Clock.Milliseconds()
	if self.state == StateStarting {
		self.tb.begin(now)
		self.setState(StateOn)
	}
	elapsed := self.tb.update(now)
	atomic.AddUint32(&self.stat.Sends, 1)

	if self.opts.WaitMode {
		if !self.check("acquire", self.Transport.Acquire(self.opts.Baud)) {
			return
		}
	}

	h := header{program: self.Program.ProgramState(), elapsed: elapsed}
	verbosity := self.Settings.Verbosity()
	encodeChannel1(&self.frame, h, self.Measurements)
	self.emit()
	if verbosity > VerbosityBasic {
		encodeChannel2(&self.frame, h, self.Measurements, self.Devices)
		self.emit()
	}
	if verbosity > VerbosityExtended {
		encodeChannel3(&self.frame, h, self.Measurements)
		self.emit()
	}

	if self.opts.WaitMode {
		self.check("flush", self.Transport.Flush())
		self.check("release", self.Transport.Release())
		self.check("quiesce", self.Transport.Quiesce())
	}
}

// PowerOff does nothing when already off.
func (self *Session) PowerOff() {
	if self.state == StateOff {
		return
	}
	if !self.opts.WaitMode {
		self.check("release", self.Transport.Release())
	}
	self.setState(StateOff)
}

func (self *Session) emit() {
	b := self.frame.Bytes()
	if self.opts.LogFrames {
		self.log.Debugf("serlog frame=%q", b)
	}
	_, err := self.Transport.Write(b)
	if self.check("write", err) {
		atomic.AddUint32(&self.stat.Frames, 1)
	}
}

func (self *Session) setState(s State) {
	self.log.Debugf("serlog state %s -> %s", self.state.String(), s.String())
	self.state = s
}

func (self *Session) check(op string, err error) bool {
	if err == nil {
		return true
	}
	atomic.AddUint32(&self.stat.TransportErrors, 1)
	self.log.Errorf("serlog transport %s err=%v", op, err)
	return false
}
