package serlog

import (
	"context"
	"time"

	"github.com/temoto/alive/v2"
)

const DefaultInterval = time.Second

// Loop is the periodic scheduler for one Session.
// PowerOn is retried every tick, so enabling telemetry at runtime starts a
// session; setting verbosity to disabled ends it. Session is powered off on return.
func Loop(ctx context.Context, a *alive.Alive, s *Session, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	defer s.PowerOff()

	tick := time.NewTicker(interval)
	defer tick.Stop()
	stopCh := a.StopChan()
	for a.IsRunning() {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case <-tick.C:
			Tick(s)
		}
	}
}

// Tick is one scheduler step.
func Tick(s *Session) {
	if s.Settings.Verbosity() == VerbosityDisabled {
		s.PowerOff()
		return
	}
	s.PowerOn()
	s.Send()
}
