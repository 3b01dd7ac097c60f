package serlog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/chargelog/internal/analog"
	"github.com/temoto/chargelog/internal/charger"
)

func TestExampleVector(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, VerbosityBasic, Options{})
	env.status.SetProgramState(charger.ProgramDischarging)
	env.clock.Set(10000)
	env.session.PowerOn()
	env.session.Send() // t=0
	env.transport.reset()
	env.clock.Add(1234 * time.Millisecond)
	env.session.Send()
	assert.Equal(t, "$1;2;1.2;0;0;0;0;0;0;0;0;0;0;0;0;0;0;49;\r\n", env.transport.buf.String())
}

func TestLifecycleIdempotent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		opts   Options
		level  Verbosity
		run    func(s *Session)
		state  State
		expect []string
	}{
		{"off/power-off", Options{}, VerbosityBasic,
			func(s *Session) { s.PowerOff() }, StateOff, nil},
		{"off/send", Options{}, VerbosityBasic,
			func(s *Session) { s.Send() }, StateOff, nil},
		{"disabled/power-on", Options{}, VerbosityDisabled,
			func(s *Session) { s.PowerOn(); s.Send() }, StateOff, nil},
		{"power-on-twice", Options{}, VerbosityBasic,
			func(s *Session) { s.PowerOn(); s.PowerOn() }, StateStarting, []string{"acquire:57600"}},
		{"on/power-on", Options{Baud: 9600}, VerbosityBasic,
			func(s *Session) { s.PowerOn(); s.Send(); s.PowerOn() }, StateOn, []string{"acquire:9600", "write"}},
		{"power-off-twice", Options{}, VerbosityBasic,
			func(s *Session) { s.PowerOn(); s.PowerOff(); s.PowerOff() }, StateOff, []string{"acquire:57600", "release"}},
		{"wait-mode/power-on", Options{WaitMode: true}, VerbosityBasic,
			func(s *Session) { s.PowerOn() }, StateStarting, nil},
		{"wait-mode/power-off", Options{WaitMode: true}, VerbosityBasic,
			func(s *Session) { s.PowerOn(); s.PowerOff() }, StateOff, nil},
		{"wait-mode/send", Options{WaitMode: true}, VerbosityExtended,
			func(s *Session) { s.PowerOn(); s.Send() }, StateOn,
			[]string{"acquire:57600", "write", "write", "flush", "release", "quiesce"}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, c.level, c.opts)
			c.run(env.session)
			assert.Equal(t, c.state, env.session.State())
			assert.Equal(t, c.expect, env.transport.calls)
		})
	}
}

func TestMonotonicTime(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, VerbosityBasic, Options{})
	env.clock.Set(777777)
	env.session.PowerOn()
	env.clock.Add(5 * time.Second) // time between PowerOn and first Send is not counted

	steps := []time.Duration{0, 99 * time.Millisecond, time.Millisecond, 850 * time.Millisecond, 0, 61 * time.Second}
	expect := []string{"0.0", "0.0", "0.1", "0.9", "0.9", "61.9"}
	for _, step := range steps {
		env.clock.Add(step)
		env.session.Send()
	}
	frames := splitFrames(env.transport.buf.String())
	require.Equal(t, len(steps), len(frames))
	for i, line := range frames {
		assert.Equal(t, expect[i], parseFrame(t, line).time)
	}

	// new session restarts time base
	env.session.PowerOff()
	env.transport.reset()
	env.clock.Add(time.Hour)
	env.session.PowerOn()
	env.session.Send()
	assert.Equal(t, "0.0", parseFrame(t, env.transport.buf.String()).time)
}

func TestVerbosityGating(t *testing.T) {
	t.Parallel()

	for _, level := range []Verbosity{VerbosityBasic, VerbosityExtended, VerbosityRaw} {
		level := level
		t.Run(fmt.Sprintf("level=%d", level), func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, level, Options{})
			env.session.PowerOn()
			const sends = 3
			for i := 0; i < sends; i++ {
				env.clock.Add(time.Second)
				env.session.Send()
			}
			frames := splitFrames(env.transport.buf.String())
			require.Equal(t, sends*int(level), len(frames))
			for i, line := range frames {
				p := parseFrame(t, line)
				assert.Equal(t, uint64(i%int(level)+1), p.channel, "frame=%d", i)
			}
			st := env.session.Stat()
			assert.Equal(t, uint32(sends), st.Sends)
			assert.Equal(t, uint32(sends*int(level)), st.Frames)
			assert.Equal(t, uint32(0), st.TransportErrors)
		})
	}
}

func TestVerbosityChangeDuringSession(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, VerbosityRaw, Options{})
	env.session.PowerOn()
	env.session.Send()
	env.level.Set(VerbosityBasic)
	env.session.Send()
	frames := splitFrames(env.transport.buf.String())
	require.Equal(t, 4, len(frames))
	assert.Equal(t, uint64(1), parseFrame(t, frames[3]).channel)
}

func TestFieldCardinality(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, VerbosityRaw, Options{})
	env.analog.SetReal(analog.VoutBalancer, 16800)
	env.analog.SetReal(analog.Vb1, 4200)
	env.analog.SetReal(analog.Vb6, 4190)
	env.analog.SetReal(analog.Vout, 25123)
	env.analog.SetRaw(analog.VoutPlusPin, 51234)
	env.analog.SetRaw(analog.Vb6Pin, 40001)
	env.status.SetProgramState(charger.ProgramCharging)
	env.status.SetSMPS(321)
	env.status.SetDischarger(0)
	env.status.SetBalancer(5)
	env.status.SetBatteryRth(80)
	env.status.SetWiresRth(12)
	env.status.SetCellRth(0, 11)
	env.status.SetCellRth(5, 16)

	env.session.PowerOn()
	env.session.Send()
	frames := splitFrames(env.transport.buf.String())
	require.Equal(t, 3, len(frames))

	ch1 := parseFrame(t, frames[0])
	assert.Equal(t, uint64(charger.ProgramCharging), ch1.program)
	require.Equal(t, Channel1Fields, len(ch1.body))
	assert.Equal(t, uint64(16800), ch1.body[0])
	assert.Equal(t, uint64(4200), ch1.body[8])
	assert.Equal(t, uint64(4190), ch1.body[13])

	ch2 := parseFrame(t, frames[1])
	inputs := len(env.analog.Inputs())
	require.Equal(t, inputs+Channel2DeviceFields, len(ch2.body))
	assert.Equal(t, uint64(25123), ch2.body[analog.Vout])
	assert.Equal(t, []uint64{321, 0, 5, 80, 12, 11, 0, 0, 0, 0, 16}, ch2.body[inputs:])

	ch3 := parseFrame(t, frames[2])
	require.Equal(t, len(env.analog.PhysicalInputs()), len(ch3.body))
	assert.Equal(t, uint64(51234), ch3.body[analog.VoutPlusPin])
	assert.Equal(t, uint64(40001), ch3.body[analog.Vb6Pin])

	// all three frames share elapsed snapshot and program state
	assert.Equal(t, ch1.time, ch2.time)
	assert.Equal(t, ch1.time, ch3.time)
}

func TestTransportErrors(t *testing.T) {
	t.Parallel()

	t.Run("write", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, VerbosityExtended, Options{})
		env.transport.writeErr = fmt.Errorf("EIO")
		env.session.PowerOn()
		env.session.Send()
		assert.Equal(t, StateOn, env.session.State())
		st := env.session.Stat()
		assert.Equal(t, uint32(0), st.Frames)
		assert.Equal(t, uint32(2), st.TransportErrors)
	})
	t.Run("wait-mode-acquire", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, VerbosityBasic, Options{WaitMode: true})
		env.transport.acquireErr = fmt.Errorf("ENOENT")
		env.session.PowerOn()
		env.clock.Add(300 * time.Millisecond)
		env.session.Send()
		assert.Equal(t, []string{"acquire:57600"}, env.transport.calls)
		assert.Equal(t, StateOn, env.session.State())

		env.transport.acquireErr = nil
		env.clock.Add(time.Second)
		env.session.Send()
		assert.Equal(t, "1.0", parseFrame(t, env.transport.buf.String()).time)
	})
}
