package serlog

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/temoto/chargelog/crc"
	"github.com/temoto/chargelog/helpers/atomic_clock"
	"github.com/temoto/chargelog/internal/analog"
	"github.com/temoto/chargelog/internal/charger"
	"github.com/temoto/chargelog/log2"
)

// mockTransport records every call, written bytes go to buf.
type mockTransport struct {
	calls      []string
	buf        bytes.Buffer
	acquireErr error
	writeErr   error
}

func (self *mockTransport) Acquire(baud int) error {
	self.calls = append(self.calls, "acquire:"+strconv.Itoa(baud))
	return self.acquireErr
}
func (self *mockTransport) Release() error { self.calls = append(self.calls, "release"); return nil }
func (self *mockTransport) Flush() error   { self.calls = append(self.calls, "flush"); return nil }
func (self *mockTransport) Quiesce() error { self.calls = append(self.calls, "quiesce"); return nil }
func (self *mockTransport) Write(p []byte) (int, error) {
	self.calls = append(self.calls, "write")
	if self.writeErr != nil {
		return 0, self.writeErr
	}
	return self.buf.Write(p)
}

func (self *mockTransport) reset() {
	self.calls = nil
	self.buf.Reset()
}

type tenv struct {
	clock     *atomic_clock.Clock
	transport *mockTransport
	analog    *analog.Store
	status    *charger.Status
	level     *Level
	session   *Session
}

func newTestEnv(t testing.TB, verbosity Verbosity, opts Options) *tenv {
	env := &tenv{
		clock:     atomic_clock.New(0),
		transport: &mockTransport{},
		analog:    analog.NewStore(),
		status:    charger.NewStatus(),
		level:     NewLevel(verbosity),
	}
	log := log2.NewTest(t, log2.LDebug)
	log.SetFlags(log2.LTestFlags)
	opts.LogFrames = true
	env.session = NewSession(log, Deps{
		Clock:        env.clock,
		Transport:    env.transport,
		Measurements: env.analog,
		Settings:     env.level,
		Program:      env.status,
		Devices:      env.status,
	}, opts)
	return env
}

type parsedFrame struct {
	channel  uint64
	program  uint64
	time     string
	body     []uint64
	checksum uint64
}

// parseFrame validates framing and checksum of one CRLF terminated line.
func parseFrame(t testing.TB, line string) parsedFrame {
	require.True(t, strings.HasPrefix(line, "$"), "line=%q", line)
	require.True(t, strings.HasSuffix(line, ";\r\n"), "line=%q", line)
	fields := strings.Split(strings.TrimSuffix(line[1:], ";\r\n"), ";")
	require.True(t, len(fields) >= 4, "line=%q", line)

	var f parsedFrame
	var err error
	f.channel, err = strconv.ParseUint(fields[0], 10, 8)
	require.NoError(t, err)
	f.program, err = strconv.ParseUint(fields[1], 10, 32)
	require.NoError(t, err)
	f.time = fields[2]
	for _, s := range fields[3 : len(fields)-1] {
		require.False(t, len(s) > 1 && s[0] == '0', "leading zero field=%s line=%q", s, line)
		x, err := strconv.ParseUint(s, 10, 64)
		require.NoError(t, err, "line=%q", line)
		f.body = append(f.body, x)
	}
	f.checksum, err = strconv.ParseUint(fields[len(fields)-1], 10, 8)
	require.NoError(t, err, "line=%q", line)

	covered := line[:strings.LastIndexByte(strings.TrimSuffix(line, ";\r\n"), ';')+1]
	require.Equal(t, uint64(crc.XOR8_s(0, covered)), f.checksum, "line=%q", line)
	return f
}

func splitFrames(s string) []string {
	lines := strings.SplitAfter(s, "\r\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func elapsedText(ms uint64) string {
	return fmt.Sprintf("%d.%d", ms/1000, (ms/100)%10)
}
