package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
	"github.com/temoto/chargelog/hardware/serial"
	"github.com/temoto/chargelog/helpers"
	"github.com/temoto/chargelog/internal/serlog"
	"github.com/temoto/chargelog/log2"
)

const (
	DefaultKeepalive   = 60 * time.Second
	DefaultClientID    = "chargelog"
	DefaultTopicPrefix = "charger"
)

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource `hcl:"include"`

	SerialLog struct {
		Level      int  `hcl:"level"`
		WaitMode   bool `hcl:"wait_mode"`
		IntervalMs int  `hcl:"interval_ms"`
		LogFrames  bool `hcl:"log_frames"`
		LogDebug   bool `hcl:"log_debug"`
	} `hcl:"serial_log"`

	Hardware struct {
		Uart struct {
			Device string `hcl:"device"`
			Driver string `hcl:"driver"`
			Baud   int    `hcl:"baud"`
		} `hcl:"uart"`
		EnablePin struct {
			Chip string `hcl:"chip"`
			Line int    `hcl:"line"`
		} `hcl:"enable_pin"`
	} `hcl:"hardware"`

	Feed struct {
		MqttBroker   string `hcl:"mqtt_broker"`
		ClientID     string `hcl:"client_id"`
		TopicPrefix  string `hcl:"topic_prefix"`
		KeepaliveSec int    `hcl:"keepalive_sec"`
	} `hcl:"feed"`

	_copy_guard sync.Mutex //nolint:unused
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

func (c *Config) Verbosity() serlog.Verbosity { return serlog.Verbosity(c.SerialLog.Level) }
func (c *Config) Interval() time.Duration {
	return helpers.IntMillisecondDefault(c.SerialLog.IntervalMs, serlog.DefaultInterval)
}
func (c *Config) Keepalive() time.Duration {
	return helpers.IntSecondDefault(c.Feed.KeepaliveSec, DefaultKeepalive)
}

func (c *Config) SessionOptions() serlog.Options {
	baud := c.Hardware.Uart.Baud
	if baud <= 0 {
		baud = serlog.DefaultBaud
	}
	return serlog.Options{
		Baud:      baud,
		WaitMode:  c.SerialLog.WaitMode,
		LogFrames: c.SerialLog.LogFrames,
	}
}

func (c *Config) FeedClientID() string {
	if c.Feed.ClientID == "" {
		return DefaultClientID
	}
	return c.Feed.ClientID
}

func (c *Config) FeedTopicPrefix() string {
	if c.Feed.TopicPrefix == "" {
		return DefaultTopicPrefix
	}
	return c.Feed.TopicPrefix
}

func (c *Config) Validate() error {
	errs := make([]error, 0, 4)
	if l := c.SerialLog.Level; l < 0 || l > int(serlog.VerbosityMax) {
		errs = append(errs, errors.NotValidf("serial_log.level=%d (0..%d)", l, serlog.VerbosityMax))
	}
	if c.SerialLog.IntervalMs < 0 {
		errs = append(errs, errors.NotValidf("serial_log.interval_ms=%d", c.SerialLog.IntervalMs))
	}
	if c.Hardware.Uart.Baud < 0 {
		errs = append(errs, errors.NotValidf("hardware.uart.baud=%d", c.Hardware.Uart.Baud))
	}
	switch c.Hardware.Uart.Driver {
	case "", serial.DriverFile, serial.DriverTarm, serial.DriverStdout:
	default:
		errs = append(errs, errors.NotValidf("hardware.uart.driver=%s", c.Hardware.Uart.Driver))
	}
	if c.Hardware.EnablePin.Chip != "" && c.Hardware.EnablePin.Line < 0 {
		errs = append(errs, errors.NotValidf("hardware.enable_pin.line=%d", c.Hardware.EnablePin.Line))
	}
	return helpers.FoldErrors(errs)
}

func (c *Config) read(log *log2.Log, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		log.Fatalf("config duplicate source=%s", source.Name)
	} else {
		log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	}
	c.includeSeen[source.Name] = struct{}{}
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
			return
		}
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	err = hcl.Unmarshal(bs, c)
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s content='%s'", source.Name, string(bs))
		*errs = append(*errs, err)
		return
	}

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

// ReadConfig merges sources in order, later values overwrite earlier.
func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	if len(names) == 0 {
		log.Fatal("code error [Must]ReadConfig() without names")
	}

	if osfs, ok := fs.(*OsFullReader); ok {
		dir, name := filepath.Split(names[0])
		osfs.SetBase(dir)
		names[0] = name
	}
	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, ConfigSource{Name: name}, &errs)
	}
	if len(errs) == 0 {
		if err := c.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return c, helpers.FoldErrors(errs)
}

func MustReadConfig(log *log2.Log, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}
