// Package feed receives charger measurements and status over MQTT
// and stores them for the telemetry session.
//
// Topics under prefix, payload is decimal unsigned text:
//   analog/<name>/real  analog/<name>/raw
//   program  smps  discharger  balancer
//   rth/battery  rth/wires  rth/cell/<1..6>
//   serial_log/level
package feed

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/juju/errors"
	"github.com/temoto/chargelog/internal/analog"
	"github.com/temoto/chargelog/internal/charger"
	"github.com/temoto/chargelog/internal/serlog"
	"github.com/temoto/chargelog/log2"
)

const connectTimeout = 10 * time.Second

type Config struct {
	Broker    string
	ClientID  string
	Keepalive time.Duration
}

type Feed struct {
	log    *log2.Log
	prefix string
	analog *analog.Store
	status *charger.Status
	level  *serlog.Level // optional
	m      mqtt.Client

	applied uint32
	invalid uint32
}

// level may be nil, then serial_log/level topic is rejected.
func New(log *log2.Log, prefix string, a *analog.Store, s *charger.Status, level *serlog.Level) *Feed {
	return &Feed{
		log:    log,
		prefix: strings.TrimSuffix(prefix, "/"),
		analog: a,
		status: s,
		level:  level,
	}
}

func (self *Feed) Stat() (applied, invalid uint32) {
	return atomic.LoadUint32(&self.applied), atomic.LoadUint32(&self.invalid)
}

// Apply is one feed message. Safe for concurrent use.
func (self *Feed) Apply(topic string, payload []byte) error {
	err := self.apply(topic, payload)
	if err != nil {
		atomic.AddUint32(&self.invalid, 1)
		return err
	}
	atomic.AddUint32(&self.applied, 1)
	return nil
}

func (self *Feed) apply(topic string, payload []byte) error {
	if !strings.HasPrefix(topic, self.prefix+"/") {
		return errors.NotFoundf("feed topic=%s", topic)
	}
	parts := strings.Split(topic[len(self.prefix)+1:], "/")
	s := strings.TrimSpace(string(payload))
	v64, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return errors.NotValidf("feed topic=%s payload=%q", topic, s)
	}
	v := uint32(v64)

	switch {
	case len(parts) == 3 && parts[0] == "analog":
		name, ok := analog.ParseName(parts[1])
		if !ok {
			return errors.NotFoundf("feed topic=%s input=%s", topic, parts[1])
		}
		switch parts[2] {
		case "real":
			self.analog.SetReal(name, v)
			return nil
		case "raw":
			if !name.Physical() {
				return errors.NotValidf("feed topic=%s raw value of calculated input", topic)
			}
			self.analog.SetRaw(name, v)
			return nil
		}

	case len(parts) == 1:
		switch parts[0] {
		case "program":
			self.status.SetProgramState(charger.ProgramState(v))
			return nil
		case "smps":
			self.status.SetSMPS(v)
			return nil
		case "discharger":
			self.status.SetDischarger(v)
			return nil
		case "balancer":
			self.status.SetBalancer(v)
			return nil
		}

	case len(parts) == 2 && parts[0] == "rth":
		switch parts[1] {
		case "battery":
			self.status.SetBatteryRth(v)
			return nil
		case "wires":
			self.status.SetWiresRth(v)
			return nil
		}

	case len(parts) == 3 && parts[0] == "rth" && parts[1] == "cell":
		cell, err := strconv.Atoi(parts[2])
		if err != nil || cell < 1 || cell > analog.MaxBalanceCells {
			return errors.NotValidf("feed topic=%s cell", topic)
		}
		self.status.SetCellRth(cell-1, v)
		return nil

	case len(parts) == 2 && parts[0] == "serial_log" && parts[1] == "level":
		if self.level == nil {
			return errors.NotSupportedf("feed topic=%s", topic)
		}
		if v > uint32(serlog.VerbosityMax) {
			return errors.NotValidf("feed topic=%s level=%d", topic, v)
		}
		self.level.Set(serlog.Verbosity(v))
		self.log.Infof("feed serial_log level=%d", v)
		return nil
	}
	return errors.NotFoundf("feed topic=%s", topic)
}

func (self *Feed) Connect(c Config) error {
	mqtt.ERROR = self.log
	mqtt.CRITICAL = self.log
	mqtt.WARN = self.log

	mopt := mqtt.NewClientOptions().
		AddBroker(c.Broker).
		SetClientID(c.ClientID).
		SetCleanSession(true).
		SetKeepAlive(c.Keepalive).
		SetAutoReconnect(true).
		SetOnConnectHandler(self.onConnectHandler).
		SetConnectionLostHandler(self.connectLostHandler)
	self.m = mqtt.NewClient(mopt)
	token := self.m.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return errors.Timeoutf("mqtt connect broker=%s", c.Broker)
	}
	return errors.Annotatef(token.Error(), "mqtt connect broker=%s", c.Broker)
}

func (self *Feed) Close() {
	if self.m == nil {
		return
	}
	self.m.Unsubscribe(self.topicFilter()).WaitTimeout(time.Second)
	self.m.Disconnect(250)
}

func (self *Feed) topicFilter() string { return self.prefix + "/#" }

func (self *Feed) messageHandler(c mqtt.Client, msg mqtt.Message) {
	if err := self.Apply(msg.Topic(), msg.Payload()); err != nil {
		self.log.Errorf("feed ignored err=%v", err)
	}
}

func (self *Feed) connectLostHandler(c mqtt.Client, err error) {
	self.log.Infof("mqtt disconnect err=%v", err)
}

// subscribe again after every reconnect, session is not persisted
func (self *Feed) onConnectHandler(c mqtt.Client) {
	self.log.Infof("mqtt connect")
	if token := c.Subscribe(self.topicFilter(), 0, self.messageHandler); token.Wait() && token.Error() != nil {
		self.log.Errorf("mqtt subscribe topic=%s err=%v", self.topicFilter(), token.Error())
	} else {
		self.log.Debugf("mqtt subscribe topic=%s", self.topicFilter())
	}
}
