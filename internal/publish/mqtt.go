// Package publish pushes camera snapshots to an MQTT broker.
package publish

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"
)

const DefaultPrefix = "reolink"

type Config struct {
	Broker   string // tcp://host:1883
	Username string
	Password string
	ClientID string
	Prefix   string
}

type Publisher struct {
	client  mqtt.Client
	prefix  string
	timeout time.Duration
}

// Connect dials the broker. A failed first connect is logged and retried in
// the background by paho.
func Connect(cfg Config) *Publisher {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	if cfg.Username != "" || cfg.Password != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("reolink-cli-%d", time.Now().UnixNano())
	}
	opts.SetClientID(clientID)
	opts.SetCleanSession(true)
	opts.SetConnectRetry(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(30 * time.Second)
	opts.OnConnect = func(mqtt.Client) {
		logrus.WithField("broker", cfg.Broker).Info("connected to mqtt broker")
	}

	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.WaitTimeout(3*time.Second) && token.Error() != nil {
		logrus.WithError(token.Error()).WithField("broker", cfg.Broker).Error("unable to connect to mqtt broker")
	}
	return New(c, cfg.Prefix)
}

// New wraps an existing client.
func New(c mqtt.Client, prefix string) *Publisher {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Publisher{client: c, prefix: prefix, timeout: 5 * time.Second}
}

// Topic builds <prefix>/<serial>/<kind>.
func (p *Publisher) Topic(serial, kind string) string {
	if serial == "" {
		serial = "unknown"
	}
	return p.prefix + "/" + serial + "/" + kind
}

// Publish sends v as JSON, retained, QoS 0.
func (p *Publisher) Publish(serial, kind string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}

	topic := p.Topic(serial, kind)
	token := p.client.Publish(topic, 0, true, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("publish %s: timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
