// Package mqtt publishes read-only port snapshots to an MQTT broker so
// external renderers and observers can consume grid, queue, crew and stats
// views without touching the core.
package mqtt

import (
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/bratMaciek/Yacht-Port-Simulation/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Enabled            bool   `json:"enabled"`
	Broker             string `json:"broker"`
	ClientID           string `json:"client_id"`
	Username           string `json:"username"`
	Password           string `json:"password"`
	TopicPrefix        string `json:"topic_prefix"`
	QoS                byte   `json:"qos"`
	UseTLS             bool   `json:"use_tls"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify"`
	SnapshotIntervalMS int    `json:"snapshot_interval_ms"`
}

// SetDefaults applies connection defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "yacht-port"
	}
	if c.TopicPrefix == "" {
		c.TopicPrefix = "port"
	}
	if c.SnapshotIntervalMS == 0 {
		c.SnapshotIntervalMS = 500
	}
}

// Validate checks mandatory fields when publishing is enabled.
func (c Config) Validate() error {
	if c.Enabled && c.Broker == "" {
		return fmt.Errorf("mqtt: broker is required when enabled")
	}
	return nil
}

// Publisher sends payloads to topic suffixes under the configured prefix.
type Publisher interface {
	Publish(suffix string, payload []byte) error
	Close()
}

// PahoPublisher implements Publisher using Eclipse Paho.
type PahoPublisher struct {
	cli    paho.Client
	prefix string
	qos    byte
	log    logger.Logger
}

// NewPahoPublisher connects to the broker.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		opts.SetTLSConfig(&tls.Config{InsecureSkipVerify: cfg.InsecureSkipVerify}) // #nosec G402 -- operator opt-in
	}
	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &PahoPublisher{
		cli:    cli,
		prefix: cfg.TopicPrefix,
		qos:    cfg.QoS,
		log:    logger.New("mqtt-publisher"),
	}, nil
}

// Publish sends the payload to <prefix>/<suffix>.
func (p *PahoPublisher) Publish(suffix string, payload []byte) error {
	topic := p.prefix + "/" + suffix
	token := p.cli.Publish(topic, p.qos, false, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish %s: %w", topic, token.Error())
	}
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() {
	p.cli.Disconnect(250)
}

// MockPublisher records published payloads for tests.
type MockPublisher struct {
	mu       sync.Mutex
	Messages map[string][][]byte
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{Messages: make(map[string][][]byte)}
}

// Publish stores the payload under the suffix.
func (m *MockPublisher) Publish(suffix string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages[suffix] = append(m.Messages[suffix], payload)
	return nil
}

// Close is a no-op.
func (m *MockPublisher) Close() {}

// Count returns how many payloads were published under the suffix.
func (m *MockPublisher) Count(suffix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Messages[suffix])
}

// Last returns the most recent payload for the suffix, nil when none.
func (m *MockPublisher) Last(suffix string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.Messages[suffix]
	if len(msgs) == 0 {
		return nil
	}
	return msgs[len(msgs)-1]
}
