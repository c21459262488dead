package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/vertiport/evtol-sim/core/events"
	"github.com/vertiport/evtol-sim/core/telemetry"
	"github.com/vertiport/evtol-sim/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT publisher.
type Config struct {
	Enabled     bool   `json:"enabled"`
	Broker      string `json:"broker"`
	ClientID    string `json:"client_id"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	TopicPrefix string `json:"topic_prefix"`
	QoS         byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.TopicPrefix == "" {
		c.TopicPrefix = "evtol"
	}
	if c.ClientID == "" {
		c.ClientID = "evtol-sim"
	}
}

// Validate checks mandatory fields when the publisher is enabled.
func (c Config) Validate() error {
	if c.Enabled && c.Broker == "" {
		return fmt.Errorf("broker is required when telemetry is enabled")
	}
	return nil
}

// summaryPayload is the wire format for one vehicle's final metrics.
type summaryPayload struct {
	RunID          string  `json:"run_id"`
	VehicleID      int     `json:"vehicle_id"`
	Company        string  `json:"company"`
	FlightHours    float64 `json:"flight_hours"`
	DistanceMiles  float64 `json:"distance_miles"`
	ChargeHours    float64 `json:"charge_hours"`
	Faults         int     `json:"faults"`
	PassengerMiles float64 `json:"passenger_miles"`
	FinishedAt     string  `json:"finished_at"`
}

// PahoPublisher publishes vehicle summaries over MQTT using Eclipse Paho.
type PahoPublisher struct {
	cli    paho.Client
	prefix string
	runID  string
	qos    byte
	log    logger.Logger
}

// NewPahoPublisher connects to the broker. Topics are
// <prefix>/run/<runID>/vehicle/<id>.
func NewPahoPublisher(cfg Config, runID string) (*PahoPublisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.New("mqtt-publisher")
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	cli := paho.NewClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &PahoPublisher{cli: cli, prefix: cfg.TopicPrefix, runID: runID, qos: cfg.QoS, log: log}, nil
}

var _ telemetry.Publisher = (*PahoPublisher)(nil)

// PublishVehicleSummary publishes the summary as JSON.
func (p *PahoPublisher) PublishVehicleSummary(ev events.VehicleDone) error {
	payload, err := json.Marshal(summaryPayload{
		RunID:          p.runID,
		VehicleID:      ev.VehicleID,
		Company:        ev.Company,
		FlightHours:    ev.Metrics.FlightHours,
		DistanceMiles:  ev.Metrics.DistanceMiles,
		ChargeHours:    ev.Metrics.ChargeHours,
		Faults:         ev.Metrics.Faults,
		PassengerMiles: ev.Metrics.PassengerMiles,
		FinishedAt:     ev.Time.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("%s/run/%s/vehicle/%d", p.prefix, p.runID, ev.VehicleID)
	token := p.cli.Publish(topic, p.qos, false, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish %s: %w", topic, token.Error())
	}
	return nil
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() error {
	p.cli.Disconnect(250)
	return nil
}
