// Package mqttnotify publishes selected windows to an MQTT topic, e.g. for
// home automation that starts appliances in cheap hours.
package mqttnotify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/angas/cheapslots-go/types"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type Options struct {
	Broker   string
	Port     int16
	Username string
	Password string
	ClientID string
	Topic    string
	Qos      byte
	Retain   bool
}

type Publisher struct {
	client mqtt.Client
	logger *slog.Logger
	topic  string
	qos    byte
	retain bool
}

func New(o Options) *Publisher {
	logger := slog.Default().With("module", "mqtt")
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", o.Broker, o.Port))
	opts.SetClientID(o.ClientID)
	opts.SetUsername(o.Username)
	opts.SetPassword(o.Password)
	opts.SetConnectTimeout(10 * time.Second)
	opts.OnConnect = func(client mqtt.Client) {
		logger.Debug("MQTT connected", slog.String("broker", o.Broker))
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		logger.Warn("MQTT connection lost", slog.Any("error", err))
	}

	mqtt.CRITICAL = newMqttLogger(logger, slog.LevelError)
	mqtt.ERROR = newMqttLogger(logger, slog.LevelError)
	mqtt.WARN = newMqttLogger(logger, slog.LevelWarn)

	return newPublisher(mqtt.NewClient(opts), logger, o)
}

func newPublisher(client mqtt.Client, logger *slog.Logger, o Options) *Publisher {
	return &Publisher{
		client: client,
		logger: logger,
		topic:  o.Topic,
		qos:    o.Qos,
		retain: o.Retain,
	}
}

func (p *Publisher) Name() string {
	return "mqtt"
}

// Notify publishes the message as JSON, connecting first if needed.
func (p *Publisher) Notify(ctx context.Context, msg types.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	if !p.client.IsConnectionOpen() {
		p.logger.Debug("connecting MQTT client")
		if err := wait(ctx, p.client.Connect()); err != nil {
			return fmt.Errorf("%w: mqtt connect: %w", types.ErrDeliveryFailure, err)
		}
	}

	if err := wait(ctx, p.client.Publish(p.topic, p.qos, p.retain, payload)); err != nil {
		return fmt.Errorf("%w: mqtt publish to %s: %w", types.ErrDeliveryFailure, p.topic, err)
	}

	p.logger.Debug("published windows", slog.String("topic", p.topic), slog.Int("windows", len(msg.Windows)))
	return nil
}

func (p *Publisher) Close() {
	if p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

func wait(ctx context.Context, token mqtt.Token) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-token.Done():
		return token.Error()
	}
}
