// Package mqttpub fans parcel notifications out to an MQTT broker. Every
// notification is published on <prefix>/parcels/<tracking code>/notifications
// with QoS 1.
package mqttpub

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"postal/internal/core/domain/model/parcel"
	"postal/internal/core/ports"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

const (
	qos            = 1
	publishTimeout = 5 * time.Second
)

// Settings configures the broker connection.
type Settings struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

// tokenPublisher is the part of mqtt.Client the publisher needs.
type tokenPublisher interface {
	Publish(topic string, qos byte, retained bool, payload any) mqtt.Token
}

type notificationMessage struct {
	ID           string    `json:"id"`
	TrackingCode string    `json:"trackingCode"`
	Timestamp    time.Time `json:"timestamp"`
	Status       string    `json:"status"`
	Note         string    `json:"note,omitempty"`
	DelayReason  string    `json:"delayReason,omitempty"`
	DelayDays    *int      `json:"delayDays,omitempty"`
}

// Publisher implements ports.NotificationPublisher. Failures are logged and
// never returned.
type Publisher struct {
	client tokenPublisher
	prefix string
	logger *zap.Logger
}

var _ ports.NotificationPublisher = (*Publisher)(nil)

// Connect dials the broker and returns a publisher together with a function
// that disconnects it.
func Connect(s Settings, logger *zap.Logger) (*Publisher, func(), error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.Broker)
	opts.SetClientID(s.ClientID)
	if s.Username != "" {
		opts.SetUsername(s.Username)
	}
	if s.Password != "" {
		opts.SetPassword(s.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	logger.Info("connected to MQTT broker", zap.String("broker", s.Broker))
	return NewPublisher(client, s.TopicPrefix, logger), func() { client.Disconnect(250) }, nil
}

func NewPublisher(client tokenPublisher, prefix string, logger *zap.Logger) *Publisher {
	return &Publisher{
		client: client,
		prefix: strings.Trim(prefix, "/"),
		logger: logger.With(zap.String("component", "mqttpub")),
	}
}

// Topic returns the topic notifications of code are published on.
func (p *Publisher) Topic(code parcel.TrackingCode) string {
	topic := "parcels/" + code.String() + "/notifications"
	if p.prefix == "" {
		return topic
	}
	return p.prefix + "/" + topic
}

func (p *Publisher) Publish(ctx context.Context, code parcel.TrackingCode, notifications []parcel.Notification) {
	topic := p.Topic(code)
	for _, n := range notifications {
		if ctx.Err() != nil {
			p.logger.Warn("publishing cancelled", zap.String("topic", topic), zap.Error(ctx.Err()))
			return
		}

		payload, err := json.Marshal(toMessage(code, n))
		if err != nil {
			p.logger.Error("failed to encode notification", zap.String("topic", topic), zap.Error(err))
			continue
		}

		token := p.client.Publish(topic, qos, false, payload)
		if !token.WaitTimeout(publishTimeout) {
			p.logger.Warn("notification publish timed out", zap.String("topic", topic))
			continue
		}
		if err := token.Error(); err != nil {
			p.logger.Error("failed to publish notification", zap.String("topic", topic), zap.Error(err))
			continue
		}

		p.logger.Debug("notification published", zap.String("topic", topic), zap.String("status", n.Status.String()))
	}
}

func toMessage(code parcel.TrackingCode, n parcel.Notification) notificationMessage {
	msg := notificationMessage{
		ID:           n.ID.String(),
		TrackingCode: code.String(),
		Timestamp:    n.Timestamp,
		Status:       n.Status.String(),
		Note:         n.Note,
		DelayDays:    n.DelayDays,
	}
	if n.DelayReason != nil {
		msg.DelayReason = n.DelayReason.String()
	}
	return msg
}

// Noop discards notifications. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, parcel.TrackingCode, []parcel.Notification) {}
