package kafka

import (
	"context"
	"errors"
	"strings"
	"time"

	"mucevher-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
)

var ErrDisabled = errors.New("kafka disabled")

type Client struct {
	Brokers []string
}

func NewClient(brokersCSV string) *Client {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return &Client{Brokers: brokers}
}

func (c *Client) Enabled() bool {
	return len(c.Brokers) > 0
}

func (c *Client) NewWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(c.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

// MessageWriter is the subset of *kafka.Writer the sink needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func PublishJSON(ctx context.Context, writer MessageWriter, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: data, Time: time.Now().UTC()})
}

// EventSink publishes analytics events to a topic, keyed by session id so a
// visitor's events stay ordered within one partition.
type EventSink struct {
	writer MessageWriter
}

// NewEventSink returns ErrDisabled when no brokers are configured.
func NewEventSink(c *Client, topic string) (*EventSink, error) {
	if c == nil || !c.Enabled() || topic == "" {
		return nil, ErrDisabled
	}
	return &EventSink{writer: c.NewWriter(topic)}, nil
}

func NewEventSinkWithWriter(w MessageWriter) *EventSink {
	return &EventSink{writer: w}
}

func (s *EventSink) Name() string { return "kafka" }

func (s *EventSink) Send(ctx context.Context, event domain.AnalyticsEvent) error {
	return PublishJSON(ctx, s.writer, event.SessionID, event)
}

func (s *EventSink) Close() error {
	return s.writer.Close()
}
