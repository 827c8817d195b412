package feed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// TradeEvent is the wire form of one execution, published after the
// book has committed the submission. Prices are decimal strings, same
// as the HTTP boundary.
type TradeEvent struct {
	TradeID     string `json:"trade_id"`
	BuyOrderID  string `json:"buy_order_id"`
	SellOrderID string `json:"sell_order_id"`
	Price       string `json:"price"`
	Quantity    int64  `json:"quantity"`
	Timestamp   int64  `json:"timestamp"` // unix milliseconds
}

// Publisher delivers trade events to downstream consumers.
// Publishing is best-effort: a failed delivery never fails the
// submission that produced the trade.
type Publisher interface {
	Publish(ctx context.Context, ev TradeEvent) error
	Close() error
}

// Noop is the default publisher when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, TradeEvent) error { return nil }
func (Noop) Close() error                              { return nil }

// KafkaPublisher writes trade events to one Kafka topic, keyed by
// trade id.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev TradeEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.TradeID),
		Value: value,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
