package tradefeed

import (
	"context"

	"github.com/segmentio/kafka-go"

	orderbookv1 "github.com/Wixxxxxx/mini-etf/internal/domain/orderbook/v1"
	tradefeedv1 "github.com/Wixxxxxx/mini-etf/internal/domain/tradefeed/v1"
	"github.com/Wixxxxxx/mini-etf/pkg/config"
	"github.com/Wixxxxxx/mini-etf/pkg/errors"
	"github.com/Wixxxxxx/mini-etf/pkg/logger"
)

// Publisher writes executed trades to a Kafka topic, keyed by market id so
// one market's trades stay ordered within a partition.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

var _ tradefeedv1.Publisher = (*Publisher)(nil)

// NewPublisher creates a Kafka publisher for the trade feed.
func NewPublisher(cfg config.KafkaConfig, log logger.Interface) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishTrades publishes one message per trade.
func (p *Publisher) PublishTrades(ctx context.Context, trades []orderbookv1.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(trades))
	for _, trade := range trades {
		msgs = append(msgs, kafka.Message{
			Key:   []byte(trade.MarketID),
			Value: tradefeedv1.FromTrade(trade).ToBytes(),
		})
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msgs...); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "code", Value: errors.TradeFeedPublishError},
			logger.Field{Key: "trades", Value: len(trades)},
		)
		return errors.NewTracer("failed to publish trade events").Wrap(err)
	}
	return nil
}

// Close releases the underlying writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
