package kafka

import (
	"time"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-assistant/internal/logger"
	"max.ks1230/expense-assistant/internal/model/storage"
)

type producerConfig interface {
	Brokers() []string
	EventsTopic() string
}

type Producer struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

func NewProducer(cfg producerConfig) (*Producer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(cfg.Brokers(), config)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create kafka producer")
	}
	return newProducer(producer, cfg.EventsTopic()), nil
}

func newProducer(producer sarama.SyncProducer, topic string) *Producer {
	return &Producer{
		producer: producer,
		topic:    topic,
		now:      time.Now,
	}
}

// Subscriber returns a store subscriber publishing every change of the chat.
// Publishing failures are logged and never block the store.
func (p *Producer) Subscriber(chatID int64) storage.Subscriber {
	return func(ev storage.Event) {
		if err := p.Publish(newChangeEvent(chatID, ev, p.now())); err != nil {
			logger.Error("failed to publish change event",
				zap.Int64("chat", chatID),
				zap.String("kind", string(ev.Kind)),
				zap.Error(err))
		}
	}
}

func (p *Producer) Publish(ev ChangeEvent) error {
	key, value, err := encodeChangeEvent(ev)
	if err != nil {
		return err
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.ByteEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	return errors.Wrap(err, "send change event")
}

func (p *Producer) Close() {
	err := p.producer.Close()
	if err != nil {
		logger.Error("failed to close producer", zap.Error(err))
	}
}
