package kafka

import (
	"context"
	"fmt"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-assistant/internal/logger"
)

type consumerConfig interface {
	producerConfig
	ConsumerGroup() string
}

type eventHandler interface {
	HandleChange(ctx context.Context, ev ChangeEvent) error
}

type Consumer struct {
	consumerGroup sarama.ConsumerGroup
	topic         string
	handler       eventHandler
}

func NewConsumer(cfg consumerConfig, handler eventHandler) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_5_0_0
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	consumerGroup, err := sarama.NewConsumerGroup(cfg.Brokers(), cfg.ConsumerGroup(), config)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create kafka consumer group")
	}
	return &Consumer{
		consumerGroup: consumerGroup,
		topic:         cfg.EventsTopic(),
		handler:       handler,
	}, nil
}

func (c *Consumer) StartConsuming(ctx context.Context) error {
	defer func() {
		if err := c.consumerGroup.Close(); err != nil {
			logger.Error("failed to close consumer group", zap.Error(err))
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			err := c.consumerGroup.Consume(ctx, []string{c.topic}, c)
			if err != nil {
				return errors.Wrap(err, fmt.Sprintf("consume from %s", c.topic))
			}
		}
	}
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - setup")
	return nil
}

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	logger.Info("consumer - cleanup")
	return nil
}

func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		ev, err := decodeChangeEvent(message.Value)
		if err != nil {
			logger.Error("cannot unmarshal kafka message", zap.Error(err))
		} else if err = c.handler.HandleChange(session.Context(), ev); err != nil {
			logger.Error("failed to handle change event", zap.ByteString("key", message.Key), zap.Error(err))
		}
		session.MarkMessage(message, "")
	}

	return nil
}
