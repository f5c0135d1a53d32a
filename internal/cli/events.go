package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"max.ks1230/expense-assistant/internal/clients/kafka"
	"max.ks1230/expense-assistant/internal/logger"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Follow expense change events published by running bots",
	Args:  cobra.NoArgs,
	RunE:  runEvents,
}

type eventLogger struct{}

func (eventLogger) HandleChange(_ context.Context, ev kafka.ChangeEvent) error {
	fields := []zap.Field{
		zap.String("kind", ev.Kind),
		zap.Int64("chat", ev.ChatID),
		zap.Time("at", ev.At),
	}
	if ev.Expense != nil {
		fields = append(fields,
			zap.String("id", ev.Expense.ID),
			zap.String("description", ev.Expense.Description),
			zap.String("amount", ev.Expense.Amount.String()))
	}
	logger.Info("expense change", fields...)
	return nil
}

func runEvents(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfig()
	if err != nil {
		return err
	}
	if !conf.Kafka().Enabled() {
		return errors.New("kafka brokers are not configured")
	}

	consumer, err := kafka.NewConsumer(conf.Kafka(), eventLogger{})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return consumer.StartConsuming(ctx)
}
