package tg

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-assistant/internal/logger"
	"max.ks1230/expense-assistant/internal/model/messages"
)

const defaultUpdateOffset = 0

type config interface {
	Token() string
	PollTimeoutSeconds() int
}

type messageHandler interface {
	HandleIncomingMessage(ctx context.Context, msg messages.Message) error
}

type Client struct {
	client      *tgbotapi.BotAPI
	pollTimeout int
}

func New(cfg config) (*Client, error) {
	client, err := tgbotapi.NewBotAPI(cfg.Token())
	if err != nil {
		return nil, errors.Wrap(err, "cannot NewBotApi")
	}
	return &Client{client: client, pollTimeout: cfg.PollTimeoutSeconds()}, nil
}

func (c *Client) SendMessage(text string, userID int64) error {
	_, err := c.client.Send(tgbotapi.NewMessage(userID, text))
	if err != nil {
		return errors.Wrap(err, "client.Send")
	}
	return nil
}

// ListenUpdates handles updates one by one until ctx is done, so every chat
// sees its messages applied in order. handleTimeout bounds a single message.
func (c *Client) ListenUpdates(ctx context.Context, handler messageHandler, handleTimeout time.Duration) error {
	u := tgbotapi.NewUpdate(defaultUpdateOffset)
	u.Timeout = c.pollTimeout

	updates := c.client.GetUpdatesChan(u)
	defer c.client.StopReceivingUpdates()

	logger.Info("Start listening for messages")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stop listening for messages")
			return nil
		case update := <-updates:
			c.listenOnce(ctx, update, handler, handleTimeout)
		}
	}
}

func (c *Client) listenOnce(ctx context.Context, update tgbotapi.Update, handler messageHandler, handleTimeout time.Duration) {
	if update.Message == nil {
		return
	}
	logger.Info(update.Message.Text, zap.Int64("chat", update.Message.Chat.ID))

	ctx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	err := handler.HandleIncomingMessage(ctx, messages.Message{
		Text:   update.Message.Text,
		UserID: update.Message.Chat.ID,
	})
	if err != nil {
		logger.Error("error processing message:", zap.Error(err))
	}
}
