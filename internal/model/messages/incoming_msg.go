package messages

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

const unknownCommand = "unknown"

type messageSender interface {
	SendMessage(text string, userID int64) error
}

type Service struct {
	sender  messageSender
	handler *HandlerService
}

func NewService(sender messageSender, sessions *Sessions, reports reportGenerator) *Service {
	return &Service{
		sender:  sender,
		handler: newHandler(sessions, reports),
	}
}

type Message struct {
	Text   string
	UserID int64
}

func (s *Service) HandleIncomingMessage(ctx context.Context, msg Message) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "handleMessage")
	defer span.Finish()

	cmd, _ := parseCommand(msg.Text)
	if !s.handler.knows(cmd) {
		cmd = unknownCommand
	}
	span.SetTag("command", cmd)

	start := time.Now()
	err := s.handle(ctx, msg)
	elapsed := time.Since(start)

	observeResponse(cmd, elapsed, err != nil)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return err
}

func (s *Service) handle(ctx context.Context, msg Message) error {
	resp, err := s.handler.HandleMessage(ctx, msg.Text, msg.UserID)
	if err != nil {
		_ = s.sender.SendMessage("Sorry, something wrong happened...\n"+resp, msg.UserID)
		return err
	}
	return s.sender.SendMessage(resp, msg.UserID)
}
