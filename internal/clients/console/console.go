package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-assistant/internal/logger"
	"max.ks1230/expense-assistant/internal/model/messages"
)

// LocalUserID is the chat id of the terminal session.
const LocalUserID int64 = 0

const (
	prompt      = "> "
	exitCommand = "/exit"
)

type messageHandler interface {
	HandleIncomingMessage(ctx context.Context, msg messages.Message) error
}

// Client is a chat transport over a reader and a writer, usually stdin and stdout.
type Client struct {
	in  io.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Client {
	return &Client{in: in, out: out}
}

func (c *Client) SendMessage(text string, _ int64) error {
	_, err := fmt.Fprintln(c.out, text)
	return errors.Wrap(err, "write message")
}

// ListenUpdates reads one message per line until EOF, /exit or ctx is done.
func (c *Client) ListenUpdates(ctx context.Context, handler messageHandler, handleTimeout time.Duration) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(c.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		fmt.Fprint(c.out, prompt)
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return errors.Wrap(err, "read input")
				default:
					return nil
				}
			}
			line = strings.TrimSpace(line)
			if line == exitCommand {
				return nil
			}
			if line == "" {
				continue
			}
			c.listenOnce(ctx, line, handler, handleTimeout)
		}
	}
}

func (c *Client) listenOnce(ctx context.Context, line string, handler messageHandler, handleTimeout time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	err := handler.HandleIncomingMessage(ctx, messages.Message{Text: line, UserID: LocalUserID})
	if err != nil {
		logger.Error("error processing message:", zap.Error(err))
	}
}
