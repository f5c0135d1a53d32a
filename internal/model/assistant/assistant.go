package assistant

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"max.ks1230/expense-assistant/internal/customerr"
	"max.ks1230/expense-assistant/internal/entity/expense"
	"max.ks1230/expense-assistant/internal/logger"
	"max.ks1230/expense-assistant/internal/model/commands"
)

const (
	ApologyMessage = "Sorry, I had trouble understanding that."

	parseFailedMessage = "Sorry, I could not apply that command: %s."
	notFoundMessage    = "I could not find an expense with id %s."
	createdMessage     = "Added %q (%s), id %s."
	updatedMessage     = "Updated %s: %q (%s)."
	deletedMessage     = "Deleted %s."
)

const (
	outcomeOK           = "ok"
	outcomeConversation = "conversation"
	outcomeTransport    = "transport"
	outcomeMalformed    = "malformed"
	outcomeParse        = "parse"
	outcomeNotFound     = "not_found"
)

var ErrEmptyMessage = errors.New("empty message")

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

type Entry struct {
	Role Role
	Text string
}

// Completer is the remote text generation service.
type Completer interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

type expenseStorage interface {
	Add(description string, amount decimal.Decimal) expense.Expense
	Update(rec expense.Expense) error
	Delete(id string) error
	Get(id string) (expense.Expense, bool)
	All() []expense.Expense
}

// Reply is what the user should see for one Send.
type Reply struct {
	Text   string
	Result commands.Result
}

// Assistant runs one conversation against one expense store. Sends are
// serialised, so at most one remote call is pending per conversation.
type Assistant struct {
	mu          sync.Mutex
	completer   Completer
	storage     expenseStorage
	interpreter *commands.Interpreter
	history     []Entry
}

func New(completer Completer, storage expenseStorage) *Assistant {
	return &Assistant{
		completer:   completer,
		storage:     storage,
		interpreter: commands.NewInterpreter(storage),
	}
}

func (a *Assistant) Send(ctx context.Context, message string) (reply Reply, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "assistantSend")
	defer span.Finish()

	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, ErrEmptyMessage
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	start := time.Now()
	outcome := outcomeOK
	defer func() {
		observeResponse(time.Since(start), outcome)
		if err != nil {
			ext.Error.Set(span, true)
		}
	}()

	a.append(RoleUser, message)

	prompt, err := buildPrompt(a.storage.All(), message)
	if err != nil {
		outcome = outcomeMalformed
		return a.apologise(err)
	}

	text, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		outcome = outcomeTransport
		if errors.Is(err, customerr.ErrMalformedResponse) {
			outcome = outcomeMalformed
		} else if !errors.Is(err, customerr.ErrTransport) {
			err = errors.Wrap(customerr.ErrTransport, err.Error())
		}
		logger.Error("text generation failed", zap.Error(err))
		return a.apologise(err)
	}

	res, err := a.interpreter.Apply(text)
	a.append(RoleAssistant, assistantText(text, res))

	switch {
	case errors.Is(err, customerr.ErrParse):
		outcome = outcomeParse
		var pe *customerr.ParseError
		errors.As(err, &pe)
		logger.Warn("malformed assistant command", zap.String("text", text), zap.Error(err))
		return a.note(fmt.Sprintf(parseFailedMessage, pe.Reason), res), errors.Wrap(err, "send")
	case errors.Is(err, customerr.ErrNotFound):
		outcome = outcomeNotFound
		return a.note(fmt.Sprintf(notFoundMessage, res.Command.ID), res), errors.Wrap(err, "send")
	case err != nil:
		outcome = outcomeParse
		return a.note(ApologyMessage, res), errors.Wrap(err, "send")
	}

	if !res.Applied {
		outcome = outcomeConversation
		return Reply{Text: assistantText(text, res), Result: res}, nil
	}

	countCommand(string(res.Command.Kind))
	logger.Info("assistant command applied",
		zap.String("kind", string(res.Command.Kind)),
		zap.String("id", res.Expense.ID))
	return a.note(confirmation(res), res), nil
}

// History returns a copy of the conversation log.
func (a *Assistant) History() []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Entry(nil), a.history...)
}

func (a *Assistant) append(role Role, text string) {
	a.history = append(a.history, Entry{Role: role, Text: text})
}

func (a *Assistant) apologise(err error) (Reply, error) {
	a.append(RoleAssistant, ApologyMessage)
	return Reply{Text: ApologyMessage}, errors.Wrap(err, "send")
}

func (a *Assistant) note(text string, res commands.Result) Reply {
	a.append(RoleSystem, text)
	return Reply{Text: text, Result: res}
}

// assistantText is the reply as shown in the log: structured replies are
// rendered in the command grammar or as their message.
func assistantText(raw string, res commands.Result) string {
	if !strings.HasPrefix(strings.TrimSpace(raw), "{") || res.Command.Kind == "" {
		return raw
	}
	return res.Command.String()
}

func confirmation(res commands.Result) string {
	e := res.Expense
	switch res.Command.Kind {
	case commands.CreateExpense:
		return fmt.Sprintf(createdMessage, e.Description, e.Amount, e.ID)
	case commands.UpdateExpense:
		return fmt.Sprintf(updatedMessage, e.ID, e.Description, e.Amount)
	case commands.DeleteExpense:
		return fmt.Sprintf(deletedMessage, e.ID)
	}
	return ""
}
