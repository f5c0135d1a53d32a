package messages

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"max.ks1230/expense-assistant/internal/customerr"
	"max.ks1230/expense-assistant/internal/entity/expense"
	"max.ks1230/expense-assistant/internal/logger"
	"max.ks1230/expense-assistant/internal/model/assistant"
)

const dateLayout = "02.01.2006 15:04"

const (
	dontUnderstandMessage = "I don't understand you :("
	helloMessage          = "Hello! I am your expense assistant 🤖\n\n" + usageMessage
	usageMessage          = "/add <amount> <description> - record an expense\n" +
		"/edit <id> <amount> <description> - replace an expense\n" +
		"/delete <id> - remove an expense\n" +
		"/list - show expenses\n" +
		"/sort date|amount - change the order of /list\n" +
		"/filter [min|-] [max|-] - show only amounts in range\n" +
		"/report [all|week|month|year] - totals for a period\n" +
		"/history - conversation with the assistant\n" +
		"Anything else goes to the assistant, e.g. \"add coffee 5.25\""
	noExpensesMessage = "No expenses to show"
	noHistoryMessage  = "No conversation yet"

	incorrectUsageMessage  = "That is an incorrect command usage"
	incorrectAmountMessage = "Your expense amount is incorrect"
	incorrectSortMessage   = "Sort order should be date or amount"
	incorrectRangeMessage  = "Range bounds should be numbers or -"
	incorrectPeriodMessage = "Report period should be all, week, month or year"
	notFoundMessage        = "There is no expense with id %s"

	addedMessage   = "Added %q (%s), id %s"
	updatedMessage = "Updated %s"
	deletedMessage = "Deleted %s"
	sortedMessage  = "Sorting by %s"
	filterMessage  = "Showing amounts in %s"
)

const (
	startCommand   = "/start"
	helpCommand    = "/help"
	addCommand     = "/add"
	editCommand    = "/edit"
	deleteCommand  = "/delete"
	listCommand    = "/list"
	sortCommand    = "/sort"
	filterCommand  = "/filter"
	reportCommand  = "/report"
	historyCommand = "/history"
)

const unboundedMark = "-"

type reportGenerator interface {
	ReportText(ctx context.Context, userID int64, period string) (string, error)
}

type handler func(ctx context.Context, arg string, userID int64) (string, error)

type handlerMap map[string]handler

type HandlerService struct {
	handlersMap handlerMap
	sessions    *Sessions
	reports     reportGenerator
}

func newHandler(sessions *Sessions, reports reportGenerator) *HandlerService {
	res := &HandlerService{
		handlersMap: nil,
		sessions:    sessions,
		reports:     reports,
	}
	res.handlersMap = newMap(res)
	return res
}

func (s *HandlerService) HandleMessage(ctx context.Context, text string, userID int64) (string, error) {
	cmd, arg := parseCommand(text)

	handler, ok := s.handlersMap[cmd]
	if ok {
		return handler(ctx, arg, userID)
	}
	return dontUnderstandMessage, nil
}

func (s *HandlerService) knows(cmd string) bool {
	_, ok := s.handlersMap[cmd]
	return ok
}

func newMap(s *HandlerService) handlerMap {
	m := make(handlerMap)
	m[startCommand] = s.handleStart
	m[helpCommand] = s.handleHelp
	m[addCommand] = s.handleAdd
	m[editCommand] = s.handleEdit
	m[deleteCommand] = s.handleDelete
	m[listCommand] = s.handleList
	m[sortCommand] = s.handleSort
	m[filterCommand] = s.handleFilter
	m[reportCommand] = s.handleReport
	m[historyCommand] = s.handleHistory

	m[""] = s.handleNoCommand

	return m
}

func (s *HandlerService) handleStart(_ context.Context, _ string, _ int64) (string, error) {
	return helloMessage, nil
}

func (s *HandlerService) handleHelp(_ context.Context, _ string, _ int64) (string, error) {
	return usageMessage, nil
}

func (s *HandlerService) handleAdd(_ context.Context, arg string, userID int64) (string, error) {
	args := strings.Fields(arg)
	if len(args) < 2 {
		return incorrectUsageMessage, nil
	}
	amount, err := decimal.NewFromString(args[0])
	if err != nil {
		return incorrectAmountMessage, nil
	}
	description := strings.Join(args[1:], " ")

	rec := s.sessions.Get(userID).Storage.Add(description, amount)
	return fmt.Sprintf(addedMessage, rec.Description, rec.Amount, rec.ID), nil
}

func (s *HandlerService) handleEdit(_ context.Context, arg string, userID int64) (string, error) {
	args := strings.Fields(arg)
	if len(args) < 3 {
		return incorrectUsageMessage, nil
	}
	amount, err := decimal.NewFromString(args[1])
	if err != nil {
		return incorrectAmountMessage, nil
	}

	err = s.sessions.Get(userID).Storage.Update(expense.Expense{
		ID:          args[0],
		Description: strings.Join(args[2:], " "),
		Amount:      amount,
	})
	if errors.Is(err, customerr.ErrNotFound) {
		return fmt.Sprintf(notFoundMessage, args[0]), nil
	}
	if err != nil {
		return "", errors.Wrap(err, "handle edit")
	}
	return fmt.Sprintf(updatedMessage, args[0]), nil
}

func (s *HandlerService) handleDelete(_ context.Context, arg string, userID int64) (string, error) {
	id := strings.TrimSpace(arg)
	if id == "" || strings.ContainsAny(id, " \t\n") {
		return incorrectUsageMessage, nil
	}

	err := s.sessions.Get(userID).Storage.Delete(id)
	if errors.Is(err, customerr.ErrNotFound) {
		return fmt.Sprintf(notFoundMessage, id), nil
	}
	if err != nil {
		return "", errors.Wrap(err, "handle delete")
	}
	return fmt.Sprintf(deletedMessage, id), nil
}

func (s *HandlerService) handleList(_ context.Context, _ string, userID int64) (string, error) {
	st := s.sessions.Get(userID).Storage
	view := st.View()
	if len(view) == 0 {
		return noExpensesMessage, nil
	}
	return formatExpenses(view, st.SortOrder(), st.FilterRange()), nil
}

func (s *HandlerService) handleSort(_ context.Context, arg string, userID int64) (string, error) {
	order, err := expense.ParseSortOrder(strings.TrimSpace(arg))
	if err != nil {
		return incorrectSortMessage, nil
	}
	if err = s.sessions.Get(userID).Storage.SetSortOrder(order); err != nil {
		return "", errors.Wrap(err, "handle sort")
	}
	return fmt.Sprintf(sortedMessage, order), nil
}

func (s *HandlerService) handleFilter(_ context.Context, arg string, userID int64) (string, error) {
	rng, err := parseRange(arg)
	if err != nil {
		return incorrectRangeMessage, nil
	}
	s.sessions.Get(userID).Storage.SetFilterRange(rng)
	return fmt.Sprintf(filterMessage, rng), nil
}

func (s *HandlerService) handleReport(ctx context.Context, arg string, userID int64) (string, error) {
	period := strings.TrimSpace(arg)
	if !isReportPeriod(period) {
		return incorrectPeriodMessage, nil
	}
	text, err := s.reports.ReportText(ctx, userID, period)
	if err != nil {
		return "", errors.Wrap(err, "handle report")
	}
	return text, nil
}

func (s *HandlerService) handleHistory(_ context.Context, _ string, userID int64) (string, error) {
	history := s.sessions.Get(userID).Assistant.History()
	if len(history) == 0 {
		return noHistoryMessage, nil
	}
	return formatHistory(history), nil
}

func (s *HandlerService) handleNoCommand(ctx context.Context, arg string, userID int64) (string, error) {
	reply, err := s.sessions.Get(userID).Assistant.Send(ctx, arg)
	if errors.Is(err, assistant.ErrEmptyMessage) {
		return dontUnderstandMessage, nil
	}
	if err != nil {
		logger.Warn("assistant could not handle message", zap.Int64("userID", userID), zap.Error(err))
	}
	return reply.Text, nil
}
