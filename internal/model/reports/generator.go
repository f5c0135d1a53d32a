package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"max.ks1230/expense-assistant/internal/entity/expense"
	"max.ks1230/expense-assistant/internal/logger"
)

const (
	PeriodAll   = "all"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// weeks start on monday
var calendar = &now.Config{WeekStartDay: time.Monday}

var periodStarts = map[string]func(t time.Time) time.Time{
	PeriodAll:   func(time.Time) time.Time { return time.Time{} },
	PeriodWeek:  func(t time.Time) time.Time { return calendar.With(t).BeginningOfWeek() },
	PeriodMonth: func(t time.Time) time.Time { return calendar.With(t).BeginningOfMonth() },
	PeriodYear:  func(t time.Time) time.Time { return calendar.With(t).BeginningOfYear() },
}

type expensesStorage interface {
	UserExpenses(userID int64) []expense.Expense
}

type reportCache interface {
	GetReport(userID int64, option string) (string, error)
	CacheReport(userID int64, option string, report string) error
	InvalidateCache(userID int64, options []string) error
}

type Report struct {
	Period  string
	Since   time.Time
	Count   int
	Total   decimal.Decimal
	Largest *expense.Expense
}

type Generator struct {
	storage expensesStorage
	cache   reportCache
	now     func() time.Time
}

// NewGenerator builds a generator; cache may be nil.
func NewGenerator(storage expensesStorage, cache reportCache) *Generator {
	return &Generator{
		storage: storage,
		cache:   cache,
		now:     time.Now,
	}
}

func (g *Generator) GenerateReport(_ context.Context, userID int64, period string) (Report, error) {
	if period == "" {
		period = PeriodAll
	}
	start, ok := periodStarts[period]
	if !ok {
		return Report{}, errors.Wrap(
			fmt.Errorf("report period %s is not supported", period),
			"generate report",
		)
	}

	report := Report{Period: period, Since: start(g.now()), Total: decimal.Zero}
	for _, exp := range g.storage.UserExpenses(userID) {
		if exp.CreatedAt.Before(report.Since) {
			continue
		}
		exp := exp
		report.Count++
		report.Total = report.Total.Add(exp.Amount)
		if report.Largest == nil || exp.Amount.GreaterThan(report.Largest.Amount) {
			report.Largest = &exp
		}
	}
	return report, nil
}

// ReportText renders the report, going through the cache when there is one.
func (g *Generator) ReportText(ctx context.Context, userID int64, period string) (string, error) {
	if period == "" {
		period = PeriodAll
	}
	if g.cache != nil {
		text, err := g.cache.GetReport(userID, period)
		if err == nil {
			return text, nil
		}
		logger.Debug("report cache miss", zap.Int64("userID", userID), zap.String("period", period), zap.Error(err))
	}

	report, err := g.GenerateReport(ctx, userID, period)
	if err != nil {
		return "", err
	}
	text := Format(report)

	if g.cache != nil {
		if err = g.cache.CacheReport(userID, period, text); err != nil {
			logger.Error("failed to cache report", zap.Int64("userID", userID), zap.Error(err))
		}
	}
	return text, nil
}

// Invalidate drops cached reports of the user, called on every store change.
func (g *Generator) Invalidate(userID int64) {
	if g.cache == nil {
		return
	}
	if err := g.cache.InvalidateCache(userID, Periods()); err != nil {
		logger.Error("failed to invalidate report cache", zap.Int64("userID", userID), zap.Error(err))
	}
}

func Format(r Report) string {
	if r.Count == 0 {
		return fmt.Sprintf("No expenses for period %s", r.Period)
	}
	lines := []string{fmt.Sprintf("Report for period %s", r.Period)}
	if !r.Since.IsZero() {
		lines = append(lines, "Since: "+r.Since.Format("02.01.2006"))
	}
	lines = append(lines,
		fmt.Sprintf("Expenses: %d", r.Count),
		fmt.Sprintf("Total: %s", r.Total.StringFixed(2)),
	)
	if r.Largest != nil {
		lines = append(lines, fmt.Sprintf("Largest: %s %s", r.Largest.Description, r.Largest.Amount.StringFixed(2)))
	}
	return strings.Join(lines, "\n")
}

func Periods() []string {
	return []string{PeriodAll, PeriodWeek, PeriodMonth, PeriodYear}
}
