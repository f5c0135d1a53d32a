package messages

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"max.ks1230/expense-assistant/internal/entity/expense"
	"max.ks1230/expense-assistant/internal/model/assistant"
	"max.ks1230/expense-assistant/internal/model/reports"
)

const commandParts = 2

func parseCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	split := strings.SplitN(text, " ", commandParts)
	if len(split) == commandParts {
		return split[0], split[1]
	}
	return text, ""
}

// parseRange reads "[min|-] [max|-]"; no arguments restores the default range.
func parseRange(arg string) (expense.Range, error) {
	args := strings.Fields(arg)
	if len(args) == 0 {
		return expense.DefaultRange(), nil
	}
	if len(args) > 2 {
		return expense.Range{}, errors.New("too many bounds")
	}

	var rng expense.Range
	bounds := []*decimal.NullDecimal{&rng.Min, &rng.Max}
	for i, a := range args {
		if a == unboundedMark {
			continue
		}
		d, err := decimal.NewFromString(a)
		if err != nil {
			return expense.Range{}, errors.Wrap(err, "parse bound")
		}
		*bounds[i] = decimal.NewNullDecimal(d)
	}
	return rng, nil
}

func isReportPeriod(period string) bool {
	if period == "" {
		return true
	}
	for _, p := range reports.Periods() {
		if p == period {
			return true
		}
	}
	return false
}

func formatExpenses(view []expense.Expense, order expense.SortOrder, rng expense.Range) string {
	res := make([]string, 0, len(view)+2)
	res = append(res, fmt.Sprintf("Sorted by %s, amounts in %s", order, rng), "")
	for i, e := range view {
		res = append(res, fmt.Sprintf("%d. %s: %s (%s) id %s",
			i+1, e.Description, e.Amount.StringFixed(2), e.CreatedAt.Format(dateLayout), e.ID))
	}
	return strings.Join(res, "\n")
}

func formatHistory(history []assistant.Entry) string {
	res := make([]string, 0, len(history))
	for _, e := range history {
		res = append(res, fmt.Sprintf("%s: %s", e.Role, e.Text))
	}
	return strings.Join(res, "\n")
}
