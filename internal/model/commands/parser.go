package commands

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"max.ks1230/expense-assistant/internal/customerr"
)

type Kind string

const (
	CreateExpense Kind = "create_expense"
	UpdateExpense Kind = "update_expense"
	DeleteExpense Kind = "delete_expense"
	// Reply is conversational text delivered through the structured form.
	Reply Kind = "reply"
)

var arity = map[Kind]int{
	CreateExpense: 2,
	UpdateExpense: 3,
	DeleteExpense: 1,
}

var grammarKinds = []Kind{CreateExpense, UpdateExpense, DeleteExpense}

var (
	argsRegex   = regexp.MustCompile(`\(([^)]*)\)`)
	quotesRegex = regexp.MustCompile(`['"]`)
)

type Command struct {
	Kind        Kind
	ID          string
	Description string
	Amount      decimal.Decimal
	// Text is set for Reply.
	Text string
}

func (c Command) String() string {
	switch c.Kind {
	case CreateExpense:
		return fmt.Sprintf("%s('%s', %s)", c.Kind, c.Description, c.Amount)
	case UpdateExpense:
		return fmt.Sprintf("%s('%s', '%s', %s)", c.Kind, c.ID, c.Description, c.Amount)
	case DeleteExpense:
		return fmt.Sprintf("%s('%s')", c.Kind, c.ID)
	}
	return c.Text
}

// Parse extracts a command from assistant text. A JSON object is decoded as
// the structured form, otherwise the text grammar is matched by prefix.
// Text matching neither returns customerr.ErrNotCommand.
func Parse(text string) (Command, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "{") {
		return parseStructured(text)
	}
	for _, kind := range grammarKinds {
		if strings.HasPrefix(text, string(kind)) {
			return parseGrammar(kind, text)
		}
	}
	return Command{}, customerr.ErrNotCommand
}

func parseGrammar(kind Kind, text string) (Command, error) {
	match := argsRegex.FindStringSubmatch(text)
	if match == nil {
		return Command{}, parseError(kind, text, "missing argument list")
	}

	fields := strings.Split(match[1], ",")
	if len(fields) != arity[kind] {
		return Command{}, parseError(kind, text,
			fmt.Sprintf("expected %d arguments, got %d", arity[kind], len(fields)))
	}
	for i := range fields {
		fields[i] = unquote(fields[i])
	}

	switch kind {
	case CreateExpense:
		return build(kind, text, "", fields[0], fields[1])
	case UpdateExpense:
		return build(kind, text, fields[0], fields[1], fields[2])
	default:
		return build(kind, text, fields[0], "", "")
	}
}

type structuredCommand struct {
	Action      string          `json:"action"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      json.RawMessage `json:"amount"`
	Message     string          `json:"message"`
}

func parseStructured(text string) (Command, error) {
	var sc structuredCommand
	if err := json.Unmarshal([]byte(text), &sc); err != nil {
		return Command{}, parseError("structured", text, "invalid json: "+err.Error())
	}

	kind := Kind(sc.Action)
	switch kind {
	case Reply:
		return Command{Kind: Reply, Text: sc.Message}, nil
	case CreateExpense, UpdateExpense, DeleteExpense:
	default:
		return Command{}, parseError("structured", text, fmt.Sprintf("unknown action %q", sc.Action))
	}

	amount := ""
	if kind != DeleteExpense {
		amount = unquote(string(sc.Amount))
	}
	return build(kind, text, strings.TrimSpace(sc.ID), strings.TrimSpace(sc.Description), amount)
}

func build(kind Kind, text, id, description, amount string) (Command, error) {
	cmd := Command{Kind: kind, ID: id, Description: description}

	if kind != CreateExpense && cmd.ID == "" {
		return Command{}, parseError(kind, text, "empty id")
	}
	if kind == DeleteExpense {
		return cmd, nil
	}
	if cmd.Description == "" {
		return Command{}, parseError(kind, text, "empty description")
	}
	if amount == "" {
		return Command{}, parseError(kind, text, "empty amount")
	}

	var err error
	cmd.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return Command{}, parseError(kind, text, fmt.Sprintf("amount %q is not a number", amount))
	}
	return cmd, nil
}

func unquote(s string) string {
	return strings.TrimSpace(quotesRegex.ReplaceAllString(s, ""))
}

func parseError(kind Kind, text, reason string) error {
	return errors.WithStack(&customerr.ParseError{Command: string(kind), Input: text, Reason: reason})
}
