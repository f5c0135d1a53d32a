package commands

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"max.ks1230/expense-assistant/internal/customerr"
	"max.ks1230/expense-assistant/internal/entity/expense"
)

type expenseStorage interface {
	Add(description string, amount decimal.Decimal) expense.Expense
	Update(rec expense.Expense) error
	Delete(id string) error
	Get(id string) (expense.Expense, bool)
}

// Result describes what Apply did. Applied is false for conversational text.
type Result struct {
	Command Command
	Applied bool
	Expense expense.Expense
}

type Interpreter struct {
	storage expenseStorage
}

func NewInterpreter(storage expenseStorage) *Interpreter {
	return &Interpreter{storage: storage}
}

// Apply parses text and executes the command it holds. Plain conversation
// yields a zero Result and no error.
func (i *Interpreter) Apply(text string) (Result, error) {
	cmd, err := Parse(text)
	if errors.Is(err, customerr.ErrNotCommand) {
		return Result{Command: Command{Text: text}}, nil
	}
	if err != nil {
		return Result{}, errors.Wrap(err, "apply")
	}
	return i.Execute(cmd)
}

func (i *Interpreter) Execute(cmd Command) (Result, error) {
	res := Result{Command: cmd}

	switch cmd.Kind {
	case CreateExpense:
		res.Expense = i.storage.Add(cmd.Description, cmd.Amount)
	case UpdateExpense:
		existing, ok := i.storage.Get(cmd.ID)
		if !ok {
			return res, errors.Wrap(&customerr.NotFoundError{ID: cmd.ID}, "execute update")
		}
		existing.Description = cmd.Description
		existing.Amount = cmd.Amount
		if err := i.storage.Update(existing); err != nil {
			return res, errors.Wrap(err, "execute update")
		}
		res.Expense = existing
	case DeleteExpense:
		existing, _ := i.storage.Get(cmd.ID)
		if err := i.storage.Delete(cmd.ID); err != nil {
			return res, errors.Wrap(err, "execute delete")
		}
		res.Expense = existing
	default:
		return res, nil
	}

	res.Applied = true
	return res, nil
}
