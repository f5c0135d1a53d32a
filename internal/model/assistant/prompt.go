package assistant

import (
	"encoding/json"

	"github.com/pkg/errors"
	"max.ks1230/expense-assistant/internal/entity/expense"
)

const instruction = `You are an expense tracking assistant. You can add, update, and delete expenses.
When the user asks for a change, respond with exactly one command and nothing else:
create_expense('description', amount)
update_expense('id', 'description', amount)
delete_expense('id')
Use ids exactly as they appear in the current expenses. Descriptions must not contain commas, quotes or parentheses.
When a structured reply is requested, respond with a JSON object whose "action" is one of
create_expense, update_expense, delete_expense or reply, with the fields id, description, amount and message as needed.
For anything else answer conversationally in one or two sentences.`

// Prompt is everything the text generation service gets for one message.
type Prompt struct {
	Instruction string
	Snapshot    string
	Message     string
}

func buildPrompt(expenses []expense.Expense, message string) (Prompt, error) {
	if expenses == nil {
		expenses = []expense.Expense{}
	}
	snapshot, err := json.Marshal(expenses)
	if err != nil {
		return Prompt{}, errors.Wrap(err, "marshal expenses snapshot")
	}
	return Prompt{
		Instruction: instruction,
		Snapshot:    string(snapshot),
		Message:     message,
	}, nil
}
