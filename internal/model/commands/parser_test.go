package commands

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-assistant/internal/customerr"
)

func Test_Parse_RecognisedCommands(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Command
	}{
		{
			name: "create with single quotes",
			text: "create_expense('Lunch', 12.5)",
			want: Command{Kind: CreateExpense, Description: "Lunch", Amount: decimal.RequireFromString("12.5")},
		},
		{
			name: "create with double quotes and padding",
			text: "  create_expense( \"Coffee beans\" ,  5.25 )\n",
			want: Command{Kind: CreateExpense, Description: "Coffee beans", Amount: decimal.RequireFromString("5.25")},
		},
		{
			name: "create with negative amount",
			text: "create_expense('Refund', -3)",
			want: Command{Kind: CreateExpense, Description: "Refund", Amount: decimal.RequireFromString("-3")},
		},
		{
			name: "update",
			text: "update_expense('abc123', 'Dinner', 30)",
			want: Command{Kind: UpdateExpense, ID: "abc123", Description: "Dinner", Amount: decimal.RequireFromString("30")},
		},
		{
			name: "delete",
			text: "delete_expense('abc123')",
			want: Command{Kind: DeleteExpense, ID: "abc123"},
		},
		{
			name: "delete with trailing chatter",
			text: "delete_expense(\"abc123\") -- done",
			want: Command{Kind: DeleteExpense, ID: "abc123"},
		},
		{
			name: "structured create",
			text: `{"action": "create_expense", "description": "Taxi", "amount": 18.4}`,
			want: Command{Kind: CreateExpense, Description: "Taxi", Amount: decimal.RequireFromString("18.4")},
		},
		{
			name: "structured update with string amount",
			text: `{"action": "update_expense", "id": "x1", "description": "Taxi", "amount": "20"}`,
			want: Command{Kind: UpdateExpense, ID: "x1", Description: "Taxi", Amount: decimal.RequireFromString("20")},
		},
		{
			name: "structured reply",
			text: `{"action": "reply", "message": "You spent 12.5 today."}`,
			want: Command{Kind: Reply, Text: "You spent 12.5 today."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.Equal(t, tt.want.ID, got.ID)
			assert.Equal(t, tt.want.Description, got.Description)
			assert.Equal(t, tt.want.Text, got.Text)
			assert.True(t, tt.want.Amount.Equal(got.Amount), "amount %s != %s", tt.want.Amount, got.Amount)
		})
	}
}

func Test_Parse_ConversationalText_ShouldNotBeACommand(t *testing.T) {
	for _, text := range []string{
		"Sure! How much was the lunch?",
		"Create_expense('Lunch', 12.5)",
		"I will call create_expense('Lunch', 12.5)",
		"",
	} {
		_, err := Parse(text)
		assert.ErrorIs(t, err, customerr.ErrNotCommand, text)
	}
}

func Test_Parse_MalformedCommands_ShouldReturnParseError(t *testing.T) {
	tests := []struct {
		text   string
		reason string
	}{
		{"create_expense('Lunch')", "expected 2 arguments, got 1"},
		{"create_expense", "missing argument list"},
		{"create_expense()", "expected 2 arguments, got 1"},
		{"create_expense('Lunch', twelve)", `amount "twelve" is not a number`},
		{"create_expense('Fish, chips', 9)", "expected 2 arguments, got 3"},
		{"create_expense('', 9)", "empty description"},
		{"create_expense('Lunch', )", "empty amount"},
		{"update_expense('abc', 12)", "expected 3 arguments, got 2"},
		{"update_expense('', 'x', 12)", "empty id"},
		{"delete_expense()", "empty id"},
		{"delete_expense('a', 'b')", "expected 1 arguments, got 2"},
		{`{"action": "create_expense", "description": "Taxi"}`, "empty amount"},
		{`{"action": "drop_table"}`, `unknown action "drop_table"`},
		{`{"action": `, "invalid json"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := Parse(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, customerr.ErrParse)

			var pe *customerr.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Contains(t, pe.Reason, tt.reason)
		})
	}
}

func Test_CommandString_ShouldRenderGrammar(t *testing.T) {
	cmd := Command{Kind: UpdateExpense, ID: "a1", Description: "Lunch", Amount: decimal.RequireFromString("12.5")}
	assert.Equal(t, "update_expense('a1', 'Lunch', 12.5)", cmd.String())

	parsed, err := Parse(cmd.String())
	require.NoError(t, err)
	assert.Equal(t, cmd.ID, parsed.ID)
}
