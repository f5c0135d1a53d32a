package kafka

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"max.ks1230/expense-assistant/internal/entity/expense"
	"max.ks1230/expense-assistant/internal/model/storage"
)

// ChangeEvent is the wire form of a store mutation.
type ChangeEvent struct {
	Kind    string           `json:"kind"`
	ChatID  int64            `json:"chat_id"`
	Expense *expense.Expense `json:"expense,omitempty"`
	At      time.Time        `json:"at"`
}

func newChangeEvent(chatID int64, ev storage.Event, at time.Time) ChangeEvent {
	res := ChangeEvent{Kind: string(ev.Kind), ChatID: chatID, At: at}
	if ev.Kind != storage.EventViewChanged {
		exp := ev.Expense
		res.Expense = &exp
	}
	return res
}

func encodeChangeEvent(ev ChangeEvent) (key, value []byte, err error) {
	value, err = json.Marshal(ev)
	if err != nil {
		return nil, nil, errors.Wrap(err, "marshal change event")
	}
	return []byte(strconv.FormatInt(ev.ChatID, 10)), value, nil
}

func decodeChangeEvent(value []byte) (ChangeEvent, error) {
	var ev ChangeEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return ChangeEvent{}, errors.Wrap(err, "unmarshal change event")
	}
	return ev, nil
}
