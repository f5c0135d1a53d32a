package messages

import (
	"sync"

	"max.ks1230/expense-assistant/internal/entity/expense"
	"max.ks1230/expense-assistant/internal/model/assistant"
	"max.ks1230/expense-assistant/internal/model/storage"
)

// Session is the state of one chat: its expenses and its conversation.
type Session struct {
	Storage   *storage.InMemStorage
	Assistant *assistant.Assistant
}

// SessionHook runs once for every new session, before it is used.
type SessionHook func(userID int64, session *Session)

type Sessions struct {
	mu        sync.Mutex
	completer assistant.Completer
	hooks     []SessionHook
	byUser    map[int64]*Session
}

func NewSessions(completer assistant.Completer, hooks ...SessionHook) *Sessions {
	return &Sessions{
		completer: completer,
		hooks:     hooks,
		byUser:    make(map[int64]*Session),
	}
}

// Get returns the session of the user, creating it on first use.
func (s *Sessions) Get(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.byUser[userID]; ok {
		return sess
	}
	st := storage.NewInMemStorage()
	sess := &Session{
		Storage:   st,
		Assistant: assistant.New(s.completer, st),
	}
	for _, hook := range s.hooks {
		hook(userID, sess)
	}
	s.byUser[userID] = sess
	return sess
}

func (s *Sessions) UserExpenses(userID int64) []expense.Expense {
	s.mu.Lock()
	sess, ok := s.byUser[userID]
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return sess.Storage.All()
}

// AddHook registers a hook for sessions created from now on.
func (s *Sessions) AddHook(hook SessionHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, hook)
}
