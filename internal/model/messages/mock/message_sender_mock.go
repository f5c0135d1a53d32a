package mock

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gojuno/minimock/v3"
)

// MessageSenderMock implements messages.messageSender
type MessageSenderMock struct {
	t minimock.Tester

	funcSendMessage          func(text string, userID int64) error
	afterSendMessageCounter  uint64
	beforeSendMessageCounter uint64
	SendMessageMock          mMessageSenderMockSendMessage
}

// NewMessageSenderMock returns a mock for messages.messageSender
func NewMessageSenderMock(t minimock.Tester) *MessageSenderMock {
	m := &MessageSenderMock{t: t}
	if controller, ok := t.(minimock.MockController); ok {
		controller.RegisterMocker(m)
	}
	m.SendMessageMock = mMessageSenderMockSendMessage{mock: m}
	return m
}

type mMessageSenderMockSendMessage struct {
	mock        *MessageSenderMock
	mu          sync.Mutex
	expectation *MessageSenderMockSendMessageParams
	results     *MessageSenderMockSendMessageResults
	sent        []MessageSenderMockSendMessageParams
}

// MessageSenderMockSendMessageParams contains parameters of the messageSender.SendMessage
type MessageSenderMockSendMessageParams struct {
	Text   string
	UserID int64
}

// MessageSenderMockSendMessageResults contains results of the messageSender.SendMessage
type MessageSenderMockSendMessageResults struct {
	err error
}

// Expect sets up expected params for messageSender.SendMessage
func (mmSendMessage *mMessageSenderMockSendMessage) Expect(text string, userID int64) *mMessageSenderMockSendMessage {
	if mmSendMessage.mock.funcSendMessage != nil {
		mmSendMessage.mock.t.Fatalf("MessageSenderMock.SendMessage mock is already set by Set")
	}
	mmSendMessage.expectation = &MessageSenderMockSendMessageParams{text, userID}
	return mmSendMessage
}

// Return sets up results that will be returned by messageSender.SendMessage
func (mmSendMessage *mMessageSenderMockSendMessage) Return(err error) *MessageSenderMock {
	if mmSendMessage.mock.funcSendMessage != nil {
		mmSendMessage.mock.t.Fatalf("MessageSenderMock.SendMessage mock is already set by Set")
	}
	mmSendMessage.results = &MessageSenderMockSendMessageResults{err}
	return mmSendMessage.mock
}

// Set uses given function f to mock the messageSender.SendMessage method
func (mmSendMessage *mMessageSenderMockSendMessage) Set(f func(text string, userID int64) error) *MessageSenderMock {
	if mmSendMessage.expectation != nil || mmSendMessage.results != nil {
		mmSendMessage.mock.t.Fatalf("MessageSenderMock.SendMessage mock is already set by Expect or Return")
	}
	mmSendMessage.mock.funcSendMessage = f
	return mmSendMessage.mock
}

// Sent returns every message passed to SendMessage
func (mmSendMessage *mMessageSenderMockSendMessage) Sent() []MessageSenderMockSendMessageParams {
	mmSendMessage.mu.Lock()
	defer mmSendMessage.mu.Unlock()
	return append([]MessageSenderMockSendMessageParams(nil), mmSendMessage.sent...)
}

// SendMessage implements messages.messageSender
func (mmSendMessage *MessageSenderMock) SendMessage(text string, userID int64) error {
	atomic.AddUint64(&mmSendMessage.beforeSendMessageCounter, 1)
	defer atomic.AddUint64(&mmSendMessage.afterSendMessageCounter, 1)

	params := MessageSenderMockSendMessageParams{text, userID}
	mmSendMessage.SendMessageMock.mu.Lock()
	mmSendMessage.SendMessageMock.sent = append(mmSendMessage.SendMessageMock.sent, params)
	mmSendMessage.SendMessageMock.mu.Unlock()

	if mmSendMessage.funcSendMessage != nil {
		return mmSendMessage.funcSendMessage(text, userID)
	}
	if want := mmSendMessage.SendMessageMock.expectation; want != nil && *want != params {
		mmSendMessage.t.Errorf("MessageSenderMock.SendMessage got unexpected parameters, want: %#v, got: %#v", *want, params)
	}
	if results := mmSendMessage.SendMessageMock.results; results != nil {
		return results.err
	}
	mmSendMessage.t.Fatalf("Unexpected call to MessageSenderMock.SendMessage. %v %v", text, userID)
	return nil
}

// SendMessageAfterCounter returns a count of finished MessageSenderMock.SendMessage invocations
func (mmSendMessage *MessageSenderMock) SendMessageAfterCounter() uint64 {
	return atomic.LoadUint64(&mmSendMessage.afterSendMessageCounter)
}

// MinimockSendMessageDone returns true if the expected calls were made
func (m *MessageSenderMock) MinimockSendMessageDone() bool {
	if m.SendMessageMock.expectation == nil && m.SendMessageMock.results == nil && m.funcSendMessage == nil {
		return true
	}
	return atomic.LoadUint64(&m.afterSendMessageCounter) > 0
}

// MinimockFinish checks that all mocked methods have been called the expected number of times
func (m *MessageSenderMock) MinimockFinish() {
	if !m.MinimockSendMessageDone() {
		m.t.Errorf("Expected call to MessageSenderMock.SendMessage")
	}
}

// MinimockWait waits for all mocked methods to be called the expected number of times
func (m *MessageSenderMock) MinimockWait(timeout time.Duration) {
	timeoutCh := time.After(timeout)
	for {
		if m.MinimockSendMessageDone() {
			return
		}
		select {
		case <-timeoutCh:
			m.MinimockFinish()
			return
		case <-time.After(10 * time.Millisecond):
		}
	}
}
