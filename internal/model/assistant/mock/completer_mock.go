package mock

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gojuno/minimock/v3"
	"max.ks1230/expense-assistant/internal/model/assistant"
)

// CompleterMock implements assistant.Completer
type CompleterMock struct {
	t minimock.Tester

	funcComplete          func(ctx context.Context, prompt assistant.Prompt) (string, error)
	inspectFuncComplete   func(ctx context.Context, prompt assistant.Prompt)
	afterCompleteCounter  uint64
	beforeCompleteCounter uint64
	CompleteMock          mCompleterMockComplete
}

// NewCompleterMock returns a mock for assistant.Completer
func NewCompleterMock(t minimock.Tester) *CompleterMock {
	m := &CompleterMock{t: t}
	if controller, ok := t.(minimock.MockController); ok {
		controller.RegisterMocker(m)
	}
	m.CompleteMock = mCompleterMockComplete{mock: m}
	return m
}

type mCompleterMockComplete struct {
	mock    *CompleterMock
	mu      sync.Mutex
	results *CompleterMockCompleteResults
	prompts []assistant.Prompt
}

// CompleterMockCompleteResults contains results of the Completer.Complete
type CompleterMockCompleteResults struct {
	s   string
	err error
}

// Inspect accepts an inspector function that has same arguments as the Completer.Complete
func (mmComplete *mCompleterMockComplete) Inspect(f func(ctx context.Context, prompt assistant.Prompt)) *mCompleterMockComplete {
	if mmComplete.mock.inspectFuncComplete != nil {
		mmComplete.mock.t.Fatalf("Inspect function is already set for CompleterMock.Complete")
	}
	mmComplete.mock.inspectFuncComplete = f
	return mmComplete
}

// Return sets up results that will be returned by Completer.Complete
func (mmComplete *mCompleterMockComplete) Return(s string, err error) *CompleterMock {
	if mmComplete.mock.funcComplete != nil {
		mmComplete.mock.t.Fatalf("CompleterMock.Complete mock is already set by Set")
	}
	mmComplete.results = &CompleterMockCompleteResults{s, err}
	return mmComplete.mock
}

// Set uses given function f to mock the Completer.Complete method
func (mmComplete *mCompleterMockComplete) Set(f func(ctx context.Context, prompt assistant.Prompt) (string, error)) *CompleterMock {
	if mmComplete.results != nil {
		mmComplete.mock.t.Fatalf("CompleterMock.Complete mock is already set by Return")
	}
	mmComplete.mock.funcComplete = f
	return mmComplete.mock
}

// Prompts returns the prompts Complete was called with
func (mmComplete *mCompleterMockComplete) Prompts() []assistant.Prompt {
	mmComplete.mu.Lock()
	defer mmComplete.mu.Unlock()
	return append([]assistant.Prompt(nil), mmComplete.prompts...)
}

// Complete implements assistant.Completer
func (mmComplete *CompleterMock) Complete(ctx context.Context, prompt assistant.Prompt) (string, error) {
	atomic.AddUint64(&mmComplete.beforeCompleteCounter, 1)
	defer atomic.AddUint64(&mmComplete.afterCompleteCounter, 1)

	if mmComplete.inspectFuncComplete != nil {
		mmComplete.inspectFuncComplete(ctx, prompt)
	}

	mmComplete.CompleteMock.mu.Lock()
	mmComplete.CompleteMock.prompts = append(mmComplete.CompleteMock.prompts, prompt)
	mmComplete.CompleteMock.mu.Unlock()

	if mmComplete.funcComplete != nil {
		return mmComplete.funcComplete(ctx, prompt)
	}
	if results := mmComplete.CompleteMock.results; results != nil {
		return results.s, results.err
	}
	mmComplete.t.Fatalf("Unexpected call to CompleterMock.Complete. %v", prompt)
	return "", nil
}

// CompleteAfterCounter returns a count of finished CompleterMock.Complete invocations
func (mmComplete *CompleterMock) CompleteAfterCounter() uint64 {
	return atomic.LoadUint64(&mmComplete.afterCompleteCounter)
}

// CompleteBeforeCounter returns a count of CompleterMock.Complete invocations
func (mmComplete *CompleterMock) CompleteBeforeCounter() uint64 {
	return atomic.LoadUint64(&mmComplete.beforeCompleteCounter)
}

// MinimockCompleteDone returns true if the expected calls were made
func (m *CompleterMock) MinimockCompleteDone() bool {
	if m.CompleteMock.results == nil && m.funcComplete == nil {
		return true
	}
	return atomic.LoadUint64(&m.afterCompleteCounter) > 0
}

// MinimockFinish checks that all mocked methods have been called the expected number of times
func (m *CompleterMock) MinimockFinish() {
	if !m.MinimockCompleteDone() {
		m.t.Errorf("Expected call to CompleterMock.Complete")
	}
}

// MinimockWait waits for all mocked methods to be called the expected number of times
func (m *CompleterMock) MinimockWait(timeout time.Duration) {
	timeoutCh := time.After(timeout)
	for {
		if m.MinimockCompleteDone() {
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
