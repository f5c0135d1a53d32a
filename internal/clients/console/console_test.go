package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-assistant/internal/model/messages"
)

type recordingHandler struct {
	client   *Client
	received []messages.Message
}

func (h *recordingHandler) HandleIncomingMessage(_ context.Context, msg messages.Message) error {
	h.received = append(h.received, msg)
	return h.client.SendMessage("ok: "+msg.Text, msg.UserID)
}

func Test_ListenUpdates_ShouldHandleLinesUntilExit(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("/add 3 Coffee\n\n  /list  \n/exit\n/add 4 Tea\n"), &out)
	h := &recordingHandler{client: c}

	err := c.ListenUpdates(context.Background(), h, time.Second)
	require.NoError(t, err)

	require.Len(t, h.received, 2)
	assert.Equal(t, messages.Message{Text: "/add 3 Coffee", UserID: LocalUserID}, h.received[0])
	assert.Equal(t, "/list", h.received[1].Text)
	assert.Contains(t, out.String(), "ok: /add 3 Coffee\n")
	assert.Contains(t, out.String(), "ok: /list\n")
}

func Test_ListenUpdates_ShouldStopAtEOF(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader("hello"), &out)
	h := &recordingHandler{client: c}

	err := c.ListenUpdates(context.Background(), h, time.Second)

	require.NoError(t, err)
	require.Len(t, h.received, 1)
	assert.Equal(t, "hello", h.received[0].Text)
}
