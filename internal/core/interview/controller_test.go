package interview

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/careernav/canav/internal/core/voice"
)

func activeController(t *testing.T, role string) *Controller {
	t.Helper()
	c := NewController()
	require.NoError(t, c.SelectRole(role))
	require.NoError(t, c.BeginStart())
	greeting := Message{
		ID:        ServerID(1),
		Sender:    SenderAssistant,
		Content:   "Welcome! Tell me about yourself.",
		Timestamp: time.Now(),
	}
	require.NoError(t, c.FinishStart(Session{ID: 7, JobRole: role, Active: true}, []Message{greeting}))
	return c
}

func TestStart_BlankRoleIsNoOp(t *testing.T) {
	c := NewController()
	require.ErrorIs(t, c.SelectRole("   "), ErrBlankRole)
	require.ErrorIs(t, c.BeginStart(), ErrBlankRole)
	require.Equal(t, NotStarted, c.Phase())
}

func TestStart_FailureRevertsAndAllowsRetry(t *testing.T) {
	c := NewController()
	require.NoError(t, c.SelectRole("UX Designer"))
	require.NoError(t, c.BeginStart())
	require.Equal(t, Starting, c.Phase())

	c.FailStart()
	require.Equal(t, NotStarted, c.Phase())

	// Retry works without reconstructing the controller.
	require.NoError(t, c.BeginStart())
	require.NoError(t, c.FinishStart(Session{ID: 7, JobRole: "UX Designer", Active: true}, nil))
	require.Equal(t, Active, c.Phase())
}

func TestSend_SingleInFlight(t *testing.T) {
	c := activeController(t, "UX Designer")
	c.SetPending("first answer")
	_, err := c.BeginSend()
	require.NoError(t, err)

	// A second send while one is pending is rejected, not queued.
	c.pending = "second answer"
	_, err = c.BeginSend()
	require.ErrorIs(t, err, ErrSendInFlight)
	require.Equal(t, 2, c.TimelineLen())

	c.FinishSend(Message{ID: ServerID(2), Sender: SenderAssistant, Content: "Go on."})
	_, err = c.BeginSend()
	require.NoError(t, err)
}

func TestSend_FailureKeepsOptimisticMessage(t *testing.T) {
	c := activeController(t, "UX Designer")
	before := c.TimelineLen()

	c.SetPending("x")
	_, err := c.BeginSend()
	require.NoError(t, err)
	c.FailSend()

	msgs := c.Messages()
	require.Len(t, msgs, before+1)
	last := msgs[len(msgs)-1]
	require.Equal(t, SenderUser, last.Sender)
	require.Equal(t, "x", last.Content)
	require.False(t, c.Sending(), "in-flight flag must clear so the user can retry")
}

func TestSend_BlankRejected(t *testing.T) {
	c := activeController(t, "UX Designer")
	c.SetPending("   ")
	_, err := c.BeginSend()
	require.ErrorIs(t, err, ErrBlankMessage)
	require.Equal(t, 1, c.TimelineLen())
}

func TestSend_InputLockedWhileInFlight(t *testing.T) {
	c := activeController(t, "UX Designer")
	c.SetPending("answer")
	_, err := c.BeginSend()
	require.NoError(t, err)

	// Typing into a disabled input does nothing.
	c.SetPending("sneaky edit")
	require.Empty(t, c.Pending())
}

func TestEndToEndFlow(t *testing.T) {
	c := NewController()
	require.NoError(t, c.SelectRole("UX Designer"))
	require.NoError(t, c.BeginStart())

	greeting := Message{ID: ServerID(1), Sender: SenderAssistant, Content: "Hello, UX Designer!"}
	require.NoError(t, c.FinishStart(Session{ID: 7, JobRole: "UX Designer", Active: true}, []Message{greeting}))

	sess, ok := c.Session()
	require.True(t, ok)
	require.Equal(t, int64(7), sess.ID)
	require.Equal(t, 1, c.TimelineLen())

	c.SetPending("I have 3 years experience")
	sent, err := c.BeginSend()
	require.NoError(t, err)
	require.Equal(t, "I have 3 years experience", sent.Content)
	require.Equal(t, 2, c.TimelineLen(), "optimistic append happens before the reply")

	c.FinishSend(Message{ID: ServerID(2), Sender: SenderAssistant, Content: "Great, tell me more."})
	require.Equal(t, 3, c.TimelineLen())
	last, ok := c.LastMessage()
	require.True(t, ok)
	require.Equal(t, SenderAssistant, last.Sender)
}

func TestEnd_IsLocalAndTerminal(t *testing.T) {
	c := activeController(t, "UX Designer")
	require.NoError(t, c.End())
	require.Equal(t, Ended, c.Phase())

	_, ok := c.Session()
	require.False(t, ok)
	require.Zero(t, c.TimelineLen())

	// No resurrection.
	require.ErrorIs(t, c.SelectRole("Data Scientist"), ErrAlreadyStarted)
	require.ErrorIs(t, c.BeginStart(), ErrAlreadyStarted)
	require.ErrorIs(t, c.End(), ErrNothingToEnd)
}

func TestEnd_WhileStarting(t *testing.T) {
	c := NewController()
	require.NoError(t, c.SelectRole("UX Designer"))
	require.NoError(t, c.BeginStart())
	require.NoError(t, c.End())

	// The start request completes after the user walked away.
	err := c.FinishStart(Session{ID: 9}, nil)
	require.ErrorIs(t, err, ErrNotStarting)
	require.Equal(t, Ended, c.Phase())
}

func TestEnd_DropsLateReply(t *testing.T) {
	c := activeController(t, "UX Designer")
	c.SetPending("answer")
	_, err := c.BeginSend()
	require.NoError(t, err)

	require.NoError(t, c.End())
	c.FinishSend(Message{ID: ServerID(3), Sender: SenderAssistant, Content: "too late"})
	require.Zero(t, c.TimelineLen())
}

func TestAppendPending(t *testing.T) {
	c := NewController()

	c.SetPending("Hello")
	c.AppendPending("world")
	require.Equal(t, "Hello world", c.Pending())

	c.SetPending("")
	c.AppendPending("world")
	require.Equal(t, "world", c.Pending())

	c.AppendPending("")
	require.Equal(t, "world", c.Pending())
}

func TestVoiceCancelLeavesPendingUntouched(t *testing.T) {
	c := activeController(t, "UX Designer")
	c.SetPending("Hello")

	vc := voice.NewCapture(nopRecognizer{}, c.Sending)
	run, err := vc.Start()
	require.NoError(t, err)
	vc.HandleResult(run.Gen, "world")

	vc.Cancel()
	require.Equal(t, "Hello", c.Pending())

	// Confirm is the only path that reaches the buffer.
	run, err = vc.Start()
	require.NoError(t, err)
	vc.HandleResult(run.Gen, "world")
	if transcript, ok := vc.Confirm(); ok {
		c.AppendPending(transcript)
	}
	require.Equal(t, "Hello world", c.Pending())
}

type nopRecognizer struct{}

func (nopRecognizer) Recognize(ctx context.Context) (string, error) { return "", nil }

func TestOptimisticIDsAreUniqueUnderRapidSends(t *testing.T) {
	c := activeController(t, "UX Designer")
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		c.SetPending("answer")
		msg, err := c.BeginSend()
		require.NoError(t, err)
		c.FailSend()

		id := msg.ID.String()
		require.False(t, seen[id], "duplicate local id %s", id)
		seen[id] = true

		_, isLocal := msg.ID.(LocalID)
		require.True(t, isLocal)
	}
}
