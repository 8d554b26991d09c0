package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/careernav/canav/internal/core/api"
	"github.com/careernav/canav/internal/core/career"
	"github.com/careernav/canav/internal/core/voice"
)

// Every asynchronous source (network completions, recognizer
// completions) reports back as one of these messages, so all state
// changes happen on the Bubble Tea loop.

type snapshotMsg struct {
	snap career.Snapshot
}

type sessionStartedMsg struct {
	session api.Session
	history []api.Message
	// historyErr is the greeting fetch failing after the session was
	// created; the session is still usable, so this is not fatal.
	historyErr error
}

type startFailedMsg struct {
	err error
}

type chatReplyMsg struct {
	reply api.Message
}

type chatFailedMsg struct {
	err error
}

type voiceResultMsg struct {
	gen        uint64
	transcript string
}

type voiceFailedMsg struct {
	gen uint64
	err error
}

func loadSnapshot(provider *career.Provider) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snap: provider.Snapshot(context.Background())}
	}
}

// startSession creates the session, then immediately pulls its message
// history so the timeline opens with the interviewer's greeting.
func startSession(client *api.Client, role string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		sess, err := client.CreateSession(ctx, role)
		if err != nil {
			return startFailedMsg{err: err}
		}
		history, err := client.Messages(ctx, sess.ID)
		if err != nil {
			return sessionStartedMsg{session: sess, historyErr: err}
		}
		return sessionStartedMsg{session: sess, history: history}
	}
}

func sendChat(client *api.Client, sessionID int64, content string) tea.Cmd {
	return func() tea.Msg {
		reply, err := client.Chat(context.Background(), sessionID, content)
		if err != nil {
			return chatFailedMsg{err: err}
		}
		return chatReplyMsg{reply: reply}
	}
}

// recognize runs one recognizer session off-loop. The generation tags
// the completion so a run cancelled by Stop is discarded when it
// finally reports in.
func recognize(rec voice.Recognizer, run voice.Run) tea.Cmd {
	return func() tea.Msg {
		transcript, err := rec.Recognize(run.Ctx)
		if err != nil {
			return voiceFailedMsg{gen: run.Gen, err: err}
		}
		return voiceResultMsg{gen: run.Gen, transcript: transcript}
	}
}
