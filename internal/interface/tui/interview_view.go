package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/careernav/canav/internal/core/interview"
	"github.com/careernav/canav/internal/core/voice"
)

const navWidth = 20

func (m Model) updateInterview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.client == nil {
		// Unauthenticated: any key returns to the dashboard.
		m.leaveInterview()
		return m, nil
	}

	switch m.ctrl.Phase() {
	case interview.NotStarted:
		return m.updateSetup(msg)
	case interview.Starting:
		if msg.String() == "esc" {
			m.leaveInterview()
		}
		return m, nil
	case interview.Active:
		return m.updateChat(msg)
	default:
		m.leaveInterview()
		return m, nil
	}
}

func (m Model) updateSetup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveInterview()
		return m, nil

	case "up":
		if m.roleCursor > 0 {
			m.roleCursor--
		}
		return m, nil

	case "down":
		if m.roleCursor < len(m.snap.Roles)-1 {
			m.roleCursor++
		}
		return m, nil

	case "enter":
		role := strings.TrimSpace(m.roleInput.Value())
		if role == "" && m.roleCursor < len(m.snap.Roles) {
			role = m.snap.Roles[m.roleCursor]
		}
		if err := m.ctrl.SelectRole(role); err != nil {
			// Blank role: selecting nothing starts nothing.
			return m, nil
		}
		if err := m.ctrl.BeginStart(); err != nil {
			return m, nil
		}
		m.startErr = ""
		return m, tea.Batch(startSession(m.client, m.ctrl.Role()), m.spin.Tick)
	}

	var cmd tea.Cmd
	m.roleInput, cmd = m.roleInput.Update(msg)
	return m, cmd
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The confirmation gate owns the keyboard until resolved.
	if m.capture.State() == voice.AwaitingConfirmation {
		switch msg.String() {
		case "enter":
			if transcript, ok := m.capture.Confirm(); ok {
				m.ctrl.AppendPending(transcript)
				m.input.SetValue(m.ctrl.Pending())
				m.input.CursorEnd()
			}
		case "esc":
			m.capture.Cancel()
		}
		return m, nil
	}

	if msg.String() == "esc" {
		m.capture.Stop()
		m.leaveInterview()
		return m, nil
	}

	// While recording, the keyboard is limited to stopping the recorder.
	if m.capture.State() == voice.Recording {
		if msg.String() == "ctrl+r" {
			m.capture.Stop()
		}
		return m, nil
	}

	// While a reply is pending the input control and the voice-start
	// affordance are disabled, keeping exactly one request in flight.
	if m.ctrl.Sending() {
		return m, nil
	}

	switch msg.String() {
	case "ctrl+r":
		run, err := m.capture.Start()
		switch err {
		case voice.ErrUnavailable:
			m.notice = "Voice input is not available: set voice_command in your config."
			return m, nil
		case voice.ErrInputLocked:
			return m, nil
		}
		if run.Ctx == nil {
			return m, nil
		}
		return m, tea.Batch(recognize(m.capture.Recognizer(), run), m.spin.Tick)

	case "ctrl+y":
		if last, ok := lastAssistant(m.ctrl.Messages()); ok {
			if err := clipboard.WriteAll(last.Content); err == nil {
				m.notice = "Copied."
			}
		}
		return m, nil

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case "enter":
		m.ctrl.SetPending(m.input.Value())
		sent, err := m.ctrl.BeginSend()
		if err != nil {
			return m, nil
		}
		m.input.SetValue("")
		m.notice = ""
		m.refreshChat()
		sess, ok := m.ctrl.Session()
		if !ok {
			return m, nil
		}
		return m, tea.Batch(sendChat(m.client, sess.ID, sent.Content), m.spin.Tick)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetPending(m.input.Value())
	return m, cmd
}

func lastAssistant(msgs []interview.Message) (interview.Message, bool) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Sender == interview.SenderAssistant {
			return msgs[i], true
		}
	}
	return interview.Message{}, false
}

func (m *Model) chatSize() (width, height int) {
	width = m.width - navWidth - 4
	if width < 20 {
		width = 60
	}
	height = m.height - 8
	if height < 5 {
		height = 16
	}
	return width, height
}

func (m *Model) resizeViewport() {
	if !m.vpReady {
		return
	}
	w, h := m.chatSize()
	m.viewport.Width = w
	m.viewport.Height = h
	m.refreshChat()
}

// refreshChat re-renders the timeline into the viewport and follows the
// newest message.
func (m *Model) refreshChat() {
	if m.ctrl == nil || m.ctrl.Phase() != interview.Active {
		return
	}
	w, h := m.chatSize()
	if !m.vpReady {
		m.viewport = viewport.New(w, h)
		m.vpReady = true
	}
	m.viewport.SetContent(m.renderTimeline(w))
	m.viewport.GotoBottom()
}

func (m *Model) renderTimeline(width int) string {
	var b strings.Builder
	body := lipgloss.NewStyle().Width(width - 2)

	for _, msg := range m.ctrl.Messages() {
		var label string
		switch msg.Sender {
		case interview.SenderUser:
			label = userStyle.Render("YOU")
		default:
			label = assistantStyle.Render("INTERVIEWER")
		}
		if !msg.Timestamp.IsZero() {
			label += " " + timestampStyle.Render(humanize.Time(msg.Timestamp))
		}
		b.WriteString(label + "\n")
		b.WriteString(body.Render(msg.Content) + "\n\n")
	}

	if m.ctrl.Sending() {
		b.WriteString(assistantStyle.Render("INTERVIEWER") + "\n")
		b.WriteString(m.spin.View() + subtitleStyle.Render(" thinking...") + "\n")
	}
	return b.String()
}

func (m Model) viewInterview() string {
	if m.client == nil {
		body := titleStyle.Render("AI Mock Interviewer") + "\n\n" +
			"You are not logged in.\n" +
			"Run " + userStyle.Render("canav login <token>") + " or set CANAV_TOKEN, then try again.\n\n" +
			helpStyle.Render("press any key to go back")
		return lipgloss.JoinHorizontal(lipgloss.Top, m.viewNav(), " ", body)
	}

	switch m.ctrl.Phase() {
	case interview.Active:
		return lipgloss.JoinHorizontal(lipgloss.Top, m.viewNav(), " ", m.viewChat())
	default:
		return lipgloss.JoinHorizontal(lipgloss.Top, m.viewNav(), " ", m.viewSetup())
	}
}

func (m Model) viewSetup() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("AI Mock Interviewer") + "\n\n")

	if m.ctrl.Phase() == interview.Starting {
		b.WriteString(m.spin.View() + " Starting...\n")
		b.WriteString(helpStyle.Render("esc cancel"))
		return b.String()
	}

	switch {
	case !m.snapLoaded:
		b.WriteString(m.spin.View() + subtitleStyle.Render(" Checking your resume profile...") + "\n")

	case len(m.snap.Roles) == 0:
		b.WriteString(noticeStyle.Render("No resume found.") + "\n")
		b.WriteString("For a personalized interview, analyze your resume in the web app first.\n")
		b.WriteString("You can still type a role below and start anyway.\n\n")

	default:
		b.WriteString("Select one of your identified job roles to begin:\n\n")
		for i, role := range m.snap.Roles {
			if i == m.roleCursor {
				b.WriteString(roleSelectedStyle.Render("> "+role) + "\n")
			} else {
				b.WriteString(roleStyle.Render(role) + "\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(m.roleInput.View() + "\n\n")

	if m.startErr != "" {
		b.WriteString(errorStyle.Render(m.startErr) + "\n")
	}
	b.WriteString(helpStyle.Render("up/down pick role · enter start · esc back"))
	return b.String()
}

func (m Model) viewChat() string {
	var b strings.Builder

	role := m.ctrl.Role()
	b.WriteString(titleStyle.Render("Interview: "+role) + "  " + assistantStyle.Render("● live") + "\n")
	w, _ := m.chatSize()
	b.WriteString(strings.Repeat("─", max(w, 10)) + "\n")

	if m.vpReady {
		b.WriteString(m.viewport.View() + "\n")
	}

	if m.capture.State() == voice.AwaitingConfirmation {
		overlay := titleStyle.Render("Confirm voice input") + "\n\n" +
			transcriptStyle.Render("\""+m.capture.Transcript()+"\"") + "\n\n" +
			helpStyle.Render("enter use text · esc cancel")
		b.WriteString(overlayStyle.Render(overlay) + "\n")
	}

	b.WriteString(m.inputLine() + "\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n")
	}
	b.WriteString(helpStyle.Render("enter send · ctrl+r voice · ctrl+y copy last · esc end session"))
	return b.String()
}

func (m Model) inputLine() string {
	switch {
	case m.capture.State() == voice.Recording:
		return m.spin.View() + noticeStyle.Render(" Listening... (ctrl+r to stop)")
	case m.ctrl.Sending():
		return subtitleStyle.Render(fmt.Sprintf("%s waiting for the interviewer...", m.spin.View()))
	default:
		return m.input.View()
	}
}
