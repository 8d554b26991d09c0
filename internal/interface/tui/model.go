package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/careernav/canav/internal/core/api"
	"github.com/careernav/canav/internal/core/career"
	"github.com/careernav/canav/internal/core/interview"
	"github.com/careernav/canav/internal/core/voice"
)

type viewMode int

const (
	dashboardView viewMode = iota
	interviewView
	helpView
)

type Model struct {
	client   *api.Client // nil when unauthenticated
	provider *career.Provider
	voiceCmd string
	log      *zap.Logger

	mode     viewMode
	prevMode viewMode
	width    int
	height   int

	// Career state shared by the nav rail, the dashboard cards, and the
	// interview role picker. One snapshot, one restricted-mode answer.
	snap       career.Snapshot
	snapLoaded bool

	// Dashboard
	cardCursor int

	// Interview screen. ctrl and capture are rebuilt on every entry;
	// Ended is terminal for a controller.
	ctrl       *interview.Controller
	capture    *voice.Capture
	roleCursor int
	roleInput  textinput.Model
	input      textinput.Model
	viewport   viewport.Model
	vpReady    bool
	spin       spinner.Model
	notice     string // non-blocking, replaced by the next event
	startErr   string // blocking but retryable
}

// Options configures the initial screen.
type Options struct {
	// StartInInterview opens the interview screen directly.
	StartInInterview bool
	// Role preselects a job role for the session.
	Role string
}

// New builds the TUI model. client may be nil when no credential is
// available; the UI then renders its unauthenticated state without ever
// calling the network.
func New(client *api.Client, provider *career.Provider, voiceCommand string, log *zap.Logger, opts Options) Model {
	if log == nil {
		log = zap.NewNop()
	}

	roleInput := textinput.New()
	roleInput.Placeholder = "or type a custom role"
	roleInput.CharLimit = 80

	input := textinput.New()
	input.Placeholder = "Type your answer here..."
	input.CharLimit = 2000

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		client:    client,
		provider:  provider,
		voiceCmd:  voiceCommand,
		log:       log,
		roleInput: roleInput,
		input:     input,
		spin:      sp,
	}
	if opts.StartInInterview {
		m.enterInterview(opts.Role)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(loadSnapshot(m.provider), textinput.Blink, m.spin.Tick)
}

// enterInterview builds a fresh controller and capture for a new
// session. The capture shares the controller's input lock so recording
// cannot start while a reply is pending.
func (m *Model) enterInterview(role string) {
	ctrl := interview.NewController()
	m.ctrl = ctrl
	m.capture = voice.NewCapture(voice.FromCommand(m.voiceCmd), ctrl.Sending)
	m.roleCursor = 0
	m.roleInput.SetValue("")
	m.roleInput.Focus()
	m.input.SetValue("")
	m.notice = ""
	m.startErr = ""
	m.vpReady = false
	m.mode = interviewView
	if role != "" {
		if err := ctrl.SelectRole(role); err == nil {
			m.roleInput.SetValue(ctrl.Role())
		}
	}
}

// leaveInterview ends any running session and drops the controller; the
// next visit starts from scratch.
func (m *Model) leaveInterview() {
	if m.ctrl != nil {
		_ = m.ctrl.End()
	}
	m.ctrl = nil
	m.capture = nil
	m.mode = dashboardView
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "?":
			if m.mode != helpView {
				m.prevMode = m.mode
				m.mode = helpView
			}
			return m, nil
		}
		switch m.mode {
		case dashboardView:
			return m.updateDashboard(msg)
		case interviewView:
			return m.updateInterview(msg)
		case helpView:
			m.mode = m.prevMode
			return m, nil
		}

	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			if m.ctrl != nil && m.ctrl.Sending() {
				m.refreshChat()
			}
			return m, cmd
		}
		return m, nil

	case snapshotMsg:
		m.snap = msg.snap
		m.snapLoaded = true
		return m, nil

	case sessionStartedMsg:
		return m.handleSessionStarted(msg)

	case startFailedMsg:
		if m.ctrl != nil {
			m.ctrl.FailStart()
		}
		m.log.Warn("session start failed", zap.Error(msg.err))
		m.startErr = "Failed to start session. Please try again."
		return m, nil

	case chatReplyMsg:
		if m.ctrl != nil {
			m.ctrl.FinishSend(interview.FromWire(msg.reply))
			m.refreshChat()
		}
		return m, nil

	case chatFailedMsg:
		if m.ctrl != nil {
			m.ctrl.FailSend()
		}
		m.log.Warn("chat send failed", zap.Error(msg.err))
		m.notice = "Failed to send message."
		return m, nil

	case voiceResultMsg:
		if m.capture != nil {
			m.capture.HandleResult(msg.gen, msg.transcript)
		}
		return m, nil

	case voiceFailedMsg:
		if m.capture != nil {
			m.capture.HandleError(msg.gen)
		}
		// A cancelled run reporting in is the expected end after Stop.
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.log.Warn("voice recognition failed", zap.Error(msg.err))
			m.notice = "Error recognizing voice. Please try again."
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleSessionStarted(msg sessionStartedMsg) (tea.Model, tea.Cmd) {
	if m.ctrl == nil {
		return *m, nil
	}
	sess := interview.Session{
		ID:      msg.session.ID,
		JobRole: msg.session.JobRole,
		Active:  msg.session.IsActive,
	}
	if err := m.ctrl.FinishStart(sess, interview.FromWireAll(msg.history)); err != nil {
		// The user left while the request was out; nothing to show.
		return *m, nil
	}
	if msg.historyErr != nil {
		m.log.Warn("greeting fetch failed", zap.Error(msg.historyErr))
		m.notice = "Couldn't load the interviewer's greeting."
	}
	m.startErr = ""
	m.input.Focus()
	m.refreshChat()
	return *m, nil
}

// busy reports whether anything is in flight that warrants a spinner.
func (m Model) busy() bool {
	if m.ctrl != nil && (m.ctrl.Phase() == interview.Starting || m.ctrl.Sending()) {
		return true
	}
	if m.capture != nil && m.capture.State() == voice.Recording {
		return true
	}
	return !m.snapLoaded
}

func (m Model) View() string {
	switch m.mode {
	case dashboardView:
		return m.viewDashboard()
	case interviewView:
		return m.viewInterview()
	case helpView:
		return m.viewHelp()
	}
	return ""
}
