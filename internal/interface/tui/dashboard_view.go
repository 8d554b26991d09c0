package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/careernav/canav/internal/core/career"
)

type featureCard struct {
	title string
	blurb string
	// gated cards stay locked until the user has at least one analysis
	gated bool
}

var featureCards = []featureCard{
	{
		title: "Smart Resume Analyzer",
		blurb: "Upload your resume in the web app to get AI-driven scoring and skill extraction.",
	},
	{
		title: "Career Path Engine",
		blurb: "Personalized career tracks and roadmaps based on your profile.",
		gated: true,
	},
	{
		title: "AI Mock Interview",
		blurb: "Practice with the AI interviewer. Press enter to start.",
		gated: true,
	},
	{
		title: "Analysis History",
		blurb: "Revisit previous analysis reports and track your progress.",
		gated: true,
	},
}

const mockInterviewCard = 2

// restricted is the single source of the gating decision for this
// screen; the nav rail and the cards both read it.
func (m Model) restricted() bool {
	return career.Restricted(!m.snapLoaded, len(m.snap.Records) > 0)
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "up", "k", "left", "h":
		if m.cardCursor > 0 {
			m.cardCursor--
		}
		return m, nil

	case "down", "j", "right", "l":
		if m.cardCursor < len(featureCards)-1 {
			m.cardCursor++
		}
		return m, nil

	case "r":
		m.provider.Invalidate()
		m.snapLoaded = false
		return m, tea.Batch(loadSnapshot(m.provider), m.spin.Tick)

	case "i":
		return m.openCard(mockInterviewCard)

	case "enter":
		return m.openCard(m.cardCursor)
	}

	return m, nil
}

func (m Model) openCard(idx int) (tea.Model, tea.Cmd) {
	card := featureCards[idx]
	if card.gated && m.restricted() {
		m.notice = "Analyze a resume first to unlock " + card.title + "."
		return m, nil
	}
	if idx == mockInterviewCard {
		m.enterInterview("")
		return m, nil
	}
	m.notice = card.title + " lives in the web app."
	return m, nil
}

func (m Model) viewDashboard() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to Career Navigator") + "\n")

	switch {
	case !m.snapLoaded:
		b.WriteString(subtitleStyle.Render(m.spin.View()+" Checking your resume profile...") + "\n\n")
	case m.snap.LastAnalysis.IsZero():
		b.WriteString(subtitleStyle.Render("No resume analysis yet.") + "\n\n")
	default:
		b.WriteString(subtitleStyle.Render("Last analysis "+humanize.Time(m.snap.LastAnalysis)) + "\n\n")
	}

	var cards []string
	for i, card := range featureCards {
		style := cardStyle
		if i == m.cardCursor {
			style = cardSelectedStyle
		}

		title := cardTitleStyle.Render(card.title)
		if card.gated && m.restricted() {
			title += "  " + lockBadgeStyle.Render("[locked]")
		}
		cards = append(cards, style.Render(title+"\n"+card.blurb))
	}

	left := lipgloss.JoinVertical(lipgloss.Left, cards[0], cards[1])
	right := lipgloss.JoinVertical(lipgloss.Left, cards[2], cards[3])
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")

	if m.restricted() && m.snapLoaded {
		b.WriteString(noticeStyle.Render("Locked features open after your first resume analysis.") + "\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice) + "\n")
	}
	b.WriteString(helpStyle.Render("enter open · i interview · r refresh · ? help · q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, m.viewNav(), " ", b.String())
}

// viewNav renders the navigation rail. It reads the same restricted
// flag as the cards, so the two can never disagree.
func (m Model) viewNav() string {
	type navEntry struct {
		label string
		gated bool
	}
	entries := []navEntry{
		{label: "Dashboard"},
		{label: "Resume Analyzer"},
		{label: "Career Path", gated: true},
		{label: "Mock Interview", gated: true},
		{label: "History", gated: true},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Career") + "\n")
	b.WriteString(titleStyle.Render("Navigator") + "\n\n")
	for i, e := range entries {
		switch {
		case e.gated && m.restricted():
			b.WriteString(navLockedStyle.Render(e.label+" *") + "\n")
		case (m.mode == dashboardView && i == 0) || (m.mode == interviewView && i == 3):
			b.WriteString(navActiveStyle.Render("> "+e.label) + "\n")
		default:
			b.WriteString(navItemStyle.Render(e.label) + "\n")
		}
	}
	return navStyle.Render(b.String())
}

func (m Model) viewHelp() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Keys") + "\n\n")
	b.WriteString("Dashboard\n")
	b.WriteString("  arrows    move between cards\n")
	b.WriteString("  enter     open card\n")
	b.WriteString("  i         jump to mock interview\n")
	b.WriteString("  r         refresh resume profile\n\n")
	b.WriteString("Interview\n")
	b.WriteString("  enter     start session / send answer\n")
	b.WriteString("  ctrl+r    start or stop voice input\n")
	b.WriteString("  ctrl+y    copy last interviewer message\n")
	b.WriteString("  esc       end session / back\n\n")
	b.WriteString(helpStyle.Render("press any key to go back"))
	return b.String()
}
