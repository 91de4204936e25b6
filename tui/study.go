package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sky-flux/deck"
)

func (m Model) updateStudy(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.studyKeys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if m.resetting {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.studyKeys.Next):
		m.session = m.sampler.Advance(m.session)
		m.showDescription = false
	case key.Matches(msg, m.studyKeys.Prev):
		m.session = m.sampler.Retreat(m.session)
		m.showDescription = false
	case key.Matches(msg, m.studyKeys.Describe):
		m.showDescription = !m.showDescription
	case key.Matches(msg, m.studyKeys.Reset):
		return m.startReset()
	case key.Matches(msg, m.studyKeys.Language):
		m.setLanguage(m.lang.Toggle())
	case key.Matches(msg, m.studyKeys.Manage):
		m.enterManage()
	}
	m.syncStudyKeys()
	return m, nil
}

func (m Model) startReset() (tea.Model, tea.Cmd) {
	if m.resetDelay <= 0 {
		m.resetSession()
		return m, nil
	}
	m.resetting = true
	id := m.session.ID
	return m, tea.Batch(
		m.spinner.Tick,
		tea.Tick(m.resetDelay, func(time.Time) tea.Msg { return resetDoneMsg{sessionID: id} }),
	)
}

func (m Model) finishReset(msg resetDoneMsg) Model {
	// a stale timer from an earlier session is ignored
	if !m.resetting || msg.sessionID != m.session.ID {
		return m
	}
	m.resetting = false
	m.resetSession()
	return m
}

// resetSession starts a fresh session over the current collection.
func (m *Model) resetSession() {
	prev := m.session.ID
	m.session = m.sampler.Reset(m.records, nil)
	m.showDescription = false
	m.changed = false
	m.syncStudyKeys()
	m.log.WithField("previous", prev).WithField("session", m.session.ID).
		WithField("cards", m.session.Len()).Debug("session reset")
}

func (m *Model) syncStudyKeys() {
	m.studyKeys.Next.SetEnabled(m.session.CanAdvance())
	m.studyKeys.Prev.SetEnabled(m.session.CanRetreat())
	m.studyKeys.Describe.SetEnabled(!m.session.IsEmpty())
}

func (m Model) viewStudy() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Deck") + " " + langTag.Render(m.lang.Name()) + "\n\n")

	switch {
	case m.resetting:
		fmt.Fprintf(&b, "  %s Shuffling...\n\n", m.spinner.View())
	case m.session.IsEmpty():
		b.WriteString(emptyStyle.Render("No exercises available") + "\n")
		b.WriteString(dimStyle.Render("  All exercises are hidden or none were found. Press m to manage them.") + "\n\n")
	default:
		s := m.session
		fmt.Fprintf(&b, "  Progress: %d%%   %d / %d cards viewed\n", percent(s.Progress()), s.VisitedCount(), s.Len())
		b.WriteString("  " + m.progress.ViewAs(s.Progress()/100) + "\n\n")
		rec, _ := s.Current()
		b.WriteString(m.renderCard(rec) + "\n")
		counter := fmt.Sprintf("  Card %d / %d", s.Cursor()+1, s.Len())
		if s.Phase() == deck.Completed {
			counter += dimStyle.Render("   all cards viewed")
		}
		b.WriteString(counter + "\n\n")
	}

	b.WriteString(m.help.View(m.studyKeys))
	if m.status != "" {
		b.WriteString("\n" + m.renderStatus())
	}
	return b.String()
}

func (m Model) renderCard(rec deck.Record) string {
	width := min(max(m.width-4, 30), 80)
	body := cardTitleStyle.Render(rec.Title(m.lang))
	if m.showDescription {
		body += "\n\n" + rec.Description(m.lang)
	} else {
		body += "\n\n" + dimStyle.Render("space: show description")
	}
	return cardStyle.Width(width).Align(lipgloss.Center).Render(body)
}

func (m Model) renderStatus() string {
	if m.statusErr {
		return statusBarStyle.Render(errorStyle.Render(m.status))
	}
	return statusBarStyle.Render(m.status)
}

func percent(p float64) int {
	return int(math.Round(p))
}
