package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sky-flux/deck"
)

func (m *Model) enterManage() {
	m.screen = ScreenManage
	m.mode = modeList
	m.form = nil
	m.status = ""
	m.applyFilter()
}

// leaveManage returns to the study screen. A collection edited since the
// session started invalidates the session's positions, so it is reset.
func (m *Model) leaveManage() {
	m.screen = ScreenStudy
	m.mode = modeList
	m.form = nil
	m.search.Blur()
	m.status = ""
	if m.changed {
		m.resetSession()
	}
}

func (m *Model) applyFilter() {
	m.filtered = deck.Filter(m.records, m.search.Value(), m.lang)
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
	m.clampOffset()
}

func (m Model) selected() (deck.Record, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return deck.Record{}, false
	}
	return m.filtered[m.cursor], true
}

func (m Model) updateManage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.listKeys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	// one write at a time; keys are dropped until it reports back
	if m.saving {
		return m, nil
	}

	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeEdit:
		return m.updateForm(msg)
	case modeConfirmRestore:
		return m.updateConfirm(msg)
	}
	return m.updateList(msg)
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.listKeys.Back):
		m.leaveManage()

	case key.Matches(msg, m.listKeys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.clampOffset()
		}

	case key.Matches(msg, m.listKeys.Down):
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
			m.clampOffset()
		}

	case key.Matches(msg, m.listKeys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.listKeys.Edit):
		if rec, ok := m.selected(); ok {
			m.form = newEditForm(rec, m.width)
			m.mode = modeEdit
		}

	case key.Matches(msg, m.listKeys.Add):
		m.form = newEditForm(deck.Record{}, m.width)
		m.mode = modeEdit

	case key.Matches(msg, m.listKeys.Hide):
		rec, ok := m.selected()
		if !ok {
			break
		}
		out, err := deck.SetHidden(m.records, rec.ID, !rec.Hidden)
		if err != nil {
			m.setError("Update failed", err)
			break
		}
		status := "Exercise hidden"
		if rec.Hidden {
			status = "Exercise visible"
		}
		m.saving = true
		return m, m.save(out, status)

	case key.Matches(msg, m.listKeys.Delete):
		if rec, ok := m.selected(); ok {
			return m.remove(rec.ID)
		}

	case key.Matches(msg, m.listKeys.Restore):
		m.mode = modeConfirmRestore

	case key.Matches(msg, m.listKeys.Language):
		m.setLanguage(m.lang.Toggle())
	}
	return m, nil
}

func (m Model) remove(id int64) (tea.Model, tea.Cmd) {
	out, err := deck.Remove(m.records, id)
	switch {
	case errors.Is(err, deck.ErrLastRecord):
		m.setError("Cannot delete the last exercise", err)
		return m, nil
	case err != nil:
		m.setError("Delete failed", err)
		return m, nil
	}
	m.saving = true
	return m, m.save(out, "Exercise deleted")
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.mode = modeList
		return m, nil
	case "esc":
		m.search.Blur()
		m.search.SetValue("")
		m.mode = modeList
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form

	switch {
	case key.Matches(msg, m.formKeys.Cancel):
		m.form = nil
		m.mode = modeList
		return m, nil

	case key.Matches(msg, m.formKeys.NextField):
		return m, f.move(1)

	case key.Matches(msg, m.formKeys.PrevField):
		return m, f.move(-1)

	case key.Matches(msg, m.formKeys.Save):
		rec, err := f.record()
		if err != nil {
			m.setError("Cannot save: "+err.Error(), err)
			return m, nil
		}
		var out []deck.Record
		status := "Exercise saved"
		if rec.ID == 0 {
			out = deck.Add(m.records, rec)
			status = "Exercise added"
		} else if out, err = deck.Replace(m.records, rec); err != nil {
			m.setError("Save failed", err)
			return m, nil
		}
		m.saving = true
		return m, m.save(out, status)

	case key.Matches(msg, m.formKeys.Delete):
		if f.id == 0 {
			m.form = nil
			m.mode = modeList
			return m, nil
		}
		return m.remove(f.id)

	case f.focus == fieldHidden && key.Matches(msg, m.formKeys.Toggle):
		f.hidden = !f.hidden
		return m, nil
	}

	return m, f.update(msg)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.saving = true
		return m, m.restore("Default exercises restored")
	case "n", "N", "esc":
		m.mode = modeList
		m.setStatus("Restore cancelled")
	}
	return m, nil
}

func (m Model) viewManage() string {
	var b strings.Builder

	title := titleStyle.Render("Deck · Manage")
	info := dimStyle.Render(fmt.Sprintf("  %d / %d exercises", len(m.filtered), len(m.records)))
	b.WriteString(title + " " + langTag.Render(m.lang.Name()) + info + "\n")

	if m.mode == modeEdit && m.form != nil {
		b.WriteString(m.form.view() + "\n")
		b.WriteString(m.help.View(m.formKeys))
		if m.status != "" {
			b.WriteString("\n" + m.renderStatus())
		}
		return b.String()
	}

	b.WriteString(headerStyle.Render(pad("ID", 5)+" Title") + "\n")

	visible := m.visibleRows()
	end := min(m.offset+visible, len(m.filtered))
	if len(m.filtered) == 0 {
		b.WriteString(dimStyle.Render("  No exercises match") + "\n")
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderRow(m.filtered[i], i == m.cursor) + "\n")
	}

	switch m.mode {
	case modeSearch:
		b.WriteString(statusBarStyle.Render("Search: ") + m.search.View())
	case modeConfirmRestore:
		b.WriteString(errorStyle.Render("Restore the default exercises? Every edit will be lost. (y/n)"))
	default:
		if v := m.search.Value(); v != "" {
			b.WriteString(dimStyle.Render("  filter: "+v) + "\n")
		}
		b.WriteString(m.help.View(m.listKeys))
	}
	if m.status != "" {
		b.WriteString("\n" + m.renderStatus())
	}
	return b.String()
}

func (m Model) renderRow(rec deck.Record, selected bool) string {
	title := rec.Title(m.lang)
	if title == "" {
		title = rec.Title(m.lang.Toggle())
	}
	row := pad(fmt.Sprint(rec.ID), 5) + " " + title
	if rec.Hidden {
		row += " (hidden)"
	}

	switch {
	case selected:
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, selectedStyle.Render(row))
	case rec.Hidden:
		return hiddenStyle.Render(row)
	default:
		return normalStyle.Render(row)
	}
}

func (m Model) visibleRows() int {
	// title, header, help and status lines
	return max(m.height-5, 1)
}

func (m *Model) clampOffset() {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}
