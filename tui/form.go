package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sky-flux/deck"
)

// editForm field indices
const (
	fieldTitleEN = iota
	fieldDescriptionEN
	fieldTitleFR
	fieldDescriptionFR
	fieldHidden
	fieldCount
)

var errTitleRequired = errors.New("a title is required in at least one language")

type editForm struct {
	id      int64 // 0 for a record not yet in the collection
	titleEN textinput.Model
	titleFR textinput.Model
	descEN  textarea.Model
	descFR  textarea.Model
	hidden  bool
	focus   int
}

func newTitleInput(value string) textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 200
	ti.SetValue(value)
	return ti
}

func newDescriptionInput(value string) textarea.Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.SetHeight(4)
	ta.SetValue(value)
	return ta
}

func newEditForm(rec deck.Record, width int) *editForm {
	f := &editForm{
		id:      rec.ID,
		titleEN: newTitleInput(rec.TitleEN),
		titleFR: newTitleInput(rec.TitleFR),
		descEN:  newDescriptionInput(rec.DescriptionEN),
		descFR:  newDescriptionInput(rec.DescriptionFR),
		hidden:  rec.Hidden,
		focus:   fieldTitleEN,
	}
	f.setWidth(width)
	f.focusCurrent()
	return f
}

func (f *editForm) setWidth(width int) {
	w := min(max(width-24, 20), 80)
	f.titleEN.Width = w
	f.titleFR.Width = w
	f.descEN.SetWidth(w)
	f.descFR.SetWidth(w)
}

func (f *editForm) blurCurrent() {
	switch f.focus {
	case fieldTitleEN:
		f.titleEN.Blur()
	case fieldTitleFR:
		f.titleFR.Blur()
	case fieldDescriptionEN:
		f.descEN.Blur()
	case fieldDescriptionFR:
		f.descFR.Blur()
	}
}

func (f *editForm) focusCurrent() tea.Cmd {
	switch f.focus {
	case fieldTitleEN:
		return f.titleEN.Focus()
	case fieldTitleFR:
		return f.titleFR.Focus()
	case fieldDescriptionEN:
		return f.descEN.Focus()
	case fieldDescriptionFR:
		return f.descFR.Focus()
	}
	return nil
}

func (f *editForm) move(delta int) tea.Cmd {
	f.blurCurrent()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.focusCurrent()
}

// update forwards a key to the focused field.
func (f *editForm) update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitleEN:
		f.titleEN, cmd = f.titleEN.Update(msg)
	case fieldTitleFR:
		f.titleFR, cmd = f.titleFR.Update(msg)
	case fieldDescriptionEN:
		f.descEN, cmd = f.descEN.Update(msg)
	case fieldDescriptionFR:
		f.descFR, cmd = f.descFR.Update(msg)
	}
	return cmd
}

// record returns the edited record. A record needs a title in at least one
// language.
func (f *editForm) record() (deck.Record, error) {
	rec := deck.Record{
		ID:            f.id,
		TitleEN:       strings.TrimSpace(f.titleEN.Value()),
		DescriptionEN: strings.TrimSpace(f.descEN.Value()),
		TitleFR:       strings.TrimSpace(f.titleFR.Value()),
		DescriptionFR: strings.TrimSpace(f.descFR.Value()),
		Hidden:        f.hidden,
	}
	if rec.TitleEN == "" && rec.TitleFR == "" {
		return deck.Record{}, errTitleRequired
	}
	return rec, nil
}

func (f *editForm) view() string {
	heading := "New exercise"
	if f.id != 0 {
		heading = fmt.Sprintf("Edit exercise #%d", f.id)
	}

	hidden := "○ visible"
	if f.hidden {
		hidden = "● hidden"
	}

	rows := []string{
		titleStyle.Render(heading),
		"",
		fieldLabel("Title (EN)", f.focus == fieldTitleEN) + f.titleEN.View(),
		fieldLabel("Description (EN)", f.focus == fieldDescriptionEN),
		f.descEN.View(),
		fieldLabel("Title (FR)", f.focus == fieldTitleFR) + f.titleFR.View(),
		fieldLabel("Description (FR)", f.focus == fieldDescriptionFR),
		f.descFR.View(),
		fieldLabel("Hidden", f.focus == fieldHidden) + hidden,
	}
	return formBoxStyle.Render(strings.Join(rows, "\n"))
}
