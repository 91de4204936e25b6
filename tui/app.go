// Package tui is the terminal display for a deck: a study screen that walks
// a shuffled session and a manage screen that edits the collection.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/sky-flux/deck"
	"github.com/sky-flux/deck/storage"
)

// Screen selects what the display shows.
type Screen int

const (
	ScreenStudy Screen = iota
	ScreenManage
)

type manageMode int

const (
	modeList manageMode = iota
	modeSearch
	modeEdit
	modeConfirmRestore
)

// Options configures a Model. Provider and Sampler are required.
type Options struct {
	Context  context.Context
	Provider storage.Provider
	Sampler  *deck.Sampler
	Logger   *logrus.Logger

	Records  []deck.Record // current collection
	Defaults []deck.Record // restored by ctrl+r on the manage screen

	Language   deck.Language
	ResetDelay time.Duration
	Start      Screen
}

// savedMsg reports the outcome of a storage write. records is the
// collection that was written; it replaces the model's collection only when
// err is nil.
type savedMsg struct {
	records []deck.Record
	status  string
	err     error
}

// resetDoneMsg ends the reset animation.
type resetDoneMsg struct {
	sessionID string
}

type Model struct {
	ctx      context.Context
	provider storage.Provider
	sampler  *deck.Sampler
	log      *logrus.Logger
	defaults []deck.Record

	records []deck.Record
	session deck.Session
	lang    deck.Language
	screen  Screen

	// study
	showDescription bool
	resetting       bool
	resetDelay      time.Duration
	spinner         spinner.Model
	progress        progress.Model
	studyKeys       studyKeyMap

	// manage
	mode     manageMode
	search   textinput.Model
	filtered []deck.Record
	cursor   int
	offset   int
	form     *editForm
	listKeys listKeyMap
	formKeys formKeyMap
	changed  bool // collection edited since the session started
	saving   bool

	help      help.Model
	status    string
	statusErr bool
	width     int
	height    int
	quitting  bool
}

func New(opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}
	if !opts.Language.IsValid() {
		opts.Language = deck.English
	}

	si := textinput.New()
	si.Placeholder = "search titles..."
	si.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:        opts.Context,
		provider:   opts.Provider,
		sampler:    opts.Sampler,
		log:        opts.Logger,
		defaults:   opts.Defaults,
		records:    opts.Records,
		lang:       opts.Language,
		screen:     opts.Start,
		resetDelay: opts.ResetDelay,
		spinner:    sp,
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40)),
		studyKeys:  newStudyKeys(),
		search:     si,
		listKeys:   newListKeys(),
		formKeys:   newFormKeys(),
		help:       help.New(),
		width:      80,
		height:     24,
	}
	m.session = m.sampler.Initialize(m.records, nil)
	m.log.WithFields(logrus.Fields{
		"session": m.session.ID,
		"cards":   m.session.Len(),
	}).Debug("session started")
	m.setLanguage(m.lang)
	m.syncStudyKeys()
	return m
}

// setLanguage switches the display language. The toggle hints name the
// language a press of t switches to.
func (m *Model) setLanguage(l deck.Language) {
	m.lang = l
	next := l.Toggle().Name()
	m.studyKeys.Language.SetHelp("t", next)
	m.listKeys.Language.SetHelp("t", next)
	m.applyFilter()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width-4, 10), 60)
		if m.form != nil {
			m.form.setWidth(msg.Width)
		}
		m.clampOffset()
		return m, nil

	case savedMsg:
		return m.handleSaved(msg), nil

	case resetDoneMsg:
		return m.finishReset(msg), nil

	case spinner.TickMsg:
		if !m.resetting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.screen == ScreenManage {
			return m.updateManage(msg)
		}
		return m.updateStudy(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.screen == ScreenManage {
		return m.viewManage()
	}
	return m.viewStudy()
}

// Session returns the current study session.
func (m Model) Session() deck.Session { return m.session }

// Records returns the current collection.
func (m Model) Records() []deck.Record { return m.records }

// Screen returns the screen being shown.
func (m Model) Screen() Screen { return m.screen }

// Language returns the display language.
func (m Model) Language() deck.Language { return m.lang }

// Status returns the status bar message and whether it reports an error.
func (m Model) Status() (string, bool) { return m.status, m.statusErr }

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(s string, err error) {
	m.status, m.statusErr = s, true
	m.log.WithError(err).Error(s)
}

// save writes records in the background and reports with a savedMsg.
func (m Model) save(records []deck.Record, status string) tea.Cmd {
	ctx, p := m.ctx, m.provider
	return func() tea.Msg {
		return savedMsg{records: records, status: status, err: p.Save(ctx, records)}
	}
}

func (m Model) restore(status string) tea.Cmd {
	ctx, p := m.ctx, m.provider
	defaults := make([]deck.Record, len(m.defaults))
	copy(defaults, m.defaults)
	return func() tea.Msg {
		return savedMsg{records: defaults, status: status, err: storage.Restore(ctx, p, defaults)}
	}
}

func (m Model) handleSaved(msg savedMsg) Model {
	m.saving = false
	if msg.err != nil {
		m.setError("Save failed: "+msg.err.Error(), msg.err)
		return m
	}
	m.records = msg.records
	m.changed = true
	m.form = nil
	if m.mode == modeEdit || m.mode == modeConfirmRestore {
		m.mode = modeList
	}
	m.applyFilter()
	m.setStatus(msg.status)
	m.log.WithField("count", len(m.records)).Info(msg.status)
	return m
}
