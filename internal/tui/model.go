// Package tui is memo's interactive browser: a list of cataloged files next
// to a preview pane, with prompts for searching, adding and describing files.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justin0804nitsuj/memo/internal/core"
	"github.com/justin0804nitsuj/memo/models"
	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
	"github.com/justin0804nitsuj/memo/pkg/preview"
)

// Catalog is the part of core.Catalog the browser drives.
type Catalog interface {
	Search(ctx context.Context, req core.SearchRequest) ([]models.FileEntry, error)
	AddFile(ctx context.Context, req core.AddFileRequest) (models.FileRecord, error)
	DeleteFiles(ctx context.Context, req core.DeleteFilesRequest) error
	EditDescription(ctx context.Context, req core.EditDescriptionRequest) error
	Preview(ctx context.Context, id uint, p core.Previewer, s preview.Surface) (models.FileRecord, bool, error)
}

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeAddPath
	modeAddDescription
	modeEdit
)

type (
	// Results carry the sequence number of the request that produced them;
	// only the latest load and the latest preview are applied.
	entriesLoadedMsg struct {
		seq     int
		entries []models.FileEntry
	}
	fileAddedMsg struct {
		rec models.FileRecord
	}
	// mutatedMsg reports a finished delete or edit.
	mutatedMsg struct {
		status string
	}
	previewMsg struct {
		seq     int
		id      uint
		name    string
		content string
		found   bool
	}
	errMsg struct {
		err error
	}
)

// Model is the bubbletea model for the browser.
type Model struct {
	ctx       context.Context
	catalog   Catalog
	previewer core.Previewer

	list  list.Model
	input textinput.Model
	pane  viewport.Model
	keys  keyMap

	mode         mode
	keyword      string
	pendingPath  string
	editID       uint
	marked       map[uint]bool
	previewTitle string

	loadSeq    int
	previewSeq int

	width  int
	height int

	// err is a storage failure that ended the session.
	err error
}

// New builds the browser model. The first Init loads every record.
func New(ctx context.Context, c Catalog, p core.Previewer) Model {
	keys := newKeyMap()

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "memo"
	l.Styles.Title = titleStyle
	l.SetFilteringEnabled(false)
	l.StatusMessageLifetime = 5 * time.Second
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.KeyMap.NextPage = key.NewBinding(
		key.WithKeys("right", "l", "pgdown", "f"),
		key.WithHelp("→/l/pgdn", "next page"),
	)
	l.AdditionalShortHelpKeys = keys.shortHelp
	l.AdditionalFullHelpKeys = keys.fullHelp

	in := textinput.New()
	in.CharLimit = 4096

	return Model{
		ctx:          ctx,
		catalog:      c,
		previewer:    p,
		list:         l,
		input:        in,
		pane:         viewport.New(0, 0),
		keys:         keys,
		marked:       make(map[uint]bool),
		previewTitle: "Preview",
	}
}

// Err returns the storage failure that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return m.fetch(m.loadSeq)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case entriesLoadedMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		cmd := m.setEntries(msg.entries)
		return m, cmd

	case fileAddedMsg:
		m.keyword = ""
		status := m.list.NewStatusMessage(statusStyle(
			fmt.Sprintf("Added %s (#%d, %s)", msg.rec.FileName, msg.rec.ID, msg.rec.FileType),
		))
		load := m.reload()
		return m, tea.Batch(status, load)

	case mutatedMsg:
		m.keyword = ""
		status := m.list.NewStatusMessage(statusStyle(msg.status))
		load := m.reload()
		return m, tea.Batch(status, load)

	case previewMsg:
		if msg.seq != m.previewSeq {
			return m, nil
		}
		if !msg.found {
			cmd := m.list.NewStatusMessage(errorStyle(fmt.Sprintf("File #%d not found", msg.id)))
			return m, cmd
		}
		m.previewTitle = msg.name
		m.pane.SetContent(msg.content)
		m.pane.GotoTop()
		return m, nil

	case errMsg:
		cmd := m.fail(msg.err)
		return m, cmd

	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updatePrompt(msg)
		}
		if cmd, handled := m.handleBrowseKey(msg); handled {
			return m, cmd
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	m.pane, cmd = m.pane.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit, true

	case key.Matches(msg, m.keys.search):
		return m.prompt(modeSearch, "Search: ", "name or description", m.keyword), true

	case key.Matches(msg, m.keys.add):
		return m.prompt(modeAddPath, "Path: ", "file to add", ""), true

	case key.Matches(msg, m.keys.edit):
		sel, ok := m.selected()
		if !ok {
			return nil, true
		}
		m.editID = sel.ID
		return m.prompt(modeEdit, "Description: ", "", sel.Description), true

	case key.Matches(msg, m.keys.mark):
		m.toggleMark()
		return nil, true

	case key.Matches(msg, m.keys.remove):
		ids := m.deleteTargets()
		if len(ids) == 0 {
			return nil, true
		}
		return m.deleteFiles(ids), true

	case key.Matches(msg, m.keys.preview):
		sel, ok := m.selected()
		if !ok {
			return nil, true
		}
		return m.previewFile(sel.ID), true

	case key.Matches(msg, m.keys.reload):
		m.keyword = ""
		return m.reload(), true
	}
	return nil, false
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		m.closePrompt()
		return m, nil

	case key.Matches(msg, m.keys.submit):
		value := m.input.Value()
		switch m.mode {
		case modeSearch:
			m.closePrompt()
			m.keyword = value
			cmd := m.reload()
			return m, cmd

		case modeAddPath:
			path := strings.TrimSpace(value)
			if path == "" {
				cmd := m.list.NewStatusMessage(errorStyle("A path is required"))
				return m, cmd
			}
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			m.pendingPath = path
			cmd := m.prompt(modeAddDescription, "Description: ", "optional", "")
			return m, cmd

		case modeAddDescription:
			path := m.pendingPath
			m.closePrompt()
			return m, m.addFile(path, value)

		case modeEdit:
			id := m.editID
			m.closePrompt()
			return m, m.editDescription(id, value)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	listWidth := m.width / 2
	left := lipgloss.NewStyle().MaxWidth(listWidth).Render(m.list.View())

	right := previewStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(m.previewTitle), m.pane.View()),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	if m.mode != modeBrowse {
		body = lipgloss.JoinVertical(lipgloss.Left, body, promptStyle.Render(m.input.View()))
	}
	return appStyle.Render(body)
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	h, v := appStyle.GetFrameSize()
	innerW, innerH := width-h, height-v-2

	listWidth := innerW / 2
	m.list.SetSize(listWidth, innerH)

	ph, pv := previewStyle.GetFrameSize()
	m.pane.Width = max(innerW-listWidth-ph, 0)
	m.pane.Height = max(innerH-pv-1, 0)
	m.input.Width = max(innerW-20, 10)
}

func (m *Model) prompt(md mode, label, placeholder, value string) tea.Cmd {
	m.mode = md
	m.input.Prompt = label
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.mode = modeBrowse
	m.pendingPath = ""
	m.editID = 0
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) setEntries(entries []models.FileEntry) tea.Cmd {
	present := make(map[uint]bool, len(entries))
	for _, e := range entries {
		present[e.ID] = true
	}
	for id := range m.marked {
		if !present[id] {
			delete(m.marked, id)
		}
	}

	if m.keyword == "" {
		m.list.Title = "memo"
	} else {
		m.list.Title = fmt.Sprintf("memo: %q", m.keyword)
	}
	return m.list.SetItems(toItems(entries, m.marked))
}

func (m *Model) selected() (models.FileEntry, bool) {
	if i, ok := m.list.SelectedItem().(item); ok {
		return i.entry, true
	}
	return models.FileEntry{}, false
}

func (m *Model) toggleMark() {
	i, ok := m.list.SelectedItem().(item)
	if !ok {
		return
	}
	i.marked = !i.marked
	if i.marked {
		m.marked[i.entry.ID] = true
	} else {
		delete(m.marked, i.entry.ID)
	}
	m.list.SetItem(m.list.Index(), i)
}

// deleteTargets returns the marked ids, or the selected one when nothing is
// marked.
func (m *Model) deleteTargets() []uint {
	if len(m.marked) > 0 {
		ids := make([]uint, 0, len(m.marked))
		for _, it := range m.list.Items() {
			if i, ok := it.(item); ok && m.marked[i.entry.ID] {
				ids = append(ids, i.entry.ID)
			}
		}
		return ids
	}
	if sel, ok := m.selected(); ok {
		return []uint{sel.ID}
	}
	return nil
}

// fail ends the session on storage failures and reports anything else on
// the status line.
func (m *Model) fail(err error) tea.Cmd {
	if pkgerrors.IsStorage(err) {
		m.err = err
		return tea.Quit
	}
	return m.list.NewStatusMessage(errorStyle(err.Error()))
}

// reload starts a search for the current keyword. Results of earlier loads
// still in flight are dropped when they arrive.
func (m *Model) reload() tea.Cmd {
	m.loadSeq++
	return m.fetch(m.loadSeq)
}

func (m Model) fetch(seq int) tea.Cmd {
	ctx, c, keyword := m.ctx, m.catalog, m.keyword
	return func() tea.Msg {
		entries, err := c.Search(ctx, core.SearchRequest{Keyword: keyword})
		if err != nil {
			return errMsg{err}
		}
		return entriesLoadedMsg{seq: seq, entries: entries}
	}
}

func (m Model) addFile(path, description string) tea.Cmd {
	ctx, c := m.ctx, m.catalog
	return func() tea.Msg {
		rec, err := c.AddFile(ctx, core.AddFileRequest{Path: path, Description: description})
		if err != nil {
			return errMsg{err}
		}
		return fileAddedMsg{rec}
	}
}

func (m Model) editDescription(id uint, description string) tea.Cmd {
	ctx, c := m.ctx, m.catalog
	return func() tea.Msg {
		if err := c.EditDescription(ctx, core.EditDescriptionRequest{ID: id, Description: description}); err != nil {
			return errMsg{err}
		}
		return mutatedMsg{status: fmt.Sprintf("Updated description of #%d", id)}
	}
}

func (m Model) deleteFiles(ids []uint) tea.Cmd {
	ctx, c := m.ctx, m.catalog
	return func() tea.Msg {
		if err := c.DeleteFiles(ctx, core.DeleteFilesRequest{IDs: ids}); err != nil {
			return errMsg{err}
		}
		return mutatedMsg{status: fmt.Sprintf("Deleted %d record(s)", len(ids))}
	}
}

func (m *Model) previewFile(id uint) tea.Cmd {
	m.previewSeq++
	ctx, c, p, seq := m.ctx, m.catalog, m.previewer, m.previewSeq
	surface := &paneSurface{cols: m.pane.Width, rows: m.pane.Height}
	return func() tea.Msg {
		rec, found, err := c.Preview(ctx, id, p, surface)
		if err != nil {
			return errMsg{err}
		}
		return previewMsg{seq: seq, id: id, name: rec.FileName, content: surface.content, found: found}
	}
}

// Run starts the browser on the terminal and blocks until the user quits.
func Run(ctx context.Context, c Catalog, p core.Previewer) error {
	final, err := tea.NewProgram(New(ctx, c, p), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
