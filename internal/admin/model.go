package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"simple-note/pkg/client"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const DefaultToastDuration = 5 * time.Second

// NotesAPI is the subset of the notes client the panel drives.
type NotesAPI interface {
	ListNotes(ctx context.Context) ([]client.Note, error)
	CreateNote(ctx context.Context, in client.CreateNoteInput) (*client.Note, error)
	UpdateNote(ctx context.Context, id int64, in client.UpdateNoteInput) (*client.Note, error)
	DeleteNote(ctx context.Context, id int64) error
}

type Options struct {
	RequestTimeout time.Duration
	ToastDuration  time.Duration
}

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modeConfirm
)

type field int

const (
	fieldTitle field = iota
	fieldContent
)

type action string

const (
	actionCreate action = "create"
	actionUpdate action = "update"
	actionDelete action = "delete"
)

var successText = map[action]string{
	actionCreate: "Note created",
	actionUpdate: "Note updated",
	actionDelete: "Note deleted",
}

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

type toast struct {
	kind toastKind
	text string
	seq  int
}

type notesLoadedMsg struct {
	notes []client.Note
	err   error
}

type mutationDoneMsg struct {
	action action
	err    error
}

type toastExpiredMsg struct {
	seq int
}

// noteItem adapts client.Note to bubbles/list.Item
type noteItem struct {
	note client.Note
}

func (i noteItem) Title() string {
	if i.note.Title != nil && *i.note.Title != "" {
		return *i.note.Title
	}
	return "(untitled)"
}

func (i noteItem) Description() string {
	return fmt.Sprintf("#%d · %s · %s",
		i.note.Id,
		i.note.CreatedAt.Local().Format("2006-01-02 15:04"),
		truncate(i.note.Content, 60),
	)
}

func (i noteItem) FilterValue() string {
	return i.Title() + " " + i.note.Content
}

// Model is the admin panel state. editing selects the submit path: nil
// creates a note, non-nil updates that note.
type Model struct {
	api           NotesAPI
	timeout       time.Duration
	toastDuration time.Duration
	keys          keyMap

	notes   []client.Note
	list    list.Model
	editing *client.Note
	mode    mode
	busy    bool

	titleInput   textinput.Model
	contentInput textarea.Model
	focus        field
	formErr      string

	pendingDelete *client.Note

	toast    *toast
	toastSeq int

	width, height int
}

func New(api NotesAPI, opts Options) Model {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = client.DefaultTimeout
	}
	if opts.ToastDuration <= 0 {
		opts.ToastDuration = DefaultToastDuration
	}

	keys := defaultKeyMap()

	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Notes"
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetShowHelp(true)
	l.SetStatusBarItemName("note", "notes")
	l.FilterInput.Prompt = "/ "
	l.AdditionalShortHelpKeys = keys.browseHelp
	l.AdditionalFullHelpKeys = keys.browseHelp

	ti := textinput.New()
	ti.Prompt = "Title: "
	ti.Placeholder = "optional"
	ti.CharLimit = 200
	ti.Cursor.SetMode(cursor.CursorStatic)

	ta := textarea.New()
	ta.Placeholder = "Content"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(6)
	ta.Cursor.SetMode(cursor.CursorStatic)

	return Model{
		api:           api,
		timeout:       opts.RequestTimeout,
		toastDuration: opts.ToastDuration,
		keys:          keys,
		list:          l,
		titleInput:    ti,
		contentInput:  ta,
		busy:          true,
		width:         80,
		height:        24,
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetchNotes()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case notesLoadedMsg:
		m.busy = false
		if msg.err != nil {
			return m, m.showToast(toastError, "Failed to fetch notes: "+client.Message(msg.err))
		}
		return m, m.setNotes(msg.notes)

	case mutationDoneMsg:
		if msg.err != nil {
			m.busy = false
			return m, m.showToast(toastError, client.Message(msg.err))
		}
		m.closeForm()
		// busy until the refetch lands; the list is never patched locally
		toastCmd := m.showToast(toastSuccess, successText[msg.action])
		return m, tea.Batch(toastCmd, m.fetchNotes())

	case toastExpiredMsg:
		if m.toast != nil && m.toast.seq == msg.seq {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	if m.mode == modeBrowse {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		return m, m.openForm(nil)
	case key.Matches(msg, m.keys.Edit):
		if note, ok := m.selected(); ok {
			return m, m.openForm(&note)
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if note, ok := m.selected(); ok {
			m.pendingDelete = &note
			m.mode = modeConfirm
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.busy = true
		return m, m.fetchNotes()
	case key.Matches(msg, m.keys.Dismiss):
		m.toast = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.NextField):
		return m, m.toggleFocus()
	}

	if m.focus == fieldTitle && msg.Type == tea.KeyEnter {
		return m, m.toggleFocus()
	}

	var cmd tea.Cmd
	if m.focus == fieldTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.contentInput, cmd = m.contentInput.Update(msg)
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		id := m.pendingDelete.Id
		m.pendingDelete = nil
		m.mode = modeBrowse
		m.busy = true
		return m, m.deleteNote(id)
	case key.Matches(msg, m.keys.Deny):
		m.pendingDelete = nil
		m.mode = modeBrowse
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	content := m.contentInput.Value()
	if strings.TrimSpace(content) == "" {
		m.formErr = "Content is required"
		return m, nil
	}
	m.formErr = ""
	m.busy = true
	return m, m.saveNote(m.editing, strings.TrimSpace(m.titleInput.Value()), content)
}

func (m *Model) openForm(note *client.Note) tea.Cmd {
	m.editing = note
	m.mode = modeForm
	m.formErr = ""
	m.titleInput.Reset()
	m.contentInput.Reset()
	if note != nil {
		if note.Title != nil {
			m.titleInput.SetValue(*note.Title)
		}
		m.contentInput.SetValue(note.Content)
	}
	m.focus = fieldTitle
	m.contentInput.Blur()
	m.resize()
	return m.titleInput.Focus()
}

func (m *Model) closeForm() {
	m.editing = nil
	m.mode = modeBrowse
	m.formErr = ""
	m.titleInput.Blur()
	m.contentInput.Blur()
	m.resize()
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == fieldTitle {
		m.focus = fieldContent
		m.titleInput.Blur()
		return m.contentInput.Focus()
	}
	m.focus = fieldTitle
	m.contentInput.Blur()
	return m.titleInput.Focus()
}

func (m *Model) setNotes(notes []client.Note) tea.Cmd {
	m.notes = notes
	items := make([]list.Item, 0, len(notes))
	for _, n := range notes {
		items = append(items, noteItem{note: n})
	}
	return m.list.SetItems(items)
}

func (m *Model) showToast(kind toastKind, text string) tea.Cmd {
	m.toastSeq++
	seq := m.toastSeq
	m.toast = &toast{kind: kind, text: text, seq: seq}
	return tea.Tick(m.toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func (m *Model) resize() {
	reserved := 4
	if m.mode == modeForm {
		reserved += 12
	}
	height := m.height - reserved
	if height < 5 {
		height = 5
	}
	m.list.SetSize(m.width-4, height)
	m.contentInput.SetWidth(m.width - 8)
	m.titleInput.Width = m.width - 16
}

func (m Model) selected() (client.Note, bool) {
	item, ok := m.list.SelectedItem().(noteItem)
	if !ok {
		return client.Note{}, false
	}
	return item.note, true
}

// Commands

func (m Model) fetchNotes() tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		notes, err := api.ListNotes(ctx)
		return notesLoadedMsg{notes: notes, err: err}
	}
}

func (m Model) saveNote(editing *client.Note, title, content string) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if editing == nil {
			in := client.CreateNoteInput{Content: content}
			if title != "" {
				in.Title = &title
			}
			_, err := api.CreateNote(ctx, in)
			return mutationDoneMsg{action: actionCreate, err: err}
		}

		in := client.UpdateNoteInput{Content: &content}
		if title == "" {
			in.ClearTitle = true
		} else {
			in.Title = &title
		}
		_, err := api.UpdateNote(ctx, editing.Id, in)
		return mutationDoneMsg{action: actionUpdate, err: err}
	}
}

func (m Model) deleteNote(id int64) tea.Cmd {
	api, timeout := m.api, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return mutationDoneMsg{action: actionDelete, err: api.DeleteNote(ctx, id)}
	}
}

// View

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.list.View())

	switch m.mode {
	case modeForm:
		b.WriteString("\n" + m.formView())
	case modeConfirm:
		prompt := fmt.Sprintf("Delete note #%d %q? ", m.pendingDelete.Id, noteItem{note: *m.pendingDelete}.Title())
		b.WriteString("\n" + errorStyle.Render(prompt) + helpLine([]key.Binding{m.keys.Confirm, m.keys.Deny}))
	}

	if m.busy {
		b.WriteString("\n" + mutedStyle.Render("Working…"))
	}
	if m.toast != nil {
		style := successStyle
		mark := "✔ "
		if m.toast.kind == toastError {
			style = errorStyle
			mark = "✖ "
		}
		b.WriteString("\n" + style.Render(mark+m.toast.text) + "  " + mutedStyle.Render("(x to dismiss)"))
	}

	return panelStyle.Render(b.String())
}

func (m Model) formView() string {
	heading := "New note"
	if m.editing != nil {
		heading = fmt.Sprintf("Edit note #%d", m.editing.Id)
	}
	if m.formErr != "" {
		heading += "  " + errorStyle.Render(m.formErr)
	}

	lines := []string{
		accentStyle.Render(heading),
		m.titleInput.View(),
		m.contentInput.View(),
		helpLine(m.keys.formHelp()),
	}
	bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	return bar.Render(strings.Join(lines, "\n"))
}
