package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/stickies/internal/board"
	"github.com/alexanderramin/stickies/internal/cli/formatter"
	"github.com/alexanderramin/stickies/internal/config"
	"github.com/alexanderramin/stickies/internal/db"
	"github.com/alexanderramin/stickies/internal/watch"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// inputHeight is the number of visible rows of the note text area.
const inputHeight = 2

// boardTop is the number of screen rows above the board surface:
// header, text area and status line.
const boardTop = inputHeight + 2

type boardKeyMap struct {
	Add     key.Binding
	Newline key.Binding
	Dismiss key.Binding
	Quit    key.Binding
}

var boardKeys = boardKeyMap{
	Add:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add note")),
	Newline: key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("alt+enter", "new line")),
	Dismiss: key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "dismiss")),
	Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// boardModel is the bubbletea model for the interactive board.
type boardModel struct {
	ctx    context.Context
	app    *App
	board  *board.Board
	input  textarea.Model
	alert  *huh.Form
	status string
	// statusErr marks status as an error message.
	statusErr bool

	width    int
	height   int
	quitting bool
}

func newBoardModel(ctx context.Context, app *App) boardModel {
	ta := textarea.New()
	ta.Placeholder = "Write your note here..."
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline = boardKeys.Newline
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	ta.Focus()

	return boardModel{
		ctx:   ctx,
		app:   app,
		board: app.Board,
		input: ta,
	}
}

// storeChangedMsg reports that another process wrote to the database.
type storeChangedMsg struct{}

// runBoard starts the full-screen board and blocks until the user quits.
func runBoard(cmd *cobra.Command, app *App) error {
	ctx := commandContext(cmd)
	p := tea.NewProgram(newBoardModel(ctx, app),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)

	if path := app.Config.Database.Path; app.database != nil && path != db.MemoryPath {
		w := watch.New(path, watch.DefaultDelay, func() { p.Send(storeChangedMsg{}) }, app.logger())
		if err := w.Start(ctx); err != nil {
			app.logger().Warn("not watching database for changes", "path", path, "error", err)
		} else {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	return nil
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m boardModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		if m.alert != nil {
			return m, nil
		}
		m.handleMouse(msg)
		return m, nil

	case tea.BlurMsg:
		m.board.EndDrag()
		return m, nil

	case storeChangedMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, boardKeys.Quit) {
			m.quitting = true
			m.board.EndDrag()
			return m, tea.Quit
		}
		if m.alert != nil {
			return m.updateAlert(msg)
		}
		if key.Matches(msg, boardKeys.Add) {
			return m.addNote()
		}
	}

	if m.alert != nil {
		return m.updateAlert(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *boardModel) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(max(width-1, 1))
	m.board.SetViewport(board.Viewport{Width: width, Height: max(height-boardTop, 0)})
}

func (m boardModel) addNote() (tea.Model, tea.Cmd) {
	note, err := m.board.AddNote(m.ctx, m.input.Value())
	if errors.Is(err, board.ErrEmptyText) {
		if m.app.Config.Board.EmptyTextPolicy == config.PolicyAlert {
			return m.showAlert("Empty note", "Type some text before adding a note.")
		}
		return m, nil
	}

	m.input.Reset()
	if err != nil {
		m.reportErr(err)
		return m, nil
	}
	m.setStatus(fmt.Sprintf("Added note %s", note.ShortID()))
	return m, nil
}

// reload picks up notes written by another process. A drag in progress
// wins; the next change notification catches up.
func (m *boardModel) reload() {
	if _, dragging := m.board.Dragging(); dragging {
		return
	}
	if _, err := m.board.Reload(m.ctx); err != nil {
		m.reportErr(err)
	}
}

func (m boardModel) showAlert(title, message string) (tea.Model, tea.Cmd) {
	m.board.EndDrag()
	m.input.Blur()
	m.alert = alertForm(title, message)
	return m, m.alert.Init()
}

func (m boardModel) updateAlert(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, boardKeys.Dismiss) {
		return m.dismissAlert()
	}

	form, cmd := m.alert.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.alert = f
	}
	if m.alert.State != huh.StateNormal {
		return m.dismissAlert()
	}
	return m, cmd
}

func (m boardModel) dismissAlert() (tea.Model, tea.Cmd) {
	m.alert = nil
	return m, m.input.Focus()
}

func (m *boardModel) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

// reportErr shows err in the status line. Storage errors never stop the board.
func (m *boardModel) reportErr(err error) {
	m.app.logger().Error("board operation failed", "error", err)
	m.status = err.Error()
	m.statusErr = true
}

// ── rendering ────────────────────────────────────────────────────────────────

func (m boardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	b.WriteByte('\n')
	b.WriteString(m.statusView())
	b.WriteByte('\n')

	vp := m.board.Viewport()
	if m.alert != nil {
		b.WriteString(lipgloss.Place(vp.Width, vp.Height, lipgloss.Center, lipgloss.Center, m.alert.View()))
	} else {
		b.WriteString(renderBoard(m.board, vp))
	}
	return b.String()
}

func (m boardModel) headerView() string {
	count := m.board.Len()
	noun := "notes"
	if count == 1 {
		noun = "note"
	}
	return formatter.StyleHeader.Render("Sticky Notes") + formatter.Dim(fmt.Sprintf("  %d %s", count, noun))
}

func (m boardModel) statusView() string {
	if m.status != "" {
		if m.statusErr {
			return formatter.StyleRed.Render(m.status)
		}
		return formatter.StyleGreen.Render(m.status)
	}
	if m.alert != nil {
		return helpLine(boardKeys.Dismiss, boardKeys.Quit)
	}
	return helpLine(boardKeys.Add, boardKeys.Newline, boardKeys.Quit) + formatter.Dim("  ·  drag a note to move it  ·  × deletes")
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, formatter.Bold(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, formatter.Dim("  ·  "))
}
