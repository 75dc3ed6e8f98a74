package cli

import (
	"fmt"

	"github.com/alexanderramin/stickies/internal/board"
	tea "github.com/charmbracelet/bubbletea"
)

// closeButtonWidth is the number of cells at the right end of a note's top
// row that delete the note when pressed.
const closeButtonWidth = 3

// pointerEvent is a mouse event in board coordinates. A handler that acts on
// the event consumes it so later handlers skip it.
type pointerEvent struct {
	X, Y     int
	Action   tea.MouseAction
	Button   tea.MouseButton
	consumed bool
}

func (e *pointerEvent) Consume()       { e.consumed = true }
func (e *pointerEvent) Consumed() bool { return e.consumed }

func (e *pointerEvent) point() (float64, float64) {
	return float64(e.X), float64(e.Y)
}

// inside reports whether the event lies on the board surface.
func (e *pointerEvent) inside(vp board.Viewport) bool {
	return e.X >= 0 && e.Y >= 0 && e.X < vp.Width && e.Y < vp.Height
}

type pressHandler func(*boardModel, *pointerEvent)

// pressHandlers run in order until one consumes the press. Delete comes
// first so a press on × never starts a drag.
var pressHandlers = []pressHandler{
	(*boardModel).pressDelete,
	(*boardModel).pressDrag,
}

func toPointerEvent(msg tea.MouseMsg) *pointerEvent {
	return &pointerEvent{
		X:      msg.X,
		Y:      msg.Y - boardTop,
		Action: msg.Action,
		Button: msg.Button,
	}
}

func (m *boardModel) handleMouse(msg tea.MouseMsg) {
	ev := toPointerEvent(msg)

	switch ev.Action {
	case tea.MouseActionRelease:
		m.board.EndDrag()

	case tea.MouseActionMotion:
		if !ev.inside(m.board.Viewport()) {
			m.board.EndDrag()
			return
		}
		x, y := ev.point()
		if _, err := m.board.ContinueDrag(m.ctx, x, y); err != nil {
			m.reportErr(err)
		}

	case tea.MouseActionPress:
		if !ev.inside(m.board.Viewport()) {
			m.board.EndDrag()
			return
		}
		if ev.Button != tea.MouseButtonLeft {
			return
		}
		// A press while dragging means the release was lost.
		m.board.EndDrag()
		for _, h := range pressHandlers {
			h(m, ev)
			if ev.Consumed() {
				return
			}
		}
	}
}

// onCloseButton reports whether (x, y) hits the × area of box.
func onCloseButton(box board.Box, x, y float64) bool {
	right := box.Left + box.Width
	return y == box.Top && x >= right-closeButtonWidth && x < right
}

func (m *boardModel) pressDelete(ev *pointerEvent) {
	x, y := ev.point()
	note, ok := m.board.HitTest(x, y)
	if !ok || !onCloseButton(m.board.Box(note), x, y) {
		return
	}
	ev.Consume()

	if _, err := m.board.DeleteNote(m.ctx, note.ID); err != nil {
		m.reportErr(err)
		return
	}
	m.setStatus(fmt.Sprintf("Deleted note %s", note.ShortID()))
}

func (m *boardModel) pressDrag(ev *pointerEvent) {
	x, y := ev.point()
	note, ok := m.board.HitTest(x, y)
	if !ok {
		return
	}
	ev.Consume()
	m.board.BeginDrag(note.ID, x, y, m.board.Box(note))
}
