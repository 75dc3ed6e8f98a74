package board

import (
	"context"
	"time"

	"github.com/alexanderramin/stickies/internal/domain"
)

// Dragging returns the active drag session, if any.
func (b *Board) Dragging() (Session, bool) {
	if b.drag == nil {
		return Session{}, false
	}
	return *b.drag, true
}

// BeginDrag starts dragging note id grabbed at (px, py) inside box. It is a
// no-op returning false while another drag is active or when id is unknown.
func (b *Board) BeginDrag(id string, px, py float64, box Box) bool {
	if b.drag != nil {
		return false
	}
	if b.indexOf(id) < 0 {
		return false
	}
	b.drag = &Session{
		NoteID: id,
		Offset: Offset{X: px - box.Left, Y: py - box.Top},
	}
	b.emit(context.Background(), "drag_begin", time.Now(), nil, map[string]any{"note_id": id})
	return true
}

// ContinueDrag moves the dragged note so its corner follows the pointer
// minus the grab offset, then saves. It is a no-op while idle.
func (b *Board) ContinueDrag(ctx context.Context, px, py float64) (bool, error) {
	if b.drag == nil {
		return false, nil
	}
	start := time.Now()
	i := b.indexOf(b.drag.NoteID)
	if i < 0 {
		b.drag = nil
		return false, nil
	}

	pos := domain.Position{Top: py - b.drag.Offset.Y, Left: px - b.drag.Offset.X}
	if pos == b.notes[i].Position {
		return false, nil
	}
	b.notes[i].Position = pos

	err := b.Save(ctx)
	b.emit(ctx, "drag_move", start, err, map[string]any{
		"note_id": b.drag.NoteID,
		"top":     pos.Top,
		"left":    pos.Left,
	})
	return true, err
}

// EndDrag returns the board to idle. Safe to call at any time.
func (b *Board) EndDrag() {
	if b.drag == nil {
		return
	}
	id := b.drag.NoteID
	b.drag = nil
	b.emit(context.Background(), "drag_end", time.Now(), nil, map[string]any{"note_id": id})
}
