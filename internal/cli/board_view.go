package cli

import (
	"strings"

	"github.com/alexanderramin/stickies/internal/board"
	"github.com/alexanderramin/stickies/internal/cli/formatter"
	"github.com/alexanderramin/stickies/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const closeGlyph = '×'

// cellStyle identifies how a canvas cell is painted. The zero value is the
// bare board background.
type cellStyle struct {
	color domain.Color
	note  bool
	bold  bool
}

type cell struct {
	r     rune
	style cellStyle
	// cont marks the right half of a double-width rune.
	cont bool
}

// canvas is a fixed grid of cells. Notes are painted in board order, so
// later notes cover earlier ones.
type canvas struct {
	width, height int
	cells         [][]cell
}

func newCanvas(width, height int) *canvas {
	c := &canvas{width: width, height: height, cells: make([][]cell, height)}
	for y := range c.cells {
		row := make([]cell, width)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		c.cells[y] = row
	}
	return c
}

// set writes r at (x, y) and returns its width in cells. Writes outside
// the canvas or past limit are dropped.
func (c *canvas) set(x, y, limit int, r rune, style cellStyle) int {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return 0
	}
	if y < 0 || y >= c.height || x < 0 || x+w > min(c.width, limit) {
		return w
	}

	row := c.cells[y]
	// Break any wide rune this write splits.
	if row[x].cont && x > 0 {
		row[x-1] = cell{r: ' ', style: row[x-1].style}
	}
	end := x + w - 1
	if end+1 < c.width && !row[end].cont && runewidth.RuneWidth(row[end].r) == 2 {
		row[end+1] = cell{r: ' ', style: row[end+1].style}
	}

	row[x] = cell{r: r, style: style}
	if w == 2 {
		row[x+1] = cell{style: style, cont: true}
	}
	return w
}

// text writes s left to right from (x, y), clipped at limit.
func (c *canvas) text(x, y, limit int, s string, style cellStyle) {
	for _, r := range s {
		if x >= limit {
			return
		}
		x += c.set(x, y, limit, r, style)
	}
}

func (c *canvas) String() string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		lines[y] = renderRow(row)
	}
	return strings.Join(lines, "\n")
}

// renderRow styles runs of equally painted cells in one Render call each.
func renderRow(row []cell) string {
	var b, run strings.Builder
	var current cellStyle
	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(paint(current, run.String()))
		run.Reset()
	}

	for _, c := range row {
		if c.cont {
			continue
		}
		if c.style != current {
			flush()
			current = c.style
		}
		run.WriteRune(c.r)
	}
	flush()
	return b.String()
}

func paint(style cellStyle, s string) string {
	if !style.note {
		return s
	}
	return formatter.NoteStyle(style.color).Bold(style.bold).Render(s)
}

// renderBoard draws every note of b onto a viewport-sized canvas.
func renderBoard(b *board.Board, vp board.Viewport) string {
	if vp.Width <= 0 || vp.Height <= 0 {
		return ""
	}
	c := newCanvas(vp.Width, vp.Height)
	session, dragging := b.Dragging()
	palette := b.Palette()

	for _, note := range b.Notes() {
		style := cellStyle{
			color: palette.Resolve(note.Color),
			note:  true,
			bold:  dragging && session.NoteID == note.ID,
		}
		drawNote(c, b.Box(note), note.Text, style)
	}
	return c.String()
}

// drawNote paints a filled box with × in the top-right corner and the text
// wrapped inside a one-cell margin.
func drawNote(c *canvas, box board.Box, text string, style cellStyle) {
	left, top := int(box.Left), int(box.Top)
	w, h := int(box.Width), int(box.Height)
	right := left + w

	for y := top; y < top+h; y++ {
		for x := left; x < right; x++ {
			c.set(x, y, right, ' ', style)
		}
	}
	c.set(right-2, top, right, closeGlyph, style)

	inner := w - 2
	if inner <= 0 || h <= 2 {
		return
	}
	lines := wrapText(text, inner)
	for i, line := range lines {
		if i >= h-2 {
			break
		}
		c.text(left+1, top+1+i, right-1, line, style)
	}
}

// wrapText word-wraps s to width cells.
func wrapText(s string, width int) []string {
	wrapped := lipgloss.NewStyle().Width(width).Render(s)
	lines := strings.Split(wrapped, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}
