package render

import "fmt"

// HUDRows is the height of the status area at the bottom of the screen.
const HUDRows = 4

// Cell represents a single terminal cell with full RGB color.
type Cell struct {
	Ch     rune
	Fg, Bg RGB
	Bold   bool
}

// style is how a run of text is painted.
type style struct {
	fg, bg RGB
	bold   bool
}

func (s style) cell(r rune) Cell {
	return Cell{Ch: r, Fg: s.fg, Bg: s.bg, Bold: s.bold}
}

// sentinel never matches a drawn cell, forcing a full repaint.
var sentinel = Cell{Ch: '\x00', Fg: RGB{R: 255}, Bg: RGB{B: 255}, Bold: true}

// Engine is a per-session double-buffer diff renderer.
type Engine struct {
	width, height int
	current       [][]Cell
	next          [][]Cell
	firstFrame    bool
	lastOver      bool
	out           []byte
}

// NewEngine creates a renderer for the given terminal dimensions.
func NewEngine(width, height int) *Engine {
	e := &Engine{}
	e.Resize(width, height)
	return e
}

// Resize adjusts the renderer for a new terminal size.
func (e *Engine) Resize(width, height int) {
	e.width = max(width, 0)
	e.height = max(height, 0)
	e.current = e.makeBuffer(sentinel)
	e.next = e.makeBuffer(Cell{})
	e.firstFrame = true
}

func (e *Engine) makeBuffer(fill Cell) [][]Cell {
	buf := make([][]Cell, e.height)
	for y := range buf {
		buf[y] = make([]Cell, e.width)
		for x := range buf[y] {
			buf[y][x] = fill
		}
	}
	return buf
}

func (e *Engine) fill(c Cell) {
	for y := range e.next {
		for x := range e.next[y] {
			e.next[y][x] = c
		}
	}
}

// set writes one cell, ignoring positions off screen.
func (e *Engine) set(row, col int, c Cell) {
	if row >= 0 && row < e.height && col >= 0 && col < e.width {
		e.next[row][col] = c
	}
}

// flush diffs next against current, emits only changed cells and swaps
// the buffers.
func (e *Engine) flush() string {
	buf := e.out[:0]
	lastRow, lastCol := -1, -1
	for y := range e.next {
		for x, nc := range e.next[y] {
			if !e.firstFrame && nc == e.current[y][x] {
				continue
			}
			// Only emit cursor position if not consecutive
			if y != lastRow || x != lastCol {
				buf = appendMoveTo(buf, y+1, x+1)
			}
			buf = appendCell(buf, nc)
			lastRow, lastCol = y, x+1
		}
	}
	if len(buf) > 0 {
		buf = append(buf, Reset...)
	}
	e.out = buf

	e.current, e.next = e.next, e.current
	e.firstFrame = false
	return string(buf)
}

// text writes s into [col, maxCol) and returns the next free column.
func (e *Engine) text(row, col, maxCol int, s string, st style) int {
	for _, r := range s {
		if col >= maxCol || col >= e.width {
			break
		}
		e.set(row, col, st.cell(r))
		col++
	}
	return col
}

func (e *Engine) centered(row int, s string, st style) {
	col := (e.width - len([]rune(s))) / 2
	e.text(row, col, e.width, s, st)
}

// hline draws left + fill... + right across the full width.
func (e *Engine) hline(row int, left, fill, right rune, st style) {
	for x := 0; x < e.width; x++ {
		ch := fill
		switch x {
		case 0:
			ch = left
		case e.width - 1:
			ch = right
		}
		e.set(row, x, st.cell(ch))
	}
}

// divider draws ├─ label ─┤.
func (e *Engine) divider(row int, label string, line, text style) {
	e.hline(row, '├', '─', '┤', line)
	if label != "" {
		col := (e.width - len([]rune(label))) / 2
		e.text(row, max(col, 1), e.width-1, label, text)
	}
}

// bar draws "label ████░░░░ cur/max" and returns the columns consumed.
func (e *Engine) bar(row, col int, label string, current, maximum, width int, labelFg, fillFg, bg RGB) int {
	start := col
	col = e.text(row, col, e.width, label, style{fg: labelFg, bg: bg, bold: true}) + 1

	filled := 0
	if maximum > 0 {
		filled = width * current / maximum
	}
	filled = min(max(filled, 0), width)
	full := style{fg: fillFg, bg: bg}
	empty := style{fg: emptyBar, bg: bg}
	for i := 0; i < width; i++ {
		if i < filled {
			e.set(row, col+i, full.cell('█'))
		} else {
			e.set(row, col+i, empty.cell('░'))
		}
	}
	col += width + 1

	col = e.text(row, col, e.width, fmt.Sprintf("%d/%d", current, maximum), style{fg: numText, bg: bg})
	return col - start
}
