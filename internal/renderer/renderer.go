package renderer

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/scribe/internal/engine/document"
	"github.com/dshills/scribe/internal/input/trigger"
	"github.com/dshills/scribe/internal/renderer/core"
)

// Canvas is the drawing surface. tcell.Screen satisfies it.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

// Renderer draws documents. It holds no per-frame state.
type Renderer struct {
	theme      Theme
	menuWidth  int
	menuHeight int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme sets the theme.
func WithTheme(t Theme) Option {
	return func(r *Renderer) { r.theme = t }
}

// WithMenuSize sets the palette box size. It should match the size the
// trigger machine places the menu with.
func WithMenuSize(width, height int) Option {
	return func(r *Renderer) {
		r.menuWidth = width
		r.menuHeight = height
	}
}

// New creates a renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		theme:      DefaultTheme(),
		menuWidth:  trigger.DefaultMenuWidth,
		menuHeight: trigger.DefaultMenuHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Theme returns the renderer's theme.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Draw paints doc and, when open, the palette menu. It returns the caret
// cell and whether the caret is on screen.
func (r *Renderer) Draw(c Canvas, doc *document.Document, menu trigger.MenuState) (core.ScreenPos, bool) {
	width, height := c.Size()
	origin := doc.Origin()

	for i, b := range doc.Blocks() {
		row := origin.Row + i
		if row >= height {
			break
		}
		col := drawText(c, origin.Col, row, width, doc.ListMarker(b), r.theme.Marker)
		base := r.theme.BlockStyle(b.Kind())
		for _, run := range b.Runs() {
			col = drawText(c, col, row, width, run.Text(), RunStyle(base, run.Style()))
		}
	}

	if menu.IsOpen {
		r.drawMenu(c, menu)
	}

	rect, ok := doc.CaretRect()
	if !ok || rect.Top >= height || rect.Left >= width {
		return core.ScreenPos{}, false
	}
	return core.ScreenPos{Row: rect.Top, Col: rect.Left}, true
}

// MenuRect returns the cells the palette menu covers when drawn. It is empty
// while the menu is closed.
func (r *Renderer) MenuRect(menu trigger.MenuState) core.ScreenRect {
	if !menu.IsOpen {
		return core.ScreenRect{}
	}
	rows := max(min(len(menu.Candidates), r.menuHeight), 1)
	return core.RectFromSize(menu.Position.Top, menu.Position.Left, rows, r.menuWidth)
}

func (r *Renderer) drawMenu(c Canvas, menu trigger.MenuState) {
	width, height := c.Size()
	box := r.MenuRect(menu)
	top, left := box.Top, box.Left
	right := min(box.Right, width)

	if len(menu.Candidates) == 0 {
		fillRow(c, left, right, top, r.theme.Menu)
		drawText(c, left+1, top, right, "No matching commands", r.theme.MenuEmpty)
		return
	}

	rows := box.Height()
	first := 0
	if menu.SelectedIndex >= rows {
		first = menu.SelectedIndex - rows + 1
	}
	for i := range rows {
		row := top + i
		if row < 0 || row >= height {
			continue
		}
		idx := first + i
		cmd := menu.Candidates[idx]

		style := r.theme.Menu
		if idx == menu.SelectedIndex {
			style = r.theme.MenuSelected
		}
		fillRow(c, left, right, row, style)

		label := cmd.Label
		if cmd.Icon != "" {
			label = cmd.Icon + " " + label
		}
		drawText(c, left+1, row, right, label, style)
		if cmd.Shortcut != "" {
			start := right - 1 - runewidth.StringWidth(cmd.Shortcut)
			if start > left+1 {
				drawText(c, start, row, right, cmd.Shortcut, r.theme.MenuShortcut)
			}
		}
	}
}

// drawText writes s from col, clipped at limit, and returns the column
// after the last rune. Wide runes take two cells; zero-width runes are
// skipped.
func drawText(c Canvas, col, row, limit int, s string, style tcell.Style) int {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if col+w > limit {
			break
		}
		if col >= 0 {
			c.SetContent(col, row, ch, nil, style)
		}
		col += w
	}
	return col
}

func fillRow(c Canvas, left, right, row int, style tcell.Style) {
	for x := max(left, 0); x < right; x++ {
		c.SetContent(x, row, ' ', nil, style)
	}
}
