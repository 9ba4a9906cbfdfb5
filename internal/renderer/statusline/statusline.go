// Package statusline draws the bottom status bar of the terminal editor.
package statusline

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scribe/internal/engine/surface"
	"github.com/dshills/scribe/internal/renderer"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageError
)

// StatusLine renders the status bar: active formats, document name,
// modified flag and caret position. A message replaces the bar until cleared.
type StatusLine struct {
	theme renderer.Theme

	name     string
	modified bool
	formats  []surface.Format
	block    int
	col      int

	message     string
	messageType MessageType
}

// New creates a status line.
func New(theme renderer.Theme) *StatusLine {
	return &StatusLine{theme: theme}
}

// SetName updates the displayed document name.
func (s *StatusLine) SetName(name string) {
	s.name = name
}

// SetModified updates the modified indicator.
func (s *StatusLine) SetModified(modified bool) {
	s.modified = modified
}

// SetFormats updates the active format indicators.
func (s *StatusLine) SetFormats(formats []surface.Format) {
	s.formats = formats
}

// SetPosition updates the caret position (0-indexed block and column).
func (s *StatusLine) SetPosition(block, col int) {
	s.block = block
	s.col = col
}

// SetMessage displays a status message.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Render draws the status line at row.
func (s *StatusLine) Render(c renderer.Canvas, row int) {
	width, _ := c.Size()
	if s.message != "" {
		style := s.theme.StatusInfo
		if s.messageType == MessageError {
			style = s.theme.StatusError
		}
		fill(c, width, row, style)
		put(c, 1, row, width, s.message, style)
		return
	}

	bar := s.theme.Status
	fill(c, width, row, bar)

	col := put(c, 0, row, width, " "+s.formatList()+" ", s.theme.StatusInfo)
	col++

	name := s.name
	if name == "" {
		name = "[Untitled]"
	}
	if s.modified {
		name += " [+]"
	}
	col = put(c, col, row, width, name, bar)

	pos := "Blk " + strconv.Itoa(s.block+1) + ", Col " + strconv.Itoa(s.col+1)
	if start := width - len(pos) - 1; start > col {
		put(c, start, row, width, pos, bar)
	}
}

func (s *StatusLine) formatList() string {
	if len(s.formats) == 0 {
		return "TEXT"
	}
	names := make([]string, len(s.formats))
	for i, f := range s.formats {
		names[i] = strings.ToUpper(f.String())
	}
	return strings.Join(names, " ")
}

func fill(c renderer.Canvas, width, row int, style tcell.Style) {
	for x := range width {
		c.SetContent(x, row, ' ', nil, style)
	}
}

func put(c renderer.Canvas, col, row, limit int, text string, style tcell.Style) int {
	for _, r := range text {
		if col >= limit {
			break
		}
		c.SetContent(col, row, r, nil, style)
		col++
	}
	return col
}
