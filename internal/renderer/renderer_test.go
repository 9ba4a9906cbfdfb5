package renderer

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/scribe/internal/engine/document"
	"github.com/dshills/scribe/internal/input/palette"
	"github.com/dshills/scribe/internal/input/trigger"
	"github.com/dshills/scribe/internal/renderer/core"
	"github.com/dshills/scribe/internal/renderer/overlay"
)

func newScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.SimulationScreen, row int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for x := range w {
		r, _, _, _ := s.GetContent(x, row) //nolint:staticcheck // GetContent is the correct API
		if r == 0 {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func styleAt(s tcell.SimulationScreen, x, y int) tcell.Style {
	_, _, style, _ := s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return style
}

func TestDrawBlocks(t *testing.T) {
	s := newScreen(t, 40, 10)
	doc := document.New(document.WithOrigin(1, 2))
	require.NoError(t, doc.Load("<h1>Title</h1><ol><li>one</li><li>two</li></ol><ul><li>dot</li></ul><p>a <b>b</b></p>"))

	r := New()
	pos, ok := r.Draw(s, doc, trigger.MenuState{})

	assert.Equal(t, "  Title", rowText(s, 1))
	assert.Equal(t, "  1. one", rowText(s, 2))
	assert.Equal(t, "  2. two", rowText(s, 3))
	assert.Equal(t, "  • dot", rowText(s, 4))
	assert.Equal(t, "  a b", rowText(s, 5))

	assert.Equal(t, r.Theme().Headings[0], styleAt(s, 2, 1))
	assert.Equal(t, r.Theme().Text.Bold(true), styleAt(s, 4, 5))
	assert.Equal(t, r.Theme().Text, styleAt(s, 2, 5))

	rect, _ := doc.CaretRect()
	assert.True(t, ok)
	assert.Equal(t, rect.Top, pos.Row)
	assert.Equal(t, rect.Left, pos.Col)
}

func TestDrawClipsToCanvas(t *testing.T) {
	s := newScreen(t, 5, 1)
	doc := document.New()
	require.NoError(t, doc.Load("<p>abcdefgh</p><p>second</p>"))
	doc.End()

	_, ok := New().Draw(s, doc, trigger.MenuState{})

	assert.Equal(t, "abcde", rowText(s, 0))
	assert.False(t, ok)
}

func TestRunStyle(t *testing.T) {
	base := tcell.StyleDefault
	got := RunStyle(base, document.StyleBold|document.StyleStrikethrough)
	assert.Equal(t, base.Bold(true).StrikeThrough(true), got)
	assert.Equal(t, base, RunStyle(base, 0))
}

func TestDrawMenu(t *testing.T) {
	s := newScreen(t, 40, 20)
	doc := document.New()
	menu := trigger.MenuState{
		IsOpen:        true,
		Position:      overlay.Placement{Top: 5, Left: 2},
		SelectedIndex: 1,
		Candidates: []*palette.Command{
			{ID: "task.new", Label: "New Task", Shortcut: "^T"},
			{ID: "dir.new", Label: "New Directory"},
		},
	}

	r := New(WithMenuSize(20, 4))
	r.Draw(s, doc, menu)

	assert.Equal(t, "   New Task        ^T", rowText(s, 5))
	assert.Equal(t, "   New Directory", rowText(s, 6))
	assert.Equal(t, r.Theme().Menu, styleAt(s, 3, 5))
	assert.Equal(t, r.Theme().MenuSelected, styleAt(s, 3, 6))
	assert.Equal(t, "", rowText(s, 7))
}

func TestDrawMenuScrollsToSelection(t *testing.T) {
	s := newScreen(t, 40, 20)
	cands := make([]*palette.Command, 5)
	for i := range cands {
		cands[i] = &palette.Command{ID: string(rune('a' + i)), Label: "cmd " + string(rune('a'+i))}
	}
	menu := trigger.MenuState{IsOpen: true, SelectedIndex: 4, Candidates: cands}

	New(WithMenuSize(10, 2)).Draw(s, document.New(), menu)

	assert.Equal(t, " cmd d", rowText(s, 0)[:6])
	assert.Equal(t, " cmd e", rowText(s, 1)[:6])
}

func TestDrawEmptyMenu(t *testing.T) {
	s := newScreen(t, 40, 10)
	menu := trigger.MenuState{IsOpen: true, Position: overlay.Placement{Top: 3, Left: 0}}

	New().Draw(s, document.New(), menu)

	assert.Equal(t, " No matching commands", rowText(s, 3))
}

func TestMenuRect(t *testing.T) {
	r := New(WithMenuSize(20, 4))
	two := []*palette.Command{{ID: "a", Label: "A"}, {ID: "b", Label: "B"}}
	pos := overlay.Placement{Top: 5, Left: 2}

	tests := []struct {
		name string
		menu trigger.MenuState
		want core.ScreenRect
	}{
		{"closed", trigger.MenuState{Position: pos, Candidates: two}, core.ScreenRect{}},
		{"rows follow candidates", trigger.MenuState{IsOpen: true, Position: pos, Candidates: two}, core.NewScreenRect(5, 2, 7, 22)},
		{"empty keeps one row", trigger.MenuState{IsOpen: true, Position: pos}, core.NewScreenRect(5, 2, 6, 22)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.MenuRect(tt.menu))
		})
	}

	box := r.MenuRect(trigger.MenuState{IsOpen: true, Position: pos, Candidates: two})
	assert.True(t, box.Contains(core.ScreenPos{Row: 6, Col: 21}))
	assert.False(t, box.Contains(core.ScreenPos{Row: 7, Col: 2}))
	assert.False(t, box.Contains(core.ScreenPos{Row: 5, Col: 1}))
}
