package statusline

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/scribe/internal/engine/surface"
	"github.com/dshills/scribe/internal/renderer"
)

func render(t *testing.T, s *StatusLine, width int) (string, tcell.Style) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(width, 1)

	s.Render(screen, 0)

	var sb strings.Builder
	for x := range width {
		r, _, _, _ := screen.GetContent(x, 0) //nolint:staticcheck // GetContent is the correct API
		sb.WriteRune(r)
	}
	_, _, style, _ := screen.GetContent(width-1, 0) //nolint:staticcheck // GetContent is the correct API
	return strings.TrimRight(sb.String(), " "), style
}

func TestStatusBar(t *testing.T) {
	theme := renderer.DefaultTheme()
	s := New(theme)
	s.SetName("notes")
	s.SetModified(true)
	s.SetFormats([]surface.Format{surface.FormatBold, surface.FormatHeading1})
	s.SetPosition(1, 4)

	text, style := render(t, s, 50)

	assert.True(t, strings.HasPrefix(text, " BOLD H1  notes [+]"), text)
	assert.True(t, strings.HasSuffix(text, "Blk 2, Col 5"), text)
	assert.Equal(t, theme.Status, style)
}

func TestStatusBarDefaults(t *testing.T) {
	text, _ := render(t, New(renderer.DefaultTheme()), 40)
	assert.True(t, strings.HasPrefix(text, " TEXT  [Untitled]"), text)
}

func TestMessage(t *testing.T) {
	theme := renderer.DefaultTheme()
	s := New(theme)
	s.SetMessage("save failed", MessageError)

	text, style := render(t, s, 30)
	assert.Equal(t, " save failed", text)
	assert.Equal(t, theme.StatusError, style)

	s.ClearMessage()
	text, _ = render(t, s, 30)
	assert.True(t, strings.HasPrefix(text, " TEXT "), text)
}
