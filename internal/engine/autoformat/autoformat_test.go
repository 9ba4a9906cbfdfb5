package autoformat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dshills/scribe/internal/engine/document"
	"github.com/dshills/scribe/internal/engine/surface"
)

// typeText inserts s one character at a time, letting the autoformatter see
// every intermediate state.
func typeText(t *testing.T, d *document.Document, a *Autoformatter, s string) []Rewrite {
	t.Helper()
	var fired []Rewrite
	for _, r := range s {
		require.NoError(t, d.InsertText(string(r)))
		if rw, ok := a.HandleChange(); ok {
			fired = append(fired, rw)
		}
	}
	return fired
}

func TestInlineShorthand(t *testing.T) {
	tests := []struct {
		name   string
		typed  string
		markup string
		rule   string
	}{
		{"bold", "**bold**", "<p><b>bold</b></p>", "bold"},
		{"strikethrough", "~~gone~~", "<p><s>gone</s></p>", "strikethrough"},
		{"italic", "*it*", "<p><i>it</i></p>", "italic"},
		{"keeps surrounding text", "say **hi**", "<p>say <b>hi</b></p>", "bold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := document.New()
			a := New(d, nil)

			fired := typeText(t, d, a, tt.typed)

			require.NotEmpty(t, fired)
			last := fired[len(fired)-1]
			assert.Equal(t, KindInline, last.Kind)
			assert.Equal(t, tt.rule, last.Rule)
			assert.Equal(t, tt.markup, d.Markup())
		})
	}
}

func TestBoldCaretAfterSpan(t *testing.T) {
	d := document.New()
	a := New(d, nil)

	fired := typeText(t, d, a, "**bold**")
	require.Len(t, fired, 1, "partial delimiters never fire")
	assert.Equal(t, 4, fired[0].Consumed)

	c, ok := d.Caret()
	require.True(t, ok)
	assert.True(t, c.Collapsed)
	assert.Equal(t, "bold", c.Unit.Text())
	assert.Equal(t, 4, c.Offset)
	assert.True(t, d.IsActive(surface.FormatBold))
}

func TestInlineShorthandLeftLiteral(t *testing.T) {
	tests := []struct {
		name  string
		typed string
	}{
		{"empty bold", "****"},
		{"blank bold", "**  **"},
		{"blank italic", "* *"},
		{"blank strike", "~~ ~~"},
		{"unclosed bold", "**bold*"},
		{"lone delimiter", "a*"},
		{"single tilde", "~x~"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := document.New()
			a := New(d, nil)

			fired := typeText(t, d, a, tt.typed)

			assert.Empty(t, fired)
			assert.Equal(t, tt.typed, d.Text())
		})
	}
}

func TestBlockShorthand(t *testing.T) {
	tests := []struct {
		name   string
		typed  string
		markup string
		active surface.Format
	}{
		{"heading 1", "# ", "<h1><br></h1>", surface.FormatHeading1},
		{"heading 2", "## Title", "<h2>Title</h2>", surface.FormatHeading2},
		{"heading 3", "### x", "<h3>x</h3>", surface.FormatHeading3},
		{"bullet", "- item", "<ul><li>item</li></ul>", surface.FormatBulletedList},
		{"numbered", "1. first", "<ol><li>first</li></ol>", surface.FormatNumberedList},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := document.New()
			a := New(d, nil)

			fired := typeText(t, d, a, tt.typed)

			require.Len(t, fired, 1)
			assert.Equal(t, KindBlock, fired[0].Kind)
			assert.Equal(t, tt.markup, d.Markup())
			assert.True(t, d.IsActive(tt.active))
		})
	}
}

func TestHeadingConsumesPrefixOnly(t *testing.T) {
	d := document.New()
	a := New(d, nil)

	fired := typeText(t, d, a, "# ")
	require.Len(t, fired, 1)
	assert.Equal(t, 2, fired[0].Consumed)
	assert.Equal(t, "", d.Text())

	c, ok := d.Caret()
	require.True(t, ok)
	assert.Equal(t, 0, c.Offset)
}

func TestBlockShorthandBeforeExistingText(t *testing.T) {
	d := document.New()
	a := New(d, nil)
	require.NoError(t, d.InsertText("Title"))
	d.Home()
	require.NoError(t, d.InsertText("# "))

	_, ok := a.HandleChange()
	require.True(t, ok)
	assert.Equal(t, "<h1>Title</h1>", d.Markup())
}

func TestBlockShorthandLeftLiteral(t *testing.T) {
	for _, typed := range []string{"#### ", "2. ", "-- ", "x# ", "#x "} {
		t.Run(typed, func(t *testing.T) {
			d := document.New()
			a := New(d, nil)

			assert.Empty(t, typeText(t, d, a, typed))
			assert.Equal(t, typed, d.Text())
		})
	}
}

func TestSkipsWithSelection(t *testing.T) {
	d := document.New()
	a := New(d, nil)
	require.NoError(t, d.InsertText("**x**"))
	c, _ := d.Caret()
	require.NoError(t, d.Select(c.Unit, 0, 5))

	_, ok := a.HandleChange()
	assert.False(t, ok)
	assert.Equal(t, "**x**", d.Text())
}

func TestGuardSuppressesRewrite(t *testing.T) {
	d := document.New()
	guard := &surface.Guard{}
	a := New(d, guard)
	require.NoError(t, d.InsertText("**x**"))

	ran := guard.Do(func() {
		_, ok := a.HandleChange()
		assert.False(t, ok)
	})
	require.True(t, ran)
	assert.Equal(t, "**x**", d.Text())
	assert.False(t, guard.Held())

	_, ok := a.HandleChange()
	assert.True(t, ok)
	assert.False(t, guard.Held(), "guard released after rewrite")
}

func TestOnRewrite(t *testing.T) {
	d := document.New()
	var got []Rewrite
	a := New(d, nil, OnRewrite(func(rw Rewrite) { got = append(got, rw) }))

	typeText(t, d, a, "- a")

	require.Len(t, got, 1)
	assert.Equal(t, "bulleted-list", got[0].Rule)
}

type failingSurface struct {
	*document.Document
}

func (failingSurface) Apply(surface.FormatCommand, string) error {
	return errors.New("boom")
}

func TestFailureIsLoggedNotRaised(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	d := document.New()
	s := failingSurface{d}
	a := New(s, nil, WithLogger(zap.New(core)))
	require.NoError(t, d.InsertText("*x*"))

	_, ok := a.HandleChange()

	assert.False(t, ok)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "inline shorthand failed", entry.Message)
	assert.Equal(t, "italic", entry.ContextMap()["rule"])
}

func TestCustomRules(t *testing.T) {
	d := document.New()
	a := New(d, nil,
		WithBlockRules(),
		WithInlineRules(InlineRule{Name: "bold", Delimiter: "__", Command: surface.CmdBold}),
	)

	typeText(t, d, a, "# __u__")
	assert.Equal(t, "<p># <b>u</b></p>", d.Markup())
}
