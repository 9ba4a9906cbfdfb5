package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/scribe/internal/engine/surface"
)

func caret(t *testing.T, d *Document) surface.Caret {
	t.Helper()
	c, ok := d.Caret()
	require.True(t, ok)
	return c
}

func TestNewDocument(t *testing.T) {
	d := New()

	assert.Equal(t, "<p><br></p>", d.Markup())
	c := caret(t, d)
	assert.True(t, c.Collapsed)
	assert.Equal(t, 0, c.Offset)
	assert.True(t, c.Unit.Attached())
	assert.NotEmpty(t, c.Unit.ID())
}

func TestInsertText(t *testing.T) {
	d := New()
	require.NoError(t, d.InsertText("héllo"))

	assert.Equal(t, "<p>héllo</p>", d.Markup())
	assert.Equal(t, 5, caret(t, d).Offset)

	require.NoError(t, d.InsertText("<x>&"))
	assert.Equal(t, "<p>héllo&lt;x&gt;&amp;</p>", d.Markup())
}

func TestInsertTextNewlines(t *testing.T) {
	d := New()
	require.NoError(t, d.InsertText("one\ntwo"))

	assert.Equal(t, "<p>one</p><p>two</p>", d.Markup())
	assert.Equal(t, "one\ntwo", d.Text())
}

func TestReplaceTextAdjustsCaret(t *testing.T) {
	d := New()
	require.NoError(t, d.InsertText("hello world"))
	unit := caret(t, d).Unit

	require.NoError(t, d.ReplaceText(unit, 0, 5, "hi"))
	assert.Equal(t, "hi world", unit.Text())
	assert.Equal(t, 8, caret(t, d).Offset, "caret after the range shifts")

	require.NoError(t, d.MoveCaret(unit, 4))
	require.NoError(t, d.ReplaceText(unit, 2, 6, ""))
	assert.Equal(t, "hild", unit.Text())
	assert.Equal(t, 2, caret(t, d).Offset, "caret inside the range collapses to its start")

	require.NoError(t, d.ReplaceText(unit, 0, 0, ">"))
	assert.Equal(t, 3, caret(t, d).Offset)
}

func TestReplaceTextErrors(t *testing.T) {
	d := New()
	require.NoError(t, d.InsertText("abc"))
	unit := caret(t, d).Unit

	assert.ErrorIs(t, d.ReplaceText(unit, 2, 1, ""), surface.ErrRangeInvalid)
	assert.ErrorIs(t, d.ReplaceText(unit, 0, 4, ""), surface.ErrRangeInvalid)
	assert.ErrorIs(t, d.MoveCaret(unit, 9), surface.ErrOffsetOutOfRange)

	d.Clear()
	assert.False(t, unit.Attached())
	assert.ErrorIs(t, d.ReplaceText(unit, 0, 1, ""), surface.ErrDetached)
	assert.ErrorIs(t, d.Select(unit, 0, 1), surface.ErrDetached)

	other := New()
	assert.ErrorIs(t, d.MoveCaret(caret(t, other).Unit, 0), surface.ErrDetached)
}

func TestApplyInlineSplitsRun(t *testing.T) {
	d := New()
	require.NoError(t, d.InsertText("say hi now"))
	unit := caret(t, d).Unit

	require.NoError(t, d.Select(unit, 4, 6))
	require.NoError(t, d.Apply(surface.CmdBold, ""))

	assert.Equal(t, "<p>say <b>hi</b> now</p>", d.Markup())
	c := caret(t, d)
	assert.False(t, c.Collapsed)
	assert.Equal(t, "hi", c.Unit.Text())
	assert.Equal(t, "hi", d.Selection())
	assert.True(t, d.IsActive(surface.FormatBold))
	assert.True(t, unit.Attached(), "the leading part keeps the original unit")
	assert.Equal(t, "say ", unit.Text())

	require.NoError(t, d.Apply(surface.CmdItalic, ""))
	assert.Equal(t, "<p>say <b><i>hi</i></b> now</p>", d.Markup())
}

func TestApplyInlineCollapsedTogglesPending(t *testing.T) {
	d := New()

	require.NoError(t, d.Apply(surface.CmdBold, ""))
	assert.True(t, d.IsActive(surface.FormatBold))
	require.NoError(t, d.InsertText("x"))

	require.NoError(t, d.Apply(surface.CmdBold, ""))
	assert.False(t, d.IsActive(surface.FormatBold))
	require.NoError(t, d.InsertText("y"))

	assert.Equal(t, "<p><b>x</b>y</p>", d.Markup())
}

func TestApplyBlock(t *testing.T) {
	d := New()
	require.NoError(t, d.InsertText("title"))

	require.NoError(t, d.Apply(surface.CmdFormatBlock, surface.BlockHeading2))
	assert.Equal(t, "<h2>title</h2>", d.Markup())
	assert.True(t, d.IsActive(surface.FormatHeading2))
	assert.False(t, d.IsActive(surface.FormatHeading1))

	require.NoError(t, d.Apply(surface.CmdFormatBlock, surface.BlockParagraph))
	assert.Equal(t, "<p>title</p>", d.Markup())

	assert.ErrorIs(t, d.Apply(surface.CmdFormatBlock, "h9"), surface.ErrUnknownCommand)
	assert.ErrorIs(t, d.Apply("justify", ""), surface.ErrUnknownCommand)
}

func TestLists(t *testing.T) {
	d := New()
	require.NoError(t, d.InsertText("a"))
	require.NoError(t, d.Apply(surface.CmdInsertUnorderedList, ""))
	assert.True(t, d.IsActive(surface.FormatBulletedList))

	require.NoError(t, d.SplitBlock())
	require.NoError(t, d.InsertText("b"))
	assert.Equal(t, "<ul><li>a</li><li>b</li></ul>", d.Markup())

	require.NoError(t, d.SplitBlock())
	require.NoError(t, d.SplitBlock())
	assert.Equal(t, "<ul><li>a</li><li>b</li></ul><p><br></p>", d.Markup(), "enter on an empty item leaves the list")

	require.NoError(t, d.Apply(surface.CmdInsertUnorderedList, ""))
	require.NoError(t, d.Apply(surface.CmdInsertUnorderedList, ""))
	assert.False(t, d.IsActive(surface.FormatBulletedList), "second toggle reverts")
}

func TestNumberedListMarkers(t *testing.T) {
	d := New()
	require.NoError(t, d.Apply(surface.CmdInsertOrderedList, ""))
	require.NoError(t, d.InsertText("a\nb"))

	blocks := d.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, "1. ", d.ListMarker(blocks[0]))
	assert.Equal(t, "2. ", d.ListMarker(blocks[1]))
	assert.Equal(t, "<ol><li>a</li><li>b</li></ol>", d.Markup())
}

func TestBackspace(t *testing.T) {
	d := New()
	require.NoError(t, d.InsertText("ab"))
	require.NoError(t, d.Backspace())
	assert.Equal(t, "a", d.Text())

	require.NoError(t, d.SplitBlock())
	require.NoError(t, d.InsertText("b"))
	d.Home()
	require.NoError(t, d.Backspace())
	assert.Equal(t, "ab", d.Text())
	assert.Len(t, d.Blocks(), 1)
	assert.Equal(t, 1, caret(t, d).Offset)
}

func TestBackspaceRevertsBlock(t *testing.T) {
	d := New()
	require.NoError(t, d.InsertText("x"))
	require.NoError(t, d.Apply(surface.CmdFormatBlock, surface.BlockHeading1))
	d.Home()

	require.NoError(t, d.Backspace())
	assert.Equal(t, "<p>x</p>", d.Markup())
}

func TestCaretRect(t *testing.T) {
	d := New(WithOrigin(2, 3))
	require.NoError(t, d.InsertText("ab"))

	rect, ok := d.CaretRect()
	require.True(t, ok)
	assert.Equal(t, 2, rect.Top)
	assert.Equal(t, 5, rect.Left)
	assert.Equal(t, 3, rect.Bottom)

	require.NoError(t, d.InsertText("\nc"))
	require.NoError(t, d.Apply(surface.CmdInsertUnorderedList, ""))
	rect, ok = d.CaretRect()
	require.True(t, ok)
	assert.Equal(t, 3, rect.Top)
	assert.Equal(t, 3+2+1, rect.Left, "list marker shifts the caret")
}

func TestCaretRectWideCharacters(t *testing.T) {
	d := New()
	require.NoError(t, d.InsertText("日本"))
	require.NoError(t, d.Apply(surface.CmdBold, ""))
	require.NoError(t, d.InsertText("x"))

	rect, ok := d.CaretRect()
	require.True(t, ok)
	assert.Equal(t, 5, rect.Left)
}

func TestMoveLeftRight(t *testing.T) {
	d := New()
	require.NoError(t, d.InsertText("ab\nc"))

	d.Home()
	d.MoveLeft()
	c := caret(t, d)
	assert.Equal(t, "ab", c.Unit.Text())
	assert.Equal(t, 2, c.Offset)

	d.MoveRight()
	c = caret(t, d)
	assert.Equal(t, "c", c.Unit.Text())
	assert.Equal(t, 0, c.Offset)

	d.End()
	assert.Equal(t, 1, caret(t, d).Offset)
}

func TestNormalizeDetachesAbsorbedRuns(t *testing.T) {
	d := New()
	require.NoError(t, d.InsertText("abc"))
	unit := caret(t, d).Unit
	require.NoError(t, d.Select(unit, 1, 2))
	require.NoError(t, d.Apply(surface.CmdBold, ""))
	middle := caret(t, d).Unit
	require.NoError(t, d.Apply(surface.CmdBold, ""))

	d.Normalize()

	assert.False(t, middle.Attached())
	assert.True(t, unit.Attached())
	assert.Equal(t, "abc", unit.Text())
	c := caret(t, d)
	assert.Equal(t, unit.ID(), c.Unit.ID())
	assert.Equal(t, 2, c.Offset)
}

func TestLoad(t *testing.T) {
	d := New()
	old := caret(t, d).Unit

	markup := "<h1>T</h1><p>x <b>y</b></p><ul><li>a</li></ul><ol><li>n</li></ol>"
	require.NoError(t, d.Load(markup))

	assert.Equal(t, markup, d.Markup())
	assert.False(t, old.Attached())
	c := caret(t, d)
	assert.Equal(t, "T", c.Unit.Text())
	assert.Equal(t, 0, c.Offset)
}

func TestLoadLooseText(t *testing.T) {
	d := New()
	require.NoError(t, d.Load("plain <em>text</em>"))

	assert.Equal(t, "<p>plain <i>text</i></p>", d.Markup())
	require.NoError(t, d.Load(""))
	assert.Equal(t, "<p><br></p>", d.Markup())
}

func TestRevision(t *testing.T) {
	d := New()
	before := d.Revision()
	require.NoError(t, d.InsertText("a"))
	assert.Greater(t, d.Revision(), before)
}
