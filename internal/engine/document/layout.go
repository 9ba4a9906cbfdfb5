package document

import (
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/scribe/internal/renderer/core"
)

// ListMarker returns the prefix drawn before a list item, or "" for other
// blocks. Numbered items count from the start of their run of siblings.
func (d *Document) ListMarker(b *Block) string {
	switch b.kind {
	case KindBulletItem:
		return "• "
	case KindNumberItem:
		n := 1
		for i := d.blockIndex(b) - 1; i >= 0 && d.blocks[i].kind == KindNumberItem; i-- {
			n++
		}
		return strconv.Itoa(n) + ". "
	default:
		return ""
	}
}

// Origin returns the screen cell of the document's first character.
func (d *Document) Origin() core.ScreenPos {
	return d.origin
}

// CaretRect implements surface.Surface. Each block occupies one row and
// characters take their terminal cell width.
func (d *Document) CaretRect() (core.ScreenRect, bool) {
	r := d.focus.run
	if r == nil || !r.attached {
		return core.ScreenRect{}, false
	}
	b := r.block
	col := runewidth.StringWidth(d.ListMarker(b))
	for _, x := range b.runs {
		if x == r {
			break
		}
		col += runewidth.StringWidth(x.text)
	}
	col += runewidth.StringWidth(string([]rune(r.text)[:d.focus.offset]))

	row := d.origin.Row + d.blockIndex(b)
	left := d.origin.Col + col
	return core.NewScreenRect(row, left, row+1, left+1), true
}
