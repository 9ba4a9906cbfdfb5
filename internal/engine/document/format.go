package document

import (
	"fmt"

	"github.com/dshills/scribe/internal/engine/surface"
)

var inlineStyles = map[surface.FormatCommand]Style{
	surface.CmdBold:          StyleBold,
	surface.CmdItalic:        StyleItalic,
	surface.CmdStrikethrough: StyleStrikethrough,
}

var blockValues = map[string]BlockKind{
	surface.BlockParagraph: KindParagraph,
	surface.BlockHeading1:  KindHeading1,
	surface.BlockHeading2:  KindHeading2,
	surface.BlockHeading3:  KindHeading3,
}

// Apply implements surface.FormattingPort.
//
// Inline commands toggle the style of the selected text. With a collapsed
// caret they toggle the style used by the next InsertText instead.
func (d *Document) Apply(cmd surface.FormatCommand, value string) error {
	if d.focus.run == nil || !d.focus.run.attached {
		return surface.ErrNoSelection
	}
	if style, ok := inlineStyles[cmd]; ok {
		return d.toggleInline(style)
	}

	b := d.focus.run.block
	switch cmd {
	case surface.CmdFormatBlock:
		kind, ok := blockValues[value]
		if !ok {
			return fmt.Errorf("%w: %s %q", surface.ErrUnknownCommand, cmd, value)
		}
		b.kind = kind
	case surface.CmdInsertUnorderedList:
		b.kind = toggleKind(b.kind, KindBulletItem)
	case surface.CmdInsertOrderedList:
		b.kind = toggleKind(b.kind, KindNumberItem)
	default:
		return fmt.Errorf("%w: %s", surface.ErrUnknownCommand, cmd)
	}
	d.revision++
	return nil
}

func toggleKind(current, target BlockKind) BlockKind {
	if current == target {
		return KindParagraph
	}
	return target
}

func (d *Document) toggleInline(style Style) error {
	if d.anchor == d.focus {
		d.pending ^= style
		return nil
	}
	if d.anchor.run != d.focus.run {
		return fmt.Errorf("%w: selection spans text units", surface.ErrRangeInvalid)
	}
	r := d.focus.run
	start, end := ordered(d.anchor.offset, d.focus.offset)
	if end < r.len() {
		d.splitRun(r, end)
	}
	target := r
	if start > 0 {
		target = d.splitRun(r, start)
	}
	target.style ^= style
	d.anchor = position{run: target, offset: 0}
	d.focus = position{run: target, offset: target.len()}
	d.revision++
	return nil
}

// IsActive implements surface.FormattingPort.
func (d *Document) IsActive(f surface.Format) bool {
	r := d.focus.run
	if r == nil || !r.attached {
		return false
	}
	style := r.style
	if d.anchor == d.focus {
		style ^= d.pending
	}
	switch f {
	case surface.FormatBold:
		return style.Has(StyleBold)
	case surface.FormatItalic:
		return style.Has(StyleItalic)
	case surface.FormatStrikethrough:
		return style.Has(StyleStrikethrough)
	case surface.FormatHeading1:
		return r.block.kind == KindHeading1
	case surface.FormatHeading2:
		return r.block.kind == KindHeading2
	case surface.FormatHeading3:
		return r.block.kind == KindHeading3
	case surface.FormatBulletedList:
		return r.block.kind == KindBulletItem
	case surface.FormatNumberedList:
		return r.block.kind == KindNumberItem
	default:
		return false
	}
}
