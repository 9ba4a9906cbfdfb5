package document

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/scribe/internal/engine/surface"
)

// ReplaceText implements surface.Surface.
func (d *Document) ReplaceText(unit surface.TextUnit, start, end int, text string) error {
	r, err := d.run(unit)
	if err != nil {
		return err
	}
	runes := []rune(r.text)
	if start < 0 || end > len(runes) || start > end {
		return fmt.Errorf("%w: [%d, %d) in unit of length %d", surface.ErrRangeInvalid, start, end, len(runes))
	}
	r.text = string(runes[:start]) + text + string(runes[end:])
	delta := utf8.RuneCountInString(text) - (end - start)
	d.anchor = adjust(d.anchor, r, start, end, delta)
	d.focus = adjust(d.focus, r, start, end, delta)
	d.revision++
	return nil
}

// adjust moves p to account for a replacement of [start, end) in r.
func adjust(p position, r *Run, start, end, delta int) position {
	if p.run != r {
		return p
	}
	switch {
	case p.offset > end:
		p.offset += delta
	case p.offset > start:
		p.offset = start
	}
	return p
}

// Select implements surface.Surface.
func (d *Document) Select(unit surface.TextUnit, start, end int) error {
	r, err := d.run(unit)
	if err != nil {
		return err
	}
	n := r.len()
	if start < 0 || end < 0 || start > n || end > n {
		return fmt.Errorf("%w: [%d, %d) in unit of length %d", surface.ErrRangeInvalid, start, end, n)
	}
	d.anchor = position{run: r, offset: start}
	d.focus = position{run: r, offset: end}
	d.pending = 0
	return nil
}

// MoveCaret implements surface.Surface.
func (d *Document) MoveCaret(unit surface.TextUnit, offset int) error {
	r, err := d.run(unit)
	if err != nil {
		return err
	}
	if offset < 0 || offset > r.len() {
		return fmt.Errorf("%w: %d in unit of length %d", surface.ErrOffsetOutOfRange, offset, r.len())
	}
	d.collapse(r, offset)
	d.pending = 0
	return nil
}

// InsertText types text at the caret, replacing any selection. Newlines
// split the caret's block.
func (d *Document) InsertText(text string) error {
	if d.focus.run == nil {
		return surface.ErrDetached
	}
	if err := d.deleteSelection(); err != nil {
		return err
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			if err := d.SplitBlock(); err != nil {
				return err
			}
		}
		if line != "" {
			d.insertAtCaret(line)
		}
	}
	return nil
}

func (d *Document) insertAtCaret(text string) {
	r, off := d.focus.run, d.focus.offset
	n := utf8.RuneCountInString(text)
	if d.pending != 0 {
		styled := d.insertRun(r, off, text, r.style^d.pending)
		d.pending = 0
		d.collapse(styled, n)
		d.revision++
		return
	}
	runes := []rune(r.text)
	r.text = string(runes[:off]) + text + string(runes[off:])
	d.collapse(r, off+n)
	d.revision++
}

// insertRun places a new run holding text at offset in r, splitting r when
// the offset falls inside it.
func (d *Document) insertRun(r *Run, offset int, text string, style Style) *Run {
	b := r.block
	switch {
	case r.text == "":
		r.text = text
		r.style = style
		return r
	case offset == 0:
		nr := newRun(b, text, style)
		b.runs = insertAt(b.runs, b.runIndex(r), nr)
		return nr
	case offset < r.len():
		d.splitRun(r, offset)
	}
	nr := newRun(b, text, style)
	b.runs = insertAt(b.runs, b.runIndex(r)+1, nr)
	return nr
}

// splitRun cuts r at offset. r keeps the leading text and the returned run,
// inserted right after r, takes the rest. Positions past the cut follow the
// text into the new run.
func (d *Document) splitRun(r *Run, offset int) *Run {
	runes := []rune(r.text)
	right := newRun(r.block, string(runes[offset:]), r.style)
	r.text = string(runes[:offset])
	r.block.runs = insertAt(r.block.runs, r.block.runIndex(r)+1, right)
	move := func(p position) position {
		if p.run == r && p.offset > offset {
			return position{run: right, offset: p.offset - offset}
		}
		return p
	}
	d.anchor = move(d.anchor)
	d.focus = move(d.focus)
	return right
}

func (d *Document) deleteSelection() error {
	if d.anchor == d.focus {
		return nil
	}
	if d.anchor.run != d.focus.run {
		return fmt.Errorf("%w: selection spans text units", surface.ErrRangeInvalid)
	}
	start, end := ordered(d.anchor.offset, d.focus.offset)
	r := d.focus.run
	if err := d.ReplaceText(r, start, end, ""); err != nil {
		return err
	}
	d.collapse(r, start)
	return nil
}

// Backspace deletes the selection or the character before the caret. At the
// start of a list item or heading it first reverts the block to a paragraph;
// at the start of a paragraph it merges the block into the previous one.
func (d *Document) Backspace() error {
	if d.focus.run == nil {
		return surface.ErrDetached
	}
	if d.anchor != d.focus {
		return d.deleteSelection()
	}
	r, off := d.focus.run, d.focus.offset
	b := r.block
	if off > 0 {
		if err := d.ReplaceText(r, off-1, off, ""); err != nil {
			return err
		}
		if r.text == "" && len(b.runs) > 1 {
			d.dropRun(r)
		}
		return nil
	}
	if i := b.runIndex(r); i > 0 {
		prev := b.runs[i-1]
		d.collapse(prev, prev.len())
		return d.Backspace()
	}
	if b.kind != KindParagraph {
		b.kind = KindParagraph
		d.revision++
		return nil
	}
	bi := d.blockIndex(b)
	if bi == 0 {
		return nil
	}
	d.mergeInto(d.blocks[bi-1], b)
	return nil
}

// dropRun removes an empty run and parks the caret at the same logical place.
func (d *Document) dropRun(r *Run) {
	b := r.block
	i := b.runIndex(r)
	b.runs = append(b.runs[:i], b.runs[i+1:]...)
	detach(r)
	if i > 0 {
		prev := b.runs[i-1]
		d.collapse(prev, prev.len())
	} else {
		d.collapse(b.runs[0], 0)
	}
}

// mergeInto appends src's runs to dst and removes src.
func (d *Document) mergeInto(dst, src *Block) {
	last := dst.runs[len(dst.runs)-1]
	caret := position{run: last, offset: last.len()}

	if dst.Text() == "" {
		for _, r := range dst.runs {
			detach(r)
		}
		dst.runs = nil
		caret = position{run: src.runs[0], offset: 0}
	} else if src.Text() == "" {
		for _, r := range src.runs {
			detach(r)
		}
		src.runs = nil
	}
	for _, r := range src.runs {
		r.block = dst
	}
	dst.runs = append(dst.runs, src.runs...)

	bi := d.blockIndex(src)
	d.blocks = append(d.blocks[:bi], d.blocks[bi+1:]...)
	d.anchor, d.focus = caret, caret
	d.revision++
}

// SplitBlock breaks the caret's block in two, moving the caret to the start
// of the new block. Enter on an empty list item leaves the list instead.
func (d *Document) SplitBlock() error {
	if d.focus.run == nil {
		return surface.ErrDetached
	}
	if err := d.deleteSelection(); err != nil {
		return err
	}
	r, off := d.focus.run, d.focus.offset
	b := r.block
	if b.kind.IsListItem() && b.Text() == "" {
		b.kind = KindParagraph
		d.revision++
		return nil
	}
	if off < r.len() {
		d.splitRun(r, off)
	}
	i := b.runIndex(r)
	moved := append([]*Run(nil), b.runs[i+1:]...)
	b.runs = b.runs[:i+1]

	nb := &Block{id: uuid.NewString(), kind: nextKind(b.kind)}
	if len(moved) == 0 {
		nb.runs = []*Run{newRun(nb, "", r.style)}
	} else {
		for _, m := range moved {
			m.block = nb
		}
		nb.runs = moved
	}
	bi := d.blockIndex(b)
	d.blocks = insertAt(d.blocks, bi+1, nb)
	d.collapse(nb.runs[0], 0)
	d.revision++
	return nil
}

func nextKind(k BlockKind) BlockKind {
	if k.IsListItem() {
		return k
	}
	return KindParagraph
}

// MoveLeft moves the caret one character left, crossing run and block
// boundaries.
func (d *Document) MoveLeft() {
	r, off := d.focus.run, d.focus.offset
	if r == nil {
		return
	}
	d.pending = 0
	if d.anchor != d.focus {
		d.collapse(r, off)
		return
	}
	if off > 0 {
		d.collapse(r, off-1)
		return
	}
	b := r.block
	if i := b.runIndex(r); i > 0 {
		prev := b.runs[i-1]
		d.collapse(prev, max(prev.len()-1, 0))
		return
	}
	if bi := d.blockIndex(b); bi > 0 {
		pb := d.blocks[bi-1]
		last := pb.runs[len(pb.runs)-1]
		d.collapse(last, last.len())
	}
}

// MoveRight moves the caret one character right, crossing run and block
// boundaries.
func (d *Document) MoveRight() {
	r, off := d.focus.run, d.focus.offset
	if r == nil {
		return
	}
	d.pending = 0
	if d.anchor != d.focus {
		d.collapse(r, off)
		return
	}
	if off < r.len() {
		d.collapse(r, off+1)
		return
	}
	b := r.block
	if i := b.runIndex(r); i < len(b.runs)-1 {
		d.collapse(b.runs[i+1], min(1, b.runs[i+1].len()))
		return
	}
	if bi := d.blockIndex(b); bi < len(d.blocks)-1 {
		d.collapse(d.blocks[bi+1].runs[0], 0)
	}
}

// Home moves the caret to the start of its block.
func (d *Document) Home() {
	if b := d.CaretBlock(); b != nil {
		d.collapse(b.runs[0], 0)
		d.pending = 0
	}
}

// End moves the caret to the end of its block.
func (d *Document) End() {
	if b := d.CaretBlock(); b != nil {
		last := b.runs[len(b.runs)-1]
		d.collapse(last, last.len())
		d.pending = 0
	}
}

// Normalize merges adjacent runs of equal style and drops empty runs, the
// way DOM normalization does. Runs absorbed by a neighbour are detached.
func (d *Document) Normalize() {
	for _, b := range d.blocks {
		kept := b.runs[:0]
		for _, r := range b.runs {
			if len(kept) > 0 {
				prev := kept[len(kept)-1]
				if r.text == "" || prev.style == r.style {
					d.absorb(prev, r)
					continue
				}
			}
			kept = append(kept, r)
		}
		b.runs = kept
		if first := b.runs[0]; first.text == "" && len(b.runs) > 1 {
			d.absorbForward(first, b.runs[1])
			b.runs = b.runs[1:]
		}
	}
	d.revision++
}

func (d *Document) absorb(into, r *Run) {
	base := into.len()
	into.text += r.text
	move := func(p position) position {
		if p.run == r {
			return position{run: into, offset: base + p.offset}
		}
		return p
	}
	d.anchor = move(d.anchor)
	d.focus = move(d.focus)
	detach(r)
}

func (d *Document) absorbForward(empty, next *Run) {
	move := func(p position) position {
		if p.run == empty {
			return position{run: next, offset: 0}
		}
		return p
	}
	d.anchor = move(d.anchor)
	d.focus = move(d.focus)
	detach(empty)
}

func insertAt[T any](s []T, i int, v T) []T {
	s = append(s, v)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}
