package document

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/scribe/internal/engine/surface"
	"github.com/dshills/scribe/internal/renderer/core"
)

// BlockKind is the structural kind of a block.
type BlockKind uint8

const (
	KindParagraph BlockKind = iota
	KindHeading1
	KindHeading2
	KindHeading3
	KindBulletItem
	KindNumberItem
)

// String returns the kind name.
func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindHeading1:
		return "heading1"
	case KindHeading2:
		return "heading2"
	case KindHeading3:
		return "heading3"
	case KindBulletItem:
		return "bullet-item"
	case KindNumberItem:
		return "number-item"
	default:
		return "unknown"
	}
}

// IsListItem reports whether the kind renders inside a list.
func (k BlockKind) IsListItem() bool {
	return k == KindBulletItem || k == KindNumberItem
}

// Style is a set of inline formats.
type Style uint8

const (
	StyleBold Style = 1 << iota
	StyleItalic
	StyleStrikethrough
)

// Has reports whether s contains every format of other.
func (s Style) Has(other Style) bool {
	return s&other == other
}

// Run is a text unit: a span of uniformly styled text inside a block.
type Run struct {
	id       string
	text     string
	style    Style
	block    *Block
	attached bool
}

var _ surface.TextUnit = (*Run)(nil)

func newRun(b *Block, text string, style Style) *Run {
	return &Run{
		id:       uuid.NewString(),
		text:     text,
		style:    style,
		block:    b,
		attached: true,
	}
}

// ID implements surface.TextUnit.
func (r *Run) ID() string { return r.id }

// Attached implements surface.TextUnit.
func (r *Run) Attached() bool { return r.attached }

// Text implements surface.TextUnit.
func (r *Run) Text() string { return r.text }

// Style returns the run's inline formats.
func (r *Run) Style() Style { return r.style }

func (r *Run) len() int { return utf8.RuneCountInString(r.text) }

// Block is a structural unit of the document.
type Block struct {
	id   string
	kind BlockKind
	runs []*Run
}

// ID returns the block identifier.
func (b *Block) ID() string { return b.id }

// Kind returns the block kind.
func (b *Block) Kind() BlockKind { return b.kind }

// Runs returns the block's runs in order.
func (b *Block) Runs() []*Run {
	out := make([]*Run, len(b.runs))
	copy(out, b.runs)
	return out
}

// Text returns the block's plain text.
func (b *Block) Text() string {
	var sb strings.Builder
	for _, r := range b.runs {
		sb.WriteString(r.text)
	}
	return sb.String()
}

func (b *Block) runIndex(r *Run) int {
	for i, x := range b.runs {
		if x == r {
			return i
		}
	}
	return -1
}

type position struct {
	run    *Run
	offset int
}

// Document is an in-memory editable surface.
// It is not safe for concurrent use.
type Document struct {
	blocks   []*Block
	anchor   position
	focus    position
	pending  Style
	revision uint64
	origin   core.ScreenPos
}

var _ surface.Surface = (*Document)(nil)

// Option configures a Document.
type Option func(*Document)

// WithOrigin sets the screen cell of the document's first character.
func WithOrigin(row, col int) Option {
	return func(d *Document) {
		d.origin = core.ScreenPos{Row: row, Col: col}
	}
}

// New creates a document holding one empty paragraph with the caret in it.
func New(opts ...Option) *Document {
	d := &Document{}
	for _, opt := range opts {
		opt(d)
	}
	d.reset()
	return d
}

// reset replaces the content with one empty paragraph.
func (d *Document) reset() {
	for _, b := range d.blocks {
		for _, r := range b.runs {
			detach(r)
		}
	}
	b := newBlock(KindParagraph)
	d.blocks = []*Block{b}
	d.collapse(b.runs[0], 0)
	d.revision++
}

// Clear removes all content. Every existing run is detached.
func (d *Document) Clear() {
	d.reset()
}

func newBlock(kind BlockKind) *Block {
	b := &Block{id: uuid.NewString(), kind: kind}
	b.runs = []*Run{newRun(b, "", 0)}
	return b
}

func detach(r *Run) {
	r.attached = false
	r.block = nil
}

// Blocks returns the document's blocks in order.
func (d *Document) Blocks() []*Block {
	out := make([]*Block, len(d.blocks))
	copy(out, d.blocks)
	return out
}

// Text returns the document's plain text, one line per block.
func (d *Document) Text() string {
	lines := make([]string, len(d.blocks))
	for i, b := range d.blocks {
		lines[i] = b.Text()
	}
	return strings.Join(lines, "\n")
}

// Revision increases on every mutation.
func (d *Document) Revision() uint64 {
	return d.revision
}

// Caret implements surface.Surface.
func (d *Document) Caret() (surface.Caret, bool) {
	if d.focus.run == nil || !d.focus.run.attached {
		return surface.Caret{}, false
	}
	return surface.Caret{
		Unit:      d.focus.run,
		Offset:    d.focus.offset,
		Collapsed: d.anchor == d.focus,
	}, true
}

// CaretBlock returns the block holding the caret.
func (d *Document) CaretBlock() *Block {
	if d.focus.run == nil {
		return nil
	}
	return d.focus.run.block
}

// Selection returns the selected text when the selection lies in one run.
func (d *Document) Selection() string {
	if d.anchor == d.focus || d.anchor.run != d.focus.run {
		return ""
	}
	start, end := ordered(d.anchor.offset, d.focus.offset)
	return string([]rune(d.focus.run.text)[start:end])
}

func (d *Document) blockIndex(b *Block) int {
	for i, x := range d.blocks {
		if x == b {
			return i
		}
	}
	return -1
}

func (d *Document) collapse(r *Run, offset int) {
	d.anchor = position{run: r, offset: offset}
	d.focus = d.anchor
}

// run resolves a text unit to one of this document's attached runs.
func (d *Document) run(unit surface.TextUnit) (*Run, error) {
	r, ok := unit.(*Run)
	if !ok || r == nil || !r.attached || d.blockIndex(r.block) < 0 {
		return nil, surface.ErrDetached
	}
	return r, nil
}

func ordered(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
