package document

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var styleTags = []struct {
	style Style
	tag   string
}{
	{StyleBold, "b"},
	{StyleItalic, "i"},
	{StyleStrikethrough, "s"},
}

// Markup implements surface.Surface. Consecutive list items of one kind are
// grouped into a single list and empty blocks hold a line break.
func (d *Document) Markup() string {
	var sb strings.Builder
	for i := 0; i < len(d.blocks); {
		b := d.blocks[i]
		if !b.kind.IsListItem() {
			tag := blockTag(b.kind)
			sb.WriteString("<" + tag + ">")
			writeRuns(&sb, b)
			sb.WriteString("</" + tag + ">")
			i++
			continue
		}
		list := "ul"
		if b.kind == KindNumberItem {
			list = "ol"
		}
		sb.WriteString("<" + list + ">")
		for ; i < len(d.blocks) && d.blocks[i].kind == b.kind; i++ {
			sb.WriteString("<li>")
			writeRuns(&sb, d.blocks[i])
			sb.WriteString("</li>")
		}
		sb.WriteString("</" + list + ">")
	}
	return sb.String()
}

func blockTag(k BlockKind) string {
	switch k {
	case KindHeading1:
		return "h1"
	case KindHeading2:
		return "h2"
	case KindHeading3:
		return "h3"
	default:
		return "p"
	}
}

func writeRuns(sb *strings.Builder, b *Block) {
	if b.Text() == "" {
		sb.WriteString("<br>")
		return
	}
	for _, r := range b.runs {
		if r.text == "" {
			continue
		}
		for _, st := range styleTags {
			if r.style.Has(st.style) {
				sb.WriteString("<" + st.tag + ">")
			}
		}
		sb.WriteString(html.EscapeString(r.text))
		for i := len(styleTags) - 1; i >= 0; i-- {
			if r.style.Has(styleTags[i].style) {
				sb.WriteString("</" + styleTags[i].tag + ">")
			}
		}
	}
}

// Load replaces the content with the given markup. Every existing run is
// detached and the caret moves to the start of the document. Unknown
// elements contribute their text.
func (d *Document) Load(markup string) error {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return fmt.Errorf("parse markup: %w", err)
	}

	l := &loader{}
	for _, n := range nodes {
		l.walk(n, 0)
	}
	l.endBlock()
	d.reset()
	if len(l.blocks) > 0 {
		detach(d.blocks[0].runs[0])
		d.blocks = l.blocks
		d.collapse(d.blocks[0].runs[0], 0)
	}
	return nil
}

type loader struct {
	blocks []*Block
	open   *Block
	list   BlockKind
}

func (l *loader) startBlock(kind BlockKind) *Block {
	b := &Block{id: uuid.NewString(), kind: kind}
	l.blocks = append(l.blocks, b)
	l.open = b
	return b
}

func (l *loader) endBlock() {
	if l.open != nil && len(l.open.runs) == 0 {
		l.open.runs = []*Run{newRun(l.open, "", 0)}
	}
	l.open = nil
}

func (l *loader) walk(n *html.Node, style Style) {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" && l.open == nil {
			return
		}
		if l.open == nil {
			l.startBlock(KindParagraph)
		}
		l.open.runs = append(l.open.runs, newRun(l.open, n.Data, style))
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.P, atom.Div:
		l.block(n, KindParagraph, style)
	case atom.H1:
		l.block(n, KindHeading1, style)
	case atom.H2:
		l.block(n, KindHeading2, style)
	case atom.H3:
		l.block(n, KindHeading3, style)
	case atom.Ul:
		l.listBlock(n, KindBulletItem, style)
	case atom.Ol:
		l.listBlock(n, KindNumberItem, style)
	case atom.Li:
		kind := l.list
		if kind == 0 {
			kind = KindBulletItem
		}
		l.block(n, kind, style)
	case atom.B, atom.Strong:
		l.children(n, style|StyleBold)
	case atom.I, atom.Em:
		l.children(n, style|StyleItalic)
	case atom.S, atom.Strike, atom.Del:
		l.children(n, style|StyleStrikethrough)
	case atom.Br:
	default:
		l.children(n, style)
	}
}

func (l *loader) block(n *html.Node, kind BlockKind, style Style) {
	l.endBlock()
	l.startBlock(kind)
	l.children(n, style)
	l.endBlock()
}

func (l *loader) listBlock(n *html.Node, kind BlockKind, style Style) {
	l.endBlock()
	saved := l.list
	l.list = kind
	l.children(n, style)
	l.list = saved
}

func (l *loader) children(n *html.Node, style Style) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		l.walk(c, style)
	}
}
