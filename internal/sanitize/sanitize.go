package sanitize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrUnstable is returned by Strict when repeated passes keep changing the
// output.
var ErrUnstable = errors.New("sanitized output did not stabilize")

// maxPasses bounds the passes Strict runs while looking for a fixed point.
const maxPasses = 8

var allowed = map[atom.Atom]bool{
	atom.P:      true,
	atom.B:      true,
	atom.Strong: true,
	atom.I:      true,
	atom.Em:     true,
	atom.S:      true,
	atom.Strike: true,
	atom.H1:     true,
	atom.H2:     true,
	atom.H3:     true,
	atom.Ul:     true,
	atom.Ol:     true,
	atom.Li:     true,
	atom.Br:     true,
}

// dangerous elements are dropped with their content. The raw-text containers
// are here too: their bodies parse as text and would survive as escaped tags.
var dangerous = map[atom.Atom]bool{
	atom.Script:    true,
	atom.Style:     true,
	atom.Iframe:    true,
	atom.Object:    true,
	atom.Embed:     true,
	atom.Noscript:  true,
	atom.Noembed:   true,
	atom.Noframes:  true,
	atom.Textarea:  true,
	atom.Xmp:       true,
	atom.Title:     true,
	atom.Plaintext: true,
}

// markupPattern detects content that already carries tags.
var markupPattern = regexp.MustCompile(`(?i)<[a-z][\s\S]*>`)

// Sanitize returns the allowlisted rendition of markup. Content that cannot
// be parsed or does not settle yields "".
func Sanitize(markup string) string {
	out, err := Strict(markup)
	if err != nil {
		return ""
	}
	return out
}

// Strict is Sanitize with the failure reported.
func Strict(markup string) (string, error) {
	out, err := pass(markup)
	if err != nil {
		return "", err
	}
	// Reparsing can still restructure the output; stop at a fixed point.
	for range maxPasses {
		next, err := pass(out)
		if err != nil {
			return "", err
		}
		if next == out {
			return out, nil
		}
		out = next
	}
	return "", ErrUnstable
}

func pass(markup string) (string, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return "", fmt.Errorf("parse fragment: %w", err)
	}
	var sb strings.Builder
	for _, n := range nodes {
		write(&sb, n)
	}
	return sb.String(), nil
}

func write(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(html.EscapeString(n.Data))
		return
	case html.ElementNode:
	case html.DocumentNode:
		writeChildren(sb, n)
		return
	default:
		return
	}

	a := n.DataAtom
	if a == 0 {
		a = atom.Lookup([]byte(strings.ToLower(n.Data)))
	}
	switch {
	case dangerous[a]:
		return
	case a == atom.Br:
		sb.WriteString("<br>")
	case allowed[a]:
		sb.WriteString("<" + a.String() + ">")
		writeChildren(sb, n)
		sb.WriteString("</" + a.String() + ">")
	default:
		writeChildren(sb, n)
	}
}

func writeChildren(sb *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		write(sb, c)
	}
}

// HasMarkup reports whether s looks like markup rather than plain text.
func HasMarkup(s string) bool {
	return markupPattern.MatchString(s)
}

// PrepareText converts plain text to paragraphs: one per line, with empty
// lines kept as a paragraph holding a line break.
func PrepareText(text string) string {
	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			sb.WriteString("<p><br></p>")
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(html.EscapeString(line))
		sb.WriteString("</p>")
	}
	return sb.String()
}

// Prepare sanitizes content for persistence. Plain text is first converted
// with PrepareText.
func Prepare(content string) string {
	if !HasMarkup(content) {
		content = PrepareText(content)
	}
	return Sanitize(content)
}
