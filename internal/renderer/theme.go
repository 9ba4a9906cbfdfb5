package renderer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/scribe/internal/engine/document"
)

// Theme holds the styles used to draw a document and its palette.
type Theme struct {
	Text     tcell.Style
	Headings [3]tcell.Style
	Marker   tcell.Style

	Menu         tcell.Style
	MenuSelected tcell.Style
	MenuShortcut tcell.Style
	MenuEmpty    tcell.Style

	Status      tcell.Style
	StatusInfo  tcell.Style
	StatusError tcell.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	menu := base.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	return Theme{
		Text: base,
		Headings: [3]tcell.Style{
			base.Bold(true).Foreground(tcell.ColorYellow),
			base.Bold(true).Foreground(tcell.ColorAqua),
			base.Bold(true),
		},
		Marker:       base.Foreground(tcell.ColorGray),
		Menu:         menu,
		MenuSelected: menu.Reverse(true),
		MenuShortcut: menu.Foreground(tcell.ColorSilver),
		MenuEmpty:    menu.Italic(true).Foreground(tcell.ColorSilver),
		Status:       base.Background(tcell.ColorTeal).Foreground(tcell.ColorBlack),
		StatusInfo:   base.Background(tcell.ColorTeal).Foreground(tcell.ColorWhite).Bold(true),
		StatusError:  base.Background(tcell.ColorMaroon).Foreground(tcell.ColorWhite).Bold(true),
	}
}

// BlockStyle returns the base style of a block kind.
func (t Theme) BlockStyle(k document.BlockKind) tcell.Style {
	switch k {
	case document.KindHeading1:
		return t.Headings[0]
	case document.KindHeading2:
		return t.Headings[1]
	case document.KindHeading3:
		return t.Headings[2]
	default:
		return t.Text
	}
}

// RunStyle layers inline formatting over base.
func RunStyle(base tcell.Style, s document.Style) tcell.Style {
	if s.Has(document.StyleBold) {
		base = base.Bold(true)
	}
	if s.Has(document.StyleItalic) {
		base = base.Italic(true)
	}
	if s.Has(document.StyleStrikethrough) {
		base = base.StrikeThrough(true)
	}
	return base
}
