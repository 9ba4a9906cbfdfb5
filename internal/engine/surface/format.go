package surface

// FormatCommand names an operation accepted by a FormattingPort.
type FormatCommand string

const (
	// CmdBold toggles bold on the selection.
	CmdBold FormatCommand = "bold"
	// CmdItalic toggles italic on the selection.
	CmdItalic FormatCommand = "italic"
	// CmdStrikethrough toggles strikethrough on the selection.
	CmdStrikethrough FormatCommand = "strikethrough"
	// CmdFormatBlock converts the caret's block. The value names the block
	// kind ("p", "h1", "h2", "h3").
	CmdFormatBlock FormatCommand = "formatBlock"
	// CmdInsertUnorderedList toggles the caret's block into a bulleted list item.
	CmdInsertUnorderedList FormatCommand = "insertUnorderedList"
	// CmdInsertOrderedList toggles the caret's block into a numbered list item.
	CmdInsertOrderedList FormatCommand = "insertOrderedList"
)

// Block values accepted by CmdFormatBlock.
const (
	BlockParagraph = "p"
	BlockHeading1  = "h1"
	BlockHeading2  = "h2"
	BlockHeading3  = "h3"
)

// Format is a formatting state that can be active at the caret.
type Format uint8

const (
	FormatBold Format = iota
	FormatItalic
	FormatStrikethrough
	FormatHeading1
	FormatHeading2
	FormatHeading3
	FormatBulletedList
	FormatNumberedList
)

// Formats lists every reportable format in toolbar order.
var Formats = []Format{
	FormatBold,
	FormatItalic,
	FormatStrikethrough,
	FormatHeading1,
	FormatHeading2,
	FormatHeading3,
	FormatBulletedList,
	FormatNumberedList,
}

// String returns the toolbar name of the format.
func (f Format) String() string {
	switch f {
	case FormatBold:
		return "bold"
	case FormatItalic:
		return "italic"
	case FormatStrikethrough:
		return "strikethrough"
	case FormatHeading1:
		return "h1"
	case FormatHeading2:
		return "h2"
	case FormatHeading3:
		return "h3"
	case FormatBulletedList:
		return "bulleted-list"
	case FormatNumberedList:
		return "numbered-list"
	default:
		return "unknown"
	}
}

// FormattingPort applies named formatting operations and reports which
// formats are active at the caret.
type FormattingPort interface {
	// Apply runs cmd against the current selection or caret block.
	// value is only meaningful for CmdFormatBlock.
	Apply(cmd FormatCommand, value string) error

	// IsActive reports whether f applies at the caret.
	IsActive(f Format) bool
}

// ActiveFormats returns the formats active at the caret, in Formats order.
func ActiveFormats(port FormattingPort) []Format {
	active := make([]Format, 0, len(Formats))
	for _, f := range Formats {
		if port.IsActive(f) {
			active = append(active, f)
		}
	}
	return active
}
