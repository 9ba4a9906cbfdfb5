package trigger

import (
	"github.com/dshills/scribe/internal/engine/surface"
	"github.com/dshills/scribe/internal/input/palette"
	"github.com/dshills/scribe/internal/renderer/overlay"
)

// DefaultTrigger opens the palette.
const DefaultTrigger = '\\'

// CloseReason explains why the palette closed.
type CloseReason string

const (
	ReasonCommit       CloseReason = "commit"
	ReasonEscape       CloseReason = "escape"
	ReasonBlur         CloseReason = "blur"
	ReasonClickOutside CloseReason = "click-outside"
	ReasonStaleMarker  CloseReason = "stale-marker"
	ReasonCaretMoved   CloseReason = "caret-moved"
	ReasonWhitespace   CloseReason = "whitespace"
)

// MenuState is the palette state exposed for rendering.
type MenuState struct {
	IsOpen        bool
	Position      overlay.Placement
	FilterText    string
	SelectedIndex int
	Marker        *surface.Marker
	Candidates    []*palette.Command
}

// Selected returns the highlighted candidate, or nil.
func (s MenuState) Selected() *palette.Command {
	if !s.IsOpen || s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Candidates) {
		return nil
	}
	return s.Candidates[s.SelectedIndex]
}

// Commit describes a committed palette command.
type Commit struct {
	Command *palette.Command
	// Removed is the trigger character and filter text taken out of the buffer.
	Removed string
	// Offset is where the trigger was and where the caret now sits.
	Offset int
}

// CandidateSource supplies the commands matching a filter, best first.
type CandidateSource interface {
	Candidates(query string) []*palette.Command
}
