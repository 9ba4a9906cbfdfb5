package surface

import (
	"errors"
	"unicode/utf8"

	"github.com/dshills/scribe/internal/renderer/core"
)

// Errors returned by Surface implementations.
var (
	ErrDetached         = errors.New("text unit detached")
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrNoSelection      = errors.New("no selection")
	ErrUnknownCommand   = errors.New("unknown format command")
)

// TextUnit is an opaque handle to a text-bearing node of the surface.
type TextUnit interface {
	// ID identifies the unit for as long as it exists.
	ID() string

	// Attached reports whether the unit is still part of the surface.
	Attached() bool

	// Text returns the unit's current content.
	Text() string
}

// Caret is the surface's caret or selection state.
type Caret struct {
	// Unit is the text unit holding the caret focus.
	Unit TextUnit
	// Offset is the focus offset in Unit.
	Offset int
	// Collapsed is false when a non-empty selection is active.
	Collapsed bool
}

// Surface is the live, externally mutable editing region.
type Surface interface {
	FormattingPort

	// Caret returns the current caret. ok is false when the caret is not
	// inside a text unit.
	Caret() (caret Caret, ok bool)

	// ReplaceText replaces the characters [start, end) of unit with text.
	ReplaceText(unit TextUnit, start, end int, text string) error

	// Select selects the characters [start, end) of unit.
	Select(unit TextUnit, start, end int) error

	// MoveCaret collapses the selection at offset in unit.
	MoveCaret(unit TextUnit, offset int) error

	// CaretRect returns the caret's screen rectangle.
	CaretRect() (core.ScreenRect, bool)

	// Markup returns the current content as markup.
	Markup() string
}

// Len returns the length of unit in characters.
func Len(unit TextUnit) int {
	return utf8.RuneCountInString(unit.Text())
}

// SameUnit reports whether a and b refer to the same text unit.
func SameUnit(a, b TextUnit) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID() == b.ID()
}
