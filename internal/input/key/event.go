package key

import "unicode"

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is an unmodified printable character.
// Shift alone does not count as a modifier since it changes the character.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) &&
		!e.Modifiers.Has(ModCtrl|ModAlt|ModMeta)
}

// Is reports whether e is the unmodified special key k.
func (e Event) Is(k Key) bool {
	return e.Key == k && !e.Modifiers.Has(ModCtrl|ModAlt|ModMeta)
}

// String returns a short description such as "a", "Enter" or "Ctrl+S".
func (e Event) String() string {
	prefix := ""
	if e.Modifiers.Has(ModCtrl) {
		prefix += "Ctrl+"
	}
	if e.Modifiers.Has(ModAlt) {
		prefix += "Alt+"
	}
	if e.Modifiers.Has(ModMeta) {
		prefix += "Meta+"
	}
	if e.Key == KeyRune {
		if e.Rune == ' ' {
			return prefix + "Space"
		}
		return prefix + string(e.Rune)
	}
	return prefix + e.Key.String()
}
