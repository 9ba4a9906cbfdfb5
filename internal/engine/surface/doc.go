// Package surface defines the editable surface the authoring engine operates
// on.
//
// The engine never owns the text buffer. It reads and mutates it through the
// Surface interface, identifies positions with Markers over opaque TextUnit
// handles, and applies formatting through a FormattingPort. Any buffer
// abstraction (a DOM-like block tree, a rope, a string with a cursor) can back
// the engine by implementing these interfaces.
//
// Offsets are character (rune) offsets into a text unit.
//
// # Reentrancy
//
// All engine components share one Guard. While it is held, change
// notifications caused by the engine's own mutation are ignored.
package surface
