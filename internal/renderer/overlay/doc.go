// Package overlay places popup menus relative to an anchor rectangle.
//
// A menu opens Gap cells below its anchor and flips above it when it would
// run past the bottom of the viewport. It is pulled left to stay inside the
// right edge. Placement works in cells, so the same rules serve any surface
// that can report its caret as a core.ScreenRect.
package overlay
