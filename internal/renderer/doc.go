// Package renderer draws a document and its command palette onto a
// terminal canvas.
//
// The layout mirrors the document's own geometry: each block occupies one
// row starting at the document origin, list items are prefixed with their
// marker and every character takes one cell. The palette menu is drawn at
// the placement computed by the trigger machine.
//
//	┌───────────────────────────────┐
//	│ Renderer                      │
//	│   blocks ─> rows              │
//	│   runs   ─> styled cells      │
//	│   menu   ─> overlay box       │
//	├───────────────────────────────┤
//	│ Canvas (tcell.Screen)         │
//	└───────────────────────────────┘
//
// Usage:
//
//	screen, _ := tcell.NewScreen()
//	r := renderer.New(renderer.WithMenuSize(32, 10))
//	screen.Clear()
//	if pos, ok := r.Draw(screen, doc, ed.Menu()); ok {
//		screen.ShowCursor(pos.Col, pos.Row)
//	}
//	screen.Show()
package renderer
