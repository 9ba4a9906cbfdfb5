// Package event carries the authoring engine's notifications to outside
// observers such as autosave, the palette view and the toolbar.
//
// Delivery is synchronous: Publish returns after every matching handler has
// run, so observers always see the fully post-mutation state.
//
// # Event Topics
//
// Topics use dot notation:
//
//	buffer.changed       - the engine mutated the surface
//	palette.opened       - the command palette opened
//	palette.closed       - the palette closed without committing
//	palette.committed    - a palette command was committed
//	document.saved       - sanitized content was persisted
//	document.save_failed - persistence rejected the content
//
// # Wildcard Patterns
//
//	palette.*  - matches every palette topic (single segment)
//	*          - matches every topic
package event
