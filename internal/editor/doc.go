// Package editor wires the authoring engine around a single buffer.
//
// An Editor owns the shared mutation guard and routes every key through the
// command palette state machine first. Keys the palette does not consume
// edit the buffer, after which the palette revalidates its marker and the
// autoformatter inspects the caret for shorthand.
//
//	key ──> trigger.Machine ──(not consumed)──> Buffer edit
//	                                              │
//	              trigger.Machine.AfterInput <────┤
//	              autoformat.HandleChange   <─────┘
//
// Engine-driven mutations (autoformat rewrites, palette commits and toolbar
// toggles) are published on the event bus as buffer.changed. Saving runs the
// buffer's markup through the sanitizer before it reaches a store.Persister.
package editor
