// Package key defines the key events the editing engine reacts to.
//
// Terminal front ends translate tcell events with FromTcell; other front ends
// build events with NewRuneEvent and NewSpecialEvent.
package key
