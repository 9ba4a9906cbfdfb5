// Package trigger implements the inline command palette's state machine.
//
// The machine is Closed until the trigger character (a backslash by default)
// lands in the buffer right before the caret. It then records a marker at the
// trigger, and while Open it treats the text between the trigger and the caret
// as the filter. Navigation keys move the highlight, Enter or Tab commit and
// Escape dismisses. Every other key reaches the surface untouched.
//
// Detection happens in AfterInput, which the editor calls once each input
// event has been applied to the surface.
package trigger
