// Package autoformat rewrites markdown-style shorthand into real formatting
// as the user types.
//
// Block shorthand ("# ", "## ", "### ", "- ", "1. ") is recognized when it is
// everything before the caret in the caret's text unit. Inline shorthand wraps
// a span in delimiters: "**bold**", "~~strike~~" and "*italic*", tried in that
// order. Anything that does not match is left as typed.
//
// The Autoformatter mutates the surface under a shared surface.Guard so its
// own edits never re-enter it or collide with the command palette.
package autoformat
