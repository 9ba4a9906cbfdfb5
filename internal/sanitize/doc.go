// Package sanitize produces the only persisted form of edited content.
//
// Sanitize keeps a fixed set of structural tags with every attribute
// removed. Script-like elements are dropped with their content and any other
// element is unwrapped in place. Output is stable: sanitizing it again returns
// it unchanged.
package sanitize
