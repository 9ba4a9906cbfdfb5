// Package document provides an in-memory EditableSurface.
//
// A Document is a list of blocks (paragraphs, headings, list items), each
// holding one or more runs of uniformly styled text. Runs are the surface's
// text units: they keep their identity while edited in place and are detached
// when removed by Normalize, Clear or Load.
//
// Offset adjustment follows DOM text-node semantics: replacing a range moves
// positions inside the range to its start and shifts positions after it.
//
// Layout is a terminal cell grid with one row per block, which is enough to
// anchor the command palette in terminal front ends.
package document
