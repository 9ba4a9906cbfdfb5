// Package fuzzy scores command labels against a typed filter.
//
// # Scoring Algorithm
//
// Matching is case-insensitive. An empty query matches everything with score
// 0. A label that starts with the query scores PrefixBase plus the query
// length, which outranks any subsequence match. Otherwise the query must
// appear in the label as a subsequence; each matched character earns
// MatchPoints, plus AdjacentBonus when it directly follows the previous match
// and BoundaryBonus when it starts a word:
//   - index 0
//   - after a space, hyphen or underscore
//   - a cased upper-case character after a lower-case one (camelCase)
//
// # Filtering
//
// Filter keeps matching items sorted by descending score. Items with equal
// scores keep their input order; callers rely on this to preserve registry
// order.
package fuzzy
