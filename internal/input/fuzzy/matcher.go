package fuzzy

import "slices"

// Result is the outcome of matching one label.
type Result struct {
	IsMatch bool
	Score   int
}

// Ranked pairs a matching item with its score.
type Ranked[T any] struct {
	Item  T
	Score int
}

// Match scores label against query.
func Match(query, label string) Result {
	if query == "" {
		return Result{IsMatch: true}
	}

	queryRunes := lowerRunes([]rune(query))
	original := []rune(label)
	textRunes := lowerRunes(original)

	if hasPrefix(textRunes, queryRunes) {
		return Result{IsMatch: true, Score: PrefixBase + len(queryRunes)}
	}

	score := 0
	qi := 0
	last := -1
	for i, r := range textRunes {
		if qi == len(queryRunes) {
			break
		}
		if r != queryRunes[qi] {
			continue
		}
		score += MatchPoints
		if last >= 0 && i == last+1 {
			score += AdjacentBonus
		}
		if isWordBoundary(original, textRunes, i) {
			score += BoundaryBonus
		}
		last = i
		qi++
	}

	if qi < len(queryRunes) {
		return Result{}
	}
	return Result{IsMatch: true, Score: score}
}

// Filter matches query against the label of every item and returns the
// matches ordered by descending score. Ties keep input order.
func Filter[T any](query string, items []T, label func(T) string) []Ranked[T] {
	results := make([]Ranked[T], 0, len(items))
	for _, item := range items {
		res := Match(query, label(item))
		if !res.IsMatch {
			continue
		}
		results = append(results, Ranked[T]{Item: item, Score: res.Score})
	}

	slices.SortStableFunc(results, func(a, b Ranked[T]) int {
		return b.Score - a.Score
	})
	return results
}

func hasPrefix(text, prefix []rune) bool {
	if len(prefix) > len(text) {
		return false
	}
	for i, r := range prefix {
		if text[i] != r {
			return false
		}
	}
	return true
}
