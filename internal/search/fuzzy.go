// Package search ranks candidate names against a possibly misspelled query
package search

import (
	"sort"
	"strings"
	"unicode"
)

// Suggestion is a candidate with its match score
type Suggestion struct {
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
	Highlights []int   `json:"-"` // Indices of matching characters
}

// FuzzySearch scores every candidate against query and returns those at or
// above threshold, highest score first, at most limit results (0 = all)
func FuzzySearch(query string, candidates []string, threshold float64, limit int) []Suggestion {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	queryTokens := tokenize(query)

	var results []Suggestion
	for _, c := range candidates {
		score, highlights := scoreCandidate(query, queryTokens, c)
		if score >= threshold && score > 0 {
			results = append(results, Suggestion{Name: c, Score: score, Highlights: highlights})
		}
	}

	// Sort by score descending, ties keep candidate order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// tokenize splits a query into searchable tokens
func tokenize(s string) []string {
	s = strings.ToLower(s)
	var tokens []string
	var current strings.Builder

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// scoreCandidate calculates how well a candidate matches the query tokens
func scoreCandidate(query string, queryTokens []string, candidate string) (float64, []int) {
	if len(queryTokens) == 0 {
		return 0, nil
	}

	text := strings.ToLower(candidate)
	if text == query {
		highlights := make([]int, len(text))
		for i := range highlights {
			highlights[i] = i
		}
		return 1.0, highlights
	}

	var totalScore float64
	var allHighlights []int
	matchedTokens := 0

	for _, token := range queryTokens {
		tokenScore, highlights := scoreToken(token, text)
		if tokenScore > 0 {
			matchedTokens++
			totalScore += tokenScore
			allHighlights = append(allHighlights, highlights...)
		}
	}

	// Penalize partial token matches significantly
	if matchedTokens < len(queryTokens) {
		totalScore *= float64(matchedTokens) / float64(len(queryTokens)) * 0.5
	}

	totalScore /= float64(len(queryTokens))

	return totalScore, allHighlights
}

// scoreToken calculates score for a single token against a candidate
func scoreToken(token, text string) (float64, []int) {
	var highlights []int
	mark := func() {
		if idx := strings.Index(text, token); idx >= 0 {
			for i := idx; i < idx+len(token); i++ {
				highlights = append(highlights, i)
			}
		}
	}

	switch {
	case containsWord(text, token):
		mark()
		return 0.9, highlights
	case strings.Contains(text, token):
		mark()
		return 0.7, highlights
	case fuzzyContains(text, token):
		return 0.4, nil
	case fuzzyContains(token, text):
		// Query is a longer spelling of the candidate
		return 0.3, nil
	}

	// Typos: close edit distance
	if sim := similarity(token, text); sim >= 0.7 {
		return 0.5 * sim, nil
	}
	return 0, nil
}

// similarity is 1 - editDistance/maxLen
func similarity(a, b string) float64 {
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes the edit distance between a and b
func levenshtein(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// containsWord checks if text contains token as a whole word
func containsWord(text, word string) bool {
	idx := strings.Index(text, word)
	if idx == -1 {
		return false
	}

	if idx > 0 {
		r := rune(text[idx-1])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}

	endIdx := idx + len(word)
	if endIdx < len(text) {
		r := rune(text[endIdx])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

// fuzzyContains checks if text contains characters of pattern in order
// with limited gaps (allows for abbreviations)
func fuzzyContains(text, pattern string) bool {
	if len(pattern) == 0 {
		return true
	}
	if len(text) == 0 {
		return false
	}

	patternIdx := 0
	gaps := 0
	maxGaps := len(pattern)

	for i := 0; i < len(text) && patternIdx < len(pattern); i++ {
		if text[i] == pattern[patternIdx] {
			patternIdx++
			gaps = 0
		} else if patternIdx > 0 {
			gaps++
			if gaps > maxGaps {
				return false
			}
		}
	}

	return patternIdx == len(pattern)
}
