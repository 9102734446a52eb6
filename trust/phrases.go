package trust

import "strings"

// Vocabulary is a fixed phrase list scanned with case-insensitive substring
// semantics. Fragments count: "offers" contains "offer". That over-counting
// is deliberate, the heuristic stays simple and auditable.
type Vocabulary []string

// Count returns the total number of occurrences of all phrases in text.
// Occurrences of a single phrase are counted non-overlapping.
func (v Vocabulary) Count(text string) int {
	lower := strings.ToLower(text)
	total := 0
	for _, phrase := range v {
		total += strings.Count(lower, strings.ToLower(phrase))
	}
	return total
}
