package model

// NoSolution is the single entry of a result set when no dictionary word matched.
const NoSolution = "No Solution"

// ResultSet is the ordered list of dictionary words that satisfy a rule, in
// dictionary order. An empty match is represented by the single NoSolution entry,
// never by an empty slice.
type ResultSet []string

// NewResultSet wraps matched words, substituting the NoSolution sentinel when there are none.
func NewResultSet(words []string) ResultSet {
	if len(words) == 0 {
		return ResultSet{NoSolution}
	}
	return ResultSet(words)
}

// HasSolution reports whether at least one dictionary word matched.
func (r ResultSet) HasSolution() bool {
	return !(len(r) == 1 && r[0] == NoSolution) && len(r) > 0
}

// Words returns the matched words without the sentinel. It is empty when there
// is no solution.
func (r ResultSet) Words() []string {
	if !r.HasSolution() {
		return []string{}
	}
	out := make([]string, len(r))
	copy(out, r)
	return out
}

// Contains reports whether word is in the result set (exact, case-sensitive).
func (r ResultSet) Contains(word string) bool {
	for _, w := range r {
		if w == word {
			return true
		}
	}
	return false
}
