package match

import "unicode/utf8"

// Distance returns the Levenshtein edit distance between a and b, counted
// in runes.
func Distance(a, b string) int {
	long, short := []rune(a), []rune(b)
	if len(long) < len(short) {
		long, short = short, long
	}

	// row[j] holds the distance between the current prefix of long and
	// short[:j].
	row := make([]int, len(short)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(long); i++ {
		diag := row[0]
		row[0] = i

		for j := 1; j <= len(short); j++ {
			up := row[j]

			cost := 1
			if long[i-1] == short[j-1] {
				cost = 0
			}

			row[j] = min(up+1, row[j-1]+1, diag+cost)
			diag = up
		}
	}

	return row[len(short)]
}

// Similarity scores two identifiers between 0 and 1 after folding case and
// separators. 1 means the folded forms are equal.
func Similarity(a, b string) float64 {
	fa, fb := fold(a), fold(b)

	longest := max(utf8.RuneCountInString(fa), utf8.RuneCountInString(fb))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Distance(fa, fb))/float64(longest)
}

// Closest returns the candidate most similar to name, provided its
// similarity reaches minScore. Ties keep the earlier candidate.
func Closest(name string, candidates []string, minScore float64) (string, bool) {
	var (
		best      string
		bestScore float64
		found     bool
	)

	for _, c := range candidates {
		score := Similarity(name, c)
		if score >= minScore && (!found || score > bestScore) {
			best, bestScore, found = c, score, true
		}
	}

	return best, found
}
