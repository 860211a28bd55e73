package tags

import "sort"

// Allowlist returns the distinct tags found across the given tag sets,
// in lexicographic order. Invalid identifiers are skipped.
func Allowlist(tagSets [][]string) []string {
	seen := map[string]bool{}
	for _, set := range tagSets {
		for _, t := range set {
			if Valid(t) {
				seen[t] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// ByFrequency ranks the distinct tags across the given tag sets by how
// often they occur, most frequent first. Ties break lexicographically so
// the ranking is deterministic.
func ByFrequency(tagSets [][]string) []string {
	counts := map[string]int{}
	for _, set := range tagSets {
		for _, t := range set {
			if Valid(t) {
				counts[t]++
			}
		}
	}
	out := make([]string, 0, len(counts))
	for t := range counts {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}
