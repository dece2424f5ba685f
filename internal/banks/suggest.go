package banks

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// maxEditDistance bounds typo suggestions such as "Nordae" for "Nordea".
const maxEditDistance = 2

// Suggest returns bank names resembling name, best match first. It is meant for
// error messages only; ByName never matches partially.
func Suggest(name string) []string {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	names := Names()
	ranks := fuzzy.RankFindNormalizedFold(name, names)
	sort.Sort(ranks)

	seen := make(map[string]bool, len(names))
	var out []string
	for _, r := range ranks {
		seen[r.Target] = true
		out = append(out, r.Target)
	}

	lower := strings.ToLower(name)
	for _, n := range names {
		if seen[n] {
			continue
		}
		if fuzzy.LevenshteinDistance(lower, strings.ToLower(n)) <= maxEditDistance {
			out = append(out, n)
		}
	}
	return out
}
