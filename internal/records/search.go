package records

import (
	"regexp"
	"sort"
	"strings"
)

var reNonWord = regexp.MustCompile(`\W+`)

// NormalizeKey strips all non-word characters and lowercases, so that
// "Gross Pay", "gross_pay" and "Gross-Pay:" all compare equal.
func NormalizeKey(key string) string {
	return strings.ToLower(reNonWord.ReplaceAllString(key, ""))
}

// SearchKey walks decoded JSON (maps, slices, scalars) depth-first and
// collects every value stored under a key whose normalized form matches
// the normalized target, at any nesting depth.
//
// Map keys are visited in sorted order so repeated runs over the same
// document collect values in the same order.
func SearchKey(key string, data any) []any {
	target := NormalizeKey(key)
	var results []any

	var walk func(node any)
	walk = func(node any) {
		switch v := node.(type) {
		case map[string]any:
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if NormalizeKey(k) == target {
					results = append(results, v[k])
				}
				walk(v[k])
			}
		case []any:
			for _, item := range v {
				walk(item)
			}
		}
	}
	walk(data)
	return results
}
