package main

import (
	"fmt"

	"github.com/hbollon/go-edlib"
)

// didYouMean returns a " (did you mean \"X\"?)" suffix naming the closest
// known Category name to got, or "" if nothing is close enough to be
// useful. Used to annotate the error raised for an unrecognized
// stem_overrides key.
func didYouMean(got string) string {
	best := ""
	var bestScore float32
	for _, name := range categoryNames {
		score, err := edlib.StringsSimilarity(got, name, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = name
		}
	}
	if best == "" || bestScore < 0.75 {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}
