package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cdunford/claimharvest"
)

// Measurement and duration patterns are process-wide constants compiled once
// and reused for every page.
var (
	measurementRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(mcg|ug|mg|g|iu|units?|ml)\b`)
	durationRe    = regexp.MustCompile(`(?i)(\d+)\s*(day|days|week|weeks|month|months)\b`)
)

// Numbers extracts every measurement mention from the text in left-to-right
// order. Duplicates are retained; units are lowercased. No matches yields an
// empty, non-nil slice so encoded claims always carry a JSON array.
func Numbers(text string) []claimharvest.Measurement {
	nums := []claimharvest.Measurement{}
	for _, m := range measurementRe.FindAllStringSubmatch(text, -1) {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		nums = append(nums, claimharvest.Measurement{Value: value, Unit: strings.ToLower(m[2])})
	}
	return nums
}

// Durations extracts every duration mention from the text in left-to-right
// order. Duplicates are retained; units are lowercased.
func Durations(text string) []claimharvest.Duration {
	durs := []claimharvest.Duration{}
	for _, m := range durationRe.FindAllStringSubmatch(text, -1) {
		value, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		durs = append(durs, claimharvest.Duration{Value: value, Unit: strings.ToLower(m[2])})
	}
	return durs
}
