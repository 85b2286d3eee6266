package extract

import (
	"sort"
	"strings"

	"github.com/cdunford/claimharvest"
)

// flagRules maps each safety flag to its trigger substrings. Flags are
// independent of each other and of claim type.
var flagRules = []struct {
	flag     string
	keywords []string
}{
	{claimharvest.FlagPregnancy, []string{"pregnant", "breastfeeding"}},
	{claimharvest.FlagCancer, []string{"cancer"}},
	{claimharvest.FlagDisclaimer, []string{"not a drug", "not for human consumption", "research-use only", "research use only", "not medical advice"}},
	{claimharvest.FlagInjection, []string{"prep & injection guide", "injection guide", "reconstitution", "bac water", "bacteriostatic"}},
	{claimharvest.FlagTitration, []string{"increase dose", "titrate", "intervals", "as necessary", "maximum dose"}},
	{claimharvest.FlagStacking, []string{"stack", "stacking", "pairings", "suggested pairings"}},
}

// Flags returns the sorted set of safety flags triggered by the text.
// Absence of flags is an empty slice, never nil semantics the caller must
// special-case.
func Flags(text string) []string {
	lower := strings.ToLower(text)
	flags := []string{}
	for _, r := range flagRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				flags = append(flags, r.flag)
				break
			}
		}
	}
	sort.Strings(flags)
	return flags
}
