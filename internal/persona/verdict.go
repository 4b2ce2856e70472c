package persona

import (
	"strings"

	"github.com/azizdeniz890/multi-agent-finance/internal/types"
)

// Classify maps free-text opinion to a verdict by case-insensitive substring
// scan. "bullish" is checked before "bearish"; anything else is neutral.
func Classify(text string) types.Verdict {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "bullish"):
		return types.VerdictBullish
	case strings.Contains(t, "bearish"):
		return types.VerdictBearish
	default:
		return types.VerdictNeutral
	}
}
