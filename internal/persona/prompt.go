package persona

import (
	"strings"

	"github.com/azizdeniz890/multi-agent-finance/internal/types"
)

// BuildPrompt assembles the task prompt for a persona: a "Financials:"
// section with one "label: value" line per metric in snapshot order, a
// "News:" section with one "title. summary" line per item in feed order,
// then the persona's closing instructions when it has any.
func BuildPrompt(p Persona, fin types.Snapshot, news []types.NewsItem) string {
	var b strings.Builder

	b.WriteString("Financials:\n")
	for i, m := range fin.Metrics {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.Label)
		b.WriteString(": ")
		b.WriteString(m.Text)
	}

	b.WriteString("\n\nNews:\n")
	for i, it := range news {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(it.Title)
		b.WriteString(". ")
		b.WriteString(it.Summary)
	}

	if p.Closing != "" {
		b.WriteString("\n\n")
		b.WriteString(p.Closing)
	}

	return b.String()
}
