// Package render prints an analysis report to the terminal: a metrics table,
// a numbered news table, and one verdict-colored panel per persona opinion.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/azizdeniz890/multi-agent-finance/internal/types"
)

type Renderer struct {
	out io.Writer
}

func New(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) Report(rep *types.Report) {
	r.financials(rep)
	r.news(rep.News)
	for _, o := range rep.Opinions {
		r.opinion(o)
	}
}

func (r *Renderer) financials(rep *types.Report) {
	fmt.Fprintf(r.out, "\nMetrics for %s\n", rep.Symbol)
	if len(rep.Financials.Metrics) == 0 {
		fmt.Fprintln(r.out, "  (no data)")
		return
	}

	table := tablewriter.NewTable(r.out,
		tablewriter.WithHeader([]string{"Metric", "Value"}),
	)
	for _, m := range rep.Financials.Metrics {
		table.Append([]string{m.Label, m.Text})
	}
	table.Render()
}

func (r *Renderer) news(items []types.NewsItem) {
	fmt.Fprintln(r.out, "\nTop News")
	if len(items) == 0 {
		fmt.Fprintln(r.out, "  (no trusted articles found)")
		return
	}

	table := tablewriter.NewTable(r.out,
		tablewriter.WithHeader([]string{"#", "Source", "Title"}),
	)
	for i, it := range items {
		title := it.Title
		if len(title) > 70 {
			title = title[:70] + "..."
		}
		table.Append([]string{strconv.Itoa(i + 1), it.Source, title})
	}
	table.Render()
}

func (r *Renderer) opinion(o types.Opinion) {
	header := color.New(color.Bold)
	if o.Err != "" {
		fmt.Fprintln(r.out)
		header.Fprintf(r.out, "%s Analysis\n", o.Persona)
		color.New(color.FgRed).Fprintf(r.out, "  analysis failed: %s\n", o.Err)
		return
	}

	var c *color.Color
	switch o.Verdict {
	case types.VerdictBullish:
		c = color.New(color.FgGreen)
	case types.VerdictBearish:
		c = color.New(color.FgRed)
	default:
		c = color.New(color.FgYellow)
	}

	fmt.Fprintln(r.out)
	header.Fprintf(r.out, "%s Analysis ", o.Persona)
	c.Fprintf(r.out, "[%s]\n", o.Verdict)
	fmt.Fprintln(r.out, indent(o.Text, "  "))
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
