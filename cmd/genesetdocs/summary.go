package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"genesetdocs/internal/export"
	"genesetdocs/internal/render"
)

var (
	headline = color.New(color.Bold)
	good     = color.New(color.FgGreen)
	warn     = color.New(color.FgYellow)
	bad      = color.New(color.FgRed, color.Bold)
)

func printExportSummary(w io.Writer, sums []export.Summary, failed []string) {
	headline.Fprintln(w, "Export complete")
	total := 0
	var elapsed time.Duration
	for _, s := range sums {
		total += s.Exported
		elapsed += s.Duration()
		good.Fprintf(w, "  %-6s %6d exported", s.Species, s.Exported)
		fmt.Fprintf(w, " -> %s", s.Dir)
		if s.Skipped > 0 {
			fmt.Fprintf(w, ", %d skipped", s.Skipped)
		}
		if s.Failed > 0 {
			warn.Fprintf(w, ", %d failed", s.Failed)
		}
		if s.Sanitize != nil && s.Sanitize.Changed() {
			warn.Fprintf(w, ", input repaired (%s)", s.Sanitize)
		}
		fmt.Fprintln(w)
	}
	for _, sp := range failed {
		bad.Fprintf(w, "  %-6s failed, see log\n", sp)
	}
	fmt.Fprintf(w, "  total  %6d exported", total)
	if total > 0 && elapsed > 0 {
		fmt.Fprintf(w, " in %s (%.1f gene sets/sec)", elapsed.Round(time.Millisecond), float64(total)/elapsed.Seconds())
	}
	fmt.Fprintln(w)
}

func printRenderSummary(w io.Writer, sum render.Summary, site string) {
	headline.Fprintln(w, "Render complete")
	good.Fprintf(w, "  %d pages generated", sum.Generated)
	fmt.Fprintf(w, " -> %s\n", site)
	if sum.Skipped > 0 {
		fmt.Fprintf(w, "  %d existing pages skipped\n", sum.Skipped)
	}
	if sum.Failed > 0 {
		warn.Fprintf(w, "  %d documents could not be rendered\n", sum.Failed)
	}
}
