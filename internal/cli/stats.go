package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"text/tabwriter"
)

// Execute implements the go-flags Commander interface for StatsCommand.
func (c *StatsCommand) Execute(args []string) error {
	ctx := context.Background()
	b, done, err := open(ctx, c.backend)
	if err != nil {
		return err
	}
	defer done()

	asJSON := c.globals != nil && c.globals.JSON

	if c.Page != "" {
		page, err := b.analytics.PageStats(ctx, c.Page)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(page)
		}
		fmt.Printf("Page:          %s\n", page.Page)
		fmt.Printf("Visits:        %d\n", page.TotalVisits)
		fmt.Printf("Average time:  %ds\n", page.AverageTimeSpent)
		fmt.Printf("Total time:    %.1fs\n", page.TotalTimeSpent)
		return nil
	}

	stats, err := b.analytics.AllStats(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(stats)
	}

	visits := make(map[string]int64, len(stats.Visits))
	pages := make([]string, 0, len(stats.Visits)+len(stats.TimeStats))
	for _, v := range stats.Visits {
		visits[v.Page] = v.Count
		pages = append(pages, v.Page)
	}
	avg := make(map[string]float64, len(stats.TimeStats))
	for _, ts := range stats.TimeStats {
		if _, seen := visits[ts.Page]; !seen {
			pages = append(pages, ts.Page)
		}
		avg[ts.Page] = ts.AvgTime
	}
	if len(pages) == 0 {
		fmt.Println("No analytics recorded")
		return nil
	}
	slices.Sort(pages)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PAGE\tVISITS\tAVG TIME")
	for _, p := range pages {
		fmt.Fprintf(w, "%s\t%d\t%.1fs\n", p, visits[p], avg[p])
	}
	return w.Flush()
}
