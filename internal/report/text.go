package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
)

type palette struct {
	head, good, bad, dim *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{
		head: color.New(color.FgCyan, color.Bold),
		good: color.New(color.FgGreen),
		bad:  color.New(color.FgRed, color.Bold),
		dim:  color.New(color.Faint),
	}
	if noColor {
		for _, c := range []*color.Color{p.head, p.good, p.bad, p.dim} {
			c.DisableColor()
		}
	} else {
		for _, c := range []*color.Color{p.head, p.good, p.bad, p.dim} {
			c.EnableColor()
		}
	}

	return p
}

// WriteText prints the console summary:
//
//	Run 5f0c…  mode max  budget 2  threshold 0  cap 0
//	Items 6  tags 3  clusters 2 (sizes 3 3)
//
//	CLUSTER  SIZE  HITS  TAGS
//	1        3     2     red
//	2        3     2     blue
//
//	Tags picked: 2
//	Items hit:   4 / 6
//
// A run without an optimum prints "No solution." and the status instead
// of the table; zero coverage still prints the table.
func WriteText(w io.Writer, r *Report, noColor bool) error {
	var (
		p   = newPalette(noColor)
		err error
	)
	printf := func(c *color.Color, format string, a ...any) {
		if err != nil {
			return
		}
		if c == nil {
			_, err = fmt.Fprintf(w, format, a...)
			return
		}
		_, err = c.Fprintf(w, format, a...)
	}

	printf(p.head, "Run %s", r.RunID)
	printf(nil, "  mode %s  budget %d  threshold %d  cap %d\n", r.Mode, r.Budget, r.Threshold, r.ClusterCap)
	printf(nil, "Items %d  tags %d  clusters %d (sizes %s)\n", r.Items, r.Tags, len(r.ClusterSizes), joinInts(r.ClusterSizes))

	if !r.Solved {
		printf(nil, "\n")
		printf(p.bad, "No solution.")
		printf(nil, " (status %s)\n", r.Status)
		return err
	}

	printf(nil, "\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err == nil {
		_, err = fmt.Fprintln(tw, "CLUSTER\tSIZE\tHITS\tTAGS")
	}
	for _, c := range r.Descriptors {
		if err != nil {
			break
		}
		tags := strings.Join(c.Tags, ", ")
		if tags == "" {
			tags = "-"
		}
		_, err = fmt.Fprintf(tw, "%d\t%d\t%d\t%s\n", c.Cluster, c.Size, c.Hits, tags)
	}
	if err == nil {
		err = tw.Flush()
	}

	printf(nil, "\nTags picked: %d\n", r.TotalTags)
	printf(nil, "Items hit:   ")
	printf(p.good, "%d / %d", r.TotalHits, r.Items)
	printf(nil, "\n")
	printf(p.dim, "objective %g  nodes %d  elapsed %s\n", r.Objective, r.Nodes,
		time.Duration(r.ElapsedMS*float64(time.Millisecond)).Round(time.Microsecond))

	return err
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}

	return strings.Join(parts, " ")
}
