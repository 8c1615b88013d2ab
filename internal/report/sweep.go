package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Sweep is the result of solving one mode over a range of its parameter.
type Sweep struct {
	RunID     string       `json:"run_id" yaml:"run_id"`
	Input     string       `json:"input,omitempty" yaml:"input,omitempty"`
	Mode      string       `json:"mode" yaml:"mode"`
	Parameter string       `json:"parameter" yaml:"parameter"`
	Points    []SweepPoint `json:"points" yaml:"points"`
}

// SweepPoint is one solve of a sweep.
type SweepPoint struct {
	Value     int     `json:"value" yaml:"value"`
	Status    string  `json:"status" yaml:"status"`
	TotalTags int     `json:"total_tags" yaml:"total_tags"`
	TotalHits int     `json:"total_hits" yaml:"total_hits"`
	Nodes     int64   `json:"nodes" yaml:"nodes"`
	ElapsedMS float64 `json:"elapsed_ms" yaml:"elapsed_ms"`
}

// WriteSweep renders s in format; the text form is one row per point.
func WriteSweep(w io.Writer, s *Sweep, format string, noColor bool) error {
	switch strings.ToLower(format) {
	case FormatText, "":
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	p := newPalette(noColor)
	if _, err := p.head.Fprintf(w, "Sweep %s", s.RunID); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  mode %s over %s\n\n", s.Mode, s.Parameter); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tSTATUS\tTAGS\tHITS\tNODES\n", strings.ToUpper(s.Parameter))
	for _, pt := range s.Points {
		if pt.Status != "optimal" {
			fmt.Fprintf(tw, "%d\t%s\t-\t-\t%d\n", pt.Value, pt.Status, pt.Nodes)
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", pt.Value, pt.Status, pt.TotalTags, pt.TotalHits, pt.Nodes)
	}

	return tw.Flush()
}
