// Package report renders a descriptor solve for people (text) and for
// tools (json, yaml).
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/tagcover/descriptor"
	"github.com/katalvlaran/tagcover/ilp"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat indicates a format other than text, json or yaml.
var ErrUnknownFormat = errors.New("report: unknown format")

// Report is the serialisable view of one run.
type Report struct {
	RunID        string    `json:"run_id" yaml:"run_id"`
	Input        string    `json:"input,omitempty" yaml:"input,omitempty"`
	Mode         string    `json:"mode" yaml:"mode"`
	Budget       int       `json:"budget" yaml:"budget"`
	Threshold    int       `json:"threshold" yaml:"threshold"`
	ClusterCap   int       `json:"cluster_cap" yaml:"cluster_cap"`
	Items        int       `json:"items" yaml:"items"`
	Tags         int       `json:"tags" yaml:"tags"`
	ClusterSizes []int     `json:"cluster_sizes" yaml:"cluster_sizes"`
	Status       string    `json:"status" yaml:"status"`
	Solved       bool      `json:"solved" yaml:"solved"`
	Descriptors  []Cluster `json:"descriptors,omitempty" yaml:"descriptors,omitempty"`
	TotalTags    int       `json:"total_tags" yaml:"total_tags"`
	TotalHits    int       `json:"total_hits" yaml:"total_hits"`
	Objective    float64   `json:"objective" yaml:"objective"`
	Nodes        int64     `json:"nodes" yaml:"nodes"`
	ElapsedMS    float64   `json:"elapsed_ms" yaml:"elapsed_ms"`
}

// Cluster is one realised descriptor.
type Cluster struct {
	Cluster int      `json:"cluster" yaml:"cluster"`
	Size    int      `json:"size" yaml:"size"`
	Hits    int      `json:"hits" yaml:"hits"`
	Tags    []string `json:"tags" yaml:"tags"`
}

// New builds a Report. res may be nil, in which case sol.Status tells why;
// search effort is taken from sol either way.
func New(runID, input string, prob *descriptor.Problem, params descriptor.Params, res *descriptor.Result, sol ilp.Solution) *Report {
	r := &Report{
		RunID:        runID,
		Input:        input,
		Mode:         params.Mode.String(),
		Budget:       params.Budget,
		Threshold:    params.Threshold,
		ClusterCap:   params.ClusterCap,
		Items:        prob.Items(),
		Tags:         prob.NumTags(),
		ClusterSizes: prob.Partition.Sizes(),
		Status:       sol.Status.String(),
		Nodes:        sol.Nodes,
		ElapsedMS:    float64(sol.Elapsed) / float64(time.Millisecond),
	}
	if res == nil {
		return r
	}
	r.Solved = true
	r.Status = ilp.Optimal.String()
	r.TotalTags = res.TotalTags
	r.TotalHits = res.TotalHits
	r.Objective = res.Objective
	for _, c := range res.Clusters {
		r.Descriptors = append(r.Descriptors, Cluster{Cluster: c.Label, Size: c.Size, Hits: c.Hits, Tags: c.TagNames})
	}

	return r
}

// Write renders r in format.
func Write(w io.Writer, r *Report, format string, noColor bool) error {
	switch strings.ToLower(format) {
	case FormatText, "":
		return WriteText(w, r, noColor)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
