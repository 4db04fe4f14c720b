// Package report renders an accumulation table as CSV or JSON.
//
// Both formats list one row per (lineage, query) pair in lineage-major
// order, using the sorted registry labels.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/hupe1980/splitmatch/accum"
	"github.com/hupe1980/splitmatch/codec"
	"github.com/hupe1980/splitmatch/taxa"
)

// Format selects the report encoding.
type Format string

const (
	// CSV writes a "lineage,query,matches" table.
	CSV Format = "csv"
	// JSON writes a single document with all rows.
	JSON Format = "json"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, JSON:
		return f, nil
	case "":
		return CSV, nil
	default:
		return "", fmt.Errorf("report: unknown format %q", s)
	}
}

// Row is one (lineage, query) cell.
type Row struct {
	Lineage string `json:"lineage"`
	Query   string `json:"query"`
	Matches uint64 `json:"matches"`
}

// Document is the JSON report.
type Document struct {
	Lineages    []string `json:"lineages"`
	Queries     []string `json:"queries"`
	Trees       int      `json:"trees"`
	TotalSplits int      `json:"total_splits"`
	Rows        []Row    `json:"rows"`
}

// Summary carries the forest statistics included in JSON reports.
type Summary struct {
	Trees       int
	TotalSplits int
}

func checkShape(table *accum.Table, lineages, queries *taxa.Registry) error {
	if table.Lineages() != lineages.Size() || table.Queries() != queries.Size() {
		return fmt.Errorf("%w: table is %dx%d, registries are %dx%d", accum.ErrShapeMismatch,
			table.Lineages(), table.Queries(), lineages.Size(), queries.Size())
	}
	return nil
}

// Rows iterates the table with labels attached.
func Rows(table *accum.Table, lineages, queries *taxa.Registry) (iter.Seq[Row], error) {
	if err := checkShape(table, lineages, queries); err != nil {
		return nil, err
	}
	return func(yield func(Row) bool) {
		for c := range table.All() {
			if !yield(Row{Lineage: lineages.Label(c.Lineage), Query: queries.Label(c.Query), Matches: c.Count}) {
				return
			}
		}
	}, nil
}

// WriteCSV writes the table as CSV with a header row.
func WriteCSV(w io.Writer, table *accum.Table, lineages, queries *taxa.Registry) error {
	rows, err := Rows(table, lineages, queries)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"lineage", "query", "matches"}); err != nil {
		return err
	}
	for r := range rows {
		if err := cw.Write([]string{r.Lineage, r.Query, strconv.FormatUint(r.Matches, 10)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the table as a JSON Document using c.
func WriteJSON(w io.Writer, c codec.Codec, table *accum.Table, lineages, queries *taxa.Registry, sum Summary) error {
	rows, err := Rows(table, lineages, queries)
	if err != nil {
		return err
	}
	if c == nil {
		c = codec.Default
	}

	doc := Document{
		Lineages:    lineages.Labels(),
		Queries:     queries.Labels(),
		Trees:       sum.Trees,
		TotalSplits: sum.TotalSplits,
		Rows:        make([]Row, 0, lineages.Size()*queries.Size()),
	}
	for r := range rows {
		doc.Rows = append(doc.Rows, r)
	}

	data, err := c.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Write dispatches on format.
func Write(w io.Writer, format Format, c codec.Codec, table *accum.Table, lineages, queries *taxa.Registry, sum Summary) error {
	switch format {
	case CSV:
		return WriteCSV(w, table, lineages, queries)
	case JSON:
		return WriteJSON(w, c, table, lineages, queries, sum)
	default:
		return fmt.Errorf("report: unknown format %q", format)
	}
}
