package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jmespath-community/go-jmespath"
)

// outputFlags selects between the human table and JSON output. A --query
// expression is evaluated against the JSON form and implies JSON output.
type outputFlags struct {
	JSON  bool
	Query string
}

func registerOutputFlags(fs *flag.FlagSet) *outputFlags {
	o := &outputFlags{}
	fs.BoolVar(&o.JSON, "json", false, "Print JSON instead of a table")
	fs.StringVar(&o.Query, "query", "", "JMESPath expression applied to the JSON output")
	return o
}

func (o *outputFlags) structured() bool {
	return o.JSON || strings.TrimSpace(o.Query) != ""
}

func (o *outputFlags) emit(w io.Writer, v any) error {
	if q := strings.TrimSpace(o.Query); q != "" {
		projected, err := project(q, v)
		if err != nil {
			return err
		}
		v = projected
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// project evaluates expr against the generic JSON form of v so that field
// names in the expression match the wire names.
func project(expr string, v any) (any, error) {
	if _, err := jmespath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	out, err := jmespath.Search(expr, generic)
	if err != nil {
		return nil, fmt.Errorf("evaluate --query: %w", err)
	}
	return out, nil
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(tw, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
