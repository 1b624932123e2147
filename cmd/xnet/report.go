package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/go-task/slim-sprig/v3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/kr/text"

	"github.com/wiretrace/xnet/traversal"
)

// summaryTemplate renders the header block above the per-MPN table,
// mirroring verify/report.go's WriteReport section-banner style.
const summaryTemplate = `{{ "=" | repeat 60 }}
XNET TRACE: {{ .StartingPoint }}{{ if .Net }} (net {{ .Net }}){{ end }}
{{ "=" | repeat 60 }}
components: {{ .TotalComponents }}   configurations: {{ .UniqueConfigurations }}   fingerprint: {{ .CircuitHash | upper }}
`

// renderReport prints result as a human-facing console report: a text
// summary banner (slim-sprig template funcs), a go-pretty table of the
// MPN aggregates, and any skip counts indented beneath it.
func renderReport(result *traversal.AggregatedResult) error {
	funcs := sprig.TxtFuncMap()
	funcs["repeat"] = func(n int, s string) string { return strings.Repeat(s, n) }
	tmpl, err := template.New("summary").Funcs(funcs).Parse(summaryTemplate)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(os.Stdout, result); err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"MPN", "Nets", "DNS", "Refdes", "Count"})

	for _, mpn := range sortedMPNKeys(result.ComponentsByMPN) {
		for _, agg := range result.ComponentsByMPN[mpn] {
			appendAggregateRows(t, mpn, agg)
		}
	}
	t.Render()

	if len(result.Skipped) > 0 {
		var b strings.Builder
		fmt.Fprintln(&b, "skipped:")
		for _, prefix := range sortedSkipKeys(result.Skipped) {
			fmt.Fprintf(&b, "%s: %d\n", prefix, result.Skipped[prefix])
		}
		fmt.Println(text.Indent(b.String(), "  "))
	}

	return nil
}

func appendAggregateRows(t table.Writer, mpn string, agg traversal.Aggregate) {
	if len(agg.Orientations) == 0 {
		t.AppendRow(table.Row{mpn, strings.Join(agg.Nets, ","), agg.DNS, strings.Join(agg.Refdes, ","), len(agg.Refdes)})
		return
	}
	for _, o := range agg.Orientations {
		t.AppendRow(table.Row{mpn, strings.Join(agg.Nets, ","), agg.DNS, strings.Join(o.Refdes, ","), o.Count})
	}
}

func sortedMPNKeys(byMPN map[string][]traversal.Aggregate) []string {
	keys := make([]string, 0, len(byMPN))
	for k := range byMPN {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSkipKeys(skipped map[string]int) []string {
	keys := make([]string, 0, len(skipped))
	for k := range skipped {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
