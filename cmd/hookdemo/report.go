package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/delaneyj/hookparty/demos"
	"github.com/jedib0t/go-pretty/v6/table"
)

func writeTrace(w io.Writer, trace *demos.Trace, cfg *config, style table.Style) {
	tbl := table.NewWriter()
	tbl.SetTitle(fmt.Sprintf("%s (%s)", trace.Path, trace.RootID))
	tbl.SetOutputMirror(w)
	tbl.SetStyle(style)

	header := table.Row{"step", "renders", "skips", "effects", "commits", "console", "digest"}
	if cfg.Markup {
		header = append(header, "markup")
		tbl.SetColumnConfigs([]table.ColumnConfig{
			{Number: len(header), WidthMax: cfg.MarkupWidth},
		})
	}
	tbl.AppendHeader(header)

	for _, f := range trace.Frames {
		row := table.Row{
			f.Step,
			formatRenders(f.Renders),
			f.Skips,
			f.Effects,
			f.Commits,
			strings.Join(f.Console, "\n"),
			fmt.Sprintf("%016x", f.Digest),
		}
		if cfg.Markup {
			row = append(row, f.Markup)
		}
		tbl.AppendRow(row)
	}
	tbl.Render()
}

// formatRenders lists render counts by component name, e.g. "App×1 Child×2".
func formatRenders(renders map[string]int) string {
	names := make([]string, 0, len(renders))
	for name := range renders {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s×%d", name, renders[name])
	}
	return strings.Join(parts, " ")
}
