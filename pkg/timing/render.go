package timing

import (
	"bytes"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderClassification renders the positions table for the startup log.
func RenderClassification(snap Snapshot) string {
	var b bytes.Buffer
	t := table.NewWriter()
	t.SetOutputMirror(&b)
	t.SetStyle(table.StyleRounded)
	t.AppendSeparator()

	t.AppendHeader(table.Row{"POS", "PIL", "TEAM", "STATUS"})
	for _, p := range snap.Positions {
		t.AppendRow([]interface{}{
			p.Position,
			p.Driver,
			p.Team,
			p.Status,
		})
	}
	t.Render()

	return b.String()
}
