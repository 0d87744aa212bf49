package diagnostics

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// Render writes m as a bulk table to w: one row per message, with its
// severity, source region, and text.
func (m Messages) Render(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Severity", "Region", "Message"})
	table.SetAutoWrapText(false)
	table.SetRowLine(false)

	for _, msg := range m {
		region := "<no region>"
		if msg.Region != nil {
			region = msg.Region.String()
		}
		table.Append([]string{msg.Severity.String(), region, msg.Text})
	}

	table.Render()
}
