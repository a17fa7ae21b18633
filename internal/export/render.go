package export

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/tmm-digital/quote-api/internal/common"
	"github.com/tmm-digital/quote-api/internal/quote"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// renderText produces the printable plain-text rendition of a quote.
func renderText(snap quote.Snapshot) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Quote %s\n", snap.QuoteNumber)
	fmt.Fprintf(&buf, "Reference: %s\n", snap.ID)
	fmt.Fprintf(&buf, "Date: %s\n\n", snap.CreatedAt.Format("02 Jan 2006"))

	tw := tabwriter.NewWriter(&buf, 2, 4, 2, ' ', 0)
	for _, item := range snap.Items {
		fmt.Fprintf(tw, "%s\t%d x %s\t%s\n",
			item.Name, item.Qty, common.FormatINR(int64(item.UnitPrice)),
			common.FormatINR(int64(item.UnitPrice)*int64(item.Qty)))
	}
	for _, line := range snap.Lines {
		if line.Quantity > 0 && line.UnitPrice > 0 {
			fmt.Fprintf(tw, "%s\t%d x %s\t%s\n",
				line.Label, line.Quantity, common.FormatINR(int64(line.UnitPrice)),
				common.FormatINR(int64(line.Total)))
			continue
		}
		fmt.Fprintf(tw, "%s\t\t%s\n", line.Label, common.FormatINR(int64(line.Total)))
	}
	tw.Flush()

	buf.WriteString("\n")
	fmt.Fprintf(&buf, "Subtotal: %s\n", common.FormatINR(int64(snap.Summary.Subtotal)))
	if snap.Discount != nil {
		fmt.Fprintf(&buf, "Discount (%s): -%s\n", snap.Discount.Code, common.FormatINR(int64(snap.Summary.Discount)))
	}
	fmt.Fprintf(&buf, "GST: %s\n", common.FormatINR(int64(snap.Summary.Tax)))
	fmt.Fprintf(&buf, "Total: %s\n", common.FormatINR(int64(snap.Summary.Total)))
	return buf.Bytes()
}
