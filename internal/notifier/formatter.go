package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"WagerWatch/internal/model"

	"github.com/dustin/go-humanize"
)

// FormatSummary renders a plain-text summary: one header line plus one line
// per change. Initial data, no changes, and changes present are distinct
// renderings.
func FormatSummary(result *model.ComparisonResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s records | %d brands | %s\n",
		humanize.Comma(int64(result.TotalRecords)), result.BrandCount, result.DateRange)

	switch {
	case result.IsInitial:
		b.WriteString("Initial data collected - no previous snapshot to compare\n")
	case len(result.Changes) == 0:
		b.WriteString("No changes detected\n")
	default:
		fmt.Fprintf(&b, "%d change(s) detected:\n", len(result.Changes))
		for _, c := range result.Changes {
			fmt.Fprintf(&b, "  [%s] %s\n", c.Type, c.Description)
		}
	}
	return b.String()
}

// FormatEmailBody renders the comparison result as an HTML report body.
func FormatEmailBody(result *model.ComparisonResult) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h2>Sports Wagering Data Update Report</h2>")
	fmt.Fprintf(&b, "<p><strong>Timestamp:</strong> %s</p>", time.Now().Format("2006-01-02 15:04:05"))
	b.WriteString("<h3>Data Summary</h3><ul>")
	fmt.Fprintf(&b, "<li><strong>Total Records:</strong> %s</li>", humanize.Comma(int64(result.TotalRecords)))
	fmt.Fprintf(&b, "<li><strong>Date Range:</strong> %s</li>", result.DateRange)
	fmt.Fprintf(&b, "<li><strong>Brands:</strong> %d</li>", result.BrandCount)
	b.WriteString("</ul>")

	switch {
	case result.IsInitial:
		b.WriteString("<h3>New Data Detected</h3><p>First data collection or major update.</p>")
	case len(result.Changes) > 0:
		b.WriteString("<h3>Changes Detected</h3><ul>")
		for _, c := range result.Changes {
			fmt.Fprintf(&b, "<li><strong>%s:</strong> %s</li>",
				typeTitle(c.Type), html.EscapeString(c.Description))
		}
		b.WriteString("</ul>")
	default:
		b.WriteString("<h3>No Changes</h3><p>No significant changes detected.</p>")
	}

	b.WriteString("<hr><p><em>Automated report from the sports wagering data monitor.</em></p></body></html>")
	return b.String()
}

// typeTitle turns a change type like "new_weekly_data" into "New Weekly Data".
func typeTitle(t model.ChangeType) string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
