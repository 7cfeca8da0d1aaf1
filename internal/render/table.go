// Package render projects record sequences into the HTML fragments and
// chart series consumed by the dashboard frontend.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/2024eb03012-afk/recruitment-os/internal/lead"
)

// EmptyState is the marker served instead of table rows when the
// dataset is empty.
const EmptyState = `<div class="empty-state">No data to display. Click Refresh to load records.</div>`

// Truncation thresholds, in characters of the raw field value.
const (
	LimitFreeText    = 100
	LimitDescription = 80
	LimitURLDisplay  = 30
)

// CountLabel formats the visible record counter, e.g. "12 records".
func CountLabel(n int, noun string) string {
	return fmt.Sprintf("%d %s", n, noun)
}

// Table is one rendered tabular view plus the count contract values
// the frontend asserts against.
type Table struct {
	HTML  string `json:"html"`
	Count string `json:"count"`
	Rows  int    `json:"rows"`
}

// RenderLeads renders the lead rows into table-body HTML. Rows arrive
// already in presentation order. An empty input yields the
// empty-state marker and a "0 records" count.
func RenderLeads(rows []*lead.Lead) Table {
	if len(rows) == 0 {
		return Table{HTML: EmptyState, Count: CountLabel(0, "records")}
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString("<tr>")
		cell(&b, r.CompanyName)
		cell(&b, r.JobType)
		cell(&b, r.City)
		wrapCell(&b, Expandable(r.JD, LimitFreeText))
		rawCell(&b, FormatURL(r.CompanyJobURL))
		cell(&b, r.Salary)
		wrapCell(&b, Expandable(r.CompanyDescription, LimitDescription))
		cell(&b, r.Title)
		cell(&b, r.MatchScore)
		rawCell(&b, FormatURL(r.Website))
		cell(&b, r.DecisionMakerEmail)
		b.WriteString(`<td class="wrap outreach-cell">`)
		b.WriteString(Expandable(r.OutreachEmailText, LimitFreeText))
		b.WriteString(`<button class="btn-send-email" title="Send Email">Send</button></td>`)
		b.WriteString("</tr>")
	}
	return Table{HTML: b.String(), Count: CountLabel(len(rows), "records"), Rows: len(rows)}
}

func cell(b *strings.Builder, v string) {
	b.WriteString("<td>")
	b.WriteString(html.EscapeString(v))
	b.WriteString("</td>")
}

func rawCell(b *strings.Builder, inner string) {
	b.WriteString("<td>")
	b.WriteString(inner)
	b.WriteString("</td>")
}

func wrapCell(b *strings.Builder, inner string) {
	b.WriteString(`<td class="wrap">`)
	b.WriteString(inner)
	b.WriteString("</td>")
}

// Expandable renders a long text field truncated with an expand
// affordance carrying the full escaped text. Values at or under the
// limit render as plain escaped text. Truncation counts runes of the
// raw value before escaping, so an entity is never cut in half.
func Expandable(text string, limit int) string {
	if text == "" {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return html.EscapeString(text)
	}
	full := html.EscapeString(text)
	short := html.EscapeString(string(runes[:limit]))
	var b strings.Builder
	b.WriteString(`<div class="expandable-text" title="Click to view full text">`)
	b.WriteString(`<div class="text-content" style="display:none;">`)
	b.WriteString(full)
	b.WriteString(`</div><div class="truncated-text">`)
	b.WriteString(short)
	b.WriteString(`...</div><div class="expand-hint">Click to expand</div></div>`)
	return b.String()
}

// FormatURL renders a URL field as a link whose display text is
// capped at LimitURLDisplay characters. Empty values render empty.
func FormatURL(u string) string {
	if u == "" {
		return ""
	}
	display := u
	if r := []rune(u); len(r) > LimitURLDisplay {
		display = string(r[:LimitURLDisplay]) + "..."
	}
	return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
		html.EscapeString(u), html.EscapeString(display))
}
