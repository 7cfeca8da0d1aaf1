package render

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/2024eb03012-afk/recruitment-os/internal/signal"
	"github.com/2024eb03012-afk/recruitment-os/internal/stats"
)

// RenderSignals renders the hiring-signal rows into table-body HTML.
// rows is the (possibly filtered) set to display; total is the
// unfiltered dataset size, which drives the "K of N signals" counter.
func RenderSignals(rows []*signal.Signal, total int) Table {
	if total == 0 {
		return Table{HTML: EmptyState, Count: CountLabel(0, "signals")}
	}

	count := CountLabel(len(rows), "signals")
	if len(rows) != total {
		count = fmt.Sprintf("%d of %d signals", len(rows), total)
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString("<tr>")
		for _, col := range signal.Columns {
			b.WriteString(signalCell(r.Field(col.Key), col.Key, r))
		}
		b.WriteString("</tr>")
	}
	return Table{HTML: b.String(), Count: count, Rows: len(rows)}
}

func signalCell(value, key string, row *signal.Signal) string {
	if value == "" || value == "-" {
		return `<td class="hs-cell">-</td>`
	}

	switch key {
	case signal.KeySeniorLinkedin:
		if emps := signal.ParseEmployees(value); len(emps) > 0 {
			title := fmt.Sprintf("Senior Team (%d)", len(emps))
			label := fmt.Sprintf("View Team (%d)", len(emps))
			return tdCell(modalButton(value, title, label, "employees", ""))
		}
		return tdCell(modalButton(value, "Senior LinkedIn Profiles", "View Profiles", "raw", ""))
	case signal.KeyCompanyWebsite:
		return tdCell(urlButton(value, "Website"))
	case signal.KeyCompanyLinkedin:
		return tdCell(urlButton(value, "LinkedIn"))
	case signal.KeyContactEmail:
		e := html.EscapeString(value)
		return tdCell(fmt.Sprintf(`<a href="mailto:%s" class="hs-link">%s</a>`, e, e))
	case signal.KeyCompanyDescription:
		return tdCell(viewButton(value, "Company Description", "Info"))
	case signal.KeyCompanyRecentNews:
		return tdCell(viewButton(value, "Recent News", "News"))
	case signal.KeyHiringScore:
		return tdCell(scoreBadge(value))
	case signal.KeyImpactLevel:
		return tdCell(viewButton(value, "Impact Details", impactLabel(value)))
	case signal.KeyOutreachMessage:
		return tdCell(outreachCell(value, row))
	}
	return tdCell(html.EscapeString(value))
}

func tdCell(inner string) string {
	return `<td class="hs-cell">` + inner + "</td>"
}

// modalButton emits the generic view trigger. The full text travels
// URL-encoded in a data attribute so the frontend modal can show it
// without another fetch.
func modalButton(content, title, label, kind, email string) string {
	emailAttr := ""
	if email != "" {
		emailAttr = fmt.Sprintf(` data-contact-email="%s"`, html.EscapeString(email))
	}
	return fmt.Sprintf(
		`<button class="btn-view" data-type="%s" data-full-text="%s" data-modal-title="%s"%s>%s</button>`,
		kind, url.QueryEscape(content), html.EscapeString(title), emailAttr, html.EscapeString(label))
}

func viewButton(content, title, label string) string {
	if content == "" || content == "-" {
		return `<span class="text-muted">-</span>`
	}
	return modalButton(content, title, label, "raw", "")
}

func urlButton(u, label string) string {
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return `<span class="text-muted">-</span>`
	}
	return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener" class="btn-url">%s</a>`,
		html.EscapeString(u), html.EscapeString(label))
}

// scoreBadge colors the hiring score: high at 85 and above, medium at
// 70 and above, low below that. Non-numeric scores fall back to the
// escaped raw text.
func scoreBadge(score string) string {
	v, ok := stats.ParseScore(score)
	if !ok {
		return html.EscapeString(score)
	}
	class := "score-low"
	switch {
	case v >= 85:
		class = "score-high"
	case v >= 70:
		class = "score-medium"
	}
	return fmt.Sprintf(`<span class="match-score-badge %s">%g%%</span>`, class, v)
}

// impactLabel derives the short button label from an impact-level
// value: the text before an early colon, else a 20-character prefix.
func impactLabel(value string) string {
	if i := strings.Index(value, ":"); i > 0 && i < 30 {
		return strings.TrimSpace(value[:i])
	}
	if r := []rune(value); len(r) > 20 {
		return strings.TrimSpace(string(r[:20])) + "…"
	}
	return value
}

// outreachCell pairs the message view button with a direct send
// button when the row has a contact email.
func outreachCell(value string, row *signal.Signal) string {
	view := modalButton(value, "Outreach Message", "Email", "raw", row.ContactEmail)
	send := ""
	if row.ContactEmail != "" {
		send = fmt.Sprintf(
			`<button class="btn-send-email" data-email="%s" data-full-text="%s" data-company-name="%s" title="Send Email">Send</button>`,
			html.EscapeString(row.ContactEmail), url.QueryEscape(value), html.EscapeString(row.CompanyName))
	}
	return `<div class="outreach-cell">` + view + send + `</div>`
}
