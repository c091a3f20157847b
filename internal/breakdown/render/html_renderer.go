package render

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"

	breakdowndomain "github.com/smallbiznis/storefront/internal/breakdown/domain"
)

const receiptHTMLTemplate = `<!doctype html>
<html lang="{{.View.Locale}}">
<head>
  <meta charset="utf-8" />
  <title>{{.View.Title}}{{if .View.ReceiptID}} {{.View.ReceiptID}}{{end}}</title>
  <style>
    :root {
      --primary: {{.View.PrimaryColor}};
      --font: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px;
      font-family: var(--font);
      color: #1a1f36;
      background: #f7f9fc;
      -webkit-font-smoothing: antialiased;
    }
    .receipt-card {
      background: #ffffff;
      max-width: 560px;
      margin: 0 auto;
      padding: 48px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.04);
      border-radius: 4px;
    }
    .header {
      display: flex;
      justify-content: space-between;
      margin-bottom: 32px;
    }
    .header h1 {
      margin: 0;
      font-size: 24px;
      font-weight: 700;
      color: var(--primary);
    }
    .meta {
      text-align: right;
      font-size: 12px;
      color: #8792a2;
    }
    .row {
      display: flex;
      justify-content: space-between;
      padding: 8px 0;
      font-size: 14px;
    }
    .row-label { color: #697386; }
    .row-value { text-align: right; font-weight: 500; }
    .period {
      display: flex;
      justify-content: space-between;
      padding-bottom: 16px;
      margin-bottom: 8px;
      border-bottom: 1px solid #e3e8ee;
    }
    .period .label {
      font-size: 11px;
      text-transform: uppercase;
      color: #8792a2;
      font-weight: 600;
      letter-spacing: 0.3px;
    }
    .period .value { font-size: 14px; }
    .children { padding-left: 12px; }
    .subtotal { border-top: 1px solid #e3e8ee; margin-top: 8px; }
    .total {
      border-top: 1px solid #e3e8ee;
      margin-top: 10px;
      padding-top: 12px;
      font-weight: 700;
      font-size: 16px;
    }
    .note {
      margin-top: 32px;
      font-size: 12px;
      color: #8792a2;
    }
  </style>
</head>
<body>
  <div class="receipt-card">
    <div class="header">
      <h1>{{.View.MarketplaceName}}</h1>
      <div class="meta">
        <div>{{.View.Title}}</div>
        {{if .View.ReceiptID}}<div>#{{.View.ReceiptID}}</div>{{end}}
        {{if .View.IssuedAt}}<div>{{.View.IssuedAt}}</div>{{end}}
      </div>
    </div>
    {{range .Breakdown.Rows}}
      {{if eq (kind .) "booking_period"}}
        {{with .Period}}
        <div class="period" id="{{$.IDPrefix}}booking-period">
          <div><div class="label">{{.StartLabel}}</div><div class="value">{{.Start}}</div></div>
          <div><div class="label">{{.EndLabel}}</div><div class="value">{{.End}}</div></div>
        </div>
        {{end}}
      {{else if eq (kind .) "unknown_items"}}
        <div class="row" id="{{$.IDPrefix}}{{.ID}}"><span class="row-label">{{.Label}}</span></div>
        <div class="children">
        {{range .Items}}
          <div class="row" id="{{$.IDPrefix}}{{.ID}}">
            <span class="row-label">{{.Label}}</span>
            <span class="row-value">{{.FormattedValue}}</span>
          </div>
        {{end}}
        </div>
      {{else}}
        <div class="row {{rowClass .}}" id="{{$.IDPrefix}}{{.ID}}">
          <span class="row-label">{{.Label}}</span>
          <span class="row-value">{{.FormattedValue}}</span>
        </div>
      {{end}}
    {{end}}
    {{if .Breakdown.CommissionNote}}
    <div class="note">{{.Breakdown.NoteText}}</div>
    {{end}}
  </div>
</body>
</html>
`

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type HTMLRenderer struct {
	tpl *template.Template
}

type htmlInput struct {
	Breakdown breakdowndomain.Breakdown
	View      View
	IDPrefix  string
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"kind":     rowKind,
		"rowClass": rowClass,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("receipt").Funcs(funcs).Parse(receiptHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(b breakdowndomain.Breakdown, view View) (string, error) {
	input := htmlInput{
		Breakdown: b,
		View:      view.normalized(),
		IDPrefix:  "breakdown-" + string(b.Role) + "-",
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func rowKind(row breakdowndomain.Row) string {
	return string(row.Kind)
}

func rowClass(row breakdowndomain.Row) string {
	switch row.Kind {
	case breakdowndomain.RowSubtotal:
		return "subtotal"
	case breakdowndomain.RowTotal:
		return "total"
	default:
		return strings.ReplaceAll(string(row.Kind), "_", "-")
	}
}

func sanitizeColor(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "#111827"
	}
	if hexColorPattern.MatchString(trimmed) {
		return trimmed
	}
	return "#111827"
}
