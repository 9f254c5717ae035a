// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render produces the styled HTML pages for research runs: the
// topic form and the report page with strategy, findings, detailed
// analysis, and run metrics.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/pdiddy/deep-research/pkg/types"
)

var markdown = goldmark.New()

type pageData struct {
	Res             types.RunResult
	DetailedHTML    template.HTML
	ConfidenceClass string
}

// Page renders the result envelope as a standalone HTML page. Error
// envelopes render the failure card with the accumulated telemetry.
func Page(res types.RunResult) ([]byte, error) {
	data := pageData{Res: res}

	if res.Report != nil {
		var buf bytes.Buffer
		if err := markdown.Convert([]byte(res.Report.Detailed), &buf); err != nil {
			return nil, fmt.Errorf("rendering detailed analysis: %w", err)
		}
		data.DetailedHTML = template.HTML(buf.String())
		data.ConfidenceClass = confidenceClass(res.Report.Confidence)
	}

	var out bytes.Buffer
	if err := pageTmpl.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return out.Bytes(), nil
}

// Index renders the topic submission form.
func Index() []byte {
	return []byte(indexHTML)
}

func confidenceClass(confidence string) string {
	fields := strings.Fields(strings.ToLower(confidence))
	if len(fields) == 0 {
		return "confidence-medium"
	}
	switch fields[0] {
	case "high", "medium", "low":
		return "confidence-" + fields[0]
	default:
		return "confidence-medium"
	}
}

const pageCSS = `
body { background:#0F172A; color:#E2E8F0; font-family:'Inter',sans-serif; max-width:900px; margin:0 auto; padding:24px; }
a { color:#60A5FA; }
.card { background:linear-gradient(135deg,#1E293B 0%,#0F172A 100%); padding:24px; border-radius:16px; margin-bottom:24px; border:1px solid #334155; box-shadow:0 4px 6px rgba(0,0,0,0.3); }
.card h2 { color:#60A5FA; margin-top:0; font-size:1.5em; border-bottom:2px solid #334155; padding-bottom:12px; }
.card ul { line-height:1.8; }
.card li { margin-bottom:8px; }
.reason { color:#94A3B8; font-size:0.9em; }
.stats { display:flex; gap:20px; flex-wrap:wrap; }
.stat-item { background:#1E293B; padding:12px 20px; border-radius:8px; border:1px solid #475569; }
.stat-label { color:#94A3B8; font-size:0.9em; }
.stat-value { color:#60A5FA; font-size:1.3em; font-weight:bold; }
.detailed { line-height:1.6; }
.detailed h3 { color:#93C5FD; }
.confidence-high { color:#34D399; }
.confidence-medium { color:#FBBF24; }
.confidence-low { color:#F87171; }
.error-card { background:#7F1D1D; color:#FCA5A5; padding:20px; border-radius:8px; }
textarea { width:100%; background:#1E293B; color:#E2E8F0; border:1px solid #475569; border-radius:8px; padding:12px; font-size:1em; }
button { background:linear-gradient(135deg,#3B82F6 0%,#1D4ED8 100%); border:none; color:white; font-size:1.1em; padding:12px 32px; border-radius:8px; cursor:pointer; }
`

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Deep Research</title>
<style>` + pageCSS + `</style>
</head>
<body>
{{if eq .Res.Status "error"}}
<div class="error-card">
<h2>Research Failed</h2>
<p>{{.Res.Error}}</p>
<p><small>Duration: {{.Res.DurationSeconds}}s | Cost: ${{.Res.Costs.CostUSD}}</small></p>
</div>
{{else}}
{{if .Res.Plan}}
<div class="card">
<h2>Research Strategy</h2>
<ul>
{{range $i, $s := .Res.Plan.Searches}}<li><b>Query {{inc $i}}:</b> {{$s.Query}}<br><span class="reason">{{$s.Reason}}</span></li>
{{end}}</ul>
</div>
{{end}}
<div class="card">
<h2>{{.Res.Report.Title}}</h2>
<p style="font-size:1.1em;line-height:1.7;">{{.Res.Report.Summary}}</p>
<p><span class="{{.ConfidenceClass}}">&#9679; {{.Res.Report.Confidence}}</span></p>
</div>
<div class="card">
<h2>Key Findings</h2>
<ul>
{{range .Res.Report.Findings}}<li>{{.}}</li>
{{end}}</ul>
</div>
<div class="card">
<h2>Detailed Analysis</h2>
<div class="detailed">{{.DetailedHTML}}</div>
</div>
<div class="card">
<h2>Research Metrics</h2>
<div class="stats">
<div class="stat-item"><div class="stat-label">API Calls</div><div class="stat-value">{{.Res.Costs.APICalls}}</div></div>
<div class="stat-item"><div class="stat-label">Estimated Cost</div><div class="stat-value">${{.Res.Costs.CostUSD}}</div></div>
<div class="stat-item"><div class="stat-label">Duration</div><div class="stat-value">{{.Res.DurationSeconds}}s</div></div>
{{if .Res.Plan}}<div class="stat-item"><div class="stat-label">Searches</div><div class="stat-value">{{len .Res.Plan.Searches}}</div></div>{{end}}
</div>
</div>
{{end}}
<p><a href="/">New research</a></p>
</body>
</html>
`))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Deep Research</title>
<style>` + pageCSS + `</style>
</head>
<body>
<div style="text-align:center;padding:40px 20px;">
<h1 style="color:#60A5FA;">Deep Research</h1>
<p style="color:#CBD5E1;">Comprehensive research reports from a single topic</p>
</div>
<div class="card">
<form method="post" action="/research">
<textarea name="topic" rows="3" placeholder="E.g., Latest trends in AI agent frameworks..."></textarea>
<p><button type="submit">Start Deep Research</button></p>
<p class="reason">Enter a research question or topic (minimum 10 characters). A run takes a few minutes.</p>
</form>
</div>
</body>
</html>
`
