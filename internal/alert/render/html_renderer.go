package render

import (
	"bytes"
	"html/template"
	"time"
)

const emailStyles = `
    body {
      margin: 0;
      padding: 24px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .wrap {
      max-width: 640px;
      margin: 0 auto;
    }
    .header {
      border-bottom: 2px solid #1d4ed8;
      padding-bottom: 12px;
      margin-bottom: 20px;
    }
    .header h1 {
      font-size: 18px;
      margin: 0;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      font-size: 14px;
    }
    th, td {
      padding: 8px 10px;
      border-bottom: 1px solid #e5e7eb;
      text-align: left;
    }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: #6b7280;
    }
    .risk {
      font-weight: 600;
    }
    .footer {
      border-top: 1px solid #e5e7eb;
      margin-top: 24px;
      padding-top: 12px;
      font-size: 12px;
      color: #6b7280;
    }
`

const violationsHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>New violations for {{.FacilityName}}</title>
  <style>` + emailStyles + `</style>
</head>
<body>
  <div class="wrap">
    <div class="header"><h1>New violations reported for {{.FacilityName}}</h1></div>
    <table>
      <thead>
        <tr><th>Risk Level</th><th>Description</th><th>Date</th></tr>
      </thead>
      <tbody>
        {{range .Violations}}
        <tr>
          <td class="risk">{{.RiskLevel}}</td>
          <td>{{.Description}}</td>
          <td>{{formatDate .Date}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    <div class="footer">You receive this email because you follow this facility on CareWatch.</div>
  </div>
</body>
</html>
`

const inspectionsHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>New inspections for {{.FacilityName}}</title>
  <style>` + emailStyles + `</style>
</head>
<body>
  <div class="wrap">
    <div class="header"><h1>New inspections for {{.FacilityName}}</h1></div>
    <table>
      <thead>
        <tr><th>Type</th><th>Result</th><th>Date</th></tr>
      </thead>
      <tbody>
        {{range .Inspections}}
        <tr>
          <td>{{.Type}}</td>
          <td>{{.Result}}</td>
          <td>{{formatDate .Date}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    <div class="footer">You receive this email because you follow this facility on CareWatch.</div>
  </div>
</body>
</html>
`

const ratingHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Rating update for {{.FacilityName}}</title>
  <style>` + emailStyles + `</style>
</head>
<body>
  <div class="wrap">
    <div class="header"><h1>Rating information updated for {{.FacilityName}}</h1></div>
    <table>
      <thead>
        <tr><th>Field</th><th>Previous</th><th>Current</th></tr>
      </thead>
      <tbody>
        {{range .Fields}}
        <tr>
          <td>{{.Label}}</td>
          <td>{{.Previous}}</td>
          <td>{{.Current}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    <div class="footer">You receive this email because you follow this facility on CareWatch.</div>
  </div>
</body>
</html>
`

const digestHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Your daily CareWatch digest</title>
  <style>` + emailStyles + `</style>
</head>
<body>
  <div class="wrap">
    <div class="header"><h1>Daily digest for {{formatDate .Date}}</h1></div>
    {{if .DisplayName}}<p>Hi {{.DisplayName}},</p>{{end}}
    <p>Here is what changed at the facilities you follow in the last 24 hours:</p>
    <table>
      <thead>
        <tr><th>When</th><th>Update</th></tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>{{formatTime .CreatedAt}}</td>
          <td>{{.Message}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    <div class="footer">You receive this digest because it is enabled in your CareWatch notification settings.</div>
  </div>
</body>
</html>
`

type HTMLRenderer struct {
	violations  *template.Template
	inspections *template.Template
	rating      *template.Template
	digest      *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"formatDate": formatDate,
		"formatTime": formatTime,
	}
	parse := func(name, body string) *template.Template {
		return template.Must(template.New(name).Funcs(funcs).Parse(body))
	}
	return &HTMLRenderer{
		violations:  parse("violations", violationsHTMLTemplate),
		inspections: parse("inspections", inspectionsHTMLTemplate),
		rating:      parse("rating", ratingHTMLTemplate),
		digest:      parse("digest", digestHTMLTemplate),
	}
}

func (r *HTMLRenderer) RenderViolations(input ViolationsInput) (string, error) {
	return execute(r.violations, input)
}

func (r *HTMLRenderer) RenderInspections(input InspectionsInput) (string, error) {
	return execute(r.inspections, input)
}

func (r *HTMLRenderer) RenderRatingChange(input RatingInput) (string, error) {
	return execute(r.rating, input)
}

func (r *HTMLRenderer) RenderDigest(input DigestInput) (string, error) {
	return execute(r.digest, input)
}

func execute(tpl *template.Template, input any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02")
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.UTC().Format("2006-01-02 15:04")
}
