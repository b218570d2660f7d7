package export

import (
	"fmt"
	"html/template"
	"io"
)

var printTemplate = template.Must(template.New("print").Funcs(template.FuncMap{
	"label": GroupLabel,
	"vma":   FormatVMA,
}).Parse(`<!doctype html>
<html>
<head>
<meta charset="UTF-8">
<title>Impression - Groupes {{.Options.PrintTitle}}</title>
<style>
table{width:100%;border-collapse:collapse;margin-top:8px}
th,td{border:1px solid #ccc;padding:6px;text-align:left}
th{background:#f2f2f2}
tr.separator-row td{border:none;height:10px}
.unassigned-title{margin:12px 0 6px;font-weight:700;color:#cc5200}
.unassigned thead th{background:#ffe9cc}
.unassigned tbody td{background:#fff4e6}
</style>
</head>
<body>
<h1 style="text-align:center;">{{.Options.PrintTitle}}</h1>
<h2>{{.Sheet.Title}}</h2>
<table class="zenos-unique">
<thead><tr><th>Groupe</th><th>Nom</th><th>Prénom</th><th>Classe</th><th>Sexe</th><th>VMA</th><th>Distance</th></tr></thead>
<tbody>
{{- range $i, $g := .Sheet.Groups}}
{{- range $j, $p := $g}}
<tr>{{if eq $j 0}}<td rowspan="{{len $g}}" style="font-weight:700">{{label $i}}</td>{{end}}<td>{{$p.Nom}}</td><td>{{$p.Prenom}}</td><td>{{$p.Classe}}</td><td>{{$p.Sexe}}</td><td>{{vma $p.VMA}}</td><td>{{$p.Distance}}</td></tr>
{{- end}}
<tr class="separator-row"><td colspan="7"></td></tr>
{{- end}}
</tbody>
</table>
{{- if .Sheet.Remainder}}
<div class="unassigned-title">Élèves à attribuer manuellement car groupes complets :</div>
<table class="unassigned">
<thead><tr><th>Nom</th><th>Prénom</th><th>Classe</th><th>Sexe</th><th>VMA</th><th>Distance</th></tr></thead>
<tbody>
{{- range .Sheet.Remainder}}
<tr><td>{{.Nom}}</td><td>{{.Prenom}}</td><td>{{.Classe}}</td><td>{{.Sexe}}</td><td>{{vma .VMA}}</td><td>{{.Distance}}</td></tr>
{{- end}}
</tbody>
</table>
{{- end}}
<div style="margin-top:24px;text-align:center;">{{.Options.Footer}}</div>
</body>
</html>
`))

// HTML writes a print-ready page with the groups and the remainder.
func HTML(w io.Writer, sheet Sheet, opts Options) error {
	data := struct {
		Sheet   Sheet
		Options Options
	}{sheet, opts.withDefaults()}
	if err := printTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render print page: %w", err)
	}
	return nil
}
