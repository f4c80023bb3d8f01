package dump

const transactionTemplate = `
{{ .Date }} * {{ Quote .Payee }} {{ Quote .Desc }} {{ range $tag := .Tags }}#{{ $tag }}{{ end }}
    {{ range $k, $v := .Metadata -}}
    {{ $k }}: {{ Quote $v }}
    {{ end -}}
    {{ .ToAccount.ToString }} {{ FormatPrice .Amount }} {{ .Unit }}
    {{ .FromAccount.ToString }}
`

const openAccountTemplate = `
{{ range $a, $_ := . }}2000-01-01 open {{ $a }}
{{ end }}
`
