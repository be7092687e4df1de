package doc

const fence = "```"

const mdTmpl = `# {{.Title}}
{{range .Sections}}
## {{.Kind}}
{{range .Operations}}
{{template "opTmpl" .}}{{end}}{{end}}`

const opTmpl = `### {{.Field}}
{{with .Description}}
{{.}}
{{end}}
*Returns*: **{{.Returns.String}}**
{{with .Args}}
*Args*:

{{template "argListTmpl" .}}
{{end}}
` + fence + `graphql
{{.Document}}` + fence + `

*Generates*: {{range $i, $name := .Generated}}{{if $i}}, {{end}}` + "`{{$name}}`" + `{{end}}
`

const argListTmpl = `{{range $i, $arg := .}}{{if $i}}

{{end}}- {{$arg.Name}}

	*Type*: **{{$arg.Type.String}}**{{with $arg.DefaultValue}} = {{.String}}{{end}}{{with $arg.Description}}

	{{Inline .}}{{end}}{{end}}`
