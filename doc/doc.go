// Package doc contains a Documentation generator for the operations the
// TypeScript generator emits.
package doc

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/gqlc/tsgen"
	"github.com/gqlc/tsgen/typescript"
	"github.com/vektah/gqlparser/v2/ast"
	"gitlab.com/golang-commonmark/markdown"
)

// Generator generates a catalog of the operations of a schema.
type Generator struct {
	sync.Once
	md   *markdown.Markdown
	tmpl *template.Template
}

func (gen *Generator) initTmpls() {
	gen.md = markdown.New()
	gen.tmpl = template.New("doc").Funcs(map[string]interface{}{
		"Inline": inline,
	})
	template.Must(gen.tmpl.Parse(mdTmpl))
	template.Must(gen.tmpl.New("opTmpl").Parse(opTmpl))
	template.Must(gen.tmpl.New("argListTmpl").Parse(argListTmpl))
}

// Options configures the catalog.
type Options struct {
	Title string `json:"title" yaml:"title"`

	// HTML additionally renders the catalog as HTML.
	HTML bool `json:"html" yaml:"html"`

	// Filename is the base name of the outputs. Defaults to operations.
	Filename string `json:"filename" yaml:"filename"`

	// Bindings lists the hooks generated for each operation.
	Bindings bool `json:"bindings" yaml:"bindings"`
}

// Generate generates documentation for the operations of the given schema.
func (gen *Generator) Generate(ctx context.Context, schema *tsgen.Schema, opts string) (err error) {
	defer func() {
		if err != nil {
			err = tsgen.Error{
				GenName: "doc",
				Msg:     err.Error(),
			}
		}
	}()

	// Initialize templates here so they don't occur when doc gen isn't used
	gen.Do(gen.initTmpls)

	var optData Options
	if len(opts) > 0 {
		err = json.Unmarshal(json.RawMessage(opts), &optData)
		if err != nil {
			return
		}
	}
	if optData.Filename == "" {
		optData.Filename = "operations"
	}

	tmplData := extractOperations(schema, optData)

	var b bytes.Buffer
	err = gen.tmpl.Execute(&b, tmplData)
	if err != nil {
		return
	}

	artifacts := []tsgen.Artifact{{Name: optData.Filename, Ext: "md", Content: b.String()}}
	if optData.HTML {
		var h bytes.Buffer
		err = gen.md.Render(&h, b.Bytes())
		if err != nil {
			return
		}
		artifacts = append(artifacts, tsgen.Artifact{Name: optData.Filename, Ext: "html", Content: h.String()})
	}

	return tsgen.WriteArtifacts(ctx, artifacts...)
}

type mdData struct {
	Title    string
	Sections []*sectionData
}

type sectionData struct {
	Kind       tsgen.OperationKind
	Operations opList
}

type opData struct {
	Field       string
	Description string
	Returns     *ast.Type
	Args        ast.ArgumentDefinitionList
	Document    string
	Generated   []string
}

type opList []*opData

func (l opList) Len() int           { return len(l) }
func (l opList) Less(i, j int) bool { return l[i].Field < l[j].Field }
func (l opList) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }

func extractOperations(schema *tsgen.Schema, opts Options) *mdData {
	tmplData := &mdData{Title: opts.Title}
	if tmplData.Title == "" {
		tmplData.Title = "Operations"
	}

	docs := typescript.NewDocumentBuilder(schema)
	for _, root := range schema.RootOperations() {
		section := &sectionData{Kind: root.Kind}

		for _, f := range root.Type.Fields {
			if tsgen.IsReserved(f.Name) {
				continue
			}

			op := &opData{
				Field:       f.Name,
				Description: f.Description,
				Returns:     f.Type,
				Args:        f.Arguments,
				Document:    strings.TrimSpace(docs.Build(f, root.Kind).String()) + "\n",
				Generated: []string{
					typescript.ResultName(f.Name, root.Kind),
					typescript.InputName(f.Name, root.Kind),
					typescript.DocumentName(f.Name, root.Kind),
				},
			}
			if opts.Bindings {
				op.Generated = append(op.Generated, typescript.HookName(f.Name, root.Kind, ""))
			}
			section.Operations = append(section.Operations, op)
		}

		// Lexicographically sort operations
		sort.Sort(section.Operations)
		tmplData.Sections = append(tmplData.Sections, section)
	}
	return tmplData
}

// inline folds text onto a single line fit for a table cell.
func inline(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", "\\|")
}
