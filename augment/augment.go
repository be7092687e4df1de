// Package augment extends a schema with the shapes of hand written
// operation documents, so that the generators treat every such operation
// as a root field of its own.
//
// For an operation
//
//	query GetUser($id: ID!) { user(id: $id) { id name } }
//
// the augmenter synthesizes
//
//	input GetUserInput { id: ID! }
//	type GetUser { user: User }
//	extend type Query { GetUser(id: ID!): GetUser }
//
// Result types reflect the schema types of the top level fields only.
package augment

import (
	"bytes"
	"fmt"

	"github.com/elliotchance/orderedmap/v3"
	"github.com/gqlc/tsgen"
	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
)

// SourceName is the name of the synthesized SDL source.
const SourceName = "operations.graphql"

// Augmenter synthesizes SDL for operation documents.
type Augmenter struct {
	Schema *tsgen.Schema

	// Aliases renames the arguments of a synthesized root field, by
	// operation name then variable name. Variables without an alias keep
	// their name.
	Aliases map[string]map[string]string
}

type shape struct {
	kind   tsgen.OperationKind
	doc    string
	input  *ast.Definition
	result *ast.Definition
	field  *ast.FieldDefinition
}

// Augment extends schema with the operations found in sources.
func Augment(schema *tsgen.Schema, sources ...*ast.Source) (*tsgen.Schema, []*tsgen.TypeError, error) {
	a := &Augmenter{Schema: schema}
	return a.Augment(sources...)
}

// Augment parses the operation documents in sources and returns the schema
// rebuilt with the synthesized SDL appended to its own sources. Problems
// with individual operations are returned as warnings; malformed documents
// are errors.
func (a *Augmenter) Augment(sources ...*ast.Source) (*tsgen.Schema, []*tsgen.TypeError, error) {
	docs := make([]*ast.QueryDocument, 0, len(sources))
	for _, src := range sources {
		doc, err := parser.ParseQuery(src)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "augment: parsing %s", src.Name)
		}
		docs = append(docs, doc)
	}

	sdl, warnings := a.Definitions(docs...)
	if len(sdl.Definitions) == 0 && len(sdl.Extensions) == 0 {
		return a.Schema, warnings, nil
	}

	sources = append(append([]*ast.Source{}, a.Schema.Sources...), &ast.Source{Name: SourceName, Input: Print(sdl)})
	schema, err := tsgen.LoadSchema(sources...)
	if err != nil {
		return nil, warnings, errors.Wrap(err, "augment: rebuilding schema")
	}
	return schema, warnings, nil
}

// Definitions synthesizes the SDL for the operations of docs, in the order
// they are found. Fields the schema does not resolve are reported and left
// out. An operation named like an earlier one replaces it. Operations
// whose names are taken by the schema, or which resolve no field, are
// reported and skipped.
func (a *Augmenter) Definitions(docs ...*ast.QueryDocument) (*ast.SchemaDocument, []*tsgen.TypeError) {
	warnings := tsgen.CheckTypes(a.Schema, docs, UnresolvedFields)

	shapes := orderedmap.NewOrderedMap[string, *shape]()
	for _, doc := range docs {
		docName := tsgen.DocName(doc)

		for _, op := range doc.Operations {
			s, err := a.shape(op)
			if err != nil {
				warnings = append(warnings, &tsgen.TypeError{Doc: docName, Msg: err.Error()})
				continue
			}
			if s == nil {
				continue
			}
			s.doc = docName

			name := s.result.Name
			if prev, ok := shapes.Get(name); ok {
				warnings = append(warnings, &tsgen.TypeError{
					Doc: docName,
					Msg: fmt.Sprintf("operation %s redeclares the one in %s", name, prev.doc),
				})
			}
			shapes.Set(name, s)
		}
	}

	sdl := new(ast.SchemaDocument)
	for el := shapes.Front(); el != nil; el = el.Next() {
		s := el.Value
		if s.input != nil {
			sdl.Definitions = append(sdl.Definitions, s.input)
		}
		sdl.Definitions = append(sdl.Definitions, s.result)
		sdl.Extensions = append(sdl.Extensions, &ast.Definition{
			Kind:   ast.Object,
			Name:   a.Schema.RootType(s.kind).Name,
			Fields: ast.FieldList{s.field},
		})
	}
	return sdl, warnings
}

// OperationName returns the name of op, defaulting to Unnamed{Kind}.
func OperationName(op *ast.OperationDefinition, kind tsgen.OperationKind) string {
	if op.Name != "" {
		return op.Name
	}
	return "Unnamed" + string(kind)
}

// shape synthesizes the definitions of a single operation. It returns nil
// when the operation targets a root type the schema lacks, which
// UnresolvedFields already reports.
func (a *Augmenter) shape(op *ast.OperationDefinition) (*shape, error) {
	kind, ok := tsgen.OperationKindOf(op.Operation)
	if !ok {
		return nil, nil
	}
	root := a.Schema.RootType(kind)
	if root == nil {
		return nil, nil
	}

	name := OperationName(op, kind)
	if err := a.available(name, root); err != nil {
		return nil, err
	}

	s := &shape{kind: kind}

	s.result = &ast.Definition{
		Kind:        ast.Object,
		Name:        name,
		Description: fmt.Sprintf("Result of the %s operation.", name),
	}
	for _, sel := range op.SelectionSet {
		f, ok := sel.(*ast.Field)
		if !ok || tsgen.IsReserved(f.Name) {
			continue
		}

		def := root.Fields.ForName(f.Name)
		if def == nil {
			continue
		}

		key := f.Alias
		if key == "" {
			key = f.Name
		}
		if s.result.Fields.ForName(key) != nil {
			continue
		}
		s.result.Fields = append(s.result.Fields, &ast.FieldDefinition{
			Name:        key,
			Type:        def.Type,
			Description: def.Description,
		})
	}
	if len(s.result.Fields) == 0 {
		return nil, fmt.Errorf("operation %s selects no field of %s and is skipped", name, root.Name)
	}

	s.field = &ast.FieldDefinition{Name: name, Type: ast.NamedType(name, nil)}
	if len(op.VariableDefinitions) > 0 {
		s.input = &ast.Definition{
			Kind:        ast.InputObject,
			Name:        name + "Input",
			Description: fmt.Sprintf("Variables of the %s operation.", name),
		}
	}
	for _, v := range op.VariableDefinitions {
		s.input.Fields = append(s.input.Fields, &ast.FieldDefinition{
			Name:         v.Variable,
			Type:         v.Type,
			DefaultValue: v.DefaultValue,
		})
		s.field.Arguments = append(s.field.Arguments, &ast.ArgumentDefinition{
			Name:         a.alias(name, v.Variable),
			Type:         v.Type,
			DefaultValue: v.DefaultValue,
		})
	}
	return s, nil
}

// available reports an error when a synthesized name is already taken by
// the schema.
func (a *Augmenter) available(name string, root *ast.Definition) error {
	for _, n := range []string{name, name + "Input"} {
		if def, ok := a.Schema.Types[n]; ok {
			return fmt.Errorf("operation %s collides with %s %s and is skipped", name, def.Kind, def.Name)
		}
	}
	if root.Fields.ForName(name) != nil {
		return fmt.Errorf("operation %s collides with field %s.%s and is skipped", name, root.Name, name)
	}
	return nil
}

func (a *Augmenter) alias(op, variable string) string {
	if alias, ok := a.Aliases[op][variable]; ok && alias != "" {
		return alias
	}
	return variable
}

// Print formats synthesized SDL.
func Print(sdl *ast.SchemaDocument) string {
	var b bytes.Buffer
	formatter.NewFormatter(&b).FormatSchemaDocument(sdl)
	return b.String()
}
