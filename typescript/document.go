package typescript

import (
	"bytes"

	"github.com/gqlc/tsgen"
	"github.com/gqlc/tsgen/meta"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// Selection is a node of an operation's selection tree. A leaf has no
// children.
type Selection struct {
	Key      string
	Children []*Selection

	// InlineFragment is set for the per member fragments of a union;
	// OnType names the member.
	InlineFragment bool
	OnType         string
}

// Argument is a root field argument, passed as a document variable of the
// same name.
type Argument struct {
	Name string
	Type *ast.Type
}

// Operation describes the document generated for a root field.
type Operation struct {
	// Name is the operation name in the document.
	Name string

	RootField string
	Kind      tsgen.OperationKind
	Arguments []Argument

	// Selection selects the root field; its children select the result.
	Selection *Selection
}

// DocumentBuilder builds operation documents selecting the whole result
// graph of root fields.
type DocumentBuilder struct {
	resolver meta.Resolver
}

// NewDocumentBuilder returns a DocumentBuilder over the schema's types.
func NewDocumentBuilder(schema *tsgen.Schema) *DocumentBuilder {
	return &DocumentBuilder{resolver: meta.Resolver{Types: schema.Types}}
}

// Build describes the operation of the given kind which selects field.
//
// Object and interface results select all their fields and unions select
// one inline fragment per member. A composite type already being expanded
// on the current path is not expanded again; the field selecting it is left
// out, as is any composite field which ends up with nothing to select.
// Nested fields requiring arguments are left out as well, since the
// document has no variables for them.
func (b *DocumentBuilder) Build(field *ast.FieldDefinition, kind tsgen.OperationKind) *Operation {
	op := &Operation{
		Name:      Capitalize(field.Name),
		RootField: field.Name,
		Kind:      kind,
		Selection: &Selection{Key: field.Name},
	}
	for _, arg := range field.Arguments {
		op.Arguments = append(op.Arguments, Argument{Name: arg.Name, Type: arg.Type})
	}

	m := b.resolver.Resolve(field.Type)
	if m.IsComposite() {
		op.Selection.Children = b.expand(m.Base, nil)
	}
	return op
}

func (b *DocumentBuilder) expand(def *ast.Definition, path []string) (sels []*Selection) {
	path = append(path, def.Name)

	switch def.Kind {
	case ast.Union:
		for _, member := range def.Types {
			mdef := b.resolver.Types[member]
			if mdef == nil || onPath(path, member) {
				continue
			}

			children := b.expand(mdef, path)
			if len(children) == 0 {
				continue
			}
			sels = append(sels, &Selection{Key: member, InlineFragment: true, OnType: member, Children: children})
		}
	case ast.Object, ast.Interface:
		for _, f := range def.Fields {
			if tsgen.IsReserved(f.Name) || requiresArguments(f) {
				continue
			}

			m := b.resolver.Resolve(f.Type)
			if !m.IsComposite() {
				sels = append(sels, &Selection{Key: f.Name})
				continue
			}
			if onPath(path, m.Name) {
				continue
			}

			children := b.expand(m.Base, path)
			if len(children) == 0 {
				continue
			}
			sels = append(sels, &Selection{Key: f.Name, Children: children})
		}
	}
	return
}

func onPath(path []string, name string) bool {
	for _, p := range path {
		if p == name {
			return true
		}
	}
	return false
}

func requiresArguments(f *ast.FieldDefinition) bool {
	for _, arg := range f.Arguments {
		if arg.Type.NonNull && arg.DefaultValue == nil {
			return true
		}
	}
	return false
}

// Document returns the operation as a GraphQL query document.
func (op *Operation) Document() *ast.QueryDocument {
	def := &ast.OperationDefinition{
		Operation: op.Kind.Keyword(),
		Name:      op.Name,
	}

	root := &ast.Field{Name: op.RootField}
	for _, arg := range op.Arguments {
		def.VariableDefinitions = append(def.VariableDefinitions, &ast.VariableDefinition{
			Variable: arg.Name,
			Type:     arg.Type,
		})
		root.Arguments = append(root.Arguments, &ast.Argument{
			Name:  arg.Name,
			Value: &ast.Value{Kind: ast.Variable, Raw: arg.Name},
		})
	}
	root.SelectionSet = selectionSet(op.Selection.Children)
	def.SelectionSet = ast.SelectionSet{root}

	return &ast.QueryDocument{Operations: ast.OperationList{def}}
}

func selectionSet(sels []*Selection) ast.SelectionSet {
	if len(sels) == 0 {
		return nil
	}

	set := make(ast.SelectionSet, 0, len(sels))
	for _, sel := range sels {
		if sel.InlineFragment {
			set = append(set, &ast.InlineFragment{
				TypeCondition: sel.OnType,
				SelectionSet:  selectionSet(sel.Children),
			})
			continue
		}
		set = append(set, &ast.Field{Name: sel.Key, SelectionSet: selectionSet(sel.Children)})
	}
	return set
}

// String returns the formatted GraphQL source of the operation.
func (op *Operation) String() string {
	var b bytes.Buffer
	formatter.NewFormatter(&b).FormatQueryDocument(op.Document())
	return b.String()
}
