package typescript

import (
	"testing"

	"github.com/gqlc/tsgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

func rootField(t *testing.T, schema *tsgen.Schema, kind tsgen.OperationKind, name string) *ast.FieldDefinition {
	t.Helper()

	root := schema.RootType(kind)
	require.NotNil(t, root)

	f := root.Fields.ForName(name)
	require.NotNil(t, f, name)
	return f
}

func keys(sels []*Selection) (ks []string) {
	for _, sel := range sels {
		ks = append(ks, sel.Key)
	}
	return
}

func TestDocumentBuilder_Union(t *testing.T) {
	schema := loadSchema(t, `
type A { a: String, nested: C }
type B { b: Int }
type C { c: ID }
union U = A | B | C
type Query { u: U }
`)

	op := NewDocumentBuilder(schema).Build(rootField(t, schema, tsgen.Query, "u"), tsgen.Query)

	frags := op.Selection.Children
	require.Len(t, frags, 3)
	for i, member := range []string{"A", "B", "C"} {
		assert.True(t, frags[i].InlineFragment)
		assert.Equal(t, member, frags[i].OnType)
	}

	assert.Equal(t, []string{"a", "nested"}, keys(frags[0].Children))
	assert.Equal(t, []string{"c"}, keys(frags[0].Children[1].Children))
	assert.Equal(t, []string{"b"}, keys(frags[1].Children))
	assert.Equal(t, []string{"c"}, keys(frags[2].Children))
}

func TestDocumentBuilder_Arguments(t *testing.T) {
	schema := loadSchema(t, gallerySchema)

	op := NewDocumentBuilder(schema).Build(rootField(t, schema, tsgen.Mutation, "rename"), tsgen.Mutation)

	assert.Equal(t, "Rename", op.Name)
	assert.Equal(t, "rename", op.RootField)
	require.Len(t, op.Arguments, 2)
	assert.Equal(t, "id", op.Arguments[0].Name)
	assert.Equal(t, "ID!", op.Arguments[0].Type.String())
	assert.Equal(t, "String!", op.Arguments[1].Type.String())

	doc := op.Document()
	require.Len(t, doc.Operations, 1)

	def := doc.Operations[0]
	assert.Equal(t, ast.Mutation, def.Operation)
	require.Len(t, def.VariableDefinitions, 2)
	assert.Equal(t, "name", def.VariableDefinitions[1].Variable)

	root := def.SelectionSet[0].(*ast.Field)
	assert.Equal(t, "rename", root.Name)
	require.Len(t, root.Arguments, 2)
	assert.Equal(t, ast.Variable, root.Arguments[0].Value.Kind)
	assert.Equal(t, "id", root.Arguments[0].Value.Raw)
}

func TestDocumentBuilder_Cycles(t *testing.T) {
	schema := loadSchema(t, `
type Query { node: Tree }
type Tree { value: Int!, parent: Tree, children: [Tree!]!, owner: Owner }
type Owner { name: String, trees: [Tree] }
`)

	op := NewDocumentBuilder(schema).Build(rootField(t, schema, tsgen.Query, "node"), tsgen.Query)

	tree := op.Selection.Children
	assert.Equal(t, []string{"value", "owner"}, keys(tree))
	assert.Equal(t, []string{"name"}, keys(tree[1].Children))
}

func TestDocumentBuilder_SkipsEmptySelections(t *testing.T) {
	schema := loadSchema(t, `
type Query { a: A }
type A { id: ID, b: B }
type B { a: A }
`)

	op := NewDocumentBuilder(schema).Build(rootField(t, schema, tsgen.Query, "a"), tsgen.Query)
	assert.Equal(t, []string{"id"}, keys(op.Selection.Children))
}

func TestDocumentBuilder_RequiredArguments(t *testing.T) {
	schema := loadSchema(t, `
type Query { user: User }
type User {
  id: ID
  avatar(size: Int!): String
  posts(first: Int = 10): [String]
}
`)

	op := NewDocumentBuilder(schema).Build(rootField(t, schema, tsgen.Query, "user"), tsgen.Query)
	assert.Equal(t, []string{"id", "posts"}, keys(op.Selection.Children))
}

// Every generated document must validate against the schema it came from.
func TestOperation_String(t *testing.T) {
	schema := loadSchema(t, gallerySchema)
	b := NewDocumentBuilder(schema)

	for _, root := range schema.RootOperations() {
		for _, field := range root.Type.Fields {
			if tsgen.IsReserved(field.Name) {
				continue
			}

			t.Run(string(root.Kind)+"/"+field.Name, func(subT *testing.T) {
				op := b.Build(field, root.Kind)

				doc, errs := gqlparser.LoadQuery(schema.Schema, op.String())
				require.Empty(subT, errs)
				require.Len(subT, doc.Operations, 1)
				assert.Equal(subT, op.Name, doc.Operations[0].Name)
				assert.Equal(subT, root.Kind.Keyword(), doc.Operations[0].Operation)
			})
		}
	}
}
