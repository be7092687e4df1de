package tsgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
)

func TestLoadSchema_Definitions(t *testing.T) {
	schema, err := LoadSDL("test.graphql", testSchema)
	require.NoError(t, err)

	var names []string
	for _, def := range schema.Definitions() {
		names = append(names, def.Name)
	}

	expected := []string{"Time", "Status", "Node", "User", "Group", "Member", "UserFilter", "Query", "Mutation", "Subscription"}
	assert.Equal(t, expected, names)
}

func TestSchema_RootOperations(t *testing.T) {
	testCases := []struct {
		Name  string
		SDL   string
		Kinds []OperationKind
	}{
		{
			Name:  "QueryOnly",
			SDL:   `type Query { a: Int }`,
			Kinds: []OperationKind{Query},
		},
		{
			Name:  "All",
			SDL:   testSchema,
			Kinds: []OperationKind{Query, Mutation, Subscription},
		},
		{
			Name: "SchemaDefinition",
			SDL: `schema { query: Root mutation: Change }
type Root { a: Int }
type Change { b: Int }`,
			Kinds: []OperationKind{Query, Mutation},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			schema, err := LoadSDL(testCase.Name, testCase.SDL)
			require.NoError(subT, err)

			var kinds []OperationKind
			for _, root := range schema.RootOperations() {
				kinds = append(kinds, root.Kind)
				assert.Same(subT, root.Type, schema.RootType(root.Kind))
			}
			assert.Equal(subT, testCase.Kinds, kinds)
		})
	}
}

func TestOperationKind(t *testing.T) {
	assert.Equal(t, ast.Subscription, Subscription.Keyword())

	kind, ok := OperationKindOf(ast.Mutation)
	assert.True(t, ok)
	assert.Equal(t, Mutation, kind)

	_, ok = OperationKindOf(ast.Operation("fragment"))
	assert.False(t, ok)
}

func TestSchema_Print(t *testing.T) {
	schema, err := LoadSchema(
		&ast.Source{Name: "a.graphql", Input: "type Query {\n  a: Int\n}\n"},
		&ast.Source{Name: "b.graphql", Input: "extend type Query {\n  b: String\n}\n"},
	)
	require.NoError(t, err)

	sdl, err := schema.Print()
	require.NoError(t, err)
	assert.NotContains(t, sdl, "extend")

	reloaded, err := LoadSDL("printed.graphql", sdl)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.Query.Fields.ForName("b"))

	require.Len(t, schema.Sources, 2)
	assert.Equal(t, "b.graphql", schema.Sources[1].Name)
}

func TestLoadSDL_Errors(t *testing.T) {
	testCases := []struct {
		Name string
		SDL  string
	}{
		{Name: "Syntax", SDL: `type Query {`},
		{Name: "UnknownType", SDL: `type Query { a: Missing }`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			_, err := LoadSDL(testCase.Name, testCase.SDL)
			assert.Error(subT, err)
		})
	}
}

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved("__typename"))
	assert.False(t, IsReserved("_id"))
}
