package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

func named(name string) *ast.Type { return ast.NamedType(name, nil) }

func list(t *ast.Type) *ast.Type { return ast.ListType(t, nil) }

func nonNull(t *ast.Type) *ast.Type { return ast.NonNullNamedType(t.NamedType, nil) }

func nonNullList(t *ast.Type) *ast.Type { return ast.NonNullListType(t, nil) }

func TestUnwrap(t *testing.T) {
	testCases := []struct {
		Name     string
		Type     *ast.Type
		Expected MetaType
	}{
		{
			Name:     "Named",
			Type:     named("String"),
			Expected: MetaType{Name: "String"},
		},
		{
			Name:     "NonNull",
			Type:     nonNull(named("String")),
			Expected: MetaType{Name: "String", IsNonNullable: true},
		},
		{
			Name:     "List",
			Type:     list(named("String")),
			Expected: MetaType{Name: "String", IsList: true},
		},
		{
			Name:     "ListOfNonNull",
			Type:     list(nonNull(named("String"))),
			Expected: MetaType{Name: "String", IsList: true, IsNonNullable: true},
		},
		{
			Name:     "NonNullListOfNonNull",
			Type:     nonNullList(nonNull(named("String"))),
			Expected: MetaType{Name: "String", IsList: true, IsNonNullable: true},
		},
		{
			Name:     "ListOfList",
			Type:     list(list(named("Int"))),
			Expected: MetaType{Name: "Int", IsList: true},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			assert.Equal(subT, testCase.Expected, Unwrap(testCase.Type))
		})
	}
}

func TestRefOf(t *testing.T) {
	r := RefOf(nonNullList(nonNull(named("User"))))
	assert.Equal(t, NonNull{Of: List{Of: NonNull{Of: Named{Name: "User"}}}}, r)
}

func TestResolver_Resolve(t *testing.T) {
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "test.graphql", Input: `
scalar Time
type A { id: ID }
type B { id: ID }
union AB = A | B
type Query { a: A, ab: [AB!]!, at: Time }
`})
	require.NoError(t, err)

	r := Resolver{Types: schema.Types}
	fields := schema.Query.Fields

	a := r.Resolve(fields.ForName("a").Type)
	assert.Equal(t, "A", a.Name)
	assert.Same(t, schema.Types["A"], a.Base)
	assert.False(t, a.IsScalar)
	assert.True(t, a.IsComposite())

	ab := r.Resolve(fields.ForName("ab").Type)
	assert.True(t, ab.IsUnion)
	assert.True(t, ab.IsList)
	assert.True(t, ab.IsNonNullable)
	assert.True(t, ab.IsComposite())

	at := r.Resolve(fields.ForName("at").Type)
	assert.True(t, at.IsScalar)
	assert.False(t, at.IsComposite())
}
