package typescript

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/gqlc/tsgen"
	"github.com/gqlc/tsgen/meta"
	"github.com/gqlc/tsgen/ts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gallerySchema = `
"""A point in time."""
scalar Time

enum Status {
  ACTIVE
  INACTIVE @deprecated(reason: "use ACTIVE")
}

interface Node {
  id: ID!
}

type User implements Node {
  id: ID!
  "Display name."
  name: String
  status: Status!
  friends: [User!]
  createdAt: Time
}

type Group implements Node {
  id: ID!
  members: [User]
}

union Member = User | Group

input UserFilter {
  status: Status
  ids: [ID!]
}

type Query {
  user(id: ID!): User
  users(filter: UserFilter): [User!]!
  member(id: ID!): Member
}

type Mutation {
  rename(id: ID!, name: String!): User
}

type Subscription {
  statusChanged: User!
}
`

func loadSchema(t *testing.T, sdl string) *tsgen.Schema {
	t.Helper()

	schema, err := tsgen.LoadSDL("test.graphql", sdl)
	require.NoError(t, err)
	return schema
}

func emit(t *testing.T, schema *tsgen.Schema, opts Options) (*Emitter, string) {
	t.Helper()

	e := NewEmitter(schema, opts)
	artifacts, err := e.Emit(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, artifacts)
	return e, artifacts[0].Content
}

func TestGenerator(t *testing.T) {
	testCases := []struct {
		Name string
		Opts string
	}{
		{Name: "Defaults"},
		{Name: "Bindings", Opts: `{"withBindings": true, "withRefetchHelpers": true}`},
		{Name: "Everything", Opts: `{"withBindings": true, "emitSchema": true, "maybeValue": "T | null", "scalarMap": {"Time": {"input": "string", "output": "Date"}}}`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			tsgen.TestGenerator(subT, new(Generator), testCase.Opts)
		})
	}
}

func TestGenerator_Artifacts(t *testing.T) {
	schema := loadSchema(t, gallerySchema)

	out := make(tsgen.Buffers)
	err := new(Generator).Generate(tsgen.WithContext(context.Background(), out), schema, `{"filename": "types", "emitSchema": true}`)
	require.NoError(t, err)

	require.Contains(t, out, "types.ts")
	require.Contains(t, out, "schema.graphql")

	// the printed schema must load on its own
	_, err = tsgen.LoadSDL("schema.graphql", out["schema.graphql"].String())
	assert.NoError(t, err)
}

func TestGenerator_BadOptions(t *testing.T) {
	schema := loadSchema(t, gallerySchema)

	testCases := []struct {
		Name string
		Opts string
	}{
		{Name: "Malformed", Opts: `{"withBindings": `},
		{Name: "UnknownModifier", Opts: `{"bindingModifierSet": ["Eager"]}`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			err := new(Generator).Generate(tsgen.WithContext(context.Background(), make(tsgen.Buffers)), schema, testCase.Opts)

			var gerr tsgen.Error
			require.ErrorAs(subT, err, &gerr)
			assert.Equal(subT, genName, gerr.GenName)
		})
	}
}

func TestEmitter(t *testing.T) {
	testCases := []struct {
		Name     string
		SDL      string
		Opts     Options
		Expected []string
	}{
		{
			Name: "OptionalFields",
			SDL: `
type Query { user: User }
type User { id: ID!, name: String }
`,
			Expected: []string{`export type User = {
  __typename?: "User";
  id: string;
  name?: string | undefined;
};`},
		},
		{
			Name: "ListOfNonNull",
			SDL: `
type Query { tags: [String!], user: User }
type User { id: ID!, friends: [User!], aliases: [String] }
`,
			Expected: []string{
				"export type TagsQueryResult = {\n  tags: string[];\n};",
				"  friends: User[];\n",
				"  aliases?: string[] | undefined;\n",
			},
		},
		{
			Name: "Enum",
			SDL: `
enum Status { ACTIVE, INACTIVE }
type Query { status: Status }
`,
			Expected: []string{`export enum Status {
  ACTIVE = "ACTIVE",
  INACTIVE = "INACTIVE",
}`},
		},
		{
			Name: "CustomScalar",
			SDL: `
scalar DateScalar
input Range { from: DateScalar! }
type Query { today: DateScalar!, after(d: DateScalar!): Boolean }
`,
			Opts: Options{ScalarMap: map[string]meta.Mapping{"DateScalar": {Input: "Date", Output: "Date"}}},
			Expected: []string{
				"export type DateScalar = Date;",
				"export type Range = {\n  from: Date;\n};",
				"export type TodayQueryResult = {\n  today: Date;\n};",
				"export type AfterQueryInput = {\n  d: Date;\n};",
			},
		},
		{
			Name: "UnknownScalar",
			SDL: `
scalar JSON
type Query { blob: JSON }
`,
			Expected: []string{
				"export type JSON = any;",
				"blob?: any | undefined;",
			},
		},
		{
			Name: "SelfReference",
			SDL: `
type Query { node: Tree }
type Tree { value: Int!, children: [Tree!]! }
`,
			Expected: []string{`export type Tree = {
  __typename?: "Tree";
  value: number;
  children: Tree[];
};`},
		},
		{
			Name: "Union",
			SDL: `
type A { a: String }
type B { b: Int }
union AB = A | B
type Query { ab: AB }
`,
			Expected: []string{"export type AB = A | B;"},
		},
		{
			Name: "Interface",
			SDL: `
interface Node { id: ID! }
type User implements Node { id: ID!, name: String }
type Query { node: Node }
`,
			Expected: []string{"export type Node = {\n  id: string;\n};"},
		},
		{
			Name: "EmptyInput",
			SDL: `
type Query { ping: Boolean! }
`,
			Expected: []string{"export type PingQueryInput = { [key: string]: never };"},
		},
		{
			Name: "MaybeTemplate",
			SDL: `
type Query { names: [String] }
`,
			Opts: Options{MaybeValue: "T | null"},
			Expected: []string{
				"export type Maybe<T> = T | null;",
				"names?: string[] | null;",
			},
		},
		{
			Name: "Descriptions",
			SDL: `
"A user."
type User {
  "Old name."
  login: String @deprecated(reason: "use name")
  name: String
}
type Query { me: User }
`,
			Expected: []string{
				"/** A user. */\nexport type User",
				"  /**\n   * Old name.\n   * @deprecated use name\n   */\n  login?: string | undefined;",
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			schema := loadSchema(subT, testCase.SDL)

			_, out := emit(subT, schema, testCase.Opts)
			for _, expected := range testCase.Expected {
				assert.Contains(subT, out, expected)
			}
		})
	}
}

func TestEmitter_Header(t *testing.T) {
	schema := loadSchema(t, gallerySchema)

	_, out := emit(t, schema, Options{})
	assert.True(t, strings.HasPrefix(out, "import { gql } from \"@apollo/client\";\n"))
	assert.NotContains(t, out, "import * as Apollo")

	_, out = emit(t, schema, Options{WithBindings: true})
	assert.Contains(t, out, "import * as Apollo from \"@apollo/client\";")
}

func TestEmitter_Order(t *testing.T) {
	schema := loadSchema(t, gallerySchema)

	e, _ := emit(t, schema, Options{})

	var names []string
	for _, d := range e.Cache().All() {
		names = append(names, d.Name)
	}

	// schema types first in declaration order, then operations
	assert.Equal(t, []string{"Time", "Status", "Node", "User", "Group", "Member", "UserFilter", "Query", "Mutation", "Subscription"}, names[:10])
	assert.Equal(t, []string{"UserQueryResult", "UserQueryInput", "UserQueryDocument"}, names[10:13])
}

func TestEmitter_Idempotent(t *testing.T) {
	schema := loadSchema(t, gallerySchema)

	e, out := emit(t, schema, Options{})

	before := e.Cache().Len()
	user, err := e.Declare(schema.Types["User"])
	require.NoError(t, err)

	again, err := e.Declare(schema.Types["User"])
	require.NoError(t, err)

	assert.Same(t, user, again)
	assert.Equal(t, before, e.Cache().Len())
	assert.Equal(t, 1, strings.Count(out, "export type User = {"))
	assert.ElementsMatch(t, []string{"Status", "User"}, user.Deps)
}

func TestEmitter_NameCollision(t *testing.T) {
	testCases := []struct {
		Name   string
		SDL    string
		Result string
		Field  string
	}{
		{
			Name: "SchemaType",
			SDL: `
type UserQueryResult { x: Int }
type Query { user: Int }
`,
			Result: "x",
			Field:  "user",
		},
		{
			Name: "RootFields",
			SDL: `
type Query { user: Int, User: String }
`,
			Result: "user",
			Field:  "User",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			schema := loadSchema(subT, testCase.SDL)

			var logs bytes.Buffer
			ctx := zerolog.New(&logs).WithContext(context.Background())

			e := NewEmitter(schema, Options{WithBindings: true, BindingModifiers: []string{}})
			_, err := e.Emit(ctx)
			require.NoError(subT, err)

			// the first declaration is kept
			d, ok := e.Cache().Get("UserQueryResult")
			require.True(subT, ok)
			var props []string
			for _, p := range d.Props {
				props = append(props, p.Name)
			}
			assert.Contains(subT, props, testCase.Result)

			assert.Contains(subT, logs.String(), `"level":"warn"`)
			assert.Contains(subT, logs.String(), `"field":"`+testCase.Field+`"`)
			assert.Contains(subT, logs.String(), `"declaration":"UserQueryResult"`)
		})
	}
}

func TestEmitter_NativeScalars(t *testing.T) {
	schema := loadSchema(t, gallerySchema)

	e := NewEmitter(schema, Options{})
	for _, name := range []string{"ID", "String", "Int", "Float", "Boolean"} {
		d, err := e.Declare(schema.Types[name])
		require.NoError(t, err)
		assert.Nil(t, d, name)
	}
	assert.Zero(t, e.Cache().Len())
}

func TestEmitter_Bindings(t *testing.T) {
	schema := loadSchema(t, gallerySchema)

	testCases := []struct {
		Name    string
		Opts    Options
		Present []string
		Absent  []string
	}{
		{
			Name:   "Off",
			Absent: []string{"useUserQuery", "refetchUserQuery"},
		},
		{
			Name: "AllModifiers",
			Opts: Options{WithBindings: true},
			Present: []string{
				"useUserQuery", "useUserLazyQuery", "useUserSuspenseQuery",
				"useRenameMutation", "useStatusChangedSubscription",
			},
			Absent: []string{"useRenameLazyMutation", "useStatusChangedLazySubscription", "refetchUserQuery"},
		},
		{
			Name:    "NoModifiers",
			Opts:    Options{WithBindings: true, BindingModifiers: []string{}},
			Present: []string{"useUserQuery"},
			Absent:  []string{"useUserLazyQuery", "useUserSuspenseQuery"},
		},
		{
			Name:    "LazyOnly",
			Opts:    Options{WithBindings: true, BindingModifiers: []string{Lazy}},
			Present: []string{"useUserQuery", "useUserLazyQuery"},
			Absent:  []string{"useUserSuspenseQuery"},
		},
		{
			Name:    "Refetch",
			Opts:    Options{WithBindings: true, WithRefetchHelpers: true},
			Present: []string{"refetchUserQuery", "refetchUsersQuery", "refetchMemberQuery"},
			Absent:  []string{"refetchRenameMutation", "refetchStatusChangedSubscription"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			e, _ := emit(subT, schema, testCase.Opts)

			for _, name := range testCase.Present {
				assert.True(subT, e.Cache().Has(name), name)
			}
			for _, name := range testCase.Absent {
				assert.False(subT, e.Cache().Has(name), name)
			}
		})
	}
}

func TestEmitter_BindingDeclaration(t *testing.T) {
	schema := loadSchema(t, gallerySchema)

	e, out := emit(t, schema, Options{WithBindings: true, WithRefetchHelpers: true})

	d, ok := e.Cache().Get("useUserLazyQuery")
	require.True(t, ok)
	require.Equal(t, ts.KindBinding, d.Kind)
	assert.Equal(t, ts.Binding{
		Kind:      ts.Hook,
		Operation: "Query",
		Modifier:  Lazy,
		Result:    "UserQueryResult",
		Input:     "UserQueryInput",
		Document:  "UserQueryDocument",
	}, *d.Binding)
	assert.Equal(t, []string{"UserQueryResult", "UserQueryInput", "UserQueryDocument"}, d.Deps)

	assert.Contains(t, out, `export function useRenameMutation(
  baseOptions?: Apollo.MutationHookOptions<
    RenameMutationResult,
    RenameMutationInput
  >,
) {
  return Apollo.useMutation<
    RenameMutationResult,
    RenameMutationInput
  >(RenameMutationDocument, baseOptions);
}`)
	assert.Contains(t, out, `export function refetchUserQuery(variables?: UserQueryInput) {
  return { query: UserQueryDocument, variables };
}`)
}

func TestEmitter_UnsupportedKind(t *testing.T) {
	schema := loadSchema(t, gallerySchema)

	def := *schema.Types["User"]
	def.Name = "Broken"
	def.Kind = "DIRECTIVE"

	_, err := NewEmitter(schema, Options{}).Declare(&def)

	var gerr tsgen.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Broken", gerr.TypeName)
}
