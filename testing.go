package tsgen

import (
	"bytes"
	"context"
	"io"
)

type tester interface {
	Fail()
	Logf(format string, args ...interface{})
}

// testSchema exercises every type kind a generator has to handle,
// including a self referencing object and a union.
const testSchema = `
"""Seconds since the epoch."""
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

// Buffers is a GeneratorContext collecting artifacts in memory.
type Buffers map[string]*bytes.Buffer

// Open returns a buffer for filename, replacing any previous one.
func (b Buffers) Open(filename string) (io.WriteCloser, error) {
	buf := new(bytes.Buffer)
	b[filename] = buf
	return nopCloser{buf}, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// TestGenerator implements a few sanity checks for custom code generators.
// It runs g over a schema containing every GraphQL type kind and fails t if
// generation errors or writes nothing.
//
func TestGenerator(t tester, g CodeGenerator, opts string) {
	schema, err := LoadSDL("test.graphql", testSchema)
	if err != nil {
		t.Logf("unexpected error when loading test schema: %s", err)
		t.Fail()
		return
	}

	out := make(Buffers)
	err = g.Generate(WithContext(context.Background(), out), schema, opts)
	if err != nil {
		t.Logf("encountered error while generating: %s", err)
		t.Fail()
		return
	}

	if len(out) == 0 {
		t.Logf("generator wrote no artifacts")
		t.Fail()
		return
	}

	for name, buf := range out {
		if buf.Len() == 0 {
			t.Logf("generator wrote empty artifact: %s", name)
			t.Fail()
		}
	}
}
