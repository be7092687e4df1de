package tsgen

import (
	"bytes"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
)

// OperationKind identifies one of the three root operation types.
type OperationKind string

// Operation kinds, spelled the way they appear in generated names.
const (
	Query        OperationKind = "Query"
	Mutation     OperationKind = "Mutation"
	Subscription OperationKind = "Subscription"
)

// Keyword returns the keyword introducing an operation of this kind.
func (k OperationKind) Keyword() ast.Operation {
	return ast.Operation(strings.ToLower(string(k)))
}

// OperationKindOf returns the kind of a parsed operation.
func OperationKindOf(op ast.Operation) (OperationKind, bool) {
	switch op {
	case ast.Query:
		return Query, true
	case ast.Mutation:
		return Mutation, true
	case ast.Subscription:
		return Subscription, true
	}
	return "", false
}

// RootOperation pairs a root operation type with the kind of operation it serves.
type RootOperation struct {
	Kind OperationKind
	Type *ast.Definition
}

// Schema is a validated GraphQL schema which remembers the SDL it was built
// from and the order its types were declared in.
type Schema struct {
	*ast.Schema

	// Sources are the SDL inputs, excluding the builtin prelude.
	Sources []*ast.Source

	ir IR
}

// LoadSchema parses and validates the given SDL sources.
func LoadSchema(sources ...*ast.Source) (*Schema, error) {
	doc, err := parser.ParseSchemas(sources...)
	if err != nil {
		return nil, err
	}

	s, verr := gqlparser.LoadSchema(sources...)
	if verr != nil {
		return nil, verr
	}

	return &Schema{Schema: s, Sources: sources, ir: ToIR(doc)}, nil
}

// LoadSDL is a shorthand for loading a schema from a single SDL string.
func LoadSDL(name, sdl string) (*Schema, error) {
	return LoadSchema(&ast.Source{Name: name, Input: sdl})
}

// Definitions returns every user declared type in declaration order.
// Builtin types and introspection types are omitted.
func (s *Schema) Definitions() []*ast.Definition {
	defs := make([]*ast.Definition, 0, s.ir.Len())
	for el := s.ir.Front(); el != nil; el = el.Next() {
		def := s.Types[el.Key]
		if def == nil || def.BuiltIn || IsReserved(def.Name) {
			continue
		}
		defs = append(defs, def)
	}
	return defs
}

// RootOperations returns the root operation types the schema declares,
// in query, mutation, subscription order.
func (s *Schema) RootOperations() []RootOperation {
	var roots []RootOperation
	for _, r := range []RootOperation{{Query, s.Query}, {Mutation, s.Mutation}, {Subscription, s.Subscription}} {
		if r.Type != nil {
			roots = append(roots, r)
		}
	}
	return roots
}

// RootType returns the root type serving operations of the given kind.
func (s *Schema) RootType(kind OperationKind) *ast.Definition {
	switch kind {
	case Query:
		return s.Query
	case Mutation:
		return s.Mutation
	case Subscription:
		return s.Subscription
	}
	return nil
}

// Print prints the schema's own types as a single document, with every
// extension folded into the type it extends.
func (s *Schema) Print() (string, error) {
	doc, err := parser.ParseSchemas(s.Sources...)
	if err != nil {
		return "", err
	}

	defs, exts := FromIR(MergeExtensions(ToIR(doc)))
	doc.Definitions, doc.Extensions = defs, exts

	var b bytes.Buffer
	formatter.NewFormatter(&b).FormatSchemaDocument(doc)
	return b.String(), nil
}

// IsReserved reports whether name follows the double underscore convention
// reserved for introspection.
func IsReserved(name string) bool { return strings.HasPrefix(name, "__") }
