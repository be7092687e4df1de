// Package tsgen provides the framework shared by the schema driven
// TypeScript generators: schema loading, the intermediate representation of
// schema documents and the CodeGenerator contract.
package tsgen

import (
	"github.com/elliotchance/orderedmap/v3"
	"github.com/vektah/gqlparser/v2/ast"
)

// Decls holds a type definition together with the extensions declared for it.
// Definition is nil when a document only extends a type.
type Decls struct {
	Definition *ast.Definition
	Extensions []*ast.Definition
}

// IR is the compiler's intermediate representation of a schema document:
// type declarations grouped by name, in the order each name first appears.
type IR = *orderedmap.OrderedMap[string, *Decls]

// ToIR converts a GraphQL schema document to an
// intermediate representation for the compiler internals.
//
func ToIR(doc *ast.SchemaDocument) IR {
	ir := orderedmap.NewOrderedMap[string, *Decls]()

	get := func(name string) *Decls {
		d, ok := ir.Get(name)
		if !ok {
			d = new(Decls)
			ir.Set(name, d)
		}
		return d
	}

	for _, def := range doc.Definitions {
		get(def.Name).Definition = def
	}
	for _, ext := range doc.Extensions {
		d := get(ext.Name)
		d.Extensions = append(d.Extensions, ext)
	}

	return ir
}

// FromIR converts the compiler intermediate representation
// back to lists of definitions and extensions.
//
func FromIR(ir IR) (defs, exts ast.DefinitionList) {
	for el := ir.Front(); el != nil; el = el.Next() {
		if el.Value.Definition != nil {
			defs = append(defs, el.Value.Definition)
		}
		exts = append(exts, el.Value.Extensions...)
	}
	return
}
