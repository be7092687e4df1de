package tsgen

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
)

// MergeExtensions merges type extensions with their original declaration.
// Extensions of types the IR does not define are left in place.
func MergeExtensions(ir IR) IR {
	for el := ir.Front(); el != nil; el = el.Next() {
		decls := el.Value
		if decls.Definition == nil || len(decls.Extensions) == 0 {
			continue
		}

		for _, ext := range decls.Extensions {
			mergeDecl(decls.Definition, ext)
		}
		decls.Extensions = nil
	}
	return ir
}

func mergeDecl(def, ext *ast.Definition) {
	if def.Kind != ext.Kind {
		panic(fmt.Sprintf("tsgen: %s %s cannot be extended as %s", def.Kind, def.Name, ext.Kind))
	}

	switch def.Kind {
	case ast.Scalar:
	case ast.Object, ast.Interface:
		def.Interfaces = append(def.Interfaces, ext.Interfaces...)
		def.Fields = append(def.Fields, ext.Fields...)
	case ast.InputObject:
		def.Fields = append(def.Fields, ext.Fields...)
	case ast.Union:
		def.Types = append(def.Types, ext.Types...)
	case ast.Enum:
		def.EnumValues = append(def.EnumValues, ext.EnumValues...)
	default:
		panic(fmt.Sprintf("tsgen: type of: %s cannot be extended", def.Kind))
	}

	def.Directives = append(def.Directives, ext.Directives...)
}
