package typescript

import (
	"fmt"

	"github.com/gqlc/tsgen"
	"github.com/gqlc/tsgen/meta"
	"github.com/gqlc/tsgen/ts"
	"github.com/vektah/gqlparser/v2/ast"
)

const genName = "typescript"

const defaultDeprecation = "No longer supported"

// Declare returns the declaration of a schema type, building and caching
// it, and the declarations it references, on first use. Native scalars are
// mapped inline and have no declaration.
func (e *Emitter) Declare(def *ast.Definition) (*ts.Declaration, error) {
	if def.Kind == ast.Scalar && meta.IsNative(def.Name) {
		return nil, nil
	}

	return e.cache.GetOrCreate(def.Name, func(d *ts.Declaration) error {
		d.Description = def.Description

		switch def.Kind {
		case ast.Scalar:
			d.Kind = ts.KindScalar
			d.Alias = ts.Raw(e.scalars.Map(def.Name, meta.Output))
		case ast.Enum:
			d.Kind = ts.KindEnum
			for _, v := range def.EnumValues {
				d.Members = append(d.Members, ts.EnumMember{
					Name:        v.Name,
					Value:       v.Name,
					Description: v.Description,
					Deprecation: deprecation(v.Directives),
				})
			}
		case ast.Object:
			d.Kind = ts.KindObject
			d.Props = append(d.Props, ts.Property{Name: "__typename", Type: ts.Literal(def.Name), Optional: true})
			return e.fields(d, def.Fields, meta.Output)
		case ast.Interface:
			d.Kind = ts.KindInterface
			return e.fields(d, def.Fields, meta.Output)
		case ast.InputObject:
			d.Kind = ts.KindInput
			return e.fields(d, def.Fields, meta.Input)
		case ast.Union:
			d.Kind = ts.KindUnion
			for _, member := range def.Types {
				if err := e.declareNamed(d, member); err != nil {
					return err
				}
				d.Variants = append(d.Variants, member)
			}
		default:
			return tsgen.Error{
				GenName:  genName,
				TypeName: def.Name,
				Msg:      fmt.Sprintf("unsupported type kind: %s", def.Kind),
			}
		}
		return nil
	})
}

func (e *Emitter) fields(d *ts.Declaration, fields ast.FieldList, pos meta.Position) error {
	for _, f := range fields {
		if tsgen.IsReserved(f.Name) {
			continue
		}

		prop, err := e.property(d, f.Name, f.Type, pos)
		if err != nil {
			return err
		}
		prop.Description = f.Description
		prop.Deprecation = deprecation(f.Directives)
		d.Props = append(d.Props, prop)
	}
	return nil
}

// property types a field or argument. Fields of composite, enum or input
// types reference the declaration of their base type, declaring it first.
func (e *Emitter) property(d *ts.Declaration, name string, t *ast.Type, pos meta.Position) (ts.Property, error) {
	m := e.resolver.Resolve(t)

	var typ ts.Type
	switch {
	case m.Base == nil:
		typ = ts.Raw(meta.Unknown)
	case m.IsScalar:
		typ = ts.Raw(e.scalars.Map(m.Name, pos))
	default:
		if err := e.declareNamed(d, m.Name); err != nil {
			return ts.Property{}, err
		}
		typ = ts.Ref(m.Name)
	}

	if m.IsList {
		typ = ts.Array{Elem: typ}
	}

	prop := ts.Property{Name: name, Type: typ}
	if !m.IsNonNullable {
		prop.Optional = true
		prop.Type = ts.Maybe{Of: typ}
	}
	return prop, nil
}

func (e *Emitter) declareNamed(d *ts.Declaration, name string) error {
	def := e.schema.Types[name]
	if def == nil {
		return tsgen.Error{GenName: genName, TypeName: d.Name, Msg: fmt.Sprintf("undefined type: %s", name)}
	}

	if _, err := e.Declare(def); err != nil {
		return err
	}
	d.AddDep(name)
	return nil
}

func deprecation(dirs ast.DirectiveList) string {
	dir := dirs.ForName("deprecated")
	if dir == nil {
		return ""
	}

	if arg := dir.Arguments.ForName("reason"); arg != nil && arg.Value != nil && arg.Value.Raw != "" {
		return arg.Value.Raw
	}
	return defaultDeprecation
}
