// Package meta normalizes GraphQL type references into flat descriptors
// and maps scalars onto TypeScript types.
package meta

import "github.com/vektah/gqlparser/v2/ast"

// Ref is the structural view of a type reference: a chain of List and
// NonNull wrappers ending in a Named type.
type Ref interface{ ref() }

// Named references a type by name.
type Named struct{ Name string }

// List wraps a list around its element type.
type List struct{ Of Ref }

// NonNull marks its inner type as required.
type NonNull struct{ Of Ref }

func (Named) ref()   {}
func (List) ref()    {}
func (NonNull) ref() {}

// RefOf converts a parsed type reference to its structural view.
func RefOf(t *ast.Type) Ref {
	var r Ref = Named{Name: t.NamedType}
	if t.Elem != nil {
		r = List{Of: RefOf(t.Elem)}
	}
	if t.NonNull {
		r = NonNull{Of: r}
	}
	return r
}

// MetaType describes a type reference once its modifiers are unwrapped.
type MetaType struct {
	// Name of the base type.
	Name string

	// Base is the schema definition of the base type. It is only set by
	// Resolver.Resolve.
	Base *ast.Definition

	IsList        bool
	IsNonNullable bool
	IsScalar      bool
	IsUnion       bool
}

// Unwrap resolves the modifiers of t. Any NonNull modifier, including one
// on the list element, sets IsNonNullable; nested lists collapse into a
// single IsList flag.
func Unwrap(t *ast.Type) MetaType {
	return unwrap(RefOf(t), MetaType{})
}

func unwrap(r Ref, m MetaType) MetaType {
	switch v := r.(type) {
	case NonNull:
		m.IsNonNullable = true
		return unwrap(v.Of, m)
	case List:
		// TODO: keep one flag per level once list-of-list fields are emitted as nested arrays.
		m.IsList = true
		return unwrap(v.Of, m)
	case Named:
		m.Name = v.Name
	}
	return m
}

// Resolver resolves type references against a schema's type map.
type Resolver struct {
	Types map[string]*ast.Definition
}

// Resolve unwraps t and classifies its base type.
func (r Resolver) Resolve(t *ast.Type) MetaType {
	m := Unwrap(t)
	m.Base = r.Types[m.Name]
	if m.Base != nil {
		m.IsScalar = m.Base.Kind == ast.Scalar
		m.IsUnion = m.Base.Kind == ast.Union
	}
	return m
}

// IsComposite reports whether values of the base type have a selection set.
func (m MetaType) IsComposite() bool {
	if m.Base == nil {
		return false
	}
	switch m.Base.Kind {
	case ast.Object, ast.Interface, ast.Union:
		return true
	}
	return false
}
