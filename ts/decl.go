// Package ts models the TypeScript declarations emitted by the generators
// and prints them.
package ts

// Kind identifies the variant of a Declaration.
type Kind int

// Declaration kinds.
const (
	KindScalar Kind = iota
	KindEnum
	KindObject
	KindInput
	KindInterface
	KindUnion
	KindDocument
	KindBinding
)

var kindNames = [...]string{"scalar", "enum", "object", "input", "interface", "union", "document", "binding"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Type is a TypeScript type expression.
type Type interface{ typeExpr() }

// Raw is a type expression printed verbatim, such as a keyword or a
// configured scalar mapping.
type Raw string

// Ref references a declared type by name.
type Ref string

// Literal is a string literal type.
type Literal string

// Array is a list of Elem.
type Array struct{ Elem Type }

// Union is a disjunction of types.
type Union []Type

// Maybe marks a value which may be absent. It is spelled through the
// printer's MaybeValue template.
type Maybe struct{ Of Type }

func (Raw) typeExpr()     {}
func (Ref) typeExpr()     {}
func (Literal) typeExpr() {}
func (Array) typeExpr()   {}
func (Union) typeExpr()   {}
func (Maybe) typeExpr()   {}

// Property is a member of an object-like declaration.
type Property struct {
	Name        string
	Type        Type
	Optional    bool
	Description string
	Deprecation string
}

// EnumMember is a member of an enum declaration.
type EnumMember struct {
	Name        string
	Value       string
	Description string
	Deprecation string
}

// Document is an executable GraphQL operation document.
type Document struct {
	// Text is the formatted GraphQL source of the document.
	Text string
}

// BindingKind distinguishes the functions a binding declaration emits.
type BindingKind int

const (
	// Hook binds a document to a client hook.
	Hook BindingKind = iota

	// Refetch returns the document and variables for refetching a query.
	Refetch
)

// Binding is a data-binding function pairing a document with its result
// and input types.
type Binding struct {
	Kind BindingKind

	// Operation is the operation kind name, e.g. "Query".
	Operation string

	// Modifier selects a hook variant: "", "Lazy" or "Suspense".
	Modifier string

	Result   string
	Input    string
	Document string
}

// Declaration is a named, emitted TypeScript declaration. Only the payload
// matching Kind is set.
type Declaration struct {
	Name        string
	Kind        Kind
	Description string

	// Deps names the declarations this one references.
	Deps []string

	Alias    Type         // KindScalar
	Members  []EnumMember // KindEnum
	Props    []Property   // KindObject, KindInput, KindInterface
	Variants []string     // KindUnion
	Document *Document    // KindDocument
	Binding  *Binding     // KindBinding
}

// AddDep records a dependency once.
func (d *Declaration) AddDep(name string) {
	for _, dep := range d.Deps {
		if dep == name {
			return
		}
	}
	d.Deps = append(d.Deps, name)
}
