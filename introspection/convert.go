package introspection

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gqlc/tsgen"
	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
	"github.com/vektah/gqlparser/v2/validator"
)

// SourceName is the name of the SDL source built from an introspection result.
const SourceName = "introspection.graphql"

// prelude lists the types and directives every schema has. They are left
// out of the SDL since the schema loader declares them itself.
var prelude = func() map[string]bool {
	doc, err := parser.ParseSchema(validator.Prelude)
	if err != nil {
		panic(err)
	}

	names := make(map[string]bool)
	for _, def := range doc.Definitions {
		names[def.Name] = true
	}
	for _, dir := range doc.Directives {
		names["@"+dir.Name] = true
	}
	return names
}()

// Decode decodes an introspection result. Both the bare data and a full
// response with a data member are accepted.
func Decode(b []byte) (*Schema, error) {
	var resp struct {
		Data   *Data   `json:"data"`
		Schema *Schema `json:"__schema"`
	}
	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, errors.Wrap(err, "introspection: decoding result")
	}

	s := resp.Schema
	if resp.Data != nil {
		s = &resp.Data.Schema
	}
	if s == nil || s.QueryType == nil {
		return nil, errors.New("introspection: result has no query type")
	}
	return s, nil
}

// Build decodes an introspection result and loads the schema it describes.
func Build(b []byte) (*tsgen.Schema, error) {
	s, err := Decode(b)
	if err != nil {
		return nil, err
	}

	sdl, err := SDL(s)
	if err != nil {
		return nil, err
	}

	schema, err := tsgen.LoadSDL(SourceName, sdl)
	if err != nil {
		return nil, errors.Wrap(err, "introspection: loading schema")
	}
	return schema, nil
}

// SDL prints the schema s describes.
func SDL(s *Schema) (string, error) {
	doc, err := Document(s)
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	formatter.NewFormatter(&b).FormatSchemaDocument(doc)
	return b.String(), nil
}

// Document converts s to a schema document. Builtin types and directives
// are left out.
func Document(s *Schema) (*ast.SchemaDocument, error) {
	doc := new(ast.SchemaDocument)

	schemaDef := &ast.SchemaDefinition{}
	for _, root := range []struct {
		op   ast.Operation
		name *TypeName
	}{{ast.Query, s.QueryType}, {ast.Mutation, s.MutationType}, {ast.Subscription, s.SubscriptionType}} {
		if root.name == nil || root.name.Name == "" {
			continue
		}
		schemaDef.OperationTypes = append(schemaDef.OperationTypes, &ast.OperationTypeDefinition{
			Operation: root.op,
			Type:      root.name.Name,
		})
	}
	doc.Schema = ast.SchemaDefinitionList{schemaDef}

	for _, dir := range s.Directives {
		if prelude["@"+dir.Name] {
			continue
		}

		def, err := directive(dir)
		if err != nil {
			return nil, err
		}
		doc.Directives = append(doc.Directives, def)
	}

	for _, t := range s.Types {
		if prelude[t.Name] || tsgen.IsReserved(t.Name) {
			continue
		}

		def, err := definition(t)
		if err != nil {
			return nil, errors.Wrapf(err, "introspection: type %s", t.Name)
		}
		doc.Definitions = append(doc.Definitions, def)
	}
	return doc, nil
}

func definition(t FullType) (*ast.Definition, error) {
	def := &ast.Definition{Name: t.Name, Description: str(t.Description)}

	switch t.Kind {
	case Scalar:
		def.Kind = ast.Scalar
	case Object, Interface:
		def.Kind = ast.Object
		if t.Kind == Interface {
			def.Kind = ast.Interface
		}

		for _, f := range t.Fields {
			fd, err := field(f)
			if err != nil {
				return nil, err
			}
			def.Fields = append(def.Fields, fd)
		}
		for _, iface := range t.Interfaces {
			if iface.Name != nil {
				def.Interfaces = append(def.Interfaces, *iface.Name)
			}
		}
	case Union:
		def.Kind = ast.Union
		for _, member := range t.PossibleTypes {
			if member.Name != nil {
				def.Types = append(def.Types, *member.Name)
			}
		}
	case Enum:
		def.Kind = ast.Enum
		for _, v := range t.EnumValues {
			ev := &ast.EnumValueDefinition{Name: v.Name, Description: str(v.Description)}
			if v.IsDeprecated {
				ev.Directives = ast.DirectiveList{deprecated(v.DeprecationReason)}
			}
			def.EnumValues = append(def.EnumValues, ev)
		}
	case InputObject:
		def.Kind = ast.InputObject
		for _, in := range t.InputFields {
			typ, err := typeOf(in.Type)
			if err != nil {
				return nil, err
			}
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Name:         in.Name,
				Description:  str(in.Description),
				Type:         typ,
				DefaultValue: value(in.DefaultValue),
			})
		}
	default:
		return nil, fmt.Errorf("unexpected kind %s", t.Kind)
	}
	return def, nil
}

func field(f Field) (*ast.FieldDefinition, error) {
	typ, err := typeOf(f.Type)
	if err != nil {
		return nil, errors.Wrapf(err, "field %s", f.Name)
	}

	fd := &ast.FieldDefinition{Name: f.Name, Description: str(f.Description), Type: typ}
	args, err := arguments(f.Args)
	if err != nil {
		return nil, errors.Wrapf(err, "field %s", f.Name)
	}
	fd.Arguments = args

	if f.IsDeprecated {
		fd.Directives = ast.DirectiveList{deprecated(f.DeprecationReason)}
	}
	return fd, nil
}

func arguments(ins []InputValue) (args ast.ArgumentDefinitionList, err error) {
	for _, in := range ins {
		typ, err := typeOf(in.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %s", in.Name)
		}
		args = append(args, &ast.ArgumentDefinition{
			Name:         in.Name,
			Description:  str(in.Description),
			Type:         typ,
			DefaultValue: value(in.DefaultValue),
		})
	}
	return
}

func directive(dir Directive) (*ast.DirectiveDefinition, error) {
	args, err := arguments(dir.Args)
	if err != nil {
		return nil, errors.Wrapf(err, "introspection: directive @%s", dir.Name)
	}

	def := &ast.DirectiveDefinition{
		Name:         dir.Name,
		Description:  str(dir.Description),
		Arguments:    args,
		IsRepeatable: dir.IsRepeatable,
	}
	for _, loc := range dir.Locations {
		def.Locations = append(def.Locations, ast.DirectiveLocation(loc))
	}
	return def, nil
}

func typeOf(ref TypeRef) (*ast.Type, error) {
	switch ref.Kind {
	case NonNull, List:
		if ref.OfType == nil {
			return nil, fmt.Errorf("%s type without inner type", ref.Kind)
		}

		inner, err := typeOf(*ref.OfType)
		if err != nil {
			return nil, err
		}
		if ref.Kind == List {
			return &ast.Type{Elem: inner}, nil
		}
		inner.NonNull = true
		return inner, nil
	}

	if ref.Name == nil || *ref.Name == "" {
		return nil, fmt.Errorf("unnamed %s type reference", ref.Kind)
	}
	return &ast.Type{NamedType: *ref.Name}, nil
}

func deprecated(reason *string) *ast.Directive {
	dir := &ast.Directive{Name: "deprecated"}
	if reason != nil && *reason != "" {
		dir.Arguments = ast.ArgumentList{{
			Name:  "reason",
			Value: &ast.Value{Kind: ast.StringValue, Raw: *reason},
		}}
	}
	return dir
}

// value parses a default value literal. Literals which do not parse are
// dropped.
func value(raw *string) *ast.Value {
	if raw == nil {
		return nil
	}

	doc, err := parser.ParseQuery(&ast.Source{Input: "{f(a: " + *raw + ")}"})
	if err != nil || len(doc.Operations) != 1 {
		return nil
	}

	f, ok := doc.Operations[0].SelectionSet[0].(*ast.Field)
	if !ok || len(f.Arguments) != 1 {
		return nil
	}
	return f.Arguments[0].Value
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
