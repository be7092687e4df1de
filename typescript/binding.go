package typescript

import (
	"context"

	"github.com/gqlc/tsgen"
	"github.com/gqlc/tsgen/meta"
	"github.com/gqlc/tsgen/ts"
	"github.com/rs/zerolog"
	"github.com/vektah/gqlparser/v2/ast"
)

// operation declares everything generated for one root field: its result
// and input shapes, its document and, depending on the options, its
// bindings. An operation whose synthesized names are already declared, by
// a schema type or by another root field, is skipped with a warning and the
// existing declarations are kept.
func (e *Emitter) operation(ctx context.Context, field *ast.FieldDefinition, kind tsgen.OperationKind) error {
	result := ResultName(field.Name, kind)
	input := InputName(field.Name, kind)
	document := DocumentName(field.Name, kind)

	var taken bool
	for _, name := range []string{result, input, document} {
		if e.cache.Has(name) {
			zerolog.Ctx(ctx).Warn().
				Str("kind", string(kind)).
				Str("field", field.Name).
				Str("declaration", name).
				Msg("operation name collides with an existing declaration, skipping operation")
			taken = true
		}
	}
	if taken {
		return nil
	}

	_, err := e.cache.GetOrCreate(result, func(d *ts.Declaration) error {
		d.Kind = ts.KindObject
		prop, err := e.property(d, field.Name, field.Type, meta.Output)
		if err != nil {
			return err
		}
		d.Props = []ts.Property{prop}
		return nil
	})
	if err != nil {
		return err
	}

	_, err = e.cache.GetOrCreate(input, func(d *ts.Declaration) error {
		d.Kind = ts.KindInput
		for _, arg := range field.Arguments {
			prop, err := e.property(d, arg.Name, arg.Type, meta.Input)
			if err != nil {
				return err
			}
			prop.Description = arg.Description
			d.Props = append(d.Props, prop)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_, err = e.cache.GetOrCreate(document, func(d *ts.Declaration) error {
		op := e.docs.Build(field, kind)
		d.Kind = ts.KindDocument
		d.Document = &ts.Document{Text: op.String()}
		d.Description = field.Description
		return nil
	})
	if err != nil {
		return err
	}

	for _, b := range e.bindings(kind) {
		b.Result, b.Input, b.Document = result, input, document

		name := HookName(field.Name, kind, b.Modifier)
		if b.Kind == ts.Refetch {
			name = RefetchName(field.Name, kind)
		}

		_, err = e.cache.GetOrCreate(name, func(d *ts.Declaration) error {
			d.Kind = ts.KindBinding
			d.Binding = b
			d.Deps = []string{result, input, document}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// bindings lists the binding functions the options ask for. Queries get a
// hook per modifier and, optionally, a refetch helper; other operations
// get a single hook.
func (e *Emitter) bindings(kind tsgen.OperationKind) (bs []*ts.Binding) {
	if e.opts.WithBindings {
		bs = append(bs, &ts.Binding{Kind: ts.Hook, Operation: string(kind)})
		if kind == tsgen.Query {
			for _, m := range e.opts.modifiers() {
				bs = append(bs, &ts.Binding{Kind: ts.Hook, Operation: string(kind), Modifier: m})
			}
		}
	}

	if e.opts.WithRefetchHelpers && kind == tsgen.Query {
		bs = append(bs, &ts.Binding{Kind: ts.Refetch, Operation: string(kind)})
	}
	return
}
