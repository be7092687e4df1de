// Package typescript contains a TypeScript generator for GraphQL schemas.
//
// The generator declares every schema type, builds an operation document
// selecting the full result of every root field and optionally binds each
// document to Apollo client hooks.
package typescript

import (
	"context"
	"strings"

	"github.com/gqlc/tsgen"
	"github.com/gqlc/tsgen/meta"
	"github.com/gqlc/tsgen/ts"
	"github.com/rs/zerolog"
)

// Generator generates a TypeScript module for a GraphQL schema.
type Generator struct{}

// Generate generates TypeScript for the given schema. opts holds JSON
// encoded Options.
func (gen *Generator) Generate(ctx context.Context, schema *tsgen.Schema, opts string) (err error) {
	defer func() {
		if err == nil {
			return
		}
		if _, ok := err.(tsgen.Error); !ok {
			err = tsgen.Error{GenName: genName, Msg: err.Error()}
		}
	}()

	o, err := ParseOptions(opts)
	if err != nil {
		return
	}

	artifacts, err := NewEmitter(schema, o).Emit(ctx)
	if err != nil {
		return
	}

	return tsgen.WriteArtifacts(ctx, artifacts...)
}

// Emitter drives a single generator run. It owns the declaration cache of
// the run and is not safe for concurrent use.
type Emitter struct {
	schema   *tsgen.Schema
	opts     Options
	resolver meta.Resolver
	scalars  meta.ScalarMap
	cache    *ts.Cache
	docs     *DocumentBuilder
	printer  ts.Printer
}

// NewEmitter returns an Emitter for schema.
func NewEmitter(schema *tsgen.Schema, opts Options) *Emitter {
	return &Emitter{
		schema:   schema,
		opts:     opts,
		resolver: meta.Resolver{Types: schema.Types},
		scalars:  meta.NewScalarMap(opts.ScalarMap),
		cache:    ts.NewCache(),
		docs:     NewDocumentBuilder(schema),
		printer:  ts.Printer{MaybeValue: opts.MaybeValue},
	}
}

// Cache returns the declarations built so far.
func (e *Emitter) Cache() *ts.Cache { return e.cache }

// Emit declares every schema type and every root operation, then returns
// the generated artifacts. Any error aborts the run without artifacts.
func (e *Emitter) Emit(ctx context.Context) ([]tsgen.Artifact, error) {
	log := zerolog.Ctx(ctx)

	for _, def := range e.schema.Definitions() {
		if _, err := e.Declare(def); err != nil {
			return nil, err
		}
	}
	log.Debug().Int("declarations", e.cache.Len()).Msg("declared schema types")

	for _, root := range e.schema.RootOperations() {
		for _, field := range root.Type.Fields {
			if tsgen.IsReserved(field.Name) {
				continue
			}

			if err := e.operation(ctx, field, root.Kind); err != nil {
				return nil, err
			}
			log.Debug().Str("kind", string(root.Kind)).Str("field", field.Name).Msg("declared operation")
		}
	}

	content, err := e.Print()
	if err != nil {
		return nil, err
	}
	artifacts := []tsgen.Artifact{{Name: e.opts.filename(), Ext: "ts", Content: content}}

	if e.opts.EmitSchema {
		sdl, err := e.schema.Print()
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, tsgen.Artifact{Name: "schema", Ext: "graphql", Content: sdl})
	}
	return artifacts, nil
}

// Print prints the module header followed by every cached declaration in
// registration order.
func (e *Emitter) Print() (string, error) {
	var b strings.Builder
	b.WriteString("import { gql } from \"@apollo/client\";\n")
	if e.opts.WithBindings {
		b.WriteString("import * as Apollo from \"@apollo/client\";\n")
	}
	b.WriteString("\nexport type Maybe<T> = ")
	b.WriteString(e.printer.Type(ts.Maybe{Of: ts.Raw("T")}))
	b.WriteString(";\n")

	for _, d := range e.cache.All() {
		b.WriteString("\n")
		if err := e.printer.Fprint(&b, d); err != nil {
			return "", tsgen.Error{GenName: genName, TypeName: d.Name, Msg: err.Error()}
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}
