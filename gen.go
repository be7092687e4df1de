package tsgen

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CodeGenerator provides a simple API for creating a code generator for
// any target language desired.
//
type CodeGenerator interface {
	// Generate generates artifacts for the given schema and writes them
	// through the GeneratorContext found in ctx. opts is a JSON encoded
	// object whose keys are specific to the generator.
	Generate(ctx context.Context, schema *Schema, opts string) error
}

// Artifact is a single named text output of a generator.
type Artifact struct {
	// Name is the base name of the artifact, without extension.
	Name string

	// Ext is the file extension, without the leading dot.
	Ext string

	Content string
}

// Filename returns the name the artifact is written under.
func (a Artifact) Filename() string { return a.Name + "." + a.Ext }

// GeneratorContext represents the destination to which a CodeGenerator
// writes its artifacts.
type GeneratorContext interface {
	// Open opens a named output for writing.
	Open(filename string) (io.WriteCloser, error)
}

// Dir is a GeneratorContext rooted at a directory. The directory is
// created on first use.
type Dir string

// Open creates or truncates filename inside the directory.
func (d Dir) Open(filename string) (io.WriteCloser, error) {
	if err := os.MkdirAll(string(d), 0o755); err != nil {
		return nil, err
	}
	return os.Create(filepath.Join(string(d), filename))
}

// Clean removes every regular file directly inside the directory. A missing
// directory is not an error.
func (d Dir) Clean() error {
	entries, err := os.ReadDir(string(d))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if err := os.Remove(filepath.Join(string(d), entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

type genCtxKey struct{}

// WithContext returns a prepared context.Context
// with the given generator context.
func WithContext(ctx context.Context, gCtx GeneratorContext) context.Context {
	return context.WithValue(ctx, genCtxKey{}, gCtx)
}

// Context returns the generator context, or nil if ctx carries none.
func Context(ctx context.Context) GeneratorContext {
	gCtx, _ := ctx.Value(genCtxKey{}).(GeneratorContext)
	return gCtx
}

// WriteArtifacts writes each artifact through the generator context in ctx.
func WriteArtifacts(ctx context.Context, artifacts ...Artifact) error {
	gCtx := Context(ctx)
	if gCtx == nil {
		return fmt.Errorf("tsgen: no generator context")
	}

	for _, a := range artifacts {
		if err := writeArtifact(gCtx, a); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifact(gCtx GeneratorContext, a Artifact) (err error) {
	w, err := gCtx.Open(a.Filename())
	if err != nil {
		return
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.WriteString(w, a.Content)
	return
}

// Error represents an error from a generator.
type Error struct {
	// GenName is the generator name which encountered a problem.
	GenName string

	// TypeName is the schema type being worked on when the error was encountered.
	TypeName string

	// Msg is any message the generator wants to provide back to the caller.
	Msg string
}

func (e Error) Error() string {
	return fmt.Sprintf("tsgen: error occurred in %s:%s %s", e.GenName, e.TypeName, e.Msg)
}
