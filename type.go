package tsgen

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// TypeError represents a problem found while checking an operation
// document against a schema. Type errors found by the augmenter are
// reported as warnings; they never abort generation.
type TypeError struct {
	// Doc is the name of the document where the error was discovered.
	Doc string

	// Type error message
	Msg string
}

// Error returns a string representation of a TypeError.
func (e *TypeError) Error() string {
	return fmt.Sprintf("tsgen: encountered type error in %s:%s", e.Doc, e.Msg)
}

// TypeChecker represents type checking functionality for operation documents.
type TypeChecker interface {
	// Check analyzes an operation document against the schema and returns
	// any problems it has detected.
	Check(schema *Schema, doc *ast.QueryDocument) []error
}

// TypeCheckerFn represents a single function behaving as a TypeChecker.
type TypeCheckerFn func(*Schema, *ast.QueryDocument) []error

// Check calls the TypeCheckerFn given the schema and document.
func (f TypeCheckerFn) Check(schema *Schema, doc *ast.QueryDocument) []error {
	return f(schema, doc)
}

// CheckTypes is a helper function for running a suite of type checking
// on several operation documents.
//
// All errors encountered will be appended into the return slice: errs
//
func CheckTypes(schema *Schema, docs []*ast.QueryDocument, checkers ...TypeChecker) (errs []*TypeError) {
	for _, doc := range docs {
		name := DocName(doc)
		for _, checker := range checkers {
			for _, err := range checker.Check(schema, doc) {
				errs = append(errs, &TypeError{Doc: name, Msg: message(err)})
			}
		}
	}
	return
}

// DocName returns the name of the source an operation document was parsed from.
func DocName(doc *ast.QueryDocument) string {
	if doc.Position != nil && doc.Position.Src != nil {
		return doc.Position.Src.Name
	}
	for _, op := range doc.Operations {
		if op.Position != nil && op.Position.Src != nil {
			return op.Position.Src.Name
		}
	}
	return ""
}

func message(err error) string {
	gerr, ok := err.(*gqlerror.Error)
	if !ok || len(gerr.Locations) == 0 {
		return err.Error()
	}
	loc := gerr.Locations[0]
	return fmt.Sprintf("%d:%d: %s", loc.Line, loc.Column, gerr.Message)
}
