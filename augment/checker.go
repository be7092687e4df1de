package augment

import (
	"github.com/gqlc/tsgen"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// UnresolvedFields reports operations whose root type the schema lacks and
// top level fields which their root type does not declare.
var UnresolvedFields = tsgen.TypeCheckerFn(func(schema *tsgen.Schema, doc *ast.QueryDocument) (errs []error) {
	for _, op := range doc.Operations {
		kind, ok := tsgen.OperationKindOf(op.Operation)
		var root *ast.Definition
		if ok {
			root = schema.RootType(kind)
		}
		if root == nil {
			errs = append(errs, gqlerror.ErrorPosf(op.Position, "schema does not support %s operations", op.Operation))
			continue
		}

		for _, sel := range op.SelectionSet {
			f, ok := sel.(*ast.Field)
			if !ok || tsgen.IsReserved(f.Name) {
				continue
			}

			if root.Fields.ForName(f.Name) == nil {
				errs = append(errs, gqlerror.ErrorPosf(f.Position, "cannot query field %q on type %q", f.Name, root.Name))
			}
		}
	}
	return
})
