package typescript

import (
	"github.com/gqlc/tsgen"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Capitalize upper cases the first letter of s and leaves the rest as is.
func Capitalize(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(s)
}

// ResultName names the result shape of a root field.
func ResultName(field string, kind tsgen.OperationKind) string {
	return Capitalize(field) + string(kind) + "Result"
}

// InputName names the variables shape of a root field.
func InputName(field string, kind tsgen.OperationKind) string {
	return Capitalize(field) + string(kind) + "Input"
}

// DocumentName names the operation document of a root field.
func DocumentName(field string, kind tsgen.OperationKind) string {
	return Capitalize(field) + string(kind) + "Document"
}

// HookName names a binding hook, e.g. useUserLazyQuery.
func HookName(field string, kind tsgen.OperationKind, modifier string) string {
	return "use" + Capitalize(field) + modifier + string(kind)
}

// RefetchName names the refetch helper of a query.
func RefetchName(field string, kind tsgen.OperationKind) string {
	return "refetch" + Capitalize(field) + string(kind)
}
