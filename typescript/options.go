package typescript

import (
	"encoding/json"
	"fmt"

	"github.com/gqlc/tsgen/meta"
)

// Binding modifiers a query hook can be emitted with besides the eager one.
const (
	Lazy     = "Lazy"
	Suspense = "Suspense"
)

// Options configures the TypeScript generator.
type Options struct {
	// ScalarMap overrides or extends the scalar mappings.
	ScalarMap map[string]meta.Mapping `json:"scalarMap" yaml:"scalarMap"`

	// MaybeValue spells nullable values; T stands for the wrapped type.
	MaybeValue string `json:"maybeValue" yaml:"maybeValue"`

	WithBindings       bool `json:"withBindings" yaml:"withBindings"`
	WithRefetchHelpers bool `json:"withRefetchHelpers" yaml:"withRefetchHelpers"`

	// BindingModifiers selects the extra query hook variants. Nil means
	// every modifier; an empty list means only the eager hook.
	BindingModifiers []string `json:"bindingModifierSet" yaml:"bindingModifierSet"`

	// Filename is the base name of the TypeScript artifact.
	Filename string `json:"filename" yaml:"filename"`

	// EmitSchema adds the printed schema to the artifacts.
	EmitSchema bool `json:"emitSchema" yaml:"emitSchema"`
}

// ParseOptions decodes JSON encoded options. An empty string yields the
// defaults.
func ParseOptions(opts string) (o Options, err error) {
	if len(opts) > 0 {
		err = json.Unmarshal([]byte(opts), &o)
		if err != nil {
			return
		}
	}

	err = o.Validate()
	return
}

// Validate checks the binding modifiers.
func (o Options) Validate() error {
	for _, m := range o.BindingModifiers {
		if m != Lazy && m != Suspense {
			return fmt.Errorf("unknown binding modifier: %q", m)
		}
	}
	return nil
}

func (o Options) filename() string {
	if o.Filename == "" {
		return "index"
	}
	return o.Filename
}

func (o Options) modifiers() []string {
	if o.BindingModifiers == nil {
		return []string{Lazy, Suspense}
	}
	return o.BindingModifiers
}
