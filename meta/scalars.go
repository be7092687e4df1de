package meta

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Position is where a scalar value appears: as an argument or input field,
// or in a result.
type Position int

const (
	Output Position = iota
	Input
)

// Unknown is the TypeScript type used for scalars nothing maps.
const Unknown = "any"

// Mapping is the pair of TypeScript types a scalar maps to.
//
// In JSON and YAML a Mapping is either an object with input and output keys,
// or a single type name used for both positions.
type Mapping struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
}

// UnmarshalJSON accepts either form of a mapping.
func (m *Mapping) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		*m = Mapping{Input: name, Output: name}
		return nil
	}

	type mapping Mapping
	var v mapping
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("meta: scalar mapping must be a type name or {input, output}: %w", err)
	}
	*m = Mapping(v)
	return nil
}

// UnmarshalYAML accepts either form of a mapping.
func (m *Mapping) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*m = Mapping{Input: node.Value, Output: node.Value}
		return nil
	}

	type mapping Mapping
	var v mapping
	if err := node.Decode(&v); err != nil {
		return err
	}
	*m = Mapping(v)
	return nil
}

func (m Mapping) get(pos Position) string {
	first, second := m.Output, m.Input
	if pos == Input {
		first, second = second, first
	}
	if first != "" {
		return first
	}
	return second
}

var natives = map[string]Mapping{
	"ID":      {Input: "string", Output: "string"},
	"String":  {Input: "string", Output: "string"},
	"Int":     {Input: "number", Output: "number"},
	"Float":   {Input: "number", Output: "number"},
	"Boolean": {Input: "boolean", Output: "boolean"},
}

// IsNative reports whether name is one of the scalars every schema has.
func IsNative(name string) bool {
	_, ok := natives[name]
	return ok
}

// ScalarMap maps scalar names to TypeScript types. The zero value maps
// only the native scalars.
type ScalarMap struct {
	overrides map[string]Mapping
}

// NewScalarMap returns a ScalarMap with the given overrides layered over the
// native defaults. The overrides are copied.
func NewScalarMap(overrides map[string]Mapping) ScalarMap {
	m := make(map[string]Mapping, len(overrides))
	for name, mapping := range overrides {
		m[name] = mapping
	}
	return ScalarMap{overrides: m}
}

// Map returns the TypeScript type for the named scalar in the given
// position. It never returns an empty string.
func (s ScalarMap) Map(name string, pos Position) string {
	if m, ok := s.overrides[name]; ok {
		if t := m.get(pos); t != "" {
			return t
		}
	}
	if m, ok := natives[name]; ok {
		return m.get(pos)
	}
	return Unknown
}
