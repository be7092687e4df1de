package meta

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestScalarMap_Map(t *testing.T) {
	m := NewScalarMap(map[string]Mapping{
		"DateScalar": {Input: "Date", Output: "Date"},
		"Upload":     {Input: "File"},
		"ID":         {Input: "number", Output: "string"},
	})

	testCases := []struct {
		Name     string
		Scalar   string
		Pos      Position
		Expected string
	}{
		{Name: "String", Scalar: "String", Pos: Output, Expected: "string"},
		{Name: "Int", Scalar: "Int", Pos: Input, Expected: "number"},
		{Name: "Float", Scalar: "Float", Pos: Output, Expected: "number"},
		{Name: "Boolean", Scalar: "Boolean", Pos: Input, Expected: "boolean"},
		{Name: "OverrideInput", Scalar: "DateScalar", Pos: Input, Expected: "Date"},
		{Name: "OverrideOutput", Scalar: "DateScalar", Pos: Output, Expected: "Date"},
		{Name: "PartialFallsBack", Scalar: "Upload", Pos: Output, Expected: "File"},
		{Name: "NativeOverridden", Scalar: "ID", Pos: Input, Expected: "number"},
		{Name: "Unknown", Scalar: "JSON", Pos: Output, Expected: Unknown},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			assert.Equal(subT, testCase.Expected, m.Map(testCase.Scalar, testCase.Pos))
		})
	}
}

func TestScalarMap_Total(t *testing.T) {
	var zero ScalarMap
	for _, name := range []string{"ID", "String", "Int", "Float", "Boolean", "Anything", ""} {
		for _, pos := range []Position{Input, Output} {
			assert.NotEmpty(t, zero.Map(name, pos), name)
		}
	}
}

func TestScalarMap_CopiesOverrides(t *testing.T) {
	overrides := map[string]Mapping{"Time": {Input: "string", Output: "Date"}}
	m := NewScalarMap(overrides)

	overrides["Time"] = Mapping{Input: "number", Output: "number"}
	assert.Equal(t, "Date", m.Map("Time", Output))
}

func TestMapping_Unmarshal(t *testing.T) {
	testCases := []struct {
		Name     string
		JSON     string
		YAML     string
		Expected map[string]Mapping
	}{
		{
			Name:     "Name",
			JSON:     `{"DateScalar": "Date"}`,
			YAML:     "DateScalar: Date\n",
			Expected: map[string]Mapping{"DateScalar": {Input: "Date", Output: "Date"}},
		},
		{
			Name:     "Object",
			JSON:     `{"Time": {"input": "string", "output": "Date"}}`,
			YAML:     "Time:\n  input: string\n  output: Date\n",
			Expected: map[string]Mapping{"Time": {Input: "string", Output: "Date"}},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.Name, func(subT *testing.T) {
			var fromJSON map[string]Mapping
			require.NoError(subT, json.Unmarshal([]byte(testCase.JSON), &fromJSON))
			assert.Equal(subT, testCase.Expected, fromJSON)

			var fromYAML map[string]Mapping
			require.NoError(subT, yaml.Unmarshal([]byte(testCase.YAML), &fromYAML))
			assert.Equal(subT, testCase.Expected, fromYAML)
		})
	}
}

func TestMapping_UnmarshalJSONError(t *testing.T) {
	var m Mapping
	assert.Error(t, json.Unmarshal([]byte(`42`), &m))
}
