package validate

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/edslclee/legacy-csharp-analyzer/core/analysis"
	"github.com/edslclee/legacy-csharp-analyzer/internal/jsonschema"
)

// Defect describes one schema violation: where it is, what the schema
// wanted there, and what the value held instead. Paths are dotted and
// indexed, e.g. "tables[0].columns[2].name"; the root path is empty.
type Defect struct {
	Path     string `json:"path"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// String renders the defect as "path: expected X, got Y".
func (d Defect) String() string {
	path := d.Path
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("%s: expected %s, got %s", path, d.Expected, d.Actual)
}

// recordSchema generates the canonical record schema once per process.
var recordSchema = sync.OnceValue(func() *jsonschema.Schema {
	schema, err := jsonschema.GenerateJSONSchema[analysis.Record]()
	if err != nil {
		panic(fmt.Sprintf("analyzer: record schema generation failed: %v", err))
	}
	return schema
})

// Record validates v against the canonical record schema. On success it
// returns the decoded record and a nil defect list; on failure the
// record is nil and every violation found is reported.
//
// v is not modified. Top-level keys that are absent or null are treated
// as their empty defaults before validation, so a record never fails
// solely because a collection is missing. Keys outside the schema are
// ignored.
//
// The defect list is deterministic: object properties are visited in
// lexicographic order and array elements in index order.
func Record(v any) (*analysis.Record, []Defect) {
	schema := recordSchema()

	m, ok := v.(map[string]any)
	if !ok {
		return nil, []Defect{{Path: "", Expected: "object", Actual: typeName(v)}}
	}

	defaulted := withTopLevelDefaults(schema, m)

	w := &walker{}
	w.walk(schema, defaulted, "")
	if len(w.defects) > 0 {
		return nil, w.defects
	}

	record, err := decodeRecord(defaulted)
	if err != nil {
		return nil, []Defect{{Path: "", Expected: "canonical record", Actual: err.Error()}}
	}
	return record, nil
}

// withTopLevelDefaults shallow-copies m and fills each missing or null
// top-level key with the empty value of its schema type.
func withTopLevelDefaults(schema *jsonschema.Schema, m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+len(schema.Properties))
	for k, v := range m {
		out[k] = v
	}
	for name, prop := range schema.Properties {
		if v, ok := out[name]; ok && v != nil {
			continue
		}
		out[name] = emptyDefault(prop)
	}
	return out
}

func emptyDefault(s *jsonschema.Schema) any {
	switch s.Type {
	case "array":
		return []any{}
	case "string":
		return ""
	case "object":
		return map[string]any{}
	case "boolean":
		return false
	case "integer", "number":
		return float64(0)
	default:
		return nil
	}
}

// walker accumulates defects while descending schema and value together.
type walker struct {
	defects []Defect
}

func (w *walker) report(path, expected, actual string) {
	w.defects = append(w.defects, Defect{Path: path, Expected: expected, Actual: actual})
}

func (w *walker) walk(s *jsonschema.Schema, v any, path string) {
	if s == nil {
		return
	}
	switch s.Type {
	case "object":
		w.walkObject(s, v, path)
	case "array":
		w.walkArray(s, v, path)
	case "string":
		w.walkString(s, v, path)
	case "boolean":
		if _, ok := v.(bool); !ok {
			w.report(path, "boolean", typeName(v))
		}
	case "integer", "number":
		if !isNumber(v) {
			w.report(path, s.Type, typeName(v))
		}
	}
}

func (w *walker) walkObject(s *jsonschema.Schema, v any, path string) {
	m, ok := v.(map[string]any)
	if !ok {
		w.report(path, "object", typeName(v))
		return
	}

	// Sorted visit keeps the defect list stable across runs; Go map
	// iteration order is not.
	for _, name := range sortedPropertyNames(s) {
		prop := s.Properties[name]
		childPath := joinPath(path, name)

		val, present := m[name]
		switch {
		case !present:
			if slices.Contains(s.Required, name) {
				w.report(childPath, typeLabel(prop), "missing")
			}
		case val == nil:
			if slices.Contains(s.Required, name) {
				w.report(childPath, typeLabel(prop), "null")
			}
		default:
			w.walk(prop, val, childPath)
		}
	}
}

func (w *walker) walkArray(s *jsonschema.Schema, v any, path string) {
	items, ok := v.([]any)
	if !ok {
		w.report(path, "array", typeName(v))
		return
	}
	if s.Items == nil {
		return
	}
	for i, item := range items {
		w.walk(s.Items, item, fmt.Sprintf("%s[%d]", path, i))
	}
}

func (w *walker) walkString(s *jsonschema.Schema, v any, path string) {
	str, ok := v.(string)
	if !ok {
		w.report(path, typeLabel(s), typeName(v))
		return
	}
	if len(s.Enum) == 0 || slices.Contains(s.Enum, any(str)) {
		return
	}
	w.report(path, typeLabel(s), fmt.Sprintf("%q", str))
}

// typeLabel names what the schema expects at a node, listing the
// allowed values when an enumeration is declared.
func typeLabel(s *jsonschema.Schema) string {
	if s == nil || s.Type == "" {
		return "value"
	}
	if len(s.Enum) > 0 {
		values := make([]string, len(s.Enum))
		for i, v := range s.Enum {
			values[i] = fmt.Sprintf("%v", v)
		}
		return "one of " + strings.Join(values, ", ")
	}
	return s.Type
}

// typeName names the JSON type of a dynamically-typed value.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		if isNumber(v) {
			return "number"
		}
		return fmt.Sprintf("%T", v)
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return true
	}
	return false
}

func sortedPropertyNames(s *jsonschema.Schema) []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// decodeRecord converts the validated map into the typed record through
// a JSON round trip, which also drops any keys outside the schema.
func decodeRecord(m map[string]any) (*analysis.Record, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode normalized value: %w", err)
	}
	var record analysis.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to decode canonical record: %w", err)
	}
	return &record, nil
}
