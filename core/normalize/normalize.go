package normalize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/edslclee/legacy-csharp-analyzer/core/analysis"
	"github.com/edslclee/legacy-csharp-analyzer/internal/utils"
)

// fkPattern recognizes a foreign-key declaration inside a free-form
// constraint token. It is a best-effort heuristic against text such as
// "FOREIGN KEY REFERENCES users(id)", not a SQL parser: quoted or
// schema-qualified identifiers are not matched.
var fkPattern = regexp.MustCompile(`(?i)FOREIGN\s+KEY\s+REFERENCES\s+([A-Za-z0-9_]+)\s*\(\s*([A-Za-z0-9_]+)\s*\)`)

// Normalize rewrites v into the canonical record shape as far as it can,
// returning a fresh map that shares no structure with v. It never fails:
// whatever cannot be reshaped is carried through (deep-copied) for the
// schema validator to report.
//
// Rules, applied independently:
//   - column constraint tokens fold into pk / nullable / fk, with
//     explicit values winning over derived ones;
//   - an object-keyed crud_matrix becomes rows whose process and table
//     are the key; ops given as a character string become token lists,
//     filtered to the C, R, U, D alphabet preserving order and
//     duplicates;
//   - bare strings in processes, doc_links, and files become records;
//   - a non-string erd_mermaid becomes the empty string;
//   - absent or null top-level keys become empty defaults.
func Normalize(v any) map[string]any {
	rec := looseRecordFrom(v)

	return map[string]any{
		"tables":      normalizeTables(rec.tables),
		"erd_mermaid": normalizeERD(rec.erdMermaid),
		"crud_matrix": normalizeCrudMatrix(rec.crudMatrix),
		"processes":   normalizeProcesses(rec.processes),
		"doc_links":   normalizeDocLinks(rec.docLinks),
		"files":       normalizeFiles(rec.files),
	}
}

// field is a dynamically-typed value paired with whether its key was
// present at all. A JSON null is treated as absent.
type field struct {
	value   any
	present bool
}

func fieldOf(m map[string]any, key string) field {
	v, ok := m[key]
	if !ok || v == nil {
		return field{}
	}

	return field{value: v, present: true}
}

// looseRecord holds the six top-level fields exactly as parsed. All
// top-level absence handling happens here, in one place per field.
type looseRecord struct {
	tables     field
	erdMermaid field
	crudMatrix field
	processes  field
	docLinks   field
	files      field
}

func looseRecordFrom(v any) looseRecord {
	m, ok := v.(map[string]any)
	if !ok {
		return looseRecord{}
	}

	return looseRecord{
		tables:     fieldOf(m, "tables"),
		erdMermaid: fieldOf(m, "erd_mermaid"),
		crudMatrix: fieldOf(m, "crud_matrix"),
		processes:  fieldOf(m, "processes"),
		docLinks:   fieldOf(m, "doc_links"),
		files:      fieldOf(m, "files"),
	}
}

func normalizeTables(f field) any {
	if !f.present {
		return []any{}
	}
	items, ok := f.value.([]any)
	if !ok {
		return deepCopy(f.value)
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, normalizeTable(item))
	}

	return out
}

// looseTable is the intermediate optional-field form of a table entry.
type looseTable struct {
	name    field
	columns field
}

func normalizeTable(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return deepCopy(v)
	}
	t := looseTable{
		name:    fieldOf(m, "name"),
		columns: fieldOf(m, "columns"),
	}

	table := map[string]any{
		"columns": normalizeColumns(t.columns),
	}
	if t.name.present {
		table["name"] = deepCopy(t.name.value)
	}

	return table
}

func normalizeColumns(f field) any {
	if !f.present {
		return []any{}
	}
	items, ok := f.value.([]any)
	if !ok {
		return deepCopy(f.value)
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, normalizeColumn(item))
	}

	return out
}

// looseColumn is the intermediate optional-field form of a column entry.
// Typed optional fields drop silently when the source holds the wrong
// type; name and fk keep their verbatim value so the validator can report
// them precisely.
type looseColumn struct {
	name        field
	typ         *string
	pk          *bool
	nullable    *bool
	fk          field
	derivedFK   map[string]any
	constraints []any
}

func looseColumnFrom(m map[string]any) looseColumn {
	col := looseColumn{
		name:     fieldOf(m, "name"),
		typ:      stringField(m, "type"),
		pk:       boolField(m, "pk"),
		nullable: boolField(m, "nullable"),
		fk:       fieldOf(m, "fk"),
	}
	if list, ok := m["constraints"].([]any); ok {
		col.constraints = list
	}

	return col
}

func normalizeColumn(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return deepCopy(v)
	}

	col := looseColumnFrom(m)
	foldConstraints(&col)

	out := map[string]any{}
	if col.name.present {
		out["name"] = deepCopy(col.name.value)
	}
	if col.typ != nil {
		out["type"] = *col.typ
	}
	if col.pk != nil {
		out["pk"] = *col.pk
	}

	// Canonical columns always carry nullable, defaulting to true.
	out["nullable"] = utils.Deref(col.nullable, true)

	if col.fk.present {
		// An explicit fk wins over a derived one even when malformed;
		// a malformed explicit value is dropped rather than replaced.
		if fk, ok := foreignKeyShape(col.fk.value); ok {
			out["fk"] = fk
		}
	} else if col.derivedFK != nil {
		out["fk"] = col.derivedFK
	}

	return out
}

// foldConstraints scans the column's constraint tokens case-insensitively
// and folds them into pk, nullable, and a derived fk. Explicit values are
// never overwritten.
func foldConstraints(col *looseColumn) {
	for _, raw := range col.constraints {
		token, ok := raw.(string)
		if !ok {
			continue
		}
		upper := strings.ToUpper(token)

		if col.pk == nil && strings.Contains(upper, "PRIMARY KEY") {
			col.pk = utils.Ptr(true)
		}
		if col.nullable == nil && strings.Contains(upper, "NOT NULL") {
			col.nullable = utils.Ptr(false)
		}
		if col.derivedFK == nil {
			if m := fkPattern.FindStringSubmatch(token); m != nil {
				col.derivedFK = map[string]any{"table": m[1], "column": m[2]}
			}
		}
	}
}

// foreignKeyShape accepts an explicit fk value only in the canonical
// {table, column} string form.
func foreignKeyShape(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	table, ok := m["table"].(string)
	if !ok {
		return nil, false
	}
	column, ok := m["column"].(string)
	if !ok {
		return nil, false
	}

	return map[string]any{"table": table, "column": column}, true
}

func normalizeCrudMatrix(f field) any {
	if !f.present {
		return []any{}
	}

	switch v := f.value.(type) {
	case map[string]any:
		// Object-keyed form: each key becomes both process and table.
		// Go maps do not preserve JSON key order, so keys are emitted
		// sorted to keep the rewrite deterministic. Case-differing keys
		// stay distinct rows; no merging is attempted.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		rows := make([]any, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, map[string]any{
				"process": k,
				"table":   k,
				"ops":     opsFrom(v[k]),
			})
		}
		return rows
	case []any:
		rows := make([]any, 0, len(v))
		for _, item := range v {
			rows = append(rows, normalizeCrudRow(item))
		}
		return rows
	default:
		return deepCopy(f.value)
	}
}

func normalizeCrudRow(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return deepCopy(v)
	}

	row := map[string]any{
		"ops": coerceOps(m["ops"]),
	}
	if f := fieldOf(m, "process"); f.present {
		row["process"] = deepCopy(f.value)
	}
	if f := fieldOf(m, "table"); f.present {
		row["table"] = deepCopy(f.value)
	}

	return row
}

// opsFrom extracts the ops of an object-keyed crud entry. The entry value
// is usually {ops: ...}, but a bare string or array is accepted as the
// ops value itself.
func opsFrom(v any) []any {
	if m, ok := v.(map[string]any); ok {
		return coerceOps(m["ops"])
	}

	return coerceOps(v)
}

// coerceOps rewrites an ops value into a token list filtered to the
// C, R, U, D alphabet. A character string expands to its letters; list
// elements must already be single tokens. Order and duplicate counts
// survive filtering, and matching is case-sensitive.
func coerceOps(v any) []any {
	switch ops := v.(type) {
	case string:
		out := make([]any, 0, len(ops))
		for _, r := range ops {
			if analysis.IsValidOp(string(r)) {
				out = append(out, string(r))
			}
		}
		return out
	case []any:
		out := make([]any, 0, len(ops))
		for _, item := range ops {
			token, ok := item.(string)
			if !ok || !analysis.IsValidOp(token) {
				continue
			}
			out = append(out, token)
		}
		return out
	default:
		return []any{}
	}
}

func normalizeProcesses(f field) any {
	if !f.present {
		return []any{}
	}
	items, ok := f.value.([]any)
	if !ok {
		return deepCopy(f.value)
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, normalizeProcess(item))
	}

	return out
}

func normalizeProcess(v any) any {
	switch p := v.(type) {
	case string:
		return map[string]any{"name": p}
	case map[string]any:
		proc := map[string]any{}
		if f := fieldOf(p, "name"); f.present {
			proc["name"] = deepCopy(f.value)
		}
		if s := stringField(p, "description"); s != nil {
			proc["description"] = *s
		}
		if children, ok := p["children"].([]any); ok {
			proc["children"] = stringItems(children)
		}
		return proc
	default:
		return deepCopy(v)
	}
}

func normalizeDocLinks(f field) any {
	if !f.present {
		return []any{}
	}
	items, ok := f.value.([]any)
	if !ok {
		return deepCopy(f.value)
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, normalizeDocLink(item))
	}

	return out
}

func normalizeDocLink(v any) any {
	switch link := v.(type) {
	case string:
		return map[string]any{"doc": link, "snippet": "", "related": ""}
	case map[string]any:
		out := map[string]any{
			"snippet": stringOrEmpty(link, "snippet"),
			"related": stringOrEmpty(link, "related"),
		}
		if f := fieldOf(link, "doc"); f.present {
			out["doc"] = deepCopy(f.value)
		}
		return out
	default:
		return deepCopy(v)
	}
}

func normalizeFiles(f field) any {
	if !f.present {
		return []any{}
	}
	items, ok := f.value.([]any)
	if !ok {
		return deepCopy(f.value)
	}

	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, normalizeFileInfo(item))
	}

	return out
}

func normalizeFileInfo(v any) any {
	switch info := v.(type) {
	case string:
		return map[string]any{"path": info, "tag": analysis.FileTagUnknown}
	case map[string]any:
		out := map[string]any{}
		if f := fieldOf(info, "path"); f.present {
			out["path"] = deepCopy(f.value)
		}

		// Tags are kept verbatim for the validator's enum check; only a
		// missing or non-string tag falls back to unknown.
		tag := analysis.FileTagUnknown
		if s := stringField(info, "tag"); s != nil {
			tag = *s
		}
		out["tag"] = tag

		if s := stringField(info, "summary"); s != nil {
			out["summary"] = *s
		}
		return out
	default:
		return deepCopy(v)
	}
}

func normalizeERD(f field) any {
	if s, ok := f.value.(string); f.present && ok {
		return s
	}

	return ""
}

// stringField returns the string held at key, or nil when the key is
// absent or holds another type.
func stringField(m map[string]any, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}

	return nil
}

// boolField returns the bool held at key, or nil when the key is absent
// or holds another type.
func boolField(m map[string]any, key string) *bool {
	if b, ok := m[key].(bool); ok {
		return &b
	}

	return nil
}

// stringOrEmpty reads a string value that the canonical shape defaults to
// the empty string.
func stringOrEmpty(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}

	return ""
}

// stringItems keeps the string elements of a list, dropping the rest.
func stringItems(items []any) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}

// deepCopy clones maps and slices so a passthrough value never aliases
// the caller's input.
func deepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = deepCopy(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = deepCopy(item)
		}
		return out
	default:
		return v
	}
}
