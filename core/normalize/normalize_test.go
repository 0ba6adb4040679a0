package normalize

import (
	"reflect"
	"testing"
)

func emptyRecord() map[string]any {
	return map[string]any{
		"tables":      []any{},
		"erd_mermaid": "",
		"crud_matrix": []any{},
		"processes":   []any{},
		"doc_links":   []any{},
		"files":       []any{},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{
			name:  "empty object",
			input: map[string]any{},
		},
		{
			name:  "nil input",
			input: nil,
		},
		{
			name:  "non-object input",
			input: "free text",
		},
		{
			name: "null top-level keys are treated as absent",
			input: map[string]any{
				"tables":      nil,
				"erd_mermaid": nil,
				"crud_matrix": nil,
				"processes":   nil,
				"doc_links":   nil,
				"files":       nil,
			},
		},
		{
			name: "unknown keys are dropped",
			input: map[string]any{
				"commentary": "ignore me",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if !reflect.DeepEqual(got, emptyRecord()) {
				t.Errorf("Normalize() = %v, want all defaults", got)
			}
		})
	}
}

func TestNormalizeAlreadyCanonical(t *testing.T) {
	input := map[string]any{
		"tables": []any{map[string]any{
			"name": "users",
			"columns": []any{map[string]any{
				"name":     "id",
				"type":     "int",
				"pk":       true,
				"nullable": false,
			}},
		}},
		"erd_mermaid": "erDiagram",
		"crud_matrix": []any{map[string]any{
			"process": "Checkout",
			"table":   "users",
			"ops":     []any{"C", "R"},
		}},
		"processes": []any{map[string]any{
			"name":        "Checkout",
			"description": "order placement",
			"children":    []any{"Payment"},
		}},
		"doc_links": []any{map[string]any{
			"doc":     "orders.md",
			"snippet": "snippet",
			"related": "orders",
		}},
		"files": []any{map[string]any{
			"path":    "Services/OrderService.cs",
			"tag":     "service",
			"summary": "order workflows",
		}},
	}

	got := Normalize(input)
	if !reflect.DeepEqual(got, input) {
		t.Errorf("Normalize() changed canonical input:\ngot  %v\nwant %v", got, input)
	}
}

func TestNormalizeConstraintFolding(t *testing.T) {
	tests := []struct {
		name   string
		column map[string]any
		want   map[string]any
	}{
		{
			name: "primary key and not null fold",
			column: map[string]any{
				"name":        "id",
				"constraints": []any{"PRIMARY KEY", "NOT NULL"},
			},
			want: map[string]any{"name": "id", "pk": true, "nullable": false},
		},
		{
			name: "folding is case-insensitive",
			column: map[string]any{
				"name":        "id",
				"constraints": []any{"primary key", "not null"},
			},
			want: map[string]any{"name": "id", "pk": true, "nullable": false},
		},
		{
			name: "tokens may embed the phrase",
			column: map[string]any{
				"name":        "id",
				"constraints": []any{"CONSTRAINT pk_users PRIMARY KEY (id)"},
			},
			want: map[string]any{"name": "id", "pk": true, "nullable": true},
		},
		{
			name: "foreign key constraint derives fk",
			column: map[string]any{
				"name":        "user_id",
				"constraints": []any{"FOREIGN KEY REFERENCES users(id)"},
			},
			want: map[string]any{
				"name":     "user_id",
				"nullable": true,
				"fk":       map[string]any{"table": "users", "column": "id"},
			},
		},
		{
			name: "fk pattern tolerates case and spacing",
			column: map[string]any{
				"name":        "user_id",
				"constraints": []any{"foreign key references  Users ( Id )"},
			},
			want: map[string]any{
				"name":     "user_id",
				"nullable": true,
				"fk":       map[string]any{"table": "Users", "column": "Id"},
			},
		},
		{
			name: "bare references token does not derive fk",
			column: map[string]any{
				"name":        "user_id",
				"constraints": []any{"REFERENCES users(id)"},
			},
			want: map[string]any{"name": "user_id", "nullable": true},
		},
		{
			name: "non-string tokens are skipped",
			column: map[string]any{
				"name":        "id",
				"constraints": []any{42, "PRIMARY KEY"},
			},
			want: map[string]any{"name": "id", "pk": true, "nullable": true},
		},
		{
			name: "no constraints leaves defaults",
			column: map[string]any{
				"name": "title",
			},
			want: map[string]any{"name": "title", "nullable": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(map[string]any{
				"tables": []any{map[string]any{
					"name":    "t",
					"columns": []any{tt.column},
				}},
			})

			wantTables := []any{map[string]any{
				"name":    "t",
				"columns": []any{tt.want},
			}}
			if !reflect.DeepEqual(got["tables"], wantTables) {
				t.Errorf("Normalize() tables = %v, want %v", got["tables"], wantTables)
			}
		})
	}
}

func TestNormalizeExplicitWinsOverDerived(t *testing.T) {
	tests := []struct {
		name   string
		column map[string]any
		want   map[string]any
	}{
		{
			name: "explicit fk beats derived fk",
			column: map[string]any{
				"name":        "user_id",
				"fk":          map[string]any{"table": "A", "column": "id"},
				"constraints": []any{"FOREIGN KEY REFERENCES other(oid)"},
			},
			want: map[string]any{
				"name":     "user_id",
				"nullable": true,
				"fk":       map[string]any{"table": "A", "column": "id"},
			},
		},
		{
			name: "malformed explicit fk still blocks derivation",
			column: map[string]any{
				"name":        "user_id",
				"fk":          "users.id",
				"constraints": []any{"FOREIGN KEY REFERENCES users(id)"},
			},
			want: map[string]any{"name": "user_id", "nullable": true},
		},
		{
			name: "explicit false pk beats primary key token",
			column: map[string]any{
				"name":        "id",
				"pk":          false,
				"constraints": []any{"PRIMARY KEY"},
			},
			want: map[string]any{"name": "id", "pk": false, "nullable": true},
		},
		{
			name: "explicit nullable beats not null token",
			column: map[string]any{
				"name":        "id",
				"nullable":    true,
				"constraints": []any{"NOT NULL"},
			},
			want: map[string]any{"name": "id", "nullable": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(map[string]any{
				"tables": []any{map[string]any{
					"name":    "t",
					"columns": []any{tt.column},
				}},
			})

			wantTables := []any{map[string]any{
				"name":    "t",
				"columns": []any{tt.want},
			}}
			if !reflect.DeepEqual(got["tables"], wantTables) {
				t.Errorf("Normalize() tables = %v, want %v", got["tables"], wantTables)
			}
		})
	}
}

func TestNormalizeTablesShapes(t *testing.T) {
	tests := []struct {
		name   string
		tables any
		want   any
	}{
		{
			name:   "missing columns default to an empty list",
			tables: []any{map[string]any{"name": "users"}},
			want:   []any{map[string]any{"name": "users", "columns": []any{}}},
		},
		{
			name:   "wrong-typed name is kept for the validator",
			tables: []any{map[string]any{"name": 42}},
			want:   []any{map[string]any{"name": 42, "columns": []any{}}},
		},
		{
			name:   "missing name stays missing",
			tables: []any{map[string]any{"columns": []any{}}},
			want:   []any{map[string]any{"columns": []any{}}},
		},
		{
			name:   "non-object entries pass through",
			tables: []any{"oops"},
			want:   []any{"oops"},
		},
		{
			name:   "non-list tables passes through untouched",
			tables: "not-a-list",
			want:   "not-a-list",
		},
		{
			name: "wrong-typed optional column fields are dropped",
			tables: []any{map[string]any{
				"name": "users",
				"columns": []any{map[string]any{
					"name":     "id",
					"type":     42,
					"pk":       "yes",
					"nullable": "no",
				}},
			}},
			want: []any{map[string]any{
				"name": "users",
				"columns": []any{map[string]any{
					"name":     "id",
					"nullable": true,
				}},
			}},
		},
		{
			name: "non-object column entries pass through",
			tables: []any{map[string]any{
				"name":    "users",
				"columns": []any{"id"},
			}},
			want: []any{map[string]any{
				"name":    "users",
				"columns": []any{"id"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(map[string]any{"tables": tt.tables})
			if !reflect.DeepEqual(got["tables"], tt.want) {
				t.Errorf("Normalize() tables = %v, want %v", got["tables"], tt.want)
			}
		})
	}
}

func TestNormalizeCrudMatrixObjectForm(t *testing.T) {
	tests := []struct {
		name string
		crud any
		want any
	}{
		{
			name: "keyed entry with ops string",
			crud: map[string]any{"Orders": map[string]any{"ops": "CRU"}},
			want: []any{map[string]any{
				"process": "Orders",
				"table":   "Orders",
				"ops":     []any{"C", "R", "U"},
			}},
		},
		{
			name: "bare string value is the ops",
			crud: map[string]any{"Orders": "CR"},
			want: []any{map[string]any{
				"process": "Orders",
				"table":   "Orders",
				"ops":     []any{"C", "R"},
			}},
		},
		{
			name: "bare array value is the ops",
			crud: map[string]any{"Orders": []any{"C", "D"}},
			want: []any{map[string]any{
				"process": "Orders",
				"table":   "Orders",
				"ops":     []any{"C", "D"},
			}},
		},
		{
			name: "unusable value yields empty ops",
			crud: map[string]any{"Orders": 42},
			want: []any{map[string]any{
				"process": "Orders",
				"table":   "Orders",
				"ops":     []any{},
			}},
		},
		{
			name: "keys are emitted in sorted order",
			crud: map[string]any{"beta": "C", "alpha": "R"},
			want: []any{
				map[string]any{"process": "alpha", "table": "alpha", "ops": []any{"R"}},
				map[string]any{"process": "beta", "table": "beta", "ops": []any{"C"}},
			},
		},
		{
			name: "case-differing keys stay distinct rows",
			crud: map[string]any{"Orders": "C", "orders": "R"},
			want: []any{
				map[string]any{"process": "Orders", "table": "Orders", "ops": []any{"C"}},
				map[string]any{"process": "orders", "table": "orders", "ops": []any{"R"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(map[string]any{"crud_matrix": tt.crud})
			if !reflect.DeepEqual(got["crud_matrix"], tt.want) {
				t.Errorf("Normalize() crud_matrix = %v, want %v", got["crud_matrix"], tt.want)
			}
		})
	}
}

func TestNormalizeCrudMatrixListForm(t *testing.T) {
	tests := []struct {
		name string
		crud any
		want any
	}{
		{
			name: "invalid tokens drop but order and duplicates survive",
			crud: []any{map[string]any{
				"process": "P",
				"table":   "T",
				"ops":     []any{"C", "X", "R", "C"},
			}},
			want: []any{map[string]any{
				"process": "P",
				"table":   "T",
				"ops":     []any{"C", "R", "C"},
			}},
		},
		{
			name: "ops as character string expands to tokens",
			crud: []any{map[string]any{
				"process": "P",
				"table":   "T",
				"ops":     "DR",
			}},
			want: []any{map[string]any{
				"process": "P",
				"table":   "T",
				"ops":     []any{"D", "R"},
			}},
		},
		{
			name: "token matching is case-sensitive",
			crud: []any{map[string]any{
				"process": "P",
				"table":   "T",
				"ops":     []any{"c", "R", "u"},
			}},
			want: []any{map[string]any{
				"process": "P",
				"table":   "T",
				"ops":     []any{"R"},
			}},
		},
		{
			name: "missing ops becomes an empty list",
			crud: []any{map[string]any{"process": "P", "table": "T"}},
			want: []any{map[string]any{
				"process": "P",
				"table":   "T",
				"ops":     []any{},
			}},
		},
		{
			name: "non-string ops tokens are dropped",
			crud: []any{map[string]any{
				"process": "P",
				"table":   "T",
				"ops":     []any{"C", 1, true, "D"},
			}},
			want: []any{map[string]any{
				"process": "P",
				"table":   "T",
				"ops":     []any{"C", "D"},
			}},
		},
		{
			name: "non-object rows pass through",
			crud: []any{"not a row"},
			want: []any{"not a row"},
		},
		{
			name: "missing process and table stay missing",
			crud: []any{map[string]any{"ops": "C"}},
			want: []any{map[string]any{"ops": []any{"C"}}},
		},
		{
			name: "unrecognized crud_matrix shape passes through",
			crud: "CRUD",
			want: "CRUD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(map[string]any{"crud_matrix": tt.crud})
			if !reflect.DeepEqual(got["crud_matrix"], tt.want) {
				t.Errorf("Normalize() crud_matrix = %v, want %v", got["crud_matrix"], tt.want)
			}
		})
	}
}

func TestNormalizeProcesses(t *testing.T) {
	tests := []struct {
		name      string
		processes any
		want      any
	}{
		{
			name:      "bare strings become records",
			processes: []any{"Checkout", "Billing"},
			want: []any{
				map[string]any{"name": "Checkout"},
				map[string]any{"name": "Billing"},
			},
		},
		{
			name: "mixed strings and records",
			processes: []any{
				"Checkout",
				map[string]any{"name": "Billing", "description": "invoicing"},
			},
			want: []any{
				map[string]any{"name": "Checkout"},
				map[string]any{"name": "Billing", "description": "invoicing"},
			},
		},
		{
			name: "non-string children are dropped",
			processes: []any{map[string]any{
				"name":     "Checkout",
				"children": []any{"Payment", 42, "Shipping"},
			}},
			want: []any{map[string]any{
				"name":     "Checkout",
				"children": []any{"Payment", "Shipping"},
			}},
		},
		{
			name: "wrong-typed description is dropped",
			processes: []any{map[string]any{
				"name":        "Checkout",
				"description": 42,
			}},
			want: []any{map[string]any{"name": "Checkout"}},
		},
		{
			name:      "non-coercible entries pass through",
			processes: []any{42},
			want:      []any{42},
		},
		{
			name:      "non-list processes passes through",
			processes: map[string]any{"name": "Checkout"},
			want:      map[string]any{"name": "Checkout"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(map[string]any{"processes": tt.processes})
			if !reflect.DeepEqual(got["processes"], tt.want) {
				t.Errorf("Normalize() processes = %v, want %v", got["processes"], tt.want)
			}
		})
	}
}

func TestNormalizeDocLinks(t *testing.T) {
	tests := []struct {
		name     string
		docLinks any
		want     any
	}{
		{
			name:     "bare strings become records with empty snippet and related",
			docLinks: []any{"note on users table"},
			want: []any{map[string]any{
				"doc":     "note on users table",
				"snippet": "",
				"related": "",
			}},
		},
		{
			name:     "missing snippet and related are filled",
			docLinks: []any{map[string]any{"doc": "orders.md"}},
			want: []any{map[string]any{
				"doc":     "orders.md",
				"snippet": "",
				"related": "",
			}},
		},
		{
			name: "present fields are kept",
			docLinks: []any{map[string]any{
				"doc":     "orders.md",
				"snippet": "<p>hi</p>",
				"related": "orders",
			}},
			want: []any{map[string]any{
				"doc":     "orders.md",
				"snippet": "<p>hi</p>",
				"related": "orders",
			}},
		},
		{
			name:     "wrong-typed doc is kept for the validator",
			docLinks: []any{map[string]any{"doc": 42}},
			want: []any{map[string]any{
				"doc":     42,
				"snippet": "",
				"related": "",
			}},
		},
		{
			name:     "non-coercible entries pass through",
			docLinks: []any{42},
			want:     []any{42},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(map[string]any{"doc_links": tt.docLinks})
			if !reflect.DeepEqual(got["doc_links"], tt.want) {
				t.Errorf("Normalize() doc_links = %v, want %v", got["doc_links"], tt.want)
			}
		})
	}
}

func TestNormalizeFiles(t *testing.T) {
	tests := []struct {
		name  string
		files any
		want  any
	}{
		{
			name:  "bare strings become records tagged unknown",
			files: []any{"Services/OrderService.cs"},
			want: []any{map[string]any{
				"path": "Services/OrderService.cs",
				"tag":  "unknown",
			}},
		},
		{
			name:  "missing tag defaults to unknown",
			files: []any{map[string]any{"path": "a.cs"}},
			want:  []any{map[string]any{"path": "a.cs", "tag": "unknown"}},
		},
		{
			name:  "present tag is kept verbatim even when invalid",
			files: []any{map[string]any{"path": "a.cs", "tag": "widget"}},
			want:  []any{map[string]any{"path": "a.cs", "tag": "widget"}},
		},
		{
			name:  "non-string tag defaults to unknown",
			files: []any{map[string]any{"path": "a.cs", "tag": 42}},
			want:  []any{map[string]any{"path": "a.cs", "tag": "unknown"}},
		},
		{
			name: "summary is kept when a string",
			files: []any{map[string]any{
				"path":    "a.cs",
				"tag":     "entity",
				"summary": "user aggregate",
			}},
			want: []any{map[string]any{
				"path":    "a.cs",
				"tag":     "entity",
				"summary": "user aggregate",
			}},
		},
		{
			name:  "non-coercible entries pass through",
			files: []any{42},
			want:  []any{42},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(map[string]any{"files": tt.files})
			if !reflect.DeepEqual(got["files"], tt.want) {
				t.Errorf("Normalize() files = %v, want %v", got["files"], tt.want)
			}
		})
	}
}

func TestNormalizeERD(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]any
		want  string
	}{
		{
			name:  "string is kept",
			input: map[string]any{"erd_mermaid": "erDiagram"},
			want:  "erDiagram",
		},
		{
			name:  "missing becomes empty",
			input: map[string]any{},
			want:  "",
		},
		{
			name:  "non-string becomes empty",
			input: map[string]any{"erd_mermaid": 42},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got["erd_mermaid"] != tt.want {
				t.Errorf("Normalize() erd_mermaid = %v, want %q", got["erd_mermaid"], tt.want)
			}
		})
	}
}

func buildAliasingInput() map[string]any {
	return map[string]any{
		"tables": []any{map[string]any{
			"name": "users",
			"columns": []any{map[string]any{
				"name":        "id",
				"constraints": []any{"PRIMARY KEY"},
			}},
		}},
		"crud_matrix": map[string]any{"Orders": map[string]any{"ops": "CRU"}},
		"processes":   []any{"Checkout"},
		"doc_links":   []any{"note"},
		"files":       []any{"a.cs"},
		"extra":       map[string]any{"nested": []any{"x"}},
	}
}

func TestNormalizePurity(t *testing.T) {
	input := buildAliasingInput()
	want := buildAliasingInput()

	got := Normalize(input)

	if !reflect.DeepEqual(input, want) {
		t.Errorf("Normalize() mutated its input:\ngot  %v\nwant %v", input, want)
	}

	// Mutating the output must not reach the input either.
	tables := got["tables"].([]any)
	tables[0].(map[string]any)["name"] = "mutated"
	cols := tables[0].(map[string]any)["columns"].([]any)
	cols[0].(map[string]any)["name"] = "mutated"

	if !reflect.DeepEqual(input, want) {
		t.Errorf("Normalize() output aliases its input:\ngot  %v\nwant %v", input, want)
	}
}

func TestNormalizePassthroughIsDeepCopied(t *testing.T) {
	input := map[string]any{
		"tables": map[string]any{"nested": []any{"x"}},
	}
	want := map[string]any{
		"tables": map[string]any{"nested": []any{"x"}},
	}

	got := Normalize(input)

	// The wrong-shaped value passes through by value, not by reference.
	passthrough := got["tables"].(map[string]any)
	passthrough["nested"].([]any)[0] = "mutated"
	passthrough["added"] = true

	if !reflect.DeepEqual(input, want) {
		t.Errorf("Normalize() passthrough aliases its input:\ngot  %v\nwant %v", input, want)
	}
}
