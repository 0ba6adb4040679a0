package analysis

// CRUD operation tokens permitted in [CrudRow.Ops].
const (
	OpCreate = "C"
	OpRead   = "R"
	OpUpdate = "U"
	OpDelete = "D"
)

// ValidOps lists the CRUD tokens in canonical order.
var ValidOps = []string{OpCreate, OpRead, OpUpdate, OpDelete}

// IsValidOp reports whether token is one of the four CRUD tokens.
// Matching is case-sensitive: "c" is not a valid token.
func IsValidOp(token string) bool {
	switch token {
	case OpCreate, OpRead, OpUpdate, OpDelete:
		return true
	}
	return false
}

// File classification tags permitted in [FileInfo.Tag].
const (
	FileTagEntity     = "entity"
	FileTagService    = "service"
	FileTagController = "controller"
	FileTagView       = "view"
	FileTagRepository = "repository"
	FileTagConfig     = "config"
	FileTagTest       = "test"
	FileTagUnknown    = "unknown"
)

// FileTags lists the valid file classification tags.
var FileTags = []string{
	FileTagEntity,
	FileTagService,
	FileTagController,
	FileTagView,
	FileTagRepository,
	FileTagConfig,
	FileTagTest,
	FileTagUnknown,
}

// Record is the canonical analysis record: the single fixed-shape output the
// recovery pipeline guarantees on success. It is produced fresh per pipeline
// invocation and never aliases the raw parsed input.
type Record struct {
	// Tables describes the persistent entities discovered in the codebase.
	Tables []Table `json:"tables" jsonschema:"description=Database tables with their columns"`

	// ErdMermaid holds an entity-relationship diagram in Mermaid syntax.
	// Empty when the model produced none.
	ErdMermaid string `json:"erd_mermaid" jsonschema:"description=Mermaid ER diagram source"`

	// CrudMatrix maps business processes to the tables they touch.
	CrudMatrix []CrudRow `json:"crud_matrix" jsonschema:"description=Process to table CRUD matrix"`

	// Processes lists the business processes identified in the codebase.
	Processes []Process `json:"processes" jsonschema:"description=Business processes"`

	// DocLinks ties documentation snippets to the code they describe.
	DocLinks []DocLink `json:"doc_links" jsonschema:"description=Documentation references"`

	// Files classifies the source files that were analyzed.
	Files []FileInfo `json:"files" jsonschema:"description=Classified source files"`
}

// Table is a database table with its ordered column list.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Column describes a single table column. Type is free text (whatever the
// source schema declared); Nullable is always set once a record has been
// normalized, defaulting to true when the source did not constrain it.
type Column struct {
	Name     string      `json:"name"`
	Type     string      `json:"type,omitempty"`
	PK       bool        `json:"pk,omitempty"`
	FK       *ForeignKey `json:"fk,omitempty"`
	Nullable bool        `json:"nullable"`
}

// ForeignKey points at the referenced table and column.
type ForeignKey struct {
	Table  string `json:"table"`
	Column string `json:"column"`
}

// CrudRow records which CRUD operations a process performs on a table.
// Ops preserves the order and duplicate count of the source tokens; only
// membership in {C,R,U,D} is enforced.
type CrudRow struct {
	Process string   `json:"process"`
	Table   string   `json:"table"`
	Ops     []string `json:"ops" jsonschema:"enum=C,enum=R,enum=U,enum=D"`
}

// Process is a business process, optionally with a description and the names
// of its child processes.
type Process struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Children    []string `json:"children,omitempty"`
}

// DocLink ties a documentation source to related code. Snippet and Related
// may be empty but are always present on a canonical record.
type DocLink struct {
	Doc     string `json:"doc"`
	Snippet string `json:"snippet"`
	Related string `json:"related"`
}

// FileInfo classifies a single analyzed source file.
type FileInfo struct {
	Path    string `json:"path"`
	Tag     string `json:"tag" jsonschema:"enum=entity,enum=service,enum=controller,enum=view,enum=repository,enum=config,enum=test,enum=unknown"`
	Summary string `json:"summary,omitempty"`
}

// Clone returns a deep copy of the record. Slices and foreign-key pointers
// are duplicated so the copy can be modified without touching the original.
// Returns nil when called on a nil record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}

	out := &Record{
		ErdMermaid: r.ErdMermaid,
	}

	if r.Tables != nil {
		out.Tables = make([]Table, len(r.Tables))
		for i, t := range r.Tables {
			out.Tables[i] = t.clone()
		}
	}

	if r.CrudMatrix != nil {
		out.CrudMatrix = make([]CrudRow, len(r.CrudMatrix))
		for i, row := range r.CrudMatrix {
			out.CrudMatrix[i] = CrudRow{
				Process: row.Process,
				Table:   row.Table,
				Ops:     cloneStrings(row.Ops),
			}
		}
	}

	if r.Processes != nil {
		out.Processes = make([]Process, len(r.Processes))
		for i, p := range r.Processes {
			out.Processes[i] = Process{
				Name:        p.Name,
				Description: p.Description,
				Children:    cloneStrings(p.Children),
			}
		}
	}

	if r.DocLinks != nil {
		out.DocLinks = make([]DocLink, len(r.DocLinks))
		copy(out.DocLinks, r.DocLinks)
	}

	if r.Files != nil {
		out.Files = make([]FileInfo, len(r.Files))
		copy(out.Files, r.Files)
	}

	return out
}

func (t Table) clone() Table {
	out := Table{Name: t.Name}
	if t.Columns != nil {
		out.Columns = make([]Column, len(t.Columns))
		for i, c := range t.Columns {
			out.Columns[i] = c
			if c.FK != nil {
				fk := *c.FK
				out.Columns[i].FK = &fk
			}
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
