// Package analysis defines the canonical analysis record produced by the
// recovery pipeline: the tables, ERD, CRUD matrix, processes, documentation
// links and file classifications extracted from a legacy codebase.
package analysis
