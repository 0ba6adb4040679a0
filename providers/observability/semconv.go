package observability

// Shared attribute, span, event, and metric names. Every component that
// records an observation uses these constants, so one vocabulary reaches
// the backend no matter which Provider is plugged in.

// --- Recovery Pipeline Attributes ---

const (
	// AttrRecoveryOutcome is the final outcome of a recovery run
	// (e.g., "recovered", "unrecoverable_syntax", "schema_mismatch")
	AttrRecoveryOutcome = "recovery.outcome"

	// AttrRecoveryInputBytes is the size of the raw input text in bytes
	AttrRecoveryInputBytes = "recovery.input.bytes"

	// AttrRecoveryRepairApplied indicates whether the repair parser had to
	// rewrite the candidate before it decoded
	AttrRecoveryRepairApplied = "recovery.repair_applied"

	// AttrRecoveryDefectsCount is the number of schema defects reported
	AttrRecoveryDefectsCount = "recovery.defects.count"

	// AttrRecoveryStage is the pipeline stage name (e.g., "extract", "parse")
	AttrRecoveryStage = "recovery.stage"

	// AttrRecoveryRunID is the unique identifier of a recovery run
	AttrRecoveryRunID = "recovery.run.id"
)

// --- Analysis Record Attributes ---

const (
	// AttrAnalysisTablesCount is the number of tables in the recovered record
	AttrAnalysisTablesCount = "analysis.tables.count"

	// AttrAnalysisProcessesCount is the number of processes in the recovered record
	AttrAnalysisProcessesCount = "analysis.processes.count"

	// AttrAnalysisFilesCount is the number of classified files in the recovered record
	AttrAnalysisFilesCount = "analysis.files.count"
)

// --- General Attributes ---

const (
	// AttrError carries an error message; the [Error] constructor uses it
	AttrError = "error"

	// AttrErrorType carries the Go type of a recorded error
	AttrErrorType = "error.type"

	// AttrDuration is the wall-clock time an operation took
	AttrDuration = "duration"

	// AttrStatus is the coarse operation status ("success" or "error")
	AttrStatus = "status"

	// AttrStatusDescription elaborates on a non-OK status
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	// SpanRecoveryRun is the span name for a full recovery pipeline run
	SpanRecoveryRun = "recovery.recover"
)

// --- Event Names ---

const (
	// EventStageCompleted marks the completion of a pipeline stage
	EventStageCompleted = "recovery.stage.completed"

	// EventRepairApplied marks a candidate that only decoded after repair
	EventRepairApplied = "recovery.repair.applied"

	// EventSnippetsConverted marks HTML snippets converted to Markdown
	EventSnippetsConverted = "recovery.snippets.converted"
)

// --- Metric Names ---

const (
	// MetricRecoveryRunCount is the counter for recovery runs
	MetricRecoveryRunCount = "analyzer.recovery.run.count"

	// MetricRecoveryRunDuration is the histogram for recovery run duration
	MetricRecoveryRunDuration = "analyzer.recovery.run.duration"

	// MetricRecoveryRepairCount is the counter for repaired candidates
	MetricRecoveryRepairCount = "analyzer.recovery.repair.count"

	// MetricRecoveryDefectCount is the counter for reported schema defects
	MetricRecoveryDefectCount = "analyzer.recovery.defect.count"
)
