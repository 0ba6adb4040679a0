package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/edslclee/legacy-csharp-analyzer/core/analysis"
	"github.com/edslclee/legacy-csharp-analyzer/core/validate"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// reportContextKey is the key used to store a Report in context.
const reportContextKey contextKey = "report"

// Report aggregates execution statistics for a single recovery run:
// per-stage durations, repair activity, the final outcome, and counts
// describing the recovered record.
type Report struct {
	// RunID uniquely identifies this recovery run.
	RunID string `json:"run_id"`
	// InputBytes is the size of the raw input text.
	InputBytes int `json:"input_bytes"`
	// RepairApplied records whether the candidate only decoded after repair.
	RepairApplied bool `json:"repair_applied"`
	// Outcome is the terminal outcome of the run.
	Outcome string `json:"outcome,omitempty"`
	// DefectCount is the number of schema defects reported.
	DefectCount int `json:"defect_count,omitempty"`

	TableCount   int `json:"table_count,omitempty"`
	ProcessCount int `json:"process_count,omitempty"`
	FileCount    int `json:"file_count,omitempty"`

	// StageDurations accumulates elapsed wall-clock time per stage name.
	StageDurations map[string]time.Duration `json:"stage_durations,omitempty"`

	// RunStartTime marks when the run started
	RunStartTime time.Time `json:"run_start_time,omitempty"`
	// RunEndTime marks when the run ended
	RunEndTime time.Time `json:"run_end_time,omitempty"`
}

// New creates an empty Report with a fresh run identifier.
func New() *Report {
	return &Report{
		RunID:          uuid.NewString(),
		StageDurations: make(map[string]time.Duration),
	}
}

// FromContext retrieves the Report from the context, creating one if it
// does not already exist. The context pointer is updated in-place when a
// new Report is created so callers see the enriched context.
func FromContext(ctx *context.Context) *Report {
	reportVal := (*ctx).Value(reportContextKey)
	if reportVal == nil {
		rep := New()
		*ctx = rep.ToContext(*ctx)
		return rep
	}

	rep, ok := reportVal.(*Report)
	if !ok {
		return nil
	}
	return rep
}

// ToContext stores the Report in the given context and returns the enriched context.
func (r *Report) ToContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	return context.WithValue(ctx, reportContextKey, r)
}

// AddStage accumulates the elapsed duration of a named pipeline stage.
// Calling it again with the same name adds to the existing total.
func (r *Report) AddStage(name string, duration time.Duration) {
	if r.StageDurations == nil {
		r.StageDurations = make(map[string]time.Duration)
	}
	r.StageDurations[name] += duration
}

// SetInputBytes records the size of the raw input text.
func (r *Report) SetInputBytes(n int) {
	r.InputBytes = n
}

// SetRepairApplied records whether the repair pass was needed to decode
// the candidate.
func (r *Report) SetRepairApplied(applied bool) {
	r.RepairApplied = applied
}

// SetOutcome records the terminal outcome of the run.
func (r *Report) SetOutcome(outcome string) {
	r.Outcome = outcome
}

// IncludeDefects adds the reported schema defects to the running total.
func (r *Report) IncludeDefects(defects []validate.Defect) {
	r.DefectCount += len(defects)
}

// IncludeRecord copies size statistics from a recovered record into the
// report. A nil record leaves the report unchanged.
func (r *Report) IncludeRecord(record *analysis.Record) {
	if record == nil {
		return
	}
	r.TableCount = len(record.Tables)
	r.ProcessCount = len(record.Processes)
	r.FileCount = len(record.Files)
}

// StartRun marks the start of the run for duration tracking.
func (r *Report) StartRun() {
	r.RunStartTime = time.Now()
}

// EndRun marks the end of the run for duration tracking.
func (r *Report) EndRun() {
	r.RunEndTime = time.Now()
}

// RunDuration returns the total run duration.
// Returns 0 if the run hasn't started or ended.
func (r *Report) RunDuration() time.Duration {
	if r.RunStartTime.IsZero() || r.RunEndTime.IsZero() {
		return 0
	}
	return r.RunEndTime.Sub(r.RunStartTime)
}

// RunSummary is a flattened view of a completed run, suitable for logging
// or printing at the end of a batch.
type RunSummary struct {
	RunID           string             `json:"run_id"`
	Outcome         string             `json:"outcome"`
	DurationSeconds float64            `json:"duration_seconds"`
	RepairApplied   bool               `json:"repair_applied"`
	DefectCount     int                `json:"defect_count"`
	InputBytes      int                `json:"input_bytes"`
	TableCount      int                `json:"table_count"`
	ProcessCount    int                `json:"process_count"`
	FileCount       int                `json:"file_count"`
	StageSeconds    map[string]float64 `json:"stage_seconds"`
}

// Summary returns a detailed breakdown of the run.
func (r *Report) Summary() RunSummary {
	summary := RunSummary{
		RunID:         r.RunID,
		Outcome:       r.Outcome,
		RepairApplied: r.RepairApplied,
		DefectCount:   r.DefectCount,
		InputBytes:    r.InputBytes,
		TableCount:    r.TableCount,
		ProcessCount:  r.ProcessCount,
		FileCount:     r.FileCount,
		StageSeconds:  make(map[string]float64),
	}

	for name, duration := range r.StageDurations {
		summary.StageSeconds[name] = duration.Seconds()
	}

	if duration := r.RunDuration(); duration > 0 {
		summary.DurationSeconds = duration.Seconds()
	}

	return summary
}
