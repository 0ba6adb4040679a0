// Package report aggregates execution statistics for a single recovery
// run: stage durations, repair activity, schema defect counts, and the
// size of the recovered record. A [Report] travels through the
// [context.Context] so that every pipeline stage can contribute to it
// without threading an extra parameter; retrieve it with [FromContext]
// and summarize it with [Report.Summary].
package report
