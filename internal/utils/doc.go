// Package utils provides shared low-level helpers used throughout the
// analyzer internals.
//
// Key entry points: [Ptr] and [Deref] for optional fields carried as
// pointers, [Timer] for clocking whole runs and their stages, and
// [TruncateString] for shortening large payloads before they reach log
// output.
package utils
