package domain

// PipelineState tracks the lifecycle of the question-answering pipeline.
//
// The pipeline starts Uninitialized, moves to Ready after a successful
// index build, or to Failed if any build step errors. Failed is terminal
// for the process; recovery requires a restart.
type PipelineState int

const (
	// StateUninitialized means no index build has been attempted.
	StateUninitialized PipelineState = iota

	// StateReady means the index is built and queries are accepted.
	StateReady

	// StateFailed means the index build failed. Queries receive a
	// degraded-service response and the state never leaves Failed.
	StateFailed
)

// String returns the string representation.
func (s PipelineState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
