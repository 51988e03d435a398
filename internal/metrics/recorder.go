package metrics

import "time"

type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFatal    ResultLabel = "fatal"
	ResultCanceled ResultLabel = "canceled"
)

// Build outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeWarning  = "warning"
	OutcomeFailed   = "failed"
	OutcomeCanceled = "canceled"
)

// Recorder receives build and stage observations. Use NoopRecorder when
// metrics are not wanted.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncBuildOutcome(outcome string)
	SetPages(collection string, n int)
	AddWarnings(n int)
}

type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncBuildOutcome(string)                     {}
func (NoopRecorder) SetPages(string, int)                       {}
func (NoopRecorder) AddWarnings(int)                            {}
