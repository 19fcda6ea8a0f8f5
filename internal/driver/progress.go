package driver

// Stage names one of Compile's pipeline phases, matching the names passed
// to timerTrack in pipeline.go. Grounded on the teacher's buildpipeline.Stage,
// relabelled for this pipeline's own phases.
type Stage string

const (
	StageResolveIncludes Stage = "resolve-includes"
	StageLowerHIR        Stage = "lower-hir"
	StageScope           Stage = "scope"
	StageTypecheck       Stage = "typecheck"
	StageLowerTIR        Stage = "lower-tir"
	StagePasses          Stage = "passes"
)

// Status captures progress state within a Stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file (or the overall pipeline, when File is
// empty) at one Stage.
type Event struct {
	File   string
	Stage  Stage
	Status Status
	Err    error
}

// ProgressSink consumes progress events. Compile emits one overall event per
// stage transition and, during lower-hir (the one stage that iterates files
// individually), one per-file event per file.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel, letting a consumer (e.g.
// internal/ui's Bubble Tea model) receive them on a separate goroutine from
// the one running Compile.
type ChannelSink struct {
	Ch chan<- Event
}

// OnEvent forwards evt to the channel, or drops it if Ch is nil.
func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emitStage(sink ProgressSink, stage Stage, status Status, err error) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Stage: stage, Status: status, Err: err})
}

func emitFile(sink ProgressSink, file string, stage Stage, status Status) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status})
}
