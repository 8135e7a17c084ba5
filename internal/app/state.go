package app

import "github.com/katiamach/weather-forecast-app/internal/model"

// Stage is a step of the lookup state machine.
type Stage int

// Lookup stages. NotFound, FetchError and Ready are terminal for a request.
const (
	StageIdle Stage = iota
	StageLoading
	StageResolving
	StageNotFound
	StageFetching
	StageFetchError
	StageReady
)

var stageNames = map[Stage]string{
	StageIdle:       "idle",
	StageLoading:    "loading",
	StageResolving:  "resolving",
	StageNotFound:   "not_found",
	StageFetching:   "fetching",
	StageFetchError: "fetch_error",
	StageReady:      "ready",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether a request ends in this stage.
func (s Stage) Terminal() bool {
	return s == StageNotFound || s == StageFetchError || s == StageReady
}

// State is a snapshot of the shell.
type State struct {
	Query     string
	IsLoading bool
	// Result is nil while loading and after a failed request.
	Result *model.Forecast
	Stage  Stage
}

// Outcome describes how a submission ended.
type Outcome struct {
	Stage  Stage
	Result *model.Forecast
	Err    error
}
