package wizard

import "strings"

// Stage is one step of the composition flow. Stages are strictly ordered;
// there is no skipping forward.
type Stage int

const (
	StageBasics Stage = iota
	StageTracks
	StageDistribution
	StageCredits
	StageReview
)

var stageNames = [...]string{"basics", "tracks", "distribution", "credits", "review"}

func (s Stage) String() string {
	if s < StageBasics || s > StageReview {
		return "unknown"
	}
	return stageNames[s]
}

// Stages returns the ordered stage list.
func Stages() []Stage {
	return []Stage{StageBasics, StageTracks, StageDistribution, StageCredits, StageReview}
}

// ParseStage converts a string into a known Stage.
func ParseStage(value string) (Stage, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for i, name := range stageNames {
		if name == normalized {
			return Stage(i), true
		}
	}
	return 0, false
}

// State is the wizard lifecycle: active until the draft is submitted or
// abandoned.
type State string

const (
	StateActive    State = "active"
	StateSubmitted State = "submitted"
	StateCancelled State = "cancelled"
)
