package assessment

import "math"

// StageLabel is an ordered ICT policy maturity classification,
// per the SABER-ICT framework.
type StageLabel string

const (
	StageLatent      StageLabel = "latent"
	StageEmerging    StageLabel = "emerging"
	StageEstablished StageLabel = "established"
	StageAdvanced    StageLabel = "advanced"
)

var (
	// AllStages in ascending maturity order.
	AllStages = []StageLabel{StageLatent, StageEmerging, StageEstablished, StageAdvanced}

	stageAnchors = map[StageLabel]float64{
		StageLatent:      25,
		StageEmerging:    50,
		StageEstablished: 75,
		StageAdvanced:    100,
	}

	stageNames = map[StageLabel]string{
		StageLatent:      "Latent",
		StageEmerging:    "Emerging",
		StageEstablished: "Established",
		StageAdvanced:    "Advanced",
	}
)

func (s StageLabel) IsValid() bool {
	_, ok := stageAnchors[s]
	return ok
}

func (s StageLabel) Name() string {
	return stageNames[s]
}

// ScoreToStage classifies a 0-100 score into its maturity stage.
// The thresholds are the midpoints between the stage anchor scores
// (25/50/75/100), not an even split of the 0-100 range.
func ScoreToStage(score float64) StageLabel {
	switch {
	case score >= 87.5:
		return StageAdvanced
	case score >= 62.5:
		return StageEstablished
	case score >= 37.5:
		return StageEmerging
	default:
		return StageLatent
	}
}

// StageToScore returns the fixed anchor score of a stage; selecting a stage
// snaps the score to this anchor. An anchor always re-derives its own stage.
func StageToScore(stage StageLabel) float64 {
	return stageAnchors[stage]
}

// roundScore rounds half away from zero; scores are non-negative so .5 cases
// always round up. A mean of exactly 62.5 therefore lands on 63 (Established).
func roundScore(x float64) int {
	return int(math.Floor(x + 0.5))
}
