package domain

import "fmt"

// ParseError reports a profile input value that failed validation.
// Handlers use it to tell bad user input apart from infrastructure errors.
type ParseError struct {
	Field string
	Msg   string
}

func (e *ParseError) Error() string { return e.Msg }

// RaceDistance enumerates the supported target race distances.
type RaceDistance string

const (
	DistanceMile         RaceDistance = "1 Mile"
	Distance5K           RaceDistance = "5K"
	Distance10K          RaceDistance = "10K"
	DistanceHalfMarathon RaceDistance = "Half Marathon"
	DistanceMarathon     RaceDistance = "Marathon"
)

// RaceDistances lists all valid distances in menu order.
var RaceDistances = []RaceDistance{
	DistanceMile,
	Distance5K,
	Distance10K,
	DistanceHalfMarathon,
	DistanceMarathon,
}

// ParseRaceDistance converts user input into a RaceDistance.
// Unknown values produce an error enumerating the valid choices.
func ParseRaceDistance(s string) (RaceDistance, error) {
	for _, d := range RaceDistances {
		if string(d) == s {
			return d, nil
		}
	}
	return "", &ParseError{Field: "distance", Msg: fmt.Sprintf("invalid distance: %q. Choose from: %v", s, RaceDistances)}
}

// ExperienceLevel describes how long the runner has been training.
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "Beginner"     // < 1 year running
	ExperienceIntermediate ExperienceLevel = "Intermediate" // 1-3 years running
	ExperienceAdvanced     ExperienceLevel = "Advanced"     // 3+ years running
)

// ExperienceLevels lists all valid levels in menu order.
var ExperienceLevels = []ExperienceLevel{
	ExperienceBeginner,
	ExperienceIntermediate,
	ExperienceAdvanced,
}

// ParseExperienceLevel converts user input into an ExperienceLevel.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	for _, e := range ExperienceLevels {
		if string(e) == s {
			return e, nil
		}
	}
	return "", &ParseError{Field: "experience", Msg: fmt.Sprintf("invalid experience level: %q. Choose from: %v", s, ExperienceLevels)}
}

// TrainingZone is one of five ordinal intensity bands based on heart rate.
type TrainingZone string

const (
	Zone1 TrainingZone = "Zone 1" // 50-60% HRmax - active recovery
	Zone2 TrainingZone = "Zone 2" // 60-70% HRmax - aerobic base
	Zone3 TrainingZone = "Zone 3" // 70-80% HRmax - moderate (gray zone)
	Zone4 TrainingZone = "Zone 4" // 80-90% HRmax - lactate threshold
	Zone5 TrainingZone = "Zone 5" // 90-100% HRmax - VO2 max
)

// WorkoutType enumerates the kinds of sessions a plan can schedule.
type WorkoutType string

const (
	WorkoutEasyRun   WorkoutType = "Easy Run"
	WorkoutLongRun   WorkoutType = "Long Run"
	WorkoutTempoRun  WorkoutType = "Tempo Run"
	WorkoutIntervals WorkoutType = "Intervals"
	WorkoutStrides   WorkoutType = "Strides"
	WorkoutHills     WorkoutType = "Hills"
	WorkoutRacePace  WorkoutType = "Race Pace"
	WorkoutRecovery  WorkoutType = "Recovery"
	WorkoutRest      WorkoutType = "Rest"
)

// TrainingPhase is one of the four sequential periodization stages.
type TrainingPhase string

const (
	PhaseBase  TrainingPhase = "Base"
	PhaseBuild TrainingPhase = "Build"
	PhasePeak  TrainingPhase = "Peak"
	PhaseTaper TrainingPhase = "Taper"
)

// Phases lists the periodization stages in the order they are consumed.
var Phases = []TrainingPhase{PhaseBase, PhaseBuild, PhasePeak, PhaseTaper}
