package domain

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors returned by NewRunnerProfile.
var (
	ErrInvalidMileageTarget = errors.New("weekly mileage target must be positive")
	ErrInvalidDaysPerWeek   = errors.New("training days per week must be between 3 and 7")
)

// RunnerProfile captures the runner's goal and training constraints.
// It is constructed once from validated user input and consumed read-only
// by the plan generator.
type RunnerProfile struct {
	ExperienceLevel      ExperienceLevel `bson:"experienceLevel" json:"experienceLevel"`
	TargetDistance       RaceDistance    `bson:"targetDistance" json:"targetDistance"`
	PeakRaceDate         time.Time       `bson:"peakRaceDate" json:"peakRaceDate"`
	WeeklyMileageTarget  float64         `bson:"weeklyMileageTarget" json:"weeklyMileageTarget"`
	DaysPerWeek          int             `bson:"daysPerWeek" json:"daysPerWeek"`
	CurrentWeeklyMileage float64         `bson:"currentWeeklyMileage" json:"currentWeeklyMileage"`
	PreviousInjuries     []string        `bson:"previousInjuries,omitempty" json:"previousInjuries,omitempty"`
	StrengthTrainingDays int             `bson:"strengthTrainingDays" json:"strengthTrainingDays"`
}

// ProfileParams holds the raw inputs for building a RunnerProfile.
// String fields are parsed against the enum tables; the race date is
// expected in ISO-8601 (YYYY-MM-DD) form.
type ProfileParams struct {
	TargetDistance       string
	RaceDate             string
	ExperienceLevel      string
	WeeklyMileageTarget  float64
	DaysPerWeek          int
	CurrentWeeklyMileage float64 // optional; 0 means "unset"
	PreviousInjuries     []string
	StrengthTrainingDays int // optional; 0 means "use default"
}

const defaultStrengthTrainingDays = 2

// NewRunnerProfile validates raw inputs and builds an immutable profile.
// A missing current mileage defaults to 70% of the target (conservative
// start); a missing strength-training count defaults to 2 days.
func NewRunnerProfile(p ProfileParams) (RunnerProfile, error) {
	distance, err := ParseRaceDistance(p.TargetDistance)
	if err != nil {
		return RunnerProfile{}, err
	}

	experience, err := ParseExperienceLevel(p.ExperienceLevel)
	if err != nil {
		return RunnerProfile{}, err
	}

	raceDate, err := time.Parse("2006-01-02", p.RaceDate)
	if err != nil {
		return RunnerProfile{}, &ParseError{Field: "raceDate", Msg: fmt.Sprintf("invalid date format: %q. Use YYYY-MM-DD format", p.RaceDate)}
	}

	if p.WeeklyMileageTarget <= 0 {
		return RunnerProfile{}, ErrInvalidMileageTarget
	}
	if p.DaysPerWeek < 3 || p.DaysPerWeek > 7 {
		return RunnerProfile{}, ErrInvalidDaysPerWeek
	}

	current := p.CurrentWeeklyMileage
	if current <= 0 {
		current = p.WeeklyMileageTarget * 0.7
	}

	strengthDays := p.StrengthTrainingDays
	if strengthDays <= 0 {
		strengthDays = defaultStrengthTrainingDays
	}

	return RunnerProfile{
		ExperienceLevel:      experience,
		TargetDistance:       distance,
		PeakRaceDate:         raceDate,
		WeeklyMileageTarget:  p.WeeklyMileageTarget,
		DaysPerWeek:          p.DaysPerWeek,
		CurrentWeeklyMileage: current,
		PreviousInjuries:     p.PreviousInjuries,
		StrengthTrainingDays: strengthDays,
	}, nil
}
