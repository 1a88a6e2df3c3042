package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// zonePaces maps each intensity zone to an estimated pace in minutes per
// mile. These are fixed approximations used only to derive durations.
var zonePaces = map[TrainingZone]float64{
	Zone1: 10.0, // very easy
	Zone2: 9.0,  // easy/conversational
	Zone3: 8.0,  // moderate
	Zone4: 7.0,  // tempo
	Zone5: 6.0,  // hard
}

const fallbackPace = 9.0

// EstimatePace returns the assumed pace for a zone in minutes per mile.
func EstimatePace(zone TrainingZone) float64 {
	if pace, ok := zonePaces[zone]; ok {
		return pace
	}
	return fallbackPace
}

// Workout is a single scheduled session within a training week.
type Workout struct {
	Day             int          `bson:"day" json:"day"` // 1..daysPerWeek, unique per week
	Type            WorkoutType  `bson:"type" json:"type"`
	DistanceMiles   float64      `bson:"distanceMiles" json:"distanceMiles"`
	DurationMinutes int          `bson:"durationMinutes" json:"durationMinutes"`
	IntensityZone   TrainingZone `bson:"intensityZone" json:"intensityZone"`
	Description     string       `bson:"description" json:"description"`
	Notes           string       `bson:"notes,omitempty" json:"notes,omitempty"`
}

// NewWorkout builds a workout, deriving the duration from distance and the
// zone pace table when no explicit duration is supplied.
func NewWorkout(day int, workoutType WorkoutType, distance float64, zone TrainingZone, description string) Workout {
	return Workout{
		Day:             day,
		Type:            workoutType,
		DistanceMiles:   distance,
		DurationMinutes: int(distance * EstimatePace(zone)),
		IntensityZone:   zone,
		Description:     description,
	}
}

// TrainingWeek groups the workouts of one plan week. TotalMileage is the
// planned weekly volume; the generator guarantees the workouts sum to it.
type TrainingWeek struct {
	WeekNumber   int           `bson:"weekNumber" json:"weekNumber"` // 1-based, contiguous
	Phase        TrainingPhase `bson:"phase" json:"phase"`
	Workouts     []Workout     `bson:"workouts" json:"workouts"`
	TotalMileage float64       `bson:"totalMileage" json:"totalMileage"`
	Notes        string        `bson:"notes,omitempty" json:"notes,omitempty"`
}

// NewTrainingWeek builds a week. A zero totalMileage is replaced by the sum
// of the workout distances.
func NewTrainingWeek(weekNumber int, phase TrainingPhase, workouts []Workout, totalMileage float64) TrainingWeek {
	if totalMileage == 0 {
		for _, w := range workouts {
			totalMileage += w.DistanceMiles
		}
	}
	return TrainingWeek{
		WeekNumber:   weekNumber,
		Phase:        phase,
		Workouts:     workouts,
		TotalMileage: totalMileage,
	}
}

// TrainingPlan is the complete generated plan. When persisted it carries a
// mongo ObjectID and the owning user; the generator itself only fills the
// value fields.
type TrainingPlan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OwnerID     primitive.ObjectID `bson:"ownerId,omitempty" json:"ownerId,omitempty"`
	Profile     RunnerProfile      `bson:"profile" json:"profile"`
	Weeks       []TrainingWeek     `bson:"weeks" json:"weeks"`
	TotalWeeks  int                `bson:"totalWeeks" json:"totalWeeks"`
	PeakMileage float64            `bson:"peakMileage" json:"peakMileage"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// NewTrainingPlan assembles the aggregate. TotalWeeks defaults to the week
// count and PeakMileage is always recomputed as the max weekly mileage.
func NewTrainingPlan(profile RunnerProfile, weeks []TrainingWeek) TrainingPlan {
	peak := 0.0
	for _, w := range weeks {
		if w.TotalMileage > peak {
			peak = w.TotalMileage
		}
	}
	return TrainingPlan{
		Profile:     profile,
		Weeks:       weeks,
		TotalWeeks:  len(weeks),
		PeakMileage: peak,
	}
}

// StartDate derives the first training day by counting back from the race.
func (p TrainingPlan) StartDate() time.Time {
	return p.Profile.PeakRaceDate.AddDate(0, 0, -7*p.TotalWeeks)
}

// PhaseBreakdown counts the weeks spent in each phase, keyed by phase.
func (p TrainingPlan) PhaseBreakdown() map[TrainingPhase]int {
	counts := make(map[TrainingPhase]int, len(Phases))
	for _, w := range p.Weeks {
		counts[w.Phase]++
	}
	return counts
}
