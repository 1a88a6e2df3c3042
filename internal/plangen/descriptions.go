package plangen

import (
	"fmt"

	"runplan/internal/domain"
)

// describeWorkout produces the coaching text for a workout: a per-type
// template embedding the distance, plus a phase-specific closing sentence.
func describeWorkout(workoutType domain.WorkoutType, distance float64, phase domain.TrainingPhase, profile domain.RunnerProfile) string {
	var base string

	switch workoutType {
	case domain.WorkoutEasyRun:
		base = fmt.Sprintf("Easy %.1f mile run at conversational pace. Focus on relaxed breathing and good form.", distance)
	case domain.WorkoutLongRun:
		base = fmt.Sprintf("Long run of %.1f miles. Start easy and maintain steady pace. Practice race day nutrition if over 90 minutes.", distance)
	case domain.WorkoutTempoRun:
		base = fmt.Sprintf("Tempo run: %.1f miles at lactate threshold pace. Should feel 'comfortably hard' - you could hold this pace for about 1 hour.", distance)
	case domain.WorkoutIntervals:
		base = fmt.Sprintf("Interval workout: %s", intervalPrescription(profile.TargetDistance))
	case domain.WorkoutStrides:
		base = fmt.Sprintf("Strides: %.1f miles with 4-6 x 100m accelerations. Focus on quick turnover and good form.", distance)
	case domain.WorkoutHills:
		base = fmt.Sprintf("Hill workout: %.1f miles including hill repeats. Focus on driving with arms and maintaining form on uphills.", distance)
	case domain.WorkoutRacePace:
		base = fmt.Sprintf("Race pace workout: %.1f miles at target %s pace. Practice race day effort and pacing.", distance, profile.TargetDistance)
	case domain.WorkoutRecovery:
		base = fmt.Sprintf("Recovery run: %.1f miles at very easy pace. Focus on blood flow and recovery.", distance)
	case domain.WorkoutRest:
		base = "Rest day - focus on recovery, nutrition, and sleep. Consider light stretching or yoga."
	default:
		base = fmt.Sprintf("%.1f mile run", distance)
	}

	if coaching := phaseCoaching(phase, profile.TargetDistance); coaching != "" {
		base += " " + coaching
	}
	return base
}

// intervalPrescription picks the interval session for the target race.
func intervalPrescription(distance domain.RaceDistance) string {
	switch distance {
	case domain.DistanceMile:
		return "4-6 x 400m at mile pace with 2-3 minute recovery"
	case domain.Distance5K:
		return "6-8 x 1000m at 5K pace with 2-3 minute recovery"
	case domain.Distance10K:
		return "4-6 x 1600m at 10K pace with 3-4 minute recovery"
	case domain.DistanceHalfMarathon:
		return "3-4 x 2 mile at half marathon pace with 3-4 minute recovery"
	default: // Marathon
		return "2-3 x 3 mile at marathon pace with 3-4 minute recovery"
	}
}

// phaseCoaching returns the fixed coaching line for a phase. Only the base
// phase is parameterized, by the distance's key focus.
func phaseCoaching(phase domain.TrainingPhase, distance domain.RaceDistance) string {
	switch phase {
	case domain.PhaseBase:
		return fmt.Sprintf("Building aerobic foundation. Focus on %s.", distanceConfigs[distance].KeyFocus)
	case domain.PhaseBuild:
		return "Increasing training stress. Maintain good form as intensity increases."
	case domain.PhasePeak:
		return "Race-specific training. Practice race day scenarios and pacing."
	case domain.PhaseTaper:
		return "Reducing volume while maintaining intensity. Trust your training."
	default:
		return ""
	}
}
