package plangen

import (
	"math"
	"sort"

	"runplan/internal/domain"
)

// Generator produces periodized training plans from runner profiles.
// Generation is pure and reentrant: every call depends only on the static
// tables and the profile, so identical profiles yield identical plans.
type Generator interface {
	Generate(profile domain.RunnerProfile) domain.TrainingPlan
}

type generator struct{}

// NewGenerator creates a plan generator backed by the static lookup tables.
func NewGenerator() Generator {
	return &generator{}
}

// Generate builds the complete plan: timeline, phase breakdown, weekly
// mileage progression and the day-by-day workout schedule.
func (g *generator) Generate(profile domain.RunnerProfile) domain.TrainingPlan {
	totalWeeks := g.totalTrainingWeeks(profile)
	breakdown := g.phaseBreakdown(profile, totalWeeks)

	weeks := make([]domain.TrainingWeek, 0, totalWeeks)
	currentMileage := profile.CurrentWeeklyMileage

	for weekNum := 1; weekNum <= totalWeeks; weekNum++ {
		phase := phaseForWeek(weekNum, breakdown)
		weeklyMileage := g.weeklyMileage(weekNum, currentMileage, profile, phase)
		weeks = append(weeks, g.buildWeek(weekNum, phase, weeklyMileage, profile))
		currentMileage = weeklyMileage
	}

	return domain.NewTrainingPlan(profile, weeks)
}

// totalTrainingWeeks picks the plan duration: the distance minimum plus the
// experience base extension, clamped into the distance's allowed range.
func (g *generator) totalTrainingWeeks(profile domain.RunnerProfile) int {
	cfg := distanceConfigs[profile.TargetDistance]
	adj := experienceAdjustments[profile.ExperienceLevel]

	totalWeeks := cfg.MinTrainingWeeks + adj.BasePhaseExtension
	if totalWeeks < cfg.MinTrainingWeeks {
		totalWeeks = cfg.MinTrainingWeeks
	}
	if totalWeeks > cfg.MaxTrainingWeeks {
		totalWeeks = cfg.MaxTrainingWeeks
	}
	return totalWeeks
}

// phaseAllocation assigns a week count to one phase. Allocations are kept
// in consumption order (Base, Build, Peak, Taper).
type phaseAllocation struct {
	phase domain.TrainingPhase
	weeks int
}

// phaseBreakdown splits totalWeeks across the four phases. When the table
// values don't sum to totalWeeks the build phase absorbs the difference;
// if that would drop build below 2 weeks, build is floored at 2 and the
// base phase absorbs the remaining slack instead.
func (g *generator) phaseBreakdown(profile domain.RunnerProfile, totalWeeks int) []phaseAllocation {
	cfg := distanceConfigs[profile.TargetDistance]
	adj := experienceAdjustments[profile.ExperienceLevel]

	baseWeeks := cfg.BasePhaseWeeks + adj.BasePhaseExtension
	buildWeeks := cfg.BuildPhaseWeeks
	peakWeeks := cfg.PeakPhaseWeeks
	taperWeeks := cfg.TaperWeeks

	if baseWeeks+buildWeeks+peakWeeks+taperWeeks != totalWeeks {
		buildWeeks = totalWeeks - baseWeeks - peakWeeks - taperWeeks
		if buildWeeks < 2 {
			buildWeeks = 2
			baseWeeks = totalWeeks - buildWeeks - peakWeeks - taperWeeks
		}
	}

	return []phaseAllocation{
		{domain.PhaseBase, baseWeeks},
		{domain.PhaseBuild, buildWeeks},
		{domain.PhasePeak, peakWeeks},
		{domain.PhaseTaper, taperWeeks},
	}
}

// phaseForWeek finds the phase whose cumulative week boundary covers the
// given 1-based week number. Falls back to Taper.
func phaseForWeek(weekNum int, breakdown []phaseAllocation) domain.TrainingPhase {
	cumulative := 0
	for _, alloc := range breakdown {
		cumulative += alloc.weeks
		if weekNum <= cumulative {
			return alloc.phase
		}
	}
	return domain.PhaseTaper
}

// weeklyMileage advances the progressive-overload recurrence by one week.
// Recovery weeks cut the current volume by DownWeekReduction and skip every
// other adjustment. Otherwise the mileage takes a bounded linear step
// toward the experience-capped target, limited by the 10% rule, and is
// rounded to one decimal.
func (g *generator) weeklyMileage(weekNum int, currentMileage float64, profile domain.RunnerProfile, phase domain.TrainingPhase) float64 {
	adj := experienceAdjustments[profile.ExperienceLevel]

	if weekNum%adj.RecoveryWeeksFrequency == 0 {
		return currentMileage * (1 - DownWeekReduction)
	}

	targetMileage := profile.WeeklyMileageTarget * adj.MaxWeeklyMileageMultiplier

	if phase == domain.PhaseTaper {
		// Step-wise taper curve. The modulo makes it cycle every 4 weeks
		// rather than decrease monotonically; kept as found.
		taperReduction := 0.1 * float64(weekNum%4)
		targetMileage *= 1 - taperReduction
	}

	maxIncrease := currentMileage * MaxMileageIncrease
	newMileage := currentMileage + (targetMileage-currentMileage)*adj.MileageIncreaseRate

	if newMileage > currentMileage+maxIncrease {
		newMileage = currentMileage + maxIncrease
	}
	if newMileage > targetMileage {
		newMileage = targetMileage
	}

	return math.Round(newMileage*10) / 10
}

// buildWeek lays out one week of workouts. The long run is sized from the
// distance config and takes its own day; the remaining volume is split
// across the other scheduled days using the phase distribution, walked in
// declared order with each share divided by the slots left at assignment
// time. The resulting shares are normalized so the scheduled workouts
// consume the weekly mileage exactly. Unused days become rest days.
func (g *generator) buildWeek(weekNum int, phase domain.TrainingPhase, weeklyMileage float64, profile domain.RunnerProfile) domain.TrainingWeek {
	cfg := distanceConfigs[profile.TargetDistance]
	distribution := phaseDistributions[phase]

	longRunDistance := weeklyMileage * cfg.LongRunPercentage
	remainingMileage := weeklyMileage - longRunDistance
	remainingWorkouts := profile.DaysPerWeek - 1 // excluding the long run

	type slotPick struct {
		day         int
		workoutType domain.WorkoutType
		weight      float64
	}

	workouts := make([]domain.Workout, 0, profile.DaysPerWeek)
	var picks []slotPick
	var weightSum float64

	day := 1
	for _, entry := range distribution {
		if entry.percentage <= 0 {
			continue
		}
		if entry.workoutType == domain.WorkoutLongRun {
			// The long run always gets its own day, outside the slot budget.
			workouts = append(workouts, g.createWorkout(day, domain.WorkoutLongRun, longRunDistance, phase, profile))
			day++
			continue
		}
		if remainingWorkouts > 0 {
			picks = append(picks, slotPick{
				day:         day,
				workoutType: entry.workoutType,
				weight:      entry.percentage / float64(remainingWorkouts),
			})
			weightSum += entry.percentage / float64(remainingWorkouts)
			day++
			remainingWorkouts--
		}
	}

	for _, pick := range picks {
		distance := 0.0
		if weightSum > 0 {
			distance = remainingMileage * pick.weight / weightSum
		}
		workouts = append(workouts, g.createWorkout(pick.day, pick.workoutType, distance, phase, profile))
	}

	for ; day <= profile.DaysPerWeek; day++ {
		workouts = append(workouts, g.createWorkout(day, domain.WorkoutRest, 0, phase, profile))
	}

	sort.Slice(workouts, func(i, j int) bool { return workouts[i].Day < workouts[j].Day })

	return domain.NewTrainingWeek(weekNum, phase, workouts, weeklyMileage)
}

// createWorkout picks the intensity zone for the workout type and attaches
// the synthesized description.
func (g *generator) createWorkout(day int, workoutType domain.WorkoutType, distance float64, phase domain.TrainingPhase, profile domain.RunnerProfile) domain.Workout {
	if workoutType == domain.WorkoutRest {
		return domain.NewWorkout(day, workoutType, 0, domain.Zone1, "Rest day - focus on recovery and nutrition")
	}

	zone := zoneFor(workoutType)
	description := describeWorkout(workoutType, distance, phase, profile)
	return domain.NewWorkout(day, workoutType, distance, zone, description)
}

// zoneFor maps a workout type to its training zone, defaulting to Zone 2.
func zoneFor(workoutType domain.WorkoutType) domain.TrainingZone {
	if zone, ok := workoutZones[workoutType]; ok {
		return zone
	}
	return domain.Zone2
}
