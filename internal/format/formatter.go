// Package format renders training plans for terminal display and
// markdown export. It is a pure presentation layer: it reads plan
// aggregates and produces strings, nothing else.
package format

import (
	"fmt"
	"sort"
	"strings"

	"runplan/internal/domain"
	"runplan/internal/plangen"
)

// Formatter renders training plans as human-readable text.
type Formatter struct {
	phaseIcons   map[domain.TrainingPhase]string
	workoutIcons map[domain.WorkoutType]string
}

// NewFormatter creates a formatter with the default icon sets.
func NewFormatter() *Formatter {
	return &Formatter{
		phaseIcons: map[domain.TrainingPhase]string{
			domain.PhaseBase:  "🟢",
			domain.PhaseBuild: "🟡",
			domain.PhasePeak:  "🟠",
			domain.PhaseTaper: "🔴",
		},
		workoutIcons: map[domain.WorkoutType]string{
			domain.WorkoutEasyRun:   "🏃",
			domain.WorkoutLongRun:   "🏃‍♂️",
			domain.WorkoutTempoRun:  "⚡",
			domain.WorkoutIntervals: "🎯",
			domain.WorkoutStrides:   "💨",
			domain.WorkoutHills:     "⛰️",
			domain.WorkoutRacePace:  "🏁",
			domain.WorkoutRecovery:  "🔄",
			domain.WorkoutRest:      "😴",
		},
	}
}

func (f *Formatter) phaseIcon(phase domain.TrainingPhase) string {
	if icon, ok := f.phaseIcons[phase]; ok {
		return icon
	}
	return "⚪"
}

func (f *Formatter) workoutIcon(t domain.WorkoutType) string {
	if icon, ok := f.workoutIcons[t]; ok {
		return icon
	}
	return "🏃"
}

// PlanSummary renders the profile, plan overview and key principles.
func (f *Formatter) PlanSummary(plan domain.TrainingPlan) string {
	profile := plan.Profile
	recoveryEvery := plangen.AdjustmentFor(profile.ExperienceLevel).RecoveryWeeksFrequency

	var b strings.Builder
	b.WriteString("\n🏃‍♀️ TRAINING PLAN SUMMARY 🏃‍♂️\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	b.WriteString("📊 RUNNER PROFILE:\n")
	fmt.Fprintf(&b, "• Target Race: %s\n", profile.TargetDistance)
	fmt.Fprintf(&b, "• Race Date: %s\n", profile.PeakRaceDate.Format("January 02, 2006"))
	fmt.Fprintf(&b, "• Experience Level: %s\n", profile.ExperienceLevel)
	fmt.Fprintf(&b, "• Weekly Mileage Target: %g miles\n", profile.WeeklyMileageTarget)
	fmt.Fprintf(&b, "• Training Days: %d days/week\n\n", profile.DaysPerWeek)

	b.WriteString("📈 PLAN OVERVIEW:\n")
	fmt.Fprintf(&b, "• Total Training Weeks: %d\n", plan.TotalWeeks)
	fmt.Fprintf(&b, "• Peak Weekly Mileage: %.1f miles\n", plan.PeakMileage)
	fmt.Fprintf(&b, "• Training Start Date: %s\n\n", plan.StartDate().Format("January 02, 2006"))

	b.WriteString("🎯 TRAINING PHASES:\n")
	b.WriteString(f.phaseBreakdown(plan))
	b.WriteString("\n")

	b.WriteString("💪 STRENGTH TRAINING:\n")
	fmt.Fprintf(&b, "• Recommended: %d days per week\n", profile.StrengthTrainingDays)
	b.WriteString("• Focus: Hip, core, and single-leg exercises\n")
	b.WriteString("• Timing: On non-running days or after easy runs\n\n")

	b.WriteString("📋 KEY PRINCIPLES:\n")
	b.WriteString("• 80/20 Training: 80% easy, 20% hard\n")
	b.WriteString("• Progressive Overload: Gradual mileage increases\n")
	fmt.Fprintf(&b, "• Recovery: Every %d weeks\n", recoveryEvery)
	b.WriteString("• Injury Prevention: 10% rule for mileage increases\n")

	return b.String()
}

// WeeklyPlan renders one week with all its workouts.
func (f *Formatter) WeeklyPlan(week domain.TrainingWeek) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s WEEK %d: %s PHASE\n", f.phaseIcon(week.Phase), week.WeekNumber, strings.ToUpper(string(week.Phase)))
	b.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&b, "Total Mileage: %.1f miles\n", week.TotalMileage)

	for _, w := range week.Workouts {
		fmt.Fprintf(&b, "\n%s Day %d: %s\n", f.workoutIcon(w.Type), w.Day, w.Type)
		fmt.Fprintf(&b, "   Distance: %.1f miles\n", w.DistanceMiles)
		fmt.Fprintf(&b, "   Duration: %d minutes\n", w.DurationMinutes)
		fmt.Fprintf(&b, "   Intensity: %s\n", w.IntensityZone)
		fmt.Fprintf(&b, "   Description: %s\n", w.Description)
	}
	return b.String()
}

// FullPlan renders the summary followed by every week.
func (f *Formatter) FullPlan(plan domain.TrainingPlan) string {
	var b strings.Builder
	b.WriteString(f.PlanSummary(plan))
	b.WriteString("\n\n" + strings.Repeat("=", 60) + "\n")
	b.WriteString("DETAILED WEEKLY PLANS\n" + strings.Repeat("=", 60) + "\n")
	for _, week := range plan.Weeks {
		b.WriteString(f.WeeklyPlan(week))
		b.WriteString("\n" + strings.Repeat("-", 40) + "\n")
	}
	return b.String()
}

// MileageProgression renders week-by-week mileage.
func (f *Formatter) MileageProgression(plan domain.TrainingPlan) string {
	var b strings.Builder
	b.WriteString("📊 MILEAGE PROGRESSION:\n")
	for _, week := range plan.Weeks {
		fmt.Fprintf(&b, "Week %d: %.1f miles (%s)\n", week.WeekNumber, week.TotalMileage, week.Phase)
	}
	return b.String()
}

// WorkoutDistribution renders workout-type counts across the whole plan,
// most frequent first.
func (f *Formatter) WorkoutDistribution(plan domain.TrainingPlan) string {
	counts := make(map[domain.WorkoutType]int)
	total := 0
	for _, week := range plan.Weeks {
		for _, w := range week.Workouts {
			counts[w.Type]++
			total++
		}
	}

	types := make([]domain.WorkoutType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		return types[i] < types[j]
	})

	var b strings.Builder
	b.WriteString("🎯 WORKOUT DISTRIBUTION:\n")
	for _, t := range types {
		pct := float64(counts[t]) / float64(total) * 100
		fmt.Fprintf(&b, "• %s %s: %d (%.1f%%)\n", f.workoutIcon(t), t, counts[t], pct)
	}
	return b.String()
}

// RecoveryGuidelines renders the recovery and adaptation advice block.
func (f *Formatter) RecoveryGuidelines(profile domain.RunnerProfile) string {
	var b strings.Builder
	b.WriteString("\n💤 RECOVERY GUIDELINES:\n\n")
	b.WriteString("🛏️ SLEEP:\n")
	b.WriteString("• Target: 8+ hours per night\n")
	b.WriteString("• Quality: Deep, uninterrupted sleep\n")
	b.WriteString("• Timing: Consistent sleep schedule\n\n")
	b.WriteString("🍎 NUTRITION:\n")
	b.WriteString("• Post-workout: Within 30-60 minutes\n")
	b.WriteString("• Carbohydrates: Match training demands\n")
	fmt.Fprintf(&b, "• Protein: %dg daily minimum\n", profile.StrengthTrainingDays*20)
	b.WriteString("• Hydration: Monitor urine color (light yellow)\n\n")
	b.WriteString("🔄 ACTIVE RECOVERY:\n")
	b.WriteString("• Light movement on rest days\n")
	b.WriteString("• Stretching and mobility work\n")
	b.WriteString("• Consider yoga or swimming\n\n")
	b.WriteString("📈 ADAPTATION MONITORING:\n")
	b.WriteString("• Track resting heart rate\n")
	b.WriteString("• Monitor sleep quality\n")
	b.WriteString("• Note energy levels and mood\n")
	b.WriteString("• Adjust training if needed\n")
	return b.String()
}

// InjuryPrevention renders the injury-prevention advice block.
func (f *Formatter) InjuryPrevention(profile domain.RunnerProfile) string {
	recoveryEvery := plangen.AdjustmentFor(profile.ExperienceLevel).RecoveryWeeksFrequency

	var b strings.Builder
	b.WriteString("\n🛡️ INJURY PREVENTION:\n\n")
	b.WriteString("💪 STRENGTH TRAINING:\n")
	fmt.Fprintf(&b, "• Frequency: %d days per week\n", profile.StrengthTrainingDays)
	b.WriteString("• Focus: Hip abductors, core, single-leg exercises\n")
	b.WriteString("• Examples: Single-leg deadlifts, squats, planks\n\n")
	b.WriteString("📏 TRAINING LOAD:\n")
	b.WriteString("• Follow 10% rule for mileage increases\n")
	fmt.Fprintf(&b, "• Include recovery weeks every %d weeks\n", recoveryEvery)
	b.WriteString("• Avoid consecutive hard days\n")
	b.WriteString("• Listen to your body\n\n")
	b.WriteString("🏃‍♀️ FORM & TECHNIQUE:\n")
	b.WriteString("• Maintain good posture\n")
	b.WriteString("• Land midfoot\n")
	b.WriteString("• Keep cadence around 180 steps/minute\n")
	b.WriteString("• Relax shoulders and arms\n\n")
	b.WriteString("⚠️ WARNING SIGNS:\n")
	b.WriteString("• Persistent pain (not just soreness)\n")
	b.WriteString("• Decreased performance\n")
	b.WriteString("• Changes in running form\n")
	b.WriteString("• Fatigue that doesn't improve with rest\n")
	return b.String()
}

// phaseBreakdown lists week counts per phase in periodization order.
func (f *Formatter) phaseBreakdown(plan domain.TrainingPlan) string {
	counts := plan.PhaseBreakdown()
	var b strings.Builder
	for _, phase := range domain.Phases {
		if counts[phase] == 0 {
			continue
		}
		fmt.Fprintf(&b, "• %s %s: %d weeks\n", f.phaseIcon(phase), phase, counts[phase])
	}
	return b.String()
}
