package plangen

import "runplan/internal/domain"

// DistanceConfig holds the distance-specific training parameters, derived
// from the energy-system demands of each race distance.
type DistanceConfig struct {
	Distance              domain.RaceDistance
	MinTrainingWeeks      int
	MaxTrainingWeeks      int
	BasePhaseWeeks        int
	BuildPhaseWeeks       int
	PeakPhaseWeeks        int
	TaperWeeks            int
	EnergySystemAerobic   float64 // percentage aerobic contribution
	EnergySystemAnaerobic float64 // percentage anaerobic contribution
	KeyFocus              string
	LongRunPercentage     float64 // fraction of weekly mileage for the long run
}

var distanceConfigs = map[domain.RaceDistance]DistanceConfig{
	domain.DistanceMile: {
		Distance:              domain.DistanceMile,
		MinTrainingWeeks:      8,
		MaxTrainingWeeks:      12,
		BasePhaseWeeks:        4,
		BuildPhaseWeeks:       4,
		PeakPhaseWeeks:        2,
		TaperWeeks:            2,
		EnergySystemAerobic:   85.0,
		EnergySystemAnaerobic: 15.0,
		KeyFocus:              "Neuromuscular power and speed endurance",
		LongRunPercentage:     0.15,
	},
	domain.Distance5K: {
		Distance:              domain.Distance5K,
		MinTrainingWeeks:      10,
		MaxTrainingWeeks:      16,
		BasePhaseWeeks:        6,
		BuildPhaseWeeks:       6,
		PeakPhaseWeeks:        2,
		TaperWeeks:            2,
		EnergySystemAerobic:   92.5,
		EnergySystemAnaerobic: 7.5,
		KeyFocus:              "VO2 max development",
		LongRunPercentage:     0.20,
	},
	domain.Distance10K: {
		Distance:              domain.Distance10K,
		MinTrainingWeeks:      12,
		MaxTrainingWeeks:      18,
		BasePhaseWeeks:        6,
		BuildPhaseWeeks:       8,
		PeakPhaseWeeks:        2,
		TaperWeeks:            2,
		EnergySystemAerobic:   96.0,
		EnergySystemAnaerobic: 4.0,
		KeyFocus:              "Lactate threshold training",
		LongRunPercentage:     0.25,
	},
	domain.DistanceHalfMarathon: {
		Distance:              domain.DistanceHalfMarathon,
		MinTrainingWeeks:      14,
		MaxTrainingWeeks:      20,
		BasePhaseWeeks:        8,
		BuildPhaseWeeks:       8,
		PeakPhaseWeeks:        2,
		TaperWeeks:            2,
		EnergySystemAerobic:   97.5,
		EnergySystemAnaerobic: 2.5,
		KeyFocus:              "Aerobic threshold and endurance",
		LongRunPercentage:     0.30,
	},
	domain.DistanceMarathon: {
		Distance:              domain.DistanceMarathon,
		MinTrainingWeeks:      16,
		MaxTrainingWeeks:      24,
		BasePhaseWeeks:        8,
		BuildPhaseWeeks:       10,
		PeakPhaseWeeks:        2,
		TaperWeeks:            4,
		EnergySystemAerobic:   98.5,
		EnergySystemAnaerobic: 1.5,
		KeyFocus:              "Pure endurance and metabolic efficiency",
		LongRunPercentage:     0.35,
	},
}

// ConfigFor returns the static configuration for a race distance.
func ConfigFor(distance domain.RaceDistance) DistanceConfig {
	return distanceConfigs[distance]
}

// ExperienceAdjustment tunes the progression for an experience level.
type ExperienceAdjustment struct {
	MileageIncreaseRate        float64 // fraction of the gap closed per week
	MaxWeeklyMileageMultiplier float64 // cap as a fraction of the target
	RecoveryWeeksFrequency     int     // down week every Nth week
	StrengthTrainingDays       int
	BasePhaseExtension         int // extra weeks in the base phase
}

var experienceAdjustments = map[domain.ExperienceLevel]ExperienceAdjustment{
	domain.ExperienceBeginner: {
		MileageIncreaseRate:        0.05,
		MaxWeeklyMileageMultiplier: 0.8,
		RecoveryWeeksFrequency:     3,
		StrengthTrainingDays:       2,
		BasePhaseExtension:         2,
	},
	domain.ExperienceIntermediate: {
		MileageIncreaseRate:        0.08,
		MaxWeeklyMileageMultiplier: 0.9,
		RecoveryWeeksFrequency:     4,
		StrengthTrainingDays:       2,
		BasePhaseExtension:         1,
	},
	domain.ExperienceAdvanced: {
		MileageIncreaseRate:        0.10,
		MaxWeeklyMileageMultiplier: 1.0,
		RecoveryWeeksFrequency:     5,
		StrengthTrainingDays:       3,
		BasePhaseExtension:         0,
	},
}

// AdjustmentFor returns the progression parameters for an experience level.
func AdjustmentFor(level domain.ExperienceLevel) ExperienceAdjustment {
	return experienceAdjustments[level]
}

// distributionEntry pairs a workout category with its share of the weekly
// volume. Entries are consumed in declared order when days are assigned,
// so the order here is load-bearing.
type distributionEntry struct {
	workoutType domain.WorkoutType
	percentage  float64
}

// phaseDistributions is the per-phase workout mix. The long-run share here
// is independent of DistanceConfig.LongRunPercentage: the latter sizes the
// long run itself, this table only orders and weights the remaining days.
var phaseDistributions = map[domain.TrainingPhase][]distributionEntry{
	domain.PhaseBase: {
		{domain.WorkoutEasyRun, 0.70},
		{domain.WorkoutLongRun, 0.20},
		{domain.WorkoutTempoRun, 0.05},
		{domain.WorkoutStrides, 0.05},
		{domain.WorkoutIntervals, 0.00},
		{domain.WorkoutHills, 0.00},
	},
	domain.PhaseBuild: {
		{domain.WorkoutEasyRun, 0.60},
		{domain.WorkoutLongRun, 0.20},
		{domain.WorkoutTempoRun, 0.10},
		{domain.WorkoutStrides, 0.05},
		{domain.WorkoutIntervals, 0.05},
		{domain.WorkoutHills, 0.00},
	},
	domain.PhasePeak: {
		{domain.WorkoutEasyRun, 0.50},
		{domain.WorkoutLongRun, 0.15},
		{domain.WorkoutTempoRun, 0.15},
		{domain.WorkoutStrides, 0.05},
		{domain.WorkoutIntervals, 0.10},
		{domain.WorkoutHills, 0.05},
	},
	domain.PhaseTaper: {
		{domain.WorkoutEasyRun, 0.70},
		{domain.WorkoutLongRun, 0.10},
		{domain.WorkoutTempoRun, 0.10},
		{domain.WorkoutStrides, 0.05},
		{domain.WorkoutIntervals, 0.05},
		{domain.WorkoutHills, 0.00},
	},
}

// workoutZones maps each workout type to its intensity zone.
var workoutZones = map[domain.WorkoutType]domain.TrainingZone{
	domain.WorkoutEasyRun:   domain.Zone2,
	domain.WorkoutLongRun:   domain.Zone2,
	domain.WorkoutTempoRun:  domain.Zone4,
	domain.WorkoutIntervals: domain.Zone5,
	domain.WorkoutStrides:   domain.Zone4,
	domain.WorkoutHills:     domain.Zone4,
	domain.WorkoutRacePace:  domain.Zone4,
	domain.WorkoutRecovery:  domain.Zone1,
	domain.WorkoutRest:      domain.Zone1,
}

// Injury prevention guidelines.
const (
	// MaxMileageIncrease caps week-over-week growth (the 10% rule).
	MaxMileageIncrease = 0.10
	// DownWeekReduction is the volume cut applied on recovery weeks.
	DownWeekReduction = 0.25
)
