package plangen

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"runplan/internal/domain"
)

func TestDistanceConfigs(t *testing.T) {
	Convey("Given the distance configuration table", t, func() {
		Convey("Every supported race distance has a config", func() {
			for _, d := range domain.RaceDistances {
				cfg, ok := distanceConfigs[d]
				So(ok, ShouldBeTrue)
				So(cfg.Distance, ShouldEqual, d)
				So(cfg.MinTrainingWeeks, ShouldBeLessThanOrEqualTo, cfg.MaxTrainingWeeks)
				So(cfg.LongRunPercentage, ShouldBeGreaterThan, 0)
				So(cfg.LongRunPercentage, ShouldBeLessThan, 1)
				So(cfg.KeyFocus, ShouldNotBeEmpty)
			}
		})

		Convey("Energy system contributions sum to 100%", func() {
			for _, cfg := range distanceConfigs {
				So(cfg.EnergySystemAerobic+cfg.EnergySystemAnaerobic, ShouldAlmostEqual, 100.0, 0.001)
			}
		})

		Convey("Longer races demand a larger long-run share", func() {
			So(distanceConfigs[domain.DistanceMile].LongRunPercentage, ShouldBeLessThan,
				distanceConfigs[domain.DistanceMarathon].LongRunPercentage)
		})
	})
}

func TestExperienceAdjustments(t *testing.T) {
	Convey("Given the experience adjustment table", t, func() {
		Convey("Every experience level has an adjustment", func() {
			for _, level := range domain.ExperienceLevels {
				adj, ok := experienceAdjustments[level]
				So(ok, ShouldBeTrue)
				So(adj.MileageIncreaseRate, ShouldBeGreaterThan, 0)
				So(adj.RecoveryWeeksFrequency, ShouldBeGreaterThan, 0)
			}
		})

		Convey("Progression gets more aggressive with experience", func() {
			beginner := experienceAdjustments[domain.ExperienceBeginner]
			advanced := experienceAdjustments[domain.ExperienceAdvanced]
			So(beginner.MileageIncreaseRate, ShouldBeLessThan, advanced.MileageIncreaseRate)
			So(beginner.MaxWeeklyMileageMultiplier, ShouldBeLessThan, advanced.MaxWeeklyMileageMultiplier)
			So(beginner.RecoveryWeeksFrequency, ShouldBeLessThan, advanced.RecoveryWeeksFrequency)
		})
	})
}

func TestPhaseDistributions(t *testing.T) {
	Convey("Given the phase workout distributions", t, func() {
		Convey("Each phase's shares sum to 1.0", func() {
			for _, phase := range domain.Phases {
				entries, ok := phaseDistributions[phase]
				So(ok, ShouldBeTrue)
				sum := 0.0
				for _, e := range entries {
					So(e.percentage, ShouldBeGreaterThanOrEqualTo, 0)
					sum += e.percentage
				}
				So(sum, ShouldAlmostEqual, 1.0, 0.001)
			}
		})

		Convey("Every phase starts with easy running as the largest share", func() {
			for _, phase := range domain.Phases {
				entries := phaseDistributions[phase]
				So(entries[0].workoutType, ShouldEqual, domain.WorkoutEasyRun)
				for _, e := range entries[1:] {
					So(entries[0].percentage, ShouldBeGreaterThanOrEqualTo, e.percentage)
				}
			}
		})

		Convey("Intervals only appear from the build phase onwards", func() {
			for _, e := range phaseDistributions[domain.PhaseBase] {
				if e.workoutType == domain.WorkoutIntervals {
					So(e.percentage, ShouldEqual, 0)
				}
			}
		})
	})
}

func TestWorkoutZones(t *testing.T) {
	Convey("Given the workout zone mapping", t, func() {
		Convey("Easy and long runs sit in the aerobic base zone", func() {
			So(workoutZones[domain.WorkoutEasyRun], ShouldEqual, domain.Zone2)
			So(workoutZones[domain.WorkoutLongRun], ShouldEqual, domain.Zone2)
		})
		Convey("Intervals are the hardest sessions", func() {
			So(workoutZones[domain.WorkoutIntervals], ShouldEqual, domain.Zone5)
		})
		Convey("Recovery and rest stay in zone 1", func() {
			So(workoutZones[domain.WorkoutRecovery], ShouldEqual, domain.Zone1)
			So(workoutZones[domain.WorkoutRest], ShouldEqual, domain.Zone1)
		})
	})
}
