package plangen_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"runplan/internal/domain"
	"runplan/internal/plangen"
)

func mustProfile(t *testing.T, params domain.ProfileParams) domain.RunnerProfile {
	t.Helper()
	profile, err := domain.NewRunnerProfile(params)
	if err != nil {
		t.Fatalf("building profile: %v", err)
	}
	return profile
}

func TestGenerator_Beginner5K(t *testing.T) {
	Convey("Given a beginner 5K profile", t, func() {
		profile := mustProfile(t, domain.ProfileParams{
			TargetDistance:       "5K",
			RaceDate:             "2026-11-22",
			ExperienceLevel:      "Beginner",
			WeeklyMileageTarget:  20,
			DaysPerWeek:          4,
			CurrentWeeklyMileage: 14,
		})
		gen := plangen.NewGenerator()

		Convey("When generating a plan", func() {
			plan := gen.Generate(profile)

			Convey("Then it spans 12 weeks (10 minimum plus the beginner base extension)", func() {
				So(plan.TotalWeeks, ShouldEqual, 12)
				So(len(plan.Weeks), ShouldEqual, 12)
			})

			Convey("And the phase breakdown is Base 6, Build 2, Peak 2, Taper 2", func() {
				counts := plan.PhaseBreakdown()
				So(counts[domain.PhaseBase], ShouldEqual, 6)
				So(counts[domain.PhaseBuild], ShouldEqual, 2)
				So(counts[domain.PhasePeak], ShouldEqual, 2)
				So(counts[domain.PhaseTaper], ShouldEqual, 2)
			})

			Convey("And the first week takes a small step from the current mileage", func() {
				So(plan.Weeks[0].Phase, ShouldEqual, domain.PhaseBase)
				So(plan.Weeks[0].TotalMileage, ShouldAlmostEqual, 14.1, 0.001)
			})

			Convey("And every third week is a recovery week with reduced volume", func() {
				for _, weekNum := range []int{3, 6, 9, 12} {
					prev := plan.Weeks[weekNum-2]
					week := plan.Weeks[weekNum-1]
					So(week.TotalMileage, ShouldAlmostEqual, prev.TotalMileage*0.75, 0.001)
				}
			})
		})
	})
}

func TestGenerator_StructuralProperties(t *testing.T) {
	profiles := map[string]domain.ProfileParams{
		"beginner 5K": {
			TargetDistance:      "5K",
			RaceDate:            "2026-11-22",
			ExperienceLevel:     "Beginner",
			WeeklyMileageTarget: 20,
			DaysPerWeek:         4,
		},
		"intermediate half marathon": {
			TargetDistance:      "Half Marathon",
			RaceDate:            "2027-02-21",
			ExperienceLevel:     "Intermediate",
			WeeklyMileageTarget: 35,
			DaysPerWeek:         5,
		},
		"advanced marathon": {
			TargetDistance:      "Marathon",
			RaceDate:            "2027-05-16",
			ExperienceLevel:     "Advanced",
			WeeklyMileageTarget: 50,
			DaysPerWeek:         6,
		},
		"three-day 10K": {
			TargetDistance:      "10K",
			RaceDate:            "2027-01-10",
			ExperienceLevel:     "Intermediate",
			WeeklyMileageTarget: 25,
			DaysPerWeek:         3,
		},
	}

	gen := plangen.NewGenerator()

	for name, params := range profiles {
		params := params
		Convey("Given a "+name+" profile", t, func() {
			profile := mustProfile(t, params)
			plan := gen.Generate(profile)
			cfg := plangen.ConfigFor(profile.TargetDistance)

			Convey("The plan length stays inside the distance's allowed range", func() {
				So(plan.TotalWeeks, ShouldBeGreaterThanOrEqualTo, cfg.MinTrainingWeeks)
				So(plan.TotalWeeks, ShouldBeLessThanOrEqualTo, cfg.MaxTrainingWeeks)
			})

			Convey("Week numbers are contiguous and phases never move backwards", func() {
				phaseIndex := map[domain.TrainingPhase]int{
					domain.PhaseBase:  0,
					domain.PhaseBuild: 1,
					domain.PhasePeak:  2,
					domain.PhaseTaper: 3,
				}
				last := 0
				for i, week := range plan.Weeks {
					So(week.WeekNumber, ShouldEqual, i+1)
					So(phaseIndex[week.Phase], ShouldBeGreaterThanOrEqualTo, last)
					last = phaseIndex[week.Phase]
				}
				So(plan.Weeks[len(plan.Weeks)-1].Phase, ShouldEqual, domain.PhaseTaper)
			})

			Convey("Every week schedules exactly DaysPerWeek workouts on distinct days", func() {
				for _, week := range plan.Weeks {
					So(len(week.Workouts), ShouldEqual, profile.DaysPerWeek)
					seen := map[int]bool{}
					for _, w := range week.Workouts {
						So(w.Day, ShouldBeGreaterThanOrEqualTo, 1)
						So(w.Day, ShouldBeLessThanOrEqualTo, profile.DaysPerWeek)
						So(seen[w.Day], ShouldBeFalse)
						seen[w.Day] = true
					}
				}
			})

			Convey("Every week has exactly one long run and its distances sum to the weekly total", func() {
				for _, week := range plan.Weeks {
					longRuns := 0
					sum := 0.0
					for _, w := range week.Workouts {
						if w.Type == domain.WorkoutLongRun {
							longRuns++
							So(w.DistanceMiles, ShouldAlmostEqual, week.TotalMileage*cfg.LongRunPercentage, 0.001)
						}
						sum += w.DistanceMiles
					}
					So(longRuns, ShouldEqual, 1)
					So(sum, ShouldAlmostEqual, week.TotalMileage, 0.001)
				}
			})

			Convey("Week-over-week increases never exceed the 10% rule", func() {
				for i := 1; i < len(plan.Weeks); i++ {
					prev := plan.Weeks[i-1].TotalMileage
					curr := plan.Weeks[i].TotalMileage
					// Rounding to one decimal can add up to 0.05 on top of the cap.
					So(curr, ShouldBeLessThanOrEqualTo, prev*1.10+0.051)
				}
			})

			Convey("Peak mileage equals the highest weekly total", func() {
				max := 0.0
				for _, week := range plan.Weeks {
					if week.TotalMileage > max {
						max = week.TotalMileage
					}
				}
				So(plan.PeakMileage, ShouldAlmostEqual, max, 0.0001)
			})

			Convey("Generation is deterministic for the same profile", func() {
				So(gen.Generate(profile), ShouldResemble, plan)
			})
		})
	}
}

func TestGenerator_WorkoutDetails(t *testing.T) {
	Convey("Given an advanced marathon plan", t, func() {
		profile := mustProfile(t, domain.ProfileParams{
			TargetDistance:      "Marathon",
			RaceDate:            "2027-05-16",
			ExperienceLevel:     "Advanced",
			WeeklyMileageTarget: 50,
			DaysPerWeek:         6,
		})
		plan := plangen.NewGenerator().Generate(profile)

		Convey("Workout zones follow the intensity mapping", func() {
			for _, week := range plan.Weeks {
				for _, w := range week.Workouts {
					switch w.Type {
					case domain.WorkoutEasyRun, domain.WorkoutLongRun:
						So(w.IntensityZone, ShouldEqual, domain.Zone2)
					case domain.WorkoutTempoRun, domain.WorkoutStrides, domain.WorkoutHills:
						So(w.IntensityZone, ShouldEqual, domain.Zone4)
					case domain.WorkoutIntervals:
						So(w.IntensityZone, ShouldEqual, domain.Zone5)
					case domain.WorkoutRest:
						So(w.IntensityZone, ShouldEqual, domain.Zone1)
					}
				}
			}
		})

		Convey("Durations derive from distance and the zone pace table", func() {
			for _, week := range plan.Weeks {
				for _, w := range week.Workouts {
					So(w.DurationMinutes, ShouldEqual, int(w.DistanceMiles*domain.EstimatePace(w.IntensityZone)))
				}
			}
		})

		Convey("Descriptions carry the phase coaching line", func() {
			baseWeek := plan.Weeks[0]
			for _, w := range baseWeek.Workouts {
				if w.Type == domain.WorkoutEasyRun {
					So(w.Description, ShouldContainSubstring, "conversational pace")
					So(w.Description, ShouldContainSubstring, "Building aerobic foundation")
					So(w.Description, ShouldContainSubstring, "Pure endurance and metabolic efficiency")
				}
			}

			taperWeek := plan.Weeks[len(plan.Weeks)-1]
			for _, w := range taperWeek.Workouts {
				if w.Type == domain.WorkoutEasyRun {
					So(w.Description, ShouldContainSubstring, "Trust your training")
				}
			}
		})

		Convey("Interval sessions prescribe the marathon-specific repeats", func() {
			found := false
			for _, week := range plan.Weeks {
				for _, w := range week.Workouts {
					if w.Type == domain.WorkoutIntervals {
						found = true
						So(w.Description, ShouldContainSubstring, "3 mile at marathon pace")
					}
				}
			}
			So(found, ShouldBeTrue)
		})
	})
}
