package format_test

import (
	"fmt"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"runplan/internal/domain"
	"runplan/internal/format"
	"runplan/internal/plangen"
)

func demoPlan(t *testing.T) domain.TrainingPlan {
	t.Helper()
	profile, err := domain.NewRunnerProfile(domain.ProfileParams{
		TargetDistance:      "Half Marathon",
		RaceDate:            "2027-02-21",
		ExperienceLevel:     "Intermediate",
		WeeklyMileageTarget: 35,
		DaysPerWeek:         5,
	})
	if err != nil {
		t.Fatalf("building profile: %v", err)
	}
	return plangen.NewGenerator().Generate(profile)
}

func TestFormatterPlanSummary(t *testing.T) {
	Convey("Given a generated half marathon plan", t, func() {
		plan := demoPlan(t)
		f := format.NewFormatter()

		Convey("When rendering the summary", func() {
			out := f.PlanSummary(plan)

			Convey("Then it shows the runner profile", func() {
				So(out, ShouldContainSubstring, "RUNNER PROFILE")
				So(out, ShouldContainSubstring, "Half Marathon")
				So(out, ShouldContainSubstring, "Intermediate")
				So(out, ShouldContainSubstring, "35 miles")
				So(out, ShouldContainSubstring, "5 days/week")
			})

			Convey("And the plan overview with derived numbers", func() {
				So(out, ShouldContainSubstring, fmt.Sprintf("Total Training Weeks: %d", plan.TotalWeeks))
				So(out, ShouldContainSubstring, fmt.Sprintf("Peak Weekly Mileage: %.1f miles", plan.PeakMileage))
				So(out, ShouldContainSubstring, plan.StartDate().Format("January 02, 2006"))
			})

			Convey("And every populated phase with its week count", func() {
				for phase, count := range plan.PhaseBreakdown() {
					if count == 0 {
						continue
					}
					So(out, ShouldContainSubstring, fmt.Sprintf("%s: %d weeks", phase, count))
				}
			})

			Convey("And the recovery cadence for the experience level", func() {
				So(out, ShouldContainSubstring, "Recovery: Every 4 weeks")
			})
		})
	})
}

func TestFormatterWeeklyPlan(t *testing.T) {
	Convey("Given a generated plan", t, func() {
		plan := demoPlan(t)
		f := format.NewFormatter()

		Convey("When rendering the first week", func() {
			week := plan.Weeks[0]
			out := f.WeeklyPlan(week)

			So(out, ShouldContainSubstring, "WEEK 1: BASE PHASE")
			So(out, ShouldContainSubstring, fmt.Sprintf("Total Mileage: %.1f miles", week.TotalMileage))
			for _, w := range week.Workouts {
				So(out, ShouldContainSubstring, fmt.Sprintf("Day %d: %s", w.Day, w.Type))
			}
		})

		Convey("When rendering the full plan every week appears", func() {
			out := f.FullPlan(plan)
			for _, week := range plan.Weeks {
				So(out, ShouldContainSubstring, fmt.Sprintf("WEEK %d:", week.WeekNumber))
			}
		})
	})
}

func TestFormatterAnalytics(t *testing.T) {
	Convey("Given a generated plan", t, func() {
		plan := demoPlan(t)
		f := format.NewFormatter()

		Convey("The mileage progression lists one line per week", func() {
			out := f.MileageProgression(plan)
			So(strings.Count(out, "Week "), ShouldEqual, plan.TotalWeeks)
		})

		Convey("The workout distribution covers every scheduled type", func() {
			out := f.WorkoutDistribution(plan)
			seen := map[domain.WorkoutType]bool{}
			for _, week := range plan.Weeks {
				for _, w := range week.Workouts {
					seen[w.Type] = true
				}
			}
			for workoutType := range seen {
				So(out, ShouldContainSubstring, string(workoutType))
			}
		})

		Convey("The guideline blocks reflect the profile", func() {
			recovery := f.RecoveryGuidelines(plan.Profile)
			So(recovery, ShouldContainSubstring, fmt.Sprintf("Protein: %dg", plan.Profile.StrengthTrainingDays*20))

			injury := f.InjuryPrevention(plan.Profile)
			So(injury, ShouldContainSubstring, fmt.Sprintf("Frequency: %d days per week", plan.Profile.StrengthTrainingDays))
			So(injury, ShouldContainSubstring, "10% rule")
		})
	})
}

func TestMarkdownExport(t *testing.T) {
	Convey("Given a generated plan", t, func() {
		plan := demoPlan(t)
		f := format.NewFormatter()

		Convey("The export filename is slugged from the distance", func() {
			So(format.ExportFileName(plan), ShouldEqual, "training_plan_half_marathon.md")
		})

		Convey("The markdown document contains every section", func() {
			doc := f.Markdown(plan)

			So(doc, ShouldStartWith, "# Half Marathon Training Plan")
			So(doc, ShouldContainSubstring, "## Weekly Plans")
			for _, week := range plan.Weeks {
				So(doc, ShouldContainSubstring, fmt.Sprintf("### Week %d: %s Phase", week.WeekNumber, week.Phase))
			}
			So(doc, ShouldContainSubstring, "## Recovery Guidelines")
			So(doc, ShouldContainSubstring, "## Injury Prevention")
		})
	})
}
