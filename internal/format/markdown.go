package format

import (
	"fmt"
	"strings"

	"runplan/internal/domain"
)

// ExportFileName derives the default markdown filename for a plan,
// e.g. "training_plan_half_marathon.md".
func ExportFileName(plan domain.TrainingPlan) string {
	slug := strings.ToLower(string(plan.Profile.TargetDistance))
	slug = strings.ReplaceAll(slug, " ", "_")
	return fmt.Sprintf("training_plan_%s.md", slug)
}

// Markdown renders the complete plan as a markdown document suitable for
// export: summary, per-week sections with per-day details, and the
// recovery and injury-prevention guideline appendices.
func (f *Formatter) Markdown(plan domain.TrainingPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Training Plan\n\n", plan.Profile.TargetDistance)
	b.WriteString(f.PlanSummary(plan))
	b.WriteString("\n\n## Weekly Plans\n\n")

	for _, week := range plan.Weeks {
		fmt.Fprintf(&b, "### Week %d: %s Phase\n\n", week.WeekNumber, week.Phase)
		fmt.Fprintf(&b, "**Total Mileage:** %.1f miles\n\n", week.TotalMileage)

		for _, w := range week.Workouts {
			fmt.Fprintf(&b, "#### Day %d: %s %s\n\n", w.Day, w.Type, f.workoutIcon(w.Type))
			fmt.Fprintf(&b, "- **Distance:** %.1f miles\n", w.DistanceMiles)
			fmt.Fprintf(&b, "- **Duration:** %d minutes\n", w.DurationMinutes)
			fmt.Fprintf(&b, "- **Intensity:** %s\n", w.IntensityZone)
			fmt.Fprintf(&b, "- **Description:** %s\n\n", w.Description)
		}

		b.WriteString("---\n\n")
	}

	b.WriteString("## Recovery Guidelines\n")
	b.WriteString(f.RecoveryGuidelines(plan.Profile))
	b.WriteString("\n## Injury Prevention\n")
	b.WriteString(f.InjuryPrevention(plan.Profile))

	return b.String()
}
