package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"runplan/internal/domain"
	"runplan/internal/format"
	"runplan/internal/plangen"
)

var rootCmd = &cobra.Command{
	Use:   "runplan",
	Short: "Running training plan generator",
	Long: `Runplan builds periodized training plans for distance runners.
Give it your target race, race date, experience level and weekly volume
and it produces a week-by-week schedule through the Base, Build, Peak
and Taper phases, with progressive mileage, recovery weeks and a
distance-specific mix of workouts.`,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("RUNPLAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(optionsCmd())
	rootCmd.AddCommand(examplesCmd())
}

func generateCmd() *cobra.Command {
	var params domain.ProfileParams
	var full bool
	var outPath string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a training plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := domain.NewRunnerProfile(params)
			if err != nil {
				return err
			}

			plan := plangen.NewGenerator().Generate(profile)
			formatter := format.NewFormatter()

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(formatter.Markdown(plan)), 0o644); err != nil {
					return err
				}
				fmt.Printf("Wrote %s\n", outPath)
			}

			if viper.GetBool("json") {
				return printJSON(plan)
			}

			if full {
				fmt.Println(formatter.FullPlan(plan))
				return nil
			}

			fmt.Println(formatter.PlanSummary(plan))
			printProgressionTable(plan)
			fmt.Println()
			fmt.Println(formatter.WorkoutDistribution(plan))
			return nil
		},
	}
	cmd.Flags().StringVar(&params.TargetDistance, "distance", "", `target race distance (e.g. "5K", "Marathon")`)
	cmd.Flags().StringVar(&params.RaceDate, "date", "", "race date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&params.ExperienceLevel, "experience", "", "experience level (Beginner, Intermediate, Advanced)")
	cmd.Flags().Float64Var(&params.WeeklyMileageTarget, "target", 0, "weekly mileage target")
	cmd.Flags().IntVar(&params.DaysPerWeek, "days", 0, "training days per week (3-7)")
	cmd.Flags().Float64Var(&params.CurrentWeeklyMileage, "current", 0, "current weekly mileage (default 70% of target)")
	cmd.Flags().IntVar(&params.StrengthTrainingDays, "strength-days", 0, "strength training days per week (default 2)")
	cmd.Flags().StringArrayVar(&params.PreviousInjuries, "injury", []string{}, "previous injury (repeatable)")
	cmd.Flags().BoolVar(&full, "full", false, "print every week in detail")
	cmd.Flags().StringVar(&outPath, "out", "", "write the plan as markdown to this file")
	_ = cmd.MarkFlagRequired("distance")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("experience")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("days")
	return cmd
}

func optionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "List valid distances and experience levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			if viper.GetBool("json") {
				return printJSON(map[string]any{
					"distances":   domain.RaceDistances,
					"experiences": domain.ExperienceLevels,
				})
			}
			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.AppendHeader(table.Row{"Distance", "Min Weeks", "Max Weeks", "Key Focus"})
			for _, d := range domain.RaceDistances {
				cfg := plangen.ConfigFor(d)
				tw.AppendRow(table.Row{d, cfg.MinTrainingWeeks, cfg.MaxTrainingWeeks, cfg.KeyFocus})
			}
			tw.Render()
			fmt.Println()
			fmt.Printf("Experience levels: %v\n", domain.ExperienceLevels)
			return nil
		},
	}
	return cmd
}

func examplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "examples",
		Short: "Generate three demo plans",
		Long:  "Builds a beginner 5K, an intermediate half marathon and an advanced marathon plan with canned profiles, then prints their summaries.",
		RunE: func(cmd *cobra.Command, args []string) error {
			demos := []domain.ProfileParams{
				{
					TargetDistance:      "5K",
					RaceDate:            "2026-11-22",
					ExperienceLevel:     "Beginner",
					WeeklyMileageTarget: 20,
					DaysPerWeek:         4,
				},
				{
					TargetDistance:      "Half Marathon",
					RaceDate:            "2027-02-21",
					ExperienceLevel:     "Intermediate",
					WeeklyMileageTarget: 35,
					DaysPerWeek:         5,
				},
				{
					TargetDistance:      "Marathon",
					RaceDate:            "2027-05-16",
					ExperienceLevel:     "Advanced",
					WeeklyMileageTarget: 50,
					DaysPerWeek:         6,
				},
			}

			gen := plangen.NewGenerator()
			formatter := format.NewFormatter()
			for _, params := range demos {
				profile, err := domain.NewRunnerProfile(params)
				if err != nil {
					return err
				}
				plan := gen.Generate(profile)
				if viper.GetBool("json") {
					if err := printJSON(plan); err != nil {
						return err
					}
					continue
				}
				fmt.Println(formatter.PlanSummary(plan))
				printProgressionTable(plan)
				fmt.Println()
			}
			return nil
		},
	}
	return cmd
}

// --- helpers ---

func printProgressionTable(plan domain.TrainingPlan) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Week", "Phase", "Mileage", "Workouts"})
	for _, week := range plan.Weeks {
		types := make([]string, 0, len(week.Workouts))
		for _, w := range week.Workouts {
			if w.Type == domain.WorkoutRest {
				continue
			}
			types = append(types, string(w.Type))
		}
		tw.AppendRow(table.Row{week.WeekNumber, week.Phase, fmt.Sprintf("%.1f", week.TotalMileage), strings.Join(types, ", ")})
	}
	tw.Render()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
