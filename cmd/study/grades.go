package main

import (
	"fmt"
	"time"

	"study-go/internal/study"

	"github.com/spf13/cobra"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Track grades",
}

var gradeAddCmd = &cobra.Command{
	Use:   "add SUBJECT SCORE",
	Short: "Record a grade (score 0-10)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var score float64
		if _, err := fmt.Sscan(args[1], &score); err != nil {
			return fmt.Errorf("invalid score %q", args[1])
		}
		draft := study.GradeDraft{Subject: args[0], Score: &score}

		if cmd.Flags().Changed("weight") {
			weight, _ := cmd.Flags().GetFloat64("weight")
			draft.Weight = &weight
		}
		if raw, _ := cmd.Flags().GetString("date"); raw != "" {
			d, err := parseDate(raw, time.Now())
			if err != nil {
				return err
			}
			draft.Date = &d
		}

		a, err := newApp("AddGrade")
		if err != nil {
			return err
		}
		defer a.Close()

		g, err := a.AddGrade(draft)
		if err != nil {
			return err
		}
		fmt.Printf("Added grade %s\n", g.ID)
		return nil
	},
}

var gradeRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a grade",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteGrade")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.DeleteGrade(args[0])
	},
}

var gradeLsCmd = &cobra.Command{
	Use:   "ls [SUBJECT]",
	Short: "List grades by date",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject := ""
		if len(args) > 0 {
			subject = args[0]
		}

		a, err := newApp("ListGrades")
		if err != nil {
			return err
		}
		defer a.Close()

		grades := a.ListGrades(subject)
		if len(grades) == 0 {
			fmt.Println("No grades.")
			return nil
		}
		for _, g := range grades {
			fmt.Printf("%s  %s  %-20s  %5.2f  x%g\n",
				g.ID,
				g.Date.Local().Format("2006-01-02"),
				g.Subject,
				g.Score,
				g.Weight,
			)
		}
		return nil
	},
}

var gradeAvgCmd = &cobra.Command{
	Use:   "avg",
	Short: "Show the weighted average of each subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SubjectSummaries")
		if err != nil {
			return err
		}
		defer a.Close()

		summaries := a.SubjectSummaries()
		if len(summaries) == 0 {
			fmt.Println("No grades.")
			return nil
		}
		for _, s := range summaries {
			fmt.Printf("%-20s  %5.2f  (%d grade(s), weight %g)\n", s.Subject, s.Average, s.Count, s.TotalWeight)
		}
		return nil
	},
}

func init() {
	gradeCmd.AddCommand(gradeAddCmd)
	gradeAddCmd.Flags().Float64P("weight", "w", 1, "Weight of the grade")
	gradeAddCmd.Flags().StringP("date", "d", "", "Date of the grade (default now)")

	gradeCmd.AddCommand(gradeRmCmd)
	gradeCmd.AddCommand(gradeLsCmd)
	gradeCmd.AddCommand(gradeAvgCmd)
}
