package main

import (
	"fmt"
	"time"

	"study-go/internal/study"

	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage calendar events",
}

var eventAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Add an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := study.EventDraft{Title: args[0]}
		draft.Description, _ = cmd.Flags().GetString("description")
		category, _ := cmd.Flags().GetString("category")
		draft.Category = study.Category(category)

		if raw, _ := cmd.Flags().GetString("date"); raw != "" {
			d, err := parseDate(raw, time.Now())
			if err != nil {
				return err
			}
			draft.Date = &d
		}

		a, err := newApp("AddEvent")
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := a.AddEvent(draft)
		if err != nil {
			return err
		}
		fmt.Printf("Added event %s\n", e.ID)
		return nil
	},
}

var eventEditCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change fields of an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch study.EventPatch
		flags := cmd.Flags()
		if flags.Changed("date") {
			raw, _ := flags.GetString("date")
			d, err := parseDate(raw, time.Now())
			if err != nil {
				return err
			}
			patch.Date = &d
		}
		if flags.Changed("title") {
			title, _ := flags.GetString("title")
			patch.Title = &title
		}
		if flags.Changed("description") {
			desc, _ := flags.GetString("description")
			patch.Description = &desc
		}
		if flags.Changed("category") {
			raw, _ := flags.GetString("category")
			category := study.Category(raw)
			patch.Category = &category
		}

		a, err := newApp("UpdateEvent")
		if err != nil {
			return err
		}
		defer a.Close()

		e, err := a.UpdateEvent(args[0], patch)
		if err != nil {
			return err
		}
		printEvents([]study.Event{e})
		return nil
	},
}

var eventRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteEvent")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.DeleteEvent(args[0])
	},
}

var eventLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List events by date",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		a, err := newApp("ListEvents")
		if err != nil {
			return err
		}
		defer a.Close()

		events := a.ListEvents(category)
		if len(events) == 0 {
			fmt.Println("No events.")
			return nil
		}
		printEvents(events)
		return nil
	},
}

var eventDayCmd = &cobra.Command{
	Use:   "day [DATE]",
	Short: "List the events of one day (default today)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day := time.Now()
		if len(args) > 0 {
			d, err := parseDate(args[0], day)
			if err != nil {
				return err
			}
			day = d
		}

		a, err := newApp("EventsOn")
		if err != nil {
			return err
		}
		defer a.Close()

		events := a.EventsOn(day)
		if len(events) == 0 {
			fmt.Printf("No events on %s.\n", day.Format("2006-01-02"))
			return nil
		}
		printEvents(events)
		return nil
	},
}

func printEvents(events []study.Event) {
	for _, e := range events {
		mark := " "
		if e.Notified {
			mark = "*"
		}
		fmt.Printf("%s %s  %s  %-10s  %s\n",
			mark,
			e.ID,
			e.Date.Local().Format("2006-01-02 15:04"),
			e.Category,
			e.Title,
		)
		if e.Description != "" {
			fmt.Printf("      %s\n", e.Description)
		}
	}
}

func init() {
	eventCmd.AddCommand(eventAddCmd)
	eventAddCmd.Flags().StringP("date", "d", "", "Event date (YYYY-MM-DD or \"YYYY-MM-DD HH:MM\")")
	eventAddCmd.Flags().String("description", "", "Event description")
	eventAddCmd.Flags().StringP("category", "c", string(study.CategoryReminder), "exam, assignment, reminder or study")

	eventCmd.AddCommand(eventEditCmd)
	eventEditCmd.Flags().StringP("date", "d", "", "New date")
	eventEditCmd.Flags().StringP("title", "t", "", "New title")
	eventEditCmd.Flags().String("description", "", "New description")
	eventEditCmd.Flags().StringP("category", "c", "", "New category")

	eventCmd.AddCommand(eventRmCmd)

	eventCmd.AddCommand(eventLsCmd)
	eventLsCmd.Flags().StringP("category", "c", string(study.CategoryAll), "Only show this category")

	eventCmd.AddCommand(eventDayCmd)
}
