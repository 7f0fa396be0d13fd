package main

import (
	"fmt"
	"time"

	"study-go/internal/study"

	"github.com/spf13/cobra"
)

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Manage exam checklists",
}

var checklistAddCmd = &cobra.Command{
	Use:   "add TITLE",
	Short: "Create a checklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := study.ChecklistDraft{Title: args[0]}
		if raw, _ := cmd.Flags().GetString("date"); raw != "" {
			d, err := parseDate(raw, time.Now())
			if err != nil {
				return err
			}
			draft.Date = &d
		}

		a, err := newApp("AddChecklist")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.AddChecklist(draft)
		if err != nil {
			return err
		}
		fmt.Printf("Created checklist %s\n", c.ID)
		return nil
	},
}

var checklistRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a checklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteChecklist")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.DeleteChecklist(args[0])
	},
}

var checklistLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List checklists with their progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, _ := cmd.Flags().GetString("filter")

		a, err := newApp("ListChecklists")
		if err != nil {
			return err
		}
		defer a.Close()

		lists := a.ListChecklists(study.ChecklistFilter(filter))
		if len(lists) == 0 {
			fmt.Println("No checklists.")
			return nil
		}
		for _, c := range lists {
			date := "          "
			if !c.Date.IsZero() {
				date = c.Date.Local().Format("2006-01-02")
			}
			fmt.Printf("%s  %s  %3d%%  %s\n", c.ID, date, study.ChecklistProgress(c.Items), c.Title)
		}
		return nil
	},
}

var checklistShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show the items of a checklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("FindChecklist")
		if err != nil {
			return err
		}
		defer a.Close()

		c, err := a.FindChecklist(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%d%%)\n", c.Title, study.ChecklistProgress(c.Items))
		for _, it := range c.Items {
			box := "[ ]"
			if it.Checked {
				box = "[x]"
			}
			fmt.Printf("  %s %s  %s\n", box, it.ID, it.Content)
		}
		return nil
	},
}

var checklistItemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage checklist items",
}

var checklistItemAddCmd = &cobra.Command{
	Use:   "add LIST CONTENT",
	Short: "Add an item to a checklist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AddChecklistItem")
		if err != nil {
			return err
		}
		defer a.Close()

		item, err := a.AddChecklistItem(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Added item %s\n", item.ID)
		return nil
	},
}

var checklistItemCheckCmd = &cobra.Command{
	Use:   "check LIST ITEM",
	Short: "Check or uncheck an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ToggleChecklistItem")
		if err != nil {
			return err
		}
		defer a.Close()

		item, err := a.ToggleChecklistItem(args[0], args[1])
		if err != nil {
			return err
		}
		if item.Checked {
			fmt.Printf("Checked %q\n", item.Content)
		} else {
			fmt.Printf("Unchecked %q\n", item.Content)
		}
		return nil
	},
}

var checklistItemRmCmd = &cobra.Command{
	Use:   "rm LIST ITEM",
	Short: "Remove an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RemoveChecklistItem")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.RemoveChecklistItem(args[0], args[1])
	},
}

func init() {
	checklistCmd.AddCommand(checklistAddCmd)
	checklistAddCmd.Flags().StringP("date", "d", "", "Exam date")

	checklistCmd.AddCommand(checklistRmCmd)

	checklistCmd.AddCommand(checklistLsCmd)
	checklistLsCmd.Flags().String("filter", string(study.ChecklistAll), "all, upcoming or completed")

	checklistCmd.AddCommand(checklistShowCmd)

	checklistCmd.AddCommand(checklistItemCmd)
	checklistItemCmd.AddCommand(checklistItemAddCmd)
	checklistItemCmd.AddCommand(checklistItemCheckCmd)
	checklistItemCmd.AddCommand(checklistItemRmCmd)
}
