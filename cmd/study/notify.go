package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"study-go/internal/study"

	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Event reminders",
}

var notifySettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change reminder settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		changing := flags.Changed("enable") || flags.Changed("disable") || flags.Changed("lead")

		op := "NotificationSettings"
		if changing {
			op = "SaveNotificationSettings"
		}
		a, err := newApp(op)
		if err != nil {
			return err
		}
		defer a.Close()

		ns := a.NotificationSettings()
		if changing {
			if flags.Changed("enable") {
				ns.Enabled = true
			}
			if flags.Changed("disable") {
				ns.Enabled = false
			}
			if flags.Changed("lead") {
				raw, _ := flags.GetString("lead")
				lead, err := study.ParseLeadTime(raw)
				if err != nil {
					return err
				}
				ns.LeadTime = lead
			}
			if err := a.SaveNotificationSettings(ns); err != nil {
				return err
			}
		}

		state := "disabled"
		if ns.Enabled {
			state = "enabled"
		}
		fmt.Printf("Reminders: %s\n", state)
		fmt.Printf("Lead time: %s\n", ns.LeadTime.Label())
		return nil
	},
}

var notifyScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Send the reminders that are due now",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ScanNotifications")
		if err != nil {
			return err
		}
		defer a.Close()

		fired, err := a.ScanNotifications()
		if err != nil {
			return err
		}
		fmt.Printf("Sent %d reminder(s)\n", len(fired))
		return nil
	},
}

var notifyWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep sending reminders until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("WatchNotifications")
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Println("Watching for reminders, press Ctrl+C to stop.")
		return a.WatchNotifications(ctx)
	},
}

func init() {
	notifyCmd.AddCommand(notifySettingsCmd)
	notifySettingsCmd.Flags().Bool("enable", false, "Turn reminders on")
	notifySettingsCmd.Flags().Bool("disable", false, "Turn reminders off")
	notifySettingsCmd.Flags().String("lead", "", "Lead time: 30min, 1hour, 1day or 1week")
	notifySettingsCmd.MarkFlagsMutuallyExclusive("enable", "disable")

	notifyCmd.AddCommand(notifyScanCmd)
	notifyCmd.AddCommand(notifyWatchCmd)
}
