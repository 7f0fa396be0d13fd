package main

import (
	"fmt"
	"os"
	"time"

	"study-go/internal/app"
	"study-go/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a StudyApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "AddEvent", "UploadFile").
func newApp(operation string) (*app.StudyApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewStudyApp(cfg, operation, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:          "study",
	Short:        "Local study organizer",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults.BaseDir)
		cfg.LogDir = defaults.LogDir
		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Printf("Base Dir: %s\n", defaults.BaseDir)
		fmt.Printf("Log Dir:  %s\n", defaults.LogDir)
		fmt.Println("Run `study snapshot setup` to create the snapshot encryption keys.")
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults.ConfigPath)
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Database:   %s %s\n", cfg.Database.Type, cfg.Database.DataDir)
		fmt.Printf("Vault:      %s %s\n", cfg.Vault.Type, cfg.Vault.Root)
		fmt.Printf("Encryption: %s\n", cfg.Encryption.Type)
		fmt.Printf("Interval:   %s\n", cfg.Notify.Interval)
		return nil
	},
}

// theme command
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the UI theme",
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Theme")
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Println(a.Theme())
		return nil
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between dark and light",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ToggleTheme")
		if err != nil {
			return err
		}
		defer a.Close()

		t, err := a.ToggleTheme()
		if err != nil {
			return err
		}
		fmt.Printf("Theme: %s\n", t)
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View operation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("GetHistory")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.GetHistory(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt.Valid {
				d := op.FinishedAt.Time.Sub(op.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %-20s  %s  %-8s  %-10s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Local().Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
				op.Parameters,
			)
		}
		return nil
	},
}

// snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage encrypted database snapshots",
}

var snapshotSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the snapshot encryption keys",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SetupEncryption")
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase, err := promptPassphrase(cmd.ErrOrStderr(), true)
		if err != nil {
			return err
		}
		if err := a.SetupEncryption(passphrase); err != nil {
			return err
		}
		fmt.Println("Encryption keys created.")
		return nil
	},
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore DEST",
	Short: "Decrypt the latest snapshot into DEST",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RestoreSnapshot")
		if err != nil {
			return err
		}
		defer a.Close()

		passphrase, err := promptPassphrase(cmd.ErrOrStderr(), false)
		if err != nil {
			return err
		}
		if err := a.RestoreSnapshot(passphrase, args[0]); err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}
		fmt.Printf("Snapshot written to %s\n", args[0])
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// theme subcommands
	themeCmd.AddCommand(themeShowCmd)
	themeCmd.AddCommand(themeToggleCmd)

	// snapshot subcommands
	snapshotCmd.AddCommand(snapshotSetupCmd)
	snapshotCmd.AddCommand(snapshotRestoreCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(fileCmd)
	rootCmd.AddCommand(folderCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(checklistCmd)
	rootCmd.AddCommand(ocrCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
	rootCmd.AddCommand(snapshotCmd)
}
