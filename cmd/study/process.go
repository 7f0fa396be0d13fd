package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var ocrCmd = &cobra.Command{
	Use:   "ocr IMAGE",
	Short: "Extract the text of an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		save, _ := cmd.Flags().GetBool("save")
		folder, _ := cmd.Flags().GetString("folder")

		a, err := newApp("RecognizeText")
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		text, saved, err := a.RecognizeText(ctx, args[0], save, folder)
		if err != nil {
			return fmt.Errorf("text recognition failed: %w", err)
		}
		fmt.Println(text)
		if saved != nil {
			fmt.Printf("Saved as %s (%s)\n", saved.Name, saved.ID)
		}
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert KIND PATH...",
	Short: "Convert files (image-to-pdf, slides-to-notes)",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, _ := cmd.Flags().GetString("folder")

		a, err := newApp("Convert")
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		f, err := a.Convert(ctx, args[0], args[1:], folder)
		if err != nil {
			return fmt.Errorf("conversion failed: %w", err)
		}
		fmt.Printf("Created %s (%s)\n", f.Name, f.ID)
		return nil
	},
}

func init() {
	ocrCmd.Flags().Bool("save", false, "Store the text as a file")
	ocrCmd.Flags().StringP("folder", "f", "", "Folder for the saved text (default root)")

	convertCmd.Flags().StringP("folder", "f", "", "Folder for the result (default root)")
}
