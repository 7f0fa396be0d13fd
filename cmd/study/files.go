package main

import (
	"fmt"
	"strings"

	"study-go/internal/study"

	"github.com/spf13/cobra"
)

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Manage uploaded files",
}

var fileUploadCmd = &cobra.Command{
	Use:   "upload PATH",
	Short: "Upload a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, _ := cmd.Flags().GetString("folder")

		a, err := newApp("UploadFile")
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := a.UploadFile(args[0], folder)
		if err != nil {
			return fmt.Errorf("upload failed: %w", err)
		}
		fmt.Printf("Uploaded %s (%s, %s) as %s\n", f.Name, f.MediaType, study.FormatFileSize(f.Size), f.ID)
		return nil
	},
}

var fileRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteFile")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.DeleteFile(args[0])
	},
}

var fileLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List files in a folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, _ := cmd.Flags().GetString("folder")
		query, _ := cmd.Flags().GetString("query")
		kind, _ := cmd.Flags().GetString("kind")
		starred, _ := cmd.Flags().GetBool("starred")

		a, err := newApp("ListFiles")
		if err != nil {
			return err
		}
		defer a.Close()

		var files []study.File
		if starred {
			files = a.StarredFiles()
		} else {
			for _, f := range a.ListFolders(folder) {
				fmt.Printf("  %s  %s/\n", f.ID, f.Name)
			}
			files = a.ListFiles(folder, query, study.FileKind(kind))
		}

		if len(files) == 0 {
			fmt.Println("No files.")
			return nil
		}
		for _, f := range files {
			star := " "
			if f.Starred {
				star = "*"
			}
			fmt.Printf("%s %s  %-9s  %s  %s\n",
				star,
				f.ID,
				study.FormatFileSize(f.Size),
				f.LastModified.Local().Format("2006-01-02 15:04"),
				f.Name,
			)
		}
		return nil
	},
}

var fileGetCmd = &cobra.Command{
	Use:   "get ID [DEST]",
	Short: "Download a file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		dest := ""
		if len(args) > 1 {
			dest = args[1]
		}

		a, err := newApp("DownloadFile")
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := a.DownloadFile(args[0], dest, force)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", path)
		return nil
	},
}

var fileStarCmd = &cobra.Command{
	Use:   "star ID",
	Short: "Star or unstar a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ToggleStar")
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := a.ToggleStar(args[0])
		if err != nil {
			return err
		}
		if f.Starred {
			fmt.Printf("Starred %s\n", f.Name)
		} else {
			fmt.Printf("Unstarred %s\n", f.Name)
		}
		return nil
	},
}

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage folders",
}

var folderAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, _ := cmd.Flags().GetString("parent")

		a, err := newApp("CreateFolder")
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := a.CreateFolder(study.FolderDraft{Name: args[0], ParentID: parent})
		if err != nil {
			return err
		}
		fmt.Printf("Created folder %s\n", f.ID)
		return nil
	},
}

var folderRmCmd = &cobra.Command{
	Use:   "rm ID",
	Short: "Delete an empty folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("DeleteFolder")
		if err != nil {
			return err
		}
		defer a.Close()

		return a.DeleteFolder(args[0])
	},
}

var folderLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List subfolders",
	RunE: func(cmd *cobra.Command, args []string) error {
		parent, _ := cmd.Flags().GetString("parent")

		a, err := newApp("ListFolders")
		if err != nil {
			return err
		}
		defer a.Close()

		folders := a.ListFolders(parent)
		if len(folders) == 0 {
			fmt.Println("No folders.")
			return nil
		}
		for _, f := range folders {
			fmt.Printf("%s  %s\n", f.ID, f.Name)
		}
		return nil
	},
}

var folderPathCmd = &cobra.Command{
	Use:   "path ID",
	Short: "Show the breadcrumb of a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("FolderPath")
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := a.FolderPath(args[0])
		if err != nil {
			return err
		}
		names := make([]string, len(path))
		for i, f := range path {
			names[i] = f.Name
		}
		fmt.Println(strings.Join(names, " / "))
		return nil
	},
}

func init() {
	fileCmd.AddCommand(fileUploadCmd)
	fileUploadCmd.Flags().StringP("folder", "f", "", "Destination folder ID (default root)")

	fileCmd.AddCommand(fileRmCmd)

	fileCmd.AddCommand(fileLsCmd)
	fileLsCmd.Flags().StringP("folder", "f", "", "Folder ID (default root)")
	fileLsCmd.Flags().StringP("query", "q", "", "Only names containing this text")
	fileLsCmd.Flags().StringP("kind", "k", string(study.FileKindAll), "all, images or documents")
	fileLsCmd.Flags().Bool("starred", false, "List starred files from every folder")

	fileCmd.AddCommand(fileGetCmd)
	fileGetCmd.Flags().Bool("force", false, "Overwrite an existing destination")

	fileCmd.AddCommand(fileStarCmd)

	folderCmd.AddCommand(folderAddCmd)
	folderAddCmd.Flags().StringP("parent", "p", "", "Parent folder ID (default root)")

	folderCmd.AddCommand(folderRmCmd)

	folderCmd.AddCommand(folderLsCmd)
	folderLsCmd.Flags().StringP("parent", "p", "", "Parent folder ID (default root)")

	folderCmd.AddCommand(folderPathCmd)
}
