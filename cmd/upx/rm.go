package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <remote-path>...",
	Short: "Delete files or empty directories",
	Long: `Delete files or empty directories from the bucket.

Examples:
  upx rm /images/photo.jpg
  upx rm /tmp/a.txt /tmp/b.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRm,
}

func runRm(_ *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	formatter := getFormatter()
	ctx := context.Background()

	for _, path := range args {
		if _, err := client.Delete(ctx, path); err != nil {
			_ = formatter.FormatError(os.Stderr, err)
			return err
		}
		if err := formatter.FormatDelete(os.Stdout, path); err != nil {
			return err
		}
	}

	return nil
}
