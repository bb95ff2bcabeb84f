package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge <url>...",
	Short: "Purge URLs from the CDN cache",
	Long: `Ask the CDN to drop its cached copies of the given URLs.

Examples:
  upx purge http://demobucket.b0.upaiyun.com/images/photo.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPurge,
}

func runPurge(_ *cobra.Command, args []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	formatter := getFormatter()
	if _, err := client.Purge(context.Background(), args); err != nil {
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	return formatter.FormatPurge(os.Stdout, args)
}
