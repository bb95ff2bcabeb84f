package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show bucket storage usage",
	Args:  cobra.NoArgs,
	RunE:  runUsage,
}

func runUsage(_ *cobra.Command, _ []string) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	formatter := getFormatter()
	result, err := client.Usage(context.Background())
	if err != nil {
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	return formatter.FormatUsage(os.Stdout, result)
}
