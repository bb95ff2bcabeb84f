package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <remote-path>",
	Short: "Show metadata for a file or directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(_ *cobra.Command, args []string) error {
	path := args[0]

	client, err := getClient()
	if err != nil {
		return err
	}

	formatter := getFormatter()
	info, err := client.Info(context.Background(), path)
	if err != nil {
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	return formatter.FormatInfo(os.Stdout, path, info)
}
