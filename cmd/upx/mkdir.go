package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <remote-dir>",
	Short: "Create a directory in the bucket",
	Args:  cobra.ExactArgs(1),
	RunE:  runMkdir,
}

func runMkdir(_ *cobra.Command, args []string) error {
	path := args[0]

	client, err := getClient()
	if err != nil {
		return err
	}

	formatter := getFormatter()
	if _, err := client.Mkdir(context.Background(), path); err != nil {
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	if !quiet && !jsonOutput {
		fmt.Printf("Created: %s\n", path)
	}
	return nil
}
