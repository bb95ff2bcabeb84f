package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download <remote-path> [local-path]",
	Short: "Download a file from the bucket",
	Long: `Download a file from the bucket.

When local-path is omitted or "-", the file content is written to stdout.

Examples:
  upx download /images/photo.jpg ./photo.jpg
  upx download /docs/readme.txt -`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDownload,
}

func runDownload(_ *cobra.Command, args []string) error {
	remotePath := args[0]
	localPath := "-"
	if len(args) > 1 {
		localPath = args[1]
	}

	client, err := getClient()
	if err != nil {
		return err
	}

	formatter := getFormatter()

	if localPath == "-" {
		result, data, err := client.Get(context.Background(), remotePath)
		if err != nil {
			_ = formatter.FormatError(os.Stderr, err)
			return err
		}
		if _, err := os.Stdout.Write(data); err != nil {
			return err
		}
		return formatter.FormatDownload(os.Stderr, remotePath, localPath, result)
	}

	result, err := client.DownloadFile(context.Background(), remotePath, localPath)
	if err != nil {
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	return formatter.FormatDownload(os.Stdout, remotePath, localPath, result)
}
