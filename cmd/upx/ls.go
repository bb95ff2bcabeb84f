package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	upyun "github.com/upyun-contrib/upyun-go"
)

var (
	lsLimit int
	lsDesc  bool
	lsIter  string
	lsAll   bool
)

var lsCmd = &cobra.Command{
	Use:   "ls <remote-dir>",
	Short: "List a directory in the bucket",
	Long: `List the entries of a directory in the bucket.

Results are paginated. The footer of each page shows the continuation
token to pass as --iter for the next page, or use --all to walk every
page in one run.

Examples:
  upx ls /
  upx ls /images --limit 50 --desc
  upx ls /images --iter "g2gCZAAE..."
  upx ls /images --all`,
	Args: cobra.ExactArgs(1),
	RunE: runLs,
}

func init() {
	lsCmd.Flags().IntVarP(&lsLimit, "limit", "l", upyun.DefaultListLimit, "max entries per page")
	lsCmd.Flags().BoolVar(&lsDesc, "desc", false, "newest entries first")
	lsCmd.Flags().StringVar(&lsIter, "iter", "", "continuation token from a previous page")
	lsCmd.Flags().BoolVar(&lsAll, "all", false, "fetch all pages")
}

func runLs(_ *cobra.Command, args []string) error {
	path := args[0]

	client, err := getClient()
	if err != nil {
		return err
	}

	cursor := upyun.NewDirCursor()
	cursor.Limit = lsLimit
	cursor.Iter = lsIter
	if lsDesc {
		cursor.Order = upyun.OrderDesc
	}

	formatter := getFormatter()
	ctx := context.Background()

	for {
		var entries []upyun.DirEntry
		_, err := client.ListDir(ctx, path, cursor, func(e upyun.DirEntry) error {
			entries = append(entries, e)
			return nil
		})
		done := errors.Is(err, upyun.ErrListOver)
		if err != nil && !done {
			_ = formatter.FormatError(os.Stderr, err)
			return err
		}

		if err := formatter.FormatList(os.Stdout, entries, cursor, done); err != nil {
			return err
		}

		if done || !lsAll {
			return nil
		}
	}
}
