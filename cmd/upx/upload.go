package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	upyun "github.com/upyun-contrib/upyun-go"
)

var (
	uploadContentType string
	uploadContentMD5  string
	uploadSecret      string
	uploadMkdir       bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload <local-path> <remote-path>",
	Short: "Upload a file to the bucket",
	Long: `Upload a local file to the bucket.

Examples:
  upx upload ./photo.jpg /images/photo.jpg
  upx upload --mkdir ./report.pdf /docs/2026/report.pdf
  upx upload --content-type application/json ./data /config.json`,
	Args: cobra.ExactArgs(2),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadContentType, "content-type", "t", "", "override content-type")
	uploadCmd.Flags().StringVar(&uploadContentMD5, "md5", "", "hex MD5 the server should verify the body against")
	uploadCmd.Flags().StringVar(&uploadSecret, "secret", "", "access secret for the stored file")
	uploadCmd.Flags().BoolVar(&uploadMkdir, "mkdir", false, "create missing parent directories")
}

func runUpload(_ *cobra.Command, args []string) error {
	localPath := args[0]
	remotePath := args[1]

	client, err := getClient()
	if err != nil {
		return err
	}

	opts := &upyun.UploadOptions{
		ContentType: uploadContentType,
		ContentMD5:  uploadContentMD5,
		Secret:      uploadSecret,
		Mkdir:       uploadMkdir,
	}

	formatter := getFormatter()
	result, err := client.UploadFile(context.Background(), localPath, remotePath, opts)
	if err != nil {
		_ = formatter.FormatError(os.Stderr, err)
		return err
	}

	return formatter.FormatUpload(os.Stdout, localPath, remotePath, result)
}
