package upyun

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// Put uploads data to the remote path. opts may be nil.
//
// On success the image metadata echoed by the provider (width, height,
// frames, file type) is copied into the result; headers the provider did not
// send leave their fields zero.
func (c *Client) Put(ctx context.Context, path string, data []byte, opts *UploadOptions) (*UploadResult, error) {
	if path == "" {
		return localFailureUpload(ErrEmptyPath), fmt.Errorf("put: %w", ErrEmptyPath)
	}

	headers := make(map[string]string)
	if opts != nil {
		if opts.ContentType != "" {
			headers["Content-Type"] = opts.ContentType
		}
		if opts.ContentMD5 != "" {
			headers["Content-MD5"] = opts.ContentMD5
		}
		if opts.Secret != "" {
			headers["Content-Secret"] = opts.Secret
		}
		if opts.Mkdir {
			headers["mkdir"] = "true"
		}
		for k, v := range opts.Transform.headers() {
			headers[k] = v
		}
	}

	resp, err := c.do(ctx, http.MethodPut, path, headers, data)
	if err != nil {
		return &UploadResult{Result: resp.Result}, err
	}

	result := &UploadResult{Result: resp.Result}
	if !resp.OK() {
		return result, resp.providerError()
	}

	result.Width = parseInt(resp.Headers["width"])
	result.Height = parseInt(resp.Headers["height"])
	result.Frames = parseInt(resp.Headers["frames"])
	result.FileType = resp.Headers["file-type"]
	return result, nil
}

// UploadFile uploads a local file to the remote path. A missing or unreadable
// local file is reported immediately with status -1; no network call is made.
func (c *Client) UploadFile(ctx context.Context, localPath, remotePath string, opts *UploadOptions) (*UploadResult, error) {
	data, err := os.ReadFile(localPath) //#nosec G304 -- localPath is user-provided input
	if err != nil {
		return localFailureUpload(err), fmt.Errorf("read local file: %w", err)
	}
	return c.Put(ctx, remotePath, data, opts)
}

// Get downloads the remote path and returns its content.
func (c *Client) Get(ctx context.Context, path string) (*DownloadResult, []byte, error) {
	if path == "" {
		return &DownloadResult{Result: localFailure(ErrEmptyPath)}, nil, fmt.Errorf("get: %w", ErrEmptyPath)
	}

	resp, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return &DownloadResult{Result: resp.Result}, nil, err
	}

	result := &DownloadResult{Result: resp.Result}
	if !resp.OK() {
		return result, nil, resp.providerError()
	}

	result.Size = int64(len(resp.Body))
	result.ContentType = resp.ContentType
	return result, resp.Body, nil
}

// DownloadFile downloads the remote path into a local file, creating parent
// directories as needed.
func (c *Client) DownloadFile(ctx context.Context, remotePath, localPath string) (*DownloadResult, error) {
	result, body, err := c.Get(ctx, remotePath)
	if err != nil {
		return result, err
	}

	dir := filepath.Dir(localPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return &DownloadResult{Result: localFailure(err)}, fmt.Errorf("create directory: %w", err)
		}
	}

	if err := os.WriteFile(localPath, body, 0o600); err != nil {
		return &DownloadResult{Result: localFailure(err)}, fmt.Errorf("write file: %w", err)
	}

	return result, nil
}

// Info fetches metadata for the remote path without its content.
func (c *Client) Info(ctx context.Context, path string) (*FileInfo, error) {
	if path == "" {
		return &FileInfo{Result: localFailure(ErrEmptyPath)}, fmt.Errorf("info: %w", ErrEmptyPath)
	}

	resp, err := c.do(ctx, http.MethodHead, path, nil, nil)
	if err != nil {
		return &FileInfo{Result: resp.Result}, err
	}

	info := &FileInfo{Result: resp.Result}
	if !resp.OK() {
		return info, resp.providerError()
	}

	info.IsDir = resp.Headers["file-type"] == "folder"
	info.Size = parseInt64(resp.Headers["file-size"])
	info.Time = parseInt64(resp.Headers["file-date"])
	return info, nil
}

// Delete removes the remote file or empty directory.
func (c *Client) Delete(ctx context.Context, path string) (*Result, error) {
	if path == "" {
		r := localFailure(ErrEmptyPath)
		return &r, fmt.Errorf("delete: %w", ErrEmptyPath)
	}

	resp, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return &resp.Result, err
	}
	if !resp.OK() {
		return &resp.Result, resp.providerError()
	}
	return &resp.Result, nil
}

// Mkdir creates a directory at the remote path, including missing parents.
func (c *Client) Mkdir(ctx context.Context, path string) (*Result, error) {
	if path == "" {
		r := localFailure(ErrEmptyPath)
		return &r, fmt.Errorf("mkdir: %w", ErrEmptyPath)
	}

	headers := map[string]string{
		"folder": "true",
		"mkdir":  "true",
	}

	resp, err := c.do(ctx, http.MethodPost, path, headers, nil)
	if err != nil {
		return &resp.Result, err
	}
	if !resp.OK() {
		return &resp.Result, resp.providerError()
	}
	return &resp.Result, nil
}

// Usage reports the space consumed by the bucket in bytes.
func (c *Client) Usage(ctx context.Context) (*UsageResult, error) {
	resp, err := c.do(ctx, http.MethodGet, "/?usage", nil, nil)
	if err != nil {
		return &UsageResult{Result: resp.Result}, err
	}

	result := &UsageResult{Result: resp.Result}
	if !resp.OK() {
		return result, resp.providerError()
	}

	result.Used = parseInt64(string(resp.Body))
	return result, nil
}

// localFailure synthesizes the uniform negative result for operations that
// fail before any network activity.
func localFailure(err error) Result {
	return Result{StatusCode: -1, ErrCode: -1, ErrMsg: err.Error()}
}

func localFailureUpload(err error) *UploadResult {
	return &UploadResult{Result: localFailure(err)}
}
