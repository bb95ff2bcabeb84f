package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	upyun "github.com/upyun-contrib/upyun-go"
)

// Formatter formats operation results for output.
type Formatter interface {
	FormatUpload(w io.Writer, localPath, remotePath string, r *upyun.UploadResult) error
	FormatDownload(w io.Writer, remotePath, localPath string, r *upyun.DownloadResult) error
	FormatDelete(w io.Writer, path string) error
	FormatList(w io.Writer, entries []upyun.DirEntry, cursor *upyun.DirCursor, done bool) error
	FormatInfo(w io.Writer, path string, info *upyun.FileInfo) error
	FormatUsage(w io.Writer, r *upyun.UsageResult) error
	FormatPurge(w io.Writer, urls []string) error
	FormatError(w io.Writer, err error) error
	FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

func (f *HumanFormatter) FormatUpload(w io.Writer, localPath, remotePath string, r *upyun.UploadResult) error {
	if f.Quiet {
		return nil
	}
	_, _ = fmt.Fprintf(w, "Uploaded: %s -> %s\n", localPath, remotePath)
	if r.FileType != "" {
		_, _ = fmt.Fprintf(w, "  %s %dx%d\n", r.FileType, r.Width, r.Height)
	}
	return nil
}

func (f *HumanFormatter) FormatDownload(w io.Writer, remotePath, localPath string, r *upyun.DownloadResult) error {
	if f.Quiet {
		return nil
	}
	if localPath == "-" {
		_, _ = fmt.Fprintf(w, "Downloaded: %s (%s)\n", remotePath, formatSize(r.Size))
	} else {
		_, _ = fmt.Fprintf(w, "Downloaded: %s -> %s (%s)\n", remotePath, localPath, formatSize(r.Size))
	}
	return nil
}

func (f *HumanFormatter) FormatDelete(w io.Writer, path string) error {
	if f.Quiet {
		return nil
	}
	_, _ = fmt.Fprintf(w, "Deleted: %s\n", path)
	return nil
}

func (f *HumanFormatter) FormatList(w io.Writer, entries []upyun.DirEntry, cursor *upyun.DirCursor, done bool) error {
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No entries found")
		return nil
	}

	maxNameLen := 4 // "NAME"
	for i := range entries {
		if len(entries[i].Name) > maxNameLen {
			maxNameLen = len(entries[i].Name)
		}
	}
	if maxNameLen > 60 {
		maxNameLen = 60
	}

	_, _ = fmt.Fprintf(w, "%-*s  %4s  %10s  %s\n", maxNameLen, "NAME", "TYPE", "SIZE", "MODIFIED")
	_, _ = fmt.Fprintf(w, "%s  %s  %s  %s\n",
		strings.Repeat("-", maxNameLen), strings.Repeat("-", 4),
		strings.Repeat("-", 10), strings.Repeat("-", 19))

	for i := range entries {
		e := &entries[i]
		name := e.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		}
		kind := "file"
		if e.IsDir {
			kind = "dir"
		}
		_, _ = fmt.Fprintf(w, "%-*s  %4s  %10s  %s\n",
			maxNameLen,
			name,
			kind,
			formatSize(e.Size),
			time.Unix(e.Time, 0).UTC().Format("2006-01-02 15:04:05"),
		)
	}

	_, _ = fmt.Fprintf(w, "\n%d item(s)\n", len(entries))
	if !done && cursor != nil && cursor.Iter != "" {
		_, _ = fmt.Fprintf(w, "Next page: use --iter %q\n", cursor.Iter)
	}
	return nil
}

func (f *HumanFormatter) FormatInfo(w io.Writer, path string, info *upyun.FileInfo) error {
	kind := "file"
	if info.IsDir {
		kind = "folder"
	}
	_, _ = fmt.Fprintf(w, "Path:     %s\n", path)
	_, _ = fmt.Fprintf(w, "Type:     %s\n", kind)
	_, _ = fmt.Fprintf(w, "Size:     %s\n", formatSize(info.Size))
	_, _ = fmt.Fprintf(w, "Modified: %s\n", time.Unix(info.Time, 0).UTC().Format(time.RFC3339))
	return nil
}

func (f *HumanFormatter) FormatUsage(w io.Writer, r *upyun.UsageResult) error {
	_, _ = fmt.Fprintf(w, "Used: %s (%d bytes)\n", formatSize(r.Used), r.Used)
	return nil
}

func (f *HumanFormatter) FormatPurge(w io.Writer, urls []string) error {
	if f.Quiet {
		return nil
	}
	_, _ = fmt.Fprintf(w, "Purged %d url(s)\n", len(urls))
	return nil
}

func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

func (f *HumanFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	for i := range profiles {
		p := &profiles[i]
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}
		_, _ = fmt.Fprintf(w, "%s %s (bucket: %s, operator: %s)\n", marker, p.Name, p.Bucket, p.Operator)
	}
	return nil
}

// JSONFormatter outputs newline-delimited JSON objects.
type JSONFormatter struct{}

func (f *JSONFormatter) write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	return enc.Encode(v)
}

func (f *JSONFormatter) FormatUpload(w io.Writer, localPath, remotePath string, r *upyun.UploadResult) error {
	return f.write(w, map[string]any{
		"local_path":  localPath,
		"remote_path": remotePath,
		"width":       r.Width,
		"height":      r.Height,
		"frames":      r.Frames,
		"file_type":   r.FileType,
	})
}

func (f *JSONFormatter) FormatDownload(w io.Writer, remotePath, localPath string, r *upyun.DownloadResult) error {
	return f.write(w, map[string]any{
		"remote_path": remotePath,
		"local_path":  localPath,
		"size_bytes":  r.Size,
	})
}

func (f *JSONFormatter) FormatDelete(w io.Writer, path string) error {
	return f.write(w, map[string]any{"path": path, "deleted": true})
}

func (f *JSONFormatter) FormatList(w io.Writer, entries []upyun.DirEntry, cursor *upyun.DirCursor, done bool) error {
	items := make([]map[string]any, len(entries))
	for i := range entries {
		e := &entries[i]
		items[i] = map[string]any{
			"name":   e.Name,
			"is_dir": e.IsDir,
			"size":   e.Size,
			"time":   e.Time,
		}
	}
	out := map[string]any{"items": items}
	if !done && cursor != nil && cursor.Iter != "" {
		out["next_iter"] = cursor.Iter
	}
	return f.write(w, out)
}

func (f *JSONFormatter) FormatInfo(w io.Writer, path string, info *upyun.FileInfo) error {
	return f.write(w, map[string]any{
		"path":   path,
		"is_dir": info.IsDir,
		"size":   info.Size,
		"time":   info.Time,
	})
}

func (f *JSONFormatter) FormatUsage(w io.Writer, r *upyun.UsageResult) error {
	return f.write(w, map[string]any{"used_bytes": r.Used})
}

func (f *JSONFormatter) FormatPurge(w io.Writer, urls []string) error {
	return f.write(w, map[string]any{"purged": urls})
}

func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	return f.write(w, map[string]any{"error": err.Error()})
}

func (f *JSONFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	items := make([]map[string]any, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		items[i] = map[string]any{
			"name":     p.Name,
			"bucket":   p.Bucket,
			"operator": p.Operator,
			"default":  p.Name == defaultName,
		}
	}
	return f.write(w, map[string]any{"profiles": items})
}

// formatSize renders a byte count with a binary unit suffix.
func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
