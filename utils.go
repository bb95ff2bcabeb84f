package upyun

import (
	"io"
	"net/http"
	"strconv"
	"strings"
)

// normalizePath ensures a remote path starts with a single "/". Trailing
// slashes are kept since directory operations rely on them.
func normalizePath(p string) string {
	p = strings.TrimLeft(p, "/")
	return "/" + p
}

// parseInt64 parses a decimal string, defaulting to 0 on missing or malformed
// input. Provider metadata headers are optional, so absence is not an error.
func parseInt64(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseInt is parseInt64 for int-sized values.
func parseInt(s string) int {
	return int(parseInt64(s))
}

func readBody(resp *http.Response) ([]byte, error) {
	return io.ReadAll(resp.Body)
}
