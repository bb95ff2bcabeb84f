package upyuntest

import (
	"crypto/md5" //#nosec G501 -- matches the provider's checksum scheme
	"encoding/hex"
	"io"
	"net/http"
)

func readAll(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer func() { _ = r.Body.Close() }()
	return io.ReadAll(r.Body)
}

func md5hex(data []byte) string {
	sum := md5.Sum(data) //#nosec G401
	return hex.EncodeToString(sum[:])
}
