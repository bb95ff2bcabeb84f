package upyun

import (
	"crypto/md5" //#nosec G501 -- the provider's signing scheme is MD5-based
	"encoding/hex"
	"fmt"
	"net/http"
	"time"
)

// Signer computes UpYun authorization header values.
//
// The operator password is digested once at construction and only the digest
// takes part in signatures; the password itself never crosses the wire.
type Signer struct {
	operator string
	passhash string
}

// NewSigner creates a Signer for the given operator credentials.
func NewSigner(operator, password string) *Signer {
	return &Signer{
		operator: operator,
		passhash: md5Hex([]byte(password)),
	}
}

// SignREST returns the Authorization value for a bucket-prefixed REST request.
//
// The canonical string is METHOD&URI&DATE&LENGTH&DIGEST. Bodyless methods
// (GET, HEAD, DELETE) always sign length 0, even when a caller passes a
// different value.
func (s *Signer) SignREST(method, uri, date string, contentLength int64) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		contentLength = 0
	}

	canonical := fmt.Sprintf("%s&%s&%s&%d&%s", method, uri, date, contentLength, s.passhash)
	return fmt.Sprintf("UpYun %s:%s", s.operator, md5Hex([]byte(canonical)))
}

// SignPurge returns the Authorization value for the CDN purge endpoint.
//
// Purge uses a bucket-level flow signing the full payload instead of the
// request path: PAYLOAD&BUCKET&DATE&DIGEST. The two variants are not
// interchangeable.
func (s *Signer) SignPurge(payload, bucket, date string) string {
	canonical := fmt.Sprintf("%s&%s&%s&%s", payload, bucket, date, s.passhash)
	return fmt.Sprintf("UpYun %s:%s:%s", bucket, s.operator, md5Hex([]byte(canonical)))
}

// httpDate formats t as the RFC-1123 GMT date string the API signs against.
func httpDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

func md5Hex(data []byte) string {
	sum := md5.Sum(data) //#nosec G401
	return hex.EncodeToString(sum[:])
}
