package upyun

import "fmt"

// Endpoint selects which API access line the client talks to.
type Endpoint int

// Access lines offered by the provider. EndpointAuto lets the provider route
// by the caller's network.
const (
	EndpointAuto Endpoint = iota
	EndpointTelecom
	EndpointCnc
	EndpointCtt
)

var endpointHosts = map[Endpoint]string{
	EndpointAuto:    "v0.api.upyun.com",
	EndpointTelecom: "v1.api.upyun.com",
	EndpointCnc:     "v2.api.upyun.com",
	EndpointCtt:     "v3.api.upyun.com",
}

var endpointNames = map[Endpoint]string{
	EndpointAuto:    "auto",
	EndpointTelecom: "telecom",
	EndpointCnc:     "cnc",
	EndpointCtt:     "ctt",
}

// Host returns the API host for the endpoint. Unknown values fall back to the
// auto-routed line.
func (e Endpoint) Host() string {
	if host, ok := endpointHosts[e]; ok {
		return host
	}
	return endpointHosts[EndpointAuto]
}

func (e Endpoint) String() string {
	if name, ok := endpointNames[e]; ok {
		return name
	}
	return "auto"
}

// ParseEndpoint converts an endpoint name ("auto", "telecom", "cnc", "ctt")
// to its Endpoint value. The empty string maps to EndpointAuto.
func ParseEndpoint(s string) (Endpoint, error) {
	switch s {
	case "", "auto":
		return EndpointAuto, nil
	case "telecom":
		return EndpointTelecom, nil
	case "cnc":
		return EndpointCnc, nil
	case "ctt":
		return EndpointCtt, nil
	default:
		return EndpointAuto, fmt.Errorf("%w: %s", ErrInvalidEndpoint, s)
	}
}

// Config holds the immutable client configuration. It is read once by New and
// never mutated afterwards.
type Config struct {
	// Bucket is the service (bucket) name, prefixed to every request path.
	Bucket string
	// Operator and Password authenticate the caller. The password never
	// leaves the process; only its digest participates in signatures.
	Operator string
	Password string
	// Endpoint selects the API access line. Zero value is EndpointAuto.
	Endpoint Endpoint
	// UseHTTPS switches the request scheme from http to https.
	UseHTTPS bool
}

// Validate checks that the required credential fields are set.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return ErrBucketRequired
	}
	if c.Operator == "" {
		return ErrOperatorRequired
	}
	if c.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// Result carries the provider's verdict for one request. Every operation
// result embeds it.
//
// StatusCode is the HTTP status, or -1 when the request never reached the
// provider (local precondition or transport failure). ErrCode/ErrMsg hold the
// provider's structured error fields when a non-200 body carried them.
type Result struct {
	StatusCode int
	ErrCode    int
	ErrMsg     string
}

// OK reports whether the provider answered 200.
func (r Result) OK() bool { return r.StatusCode == 200 }

// UploadResult is the outcome of Put or UploadFile. The image fields are
// filled from the provider's response headers when the uploaded object is a
// picture; missing headers leave them zero.
type UploadResult struct {
	Result
	Width    int
	Height   int
	Frames   int
	FileType string
}

// DownloadResult is the outcome of Get or DownloadFile.
type DownloadResult struct {
	Result
	Size        int64
	ContentType string
}

// FileInfo is the outcome of Info.
type FileInfo struct {
	Result
	IsDir bool
	Size  int64
	Time  int64
}

// UsageResult is the outcome of Usage. Used is the space consumed by the
// bucket in bytes.
type UsageResult struct {
	Result
	Used int64
}

// PurgeResult is the outcome of Purge. The purge endpoint surfaces only a
// status code.
type PurgeResult struct {
	Result
}

// DirEntry is one record of a directory listing.
type DirEntry struct {
	Name  string
	IsDir bool
	Size  int64
	// Time is the provider's modification timestamp in Unix seconds.
	Time int64
}

// UploadOptions tunes a single upload. The zero value uploads the bytes
// as-is with no extra headers.
type UploadOptions struct {
	// ContentType overrides the stored MIME type.
	ContentType string
	// ContentMD5 asks the provider to verify the body against this hex MD5.
	ContentMD5 string
	// Secret protects the stored file behind an access secret.
	Secret string
	// Mkdir creates missing parent directories on the fly.
	Mkdir bool
	// Transform applies server-side image processing during the upload.
	Transform *TransformOptions
}
