// Package upyuntest provides an in-memory fake of the UpYun REST API for
// tests. The fake verifies request signatures with the same scheme as the
// real provider, stores objects in memory, paginates directory listings with
// continuation tokens, and records CDN purge requests.
//
// Typical use:
//
//	fake := upyuntest.NewServer("demobucket", "operator", "password")
//	ts := httptest.NewServer(fake.Handler())
//	defer ts.Close()
//
//	client, _ := upyun.New(cfg, upyun.WithBaseURL(ts.URL), upyun.WithPurgeURL(ts.URL))
package upyuntest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	upyun "github.com/upyun-contrib/upyun-go"
)

// EndIter is the end-of-listing sentinel the fake returns, matching the
// provider's documented opaque constant.
const EndIter = upyun.DefaultEndIter

type object struct {
	data        []byte
	contentType string
	isDir       bool
	modTime     time.Time
}

// Server is an in-memory fake UpYun service bound to one bucket and one
// operator credential pair. It is safe for concurrent use.
type Server struct {
	bucket   string
	operator string
	signer   *upyun.Signer

	mu      sync.Mutex
	objects map[string]*object
	purged  []string

	// Now is stubbed in tests that need deterministic timestamps.
	Now func() time.Time
}

// NewServer creates a fake bound to the given bucket and credentials.
func NewServer(bucket, operator, password string) *Server {
	return &Server{
		bucket:   bucket,
		operator: operator,
		signer:   upyun.NewSigner(operator, password),
		objects:  make(map[string]*object),
		Now:      time.Now,
	}
}

// Handler returns the fake's HTTP handler. Mount it on an httptest.Server
// and point the client at it with WithBaseURL/WithPurgeURL.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)

	r.Post("/purge/", s.handlePurge)

	r.Route("/"+s.bucket, func(r chi.Router) {
		r.Get("/*", s.handleGet)
		r.Put("/*", s.handlePut)
		r.Post("/*", s.handlePost)
		r.Head("/*", s.handleHead)
		r.Delete("/*", s.handleDelete)
	})

	return r
}

// Seed stores an object directly, bypassing authentication. Parent
// directories are created implicitly.
func (s *Server) Seed(p string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(p, data, "application/octet-stream")
}

// Object returns a stored object's bytes.
func (s *Server) Object(p string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[cleanPath(p)]
	if !ok || obj.isDir {
		return nil, false
	}
	return obj.data, true
}

// Purged returns the URLs recorded by purge requests, in arrival order.
func (s *Server) Purged() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.purged...)
}

// requestID tags every response with a fresh request id, like the provider
// does.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-upyun-uuid", uuid.NewString())
		next.ServeHTTP(w, r)
	})
}

func cleanPath(p string) string {
	p = "/" + strings.Trim(p, "/")
	return p
}

// relPath strips the bucket prefix from the request path.
func (s *Server) relPath(r *http.Request) string {
	return cleanPath(strings.TrimPrefix(r.URL.Path, "/"+s.bucket))
}

// checkAuth verifies the REST signature on the request.
func (s *Server) checkAuth(r *http.Request) bool {
	date := r.Header.Get("Date")
	if date == "" {
		return false
	}
	want := s.signer.SignREST(r.Method, r.URL.RequestURI(), date, r.ContentLength)
	return r.Header.Get("Authorization") == want
}

func writeError(w http.ResponseWriter, status, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"code": code, "msg": msg})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if !s.checkAuth(r) {
		writeError(w, http.StatusUnauthorized, 40100, "invalid signature")
		return
	}

	if r.URL.RawQuery == "usage" {
		s.handleUsage(w)
		return
	}

	p := s.relPath(r)

	s.mu.Lock()
	obj, ok := s.objects[p]
	s.mu.Unlock()

	switch {
	case ok && !obj.isDir:
		if obj.contentType != "" {
			w.Header().Set("Content-Type", obj.contentType)
		}
		_, _ = w.Write(obj.data)
	case p == "/" || (ok && obj.isDir):
		s.handleList(w, r, p)
	default:
		writeError(w, http.StatusNotFound, 40400, "file not found")
	}
}

func (s *Server) handleUsage(w http.ResponseWriter) {
	s.mu.Lock()
	var total int64
	for _, obj := range s.objects {
		total += int64(len(obj.data))
	}
	s.mu.Unlock()
	_, _ = fmt.Fprintf(w, "%d", total)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request, dir string) {
	limit := 100
	if v := r.Header.Get("x-list-limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	desc := r.Header.Get("x-list-order") == "desc"

	offset := 0
	if iter := r.Header.Get("x-list-iter"); iter != "" {
		decoded, err := base64.URLEncoding.DecodeString(iter)
		if err != nil {
			writeError(w, http.StatusBadRequest, 40000, "invalid iterator")
			return
		}
		offset, err = strconv.Atoi(string(decoded))
		if err != nil {
			writeError(w, http.StatusBadRequest, 40000, "invalid iterator")
			return
		}
	}

	s.mu.Lock()
	var names []string
	for p := range s.objects {
		if path.Dir(p) == dir && p != dir {
			names = append(names, p)
		}
	}
	sort.Strings(names)
	if desc {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}

	end := offset + limit
	if end > len(names) {
		end = len(names)
	}
	var sb strings.Builder
	for _, p := range names[offset:end] {
		obj := s.objects[p]
		kind := "N"
		if obj.isDir {
			kind = "F"
		}
		fmt.Fprintf(&sb, "%s\t%s\t%d\t%d\n", path.Base(p), kind, len(obj.data), obj.modTime.Unix())
	}
	s.mu.Unlock()

	if end >= len(names) {
		w.Header().Set("x-upyun-list-iter", EndIter)
	} else {
		token := base64.URLEncoding.EncodeToString([]byte(strconv.Itoa(end)))
		w.Header().Set("x-upyun-list-iter", token)
	}
	_, _ = w.Write([]byte(sb.String()))
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	if !s.checkAuth(r) {
		writeError(w, http.StatusUnauthorized, 40100, "invalid signature")
		return
	}

	body, err := readAll(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, 40000, "unreadable body")
		return
	}

	if want := r.Header.Get("Content-MD5"); want != "" && want != md5hex(body) {
		writeError(w, http.StatusForbidden, 40300, "content md5 mismatch")
		return
	}

	s.mu.Lock()
	s.put(s.relPath(r), body, r.Header.Get("Content-Type"))
	s.mu.Unlock()
}

// put stores an object and its implicit parent directories. Callers hold mu.
func (s *Server) put(p string, data []byte, contentType string) {
	p = cleanPath(p)
	s.objects[p] = &object{
		data:        data,
		contentType: contentType,
		modTime:     s.Now(),
	}
	for dir := path.Dir(p); dir != "/" && dir != "."; dir = path.Dir(dir) {
		if _, ok := s.objects[dir]; !ok {
			s.objects[dir] = &object{isDir: true, modTime: s.Now()}
		}
	}
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	if !s.checkAuth(r) {
		writeError(w, http.StatusUnauthorized, 40100, "invalid signature")
		return
	}

	if r.Header.Get("folder") != "true" {
		writeError(w, http.StatusBadRequest, 40000, "unsupported post")
		return
	}

	s.mu.Lock()
	p := s.relPath(r)
	s.objects[p] = &object{isDir: true, modTime: s.Now()}
	s.mu.Unlock()
}

func (s *Server) handleHead(w http.ResponseWriter, r *http.Request) {
	if !s.checkAuth(r) {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	s.mu.Lock()
	obj, ok := s.objects[s.relPath(r)]
	s.mu.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	kind := "file"
	if obj.isDir {
		kind = "folder"
	}
	w.Header().Set("x-upyun-file-type", kind)
	w.Header().Set("x-upyun-file-size", strconv.Itoa(len(obj.data)))
	w.Header().Set("x-upyun-file-date", strconv.FormatInt(obj.modTime.Unix(), 10))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !s.checkAuth(r) {
		writeError(w, http.StatusUnauthorized, 40100, "invalid signature")
		return
	}

	p := s.relPath(r)
	s.mu.Lock()
	_, ok := s.objects[p]
	if ok {
		delete(s.objects, p)
	}
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, 40400, "file not found")
	}
}

func (s *Server) handlePurge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, 40000, "bad form")
		return
	}
	payload := r.PostForm.Get("purge")

	date := r.Header.Get("Date")
	want := s.signer.SignPurge(payload, s.bucket, date)
	if date == "" || r.Header.Get("Authorization") != want {
		writeError(w, http.StatusUnauthorized, 40100, "invalid signature")
		return
	}

	s.mu.Lock()
	for _, u := range strings.Split(payload, "\n") {
		if u != "" {
			s.purged = append(s.purged, u)
		}
	}
	s.mu.Unlock()
}
