package upyun_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	upyun "github.com/upyun-contrib/upyun-go"
)

// echoStore is a minimal PUT/GET handler that stores bodies by path.
type echoStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newEchoStore() *echoStore {
	return &echoStore{objects: make(map[string][]byte)}
}

func (s *echoStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch r.Method {
	case http.MethodPut:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		s.objects[r.URL.Path] = body
	case http.MethodGet:
		body, ok := s.objects[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestClient_PutGetRoundTrip(t *testing.T) {
	server := httptest.NewServer(newEchoStore())
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := context.Background()
	content := []byte("hello upyun\x00binary\xffbytes")

	putResult, err := client.Put(ctx, "/dir/blob.bin", content, nil)
	require.NoError(t, err)
	assert.True(t, putResult.OK())

	getResult, body, err := client.Get(ctx, "/dir/blob.bin")
	require.NoError(t, err)
	assert.True(t, getResult.OK())
	assert.Equal(t, content, body, "downloaded bytes must be identical")
	assert.Equal(t, int64(len(content)), getResult.Size)
}

func TestClient_Put(t *testing.T) {
	t.Run("image metadata headers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("x-upyun-width", "1920")
			w.Header().Set("x-upyun-height", "1080")
			w.Header().Set("x-upyun-frames", "1")
			w.Header().Set("x-upyun-file-type", "JPEG")
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		result, err := client.Put(context.Background(), "/pic.jpg", []byte("jpegdata"), nil)
		require.NoError(t, err)
		assert.Equal(t, 1920, result.Width)
		assert.Equal(t, 1080, result.Height)
		assert.Equal(t, 1, result.Frames)
		assert.Equal(t, "JPEG", result.FileType)
	})

	t.Run("missing metadata headers default to zero", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		result, err := client.Put(context.Background(), "/plain.txt", []byte("text"), nil)
		require.NoError(t, err)
		assert.Zero(t, result.Width)
		assert.Zero(t, result.Height)
		assert.Zero(t, result.Frames)
		assert.Empty(t, result.FileType)
	})

	t.Run("option headers", func(t *testing.T) {
		var got http.Header
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		quality := 85
		_, err := client.Put(context.Background(), "/pic.jpg", []byte("jpegdata"), &upyun.UploadOptions{
			ContentType: "image/jpeg",
			ContentMD5:  "0123456789abcdef0123456789abcdef",
			Secret:      "s3cret",
			Mkdir:       true,
			Transform: &upyun.TransformOptions{
				Type:    upyun.ThumbFixWidth,
				Value:   "640",
				Quality: &quality,
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "image/jpeg", got.Get("Content-Type"))
		assert.Equal(t, "0123456789abcdef0123456789abcdef", got.Get("Content-MD5"))
		assert.Equal(t, "s3cret", got.Get("Content-Secret"))
		assert.Equal(t, "true", got.Get("mkdir"))
		assert.Equal(t, "fix_width", got.Get("x-gmkerl-type"))
		assert.Equal(t, "640", got.Get("x-gmkerl-value"))
		assert.Equal(t, "85", got.Get("x-gmkerl-quality"))
		assert.Empty(t, got.Get("x-gmkerl-rotate"), "unset fields emit no header")
	})

	t.Run("empty path", func(t *testing.T) {
		client := newTestClient(t, "http://unused.invalid")
		result, err := client.Put(context.Background(), "", []byte("x"), nil)
		assert.ErrorIs(t, err, upyun.ErrEmptyPath)
		assert.Equal(t, -1, result.StatusCode)
	})
}

func TestClient_UploadFile(t *testing.T) {
	t.Run("uploads file content", func(t *testing.T) {
		store := newEchoStore()
		server := httptest.NewServer(store)
		defer server.Close()

		localPath := filepath.Join(t.TempDir(), "local.txt")
		require.NoError(t, os.WriteFile(localPath, []byte("file content"), 0o600))

		client := newTestClient(t, server.URL)
		result, err := client.UploadFile(context.Background(), localPath, "/remote.txt", nil)
		require.NoError(t, err)
		assert.True(t, result.OK())
		assert.Equal(t, []byte("file content"), store.objects["/demobucket/remote.txt"])
	})

	t.Run("missing local file makes no network call", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		result, err := client.UploadFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), "/remote.txt", nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Equal(t, -1, result.StatusCode)
		assert.Equal(t, -1, result.ErrCode)
		assert.False(t, called, "local precondition failures must not reach the network")
	})
}

func TestClient_DownloadFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("remote bytes"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	localPath := filepath.Join(t.TempDir(), "nested", "dir", "out.txt")

	result, err := client.DownloadFile(context.Background(), "/file.txt", localPath)
	require.NoError(t, err)
	assert.True(t, result.OK())

	data, err := os.ReadFile(localPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("remote bytes"), data)
}

func TestClient_Info(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodHead, r.Method)
			w.Header().Set("x-upyun-file-type", "file")
			w.Header().Set("x-upyun-file-size", "2048")
			w.Header().Set("x-upyun-file-date", "1700000000")
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		info, err := client.Info(context.Background(), "/a.txt")
		require.NoError(t, err)
		assert.False(t, info.IsDir)
		assert.Equal(t, int64(2048), info.Size)
		assert.Equal(t, int64(1700000000), info.Time)
	})

	t.Run("folder", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("x-upyun-file-type", "folder")
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		info, err := client.Info(context.Background(), "/dir/")
		require.NoError(t, err)
		assert.True(t, info.IsDir)
		assert.Zero(t, info.Size)
	})
}

func TestClient_Mkdir(t *testing.T) {
	var gotMethod string
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		got = r.Header.Clone()
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Mkdir(context.Background(), "/newdir")
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "true", got.Get("folder"))
	assert.Equal(t, "true", got.Get("mkdir"))
}

func TestClient_Usage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demobucket/", r.URL.Path)
		assert.Equal(t, "usage", r.URL.RawQuery)
		_, _ = w.Write([]byte(strconv.FormatInt(123456789, 10)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result, err := client.Usage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(123456789), result.Used)
}
