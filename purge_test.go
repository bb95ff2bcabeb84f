package upyun_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	upyun "github.com/upyun-contrib/upyun-go"
)

func TestClient_Purge(t *testing.T) {
	t.Run("sends form-encoded url list", func(t *testing.T) {
		var gotPath, gotAuth, gotContentType string
		var gotForm url.Values
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			gotForm, err = url.ParseQuery(string(body))
			require.NoError(t, err)
		}))
		defer server.Close()

		client, err := upyun.New(testConfig(), upyun.WithPurgeURL(server.URL))
		require.NoError(t, err)

		urls := []string{
			"http://demobucket.b0.upaiyun.com/a.txt",
			"http://demobucket.b0.upaiyun.com/b.txt",
		}
		result, err := client.Purge(context.Background(), urls)
		require.NoError(t, err)
		assert.True(t, result.OK())

		assert.Equal(t, "/purge/", gotPath)
		assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
		assert.True(t, strings.HasPrefix(gotAuth, "UpYun demobucket:operator:"), "purge auth uses the bucket-level scheme")
		assert.Equal(t, strings.Join(urls, "\n"), gotForm.Get("purge"))
	})

	t.Run("surfaces only the status on failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":40100,"msg":"invalid signature"}`))
		}))
		defer server.Close()

		client, err := upyun.New(testConfig(), upyun.WithPurgeURL(server.URL))
		require.NoError(t, err)

		result, err := client.Purge(context.Background(), []string{"http://x/a"})
		assert.ErrorIs(t, err, upyun.ErrUnauthorized)
		assert.Equal(t, http.StatusUnauthorized, result.StatusCode)
	})

	t.Run("empty url list", func(t *testing.T) {
		client, err := upyun.New(testConfig())
		require.NoError(t, err)

		result, err := client.Purge(context.Background(), nil)
		assert.ErrorIs(t, err, upyun.ErrNoURLs)
		assert.Equal(t, -1, result.StatusCode)
	})
}
