package upyun

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// Purge asks the CDN to drop its cached copies of the given fully-qualified
// URLs. The purge endpoint is a fixed host separate from the REST API and
// answers with a bare status code; no body is surfaced.
func (c *Client) Purge(ctx context.Context, urls []string) (*PurgeResult, error) {
	if len(urls) == 0 {
		return &PurgeResult{Result: localFailure(ErrNoURLs)}, ErrNoURLs
	}

	payload := strings.Join(urls, "\n")
	form := url.Values{"purge": {payload}}
	body := []byte(form.Encode())

	base := c.purgeURL
	if base == "" {
		base = c.scheme() + "://" + purgeHost
	}

	date := httpDate(c.now())

	resp, err := c.send(ctx, &request{
		method: http.MethodPost,
		url:    base + purgePath,
		headers: map[string]string{
			"Date":          date,
			"Authorization": c.signer.SignPurge(payload, c.config.Bucket, date),
			"Content-Type":  "application/x-www-form-urlencoded",
		},
		body: body,
	})
	if err != nil {
		return &PurgeResult{Result: resp.Result}, err
	}

	result := &PurgeResult{Result: resp.Result}
	if !resp.OK() {
		return result, resp.providerError()
	}
	return result, nil
}
