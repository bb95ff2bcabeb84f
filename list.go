package upyun

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// DefaultEndIter is the continuation token the provider returns once a
// listing is exhausted. The value is provider contract and undocumented;
// DirCursor.EndIter exists so it can be overridden if the provider ever
// changes it.
const DefaultEndIter = "g2gCZAAEbmV4dGQAA2VvZg"

// DefaultListLimit is the page size used when a cursor does not set one.
const DefaultListLimit = 100

// Order selects the listing sort direction.
type Order int

const (
	OrderAsc Order = iota
	OrderDesc
)

func (o Order) String() string {
	if o == OrderDesc {
		return "desc"
	}
	return "asc"
}

// DirCursor carries listing state between ListDir calls. The caller owns it:
// the Iter token may be persisted and restored verbatim to resume a listing
// across process restarts.
//
// A cursor is mutated in place after each page and therefore must not be
// shared by concurrent calls.
type DirCursor struct {
	// Limit caps the records per page. Zero means DefaultListLimit.
	Limit int
	// Order is the sort direction.
	Order Order
	// Iter is the continuation token. Empty starts from the beginning.
	Iter string
	// EndIter is the end-of-listing sentinel. Empty means DefaultEndIter.
	EndIter string
}

// NewDirCursor returns a cursor positioned at the start of a listing.
func NewDirCursor() *DirCursor {
	return &DirCursor{Limit: DefaultListLimit}
}

func (c *DirCursor) limit() int {
	if c.Limit <= 0 {
		return DefaultListLimit
	}
	return c.Limit
}

func (c *DirCursor) endIter() string {
	if c.EndIter == "" {
		return DefaultEndIter
	}
	return c.EndIter
}

// ListDir fetches one page of the directory at path and invokes fn for each
// record in file order, then advances the cursor.
//
// Two non-fatal conditions are reported after the page's records have been
// delivered: ErrListOver when the provider signalled the end of the listing,
// and ErrMissingListIter when the response carried no continuation token. An
// error returned by fn aborts the page and is returned as-is.
func (c *Client) ListDir(ctx context.Context, path string, cursor *DirCursor, fn func(DirEntry) error) (*Result, error) {
	if path == "" {
		r := localFailure(ErrEmptyPath)
		return &r, fmt.Errorf("list: %w", ErrEmptyPath)
	}
	if cursor == nil {
		cursor = NewDirCursor()
	}
	// A cursor already parked on the end sentinel has nothing left to fetch.
	if cursor.Iter != "" && cursor.Iter == cursor.endIter() {
		r := Result{}
		return &r, ErrListOver
	}

	headers := map[string]string{
		"x-list-limit": strconv.Itoa(cursor.limit()),
		"x-list-order": cursor.Order.String(),
	}
	if cursor.Iter != "" {
		headers["x-list-iter"] = cursor.Iter
	}

	resp, err := c.do(ctx, http.MethodGet, path, headers, nil)
	if err != nil {
		return &resp.Result, err
	}
	if !resp.OK() {
		return &resp.Result, resp.providerError()
	}

	for _, entry := range parseDirEntries(resp.Body) {
		if err := fn(entry); err != nil {
			return &resp.Result, err
		}
	}

	iter, ok := resp.Headers["list-iter"]
	if !ok {
		return &resp.Result, ErrMissingListIter
	}
	cursor.Iter = iter
	if iter == cursor.endIter() {
		return &resp.Result, ErrListOver
	}
	return &resp.Result, nil
}

// parseDirEntries parses the tab-separated listing body. Each line is
// "name\tF|N\tsize\ttimestamp"; lines with fewer than four fields are
// skipped without aborting the rest of the page.
func parseDirEntries(body []byte) []DirEntry {
	var entries []DirEntry
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			continue
		}
		entries = append(entries, DirEntry{
			Name:  fields[0],
			IsDir: fields[1] == "F",
			Size:  parseInt64(fields[2]),
			Time:  parseInt64(fields[3]),
		})
	}
	return entries
}
